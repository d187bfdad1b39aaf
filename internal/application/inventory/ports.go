package inventory

import (
	"github.com/google/uuid"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
)

// IDGenerator asigna identificadores a productos y transacciones.
type IDGenerator interface {
	NewID() entity.ID
}

// UUIDGenerator genera UUID v7: ordenados por tiempo y sin colisiones dentro del mismo milisegundo.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() entity.ID {
	id, err := uuid.NewV7()
	if err != nil {
		return entity.ID(uuid.NewString())
	}
	return entity.ID(id.String())
}

// Clock fecha de hoy; se inyecta para fijar la fecha de los saldos iniciales en tests.
type Clock func() entity.Date
