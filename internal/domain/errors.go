package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")

	ErrInvalidQuantity       = errors.New("cantidad inválida: debe ser un número mayor que cero")
	ErrInvalidPrice          = errors.New("precio inválido: no puede ser negativo")
	ErrUnknownProductOnSale  = errors.New("producto no encontrado: solo se pueden vender productos existentes")
	ErrAmbiguousProductMatch = errors.New("más de un producto coincide; indique marca, categoría, tamaño o peso")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrOrphanedTransaction   = errors.New("el producto asociado a la transacción ya no existe")
	ErrInvalidConversion     = errors.New("conversión de unidades inválida")
	ErrPersistenceWrite      = errors.New("los cambios no se pudieron guardar en el almacenamiento")
)

// InsufficientStockError detalla una salida rechazada por falta de stock.
type InsufficientStockError struct {
	ProductID string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: disponible %s, solicitado %s", ErrInsufficientStock, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// AmbiguousMatchError lleva los IDs de los candidatos que siguen en pie tras el filtro en cascada.
type AmbiguousMatchError struct {
	Candidates []string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("%s (%d candidatos)", ErrAmbiguousProductMatch, len(e.Candidates))
}

func (e *AmbiguousMatchError) Unwrap() error { return ErrAmbiguousProductMatch }

// UnknownProductError se devuelve en ventas de productos que no existen.
// Suggestions contiene nombres parecidos del catálogo ("¿quiso decir...?").
type UnknownProductError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownProductError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("%s: %q", ErrUnknownProductOnSale, e.Name)
	}
	return fmt.Sprintf("%s: %q (¿quiso decir %s?)", ErrUnknownProductOnSale, e.Name, strings.Join(e.Suggestions, ", "))
}

func (e *UnknownProductError) Unwrap() error { return ErrUnknownProductOnSale }

// PersistenceError envuelve el fallo del almacenamiento. La mutación en memoria ya ocurrió.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", ErrPersistenceWrite, e.Err)
}

// Unwrap expone tanto el centinela como la causa original.
func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistenceWrite, e.Err} }

// IsValidationError indica si err es un rechazo previo a cualquier mutación (reintentable).
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrInvalidInput, ErrInvalidQuantity, ErrInvalidPrice, ErrUnknownProductOnSale,
		ErrAmbiguousProductMatch, ErrInsufficientStock, ErrInvalidConversion, ErrOrphanedTransaction,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
