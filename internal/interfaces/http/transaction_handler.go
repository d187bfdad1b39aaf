package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/vcmdu/Stock-master/internal/application/dto"
	"github.com/vcmdu/Stock-master/internal/application/inventory"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
)

// TransactionHandler maneja compras, ventas y su edición.
type TransactionHandler struct {
	svc *inventory.Service
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(svc *inventory.Service) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

// Create godoc
// @Summary      Registrar compra (IN) o venta (OUT)
// @Description  Resuelve el producto por ID o por nombre/marca/categoría/tamaño/peso. Una compra de un
// @Description  producto desconocido lo crea; una venta de un producto desconocido se rechaza.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransactionRequest  true  "Movimiento"
// @Success      201   {object}  dto.SubmissionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente o producto ambiguo"
// @Failure      422   {object}  dto.ErrorResponse  "venta de producto desconocido"
// @Failure      507   {object}  dto.NotDurableResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.TransactionRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return respondError(c, err)
	}
	typ, _ := entity.ParseTransactionType(in.Type)

	res, err := h.svc.SubmitTransaction(c.UserContext(), inventory.SubmitInput{
		ProductID: entity.ID(strings.TrimSpace(in.ProductID)),
		Criteria: inventory.Criteria{
			Name: in.Name, Brand: in.Brand, Category: in.Category, Size: in.Size, Weight: in.Weight,
		},
		UnitType: entity.UnitType(in.UnitType),
		RecordInput: inventory.RecordInput{
			Type:     typ,
			Date:     date,
			Quantity: in.Quantity,
			Price:    in.Price,
			Mode:     entity.UnitMode(in.UnitMode),
			Notes:    in.Notes,
		},
	})
	if res == nil {
		return respondError(c, err)
	}
	return respondMutation(c, fiber.StatusCreated, dto.SubmissionResponse{
		Transaction:    res.Transaction,
		Product:        dto.NewProductResponse(res.Product),
		ProductCreated: res.ProductCreated,
	}, err)
}

// List godoc
// @Summary      Listar transacciones (fecha descendente)
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to      query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        type    query  string  false  "IN | OUT"
// @Param        search  query  string  false  "Texto en producto o notas"
// @Success      200     {array}   entity.Transaction
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	f, err := transactionFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.svc.ListTransactions(f))
}

// GetByID godoc
// @Summary      Obtener transacción por ID
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transacción"
// @Success      200  {object}  entity.Transaction
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	t, err := h.svc.GetTransaction(entity.ID(c.Params("id")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(t)
}

// Update godoc
// @Summary      Editar transacción (se revierte y re-aplica sobre el stock)
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la transacción"
// @Param        body  body  dto.EditTransactionRequest  true  "Nuevos valores"
// @Success      200   {object}  entity.Transaction
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse  "el producto ya no existe"
// @Router       /api/transactions/{id} [put]
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	var in dto.EditTransactionRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return respondError(c, err)
	}
	typ, _ := entity.ParseTransactionType(in.Type)

	t, err := h.svc.UpdateTransaction(c.UserContext(), entity.ID(c.Params("id")), inventory.EditInput{
		Type:     typ,
		Date:     date,
		Quantity: in.Quantity,
		Price:    in.Price,
		Mode:     entity.UnitMode(in.UnitMode),
		Notes:    in.Notes,
	})
	if t == nil {
		return respondError(c, err)
	}
	return respondMutation(c, fiber.StatusOK, t, err)
}

// transactionFilter lee y valida los filtros comunes a listados y reportes.
func transactionFilter(c *fiber.Ctx) (inventory.TransactionFilter, error) {
	var q dto.TransactionQuery
	if err := parseQuery(c, &q); err != nil {
		return inventory.TransactionFilter{}, err
	}
	from, err := parseDate(q.From)
	if err != nil {
		return inventory.TransactionFilter{}, err
	}
	to, err := parseDate(q.To)
	if err != nil {
		return inventory.TransactionFilter{}, err
	}
	typ, _ := entity.ParseTransactionType(q.Type)
	return inventory.TransactionFilter{From: from, To: to, Type: typ, Search: q.Search}, nil
}

func parseDate(s string) (entity.Date, error) {
	d, err := entity.ParseDate(s)
	if err != nil {
		return entity.Date{}, &requestError{code: "INVALID_DATE", message: "fecha inválida, use YYYY-MM-DD"}
	}
	return d, nil
}
