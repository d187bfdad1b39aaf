package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vcmdu/Stock-master/internal/application/dto"
	"github.com/vcmdu/Stock-master/internal/application/inventory"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
)

// ProductHandler maneja las peticiones HTTP del catálogo.
type ProductHandler struct {
	svc *inventory.Service
}

// NewProductHandler construye el handler.
func NewProductHandler(svc *inventory.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// Create godoc
// @Summary      Crear producto con saldo inicial
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      507   {object}  dto.NotDurableResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	res, err := h.svc.CreateProduct(c.UserContext(), inventory.CreateProductInput{
		MasterData:   masterData(in),
		BuyPrice:     in.BuyPrice,
		OpeningStock: in.OpeningStock,
	})
	if res == nil {
		return respondError(c, err)
	}
	return respondMutation(c, fiber.StatusCreated, dto.ProductCreatedResponse{
		Product:        dto.NewProductResponse(res.Product),
		OpeningBalance: res.OpeningBalance,
	}, err)
}

// List godoc
// @Summary      Listar productos (más recientes primero)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Texto en nombre, marca o categoría"
// @Param        stock   query  string  false  "all | low | out"
// @Success      200     {array}   dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var q dto.ProductQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	products := h.svc.ListProducts(inventory.ProductFilter{Search: q.Search, Stock: inventory.StockFilter(q.Stock)})
	return c.JSON(dto.NewProductList(products))
}

// Match godoc
// @Summary      Buscar en cascada y obtener opciones de los desplegables
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        name      query  string  false  "Nombre"
// @Param        brand     query  string  false  "Marca"
// @Param        category  query  string  false  "Categoría"
// @Param        size      query  string  false  "Tamaño"
// @Param        kg        query  string  false  "Peso"
// @Param        inStock   query  bool    false  "Solo con stock (ventas)"
// @Success      200       {object}  dto.MatchResponse
// @Router       /api/products/match [get]
func (h *ProductHandler) Match(c *fiber.Ctx) error {
	var q dto.MatchQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	m := h.svc.MatchProducts(inventory.Criteria{
		Name: q.Name, Brand: q.Brand, Category: q.Category, Size: q.Size, Weight: q.Weight,
	}, q.InStock)
	return c.JSON(dto.MatchResponse{Candidates: dto.NewProductList(m.Candidates), Options: m.Options})
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.svc.GetProduct(entity.ID(c.Params("id")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProductResponse(p))
}

// Update godoc
// @Summary      Actualizar datos maestros (sin stock ni precio de compra)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.ProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	p, err := h.svc.UpdateProduct(c.UserContext(), entity.ID(c.Params("id")), masterData(in))
	if p == nil {
		return respondError(c, err)
	}
	return respondMutation(c, fiber.StatusOK, dto.NewProductResponse(p), err)
}

// Delete godoc
// @Summary      Eliminar producto (sus transacciones se conservan)
// @Tags         products
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id := entity.ID(c.Params("id"))
	if err := h.svc.DeleteProduct(c.UserContext(), id); err != nil {
		return respondMutation(c, fiber.StatusOK, fiber.Map{"id": id}, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func masterData(in dto.ProductRequest) inventory.MasterData {
	return inventory.MasterData{
		Name:           in.Name,
		Brand:          in.Brand,
		Category:       in.Category,
		Size:           in.Size,
		Weight:         in.Weight,
		UnitType:       entity.UnitType(in.UnitType),
		MinStock:       in.MinStock,
		SellPrice:      in.SellPrice,
		PurchaseUnit:   in.PurchaseUnit,
		ConversionRate: in.ConversionRate,
	}
}
