package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vcmdu/Stock-master/internal/application/analytics"
)

// DashboardHandler expone el resumen del inventario.
type DashboardHandler struct {
	dashboard     *analytics.DashboardUseCase
	replenishment *analytics.ReplenishmentUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(dashboard *analytics.DashboardUseCase, replenishment *analytics.ReplenishmentUseCase) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, replenishment: replenishment}
}

// Summary godoc
// @Summary      Resumen del inventario
// @Description  Valor total, productos en o bajo el mínimo, últimas 5 transacciones y distribución del valor.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	return c.JSON(h.dashboard.GetSummary())
}

// Replenishment godoc
// @Summary      Lista de reposición
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        window  query  int  false  "Días de ventas considerados"  default(90)
// @Success      200     {array}   dto.ReplenishmentSuggestionDTO
// @Router       /api/inventory/replenishment [get]
func (h *DashboardHandler) Replenishment(c *fiber.Ctx) error {
	window := c.QueryInt("window", analytics.DefaultSalesWindowDays)
	if window > 3650 {
		window = 3650
	}
	return c.JSON(h.replenishment.GenerateReplenishmentList(window))
}
