package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/vcmdu/Stock-master/internal/application/analytics"
	"github.com/vcmdu/Stock-master/internal/application/dto"
	"github.com/vcmdu/Stock-master/internal/domain/inventory"
)

// ReportHandler reportes por rango, curva de valor y PDFs.
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary godoc
// @Summary      Transacciones del rango con ventas, compras, costo de lo vendido y utilidad
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to      query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        type    query  string  false  "IN | OUT"
// @Param        search  query  string  false  "Texto"
// @Success      200     {object}  dto.ReportSummaryDTO
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	f, err := transactionFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.uc.Summary(f))
}

// ValueSeries godoc
// @Summary      Curva de crecimiento del valor del inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from         query  string  false  "Desde (YYYY-MM-DD); por defecto la primera transacción"
// @Param        to           query  string  false  "Hasta (YYYY-MM-DD); por defecto hoy"
// @Param        granularity  query  string  false  "day | week | month"  default(month)
// @Success      200          {object}  dto.ValueSeriesDTO
// @Failure      400          {object}  dto.ErrorResponse
// @Router       /api/reports/value-series [get]
func (h *ReportHandler) ValueSeries(c *fiber.Ctx) error {
	var q dto.SeriesQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	from, err := parseDate(q.From)
	if err != nil {
		return respondError(c, err)
	}
	to, err := parseDate(q.To)
	if err != nil {
		return respondError(c, err)
	}
	g, err := inventory.ParseGranularity(q.Granularity)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ValueSeries(from, to, g)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TransactionsPDF godoc
// @Summary      Reporte de transacciones en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        type  query  string  false  "IN | OUT"
// @Success      200   {file}  binary
// @Router       /api/reports/transactions.pdf [get]
func (h *ReportHandler) TransactionsPDF(c *fiber.Ctx) error {
	f, err := transactionFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.TransactionReportPDF(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, "transaction-report.pdf", out)
}

// InventoryPDF godoc
// @Summary      Resumen del inventario en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/inventory.pdf [get]
func (h *ReportHandler) InventoryPDF(c *fiber.Ctx) error {
	out, err := h.uc.InventoryReportPDF(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, "inventory-summary.pdf", out)
}

func sendPDF(c *fiber.Ctx, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(body)
}
