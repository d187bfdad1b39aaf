package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/vcmdu/Stock-master/internal/application/backup"
	"github.com/vcmdu/Stock-master/internal/application/inventory"
)

// BackupHandler descarga y restauración del respaldo JSON, y borrado total.
type BackupHandler struct {
	uc  *backup.UseCase
	svc *inventory.Service
}

// NewBackupHandler construye el handler.
func NewBackupHandler(uc *backup.UseCase, svc *inventory.Service) *BackupHandler {
	return &BackupHandler{uc: uc, svc: svc}
}

// Export godoc
// @Summary      Descargar respaldo {exportedAt, products, transactions}
// @Tags         backup
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  backup.Document
// @Router       /api/backup [get]
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	doc := h.uc.Export()
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="stock-master-backup-%s.json"`, doc.ExportedAt.Format("2006-01-02")))
	return c.JSON(doc)
}

// Restore godoc
// @Summary      Restaurar respaldo (reemplaza todo)
// @Tags         backup
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  backup.Document  true  "Respaldo"
// @Success      200   {object}  backup.Result
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      507   {object}  dto.NotDurableResponse
// @Router       /api/backup/restore [post]
func (h *BackupHandler) Restore(c *fiber.Ctx) error {
	res, err := h.uc.Restore(c.UserContext(), c.Body())
	if res == nil {
		return respondError(c, err)
	}
	return respondMutation(c, fiber.StatusOK, res, err)
}

// Reset godoc
// @Summary      Borrar todos los productos y transacciones
// @Tags         backup
// @Security     Bearer
// @Success      204
// @Failure      507  {object}  dto.NotDurableResponse
// @Router       /api/backup/reset [post]
func (h *BackupHandler) Reset(c *fiber.Ctx) error {
	if err := h.svc.Reset(c.UserContext()); err != nil {
		return respondMutation(c, fiber.StatusOK, fiber.Map{}, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
