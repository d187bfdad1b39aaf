package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swaggo/swag"
	_ "github.com/vcmdu/Stock-master/docs"
	"github.com/vcmdu/Stock-master/internal/application/analytics"
	"github.com/vcmdu/Stock-master/internal/application/auth"
	"github.com/vcmdu/Stock-master/internal/application/backup"
	"github.com/vcmdu/Stock-master/internal/application/dto"
	"github.com/vcmdu/Stock-master/internal/application/inventory"
	"github.com/vcmdu/Stock-master/internal/domain/repository"
	"github.com/vcmdu/Stock-master/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Inventory     *inventory.Service
	Dashboard     *analytics.DashboardUseCase
	Reports       *analytics.ReportUseCase
	Replenishment *analytics.ReplenishmentUseCase
	Backup        *backup.UseCase
	AuthUC        *auth.AuthUseCase
	Log           *logger.Logger
	// Storage opcional: si está, /health informa storageBytes y responde 503 si el almacén falla.
	Storage repository.SizedKVStore
}

// NewApp crea la aplicación Fiber con recover, log de peticiones, /health y las rutas de la API.
func NewApp(name string, deps RouterDeps) *fiber.App {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    32 * 1024 * 1024, // respaldos grandes
	})
	app.Use(recover.New())
	app.Use(RequestLogger(deps.Log))

	app.Get("/health", healthHandler(name, deps.Storage))
	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Públicas
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)
	api.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})

	// Rutas protegidas (Bearer Token si JWT_SECRET está definido)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.Inventory)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/match", productHandler.Match)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	transactions := protected.Group("/transactions")
	txHandler := NewTransactionHandler(deps.Inventory)
	transactions.Get("/", txHandler.List)
	transactions.Post("/", txHandler.Create)
	transactions.Get("/:id", txHandler.GetByID)
	transactions.Put("/:id", txHandler.Update)

	dashboardHandler := NewDashboardHandler(deps.Dashboard, deps.Replenishment)
	protected.Get("/dashboard/summary", dashboardHandler.Summary)
	protected.Get("/inventory/replenishment", dashboardHandler.Replenishment)

	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.Reports)
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/value-series", reportHandler.ValueSeries)
	reports.Get("/transactions.pdf", reportHandler.TransactionsPDF)
	reports.Get("/inventory.pdf", reportHandler.InventoryPDF)

	backups := protected.Group("/backup")
	backupHandler := NewBackupHandler(deps.Backup, deps.Inventory)
	backups.Get("/", backupHandler.Export)
	backups.Post("/restore", backupHandler.Restore)
	backups.Post("/reset", backupHandler.Reset)
}

// healthHandler godoc
// @Summary      Estado del servicio y tamaño del almacenamiento
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Failure      503  {object}  dto.HealthResponse
// @Router       /health [get]
func healthHandler(name string, storage repository.SizedKVStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out := dto.HealthResponse{Status: "ok", Service: name}
		if storage == nil {
			return c.JSON(out)
		}
		size, err := storage.Size(c.UserContext())
		if err != nil {
			out.Status = "degraded"
			out.Error = err.Error()
			return c.Status(fiber.StatusServiceUnavailable).JSON(out)
		}
		out.StorageBytes = &size
		return c.JSON(out)
	}
}
