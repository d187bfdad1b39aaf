package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/shopspring/decimal"
	"github.com/vcmdu/Stock-master/docs"
	"github.com/vcmdu/Stock-master/internal/application/analytics"
	"github.com/vcmdu/Stock-master/internal/application/auth"
	"github.com/vcmdu/Stock-master/internal/application/backup"
	"github.com/vcmdu/Stock-master/internal/application/inventory"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
	"github.com/vcmdu/Stock-master/internal/domain/repository"
	"github.com/vcmdu/Stock-master/internal/infrastructure/kvstate"
	infrapdf "github.com/vcmdu/Stock-master/internal/infrastructure/pdf"
	"github.com/vcmdu/Stock-master/internal/infrastructure/storefactory"
	httpRouter "github.com/vcmdu/Stock-master/internal/interfaces/http"
	"github.com/vcmdu/Stock-master/pkg/config"
	"github.com/vcmdu/Stock-master/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, closeStore, err := storefactory.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer closeStore()

	svc := inventory.NewService(
		kvstate.NewRepository(store, log),
		inventory.UUIDGenerator{},
		entity.Today,
		inventory.Config{DefaultMinStock: decimal.NewFromInt(int64(cfg.Inventory.DefaultMinStock))},
		log,
	)
	if err := svc.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("cargar inventario")
	}

	storage, _ := store.(repository.SizedKVStore)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	authUC := auth.NewAuthUseCase(auth.JWTConfig{
		Secret:       cfg.JWT.Secret,
		ExpMinutes:   cfg.JWT.Expiration,
		Issuer:       cfg.JWT.Issuer,
		PasswordHash: cfg.JWT.OperatorPasswordHash,
	})
	if !authUC.Enabled() {
		log.Warn().Msg("JWT_SECRET vacío: la API no exige token")
	}

	app := httpRouter.NewApp(cfg.App.Name, httpRouter.RouterDeps{
		Inventory:     svc,
		Dashboard:     analytics.NewDashboardUseCase(svc),
		Reports:       analytics.NewReportUseCase(svc, pdfGenerator, entity.Today),
		Replenishment: analytics.NewReplenishmentUseCase(svc, entity.Today),
		Backup:        backup.NewUseCase(svc, time.Now),
		AuthUC:        authUC,
		Log:           log,
		Storage:       storage,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	swaggerCfg := swagger.Config{
		BasePath: "/",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		swaggerCfg.FilePath = cfg.HTTP.SwaggerFile
	} else {
		swaggerCfg.FileContent = []byte(docs.SwaggerInfo.ReadDoc())
	}
	app.Use(swagger.New(swaggerCfg))

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
