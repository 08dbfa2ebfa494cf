package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appplanning "github.com/horneo/planner-api/internal/application/planning"
	domplanning "github.com/horneo/planner-api/internal/domain/planning"
	"github.com/horneo/planner-api/internal/domain/units"
	"github.com/horneo/planner-api/internal/infrastructure/jsonstore"
	httpRouter "github.com/horneo/planner-api/internal/interfaces/http"
	"github.com/horneo/planner-api/pkg/config"
	"github.com/horneo/planner-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Snapshot de datos de la panadería (ventas, catálogo, recetas, inventario)
	store := jsonstore.New(cfg.Data.Dir)
	if err := store.Load(); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Data.Dir).Msg("cargar snapshots de datos")
	}

	// Configuración del motor de pronóstico: la ventana y el margen de
	// seguridad son ajustables por env; los pesos semanales son los históricos.
	planCfg := domplanning.DefaultConfig()
	planCfg.WeeksToAnalyze = cfg.Planning.WeeksToAnalyze
	planCfg.SafetyMargin = cfg.Planning.SafetyMargin

	converter := units.NewMaterialConverter()

	forecastUC := appplanning.NewForecastUseCase(store, store, store, planCfg, log)
	requirementsUC := appplanning.NewRequirementsUseCase(store, store, converter, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ForecastUC:     forecastUC,
		RequirementsUC: requirementsUC,
	})

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
