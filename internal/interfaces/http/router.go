package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/horneo/planner-api/internal/application/planning"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ForecastUC     *planning.ForecastUseCase
	RequirementsUC *planning.RequirementsUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Planificación de producción
	plan := api.Group("/planning")
	planningHandler := NewPlanningHandler(deps.ForecastUC, deps.RequirementsUC)
	plan.Get("/forecast", planningHandler.GetForecast)
	plan.Post("/requirements", planningHandler.CalculateRequirements)
}
