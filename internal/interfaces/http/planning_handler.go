package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/horneo/planner-api/internal/application/dto"
	"github.com/horneo/planner-api/internal/application/planning"
	"github.com/horneo/planner-api/internal/domain"
)

// PlanningHandler maneja las peticiones HTTP del planificador de producción.
type PlanningHandler struct {
	forecast     *planning.ForecastUseCase
	requirements *planning.RequirementsUseCase
}

// NewPlanningHandler construye el handler.
func NewPlanningHandler(forecast *planning.ForecastUseCase, requirements *planning.RequirementsUseCase) *PlanningHandler {
	return &PlanningHandler{forecast: forecast, requirements: requirements}
}

// GetForecast godoc
// @Summary      Sugerencias de producción para una fecha
// @Description  Pronostica la demanda de mañana por producto usando el promedio
//
//	ponderado de ventas del mismo día de la semana en las últimas semanas.
//
// @Tags         planning
// @Produce      json
// @Param        date  query  string  true  "Fecha de producción (YYYY-MM-DD)"
// @Success      200  {object}  dto.ForecastResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/planning/forecast [get]
func (h *PlanningHandler) GetForecast(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_DATE", Message: "parámetro date requerido (YYYY-MM-DD)"})
	}

	resp, err := h.forecast.GenerateForecast(c.Context(), date)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDate) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha inválida, se espera YYYY-MM-DD"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	return c.JSON(resp)
}

// CalculateRequirements godoc
// @Summary      Necesidades de materia prima para un plan de producción
// @Description  Expande el plan (producto -> cantidad) vía recetas a demanda
//
//	total de materia prima y reporta faltantes contra el inventario actual.
//	El cálculo es mejor-esfuerzo: los casos degradados (sin receta, unidades
//	incompatibles) se reportan como diagnostics en la respuesta.
//
// @Tags         planning
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RequirementsRequest  true  "plan de producción"
// @Success      200  {object}  dto.RequirementsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/planning/requirements [post]
func (h *PlanningHandler) CalculateRequirements(c *fiber.Ctx) error {
	var in dto.RequirementsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	resp, err := h.requirements.CalculateRequirements(c.Context(), in.Planned)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	return c.JSON(resp)
}
