package dto

import "github.com/shopspring/decimal"

// ProductionSuggestionDTO sugerencia de producción para un producto, derivada
// del historial de ventas del mismo día de la semana.
type ProductionSuggestionDTO struct {
	ProductID         string    `json:"product_id"`
	ProductName       string    `json:"product_name"`
	Category          string    `json:"category"`
	AverageSales      float64   `json:"average_sales"`      // promedio ponderado del historial
	SuggestedQuantity int       `json:"suggested_quantity"` // entero >= 0
	Confidence        string    `json:"confidence"`         // high | medium | low
	WeeklySamples     []float64 `json:"weekly_samples"`     // de más antigua a más reciente
	Variance          float64   `json:"variance"`
	HasRecipe         bool      `json:"has_recipe"`
}

// ConfidenceSummaryDTO conteo de sugerencias por nivel de confianza.
type ConfidenceSummaryDTO struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
	NoData int `json:"no_data"`
}

// ForecastResponse respuesta de GET /api/planning/forecast.
type ForecastResponse struct {
	ProductionDate string                    `json:"production_date"`
	SalesDate      string                    `json:"sales_date"` // día que se pronostica (producción + 1)
	Total          int                       `json:"total"`
	Suggestions    []ProductionSuggestionDTO `json:"suggestions"`
	Summary        ConfidenceSummaryDTO      `json:"summary"`
}

// RequirementsRequest body de POST /api/planning/requirements: plan de
// producción como mapa producto -> cantidad de unidades.
type RequirementsRequest struct {
	Planned map[string]int `json:"planned"`
}

// MaterialRequirementDTO necesidad total de una materia prima, en la unidad
// del inventario, con el faltante contra las existencias actuales.
type MaterialRequirementDTO struct {
	Material     string          `json:"material"`
	Required     decimal.Decimal `json:"required"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	Shortage     decimal.Decimal `json:"shortage"` // >= 0
}

// DiagnosticDTO aviso del camino degradado del cálculo (receta faltante,
// ingrediente malformado, unidades incompatibles).
type DiagnosticDTO struct {
	Subject string `json:"subject"`
	Issue   string `json:"issue"`
}

// RequirementsResponse respuesta de POST /api/planning/requirements.
type RequirementsResponse struct {
	Total        int                      `json:"total"`
	Requirements []MaterialRequirementDTO `json:"requirements"`
	Diagnostics  []DiagnosticDTO          `json:"diagnostics"`
}
