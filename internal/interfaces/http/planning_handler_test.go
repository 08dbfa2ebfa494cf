package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appplanning "github.com/horneo/planner-api/internal/application/planning"
	"github.com/horneo/planner-api/internal/application/dto"
	"github.com/horneo/planner-api/internal/domain/entity"
	domplanning "github.com/horneo/planner-api/internal/domain/planning"
	"github.com/horneo/planner-api/internal/domain/units"
	apphttp "github.com/horneo/planner-api/internal/interfaces/http"
	"github.com/horneo/planner-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// stubStore snapshot fijo en memoria que implementa los puertos de lectura.
type stubStore struct {
	sales     []entity.Sale
	products  []entity.Product
	recipes   []entity.Recipe
	inventory []entity.RawMaterial
}

func (s *stubStore) ListSales(context.Context) ([]entity.Sale, error)           { return s.sales, nil }
func (s *stubStore) ListProducts(context.Context) ([]entity.Product, error)     { return s.products, nil }
func (s *stubStore) ListRecipes(context.Context) ([]entity.Recipe, error)       { return s.recipes, nil }
func (s *stubStore) ListRawMaterials(context.Context) ([]entity.RawMaterial, error) {
	return s.inventory, nil
}

// Viernes de las 6 semanas previas al día de ventas 2025-09-19.
var fridays = []string{
	"2025-08-08", "2025-08-15", "2025-08-22", "2025-08-29", "2025-09-05", "2025-09-12",
}

// buildTestApp construye una app Fiber con el router del planificador sobre
// un snapshot fijo: un producto con ventas constantes de 10 y la receta de
// Pan Dulce del escenario de referencia.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()

	store := &stubStore{
		products: []entity.Product{
			{ID: "p-1", Name: "Pan Dulce", Category: "panadería"},
		},
		recipes: []entity.Recipe{
			{
				ID:   "r-1",
				Name: "Pan Dulce",
				Ingredients: []entity.Ingredient{
					{Name: "Harina", Quantity: decimal.NewFromInt(20), Unit: "kg"},
				},
				ExpectedYield: 100,
			},
		},
		inventory: []entity.RawMaterial{
			{ID: "m-1", Name: "Harina", Quantity: decimal.NewFromInt(5), Unit: "kg"},
		},
	}
	for _, d := range fridays {
		store.sales = append(store.sales, entity.Sale{
			ID:   "v-" + d,
			Date: d,
			Branches: []entity.BranchSale{{
				Branch: "principal",
				Items: []entity.SaleItem{{
					ProductID: "p-1",
					Quantity:  10,
					UnitPrice: decimal.NewFromInt(800),
					Subtotal:  decimal.NewFromInt(8000),
				}},
			}},
		})
	}

	log := logger.Nop()
	forecastUC := appplanning.NewForecastUseCase(store, store, store, domplanning.DefaultConfig(), log)
	requirementsUC := appplanning.NewRequirementsUseCase(store, store, units.NewMaterialConverter(), log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ForecastUC:     forecastUC,
		RequirementsUC: requirementsUC,
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/planning/forecast
// ──────────────────────────────────────────────────────────────────────────────

func TestGetForecast_EscenarioConstante(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodGet, "/api/planning/forecast?date=2025-09-18", "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.ForecastResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, "2025-09-18", body.ProductionDate)
	assert.Equal(t, "2025-09-19", body.SalesDate, "se pronostica el día siguiente a la producción")
	require.Equal(t, 1, body.Total)

	s := body.Suggestions[0]
	assert.Equal(t, "Pan Dulce", s.ProductName)
	assert.Equal(t, 10, s.SuggestedQuantity)
	assert.Equal(t, "high", s.Confidence)
	assert.True(t, s.HasRecipe)
	assert.Equal(t, dto.ConfidenceSummaryDTO{High: 1}, body.Summary)
}

func TestGetForecast_FechaRequerida(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodGet, "/api/planning/forecast", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "MISSING_DATE", body.Code)
}

func TestGetForecast_FechaInvalida(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodGet, "/api/planning/forecast?date=18-09-2025", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INVALID_DATE", body.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/planning/requirements
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculateRequirements_EscenarioPanDulce(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodPost, "/api/planning/requirements",
		`{"planned": {"Pan Dulce": 50}}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.RequirementsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	require.Equal(t, 1, body.Total)
	r := body.Requirements[0]
	assert.Equal(t, "Harina", r.Material)
	assert.Equal(t, "kg", r.Unit)
	assert.True(t, r.Required.Equal(decimal.NewFromInt(10)), "50 panes * 200g = 10kg")
	assert.True(t, r.Shortage.Equal(decimal.NewFromInt(5)), "10kg requeridos - 5kg en stock")
	assert.Empty(t, body.Diagnostics)
}

func TestCalculateRequirements_ProductoSinReceta(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodPost, "/api/planning/requirements",
		`{"planned": {"Croissant": 20}}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.RequirementsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Zero(t, body.Total, "sin receta no hay materiales que acumular")
	require.Len(t, body.Diagnostics, 1)
	assert.Equal(t, "Croissant", body.Diagnostics[0].Subject)
}

func TestCalculateRequirements_CuerpoInvalido(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodPost, "/api/planning/requirements", `{planned`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INVALID_BODY", body.Code)
}
