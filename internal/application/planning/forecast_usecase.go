// Package planning contiene los casos de uso del planificador de producción:
// pronóstico de demanda y cálculo de necesidades de materia prima.
package planning

import (
	"context"
	"time"

	"github.com/horneo/planner-api/internal/application/dto"
	"github.com/horneo/planner-api/internal/domain"
	"github.com/horneo/planner-api/internal/domain/entity"
	domplanning "github.com/horneo/planner-api/internal/domain/planning"
	"github.com/horneo/planner-api/internal/domain/repository"
	"github.com/horneo/planner-api/pkg/logger"
)

// ForecastUseCase genera las sugerencias de producción para una fecha.
// Orquesta los puertos de lectura y delega el cómputo en el motor de dominio.
type ForecastUseCase struct {
	salesRepo   repository.SalesRepository
	productRepo repository.ProductRepository
	recipeRepo  repository.RecipeRepository
	cfg         domplanning.Config
	log         *logger.Logger
}

// NewForecastUseCase construye el caso de uso de pronóstico.
func NewForecastUseCase(
	salesRepo repository.SalesRepository,
	productRepo repository.ProductRepository,
	recipeRepo repository.RecipeRepository,
	cfg domplanning.Config,
	log *logger.Logger,
) *ForecastUseCase {
	return &ForecastUseCase{
		salesRepo:   salesRepo,
		productRepo: productRepo,
		recipeRepo:  recipeRepo,
		cfg:         cfg,
		log:         log,
	}
}

// GenerateForecast devuelve las sugerencias de producción para producir en
// productionDate (formato YYYY-MM-DD), ordenadas por cantidad sugerida, junto
// con el resumen de confianza. Productos sin historial se omiten; colecciones
// vacías producen una respuesta vacía, nunca un error.
func (uc *ForecastUseCase) GenerateForecast(ctx context.Context, productionDate string) (*dto.ForecastResponse, error) {
	target, err := time.Parse(entity.DateLayout, productionDate)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}

	// 1. Snapshots de solo lectura
	sales, err := uc.salesRepo.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	recipes, err := uc.recipeRepo.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Motor de pronóstico (cómputo puro)
	suggestions := domplanning.AnalyzeHistoricalSales(target, sales, products, recipes, uc.cfg)
	summary := domplanning.OverallConfidenceSummary(suggestions)

	uc.log.Debug().
		Str("production_date", productionDate).
		Int("products", len(products)).
		Int("suggestions", len(suggestions)).
		Msg("pronóstico generado")

	// 3. Mapeo a DTOs
	out := make([]dto.ProductionSuggestionDTO, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, dto.ProductionSuggestionDTO{
			ProductID:         s.ProductID,
			ProductName:       s.ProductName,
			Category:          s.Category,
			AverageSales:      s.AverageSales,
			SuggestedQuantity: s.SuggestedQuantity,
			Confidence:        string(s.Confidence),
			WeeklySamples:     s.WeeklySamples,
			Variance:          s.Variance,
			HasRecipe:         s.HasRecipe,
		})
	}

	return &dto.ForecastResponse{
		ProductionDate: productionDate,
		SalesDate:      target.AddDate(0, 0, 1).Format(entity.DateLayout),
		Total:          len(out),
		Suggestions:    out,
		Summary: dto.ConfidenceSummaryDTO{
			High:   summary.High,
			Medium: summary.Medium,
			Low:    summary.Low,
			NoData: summary.NoData,
		},
	}, nil
}
