package planning

import (
	"context"

	"github.com/horneo/planner-api/internal/application/dto"
	domplanning "github.com/horneo/planner-api/internal/domain/planning"
	"github.com/horneo/planner-api/internal/domain/repository"
	"github.com/horneo/planner-api/internal/domain/units"
	"github.com/horneo/planner-api/pkg/logger"
)

// RequirementsUseCase calcula las necesidades de materia prima para un plan
// de producción contra el recetario y el inventario de la sucursal activa.
type RequirementsUseCase struct {
	recipeRepo    repository.RecipeRepository
	inventoryRepo repository.InventoryRepository
	converter     units.Converter
	log           *logger.Logger
}

// NewRequirementsUseCase construye el caso de uso de materiales.
func NewRequirementsUseCase(
	recipeRepo repository.RecipeRepository,
	inventoryRepo repository.InventoryRepository,
	converter units.Converter,
	log *logger.Logger,
) *RequirementsUseCase {
	return &RequirementsUseCase{
		recipeRepo:    recipeRepo,
		inventoryRepo: inventoryRepo,
		converter:     converter,
		log:           log,
	}
}

// CalculateRequirements expande el plan (producto -> cantidad) a faltantes de
// materia prima. Es mejor-esfuerzo: productos sin receta, ingredientes
// malformados o unidades incompatibles generan diagnósticos en la respuesta
// (y warnings en el log), nunca un error.
func (uc *RequirementsUseCase) CalculateRequirements(ctx context.Context, planned map[string]int) (*dto.RequirementsResponse, error) {
	recipes, err := uc.recipeRepo.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}
	inventory, err := uc.inventoryRepo.ListRawMaterials(ctx)
	if err != nil {
		return nil, err
	}

	requirements, diags := domplanning.CalculateMaterialRequirements(planned, recipes, inventory, uc.converter)

	for _, d := range diags {
		uc.log.Warn().
			Str("subject", d.Subject).
			Str("issue", d.Issue).
			Msg("cálculo de materiales degradado")
	}

	outReqs := make([]dto.MaterialRequirementDTO, 0, len(requirements))
	for _, r := range requirements {
		outReqs = append(outReqs, dto.MaterialRequirementDTO{
			Material:     r.Material,
			Required:     r.Required,
			Unit:         r.Unit,
			CurrentStock: r.CurrentStock,
			Shortage:     r.Shortage,
		})
	}
	outDiags := make([]dto.DiagnosticDTO, 0, len(diags))
	for _, d := range diags {
		outDiags = append(outDiags, dto.DiagnosticDTO{Subject: d.Subject, Issue: d.Issue})
	}

	return &dto.RequirementsResponse{
		Total:        len(outReqs),
		Requirements: outReqs,
		Diagnostics:  outDiags,
	}, nil
}
