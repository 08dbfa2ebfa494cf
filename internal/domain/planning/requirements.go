package planning

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/horneo/planner-api/internal/domain/entity"
	"github.com/horneo/planner-api/internal/domain/units"
)

// MaterialRequirement necesidad total de una materia prima para el plan de
// producción, expresada en la unidad del inventario.
type MaterialRequirement struct {
	Material     string
	Required     decimal.Decimal // en la unidad del inventario
	Unit         string
	CurrentStock decimal.Decimal
	Shortage     decimal.Decimal // max(0, Required - CurrentStock)
}

// Diagnostic aviso estructurado del camino degradado del cálculo: receta
// faltante, ingrediente malformado o unidades incompatibles. El cálculo nunca
// falla por estos casos; los reporta para que sean observables.
type Diagnostic struct {
	Subject string // producto o materia prima afectada
	Issue   string
}

// acumulado de demanda por materia prima en unidad base.
type materialAccum struct {
	name     string // nombre tal como aparece en la primera receta
	total    decimal.Decimal
	baseUnit string
}

// CalculateMaterialRequirements expande el plan de producción
// (producto -> cantidad) a demanda total de materia prima vía recetas,
// normaliza unidades contra la unidad base de cada material y compara con el
// inventario actual para reportar faltantes.
//
// La resolución de receta por producto intenta, en orden: nombre exacto,
// identificador exacto, nombre sin distinguir mayúsculas. Entradas con
// cantidad <= 0 se ignoran. Productos sin receta y recetas sin ingredientes
// se omiten con un diagnóstico, nunca interrumpen el lote.
func CalculateMaterialRequirements(
	planned map[string]int,
	recipes []entity.Recipe,
	inventory []entity.RawMaterial,
	conv units.Converter,
) ([]MaterialRequirement, []Diagnostic) {
	var diags []Diagnostic

	// Índices de receta construidos una sola vez: nombre exacto, id exacto
	// y nombre normalizado.
	byName := make(map[string]entity.Recipe, len(recipes))
	byID := make(map[string]entity.Recipe, len(recipes))
	byLowerName := make(map[string]entity.Recipe, len(recipes))
	for _, r := range recipes {
		if r.Name != "" {
			byName[r.Name] = r
		}
		if r.ID != "" {
			byID[r.ID] = r
		}
		if n := normalizeName(r.Name); n != "" {
			byLowerName[n] = r
		}
	}

	// Orden estable de recorrido del plan para resultados deterministas.
	keys := make([]string, 0, len(planned))
	for k := range planned {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	accums := make(map[string]*materialAccum)
	for _, productKey := range keys {
		qty := planned[productKey]
		if qty <= 0 {
			continue
		}

		recipe, ok := resolveRecipe(productKey, byName, byID, byLowerName)
		if !ok || len(recipe.Ingredients) == 0 {
			diags = append(diags, Diagnostic{
				Subject: productKey,
				Issue:   "sin receta o sin ingredientes, se omite del cálculo",
			})
			continue
		}
		recipe = recipe.Normalized()
		yield := decimal.NewFromFloat(recipe.ExpectedYield)
		plannedQty := decimal.NewFromInt(int64(qty))

		for _, ing := range recipe.Ingredients {
			if ing.Name == "" {
				diags = append(diags, Diagnostic{
					Subject: recipe.Name,
					Issue:   "ingrediente sin nombre, se omite",
				})
				continue
			}

			baseQty, baseUnit := conv.Convert(ing.Quantity, ing.Unit, ing.Name)

			// Consumo por unidad vendible: cantidad de la tanda dividida por
			// el rendimiento, multiplicada por lo planeado.
			contribution := baseQty.Div(yield).Mul(plannedQty)

			key := normalizeName(ing.Name)
			acc, ok := accums[key]
			if !ok {
				accums[key] = &materialAccum{name: ing.Name, total: contribution, baseUnit: baseUnit}
				continue
			}
			if acc.baseUnit != baseUnit {
				// Inconsistencia de datos: mismas materias primas con familias
				// de unidad distintas. Se suma numéricamente y se reporta.
				diags = append(diags, Diagnostic{
					Subject: acc.name,
					Issue: fmt.Sprintf("unidades base incompatibles (%s vs %s), se suman numéricamente",
						acc.baseUnit, baseUnit),
				})
			}
			acc.total = acc.total.Add(contribution)
		}
	}

	// Índice del inventario por nombre normalizado.
	invByName := make(map[string]entity.RawMaterial, len(inventory))
	for _, item := range inventory {
		invByName[normalizeName(item.Name)] = item
	}

	// Recorrido en orden estable de los materiales acumulados para que el
	// resultado y los diagnósticos sean deterministas.
	matKeys := make([]string, 0, len(accums))
	for k := range accums {
		matKeys = append(matKeys, k)
	}
	sort.Strings(matKeys)

	requirements := make([]MaterialRequirement, 0, len(accums))
	for _, key := range matKeys {
		acc := accums[key]
		item, found := invByName[key]

		stock := decimal.Zero
		invUnit := acc.baseUnit
		if invUnit == "" {
			invUnit = "kg"
		}
		if found {
			stock = item.Quantity
			if u := normalizeName(item.Unit); u != "" {
				invUnit = u
			}
		}

		required, unit, stockOut, approx := toInventoryUnit(acc, invUnit, stock, conv)
		if approx {
			diags = append(diags, Diagnostic{
				Subject: acc.name,
				Issue:   fmt.Sprintf("unidad de inventario %q no convertible, faltante aproximado en %s", invUnit, unit),
			})
		}

		shortage := required.Sub(stockOut)
		if shortage.IsNegative() {
			shortage = decimal.Zero
		}

		requirements = append(requirements, MaterialRequirement{
			Material:     acc.name,
			Required:     required,
			Unit:         unit,
			CurrentStock: stockOut,
			Shortage:     shortage,
		})
	}

	sort.SliceStable(requirements, func(i, j int) bool {
		a, b := requirements[i], requirements[j]
		if !a.Shortage.Equal(b.Shortage) {
			return a.Shortage.GreaterThan(b.Shortage)
		}
		if !a.Required.Equal(b.Required) {
			return a.Required.GreaterThan(b.Required)
		}
		return a.Material < b.Material
	})

	return requirements, diags
}

// resolveRecipe busca la receta del producto: nombre exacto, id exacto y por
// último nombre normalizado.
func resolveRecipe(
	productKey string,
	byName, byID, byLowerName map[string]entity.Recipe,
) (entity.Recipe, bool) {
	if r, ok := byName[productKey]; ok {
		return r, true
	}
	if r, ok := byID[productKey]; ok {
		return r, true
	}
	if r, ok := byLowerName[normalizeName(productKey)]; ok {
		return r, true
	}
	return entity.Recipe{}, false
}

var thousand = decimal.NewFromInt(1000)

// toInventoryUnit convierte la demanda acumulada en unidad base a la unidad
// del inventario. Maneja directo g<->kg y ml<->l; para otras unidades deriva
// el factor convirtiendo 1 unidad de inventario a base. Si el factor no está
// disponible, degrada comparando el stock convertido a unidad base (approx).
func toInventoryUnit(
	acc *materialAccum,
	invUnit string,
	stock decimal.Decimal,
	conv units.Converter,
) (required decimal.Decimal, unit string, stockOut decimal.Decimal, approx bool) {
	if invUnit == acc.baseUnit {
		return acc.total, invUnit, stock, false
	}

	// Conversiones directas dentro de la familia (factor 1000).
	if acc.baseUnit == units.Grams && (invUnit == "kg" || invUnit == "kilo" || invUnit == "kilos") {
		return acc.total.Div(thousand), invUnit, stock, false
	}
	if acc.baseUnit == units.Milliliters && (invUnit == "l" || invUnit == "lt" || invUnit == "litro" || invUnit == "litros") {
		return acc.total.Div(thousand), invUnit, stock, false
	}

	// Factor derivado: cuántas unidades base vale 1 unidad de inventario.
	factor, factorBase := conv.Convert(decimal.NewFromInt(1), invUnit, acc.name)
	if factorBase == acc.baseUnit && factor.IsPositive() {
		return acc.total.Div(factor), invUnit, stock, false
	}

	// Degradación: comparar en unidad base, llevando el stock a base.
	stockBase, _ := conv.Convert(stock, invUnit, acc.name)
	return acc.total, acc.baseUnit, stockBase, true
}
