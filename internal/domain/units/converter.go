// Package units normaliza cantidades expresadas en unidades heterogéneas de
// compra/receta a una unidad base canónica: gramos, mililitros o unidades.
package units

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Unidades base canónicas.
const (
	Grams       = "g"
	Milliliters = "ml"
	Count       = "und"
)

// Converter contrato de conversión de unidades consciente de la materia prima.
// Convert debe ser determinista; llamado con cantidad 1 devuelve el factor de
// escala puro de la unidad en términos de la unidad base.
type Converter interface {
	Convert(qty decimal.Decimal, unit, material string) (decimal.Decimal, string)
}

// factor escala de una unidad hacia su unidad base.
type factor struct {
	scale decimal.Decimal
	base  string
}

// MaterialConverter implementación con tabla estándar de unidades de peso,
// volumen y conteo, más factores específicos por materia prima (ej. una
// cubeta de huevos son 30 unidades).
type MaterialConverter struct {
	standard  map[string]factor
	overrides map[string]map[string]factor // materia prima -> unidad -> factor
}

// NewMaterialConverter construye el conversor con la tabla estándar.
func NewMaterialConverter() *MaterialConverter {
	std := map[string]factor{
		// peso -> gramos
		"g":       {decimal.NewFromInt(1), Grams},
		"gr":      {decimal.NewFromInt(1), Grams},
		"gramo":   {decimal.NewFromInt(1), Grams},
		"gramos":  {decimal.NewFromInt(1), Grams},
		"kg":      {decimal.NewFromInt(1000), Grams},
		"kilo":    {decimal.NewFromInt(1000), Grams},
		"kilos":   {decimal.NewFromInt(1000), Grams},
		"lb":      {decimal.NewFromInt(500), Grams},
		"libra":   {decimal.NewFromInt(500), Grams},
		"libras":  {decimal.NewFromInt(500), Grams},
		"arroba":  {decimal.NewFromInt(12500), Grams},
		"bulto":   {decimal.NewFromInt(50000), Grams},
		// volumen -> mililitros
		"ml":     {decimal.NewFromInt(1), Milliliters},
		"cc":     {decimal.NewFromInt(1), Milliliters},
		"l":      {decimal.NewFromInt(1000), Milliliters},
		"lt":     {decimal.NewFromInt(1000), Milliliters},
		"litro":  {decimal.NewFromInt(1000), Milliliters},
		"litros": {decimal.NewFromInt(1000), Milliliters},
		"galon":  {decimal.NewFromInt(3785), Milliliters},
		"galón":  {decimal.NewFromInt(3785), Milliliters},
		// conteo -> unidades
		"und":      {decimal.NewFromInt(1), Count},
		"un":       {decimal.NewFromInt(1), Count},
		"u":        {decimal.NewFromInt(1), Count},
		"unidad":   {decimal.NewFromInt(1), Count},
		"unidades": {decimal.NewFromInt(1), Count},
		"docena":   {decimal.NewFromInt(12), Count},
		"docenas":  {decimal.NewFromInt(12), Count},
	}
	return &MaterialConverter{
		standard:  std,
		overrides: make(map[string]map[string]factor),
	}
}

// AddOverride registra un factor específico por materia prima, con prioridad
// sobre la tabla estándar. Ej: AddOverride("huevos", "cubeta", 30, Count).
func (c *MaterialConverter) AddOverride(material, unit string, scale decimal.Decimal, base string) {
	m := normalize(material)
	if c.overrides[m] == nil {
		c.overrides[m] = make(map[string]factor)
	}
	c.overrides[m][normalize(unit)] = factor{scale, base}
}

// Convert lleva la cantidad a la unidad base de su familia. Para una unidad
// desconocida devuelve la cantidad intacta con la unidad normalizada en
// minúsculas, de modo que la agregación pueda degradar de forma controlada.
func (c *MaterialConverter) Convert(qty decimal.Decimal, unit, material string) (decimal.Decimal, string) {
	u := normalize(unit)

	if byMat, ok := c.overrides[normalize(material)]; ok {
		if f, ok := byMat[u]; ok {
			return qty.Mul(f.scale), f.base
		}
	}
	if f, ok := c.standard[u]; ok {
		return qty.Mul(f.scale), f.base
	}
	return qty, u
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
