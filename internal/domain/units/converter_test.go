package units_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/horneo/planner-api/internal/domain/units"
)

func convert(t *testing.T, c units.Converter, qty, unit, material string) (decimal.Decimal, string) {
	t.Helper()
	q, err := decimal.NewFromString(qty)
	assert.NoError(t, err)
	return c.Convert(q, unit, material)
}

func TestConvert_TablaEstandar(t *testing.T) {
	c := units.NewMaterialConverter()

	cases := []struct {
		qty, unit string
		wantQty   string
		wantBase  string
	}{
		{"20", "kg", "20000", units.Grams},
		{"2", "libra", "1000", units.Grams},
		{"1", "arroba", "12500", units.Grams},
		{"3", "L", "3000", units.Milliliters},
		{"250", "ml", "250", units.Milliliters},
		{"2", "docena", "24", units.Count},
		{"5", "und", "5", units.Count},
	}
	for _, tc := range cases {
		gotQty, gotBase := convert(t, c, tc.qty, tc.unit, "harina")
		assert.Equal(t, tc.wantBase, gotBase, "unidad %s", tc.unit)
		assert.True(t, gotQty.Equal(decimal.RequireFromString(tc.wantQty)),
			"%s %s: esperado %s, obtenido %s", tc.qty, tc.unit, tc.wantQty, gotQty)
	}
}

// Las unidades se normalizan: mayúsculas y espacios no cambian el resultado.
func TestConvert_NormalizaUnidad(t *testing.T) {
	c := units.NewMaterialConverter()

	q1, b1 := convert(t, c, "1", " KG ", "azúcar")
	q2, b2 := convert(t, c, "1", "kg", "azúcar")

	assert.Equal(t, b1, b2)
	assert.True(t, q1.Equal(q2))
}

// Con cantidad 1 se obtiene el factor de escala puro de la unidad.
func TestConvert_FactorConCantidadUno(t *testing.T) {
	c := units.NewMaterialConverter()

	factor, base := convert(t, c, "1", "kg", "harina")

	assert.Equal(t, units.Grams, base)
	assert.True(t, factor.Equal(decimal.NewFromInt(1000)))
}

// Los factores por materia prima tienen prioridad sobre la tabla estándar.
func TestConvert_OverridePorMateriaPrima(t *testing.T) {
	c := units.NewMaterialConverter()
	c.AddOverride("huevos", "cubeta", decimal.NewFromInt(30), units.Count)

	qty, base := convert(t, c, "2", "cubeta", "Huevos")

	assert.Equal(t, units.Count, base)
	assert.True(t, qty.Equal(decimal.NewFromInt(60)), "2 cubetas son 60 huevos")

	// Otra materia prima no hereda el override.
	_, otherBase := convert(t, c, "2", "cubeta", "harina")
	assert.Equal(t, "cubeta", otherBase)
}

// Unidad desconocida: cantidad intacta y unidad normalizada, sin error.
func TestConvert_UnidadDesconocidaDegrada(t *testing.T) {
	c := units.NewMaterialConverter()

	qty, base := convert(t, c, "7", "Paquete", "levadura")

	assert.Equal(t, "paquete", base)
	assert.True(t, qty.Equal(decimal.NewFromInt(7)))
}

// Determinista: misma entrada, misma salida.
func TestConvert_Determinista(t *testing.T) {
	c := units.NewMaterialConverter()

	q1, b1 := convert(t, c, "13", "lb", "mantequilla")
	q2, b2 := convert(t, c, "13", "lb", "mantequilla")

	assert.Equal(t, b1, b2)
	assert.True(t, q1.Equal(q2))
}
