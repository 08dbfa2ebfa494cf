package planning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/horneo/planner-api/internal/domain/planning"
)

func TestOverallConfidenceSummary_Tabula(t *testing.T) {
	suggestions := []planning.ProductionSuggestion{
		{Confidence: planning.ConfidenceHigh, WeeklySamples: []float64{10, 10}},
		{Confidence: planning.ConfidenceHigh, WeeklySamples: []float64{8, 8}},
		{Confidence: planning.ConfidenceMedium, WeeklySamples: []float64{8, 12}},
		{Confidence: planning.ConfidenceLow, WeeklySamples: []float64{1, 9}},
	}

	got := planning.OverallConfidenceSummary(suggestions)

	assert.Equal(t, planning.ConfidenceSummary{High: 2, Medium: 1, Low: 1}, got)
}

// Una sugerencia sin muestras cuenta como NoData aunque traiga nivel nominal.
func TestOverallConfidenceSummary_SinMuestrasEsNoData(t *testing.T) {
	suggestions := []planning.ProductionSuggestion{
		{Confidence: planning.ConfidenceHigh, WeeklySamples: nil},
		{Confidence: planning.ConfidenceLow, WeeklySamples: []float64{}},
	}

	got := planning.OverallConfidenceSummary(suggestions)

	assert.Equal(t, planning.ConfidenceSummary{NoData: 2}, got)
}

func TestOverallConfidenceSummary_Vacio(t *testing.T) {
	assert.Zero(t, planning.OverallConfidenceSummary(nil))
}
