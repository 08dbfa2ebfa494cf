package planning

// ConfidenceSummary conteo de sugerencias por nivel de confianza.
type ConfidenceSummary struct {
	High   int
	Medium int
	Low    int
	NoData int
}

// OverallConfidenceSummary tabula las sugerencias por nivel de confianza.
// Una sugerencia sin muestras históricas cuenta como NoData sin importar su
// nivel nominal; el pronóstico no debería producirlas, pero el conteo se
// defiende de ese caso.
func OverallConfidenceSummary(suggestions []ProductionSuggestion) ConfidenceSummary {
	var sum ConfidenceSummary
	for _, s := range suggestions {
		if len(s.WeeklySamples) == 0 {
			sum.NoData++
			continue
		}
		switch s.Confidence {
		case ConfidenceHigh:
			sum.High++
		case ConfidenceMedium:
			sum.Medium++
		case ConfidenceLow:
			sum.Low++
		default:
			sum.NoData++
		}
	}
	return sum
}
