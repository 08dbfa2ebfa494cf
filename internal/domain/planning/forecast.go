// Package planning contiene el motor de planeación de producción de la
// panadería: pronóstico de demanda por promedio móvil ponderado del mismo día
// de la semana, y explosión de recetas a necesidades de materia prima.
//
// Todo el paquete es cómputo puro sobre snapshots de solo lectura: no hay
// I/O, no hay estado compartido y dos llamadas con las mismas entradas
// devuelven el mismo resultado.
package planning

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/horneo/planner-api/internal/domain/entity"
)

// Valores por defecto del motor de pronóstico.
var defaultWeekWeights = []float64{0.03, 0.07, 0.15, 0.20, 0.25, 0.30}

const (
	defaultWeeksToAnalyze = 6
	defaultSafetyMargin   = 0.0
)

// Config parámetros del pronóstico. Se pasa explícita en cada llamada para
// que los tests puedan ejercitar otros esquemas de ponderación sin estado
// global.
type Config struct {
	// WeeksToAnalyze semanas de historial a mirar hacia atrás (por defecto 6).
	WeeksToAnalyze int
	// WeekWeights pesos de más antigua a más reciente; debe tener
	// WeeksToAnalyze entradas o se usan los pesos por defecto.
	WeekWeights []float64
	// SafetyMargin fracción de inflado de la sugerencia (por defecto 0).
	SafetyMargin float64
}

// DefaultConfig devuelve la configuración histórica del planificador:
// 6 semanas, pesos [0.03 0.07 0.15 0.20 0.25 0.30] y margen de seguridad 0.
func DefaultConfig() Config {
	return Config{
		WeeksToAnalyze: defaultWeeksToAnalyze,
		WeekWeights:    defaultWeekWeights,
		SafetyMargin:   defaultSafetyMargin,
	}
}

func (c Config) normalized() Config {
	if c.WeeksToAnalyze <= 0 {
		c.WeeksToAnalyze = defaultWeeksToAnalyze
	}
	if len(c.WeekWeights) != c.WeeksToAnalyze {
		if c.WeeksToAnalyze == defaultWeeksToAnalyze {
			c.WeekWeights = defaultWeekWeights
		} else {
			// Pesos uniformes cuando la ventana no es la estándar y no se
			// entregó un vector compatible.
			w := make([]float64, c.WeeksToAnalyze)
			for i := range w {
				w[i] = 1.0 / float64(c.WeeksToAnalyze)
			}
			c.WeekWeights = w
		}
	}
	return c
}

// Confidence nivel cualitativo de confiabilidad del pronóstico.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Umbrales de coeficiente de variación para los niveles de confianza.
const (
	cvHighThreshold   = 0.15
	cvMediumThreshold = 0.30
)

// ProductionSuggestion sugerencia de producción derivada para un producto.
type ProductionSuggestion struct {
	ProductID         string
	ProductName       string
	Category          string
	AverageSales      float64   // promedio ponderado del historial
	SuggestedQuantity int       // entero >= 0
	Confidence        Confidence
	WeeklySamples     []float64 // muestras semanales, de más antigua a más reciente
	Variance          float64   // varianza poblacional alrededor del promedio ponderado
	HasRecipe         bool
}

// AnalyzeHistoricalSales estima la demanda de mañana para cada producto
// despachable usando un promedio móvil ponderado por recencia de las ventas
// del mismo día de la semana.
//
// La producción ocurre en targetDate; el día de ventas relevante es el día
// calendario siguiente (lo producido hoy se vende mañana). Para cada semana
// w en 1..WeeksToAnalyze se toma la fecha exactamente w semanas antes del
// día de ventas y se suma lo vendido neto del producto ese día. Una fecha
// sin registro de venta no aporta muestra; una venta registrada con cantidad
// cero sí cuenta como muestra. Productos sin ninguna muestra se omiten.
func AnalyzeHistoricalSales(
	targetDate time.Time,
	sales []entity.Sale,
	products []entity.Product,
	recipes []entity.Recipe,
	cfg Config,
) []ProductionSuggestion {
	cfg = cfg.normalized()

	// Lo producido en targetDate se vende al día siguiente.
	salesDate := targetDate.AddDate(0, 0, 1)

	// Índice fecha -> ventas de ese día, construido una sola vez.
	salesByDate := make(map[string][]entity.Sale, len(sales))
	for _, s := range sales {
		salesByDate[s.Date] = append(salesByDate[s.Date], s)
	}

	// Fechas históricas del mismo día de la semana, de más antigua a más
	// reciente: salesDate - 7w días para w = WeeksToAnalyze..1.
	dates := make([]string, 0, cfg.WeeksToAnalyze)
	for w := cfg.WeeksToAnalyze; w >= 1; w-- {
		dates = append(dates, salesDate.AddDate(0, 0, -7*w).Format(entity.DateLayout))
	}

	recipeIndex := buildRecipeNameIndex(recipes)

	suggestions := make([]ProductionSuggestion, 0, len(products))
	for _, p := range products {
		if !p.IsDispatchable() {
			continue
		}

		samples := make([]float64, 0, cfg.WeeksToAnalyze)
		for _, d := range dates {
			daySales, ok := salesByDate[d]
			if !ok || len(daySales) == 0 {
				continue // sin registro de venta ese día: no hay muestra
			}
			var qty float64
			for _, s := range daySales {
				qty += s.SoldQuantity(p.ID)
			}
			samples = append(samples, qty)
		}
		if len(samples) == 0 {
			continue // sin historial: el producto se omite del pronóstico
		}

		avg := weightedAverage(samples, cfg.WeekWeights)
		variance := varianceAround(samples, avg)

		suggested := int(math.Round(avg * (1 + cfg.SafetyMargin)))
		if suggested < 0 {
			suggested = 0
		}

		suggestions = append(suggestions, ProductionSuggestion{
			ProductID:         p.ID,
			ProductName:       p.Name,
			Category:          p.Category,
			AverageSales:      avg,
			SuggestedQuantity: suggested,
			Confidence:        confidenceFor(avg, variance),
			WeeklySamples:     samples,
			Variance:          variance,
			HasRecipe:         recipeIndex[normalizeName(p.Name)] || recipeIndex[normalizeName(p.ID)],
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.SuggestedQuantity != b.SuggestedQuantity {
			return a.SuggestedQuantity > b.SuggestedQuantity
		}
		if a.AverageSales != b.AverageSales {
			return a.AverageSales > b.AverageSales
		}
		return a.ProductName < b.ProductName
	})

	return suggestions
}

// weightedAverage promedio ponderado de las muestras (más antigua primero).
// Se usa el sufijo del vector de pesos del tamaño de la muestra, renormalizado
// para sumar 1, de modo que las semanas recientes pesan más.
func weightedAverage(samples, weights []float64) float64 {
	n := len(samples)
	if n == 0 {
		return 0
	}
	used := weights
	if n < len(weights) {
		used = weights[len(weights)-n:]
	}

	var sum float64
	for _, w := range used {
		sum += w
	}
	if sum == 0 {
		return 0
	}

	var avg float64
	for i, s := range samples {
		avg += s * (used[i] / sum)
	}
	return avg
}

// varianceAround varianza poblacional de las muestras tomando el promedio
// ponderado como punto de referencia de las desviaciones.
func varianceAround(samples []float64, ref float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var acc float64
	for _, s := range samples {
		d := s - ref
		acc += d * d
	}
	return acc / float64(len(samples))
}

// confidenceFor clasifica por coeficiente de variación: <0.15 alta,
// <0.30 media, el resto baja. Promedio cero siempre es baja.
func confidenceFor(avg, variance float64) Confidence {
	if avg == 0 {
		return ConfidenceLow
	}
	cv := math.Sqrt(variance) / avg
	switch {
	case cv < cvHighThreshold:
		return ConfidenceHigh
	case cv < cvMediumThreshold:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// buildRecipeNameIndex índice de nombres e identificadores de receta en
// minúsculas. La existencia de receta usa la misma política de comparación
// normalizada que la resolución de recetas del cálculo de materiales.
func buildRecipeNameIndex(recipes []entity.Recipe) map[string]bool {
	idx := make(map[string]bool, len(recipes)*2)
	for _, r := range recipes {
		if n := normalizeName(r.Name); n != "" {
			idx[n] = true
		}
		if id := normalizeName(r.ID); id != "" {
			idx[id] = true
		}
	}
	return idx
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
