package entity

import "github.com/shopspring/decimal"

// Ingredient línea de receta: materia prima, cantidad y unidad de compra.
type Ingredient struct {
	Name     string
	Quantity decimal.Decimal
	Unit     string
}

// Recipe representa la receta de un producto (o de un bien intermedio).
// ExpectedYield es el número de unidades vendibles que produce una tanda;
// IsIntermediate marca salidas que son a su vez materia prima (ej. almíbar).
type Recipe struct {
	ID             string
	Name           string
	Ingredients    []Ingredient
	ExpectedYield  float64
	IsIntermediate bool
}

// Normalized devuelve la receta con los campos opcionales resueltos a sus
// valores por defecto: rendimiento 1 si viene ausente o no positivo.
func (r Recipe) Normalized() Recipe {
	if r.ExpectedYield <= 0 {
		r.ExpectedYield = 1
	}
	return r
}
