package entity

import "github.com/shopspring/decimal"

// RawMaterial existencia actual de una materia prima en la sucursal activa.
// Una entrada por materia prima; la búsqueda es por nombre sin distinguir
// mayúsculas.
type RawMaterial struct {
	ID       string
	Name     string
	Quantity decimal.Decimal
	Unit     string
	Branch   string
}
