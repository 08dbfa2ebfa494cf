package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fecha calendario usado en todo el sistema (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Sale representa la venta consolidada de un día, con renglones por sucursal.
// Inmutable una vez registrada; el ledger de ventas es el dueño del dato.
type Sale struct {
	ID       string
	Date     string // YYYY-MM-DD
	Branches []BranchSale
	Changes  []SaleChange // devoluciones/cambios a descontar del vendido
}

// BranchSale renglones de venta de una sucursal dentro de un día.
type BranchSale struct {
	Branch string
	Items  []SaleItem
}

// SaleItem línea de venta de un producto.
type SaleItem struct {
	ProductID   string
	ProductName string
	Quantity    float64
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// SaleChange devolución o cambio registrado contra la venta del día.
type SaleChange struct {
	ProductID string
	Quantity  float64
}

// SoldQuantity devuelve la cantidad neta vendida del producto en esta venta:
// suma de renglones en todas las sucursales menos las devoluciones/cambios.
func (s Sale) SoldQuantity(productID string) float64 {
	var qty float64
	for _, b := range s.Branches {
		for _, it := range b.Items {
			if it.ProductID == productID {
				qty += it.Quantity
			}
		}
	}
	for _, ch := range s.Changes {
		if ch.ProductID == productID {
			qty -= ch.Quantity
		}
	}
	return qty
}

// ParseDate interpreta la fecha de la venta. Error si no cumple YYYY-MM-DD.
func (s Sale) ParseDate() (time.Time, error) {
	return time.Parse(DateLayout, s.Date)
}
