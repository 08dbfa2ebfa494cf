package entity

import "strings"

// NonDispatchableMarker marca en el nombre de los pseudo-productos de control
// de devoluciones, que nunca se producen ni se pronostican.
const NonDispatchableMarker = "no despachable"

// Product representa un producto del catálogo de la panadería.
type Product struct {
	ID       string
	Name     string
	Category string
}

// IsDispatchable indica si el producto es vendible/producible. Los productos
// cuyo nombre contiene "no despachable" (sin importar mayúsculas) son
// pseudo-productos y quedan fuera de cualquier pronóstico.
func (p Product) IsDispatchable() bool {
	name := strings.ToLower(strings.TrimSpace(p.Name))
	return !strings.Contains(name, NonDispatchableMarker)
}
