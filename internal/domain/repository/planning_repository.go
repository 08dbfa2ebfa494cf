package repository

import (
	"context"

	"github.com/horneo/planner-api/internal/domain/entity"
)

// Puertos de lectura del motor de planeación (DIP). El motor consume
// snapshots de solo lectura; nunca escribe a través de estos puertos.

// SalesRepository acceso al ledger de ventas históricas.
type SalesRepository interface {
	ListSales(ctx context.Context) ([]entity.Sale, error)
}

// ProductRepository acceso al catálogo de productos.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
}

// RecipeRepository acceso al recetario.
type RecipeRepository interface {
	ListRecipes(ctx context.Context) ([]entity.Recipe, error)
}

// InventoryRepository acceso a las existencias de materia prima de la
// sucursal activa.
type InventoryRepository interface {
	ListRawMaterials(ctx context.Context) ([]entity.RawMaterial, error)
}
