// Package jsonstore implementa los puertos de lectura del planificador sobre
// archivos JSON planos, el equivalente del almacenamiento local del cliente
// original: una colección por archivo bajo un directorio de datos.
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/horneo/planner-api/internal/domain/entity"
)

// Nombres de archivo por colección dentro del directorio de datos.
const (
	salesFile     = "sales.json"
	productsFile  = "products.json"
	recipesFile   = "recipes.json"
	inventoryFile = "inventory.json"
)

// Store snapshot en memoria de las colecciones, cargado desde disco.
// Las lecturas son concurrentes (RWMutex); Load puede invocarse de nuevo para
// refrescar el snapshot completo.
type Store struct {
	dir string

	mu        sync.RWMutex
	sales     []entity.Sale
	products  []entity.Product
	recipes   []entity.Recipe
	inventory []entity.RawMaterial
}

// New crea el store apuntando al directorio de datos. No lee nada hasta Load.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Load lee las cuatro colecciones. Un archivo ausente equivale a una
// colección vacía; un archivo malformado sí es error.
func (s *Store) Load() error {
	var (
		sales     []saleRecord
		products  []productRecord
		recipes   []recipeRecord
		inventory []rawMaterialRecord
	)
	if err := s.readFile(salesFile, &sales); err != nil {
		return err
	}
	if err := s.readFile(productsFile, &products); err != nil {
		return err
	}
	if err := s.readFile(recipesFile, &recipes); err != nil {
		return err
	}
	if err := s.readFile(inventoryFile, &inventory); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = mapSales(sales)
	s.products = mapProducts(products)
	s.recipes = mapRecipes(recipes)
	s.inventory = mapInventory(inventory)
	return nil
}

func (s *Store) readFile(name string, out any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil // colección vacía
		}
		return fmt.Errorf("leer %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsear %s: %w", name, err)
	}
	return nil
}

// ListSales implementa repository.SalesRepository.
func (s *Store) ListSales(_ context.Context) ([]entity.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Sale, len(s.sales))
	copy(out, s.sales)
	return out, nil
}

// ListProducts implementa repository.ProductRepository.
func (s *Store) ListProducts(_ context.Context) ([]entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// ListRecipes implementa repository.RecipeRepository.
func (s *Store) ListRecipes(_ context.Context) ([]entity.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Recipe, len(s.recipes))
	copy(out, s.recipes)
	return out, nil
}

// ListRawMaterials implementa repository.InventoryRepository.
func (s *Store) ListRawMaterials(_ context.Context) ([]entity.RawMaterial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.RawMaterial, len(s.inventory))
	copy(out, s.inventory)
	return out, nil
}

// ── Registros de archivo y mapeo a entidades ─────────────────────────────────

type saleRecord struct {
	ID       string             `json:"id"`
	Date     string             `json:"date"`
	Branches []branchSaleRecord `json:"branches"`
	Changes  []saleChangeRecord `json:"changes,omitempty"`
}

type branchSaleRecord struct {
	Branch string           `json:"branch"`
	Items  []saleItemRecord `json:"items"`
}

type saleItemRecord struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    float64         `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type saleChangeRecord struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}

type productRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

type recipeRecord struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Ingredients    []ingredientRecord `json:"ingredients"`
	ExpectedYield  float64            `json:"expected_yield,omitempty"`
	IsIntermediate bool               `json:"is_intermediate,omitempty"`
}

type ingredientRecord struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

type rawMaterialRecord struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
	Branch   string          `json:"branch,omitempty"`
}

// ensureID asigna un identificador a los registros que llegan sin uno.
func ensureID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func mapSales(records []saleRecord) []entity.Sale {
	out := make([]entity.Sale, 0, len(records))
	for _, r := range records {
		sale := entity.Sale{ID: ensureID(r.ID), Date: r.Date}
		for _, b := range r.Branches {
			branch := entity.BranchSale{Branch: b.Branch}
			for _, it := range b.Items {
				branch.Items = append(branch.Items, entity.SaleItem{
					ProductID:   it.ProductID,
					ProductName: it.ProductName,
					Quantity:    it.Quantity,
					UnitPrice:   it.UnitPrice,
					Subtotal:    it.Subtotal,
				})
			}
			sale.Branches = append(sale.Branches, branch)
		}
		for _, ch := range r.Changes {
			sale.Changes = append(sale.Changes, entity.SaleChange{
				ProductID: ch.ProductID,
				Quantity:  ch.Quantity,
			})
		}
		out = append(out, sale)
	}
	return out
}

func mapProducts(records []productRecord) []entity.Product {
	out := make([]entity.Product, 0, len(records))
	for _, r := range records {
		out = append(out, entity.Product{
			ID:       ensureID(r.ID),
			Name:     r.Name,
			Category: r.Category,
		})
	}
	return out
}

func mapRecipes(records []recipeRecord) []entity.Recipe {
	out := make([]entity.Recipe, 0, len(records))
	for _, r := range records {
		recipe := entity.Recipe{
			ID:             ensureID(r.ID),
			Name:           r.Name,
			ExpectedYield:  r.ExpectedYield,
			IsIntermediate: r.IsIntermediate,
		}
		for _, ing := range r.Ingredients {
			recipe.Ingredients = append(recipe.Ingredients, entity.Ingredient{
				Name:     ing.Name,
				Quantity: ing.Quantity,
				Unit:     ing.Unit,
			})
		}
		out = append(out, recipe.Normalized())
	}
	return out
}

func mapInventory(records []rawMaterialRecord) []entity.RawMaterial {
	out := make([]entity.RawMaterial, 0, len(records))
	for _, r := range records {
		out = append(out, entity.RawMaterial{
			ID:       ensureID(r.ID),
			Name:     r.Name,
			Quantity: r.Quantity,
			Unit:     r.Unit,
			Branch:   r.Branch,
		})
	}
	return out
}
