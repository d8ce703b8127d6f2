package poster

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// ── Puerto (interfaz) ──────────────────────────────────────────────────────────

// Credentials identifica la cuenta del restaurante en Poster: el nombre de
// cuenta (subdominio de la API) y el token bearer opaco obtenido al vincular.
type Credentials struct {
	Account string
	Token   string
}

// API define el puerto de salida hacia el POS Poster. Las lecturas son GET
// idempotentes; CreateSupply es la única escritura. Para tests se inyecta un
// fake.
type API interface {
	// Storages lista los almacenes de la cuenta.
	Storages(ctx context.Context, creds Credentials) ([]Storage, error)
	// Ingredients lista el catálogo completo de ingredientes de la cuenta.
	Ingredients(ctx context.Context, creds Credentials) ([]Ingredient, error)
	// StorageLeftovers lista el stock actual de un almacén concreto.
	StorageLeftovers(ctx context.Context, creds Credentials, storageID int64) ([]StockItem, error)
	// Suppliers lista los proveedores de la cuenta.
	Suppliers(ctx context.Context, creds Credentials) ([]Supplier, error)
	// CreateSupply registra un acta de suministro (recepción) en Poster y
	// devuelve el identificador de confirmación asignado por el POS.
	CreateSupply(ctx context.Context, creds Credentials, supply SupplyRequest) (string, error)
}

// ── Tipos de respuesta ────────────────────────────────────────────────────────

// flexID acepta identificadores numéricos que Poster serializa unas veces como
// número y otras como string.
type flexID int64

func (f *flexID) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("id numérico inválido %q: %w", s, err)
	}
	*f = flexID(n)
	return nil
}

// Int64 devuelve el valor nativo.
func (f flexID) Int64() int64 { return int64(f) }

// Storage es un almacén Poster (storage.getStorages).
type Storage struct {
	ID   flexID `json:"storage_id"`
	Name string `json:"storage_name"`
}

// Ingredient es un ingrediente del catálogo Poster (menu.getIngredients).
type Ingredient struct {
	ID       flexID `json:"ingredient_id"`
	Name     string `json:"ingredient_name"`
	Unit     string `json:"ingredient_unit"`
	Category string `json:"category_name"`
}

// StockItem es una posición del stock de un almacén (storage.getStorageLeftovers).
type StockItem struct {
	IngredientID flexID          `json:"ingredient_id"`
	Left         decimal.Decimal `json:"storage_ingredient_left"`
}

// Supplier es un proveedor Poster (storage.getSuppliers).
type Supplier struct {
	ID    flexID `json:"supplier_id"`
	Name  string `json:"supplier_name"`
	Phone string `json:"supplier_phone"`
}

// ── Tipos de escritura ────────────────────────────────────────────────────────

// SupplyItem es una línea del acta de suministro.
type SupplyItem struct {
	IngredientID int64           `json:"id"`
	Quantity     decimal.Decimal `json:"num"`
	Price        decimal.Decimal `json:"sum"`
}

// SupplyRequest es el acta de suministro a registrar en Poster al confirmar
// una entrega.
type SupplyRequest struct {
	SupplierID int64        `json:"supplier_id"`
	StorageID  int64        `json:"storage_id"`
	Date       string       `json:"date"` // formato 2006-01-02 15:04:05
	Items      []SupplyItem `json:"ingredient"`
}

// ── Error tipado ──────────────────────────────────────────────────────────────

// FetchError es el fallo tipado de una llamada al POS: red, timeout, HTTP no-2xx
// o cuerpo malformado. Nunca se interpreta como colección vacía, y para las
// transiciones locales de pedido siempre se degrada a advertencia.
type FetchError struct {
	Method     string // método de la API Poster, ej. "storage.getStorages"
	StatusCode int    // 0 si el fallo fue antes de recibir respuesta
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("poster %s: HTTP %d: %v", e.Method, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("poster %s: %v", e.Method, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
