package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de pedido en entrada.
type OrderItemRequest struct {
	Name               string          `json:"name" validate:"required,min=1,max=200"`
	Quantity           decimal.Decimal `json:"quantity" validate:"required"`
	Unit               string          `json:"unit" validate:"required,min=1,max=20"`
	Category           string          `json:"category" validate:"omitempty,max=200"`
	SupplierID         *string         `json:"supplier_id" validate:"omitempty,uuid"`
	SupplierName       string          `json:"supplier_name" validate:"omitempty,max=200"`
	PosterIngredientID *int64          `json:"poster_ingredient_id"`
}

// CreateOrderRequest entrada para crear un pedido. Nace siempre en pending.
type CreateOrderRequest struct {
	Department string             `json:"department" validate:"required,min=1,max=200"`
	Note       string             `json:"note" validate:"omitempty,max=2000"`
	Items      []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderRequest cambio parcial de un pedido: los campos omitidos conservan
// su valor anterior. Items no nil reemplaza la lista completa.
type UpdateOrderRequest struct {
	Status     *string            `json:"status" validate:"omitempty,oneof=pending sent delivered cancelled"`
	Department *string            `json:"department" validate:"omitempty,min=1,max=200"`
	Note       *string            `json:"note" validate:"omitempty,max=2000"`
	Items      []OrderItemRequest `json:"items" validate:"omitempty,dive"`
}

// ItemOverrideRequest corrección por ítem de una actualización masiva.
// Nombre vacío empareja por posición.
type ItemOverrideRequest struct {
	Name     string           `json:"name" validate:"omitempty,max=200"`
	Quantity *decimal.Decimal `json:"quantity"`
	Price    *decimal.Decimal `json:"price"`
}

// BulkUpdateOrdersRequest lleva varios pedidos al mismo estado destino en una
// sola llamada. Las correcciones por ítem van keyed por ID de pedido: una
// corrección solo toca el pedido al que pertenece, nunca a los demás del lote.
type BulkUpdateOrdersRequest struct {
	OrderIDs  []string                         `json:"order_ids" validate:"required,min=1,dive,uuid"`
	Status    string                           `json:"status" validate:"required,oneof=pending sent delivered cancelled"`
	Overrides map[string][]ItemOverrideRequest `json:"overrides" validate:"omitempty,dive,dive"`
}

// ListOrdersRequest filtros del listado de pedidos.
type ListOrdersRequest struct {
	Status []string `query:"status" validate:"omitempty,dive,oneof=pending sent delivered cancelled"`
	Limit  int      `query:"limit" validate:"min=0,max=100"`
	Offset int      `query:"offset" validate:"min=0"`
}

// OrderItemResponse línea de pedido en salida.
type OrderItemResponse struct {
	Name               string           `json:"name"`
	Quantity           decimal.Decimal  `json:"quantity"`
	Unit               string           `json:"unit"`
	Category           string           `json:"category,omitempty"`
	SupplierID         *string          `json:"supplier_id,omitempty"`
	SupplierName       string           `json:"supplier_name,omitempty"`
	PosterIngredientID *int64           `json:"poster_ingredient_id,omitempty"`
	ReceivedQuantity   *decimal.Decimal `json:"received_quantity,omitempty"`
	ReceivedPrice      *decimal.Decimal `json:"received_price,omitempty"`
}

// OrderResponse salida de un pedido. Warnings acumula los efectos secundarios
// no fatales (ej. el alta de suministro en el POS falló): la transición local
// sigue siendo exitosa.
type OrderResponse struct {
	ID              string              `json:"id"`
	Status          string              `json:"status"`
	Department      string              `json:"department"`
	Note            string              `json:"note,omitempty"`
	Items           []OrderItemResponse `json:"items"`
	CreatedByRole   string              `json:"created_by_role"`
	CreatedByUserID string              `json:"created_by_user_id"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	DeliveredAt     *time.Time          `json:"delivered_at,omitempty"`
	Warnings        []string            `json:"warnings,omitempty"`
}

// OrderListResponse listado paginado de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// BulkFailure fallo individual dentro de una actualización masiva.
type BulkFailure struct {
	OrderID string `json:"order_id"`
	Error   string `json:"error"`
}

// BulkUpdateOrdersResponse resultado de una actualización masiva: cuántos se
// escribieron, qué pedidos fallaron y las advertencias de efectos secundarios.
type BulkUpdateOrdersResponse struct {
	Updated  int           `json:"updated"`
	Failed   []BulkFailure `json:"failed,omitempty"`
	Warnings []string      `json:"warnings,omitempty"`
}
