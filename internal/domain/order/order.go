package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Errores del ciclo de vida de pedidos.
var (
	ErrEmptyItems   = errors.New("el pedido debe tener al menos un ítem")
	ErrInvalidItem  = errors.New("ítem de pedido inválido")
	ErrInvalidState = errors.New("transición de estado no permitida")
)

// Item es una línea del pedido, embebida en el payload JSONB (no es una fila
// propia). ReceivedQuantity y ReceivedPrice solo se llenan al confirmar la
// entrega.
type Item struct {
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

// Payload es el cuerpo estructurado del pedido. Se persiste como un solo blob
// JSONB: la lista de ítems se lee y escribe atómicamente sin join, a costa de
// que las consultas cross-pedido por ítem sean fan-out en la aplicación.
type Payload struct {
	Department string `json:"department"` // nombre de la sección (ej. "Cocina")
	Note       string `json:"note,omitempty"`
	Items      []Item `json:"items"`
}

// Order es la cabecera del pedido más su payload.
type Order struct {
	ID              string
	RestaurantID    string
	Status          Status
	Payload         Payload
	CreatedByRole   string
	CreatedByUserID string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeliveredAt     *time.Time
}

// ValidatePayload valida el payload de creación: al menos un ítem y, por ítem,
// nombre no vacío, cantidad positiva y unidad no vacía.
func ValidatePayload(p Payload) error {
	if len(p.Items) == 0 {
		return ErrEmptyItems
	}
	for i, it := range p.Items {
		if it.Name == "" {
			return fmt.Errorf("%w: ítem %d sin nombre", ErrInvalidItem, i)
		}
		if !it.Quantity.IsPositive() {
			return fmt.Errorf("%w: ítem %q con cantidad no positiva", ErrInvalidItem, it.Name)
		}
		if it.Unit == "" {
			return fmt.Errorf("%w: ítem %q sin unidad", ErrInvalidItem, it.Name)
		}
	}
	return nil
}

// ItemOverride es la corrección por ítem que acompaña a una actualización
// masiva. Solo cantidad y precio son sobreescribibles; nombre, unidad,
// proveedor e identificadores externos pasan intactos desde el ítem original.
type ItemOverride struct {
	Name     string           `json:"name,omitempty"` // clave de emparejamiento; vacío = por posición
	Quantity *decimal.Decimal `json:"quantity,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
}

// ApplyOverrides fusiona las correcciones sobre la lista de ítems según el
// estado destino:
//
//   - destino delivered: Quantity alimenta ReceivedQuantity y Price alimenta
//     ReceivedPrice (así se registra "lo que de verdad llegó" sin perder lo
//     pedido originalmente);
//   - cualquier otro destino: Quantity reemplaza la cantidad solicitada (el
//     flujo "ajustar cantidades y enviar").
//
// Los ítems sin corrección pasan sin cambios. El emparejamiento es por nombre
// exacto y, si la corrección no trae nombre, por posición.
func ApplyOverrides(items []Item, overrides []ItemOverride, target Status) []Item {
	if len(overrides) == 0 {
		return items
	}
	merged := make([]Item, len(items))
	copy(merged, items)

	for i, ov := range overrides {
		idx := -1
		if ov.Name != "" {
			for j := range merged {
				if merged[j].Name == ov.Name {
					idx = j
					break
				}
			}
		} else if i < len(merged) {
			idx = i
		}
		if idx < 0 {
			continue
		}
		if target == StatusDelivered {
			if ov.Quantity != nil {
				q := *ov.Quantity
				merged[idx].ReceivedQuantity = &q
			}
			if ov.Price != nil {
				p := *ov.Price
				merged[idx].ReceivedPrice = &p
			}
		} else if ov.Quantity != nil {
			merged[idx].Quantity = *ov.Quantity
		}
	}
	return merged
}

// MergePayload aplica un cambio parcial de payload estilo COALESCE: los campos
// omitidos conservan su valor anterior, nunca se anulan por defecto.
func MergePayload(current Payload, department, note *string, items []Item) Payload {
	out := current
	if department != nil {
		out.Department = *department
	}
	if note != nil {
		out.Note = *note
	}
	if items != nil {
		out.Items = items
	}
	return out
}
