package orders

import (
	"context"

	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/order"
)

// Actor identifica al usuario autenticado que ejecuta la operación. Sale de
// los claims del JWT; el restaurante se pasa aparte porque es el contexto de
// tenant, no un atributo del actor.
type Actor struct {
	UserID string
	Role   string
}

// PDFGenerator puerto de render de un pedido a PDF (hoja de compra imprimible).
type PDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, o *order.Order, restaurantName string) ([]byte, error)
}
