// Package pdf implementa la hoja de compra imprimible de un pedido: el papel
// que el repartidor o el proveedor reciben en mano.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Restaurante  │  Sección + Estado + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Unidad | Producto | Proveedor | Recibido     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTA + total de líneas                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/order"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// statusLabels etiquetas mostradas en papel.
var statusLabels = map[order.Status]string{
	order.StatusPending:   "BORRADOR",
	order.StatusSent:      "ENVIADO",
	order.StatusDelivered: "ENTREGADO",
	order.StatusCancelled: "CANCELADO",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoOrderPDFGenerator implementa orders.PDFGenerator usando Maroto v2.
type MarotoOrderPDFGenerator struct{}

// NewMarotoOrderPDFGenerator construye el generador.
func NewMarotoOrderPDFGenerator() *MarotoOrderPDFGenerator { return &MarotoOrderPDFGenerator{} }

// GenerateOrderPDF genera el PDF y devuelve sus bytes.
func (g *MarotoOrderPDFGenerator) GenerateOrderPDF(_ context.Context, o *order.Order, restaurantName string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Pedido de abastecimiento", true).
		WithAuthor(restaurantName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(o, restaurantName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(o.Payload.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(o))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: restaurante (izq) y sección + estado + fecha (der).
func headerRow(o *order.Order, restaurantName string) core.Row {
	fecha := o.CreatedAt.Format("02/01/2006 15:04")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(restaurantName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Pedido de abastecimiento", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(o.Payload.Department, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New(statusLabels[o.Status], props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 8, Color: colorPrimary,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de ítems.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Right),
		h("Unidad", 1, align.Center),
		h("Producto", 5, align.Left),
		h("Proveedor", 2, align.Left),
		h("Recibido", 2, align.Right),
	)
}

// tableItemRows: una fila por ítem del pedido.
func tableItemRows(items []order.Item) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		received := "—"
		if it.ReceivedQuantity != nil {
			received = it.ReceivedQuantity.String()
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				it.Unit,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				it.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(it.SupplierName, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				received,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// footerRow: nota del pedido y total de líneas.
func footerRow(o *order.Order) core.Row {
	return row.New(12).Add(
		col.New(8).Add(
			text.New("Nota: "+nonEmpty(o.Payload.Note, "—"), props.Text{
				Size: 8, Top: 2, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("%d líneas", len(o.Payload.Items)), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
