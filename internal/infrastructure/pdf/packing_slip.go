// Package pdf genera el albarán (packing slip) de un pedido para imprimir al despachar.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda                │  Pedido #ID + Fecha + Estado │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ENVIAR A: Cliente + dirección                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | Talla | Color | Precio             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL + tracking + QR con el id del pedido                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/streetwear-admin-api/internal/application/ports"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
	"github.com/jhoicas/streetwear-admin-api/pkg/money"
)

var (
	colorPrimary = &props.Color{Red: 20, Green: 20, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ ports.PackingSlipGenerator = (*PackingSlipGenerator)(nil)

// PackingSlipGenerator implementa ports.PackingSlipGenerator usando Maroto v2.
type PackingSlipGenerator struct {
	storeName string
	formatter *money.Formatter
}

// NewPackingSlipGenerator construye el generador. formatter puede ser nil.
func NewPackingSlipGenerator(storeName string, formatter *money.Formatter) *PackingSlipGenerator {
	return &PackingSlipGenerator{storeName: storeName, formatter: formatter}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *PackingSlipGenerator) Generate(order *entity.OrderWithItems) ([]byte, error) {
	if order == nil {
		return nil, fmt.Errorf("pdf: pedido nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Packing slip "+shortID(order.ID), true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(shipToRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.itemRows(order.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.footerRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *PackingSlipGenerator) headerRow(order *entity.OrderWithItems) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(g.storeName, "Store"), props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("PACKING SLIP", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Order #"+shortID(order.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Date: "+order.CreatedAt.Format("2006-01-02"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Status: "+string(order.Status), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func shipToRow(order *entity.OrderWithItems) core.Row {
	return row.New(22).Add(
		col.New(12).Add(
			text.New("SHIP TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(order.CustomerName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(formatAddress(order.ShippingAddress), props.Text{Size: 8, Top: 12, Color: colorGray}),
			text.New(order.CustomerEmail, props.Text{Size: 8, Top: 17, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Product", 5, align.Left),
		h("Size", 2, align.Center),
		h("Color", 2, align.Center),
		h("Price", 2, align.Right),
	)
}

func (g *PackingSlipGenerator) itemRows(items []entity.OrderItemDetail) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(nonEmpty(it.ProductName, it.ProductID), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(it.Size, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(nonEmpty(it.Color, "-"), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.amount(it), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func (g *PackingSlipGenerator) footerRow(order *entity.OrderWithItems) core.Row {
	tracking := "Tracking: -"
	if order.TrackingNumber != "" {
		tracking = fmt.Sprintf("Tracking: %s (%s)", order.TrackingNumber, nonEmpty(order.TrackingCarrier, "-"))
	}
	total := order.TotalAmount.StringFixed(2)
	if g.formatter != nil {
		total = g.formatter.Format(order.TotalAmount)
	}
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(order.ID, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("TOTAL: "+total, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 4, Color: colorPrimary,
			}),
			text.New(tracking, props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
			text.New(nonEmpty(order.Notes, ""), props.Text{Size: 8, Align: align.Right, Top: 20, Color: colorGray}),
		),
	)
}

func (g *PackingSlipGenerator) amount(it entity.OrderItemDetail) string {
	if it.ProductName == "" {
		return "-"
	}
	if g.formatter != nil {
		return g.formatter.Format(it.ProductPrice)
	}
	return it.ProductPrice.StringFixed(2)
}

func formatAddress(a entity.ShippingAddress) string {
	parts := []string{a.Line1, a.Line2, a.City, a.State, a.PostalCode, a.Country}
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID primeros 8 caracteres en mayúsculas, igual que el dashboard.
func shortID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}
