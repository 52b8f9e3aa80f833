// Package pdf genera el duplicado en PDF de la comanda de cocina.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────┐
//	│  HEADER: Negocio  │  N° Comanda + Fecha     │
//	│  ─────────────────────────────────────────  │
//	│  Mesa / Mesero / Cliente / Domicilio        │
//	│  ─────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Nota     │
//	│  ─────────────────────────────────────────  │
//	│  TOTAL (+ costo de domicilio si aplica)     │
//	└─────────────────────────────────────────────┘
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

	"github.com/comandapos/comanda-api/internal/application/orders"
)

var (
	colorPrimary = &props.Color{Red: 30, Green: 30, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// TicketPDFGenerator genera el duplicado de la comanda usando Maroto v2.
type TicketPDFGenerator struct{}

// NewTicketPDFGenerator construye el generador.
func NewTicketPDFGenerator() *TicketPDFGenerator { return &TicketPDFGenerator{} }

// GenerateTicketPDF genera el PDF de la comanda y devuelve sus bytes.
func (g *TicketPDFGenerator) GenerateTicketPDF(_ context.Context, ticket *orders.Ticket) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Comanda #%d", ticket.DailyNumber), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(ticket))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(contextRow(ticket))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range itemRows(ticket.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(ticket))

	if ticket.Note != "" {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Nota: "+ticket.Note, props.Text{Size: 8, Color: colorGray, Top: 2}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comanda: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: negocio (izq) y número de comanda + fecha (der).
func headerRow(t *orders.Ticket) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(t.BusinessName, "Comanda"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(t.BusinessAddress, ""), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
			text.New(nonEmpty(t.BusinessPhone, ""), props.Text{
				Size: 8, Top: 13, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMANDA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("#%d", t.DailyNumber), props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Right, Top: 6,
			}),
			text.New(t.Timestamp, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// contextRow: mesa, mesero, cliente y domicilio si aplica.
func contextRow(t *orders.Ticket) core.Row {
	height := float64(12)
	cols := []core.Component{
		text.New("Mesa: "+t.TableName, props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}),
	}
	info := ""
	if t.WaiterName != "" {
		info = "Mesero: " + t.WaiterName
	}
	if t.CustomerName != "" {
		if info != "" {
			info += "   |   "
		}
		info += "Cliente: " + t.CustomerName
	}
	if info != "" {
		cols = append(cols, text.New(info, props.Text{Size: 8, Top: 6, Color: colorGray}))
	}
	if t.IsDelivery {
		height = 17
		cols = append(cols, text.New("DOMICILIO: "+t.DeliveryAddress, props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 11,
		}))
	}
	return row.New(height).Add(col.New(12).Add(cols...))
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Nota", 3, align.Left),
	)
}

// itemRows: una fila por línea de la comanda.
func itemRows(items []orders.TicketItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				it.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(it.UnitPrice.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				it.Note,
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1, Color: colorGray},
			)),
		))
	}
	return result
}

// totalsRow: total con el costo de domicilio desglosado si aplica.
func totalsRow(t *orders.Ticket) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	if t.IsDelivery && !t.DeliveryFee.IsZero() {
		return row.New(18).Add(
			col.New(6),
			col.New(3).Add(
				label("Domicilio:"),
				text.New("TOTAL:", props.Text{
					Style: fontstyle.Bold, Size: 11, Align: align.Right, Right: 2, Top: 7,
				}),
			),
			col.New(3).Add(
				value("$"+formatMoney(t.DeliveryFee.StringFixed(0))),
				text.New("$"+formatMoney(t.Total.StringFixed(0)), props.Text{
					Style: fontstyle.Bold, Size: 11, Align: align.Right, Right: 1, Top: 7,
				}),
			),
		)
	}

	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Right: 2, Top: 1,
		})),
		col.New(3).Add(text.New("$"+formatMoney(t.Total.StringFixed(0)), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Right: 1, Top: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
