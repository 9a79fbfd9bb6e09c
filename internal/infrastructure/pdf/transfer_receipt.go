// Package pdf genera el comprobante imprimible de una transferencia entre bodegas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + N° transferencia  │  Fecha               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORIGEN: código / descripción │ DESTINO: código / desc.     │
//	│  RESPONSABLE: usuario                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Código | Producto | Cantidad                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL UNIDADES + firmas                                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/pos-inventario/internal/application/transfer"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

var _ transfer.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptGenerator implementa transfer.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	company string
}

// NewMarotoReceiptGenerator construye el generador; company aparece como autor y encabezado.
func NewMarotoReceiptGenerator(company string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{company: company}
}

// GenerateTransferReceipt genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateTransferReceipt(_ context.Context, t *repository.TransferView) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("pdf: transferencia nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Transferencia %d", t.ID), true).
		WithAuthor(nonEmpty(g.company, "POS Inventario"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.company, t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(warehousesRow(t.Origin, t.Destination))
	m.AddRows(userRow(t.User))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(t.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(t.Lines))
	m.AddRows(row.New(20))
	m.AddRows(signaturesRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(company string, t *repository.TransferView) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(company, "POS Inventario"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de transferencia entre bodegas", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("TRANSFERENCIA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+strconv.FormatInt(t.ID, 10), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+t.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func warehousesRow(origin, dest entity.Warehouse) core.Row {
	block := func(title string, w entity.Warehouse) core.Col {
		return col.New(6).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(w.Code+" - "+w.Description, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New("Dirección: "+nonEmpty(w.Address, "-"), props.Text{Size: 8, Top: 12, Color: colorGray}),
		)
	}
	return row.New(18).Add(block("BODEGA DE ORIGEN", origin), block("BODEGA DE DESTINO", dest))
}

func userRow(u entity.User) core.Row {
	name := u.Name
	if u.Lastname != "" {
		name += " " + u.Lastname
	}
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Responsable: %s   |   Email: %s", nonEmpty(name, "-"), nonEmpty(u.Email, "-")),
			props.Text{Size: 8, Top: 2, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Código", 3, align.Left),
		h("Producto", 6, align.Left),
		h("Cantidad", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDetailRows(lines []repository.TransferLineView) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for i, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(l.ProductCode, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(6).Add(text.New(l.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatUnits(l.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalRow(lines []repository.TransferLineView) core.Row {
	var total int64
	for _, l := range lines {
		total += l.Quantity
	}
	return row.New(10).Add(
		col.New(8),
		col.New(2).Add(text.New("TOTAL UNIDADES:", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(2).Add(text.New(formatUnits(total), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

func signaturesRow() core.Row {
	sign := func(label string) core.Col {
		return col.New(6).Add(
			text.New("______________________________", props.Text{Size: 9, Align: align.Center}),
			text.New(label, props.Text{Size: 8, Align: align.Center, Top: 5, Color: colorGray}),
		)
	}
	return row.New(12).Add(sign("Entrega (origen)"), sign("Recibe (destino)"))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatUnits inserta puntos de miles. Ej: 25000 → "25.000", -1200 → "-1.200".
func formatUnits(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	l := len(s)
	if l <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, l+l/3)
	for i, c := range []byte(s) {
		if i > 0 && (l-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
