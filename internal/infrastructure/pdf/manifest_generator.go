// Package pdf genera la hoja de carga de una orden de distribución.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: HOJA DE CARGA + N° Orden  │  Destino + Estado       │
//	│  Fechas de carga / despacho                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Carga | Devolución | BO         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: piezas + rendimiento en sacos (carga/devolución)   │
//	│  FIRMAS: despachó / recibió                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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

	"github.com/jhoicas/inventario-produccion/internal/application/distribution"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const dateLayout = "02/01/2006"

// ── Generator ─────────────────────────────────────────────────────────────────

var _ distribution.ManifestGenerator = (*ManifestGenerator)(nil)

// ManifestGenerator implementa distribution.ManifestGenerator usando Maroto v2.
type ManifestGenerator struct {
	company string
}

// NewManifestGenerator construye el generador. company aparece como autor del documento.
func NewManifestGenerator(company string) *ManifestGenerator {
	return &ManifestGenerator{company: company}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *ManifestGenerator) Generate(m *distribution.Manifest) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Hoja de carga #%d", m.OrderID), true).
		WithAuthor(g.company, true).
		Build()

	doc := maroto.New(cfg)

	doc.AddRows(headerRow(m))
	doc.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	doc.AddRows(tableHeaderRow())
	doc.AddRows(lineRows(m.Lines)...)

	doc.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	doc.AddRows(totalsRow(m))
	doc.AddRows(line.NewRow(12))
	doc.AddRows(signatureRow())

	out, err := doc.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar hoja de carga: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(m *distribution.Manifest) core.Row {
	dispatch := "—"
	if m.DispatchDate != nil {
		dispatch = m.DispatchDate.Format(dateLayout)
	}
	return row.New(20).Add(
		col.New(7).Add(
			text.New("HOJA DE CARGA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Orden N° "+strconv.FormatInt(m.OrderID, 10), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 9,
			}),
			text.New(fmt.Sprintf("Carga: %s   |   Despacho: %s", m.LoadDate.Format(dateLayout), dispatch), props.Text{
				Size: 8, Top: 15, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Destino", props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 1,
			}),
			text.New(m.Location, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Estado: "+m.Status, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Carga", 2, align.Right),
		h("Devolución", 2, align.Right),
		h("BO", 2, align.Right),
	)
}

func lineRows(lines []distribution.ManifestLine) []core.Row {
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		out = append(out, row.New(7).Add(
			col.New(2).Add(text.New(l.Code, props.Text{Size: 8, Top: 1})),
			col.New(4).Add(text.New(l.Name, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(strconv.Itoa(l.LoadQty), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(strconv.Itoa(l.ReturnQty), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(strconv.Itoa(l.BoQty), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return out
}

func totalsRow(m *distribution.Manifest) core.Row {
	var load, ret, bo int
	for _, l := range m.Lines {
		load += l.LoadQty
		ret += l.ReturnQty
		bo += l.BoQty
	}
	bold := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1}
	return row.New(16).Add(
		col.New(6).Add(
			text.New("Total piezas", props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}),
			text.New(fmt.Sprintf("Rendimiento: carga %s sacos   |   devolución %s sacos",
				m.LoadYield.StringFixed(1), m.ReturnYield.StringFixed(1)),
				props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
		col.New(2).Add(text.New(strconv.Itoa(load), bold)),
		col.New(2).Add(text.New(strconv.Itoa(ret), bold)),
		col.New(2).Add(text.New(strconv.Itoa(bo), bold)),
	)
}

func signatureRow() core.Row {
	sig := func(label string) core.Col {
		return col.New(6).Add(
			text.New("_____________________________", props.Text{Size: 9, Align: align.Center}),
			text.New(label, props.Text{Size: 8, Align: align.Center, Top: 5, Color: colorGray}),
		)
	}
	return row.New(12).Add(sig("Despachó"), sig("Recibió"))
}
