// Package pdf genera los documentos de SiPP (informe de pedidos, acta de conformidad,
// informe mensual y PDF de emergencia) sobre Maroto v2.
//
// Todos los documentos comparten el mismo Builder:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Institución + título  │  Periodo / código + fecha   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BLOQUES: sección | clave/valor | tabla | párrafo | firmas   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda SiPP                                        │
//	└─────────────────────────────────────────────────────────────┘
//
// Cabecera y pie se registran una vez; Maroto los repite en cada página.
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/signature"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLight   = &props.Color{Red: 235, Green: 241, Blue: 247}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const footerLegend = "Documento generado por SiPP - Sistema Integral de Pedidos para Proyectos"

var printer = message.NewPrinter(language.Spanish)

// Header datos de la cabecera común.
type Header struct {
	Institution string
	Title       string
	Reference   string // periodo o código del documento
	GeneratedAt time.Time
}

// Column columna de una tabla; Size en la rejilla de 12 de Maroto.
type Column struct {
	Label string
	Size  int
	Align align.Type
}

// KeyValue par etiqueta/valor del bloque clave/valor.
type KeyValue struct {
	Label string
	Value string
}

// Builder compone un documento A4 bloque a bloque.
type Builder struct {
	m   core.Maroto
	err error
}

// NewBuilder crea el documento y registra cabecera y pie.
func NewBuilder(h Header) *Builder {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(h.Title, true).
		WithAuthor(h.Institution, true).
		Build()

	b := &Builder{m: maroto.New(cfg)}
	if err := b.m.RegisterHeader(headerRows(h)...); err != nil {
		b.err = fmt.Errorf("pdf: registrar cabecera: %w", err)
	}
	if err := b.m.RegisterFooter(footerRows()...); err != nil && b.err == nil {
		b.err = fmt.Errorf("pdf: registrar pie: %w", err)
	}
	return b
}

func headerRows(h Header) []core.Row {
	return []core.Row{
		row.New(18).Add(
			col.New(7).Add(
				text.New(h.Institution, props.Text{
					Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
				}),
				text.New(h.Title, props.Text{Size: 10, Top: 9}),
			),
			col.New(5).Add(
				text.New(h.Reference, props.Text{
					Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
				}),
				text.New("Generado: "+h.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
					Size: 8, Align: align.Right, Top: 10, Color: colorGray,
				}),
			),
		),
		line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}),
	}
}

func footerRows() []core.Row {
	return []core.Row{
		line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}),
		text.NewRow(6, footerLegend, props.Text{Size: 7, Align: align.Center, Color: colorGray}),
	}
}

// Section título de sección.
func (b *Builder) Section(title string) *Builder {
	b.m.AddRows(
		row.New(3),
		text.NewRow(7, title, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 1}),
	)
	return b
}

// KeyValues rejilla de dos pares por fila.
func (b *Builder) KeyValues(fields []KeyValue) *Builder {
	for i := 0; i < len(fields); i += 2 {
		r := row.New(6)
		for _, f := range fields[i:min(i+2, len(fields))] {
			r.Add(
				col.New(2).Add(text.New(f.Label+":", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
				col.New(4).Add(text.New(f.Value, props.Text{Size: 8, Top: 1})),
			)
		}
		b.m.AddRows(r)
	}
	return b
}

// Table tabla con fila de cabecera; cada fila de rows debe tener len(cols) celdas.
func (b *Builder) Table(cols []Column, rows [][]string) *Builder {
	header := row.New(7).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
	for _, c := range cols {
		header.Add(col.New(c.Size).Add(text.New(c.Label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.Align,
			Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	b.m.AddRows(header)

	for i, cells := range rows {
		r := row.New(6)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorLight})
		}
		for j, c := range cols {
			value := ""
			if j < len(cells) {
				value = cells[j]
			}
			r.Add(col.New(c.Size).Add(text.New(value, props.Text{
				Size: 8, Align: c.Align, Top: 1, Left: 1, Right: 1,
			})))
		}
		b.m.AddRows(r)
	}
	return b
}

// Total línea destacada alineada a la derecha.
func (b *Builder) Total(label, value string) *Builder {
	b.m.AddRows(
		line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}),
		row.New(8).Add(
			col.New(8).Add(text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 1,
			})),
			col.New(4).Add(text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 1,
			})),
		),
	)
	return b
}

// Paragraph texto libre; Maroto parte las líneas largas.
func (b *Builder) Paragraph(s string) *Builder {
	if s == "" {
		return b
	}
	b.m.AddAutoRow(col.New(12).Add(text.New(s, props.Text{Size: 9, Top: 1, Bottom: 1})))
	return b
}

// Signatures bloque de firmas repartido en la rejilla.
func (b *Builder) Signatures(labels ...string) *Builder {
	if len(labels) == 0 {
		return b
	}
	size := 12 / len(labels)
	cols := make([]core.Col, 0, len(labels))
	for _, l := range labels {
		cols = append(cols, signature.NewCol(size, l, props.Signature{FontSize: 8}))
	}
	b.m.AddRows(row.New(10), row.New(25).Add(cols...))
	return b
}

// EmptyState aviso centrado en lugar de la tabla.
func (b *Builder) EmptyState(msg string) *Builder {
	b.m.AddRows(
		row.New(10),
		text.NewRow(12, msg, props.Text{
			Style: fontstyle.Italic, Size: 11, Align: align.Center, Color: colorGray, Top: 3,
		}),
	)
	return b
}

// Bytes genera el PDF.
func (b *Builder) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	doc, err := b.m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

// Money formatea un importe con separadores del español: 1234567.5 → "$1.234.567,50".
func Money(d decimal.Decimal) string {
	return printer.Sprintf("$%.2f", d.Round(2).InexactFloat64())
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
