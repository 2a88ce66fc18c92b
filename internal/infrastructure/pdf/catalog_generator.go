// Package pdf genera el catálogo de productos en PDF usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: ID | Producto | Categoría | Precio | Stock | Valor  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de productos                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/gestioncom-api/internal/application/product"
	"github.com/jhoicas/gestioncom-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// moneyPrinter formatea números con separador de miles es-CO ("1.000.000").
var moneyPrinter = message.NewPrinter(language.MustParse("es-CO"))

var _ product.CatalogPDFGenerator = (*CatalogGenerator)(nil)

// CatalogGenerator implementa product.CatalogPDFGenerator usando Maroto v2.
type CatalogGenerator struct{}

// NewCatalogGenerator construye el generador.
func NewCatalogGenerator() *CatalogGenerator { return &CatalogGenerator{} }

// GenerateCatalog genera el PDF del catálogo y devuelve sus bytes.
func (g *CatalogGenerator) GenerateCatalog(_ context.Context, products []entity.Product) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Catálogo de productos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, p := range products {
		m.AddRows(tableRow(p))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(products)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow() core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(8).Add(
			text.New("CATÁLOGO DE PRODUCTOS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 5, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(size int, label string, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Color: colorPrimary,
		}))
	}
	return row.New(7).Add(
		header(1, "ID", align.Left),
		header(4, "Producto", align.Left),
		header(2, "Categoría", align.Left),
		header(2, "Precio", align.Right),
		header(1, "Stock", align.Right),
		header(2, "Valor total", align.Right),
	)
}

func tableRow(p entity.Product) core.Row {
	categoria := p.CategoryName
	if categoria == "" {
		categoria = "sin categoria"
	}
	precio := decimal.NewFromInt(p.PriceCents).Div(decimal.NewFromInt(100))
	valorTotal := precio.Mul(decimal.NewFromInt(p.Stock))

	cell := func(size int, value string, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1}))
	}
	return row.New(6).Add(
		cell(1, fmt.Sprintf("%d", p.ID), align.Left),
		cell(4, p.Name, align.Left),
		cell(2, categoria, align.Left),
		cell(2, "$"+formatMoney(precio), align.Right),
		cell(1, fmt.Sprintf("%d", p.Stock), align.Right),
		cell(2, "$"+formatMoney(valorTotal), align.Right),
	)
}

func footerRow(total int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total: %d productos", total), props.Text{
			Size: 8, Color: colorGray, Top: 2,
		}),
	))
}

// formatMoney renderiza un decimal con separador de miles es-CO y dos decimales.
func formatMoney(d decimal.Decimal) string {
	entero := d.IntPart()
	centavos := d.Sub(decimal.NewFromInt(entero)).Mul(decimal.NewFromInt(100)).Abs().IntPart()
	return moneyPrinter.Sprintf("%d", entero) + fmt.Sprintf(",%02d", centavos)
}
