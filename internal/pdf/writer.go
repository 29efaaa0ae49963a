package pdf

import (
	"bytes"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/jonathan/resume-processor/internal/layout"
	"github.com/jonathan/resume-processor/internal/theme"
)

// Page geometry in points: A4 portrait, half-inch side margins and 0.3in
// top and bottom margins.
const (
	marginSide   = 36.0
	marginTopBot = 21.6

	fontFamily = "Helvetica"
	creator    = "resume-processor"
)

// creationDate is pinned so identical input renders to identical bytes.
var creationDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Writer serializes assembled documents against one theme's style catalog.
type Writer struct {
	theme  theme.Theme
	styles *theme.Catalog
}

// NewWriter builds a writer for the given theme.
func NewWriter(t theme.Theme, styles *theme.Catalog) *Writer {
	return &Writer{theme: t, styles: styles}
}

// Write lays the document's blocks onto pages and returns the PDF bytes.
// Serialization failure is the only error this stage can return; every
// upstream failure was already absorbed into the block sequence.
func (w *Writer) Write(doc *layout.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	// Resource catalogs are emitted in map order unless told to sort;
	// sorting keeps identical input rendering to identical bytes.
	pdf.SetCatalogSort(true)
	pdf.SetMargins(marginSide, marginTopBot, marginSide)
	pdf.SetAutoPageBreak(true, marginTopBot)

	pdf.SetTitle(doc.Title, false)
	pdf.SetAuthor(doc.Author, false)
	pdf.SetSubject(doc.Subject, false)
	pdf.SetKeywords(strings.Join(doc.Keywords, ", "), false)
	pdf.SetCreator(creator, false)
	pdf.SetCreationDate(creationDate)

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Every page gets a full-bleed background fill before content.
	bg := w.theme.Color(theme.RoleBackground)
	pdf.SetHeaderFunc(func() {
		pageW, pageH := pdf.GetPageSize()
		pdf.SetFillColor(bg.R, bg.G, bg.B)
		pdf.Rect(0, 0, pageW, pageH, "F")
	})
	pdf.AddPage()

	for _, block := range doc.Blocks {
		switch block.Kind {
		case layout.BlockSpacer:
			pdf.Ln(block.Height)
		case layout.BlockDivider:
			w.divider(pdf)
		case layout.BlockParagraph:
			w.paragraph(pdf, tr, block)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &WriteError{Message: "serializing document", Cause: err}
	}
	return buf.Bytes(), nil
}

func (w *Writer) divider(pdf *gofpdf.Fpdf) {
	left, _, right, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	secondary := w.theme.Color(theme.RoleSecondary)
	pdf.SetDrawColor(secondary.R, secondary.G, secondary.B)
	pdf.SetLineWidth(1)
	y := pdf.GetY()
	pdf.Line(left, y, pageW-right, y)
	pdf.Ln(5)
}

func (w *Writer) paragraph(pdf *gofpdf.Fpdf, tr func(string) string, block layout.Block) {
	style := w.styles.Get(block.Style)

	if style.SpaceBefore > 0 {
		pdf.Ln(style.SpaceBefore)
	}

	left, _, right, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - left - right

	if style.LeftIndent > 0 {
		pdf.SetLeftMargin(left + style.LeftIndent)
		pdf.SetX(left + style.LeftIndent)
		contentW -= style.LeftIndent
	}

	switch {
	case style.Boxed:
		w.setFont(pdf, style, layout.Span{})
		pdf.SetFillColor(style.FillColor.R, style.FillColor.G, style.FillColor.B)
		pdf.SetDrawColor(style.BorderColor.R, style.BorderColor.G, style.BorderColor.B)
		pdf.SetLineWidth(0.5)
		pdf.MultiCell(contentW, style.Leading, tr(block.Text()), "1", alignStr(style.Alignment), true)
	case block.RightText != "":
		w.twoColumn(pdf, tr, block, style, contentW)
	case len(block.Spans) == 1:
		w.setFont(pdf, style, block.Spans[0])
		pdf.MultiCell(contentW, style.Leading, tr(block.Spans[0].Text), "", alignStr(style.Alignment), false)
	default:
		for _, span := range block.Spans {
			w.setFont(pdf, style, span)
			pdf.Write(style.Leading, tr(span.Text))
		}
		pdf.Ln(style.Leading)
	}

	if style.LeftIndent > 0 {
		pdf.SetLeftMargin(left)
		pdf.SetX(left)
	}
	if style.SpaceAfter > 0 {
		pdf.Ln(style.SpaceAfter)
	}
}

// twoColumn draws the left spans and a right-aligned column on one line. The
// right column is sized to its text; the left column gets the remainder.
func (w *Writer) twoColumn(pdf *gofpdf.Fpdf, tr func(string) string, block layout.Block, style theme.Style, contentW float64) {
	w.setFont(pdf, style, layout.Span{})
	rightW := pdf.GetStringWidth(tr(block.RightText)) + 2
	if rightW > contentW/2 {
		rightW = contentW / 2
	}

	x := pdf.GetX()
	y := pdf.GetY()
	for _, span := range block.Spans {
		w.setFont(pdf, style, span)
		pdf.Write(style.Leading, tr(span.Text))
	}

	w.setFont(pdf, style, layout.Span{})
	pdf.SetXY(x+contentW-rightW, y)
	pdf.CellFormat(rightW, style.Leading, tr(block.RightText), "", 1, "R", false, 0, "")
}

func (w *Writer) setFont(pdf *gofpdf.Fpdf, style theme.Style, span layout.Span) {
	var code string
	if style.Bold || span.Bold {
		code += "B"
	}
	if style.Italic || span.Italic {
		code += "I"
	}
	pdf.SetFont(fontFamily, code, style.FontSize)
	pdf.SetTextColor(style.Color.R, style.Color.G, style.Color.B)
}

func alignStr(a theme.Alignment) string {
	switch a {
	case theme.AlignCenter:
		return "C"
	case theme.AlignRight:
		return "R"
	default:
		return "L"
	}
}
