package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	margin     = 10.0
	lineHeight = 4.5
	cellPad    = 1.2
	fontFamily = "Helvetica"
	bodySize   = 8
)

// Column widths in mm; they add up to the printable width of landscape A4.
var columnWidths = []float64{15, 55, 40, 32, 95, 40}

type rgb struct{ r, g, b int }

var (
	headerFill  = rgb{44, 62, 80}
	stripeFills = [2]rgb{{255, 255, 255}, {242, 242, 242}}
	gridColor   = rgb{200, 200, 200}
)

// Render lays t out as a landscape A4 PDF and writes it to w. Nothing is written when
// the document cannot be built.
func Render(w io.Writer, t *Table) error {
	pdf, err := build(t)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func build(t *Table) (*fpdf.Fpdf, error) {
	if len(t.Header) != len(columnWidths) {
		return nil, fmt.Errorf("report: %d header columns, layout has %d", len(t.Header), len(columnWidths))
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.SetTitle(t.Title, true)
	pdf.SetCreator("realtyapi", true)
	if !t.GeneratedAt.IsZero() {
		pdf.SetCreationDate(t.GeneratedAt)
	}
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		drawBand(pdf, tr, t)
		drawHeaderRow(pdf, tr, t.Header)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-margin)
		pdf.SetFont(fontFamily, "I", 7)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 4, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	_, pageHeight := pdf.GetPageSize()
	bottom := pageHeight - margin - 6
	bodyTop := pdf.GetY()
	perPage := linesFitting(bottom - bodyTop)
	if perPage < 1 {
		return nil, fmt.Errorf("report: no room for body rows below y=%.1fmm", bodyTop)
	}

	for i, row := range t.Rows {
		pdf.SetFont(fontFamily, "", bodySize)
		cells := make([][]string, len(row))
		lines := 1
		for c, text := range row {
			if c == 0 {
				cells[c] = []string{tr(text)}
				continue
			}
			cells[c] = wrap(pdf, tr, text, columnWidths[c])
			if len(cells[c]) > lines {
				lines = len(cells[c])
			}
		}

		// A row that fits on one page is never split; a taller one continues on the
		// following pages with the same fill.
		fill := stripeFills[i%2]
		for start := 0; start < lines; {
			remaining := lines - start
			avail := linesFitting(bottom - pdf.GetY())
			if avail < remaining && (avail < 1 || (start == 0 && remaining <= perPage && pdf.GetY() > bodyTop)) {
				pdf.AddPage()
				pdf.SetFont(fontFamily, "", bodySize)
				continue
			}
			n := min(avail, remaining)
			drawRow(pdf, sliceLines(cells, start, n), float64(n)*lineHeight+2*cellPad, fill)
			start += n
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("build report: %w", pdf.Error())
	}
	return pdf, nil
}

func drawBand(pdf *fpdf.Fpdf, tr func(string) string, t *Table) {
	pdf.SetTextColor(33, 33, 33)
	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(0, 8, tr(t.Title), "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 8)
	pdf.SetTextColor(100, 100, 100)
	sub := fmt.Sprintf("%d inquiries", len(t.Rows))
	if !t.GeneratedAt.IsZero() {
		sub = fmt.Sprintf("Generated %s - %s", FormatDate(&t.GeneratedAt), sub)
	}
	pdf.CellFormat(0, 5, tr(sub), "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func drawHeaderRow(pdf *fpdf.Fpdf, tr func(string) string, header []string) {
	pdf.SetFont(fontFamily, "B", 9)
	pdf.SetFillColor(headerFill.r, headerFill.g, headerFill.b)
	pdf.SetDrawColor(headerFill.r, headerFill.g, headerFill.b)
	pdf.SetTextColor(255, 255, 255)
	for c, title := range header {
		pdf.CellFormat(columnWidths[c], 7, tr(title), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

func drawRow(pdf *fpdf.Fpdf, cells [][]string, height float64, fill rgb) {
	x, y := margin, pdf.GetY()
	pdf.SetFillColor(fill.r, fill.g, fill.b)
	pdf.SetDrawColor(gridColor.r, gridColor.g, gridColor.b)
	for c, lines := range cells {
		w := columnWidths[c]
		pdf.Rect(x, y, w, height, "FD")
		for l, line := range lines {
			pdf.SetXY(x, y+cellPad+float64(l)*lineHeight)
			pdf.CellFormat(w, lineHeight, line, "", 0, "L", false, 0, "")
		}
		x += w
	}
	pdf.SetXY(margin, y+height)
}

func linesFitting(space float64) int {
	return int((space - 2*cellPad) / lineHeight)
}

// sliceLines returns lines [start, start+n) of every cell; shorter cells yield fewer lines.
func sliceLines(cells [][]string, start, n int) [][]string {
	out := make([][]string, len(cells))
	for c, lines := range cells {
		if start >= len(lines) {
			continue
		}
		out[c] = lines[start:min(start+n, len(lines))]
	}
	return out
}

// wrap splits text into lines fitting width using the current font. Explicit newlines
// always start a new line. Returned lines are already translated to the font encoding.
func wrap(pdf *fpdf.Fpdf, tr func(string) string, text string, width float64) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		encoded := tr(para)
		if encoded == "" {
			out = append(out, "")
			continue
		}
		for _, line := range pdf.SplitText(widen(encoded), width) {
			out = append(out, narrow(line))
		}
	}
	if len(out) == 0 {
		out = []string{""}
	}
	return out
}

// widen maps each cp1252 byte to the rune with the same value so SplitText measures
// single-byte glyph widths.
func widen(s string) string {
	r := make([]rune, len(s))
	for i := 0; i < len(s); i++ {
		r[i] = rune(s[i])
	}
	return string(r)
}

func narrow(s string) string {
	var b strings.Builder
	for _, r := range s {
		b.WriteByte(byte(r))
	}
	return b.String()
}
