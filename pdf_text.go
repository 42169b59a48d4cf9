package profilemd

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"codeberg.org/go-pdf/fpdf"
)

// Text engine page layout in millimetres on A4 portrait.
const (
	pdfFont       = "Helvetica"
	pdfTitleSize  = 20
	pdfBodySize   = 12
	pdfMarginLeft = 20.0
	pdfTitleY     = 30.0
	pdfBodyTop    = 50.0
	pdfBodyWidth  = 170.0
	pdfLineHeight = 7.0
	pdfPageBottom = 280.0
	pdfPageTop    = 20.0
	pdfCreator    = "profilemd"
)

// textPDFEngine lays plain text out on pages with the core Helvetica font.
// Stateless; each call builds its own document.
type textPDFEngine struct {
	now func() time.Time
}

func newTextPDFEngine(now func() time.Time) *textPDFEngine {
	if now == nil {
		now = time.Now
	}
	return &textPDFEngine{now: now}
}

// ToPDF lays src out on A4 pages. Output is reproducible for a fixed clock.
// Panics inside fpdf are converted to ErrPDFGeneration.
func (e *textPDFEngine) ToPDF(ctx context.Context, src *pdfSource) (data []byte, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = fmt.Errorf("%w: internal error: %v", ErrPDFGeneration, r)
		}
	}()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	stamp := e.now()
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)
	pdf.SetCreator(pdfCreator, false)

	layout(pdf, src)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	return buf.Bytes(), nil
}

// layout draws the title at a fixed position, then the word-wrapped body one
// line at a time, starting a new page whenever the cursor passes the bottom.
// It returns the number of body lines drawn.
func layout(pdf *fpdf.Fpdf, src *pdfSource) int {
	// The translator keeps a buffer; one per document.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	encode := func(s string) string { return tr(toCodePage(s)) }

	pdf.SetTitle(encode(src.Title), false)
	pdf.AddPage()
	pdf.SetFont(pdfFont, "", pdfTitleSize)
	pdf.Text(pdfMarginLeft, pdfTitleY, encode(src.Title))

	pdf.SetFont(pdfFont, "", pdfBodySize)
	pdf.SetCellMargin(0)
	lines := pdf.SplitLines([]byte(encode(src.Body)), pdfBodyWidth)
	y := pdfBodyTop
	for _, line := range lines {
		if y > pdfPageBottom {
			pdf.AddPage()
			y = pdfPageTop
		}
		pdf.Text(pdfMarginLeft, y, string(line))
		y += pdfLineHeight
	}
	return len(lines)
}

// Close is a no-op; the text engine holds no resources.
func (e *textPDFEngine) Close() error {
	return nil
}

// toCodePage drops characters the core fonts cannot draw (emoji, pictographs,
// variation selectors, joiners) and tidies the spacing they leave behind.
func toCodePage(s string) string {
	dropped := strings.Map(func(r rune) rune {
		switch {
		case r > 0xFFFF,
			r >= 0x2190 && r <= 0x2BFF, // arrows, technical, dingbats, misc symbols
			r == 0xFE0F, r == 0xFE0E, r == 0x200D:
			return -1
		}
		return r
	}, s)

	lines := strings.Split(dropped, "\n")
	for i, l := range lines {
		l = strings.Join(strings.FieldsFunc(l, func(r rune) bool { return r == ' ' }), " ")
		lines[i] = strings.ReplaceAll(l, " ,", ",")
	}
	return strings.Join(lines, "\n")
}
