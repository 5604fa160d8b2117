package sink

import (
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/guttosm/cryptoreport/internal/domain/models"
	"github.com/guttosm/cryptoreport/internal/logger"
)

const (
	pageMargin  = 15.0
	cellWidth   = 200.0
	lineHeight  = 10.0
	fontFamily  = "Arial"
	titleSize   = 16.0
	bodySize    = 12.0
	titleAlign  = "C"
	newLineNext = 1
)

// PDFReport renders a Document onto A4 pages.
type PDFReport struct{}

// NewPDFReport returns the PDF report writer.
func NewPDFReport() *PDFReport {
	return &PDFReport{}
}

// WriteReport renders doc to path, replacing any existing file.
//
// Layout: A4 portrait with automatic page breaks (15 mm bottom margin). Title
// sections use Arial bold 16 centred; body sections Arial 12. Each section is
// one 10 mm cell followed by its SpaceAfter gap.
func (p *PDFReport) WriteReport(doc models.Document, path string) error {
	pdf := render(doc)
	if err := pdf.Error(); err != nil {
		return err
	}

	if err := writeFileAtomic(path, func(w io.Writer) error { return pdf.Output(w) }); err != nil {
		return err
	}

	logger.L().Info().Str("path", path).Int("sections", len(doc.Sections)).Msg("report written")
	return nil
}

func render(doc models.Document) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("Cryptocurrency Market Analysis Report", true)
	pdf.AddPage()

	// Core fonts are cp1252; asset names may carry other characters.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, s := range doc.Sections {
		switch s.Style {
		case models.StyleTitle:
			pdf.SetFont(fontFamily, "B", titleSize)
			pdf.CellFormat(cellWidth, lineHeight, tr(s.Text), "", newLineNext, titleAlign, false, 0, "")
		default:
			pdf.SetFont(fontFamily, "", bodySize)
			pdf.CellFormat(cellWidth, lineHeight, tr(s.Text), "", newLineNext, "", false, 0, "")
		}
		if s.SpaceAfter > 0 {
			pdf.Ln(s.SpaceAfter)
		}
	}
	return pdf
}
