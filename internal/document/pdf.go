package document

import (
	"strings"

	"github.com/go-pdf/fpdf"
)

// pdfWriter lays the minutes out line by line in a core font, one
// multi-cell per line.
type pdfWriter struct {
	fontFamily string
	fontSize   float64
	lineHeight float64
	margin     float64
}

// Write ignores the title: the minutes carry their own heading.
func (w *pdfWriter) Write(_, markdown, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, w.margin)
	pdf.AddPage()
	pdf.SetFont(w.fontFamily, "", w.fontSize)

	// Core fonts are cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, line := range strings.Split(markdown, "\n") {
		pdf.MultiCell(0, w.lineHeight, tr(line), "", "", false)
	}

	return pdf.OutputFileAndClose(path)
}

func (w *pdfWriter) Format() string {
	return "pdf"
}
