package outline

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/structure"
)

// PDF renders the outline as a printable A4 transcript: a title header
// followed by indented bullets, with command annotations listed at the end.
func PDF(doc *structure.Document, title string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.MultiCell(0, 8, title, "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "", 11)
	for _, entry := range Flatten(doc) {
		indent := float64(entry.Depth) * 6
		pdf.SetX(pdf.GetX() + indent)
		pdf.MultiCell(190-indent, 6, "• "+entry.Text, "", "L", false)
	}

	if len(doc.Commands) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		for _, cmd := range doc.Commands {
			pdf.MultiCell(0, 5, fmt.Sprintf("%s: %s", cmd.Command, cmd.Value), "", "L", false)
		}
		pdf.SetTextColor(0, 0, 0)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
