// Package pdf renders read-only snapshots of the wedding plan into
// paginated PDF documents: one formatter per sub-collection plus a
// complete-planner document. Formatters never feed back into the store.
package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	pageLeft    = 14.0
	pageRight   = 196.0
	breakAt     = 250.0
	lineHeight  = 6.0
	tableRowH   = 7.0
	contentFrom = 45.0
)

// Wedding maroon, used for headers throughout.
var headerColor = [3]int{128, 0, 32}

func newDoc() *fpdf.Fpdf {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 10)
	return doc
}

// pageHeader draws the standard section header: title, generation date, and
// a rule, then restores body text settings.
func pageHeader(doc *fpdf.Fpdf, title string, now time.Time) {
	doc.SetFont("Helvetica", "B", 20)
	doc.SetTextColor(headerColor[0], headerColor[1], headerColor[2])
	doc.Text(pageLeft, 22, title)
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(100, 100, 100)
	doc.Text(pageLeft, 30, fmt.Sprintf("Generated on: %s", now.Format("2 Jan 2006")))
	doc.Line(pageLeft, 35, pageRight, 35)
	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", 12)
}

// table draws a striped table with a colored header row starting at y and
// returns the y position below the table.
func table(doc *fpdf.Fpdf, y float64, head []string, widths []float64, rows [][]string, headFill [3]int) float64 {
	doc.SetY(y)
	doc.SetX(pageLeft)

	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(headFill[0], headFill[1], headFill[2])
	doc.SetTextColor(255, 255, 255)
	for i, h := range head {
		doc.CellFormat(widths[i], tableRowH, h, "", 0, "L", true, 0, "")
	}
	doc.Ln(tableRowH)

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(0, 0, 0)
	for r, row := range rows {
		if doc.GetY() > breakAt {
			doc.AddPage()
			doc.SetY(20)
		}
		doc.SetX(pageLeft)
		fill := r%2 == 1
		doc.SetFillColor(240, 240, 240)
		for i, cell := range row {
			doc.CellFormat(widths[i], tableRowH, cell, "", 0, "L", fill, 0, "")
		}
		doc.Ln(tableRowH)
	}

	doc.SetFont("Helvetica", "", 12)
	return doc.GetY() + 10
}

// finish flushes the document to w, surfacing any accumulated fpdf error.
func finish(doc *fpdf.Fpdf, w io.Writer) error {
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
