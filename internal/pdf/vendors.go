package pdf

import (
	"io"
	"time"

	"github.com/asvarma/vivah/internal/model"
)

// Vendors renders the vendor directory grouped by category, one table per
// category, preserving first-seen category order.
func Vendors(w io.Writer, vendors []model.Vendor, now time.Time) error {
	doc := newDoc()
	doc.AddPage()
	pageHeader(doc, "Wedding Vendors", now)

	var order []string
	byCategory := make(map[string][]model.Vendor)
	for _, v := range vendors {
		if _, ok := byCategory[v.Category]; !ok {
			order = append(order, v.Category)
		}
		byCategory[v.Category] = append(byCategory[v.Category], v)
	}

	y := contentFrom
	for _, category := range order {
		if y > breakAt-50 {
			doc.AddPage()
			y = 20
		}

		doc.SetFont("Helvetica", "B", 14)
		doc.Text(pageLeft, y, category)
		doc.SetFont("Helvetica", "", 12)

		rows := make([][]string, 0, len(byCategory[category]))
		for _, v := range byCategory[category] {
			rows = append(rows, []string{
				v.Name,
				orDash(v.Phone),
				orDash(v.Email),
				formatINR(v.Cost),
				orDash(v.Notes),
			})
		}

		y = table(doc, y+5, []string{"Name", "Phone", "Email", "Cost", "Notes"},
			[]float64{40, 30, 48, 30, 34}, rows, headerColor)
	}

	return finish(doc, w)
}
