package pdf

import (
	"io"
	"time"

	"github.com/asvarma/vivah/internal/model"
)

var categoryHeadFill = [3]int{180, 180, 180}

func budgetTotals(categories []model.BudgetCategory) (estimated, actual float64) {
	for _, cat := range categories {
		for _, item := range cat.Items {
			estimated += item.EstimatedCost
			actual += item.ActualCost
		}
	}
	return estimated, actual
}

func budgetSummaryRows(totalBudget float64, categories []model.BudgetCategory) [][]string {
	estimated, actual := budgetTotals(categories)
	return [][]string{
		{"Total Budget", formatINR(totalBudget)},
		{"Total Estimated", formatINR(estimated)},
		{"Total Spent", formatINR(actual)},
		{"Remaining", formatINR(totalBudget - actual)},
	}
}

// Budget renders the budget planner: a summary table followed by one table
// per category.
func Budget(w io.Writer, totalBudget float64, categories []model.BudgetCategory, now time.Time) error {
	doc := newDoc()
	doc.AddPage()
	pageHeader(doc, "Wedding Budget Planner", now)

	doc.SetFont("Helvetica", "B", 14)
	doc.Text(pageLeft, contentFrom, "Budget Summary")
	doc.SetFont("Helvetica", "", 12)

	y := table(doc, contentFrom+5, []string{"Item", "Amount"}, []float64{90, 92},
		budgetSummaryRows(totalBudget, categories), headerColor)

	for _, cat := range categories {
		if y > breakAt {
			doc.AddPage()
			y = 20
		}

		doc.SetFont("Helvetica", "B", 14)
		doc.Text(pageLeft, y, cat.Name)
		doc.SetFont("Helvetica", "", 12)

		rows := make([][]string, 0, len(cat.Items))
		for _, item := range cat.Items {
			paid := "No"
			if item.IsPaid {
				paid = "Yes"
			}
			rows = append(rows, []string{
				item.Name,
				formatINR(item.EstimatedCost),
				formatINR(item.ActualCost),
				paid,
				orDash(item.Notes),
			})
		}

		y = table(doc, y+5, []string{"Item", "Estimated", "Actual", "Paid", "Notes"},
			[]float64{50, 34, 34, 16, 48}, rows, categoryHeadFill)
	}

	return finish(doc, w)
}
