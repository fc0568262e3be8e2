package pdf

import (
	"io"
	"strconv"
	"time"

	"github.com/asvarma/vivah/internal/model"
)

// Complete renders the whole planner: a cover page followed by summary
// sections for budget, events, guests, and todos.
func Complete(w io.Writer, plan *model.WeddingPlan, now time.Time) error {
	doc := newDoc()

	// Cover page
	doc.AddPage()
	doc.SetFont("Helvetica", "B", 24)
	doc.SetTextColor(headerColor[0], headerColor[1], headerColor[2])
	doc.CellFormat(0, 200, "Wedding Planner", "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 12)
	doc.SetTextColor(100, 100, 100)
	doc.CellFormat(0, 0, "Generated on: "+now.Format("2 Jan 2006"), "", 1, "C", false, 0, "")
	doc.SetTextColor(0, 0, 0)

	doc.AddPage()
	pageHeader(doc, "Budget Summary", now)
	table(doc, contentFrom, []string{"Item", "Amount"}, []float64{90, 92},
		budgetSummaryRows(plan.TotalBudget, plan.BudgetCategories), headerColor)

	doc.AddPage()
	pageHeader(doc, "Events Schedule", now)
	eventRows := make([][]string, 0, len(plan.Events))
	for _, event := range sortedEvents(plan.Events) {
		eventRows = append(eventRows, []string{
			event.Title,
			formatDate(event.Date),
			orNotSet(event.Time),
			orNotSet(event.Venue),
		})
	}
	table(doc, contentFrom, []string{"Event", "Date", "Time", "Venue"},
		[]float64{60, 44, 24, 54}, eventRows, headerColor)

	doc.AddPage()
	pageHeader(doc, "Guest List Summary", now)
	table(doc, contentFrom, []string{"Status", "Count"}, []float64{90, 92},
		guestSummaryRows(plan.Guests), headerColor)

	doc.AddPage()
	pageHeader(doc, "To-Do List Summary", now)
	completed := 0
	for _, t := range plan.Todos {
		if t.IsCompleted {
			completed++
		}
	}
	table(doc, contentFrom, []string{"Status", "Count"}, []float64{90, 92},
		[][]string{
			{"Total Tasks", strconv.Itoa(len(plan.Todos))},
			{"Completed", strconv.Itoa(completed)},
			{"Pending", strconv.Itoa(len(plan.Todos) - completed)},
		}, headerColor)

	return finish(doc, w)
}
