package pdf

import (
	"io"
	"sort"
	"time"

	"github.com/asvarma/vivah/internal/model"
)

// sortedEvents returns the events in display order: dated events ascending,
// undated events last in their original order.
func sortedEvents(events []model.Event) []model.Event {
	out := make([]model.Event, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Date, out[j].Date
		if a == "" {
			return false
		}
		if b == "" {
			return true
		}
		return a < b
	})
	return out
}

// Events renders the event schedule, one block per event.
func Events(w io.Writer, events []model.Event, now time.Time) error {
	doc := newDoc()
	doc.AddPage()
	pageHeader(doc, "Wedding Events Schedule", now)

	y := 50.0
	for i, event := range sortedEvents(events) {
		if y > breakAt || (i > 0 && i%3 == 0) {
			doc.AddPage()
			y = 20
		}

		doc.SetFont("Helvetica", "B", 14)
		doc.Text(pageLeft, y, event.Title)
		y += 8

		doc.SetFont("Helvetica", "", 12)
		doc.Text(pageLeft, y, "Date: "+formatDate(event.Date))
		y += lineHeight
		doc.Text(pageLeft, y, "Time: "+orNotSet(event.Time))
		y += lineHeight
		doc.Text(pageLeft, y, "Venue: "+orNotSet(event.Venue))
		y += lineHeight

		if event.Notes != "" {
			doc.Text(pageLeft, y, "Notes:")
			y += lineHeight
			lines := doc.SplitText(event.Notes, pageRight-pageLeft)
			for _, line := range lines {
				doc.Text(pageLeft, y, line)
				y += lineHeight
			}
			y += lineHeight
		}

		doc.Line(pageLeft, y, pageRight, y)
		y += 15
	}

	return finish(doc, w)
}
