package pdf

import (
	"io"
	"strconv"
	"time"

	"github.com/asvarma/vivah/internal/model"
)

func rsvpCounts(guests []model.Guest) (confirmed, declined, pending int) {
	for _, g := range guests {
		switch g.RSVPStatus {
		case model.RSVPConfirmed:
			confirmed++
		case model.RSVPDeclined:
			declined++
		default:
			pending++
		}
	}
	return confirmed, declined, pending
}

func guestSummaryRows(guests []model.Guest) [][]string {
	confirmed, declined, pending := rsvpCounts(guests)
	return [][]string{
		{"Total Guests", strconv.Itoa(len(guests))},
		{"Confirmed", strconv.Itoa(confirmed)},
		{"Declined", strconv.Itoa(declined)},
		{"Pending", strconv.Itoa(pending)},
	}
}

// Guests renders the guest list: RSVP summary counts followed by the full
// table with resolved group names.
func Guests(w io.Writer, guests []model.Guest, groups []model.GuestGroup, now time.Time) error {
	doc := newDoc()
	doc.AddPage()
	pageHeader(doc, "Wedding Guest List", now)

	groupNames := make(map[string]string, len(groups))
	for _, g := range groups {
		groupNames[g.ID] = g.Name
	}

	doc.SetFont("Helvetica", "B", 14)
	doc.Text(pageLeft, contentFrom, "Guest Summary")
	doc.SetFont("Helvetica", "", 12)

	y := table(doc, contentFrom+5, []string{"Status", "Count"}, []float64{90, 92},
		guestSummaryRows(guests), headerColor)

	doc.SetFont("Helvetica", "B", 14)
	doc.Text(pageLeft, y, "Guest List")
	doc.SetFont("Helvetica", "", 12)

	rows := make([][]string, 0, len(guests))
	for _, guest := range guests {
		group := "-"
		if guest.GroupID != nil {
			if name, ok := groupNames[*guest.GroupID]; ok {
				group = name
			}
		}
		rows = append(rows, []string{
			guest.Name,
			group,
			orDash(guest.Phone),
			orDash(guest.Email),
			title(string(guest.RSVPStatus)),
		})
	}

	table(doc, y+5, []string{"Name", "Group", "Phone", "Email", "RSVP Status"},
		[]float64{44, 32, 32, 50, 24}, rows, headerColor)

	return finish(doc, w)
}
