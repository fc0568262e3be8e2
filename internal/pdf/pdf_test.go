package pdf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/asvarma/vivah/internal/model"
)

var testNow = time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

// 1x1 transparent PNG.
const tinyPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func samplePlan() *model.WeddingPlan {
	plan := model.SeedPlan(testNow)
	group := plan.GuestGroups[0].ID
	due := "2026-03-01"
	plan.Guests = []model.Guest{
		{ID: "g1", Name: "Asha Nair", Phone: "9876543210", GroupID: &group, RSVPStatus: model.RSVPConfirmed},
		{ID: "g2", Name: "Rohan Mehta", RSVPStatus: model.RSVPPending},
	}
	plan.Vendors = []model.Vendor{
		{ID: "v1", Name: "Sharma Caterers", Category: "Catering", Cost: 250000},
		{ID: "v2", Name: "Lens & Light", Category: "Photography", Cost: 80000, Notes: "Includes album"},
	}
	plan.Todos = append(plan.Todos, model.TodoItem{ID: "t9", Task: "Taste menu", DueDate: &due, IsCompleted: true, Priority: model.PriorityLow})
	plan.Notes = []model.Note{
		{ID: "n1", Title: "Theme", Content: "Maroon and gold, marigold garlands everywhere.", Images: []string{tinyPNG}, CreatedAt: testNow},
	}
	return plan
}

func checkPDF(t *testing.T, buf *bytes.Buffer, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output does not start with %PDF")
	}
	if buf.Len() < 500 {
		t.Errorf("output suspiciously small: %d bytes", buf.Len())
	}
}

func TestBudgetPDF(t *testing.T) {
	plan := samplePlan()
	var buf bytes.Buffer
	checkPDF(t, &buf, Budget(&buf, plan.TotalBudget, plan.BudgetCategories, testNow))
}

func TestEventsPDF(t *testing.T) {
	var buf bytes.Buffer
	checkPDF(t, &buf, Events(&buf, samplePlan().Events, testNow))
}

func TestGuestsPDF(t *testing.T) {
	plan := samplePlan()
	var buf bytes.Buffer
	checkPDF(t, &buf, Guests(&buf, plan.Guests, plan.GuestGroups, testNow))
}

func TestVendorsPDF(t *testing.T) {
	var buf bytes.Buffer
	checkPDF(t, &buf, Vendors(&buf, samplePlan().Vendors, testNow))
}

func TestTodosPDF(t *testing.T) {
	var buf bytes.Buffer
	checkPDF(t, &buf, Todos(&buf, samplePlan().Todos, testNow))
}

func TestNotesPDF(t *testing.T) {
	var buf bytes.Buffer
	checkPDF(t, &buf, Notes(&buf, samplePlan().Notes, testNow))
}

func TestCompletePDF(t *testing.T) {
	var buf bytes.Buffer
	checkPDF(t, &buf, Complete(&buf, samplePlan(), testNow))
}

func TestNotesPDFSkipsBadImage(t *testing.T) {
	notes := []model.Note{
		{
			ID:      "n1",
			Title:   "Mixed images",
			Content: "One of these is garbage.",
			Images: []string{
				"data:image/png;base64,!!!not-base64!!!",
				"not a data uri at all",
				tinyPNG,
			},
			CreatedAt: testNow,
		},
	}

	var buf bytes.Buffer
	checkPDF(t, &buf, Notes(&buf, notes, testNow))
}

func TestDecodeDataURI(t *testing.T) {
	imageType, data, err := decodeDataURI(tinyPNG)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if imageType != "PNG" {
		t.Errorf("type = %q, want PNG", imageType)
	}
	if len(data) == 0 {
		t.Error("no image bytes")
	}

	if _, _, err := decodeDataURI("data:text/plain;base64,aGk="); err == nil {
		t.Error("expected error for non-image media type")
	}
	if _, _, err := decodeDataURI("plain text"); err == nil {
		t.Error("expected error for non data uri")
	}
}

func TestSortedEvents(t *testing.T) {
	events := []model.Event{
		{ID: "1", Title: "Undated first"},
		{ID: "2", Title: "Later", Date: "2026-03-02"},
		{ID: "3", Title: "Earlier", Date: "2026-03-01"},
		{ID: "4", Title: "Undated second"},
	}

	got := sortedEvents(events)
	want := []string{"Earlier", "Later", "Undated first", "Undated second"}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("events[%d] = %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestSortedTodos(t *testing.T) {
	todos := []model.TodoItem{
		{ID: "1", Task: "done high", IsCompleted: true, Priority: model.PriorityHigh},
		{ID: "2", Task: "open low", Priority: model.PriorityLow},
		{ID: "3", Task: "open high", Priority: model.PriorityHigh},
		{ID: "4", Task: "open medium", Priority: model.PriorityMedium},
	}

	got := sortedTodos(todos)
	want := []string{"open high", "open medium", "open low", "done high"}
	for i, task := range want {
		if got[i].Task != task {
			t.Errorf("todos[%d] = %q, want %q", i, got[i].Task, task)
		}
	}
}

func TestFormatINR(t *testing.T) {
	if got := formatINR(150000); got != "Rs. 1,50,000" {
		t.Errorf("formatINR(150000) = %q, want %q", got, "Rs. 1,50,000")
	}
	if got := formatINR(0); got != "Rs. 0" {
		t.Errorf("formatINR(0) = %q, want %q", got, "Rs. 0")
	}
}

func TestFormatDate(t *testing.T) {
	if got := formatDate(""); got != "Not set" {
		t.Errorf("empty date = %q, want Not set", got)
	}
	if got := formatDate("2026-02-14"); !strings.Contains(got, "February 2026") {
		t.Errorf("formatDate = %q, want a long-form February 2026 date", got)
	}
	if got := formatDate("nonsense"); got != "Not set" {
		t.Errorf("unparseable date = %q, want Not set", got)
	}
}
