package store

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/asvarma/vivah/internal/database"
	"github.com/asvarma/vivah/internal/export"
	"github.com/asvarma/vivah/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupPlanTestDB(t *testing.T) (*PlanStore, *sql.DB) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ps := NewPlanStore(NewDocumentStore(db), testLogger())
	ps.Load(context.Background())
	return ps, db
}

// stripTimestamps zeroes the fields that legitimately differ between two
// otherwise identical documents.
func stripTimestamps(p *model.WeddingPlan) *model.WeddingPlan {
	p.LastUpdated = time.Time{}
	return p
}

func TestLoadSeedDefaults(t *testing.T) {
	ps, _ := setupPlanTestDB(t)

	if ps.State() != StateReady {
		t.Fatalf("state = %q, want %q", ps.State(), StateReady)
	}

	plan := ps.Snapshot()
	if plan.TotalBudget != 1000000 {
		t.Errorf("totalBudget = %v, want 1000000", plan.TotalBudget)
	}

	wantCategories := []string{"Venue", "Catering", "Decoration"}
	if len(plan.BudgetCategories) != len(wantCategories) {
		t.Fatalf("budget categories = %d, want %d", len(plan.BudgetCategories), len(wantCategories))
	}
	for i, name := range wantCategories {
		if plan.BudgetCategories[i].Name != name {
			t.Errorf("category[%d] = %q, want %q", i, plan.BudgetCategories[i].Name, name)
		}
		if len(plan.BudgetCategories[i].Items) != 1 {
			t.Errorf("category %q has %d items, want 1", name, len(plan.BudgetCategories[i].Items))
		}
	}

	wantEvents := []string{"Haldi Ceremony", "Mehendi Ceremony", "Sangeet Ceremony", "Wedding Ceremony", "Reception"}
	if len(plan.Events) != len(wantEvents) {
		t.Fatalf("events = %d, want %d", len(plan.Events), len(wantEvents))
	}
	for i, title := range wantEvents {
		if plan.Events[i].Title != title {
			t.Errorf("event[%d] = %q, want %q", i, plan.Events[i].Title, title)
		}
	}

	wantGroups := []string{"Family", "Friends", "Colleagues"}
	if len(plan.GuestGroups) != len(wantGroups) {
		t.Fatalf("guest groups = %d, want %d", len(plan.GuestGroups), len(wantGroups))
	}
	for i, name := range wantGroups {
		if plan.GuestGroups[i].Name != name {
			t.Errorf("group[%d] = %q, want %q", i, plan.GuestGroups[i].Name, name)
		}
	}

	if len(plan.Todos) != 3 {
		t.Errorf("todos = %d, want 3", len(plan.Todos))
	}
	if len(plan.Guests) != 0 || len(plan.Vendors) != 0 || len(plan.Notes) != 0 {
		t.Error("guests, vendors and notes should start empty")
	}
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	ps, _ := setupPlanTestDB(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		g := ps.AddGuest(ctx, model.Guest{Name: "Guest", RSVPStatus: model.RSVPPending})
		if g.ID == "" {
			t.Fatal("expected generated id")
		}
		if seen[g.ID] {
			t.Fatalf("duplicate id %q", g.ID)
		}
		seen[g.ID] = true
	}

	plan := ps.Snapshot()
	if len(plan.Guests) != 50 {
		t.Fatalf("guests = %d, want 50", len(plan.Guests))
	}
}

func TestDeleteIdempotent(t *testing.T) {
	ps, _ := setupPlanTestDB(t)
	ctx := context.Background()

	v := ps.AddVendor(ctx, model.Vendor{Name: "Caterer", Category: "Food", Cost: 50000})

	ps.DeleteVendor(ctx, v.ID)
	once := stripTimestamps(ps.Snapshot())

	ps.DeleteVendor(ctx, v.ID)
	twice := stripTimestamps(ps.Snapshot())

	if !reflect.DeepEqual(once, twice) {
		t.Error("second delete changed the document")
	}
	if len(twice.Vendors) != 0 {
		t.Errorf("vendors = %d, want 0", len(twice.Vendors))
	}
}

func TestDeleteGuestGroupNullsReferences(t *testing.T) {
	ps, _ := setupPlanTestDB(t)
	ctx := context.Background()

	group := ps.AddGuestGroup(ctx, "College Friends")
	other := ps.AddGuestGroup(ctx, "Neighbours")

	inGroup := ps.AddGuest(ctx, model.Guest{Name: "Asha", GroupID: &group.ID, RSVPStatus: model.RSVPPending})
	alsoIn := ps.AddGuest(ctx, model.Guest{Name: "Rohan", GroupID: &group.ID, RSVPStatus: model.RSVPConfirmed})
	elsewhere := ps.AddGuest(ctx, model.Guest{Name: "Kiran", GroupID: &other.ID, RSVPStatus: model.RSVPPending})

	ps.DeleteGuestGroup(ctx, group.ID)

	plan := ps.Snapshot()
	for _, g := range plan.GuestGroups {
		if g.ID == group.ID {
			t.Error("deleted group still present")
		}
	}

	for _, g := range plan.Guests {
		switch g.ID {
		case inGroup.ID, alsoIn.ID:
			if g.GroupID != nil {
				t.Errorf("guest %q groupId = %q, want nil", g.Name, *g.GroupID)
			}
		case elsewhere.ID:
			if g.GroupID == nil || *g.GroupID != other.ID {
				t.Errorf("guest %q lost its group", g.Name)
			}
		}
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	ps, _ := setupPlanTestDB(t)
	ctx := context.Background()

	due := "2026-03-01"
	ps.AddGuest(ctx, model.Guest{Name: "Asha", Phone: "9876543210", RSVPStatus: model.RSVPConfirmed})
	ps.AddVendor(ctx, model.Vendor{Name: "Sharma Caterers", Category: "Catering", Cost: 250000})
	ps.AddTodo(ctx, model.TodoItem{Task: "Order flowers", DueDate: &due, Priority: model.PriorityLow})
	ps.AddNote(ctx, model.Note{Title: "Colour theme", Content: "Maroon and gold", Images: []string{}})

	data, err := ps.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	before := stripTimestamps(ps.Snapshot())

	if err := ps.Import(ctx, data); err != nil {
		t.Fatalf("import: %v", err)
	}

	after := stripTimestamps(ps.Snapshot())
	if !reflect.DeepEqual(before, after) {
		t.Errorf("round trip changed document:\nbefore: %+v\nafter:  %+v", before, after)
	}
}

func TestImportMissingCollectionRejected(t *testing.T) {
	ps, _ := setupPlanTestDB(t)
	ctx := context.Background()

	before := stripTimestamps(ps.Snapshot())

	// No guests field at all.
	err := ps.Import(ctx, []byte(`{"totalBudget": 5, "budgetCategories": [], "events": []}`))
	if err != export.ErrInvalidDocument {
		t.Fatalf("err = %v, want ErrInvalidDocument", err)
	}

	after := stripTimestamps(ps.Snapshot())
	if !reflect.DeepEqual(before, after) {
		t.Error("rejected import changed the document")
	}
	if after.TotalBudget == 5 {
		t.Error("rejected import replaced the document")
	}
}

func TestImportMalformedRejected(t *testing.T) {
	ps, _ := setupPlanTestDB(t)
	ctx := context.Background()

	before := stripTimestamps(ps.Snapshot())

	if err := ps.Import(ctx, []byte(`{not json`)); err == nil {
		t.Fatal("expected error for malformed input")
	}

	after := stripTimestamps(ps.Snapshot())
	if !reflect.DeepEqual(before, after) {
		t.Error("rejected import changed the document")
	}
}

func TestResetClearsCollections(t *testing.T) {
	ps, _ := setupPlanTestDB(t)
	ctx := context.Background()

	ps.AddGuest(ctx, model.Guest{Name: "Asha", RSVPStatus: model.RSVPPending})
	ps.UpdateTotalBudget(ctx, 2500000)

	ps.Reset(ctx)

	plan := ps.Snapshot()
	if plan.TotalBudget != 1000000 {
		t.Errorf("totalBudget = %v, want 1000000", plan.TotalBudget)
	}
	if len(plan.BudgetCategories) != 0 || len(plan.Events) != 0 || len(plan.GuestGroups) != 0 ||
		len(plan.Guests) != 0 || len(plan.Vendors) != 0 || len(plan.Todos) != 0 || len(plan.Notes) != 0 {
		t.Error("reset should empty every collection")
	}
}

func TestPersistenceSurvivesRestart(t *testing.T) {
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()

	first := NewPlanStore(NewDocumentStore(db), testLogger())
	first.Load(ctx)
	first.AddGuest(ctx, model.Guest{Name: "Asha", RSVPStatus: model.RSVPDeclined})
	first.UpdateTotalBudget(ctx, 750000)

	second := NewPlanStore(NewDocumentStore(db), testLogger())
	second.Load(ctx)

	want := stripTimestamps(first.Snapshot())
	got := stripTimestamps(second.Snapshot())
	if !reflect.DeepEqual(want, got) {
		t.Errorf("restarted store loaded a different document:\nwant: %+v\ngot:  %+v", want, got)
	}
}

func TestLoadFallsBackOnCorruptDocument(t *testing.T) {
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()

	docs := NewDocumentStore(db)
	if err := docs.Set(ctx, documentKey, "{{{ definitely not json"); err != nil {
		t.Fatalf("seed corrupt value: %v", err)
	}

	ps := NewPlanStore(docs, testLogger())
	ps.Load(ctx)

	if ps.State() != StateReady {
		t.Fatalf("state = %q, want %q", ps.State(), StateReady)
	}
	plan := ps.Snapshot()
	if len(plan.BudgetCategories) != 3 {
		t.Errorf("expected seed defaults after corrupt load, got %d categories", len(plan.BudgetCategories))
	}
}

func TestLoadTransitionHappensOnce(t *testing.T) {
	ps, _ := setupPlanTestDB(t)
	ctx := context.Background()

	ps.AddGuest(ctx, model.Guest{Name: "Asha", RSVPStatus: model.RSVPPending})

	// A second Load must not re-read the backend or reset in-memory state.
	ps.Load(ctx)
	if len(ps.Snapshot().Guests) != 1 {
		t.Error("second Load changed the document")
	}
}

func TestAddBudgetItemToCategory(t *testing.T) {
	ps, _ := setupPlanTestDB(t)
	ctx := context.Background()

	item := ps.AddBudgetItem(ctx, "2", model.BudgetItem{
		Name:          "Photographer",
		EstimatedCost: 50000,
	})
	if item.ID == "" || item.ID == "2-1" {
		t.Errorf("item id = %q, want a freshly generated id", item.ID)
	}

	plan := ps.Snapshot()
	var catering *model.BudgetCategory
	for i := range plan.BudgetCategories {
		if plan.BudgetCategories[i].Name == "Catering" {
			catering = &plan.BudgetCategories[i]
		}
	}
	if catering == nil {
		t.Fatal("Catering category missing")
	}
	if len(catering.Items) != 2 {
		t.Fatalf("catering items = %d, want 2", len(catering.Items))
	}
	if catering.Items[1].Name != "Photographer" {
		t.Errorf("item name = %q, want Photographer", catering.Items[1].Name)
	}
}

func TestAddBudgetItemUnknownCategory(t *testing.T) {
	ps, _ := setupPlanTestDB(t)
	ctx := context.Background()

	before := len(allItems(ps.Snapshot()))
	ps.AddBudgetItem(ctx, "no-such-category", model.BudgetItem{Name: "Orphan"})
	after := len(allItems(ps.Snapshot()))

	if before != after {
		t.Errorf("items = %d, want %d (unknown category should attach nothing)", after, before)
	}
}

func allItems(p *model.WeddingPlan) []model.BudgetItem {
	var items []model.BudgetItem
	for _, c := range p.BudgetCategories {
		items = append(items, c.Items...)
	}
	return items
}

func TestDeleteBudgetCategoryRemovesItems(t *testing.T) {
	ps, _ := setupPlanTestDB(t)
	ctx := context.Background()

	ps.DeleteBudgetCategory(ctx, "1")

	plan := ps.Snapshot()
	if len(plan.BudgetCategories) != 2 {
		t.Fatalf("categories = %d, want 2", len(plan.BudgetCategories))
	}
	for _, item := range allItems(plan) {
		if item.ID == "1-1" {
			t.Error("item of deleted category still present")
		}
	}
}

func TestUpdateBudgetItem(t *testing.T) {
	ps, _ := setupPlanTestDB(t)
	ctx := context.Background()

	ps.UpdateBudgetItem(ctx, "1", model.BudgetItem{
		ID:            "1-1",
		Name:          "Wedding Hall",
		EstimatedCost: 200000,
		ActualCost:    180000,
		IsPaid:        true,
	})

	plan := ps.Snapshot()
	item := plan.BudgetCategories[0].Items[0]
	if item.ActualCost != 180000 || !item.IsPaid {
		t.Errorf("item = %+v, want actualCost 180000 and paid", item)
	}
}

func TestUpdateUnknownGuestNoOp(t *testing.T) {
	ps, _ := setupPlanTestDB(t)
	ctx := context.Background()

	before := stripTimestamps(ps.Snapshot())

	ps.UpdateGuest(ctx, model.Guest{ID: "ghost", Name: "Nobody", RSVPStatus: model.RSVPConfirmed})

	after := stripTimestamps(ps.Snapshot())
	if !reflect.DeepEqual(before, after) {
		t.Error("update of unknown id changed the document")
	}
	if len(after.Guests) != 0 {
		t.Error("update of unknown id created an entry")
	}
}

func TestUpdateTotalBudget(t *testing.T) {
	ps, _ := setupPlanTestDB(t)
	ctx := context.Background()

	ps.UpdateTotalBudget(ctx, 1500000)
	if got := ps.Snapshot().TotalBudget; got != 1500000 {
		t.Errorf("totalBudget = %v, want 1500000", got)
	}
}

func TestMutationRefreshesLastUpdated(t *testing.T) {
	ps, _ := setupPlanTestDB(t)
	ctx := context.Background()

	before := ps.Snapshot().LastUpdated
	time.Sleep(5 * time.Millisecond)
	ps.AddGuestGroup(ctx, "Cousins")
	after := ps.Snapshot().LastUpdated

	if !after.After(before) {
		t.Errorf("lastUpdated not refreshed: before %v, after %v", before, after)
	}
}

func TestAddNoteStampsCreatedAt(t *testing.T) {
	ps, _ := setupPlanTestDB(t)
	ctx := context.Background()

	note := ps.AddNote(ctx, model.Note{Title: "Venue ideas", Content: "Garden or banquet hall"})
	if note.CreatedAt.IsZero() {
		t.Error("createdAt not stamped")
	}
	if note.ID == "" {
		t.Error("id not assigned")
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	ps, _ := setupPlanTestDB(t)

	snap := ps.Snapshot()
	snap.BudgetCategories[0].Items[0].Name = "tampered"
	snap.GuestGroups[0].Name = "tampered"

	fresh := ps.Snapshot()
	if fresh.BudgetCategories[0].Items[0].Name == "tampered" {
		t.Error("mutating a snapshot leaked into the store")
	}
	if fresh.GuestGroups[0].Name == "tampered" {
		t.Error("mutating a snapshot leaked into the store")
	}
}
