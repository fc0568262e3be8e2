// Package store owns the single WeddingPlan document for the process
// lifetime. All reads go through snapshots, all writes through typed
// mutation methods, and every successful mutation is followed by a
// whole-document write to the persistence backend.
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/asvarma/vivah/internal/export"
	"github.com/asvarma/vivah/internal/model"
)

// documentKey is the single backend key holding the serialized plan.
const documentKey = "wedding_plan"

// State is the store lifecycle state. The store starts in StateLoading and
// transitions to StateReady exactly once, after Load completes; there is no
// way back within a session.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
)

// PlanStore holds the one mutable WeddingPlan and keeps it consistent with
// the persistence backend.
type PlanStore struct {
	mu      sync.RWMutex
	backend Backend
	logger  *slog.Logger
	plan    *model.WeddingPlan
	state   State

	now   func() time.Time
	newID func() string
}

// NewPlanStore creates a store in the Loading state, holding the seed
// document until Load replaces it with whatever the backend has.
func NewPlanStore(backend Backend, logger *slog.Logger) *PlanStore {
	// UTC wall-clock times survive the JSON round trip unchanged.
	now := func() time.Time { return time.Now().UTC() }
	return &PlanStore{
		backend: backend,
		logger:  logger,
		plan:    model.SeedPlan(now()),
		state:   StateLoading,
		now:     now,
		newID:   uuid.NewString,
	}
}

// State returns the current lifecycle state.
func (s *PlanStore) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Snapshot returns a deep copy of the current document.
func (s *PlanStore) Snapshot() *model.WeddingPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plan.Clone()
}

// Load reads the persisted document and transitions the store to Ready.
// A missing or unreadable document is not an error: the store falls back to
// the seed defaults and becomes Ready anyway. The document is persisted on
// entry to Ready so backend and memory agree from the start.
func (s *PlanStore) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateReady {
		return
	}

	value, ok, err := s.backend.Get(ctx, documentKey)
	switch {
	case err != nil:
		s.logger.Warn("load plan, using seed defaults", "error", err)
	case !ok:
		s.logger.Info("no persisted plan, using seed defaults")
	default:
		plan, err := export.Parse([]byte(value))
		if err != nil {
			s.logger.Warn("persisted plan unreadable, using seed defaults", "error", err)
		} else {
			s.plan = plan
		}
	}

	s.state = StateReady
	s.persistLocked(ctx)
}

// persistLocked stamps lastUpdated and writes the whole document to the
// backend. Write failures are retried with backoff and then logged; the
// in-memory mutation is kept either way.
func (s *PlanStore) persistLocked(ctx context.Context) {
	if s.state != StateReady {
		return
	}

	s.plan.LastUpdated = s.now()

	data, err := export.Marshal(s.plan)
	if err != nil {
		s.logger.Error("serialize plan", "error", err)
		return
	}

	backoff := retry.WithMaxRetries(2, retry.NewExponential(50*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := s.backend.Set(ctx, documentKey, string(data)); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("persist plan", "error", err)
	}
}

// UpdateTotalBudget replaces the total budget. No bounds checking beyond
// the numeric type.
func (s *PlanStore) UpdateTotalBudget(ctx context.Context, amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan.TotalBudget = amount
	s.persistLocked(ctx)
}

// AddBudgetCategory appends a new empty category and returns it.
func (s *PlanStore) AddBudgetCategory(ctx context.Context, name string) model.BudgetCategory {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat := model.BudgetCategory{ID: s.newID(), Name: name, Items: []model.BudgetItem{}}
	s.plan.BudgetCategories = append(s.plan.BudgetCategories, cat)
	s.persistLocked(ctx)
	return cat
}

// UpdateBudgetCategory renames the category with the given id. Unknown ids
// are a silent no-op.
func (s *PlanStore) UpdateBudgetCategory(ctx context.Context, id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.plan.BudgetCategories {
		if s.plan.BudgetCategories[i].ID == id {
			s.plan.BudgetCategories[i].Name = name
			break
		}
	}
	s.persistLocked(ctx)
}

// DeleteBudgetCategory removes the category and, with it, all of its items.
func (s *PlanStore) DeleteBudgetCategory(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cats := s.plan.BudgetCategories[:0]
	for _, cat := range s.plan.BudgetCategories {
		if cat.ID != id {
			cats = append(cats, cat)
		}
	}
	s.plan.BudgetCategories = cats
	s.persistLocked(ctx)
}

// AddBudgetItem assigns a fresh id to item and appends it to the category.
// If the category does not exist the document is unchanged.
func (s *PlanStore) AddBudgetItem(ctx context.Context, categoryID string, item model.BudgetItem) model.BudgetItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.newID()
	for i := range s.plan.BudgetCategories {
		if s.plan.BudgetCategories[i].ID == categoryID {
			s.plan.BudgetCategories[i].Items = append(s.plan.BudgetCategories[i].Items, item)
			break
		}
	}
	s.persistLocked(ctx)
	return item
}

// UpdateBudgetItem replaces the item with a matching id inside the category.
func (s *PlanStore) UpdateBudgetItem(ctx context.Context, categoryID string, item model.BudgetItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.plan.BudgetCategories {
		if s.plan.BudgetCategories[i].ID != categoryID {
			continue
		}
		items := s.plan.BudgetCategories[i].Items
		for j := range items {
			if items[j].ID == item.ID {
				items[j] = item
				break
			}
		}
		break
	}
	s.persistLocked(ctx)
}

// DeleteBudgetItem removes the item from the category. Idempotent.
func (s *PlanStore) DeleteBudgetItem(ctx context.Context, categoryID, itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.plan.BudgetCategories {
		if s.plan.BudgetCategories[i].ID != categoryID {
			continue
		}
		items := s.plan.BudgetCategories[i].Items[:0]
		for _, it := range s.plan.BudgetCategories[i].Items {
			if it.ID != itemID {
				items = append(items, it)
			}
		}
		s.plan.BudgetCategories[i].Items = items
		break
	}
	s.persistLocked(ctx)
}

// AddEvent assigns a fresh id to the event and appends it.
func (s *PlanStore) AddEvent(ctx context.Context, event model.Event) model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	event.ID = s.newID()
	s.plan.Events = append(s.plan.Events, event)
	s.persistLocked(ctx)
	return event
}

// UpdateEvent replaces the event with a matching id.
func (s *PlanStore) UpdateEvent(ctx context.Context, event model.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.plan.Events {
		if s.plan.Events[i].ID == event.ID {
			s.plan.Events[i] = event
			break
		}
	}
	s.persistLocked(ctx)
}

// DeleteEvent removes the event. Idempotent.
func (s *PlanStore) DeleteEvent(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.plan.Events[:0]
	for _, e := range s.plan.Events {
		if e.ID != id {
			events = append(events, e)
		}
	}
	s.plan.Events = events
	s.persistLocked(ctx)
}

// AddGuestGroup appends a new guest group and returns it.
func (s *PlanStore) AddGuestGroup(ctx context.Context, name string) model.GuestGroup {
	s.mu.Lock()
	defer s.mu.Unlock()

	group := model.GuestGroup{ID: s.newID(), Name: name}
	s.plan.GuestGroups = append(s.plan.GuestGroups, group)
	s.persistLocked(ctx)
	return group
}

// UpdateGuestGroup renames the group with the given id.
func (s *PlanStore) UpdateGuestGroup(ctx context.Context, id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.plan.GuestGroups {
		if s.plan.GuestGroups[i].ID == id {
			s.plan.GuestGroups[i].Name = name
			break
		}
	}
	s.persistLocked(ctx)
}

// DeleteGuestGroup removes the group and nulls groupId on every guest that
// referenced it. Guests themselves are kept.
func (s *PlanStore) DeleteGuestGroup(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := s.plan.GuestGroups[:0]
	for _, g := range s.plan.GuestGroups {
		if g.ID != id {
			groups = append(groups, g)
		}
	}
	s.plan.GuestGroups = groups

	for i := range s.plan.Guests {
		if s.plan.Guests[i].GroupID != nil && *s.plan.Guests[i].GroupID == id {
			s.plan.Guests[i].GroupID = nil
		}
	}
	s.persistLocked(ctx)
}

// AddGuest assigns a fresh id to the guest and appends it.
func (s *PlanStore) AddGuest(ctx context.Context, guest model.Guest) model.Guest {
	s.mu.Lock()
	defer s.mu.Unlock()

	guest.ID = s.newID()
	s.plan.Guests = append(s.plan.Guests, guest)
	s.persistLocked(ctx)
	return guest
}

// UpdateGuest replaces the guest with a matching id. An unknown id changes
// nothing and creates nothing.
func (s *PlanStore) UpdateGuest(ctx context.Context, guest model.Guest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.plan.Guests {
		if s.plan.Guests[i].ID == guest.ID {
			s.plan.Guests[i] = guest
			break
		}
	}
	s.persistLocked(ctx)
}

// DeleteGuest removes the guest. Idempotent.
func (s *PlanStore) DeleteGuest(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	guests := s.plan.Guests[:0]
	for _, g := range s.plan.Guests {
		if g.ID != id {
			guests = append(guests, g)
		}
	}
	s.plan.Guests = guests
	s.persistLocked(ctx)
}

// AddVendor assigns a fresh id to the vendor and appends it.
func (s *PlanStore) AddVendor(ctx context.Context, vendor model.Vendor) model.Vendor {
	s.mu.Lock()
	defer s.mu.Unlock()

	vendor.ID = s.newID()
	s.plan.Vendors = append(s.plan.Vendors, vendor)
	s.persistLocked(ctx)
	return vendor
}

// UpdateVendor replaces the vendor with a matching id.
func (s *PlanStore) UpdateVendor(ctx context.Context, vendor model.Vendor) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.plan.Vendors {
		if s.plan.Vendors[i].ID == vendor.ID {
			s.plan.Vendors[i] = vendor
			break
		}
	}
	s.persistLocked(ctx)
}

// DeleteVendor removes the vendor. Idempotent.
func (s *PlanStore) DeleteVendor(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vendors := s.plan.Vendors[:0]
	for _, v := range s.plan.Vendors {
		if v.ID != id {
			vendors = append(vendors, v)
		}
	}
	s.plan.Vendors = vendors
	s.persistLocked(ctx)
}

// AddTodo assigns a fresh id to the todo and appends it.
func (s *PlanStore) AddTodo(ctx context.Context, todo model.TodoItem) model.TodoItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo.ID = s.newID()
	s.plan.Todos = append(s.plan.Todos, todo)
	s.persistLocked(ctx)
	return todo
}

// UpdateTodo replaces the todo with a matching id.
func (s *PlanStore) UpdateTodo(ctx context.Context, todo model.TodoItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.plan.Todos {
		if s.plan.Todos[i].ID == todo.ID {
			s.plan.Todos[i] = todo
			break
		}
	}
	s.persistLocked(ctx)
}

// DeleteTodo removes the todo. Idempotent.
func (s *PlanStore) DeleteTodo(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos := s.plan.Todos[:0]
	for _, t := range s.plan.Todos {
		if t.ID != id {
			todos = append(todos, t)
		}
	}
	s.plan.Todos = todos
	s.persistLocked(ctx)
}

// AddNote assigns a fresh id and creation timestamp to the note and
// appends it.
func (s *PlanStore) AddNote(ctx context.Context, note model.Note) model.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	note.ID = s.newID()
	note.CreatedAt = s.now()
	s.plan.Notes = append(s.plan.Notes, note)
	s.persistLocked(ctx)
	return note
}

// UpdateNote replaces the note with a matching id.
func (s *PlanStore) UpdateNote(ctx context.Context, note model.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.plan.Notes {
		if s.plan.Notes[i].ID == note.ID {
			s.plan.Notes[i] = note
			break
		}
	}
	s.persistLocked(ctx)
}

// DeleteNote removes the note. Idempotent.
func (s *PlanStore) DeleteNote(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := s.plan.Notes[:0]
	for _, n := range s.plan.Notes {
		if n.ID != id {
			notes = append(notes, n)
		}
	}
	s.plan.Notes = notes
	s.persistLocked(ctx)
}

// Export serializes the current document to the interchange format.
func (s *PlanStore) Export() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return export.Marshal(s.plan)
}

// Import parses interchange text and, if the structural check passes,
// replaces the whole in-memory document with the parsed one and persists.
// On failure the current document is untouched.
func (s *PlanStore) Import(ctx context.Context, data []byte) error {
	plan, err := export.Parse(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan = plan
	s.persistLocked(ctx)
	return nil
}

// Reset replaces the document with the reset defaults: every collection
// empty, total budget back to the default.
func (s *PlanStore) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan = model.ResetPlan(s.now())
	s.persistLocked(ctx)
}
