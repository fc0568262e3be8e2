package model

import "time"

// RSVPStatus is a guest's attendance confirmation state.
type RSVPStatus string

const (
	RSVPPending   RSVPStatus = "pending"
	RSVPConfirmed RSVPStatus = "confirmed"
	RSVPDeclined  RSVPStatus = "declined"
)

// Valid reports whether s is one of the known RSVP states.
func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPPending, RSVPConfirmed, RSVPDeclined:
		return true
	}
	return false
}

// Priority is a todo item's urgency level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type BudgetItem struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	EstimatedCost float64 `json:"estimatedCost"`
	ActualCost    float64 `json:"actualCost"`
	IsPaid        bool    `json:"isPaid"`
	Notes         string  `json:"notes"`
}

type BudgetCategory struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Items []BudgetItem `json:"items"`
}

// Event is a ceremony or function on the wedding schedule. Date and Time are
// plain strings ("2026-02-14", "19:00"); empty means not set yet.
type Event struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Venue string `json:"venue"`
	Notes string `json:"notes"`
}

type GuestGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Guest struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email"`
	GroupID    *string    `json:"groupId"`
	RSVPStatus RSVPStatus `json:"rsvpStatus"`
}

type Vendor struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Phone    string  `json:"phone"`
	Email    string  `json:"email"`
	Cost     float64 `json:"cost"`
	Notes    string  `json:"notes"`
}

type TodoItem struct {
	ID          string   `json:"id"`
	Task        string   `json:"task"`
	DueDate     *string  `json:"dueDate"`
	IsCompleted bool     `json:"isCompleted"`
	Priority    Priority `json:"priority"`
}

// Note holds free-form inspiration text plus inline images stored as
// base64 data URIs.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Images    []string  `json:"images"`
	CreatedAt time.Time `json:"createdAt"`
}

// WeddingPlan is the single aggregate document holding all planning data.
type WeddingPlan struct {
	TotalBudget      float64          `json:"totalBudget"`
	BudgetCategories []BudgetCategory `json:"budgetCategories"`
	Events           []Event          `json:"events"`
	GuestGroups      []GuestGroup     `json:"guestGroups"`
	Guests           []Guest          `json:"guests"`
	Vendors          []Vendor         `json:"vendors"`
	Todos            []TodoItem       `json:"todos"`
	Notes            []Note           `json:"notes"`
	LastUpdated      time.Time        `json:"lastUpdated"`
}

// Clone returns a deep copy of the plan. Mutating the copy never affects
// the original, including nested budget items and note images.
func (p *WeddingPlan) Clone() *WeddingPlan {
	c := *p

	c.BudgetCategories = make([]BudgetCategory, len(p.BudgetCategories))
	for i, cat := range p.BudgetCategories {
		cc := cat
		cc.Items = make([]BudgetItem, len(cat.Items))
		copy(cc.Items, cat.Items)
		c.BudgetCategories[i] = cc
	}

	c.Events = make([]Event, len(p.Events))
	copy(c.Events, p.Events)
	c.GuestGroups = make([]GuestGroup, len(p.GuestGroups))
	copy(c.GuestGroups, p.GuestGroups)

	c.Guests = make([]Guest, len(p.Guests))
	for i, g := range p.Guests {
		if g.GroupID != nil {
			id := *g.GroupID
			g.GroupID = &id
		}
		c.Guests[i] = g
	}

	c.Vendors = make([]Vendor, len(p.Vendors))
	copy(c.Vendors, p.Vendors)

	c.Todos = make([]TodoItem, len(p.Todos))
	for i, t := range p.Todos {
		if t.DueDate != nil {
			d := *t.DueDate
			t.DueDate = &d
		}
		c.Todos[i] = t
	}

	c.Notes = make([]Note, len(p.Notes))
	for i, n := range p.Notes {
		nn := n
		nn.Images = make([]string, len(n.Images))
		copy(nn.Images, n.Images)
		c.Notes[i] = nn
	}

	return &c
}
