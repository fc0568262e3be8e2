package model

import "time"

// SeedPlan returns the document used on first run, before anything has been
// persisted: starter budget categories, the standard ceremony schedule,
// three guest groups, and a few high-level tasks.
func SeedPlan(now time.Time) *WeddingPlan {
	return &WeddingPlan{
		TotalBudget: 1000000, // 10 lakh INR
		BudgetCategories: []BudgetCategory{
			{
				ID:   "1",
				Name: "Venue",
				Items: []BudgetItem{
					{ID: "1-1", Name: "Wedding Hall", EstimatedCost: 200000},
				},
			},
			{
				ID:   "2",
				Name: "Catering",
				Items: []BudgetItem{
					{ID: "2-1", Name: "Food & Beverages", EstimatedCost: 150000},
				},
			},
			{
				ID:   "3",
				Name: "Decoration",
				Items: []BudgetItem{
					{ID: "3-1", Name: "Flowers & Mandap", EstimatedCost: 80000},
				},
			},
		},
		Events: []Event{
			{ID: "1", Title: "Haldi Ceremony", Time: "10:00"},
			{ID: "2", Title: "Mehendi Ceremony", Time: "16:00"},
			{ID: "3", Title: "Sangeet Ceremony", Time: "19:00"},
			{ID: "4", Title: "Wedding Ceremony", Time: "11:00"},
			{ID: "5", Title: "Reception", Time: "19:00"},
		},
		GuestGroups: []GuestGroup{
			{ID: "1", Name: "Family"},
			{ID: "2", Name: "Friends"},
			{ID: "3", Name: "Colleagues"},
		},
		Guests:  []Guest{},
		Vendors: []Vendor{},
		Todos: []TodoItem{
			{ID: "1", Task: "Book wedding venue", Priority: PriorityHigh},
			{ID: "2", Task: "Send invitations", Priority: PriorityMedium},
			{ID: "3", Task: "Book photographer", Priority: PriorityMedium},
		},
		Notes:       []Note{},
		LastUpdated: now,
	}
}

// ResetPlan returns the document produced by "reset all data": the default
// total budget with every collection empty. Distinct from the first-run seed.
func ResetPlan(now time.Time) *WeddingPlan {
	return &WeddingPlan{
		TotalBudget:      1000000,
		BudgetCategories: []BudgetCategory{},
		Events:           []Event{},
		GuestGroups:      []GuestGroup{},
		Guests:           []Guest{},
		Vendors:          []Vendor{},
		Todos:            []TodoItem{},
		Notes:            []Note{},
		LastUpdated:      now,
	}
}
