// Package export implements the interchange representation of a wedding
// plan: the indented JSON document used for persistence, file export, and
// import, matching the document shape field for field.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/asvarma/vivah/internal/model"
)

// ErrInvalidDocument is returned by Parse when the input is well-formed JSON
// but is missing one of the required top-level collections.
var ErrInvalidDocument = errors.New("not a valid wedding plan document")

// Marshal serializes the plan to the interchange format: UTF-8 JSON with
// two-space indentation.
func Marshal(plan *model.WeddingPlan) ([]byte, error) {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal plan: %w", err)
	}
	return data, nil
}

// Parse deserializes interchange text into a plan. Beyond JSON parsing, only
// a structural check is performed: budgetCategories, events, and guests must
// be present. A document that passes is trusted as-is; individual fields are
// not re-validated.
func Parse(data []byte) (*model.WeddingPlan, error) {
	// Probe the three required collections before binding to the typed
	// struct, so "missing" and "null" are distinguishable from "empty".
	var probe struct {
		BudgetCategories json.RawMessage `json:"budgetCategories"`
		Events           json.RawMessage `json:"events"`
		Guests           json.RawMessage `json:"guests"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	if isAbsent(probe.BudgetCategories) || isAbsent(probe.Events) || isAbsent(probe.Guests) {
		return nil, ErrInvalidDocument
	}

	var plan model.WeddingPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	// Clone normalizes collections that were absent from the input to empty
	// slices, so they serialize as [] rather than null from here on.
	return plan.Clone(), nil
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// Filename returns the download name for an export taken at the given time,
// e.g. "wedding-planner-export-2026-02-14.json".
func Filename(now time.Time) string {
	return fmt.Sprintf("wedding-planner-export-%s.json", now.Format("2006-01-02"))
}
