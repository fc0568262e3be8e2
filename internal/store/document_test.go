package store

import (
	"context"
	"testing"

	"github.com/asvarma/vivah/internal/database"
)

func setupDocumentTestDB(t *testing.T) *DocumentStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewDocumentStore(db)
}

func TestDocumentAbsentKey(t *testing.T) {
	ds := setupDocumentTestDB(t)

	_, ok, err := ds.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Error("expected ok = false for absent key")
	}
}

func TestDocumentSetGet(t *testing.T) {
	ds := setupDocumentTestDB(t)
	ctx := context.Background()

	if err := ds.Set(ctx, "plan", `{"a":1}`); err != nil {
		t.Fatalf("set: %v", err)
	}

	value, ok, err := ds.Get(ctx, "plan")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected ok = true")
	}
	if value != `{"a":1}` {
		t.Errorf("value = %q, want %q", value, `{"a":1}`)
	}
}

func TestDocumentOverwrite(t *testing.T) {
	ds := setupDocumentTestDB(t)
	ctx := context.Background()

	ds.Set(ctx, "plan", "first")
	if err := ds.Set(ctx, "plan", "second"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	value, _, err := ds.Get(ctx, "plan")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value != "second" {
		t.Errorf("value = %q, want %q", value, "second")
	}
}
