// Package testhelpers provides utilities for testing PocketBase-based
// applications.
package testhelpers

import (
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"budgetmonitor/collections"
	"budgetmonitor/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app, services.DefaultRegistry())

	return app
}

// CreateTestTransaction creates a transaction record with sensible defaults,
// overridable through the fields map, and returns it.
func CreateTestTransaction(t *testing.T, app *pocketbase.PocketBase, fields map[string]any) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("transactions")
	if err != nil {
		t.Fatalf("failed to find transactions collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("budget_code", "EXT-2025-0001")
	record.Set("status", services.StatusProposal)
	record.Set("date_received", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	record.Set("activity", "Community Literacy Program")
	record.Set("campus", services.DefaultCampus)
	record.Set("amount", 50000.0)
	record.Set("sheet", services.SheetProposal)
	record.Set("created_by", "test-user")

	for key, val := range fields {
		record.Set(key, val)
	}

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test transaction: %v", err)
	}

	return record
}
