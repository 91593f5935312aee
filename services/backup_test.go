package services_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"budgetmonitor/services"
	"budgetmonitor/testhelpers"
)

func TestDumpRestoreRoundTrip(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestTransaction(t, app, map[string]any{
		"budget_code": "EXT-2025-0001",
		"activity":    "Coastal Cleanup",
		"amount":      12000.0,
	})
	testhelpers.CreateTestTransaction(t, app, map[string]any{
		"budget_code": "EXT-2025-0002",
		"activity":    "Feeding Program",
		"status":      services.StatusObligated,
	})

	var buf bytes.Buffer
	if err := services.DumpTransactions(app, &buf); err != nil {
		t.Fatalf("DumpTransactions: %v", err)
	}

	var dump services.BackupFile
	if err := json.Unmarshal(buf.Bytes(), &dump); err != nil {
		t.Fatalf("dump is not valid JSON: %v", err)
	}
	if dump.Count != 2 || len(dump.Transactions) != 2 {
		t.Fatalf("dump carries %d/%d transactions, want 2", dump.Count, len(dump.Transactions))
	}

	// Wipe and restore into the same app.
	deleted, err := services.WipeTransactions(app)
	if err != nil {
		t.Fatalf("WipeTransactions: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}
	if records, _ := app.FindAllRecords("transactions"); len(records) != 0 {
		t.Fatalf("%d records remain after wipe", len(records))
	}

	restored, err := services.RestoreTransactions(app, &buf)
	if err != nil {
		t.Fatalf("RestoreTransactions: %v", err)
	}
	if restored != 2 {
		t.Errorf("restored = %d, want 2", restored)
	}

	records, err := app.FindRecordsByFilter("transactions", "budget_code = 'EXT-2025-0002'", "", 0, 0)
	if err != nil || len(records) != 1 {
		t.Fatalf("restored record not found: %v (%d records)", err, len(records))
	}
	if got := records[0].GetString("status"); got != services.StatusObligated {
		t.Errorf("restored status = %q, want %q", got, services.StatusObligated)
	}
	if got := records[0].GetString("activity"); got != "Feeding Program" {
		t.Errorf("restored activity = %q", got)
	}
}

func TestRestoreRejectsGarbage(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if _, err := services.RestoreTransactions(app, bytes.NewBufferString("not json")); err == nil {
		t.Error("expected an error for a malformed dump")
	}
}

func TestWipeEmptyCollection(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	deleted, err := services.WipeTransactions(app)
	if err != nil {
		t.Fatalf("WipeTransactions: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}
}
