package services

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pocketbase/pocketbase"
)

// BackupFile is the JSON envelope of a full transaction dump.
type BackupFile struct {
	ExportedAt   time.Time      `json:"exported_at"`
	Count        int            `json:"count"`
	Transactions []*Transaction `json:"transactions"`
}

// DumpTransactions serializes every transaction record to w as indented
// JSON. This is a straight collection-to-JSON dump with no transformation.
func DumpTransactions(app *pocketbase.PocketBase, w io.Writer) error {
	records, err := app.FindAllRecords("transactions")
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}

	backup := BackupFile{
		ExportedAt:   time.Now(),
		Count:        len(records),
		Transactions: make([]*Transaction, 0, len(records)),
	}
	for _, rec := range records {
		backup.Transactions = append(backup.Transactions, transactionFromRecord(rec))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(backup); err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	return nil
}

// RestoreTransactions reads a dump produced by DumpTransactions and recreates
// every record. Restored records get new ids; the restore does not attempt to
// dedupe against existing data.
func RestoreTransactions(app *pocketbase.PocketBase, r io.Reader) (int, error) {
	var backup BackupFile
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return 0, fmt.Errorf("decode backup: %w", err)
	}

	save := SaveTransaction(app)
	restored := 0
	for i, tx := range backup.Transactions {
		if _, err := save(tx); err != nil {
			return restored, fmt.Errorf("restore record %d: %w", i+1, err)
		}
		restored++
	}
	return restored, nil
}

// WipeTransactions deletes every transaction record. Administrative tooling
// only; nothing in the request path calls this.
func WipeTransactions(app *pocketbase.PocketBase) (int, error) {
	records, err := app.FindAllRecords("transactions")
	if err != nil {
		return 0, fmt.Errorf("load transactions: %w", err)
	}

	deleted := 0
	for _, rec := range records {
		if err := app.Delete(rec); err != nil {
			return deleted, fmt.Errorf("delete %s: %w", rec.Id, err)
		}
		deleted++
	}
	return deleted, nil
}
