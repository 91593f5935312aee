package services

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pocketbase/pocketbase"
)

// budgetCodeMu serializes code generation so two concurrent submissions in
// the same process cannot read the same maximum and collide. Across
// processes the scan-then-write pattern still has no uniqueness guarantee;
// the office runs a single instance.
var budgetCodeMu sync.Mutex

// budgetCodePrefix builds the yearly extension-services prefix, e.g.
// "EXT-2026-".
func budgetCodePrefix(t time.Time) string {
	return fmt.Sprintf("EXT-%d-", t.Year())
}

// formatBudgetCode constructs the code string from prefix and sequence.
func formatBudgetCode(prefix string, sequence int) string {
	return fmt.Sprintf("%s%04d", prefix, sequence)
}

// NextBudgetCode generates the next free budget code for the current year.
// It scans existing codes sharing the year prefix, takes the highest numeric
// suffix and adds one, so deleting records never causes a lower number to be
// reissued.
func NextBudgetCode(app *pocketbase.PocketBase, now time.Time) (string, error) {
	budgetCodeMu.Lock()
	defer budgetCodeMu.Unlock()

	prefix := budgetCodePrefix(now)

	records, err := app.FindRecordsByFilter(
		"transactions",
		"budget_code ~ {:prefix}",
		"", 0, 0,
		map[string]any{"prefix": prefix + "%"},
	)
	if err != nil {
		// No collection or no matches yet: start the year at 1.
		records = nil
	}

	maxSeq := 0
	for _, rec := range records {
		code := rec.GetString("budget_code")
		if !strings.HasPrefix(code, prefix) {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimPrefix(code, prefix)); err == nil && n > maxSeq {
			maxSeq = n
		}
	}

	return formatBudgetCode(prefix, maxSeq+1), nil
}
