package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
)

// GroupTotals aggregates the transactions of one grouping bucket.
type GroupTotals struct {
	Count         int     `json:"count"`
	Requested     float64 `json:"requested"`
	Obligated     float64 `json:"obligated"`
	Disbursed     float64 `json:"disbursed"`
	Beneficiaries int     `json:"beneficiaries"`
}

// DashboardSummary is the aggregated financial view surfaced to the
// monitoring dashboard.
type DashboardSummary struct {
	Overall      GroupTotals            `json:"overall"`
	ByStatus     map[string]GroupTotals `json:"by_status"`
	ByCampus     map[string]GroupTotals `json:"by_campus"`
	BySheet      map[string]GroupTotals `json:"by_sheet"`
	ByFundSource map[string]GroupTotals `json:"by_fund_source"`
}

// Summarize scans every transaction and aggregates totals overall and by
// status, campus, sheet and fund source.
func Summarize(app *pocketbase.PocketBase) (*DashboardSummary, error) {
	records, err := app.FindAllRecords("transactions")
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	summary := &DashboardSummary{
		ByStatus:     make(map[string]GroupTotals),
		ByCampus:     make(map[string]GroupTotals),
		BySheet:      make(map[string]GroupTotals),
		ByFundSource: make(map[string]GroupTotals),
	}

	for _, rec := range records {
		tx := transactionFromRecord(rec)

		accumulate(&summary.Overall, tx)
		accumulateKey(summary.ByStatus, tx.Status, tx)
		accumulateKey(summary.ByCampus, tx.Campus, tx)
		accumulateKey(summary.BySheet, tx.Sheet, tx)
		if tx.FundSource != "" {
			accumulateKey(summary.ByFundSource, tx.FundSource, tx)
		}
	}

	return summary, nil
}

func accumulate(g *GroupTotals, tx *Transaction) {
	g.Count++
	g.Requested += tx.Amount
	g.Obligated += tx.ObligationAmount
	g.Disbursed += tx.DVAmount
	g.Beneficiaries += tx.Total
}

func accumulateKey(m map[string]GroupTotals, key string, tx *Transaction) {
	if key == "" {
		key = "(unspecified)"
	}
	g := m[key]
	accumulate(&g, tx)
	m[key] = g
}
