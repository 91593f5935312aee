package services

import (
	"strings"
	"time"
)

// RawRow is one data line keyed by its (lowercased) column header. The
// original column order is kept so synonym lookups resolve deterministically.
type RawRow struct {
	headers []string
	values  map[string]string
}

// NewRawRow zips a header row and a data row into a RawRow. Header text is
// lowercased and trimmed so lookups are case-insensitive; a duplicate header
// keeps the rightmost value.
func NewRawRow(headers, values []string) RawRow {
	row := RawRow{values: make(map[string]string, len(headers))}
	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(h))
		if key == "" || i >= len(values) {
			continue
		}
		if _, ok := row.values[key]; !ok {
			row.headers = append(row.headers, key)
		}
		row.values[key] = strings.TrimSpace(values[i])
	}
	return row
}

// First returns the first non-empty value among the given header synonyms.
// Exact header matches are tried before substring matches, so "amount" still
// finds an "Amount Requested (PHP)" column when no plain "amount" column
// exists. The substring pass walks headers in column order; when two columns
// both contain the synonym, the leftmost one wins, every time.
func (r RawRow) First(keys ...string) string {
	for _, key := range keys {
		key = strings.ToLower(key)
		if v, ok := r.values[key]; ok && v != "" {
			return v
		}
	}
	for _, key := range keys {
		key = strings.ToLower(key)
		for _, header := range r.headers {
			if v := r.values[header]; v != "" && strings.Contains(header, key) {
				return v
			}
		}
	}
	return ""
}

// Transaction is the normalized record written to the transactions
// collection, one per imported row or submitted form.
type Transaction struct {
	ID               string    `json:"id,omitempty"`
	BudgetCode       string    `json:"budget_code"`
	Status           string    `json:"status"`
	DateReceived     time.Time `json:"date_received"`
	Program          string    `json:"program"`
	Project          string    `json:"project"`
	Activity         string    `json:"activity"`
	Campus           string    `json:"campus"`
	College          string    `json:"college,omitempty"`
	Male             int       `json:"male"`
	Female           int       `json:"female"`
	Total            int       `json:"total"`
	Amount           float64   `json:"amount"`
	Sheet            string    `json:"sheet"`
	FundCategory     string    `json:"fund_category"`
	FundSource       string    `json:"fund_source"`
	ObligationNo     string    `json:"obligation_no,omitempty"`
	ObligationDate   time.Time `json:"obligation_date,omitempty"`
	ObligationAmount float64   `json:"obligation_amount,omitempty"`
	DVNo             string    `json:"dv_no,omitempty"`
	DVAmount         float64   `json:"dv_amount,omitempty"`
	PRNo             string    `json:"pr_no,omitempty"`
	PRAmount         float64   `json:"pr_amount,omitempty"`
	Payee            string    `json:"payee,omitempty"`
	Remarks          string    `json:"remarks,omitempty"`
	TrackingNo       string    `json:"tracking_no,omitempty"`
	CreatedBy        string    `json:"created_by"`
}

// statusKeywords maps free-text status/process fragments to canonical
// statuses. Checked in order; late-stage fragments come first so text like
// "obligated, for disbursement" resolves to the later stage, and the short
// "pr" fragment sits near the end where longer words cannot shadow it.
var statusKeywords = []struct {
	fragment string
	status   string
}{
	{"disburs", StatusDisbursed},
	{"obligat", StatusObligated},
	{"reject", StatusRejected},
	{"denied", StatusRejected},
	{"return", StatusReturned},
	{"evaluat", StatusEvaluation},
	{"review", StatusEvaluation},
	{"propos", StatusProposal},
	{"approv", StatusObligated},
	{"draft", StatusDraft},
	{"pr", StatusPR},
}

// defaultStatusForSheet is the status assumed when the row's status text
// matches no keyword. Monitoring rows exist because money moved, so they
// default to Obligated; fund-log rows default to PR; work-plan rows are
// pre-submission drafts; everything else starts at Proposal.
func defaultStatusForSheet(sheet string) string {
	switch sheet {
	case SheetMonitoring, SheetSupplemental, SheetPostApproval:
		return StatusObligated
	case SheetPreApproval:
		return StatusPR
	case SheetWorkPlan:
		return StatusDraft
	default:
		return StatusProposal
	}
}

// deriveStatus resolves free-text status to a canonical status value.
func deriveStatus(text, sheet string) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower != "" {
		for _, kw := range statusKeywords {
			if strings.Contains(lower, kw.fragment) {
				return kw.status
			}
		}
	}
	return defaultStatusForSheet(sheet)
}

// MapRow converts one classified row into a Transaction, applying the
// stage-specific field rules of the active sheet. It returns nil when the row
// carries no budget code, no activity name and no amount — such rows are
// noise (subtotals, blank padding) and are not persisted.
func (r *Registry) MapRow(row RawRow, sheet, userID string, now time.Time) *Transaction {
	budgetCode := row.First("budget code", "code")
	activity := row.First("activity", "title of activity", "particulars", "title")
	amount := ParseAmount(row.First("amount requested", "amount", "budget", "requested"))

	if budgetCode == "" && activity == "" && amount == 0 {
		return nil
	}

	tx := &Transaction{
		BudgetCode:   budgetCode,
		Status:       deriveStatus(row.First("status", "process", "stage"), sheet),
		DateReceived: ParseFlexibleDate(row.First("date received", "date"), now),
		Program:      row.First("program"),
		Project:      row.First("project"),
		Activity:     activity,
		Campus:       r.ResolveCampus(row.First("campus", "implementing unit", "station")),
		College:      r.ResolveCollege(row.First("college", "department", "unit")),
		Amount:       amount,
		Sheet:        sheet,
		FundCategory: row.First("fund category", "category"),
		FundSource:   row.First("fund source", "source of fund", "source"),
		Remarks:      row.First("remarks", "notes"),
		TrackingNo:   row.First("tracking"),
		CreatedBy:    userID,
	}

	if sheetTracksBeneficiaries(sheet) {
		tx.Male = parseCount(row.First("male", "no. of male"))
		tx.Female = parseCount(row.First("female", "no. of female"))
		if tx.Male > 0 || tx.Female > 0 {
			// With a gender breakdown present the total is always
			// reconcilable as male+female.
			tx.Total = tx.Male + tx.Female
		} else {
			tx.Total = parseCount(row.First("total beneficiaries", "beneficiaries", "total"))
		}
	}

	// Stage-specific optionals only exist on the shapes that track them.
	switch sheet {
	case SheetMonitoring, SheetSupplemental, SheetPostApproval:
		tx.ObligationNo = row.First("obligation no", "obligation number", "ors no")
		if v := row.First("obligation date"); v != "" {
			tx.ObligationDate = ParseFlexibleDate(v, now)
		}
		tx.ObligationAmount = ParseAmount(row.First("obligation amount", "obligated", "obligation"))
		tx.DVNo = row.First("dv no", "disbursement voucher")
		tx.DVAmount = ParseAmount(row.First("dv amount", "disbursed"))
		tx.Payee = row.First("payee", "supplier", "claimant")
	case SheetPreApproval:
		tx.PRNo = row.First("pr no", "pr number", "purchase request")
		tx.PRAmount = ParseAmount(row.First("pr amount"))
		tx.Payee = row.First("payee", "supplier")
	}
	if sheet == SheetPostApproval {
		tx.PRNo = row.First("pr no", "pr number")
		tx.PRAmount = ParseAmount(row.First("pr amount"))
	}

	return tx
}

// parseCount parses a beneficiary count, tolerating thousands separators,
// junk and negatives the same way amounts do.
func parseCount(s string) int {
	return int(ParseAmount(s))
}
