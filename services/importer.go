package services

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"
)

// ImportOutcome is the aggregate result of one import run.
type ImportOutcome struct {
	TotalRows int      `json:"total_rows"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// SaveFunc persists one mapped transaction and returns the new record id.
type SaveFunc func(tx *Transaction) (string, error)

// ProgressFunc receives (rows processed so far, total rows) after every row.
type ProgressFunc func(done, total int)

// ParseImportFile reads an uploaded file into a header row plus data rows.
// CSV files go through the quote-aware tokenizer; .xlsx files are read from
// their first sheet. An unreadable or empty file is the only fatal error in
// the import flow.
func ParseImportFile(file io.Reader, fileName string) ([]string, [][]string, error) {
	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"), strings.HasSuffix(lowerName, ".txt"):
		return parseDelimited(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		return parseWorkbook(file)
	default:
		return nil, nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
}

// parseDelimited tokenizes comma-separated text, first line as headers.
func parseDelimited(file io.Reader) ([]string, [][]string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, fmt.Errorf("read uploaded file: %w", err)
	}

	lines := SplitLines(string(data))
	if len(lines) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	headers := SplitLine(lines[0])
	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		rows = append(rows, SplitLine(line))
	}
	return headers, rows, nil
}

// parseWorkbook reads headers + data rows from the first sheet of an xlsx
// workbook.
func parseWorkbook(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	// GetRows drops trailing empty cells, so a row whose last columns are
	// blank comes back shorter than the header row. Pad back to header width;
	// the strict field-count check is for delimited text, not workbooks.
	headers := rows[0]
	data := rows[1:]
	for i, row := range data {
		if len(row) < len(headers) {
			padded := make([]string, len(headers))
			copy(padded, row)
			data[i] = padded
		}
	}
	return headers, data, nil
}

// RunImport iterates data rows in file order, maps each against the confirmed
// sheet and persists it. The run is fail-soft: a bad row never aborts the
// rest.
//
// Per-row policy: a field-count mismatch is a malformed row and is skipped
// with a log trace; an unmappable row (no budget code, activity or amount) is
// skipped silently; a persistence failure counts as a failed row with a
// 1-based row number in the message. Writes are sequential and awaited — no
// batching, and rows already written stay written if the caller goes away.
func (r *Registry) RunImport(
	save SaveFunc,
	headers []string,
	rows [][]string,
	sheet string,
	userID string,
	progress ProgressFunc,
) ImportOutcome {
	outcome := ImportOutcome{TotalRows: len(rows)}
	now := time.Now()

	for i, values := range rows {
		rowNum := i + 1

		if len(values) != len(headers) {
			log.Printf("import: row %d has %d fields, expected %d, skipping",
				rowNum, len(values), len(headers))
			reportProgress(progress, rowNum, len(rows))
			continue
		}

		tx := r.MapRow(NewRawRow(headers, values), sheet, userID, now)
		if tx == nil {
			reportProgress(progress, rowNum, len(rows))
			continue
		}

		if _, err := save(tx); err != nil {
			outcome.Failed++
			outcome.Errors = append(outcome.Errors,
				fmt.Sprintf("row %d: %s", rowNum, err.Error()))
		} else {
			outcome.Succeeded++
		}
		reportProgress(progress, rowNum, len(rows))
	}

	return outcome
}

func reportProgress(progress ProgressFunc, done, total int) {
	if progress != nil {
		progress(done, total)
	}
}

// SaveTransaction returns a SaveFunc that persists transactions to the
// transactions collection.
func SaveTransaction(app *pocketbase.PocketBase) SaveFunc {
	return func(tx *Transaction) (string, error) {
		col, err := app.FindCollectionByNameOrId("transactions")
		if err != nil {
			return "", fmt.Errorf("transactions collection not found: %w", err)
		}

		record := core.NewRecord(col)
		applyTransaction(record, tx)
		if err := app.Save(record); err != nil {
			return "", err
		}
		return record.Id, nil
	}
}

// applyTransaction copies a Transaction's fields onto a record.
func applyTransaction(record *core.Record, tx *Transaction) {
	record.Set("budget_code", tx.BudgetCode)
	record.Set("status", tx.Status)
	record.Set("date_received", tx.DateReceived)
	record.Set("program", tx.Program)
	record.Set("project", tx.Project)
	record.Set("activity", tx.Activity)
	record.Set("campus", tx.Campus)
	record.Set("college", tx.College)
	record.Set("male", tx.Male)
	record.Set("female", tx.Female)
	record.Set("total", tx.Total)
	record.Set("amount", tx.Amount)
	record.Set("sheet", tx.Sheet)
	record.Set("fund_category", tx.FundCategory)
	record.Set("fund_source", tx.FundSource)
	record.Set("obligation_no", tx.ObligationNo)
	if !tx.ObligationDate.IsZero() {
		record.Set("obligation_date", tx.ObligationDate)
	}
	record.Set("obligation_amount", tx.ObligationAmount)
	record.Set("dv_no", tx.DVNo)
	record.Set("dv_amount", tx.DVAmount)
	record.Set("pr_no", tx.PRNo)
	record.Set("pr_amount", tx.PRAmount)
	record.Set("payee", tx.Payee)
	record.Set("remarks", tx.Remarks)
	record.Set("tracking_no", tx.TrackingNo)
	record.Set("created_by", tx.CreatedBy)
}

// transactionFromRecord rebuilds a Transaction from a stored record.
func transactionFromRecord(record *core.Record) *Transaction {
	return &Transaction{
		ID:               record.Id,
		BudgetCode:       record.GetString("budget_code"),
		Status:           record.GetString("status"),
		DateReceived:     record.GetDateTime("date_received").Time(),
		Program:          record.GetString("program"),
		Project:          record.GetString("project"),
		Activity:         record.GetString("activity"),
		Campus:           record.GetString("campus"),
		College:          record.GetString("college"),
		Male:             record.GetInt("male"),
		Female:           record.GetInt("female"),
		Total:            record.GetInt("total"),
		Amount:           record.GetFloat("amount"),
		Sheet:            record.GetString("sheet"),
		FundCategory:     record.GetString("fund_category"),
		FundSource:       record.GetString("fund_source"),
		ObligationNo:     record.GetString("obligation_no"),
		ObligationDate:   record.GetDateTime("obligation_date").Time(),
		ObligationAmount: record.GetFloat("obligation_amount"),
		DVNo:             record.GetString("dv_no"),
		DVAmount:         record.GetFloat("dv_amount"),
		PRNo:             record.GetString("pr_no"),
		PRAmount:         record.GetFloat("pr_amount"),
		Payee:            record.GetString("payee"),
		Remarks:          record.GetString("remarks"),
		TrackingNo:       record.GetString("tracking_no"),
		CreatedBy:        record.GetString("created_by"),
	}
}

// TransactionFromRecord is the exported form used by handlers when shaping
// list and detail responses.
func TransactionFromRecord(record *core.Record) *Transaction {
	return transactionFromRecord(record)
}
