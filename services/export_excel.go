package services

import (
	"bytes"
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/xuri/excelize/v2"
)

// registerColumns defines the transaction register export layout.
var registerColumns = []struct {
	ref    string
	title  string
	width  float64
	getter func(tx *Transaction) any
}{
	{"A", "Budget Code", 16, func(tx *Transaction) any { return tx.BudgetCode }},
	{"B", "Date Received", 14, func(tx *Transaction) any { return tx.DateReceived.Format("2006-01-02") }},
	{"C", "Activity", 40, func(tx *Transaction) any { return tx.Activity }},
	{"D", "Campus", 16, func(tx *Transaction) any { return tx.Campus }},
	{"E", "College", 10, func(tx *Transaction) any { return tx.College }},
	{"F", "Status", 12, func(tx *Transaction) any { return tx.Status }},
	{"G", "Amount", 16, func(tx *Transaction) any { return tx.Amount }},
	{"H", "Obligated", 16, func(tx *Transaction) any { return tx.ObligationAmount }},
	{"I", "Disbursed", 16, func(tx *Transaction) any { return tx.DVAmount }},
	{"J", "Fund Source", 18, func(tx *Transaction) any { return tx.FundSource }},
	{"K", "Beneficiaries", 13, func(tx *Transaction) any { return tx.Total }},
	{"L", "Remarks", 30, func(tx *Transaction) any { return tx.Remarks }},
}

// GenerateRegisterExcel exports all transactions of one sheet (or every sheet
// when sheet is empty) as a downloadable .xlsx register.
func GenerateRegisterExcel(app *pocketbase.PocketBase, sheet string) ([]byte, error) {
	filter := ""
	params := map[string]any{}
	if sheet != "" {
		filter = "sheet = {:sheet}"
		params["sheet"] = sheet
	}

	records, err := app.FindRecordsByFilter("transactions", filter, "-date_received", 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Register"
	if sheet != "" {
		sheetName = ShapeLabel(sheet)
		if len(sheetName) > 31 {
			sheetName = sheetName[:31]
		}
	}
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#B91C1C"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create cell style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{
		NumFmt: 4, // #,##0.00
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create amount style: %w", err)
	}

	for _, col := range registerColumns {
		f.SetCellValue(sheetName, col.ref+"1", col.title)
		f.SetColWidth(sheetName, col.ref, col.ref, col.width)
	}
	lastCol := registerColumns[len(registerColumns)-1].ref
	f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle)

	for i, rec := range records {
		tx := transactionFromRecord(rec)
		rowRef := fmt.Sprintf("%d", i+2)
		for _, col := range registerColumns {
			f.SetCellValue(sheetName, col.ref+rowRef, col.getter(tx))
		}
		f.SetCellStyle(sheetName, "A"+rowRef, lastCol+rowRef, cellStyle)
		f.SetCellStyle(sheetName, "G"+rowRef, "I"+rowRef, amountStyle)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write register: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateErrorReport creates a downloadable .xlsx file listing the per-row
// failures of an import run.
func GenerateErrorReport(messages []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errors"
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	f.SetCellValue(sheet, "A1", "#")
	f.SetCellValue(sheet, "B1", "Error")
	f.SetCellStyle(sheet, "A1", "B1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 6)
	f.SetColWidth(sheet, "B", "B", 80)

	for i, msg := range messages {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, i+1)
		f.SetCellValue(sheet, "B"+row, msg)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
