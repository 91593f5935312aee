package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"budgetmonitor/services"
)

// HandleRegisterExport downloads the transaction register as an Excel file,
// optionally filtered to one sheet via the ?sheet= query parameter.
// Route: GET /api/ext/export/excel
func HandleRegisterExport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sheet := e.Request.URL.Query().Get("sheet")
		if sheet != "" && !services.IsValidSheet(sheet) {
			return apiError(e, http.StatusBadRequest, "unknown sheet "+sheet)
		}

		xlsxBytes, err := services.GenerateRegisterExcel(app, sheet)
		if err != nil {
			log.Printf("register_export: %v", err)
			return apiError(e, http.StatusInternalServerError, "failed to generate register")
		}

		name := "All"
		if sheet != "" {
			name = services.ShapeLabel(sheet)
		}
		filename := fmt.Sprintf("Budget_Register_%s_%s.xlsx", name, time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleSummaryPDF downloads the dashboard summary as a PDF report.
// Route: GET /api/ext/export/pdf
func HandleSummaryPDF(app *pocketbase.PocketBase, cache *services.Cache) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var summary *services.DashboardSummary
		if cached, ok := cache.Get(dashboardCacheKey); ok {
			summary, _ = cached.(*services.DashboardSummary)
		}
		if summary == nil {
			var err error
			summary, err = services.Summarize(app)
			if err != nil {
				log.Printf("summary_pdf: %v", err)
				return apiError(e, http.StatusInternalServerError, "failed to build summary")
			}
			cache.Set(dashboardCacheKey, summary)
		}

		pdfBytes, err := services.GenerateSummaryPDF(summary, time.Now())
		if err != nil {
			log.Printf("summary_pdf: %v", err)
			return apiError(e, http.StatusInternalServerError, "failed to generate PDF")
		}

		filename := fmt.Sprintf("Budget_Summary_%s.pdf", time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleBackupDump streams a full JSON dump of the transactions collection.
// Route: GET /api/ext/export/json
func HandleBackupDump(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filename := fmt.Sprintf("Budget_Backup_%s.json", time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Type", "application/json")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))

		if err := services.DumpTransactions(app, e.Response); err != nil {
			log.Printf("backup_dump: %v", err)
			return apiError(e, http.StatusInternalServerError, "failed to dump transactions")
		}
		return nil
	}
}

// HandleBackupRestore recreates transactions from an uploaded JSON dump.
// Route: POST /api/ext/import/json
func HandleBackupRestore(app *pocketbase.PocketBase, cache *services.Cache) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(32 << 20); err != nil {
			return apiError(e, http.StatusBadRequest, "file too large or invalid form data")
		}
		file, _, err := e.Request.FormFile("file")
		if err != nil {
			return apiError(e, http.StatusBadRequest, "please select a backup file to upload")
		}
		defer file.Close()

		restored, err := services.RestoreTransactions(app, file)
		if err != nil {
			log.Printf("backup_restore: %v", err)
			return apiError(e, http.StatusBadRequest, err.Error())
		}
		cache.InvalidatePrefix("dashboard:")

		return e.JSON(http.StatusOK, map[string]int{"restored": restored})
	}
}
