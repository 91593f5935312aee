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

// previewRowLimit caps how many data rows the preview response echoes for
// on-screen review. The commit payload always carries the full set.
const previewRowLimit = 10

// importPreviewResponse is returned by the upload step: the detected shape
// for the user to confirm or override, plus the parsed file so the commit
// request can round-trip it without re-uploading.
type importPreviewResponse struct {
	Classification services.ClassificationResult `json:"classification"`
	Headers        []string                      `json:"headers"`
	TotalRows      int                           `json:"total_rows"`
	Preview        [][]string                    `json:"preview"`
	Rows           [][]string                    `json:"rows"`
}

// importCommitRequest is the JSON body of the commit step.
type importCommitRequest struct {
	Sheet   string     `json:"sheet"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// HandleImportPreview receives a file upload, parses it and classifies its
// header row. Nothing is persisted; the user reviews the detection before
// committing.
// Route: POST /api/ext/import/preview
func HandleImportPreview(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		// Max 10MB upload, same bound as the office's spreadsheets need.
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return apiError(e, http.StatusBadRequest, "file too large or invalid form data")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return apiError(e, http.StatusBadRequest, "please select a file to upload")
		}
		defer file.Close()

		headers, rows, err := services.ParseImportFile(file, header.Filename)
		if err != nil {
			log.Printf("import_preview: %v", err)
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		result := services.DetectShape(headers)

		preview := rows
		if len(preview) > previewRowLimit {
			preview = preview[:previewRowLimit]
		}

		return e.JSON(http.StatusOK, importPreviewResponse{
			Classification: result,
			Headers:        headers,
			TotalRows:      len(rows),
			Preview:        preview,
			Rows:           rows,
		})
	}
}

// HandleImportCommit runs the import driver over the confirmed rows. The run
// is fail-soft; the response carries the aggregate outcome with per-row error
// messages.
// Route: POST /api/ext/import/commit
func HandleImportCommit(app *pocketbase.PocketBase, reg *services.Registry, cache *services.Cache) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req importCommitRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid request body")
		}
		if !services.IsValidSheet(req.Sheet) {
			return apiError(e, http.StatusBadRequest, "unknown sheet "+req.Sheet)
		}
		if len(req.Headers) == 0 || len(req.Rows) == 0 {
			return apiError(e, http.StatusBadRequest,
				"file data missing; please re-upload and try again")
		}

		outcome := reg.RunImport(
			services.SaveTransaction(app),
			req.Headers,
			req.Rows,
			req.Sheet,
			currentUserID(e),
			func(done, total int) {
				if done%100 == 0 || done == total {
					log.Printf("import: %d/%d rows processed", done, total)
				}
			},
		)
		cache.InvalidatePrefix("dashboard:")

		return e.JSON(http.StatusOK, outcome)
	}
}

// HandleImportErrorReport downloads the failures of an import run as an
// Excel file.
// Route: POST /api/ext/import/errors
func HandleImportErrorReport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var messages []string
		if err := e.BindBody(&messages); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid error data")
		}

		xlsxBytes, err := services.GenerateErrorReport(messages)
		if err != nil {
			log.Printf("import_error_report: %v", err)
			return apiError(e, http.StatusInternalServerError, "something went wrong, please try again")
		}

		filename := fmt.Sprintf("Import_Errors_%s.xlsx", time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleShapeList returns the registered shape templates so the client can
// render the override dropdown.
// Route: GET /api/ext/import/shapes
func HandleShapeList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		type shapeInfo struct {
			Sheet    string   `json:"sheet"`
			Label    string   `json:"label"`
			Keywords []string `json:"keywords"`
		}
		templates := services.ShapeTemplates()
		out := make([]shapeInfo, 0, len(templates))
		for _, tpl := range templates {
			out = append(out, shapeInfo{Sheet: tpl.Sheet, Label: tpl.Label, Keywords: tpl.Keywords})
		}
		return e.JSON(http.StatusOK, out)
	}
}
