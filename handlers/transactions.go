package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"budgetmonitor/services"
)

// transactionForm is the JSON body accepted by create and update.
type transactionForm struct {
	BudgetCode   string  `json:"budget_code"`
	DateReceived string  `json:"date_received"`
	Program      string  `json:"program"`
	Project      string  `json:"project"`
	Activity     string  `json:"activity"`
	Campus       string  `json:"campus"`
	College      string  `json:"college"`
	Male         int     `json:"male"`
	Female       int     `json:"female"`
	Total        int     `json:"total"`
	Amount       float64 `json:"amount"`
	Sheet        string  `json:"sheet"`
	FundCategory string  `json:"fund_category"`
	FundSource   string  `json:"fund_source"`
	Remarks      string  `json:"remarks"`
}

// HandleTransactionList returns transactions, newest first, optionally
// filtered by sheet, status and campus query parameters.
// Route: GET /api/ext/transactions
func HandleTransactionList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		query := e.Request.URL.Query()

		filter := "id != ''"
		params := map[string]any{}
		if sheet := query.Get("sheet"); sheet != "" {
			if !services.IsValidSheet(sheet) {
				return apiError(e, http.StatusBadRequest, "unknown sheet "+sheet)
			}
			filter += " && sheet = {:sheet}"
			params["sheet"] = sheet
		}
		if status := query.Get("status"); status != "" {
			filter += " && status = {:status}"
			params["status"] = status
		}
		if campus := query.Get("campus"); campus != "" {
			filter += " && campus = {:campus}"
			params["campus"] = campus
		}

		records, err := app.FindRecordsByFilter("transactions", filter, "-date_received", 0, 0, params)
		if err != nil {
			log.Printf("transaction_list: %v", err)
			return apiError(e, http.StatusInternalServerError, "failed to load transactions")
		}

		items := make([]*services.Transaction, 0, len(records))
		for _, rec := range records {
			items = append(items, services.TransactionFromRecord(rec))
		}
		return e.JSON(http.StatusOK, map[string]any{
			"total": len(items),
			"items": items,
		})
	}
}

// HandleTransactionView returns one transaction by id.
// Route: GET /api/ext/transactions/{id}
func HandleTransactionView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("transactions", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "transaction not found")
		}
		return e.JSON(http.StatusOK, services.TransactionFromRecord(record))
	}
}

// HandleTransactionCreate creates one transaction from a submitted form.
// Empty-looking submissions (no budget code, activity or amount) are rejected
// the same way the importer rejects noise rows. A missing budget code is
// generated; a missing sheet defaults to the proposal log.
// Route: POST /api/ext/transactions
func HandleTransactionCreate(app *pocketbase.PocketBase, reg *services.Registry, cache *services.Cache) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var form transactionForm
		if err := e.BindBody(&form); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid request body")
		}

		if form.BudgetCode == "" && form.Activity == "" && form.Amount == 0 {
			return apiError(e, http.StatusBadRequest,
				"a transaction needs a budget code, an activity name or an amount")
		}
		if form.Amount < 0 {
			return apiError(e, http.StatusBadRequest, "amount cannot be negative")
		}
		if form.Sheet == "" {
			form.Sheet = services.SheetProposal
		}
		if !services.IsValidSheet(form.Sheet) {
			return apiError(e, http.StatusBadRequest, "unknown sheet "+form.Sheet)
		}

		now := time.Now()
		budgetCode := form.BudgetCode
		if budgetCode == "" {
			var err error
			budgetCode, err = services.NextBudgetCode(app, now)
			if err != nil {
				log.Printf("transaction_create: budget code: %v", err)
				return apiError(e, http.StatusInternalServerError, "failed to generate budget code")
			}
		}

		male, female, total := form.Male, form.Female, form.Total
		if male < 0 || female < 0 || total < 0 {
			return apiError(e, http.StatusBadRequest, "beneficiary counts cannot be negative")
		}
		if male > 0 || female > 0 {
			total = male + female
		}

		tx := &services.Transaction{
			BudgetCode:   budgetCode,
			Status:       services.StatusDraft,
			DateReceived: services.ParseFlexibleDate(form.DateReceived, now),
			Program:      form.Program,
			Project:      form.Project,
			Activity:     form.Activity,
			Campus:       reg.ResolveCampus(form.Campus),
			College:      reg.ResolveCollege(form.College),
			Male:         male,
			Female:       female,
			Total:        total,
			Amount:       form.Amount,
			Sheet:        form.Sheet,
			FundCategory: form.FundCategory,
			FundSource:   form.FundSource,
			Remarks:      form.Remarks,
			TrackingNo:   uuid.NewString(),
			CreatedBy:    currentUserID(e),
		}

		id, err := services.SaveTransaction(app)(tx)
		if err != nil {
			log.Printf("transaction_create: %v", err)
			return apiError(e, http.StatusInternalServerError, "failed to save transaction")
		}
		cache.InvalidatePrefix("dashboard:")

		tx.ID = id
		return e.JSON(http.StatusCreated, tx)
	}
}

// HandleTransactionUpdate edits the mutable fields of one transaction.
// Status is not editable here; it only changes through transition actions.
// Route: PATCH /api/ext/transactions/{id}
func HandleTransactionUpdate(app *pocketbase.PocketBase, reg *services.Registry, cache *services.Cache) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("transactions", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "transaction not found")
		}

		var form map[string]any
		if err := e.BindBody(&form); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid request body")
		}

		// Only the plain data fields are writable through this endpoint.
		editable := []string{
			"budget_code", "program", "project", "activity", "college",
			"amount", "fund_category", "fund_source", "obligation_no",
			"obligation_amount", "dv_no", "dv_amount", "pr_no", "pr_amount",
			"payee", "remarks",
		}
		for _, key := range editable {
			if val, ok := form[key]; ok {
				record.Set(key, val)
			}
		}
		if val, ok := form["campus"]; ok {
			if s, isString := val.(string); isString {
				record.Set("campus", reg.ResolveCampus(s))
			}
		}
		if val, ok := form["date_received"]; ok {
			if s, isString := val.(string); isString {
				record.Set("date_received", services.ParseFlexibleDate(s, time.Now()))
			}
		}

		if err := app.Save(record); err != nil {
			log.Printf("transaction_update: %v", err)
			return apiError(e, http.StatusBadRequest, "failed to save transaction")
		}
		cache.InvalidatePrefix("dashboard:")

		return e.JSON(http.StatusOK, services.TransactionFromRecord(record))
	}
}

// HandleTransactionTransition applies an approve/return/reject action.
// Route: POST /api/ext/transactions/{id}/{action}
func HandleTransactionTransition(app *pocketbase.PocketBase, cache *services.Cache) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		action := services.TransitionAction(e.Request.PathValue("action"))
		switch action {
		case services.ActionApprove, services.ActionReturn, services.ActionReject:
		default:
			return apiError(e, http.StatusBadRequest, "unknown action "+string(action))
		}

		next, err := services.ApplyTransition(app, e.Request.PathValue("id"), action)
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}
		cache.InvalidatePrefix("dashboard:")

		return e.JSON(http.StatusOK, map[string]string{"status": next})
	}
}
