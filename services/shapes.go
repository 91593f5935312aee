package services

// Sheet names identify the six record shapes the office works with, one per
// phase of the budget lifecycle. They double as the value set of the
// transactions collection's "sheet" field.
const (
	SheetWorkPlan     = "workplan"
	SheetProposal     = "proposal"
	SheetMonitoring   = "monitoring"
	SheetSupplemental = "supplemental"
	SheetPreApproval  = "preapproval"
	SheetPostApproval = "postapproval"
)

// Transaction statuses, in lifecycle order. Rejected and Returned are
// terminal side exits.
const (
	StatusDraft      = "Draft"
	StatusEvaluation = "Evaluation"
	StatusProposal   = "Proposal"
	StatusPR         = "PR"
	StatusObligated  = "Obligated"
	StatusDisbursed  = "Disbursed"
	StatusRejected   = "Rejected"
	StatusReturned   = "Returned"
)

// AllStatuses lists every valid status value, used for the collection schema.
func AllStatuses() []string {
	return []string{
		StatusDraft, StatusEvaluation, StatusProposal, StatusPR,
		StatusObligated, StatusDisbursed, StatusRejected, StatusReturned,
	}
}

// AllSheets lists the six shapes in registration order. The classifier breaks
// score ties by this order, first wins.
func AllSheets() []string {
	return []string{
		SheetWorkPlan, SheetProposal, SheetMonitoring,
		SheetSupplemental, SheetPreApproval, SheetPostApproval,
	}
}

// ShapeTemplate is the static header vocabulary of one sheet shape.
// Templates are fixed configuration; nothing creates or mutates them at
// runtime.
type ShapeTemplate struct {
	Sheet    string
	Label    string
	Keywords []string
}

// shapeTemplates holds the expected header keywords per sheet, in
// registration order. Matching is case-insensitive substring containment in
// either direction, so short forms like "dv no" still hit headers like
// "DV No.".
var shapeTemplates = []ShapeTemplate{
	{
		Sheet: SheetWorkPlan,
		Label: "Work Plan Activities",
		Keywords: []string{
			"program", "project", "activity", "date", "campus",
			"fund source", "budget", "male", "female", "beneficiaries",
		},
	},
	{
		Sheet: SheetProposal,
		Label: "Proposal Log",
		Keywords: []string{
			"budget code", "date received", "program", "activity",
			"campus", "college", "amount requested", "status", "remarks",
		},
	},
	{
		Sheet: SheetMonitoring,
		Label: "Detailed Monitoring",
		Keywords: []string{
			"budget code", "activity", "amount", "obligation",
			"obligation date", "dv no", "disbursed", "balance", "status",
		},
	},
	{
		Sheet: SheetSupplemental,
		Label: "Supplemental Monitoring",
		Keywords: []string{
			"supplemental", "budget code", "activity", "amount",
			"obligation", "fund source", "remarks",
		},
	},
	{
		Sheet: SheetPreApproval,
		Label: "Pre-Approval Fund Log",
		Keywords: []string{
			"tracking", "date received", "particulars", "payee",
			"amount", "pr no", "process",
		},
	},
	{
		Sheet: SheetPostApproval,
		Label: "Post-Approval Allocation Log",
		Keywords: []string{
			"allocation", "obligated", "disbursed", "payee",
			"dv no", "pr amount", "fund category",
		},
	},
}

// ShapeTemplates returns the registered templates in classifier order.
func ShapeTemplates() []ShapeTemplate {
	return shapeTemplates
}

// ShapeLabel returns the human-readable name of a sheet, or the sheet value
// itself when unknown.
func ShapeLabel(sheet string) string {
	for _, tpl := range shapeTemplates {
		if tpl.Sheet == sheet {
			return tpl.Label
		}
	}
	return sheet
}

// IsValidSheet reports whether sheet is one of the six registered shapes.
func IsValidSheet(sheet string) bool {
	for _, tpl := range shapeTemplates {
		if tpl.Sheet == sheet {
			return true
		}
	}
	return false
}

// sheetTracksBeneficiaries reports whether a shape carries real beneficiary
// counts. The monitoring and fund-log shapes force them to zero; that is an
// office business rule, not a data gap.
func sheetTracksBeneficiaries(sheet string) bool {
	return sheet == SheetWorkPlan || sheet == SheetProposal
}
