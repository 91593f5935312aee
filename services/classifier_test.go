package services

import "testing"

func TestDetectShape(t *testing.T) {
	tests := []struct {
		name          string
		headers       []string
		wantSheet     string
		wantLow       bool
	}{
		{
			name: "proposal log headers",
			headers: []string{
				"Budget Code", "Date Received", "Program", "Activity",
				"Campus", "College", "Amount Requested", "Status", "Remarks",
			},
			wantSheet: SheetProposal,
		},
		{
			name: "work plan headers",
			headers: []string{
				"Program", "Project", "Activity", "Date", "Campus",
				"Fund Source", "Budget", "Male", "Female", "Total Beneficiaries",
			},
			wantSheet: SheetWorkPlan,
		},
		{
			name: "monitoring headers",
			headers: []string{
				"Budget Code", "Activity", "Amount", "Obligation No",
				"Obligation Date", "DV No", "Disbursed", "Balance", "Status",
			},
			wantSheet: SheetMonitoring,
		},
		{
			name: "supplemental headers",
			headers: []string{
				"Supplemental Budget", "Budget Code", "Activity", "Amount",
				"Obligation No", "Fund Source", "Remarks",
			},
			wantSheet: SheetSupplemental,
		},
		{
			name: "pre-approval fund log headers",
			headers: []string{
				"Tracking No.", "Date Received", "Particulars", "Payee",
				"Amount", "PR No.", "Process",
			},
			wantSheet: SheetPreApproval,
		},
		{
			name: "post-approval allocation headers",
			headers: []string{
				"Allocation", "Obligated", "Disbursed", "Payee",
				"DV No", "PR Amount", "Fund Category",
			},
			wantSheet: SheetPostApproval,
		},
		{
			name:      "unrelated headers default to proposal",
			headers:   []string{"Name", "Email", "Phone"},
			wantSheet: SheetProposal,
			wantLow:   true,
		},
		{
			name:      "empty header row defaults to proposal",
			headers:   nil,
			wantSheet: SheetProposal,
			wantLow:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectShape(tt.headers)
			if got.Sheet != tt.wantSheet {
				t.Errorf("DetectShape() sheet = %q, want %q (confidence %.2f)",
					got.Sheet, tt.wantSheet, got.Confidence)
			}
			if got.LowConfidence != tt.wantLow {
				t.Errorf("DetectShape() low confidence = %v, want %v", got.LowConfidence, tt.wantLow)
			}
			if got.Label != ShapeLabel(got.Sheet) {
				t.Errorf("DetectShape() label = %q, want %q", got.Label, ShapeLabel(got.Sheet))
			}
			if !tt.wantLow && got.Confidence < minConfidence {
				t.Errorf("confident match reported confidence %.2f below threshold", got.Confidence)
			}
		})
	}
}

func TestDetectShapeDeterministic(t *testing.T) {
	headers := []string{"Budget Code", "Activity", "Amount", "Obligation No", "DV No", "Status"}

	first := DetectShape(headers)
	for i := 0; i < 10; i++ {
		if got := DetectShape(headers); got != first {
			t.Fatalf("run %d produced %+v, first run produced %+v", i, got, first)
		}
	}
}

func TestDetectShapeCaseInsensitive(t *testing.T) {
	upper := DetectShape([]string{"BUDGET CODE", "DATE RECEIVED", "PROGRAM", "ACTIVITY", "CAMPUS", "COLLEGE", "AMOUNT REQUESTED", "STATUS", "REMARKS"})
	lower := DetectShape([]string{"budget code", "date received", "program", "activity", "campus", "college", "amount requested", "status", "remarks"})

	if upper != lower {
		t.Errorf("case changed the result: %+v vs %+v", upper, lower)
	}
	if upper.Sheet != SheetProposal {
		t.Errorf("sheet = %q, want %q", upper.Sheet, SheetProposal)
	}
}
