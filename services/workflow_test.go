package services

import "testing"

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name    string
		current string
		action  TransitionAction
		want    string
		wantErr bool
	}{
		{"approve draft", StatusDraft, ActionApprove, StatusEvaluation, false},
		{"approve evaluation", StatusEvaluation, ActionApprove, StatusProposal, false},
		{"approve proposal", StatusProposal, ActionApprove, StatusPR, false},
		{"approve pr", StatusPR, ActionApprove, StatusObligated, false},
		{"approve obligated", StatusObligated, ActionApprove, StatusDisbursed, false},
		{"approve returned re-enters evaluation", StatusReturned, ActionApprove, StatusEvaluation, false},
		{"approve disbursed is final", StatusDisbursed, ActionApprove, "", true},
		{"approve rejected fails", StatusRejected, ActionApprove, "", true},

		{"return draft", StatusDraft, ActionReturn, StatusReturned, false},
		{"return obligated", StatusObligated, ActionReturn, StatusReturned, false},
		{"return disbursed fails", StatusDisbursed, ActionReturn, "", true},
		{"return rejected fails", StatusRejected, ActionReturn, "", true},
		{"return returned fails", StatusReturned, ActionReturn, "", true},

		{"reject proposal", StatusProposal, ActionReject, StatusRejected, false},
		{"reject returned", StatusReturned, ActionReject, StatusRejected, false},
		{"reject rejected fails", StatusRejected, ActionReject, "", true},
		{"reject disbursed fails", StatusDisbursed, ActionReject, "", true},

		{"unknown action", StatusDraft, TransitionAction("archive"), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextStatus(tt.current, tt.action)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NextStatus(%q, %q) = %q, want error", tt.current, tt.action, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NextStatus(%q, %q): %v", tt.current, tt.action, err)
			}
			if got != tt.want {
				t.Errorf("NextStatus(%q, %q) = %q, want %q", tt.current, tt.action, got, tt.want)
			}
		})
	}
}

func TestApproveChainReachesDisbursed(t *testing.T) {
	status := StatusDraft
	for i := 0; i < 5; i++ {
		next, err := NextStatus(status, ActionApprove)
		if err != nil {
			t.Fatalf("approve from %q: %v", status, err)
		}
		status = next
	}
	if status != StatusDisbursed {
		t.Errorf("five approvals from Draft ended at %q, want %q", status, StatusDisbursed)
	}
}
