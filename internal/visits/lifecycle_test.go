package visits

import (
	"reflect"
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusPlanned, StatusInProgress, true},
		{StatusPlanned, StatusCancelled, true},
		{StatusPlanned, StatusNoShow, true},
		{StatusPlanned, StatusCompleted, false}, // no skipping checkin
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusNoShow, true},
		{StatusInProgress, StatusPlanned, false},
		{StatusCompleted, StatusInProgress, false},
		{StatusCancelled, StatusInProgress, false},
		{StatusNoShow, StatusPlanned, false},
		{"garbage", StatusInProgress, false},
	}

	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestTerminalStatus(t *testing.T) {
	for _, status := range []string{StatusCompleted, StatusCancelled, StatusNoShow} {
		if !TerminalStatus(status) {
			t.Errorf("TerminalStatus(%q) = false, want true", status)
		}
	}
	for _, status := range []string{StatusPlanned, StatusInProgress, ""} {
		if TerminalStatus(status) {
			t.Errorf("TerminalStatus(%q) = true, want false", status)
		}
	}
}

func TestGateReport_NilAssessment(t *testing.T) {
	report := GateReport(nil)

	if report.AllComplete() {
		t.Error("nil assessment should not be complete")
	}
	if got := report.MissingStages(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("MissingStages() = %v, want [1 2 3]", got)
	}
}

func TestGateReport_PartialAssessment(t *testing.T) {
	now := time.Now()
	sa := &StageAssessment{
		Stage1CompletedAt: &now,
		Stage3CompletedAt: &now,
	}

	report := GateReport(sa)

	if report.AllComplete() {
		t.Error("assessment missing stage 2 should not be complete")
	}
	if got := report.MissingStages(); !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("MissingStages() = %v, want [2]", got)
	}
}

func TestGateReport_FullAssessment(t *testing.T) {
	now := time.Now()
	sa := &StageAssessment{
		Stage1CompletedAt: &now,
		Stage2CompletedAt: &now,
		Stage3CompletedAt: &now,
	}

	report := GateReport(sa)

	if !report.AllComplete() {
		t.Error("assessment with all three timestamps should be complete")
	}
	if got := report.MissingStages(); got != nil {
		t.Errorf("MissingStages() = %v, want nil", got)
	}
}

func TestValidEvidenceStage(t *testing.T) {
	for _, s := range []string{EvidenceStagePricing, EvidenceStageInventory, EvidenceStageCommunication, EvidenceStageGeneral} {
		if !ValidEvidenceStage(s) {
			t.Errorf("ValidEvidenceStage(%q) = false, want true", s)
		}
	}
	if ValidEvidenceStage("stage1") {
		t.Error("ValidEvidenceStage(\"stage1\") = true, want false")
	}
}

func TestVisitDurationMinutes(t *testing.T) {
	in := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	out := in.Add(47 * time.Minute)

	v := Visit{CheckInAt: &in, CheckOutAt: &out}
	if got := v.DurationMinutes(); got == nil || *got != 47 {
		t.Errorf("DurationMinutes() = %v, want 47", got)
	}

	if got := (Visit{CheckInAt: &in}).DurationMinutes(); got != nil {
		t.Errorf("DurationMinutes() without checkout = %v, want nil", got)
	}
}
