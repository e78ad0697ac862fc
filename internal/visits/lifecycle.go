package visits

// transitions is the full visit state machine. Anything not listed is an
// invalid transition.
var transitions = map[string][]string{
	StatusPlanned:    {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// CanTransition reports whether a visit may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TerminalStatus reports whether a status ends the visit lifecycle.
func TerminalStatus(status string) bool {
	switch status {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// StageReport says which of the three stages carry a completion timestamp.
type StageReport struct {
	Stage1 bool `json:"stage1"`
	Stage2 bool `json:"stage2"`
	Stage3 bool `json:"stage3"`
}

// AllComplete is the completion gate: true only when every stage is done.
func (r StageReport) AllComplete() bool {
	return r.Stage1 && r.Stage2 && r.Stage3
}

// MissingStages lists the stage numbers still lacking a timestamp.
func (r StageReport) MissingStages() []int {
	var missing []int
	if !r.Stage1 {
		missing = append(missing, 1)
	}
	if !r.Stage2 {
		missing = append(missing, 2)
	}
	if !r.Stage3 {
		missing = append(missing, 3)
	}
	return missing
}

// GateReport builds the per-stage completion report for an assessment row.
// A nil assessment means nothing was saved yet, so every stage is missing.
func GateReport(sa *StageAssessment) StageReport {
	if sa == nil {
		return StageReport{}
	}
	return StageReport{
		Stage1: sa.Stage1CompletedAt != nil,
		Stage2: sa.Stage2CompletedAt != nil,
		Stage3: sa.Stage3CompletedAt != nil,
	}
}

// ValidEvidenceStage reports whether s is one of the four evidence stages.
func ValidEvidenceStage(s string) bool {
	switch s {
	case EvidenceStagePricing, EvidenceStageInventory, EvidenceStageCommunication, EvidenceStageGeneral:
		return true
	}
	return false
}
