// Package triage ranks catalog conditions against a symptom selection,
// classifies urgency and assigns a specialty. Everything here is a pure
// function of its inputs.
package triage

// RankedCondition is a catalog condition that matched at least one selected
// symptom. It is embedded in queue entries and never re-ranked afterwards.
type RankedCondition struct {
	Disease         string   `json:"disease"`
	Specialty       string   `json:"specialty"`
	RedFlag         bool     `json:"redFlag"`
	MatchedSymptoms []string `json:"matchedSymptoms"`
	Confidence      int      `json:"confidence"`
	Score           int      `json:"score"`
}

// Urgency levels.
const (
	ScoreStandard = 1
	ScorePriority = 3
	ScoreUrgent   = 5
)

// Urgency is the discrete urgency of a triage outcome. ClassName is the style
// tag front-desk screens render the entry with.
type Urgency struct {
	Score     int    `json:"score"`
	Label     string `json:"label"`
	ClassName string `json:"className"`
}

var (
	Urgent   = Urgency{Score: ScoreUrgent, Label: "Urgent", ClassName: "priority-high"}
	Priority = Urgency{Score: ScorePriority, Label: "Priority", ClassName: "priority-medium"}
	Standard = Urgency{Score: ScoreStandard, Label: "Standard", ClassName: "priority-low"}
)

// Assignment is the doctor a case is routed to.
type Assignment struct {
	Doctor    string `json:"doctor"`
	Specialty string `json:"specialty"`
}
