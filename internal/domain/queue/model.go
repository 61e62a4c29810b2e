package queue

import (
	"sort"
	"time"

	"github.com/mediqueue/mediqueue/internal/domain/triage"
)

// Entry maps to the triage_entry table. Urgency and ranking fields are
// written once and never re-derived. QueuePosition is computed on every read
// and is never stored; it is zero in the recent-log listing.
type Entry struct {
	QueuePosition     int                      `json:"queuePosition,omitempty"`
	ID                int64                    `json:"id"`
	PatientName       string                   `json:"patientName"`
	SelectedSymptoms  []string                 `json:"selectedSymptoms"`
	UrgencyLabel      string                   `json:"urgencyLabel"`
	UrgencyScore      int                      `json:"urgencyScore"`
	AssignedDoctor    string                   `json:"assignedDoctor"`
	AssignedSpecialty string                   `json:"assignedSpecialty"`
	LikelyConditions  []triage.RankedCondition `json:"likelyConditions"`
	CreatedAt         time.Time                `json:"createdAt"`
}

func (e *Entry) clone() *Entry {
	out := *e
	out.SelectedSymptoms = append([]string(nil), e.SelectedSymptoms...)
	out.LikelyConditions = make([]triage.RankedCondition, len(e.LikelyConditions))
	for i, rc := range e.LikelyConditions {
		rc.MatchedSymptoms = append([]string(nil), rc.MatchedSymptoms...)
		out.LikelyConditions[i] = rc
	}
	return &out
}

// Less reports whether a is served before b: higher urgency first, then
// earlier arrival, then lower id.
func Less(a, b *Entry) bool {
	if a.UrgencyScore != b.UrgencyScore {
		return a.UrgencyScore > b.UrgencyScore
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// Order sorts entries into service order in place.
func Order(entries []*Entry) {
	sort.Slice(entries, func(i, j int) bool { return Less(entries[i], entries[j]) })
}

// Number assigns 1-based queue positions in slice order.
func Number(entries []*Entry) {
	for i, e := range entries {
		e.QueuePosition = i + 1
	}
}

// ResetResult is returned by a full queue reset.
type ResetResult struct {
	Message      string `json:"message"`
	RemovedCount int64  `json:"removedCount"`
}
