// Package intake handles triage submissions: it ranks the reported symptoms
// against the catalog, classifies urgency, assigns a doctor and queues the
// case.
package intake

import (
	"context"
	"strings"

	"github.com/mediqueue/mediqueue/internal/domain/catalog"
	"github.com/mediqueue/mediqueue/internal/domain/queue"
	"github.com/mediqueue/mediqueue/internal/domain/triage"
	"github.com/mediqueue/mediqueue/internal/platform/apperr"
)

const (
	defaultPatientName = "Unknown Patient"
	disclaimer         = "Triage support only. Not a confirmed medical diagnosis."
	msgNoSymptoms      = "At least one symptom is required."
)

// ConditionSource supplies the catalog snapshot ranked on each submission.
type ConditionSource interface {
	Conditions(ctx context.Context) ([]*catalog.Condition, error)
}

// EntryWriter persists a finished triage outcome.
type EntryWriter interface {
	Append(ctx context.Context, e *queue.Entry) error
}

// Request is the triage submission body.
type Request struct {
	PatientName string   `json:"patientName"`
	Symptoms    []string `json:"symptoms"`
}

// Result is returned once the entry has been queued.
type Result struct {
	PatientName      string                   `json:"patientName"`
	Symptoms         []string                 `json:"symptoms"`
	Urgency          triage.Urgency           `json:"urgency"`
	Assignment       triage.Assignment        `json:"assignment"`
	LikelyConditions []triage.RankedCondition `json:"likelyConditions"`
	Disclaimer       string                   `json:"disclaimer"`
}

type Service struct {
	conditions ConditionSource
	entries    EntryWriter
	policy     triage.Policy
}

func NewService(conditions ConditionSource, entries EntryWriter, policy triage.Policy) *Service {
	return &Service{conditions: conditions, entries: entries, policy: policy}
}

// Submit runs rank, classify and assign over the current catalog and
// persists the outcome. The result is returned only after the write
// succeeded; on any failure nothing is queued.
func (s *Service) Submit(ctx context.Context, req *Request) (*Result, error) {
	symptoms := catalog.NormalizeSymptoms(req.Symptoms)
	if len(symptoms) == 0 {
		return nil, apperr.Validation(msgNoSymptoms)
	}
	name := strings.TrimSpace(req.PatientName)
	if name == "" {
		name = defaultPatientName
	}

	conds, err := s.conditions.Conditions(ctx)
	if err != nil {
		return nil, err
	}

	ranked := triage.Rank(conds, symptoms, s.policy)
	urgency := triage.Classify(ranked, len(symptoms))
	assignment := s.policy.Assign(ranked)

	entry := &queue.Entry{
		PatientName:       name,
		SelectedSymptoms:  symptoms,
		UrgencyLabel:      urgency.Label,
		UrgencyScore:      urgency.Score,
		AssignedDoctor:    assignment.Doctor,
		AssignedSpecialty: assignment.Specialty,
		LikelyConditions:  ranked,
	}
	if err := s.entries.Append(ctx, entry); err != nil {
		return nil, err
	}

	return &Result{
		PatientName:      name,
		Symptoms:         symptoms,
		Urgency:          urgency,
		Assignment:       assignment,
		LikelyConditions: ranked,
		Disclaimer:       disclaimer,
	}, nil
}
