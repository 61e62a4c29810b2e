package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Condition maps to the condition table joined with its condition_symptom rows.
// Symptoms keep their stored order, which is the order matched symptoms are
// reported in.
type Condition struct {
	ID        int64    `json:"id"`
	Disease   string   `json:"disease"`
	Specialty string   `json:"specialty"`
	RedFlag   bool     `json:"redFlag"`
	Symptoms  []string `json:"symptoms"`
}

// Clone returns a deep copy so callers can never mutate a stored snapshot.
func (c *Condition) Clone() *Condition {
	out := *c
	out.Symptoms = append([]string(nil), c.Symptoms...)
	return &out
}

// Input is the admin request body for creating or replacing a condition.
type Input struct {
	Disease   string      `json:"disease"`
	Specialty string      `json:"specialty"`
	RedFlag   bool        `json:"redFlag"`
	Symptoms  SymptomList `json:"symptoms"`
}

// SymptomList accepts either a JSON array of strings or a single
// comma-separated string.
type SymptomList []string

func (l *SymptomList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*l = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("symptoms: %w", err)
		}
		*l = items
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("symptoms must be a list or a comma-separated string")
	}
	*l = strings.Split(s, ",")
	return nil
}

// NormalizeSymptoms trims every entry, drops blanks and collapses duplicates,
// keeping the first occurrence's position.
func NormalizeSymptoms(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Normalize trims the input in place and returns the condition it describes,
// or false when a required field is missing.
func (in *Input) Normalize() (*Condition, bool) {
	c := &Condition{
		Disease:   strings.TrimSpace(in.Disease),
		Specialty: strings.TrimSpace(in.Specialty),
		RedFlag:   in.RedFlag,
		Symptoms:  NormalizeSymptoms(in.Symptoms),
	}
	if c.Disease == "" || c.Specialty == "" || len(c.Symptoms) == 0 {
		return nil, false
	}
	return c, true
}
