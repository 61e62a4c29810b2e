package triage

// Policy holds the fixed business rules of the engine. DefaultPolicy matches
// the clinic's rules; callers may override individual fields.
type Policy struct {
	// Doctors maps a specialty to the doctor on duty for it.
	Doctors map[string]string

	// DefaultSpecialty and DefaultDoctor are used when nothing matched or the
	// top specialty has no doctor.
	DefaultSpecialty string
	DefaultDoctor    string

	// RedFlagBonusThreshold is the number of matched symptoms a red-flag
	// condition needs before it earns its one-point bonus.
	RedFlagBonusThreshold int

	// MaxLikely caps the ranked shortlist.
	MaxLikely int
}

// DefaultPolicy returns the clinic's standard rules.
func DefaultPolicy() Policy {
	return Policy{
		Doctors: map[string]string{
			"Cardiology":        "Dr. Smith",
			"Pulmonology":       "Dr. Ahmed",
			"Neurology":         "Dr. Rao",
			"General Surgery":   "Dr. Kim",
			"Internal Medicine": "Dr. Li",
		},
		DefaultSpecialty:      "Internal Medicine",
		DefaultDoctor:         "Dr. Li",
		RedFlagBonusThreshold: 2,
		MaxLikely:             3,
	}
}

// WithRedFlagThreshold returns a copy of p using n as the red-flag bonus
// threshold. Values below 1 are ignored.
func (p Policy) WithRedFlagThreshold(n int) Policy {
	if n >= 1 {
		p.RedFlagBonusThreshold = n
	}
	return p
}
