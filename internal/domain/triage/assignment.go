package triage

// Assign routes the case to the doctor for the top-ranked condition's
// specialty, falling back to the policy default.
func (p Policy) Assign(ranked []RankedCondition) Assignment {
	specialty := p.DefaultSpecialty
	if len(ranked) > 0 && ranked[0].Specialty != "" {
		specialty = ranked[0].Specialty
	}
	doctor, ok := p.Doctors[specialty]
	if !ok {
		doctor = p.DefaultDoctor
	}
	return Assignment{Doctor: doctor, Specialty: specialty}
}
