package triage

// Classify derives urgency from the ranked shortlist and the number of
// distinct symptoms the patient reported. Rules are checked in order:
// a red-flag top match with two or more symptoms is urgent; three or more
// symptoms or a top confidence of at least 50 is priority; anything else is
// standard.
func Classify(ranked []RankedCondition, symptomCount int) Urgency {
	var top *RankedCondition
	if len(ranked) > 0 {
		top = &ranked[0]
	}

	if top != nil && top.RedFlag && symptomCount >= 2 {
		return Urgent
	}
	if symptomCount >= 3 || (top != nil && top.Confidence >= 50) {
		return Priority
	}
	return Standard
}
