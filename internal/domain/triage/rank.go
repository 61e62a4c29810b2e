package triage

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mediqueue/mediqueue/internal/domain/catalog"
)

var hundred = decimal.NewFromInt(100)

// Rank scores every condition in catalog against selected and returns at most
// p.MaxLikely matches ordered by score, then confidence, both descending.
// Conditions tying on both keep catalog order.
func Rank(conditions []*catalog.Condition, selected []string, p Policy) []RankedCondition {
	want := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		want[s] = struct{}{}
	}

	out := make([]RankedCondition, 0, len(conditions))
	for _, c := range conditions {
		var matched []string
		for _, s := range c.Symptoms {
			if _, ok := want[s]; ok {
				matched = append(matched, s)
			}
		}
		if len(matched) == 0 {
			continue
		}

		score := len(matched)
		if c.RedFlag && len(matched) >= p.RedFlagBonusThreshold {
			score++
		}

		out = append(out, RankedCondition{
			Disease:         c.Disease,
			Specialty:       c.Specialty,
			RedFlag:         c.RedFlag,
			MatchedSymptoms: matched,
			Confidence:      confidence(len(matched), len(c.Symptoms)),
			Score:           score,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Confidence > out[j].Confidence
	})

	if p.MaxLikely > 0 && len(out) > p.MaxLikely {
		out = out[:p.MaxLikely]
	}
	return out
}

// confidence is round-half-up(100 * matched / max(total, 1)).
func confidence(matched, total int) int {
	if total < 1 {
		total = 1
	}
	pct := decimal.NewFromInt(int64(matched)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		Round(0)
	return int(pct.IntPart())
}
