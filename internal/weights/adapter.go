// Package weights converts declared candidate priorities into a normalized
// weight vector over the scoring criteria.
package weights

import (
	"fmt"

	"github.com/damien/match-engine/internal/types"
)

// Derive adapts the base weights to a candidate's questionnaire using the
// built-in rule table. A nil questionnaire yields a copy of the base weights.
func Derive(base types.WeightVector, q *types.PreferenceQuestionnaire) (types.WeightVector, error) {
	return DeriveWithRules(base, q, DefaultRules())
}

// DeriveWithRules applies the given rule table instead of the default one.
// The output always contains exactly the criteria present in base and sums
// to 1.0. Derivation is deterministic: rules apply in declaration order and
// nothing depends on wall-clock time or randomness.
func DeriveWithRules(base types.WeightVector, q *types.PreferenceQuestionnaire, rules []Rule) (types.WeightVector, error) {
	if len(base) == 0 {
		return nil, fmt.Errorf("derive weights: empty base vector")
	}
	if q == nil {
		return base.Clone(), nil
	}

	adjusted := base.Clone()
	for _, rule := range rules {
		if !rule.When.Matches(q) {
			continue
		}
		for criterion, delta := range rule.Add {
			if _, ok := adjusted[criterion]; ok {
				adjusted[criterion] += delta
			}
		}
		for criterion, factor := range rule.Scale {
			if _, ok := adjusted[criterion]; ok {
				adjusted[criterion] *= factor
			}
		}
	}

	// Clamp before renormalizing; no rule may push a weight outside [0,1].
	for criterion, w := range adjusted {
		if w < 0 {
			adjusted[criterion] = 0
		} else if w > 1 {
			adjusted[criterion] = 1
		}
	}

	if adjusted.Sum() <= 0 {
		return nil, fmt.Errorf("derive weights: all weights clamped to zero")
	}

	// Renormalization is the final, unconditional step.
	out := adjusted.Normalized()
	if !out.Valid() {
		return nil, fmt.Errorf("derive weights: normalized vector sums to %.9f", out.Sum())
	}
	return out, nil
}
