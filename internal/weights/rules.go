package weights

import "github.com/damien/match-engine/internal/types"

// Condition gates a rule on questionnaire signals. Zero-valued fields are
// ignored; all set fields must match for the rule to apply.
type Condition struct {
	DominantLever     types.Lever
	MinDominantRating int
	TeleworkRequested bool
	ReasonForLeaving  string
}

// Rule adjusts a small set of weights when its condition matches.
// Add deltas apply before Scale factors.
type Rule struct {
	Name  string
	When  Condition
	Add   map[string]float64
	Scale map[string]float64
}

// Matches reports whether the questionnaire satisfies the condition.
func (c Condition) Matches(q *types.PreferenceQuestionnaire) bool {
	if c.DominantLever != "" {
		if q.DominantLever() != c.DominantLever {
			return false
		}
		if c.MinDominantRating > 0 && q.Rating(c.DominantLever) < c.MinDominantRating {
			return false
		}
	}
	if c.TeleworkRequested && !q.WantsTelework() {
		return false
	}
	if c.ReasonForLeaving != "" && q.ReasonForLeaving != c.ReasonForLeaving {
		return false
	}
	return true
}

// DefaultRules returns the built-in adjustment table. Rules apply in
// declaration order; the adapter renormalizes after the full pass.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: "dominant-evolution",
			When: Condition{DominantLever: types.LeverEvolution, MinDominantRating: 6},
			Add: map[string]float64{
				types.CriterionSkills:     0.05,
				types.CriterionExperience: 0.05,
			},
		},
		{
			Name: "dominant-remuneration",
			When: Condition{DominantLever: types.LeverRemuneration, MinDominantRating: 6},
			Add: map[string]float64{
				types.CriterionSalary: 0.10,
			},
			Scale: map[string]float64{
				types.CriterionContract: 1.2,
			},
		},
		{
			Name: "dominant-proximity",
			When: Condition{DominantLever: types.LeverProximity, MinDominantRating: 6},
			Add: map[string]float64{
				types.CriterionLocation:   0.08,
				types.CriterionTravelTime: 0.07,
			},
		},
		{
			Name: "dominant-flexibility",
			When: Condition{DominantLever: types.LeverFlexibility, MinDominantRating: 6},
			Add: map[string]float64{
				types.CriterionFlexibility: 0.10,
				types.CriterionTravelTime:  0.05,
			},
		},
		{
			Name: "telework-requested",
			When: Condition{TeleworkRequested: true},
			Add: map[string]float64{
				types.CriterionTravelTime: 0.05,
				types.CriterionLocation:   0.03,
			},
		},
		{
			Name: "left-over-salary",
			When: Condition{ReasonForLeaving: "salary"},
			Add: map[string]float64{
				types.CriterionSalary: 0.08,
			},
		},
	}
}
