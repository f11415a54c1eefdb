package types

// Lever is one of the four questionnaire-driven preference dimensions.
type Lever string

const (
	LeverEvolution    Lever = "evolution"
	LeverRemuneration Lever = "remuneration"
	LeverProximity    Lever = "proximity"
	LeverFlexibility  Lever = "flexibility"
)

// levers in declaration order; DominantLever tie-breaks by this order.
var levers = []Lever{LeverEvolution, LeverRemuneration, LeverProximity, LeverFlexibility}

// FlexibilityExpectations captures the candidate's explicit flexibility wishes.
type FlexibilityExpectations struct {
	Telework      RemotePolicy `json:"telework,omitempty"`
	FlexibleHours bool         `json:"flexible_hours,omitempty"`
	RTTImportant  bool         `json:"rtt_important,omitempty"`
}

// PreferenceQuestionnaire holds the candidate's declared priorities.
// Each lever is rated 1-10. A nil questionnaire means "use base weights".
type PreferenceQuestionnaire struct {
	Evolution    int `json:"evolution" validate:"min=1,max=10"`
	Remuneration int `json:"remuneration" validate:"min=1,max=10"`
	Proximity    int `json:"proximity" validate:"min=1,max=10"`
	Flexibility  int `json:"flexibility" validate:"min=1,max=10"`

	FlexibilityExpectations FlexibilityExpectations `json:"flexibility_expectations"`

	// MaxCommuteMinutes is the longest acceptable one-way commute. Zero means unset.
	MaxCommuteMinutes float64 `json:"max_commute_minutes,omitempty" validate:"min=0"`

	// ReasonForLeaving is the stated reason for leaving the last job ("salary", ...).
	ReasonForLeaving string `json:"reason_for_leaving,omitempty"`
}

// Validate checks rating ranges.
func (q *PreferenceQuestionnaire) Validate() error {
	return validate.Struct(q)
}

// Rating returns the rating for a lever.
func (q *PreferenceQuestionnaire) Rating(l Lever) int {
	switch l {
	case LeverEvolution:
		return q.Evolution
	case LeverRemuneration:
		return q.Remuneration
	case LeverProximity:
		return q.Proximity
	case LeverFlexibility:
		return q.Flexibility
	default:
		return 0
	}
}

// DominantLever returns the highest-rated lever. Ties resolve in declaration
// order (evolution, remuneration, proximity, flexibility) so the result is
// deterministic for identical questionnaires.
func (q *PreferenceQuestionnaire) DominantLever() Lever {
	best := levers[0]
	for _, l := range levers[1:] {
		if q.Rating(l) > q.Rating(best) {
			best = l
		}
	}
	return best
}

// WantsTelework reports whether the candidate asked for any telework.
func (q *PreferenceQuestionnaire) WantsTelework() bool {
	return q.FlexibilityExpectations.Telework != "" && q.FlexibilityExpectations.Telework != RemoteNone
}
