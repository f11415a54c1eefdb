// Package scoring implements the per-criterion match scorers.
package scoring

import (
	"context"

	"github.com/damien/match-engine/internal/types"
)

// Input is everything a scorer may inspect for one (candidate, job) pair.
// All fields are read-only.
type Input struct {
	Candidate     *types.CandidateProfile
	Job           *types.JobOffer
	Questionnaire *types.PreferenceQuestionnaire // may be nil

	// MaxCommuteMinutes is resolved by the engine from the questionnaire,
	// falling back to the configured default.
	MaxCommuteMinutes float64
}

// Scorer scores one criterion for a (candidate, job) pair. Scorers never
// fail a match: recoverable problems (missing data, upstream errors) yield a
// neutral score with an explanatory rationale. Every returned score carries
// a non-empty rationale usable directly as a user-facing explanation.
type Scorer interface {
	Criterion() string
	Score(ctx context.Context, in *Input) types.CriterionScore
}

const (
	neutralScore = 0.5

	// missingDataScore is the slightly-favorable neutral used when one side
	// simply omits optional data (salary, dates) rather than failing a lookup.
	missingDataScore = 0.6
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
