package scoring

import (
	"context"
	"fmt"

	"github.com/damien/match-engine/internal/types"
)

// ExperienceScorer compares the candidate's years of experience with the
// job's requested range, penalizing both deficit and heavy overqualification.
type ExperienceScorer struct{}

// NewExperienceScorer builds the experience scorer.
func NewExperienceScorer() *ExperienceScorer { return &ExperienceScorer{} }

func (s *ExperienceScorer) Criterion() string { return types.CriterionExperience }

func (s *ExperienceScorer) Score(_ context.Context, in *Input) types.CriterionScore {
	years := in.Candidate.YearsOfExperience
	minReq, maxReq := in.Job.ExperienceMin, in.Job.ExperienceMax

	if minReq <= 0 && maxReq <= 0 {
		return types.CriterionScore{
			Criterion: s.Criterion(),
			Value:     0.7,
			Rationale: "The job states no experience requirement",
		}
	}
	if maxReq <= 0 {
		maxReq = minReq
	}

	if years < minReq {
		deficit := minReq - years
		value := deficitScore(deficit)
		return types.CriterionScore{
			Criterion: s.Criterion(),
			Value:     value,
			Rationale: fmt.Sprintf("%.1f years short of the %.0f-year minimum", deficit, minReq),
		}
	}

	excess := years - maxReq
	if excess <= 2 {
		return types.CriterionScore{
			Criterion: s.Criterion(),
			Value:     1.0,
			Rationale: fmt.Sprintf("%.0f years of experience fit the %.0f-%.0f range", years, minReq, maxReq),
		}
	}

	value := overqualificationScore(excess)
	return types.CriterionScore{
		Criterion: s.Criterion(),
		Value:     value,
		Rationale: fmt.Sprintf("%.0f years of experience exceed the %.0f-%.0f range; overqualification risk", years, minReq, maxReq),
	}
}

func deficitScore(deficit float64) float64 {
	switch {
	case deficit <= 1:
		return 0.7
	case deficit <= 2:
		return 0.5
	default:
		return 0.2
	}
}

func overqualificationScore(excess float64) float64 {
	switch {
	case excess <= 5:
		return 0.8
	case excess <= 10:
		return 0.6
	default:
		return 0.4
	}
}
