package scoring

import (
	"context"
	"fmt"
	"math"

	"github.com/damien/match-engine/internal/types"
)

// AvailabilityScorer buckets the gap between the candidate's availability
// date and the job's desired start date.
type AvailabilityScorer struct{}

// NewAvailabilityScorer builds the availability scorer.
func NewAvailabilityScorer() *AvailabilityScorer { return &AvailabilityScorer{} }

func (s *AvailabilityScorer) Criterion() string { return types.CriterionDate }

func (s *AvailabilityScorer) Score(_ context.Context, in *Input) types.CriterionScore {
	if in.Job.StartDate.IsZero() || in.Candidate.AvailabilityDate.IsZero() {
		return types.CriterionScore{
			Criterion: s.Criterion(),
			Value:     missingDataScore,
			Rationale: "Start or availability date is not stated",
		}
	}

	days := math.Abs(in.Job.StartDate.Sub(in.Candidate.AvailabilityDate).Hours() / 24)
	value := availabilityScore(days)
	return types.CriterionScore{
		Criterion: s.Criterion(),
		Value:     value,
		Rationale: fmt.Sprintf("Availability is %.0f days from the desired start date", days),
	}
}

func availabilityScore(days float64) float64 {
	switch {
	case days <= 7:
		return 1.0
	case days <= 14:
		return 0.9
	case days <= 30:
		return 0.7
	case days <= 60:
		return 0.5
	default:
		return 0.3
	}
}
