package scoring

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/damien/match-engine/internal/geo"
	"github.com/damien/match-engine/internal/types"
)

// TravelTimeScorer buckets the estimated commute duration against the
// candidate's maximum acceptable commute.
type TravelTimeScorer struct {
	cache  *geo.Cache
	logger *zap.Logger
}

// NewTravelTimeScorer builds the travel-time scorer. logger may be nil.
func NewTravelTimeScorer(cache *geo.Cache, logger *zap.Logger) *TravelTimeScorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TravelTimeScorer{cache: cache, logger: logger}
}

func (s *TravelTimeScorer) Criterion() string { return types.CriterionTravelTime }

func (s *TravelTimeScorer) Score(ctx context.Context, in *Input) types.CriterionScore {
	if in.Job.RemotePolicy == types.RemoteFull {
		return types.CriterionScore{
			Criterion: s.Criterion(),
			Value:     1.0,
			Rationale: "The job is fully remote, so there is no commute",
		}
	}
	if in.Candidate.HomeLocation.Empty() || in.Job.Location.Empty() {
		return types.CriterionScore{
			Criterion: s.Criterion(),
			Value:     neutralScore,
			Rationale: "Commute could not be estimated: location information is incomplete",
		}
	}

	estimate, err := s.cache.Lookup(ctx, in.Candidate.HomeLocation, in.Job.Location, transportMode(in.Candidate))
	if err != nil {
		s.logger.Debug("travel-time lookup unavailable", zap.Error(err))
		return types.CriterionScore{
			Criterion: s.Criterion(),
			Value:     neutralScore,
			Rationale: "Commute could not be estimated (travel-time service unavailable)",
		}
	}

	maxMinutes := in.MaxCommuteMinutes
	if maxMinutes <= 0 {
		maxMinutes = 60
	}
	value := commuteScore(estimate.DurationMinutes, maxMinutes)
	return types.CriterionScore{
		Criterion: s.Criterion(),
		Value:     value,
		Rationale: fmt.Sprintf("Estimated commute of %.0f min against a %.0f min limit", estimate.DurationMinutes, maxMinutes),
	}
}

// commuteScore maps the duration-to-limit ratio into buckets.
func commuteScore(duration, maxMinutes float64) float64 {
	ratio := duration / maxMinutes
	switch {
	case ratio <= 0.5:
		return 1.0
	case ratio <= 0.75:
		return 0.8
	case ratio <= 1.0:
		return 0.6
	case ratio <= 1.25:
		return 0.4
	default:
		return 0.1
	}
}
