package scoring

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/damien/match-engine/internal/geo"
	"github.com/damien/match-engine/internal/types"
)

// LocationScorer buckets the straight-line quality of the job's location
// relative to the candidate's home, using the shared geo cache.
type LocationScorer struct {
	cache  *geo.Cache
	logger *zap.Logger
}

// NewLocationScorer builds the location scorer. logger may be nil.
func NewLocationScorer(cache *geo.Cache, logger *zap.Logger) *LocationScorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocationScorer{cache: cache, logger: logger}
}

func (s *LocationScorer) Criterion() string { return types.CriterionLocation }

func (s *LocationScorer) Score(ctx context.Context, in *Input) types.CriterionScore {
	// Fully remote jobs match any location; no lookup is performed.
	if in.Job.RemotePolicy == types.RemoteFull {
		return types.CriterionScore{
			Criterion: s.Criterion(),
			Value:     1.0,
			Rationale: "The job is fully remote, so location does not constrain the match",
		}
	}
	if in.Candidate.HomeLocation.Empty() || in.Job.Location.Empty() {
		return types.CriterionScore{
			Criterion: s.Criterion(),
			Value:     neutralScore,
			Rationale: "Location information is incomplete on one side",
		}
	}

	estimate, err := s.cache.Lookup(ctx, in.Candidate.HomeLocation, in.Job.Location, transportMode(in.Candidate))
	if err != nil {
		s.logger.Debug("location lookup unavailable", zap.Error(err))
		return types.CriterionScore{
			Criterion: s.Criterion(),
			Value:     neutralScore,
			Rationale: "Location could not be evaluated (geodata unavailable)",
		}
	}

	km := estimate.DistanceMeters / 1000
	value := distanceScore(km)
	return types.CriterionScore{
		Criterion: s.Criterion(),
		Value:     value,
		Rationale: fmt.Sprintf("The job is about %.0f km from home", km),
	}
}

func distanceScore(km float64) float64 {
	switch {
	case km <= 10:
		return 1.0
	case km <= 25:
		return 0.8
	case km <= 50:
		return 0.6
	case km <= 100:
		return 0.4
	default:
		return 0.1
	}
}

func transportMode(c *types.CandidateProfile) types.TransportMode {
	if c.TransportMode != "" {
		return c.TransportMode
	}
	return types.TransportDriving
}
