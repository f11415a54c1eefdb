package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/damien/match-engine/internal/types"
)

// Sub-weights for the flexibility criterion components.
const (
	teleworkWeight = 0.5
	hoursWeight    = 0.3
	rttWeight      = 0.2
)

// FlexibilityScorer combines telework policy, flexible hours, and RTT
// expectations into one score.
type FlexibilityScorer struct{}

// NewFlexibilityScorer builds the flexibility scorer.
func NewFlexibilityScorer() *FlexibilityScorer { return &FlexibilityScorer{} }

func (s *FlexibilityScorer) Criterion() string { return types.CriterionFlexibility }

func (s *FlexibilityScorer) Score(_ context.Context, in *Input) types.CriterionScore {
	if in.Questionnaire == nil {
		return types.CriterionScore{
			Criterion: s.Criterion(),
			Value:     missingDataScore,
			Rationale: "No stated flexibility preferences",
		}
	}
	want := in.Questionnaire.FlexibilityExpectations

	teleworkScore := teleworkMatch(want.Telework, in.Job.RemotePolicy)
	hoursScore := 1.0
	if want.FlexibleHours && !in.Job.FlexibleHours {
		hoursScore = 0.0
	}
	rttScore := 1.0
	if want.RTTImportant && !in.Job.RTTOffered {
		rttScore = 0.0
	}

	value := clamp01(teleworkScore*teleworkWeight + hoursScore*hoursWeight + rttScore*rttWeight)

	var parts []string
	parts = append(parts, teleworkRationale(want.Telework, in.Job.RemotePolicy))
	if want.FlexibleHours {
		if in.Job.FlexibleHours {
			parts = append(parts, "flexible hours offered")
		} else {
			parts = append(parts, "no flexible hours")
		}
	}
	if want.RTTImportant {
		if in.Job.RTTOffered {
			parts = append(parts, "RTT offered")
		} else {
			parts = append(parts, "no RTT")
		}
	}

	return types.CriterionScore{
		Criterion: s.Criterion(),
		Value:     value,
		Rationale: strings.Join(parts, "; "),
	}
}

// teleworkMatch scores the ordinal distance between the desired and offered
// telework policy. Offering more telework than asked never penalizes.
func teleworkMatch(want, offered types.RemotePolicy) float64 {
	if want == "" {
		return 1.0
	}
	wantOrd, offeredOrd := want.Ordinal(), offered.Ordinal()
	if offeredOrd >= wantOrd {
		return 1.0
	}
	return 1.0 - 0.5*float64(wantOrd-offeredOrd)
}

func teleworkRationale(want, offered types.RemotePolicy) string {
	if want == "" || offered.Ordinal() >= want.Ordinal() {
		return fmt.Sprintf("telework policy (%s) meets expectations", policyLabel(offered))
	}
	return fmt.Sprintf("telework policy (%s) falls short of the desired %s", policyLabel(offered), policyLabel(want))
}

func policyLabel(p types.RemotePolicy) string {
	if p == "" {
		return string(types.RemoteNone)
	}
	return string(p)
}
