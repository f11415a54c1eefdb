package scoring

import (
	"context"
	"fmt"

	"github.com/damien/match-engine/internal/types"
)

// SalaryScorer compares the offered salary against the candidate's target.
type SalaryScorer struct{}

// NewSalaryScorer builds the salary scorer.
func NewSalaryScorer() *SalaryScorer { return &SalaryScorer{} }

func (s *SalaryScorer) Criterion() string { return types.CriterionSalary }

func (s *SalaryScorer) Score(_ context.Context, in *Input) types.CriterionScore {
	if in.Job.Salary == nil || in.Job.Salary.Midpoint() <= 0 {
		return types.CriterionScore{
			Criterion: s.Criterion(),
			Value:     missingDataScore,
			Rationale: "The job does not state a salary",
		}
	}
	if in.Candidate.DesiredSalary <= 0 {
		return types.CriterionScore{
			Criterion: s.Criterion(),
			Value:     missingDataScore,
			Rationale: "No desired salary stated by the candidate",
		}
	}

	offered := in.Job.Salary.Midpoint()
	ratio := offered / in.Candidate.DesiredSalary
	value := salaryScore(ratio)
	return types.CriterionScore{
		Criterion: s.Criterion(),
		Value:     value,
		Rationale: fmt.Sprintf("Offered %.0f against a desired %.0f (%.0f%%)", offered, in.Candidate.DesiredSalary, ratio*100),
	}
}

func salaryScore(ratio float64) float64 {
	switch {
	case ratio >= 1.0:
		return 1.0
	case ratio >= 0.95:
		return 0.9
	case ratio >= 0.8:
		return 0.7
	case ratio >= 0.6:
		return 0.4
	default:
		return 0.1
	}
}
