package scoring

import (
	"context"
	"fmt"

	"github.com/damien/match-engine/internal/types"
)

// contractSynonyms maps contract types that are equivalent across the French
// and English labels used upstream. Symmetric pairs are listed once.
var contractSynonyms = map[types.ContractType]types.ContractType{
	types.ContractCDI: types.ContractPermanent,
	types.ContractCDD: types.ContractFixedTerm,
}

// ContractScorer matches the job's contract type against candidate preferences.
type ContractScorer struct{}

// NewContractScorer builds the contract scorer.
func NewContractScorer() *ContractScorer { return &ContractScorer{} }

func (s *ContractScorer) Criterion() string { return types.CriterionContract }

func (s *ContractScorer) Score(_ context.Context, in *Input) types.CriterionScore {
	if in.Job.Contract == "" || len(in.Candidate.ContractPreferences) == 0 {
		return types.CriterionScore{
			Criterion: s.Criterion(),
			Value:     0.7,
			Rationale: "No contract preference stated; contract type does not constrain the match",
		}
	}

	if in.Candidate.PrefersContract(in.Job.Contract) {
		return types.CriterionScore{
			Criterion: s.Criterion(),
			Value:     1.0,
			Rationale: fmt.Sprintf("The %s contract matches the candidate's preference", in.Job.Contract),
		}
	}

	for _, pref := range in.Candidate.ContractPreferences {
		if synonymous(pref, in.Job.Contract) {
			return types.CriterionScore{
				Criterion: s.Criterion(),
				Value:     0.8,
				Rationale: fmt.Sprintf("The %s contract is equivalent to the preferred %s", in.Job.Contract, pref),
			}
		}
	}

	return types.CriterionScore{
		Criterion: s.Criterion(),
		Value:     0.3,
		Rationale: fmt.Sprintf("The %s contract does not match any stated preference", in.Job.Contract),
	}
}

func synonymous(a, b types.ContractType) bool {
	return contractSynonyms[a] == b || contractSynonyms[b] == a
}
