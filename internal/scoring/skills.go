package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/damien/match-engine/internal/semantic"
	"github.com/damien/match-engine/internal/types"
)

// requiredSkillWeight and preferredSkillWeight set the relative importance of
// must-have versus nice-to-have job skills in the aggregate.
const (
	requiredSkillWeight  = 1.0
	preferredSkillWeight = 0.5
	relatedSkillBonus    = 0.05
)

// SkillsScorer aggregates per-skill best matches from the semantic matchers.
// Required and preferred job skills may route through different matchers, so
// a strategy can spend embeddings on the must-haves only.
type SkillsScorer struct {
	required  *semantic.Matcher
	preferred *semantic.Matcher
	bonusCap  float64
}

// NewSkillsScorer builds the skills scorer. required scores the job's
// must-have skills, preferred the nice-to-haves; pass the same matcher for
// uniform behavior. bonusCap limits the extra credit for candidate skills
// beyond the stated requirements.
func NewSkillsScorer(required, preferred *semantic.Matcher, bonusCap float64) *SkillsScorer {
	return &SkillsScorer{required: required, preferred: preferred, bonusCap: bonusCap}
}

func (s *SkillsScorer) Criterion() string { return types.CriterionSkills }

func (s *SkillsScorer) Score(ctx context.Context, in *Input) types.CriterionScore {
	jobSkills := in.Job.AllSkills()
	if len(jobSkills) == 0 {
		return types.CriterionScore{
			Criterion: s.Criterion(),
			Value:     neutralScore,
			Rationale: "The job lists no skill requirements",
		}
	}
	if len(in.Candidate.Skills) == 0 {
		return types.CriterionScore{
			Criterion: s.Criterion(),
			Value:     0,
			Rationale: fmt.Sprintf("No declared skills to match against %d job requirements", len(jobSkills)),
		}
	}

	matchedWeight := 0.0
	totalWeight := 0.0
	var matchedNames []string
	matchedCandidate := make(map[string]bool)

	for _, jobSkill := range jobSkills {
		weight := preferredSkillWeight
		matcher := s.preferred
		if jobSkill.Required {
			weight = requiredSkillWeight
			matcher = s.required
		}
		totalWeight += weight

		best := 0.0
		bestCandidate := ""
		for _, candidateSkill := range in.Candidate.Skills {
			sim := matcher.Similarity(ctx, jobSkill.Name, candidateSkill.Name)
			if sim <= 0 {
				continue
			}
			sim *= matcher.ExpertiseFactor(candidateSkill.Proficiency, jobSkill.Proficiency)
			if sim > best {
				best = sim
				bestCandidate = candidateSkill.Name
			}
		}
		if best > 0 {
			matchedWeight += best * weight
			matchedNames = append(matchedNames, jobSkill.Name)
			matchedCandidate[semantic.NormalizeLabel(bestCandidate)] = true
		}
	}

	base := matchedWeight / totalWeight

	// Extra candidate skills taxonomically related to the job's needs earn a
	// capped bonus.
	bonus := 0.0
	taxonomy := s.preferred.Taxonomy()
	for _, candidateSkill := range in.Candidate.Skills {
		label := semantic.NormalizeLabel(candidateSkill.Name)
		if matchedCandidate[label] {
			continue
		}
		for _, jobSkill := range jobSkills {
			if taxonomy.Related(label, semantic.NormalizeLabel(jobSkill.Name)) {
				bonus += relatedSkillBonus
				break
			}
		}
	}
	if bonus > s.bonusCap {
		bonus = s.bonusCap
	}

	value := clamp01(base + bonus)
	rationale := s.explain(len(matchedNames), len(jobSkills), matchedNames, bonus)
	return types.CriterionScore{Criterion: s.Criterion(), Value: value, Rationale: rationale}
}

func (s *SkillsScorer) explain(matched, total int, names []string, bonus float64) string {
	if matched == 0 {
		return fmt.Sprintf("None of the %d required skills matched the candidate's profile", total)
	}
	shown := names
	if len(shown) > 4 {
		shown = shown[:4]
	}
	msg := fmt.Sprintf("Matched %d of %d job skills (%s)", matched, total, strings.Join(shown, ", "))
	if bonus > 0 {
		msg += "; related extra skills add a bonus"
	}
	return msg
}
