// Package selector picks the scoring strategy best suited to a matching
// request, based on corpus size, candidate profile, and caller priorities.
package selector

import (
	"fmt"
	"math"

	"github.com/damien/match-engine/internal/semantic"
	"github.com/damien/match-engine/internal/types"
)

// Sub-criterion weights for combining strategy fit scores. They sum to 1.0.
const (
	volumeWeight      = 0.25
	experienceWeight  = 0.20
	skillsWeight      = 0.25
	performanceWeight = 0.20
	mobilityWeight    = 0.10
)

// reasonThreshold is the sub-score above which a criterion is worth naming
// in the human-readable reasoning.
const reasonThreshold = 90.0

// Options carries caller priorities for strategy selection.
type Options struct {
	// PerformancePriority is one of "speed", "balanced" (default), "quality".
	PerformancePriority string
}

// StrategyScore pairs a strategy name with its total fit score.
type StrategyScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Result is the routing decision, exposed to callers for introspection.
type Result struct {
	Strategy      string          `json:"strategy"`
	Confidence    int             `json:"confidence"` // 0-100
	Reasoning     []string        `json:"reasoning"`
	PredictedCost float64         `json:"predicted_cost"`
	RunnersUp     []StrategyScore `json:"runners_up"`
}

// Selector is a state-free decision function over the strategy registry.
type Selector struct {
	taxonomy *semantic.Taxonomy
}

// New builds a selector. taxonomy may be nil to use the built-in graph.
func New(taxonomy *semantic.Taxonomy) *Selector {
	if taxonomy == nil {
		taxonomy = semantic.DefaultTaxonomy()
	}
	return &Selector{taxonomy: taxonomy}
}

// Select scores every registered strategy against five criteria and returns
// the winner with runner-ups and reasoning. Selection is deterministic: ties
// resolve by strategy declaration order.
func (s *Selector) Select(candidate *types.CandidateProfile, jobCount int, opts *Options) *Result {
	if opts == nil {
		opts = &Options{}
	}

	type scored struct {
		strategy Strategy
		total    float64
		subs     map[string]float64
	}

	all := make([]scored, 0, len(strategies))
	for _, strategy := range strategies {
		subs := map[string]float64{
			"data volume":          volumeFit(strategy.Name, jobCount),
			"candidate seniority":  experienceFit(strategy.Name, candidate.YearsOfExperience),
			"skill domain":         s.skillDomainFit(strategy.Name, candidate),
			"performance priority": performanceFit(strategy.Name, opts.PerformancePriority),
			"mobility":             mobilityFit(strategy.Name, candidate),
		}
		total := subs["data volume"]*volumeWeight +
			subs["candidate seniority"]*experienceWeight +
			subs["skill domain"]*skillsWeight +
			subs["performance priority"]*performanceWeight +
			subs["mobility"]*mobilityWeight
		all = append(all, scored{strategy: strategy, total: total, subs: subs})
	}

	// Declaration order is preserved; a strictly greater total is required
	// to displace the current winner, so ties break deterministically.
	best := all[0]
	for _, c := range all[1:] {
		if c.total > best.total {
			best = c
		}
	}

	var reasons []string
	for _, name := range []string{"data volume", "candidate seniority", "skill domain", "performance priority", "mobility"} {
		if score := best.subs[name]; score >= reasonThreshold {
			reasons = append(reasons, fmt.Sprintf("%s fit: %.0f/100 for %s", name, score, best.strategy.Name))
		}
	}
	if len(reasons) == 0 {
		reasons = append(reasons, fmt.Sprintf("%s scored highest overall (%.0f/100)", best.strategy.Name, best.total))
	}

	var runnersUp []StrategyScore
	for _, c := range all {
		if c.strategy.Name == best.strategy.Name {
			continue
		}
		runnersUp = append(runnersUp, StrategyScore{Name: c.strategy.Name, Score: round1(c.total)})
	}
	if len(runnersUp) > 3 {
		runnersUp = runnersUp[:3]
	}

	return &Result{
		Strategy:      best.strategy.Name,
		Confidence:    int(math.Round(best.total)),
		Reasoning:     reasons,
		PredictedCost: best.strategy.CostPerPair * float64(jobCount),
		RunnersUp:     runnersUp,
	}
}

// volumeFit scores how well a strategy handles the corpus size.
func volumeFit(strategy string, jobCount int) float64 {
	bucket := 0 // small
	switch {
	case jobCount > 1000:
		bucket = 2 // large
	case jobCount > 100:
		bucket = 1 // medium
	}
	table := map[string][3]float64{
		StrategyFastHeuristic: {60, 80, 95},
		StrategyHybrid:        {80, 90, 70},
		StrategySemanticHeavy: {95, 70, 30},
	}
	return table[strategy][bucket]
}

// experienceFit scores strategy suitability for the candidate's seniority.
// Senior profiles carry broader, less literal skill labels, which favors
// semantic matching.
func experienceFit(strategy string, years float64) float64 {
	bucket := 0 // junior
	switch {
	case years >= 8:
		bucket = 2 // senior
	case years >= 3:
		bucket = 1 // mid
	}
	table := map[string][3]float64{
		StrategyFastHeuristic: {85, 70, 55},
		StrategyHybrid:        {75, 85, 80},
		StrategySemanticHeavy: {60, 80, 95},
	}
	return table[strategy][bucket]
}

// skillDomainFit scores how much the candidate's skill set benefits from
// semantic matching. Skills outside the taxonomy need embeddings to match;
// well-covered skill sets do fine on the cheap paths. Per-skill observations
// combine through a true running mean, so the result is independent of the
// order skills are declared in.
func (s *Selector) skillDomainFit(strategy string, candidate *types.CandidateProfile) float64 {
	if len(candidate.Skills) == 0 {
		return 50
	}

	var acc meanAccumulator
	for _, skill := range candidate.Skills {
		if s.taxonomy.Contains(skill.Name) {
			acc.add(0) // covered by the taxonomy
		} else {
			acc.add(1) // needs embeddings
		}
	}
	uncovered := acc.mean()

	table := map[string][2]float64{
		// {score when fully covered, score when fully uncovered}
		StrategyFastHeuristic: {95, 40},
		StrategyHybrid:        {85, 75},
		StrategySemanticHeavy: {70, 95},
	}
	bounds := table[strategy]
	return bounds[0] + (bounds[1]-bounds[0])*uncovered
}

// performanceFit scores the strategy against the caller's stated priority.
func performanceFit(strategy, priority string) float64 {
	col := 1 // balanced
	switch priority {
	case "speed":
		col = 0
	case "quality":
		col = 2
	}
	table := map[string][3]float64{
		StrategyFastHeuristic: {95, 75, 40},
		StrategyHybrid:        {70, 90, 80},
		StrategySemanticHeavy: {30, 70, 95},
	}
	return table[strategy][col]
}

// mobilityFit scores the strategy for how location-constrained the candidate
// is. A missing home location forces remote-only matching where skill
// precision matters more.
func mobilityFit(strategy string, candidate *types.CandidateProfile) float64 {
	mobile := !candidate.HomeLocation.Empty()
	table := map[string][2]float64{
		// {location-constrained, location-free}
		StrategyFastHeuristic: {85, 65},
		StrategyHybrid:        {80, 80},
		StrategySemanticHeavy: {65, 85},
	}
	if mobile {
		return table[strategy][0]
	}
	return table[strategy][1]
}

// meanAccumulator is an explicit running-count mean, used instead of the
// pairwise "(old+new)/2" update so results do not depend on insertion order.
type meanAccumulator struct {
	sum   float64
	count int
}

func (m *meanAccumulator) add(v float64) {
	m.sum += v
	m.count++
}

func (m *meanAccumulator) mean() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
