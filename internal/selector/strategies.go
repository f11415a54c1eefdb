package selector

// SkillMode selects which skill comparisons may use the embedding path.
type SkillMode string

const (
	// SkillModeTaxonomy matches on exact labels and taxonomy relations only.
	SkillModeTaxonomy SkillMode = "taxonomy"
	// SkillModeSelective uses embeddings for required job skills and the
	// taxonomy-only path for preferred ones.
	SkillModeSelective SkillMode = "selective"
	// SkillModeFull uses embeddings for every skill comparison.
	SkillModeFull SkillMode = "full"
)

// Strategy is a named scoring configuration the engine can run.
type Strategy struct {
	Name        string
	Description string
	SkillMode   SkillMode

	// CostPerPair is the relative predicted cost of scoring one
	// (candidate, job) pair, with the cheapest strategy at 1.0.
	CostPerPair float64
}

// Strategy names.
const (
	StrategyFastHeuristic = "fast-heuristic"
	StrategyHybrid        = "hybrid"
	StrategySemanticHeavy = "semantic-heavy"
)

// strategies in declaration order; Select tie-breaks by this order.
var strategies = []Strategy{
	{
		Name:        StrategyFastHeuristic,
		Description: "exact and taxonomy skill matching only; cheapest, scales to large corpora",
		SkillMode:   SkillModeTaxonomy,
		CostPerPair: 1.0,
	},
	{
		Name:        StrategyHybrid,
		Description: "embeddings for required skills, taxonomy for the rest",
		SkillMode:   SkillModeSelective,
		CostPerPair: 2.5,
	},
	{
		Name:        StrategySemanticHeavy,
		Description: "full embedding similarity on every skill pair",
		SkillMode:   SkillModeFull,
		CostPerPair: 5.0,
	},
}

// Strategies returns the candidate strategies in declaration order.
func Strategies() []Strategy {
	out := make([]Strategy, len(strategies))
	copy(out, strategies)
	return out
}

// Get returns the strategy registered under name.
func Get(name string) (Strategy, bool) {
	for _, s := range strategies {
		if s.Name == name {
			return s, true
		}
	}
	return Strategy{}, false
}

// Names returns the registered strategy names in declaration order.
func Names() []string {
	out := make([]string, len(strategies))
	for i, s := range strategies {
		out[i] = s.Name
	}
	return out
}
