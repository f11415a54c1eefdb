// Package semantic resolves free-text skill labels to similarity scores using
// embeddings with a hand-authored taxonomy graph as fallback.
package semantic

import (
	"context"

	"github.com/maypok86/otter/v2"
	"go.uber.org/zap"

	"github.com/damien/match-engine/internal/config"
	"github.com/damien/match-engine/internal/types"
)

// Matcher scores pairwise skill-label similarity. A nil embedder puts the
// matcher in degraded mode: exact matches and taxonomy relations only.
type Matcher struct {
	embedder  Embedder
	taxonomy  *Taxonomy
	vectors   *otter.Cache[string, []float32]
	threshold float64
	boost     float64
	floor     float64
	logger    *zap.Logger
}

// NewMatcher builds a matcher. taxonomy may be nil to use the built-in graph;
// logger may be nil.
func NewMatcher(embedder Embedder, taxonomy *Taxonomy, cfg config.SemanticConfig, logger *zap.Logger) *Matcher {
	if taxonomy == nil {
		taxonomy = DefaultTaxonomy()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	size := cfg.EmbedCacheSize
	if size <= 0 {
		size = 4096
	}
	vectors := otter.Must(&otter.Options[string, []float32]{
		MaximumSize: size,
	})
	return &Matcher{
		embedder:  embedder,
		taxonomy:  taxonomy,
		vectors:   vectors,
		threshold: cfg.SimilarityThreshold,
		boost:     cfg.TaxonomyBoost,
		floor:     cfg.ExpertiseFloor,
		logger:    logger,
	}
}

// Taxonomy exposes the matcher's taxonomy for domain introspection.
func (m *Matcher) Taxonomy() *Taxonomy {
	return m.taxonomy
}

// Similarity returns a [0,1] similarity between a job skill label and a
// candidate skill label. The function is symmetric and reflexive after
// normalization. Embedding similarity below the acceptance threshold is
// treated as no match before the taxonomy fallback applies.
func (m *Matcher) Similarity(ctx context.Context, jobSkill, candidateSkill string) float64 {
	a := NormalizeLabel(jobSkill)
	b := NormalizeLabel(candidateSkill)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1.0
	}

	sim := 0.0
	if m.embedder != nil {
		va, errA := m.vector(ctx, a)
		vb, errB := m.vector(ctx, b)
		if errA == nil && errB == nil {
			if s := cosine(va, vb); s > m.threshold {
				sim = s
			}
		}
	}

	// Taxonomy fallback lifts related labels even without embeddings.
	if sim < m.boost && m.taxonomy.Related(a, b) {
		sim = m.boost
	}
	return sim
}

// ExpertiseFactor scales a matched similarity by declared proficiency.
// A candidate at or above the required level keeps the full score; below it,
// the ratio of ordinal levels applies, floored.
func (m *Matcher) ExpertiseFactor(candidate, required types.ProficiencyLevel) float64 {
	c, r := candidate.Ordinal(), required.Ordinal()
	if c >= r {
		return 1.0
	}
	factor := float64(c) / float64(r)
	if factor < m.floor {
		return m.floor
	}
	return factor
}

// vector returns the memoized embedding for a normalized label. Vectors are
// cached for the lifetime of the matcher; this is a pure function cache.
func (m *Matcher) vector(ctx context.Context, label string) ([]float32, error) {
	if v, ok := m.vectors.GetIfPresent(label); ok {
		return v, nil
	}
	v, err := m.embedder.Embed(ctx, label)
	if err != nil {
		m.logger.Debug("embedding unavailable, relying on taxonomy fallback",
			zap.String("label", label), zap.Error(err))
		return nil, err
	}
	m.vectors.Set(label, v)
	return v, nil
}
