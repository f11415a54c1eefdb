package semantic

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damien/match-engine/internal/config"
	"github.com/damien/match-engine/internal/types"
)

// fakeEmbedder serves canned vectors and counts upstream calls.
type fakeEmbedder struct {
	vectors map[string][]float32
	calls   int
}

func (f *fakeEmbedder) Embed(_ context.Context, label string) ([]float32, error) {
	f.calls++
	v, ok := f.vectors[label]
	if !ok {
		return nil, errors.New("no vector for label")
	}
	return v, nil
}

func testConfig() config.SemanticConfig {
	return config.Default().Semantic
}

func TestSimilarity_ExactMatchAfterNormalization(t *testing.T) {
	m := NewMatcher(nil, nil, testConfig(), nil)

	assert.Equal(t, 1.0, m.Similarity(context.Background(), "Go", "go"))
	assert.Equal(t, 1.0, m.Similarity(context.Background(), "golang", "Go"))
	assert.Equal(t, 1.0, m.Similarity(context.Background(), "K8s", "Kubernetes"))
}

func TestSimilarity_EmptyLabels(t *testing.T) {
	m := NewMatcher(nil, nil, testConfig(), nil)

	assert.Equal(t, 0.0, m.Similarity(context.Background(), "", "go"))
	assert.Equal(t, 0.0, m.Similarity(context.Background(), "go", "   "))
}

func TestSimilarity_TaxonomyFallbackWithoutEmbedder(t *testing.T) {
	cfg := testConfig()
	m := NewMatcher(nil, nil, cfg, nil)

	// docker and kubernetes are related in the built-in taxonomy.
	sim := m.Similarity(context.Background(), "Docker", "Kubernetes")
	assert.Equal(t, cfg.TaxonomyBoost, sim)

	// Siblings under the same parent also relate.
	sim = m.Similarity(context.Background(), "react", "vue")
	assert.Equal(t, cfg.TaxonomyBoost, sim)

	// Unrelated labels score zero in degraded mode.
	assert.Equal(t, 0.0, m.Similarity(context.Background(), "cobol", "kubernetes"))
}

func TestSimilarity_IsSymmetric(t *testing.T) {
	m := NewMatcher(nil, nil, testConfig(), nil)

	ab := m.Similarity(context.Background(), "helm", "kubernetes")
	ba := m.Similarity(context.Background(), "kubernetes", "helm")
	assert.Equal(t, ab, ba)
	assert.Greater(t, ab, 0.0)
}

func TestSimilarity_EmbeddingAboveThreshold(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"terraform": {1, 0, 0},
		"pulumi":    {0.9, 0.1, 0}, // high cosine with terraform
		"cobol":     {0, 0, 1},     // orthogonal
	}}
	m := NewMatcher(embedder, nil, testConfig(), nil)

	sim := m.Similarity(context.Background(), "Terraform", "Pulumi")
	assert.Greater(t, sim, testConfig().SimilarityThreshold)

	// Below-threshold cosine means no match; the labels are also unrelated
	// in the taxonomy, so the score is zero.
	assert.Equal(t, 0.0, m.Similarity(context.Background(), "Pulumi", "cobol"))
}

func TestSimilarity_TaxonomyLiftsLowEmbeddingScore(t *testing.T) {
	// Orthogonal vectors, but the labels are taxonomy-related.
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"docker":     {1, 0, 0},
		"kubernetes": {0, 1, 0},
	}}
	cfg := testConfig()
	m := NewMatcher(embedder, nil, cfg, nil)

	assert.Equal(t, cfg.TaxonomyBoost, m.Similarity(context.Background(), "docker", "kubernetes"))
}

func TestSimilarity_EmbedderFailureFallsBackToTaxonomy(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{}} // always errors
	cfg := testConfig()
	m := NewMatcher(embedder, nil, cfg, nil)

	assert.Equal(t, cfg.TaxonomyBoost, m.Similarity(context.Background(), "docker", "kubernetes"))
}

func TestVector_MemoizesEmbeddings(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"terraform": {1, 0, 0},
		"ansible":   {0.8, 0.2, 0},
	}}
	m := NewMatcher(embedder, nil, testConfig(), nil)

	for range 5 {
		m.Similarity(context.Background(), "terraform", "ansible")
	}

	// One upstream call per distinct label, regardless of repetitions.
	assert.Equal(t, 2, embedder.calls)
}

func TestExpertiseFactor(t *testing.T) {
	m := NewMatcher(nil, nil, testConfig(), nil)

	assert.Equal(t, 1.0, m.ExpertiseFactor(types.ProficiencyExpert, types.ProficiencyBeginner))
	assert.Equal(t, 1.0, m.ExpertiseFactor(types.ProficiencyAdvanced, types.ProficiencyAdvanced))
	assert.InDelta(t, 0.5, m.ExpertiseFactor(types.ProficiencyIntermediate, types.ProficiencyExpert), 1e-9)
	// The floor stops deep deficits from zeroing the match.
	assert.Equal(t, testConfig().ExpertiseFloor, m.ExpertiseFactor(types.ProficiencyBeginner, types.ProficiencyExpert))
}

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "go", NormalizeLabel("  GoLang "))
	assert.Equal(t, "kubernetes", NormalizeLabel("K8S"))
	assert.Equal(t, "machine learning", NormalizeLabel("Machine   Learning"))
	assert.Equal(t, "", NormalizeLabel("   "))
}

func TestTaxonomy_Related(t *testing.T) {
	tax := DefaultTaxonomy()

	// Parent-child, both directions.
	assert.True(t, tax.Related("javascript", "react"))
	assert.True(t, tax.Related("react", "javascript"))
	// Same parent.
	assert.True(t, tax.Related("postgresql", "mongodb"))
	// Declared relation, either side.
	assert.True(t, tax.Related("python", "machine learning"))
	assert.True(t, tax.Related("machine learning", "python"))
	// Unrelated.
	assert.False(t, tax.Related("react", "postgresql"))
	assert.False(t, tax.Related("unknown-a", "unknown-b"))
}

func TestTaxonomy_Domain(t *testing.T) {
	tax := DefaultTaxonomy()
	assert.Equal(t, "backend", tax.Domain("Go"))
	assert.Equal(t, "devops", tax.Domain("kubernetes"))
	assert.Equal(t, "", tax.Domain("basket weaving"))
}

func TestNewTaxonomy_NormalizesLabels(t *testing.T) {
	tax := NewTaxonomy(map[string]Node{
		"GoLang": {Related: []string{"RUST"}},
		"Rust":   {},
	})
	require.True(t, tax.Contains("go"))
	assert.True(t, tax.Related("go", "rust"))
}

func TestCosine_ClampedToUnitRange(t *testing.T) {
	assert.InDelta(t, 1.0, cosine([]float32{1, 0}, []float32{2, 0}), 1e-6)
	assert.Equal(t, 0.0, cosine([]float32{1, 0}, []float32{0, 1}))
	// Opposite vectors clamp to zero rather than going negative.
	assert.Equal(t, 0.0, cosine([]float32{1, 0}, []float32{-1, 0}))
	assert.Equal(t, 0.0, cosine([]float32{1, 0}, []float32{1}))
}
