package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDominantLever_HighestWins(t *testing.T) {
	q := &PreferenceQuestionnaire{Evolution: 3, Remuneration: 9, Proximity: 5, Flexibility: 2}
	assert.Equal(t, LeverRemuneration, q.DominantLever())
}

func TestDominantLever_TieResolvesInDeclarationOrder(t *testing.T) {
	// Remuneration and flexibility tie at 8; remuneration is declared first.
	q := &PreferenceQuestionnaire{Evolution: 2, Remuneration: 8, Proximity: 4, Flexibility: 8}
	assert.Equal(t, LeverRemuneration, q.DominantLever())

	// A four-way tie falls back to the first lever.
	q = &PreferenceQuestionnaire{Evolution: 5, Remuneration: 5, Proximity: 5, Flexibility: 5}
	assert.Equal(t, LeverEvolution, q.DominantLever())
}

func TestWantsTelework(t *testing.T) {
	q := &PreferenceQuestionnaire{}
	assert.False(t, q.WantsTelework())

	q.FlexibilityExpectations.Telework = RemoteNone
	assert.False(t, q.WantsTelework())

	q.FlexibilityExpectations.Telework = RemotePartial
	assert.True(t, q.WantsTelework())
}

func TestQuestionnaireValidate_RejectsOutOfRangeRatings(t *testing.T) {
	q := &PreferenceQuestionnaire{Evolution: 11, Remuneration: 5, Proximity: 5, Flexibility: 5}
	assert.Error(t, q.Validate())

	q = &PreferenceQuestionnaire{Evolution: 5, Remuneration: 0, Proximity: 5, Flexibility: 5}
	assert.Error(t, q.Validate())

	q = &PreferenceQuestionnaire{Evolution: 1, Remuneration: 10, Proximity: 5, Flexibility: 5}
	assert.NoError(t, q.Validate())
}

func TestWeightVector_NormalizedSumsToOne(t *testing.T) {
	w := WeightVector{"a": 2, "b": 1, "c": 1}
	n := w.Normalized()

	require.True(t, n.Valid())
	assert.InDelta(t, 0.5, n["a"], 1e-9)
	// The original is untouched.
	assert.Equal(t, 2.0, w["a"])
}

func TestWeightVector_CloneIsIndependent(t *testing.T) {
	w := WeightVector{"a": 0.5, "b": 0.5}
	c := w.Clone()
	c["a"] = 0.9

	assert.Equal(t, 0.5, w["a"])
}

func TestWeightVector_ZeroSumNormalizeIsNoop(t *testing.T) {
	w := WeightVector{"a": 0, "b": 0}
	n := w.Normalized()
	assert.Equal(t, 0.0, n.Sum())
	assert.False(t, n.Valid())
}

func TestSalaryRange_Midpoint(t *testing.T) {
	assert.Equal(t, 55000.0, SalaryRange{Min: 50000, Max: 60000}.Midpoint())
	assert.Equal(t, 50000.0, SalaryRange{Min: 50000}.Midpoint())
	assert.Equal(t, 60000.0, SalaryRange{Max: 60000}.Midpoint())
	assert.Equal(t, 0.0, SalaryRange{}.Midpoint())
}

func TestProficiencyLevel_Ordinal(t *testing.T) {
	assert.Equal(t, 1, ProficiencyBeginner.Ordinal())
	assert.Equal(t, 4, ProficiencyExpert.Ordinal())
	// Unknown levels read as intermediate.
	assert.Equal(t, 2, ProficiencyLevel("wizard").Ordinal())
	assert.Equal(t, 2, ProficiencyLevel("").Ordinal())
}

func TestLocation_EmptyAndKey(t *testing.T) {
	assert.True(t, Location{}.Empty())
	assert.False(t, Location{City: "Lyon"}.Empty())
	assert.False(t, Location{Coordinates: &Coordinates{Latitude: 45.76, Longitude: 4.84}}.Empty())

	a := Location{Address: "12 rue de la République", City: "Lyon"}
	b := Location{Address: "12 rue de la République", City: "Lyon"}
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), Location{City: "Paris"}.Key())
	// The address dominates the key when present.
	assert.Equal(t, "12 rue de la République", a.Key())
}

func TestRemotePolicy_Ordinal(t *testing.T) {
	assert.Equal(t, 0, RemoteNone.Ordinal())
	assert.Equal(t, 1, RemotePartial.Ordinal())
	assert.Equal(t, 2, RemoteFull.Ordinal())
	assert.Equal(t, 0, RemotePolicy("").Ordinal())
}

func TestCandidateValidate_RequiresID(t *testing.T) {
	c := &CandidateProfile{}
	assert.Error(t, c.Validate())

	c.ID = "cand-1"
	assert.NoError(t, c.Validate())
}
