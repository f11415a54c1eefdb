package types

import "math"

// Criterion names. Every scorer emits exactly one of these, and the base
// weight table must cover every enabled criterion.
const (
	CriterionSkills      = "skills"
	CriterionContract    = "contract"
	CriterionLocation    = "location"
	CriterionTravelTime  = "travel_time"
	CriterionDate        = "date"
	CriterionSalary      = "salary"
	CriterionExperience  = "experience"
	CriterionFlexibility = "flexibility"
)

// AllCriteria returns the criterion names in their canonical order.
func AllCriteria() []string {
	return []string{
		CriterionSkills,
		CriterionContract,
		CriterionLocation,
		CriterionTravelTime,
		CriterionDate,
		CriterionSalary,
		CriterionExperience,
		CriterionFlexibility,
	}
}

// WeightVector maps criterion name to relative importance. A valid vector has
// weights in [0,1] summing to 1.0 within WeightEpsilon. Vectors are replaced,
// never mutated, after creation.
type WeightVector map[string]float64

// WeightEpsilon is the tolerance for the sum-to-one invariant.
const WeightEpsilon = 1e-6

// Clone returns a deep copy of the vector.
func (w WeightVector) Clone() WeightVector {
	out := make(WeightVector, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// Sum returns the total weight.
func (w WeightVector) Sum() float64 {
	total := 0.0
	for _, v := range w {
		total += v
	}
	return total
}

// Normalized returns a new vector scaled so the weights sum to 1.0.
// A vector with zero total is returned unchanged; callers validate separately.
func (w WeightVector) Normalized() WeightVector {
	total := w.Sum()
	if total <= 0 {
		return w.Clone()
	}
	out := make(WeightVector, len(w))
	for k, v := range w {
		out[k] = v / total
	}
	return out
}

// Valid reports whether the vector sums to 1.0 within tolerance.
func (w WeightVector) Valid() bool {
	return math.Abs(w.Sum()-1.0) <= WeightEpsilon
}

// CriterionScore is the output of a single criterion scorer.
type CriterionScore struct {
	Criterion string  `json:"criterion"`
	Value     float64 `json:"value"`
	Rationale string  `json:"rationale"`
}

// InsightType classifies a criterion's contribution to the match.
type InsightType string

const (
	InsightStrength InsightType = "strength"
	InsightWeakness InsightType = "weakness"
	InsightNeutral  InsightType = "neutral"
)

// Insight is a user-facing takeaway about one criterion.
type Insight struct {
	Type    InsightType `json:"type"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
}

// MatchResult is the scored outcome for one (candidate, job) pair.
type MatchResult struct {
	JobID        string           `json:"job_id"`
	OverallScore int              `json:"overall_score"` // rounded percentage, 0-100
	Breakdown    []CriterionScore `json:"breakdown"`
	WeightsUsed  WeightVector     `json:"weights_used"`
	Insights     []Insight        `json:"insights"`
}

// MatchBatch is the result of matching one candidate against a job set.
// Partial is set when a batch-level timeout aborted in-flight pairs.
type MatchBatch struct {
	Results     []MatchResult `json:"results"`
	Strategy    string        `json:"strategy"`
	WeightsUsed WeightVector  `json:"weights_used"`
	Partial     bool          `json:"partial_result"`
}
