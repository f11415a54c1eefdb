// Package engine orchestrates the full matching pipeline: weight adaptation,
// strategy routing, concurrent per-job scoring, and aggregation.
package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/damien/match-engine/internal/aggregate"
	"github.com/damien/match-engine/internal/config"
	"github.com/damien/match-engine/internal/geo"
	"github.com/damien/match-engine/internal/scoring"
	"github.com/damien/match-engine/internal/selector"
	"github.com/damien/match-engine/internal/semantic"
	"github.com/damien/match-engine/internal/types"
	"github.com/damien/match-engine/internal/weights"
)

// Options tunes a single Match call.
type Options struct {
	// Strategy forces a registered strategy by name, bypassing the selector.
	Strategy string
	// PerformancePriority is forwarded to the selector ("speed", "balanced",
	// "quality"). Ignored when Strategy is set.
	PerformancePriority string
	// MaxCommuteMinutes overrides the questionnaire's commute tolerance.
	MaxCommuteMinutes float64
}

// Engine is the matching pipeline. It is safe for concurrent use; all
// mutable state lives in the caches it was built with.
type Engine struct {
	cfg      *config.Config
	logger   *zap.Logger
	matcher  *semantic.Matcher // embedding-backed
	degraded *semantic.Matcher // taxonomy-only, for heuristic strategies
	geoCache *geo.Cache
	selector *selector.Selector
	rules    []weights.Rule
}

// New wires an engine from its dependencies. matcher and geoCache must be
// non-nil; logger may be nil.
func New(cfg *config.Config, matcher *semantic.Matcher, geoCache *geo.Cache, logger *zap.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if matcher == nil {
		return nil, fmt.Errorf("engine: semantic matcher is required")
	}
	if geoCache == nil {
		return nil, fmt.Errorf("engine: geo cache is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:      cfg,
		logger:   logger,
		matcher:  matcher,
		degraded: semantic.NewMatcher(nil, matcher.Taxonomy(), cfg.Semantic, logger),
		geoCache: geoCache,
		selector: selector.New(matcher.Taxonomy()),
		rules:    weights.DefaultRules(),
	}, nil
}

// SelectAlgorithm exposes the strategy router without running a batch.
func (e *Engine) SelectAlgorithm(candidate *types.CandidateProfile, jobCount int, opts *Options) (*selector.Result, error) {
	if candidate == nil {
		return nil, &ValidationError{Field: "candidate", Message: "must not be nil"}
	}
	if err := candidate.Validate(); err != nil {
		return nil, &ValidationError{Field: "candidate", Message: err.Error()}
	}
	priority := ""
	if opts != nil {
		priority = opts.PerformancePriority
	}
	return e.selector.Select(candidate, jobCount, &selector.Options{PerformancePriority: priority}), nil
}

// Match scores one candidate against a batch of jobs and returns ranked
// results. On batch timeout the pairs completed so far are returned with the
// batch marked partial; cancellation of the parent context aborts instead.
func (e *Engine) Match(ctx context.Context, candidate *types.CandidateProfile, jobs []types.JobOffer, questionnaire *types.PreferenceQuestionnaire, opts *Options) (*types.MatchBatch, error) {
	if err := e.validateInputs(candidate, jobs, questionnaire); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &Options{}
	}

	derived, err := weights.DeriveWithRules(e.cfg.BaseWeightVector(), questionnaire, e.rules)
	if err != nil {
		return nil, fmt.Errorf("deriving weights: %w", err)
	}

	strategy, routing, err := e.resolveStrategy(candidate, len(jobs), opts)
	if err != nil {
		return nil, err
	}

	scorers := e.buildScorers(strategy)
	maxCommute := e.resolveMaxCommute(questionnaire, opts)

	e.logger.Info("starting match batch",
		zap.String("candidate_id", candidate.ID),
		zap.Int("jobs", len(jobs)),
		zap.String("strategy", strategy.Name),
	)
	if routing != nil {
		e.logger.Debug("strategy selected",
			zap.Int("confidence", routing.Confidence),
			zap.Float64("predicted_cost", routing.PredictedCost),
		)
	}

	batchCtx, cancel := context.WithTimeout(ctx, e.cfg.BatchTimeout)
	defer cancel()

	results := make([]*types.MatchResult, len(jobs))
	g, gctx := errgroup.WithContext(batchCtx)
	g.SetLimit(e.cfg.MaxConcurrency)

	for i := range jobs {
		// Pairs not yet started when the batch deadline fires are dropped;
		// their slot stays nil and the batch is reported partial.
		if batchCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			job := &jobs[i]
			in := &scoring.Input{
				Candidate:         candidate,
				Job:               job,
				Questionnaire:     questionnaire,
				MaxCommuteMinutes: maxCommute,
			}
			scores := make([]types.CriterionScore, 0, len(scorers))
			for _, s := range scorers {
				scores = append(scores, s.Score(gctx, in))
			}
			result, err := aggregate.Aggregate(job.ID, scores, derived)
			if err != nil {
				return err
			}
			// A pair that finished after the deadline is discarded so the
			// partial batch only contains work completed in time.
			if batchCtx.Err() != nil && ctx.Err() == nil {
				return nil
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		// The caller went away; a partial answer has no one to read it.
		return nil, ctx.Err()
	}

	batch := &types.MatchBatch{
		Results:     make([]types.MatchResult, 0, len(jobs)),
		Strategy:    strategy.Name,
		WeightsUsed: derived,
	}
	for _, r := range results {
		if r == nil {
			batch.Partial = true
			continue
		}
		batch.Results = append(batch.Results, *r)
	}
	aggregate.Sort(batch.Results)

	e.logger.Info("match batch complete",
		zap.String("candidate_id", candidate.ID),
		zap.Int("scored", len(batch.Results)),
		zap.Bool("partial", batch.Partial),
	)
	return batch, nil
}

func (e *Engine) validateInputs(candidate *types.CandidateProfile, jobs []types.JobOffer, questionnaire *types.PreferenceQuestionnaire) error {
	if candidate == nil {
		return &ValidationError{Field: "candidate", Message: "must not be nil"}
	}
	if err := candidate.Validate(); err != nil {
		return &ValidationError{Field: "candidate", Message: err.Error()}
	}
	if len(jobs) == 0 {
		return &ValidationError{Field: "jobs", Message: "batch must contain at least one job"}
	}
	for i := range jobs {
		if err := jobs[i].Validate(); err != nil {
			return &ValidationError{
				Field:   fmt.Sprintf("jobs[%d]", i),
				Message: err.Error(),
			}
		}
	}
	if questionnaire != nil {
		if err := questionnaire.Validate(); err != nil {
			return &ValidationError{Field: "questionnaire", Message: err.Error()}
		}
	}
	return nil
}

func (e *Engine) resolveStrategy(candidate *types.CandidateProfile, jobCount int, opts *Options) (selector.Strategy, *selector.Result, error) {
	if opts.Strategy != "" {
		strategy, ok := selector.Get(opts.Strategy)
		if !ok {
			return selector.Strategy{}, nil, &ValidationError{
				Field:   "strategy",
				Message: fmt.Sprintf("unknown strategy %q, known: %v", opts.Strategy, selector.Names()),
			}
		}
		return strategy, nil, nil
	}
	routing := e.selector.Select(candidate, jobCount, &selector.Options{PerformancePriority: opts.PerformancePriority})
	strategy, ok := selector.Get(routing.Strategy)
	if !ok {
		return selector.Strategy{}, nil, fmt.Errorf("selector returned unregistered strategy %q", routing.Strategy)
	}
	return strategy, routing, nil
}

// buildScorers assembles the per-criterion scorer set. The strategy's skill
// mode decides which comparisons may spend embedding calls: none for the
// heuristic path, required job skills only for selective, all for full.
func (e *Engine) buildScorers(strategy selector.Strategy) []scoring.Scorer {
	required, preferred := e.degraded, e.degraded
	switch strategy.SkillMode {
	case selector.SkillModeSelective:
		required = e.matcher
	case selector.SkillModeFull:
		required, preferred = e.matcher, e.matcher
	}
	return []scoring.Scorer{
		scoring.NewSkillsScorer(required, preferred, e.cfg.Scoring.SkillBonusCap),
		scoring.NewContractScorer(),
		scoring.NewLocationScorer(e.geoCache, e.logger),
		scoring.NewTravelTimeScorer(e.geoCache, e.logger),
		scoring.NewAvailabilityScorer(),
		scoring.NewSalaryScorer(),
		scoring.NewExperienceScorer(),
		scoring.NewFlexibilityScorer(),
	}
}

func (e *Engine) resolveMaxCommute(q *types.PreferenceQuestionnaire, opts *Options) float64 {
	if opts.MaxCommuteMinutes > 0 {
		return opts.MaxCommuteMinutes
	}
	if q != nil && q.MaxCommuteMinutes > 0 {
		return q.MaxCommuteMinutes
	}
	return e.cfg.Scoring.DefaultMaxCommuteMinutes
}

// InvalidateTravel drops any cached travel estimate for the given pair.
func (e *Engine) InvalidateTravel(origin, destination types.Location, mode types.TransportMode) {
	e.geoCache.Invalidate(origin, destination, mode)
}
