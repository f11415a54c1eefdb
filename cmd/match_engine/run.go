package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/damien/match-engine/internal/config"
	"github.com/damien/match-engine/internal/engine"
	"github.com/damien/match-engine/internal/geo"
	"github.com/damien/match-engine/internal/logger"
	"github.com/damien/match-engine/internal/semantic"
	"github.com/damien/match-engine/internal/types"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Score a candidate against a batch of job offers",
	Long: `Runs the full matching pipeline: weight adaptation from the questionnaire,
strategy routing, concurrent per-criterion scoring, and ranked explained output.

Configuration is layered: defaults, then an optional config file (--config),
then MATCH_* environment variables.`,
	RunE: runMatchCmd,
}

var (
	runConfigPath        string
	runCandidatePath     string
	runJobsPath          string
	runQuestionnairePath string
	runStrategy          string
	runMaxCommute        float64
	runJSON              bool
	runDebug             bool
	runAPIKey            string
)

func init() {
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config file (YAML/JSON, overridden by MATCH_* env vars)")
	runCommand.Flags().StringVarP(&runCandidatePath, "candidate", "c", "", "Path to candidate profile JSON (required)")
	runCommand.Flags().StringVarP(&runJobsPath, "jobs", "j", "", "Path to job offers JSON array (required)")
	runCommand.Flags().StringVarP(&runQuestionnairePath, "questionnaire", "q", "", "Path to preference questionnaire JSON (optional)")
	runCommand.Flags().StringVarP(&runStrategy, "strategy", "s", "", "Force a scoring strategy instead of automatic selection")
	runCommand.Flags().Float64Var(&runMaxCommute, "max-commute", 0, "Override the questionnaire's max commute (minutes)")
	runCommand.Flags().BoolVar(&runJSON, "json", false, "Emit the full match batch as JSON")
	runCommand.Flags().BoolVarP(&runDebug, "debug", "d", false, "Enable debug logging")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API key for embeddings (optional, defaults to GEMINI_API_KEY env var)")

	_ = runCommand.MarkFlagRequired("candidate")
	_ = runCommand.MarkFlagRequired("jobs")

	rootCmd.AddCommand(runCommand)
}

func runMatchCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(runConfigPath)
	if err != nil {
		return err
	}

	log, err := logger.New(runJSON, runDebug)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	candidate, err := loadJSON[types.CandidateProfile](runCandidatePath)
	if err != nil {
		return fmt.Errorf("loading candidate: %w", err)
	}
	jobs, err := loadJSON[[]types.JobOffer](runJobsPath)
	if err != nil {
		return fmt.Errorf("loading jobs: %w", err)
	}
	var questionnaire *types.PreferenceQuestionnaire
	if runQuestionnairePath != "" {
		q, err := loadJSON[types.PreferenceQuestionnaire](runQuestionnairePath)
		if err != nil {
			return fmt.Errorf("loading questionnaire: %w", err)
		}
		questionnaire = q
	}

	eng, cleanup, err := buildEngine(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	batchID := uuid.NewString()
	log.Info("match run", zap.String("batch_id", batchID), zap.Int("jobs", len(*jobs)))

	batch, err := eng.Match(ctx, candidate, *jobs, questionnaire, &engine.Options{
		Strategy:          runStrategy,
		MaxCommuteMinutes: runMaxCommute,
	})
	if err != nil {
		return err
	}

	if runJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(batch)
	}
	printBatch(batch)
	return nil
}

// buildEngine wires the engine's dependency graph from configuration. The
// returned cleanup closes the embedder and any database store.
func buildEngine(ctx context.Context, cfg *config.Config, log *zap.Logger) (*engine.Engine, func(), error) {
	cleanups := []func(){}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	apiKey := runAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	var embedder semantic.Embedder
	if apiKey != "" {
		g, err := semantic.NewGeminiEmbedder(ctx, apiKey, cfg.Semantic.EmbeddingModel)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("initializing embedder: %w", err)
		}
		cleanups = append(cleanups, func() { _ = g.Close() })
		embedder = g
	} else {
		log.Warn("no Gemini API key set, semantic matching degrades to taxonomy relations")
	}

	var taxonomy *semantic.Taxonomy
	if cfg.Semantic.TaxonomyPath != "" {
		t, err := semantic.Load(cfg.Semantic.TaxonomyPath)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("loading taxonomy: %w", err)
		}
		taxonomy = t
	}
	matcher := semantic.NewMatcher(embedder, taxonomy, cfg.Semantic, log)

	var provider geo.Provider
	if cfg.Geo.ProviderURL != "" {
		provider = geo.NewHTTPProvider(cfg.Geo.ProviderURL, cfg.Geo.APIKey, cfg.Geo.LookupTimeout, cfg.Geo.RetryAttempts, log)
	} else {
		log.Warn("no geo provider configured, location and commute criteria score neutral")
	}
	var store geo.Store
	if cfg.Geo.DatabaseURL != "" {
		pg, err := geo.NewPostgresStore(ctx, cfg.Geo.DatabaseURL)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("connecting travel cache store: %w", err)
		}
		cleanups = append(cleanups, pg.Close)
		store = pg
	}
	geoCache := geo.NewCache(provider, store, cfg.Geo, log)

	eng, err := engine.New(cfg, matcher, geoCache, log)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return eng, cleanup, nil
}

func loadJSON[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &v, nil
}

func printBatch(batch *types.MatchBatch) {
	fmt.Printf("Strategy: %s", batch.Strategy)
	if batch.Partial {
		fmt.Printf("  (partial: batch deadline reached)")
	}
	fmt.Println()
	for i, r := range batch.Results {
		fmt.Printf("%2d. %-24s %3d\n", i+1, r.JobID, r.OverallScore)
		for _, ins := range r.Insights {
			fmt.Printf("      [%s] %s: %s\n", ins.Type, ins.Title, ins.Message)
		}
	}
}
