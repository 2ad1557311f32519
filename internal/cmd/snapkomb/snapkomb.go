// Package snapkomb parses analyzer flags and drives the analysis run.
package snapkomb

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/busarovalex/snap-kombination/internal/core/analysis"
	"github.com/busarovalex/snap-kombination/internal/core/deck"
	"github.com/busarovalex/snap-kombination/internal/core/permute"
	"github.com/busarovalex/snap-kombination/internal/input"
	entrypoint "github.com/busarovalex/snap-kombination/internal/platform/cmd"
	"github.com/busarovalex/snap-kombination/internal/storage"
	"github.com/busarovalex/snap-kombination/internal/storage/sqlite"
)

// Permutation strategies selectable from the command line.
const (
	StrategyOptimized  = "optimized"
	StrategyExhaustive = "exhaustive"
)

// Config holds analyzer command configuration.
type Config struct {
	Strategy         string `env:"SNAP_KOMBINATION_STRATEGY" envDefault:"optimized"`
	WarningThreshold uint64 `env:"SNAP_KOMBINATION_WARNING_THRESHOLD" envDefault:"10000000"`
	Force            bool   `env:"SNAP_KOMBINATION_FORCE" envDefault:"false"`
	HistoryPath      string `env:"SNAP_KOMBINATION_HISTORY_PATH"`

	// InputPath is the positional analysis document argument.
	InputPath string
}

// ParseConfig parses environment and flags into Config. The first positional
// argument names the analysis document and is required.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Strategy, "strategy", cfg.Strategy, "Permutation strategy: optimized or exhaustive")
	fs.Uint64Var(&cfg.WarningThreshold, "warning-threshold", cfg.WarningThreshold, "Permutation count above which a run warns before executing")
	fs.BoolVar(&cfg.Force, "force", cfg.Force, "Execute large runs without warning first")
	fs.StringVar(&cfg.HistoryPath, "history", cfg.HistoryPath, "SQLite database path for run history (empty disables recording)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if fs.NArg() < 1 {
		return Config{}, errors.New("an analysis document path is required")
	}
	cfg.InputPath = fs.Arg(0)
	return cfg, nil
}

// Run executes every analysis in the configured document and renders results
// to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceAnalyzer, func(ctx context.Context) error {
		return run(ctx, cfg, out)
	})
}

func run(ctx context.Context, cfg Config, out io.Writer) error {
	factory, err := strategyFactory(cfg.Strategy)
	if err != nil {
		return err
	}

	doc, err := input.ReadFile(cfg.InputPath)
	if err != nil {
		return err
	}
	executors, err := input.Parse(doc, cfg.WarningThreshold)
	if err != nil {
		return err
	}

	var history storage.RunStore
	if cfg.HistoryPath != "" {
		store, err := sqlite.Open(cfg.HistoryPath)
		if err != nil {
			return fmt.Errorf("open run history: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("close run history: %v", err)
			}
		}()
		history = store
	}

	tracer := otel.Tracer("snapkomb")
	for _, executor := range executors {
		if err := ctx.Err(); err != nil {
			return err
		}
		spanCtx, span := tracer.Start(ctx, "execute-analysis")
		span.SetAttributes(
			attribute.StringSlice("analysis.names", executor.Analyses()),
			attribute.String("analysis.strategy", cfg.Strategy),
		)
		err := runExecutor(spanCtx, cfg, executor, factory, history, out)
		span.End()
		if err != nil {
			return err
		}
	}
	return nil
}

func runExecutor(
	ctx context.Context,
	cfg Config,
	executor *analysis.Executor,
	factory permute.Factory[deck.CardIdentity],
	history storage.RunStore,
	out io.Writer,
) error {
	results, err := executor.Execute(factory, cfg.Force)
	if err != nil {
		var warning *analysis.TooManyPermutations
		if !errors.As(err, &warning) {
			return err
		}
		log.Printf("WARNING: %v", warning)
		results, err = executor.Execute(factory, true)
		if err != nil {
			return err
		}
	}

	permutations := executor.PermutationCount(factory)
	for _, result := range results {
		fmt.Fprintln(out, result)
		if history == nil {
			continue
		}
		record := storage.RunRecord{
			InputPath:    cfg.InputPath,
			AnalysisName: result.AsMap()["name"],
			Strategy:     cfg.Strategy,
			Permutations: permutations,
			Result:       result.AsMap(),
			Display:      result.String(),
			CreatedAt:    time.Now().UTC(),
		}
		if _, err := history.RecordRun(ctx, record); err != nil {
			return fmt.Errorf("record run history: %w", err)
		}
	}
	return nil
}

func strategyFactory(strategy string) (permute.Factory[deck.CardIdentity], error) {
	switch strategy {
	case StrategyOptimized:
		return func(d deck.Deck[deck.CardIdentity]) permute.Iterator[deck.CardIdentity] {
			return permute.NewMultiset(d)
		}, nil
	case StrategyExhaustive:
		return func(d deck.Deck[deck.CardIdentity]) permute.Iterator[deck.CardIdentity] {
			return permute.NewExhaustive(d)
		}, nil
	default:
		return nil, fmt.Errorf("unknown permutation strategy %q", strategy)
	}
}
