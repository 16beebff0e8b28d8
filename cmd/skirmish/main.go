// Package main provides the skirmish binary, which loads a roster into an
// arena, runs a Lua scenario against it, and logs the final state.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/arena"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/roster"
	"github.com/cory-johannsen/skirmish/internal/observability"
	"github.com/cory-johannsen/skirmish/internal/scripting"
)

// options holds the parsed command line.
type options struct {
	configPath string
	rosterPath string
	scriptPath string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "path to configuration file; empty = built-in defaults")
	flag.StringVar(&opts.rosterPath, "roster", "", "path to a roster YAML file; empty = empty arena")
	flag.StringVar(&opts.scriptPath, "script", "", "path to a Lua scenario; empty = no scenario")
	flag.Parse()

	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		cfg = loaded
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := run(ctx, cfg, opts, logger); err != nil {
		logger.Error("skirmish failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

// run builds the arena from cfg and executes the roster and scenario named by opts.
//
// Precondition: cfg must have passed Validate; logger must be non-nil.
// Postcondition: Returns the arena after the scenario, or a non-nil error.
func run(ctx context.Context, cfg config.Config, opts options, logger *zap.Logger) (*arena.Arena, error) {
	start := time.Now()

	rules, err := combat.RulesFromConfig(cfg.Rules)
	if err != nil {
		return nil, fmt.Errorf("building rules: %w", err)
	}
	a := arena.New(rules, logger)

	if opts.rosterPath != "" {
		r, err := roster.Load(opts.rosterPath)
		if err != nil {
			return nil, fmt.Errorf("loading roster: %w", err)
		}
		if _, err := r.Apply(a); err != nil {
			return nil, fmt.Errorf("applying roster: %w", err)
		}
		logger.Info("roster loaded",
			zap.String("path", opts.rosterPath),
			zap.Int("entities", a.Len()),
		)
	}

	if opts.scriptPath != "" {
		mgr := scripting.NewManager(a, logger, cfg.Scripting.InstructionLimit)
		if err := mgr.RunFile(ctx, opts.scriptPath); err != nil {
			return nil, err
		}
	}

	for _, st := range a.Statuses() {
		fields := []zap.Field{
			zap.String("id", st.ID),
			zap.String("name", st.Name),
			zap.Stringer("kind", st.Kind),
			zap.Int("health", st.Health),
			zap.Int("max_health", st.MaxHealth),
			zap.Bool("alive", st.Alive),
			zap.Float64("x", st.Position.X),
			zap.Float64("y", st.Position.Y),
		}
		if st.Kind == arena.KindCharacter {
			fields = append(fields,
				zap.Int("level", st.Level),
				zap.Stringer("weapon", st.Weapon),
				zap.Strings("factions", st.Factions),
			)
		}
		logger.Info("final status", fields...)
	}
	logger.Info("skirmish complete", zap.Duration("elapsed", time.Since(start)))
	return a, nil
}
