// Command mealplan solves one planning problem from a catalog file and prints
// the solution as JSON.
//
//	mealplan --catalog recipes.yaml --meals 5 --budget 60 --calorie-cap 700
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/guttosm/meal-planner-service/internal/catalog"
	"github.com/guttosm/meal-planner-service/internal/domain/dto"
	"github.com/guttosm/meal-planner-service/internal/domain/model"
	"github.com/guttosm/meal-planner-service/internal/optimizer"
)

const (
	exitOK         = 0
	exitError      = 1
	exitUsage      = 2
	exitInfeasible = 3
)

type options struct {
	catalogPath     string
	preferencesPath string
	prefs           model.Preferences
	timeBudget      time.Duration
	allergies       []string
	dislikes        []string
	lotSize         int64
	workers         int
	logLevel        string
	compact         bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	level, err := zerolog.ParseLevel(opts.logLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.TimeOnly}).
		Level(level).With().Timestamp().Logger()

	c, err := catalog.Load(opts.catalogPath)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load catalog")
		return exitError
	}
	c.Allergies = append(c.Allergies, opts.allergies...)
	c.Dislikes = append(c.Dislikes, opts.dislikes...)

	prefs := opts.prefs
	if opts.preferencesPath != "" {
		if err := catalog.LoadInto(opts.preferencesPath, &prefs); err != nil {
			log.Error().Err(err).Msg("Failed to load preferences")
			return exitError
		}
	}
	if opts.timeBudget > 0 {
		prefs.TimeBudgetMS = opts.timeBudget.Milliseconds()
	}

	req := dto.PlanRequest{Catalog: &c, Preferences: prefs}
	err = dto.ValidateBinding(&req)
	if err == nil {
		err = req.Validate(dto.PlanLimits{})
	}
	if err != nil {
		log.Error().Err(err).Msg("Invalid preferences")
		return exitUsage
	}

	sol, err := optimizer.Solve(ctx, c, prefs,
		optimizer.WithLotSize(opts.lotSize),
		optimizer.WithWorkers(opts.workers),
		optimizer.WithLogger(log),
	)
	if err != nil {
		log.Error().Err(err).Msg("Planning failed")
		return exitError
	}
	for _, w := range sol.Warnings {
		log.Warn().Msg(w)
	}

	enc := json.NewEncoder(stdout)
	if !opts.compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(sol); err != nil {
		log.Error().Err(err).Msg("Failed to write solution")
		return exitError
	}

	if !sol.Status.HasSelection() {
		return exitInfeasible
	}
	return exitOK
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	weights := model.DefaultObjectiveWeights()

	fs := pflag.NewFlagSet("mealplan", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.catalogPath, "catalog", "c", "", "catalog document (.json, .yaml or .yml)")
	fs.StringVarP(&opts.preferencesPath, "preferences", "p", "", "preferences document; overrides the preference flags")
	fs.IntVarP(&opts.prefs.DesiredMealCount, "meals", "n", 5, "number of distinct recipes to choose")
	fs.Float64VarP(&opts.prefs.Budget, "budget", "b", 60, "spending limit in currency units")
	fs.Int64Var(&opts.prefs.CalorieCapPerRecipe, "calorie-cap", 0, "exclude recipes above this many calories (0 disables)")
	fs.DurationVar(&opts.timeBudget, "time-budget", 5*time.Second, "search time limit (0 searches exhaustively)")
	fs.StringSliceVar(&opts.allergies, "allergy", nil, "ingredient id to exclude; repeatable")
	fs.StringSliceVar(&opts.dislikes, "dislike", nil, "ingredient id to penalize; repeatable")
	fs.Float64Var(&weights.Protein, "weight-protein", weights.Protein, "objective reward per gram of protein")
	fs.Float64Var(&weights.Cholesterol, "weight-cholesterol", weights.Cholesterol, "objective penalty per mg of cholesterol")
	fs.Float64Var(&weights.Dislike, "weight-dislike", weights.Dislike, "objective penalty per disliked recipe")
	fs.Int64Var(&opts.lotSize, "lot-size", optimizer.DefaultLotSize, "purchase increment in hundredths of a package")
	fs.IntVarP(&opts.workers, "workers", "w", runtime.NumCPU(), "parallel search workers")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	fs.BoolVar(&opts.compact, "compact", false, "print the solution on one line")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: mealplan --catalog FILE [flags]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.catalogPath == "" {
		fs.Usage()
		return opts, errors.New("--catalog is required")
	}
	if opts.lotSize <= 0 {
		return opts, errors.New("--lot-size must be positive")
	}
	if opts.timeBudget < 0 {
		return opts, errors.New("--time-budget must not be negative")
	}
	opts.prefs.ObjectiveWeights = weights
	return opts, nil
}
