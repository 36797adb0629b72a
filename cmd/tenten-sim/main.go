package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/tenten/autoplay"
	"github.com/plus3/tenten/config"
	"github.com/plus3/tenten/puzzle/supply"
	"github.com/plus3/tenten/session"
)

type outcome struct {
	seed    uint64
	result  autoplay.Result
	elapsed time.Duration
	stats   supply.Stats
	err     error
}

func main() {
	games := flag.Int("games", 100, "Number of games to play.")
	seed := flag.Uint64("seed", 1, "Seed of the first game. Game i uses seed+i.")
	modeName := flag.String("mode", "", "Supply mode. Overrides the config file when set.")
	configPath := flag.String("config", "", "Path to a YAML tuning file. Defaults are used when empty.")
	revives := flag.Bool("revives", false, "Spend every allowed revive before a game ends.")
	logJSON := flag.Bool("log-json", false, "Log JSON lines instead of the development console format.")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "Games played in parallel.")
	maxMoves := flag.Int("max-moves", 10000, "Stop a game after this many moves.")
	timeout := flag.Duration("timeout", 10*time.Minute, "Give up on the whole run after this long.")
	flag.Parse()

	logger, err := newLogger(*logJSON)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if *modeName != "" {
		if cfg.Mode, err = supply.ParseMode(*modeName); err != nil {
			logger.Fatal("parse mode", zap.Error(err))
		}
	}

	report := &Report{
		Games:   *games,
		Seed:    *seed,
		Mode:    cfg.Mode,
		Revives: *revives,
		Workers: max(*workers, 1),
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	logger.Info("simulation started", zap.Int("games", *games), zap.Stringer("mode", cfg.Mode))
	startTime := time.Now()

	outcomes := make([]outcome, *games)
	jobs := make(chan int)
	var wg sync.WaitGroup
	for range report.Workers {
		wg.Go(func() {
			chooser := autoplay.NewGreedy()
			for i := range jobs {
				outcomes[i] = play(ctx, cfg, *seed+uint64(i), chooser, autoplay.Options{Revive: *revives, MaxMoves: *maxMoves})
			}
		})
	}
	for i := range *games {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	report.TotalTime = time.Since(startTime)
	collect(report, outcomes, logger)
	report.Finalize()

	logger.Info("simulation finished", zap.Duration("elapsed", report.TotalTime), zap.Int("unfinished", report.Unfinished))

	fmt.Println("\n--- Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}

// collect adds finished games to the report. Games stopped by the move cap
// or the deadline, and games that failed, only count as unfinished.
func collect(r *Report, outcomes []outcome, logger *zap.Logger) {
	for _, o := range outcomes {
		switch {
		case errors.Is(o.err, autoplay.ErrMoveLimit), errors.Is(o.err, context.DeadlineExceeded):
			r.Unfinished++
		case o.err != nil:
			logger.Error("game failed", zap.Uint64("seed", o.seed), zap.Error(o.err))
			r.Unfinished++
		default:
			r.Add(o.seed, o.result, o.elapsed, o.stats)
		}
	}
}

func play(ctx context.Context, cfg config.Tuning, seed uint64, chooser autoplay.Chooser, opts autoplay.Options) outcome {
	start := time.Now()
	g := session.New(cfg, session.WithSeed(seed))
	res, err := autoplay.Play(ctx, g, chooser, opts)
	return outcome{
		seed:    seed,
		result:  res,
		elapsed: time.Since(start),
		stats:   g.SupplyStats(),
		err:     err,
	}
}

func newLogger(json bool) (*zap.Logger, error) {
	if json {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
