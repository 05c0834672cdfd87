package benchmark

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/johnnygoblue/orderbook/common/math"
	"github.com/johnnygoblue/orderbook/log"
	"github.com/johnnygoblue/orderbook/orderbook"
	"github.com/johnnygoblue/orderbook/orderbook/simulator"
)

// DefaultConfig returns the reference run loop of 3 warmup runs, 10
// measured runs and 1000 best price calls per measured run
func DefaultConfig() Config {
	return Config{
		WarmupRuns:          defaultWarmupRuns,
		MeasuredRuns:        defaultMeasuredRuns,
		BestPriceIterations: defaultBestPriceIterations,
	}
}

// Validate checks the run loop settings
func (c Config) Validate() error {
	if c.WarmupRuns < 0 {
		return fmt.Errorf("%w: %d", errInvalidWarmupRuns, c.WarmupRuns)
	}
	if c.MeasuredRuns <= 0 {
		return fmt.Errorf("%w: %d", errInvalidMeasuredRuns, c.MeasuredRuns)
	}
	if c.BestPriceIterations <= 0 {
		return fmt.Errorf("%w: %d", errInvalidBestPriceIterations, c.BestPriceIterations)
	}
	return nil
}

// Run benchmarks a single strategy against d. Each warmup run replays the
// full dataset then clears the book. Each measured run times the add,
// modify and delete batches, then the mean of cfg.BestPriceIterations best
// price calls, then clears the book. obs may be nil.
func Run(ctx context.Context, s orderbook.Strategy, d simulator.Dataset, cfg Config, obs Observer) (*Result, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	return run(ctx, id, s, d, cfg, obs)
}

// RunAll benchmarks each strategy in turn, tagging every result with a
// shared suite id. It stops at the first failure.
func RunAll(ctx context.Context, strategies []orderbook.Strategy, d simulator.Dataset, cfg Config, obs Observer) ([]*Result, error) {
	if len(strategies) == 0 {
		return nil, errNoStrategies
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	log.Infof(log.Benchmark, "suite %s: %d strategies, %d orders, %d modifications, %d deletions",
		id, len(strategies), len(d.Adds), len(d.Modifications), len(d.Deletions))
	results := make([]*Result, 0, len(strategies))
	for _, s := range strategies {
		r, err := run(ctx, id, s, d, cfg, obs)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}

func run(ctx context.Context, id uuid.UUID, s orderbook.Strategy, d simulator.Dataset, cfg Config, obs Observer) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(d.Adds) == 0 {
		return nil, errEmptyDataset
	}
	book, err := orderbook.New(s)
	if err != nil {
		return nil, err
	}

	log.Debugf(log.Benchmark, "%s: %d warmup runs", s.Label(), cfg.WarmupRuns)
	for i := 0; i < cfg.WarmupRuns; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := simulator.Apply(book, d); err != nil {
			return nil, fmt.Errorf("%s warmup run %d: %w", s, i+1, err)
		}
		book.Clear()
	}

	r := &Result{
		ID:            id,
		Strategy:      s,
		Orders:        len(d.Adds),
		Modifications: len(d.Modifications),
		Deletions:     len(d.Deletions),
		Add:           make([]float64, 0, cfg.MeasuredRuns),
		Modify:        make([]float64, 0, cfg.MeasuredRuns),
		Delete:        make([]float64, 0, cfg.MeasuredRuns),
		BestPrice:     make([]float64, 0, cfg.MeasuredRuns),
	}
	for i := 0; i < cfg.MeasuredRuns; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.measure(book, d, cfg.BestPriceIterations, obs); err != nil {
			return nil, fmt.Errorf("%s measured run %d: %w", s, i+1, err)
		}
		book.Clear()
		if obs != nil {
			obs.RunComplete(s)
		}
	}
	log.Infof(log.Benchmark, "%s: add mean %.2fµs, best price mean %.2fns over %d runs",
		s.Label(), math.ArithmeticAverage(r.Add), math.ArithmeticAverage(r.BestPrice), cfg.MeasuredRuns)
	return r, nil
}

func (r *Result) measure(book orderbook.OrderBook, d simulator.Dataset, iterations int, obs Observer) error {
	start := time.Now()
	if err := simulator.ApplyAdds(book, d.Adds); err != nil {
		return err
	}
	addTook := time.Since(start)

	start = time.Now()
	if err := simulator.ApplyModifications(book, d.Modifications); err != nil {
		return err
	}
	modifyTook := time.Since(start)

	start = time.Now()
	if err := simulator.ApplyDeletions(book, d.Deletions); err != nil {
		return err
	}
	deleteTook := time.Since(start)

	start = time.Now()
	for i := 0; i < iterations; i++ {
		if _, _, err := book.BestPrices(); err != nil {
			return err
		}
	}
	bestPriceTook := time.Since(start)

	r.Add = append(r.Add, micros(addTook))
	r.Modify = append(r.Modify, micros(modifyTook))
	r.Delete = append(r.Delete, micros(deleteTook))
	r.BestPrice = append(r.BestPrice, float64(bestPriceTook.Nanoseconds())/float64(iterations))
	if obs != nil {
		obs.Observe(r.Strategy, Add, addTook)
		obs.Observe(r.Strategy, Modify, modifyTook)
		obs.Observe(r.Strategy, Delete, deleteTook)
		obs.Observe(r.Strategy, BestPrice, bestPriceTook/time.Duration(iterations))
	}
	return nil
}

func micros(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / float64(time.Microsecond)
}

// Summary reduces the samples of r to per operation statistics
func (r *Result) Summary() Summary {
	return Summary{
		ID:            r.ID,
		Strategy:      r.Strategy,
		Orders:        r.Orders,
		Modifications: r.Modifications,
		Deletions:     r.Deletions,
		Add:           math.CalculateStats(r.Add),
		Modify:        math.CalculateStats(r.Modify),
		Delete:        math.CalculateStats(r.Delete),
		BestPrice:     math.CalculateStats(r.BestPrice),
	}
}

// Summarise reduces every result in order
func Summarise(results []*Result) []Summary {
	s := make([]Summary, len(results))
	for i := range results {
		s[i] = results[i].Summary()
	}
	return s
}
