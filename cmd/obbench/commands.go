package main

import (
	"fmt"
	"math/rand"
	"text/tabwriter"

	"github.com/johnnygoblue/orderbook/benchmark"
	"github.com/johnnygoblue/orderbook/benchmark/report"
	"github.com/johnnygoblue/orderbook/config"
	"github.com/johnnygoblue/orderbook/log"
	"github.com/johnnygoblue/orderbook/metrics"
	"github.com/johnnygoblue/orderbook/orderbook"
	"github.com/johnnygoblue/orderbook/orderbook/simulator"
	"github.com/urfave/cli/v2"
)

// flag names mapped onto the config keys they override
var flagKeys = map[string]string{
	"orders":                config.KeyOrders,
	"seed":                  config.KeySeed,
	"price-min":             config.KeyPriceMin,
	"price-max":             config.KeyPriceMax,
	"volume-min":            config.KeyVolumeMin,
	"volume-max":            config.KeyVolumeMax,
	"warmup-runs":           config.KeyWarmupRuns,
	"measured-runs":         config.KeyMeasuredRuns,
	"best-price-iterations": config.KeyBestPriceIterations,
	"strategies":            config.KeyStrategies,
	"csv":                   config.KeyOutputCSV,
	"plot-script":           config.KeyOutputPlotScript,
	"metrics-textfile":      config.KeyOutputMetrics,
	"log-level":             config.KeyLoggingLevel,
	"log-output":            config.KeyLoggingOutput,
	"log-file":              config.KeyLoggingFileName,
}

var runCommand = &cli.Command{
	Name:   "run",
	Usage:  "generate a dataset and benchmark every configured strategy",
	Action: runBenchmark,
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "orders", Usage: "number of generated orders"},
		&cli.Int64Flag{Name: "seed", Usage: "random seed, 0 picks one from the clock"},
		&cli.Int64Flag{Name: "price-min", Usage: "lowest generated price"},
		&cli.Int64Flag{Name: "price-max", Usage: "highest generated price"},
		&cli.Int64Flag{Name: "volume-min", Usage: "lowest generated volume"},
		&cli.Int64Flag{Name: "volume-max", Usage: "highest generated volume"},
		&cli.IntFlag{Name: "warmup-runs", Usage: "unmeasured runs per strategy"},
		&cli.IntFlag{Name: "measured-runs", Usage: "measured runs per strategy"},
		&cli.IntFlag{Name: "best-price-iterations", Usage: "best price calls per measured run"},
		&cli.StringSliceFlag{Name: "strategies", Aliases: []string{"s"}, Usage: "strategies to run, see the strategies command"},
		&cli.StringFlag{Name: "csv", Usage: "CSV results path, empty to skip"},
		&cli.StringFlag{Name: "plot-script", Usage: "plot script path, empty to skip"},
		&cli.StringFlag{Name: "metrics-textfile", Usage: "Prometheus textfile path, empty to skip"},
		&cli.StringFlag{Name: "log-level", Usage: "pipe separated log levels, e.g. INFO|WARN|ERROR"},
		&cli.StringFlag{Name: "log-output", Usage: "pipe separated log outputs: console, stderr, file"},
		&cli.StringFlag{Name: "log-file", Usage: "log file path used by the file output"},
	},
}

var strategiesCommand = &cli.Command{
	Name:   "strategies",
	Usage:  "list the supported level indexing strategies",
	Action: listStrategies,
}

func overrides(c *cli.Context) map[string]interface{} {
	o := make(map[string]interface{})
	for name, key := range flagKeys {
		if !c.IsSet(name) {
			continue
		}
		o[key] = c.Value(name)
	}
	// cli.StringSlice values need flattening for the config decoder
	if c.IsSet("strategies") {
		o[config.KeyStrategies] = c.StringSlice("strategies")
	}
	return o
}

func runBenchmark(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"), overrides(c))
	if err != nil {
		return err
	}
	if err = log.SetupGlobalLogger(cfg.Logging); err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()

	seed := cfg.ResolveSeed()
	log.Infof(log.Global, "generating %d orders with seed %d", cfg.Orders, seed)
	dataset, err := simulator.Generate(rand.New(rand.NewSource(seed)), cfg.SimulatorParams())
	if err != nil {
		return err
	}
	strategies, err := cfg.StrategyList()
	if err != nil {
		return err
	}
	recorder, err := metrics.NewRecorder()
	if err != nil {
		return err
	}

	results, err := benchmark.RunAll(c.Context, strategies, dataset, cfg.BenchmarkConfig(), recorder)
	if err != nil {
		return err
	}
	summaries := benchmark.Summarise(results)
	if err = report.Table(c.App.Writer, summaries); err != nil {
		return err
	}

	if cfg.Output.CSV != "" {
		if err = report.WriteCSV(cfg.Output.CSV, summaries); err != nil {
			return err
		}
		log.Infof(log.Benchmark, "results written to %s", cfg.Output.CSV)
		if cfg.Output.PlotScript != "" {
			if err = report.WritePlotScript(cfg.Output.PlotScript, cfg.Output.CSV); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "\nTo generate plots, run: python %s\n", cfg.Output.PlotScript)
		}
	}
	if cfg.Output.MetricsTextfile != "" {
		return recorder.WriteTextfile(cfg.Output.MetricsTextfile)
	}
	return nil
}

func listStrategies(c *cli.Context) error {
	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tIMPLEMENTATION")
	for _, s := range orderbook.Strategies() {
		fmt.Fprintf(tw, "%s\t%s\n", s, s.Label())
	}
	return tw.Flush()
}
