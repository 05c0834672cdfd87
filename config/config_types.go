package config

import (
	"errors"

	"github.com/johnnygoblue/orderbook/log"
)

// Constants declared here are filename strings and environment settings
const (
	EnvPrefix             = "OBBENCH"
	DefaultCSVFile        = "orderbook_benchmark.csv"
	DefaultPlotScriptFile = "plot.py"
)

// Config keys, shared by the defaults, the config file, environment overrides
// and the command line flags
const (
	KeyOrders              = "orders"
	KeySeed                = "seed"
	KeyPriceMin            = "price_min"
	KeyPriceMax            = "price_max"
	KeyVolumeMin           = "volume_min"
	KeyVolumeMax           = "volume_max"
	KeyWarmupRuns          = "warmup_runs"
	KeyMeasuredRuns        = "measured_runs"
	KeyBestPriceIterations = "best_price_iterations"
	KeyStrategies          = "strategies"
	KeyOutputCSV           = "output.csv"
	KeyOutputPlotScript    = "output.plot_script"
	KeyOutputMetrics       = "output.metrics_textfile"
	KeyLoggingEnabled      = "logging.enabled"
	KeyLoggingLevel        = "logging.level"
	KeyLoggingOutput       = "logging.output"
	KeyLoggingFileName     = "logging.filename"
)

var (
	errNoStrategies   = errors.New("no strategies configured")
	errDuplicateEntry = errors.New("strategy listed more than once")
)

// Config is the benchmark harness configuration
type Config struct {
	Orders              int        `json:"orders" mapstructure:"orders"`
	Seed                int64      `json:"seed" mapstructure:"seed"`
	PriceMin            int64      `json:"priceMin" mapstructure:"price_min"`
	PriceMax            int64      `json:"priceMax" mapstructure:"price_max"`
	VolumeMin           int64      `json:"volumeMin" mapstructure:"volume_min"`
	VolumeMax           int64      `json:"volumeMax" mapstructure:"volume_max"`
	WarmupRuns          int        `json:"warmupRuns" mapstructure:"warmup_runs"`
	MeasuredRuns        int        `json:"measuredRuns" mapstructure:"measured_runs"`
	BestPriceIterations int        `json:"bestPriceIterations" mapstructure:"best_price_iterations"`
	Strategies          []string   `json:"strategies" mapstructure:"strategies"`
	Output              Output     `json:"output" mapstructure:"output"`
	Logging             log.Config `json:"logging" mapstructure:"logging"`
}

// Output holds the destinations of the run artefacts. An empty path skips
// that artefact.
type Output struct {
	CSV             string `json:"csv" mapstructure:"csv"`
	PlotScript      string `json:"plotScript" mapstructure:"plot_script"`
	MetricsTextfile string `json:"metricsTextfile" mapstructure:"metrics_textfile"`
}
