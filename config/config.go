package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnnygoblue/orderbook/benchmark"
	"github.com/johnnygoblue/orderbook/log"
	"github.com/johnnygoblue/orderbook/orderbook"
	"github.com/johnnygoblue/orderbook/orderbook/simulator"
	"github.com/spf13/viper"
)

// Load builds the configuration in layers: defaults, then the optional config
// file at path (format taken from its extension), then OBBENCH_ prefixed
// environment variables, then overrides keyed by the Key constants. The
// result is validated before it is returned.
func Load(path string, overrides map[string]interface{}) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		log.Infof(log.ConfigMgr, "loaded config file %s", v.ConfigFileUsed())
	}
	for k, val := range overrides {
		v.Set(k, val)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	sp := simulator.DefaultParams()
	bc := benchmark.DefaultConfig()
	lc := log.GenDefaultSettings()

	strategies := orderbook.Strategies()
	names := make([]string, len(strategies))
	for i := range strategies {
		names[i] = strategies[i].String()
	}

	v.SetDefault(KeyOrders, sp.Orders)
	v.SetDefault(KeySeed, 0)
	v.SetDefault(KeyPriceMin, sp.PriceMin)
	v.SetDefault(KeyPriceMax, sp.PriceMax)
	v.SetDefault(KeyVolumeMin, sp.VolumeMin)
	v.SetDefault(KeyVolumeMax, sp.VolumeMax)
	v.SetDefault(KeyWarmupRuns, bc.WarmupRuns)
	v.SetDefault(KeyMeasuredRuns, bc.MeasuredRuns)
	v.SetDefault(KeyBestPriceIterations, bc.BestPriceIterations)
	v.SetDefault(KeyStrategies, names)
	v.SetDefault(KeyOutputCSV, DefaultCSVFile)
	v.SetDefault(KeyOutputPlotScript, DefaultPlotScriptFile)
	v.SetDefault(KeyOutputMetrics, "")
	v.SetDefault(KeyLoggingEnabled, *lc.Enabled)
	v.SetDefault(KeyLoggingLevel, lc.Level)
	v.SetDefault(KeyLoggingOutput, lc.Output)
	v.SetDefault(KeyLoggingFileName, lc.FileName)
}

// Validate checks every section of the config
func (c *Config) Validate() error {
	if err := c.SimulatorParams().Validate(); err != nil {
		return err
	}
	if err := c.BenchmarkConfig().Validate(); err != nil {
		return err
	}
	if _, err := c.StrategyList(); err != nil {
		return err
	}
	return c.Logging.Validate()
}

// SimulatorParams returns the dataset shape described by c
func (c *Config) SimulatorParams() simulator.Params {
	return simulator.Params{
		Orders:    c.Orders,
		PriceMin:  c.PriceMin,
		PriceMax:  c.PriceMax,
		VolumeMin: c.VolumeMin,
		VolumeMax: c.VolumeMax,
	}
}

// BenchmarkConfig returns the run loop settings described by c
func (c *Config) BenchmarkConfig() benchmark.Config {
	return benchmark.Config{
		WarmupRuns:          c.WarmupRuns,
		MeasuredRuns:        c.MeasuredRuns,
		BestPriceIterations: c.BestPriceIterations,
	}
}

// StrategyList parses the configured strategy names in order
func (c *Config) StrategyList() ([]orderbook.Strategy, error) {
	if len(c.Strategies) == 0 {
		return nil, errNoStrategies
	}
	seen := make(map[orderbook.Strategy]bool, len(c.Strategies))
	list := make([]orderbook.Strategy, 0, len(c.Strategies))
	for _, name := range c.Strategies {
		s, err := orderbook.ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		if seen[s] {
			return nil, fmt.Errorf("%w: %s", errDuplicateEntry, s)
		}
		seen[s] = true
		list = append(list, s)
	}
	return list, nil
}

// ResolveSeed returns the configured seed, or a clock derived one when the
// seed is zero
func (c *Config) ResolveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
