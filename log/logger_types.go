package log

import (
	"sync"

	"go.uber.org/zap"
)

const (
	defaultLevels   = "INFO|DEBUG|WARN|ERROR"
	defaultOutput   = "console"
	defaultFileName = "obbench.log"
)

var (
	// global logger the sub loggers derive from
	base = zap.NewNop()
	// closer releases a log file opened by SetupGlobalLogger
	closer func() error

	// read/write mutex for logger
	mu = &sync.RWMutex{}
)

// Config holds configuration settings loaded from the harness config
type Config struct {
	Enabled    *bool             `json:"enabled" mapstructure:"enabled"`
	Level      string            `json:"level" mapstructure:"level"`
	Output     string            `json:"output" mapstructure:"output"`
	FileName   string            `json:"fileName,omitempty" mapstructure:"filename"`
	SubLoggers []SubLoggerConfig `json:"subloggers,omitempty" mapstructure:"subloggers"`
}

// SubLoggerConfig overrides the enabled levels for a single named sub logger
type SubLoggerConfig struct {
	Name  string `json:"name" mapstructure:"name"`
	Level string `json:"level" mapstructure:"level"`
}

// Levels flags for each sub logger type
type Levels struct {
	Info, Debug, Warn, Error bool
}
