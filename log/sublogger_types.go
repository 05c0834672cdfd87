package log

import (
	"go.uber.org/zap"
)

// Global vars related to the logger package
var (
	subLoggers = map[string]*SubLogger{}

	Global    *SubLogger
	OrderBook *SubLogger
	Benchmark *SubLogger
	ConfigMgr *SubLogger
	Metrics   *SubLogger
)

// SubLogger defines a named sub logger with its own enabled levels
type SubLogger struct {
	name   string
	levels Levels
	logger *zap.SugaredLogger
}

// Name returns the upper case name the sub logger was registered with
func (sl *SubLogger) Name() string {
	return sl.name
}

// Levels returns the levels currently enabled for the sub logger
func (sl *SubLogger) Levels() Levels {
	mu.RLock()
	defer mu.RUnlock()
	return sl.levels
}
