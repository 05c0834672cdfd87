package log

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/johnnygoblue/orderbook/common/file"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	errUnhandledOutputWriter = errors.New("unhandled output writer")
	errUnhandledLevel        = errors.New("unhandled log level")
	errSubLoggerNotFound     = errors.New("sub logger not found")
	errFileNameRequired      = errors.New("file output requires a file name")
)

// GenDefaultSettings return struct with known sane/working logger settings
func GenDefaultSettings() Config {
	enabled := true
	return Config{
		Enabled:  &enabled,
		Level:    defaultLevels,
		Output:   defaultOutput,
		FileName: defaultFileName,
	}
}

// Validate checks the levels, outputs and sub logger names of the config
func (c *Config) Validate() error {
	if _, err := splitLevel(c.Level); err != nil {
		return err
	}
	for _, o := range strings.Split(c.Output, "|") {
		switch strings.ToLower(strings.TrimSpace(o)) {
		case "stdout", "console", "stderr":
		case "file":
			if c.FileName == "" {
				return errFileNameRequired
			}
		default:
			return fmt.Errorf("%w: %s", errUnhandledOutputWriter, o)
		}
	}
	for i := range c.SubLoggers {
		if _, ok := subLoggers[strings.ToUpper(c.SubLoggers[i].Name)]; !ok {
			return fmt.Errorf("%w: %s", errSubLoggerNotFound, c.SubLoggers[i].Name)
		}
		if _, err := splitLevel(c.SubLoggers[i].Level); err != nil {
			return err
		}
	}
	return nil
}

// SetupGlobalLogger applies c to every registered sub logger. A disabled
// config silences all output.
func SetupGlobalLogger(c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	if err := closeFile(); err != nil {
		return err
	}

	if c.Enabled == nil || !*c.Enabled {
		base = zap.NewNop()
		for _, sl := range subLoggers {
			sl.levels = Levels{}
			sl.logger = base.Sugar()
		}
		return nil
	}

	sink, err := getWriters(&c)
	if err != nil {
		return err
	}
	globalLevels, _ := splitLevel(c.Level)
	base = zap.New(zapcore.NewCore(newEncoder(), sink, levelEnabler(globalLevels)))

	overrides := make(map[string]Levels, len(c.SubLoggers))
	for i := range c.SubLoggers {
		l, _ := splitLevel(c.SubLoggers[i].Level)
		overrides[strings.ToUpper(c.SubLoggers[i].Name)] = l
	}
	for name, sl := range subLoggers {
		levels, ok := overrides[name]
		if !ok {
			levels = globalLevels
		}
		sl.levels = levels
		sl.logger = zap.New(zapcore.NewCore(newEncoder(), sink, levelEnabler(levels))).Named(name).Sugar()
	}
	return nil
}

// Sync flushes buffered log entries and closes any log file
func Sync() error {
	mu.Lock()
	defer mu.Unlock()
	// Syncing a console can fail on some platforms, only the file matters
	_ = base.Sync()
	return closeFile()
}

func closeFile() error {
	if closer == nil {
		return nil
	}
	err := closer()
	closer = nil
	return err
}

func getWriters(c *Config) (zapcore.WriteSyncer, error) {
	outputWriters := strings.Split(c.Output, "|")
	syncers := make([]zapcore.WriteSyncer, 0, len(outputWriters))
	for x := range outputWriters {
		switch strings.ToLower(strings.TrimSpace(outputWriters[x])) {
		case "stdout", "console":
			syncers = append(syncers, zapcore.Lock(os.Stdout))
		case "stderr":
			syncers = append(syncers, zapcore.Lock(os.Stderr))
		case "file":
			f, err := file.Writer(c.FileName)
			if err != nil {
				return nil, err
			}
			closer = f.Close
			syncers = append(syncers, zapcore.Lock(f))
		default:
			return nil, fmt.Errorf("%w: %s", errUnhandledOutputWriter, outputWriters[x])
		}
	}
	return zapcore.NewMultiWriteSyncer(syncers...), nil
}

func newEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeName = func(name string, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("[" + name + "]")
	}
	cfg.CallerKey = ""
	cfg.StacktraceKey = ""
	return zapcore.NewConsoleEncoder(cfg)
}

func levelEnabler(l Levels) zap.LevelEnablerFunc {
	return func(lvl zapcore.Level) bool {
		switch lvl {
		case zapcore.DebugLevel:
			return l.Debug
		case zapcore.InfoLevel:
			return l.Info
		case zapcore.WarnLevel:
			return l.Warn
		default:
			return l.Error
		}
	}
}

func splitLevel(level string) (l Levels, err error) {
	if level == "" {
		return l, nil
	}
	enabledLevels := strings.Split(level, "|")
	for x := range enabledLevels {
		switch strings.ToUpper(strings.TrimSpace(enabledLevels[x])) {
		case "DEBUG":
			l.Debug = true
		case "INFO":
			l.Info = true
		case "WARN":
			l.Warn = true
		case "ERROR":
			l.Error = true
		default:
			return Levels{}, fmt.Errorf("%w: %s", errUnhandledLevel, enabledLevels[x])
		}
	}
	return l, nil
}

func registerNewSubLogger(subLogger string) *SubLogger {
	name := strings.ToUpper(subLogger)
	levels, _ := splitLevel(defaultLevels)
	temp := &SubLogger{
		name:   name,
		levels: levels,
		logger: zap.New(zapcore.NewCore(newEncoder(), zapcore.Lock(os.Stdout), levelEnabler(levels))).Named(name).Sugar(),
	}
	subLoggers[name] = temp
	return temp
}

// register all loggers at package init()
func init() {
	Global = registerNewSubLogger("LOG")
	OrderBook = registerNewSubLogger("ORDERBOOK")
	Benchmark = registerNewSubLogger("BENCHMARK")
	ConfigMgr = registerNewSubLogger("CONFIG")
	Metrics = registerNewSubLogger("METRICS")
}
