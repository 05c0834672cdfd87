package benchmark

import (
	"errors"
	"time"

	"github.com/gofrs/uuid"
	"github.com/johnnygoblue/orderbook/common/math"
	"github.com/johnnygoblue/orderbook/orderbook"
)

const (
	defaultWarmupRuns          = 3
	defaultMeasuredRuns        = 10
	defaultBestPriceIterations = 1000
)

var (
	errInvalidWarmupRuns          = errors.New("warmup runs cannot be negative")
	errInvalidMeasuredRuns        = errors.New("measured runs must be greater than zero")
	errInvalidBestPriceIterations = errors.New("best price iterations must be greater than zero")
	errNoStrategies               = errors.New("no strategies to run")
	errEmptyDataset               = errors.New("dataset holds no orders")
)

// Operation names a timed batch
type Operation string

// Timed operations
const (
	Add       Operation = "add"
	Modify    Operation = "modify"
	Delete    Operation = "delete"
	BestPrice Operation = "best_price"
)

// Operations returns every timed operation in reporting order
func Operations() []Operation {
	return []Operation{Add, Modify, Delete, BestPrice}
}

// Config holds the run loop settings
type Config struct {
	WarmupRuns          int
	MeasuredRuns        int
	BestPriceIterations int
}

// Observer receives every measured sample as it is taken
type Observer interface {
	// Observe is called once per operation batch. For BestPrice d is the
	// mean duration of a single call.
	Observe(s orderbook.Strategy, op Operation, d time.Duration)
	RunComplete(s orderbook.Strategy)
}

// Result holds the raw samples of one strategy. Add, Modify and Delete are
// batch durations in microseconds, BestPrice is the mean call duration in
// nanoseconds.
type Result struct {
	ID            uuid.UUID
	Strategy      orderbook.Strategy
	Orders        int
	Modifications int
	Deletions     int
	Add           []float64
	Modify        []float64
	Delete        []float64
	BestPrice     []float64
}

// Summary is the reduced form of a Result
type Summary struct {
	ID            uuid.UUID
	Strategy      orderbook.Strategy
	Orders        int
	Modifications int
	Deletions     int
	Add           math.Stats
	Modify        math.Stats
	Delete        math.Stats
	BestPrice     math.Stats
}
