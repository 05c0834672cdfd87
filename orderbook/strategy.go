package orderbook

import (
	"fmt"
	"strings"
)

// Strategy selects how price levels are stored and located
type Strategy uint8

// Supported level indexing strategies
const (
	IndexedMap Strategy = iota + 1
	SortedArray
	ReverseSortedArray
	LinearScan
)

var supportedStrategies = []Strategy{IndexedMap, SortedArray, ReverseSortedArray, LinearScan}

// Strategies returns every supported strategy in reporting order
func Strategies() []Strategy {
	s := make([]Strategy, len(supportedStrategies))
	copy(s, supportedStrategies)
	return s
}

// String implements fmt.Stringer and returns the short name accepted by
// ParseStrategy
func (s Strategy) String() string {
	switch s {
	case IndexedMap:
		return "map"
	case SortedArray:
		return "vector"
	case ReverseSortedArray:
		return "reverse"
	case LinearScan:
		return "linear"
	default:
		return "unknown"
	}
}

// Label returns the human readable implementation name used in reports
func (s Strategy) Label() string {
	switch s {
	case IndexedMap:
		return "Map-based"
	case SortedArray:
		return "Vector (binary search)"
	case ReverseSortedArray:
		return "Reverse vector"
	case LinearScan:
		return "Linear search"
	default:
		return "Unknown"
	}
}

// ParseStrategy returns the strategy for a short name, case insensitive
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range supportedStrategies {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStrategy, name)
}

// New returns an empty book backed by the requested strategy
func New(s Strategy) (OrderBook, error) {
	switch s {
	case IndexedMap:
		return NewIndexedMap(), nil
	case SortedArray:
		return NewSortedArray(), nil
	case ReverseSortedArray:
		return NewReverseSortedArray(), nil
	case LinearScan:
		return NewLinearScan(), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidStrategy, s)
	}
}
