package orderbook

import (
	"errors"
)

// Public errors
var (
	ErrDuplicateOrderID = errors.New("duplicate order id")
	ErrOrderNotFound    = errors.New("order not found")
	ErrLevelNotFound    = errors.New("price level not found")
	ErrEmptyBook        = errors.New("empty price levels")
	ErrInvalidSide      = errors.New("invalid side")
	ErrInvalidStrategy  = errors.New("invalid level indexing strategy")
)

// Side defines the book side an order rests on
type Side uint8

// Side values. The zero value is deliberately invalid.
const (
	Bid Side = iota + 1
	Ask
)

// String implements fmt.Stringer
func (s Side) String() string {
	switch s {
	case Bid:
		return "BID"
	case Ask:
		return "ASK"
	default:
		return "UNKNOWN"
	}
}

// OrderID identifies an order for the lifetime of a book instance
type OrderID = uint64

// Price is expressed in fixed tick units
type Price = int64

// Volume is the remaining quantity of an order or the aggregate of a level
type Volume = int64

// Order is a resting order held by the book registry. Side and Price never
// change after the order is added.
type Order struct {
	Side   Side
	Price  Price
	Volume Volume
}

// Level is the aggregate volume of every live order at one price on one side
type Level struct {
	Price  Price
	Volume Volume
}

// OrderBook defines the contract shared by every level indexing strategy
type OrderBook interface {
	AddOrder(id OrderID, side Side, price Price, volume Volume) error
	ModifyOrder(id OrderID, newVolume Volume) error
	DeleteOrder(id OrderID) error
	BestPrices() (bid, ask Price, err error)
	Clear()

	Len() int
	Order(id OrderID) (Order, bool)
	LevelCount(side Side) int
	Level(side Side, price Price) (Volume, bool)
	Levels(side Side) []Level
	Walk(side Side, fn func(Level) bool)
	Strategy() Strategy
}

// levels is the per side price level collection. Implementations differ only
// in how levels are stored and located.
type levels interface {
	// add aggregates volume into the level at price or creates it in order
	add(price Price, volume Volume)
	// adjust applies delta to an existing level without ever removing it
	adjust(price Price, delta Volume) bool
	// reduce subtracts volume and removes the level when it drops to <= 0
	reduce(price Price, volume Volume) bool
	find(price Price) (Volume, bool)
	best() (Price, bool)
	// walk traverses from best to worst price until fn returns false
	walk(fn func(Level) bool)
	len() int
	reset()
}

// comparison reports whether price a sits ahead of price b on a side
type comparison func(a, b Price) bool

// bidCompare keeps bids descending (can inline)
func bidCompare(a, b Price) bool {
	return a > b
}

// askCompare keeps asks ascending (can inline)
func askCompare(a, b Price) bool {
	return a < b
}
