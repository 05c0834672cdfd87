package orderbook

import (
	"fmt"
)

// Book is a single instrument limit order book. The order registry and the
// contract are shared, the level indexing strategy L is chosen at
// construction. Book is not safe for concurrent use, see Safe.
type Book[L levels] struct {
	orders   map[OrderID]Order
	bids     L
	asks     L
	strategy Strategy
}

func newBook[L levels](s Strategy, newSide func(comparison) L) *Book[L] {
	return &Book[L]{
		orders:   make(map[OrderID]Order),
		bids:     newSide(bidCompare),
		asks:     newSide(askCompare),
		strategy: s,
	}
}

// NewIndexedMap returns a book keeping each side in an ordered B-tree
func NewIndexedMap() *Book[*TreeLevels] {
	return newBook(IndexedMap, newTreeLevels)
}

// NewSortedArray returns a book keeping each side in a sorted slice with the
// best price at the head
func NewSortedArray() *Book[*SortedLevels] {
	return newBook(SortedArray, newSortedLevels)
}

// NewReverseSortedArray returns a book keeping each side in a sorted slice
// with the best price at the tail
func NewReverseSortedArray() *Book[*ReverseLevels] {
	return newBook(ReverseSortedArray, newReverseLevels)
}

// NewLinearScan returns a book keeping each side in an ordered slice located
// by linear scan
func NewLinearScan() *Book[*LinearLevels] {
	return newBook(LinearScan, newLinearLevels)
}

func (b *Book[L]) side(s Side) (L, error) {
	switch s {
	case Bid:
		return b.bids, nil
	case Ask:
		return b.asks, nil
	default:
		var empty L
		return empty, fmt.Errorf("%w: %d", ErrInvalidSide, s)
	}
}

// AddOrder inserts a new order into the registry and aggregates its volume
// into the matching price level, creating the level if required.
func (b *Book[L]) AddOrder(id OrderID, side Side, price Price, volume Volume) error {
	lvls, err := b.side(side)
	if err != nil {
		return err
	}
	if _, ok := b.orders[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateOrderID, id)
	}
	b.orders[id] = Order{Side: side, Price: price, Volume: volume}
	lvls.add(price, volume)
	return nil
}

// ModifyOrder sets the remaining volume of an order and applies the
// difference to its price level. The level keeps its position and is not
// removed here even when its aggregate drops to zero or below; only
// DeleteOrder drops levels.
func (b *Book[L]) ModifyOrder(id OrderID, newVolume Volume) error {
	o, ok := b.orders[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrOrderNotFound, id)
	}
	lvls, err := b.side(o.Side)
	if err != nil {
		return err
	}
	if !lvls.adjust(o.Price, newVolume-o.Volume) {
		return fmt.Errorf("%w: order %d %s price %d", ErrLevelNotFound, id, o.Side, o.Price)
	}
	o.Volume = newVolume
	b.orders[id] = o
	return nil
}

// DeleteOrder removes an order from the registry and subtracts its volume
// from the price level, removing the level once it holds no volume.
func (b *Book[L]) DeleteOrder(id OrderID) error {
	o, ok := b.orders[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrOrderNotFound, id)
	}
	lvls, err := b.side(o.Side)
	if err != nil {
		return err
	}
	if !lvls.reduce(o.Price, o.Volume) {
		return fmt.Errorf("%w: order %d %s price %d", ErrLevelNotFound, id, o.Side, o.Price)
	}
	delete(b.orders, id)
	return nil
}

// BestPrices returns the best bid and best ask prices
func (b *Book[L]) BestPrices() (bid, ask Price, err error) {
	bid, bidOK := b.bids.best()
	ask, askOK := b.asks.best()
	if !bidOK || !askOK {
		return 0, 0, ErrEmptyBook
	}
	return bid, ask, nil
}

// Clear returns the book to its freshly constructed state
func (b *Book[L]) Clear() {
	clear(b.orders)
	b.bids.reset()
	b.asks.reset()
}

// Len returns the number of orders in the registry
func (b *Book[L]) Len() int {
	return len(b.orders)
}

// Order returns a copy of the registered order
func (b *Book[L]) Order(id OrderID) (Order, bool) {
	o, ok := b.orders[id]
	return o, ok
}

// LevelCount returns the number of price levels on a side
func (b *Book[L]) LevelCount(side Side) int {
	lvls, err := b.side(side)
	if err != nil {
		return 0
	}
	return lvls.len()
}

// Level returns the aggregate volume at price on a side
func (b *Book[L]) Level(side Side, price Price) (Volume, bool) {
	lvls, err := b.side(side)
	if err != nil {
		return 0, false
	}
	return lvls.find(price)
}

// Walk traverses a side from the best price to the worst until fn returns
// false
func (b *Book[L]) Walk(side Side, fn func(Level) bool) {
	lvls, err := b.side(side)
	if err != nil {
		return
	}
	lvls.walk(fn)
}

// Levels returns a copy of a side ordered from best to worst price
func (b *Book[L]) Levels(side Side) []Level {
	lvls, err := b.side(side)
	if err != nil {
		return nil
	}
	out := make([]Level, 0, lvls.len())
	lvls.walk(func(l Level) bool {
		out = append(out, l)
		return true
	})
	return out
}

// Strategy returns the level indexing strategy backing the book
func (b *Book[L]) Strategy() Strategy {
	return b.strategy
}
