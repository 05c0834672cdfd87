package orderbook

import (
	"sync"
)

// Safe guards an OrderBook with a single mutex so the registry and both sides
// change as one unit for every call
type Safe struct {
	m    sync.Mutex
	book OrderBook
}

// NewSafe wraps book for concurrent use. The wrapped book must not be used
// directly afterwards.
func NewSafe(book OrderBook) *Safe {
	return &Safe{book: book}
}

// AddOrder see OrderBook
func (s *Safe) AddOrder(id OrderID, side Side, price Price, volume Volume) error {
	s.m.Lock()
	defer s.m.Unlock()
	return s.book.AddOrder(id, side, price, volume)
}

// ModifyOrder see OrderBook
func (s *Safe) ModifyOrder(id OrderID, newVolume Volume) error {
	s.m.Lock()
	defer s.m.Unlock()
	return s.book.ModifyOrder(id, newVolume)
}

// DeleteOrder see OrderBook
func (s *Safe) DeleteOrder(id OrderID) error {
	s.m.Lock()
	defer s.m.Unlock()
	return s.book.DeleteOrder(id)
}

// BestPrices see OrderBook
func (s *Safe) BestPrices() (bid, ask Price, err error) {
	s.m.Lock()
	defer s.m.Unlock()
	return s.book.BestPrices()
}

// Clear see OrderBook
func (s *Safe) Clear() {
	s.m.Lock()
	s.book.Clear()
	s.m.Unlock()
}

func (s *Safe) Len() int {
	s.m.Lock()
	defer s.m.Unlock()
	return s.book.Len()
}

func (s *Safe) Order(id OrderID) (Order, bool) {
	s.m.Lock()
	defer s.m.Unlock()
	return s.book.Order(id)
}

func (s *Safe) LevelCount(side Side) int {
	s.m.Lock()
	defer s.m.Unlock()
	return s.book.LevelCount(side)
}

func (s *Safe) Level(side Side, price Price) (Volume, bool) {
	s.m.Lock()
	defer s.m.Unlock()
	return s.book.Level(side, price)
}

func (s *Safe) Levels(side Side) []Level {
	s.m.Lock()
	defer s.m.Unlock()
	return s.book.Levels(side)
}

// Walk holds the lock for the whole traversal, fn must not call back into s
func (s *Safe) Walk(side Side, fn func(Level) bool) {
	s.m.Lock()
	defer s.m.Unlock()
	s.book.Walk(side, fn)
}

func (s *Safe) Strategy() Strategy {
	return s.book.Strategy()
}
