package orderbook

import (
	"sort"
)

// levelSlice is a dense slice of price levels shared by the array based
// strategies
type levelSlice []Level

// insertAt places a level at index i shifting the tail right
func (ls *levelSlice) insertAt(i int, l Level) {
	*ls = append(*ls, Level{})
	copy((*ls)[i+1:], (*ls)[i:])
	(*ls)[i] = l
}

// removeAt drops the level at index i shifting the tail left
func (ls *levelSlice) removeAt(i int) {
	copy((*ls)[i:], (*ls)[i+1:])
	*ls = (*ls)[:len(*ls)-1]
}

// aggregate applies the shared add policy: exact price match at i means
// aggregate, anything else (including i == len) means insert at i.
func (ls *levelSlice) aggregate(i int, price Price, volume Volume) {
	if i < len(*ls) && (*ls)[i].Price == price {
		(*ls)[i].Volume += volume
		return
	}
	ls.insertAt(i, Level{Price: price, Volume: volume})
}

// drain subtracts volume from the level at i and removes it once empty
func (ls *levelSlice) drain(i int, volume Volume) {
	(*ls)[i].Volume -= volume
	if (*ls)[i].Volume <= 0 {
		ls.removeAt(i)
	}
}

// SortedLevels keeps a side sorted with the best price at the head, located
// by binary search
type SortedLevels struct {
	levels levelSlice
	ahead  comparison
}

func newSortedLevels(ahead comparison) *SortedLevels {
	return &SortedLevels{ahead: ahead}
}

// search returns the first index not ahead of price (lower bound)
func (s *SortedLevels) search(price Price) int {
	return sort.Search(len(s.levels), func(i int) bool {
		return !s.ahead(s.levels[i].Price, price)
	})
}

func (s *SortedLevels) locate(price Price) (int, bool) {
	i := s.search(price)
	return i, i < len(s.levels) && s.levels[i].Price == price
}

func (s *SortedLevels) add(price Price, volume Volume) {
	s.levels.aggregate(s.search(price), price, volume)
}

func (s *SortedLevels) adjust(price Price, delta Volume) bool {
	i, ok := s.locate(price)
	if ok {
		s.levels[i].Volume += delta
	}
	return ok
}

func (s *SortedLevels) reduce(price Price, volume Volume) bool {
	i, ok := s.locate(price)
	if ok {
		s.levels.drain(i, volume)
	}
	return ok
}

func (s *SortedLevels) find(price Price) (Volume, bool) {
	i, ok := s.locate(price)
	if !ok {
		return 0, false
	}
	return s.levels[i].Volume, true
}

func (s *SortedLevels) best() (Price, bool) {
	if len(s.levels) == 0 {
		return 0, false
	}
	return s.levels[0].Price, true
}

func (s *SortedLevels) walk(fn func(Level) bool) {
	for i := range s.levels {
		if !fn(s.levels[i]) {
			return
		}
	}
}

func (s *SortedLevels) len() int { return len(s.levels) }

func (s *SortedLevels) reset() { s.levels = s.levels[:0] }

// ReverseLevels keeps a side sorted with the best price at the tail so that
// top of book churn shifts the fewest elements
type ReverseLevels struct {
	levels levelSlice
	ahead  comparison
}

func newReverseLevels(ahead comparison) *ReverseLevels {
	return &ReverseLevels{ahead: ahead}
}

// search returns the lower bound under the inverted comparison
func (r *ReverseLevels) search(price Price) int {
	return sort.Search(len(r.levels), func(i int) bool {
		return !r.ahead(price, r.levels[i].Price)
	})
}

func (r *ReverseLevels) locate(price Price) (int, bool) {
	i := r.search(price)
	return i, i < len(r.levels) && r.levels[i].Price == price
}

func (r *ReverseLevels) add(price Price, volume Volume) {
	r.levels.aggregate(r.search(price), price, volume)
}

func (r *ReverseLevels) adjust(price Price, delta Volume) bool {
	i, ok := r.locate(price)
	if ok {
		r.levels[i].Volume += delta
	}
	return ok
}

func (r *ReverseLevels) reduce(price Price, volume Volume) bool {
	i, ok := r.locate(price)
	if ok {
		r.levels.drain(i, volume)
	}
	return ok
}

func (r *ReverseLevels) find(price Price) (Volume, bool) {
	i, ok := r.locate(price)
	if !ok {
		return 0, false
	}
	return r.levels[i].Volume, true
}

func (r *ReverseLevels) best() (Price, bool) {
	if len(r.levels) == 0 {
		return 0, false
	}
	return r.levels[len(r.levels)-1].Price, true
}

func (r *ReverseLevels) walk(fn func(Level) bool) {
	for i := len(r.levels) - 1; i >= 0; i-- {
		if !fn(r.levels[i]) {
			return
		}
	}
}

func (r *ReverseLevels) len() int { return len(r.levels) }

func (r *ReverseLevels) reset() { r.levels = r.levels[:0] }

// LinearLevels keeps a side ordered best first and locates levels by
// scanning from the head
type LinearLevels struct {
	levels levelSlice
	ahead  comparison
}

func newLinearLevels(ahead comparison) *LinearLevels {
	return &LinearLevels{ahead: ahead}
}

// position returns the first index whose price is not ahead of price, for
// bids the first level <= price and for asks the first level >= price
func (l *LinearLevels) position(price Price) int {
	for i := range l.levels {
		if !l.ahead(l.levels[i].Price, price) {
			return i
		}
	}
	return len(l.levels)
}

// index scans for an exact price match
func (l *LinearLevels) index(price Price) int {
	for i := range l.levels {
		if l.levels[i].Price == price {
			return i
		}
	}
	return -1
}

func (l *LinearLevels) add(price Price, volume Volume) {
	l.levels.aggregate(l.position(price), price, volume)
}

func (l *LinearLevels) adjust(price Price, delta Volume) bool {
	i := l.index(price)
	if i < 0 {
		return false
	}
	l.levels[i].Volume += delta
	return true
}

func (l *LinearLevels) reduce(price Price, volume Volume) bool {
	i := l.index(price)
	if i < 0 {
		return false
	}
	l.levels.drain(i, volume)
	return true
}

func (l *LinearLevels) find(price Price) (Volume, bool) {
	i := l.index(price)
	if i < 0 {
		return 0, false
	}
	return l.levels[i].Volume, true
}

func (l *LinearLevels) best() (Price, bool) {
	if len(l.levels) == 0 {
		return 0, false
	}
	return l.levels[0].Price, true
}

func (l *LinearLevels) walk(fn func(Level) bool) {
	for i := range l.levels {
		if !fn(l.levels[i]) {
			return
		}
	}
}

func (l *LinearLevels) len() int { return len(l.levels) }

func (l *LinearLevels) reset() { l.levels = l.levels[:0] }
