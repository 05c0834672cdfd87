package orderbook

import (
	"github.com/google/btree"
)

const priceLevelsBTreeDegree = 32

// TreeLevels keeps a side in a B-tree ordered best price first. The best
// level is cached so top of book reads never touch the tree.
type TreeLevels struct {
	tree  *btree.BTreeG[*Level]
	head  *Level
	ahead comparison
	probe Level
}

func newTreeLevels(ahead comparison) *TreeLevels {
	return &TreeLevels{
		tree: btree.NewG(priceLevelsBTreeDegree, func(a, b *Level) bool {
			return ahead(a.Price, b.Price)
		}),
		ahead: ahead,
	}
}

func (t *TreeLevels) get(price Price) (*Level, bool) {
	t.probe.Price = price
	return t.tree.Get(&t.probe)
}

func (t *TreeLevels) add(price Price, volume Volume) {
	if l, ok := t.get(price); ok {
		l.Volume += volume
		return
	}
	l := &Level{Price: price, Volume: volume}
	t.tree.ReplaceOrInsert(l)
	if t.head == nil || t.ahead(price, t.head.Price) {
		t.head = l
	}
}

func (t *TreeLevels) adjust(price Price, delta Volume) bool {
	l, ok := t.get(price)
	if ok {
		l.Volume += delta
	}
	return ok
}

func (t *TreeLevels) reduce(price Price, volume Volume) bool {
	l, ok := t.get(price)
	if !ok {
		return false
	}
	l.Volume -= volume
	if l.Volume > 0 {
		return true
	}
	t.tree.Delete(l)
	if l == t.head {
		t.head, _ = t.tree.Min()
	}
	return true
}

func (t *TreeLevels) find(price Price) (Volume, bool) {
	l, ok := t.get(price)
	if !ok {
		return 0, false
	}
	return l.Volume, true
}

func (t *TreeLevels) best() (Price, bool) {
	if t.head == nil {
		return 0, false
	}
	return t.head.Price, true
}

func (t *TreeLevels) walk(fn func(Level) bool) {
	t.tree.Ascend(func(l *Level) bool {
		return fn(*l)
	})
}

func (t *TreeLevels) len() int { return t.tree.Len() }

func (t *TreeLevels) reset() {
	t.tree.Clear(true)
	t.head = nil
}
