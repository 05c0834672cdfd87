package orderbook

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// forEachStrategy runs fn against a fresh book for every strategy
func forEachStrategy(t *testing.T, fn func(t *testing.T, b OrderBook)) {
	t.Helper()
	for _, s := range Strategies() {
		s := s
		t.Run(s.String(), func(t *testing.T) {
			t.Parallel()
			b, err := New(s)
			require.NoError(t, err, "New must not error")
			fn(t, b)
		})
	}
}

func seedBook(t testing.TB, b OrderBook) {
	t.Helper()
	require.NoError(t, b.AddOrder(1, Bid, 100, 5))
	require.NoError(t, b.AddOrder(2, Bid, 101, 3))
	require.NoError(t, b.AddOrder(3, Ask, 105, 2))
	require.NoError(t, b.AddOrder(4, Ask, 106, 4))
}

func TestBestPrices(t *testing.T) {
	t.Parallel()
	forEachStrategy(t, func(t *testing.T, b OrderBook) {
		_, _, err := b.BestPrices()
		assert.ErrorIs(t, err, ErrEmptyBook, "BestPrices should error on an empty book")

		require.NoError(t, b.AddOrder(1, Bid, 100, 5))
		_, _, err = b.BestPrices()
		assert.ErrorIs(t, err, ErrEmptyBook, "BestPrices should error with no asks")

		require.NoError(t, b.AddOrder(2, Bid, 101, 3))
		require.NoError(t, b.AddOrder(3, Ask, 105, 2))
		require.NoError(t, b.AddOrder(4, Ask, 106, 4))

		bid, ask, err := b.BestPrices()
		require.NoError(t, err, "BestPrices must not error")
		assert.Equal(t, Price(101), bid, "best bid should be correct")
		assert.Equal(t, Price(105), ask, "best ask should be correct")
	})
}

func TestAddOrder(t *testing.T) {
	t.Parallel()
	forEachStrategy(t, func(t *testing.T, b OrderBook) {
		err := b.AddOrder(1, Side(0), 100, 1)
		assert.ErrorIs(t, err, ErrInvalidSide, "AddOrder should error on an invalid side")
		assert.Zero(t, b.Len(), "registry should be untouched")

		require.NoError(t, b.AddOrder(1, Bid, 100, 5))
		require.NoError(t, b.AddOrder(2, Bid, 100, 7))
		require.NoError(t, b.AddOrder(3, Bid, 99, 1))

		assert.Equal(t, 3, b.Len(), "registry size should match the adds")
		assert.Equal(t, 2, b.LevelCount(Bid), "orders at one price should share a level")
		v, ok := b.Level(Bid, 100)
		require.True(t, ok, "level 100 must exist")
		assert.Equal(t, Volume(12), v, "level should aggregate order volume")

		o, ok := b.Order(2)
		require.True(t, ok, "order 2 must be registered")
		assert.Equal(t, Order{Side: Bid, Price: 100, Volume: 7}, o)
	})
}

func TestAddOrderDuplicate(t *testing.T) {
	t.Parallel()
	forEachStrategy(t, func(t *testing.T, b OrderBook) {
		seedBook(t, b)
		bids, asks := b.Levels(Bid), b.Levels(Ask)

		err := b.AddOrder(2, Ask, 104, 9)
		assert.ErrorIs(t, err, ErrDuplicateOrderID, "AddOrder should error on a duplicate id")

		assert.Equal(t, 4, b.Len(), "registry should be untouched")
		assert.Equal(t, bids, b.Levels(Bid), "bids should be untouched")
		assert.Equal(t, asks, b.Levels(Ask), "asks should be untouched")
		o, ok := b.Order(2)
		require.True(t, ok)
		assert.Equal(t, Order{Side: Bid, Price: 101, Volume: 3}, o, "original order should be untouched")

		bid, ask, err := b.BestPrices()
		require.NoError(t, err)
		assert.Equal(t, Price(101), bid)
		assert.Equal(t, Price(105), ask)
	})
}

func TestModifyOrder(t *testing.T) {
	t.Parallel()
	forEachStrategy(t, func(t *testing.T, b OrderBook) {
		err := b.ModifyOrder(1, 10)
		assert.ErrorIs(t, err, ErrOrderNotFound, "ModifyOrder should error on an unknown id")

		require.NoError(t, b.AddOrder(1, Ask, 200, 10))
		require.NoError(t, b.AddOrder(2, Ask, 200, 4))

		require.NoError(t, b.ModifyOrder(1, 10), "modify to the same volume must not error")
		v, _ := b.Level(Ask, 200)
		assert.Equal(t, Volume(14), v, "zero delta should leave the aggregate unchanged")

		require.NoError(t, b.ModifyOrder(1, 3))
		v, _ = b.Level(Ask, 200)
		assert.Equal(t, Volume(7), v, "negative delta should reduce the aggregate")
		o, _ := b.Order(1)
		assert.Equal(t, Volume(3), o.Volume, "order volume should be updated")

		require.NoError(t, b.ModifyOrder(2, 20))
		v, _ = b.Level(Ask, 200)
		assert.Equal(t, Volume(23), v, "positive delta should grow the aggregate")
	})
}

func TestModifyOrderKeepsDrainedLevel(t *testing.T) {
	t.Parallel()
	forEachStrategy(t, func(t *testing.T, b OrderBook) {
		require.NoError(t, b.AddOrder(1, Bid, 100, 5))
		require.NoError(t, b.AddOrder(2, Bid, 99, 5))
		require.NoError(t, b.AddOrder(3, Ask, 110, 1))

		require.NoError(t, b.ModifyOrder(1, 0))
		v, ok := b.Level(Bid, 100)
		require.True(t, ok, "modify must not remove a level drained to zero")
		assert.Zero(t, v)

		require.NoError(t, b.ModifyOrder(1, -2))
		v, ok = b.Level(Bid, 100)
		require.True(t, ok, "modify must not remove a level driven negative")
		assert.Equal(t, Volume(-2), v)

		bid, _, err := b.BestPrices()
		require.NoError(t, err)
		assert.Equal(t, Price(100), bid, "drained level should still be the best bid")

		require.NoError(t, b.DeleteOrder(1))
		_, ok = b.Level(Bid, 100)
		assert.False(t, ok, "delete should reconcile the drained level")
		bid, _, err = b.BestPrices()
		require.NoError(t, err)
		assert.Equal(t, Price(99), bid)
	})
}

func TestDeleteOrder(t *testing.T) {
	t.Parallel()
	forEachStrategy(t, func(t *testing.T, b OrderBook) {
		err := b.DeleteOrder(1)
		assert.ErrorIs(t, err, ErrOrderNotFound, "DeleteOrder should error on an unknown id")

		seedBook(t, b)
		require.NoError(t, b.AddOrder(5, Bid, 101, 2))

		require.NoError(t, b.DeleteOrder(2))
		v, ok := b.Level(Bid, 101)
		require.True(t, ok, "level with remaining volume must survive")
		assert.Equal(t, Volume(2), v)

		require.NoError(t, b.DeleteOrder(5))
		_, ok = b.Level(Bid, 101)
		assert.False(t, ok, "level drained to zero must be removed")

		bid, ask, err := b.BestPrices()
		require.NoError(t, err)
		assert.Equal(t, Price(100), bid, "best bid must not reference the removed level")
		assert.Equal(t, Price(105), ask)

		require.NoError(t, b.DeleteOrder(3))
		_, ask, err = b.BestPrices()
		require.NoError(t, err)
		assert.Equal(t, Price(106), ask)

		err = b.DeleteOrder(3)
		assert.ErrorIs(t, err, ErrOrderNotFound, "DeleteOrder should error on a deleted id")
		assert.Equal(t, 2, b.Len())
	})
}

func TestAddDeleteRoundTrip(t *testing.T) {
	t.Parallel()
	forEachStrategy(t, func(t *testing.T, b OrderBook) {
		seedBook(t, b)
		bids, asks := b.Levels(Bid), b.Levels(Ask)

		for _, tc := range []struct {
			side  Side
			price Price
		}{
			{Bid, 101}, // existing best level
			{Bid, 102}, // new best level
			{Bid, 50},  // new tail level
			{Ask, 103},
			{Ask, 105},
			{Ask, 200},
		} {
			require.NoError(t, b.AddOrder(99, tc.side, tc.price, 8))
			require.NoError(t, b.DeleteOrder(99))
			assert.Equal(t, 4, b.Len())
			assert.Equal(t, bids, b.Levels(Bid), "bids should be restored")
			assert.Equal(t, asks, b.Levels(Ask), "asks should be restored")
		}
	})
}

func TestClear(t *testing.T) {
	t.Parallel()
	forEachStrategy(t, func(t *testing.T, b OrderBook) {
		seedBook(t, b)
		b.Clear()
		assert.Zero(t, b.Len())
		assert.Zero(t, b.LevelCount(Bid))
		assert.Zero(t, b.LevelCount(Ask))
		_, _, err := b.BestPrices()
		assert.ErrorIs(t, err, ErrEmptyBook)

		// ids are reusable once cleared
		seedBook(t, b)
		bid, ask, err := b.BestPrices()
		require.NoError(t, err)
		assert.Equal(t, Price(101), bid)
		assert.Equal(t, Price(105), ask)
	})
}

func TestWalk(t *testing.T) {
	t.Parallel()
	forEachStrategy(t, func(t *testing.T, b OrderBook) {
		rng := rand.New(rand.NewSource(1337))
		for id := OrderID(1); id <= 500; id++ {
			side := Bid
			if rng.Intn(2) == 1 {
				side = Ask
			}
			require.NoError(t, b.AddOrder(id, side, Price(1000+rng.Intn(200)), Volume(1+rng.Intn(50))))
		}

		bids := b.Levels(Bid)
		require.NotEmpty(t, bids)
		for i := 1; i < len(bids); i++ {
			assert.Greater(t, bids[i-1].Price, bids[i].Price, "bids must be strictly descending")
		}
		asks := b.Levels(Ask)
		require.NotEmpty(t, asks)
		for i := 1; i < len(asks); i++ {
			assert.Less(t, asks[i-1].Price, asks[i].Price, "asks must be strictly ascending")
		}

		var visited int
		b.Walk(Bid, func(Level) bool {
			visited++
			return visited < 3
		})
		assert.Equal(t, 3, visited, "walk should stop when fn returns false")

		assert.Nil(t, b.Levels(Side(9)), "unknown side should yield nothing")
		assert.Zero(t, b.LevelCount(Side(9)))
	})
}

func TestAggregateMatchesRegistry(t *testing.T) {
	t.Parallel()
	forEachStrategy(t, func(t *testing.T, b OrderBook) {
		rng := rand.New(rand.NewSource(42))
		type key struct {
			side  Side
			price Price
		}
		sums := make(map[key]Volume)
		const n = 1000
		for id := OrderID(1); id <= n; id++ {
			side := Bid
			if rng.Intn(2) == 1 {
				side = Ask
			}
			price, volume := Price(1000+rng.Intn(100)), Volume(1+rng.Intn(100))
			require.NoError(t, b.AddOrder(id, side, price, volume))
			sums[key{side, price}] += volume
		}
		assert.Equal(t, n, b.Len(), "registry size should match distinct adds")
		assert.Equal(t, len(sums), b.LevelCount(Bid)+b.LevelCount(Ask), "one level per distinct side and price")
		for k, want := range sums {
			got, ok := b.Level(k.side, k.price)
			require.True(t, ok, "level %s %d must exist", k.side, k.price)
			assert.Equal(t, want, got, "level %s %d aggregate", k.side, k.price)
		}
	})
}

func TestCrossStrategyEquivalence(t *testing.T) {
	t.Parallel()
	books := make([]OrderBook, 0, len(Strategies()))
	for _, s := range Strategies() {
		b, err := New(s)
		require.NoError(t, err)
		books = append(books, b)
	}

	check := func(step int) {
		t.Helper()
		wantBid, wantAsk, wantErr := books[0].BestPrices()
		wantBids, wantAsks := books[0].Levels(Bid), books[0].Levels(Ask)
		for _, b := range books[1:] {
			bid, ask, err := b.BestPrices()
			require.Equal(t, wantErr, err, "step %d %s error mismatch", step, b.Strategy())
			require.Equal(t, wantBid, bid, "step %d %s best bid mismatch", step, b.Strategy())
			require.Equal(t, wantAsk, ask, "step %d %s best ask mismatch", step, b.Strategy())
			require.Equal(t, wantBids, b.Levels(Bid), "step %d %s bids mismatch", step, b.Strategy())
			require.Equal(t, wantAsks, b.Levels(Ask), "step %d %s asks mismatch", step, b.Strategy())
		}
	}

	rng := rand.New(rand.NewSource(7))
	var next OrderID = 1
	live := make([]OrderID, 0, 512)
	for step := 0; step < 5000; step++ {
		switch op := rng.Intn(10); {
		case op < 5 || len(live) == 0:
			side := Bid
			if rng.Intn(2) == 1 {
				side = Ask
			}
			price, volume := Price(500+rng.Intn(60)), Volume(1+rng.Intn(20))
			for _, b := range books {
				require.NoError(t, b.AddOrder(next, side, price, volume))
			}
			live = append(live, next)
			next++
		case op < 8:
			id := live[rng.Intn(len(live))]
			volume := Volume(1 + rng.Intn(20))
			for _, b := range books {
				require.NoError(t, b.ModifyOrder(id, volume))
			}
		default:
			i := rng.Intn(len(live))
			id := live[i]
			live[i] = live[len(live)-1]
			live = live[:len(live)-1]
			for _, b := range books {
				require.NoError(t, b.DeleteOrder(id))
			}
		}
		check(step)
	}

	for _, b := range books[1:] {
		assert.Equal(t, books[0].Len(), b.Len(), "%s registry size", b.Strategy())
		for _, id := range live {
			want, _ := books[0].Order(id)
			got, ok := b.Order(id)
			require.True(t, ok, "%s missing order %d", b.Strategy(), id)
			assert.Equal(t, want, got, "%s order %d", b.Strategy(), id)
		}
	}
}

func TestLevelNotFound(t *testing.T) {
	t.Parallel()
	b := NewSortedArray()
	require.NoError(t, b.AddOrder(1, Bid, 100, 5))
	// Corrupt the side so the registry disagrees with the levels
	b.bids.reset()

	err := b.ModifyOrder(1, 1)
	assert.ErrorIs(t, err, ErrLevelNotFound, "ModifyOrder should error on a missing level")
	o, ok := b.Order(1)
	require.True(t, ok)
	assert.Equal(t, Volume(5), o.Volume, "order must not be mutated")

	err = b.DeleteOrder(1)
	assert.ErrorIs(t, err, ErrLevelNotFound, "DeleteOrder should error on a missing level")
	assert.Equal(t, 1, b.Len(), "order must stay registered")
}

func TestStrategy(t *testing.T) {
	t.Parallel()
	for _, s := range Strategies() {
		p, err := ParseStrategy(" " + s.String() + " ")
		require.NoError(t, err)
		assert.Equal(t, s, p)
		assert.NotEqual(t, "Unknown", s.Label())

		b, err := New(s)
		require.NoError(t, err)
		assert.Equal(t, s, b.Strategy())
	}

	p, err := ParseStrategy("VECTOR")
	require.NoError(t, err)
	assert.Equal(t, SortedArray, p)

	_, err = ParseStrategy("skiplist")
	assert.ErrorIs(t, err, ErrInvalidStrategy)
	_, err = New(Strategy(0))
	assert.ErrorIs(t, err, ErrInvalidStrategy)
	assert.Equal(t, "unknown", Strategy(0).String())
	assert.Equal(t, "BID", Bid.String())
	assert.Equal(t, "ASK", Ask.String())
	assert.Equal(t, "UNKNOWN", Side(0).String())
}

func BenchmarkAddOrder(b *testing.B) {
	for _, s := range Strategies() {
		b.Run(s.String(), func(b *testing.B) {
			book, err := New(s)
			require.NoError(b, err)
			rng := rand.New(rand.NewSource(1))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				side := Bid
				if i&1 == 1 {
					side = Ask
				}
				if err := book.AddOrder(OrderID(i), side, Price(1000+rng.Intn(1000)), 10); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkBestPrices(b *testing.B) {
	for _, s := range Strategies() {
		b.Run(s.String(), func(b *testing.B) {
			book, err := New(s)
			require.NoError(b, err)
			seedBook(b, book)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, _, err := book.BestPrices(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
