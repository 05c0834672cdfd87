package simulator

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/johnnygoblue/orderbook/orderbook"
)

const (
	defaultOrders    = 10000
	defaultPriceMin  = 1000
	defaultPriceMax  = 2000
	defaultVolumeMin = 1
	defaultVolumeMax = 100
)

var (
	// ErrInvalidOrderCount is returned when fewer than one order is requested
	ErrInvalidOrderCount = errors.New("order count must be greater than zero")
	// ErrInvalidPriceBand is returned when the price band is empty or inverted
	ErrInvalidPriceBand = errors.New("invalid price band")
	// ErrInvalidVolumeBand is returned when the volume band is empty or inverted
	ErrInvalidVolumeBand = errors.New("invalid volume band")
	// ErrNilRandSource is returned when no random source is supplied
	ErrNilRandSource = errors.New("nil random source")
)

// Params defines the shape of a generated dataset. Bands are inclusive.
type Params struct {
	Orders    int
	PriceMin  orderbook.Price
	PriceMax  orderbook.Price
	VolumeMin orderbook.Volume
	VolumeMax orderbook.Volume
}

// DefaultParams returns the reference workload of 10k orders priced between
// 1000 and 2000 with volumes between 1 and 100
func DefaultParams() Params {
	return Params{
		Orders:    defaultOrders,
		PriceMin:  defaultPriceMin,
		PriceMax:  defaultPriceMax,
		VolumeMin: defaultVolumeMin,
		VolumeMax: defaultVolumeMax,
	}
}

// Validate checks the params for a usable configuration
func (p Params) Validate() error {
	if p.Orders <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidOrderCount, p.Orders)
	}
	if p.PriceMin > p.PriceMax {
		return fmt.Errorf("%w: min %d above max %d", ErrInvalidPriceBand, p.PriceMin, p.PriceMax)
	}
	if p.VolumeMin > p.VolumeMax {
		return fmt.Errorf("%w: min %d above max %d", ErrInvalidVolumeBand, p.VolumeMin, p.VolumeMax)
	}
	return nil
}

// Add is a generated new order
type Add struct {
	ID     orderbook.OrderID
	Side   orderbook.Side
	Price  orderbook.Price
	Volume orderbook.Volume
}

// Modification is a generated volume change for a previously added order
type Modification struct {
	ID        orderbook.OrderID
	NewVolume orderbook.Volume
}

// Dataset holds the three operation sequences replayed against a book
type Dataset struct {
	Adds          []Add
	Modifications []Modification
	Deletions     []orderbook.OrderID
}

// Generate builds a dataset from p. Ids run sequentially from 1, the first
// half of the ids receive a modification and the first third a deletion.
// The result depends only on p and the state of rng.
func Generate(rng *rand.Rand, p Params) (Dataset, error) {
	if rng == nil {
		return Dataset{}, ErrNilRandSource
	}
	if err := p.Validate(); err != nil {
		return Dataset{}, err
	}

	d := Dataset{
		Adds:          make([]Add, p.Orders),
		Modifications: make([]Modification, p.Orders/2),
		Deletions:     make([]orderbook.OrderID, p.Orders/3),
	}
	for i := range d.Adds {
		side := orderbook.Bid
		if rng.Intn(2) == 1 {
			side = orderbook.Ask
		}
		d.Adds[i] = Add{
			ID:     orderbook.OrderID(i + 1),
			Side:   side,
			Price:  p.PriceMin + rng.Int63n(p.PriceMax-p.PriceMin+1),
			Volume: p.VolumeMin + rng.Int63n(p.VolumeMax-p.VolumeMin+1),
		}
	}
	for i := range d.Modifications {
		d.Modifications[i] = Modification{
			ID:        orderbook.OrderID(i + 1),
			NewVolume: p.VolumeMin + rng.Int63n(p.VolumeMax-p.VolumeMin+1),
		}
	}
	for i := range d.Deletions {
		d.Deletions[i] = orderbook.OrderID(i + 1)
	}
	return d, nil
}

// Apply replays every add, then every modification, then every deletion
// against book and returns the first error encountered
func Apply(book orderbook.OrderBook, d Dataset) error {
	if err := ApplyAdds(book, d.Adds); err != nil {
		return err
	}
	if err := ApplyModifications(book, d.Modifications); err != nil {
		return err
	}
	return ApplyDeletions(book, d.Deletions)
}

// ApplyAdds submits each add to book
func ApplyAdds(book orderbook.OrderBook, adds []Add) error {
	for i := range adds {
		if err := book.AddOrder(adds[i].ID, adds[i].Side, adds[i].Price, adds[i].Volume); err != nil {
			return fmt.Errorf("add %d: %w", adds[i].ID, err)
		}
	}
	return nil
}

// ApplyModifications submits each modification to book
func ApplyModifications(book orderbook.OrderBook, mods []Modification) error {
	for i := range mods {
		if err := book.ModifyOrder(mods[i].ID, mods[i].NewVolume); err != nil {
			return fmt.Errorf("modify %d: %w", mods[i].ID, err)
		}
	}
	return nil
}

// ApplyDeletions removes each id from book
func ApplyDeletions(book orderbook.OrderBook, ids []orderbook.OrderID) error {
	for i := range ids {
		if err := book.DeleteOrder(ids[i]); err != nil {
			return fmt.Errorf("delete %d: %w", ids[i], err)
		}
	}
	return nil
}
