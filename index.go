// Package parcels is an in-memory lookup structure for shipment records.
//
// An Index is a fixed table of Capacity buckets addressed by a hash of the
// destination country. Each bucket holds an unbalanced binary search tree of
// parcels ordered by weight. Queries name a country, resolve its bucket and
// then search or fold over that tree.
//
// An Index has a single owner; it is not safe for concurrent use.
package parcels

import (
	"errors"
	"fmt"
	"iter"

	"github.com/parcelindex/parcels/parcel"
)

var (
	// ErrDestroyed is returned by Insert once Destroy has been called.
	ErrDestroyed = errors.New("parcels: index destroyed")

	// ErrInvalidParcel wraps every rejected insertion.
	ErrInvalidParcel = parcel.ErrInvalidParcel
)

// Index is the two-level country to parcels structure.
type Index struct {
	policy    CollisionPolicy
	buckets   *bucketTable
	destroyed bool
}

// Option configures an Index.
type Option func(*Index)

// WithCollisionPolicy sets how countries sharing a bucket are stored. The
// default is SeparateCountries.
func WithCollisionPolicy(p CollisionPolicy) Option {
	return func(i *Index) {
		i.policy = p
	}
}

// New returns an Index with every bucket empty.
func New(opts ...Option) *Index {
	i := &Index{policy: SeparateCountries}
	for _, opt := range opts {
		opt(i)
	}
	i.buckets = newBucketTable(i.policy)
	return i
}

// Policy reports how colliding countries are stored.
func (i *Index) Policy() CollisionPolicy { return i.policy }

// Insert stores a parcel. Nothing is stored if the values are invalid.
func (i *Index) Insert(destination string, weight int, valuation float64) error {
	return i.InsertParcel(parcel.Parcel{
		Destination: destination,
		Weight:      weight,
		Valuation:   valuation,
	})
}

// InsertParcel stores p in the tree of its destination's bucket.
func (i *Index) InsertParcel(p parcel.Parcel) error {
	if i.destroyed {
		return ErrDestroyed
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("insert %s: %w", p, err)
	}
	i.buckets.insert(p)
	return nil
}

// Lookup returns a view of the parcels stored for country. ok is false when
// no parcel was ever stored for it, which is an empty result rather than a
// failure.
func (i *Index) Lookup(country string) (c Country, ok bool) {
	t, ok := i.buckets.lookup(country)
	if !ok {
		return Country{}, false
	}
	return Country{name: country, t: t}, true
}

// FindByWeight returns a parcel for country weighing exactly weight grams.
func (i *Index) FindByWeight(country string, weight int) (parcel.Parcel, bool) {
	c, ok := i.Lookup(country)
	if !ok {
		return parcel.Parcel{}, false
	}
	return c.FindByWeight(weight)
}

// Totals returns the summed weight and valuation of country's parcels.
func (i *Index) Totals(country string) (Totals, bool) {
	c, ok := i.Lookup(country)
	if !ok {
		return Totals{}, false
	}
	return c.Totals(), true
}

// ValuationExtremes returns country's cheapest and most expensive parcels.
func (i *Index) ValuationExtremes(country string) (Extremes, bool) {
	c, ok := i.Lookup(country)
	if !ok {
		return Extremes{}, false
	}
	return c.ValuationExtremes(), true
}

// WeightExtremes returns country's lightest and heaviest parcels.
func (i *Index) WeightExtremes(country string) (Extremes, bool) {
	c, ok := i.Lookup(country)
	if !ok {
		return Extremes{}, false
	}
	return c.WeightExtremes(), true
}

// AllForCountry returns country's parcels in ascending weight order. The
// sequence is empty for an unknown country.
func (i *Index) AllForCountry(country string) iter.Seq[parcel.Parcel] {
	return i.view(country, Country.All)
}

// HeavierThan returns country's parcels weighing more than weight.
func (i *Index) HeavierThan(country string, weight int) iter.Seq[parcel.Parcel] {
	return i.view(country, func(c Country) iter.Seq[parcel.Parcel] { return c.HeavierThan(weight) })
}

// LighterThan returns country's parcels weighing less than weight.
func (i *Index) LighterThan(country string, weight int) iter.Seq[parcel.Parcel] {
	return i.view(country, func(c Country) iter.Seq[parcel.Parcel] { return c.LighterThan(weight) })
}

func (i *Index) view(country string, fn func(Country) iter.Seq[parcel.Parcel]) iter.Seq[parcel.Parcel] {
	return func(yield func(parcel.Parcel) bool) {
		c, ok := i.Lookup(country)
		if !ok {
			return
		}
		for p := range fn(c) {
			if !yield(p) {
				return
			}
		}
	}
}

// Stats describes how full an Index is.
type Stats struct {
	Parcels   int
	Countries int
	UsedSlots int
	Policy    CollisionPolicy
}

// Stats counts the parcels, countries and occupied buckets.
func (i *Index) Stats() Stats {
	return Stats{
		Parcels:   i.buckets.len(),
		Countries: len(i.buckets.countries()),
		UsedSlots: i.buckets.usedSlots(),
		Policy:    i.policy,
	}
}

// Countries returns every destination stored, sorted.
func (i *Index) Countries() []string {
	return i.buckets.countries()
}

// Destroy releases every tree and parcel. Further inserts fail with
// ErrDestroyed and queries report no parcels. Calling Destroy again is a
// no-op.
func (i *Index) Destroy() {
	if i.destroyed {
		return
	}
	i.buckets.release()
	i.destroyed = true
}
