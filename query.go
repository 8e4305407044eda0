package parcels

import (
	"iter"

	"github.com/parcelindex/parcels/abstract"
	"github.com/parcelindex/parcels/parcel"
)

// Totals aggregates a set of parcels. Weight is an exact integer sum.
// Valuation is a float64 sum accumulated in pre-order, so it carries the
// usual IEEE-754 rounding but is never truncated.
type Totals struct {
	Count     int
	Weight    int64
	Valuation float64
}

// Extremes holds the least and greatest parcel under some ordering. On ties
// the parcel met first in pre-order wins.
type Extremes struct {
	Min, Max parcel.Parcel
}

// Country is a read-only view of the parcels stored under one country name.
// Under SharedBucket it also shows the parcels of every country colliding
// with it.
type Country struct {
	name string
	t    *abstract.Tree[parcel.Parcel]
}

func (c Country) Name() string { return c.name }

func (c Country) Len() int { return c.t.Len() }

// All returns the parcels in ascending weight order.
func (c Country) All() iter.Seq[parcel.Parcel] {
	return c.t.All()
}

// FindByWeight returns a parcel weighing exactly weight grams, the
// shallowest one in the tree when several do.
func (c Country) FindByWeight(weight int) (parcel.Parcel, bool) {
	return c.t.Find(parcel.Parcel{Weight: weight})
}

// HeavierThan returns, lightest first, the parcels weighing strictly more
// than weight.
func (c Country) HeavierThan(weight int) iter.Seq[parcel.Parcel] {
	return func(yield func(parcel.Parcel) bool) {
		c.t.AscendGE(parcel.Parcel{Weight: weight}, func(p parcel.Parcel) bool {
			if p.Weight == weight {
				return true
			}
			return yield(p)
		})
	}
}

// LighterThan returns, lightest first, the parcels weighing strictly less
// than weight.
func (c Country) LighterThan(weight int) iter.Seq[parcel.Parcel] {
	return func(yield func(parcel.Parcel) bool) {
		c.t.AscendLessThan(parcel.Parcel{Weight: weight}, yield)
	}
}

func (c Country) Totals() Totals {
	return abstract.Reduce(c.t, Totals{}, func(acc Totals, p parcel.Parcel) Totals {
		acc.Count++
		acc.Weight += int64(p.Weight)
		acc.Valuation += p.Valuation
		return acc
	})
}

// ValuationExtremes returns the cheapest and the most expensive parcel.
func (c Country) ValuationExtremes() Extremes {
	lo, hi, _ := abstract.MinMax(c.t, parcel.ByValuation)
	return Extremes{Min: lo, Max: hi}
}

// WeightExtremes returns the lightest and the heaviest parcel. It scans the
// whole tree rather than following the outer links so that ties resolve the
// same way as ValuationExtremes.
func (c Country) WeightExtremes() Extremes {
	lo, hi, _ := abstract.MinMax(c.t, parcel.ByWeight)
	return Extremes{Min: lo, Max: hi}
}
