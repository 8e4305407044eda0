// Package parcel defines the shipment record stored by the index.
package parcel

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParcel is returned for a record that cannot be stored.
var ErrInvalidParcel = errors.New("invalid parcel")

// Parcel is one shipment: where it goes, how heavy it is in grams and what
// it is worth. A Parcel is a value; once stored it is never changed.
type Parcel struct {
	Destination string
	Weight      int
	Valuation   float64
}

// Validate reports why p cannot be stored, if it cannot. Any destination,
// the empty string included, is accepted.
func (p Parcel) Validate() error {
	switch {
	case p.Weight < 0:
		return fmt.Errorf("%w: negative weight %d", ErrInvalidParcel, p.Weight)
	case math.IsNaN(p.Valuation) || math.IsInf(p.Valuation, 0):
		return fmt.Errorf("%w: valuation %v is not finite", ErrInvalidParcel, p.Valuation)
	case p.Valuation < 0:
		return fmt.Errorf("%w: negative valuation %.2f", ErrInvalidParcel, p.Valuation)
	}
	return nil
}

// Less orders parcels by weight alone.
func (p Parcel) Less(o Parcel) bool {
	return p.Weight < o.Weight
}

// ByWeight and ByValuation are strict orderings for extreme searches.
func ByWeight(a, b Parcel) bool { return a.Weight < b.Weight }

func ByValuation(a, b Parcel) bool { return a.Valuation < b.Valuation }

func (p Parcel) String() string {
	return fmt.Sprintf("%s/%dg/$%.2f", p.Destination, p.Weight, p.Valuation)
}
