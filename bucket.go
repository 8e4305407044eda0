package parcels

import (
	"fmt"
	"slices"

	"github.com/parcelindex/parcels/abstract"
	"github.com/parcelindex/parcels/parcel"
)

// CollisionPolicy decides what happens when two countries hash to the same
// bucket.
type CollisionPolicy int

const (
	// SeparateCountries chains one tree per distinct destination inside a
	// bucket, so colliding countries never see each other's parcels.
	SeparateCountries CollisionPolicy = iota
	// SharedBucket keeps a single tree per bucket. Every country that hashes
	// to the bucket reads and writes that tree, and lookups do not compare
	// destinations.
	SharedBucket
)

func (p CollisionPolicy) String() string {
	switch p {
	case SeparateCountries:
		return "separate"
	case SharedBucket:
		return "shared"
	default:
		return fmt.Sprintf("CollisionPolicy(%d)", int(p))
	}
}

// ParseCollisionPolicy is the inverse of CollisionPolicy.String.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch s {
	case "separate", "":
		return SeparateCountries, nil
	case "shared":
		return SharedBucket, nil
	default:
		return 0, fmt.Errorf("unknown collision policy %q", s)
	}
}

type entry struct {
	country string
	tree    *abstract.Tree[parcel.Parcel]
}

// slot is one bucket. Under SharedBucket it never holds more than one entry.
type slot struct {
	entries []entry
}

func (s *slot) find(policy CollisionPolicy, country string) *abstract.Tree[parcel.Parcel] {
	if policy == SharedBucket {
		if len(s.entries) == 0 {
			return nil
		}
		return s.entries[0].tree
	}
	for i := range s.entries {
		if s.entries[i].country == country {
			return s.entries[i].tree
		}
	}
	return nil
}

// bucketTable is the fixed array of buckets addressed by Hash.
type bucketTable struct {
	policy CollisionPolicy
	slots  [Capacity]slot
}

func newBucketTable(policy CollisionPolicy) *bucketTable {
	return &bucketTable{policy: policy}
}

// insert routes p to the tree of its destination's bucket, creating the
// tree on first use.
func (b *bucketTable) insert(p parcel.Parcel) {
	s := &b.slots[Hash(p.Destination)]
	t := s.find(b.policy, p.Destination)
	if t == nil {
		t = abstract.MakeTree[parcel.Parcel]()
		s.entries = append(s.entries, entry{country: p.Destination, tree: t})
	}
	t.Insert(p)
}

func (b *bucketTable) lookup(country string) (*abstract.Tree[parcel.Parcel], bool) {
	t := b.slots[Hash(country)].find(b.policy, country)
	if t == nil || t.Len() == 0 {
		return nil, false
	}
	return t, true
}

// release resets every tree and empties every bucket. It is safe to call
// more than once.
func (b *bucketTable) release() {
	for i := range b.slots {
		s := &b.slots[i]
		for _, e := range s.entries {
			e.tree.Reset()
		}
		clear(s.entries)
		s.entries = nil
	}
}

func (b *bucketTable) len() int {
	n := 0
	for i := range b.slots {
		for _, e := range b.slots[i].entries {
			n += e.tree.Len()
		}
	}
	return n
}

func (b *bucketTable) usedSlots() int {
	n := 0
	for i := range b.slots {
		if len(b.slots[i].entries) > 0 {
			n++
		}
	}
	return n
}

// countries returns every distinct destination stored, sorted. Under
// SharedBucket the trees are walked since an entry's country only names the
// first destination that created it.
func (b *bucketTable) countries() []string {
	seen := make(map[string]struct{})
	for i := range b.slots {
		for _, e := range b.slots[i].entries {
			if b.policy == SeparateCountries {
				seen[e.country] = struct{}{}
				continue
			}
			e.tree.PreOrder(func(p parcel.Parcel) bool {
				seen[p.Destination] = struct{}{}
				return true
			})
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}
