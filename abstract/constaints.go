package abstract

// Item is the constraint on values stored in a Tree. Less must be a strict
// weak ordering. Items that are neither less nor greater than one another
// share a key and may all be stored.
type Item[T any] interface {
	Less(T) bool
}
