package abstract

// MinMax scans every item of t in pre-order and returns the least and the
// greatest under less. Comparisons are strict, so among equal candidates the
// first one visited is kept. ok is false for an empty tree.
func MinMax[T Item[T]](t *Tree[T], less func(a, b T) bool) (lo, hi T, ok bool) {
	t.PreOrder(func(item T) bool {
		if !ok {
			lo, hi, ok = item, item, true
			return true
		}
		if less(item, lo) {
			lo = item
		}
		if less(hi, item) {
			hi = item
		}
		return true
	})
	return lo, hi, ok
}

// Reduce folds fn over every item of t in pre-order, starting from acc.
func Reduce[T Item[T], A any](t *Tree[T], acc A, fn func(A, T) A) A {
	t.PreOrder(func(item T) bool {
		acc = fn(acc, item)
		return true
	})
	return acc
}
