package abstract

// Iterator is responsible for in-order traversal within a Tree. It never
// recurses, so the depth of the tree only costs stack slots on the heap.
type Iterator[T Item[T]] struct {
	t   *Tree[T]
	cur *node[T]
	s   iterStack[T]
}

// Reset invalidates the Iterator. Call First or SeekGE to position it again.
func (i *Iterator[T]) Reset() {
	i.cur = nil
	i.s.reset()
}

// First seeks to the least item in the Tree.
func (i *Iterator[T]) First() {
	i.Reset()
	i.pushLeft(i.t.root)
	i.advance()
}

// SeekGE seeks to the first item which is not Less than the provided item.
func (i *Iterator[T]) SeekGE(item T) {
	i.Reset()
	n := i.t.root
	for n != nil {
		if n.item.Less(item) {
			n = n.right
		} else {
			i.s.push(n)
			n = n.left
		}
	}
	i.advance()
}

// Next positions the Iterator to the item immediately following its current
// position. Items sharing a key are emitted in their in-order position.
func (i *Iterator[T]) Next() {
	if i.cur == nil {
		return
	}
	i.advance()
}

// Valid returns whether the Iterator is positioned at a valid position.
func (i *Iterator[T]) Valid() bool {
	return i.cur != nil
}

// Cur returns the item at the Iterator's current position. It is illegal
// to call Cur if the Iterator is not valid.
func (i *Iterator[T]) Cur() T {
	return i.cur.item
}

func (i *Iterator[T]) pushLeft(n *node[T]) {
	for ; n != nil; n = n.left {
		i.s.push(n)
	}
}

func (i *Iterator[T]) advance() {
	if i.s.len() == 0 {
		i.cur = nil
		return
	}
	i.cur = i.s.pop()
	i.pushLeft(i.cur.right)
}
