package abstract

// iterStack is a stack of nodes whose items have not been emitted yet. It
// captures iteration state as an Iterator descends a Tree.
type iterStack[T Item[T]] struct {
	a    iterStackArr[T]
	aLen int16 // -1 when using s
	s    []*node[T]
}

const iterStackDepth = 16

// Used to avoid allocations for stacks below a certain size.
type iterStackArr[T Item[T]] [iterStackDepth]*node[T]

func (is *iterStack[T]) push(n *node[T]) {
	if is.aLen == -1 {
		is.s = append(is.s, n)
	} else if int(is.aLen) == len(is.a) {
		is.s = make([]*node[T], int(is.aLen)+1, 2*int(is.aLen))
		copy(is.s, is.a[:])
		is.s[int(is.aLen)] = n
		is.a = iterStackArr[T]{}
		is.aLen = -1
	} else {
		is.a[is.aLen] = n
		is.aLen++
	}
}

func (is *iterStack[T]) pop() *node[T] {
	if is.aLen == -1 {
		n := is.s[len(is.s)-1]
		is.s = is.s[:len(is.s)-1]
		return n
	}
	is.aLen--
	n := is.a[is.aLen]
	is.a[is.aLen] = nil
	return n
}

func (is *iterStack[T]) len() int {
	if is.aLen == -1 {
		return len(is.s)
	}
	return int(is.aLen)
}

func (is *iterStack[T]) reset() {
	if is.aLen == -1 {
		clear(is.s)
		is.s = is.s[:0]
	} else {
		clear(is.a[:is.aLen])
		is.aLen = 0
	}
}
