package abstract

import (
	"fmt"
	"strings"
)

// node owns exactly one item and its two children. Every item in the left
// subtree is Less than item; every item in the right subtree is not.
type node[T Item[T]] struct {
	item        T
	left, right *node[T]
}

func newNode[T Item[T]](item T) *node[T] {
	return &node[T]{item: item}
}

func (n *node[T]) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// child returns the link insertion of item follows out of n.
func (n *node[T]) child(item T) **node[T] {
	if item.Less(n.item) {
		return &n.left
	}
	return &n.right
}

// release unlinks every node below and including n so that no node keeps
// its subtree reachable. It walks with an explicit stack.
func (n *node[T]) release() {
	var zero T
	stack := []*node[T]{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.left != nil {
			stack = append(stack, cur.left)
		}
		if cur.right != nil {
			stack = append(stack, cur.right)
		}
		cur.left, cur.right = nil, nil
		cur.item = zero
	}
}

type strFrame[T Item[T]] struct {
	n     *node[T]
	state uint8
}

// writeString writes the subtree rooted at n in a Newick-like format where
// an inner node is written as (left,right)item and a missing child is
// written as nothing.
func (n *node[T]) writeString(b *strings.Builder) {
	stack := []strFrame[T]{{n: n}}
	for len(stack) > 0 {
		i := len(stack) - 1
		f := stack[i]
		leaf := f.n.isLeaf()
		switch f.state {
		case 0:
			stack[i].state = 1
			if !leaf {
				b.WriteByte('(')
				if f.n.left != nil {
					stack = append(stack, strFrame[T]{n: f.n.left})
				}
			}
		case 1:
			stack[i].state = 2
			if !leaf {
				b.WriteByte(',')
				if f.n.right != nil {
					stack = append(stack, strFrame[T]{n: f.n.right})
				}
			}
		default:
			if !leaf {
				b.WriteByte(')')
			}
			fmt.Fprintf(b, "%v", f.n.item)
			stack = stack[:i]
		}
	}
}
