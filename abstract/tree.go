// Copyright 2024 The Parcels Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package abstract

import (
	"iter"
	"strings"
)

// Tree is an unbalanced binary search tree holding a multiset of items.
// Items equal under Less are placed to the right of one another, so the
// shape of the tree depends only on insertion order.
//
// A Tree is not safe for concurrent mutation. Every operation is iterative,
// so a degenerate tree of any height is walked without deep recursion.
type Tree[T Item[T]] struct {
	root   *node[T]
	length int
}

// MakeTree returns an empty Tree.
func MakeTree[T Item[T]]() *Tree[T] {
	return &Tree[T]{}
}

// Insert adds item to the tree. An item which is Less than a node goes left,
// anything else (including an equal item) goes right.
func (t *Tree[T]) Insert(item T) {
	link := &t.root
	for *link != nil {
		link = (*link).child(item)
	}
	*link = newNode(item)
	t.length++
}

// Find returns the first item on the search path for probe which is equal
// to it. With duplicate keys this is the shallowest match, not necessarily
// the first inserted.
func (t *Tree[T]) Find(probe T) (item T, found bool) {
	for n := t.root; n != nil; {
		switch {
		case probe.Less(n.item):
			n = n.left
		case n.item.Less(probe):
			n = n.right
		default:
			return n.item, true
		}
	}
	return item, false
}

// MakeIter returns a new Iterator object. It is not safe to continue using an
// Iterator after modifications are made to the tree. If modifications are made,
// create a new Iterator.
func (t *Tree[T]) MakeIter() Iterator[T] {
	return Iterator[T]{t: t}
}

// All returns the items in ascending order. The sequence is lazy and may be
// ranged over any number of times.
func (t *Tree[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := t.MakeIter()
		for it.First(); it.Valid(); it.Next() {
			if !yield(it.Cur()) {
				return
			}
		}
	}
}

// AscendGE calls fn in ascending order for every item which is not Less
// than from, until fn returns false.
func (t *Tree[T]) AscendGE(from T, fn func(T) bool) {
	it := t.MakeIter()
	for it.SeekGE(from); it.Valid(); it.Next() {
		if !fn(it.Cur()) {
			return
		}
	}
}

// AscendLessThan calls fn in ascending order for every item which is Less
// than bound, until fn returns false.
func (t *Tree[T]) AscendLessThan(bound T, fn func(T) bool) {
	it := t.MakeIter()
	for it.First(); it.Valid() && it.Cur().Less(bound); it.Next() {
		if !fn(it.Cur()) {
			return
		}
	}
}

// PreOrder calls fn for every item in parent, left, right order until fn
// returns false.
func (t *Tree[T]) PreOrder(fn func(T) bool) {
	if t.root == nil {
		return
	}
	var s iterStack[T]
	s.push(t.root)
	for s.len() > 0 {
		n := s.pop()
		if !fn(n.item) {
			return
		}
		if n.right != nil {
			s.push(n.right)
		}
		if n.left != nil {
			s.push(n.left)
		}
	}
}

// Reset removes all items from the Tree, unlinking every node so that none
// of them keeps the others reachable. Calling Reset on an empty Tree is a
// no-op.
func (t *Tree[T]) Reset() {
	if t.root != nil {
		t.root.release()
		t.root = nil
	}
	t.length = 0
}

// Height returns the number of nodes on the longest root to leaf path.
func (t *Tree[T]) Height() int {
	if t.root == nil {
		return 0
	}
	h := 0
	level := []*node[T]{t.root}
	for len(level) > 0 {
		h++
		var next []*node[T]
		for _, n := range level {
			if n.left != nil {
				next = append(next, n.left)
			}
			if n.right != nil {
				next = append(next, n.right)
			}
		}
		level = next
	}
	return h
}

// Len returns the number of items currently in the tree.
func (t *Tree[T]) Len() int {
	return t.length
}

// String returns a string description of the tree. The format is
// similar to the https://en.wikipedia.org/wiki/Newick_format.
func (t *Tree[T]) String() string {
	if t.length == 0 {
		return ";"
	}
	var b strings.Builder
	t.root.writeString(&b)
	return b.String()
}
