package bsp

// Iterator enumerates the nodes of a subtree depth-first in
// pre-order, minus children before plus children. It is the
// lightweight alternative to the visitor for full-subtree walks that
// need no ordering control.
//
// The iterator reads live tree structure; mutating the tree while
// iterating gives undefined results.
type Iterator[P, A any] struct {
	stack []*Node[P, A]
}

// Next returns the next node in pre-order. The second return value is
// false once the subtree is exhausted.
func (it *Iterator[P, A]) Next() (*Node[P, A], bool) {
	if len(it.stack) == 0 {
		return nil, false
	}

	n := it.stack[len(it.stack)-1]
	it.stack = it.stack[:len(it.stack)-1]

	if n.IsInternal() {
		// Plus pushed first so minus pops first.
		it.stack = append(it.stack, n.plus, n.minus)
	}
	return n, true
}
