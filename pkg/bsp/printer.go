package bsp

import (
	"fmt"
	"strings"
)

// TreeString renders the tree as an indented listing, one node per
// line, for debugging. Internal nodes show their cut, leaves their
// attribute. Subtrees below maxDepth are elided with an ellipsis
// line; a negative maxDepth prints everything.
func (t *Tree[P, A]) TreeString(maxDepth int) string {
	var sb strings.Builder
	writeNode(&sb, t.root, 0, maxDepth)
	return sb.String()
}

func writeNode[P, A any](sb *strings.Builder, n *Node[P, A], depth, maxDepth int) {
	indent := strings.Repeat("  ", depth)

	if n.IsLeaf() {
		fmt.Fprintf(sb, "%s- leaf attr=%v\n", indent, n.attr)
		return
	}

	fmt.Fprintf(sb, "%s+ cut=%v\n", indent, n.cut)
	if maxDepth >= 0 && depth >= maxDepth {
		fmt.Fprintf(sb, "%s  ...\n", indent)
		return
	}
	writeNode(sb, n.minus, depth+1, maxDepth)
	writeNode(sb, n.plus, depth+1, maxDepth)
}
