package bsp

// VisitOrder selects the order in which a visitor sees an internal
// node and its two subtrees, or skips the subtree entirely.
type VisitOrder int

const (
	OrderNodeMinusPlus VisitOrder = iota // node, then minus subtree, then plus subtree
	OrderNodePlusMinus                   // node, plus, minus
	OrderMinusNodePlus                   // minus, node, plus
	OrderMinusPlusNode                   // minus, plus, node
	OrderPlusNodeMinus                   // plus, node, minus
	OrderPlusMinusNode                   // plus, minus, node
	OrderSkip                            // do not visit this node or its descendants
)

func (o VisitOrder) String() string {
	switch o {
	case OrderNodeMinusPlus:
		return "node-minus-plus"
	case OrderNodePlusMinus:
		return "node-plus-minus"
	case OrderMinusNodePlus:
		return "minus-node-plus"
	case OrderMinusPlusNode:
		return "minus-plus-node"
	case OrderPlusNodeMinus:
		return "plus-node-minus"
	case OrderPlusMinusNode:
		return "plus-minus-node"
	case OrderSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// VisitResult signals whether a traversal should continue after
// visiting a node.
type VisitResult int

const (
	VisitContinue VisitResult = iota // keep visiting
	VisitStop                        // unwind the whole traversal now
)

// Visitor is the configurable-order traversal protocol. Leaves are
// visited unconditionally; for each internal node the visitor first
// chooses the traversal order for that subtree. A VisitStop from any
// visit unwinds the entire traversal cooperatively.
type Visitor[P, A any] interface {
	// VisitOrder selects the traversal order for the subtree rooted
	// at the given internal node.
	VisitOrder(internal *Node[P, A]) VisitOrder

	// Visit is called once for every visited node.
	Visit(n *Node[P, A]) VisitResult
}

// VisitFunc adapts a plain function to a Visitor using the default
// node-minus-plus order.
type VisitFunc[P, A any] func(n *Node[P, A]) VisitResult

func (f VisitFunc[P, A]) VisitOrder(*Node[P, A]) VisitOrder { return OrderNodeMinusPlus }

func (f VisitFunc[P, A]) Visit(n *Node[P, A]) VisitResult { return f(n) }

type visitStep int

const (
	stepMinus visitStep = iota
	stepNode
	stepPlus
)

// visitSubtree drives one traversal, interpreting the visitor's
// chosen order as a sequence of three steps per internal node.
func visitSubtree[P, A any](n *Node[P, A], v Visitor[P, A]) VisitResult {
	if n.IsLeaf() {
		return v.Visit(n)
	}

	var steps [3]visitStep
	switch v.VisitOrder(n) {
	case OrderNodeMinusPlus:
		steps = [3]visitStep{stepNode, stepMinus, stepPlus}
	case OrderNodePlusMinus:
		steps = [3]visitStep{stepNode, stepPlus, stepMinus}
	case OrderMinusNodePlus:
		steps = [3]visitStep{stepMinus, stepNode, stepPlus}
	case OrderMinusPlusNode:
		steps = [3]visitStep{stepMinus, stepPlus, stepNode}
	case OrderPlusNodeMinus:
		steps = [3]visitStep{stepPlus, stepNode, stepMinus}
	case OrderPlusMinusNode:
		steps = [3]visitStep{stepPlus, stepMinus, stepNode}
	default:
		return VisitContinue
	}

	for _, step := range steps {
		var result VisitResult
		switch step {
		case stepMinus:
			result = visitSubtree(n.minus, v)
		case stepNode:
			result = v.Visit(n)
		case stepPlus:
			result = visitSubtree(n.plus, v)
		}
		if result == VisitStop {
			return VisitStop
		}
	}
	return VisitContinue
}
