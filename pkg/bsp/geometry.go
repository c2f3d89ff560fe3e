package bsp

// Side locates a point relative to a hyperplane.
type Side int

const (
	SideMinus Side = iota - 1 // strictly on the minus side
	SideOn                    // on the hyperplane itself
	SidePlus                  // strictly on the plus side
)

func (s Side) String() string {
	switch s {
	case SideMinus:
		return "minus"
	case SideOn:
		return "on"
	case SidePlus:
		return "plus"
	default:
		return "unknown"
	}
}

// Hyperplane divides the space into a plus side and a minus side.
// Implementations must be immutable; the tree shares them freely
// between nodes and across trees.
type Hyperplane[P any] interface {
	// Classify reports which side of the hyperplane the point lies on,
	// subject to the implementation's tolerance.
	Classify(pt P) Side

	// SimilarOrientation reports whether the other hyperplane's plus
	// side points in a similar direction to this one's. Only called
	// with hyperplanes of the same concrete type.
	SimilarOrientation(other Hyperplane[P]) bool

	// Span returns the convex subset covering the entire hyperplane.
	Span() ConvexSubset[P]
}

// ConvexSubset is a convex region lying within a hyperplane. Internal
// tree nodes use convex subsets as cuts. Implementations must be
// immutable.
type ConvexSubset[P any] interface {
	// Hyperplane returns the hyperplane containing the subset.
	Hyperplane() Hyperplane[P]

	// IsEmpty reports whether the subset contains no points.
	IsEmpty() bool

	// Split divides the subset by the splitter hyperplane. Parts that
	// would be empty must be nil interface values.
	Split(splitter Hyperplane[P]) Split[P]

	// Transform returns the subset mapped through t.
	Transform(t Transform[P]) ConvexSubset[P]

	// Reverse returns the same subset on the reversed hyperplane.
	Reverse() ConvexSubset[P]
}

// Transform maps points of the space onto other points. Affine and
// reflective transforms are typical implementations.
type Transform[P any] interface {
	// Apply maps a single point.
	Apply(pt P) P

	// PreservesOrientation reports whether the transform preserves
	// spatial orientation. A reflection does not.
	PreservesOrientation() bool
}

// SplitLocation describes where a convex subset lies relative to a
// splitting hyperplane.
type SplitLocation int

const (
	SplitPlus    SplitLocation = iota // entirely on the plus side
	SplitMinus                        // entirely on the minus side
	SplitBoth                         // divided into a part on each side
	SplitNeither                      // coincident with the splitter
)

func (l SplitLocation) String() string {
	switch l {
	case SplitPlus:
		return "plus"
	case SplitMinus:
		return "minus"
	case SplitBoth:
		return "both"
	case SplitNeither:
		return "neither"
	default:
		return "unknown"
	}
}

// Split is the result of dividing a convex subset by a hyperplane.
// Either part may be nil.
type Split[P any] struct {
	minus ConvexSubset[P]
	plus  ConvexSubset[P]
}

// NewSplit builds a split from the minus and plus parts. Empty parts
// must be passed as nil interface values, never typed nil pointers.
func NewSplit[P any](minus, plus ConvexSubset[P]) Split[P] {
	return Split[P]{minus: minus, plus: plus}
}

// Minus returns the part on the minus side of the splitter, or nil.
func (s Split[P]) Minus() ConvexSubset[P] { return s.minus }

// Plus returns the part on the plus side of the splitter, or nil.
func (s Split[P]) Plus() ConvexSubset[P] { return s.plus }

// Location reports where the subset lay relative to the splitter,
// derived from which parts are present.
func (s Split[P]) Location() SplitLocation {
	switch {
	case s.minus != nil && s.plus != nil:
		return SplitBoth
	case s.minus != nil:
		return SplitMinus
	case s.plus != nil:
		return SplitPlus
	default:
		return SplitNeither
	}
}
