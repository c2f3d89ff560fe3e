package engine

import (
	"fmt"
	"strings"

	v2 "github.com/deadsy/sdfx/vec/v2"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/froe/pkg/bsp"
	"github.com/chazu/froe/pkg/euclid2"
	"github.com/chazu/froe/pkg/precision"
	"github.com/chazu/froe/pkg/region"
)

// defaultPrecision governs all floating point comparisons made by the
// DSL builtins.
var defaultPrecision = precision.Default()

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms froe Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: tree-string -> tree_string
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpRegion wraps a region tree so it can be passed between builtins.
type sexpRegion struct {
	r    *region.Tree[v2.Vec]
	name string // set by defregion for error messages and printing
}

func (r *sexpRegion) SexpString(ps *zygo.PrintState) string {
	if r.name != "" {
		return fmt.Sprintf("(region %q count=%d)", r.name, r.r.Count())
	}
	return fmt.Sprintf("(region count=%d height=%d)", r.r.Count(), r.r.Height())
}
func (r *sexpRegion) Type() *zygo.RegisteredType { return nil }

// sexpLine wraps a euclid2.Line so it can be returned from `line` and
// consumed by `insert` and `split`.
type sexpLine struct {
	line euclid2.Line
}

func (l *sexpLine) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s)", l.line)
}
func (l *sexpLine) Type() *zygo.RegisteredType { return nil }

// sexpSection wraps a euclid2.Section (a bounded piece of a line).
type sexpSection struct {
	sec euclid2.Section
}

func (s *sexpSection) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s)", s.sec)
}
func (s *sexpSection) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value; treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_inherit) and plain strings
// ("inherit").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toRegion extracts a region tree from a sexpRegion.
func toRegion(s zygo.Sexp) (*region.Tree[v2.Vec], error) {
	if r, ok := s.(*sexpRegion); ok {
		return r.r, nil
	}
	return nil, fmt.Errorf("expected region, got %T (%s)", s, s.SexpString(nil))
}

// toLine extracts a line from a sexpLine.
func toLine(s zygo.Sexp) (euclid2.Line, error) {
	if l, ok := s.(*sexpLine); ok {
		return l.line, nil
	}
	return euclid2.Line{}, fmt.Errorf("expected line, got %T (%s)", s, s.SexpString(nil))
}

// toCut extracts an insertable convex subset: a whole line span or a
// bounded section.
func toCut(s zygo.Sexp) (bsp.ConvexSubset[v2.Vec], error) {
	switch v := s.(type) {
	case *sexpLine:
		return v.line.Span(), nil
	case *sexpSection:
		return v.sec, nil
	}
	return nil, fmt.Errorf("expected line or segment, got %T (%s)", s, s.SexpString(nil))
}

// toRule converts a keyword or string to a region.CutRule.
func toRule(s zygo.Sexp) (region.CutRule, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected rule keyword (:minus-inside, :plus-inside, :inherit): %w", err)
	}
	switch name {
	case "minus-inside":
		return region.MinusInside, nil
	case "plus-inside":
		return region.PlusInside, nil
	case "inherit":
		return region.Inherit, nil
	}
	return 0, fmt.Errorf("invalid rule %q, expected minus-inside, plus-inside, or inherit", name)
}

// toPoint reads two consecutive number args as a point.
func toPoint(xs, ys zygo.Sexp) (v2.Vec, error) {
	x, err := toFloat64(xs)
	if err != nil {
		return v2.Vec{}, err
	}
	y, err := toFloat64(ys)
	if err != nil {
		return v2.Vec{}, err
	}
	return v2.Vec{X: x, Y: y}, nil
}

// sexpToDisplay renders a Sexp for emit output. Strings appear without
// quotes; everything else uses its Lisp form.
func sexpToDisplay(s zygo.Sexp) string {
	switch v := s.(type) {
	case *zygo.SexpStr:
		return v.S
	case *zygo.SexpInt:
		return fmt.Sprintf("%d", v.Val)
	case *zygo.SexpFloat:
		return fmt.Sprintf("%g", v.Val)
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return "nil"
		}
	}
	return s.SexpString(nil)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs all froe DSL builtins into a zygomys
// environment. The builtins operate on the provided Result, populating
// it during evaluation.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are converted to recognizable
// string literals.
func registerBuiltins(env *zygo.Zlisp, res *Result) {

	// -----------------------------------------------------------------------
	// (line x0 y0 x1 y1)
	//
	// The oriented line through two points. Its plus side is the left
	// side when traveling from the first point to the second.
	// -----------------------------------------------------------------------
	env.AddFunction("line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("line requires exactly 4 arguments (x0 y0 x1 y1), got %d", len(args))
		}
		a, err := toPoint(args[0], args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: first point: %w", err)
		}
		b, err := toPoint(args[2], args[3])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: second point: %w", err)
		}
		if defaultPrecision.EqZero(b.Sub(a).Length()) {
			return zygo.SexpNull, fmt.Errorf("line: points are too close together")
		}
		return &sexpLine{line: euclid2.NewLineFromPoints(a, b, defaultPrecision)}, nil
	})

	// -----------------------------------------------------------------------
	// (segment x0 y0 x1 y1)
	//
	// The bounded piece of the line from the first point to the second.
	// -----------------------------------------------------------------------
	env.AddFunction("segment", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("segment requires exactly 4 arguments (x0 y0 x1 y1), got %d", len(args))
		}
		a, err := toPoint(args[0], args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("segment: first point: %w", err)
		}
		b, err := toPoint(args[2], args[3])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("segment: second point: %w", err)
		}
		if defaultPrecision.EqZero(b.Sub(a).Length()) {
			return zygo.SexpNull, fmt.Errorf("segment: points are too close together")
		}
		return &sexpSection{sec: euclid2.NewSegmentFromPoints(a, b, defaultPrecision)}, nil
	})

	// -----------------------------------------------------------------------
	// (empty) and (full)
	// -----------------------------------------------------------------------
	env.AddFunction("empty", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &sexpRegion{r: region.NewEmpty[v2.Vec]()}, nil
	})

	env.AddFunction("full", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &sexpRegion{r: region.NewFull[v2.Vec]()}, nil
	})

	// -----------------------------------------------------------------------
	// (insert r cut... :rule :plus-inside)
	//
	// Carves one or more cuts into the region in place and returns it.
	// The rule defaults to :minus-inside.
	// -----------------------------------------------------------------------
	env.AddFunction("insert", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		if len(pa.positional) < 2 {
			return zygo.SexpNull, fmt.Errorf("insert requires a region and at least one cut")
		}
		r, err := toRegion(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("insert: region: %w", err)
		}

		rule := region.MinusInside
		if v, ok := pa.kw["rule"]; ok {
			rule, err = toRule(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("insert: rule: %w", err)
			}
		}

		for i, cs := range pa.positional[1:] {
			cut, err := toCut(cs)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("insert: cut %d: %w", i+1, err)
			}
			r.InsertRule(cut, rule)
		}

		return pa.positional[0], nil
	})

	// -----------------------------------------------------------------------
	// (union a b ...) (intersection a b ...) (difference a b ...) (xor a b ...)
	//
	// Each returns a fresh region; the inputs are untouched. With more
	// than two arguments the operation folds left.
	// -----------------------------------------------------------------------
	binaryOp := func(opName string, apply func(dst, src *region.Tree[v2.Vec])) zygo.ZlispUserFunction {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) < 2 {
				return zygo.SexpNull, fmt.Errorf("%s requires at least 2 regions, got %d", opName, len(args))
			}
			first, err := toRegion(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: argument 1: %w", opName, err)
			}
			out := first.Copy()
			for i, s := range args[1:] {
				next, err := toRegion(s)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: argument %d: %w", opName, i+2, err)
				}
				apply(out, next)
			}
			return &sexpRegion{r: out}, nil
		}
	}

	env.AddFunction("union", binaryOp("union", func(dst, src *region.Tree[v2.Vec]) { dst.Union(src) }))
	env.AddFunction("intersection", binaryOp("intersection", func(dst, src *region.Tree[v2.Vec]) { dst.Intersection(src) }))
	env.AddFunction("difference", binaryOp("difference", func(dst, src *region.Tree[v2.Vec]) { dst.Difference(src) }))
	env.AddFunction("xor", binaryOp("xor", func(dst, src *region.Tree[v2.Vec]) { dst.Xor(src) }))

	// -----------------------------------------------------------------------
	// (complement r)
	// -----------------------------------------------------------------------
	env.AddFunction("complement", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("complement requires exactly 1 region, got %d", len(args))
		}
		r, err := toRegion(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("complement: %w", err)
		}
		out := r.Copy()
		out.Complement()
		return &sexpRegion{r: out}, nil
	})

	// -----------------------------------------------------------------------
	// (split r (line ...))
	//
	// Returns a two-element list holding the parts of the region on the
	// line's minus and plus sides.
	// -----------------------------------------------------------------------
	env.AddFunction("split", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("split requires a region and a line, got %d arguments", len(args))
		}
		r, err := toRegion(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("split: region: %w", err)
		}
		l, err := toLine(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("split: line: %w", err)
		}

		minus, plus := r.Split(l)
		return zygo.MakeList([]zygo.Sexp{
			&sexpRegion{r: minus},
			&sexpRegion{r: plus},
		}), nil
	})

	// -----------------------------------------------------------------------
	// (classify r x y) and (contains? r x y)
	// -----------------------------------------------------------------------
	env.AddFunction("classify", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("classify requires a region and a point (r x y), got %d arguments", len(args))
		}
		r, err := toRegion(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("classify: region: %w", err)
		}
		pt, err := toPoint(args[1], args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("classify: point: %w", err)
		}
		return &zygo.SexpStr{S: r.Classify(pt).String()}, nil
	})

	env.AddFunction("contains?", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("contains? requires a region and a point (r x y), got %d arguments", len(args))
		}
		r, err := toRegion(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("contains?: region: %w", err)
		}
		pt, err := toPoint(args[1], args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("contains?: point: %w", err)
		}
		return &zygo.SexpBool{Val: r.Contains(pt)}, nil
	})

	// -----------------------------------------------------------------------
	// (region-empty? r) and (region-full? r)
	//
	// Named with a region- prefix to avoid shadowing the zygomys empty?
	// builtin.
	// -----------------------------------------------------------------------
	env.AddFunction("region_empty?", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("region-empty? requires exactly 1 region, got %d", len(args))
		}
		r, err := toRegion(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("region-empty?: %w", err)
		}
		return &zygo.SexpBool{Val: r.IsEmpty()}, nil
	})

	env.AddFunction("region_full?", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("region-full? requires exactly 1 region, got %d", len(args))
		}
		r, err := toRegion(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("region-full?: %w", err)
		}
		return &zygo.SexpBool{Val: r.IsFull()}, nil
	})

	// -----------------------------------------------------------------------
	// (node-count r) and (tree-height r)
	// -----------------------------------------------------------------------
	env.AddFunction("node_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("node-count requires exactly 1 region, got %d", len(args))
		}
		r, err := toRegion(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("node-count: %w", err)
		}
		return &zygo.SexpInt{Val: int64(r.Count())}, nil
	})

	env.AddFunction("tree_height", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("tree-height requires exactly 1 region, got %d", len(args))
		}
		r, err := toRegion(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("tree-height: %w", err)
		}
		return &zygo.SexpInt{Val: int64(r.Height())}, nil
	})

	// -----------------------------------------------------------------------
	// (tree-string r :max-depth 3)
	//
	// Renders the region's tree structure. Without :max-depth the whole
	// tree is rendered.
	// -----------------------------------------------------------------------
	env.AddFunction("tree_string", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("tree-string requires exactly 1 region")
		}
		r, err := toRegion(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("tree-string: %w", err)
		}

		maxDepth := -1
		if v, ok := pa.kw["max-depth"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("tree-string: max-depth: %w", err)
			}
			maxDepth = int(f)
		}

		return &zygo.SexpStr{S: r.TreeString(maxDepth)}, nil
	})

	// -----------------------------------------------------------------------
	// (translate r dx dy), (rotate r theta), (scale r sx sy)
	//
	// Each transforms the region in place and returns it. Rotation is
	// about the coordinate origin, in radians.
	// -----------------------------------------------------------------------
	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("translate requires a region and an offset (r dx dy), got %d arguments", len(args))
		}
		r, err := toRegion(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: region: %w", err)
		}
		d, err := toPoint(args[1], args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: offset: %w", err)
		}
		r.Transform(euclid2.Translation(d.X, d.Y))
		return args[0], nil
	})

	env.AddFunction("rotate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("rotate requires a region and an angle (r theta), got %d arguments", len(args))
		}
		r, err := toRegion(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: region: %w", err)
		}
		theta, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: angle: %w", err)
		}
		r.Transform(euclid2.Rotation(theta))
		return args[0], nil
	})

	env.AddFunction("scale", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("scale requires a region and factors (r sx sy), got %d arguments", len(args))
		}
		r, err := toRegion(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale: region: %w", err)
		}
		s, err := toPoint(args[1], args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale: factors: %w", err)
		}
		if s.X == 0 || s.Y == 0 {
			return zygo.SexpNull, fmt.Errorf("scale: factors must be nonzero")
		}
		r.Transform(euclid2.Scaling(s.X, s.Y))
		return args[0], nil
	})

	// -----------------------------------------------------------------------
	// (defregion "name" r)
	// -----------------------------------------------------------------------
	env.AddFunction("defregion", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("defregion requires a name and a region expression")
		}
		regionName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defregion: name: %w", err)
		}
		r, err := toRegion(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defregion: %w", err)
		}

		res.AddRegion(regionName, r)

		if sr, ok := args[1].(*sexpRegion); ok {
			sr.name = regionName
			return sr, nil
		}
		return &sexpRegion{r: r, name: regionName}, nil
	})

	// -----------------------------------------------------------------------
	// (region "name")
	// -----------------------------------------------------------------------
	env.AddFunction("region", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("region requires a name argument")
		}
		regionName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("region: name: %w", err)
		}

		r := res.Region(regionName)
		if r == nil {
			return zygo.SexpNull, fmt.Errorf("region: no region named %q", regionName)
		}

		return &sexpRegion{r: r, name: regionName}, nil
	})

	// -----------------------------------------------------------------------
	// (emit args...)
	//
	// Appends a line of output to the result, joining the rendered
	// arguments with spaces.
	// -----------------------------------------------------------------------
	env.AddFunction("emit", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = sexpToDisplay(a)
		}
		res.Emit(strings.Join(parts, " "))
		return zygo.SexpNull, nil
	})
}
