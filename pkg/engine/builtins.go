package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/brep/pkg/diag"
	"github.com/chazu/brep/pkg/geom"
	"github.com/chazu/brep/pkg/topo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource rewrites script source before passing it to zygomys.
// It performs three transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: start-chain -> start_chain
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
//  3. Line comments: ; and ;; become //, the zygomys comment marker.
//
// All transformations respect string literal boundaries and line comments.
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
// Custom Sexp types for passing model values through the zygomys environment
// ---------------------------------------------------------------------------

type line = geom.BoundedLine[float64]

// sexpVertex wraps a topo.Vertex so it can be passed between builtins.
type sexpVertex struct {
	v topo.Vertex[float64]
}

func (v *sexpVertex) SexpString(ps *zygo.PrintState) string { return diag.Vertex(v.v) }
func (v *sexpVertex) Type() *zygo.RegisteredType            { return nil }

// sexpEdge wraps a chord edge.
type sexpEdge struct {
	e topo.Edge[float64, line]
}

func (e *sexpEdge) SexpString(ps *zygo.PrintState) string { return diag.ChordEdge(e.e) }
func (e *sexpEdge) Type() *zygo.RegisteredType            { return nil }

// sexpChain wraps an edge chain. Chains are immutable, so extending one
// in a script yields a new sexpChain.
type sexpChain struct {
	c topo.EdgeChain[float64, line]
}

func (c *sexpChain) SexpString(ps *zygo.PrintState) string { return diag.EdgeChain(c.c) }
func (c *sexpChain) Type() *zygo.RegisteredType            { return nil }

// sexpFace wraps a closed face.
type sexpFace struct {
	f topo.Face[float64, line]
}

func (f *sexpFace) SexpString(ps *zygo.PrintState) string { return diag.Face(f.f) }
func (f *sexpFace) Type() *zygo.RegisteredType            { return nil }

// sexpPoint wraps a computed point, such as an intersection.
type sexpPoint struct {
	p geom.Point[float64]
}

func (p *sexpPoint) SexpString(ps *zygo.PrintState) string { return diag.Point(p.p) }
func (p *sexpPoint) Type() *zygo.RegisteredType            { return nil }

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
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			// Trailing keyword with no value is a flag.
			result.kw[name] = zygo.SexpNull
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

func toVertex(s zygo.Sexp) (topo.Vertex[float64], error) {
	if v, ok := s.(*sexpVertex); ok {
		return v.v, nil
	}
	return topo.Vertex[float64]{}, fmt.Errorf("expected vertex, got %T (%s)", s, s.SexpString(nil))
}

func toEdge(s zygo.Sexp) (topo.Edge[float64, line], error) {
	if e, ok := s.(*sexpEdge); ok {
		return e.e, nil
	}
	return topo.Edge[float64, line]{}, fmt.Errorf("expected edge, got %T (%s)", s, s.SexpString(nil))
}

func toChain(s zygo.Sexp) (topo.EdgeChain[float64, line], error) {
	if c, ok := s.(*sexpChain); ok {
		return c.c, nil
	}
	return topo.EdgeChain[float64, line]{}, fmt.Errorf("expected edge chain, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// toVertices flattens vertex arguments, expanding any list or array.
func toVertices(args []zygo.Sexp) ([]topo.Vertex[float64], error) {
	var out []topo.Vertex[float64]
	for i, a := range args {
		if v, ok := a.(*sexpVertex); ok {
			out = append(out, v.v)
			continue
		}
		items, err := sexpListToSlice(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: expected vertex or list of vertices, got %T", i, a)
		}
		for j, item := range items {
			v, err := toVertex(item)
			if err != nil {
				return nil, fmt.Errorf("argument %d, entry %d: %w", i, j, err)
			}
			out = append(out, v)
		}
	}
	return out, nil
}

// render returns the diagnostic text for a script value.
func render(s zygo.Sexp) string {
	switch v := s.(type) {
	case *sexpVertex:
		return diag.Vertex(v.v)
	case *sexpEdge:
		return diag.Edge(v.e)
	case *sexpChain:
		return diag.EdgeChain(v.c)
	case *sexpFace:
		return diag.Face(v.f)
	case *sexpPoint:
		return diag.Point(v.p)
	case *zygo.SexpStr:
		return v.S
	}
	if s == zygo.SexpNull {
		return "nil"
	}
	return s.SexpString(nil)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the modeling builtins into a zygomys environment.
// The builtins operate on the session's model, populating it during
// evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, s *Session) {
	m := s.Model

	// fail records a modeling error so its kind survives zygomys, which
	// only keeps the message.
	fail := func(builtin string, err error) (zygo.Sexp, error) {
		s.fault = err
		return zygo.SexpNull, fmt.Errorf("%s: %w", builtin, err)
	}

	// -----------------------------------------------------------------------
	// (vertex 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vertex", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vertex requires exactly 3 arguments, got %d", len(args))
		}
		var c [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vertex: %c: %w", "xyz"[i], err)
			}
			c[i] = f
		}
		return &sexpVertex{v: m.MakeVertex(geom.Pt(c[0], c[1], c[2]))}, nil
	})

	// -----------------------------------------------------------------------
	// (chord v0 v1)
	// -----------------------------------------------------------------------
	env.AddFunction("chord", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		vs, err := toVertices(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("chord: %w", err)
		}
		if len(vs) != 2 {
			return zygo.SexpNull, fmt.Errorf("chord requires exactly 2 vertices, got %d", len(vs))
		}
		return &sexpEdge{e: m.MakeChordEdge(vs[0], vs[1])}, nil
	})

	// -----------------------------------------------------------------------
	// (start-chain v0 v1 v2)
	// -----------------------------------------------------------------------
	env.AddFunction("start_chain", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		vs, err := toVertices(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("start-chain: %w", err)
		}
		if len(vs) != 3 {
			return zygo.SexpNull, fmt.Errorf("start-chain requires exactly 3 vertices, got %d", len(vs))
		}
		c, err := m.StartEdgeChain(vs[0], vs[1], vs[2])
		if err != nil {
			return fail("start-chain", err)
		}
		return &sexpChain{c: c}, nil
	})

	// -----------------------------------------------------------------------
	// (extend-chain chain v ...)
	// -----------------------------------------------------------------------
	env.AddFunction("extend_chain", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("extend-chain requires a chain and at least one vertex")
		}
		c, err := toChain(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("extend-chain: %w", err)
		}
		vs, err := toVertices(args[1:])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("extend-chain: %w", err)
		}
		for _, v := range vs {
			if c, err = m.ExtendEdgeChain(c, v); err != nil {
				return fail("extend-chain", err)
			}
		}
		return &sexpChain{c: c}, nil
	})

	// -----------------------------------------------------------------------
	// (close-chain chain)
	// -----------------------------------------------------------------------
	env.AddFunction("close_chain", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("close-chain requires exactly 1 chain, got %d", len(args))
		}
		c, err := toChain(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("close-chain: %w", err)
		}
		f, err := m.CloseEdgeChain(c)
		if err != nil {
			return fail("close-chain", err)
		}
		return &sexpFace{f: f}, nil
	})

	// -----------------------------------------------------------------------
	// (polygon v0 v1 v2 ...) or (polygon (list v0 v1 v2 ...))
	//
	// Starts a chain on the first three vertices, extends it through the
	// rest and back to v0, then closes it.
	// -----------------------------------------------------------------------
	env.AddFunction("polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		vs, err := toVertices(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polygon: %w", err)
		}
		if len(vs) < 3 {
			return zygo.SexpNull, fmt.Errorf("polygon requires at least 3 vertices, got %d", len(vs))
		}
		c, err := m.StartEdgeChain(vs[0], vs[1], vs[2])
		if err != nil {
			return fail("polygon", err)
		}
		for _, v := range append(vs[3:], vs[0]) {
			if c, err = m.ExtendEdgeChain(c, v); err != nil {
				return fail("polygon", err)
			}
		}
		f, err := m.CloseEdgeChain(c)
		if err != nil {
			return fail("polygon", err)
		}
		return &sexpFace{f: f}, nil
	})

	// -----------------------------------------------------------------------
	// (point-at edge 0.5)
	// -----------------------------------------------------------------------
	env.AddFunction("point_at", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("point-at requires an edge and a parameter")
		}
		e, err := toEdge(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point-at: %w", err)
		}
		u, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point-at: u: %w", err)
		}
		return &sexpPoint{p: e.Curve.At(u)}, nil
	})

	// -----------------------------------------------------------------------
	// (intersect e0 e1 :tol 0.01)
	//
	// Returns the meeting point, or nil. Without :tol the model tolerance
	// applies.
	// -----------------------------------------------------------------------
	env.AddFunction("intersect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("intersect requires exactly 2 edges, got %d", len(pa.positional))
		}
		e0, err := toEdge(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersect: %w", err)
		}
		e1, err := toEdge(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersect: %w", err)
		}

		tol := m.Tolerance()
		if v, ok := pa.kw["tol"]; ok {
			d, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("intersect: tol: %w", err)
			}
			if d < 0 {
				return zygo.SexpNull, fmt.Errorf("intersect: tol must not be negative, got %v", d)
			}
			tol = geom.Within(d)
		}

		p, ok := e0.Curve.Intersection(e1.Curve, tol)
		if !ok {
			return zygo.SexpNull, nil
		}
		return &sexpPoint{p: p}, nil
	})

	// -----------------------------------------------------------------------
	// (report x ...)
	// -----------------------------------------------------------------------
	env.AddFunction("report", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		for _, a := range args {
			s.report(render(a))
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (validate)
	//
	// Reports every structural finding and returns the number of errors.
	// -----------------------------------------------------------------------
	env.AddFunction("validate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		findings := topo.Validate(m)
		for _, f := range findings {
			s.report(diag.Finding(f))
		}
		return &zygo.SexpInt{Val: int64(len(topo.Split(findings).Errors))}, nil
	})
}
