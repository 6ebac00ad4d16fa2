package topo

import "github.com/chazu/brep/pkg/geom"

// Model issues ids and retains every vertex, edge and face it creates.
// Each arena is indexed by id, so its length is the next id to issue and
// ids are never reused.
//
// A Model is not safe for concurrent use.
type Model[S geom.Scalar] struct {
	vertices []Vertex[S]
	edges    []Edge[S, geom.BoundedLine[S]]
	faces    []Face[S, geom.BoundedLine[S]]

	match VertexMatch
	tol   geom.Tolerance[S]
}

// Option configures a Model.
type Option[S geom.Scalar] func(*Model[S])

// WithVertexMatch sets the policy StartEdgeChain uses to decide whether
// two vertices are distinct. The default is MatchValue.
func WithVertexMatch[S geom.Scalar](p VertexMatch) Option[S] {
	return func(m *Model[S]) { m.match = p }
}

// WithTolerance sets the distance used for point matching and the
// coplanarity check. The default is exact.
func WithTolerance[S geom.Scalar](t geom.Tolerance[S]) Option[S] {
	return func(m *Model[S]) { m.tol = t }
}

// New returns an empty model with all id counters at zero.
func New[S geom.Scalar](opts ...Option[S]) *Model[S] {
	m := &Model[S]{match: MatchValue}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Policy returns the model's vertex matching policy.
func (m *Model[S]) Policy() VertexMatch { return m.match }

// Tolerance returns the model's tolerance.
func (m *Model[S]) Tolerance() geom.Tolerance[S] { return m.tol }

// Same reports whether a and b count as one vertex under the model's policy.
func (m *Model[S]) Same(a, b Vertex[S]) bool {
	return matches(m.match, m.tol, a, b)
}

// MakeVertex creates a vertex at p with a fresh id.
func (m *Model[S]) MakeVertex(p geom.Point[S]) Vertex[S] {
	v := Vertex[S]{ID: VertexID(len(m.vertices)), Point: p}
	m.vertices = append(m.vertices, v)
	return v
}

// MakeChordEdge creates a straight edge from v0 to v1 with a fresh id.
// Coincident vertices are accepted and give a zero-length curve;
// CloseEdgeChain rejects such edges.
func (m *Model[S]) MakeChordEdge(v0, v1 Vertex[S]) Edge[S, geom.BoundedLine[S]] {
	e := Edge[S, geom.BoundedLine[S]]{
		ID:       EdgeID(len(m.edges)),
		Vertices: Chord{V0: v0.ID, V1: v1.ID},
		Curve:    geom.NewBoundedLine(v0.Point, v1.Point),
	}
	m.edges = append(m.edges, e)
	return e
}

// Vertex returns the vertex with the given id.
func (m *Model[S]) Vertex(id VertexID) (Vertex[S], bool) {
	if id < 0 || int(id) >= len(m.vertices) {
		return Vertex[S]{}, false
	}
	return m.vertices[id], true
}

// Edge returns the edge with the given id.
func (m *Model[S]) Edge(id EdgeID) (Edge[S, geom.BoundedLine[S]], bool) {
	if id < 0 || int(id) >= len(m.edges) {
		return Edge[S, geom.BoundedLine[S]]{}, false
	}
	return m.edges[id], true
}

// Face returns the face with the given id.
func (m *Model[S]) Face(id FaceID) (Face[S, geom.BoundedLine[S]], bool) {
	if id < 0 || int(id) >= len(m.faces) {
		return Face[S, geom.BoundedLine[S]]{}, false
	}
	return m.faces[id], true
}

// Vertices returns every vertex in id order.
func (m *Model[S]) Vertices() []Vertex[S] {
	return append([]Vertex[S](nil), m.vertices...)
}

// Edges returns every edge in id order.
func (m *Model[S]) Edges() []Edge[S, geom.BoundedLine[S]] {
	return append([]Edge[S, geom.BoundedLine[S]](nil), m.edges...)
}

// Faces returns every face in id order.
func (m *Model[S]) Faces() []Face[S, geom.BoundedLine[S]] {
	return append([]Face[S, geom.BoundedLine[S]](nil), m.faces...)
}

func (m *Model[S]) VertexCount() int { return len(m.vertices) }
func (m *Model[S]) EdgeCount() int   { return len(m.edges) }
func (m *Model[S]) FaceCount() int   { return len(m.faces) }
