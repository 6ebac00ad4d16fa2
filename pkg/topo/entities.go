package topo

import "github.com/chazu/brep/pkg/geom"

// VertexID identifies a vertex within its Model.
type VertexID int

// EdgeID identifies an edge within its Model.
type EdgeID int

// FaceID identifies a face within its Model.
type FaceID int

// Vertex pairs an id with a location. Two vertices at the same point are
// still different vertices unless their ids match.
type Vertex[S geom.Scalar] struct {
	ID    VertexID
	Point geom.Point[S]
}

// EdgeVertices describes which vertices bound an edge.
type EdgeVertices interface {
	edgeVertices() // marker method restricting implementations to this package
}

// Chord is an edge bounded by two vertices, running from V0 to V1.
type Chord struct {
	V0, V1 VertexID
}

func (Chord) edgeVertices() {}

// Edge pairs an id with a curve and the vertices bounding it.
type Edge[S geom.Scalar, C geom.ParametrizedCurve[S]] struct {
	ID       EdgeID
	Vertices EdgeVertices
	Curve    C
}

// Initial returns the vertex the edge starts at.
func (e Edge[S, C]) Initial() VertexID {
	switch v := e.Vertices.(type) {
	case Chord:
		return v.V0
	default:
		return -1
	}
}

// Terminal returns the vertex the edge ends at.
func (e Edge[S, C]) Terminal() VertexID {
	switch v := e.Vertices.(type) {
	case Chord:
		return v.V1
	default:
		return -1
	}
}

// EdgeChain is an ordered run of edges meant to form a boundary loop.
// Chains are values: extending one returns a new chain and leaves the
// original untouched.
type EdgeChain[S geom.Scalar, C geom.ParametrizedCurve[S]] struct {
	edges []Edge[S, C]
}

// NewEdgeChain returns a chain over a copy of edges. It does not check
// connectivity; CloseEdgeChain does.
func NewEdgeChain[S geom.Scalar, C geom.ParametrizedCurve[S]](edges ...Edge[S, C]) EdgeChain[S, C] {
	return EdgeChain[S, C]{edges: append([]Edge[S, C](nil), edges...)}
}

// Len returns the number of edges.
func (c EdgeChain[S, C]) Len() int {
	return len(c.edges)
}

// Edges returns a copy of the chain's edges in order.
func (c EdgeChain[S, C]) Edges() []Edge[S, C] {
	return append([]Edge[S, C](nil), c.edges...)
}

// EdgeIDs returns the ids of the chain's edges in order.
func (c EdgeChain[S, C]) EdgeIDs() []EdgeID {
	ids := make([]EdgeID, len(c.edges))
	for i, e := range c.edges {
		ids[i] = e.ID
	}
	return ids
}

// Start returns the initial vertex of the first edge.
func (c EdgeChain[S, C]) Start() (VertexID, bool) {
	if len(c.edges) == 0 {
		return 0, false
	}
	return c.edges[0].Initial(), true
}

// End returns the terminal vertex of the last edge.
func (c EdgeChain[S, C]) End() (VertexID, bool) {
	if len(c.edges) == 0 {
		return 0, false
	}
	return c.edges[len(c.edges)-1].Terminal(), true
}

// IsClosed reports whether the chain ends at the vertex it starts from.
func (c EdgeChain[S, C]) IsClosed() bool {
	start, ok := c.Start()
	if !ok {
		return false
	}
	end, _ := c.End()
	return start == end
}

// append returns a new chain with e added at the end.
func (c EdgeChain[S, C]) append(e Edge[S, C]) EdgeChain[S, C] {
	edges := make([]Edge[S, C], len(c.edges), len(c.edges)+1)
	copy(edges, c.edges)
	return EdgeChain[S, C]{edges: append(edges, e)}
}

// Face is a region bounded by a closed edge chain.
type Face[S geom.Scalar, C geom.ParametrizedCurve[S]] struct {
	ID       FaceID
	Boundary EdgeChain[S, C]
}

// Loop returns the boundary's corner points in order: the start of every
// edge, so the closing point is not repeated.
func Loop[S geom.Scalar, C geom.ParametrizedCurve[S]](f Face[S, C]) []geom.Point[S] {
	pts := make([]geom.Point[S], len(f.Boundary.edges))
	for i, e := range f.Boundary.edges {
		pts[i] = e.Curve.At(0)
	}
	return pts
}
