package topo

import "github.com/chazu/brep/pkg/geom"

// StartEdgeChain begins a boundary from three vertices, creating the
// chords v0→v1 and v1→v2. The vertices must be pairwise distinct under the
// model's VertexMatch policy; otherwise no edges are created and the error
// is CannotCreatePlane.
func (m *Model[S]) StartEdgeChain(v0, v1, v2 Vertex[S]) (EdgeChain[S, geom.BoundedLine[S]], error) {
	if m.Same(v0, v1) || m.Same(v1, v2) || m.Same(v0, v2) {
		return EdgeChain[S, geom.BoundedLine[S]]{}, newError(CannotCreatePlane,
			"must provide three distinct vertices to establish a plane (vid: %d, vid: %d, vid: %d)",
			v0.ID, v1.ID, v2.ID)
	}
	e0 := m.MakeChordEdge(v0, v1)
	e1 := m.MakeChordEdge(v1, v2)
	return NewEdgeChain(e0, e1), nil
}

// ExtendEdgeChain returns a new chain with a chord from the chain's
// terminal vertex to v appended. The input chain is not modified. A chord
// shorter than the model tolerance is rejected as degenerate.
func (m *Model[S]) ExtendEdgeChain(chain EdgeChain[S, geom.BoundedLine[S]], v Vertex[S]) (EdgeChain[S, geom.BoundedLine[S]], error) {
	end, ok := chain.End()
	if !ok {
		return chain, newError(DisconnectedChain, "cannot extend an empty chain")
	}
	last, ok := m.Vertex(end)
	if !ok {
		return chain, newError(DisconnectedChain, "chain ends at unknown vertex vid: %d", end)
	}
	if m.tol.Coincident(last.Point, v.Point) {
		return chain, newError(DegenerateCurve, "chord from vid: %d to vid: %d has zero length", last.ID, v.ID)
	}
	return chain.append(m.MakeChordEdge(last, v)), nil
}

// CloseEdgeChain turns a closed, planar chain into a Face with a fresh id.
//
// Checks run in order and the first failure is returned: the chain must
// be non-empty, consecutive edges must share a vertex, the last edge must
// end where the first begins, no chord may have zero length, the boundary
// points must span a plane, and every point must lie on that plane within
// the model tolerance.
func (m *Model[S]) CloseEdgeChain(chain EdgeChain[S, geom.BoundedLine[S]]) (Face[S, geom.BoundedLine[S]], error) {
	var none Face[S, geom.BoundedLine[S]]

	if chain.Len() == 0 {
		return none, newError(ChainNotClosed, "cannot close an empty chain")
	}
	if err := checkConnected(chain); err != nil {
		return none, err
	}
	if !chain.IsClosed() {
		start, _ := chain.Start()
		end, _ := chain.End()
		return none, newError(ChainNotClosed, "chain ends at vid: %d but starts at vid: %d", end, start)
	}
	for _, e := range chain.edges {
		if e.Curve.IsDegenerate() {
			return none, newError(DegenerateCurve, "edge eid: %d has zero length", e.ID)
		}
	}

	pts := make([]geom.Point[S], chain.Len())
	for i, e := range chain.edges {
		pts[i] = e.Curve.Start()
	}
	pl, ok := plane(pts)
	if !ok {
		return none, newError(CannotCreatePlane, "boundary points are collinear")
	}
	nn := pl.normal.MagSquared()
	mag := pl.magnitude()
	for i, p := range pts {
		if pl.defines(i) {
			continue
		}
		if !m.tol.AcceptsPlaneOffset(pl.normal.Dot(p.Sub(pl.origin)), nn, mag) {
			return none, newError(NonCoplanarPoint, "vertex vid: %d does not lie on the plane of the chain",
				chain.edges[i].Initial())
		}
	}

	f := Face[S, geom.BoundedLine[S]]{ID: FaceID(len(m.faces)), Boundary: chain}
	m.faces = append(m.faces, f)
	return f, nil
}

// checkConnected verifies that each edge ends where the next one begins.
func checkConnected[S geom.Scalar, C geom.ParametrizedCurve[S]](chain EdgeChain[S, C]) error {
	for i := 1; i < len(chain.edges); i++ {
		prev, next := chain.edges[i-1], chain.edges[i]
		if prev.Terminal() != next.Initial() {
			return newError(DisconnectedChain, "edge eid: %d ends at vid: %d but edge eid: %d starts at vid: %d",
				prev.ID, prev.Terminal(), next.ID, next.Initial())
		}
	}
	return nil
}

// fittedPlane is a plane through three of a loop's points: the anchor at
// index 0 and the points at axis and span.
type fittedPlane[S geom.Scalar] struct {
	origin     geom.Point[S]
	normal     geom.Vector[S]
	axis, span int

	// Squared lengths of the two sides the normal was built from, and the
	// largest squared magnitude of any point or side.
	axisLen, spanLen, reach S
}

// defines reports whether the point at index i was used to build the plane.
// Such points lie on it by construction.
func (p fittedPlane[S]) defines(i int) bool {
	return i == 0 || i == p.axis || i == p.span
}

// magnitude bounds the squared size of the terms in n·(q−o) for any loop
// point q, which sets the scale of its rounding error.
func (p fittedPlane[S]) magnitude() S {
	return p.axisLen * p.spanLen * p.reach
}

// plane fits a plane through pts. The normal is taken from the
// best-conditioned triangle anchored at pts[0]: the farthest point from
// the anchor, then the point giving the largest cross product with it. ok
// is false when the points are collinear.
func plane[S geom.Scalar](pts []geom.Point[S]) (pl fittedPlane[S], ok bool) {
	if len(pts) < 3 {
		return pl, false
	}
	pl.origin = pts[0]

	var axis geom.Vector[S]
	for i, p := range pts {
		pl.reach = max(pl.reach, p.Vector().MagSquared())
		if d := p.Sub(pl.origin); d.MagSquared() > axis.MagSquared() {
			axis, pl.axis = d, i
		}
	}
	if axis.IsZero() {
		return pl, false
	}
	pl.axisLen = axis.MagSquared()
	pl.reach = max(pl.reach, pl.axisLen)

	for i, p := range pts[1:] {
		side := p.Sub(pl.origin)
		if n := axis.Cross(side); n.MagSquared() > pl.normal.MagSquared() {
			pl.normal, pl.span, pl.spanLen = n, i+1, side.MagSquared()
		}
	}
	return pl, !pl.normal.IsZero()
}
