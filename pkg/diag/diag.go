// Package diag renders geometry and topology values as the diagnostic
// strings printed by the command-line driver and the script engine.
// Every function is pure.
package diag

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/chazu/brep/pkg/geom"
	"github.com/chazu/brep/pkg/topo"
)

// Point renders p as "(x, y, z)".
func Point[S geom.Scalar](p geom.Point[S]) string {
	return fmt.Sprintf("(%v, %v, %v)", p.X, p.Y, p.Z)
}

// Vector renders v as "<x, y, z>".
func Vector[S geom.Scalar](v geom.Vector[S]) string {
	return fmt.Sprintf("<%v, %v, %v>", v.X, v.Y, v.Z)
}

// VertexID renders an id as "vid: n".
func VertexID(id topo.VertexID) string { return fmt.Sprintf("vid: %d", id) }

// EdgeID renders an id as "eid: n".
func EdgeID(id topo.EdgeID) string { return fmt.Sprintf("eid: %d", id) }

// FaceID renders an id as "fid: n".
func FaceID(id topo.FaceID) string { return fmt.Sprintf("fid: %d", id) }

// Vertex renders v as "Vertex{id: vid: n, point: (x, y, z)}".
func Vertex[S geom.Scalar](v topo.Vertex[S]) string {
	return fmt.Sprintf("Vertex{id: %s, point: %s}", VertexID(v.ID), Point(v.Point))
}

// BoundedLine renders l by its endpoints.
func BoundedLine[S geom.Scalar](l geom.BoundedLine[S]) string {
	return fmt.Sprintf("BoundedLine{p0: %s, p1: %s}", Point(l.Start()), Point(l.End()))
}

// Edge renders e with its curve: "Edge{eid: n, BoundedLine{...}}".
func Edge[S geom.Scalar](e topo.Edge[S, geom.BoundedLine[S]]) string {
	return fmt.Sprintf("Edge{%s, %s}", EdgeID(e.ID), BoundedLine(e.Curve))
}

// ChordEdge renders e by its vertex ids: "ChordEdge(eid: n, vid0: a, vid1: b)".
// Edges that are not chords render with their id only.
func ChordEdge[S geom.Scalar, C geom.ParametrizedCurve[S]](e topo.Edge[S, C]) string {
	ch, ok := e.Vertices.(topo.Chord)
	if !ok {
		return fmt.Sprintf("ChordEdge(%s)", EdgeID(e.ID))
	}
	return fmt.Sprintf("ChordEdge(%s, vid0: %d, vid1: %d)", EdgeID(e.ID), ch.V0, ch.V1)
}

// EdgeChain renders c as "EdgeChain[eid: a, eid: b, ...]".
func EdgeChain[S geom.Scalar, C geom.ParametrizedCurve[S]](c topo.EdgeChain[S, C]) string {
	return "EdgeChain[" + edgeIDList(c.EdgeIDs()) + "]"
}

// Face renders f as "Face{fid: n, boundary: [eid: a, eid: b, ...]}".
func Face[S geom.Scalar, C geom.ParametrizedCurve[S]](f topo.Face[S, C]) string {
	return fmt.Sprintf("Face{%s, boundary: [%s]}", FaceID(f.ID), edgeIDList(f.Boundary.EdgeIDs()))
}

// Finding renders a validation finding the way ValidationError.Error does.
func Finding(f topo.ValidationError) string {
	return f.Error()
}

// Model renders every vertex, edge and face of m, one per line, in id
// order, followed by any validation findings.
func Model[S geom.Scalar](m *topo.Model[S]) string {
	var b strings.Builder
	for _, v := range m.Vertices() {
		b.WriteString(Vertex(v))
		b.WriteByte('\n')
	}
	for _, e := range m.Edges() {
		b.WriteString(Edge(e))
		b.WriteByte('\n')
	}
	for _, f := range m.Faces() {
		b.WriteString(Face(f))
		b.WriteByte('\n')
	}
	for _, f := range topo.Validate(m) {
		b.WriteString(Finding(f))
		b.WriteByte('\n')
	}
	return b.String()
}

func edgeIDList(ids []topo.EdgeID) string {
	return strings.Join(lo.Map(ids, func(id topo.EdgeID, _ int) string {
		return EdgeID(id)
	}), ", ")
}
