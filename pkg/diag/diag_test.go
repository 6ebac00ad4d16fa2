package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/brep/pkg/geom"
	"github.com/chazu/brep/pkg/topo"
)

func TestPointAndVector(t *testing.T) {
	assert.Equal(t, "(10, 20, 30)", Point(geom.Pt(10, 20, 30)))
	assert.Equal(t, "(7.5, 10, -0.25)", Point(geom.Pt(7.5, 10, -0.25)))
	assert.Equal(t, "<1, 0, -1>", Vector(geom.Vec(1, 0, -1)))
}

func TestVertex(t *testing.T) {
	m := topo.New[int]()
	m.MakeVertex(geom.Pt(0, 0, 0))
	v := m.MakeVertex(geom.Pt(10, 20, 30))

	assert.Equal(t, "Vertex{id: vid: 1, point: (10, 20, 30)}", Vertex(v))
}

func TestBoundedLine(t *testing.T) {
	l := geom.NewBoundedLine(geom.Pt(10, 20, 30), geom.Pt(40, 50, 60))
	assert.Equal(t, "BoundedLine{p0: (10, 20, 30), p1: (40, 50, 60)}", BoundedLine(l))
}

func TestEdges(t *testing.T) {
	m := topo.New[int]()
	v0 := m.MakeVertex(geom.Pt(10, 20, 30))
	v1 := m.MakeVertex(geom.Pt(40, 50, 60))
	e := m.MakeChordEdge(v0, v1)

	assert.Equal(t, "Edge{eid: 0, BoundedLine{p0: (10, 20, 30), p1: (40, 50, 60)}}", Edge(e))
	assert.Equal(t, "ChordEdge(eid: 0, vid0: 0, vid1: 1)", ChordEdge(e))
}

func TestChainAndFace(t *testing.T) {
	m := topo.New[int]()
	a := m.MakeVertex(geom.Pt(0, 0, 0))
	b := m.MakeVertex(geom.Pt(1, 0, 0))
	c := m.MakeVertex(geom.Pt(0, 1, 0))

	chain, err := m.StartEdgeChain(a, b, c)
	require.NoError(t, err)
	assert.Equal(t, "EdgeChain[eid: 0, eid: 1]", EdgeChain(chain))

	chain, err = m.ExtendEdgeChain(chain, a)
	require.NoError(t, err)
	f, err := m.CloseEdgeChain(chain)
	require.NoError(t, err)
	assert.Equal(t, "Face{fid: 0, boundary: [eid: 0, eid: 1, eid: 2]}", Face(f))
}

func TestEmptyChain(t *testing.T) {
	assert.Equal(t, "EdgeChain[]", EdgeChain(topo.NewEdgeChain[float64, geom.BoundedLine[float64]]()))
}

func TestModel(t *testing.T) {
	m := topo.New[int]()
	a := m.MakeVertex(geom.Pt(0, 0, 0))
	m.MakeVertex(geom.Pt(0, 0, 0))
	m.MakeChordEdge(a, a)

	want := "Vertex{id: vid: 0, point: (0, 0, 0)}\n" +
		"Vertex{id: vid: 1, point: (0, 0, 0)}\n" +
		"Edge{eid: 0, BoundedLine{p0: (0, 0, 0), p1: (0, 0, 0)}}\n" +
		"[warning] eid: 0: edge has zero length\n" +
		"[warning] vid: 1: coincides with vid: 0\n"
	assert.Equal(t, want, Model(m))
}
