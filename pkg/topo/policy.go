package topo

import (
	"fmt"

	"github.com/chazu/brep/pkg/geom"
)

// VertexMatch decides when two vertices count as the same vertex for the
// distinctness rule of StartEdgeChain.
type VertexMatch int

const (
	// MatchValue treats vertices as the same when both id and point are equal.
	MatchValue VertexMatch = iota
	// MatchID treats vertices as the same when their ids are equal.
	MatchID
	// MatchPoint treats vertices as the same when their ids are equal or
	// their points coincide under the model tolerance.
	MatchPoint
)

func (p VertexMatch) String() string {
	switch p {
	case MatchValue:
		return "value"
	case MatchID:
		return "id"
	case MatchPoint:
		return "point"
	default:
		return fmt.Sprintf("VertexMatch(%d)", int(p))
	}
}

// ParseVertexMatch maps a policy name ("value", "id", "point") to its
// VertexMatch.
func ParseVertexMatch(s string) (VertexMatch, error) {
	switch s {
	case "value":
		return MatchValue, nil
	case "id":
		return MatchID, nil
	case "point":
		return MatchPoint, nil
	default:
		return 0, fmt.Errorf("unknown vertex match policy %q", s)
	}
}

// matches reports whether a and b are the same vertex under policy p.
func matches[S geom.Scalar](p VertexMatch, tol geom.Tolerance[S], a, b Vertex[S]) bool {
	switch p {
	case MatchID:
		return a.ID == b.ID
	case MatchPoint:
		return a.ID == b.ID || tol.Coincident(a.Point, b.Point)
	default:
		return a == b
	}
}
