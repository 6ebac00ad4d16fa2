// Package kernel defines the face analysis kernel interface.
// Implementations (sdfx) measure the boundary loop of a planar face:
// its normal, area, perimeter and bounding box. The abstraction lets a
// different numeric backend replace sdfx without touching callers.
package kernel

import (
	"errors"
	"fmt"

	"github.com/chazu/brep/pkg/geom"
	"github.com/chazu/brep/pkg/topo"
)

// ErrDegenerateLoop is returned when a loop encloses no area.
var ErrDegenerateLoop = errors.New("kernel: loop encloses no area")

// Kernel measures closed planar loops given as ordered corner points,
// without repeating the first point at the end.
type Kernel interface {
	// Normal returns the unit normal of the loop, oriented so the corners
	// run counter-clockwise around it.
	Normal(loop []geom.Point[float64]) (geom.Vector[float64], error)

	// Area returns the enclosed area.
	Area(loop []geom.Point[float64]) float64

	// Perimeter returns the total edge length, closing edge included.
	Perimeter(loop []geom.Point[float64]) float64

	// Bounds returns the axis-aligned bounding box of the corners.
	Bounds(loop []geom.Point[float64]) (min, max geom.Point[float64])
}

// Analysis is the measured shape of one face.
type Analysis struct {
	Face      topo.FaceID `json:"face"`
	Corners   int         `json:"corners"`
	Normal    [3]float64  `json:"normal"`
	Area      float64     `json:"area"`
	Perimeter float64     `json:"perimeter"`
	Min       [3]float64  `json:"min"`
	Max       [3]float64  `json:"max"`
}

// Analyze measures f's boundary loop with k.
func Analyze(k Kernel, f topo.Face[float64, geom.BoundedLine[float64]]) (Analysis, error) {
	loop := topo.Loop(f)
	n, err := k.Normal(loop)
	if err != nil {
		return Analysis{}, fmt.Errorf("face %d: %w", f.ID, err)
	}
	lo, hi := k.Bounds(loop)
	return Analysis{
		Face:      f.ID,
		Corners:   len(loop),
		Normal:    [3]float64{n.X, n.Y, n.Z},
		Area:      k.Area(loop),
		Perimeter: k.Perimeter(loop),
		Min:       [3]float64{lo.X, lo.Y, lo.Z},
		Max:       [3]float64{hi.X, hi.Y, hi.Z},
	}, nil
}
