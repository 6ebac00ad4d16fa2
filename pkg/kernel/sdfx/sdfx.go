// Package sdfx implements the kernel.Kernel interface using the vector
// and box types of the github.com/deadsy/sdfx CAD library.
package sdfx

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/samber/lo"

	"github.com/chazu/brep/pkg/geom"
	"github.com/chazu/brep/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// toVec converts a point to an sdfx vector.
func toVec(p geom.Point[float64]) v3.Vec {
	return v3.Vec{X: p.X, Y: p.Y, Z: p.Z}
}

func toVecs(loop []geom.Point[float64]) []v3.Vec {
	return lo.Map(loop, func(p geom.Point[float64], _ int) v3.Vec { return toVec(p) })
}

// newell returns the Newell normal of the loop: the sum of the cross
// products of consecutive corners. Its length is twice the enclosed area.
func newell(vs []v3.Vec) v3.Vec {
	var n v3.Vec
	for i, v := range vs {
		n = n.Add(v.Cross(vs[(i+1)%len(vs)]))
	}
	return n
}

// Normal returns the unit Newell normal.
func (k *SdfxKernel) Normal(loop []geom.Point[float64]) (geom.Vector[float64], error) {
	n := newell(toVecs(loop))
	if n.Length() == 0 {
		return geom.Vector[float64]{}, kernel.ErrDegenerateLoop
	}
	n = n.Normalize()
	return geom.Vec(n.X, n.Y, n.Z), nil
}

// Area returns half the length of the Newell normal.
func (k *SdfxKernel) Area(loop []geom.Point[float64]) float64 {
	return newell(toVecs(loop)).Length() / 2
}

// Perimeter sums the edge lengths around the loop.
func (k *SdfxKernel) Perimeter(loop []geom.Point[float64]) float64 {
	vs := toVecs(loop)
	var total float64
	for i, v := range vs {
		total += vs[(i+1)%len(vs)].Sub(v).Length()
	}
	return total
}

// Bounds grows an sdf.Box3 around every corner. An empty loop yields a
// zero box at the origin.
func (k *SdfxKernel) Bounds(loop []geom.Point[float64]) (min, max geom.Point[float64]) {
	if len(loop) == 0 {
		return min, max
	}
	vs := toVecs(loop)
	bb := sdf.Box3{Min: vs[0], Max: vs[0]}
	for _, v := range vs[1:] {
		bb = bb.Include(v)
	}
	return geom.Pt(bb.Min.X, bb.Min.Y, bb.Min.Z), geom.Pt(bb.Max.X, bb.Max.Y, bb.Max.Z)
}
