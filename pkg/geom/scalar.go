package geom

import "golang.org/x/exp/constraints"

// Scalar is a constraint for the numeric types that points, vectors and
// curves can be built over. Integer scalars truncate on division; see
// BoundedLine.Intersection.
type Scalar interface {
	constraints.Integer | constraints.Float
}
