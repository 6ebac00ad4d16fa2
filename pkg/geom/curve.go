package geom

// ParametrizedCurve maps a scalar parameter onto a point in space.
type ParametrizedCurve[S Scalar] interface {
	At(u S) Point[S]
}

// BoundedCurve is a ParametrizedCurve with a finite span that can be
// intersected with another curve of the family C.
type BoundedCurve[S Scalar, C any] interface {
	ParametrizedCurve[S]

	// Intersection returns where the two curves meet within tol, if they do.
	Intersection(other C, tol Tolerance[S]) (Point[S], bool)
}

// Tolerance is an optional absolute distance below which two computed
// points are considered coincident. The zero value is Exact.
type Tolerance[S Scalar] struct {
	dist S
	set  bool
}

// Exact returns a Tolerance that requires computed points to be exactly
// equal. For floating-point scalars this is fragile: rounding in the
// intersection arithmetic can separate points that meet analytically.
func Exact[S Scalar]() Tolerance[S] {
	return Tolerance[S]{}
}

// Within returns a Tolerance accepting points no more than d apart.
func Within[S Scalar](d S) Tolerance[S] {
	return Tolerance[S]{dist: d, set: true}
}

// Distance returns the tolerance distance and whether one was set.
func (t Tolerance[S]) Distance() (S, bool) {
	return t.dist, t.set
}

// Coincident reports whether p and q are the same point under t.
func (t Tolerance[S]) Coincident(p, q Point[S]) bool {
	if !t.set {
		return p == q
	}
	return p.DistSquared(q) <= t.dist*t.dist
}

// planeSlack bounds the rounding error of a point-to-plane offset in
// units of machine epsilon.
const planeSlack = 64

// AcceptsPlaneOffset reports whether a point lies on a plane under t, given
// its unnormalized offset d = n·(p−o), nn = |n|², and mag, the squared
// magnitude of the products d was computed from. Besides the tolerance,
// rounding of order epsilon·√mag is accepted for floating-point scalars,
// so Exact still admits points that are coplanar up to arithmetic error.
// Integer scalars get no slack.
func (t Tolerance[S]) AcceptsPlaneOffset(d, nn, mag S) bool {
	var k S = planeSlack
	r := k * roundoff[S]()
	allowed := r * r * mag
	if t.set {
		allowed += t.dist * t.dist * nn
	}
	return d*d <= allowed
}
