package geom

// Compile-time interface check.
var _ BoundedCurve[float64, BoundedLine[float64]] = BoundedLine[float64]{}

// BoundedLine is the straight segment between two points, stored as an
// origin and a direction so that At(0) is the start and At(1) the end.
type BoundedLine[S Scalar] struct {
	origin Vector[S]
	dir    Vector[S]
}

// NewBoundedLine returns the segment from p0 to p1. Coincident points
// yield a degenerate, zero-length line.
func NewBoundedLine[S Scalar](p0, p1 Point[S]) BoundedLine[S] {
	origin := p0.Vector()
	return BoundedLine[S]{origin: origin, dir: p1.Vector().Sub(origin)}
}

// At evaluates the line at parameter u: origin + u·direction.
func (l BoundedLine[S]) At(u S) Point[S] {
	return l.origin.Add(l.dir.Scale(u)).Point()
}

// Start returns the point at u = 0.
func (l BoundedLine[S]) Start() Point[S] {
	return l.origin.Point()
}

// End returns the point at u = 1.
func (l BoundedLine[S]) End() Point[S] {
	return l.origin.Add(l.dir).Point()
}

// Origin returns the line's origin as a vector.
func (l BoundedLine[S]) Origin() Vector[S] {
	return l.origin
}

// Direction returns End - Start.
func (l BoundedLine[S]) Direction() Vector[S] {
	return l.dir
}

// LengthSquared returns the squared length of the segment.
func (l BoundedLine[S]) LengthSquared() S {
	return l.dir.MagSquared()
}

// IsDegenerate reports whether the segment has zero length.
func (l BoundedLine[S]) IsDegenerate() bool {
	return l.dir.IsZero()
}

// Intersection returns the point where l and other meet, if any.
//
// The closest-approach parameters of the two infinite lines are solved in
// closed form: t on l and u on other. The candidate points l.At(t) and
// other.At(u) must be coincident under tol and each must lie on its own
// segment. Parallel and degenerate lines never intersect.
//
// With integer scalars every division truncates, so the parameters are
// only exact when the true values are whole numbers.
func (l BoundedLine[S]) Intersection(other BoundedLine[S], tol Tolerance[S]) (Point[S], bool) {
	var none Point[S]

	d0, d1 := l.dir, other.dir
	m := d0.MagSquared()
	if m == 0 || Parallel(d0, d1) {
		return none, false
	}

	w := other.origin.Sub(l.origin)
	a := d0.Dot(w) / m
	b := d0.Dot(d1) / m

	// c is the component of d1 perpendicular to d0, negated. It vanishes
	// when the lines are parallel.
	c := d0.Scale(b).Sub(d1)
	cc := c.MagSquared()
	if cc == 0 {
		return none, false
	}

	u := c.Dot(w.Sub(d0.Scale(a))) / cc
	t := a + u*b

	p0 := l.At(t)
	p1 := other.At(u)

	// Comparisons are written so that NaN fails them.
	if !tol.Coincident(p0, p1) {
		return none, false
	}
	if !l.spans(p0) || !other.spans(p1) {
		return none, false
	}
	return p0, true
}

// Parallel reports whether v and w point along the same or opposite
// directions, or either is zero. For floating-point scalars the test
// allows for rounding: sin²θ up to one machine epsilon counts as parallel.
// Integer scalars are compared exactly.
func Parallel[S Scalar](v, w Vector[S]) bool {
	cross := v.Cross(w).MagSquared()
	if cross == 0 {
		return true
	}
	return cross <= roundoff[S]()*v.MagSquared()*w.MagSquared()
}

// roundoff returns the machine epsilon of S, or zero for integer types.
func roundoff[S Scalar]() S {
	var one, two S = 1, 2
	if one/two == 0 {
		return 0
	}
	e := one
	for one+e/two != one {
		e /= two
	}
	return e
}

// spans reports whether a point on l's infinite line lies within the
// segment: no farther from the origin than the segment length, and on
// the forward side of the origin.
func (l BoundedLine[S]) spans(p Point[S]) bool {
	off := p.Vector().Sub(l.origin)
	if !(off.MagSquared() <= l.dir.MagSquared()) {
		return false
	}
	return off.Dot(l.dir) >= 0
}
