package geom

// Point is a location in 3D space.
type Point[S Scalar] struct {
	X, Y, Z S
}

// Vector is a displacement in 3D space.
type Vector[S Scalar] struct {
	X, Y, Z S
}

// Pt returns the point (x, y, z).
func Pt[S Scalar](x, y, z S) Point[S] {
	return Point[S]{X: x, Y: y, Z: z}
}

// Vec returns the vector (x, y, z).
func Vec[S Scalar](x, y, z S) Vector[S] {
	return Vector[S]{X: x, Y: y, Z: z}
}

// Vector relabels p as the displacement from the origin to p.
func (p Point[S]) Vector() Vector[S] {
	return Vector[S](p)
}

// Add translates p by v.
func (p Point[S]) Add(v Vector[S]) Point[S] {
	return Point[S]{X: p.X + v.X, Y: p.Y + v.Y, Z: p.Z + v.Z}
}

// Sub returns the displacement from q to p.
func (p Point[S]) Sub(q Point[S]) Vector[S] {
	return Vector[S]{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// DistSquared returns the squared distance between p and q.
func (p Point[S]) DistSquared(q Point[S]) S {
	return p.Sub(q).MagSquared()
}

// Point relabels v as the location it reaches from the origin.
func (v Vector[S]) Point() Point[S] {
	return Point[S](v)
}

// Add returns v + w.
func (v Vector[S]) Add(w Vector[S]) Vector[S] {
	return Vector[S]{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Sub returns v - w.
func (v Vector[S]) Sub(w Vector[S]) Vector[S] {
	return Vector[S]{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// Scale multiplies every component of v by s.
func (v Vector[S]) Scale(s S) Vector[S] {
	return Vector[S]{X: s * v.X, Y: s * v.Y, Z: s * v.Z}
}

// Dot returns the dot product of v and w.
func (v Vector[S]) Dot(w Vector[S]) S {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product v × w.
func (v Vector[S]) Cross(w Vector[S]) Vector[S] {
	return Vector[S]{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// MagSquared returns the squared magnitude of v. Callers compare it
// against squared tolerances instead of taking a square root.
func (v Vector[S]) MagSquared() S {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// IsZero reports whether every component of v is zero.
func (v Vector[S]) IsZero() bool {
	var zero Vector[S]
	return v == zero
}
