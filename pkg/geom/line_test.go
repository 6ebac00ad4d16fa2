package geom

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundedLineEndpoints(t *testing.T) {
	p0 := Pt(10, 20, 30)
	p1 := Pt(40, 50, 60)
	l := NewBoundedLine(p0, p1)

	assert.Equal(t, p0, l.At(0))
	assert.Equal(t, p1, l.At(1))
	assert.Equal(t, p0, l.Start())
	assert.Equal(t, p1, l.End())
	assert.Equal(t, Vec(30, 30, 30), l.Direction())
	assert.Equal(t, 2700, l.LengthSquared())
	assert.False(t, l.IsDegenerate())
}

func TestBoundedLineEndpointsFloat(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 200; i++ {
		p0 := Pt(float64(rng.IntN(2000)-1000), float64(rng.IntN(2000)-1000), float64(rng.IntN(2000)-1000))
		p1 := Pt(float64(rng.IntN(2000)-1000), float64(rng.IntN(2000)-1000), float64(rng.IntN(2000)-1000))
		l := NewBoundedLine(p0, p1)
		require.Equal(t, p0, l.At(0))
		require.Equal(t, p1, l.At(1))
	}
}

func TestBoundedLineMidpoint(t *testing.T) {
	l := NewBoundedLine(Pt(0.0, 0, 0), Pt(4.0, -2, 8))
	assert.Equal(t, Pt(2.0, -1, 4), l.At(0.5))
}

func TestDegenerateLine(t *testing.T) {
	p := Pt(1.0, 1, 1)
	l := NewBoundedLine(p, p)
	assert.True(t, l.IsDegenerate())
	assert.Equal(t, p, l.At(0))
	assert.Equal(t, p, l.At(1))

	other := NewBoundedLine(Pt(0.0, 0, 0), Pt(2.0, 2, 2))
	_, ok := l.Intersection(other, Within(1.0))
	assert.False(t, ok, "degenerate receiver")
	_, ok = other.Intersection(l, Within(1.0))
	assert.False(t, ok, "degenerate argument")
}

func TestIntersectionCrossingSegments(t *testing.T) {
	l0 := NewBoundedLine(Pt(5.0, 10, 30), Pt(15.0, 10, 30))
	l1 := NewBoundedLine(Pt(5.0, 10, 20), Pt(10.0, 10, 40))

	p, ok := l0.Intersection(l1, Exact[float64]())
	require.True(t, ok)
	assert.Equal(t, Pt(7.5, 10, 30), p)

	// The reverse order computes inexact parameters, so it needs a tolerance.
	p, ok = l1.Intersection(l0, Within(1e-9))
	require.True(t, ok)
	assert.InDelta(t, 7.5, p.X, 1e-9)
	assert.InDelta(t, 10, p.Y, 1e-9)
	assert.InDelta(t, 30, p.Z, 1e-9)
}

func TestIntersectionCrossingSegmentsInteger(t *testing.T) {
	// Integer division truncates the closest-approach parameters to zero,
	// so the candidates are the two origins, which do not coincide.
	l0 := NewBoundedLine(Pt(5, 10, 30), Pt(15, 10, 30))
	l1 := NewBoundedLine(Pt(5, 10, 20), Pt(10, 10, 40))

	_, ok := l0.Intersection(l1, Exact[int]())
	assert.False(t, ok)
}

func TestIntersectionIntegerWholeParameters(t *testing.T) {
	// Segments that meet at an endpoint have whole-number parameters.
	l0 := NewBoundedLine(Pt(0, 0, 0), Pt(4, 0, 0))
	l1 := NewBoundedLine(Pt(4, 0, 0), Pt(4, 4, 0))

	p, ok := l0.Intersection(l1, Exact[int]())
	require.True(t, ok)
	assert.Equal(t, Pt(4, 0, 0), p)
}

func TestIntersectionOutsideSegment(t *testing.T) {
	tests := []struct {
		name   string
		l0, l1 BoundedLine[float64]
	}{
		{
			name: "beyond end of receiver",
			l0:   NewBoundedLine(Pt(0.0, 0, 0), Pt(1.0, 0, 0)),
			l1:   NewBoundedLine(Pt(2.0, -1, 0), Pt(2.0, 1, 0)),
		},
		{
			name: "before start of receiver",
			l0:   NewBoundedLine(Pt(0.0, 0, 0), Pt(1.0, 0, 0)),
			l1:   NewBoundedLine(Pt(-0.5, -1, 0), Pt(-0.5, 1, 0)),
		},
		{
			name: "before start of argument",
			l0:   NewBoundedLine(Pt(-1.0, 0, 0), Pt(1.0, 0, 0)),
			l1:   NewBoundedLine(Pt(0.0, 1, 0), Pt(0.0, 3, 0)),
		},
		{
			name: "beyond end of argument",
			l0:   NewBoundedLine(Pt(-1.0, 0, 0), Pt(1.0, 0, 0)),
			l1:   NewBoundedLine(Pt(0.0, -3, 0), Pt(0.0, -0.5, 0)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := tt.l0.Intersection(tt.l1, Within(1e-9))
			assert.False(t, ok)
		})
	}
}

func TestIntersectionParallel(t *testing.T) {
	tolerances := []Tolerance[float64]{Exact[float64](), Within(0.5), Within(10.0), Within(1e9)}

	l0 := NewBoundedLine(Pt(0.0, 0, 0), Pt(10.0, 0, 0))
	l1 := NewBoundedLine(Pt(2.0, 1, 0), Pt(8.0, 1, 0))
	for _, tol := range tolerances {
		_, ok := l0.Intersection(l1, tol)
		assert.False(t, ok)
		_, ok = l1.Intersection(l0, tol)
		assert.False(t, ok)
	}
}

func TestIntersectionParallelRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	scales := []float64{2, -1, 0.5, 1.0 / 3, 7.25}

	for i := 0; i < 500; i++ {
		d0 := randomVec(rng, 10)
		if d0.MagSquared() < 1e-6 {
			continue
		}
		offset := d0.Cross(randomVec(rng, 10))
		if offset.MagSquared() < 1e-6 {
			continue
		}
		o0 := randomVec(rng, 100).Point()
		o1 := o0.Add(offset)
		d1 := d0.Scale(scales[i%len(scales)])

		l0 := NewBoundedLine(o0, o0.Add(d0))
		l1 := NewBoundedLine(o1, o1.Add(d1))
		for _, tol := range []Tolerance[float64]{Exact[float64](), Within(1e12)} {
			_, ok := l0.Intersection(l1, tol)
			require.False(t, ok, "iteration %d", i)
		}
	}
}

func TestIntersectionToleranceWidening(t *testing.T) {
	// Skew segments whose closest approach is exactly 3 apart.
	l0 := NewBoundedLine(Pt(0.0, 0, 0), Pt(10.0, 0, 0))
	l1 := NewBoundedLine(Pt(5.0, -5, 3), Pt(5.0, 5, 3))

	_, ok := l0.Intersection(l1, Exact[float64]())
	assert.False(t, ok)
	_, ok = l0.Intersection(l1, Within(2.999))
	assert.False(t, ok)

	p, ok := l0.Intersection(l1, Within(3.0))
	require.True(t, ok)
	assert.Equal(t, Pt(5.0, 0, 0), p)

	p, ok = l1.Intersection(l0, Within(3.5))
	require.True(t, ok)
	assert.Equal(t, Pt(5.0, 0, 3), p)
}

func TestIntersectionToleranceMonotonic(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))

	for i := 0; i < 500; i++ {
		d0 := randomVec(rng, 10)
		d1 := randomVec(rng, 10)
		if d0.MagSquared() < 1 || d1.MagSquared() < 1 {
			continue
		}
		// Keep the segments well away from parallel.
		n := d0.Cross(d1)
		if n.MagSquared() < 0.25*d0.MagSquared()*d1.MagSquared() {
			continue
		}
		n = n.Scale(1 / math.Sqrt(n.MagSquared()))
		gap := 0.01 + rng.Float64()*5

		// Both segments pass near meet; l1 is lifted off l0's line by gap.
		meet := randomVec(rng, 10).Point()
		s0 := 0.1 + 0.8*rng.Float64()
		s1 := 0.1 + 0.8*rng.Float64()
		start0 := meet.Add(d0.Scale(-s0))
		start1 := meet.Add(d1.Scale(-s1)).Add(n.Scale(gap))

		l0 := NewBoundedLine(start0, start0.Add(d0))
		l1 := NewBoundedLine(start1, start1.Add(d1))

		_, ok := l0.Intersection(l1, Within(gap*(1+1e-6)))
		require.True(t, ok, "iteration %d: tolerance above gap %v", i, gap)
		_, ok = l0.Intersection(l1, Within(gap*(1-1e-6)))
		require.False(t, ok, "iteration %d: tolerance below gap %v", i, gap)
	}
}

func TestToleranceCoincident(t *testing.T) {
	p := Pt(0.0, 0, 0)
	q := Pt(3.0, 4, 0)

	assert.True(t, Exact[float64]().Coincident(p, p))
	assert.False(t, Exact[float64]().Coincident(p, q))
	assert.True(t, Within(5.0).Coincident(p, q))
	assert.False(t, Within(4.99).Coincident(p, q))

	nan := Pt(math.NaN(), 0, 0)
	assert.False(t, Within(math.Inf(1)).Coincident(nan, p))

	d, ok := Within(2.5).Distance()
	assert.True(t, ok)
	assert.Equal(t, 2.5, d)
	_, ok = Exact[int]().Distance()
	assert.False(t, ok)
}

func TestToleranceAcceptsPlaneOffset(t *testing.T) {
	// Integers get no rounding slack.
	assert.True(t, Exact[int]().AcceptsPlaneOffset(0, 100, 1000))
	assert.False(t, Exact[int]().AcceptsPlaneOffset(1, 100, 1000))
	assert.True(t, Within(2).AcceptsPlaneOffset(20, 100, 1000))
	assert.False(t, Within(2).AcceptsPlaneOffset(21, 100, 1000))

	// Floats accept offsets of order epsilon·|n|·√scale, nothing larger.
	eps := roundoff[float64]()
	assert.True(t, Exact[float64]().AcceptsPlaneOffset(3*eps, 4, 9))
	assert.False(t, Exact[float64]().AcceptsPlaneOffset(1e-9, 4, 9))
	assert.True(t, Within(0.5).AcceptsPlaneOffset(0.9, 4, 9))
	assert.False(t, Within(0.5).AcceptsPlaneOffset(1.1, 4, 9))
	assert.False(t, Within(0.5).AcceptsPlaneOffset(math.NaN(), 4, 9))
}

func randomVec(rng *rand.Rand, scale float64) Vector[float64] {
	return Vec(
		(rng.Float64()*2-1)*scale,
		(rng.Float64()*2-1)*scale,
		(rng.Float64()*2-1)*scale,
	)
}
