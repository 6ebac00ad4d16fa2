package topo

import (
	"fmt"

	"github.com/chazu/brep/pkg/geom"
)

// ValidationSeverity indicates whether a validation finding marks the model
// as broken or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // model is inconsistent
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Entity   string             // "vid: n", "eid: n" or "fid: n"; empty if model-level
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Entity, e.Message)
}

// ValidationResult separates blocking findings from advisory ones.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// OK reports whether there are no error findings.
func (r ValidationResult) OK() bool { return len(r.Errors) == 0 }

// Split partitions findings by severity, keeping their order.
func Split(findings []ValidationError) ValidationResult {
	var r ValidationResult
	for _, f := range findings {
		if f.Severity == SeverityWarning {
			r.Warnings = append(r.Warnings, f)
		} else {
			r.Errors = append(r.Errors, f)
		}
	}
	return r
}

// Validate runs the structural checks over m and returns every finding.
// An empty slice means the model is consistent. It never mutates m.
//
// Entities built only through m's own operations always pass the error
// checks; errors appear when vertices or chains from elsewhere were fed
// into m.
func Validate[S geom.Scalar](m *Model[S]) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateEdgeVertices(m)...)
	errs = append(errs, validateFaceBoundaries(m)...)
	errs = append(errs, validateDegenerateEdges(m)...)
	errs = append(errs, validateCoincidentVertices(m)...)
	return errs
}

// validateEdgeVertices checks that every edge references vertices of m and
// that its curve runs between their points.
func validateEdgeVertices[S geom.Scalar](m *Model[S]) []ValidationError {
	var errs []ValidationError

	for _, e := range m.edges {
		ch, ok := e.Vertices.(Chord)
		if !ok {
			errs = append(errs, ValidationError{
				Entity:   eidRef(e.ID),
				Message:  fmt.Sprintf("unsupported edge vertices %T", e.Vertices),
				Severity: SeverityError,
			})
			continue
		}

		v0, ok0 := m.Vertex(ch.V0)
		v1, ok1 := m.Vertex(ch.V1)
		if !ok0 {
			errs = append(errs, ValidationError{
				Entity:   eidRef(e.ID),
				Message:  fmt.Sprintf("vertex reference vid: %d does not exist", ch.V0),
				Severity: SeverityError,
			})
		}
		if !ok1 {
			errs = append(errs, ValidationError{
				Entity:   eidRef(e.ID),
				Message:  fmt.Sprintf("vertex reference vid: %d does not exist", ch.V1),
				Severity: SeverityError,
			})
		}
		if !ok0 || !ok1 {
			continue
		}

		// The curve was built as origin p0 and direction p1 - p0, so both
		// compare exactly.
		if e.Curve.Origin() != v0.Point.Vector() || e.Curve.Direction() != v1.Point.Sub(v0.Point) {
			errs = append(errs, ValidationError{
				Entity:   eidRef(e.ID),
				Message:  fmt.Sprintf("curve does not run from vid: %d to vid: %d", ch.V0, ch.V1),
				Severity: SeverityError,
			})
		}
	}

	return errs
}

// validateFaceBoundaries checks that every face boundary is made of edges
// of m and is still connected and closed.
func validateFaceBoundaries[S geom.Scalar](m *Model[S]) []ValidationError {
	var errs []ValidationError

	for _, f := range m.faces {
		for _, e := range f.Boundary.edges {
			stored, ok := m.Edge(e.ID)
			if !ok {
				errs = append(errs, ValidationError{
					Entity:   fidRef(f.ID),
					Message:  fmt.Sprintf("boundary edge eid: %d does not exist", e.ID),
					Severity: SeverityError,
				})
				continue
			}
			if stored != e {
				errs = append(errs, ValidationError{
					Entity:   fidRef(f.ID),
					Message:  fmt.Sprintf("boundary edge eid: %d differs from the stored edge", e.ID),
					Severity: SeverityError,
				})
			}
		}

		if err := checkConnected(f.Boundary); err != nil {
			errs = append(errs, ValidationError{
				Entity:   fidRef(f.ID),
				Message:  err.(*Error).Message,
				Severity: SeverityError,
			})
		} else if !f.Boundary.IsClosed() {
			errs = append(errs, ValidationError{
				Entity:   fidRef(f.ID),
				Message:  "boundary is not closed",
				Severity: SeverityError,
			})
		}
	}

	return errs
}

// validateDegenerateEdges warns about zero-length edges. They are legal to
// create but can never bound a face.
func validateDegenerateEdges[S geom.Scalar](m *Model[S]) []ValidationError {
	var errs []ValidationError
	for _, e := range m.edges {
		if e.Curve.IsDegenerate() {
			errs = append(errs, ValidationError{
				Entity:   eidRef(e.ID),
				Message:  "edge has zero length",
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}

// validateCoincidentVertices warns about distinct vertices sharing a point.
func validateCoincidentVertices[S geom.Scalar](m *Model[S]) []ValidationError {
	var errs []ValidationError

	first := make(map[geom.Point[S]]VertexID)
	for _, v := range m.vertices {
		if id, ok := first[v.Point]; ok {
			errs = append(errs, ValidationError{
				Entity:   vidRef(v.ID),
				Message:  fmt.Sprintf("coincides with vid: %d", id),
				Severity: SeverityWarning,
			})
			continue
		}
		first[v.Point] = v.ID
	}

	return errs
}

func vidRef(id VertexID) string { return fmt.Sprintf("vid: %d", id) }
func eidRef(id EdgeID) string   { return fmt.Sprintf("eid: %d", id) }
func fidRef(id FaceID) string   { return fmt.Sprintf("fid: %d", id) }
