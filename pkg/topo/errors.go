package topo

import (
	"errors"
	"fmt"
)

// ErrorKind enumerates the geometry-construction failures the model can
// report. The set is closed.
type ErrorKind int

const (
	CannotCreatePlane ErrorKind = iota + 1 // fewer than three distinct or non-collinear vertices
	NonCoplanarPoint                       // a boundary vertex lies off the face plane
	ChainNotClosed                         // last edge does not end where the first begins
	DisconnectedChain                      // consecutive edges do not share a vertex
	DegenerateCurve                        // zero-length chord
)

func (k ErrorKind) String() string {
	switch k {
	case CannotCreatePlane:
		return "cannot-create-plane"
	case NonCoplanarPoint:
		return "non-coplanar-point"
	case ChainNotClosed:
		return "chain-not-closed"
	case DisconnectedChain:
		return "disconnected-chain"
	case DegenerateCurve:
		return "degenerate-curve"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a geometry-construction failure. It is caused by caller input;
// retrying the same call fails the same way.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return "topo: " + e.Message
}

// Is matches any *Error of the same kind, so the sentinels below work with
// errors.Is regardless of the message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinel errors, one per kind.
var (
	ErrCannotCreatePlane = &Error{Kind: CannotCreatePlane, Message: "must provide three distinct vertices to establish a plane"}
	ErrNonCoplanarPoint  = &Error{Kind: NonCoplanarPoint, Message: "vertex does not lie on the plane of the chain"}
	ErrChainNotClosed    = &Error{Kind: ChainNotClosed, Message: "chain does not end at its start vertex"}
	ErrDisconnectedChain = &Error{Kind: DisconnectedChain, Message: "consecutive edges do not share a vertex"}
	ErrDegenerateCurve   = &Error{Kind: DegenerateCurve, Message: "chord has zero length"}
)

// newError returns an error of kind k with a formatted message.
func newError(k ErrorKind, format string, args ...any) error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
