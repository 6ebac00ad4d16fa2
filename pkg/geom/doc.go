// Package geom provides the generic point/vector algebra and the
// parametrized-curve abstraction underneath the topology model.
// Every type is parametrized over a numeric Scalar, and distance
// comparisons stay in squared form so that no square root is needed.
package geom
