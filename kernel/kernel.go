// Package kernel implements the Geometry Kernel: the node-equality and
// edge-intersection predicates the Path Tracer is parameterized over,
// in both a tolerance-based Fuzzy variant and an exact-arithmetic Exact
// variant, matching spec.md §4.1/§9. It is the direct port of the
// teacher's point.go (CCW family) and edgeutil.go (EdgeCrosser,
// GetIntersection, VertexCrossing) from a single always-great-circle Point
// type onto spec.md's two-EdgeType Edge model.
package kernel

import "github.com/rajeeja/tempestremap/sphere"

// Variant selects which Geometry Kernel implementation a Mesh Queries /
// Path Tracer call uses.
type Variant int

const (
	Fuzzy Variant = iota
	Exact
)

func (v Variant) String() string {
	if v == Exact {
		return "Exact"
	}
	return "Fuzzy"
}

// Default tolerances, named exactly as in spec.md §6/original_source's
// Defines.h.
const (
	HighTolerance      = 1.0e-10
	ReferenceTolerance = 1.0e-12
)

// Kernel is the trait both Geometry Kernel variants implement.
type Kernel interface {
	// AreNodesEqual reports whether a and b represent the same point on
	// the sphere, within the kernel's own notion of tolerance.
	AreNodesEqual(a, b Node) bool

	// CalculateEdgeIntersections returns every intersection point of edge
	// A (a0->a1, type aType) with edge B (b0->b1, type bType) that lies
	// within both arcs (inclusive of endpoints), excluding any point
	// equal (under AreNodesEqual) to last. coincident is true iff A and B
	// lie on the same circle and overlap over a positive-measure segment,
	// in which case intersections is always empty and the caller must
	// fail fast (spec.md's coincident-edge Non-goal).
	CalculateEdgeIntersections(
		a0, a1 Node, aType sphere.EdgeType,
		b0, b1 Node, bType sphere.EdgeType,
		last *Node,
	) (intersections []Node, coincident bool)

	// Tolerance returns the angular tolerance (radians) this kernel
	// instance treats two nodes as equal within. Exposed so callers
	// outside the kernel (query's candidate-face widening) stay in sync
	// with whatever tolerance the chosen kernel was actually built with,
	// rather than reaching past it for the package default.
	Tolerance() float64
}

// New returns the Kernel implementation for the requested Variant, using
// the package's default tolerances. Equivalent to
// NewWithTolerances(v, HighTolerance, ReferenceTolerance).
func New(v Variant) Kernel {
	return NewWithTolerances(v, HighTolerance, ReferenceTolerance)
}

// NewWithTolerances returns the Kernel implementation for the requested
// Variant, overriding the package-default HighTolerance/ReferenceTolerance
// with the given values. This is spec.md §6's "Tolerances are
// configurable" requirement; overlap.Options.WithHighTolerance/
// WithReferenceTolerance are the caller-facing setters that reach this.
func NewWithTolerances(v Variant, highTolerance, referenceTolerance float64) Kernel {
	if v == Exact {
		return exactKernel{tol: referenceTolerance}
	}
	return fuzzyKernel{tol: highTolerance}
}
