package kernel

import (
	"github.com/rajeeja/tempestremap/s1"
	"github.com/rajeeja/tempestremap/sphere"
)

// exactKernel is the Geometry Kernel variant that tightens node equality to
// Defines.h's ReferenceTolerance rather than HighTolerance, and leans on
// ExpensiveCCW/SymbolicallyPerturbedCCW (already invoked by every RobustCCW
// call in the ccw.go and intersect.go predicates) any time a float64
// determinant is ambiguous, instead of accepting the float triage result.
// Grounded on spec.md §4.1's Exact Geometry Kernel and the original's
// EXACTARITHMETIC build flag in Defines.h.
type exactKernel struct {
	tol float64
}

func (k exactKernel) AreNodesEqual(a, b Node) bool {
	if a == b {
		return true
	}
	return s1.Angle(a.Angle(b)).Radians() <= k.tol
}

func (k exactKernel) Tolerance() float64 { return k.tol }

func (k exactKernel) CalculateEdgeIntersections(
	a0, a1 Node, aType sphere.EdgeType,
	b0, b1 Node, bType sphere.EdgeType,
	last *Node,
) ([]Node, bool) {
	return calculateEdgeIntersections(a0, a1, aType, b0, b1, bType, last, k.AreNodesEqual)
}
