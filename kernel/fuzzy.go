package kernel

import (
	"github.com/rajeeja/tempestremap/s1"
	"github.com/rajeeja/tempestremap/sphere"
)

// fuzzyKernel is the default Geometry Kernel variant: node equality uses
// the looser HighTolerance, tolerant of the small inconsistencies real mesh
// data accumulates. Its orientation predicates are the same RobustCCW-based
// ones the exact variant uses, including the exact-arithmetic fallback when
// a float64 determinant is ambiguous. Grounded on spec.md §4.1's Fuzzy
// Geometry Kernel and on Defines.h's HighTolerance constant.
type fuzzyKernel struct {
	tol float64
}

func (k fuzzyKernel) AreNodesEqual(a, b Node) bool {
	return s1.Angle(a.Angle(b)).Radians() <= k.tol
}

func (k fuzzyKernel) Tolerance() float64 { return k.tol }

func (k fuzzyKernel) CalculateEdgeIntersections(
	a0, a1 Node, aType sphere.EdgeType,
	b0, b1 Node, bType sphere.EdgeType,
	last *Node,
) ([]Node, bool) {
	return calculateEdgeIntersections(a0, a1, aType, b0, b1, bType, last, k.AreNodesEqual)
}
