package kernel

import (
	"github.com/rajeeja/tempestremap/r3"
)

// maxDetError bounds the floating-point error in a CCW determinant
// computation; below this magnitude the sign can't be trusted and
// RobustCCW falls back to ExpensiveCCW, whichever kernel variant is in
// use. Ported from the teacher's
// point.go (14 * 2**-54).
const maxDetError = 0.8e-15

// CCW returns true if a, b, c are strictly counter-clockwise (interior to
// the left) and false if clockwise or collinear. Ported from point.go's
// CCW (itself s2's "SimpleCCW").
func CCW(a, b, c Node) bool {
	return c.Cross(a).Dot(b) > 0
}

// PointCross returns a vector orthogonal to both a and b, more robust near
// a == b or a == -b than a plain cross product. Ported from point.go's
// PointCross ("RobustCrossProd" in the C++ original this was distilled
// from).
func PointCross(a, b Node) Node {
	x := a.Add(b).Cross(b.Sub(a))
	if x.ApproxEqual(r3.Vector{}) {
		return a.Ortho()
	}
	return x.Normalize()
}

// TriageCCW returns the sign of the CCW determinant of a, b, c if it can
// be trusted at floating-point precision, or 0 if the result is too close
// to call. aCrossB is a.Cross(b), passed in because callers (EdgeCrosser)
// often already have it.
func TriageCCW(a, b, c, aCrossB Node) int {
	det := aCrossB.Dot(c)
	if det > maxDetError {
		return 1
	}
	if det < -maxDetError {
		return -1
	}
	return 0
}

// RobustCCW returns the exact sign of the determinant of a, b, c (+1, -1,
// or 0 only if two of the points coincide), triaging at floating-point
// precision and falling back to exact arithmetic plus symbolic
// perturbation when necessary. Ported from point.go's RobustCCW/RobustCCW2.
func RobustCCW(a, b, c Node) int {
	return robustCCW2(a, b, c, a.Cross(b))
}

func robustCCW2(a, b, c, aCrossB Node) int {
	ccw := TriageCCW(a, b, c, aCrossB)
	if ccw == 0 {
		ccw = ExpensiveCCW(a, b, c)
	}
	return ccw
}

// ExpensiveCCW resolves the sign of the determinant of a, b, c using
// exact-arithmetic multiplication when the three points are known to be
// distinct but floating-point precision couldn't resolve the sign.
// Ported from point.go's ExpensiveCCW.
func ExpensiveCCW(a, b, c Node) int {
	if a == b || b == c || c == a {
		return 0
	}
	permSign := 1
	pa, pb, pc := a, b, c
	if pa.GTE(pb) {
		pa, pb = pb, pa
		permSign = -permSign
	}
	if pb.GTE(pc) {
		pb, pc = pc, pb
		permSign = -permSign
	}
	if pa.GTE(pb) {
		pa, pb = pb, pa
		permSign = -permSign
	}

	xa := r3.VectorXFFromVector(pa)
	xb := r3.VectorXFFromVector(pb)
	xc := r3.VectorXFFromVector(pc)
	xbCrossXc := xb.CrossProd(xc)
	det := xa.DotProd(xbCrossXc)

	detSign := det.Sgn()
	if detSign == 0 {
		detSign = SymbolicallyPerturbedCCW(xa, xb, xc, xbCrossXc)
	}
	return permSign * detSign
}

// SymbolicallyPerturbedCCW resolves the sign of a determinant that is
// exactly zero by perturbing each coordinate by an infinitesimal amount
// whose relative magnitudes are fixed by lexicographic position, following
// "Simulation of Simplicity" (Edelsbrunner & Muecke 1990). Ported
// line-for-line from point.go's SymbolicallyPerturbedCCW; a, b, c must be
// sorted in lexicographically increasing order (a < b < c) and distinct.
func SymbolicallyPerturbedCCW(a, b, c, bCrossC r3.VectorXF) int {
	if s := bCrossC.Z.Sgn(); s != 0 {
		return s
	}
	if s := bCrossC.Y.Sgn(); s != 0 {
		return s
	}
	if s := bCrossC.X.Sgn(); s != 0 {
		return s
	}

	first := c.X.Mul(a.Y)
	second := c.Y.Mul(a.X)
	if s := first.Sub(second).Sgn(); s != 0 {
		return s
	}
	if s := c.X.Sgn(); s != 0 {
		return s
	}
	if s := -(c.Y.Sgn()); s != 0 {
		return s
	}

	first = c.Z.Mul(a.X)
	second = c.X.Mul(a.Z)
	if s := first.Sub(second).Sgn(); s != 0 {
		return s
	}
	if s := c.Z.Sgn(); s != 0 {
		return s
	}

	first = a.X.Mul(b.Y)
	second = a.Y.Mul(b.X)
	if s := first.Sub(second).Sgn(); s != 0 {
		return s
	}
	if s := -(b.X.Sgn()); s != 0 {
		return s
	}
	if s := b.Y.Sgn(); s != 0 {
		return s
	}
	if s := a.X.Sgn(); s != 0 {
		return s
	}
	return 1
}

// OrderedCCW reports whether, going counter-clockwise around axis o, the
// vertices appear in the order a, b, c (allowing a==b or b==c). Ported from
// point.go's OrderedCCW; it is the single place "which side of a shared
// vertex" decisions get made, matching spec.md §4.3's orientation note.
func OrderedCCW(a, b, c, o Node) bool {
	sum := 0
	if RobustCCW(b, o, a) >= 0 {
		sum++
	}
	if RobustCCW(c, o, b) >= 0 {
		sum++
	}
	if RobustCCW(a, o, c) > 0 {
		sum++
	}
	return sum >= 2
}
