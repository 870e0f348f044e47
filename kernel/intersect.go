package kernel

import (
	"math"

	"github.com/rajeeja/tempestremap/r3"
	"github.com/rajeeja/tempestremap/sphere"
)

// EdgeCrosser efficiently tests a chain of edges b0->d0->d1->d2->... against
// a fixed edge a0->a1, reusing the orientation of the previous triangle.
// Ported from edgeutil.go's EdgeCrosser. calculateEdgeIntersections does
// not use it; great-circle crossings go through GreatCircleIntersection.
type EdgeCrosser struct {
	a, b    Node
	aCrossB Node
	c       Node
	acb     int
}

func NewEdgeCrosser(a, b, c Node) *EdgeCrosser {
	e := &EdgeCrosser{a: a, b: b, aCrossB: a.Cross(b)}
	e.RestartAt(c)
	return e
}

func (e *EdgeCrosser) RestartAt(c Node) {
	e.c = c
	e.acb = -robustCCW2(e.a, e.b, e.c, e.aCrossB)
}

// RobustCrossing returns +1 if edges AB and CD (where C is the crosser's
// current vertex) properly cross, -1 if they don't, and 0 if some vertex
// is shared (the crossing is ambiguous without VertexCrossing).
func (e *EdgeCrosser) RobustCrossing(d Node) int {
	bda := robustCCW2(e.a, e.b, d, e.aCrossB)
	var result int
	if bda == -e.acb && bda != 0 {
		result = -1
	} else if (bda & e.acb) == 0 {
		result = 0
	} else {
		result = e.robustCrossingInternal(d)
	}
	e.c = d
	e.acb = -bda
	return result
}

func (e *EdgeCrosser) robustCrossingInternal(d Node) int {
	cCrossD := e.c.Cross(d)
	cbd := -robustCCW2(e.c, d, e.b, cCrossD)
	if cbd != e.acb {
		return -1
	}
	dac := robustCCW2(e.c, d, e.a, cCrossD)
	if dac == e.acb {
		return 1
	}
	return -1
}

// VertexCrossing decides, for the degenerate case where AB and CD share a
// vertex, whether that constitutes a crossing. Ported from edgeutil.go's
// VertexCrossing.
func VertexCrossing(a, b, c, d Node) bool {
	if a == b || c == d {
		return false
	}
	if a == d {
		return OrderedCCW(a.Ortho(), c, b, a)
	}
	if b == c {
		return OrderedCCW(b.Ortho(), d, a, b)
	}
	if a == c {
		return OrderedCCW(a.Ortho(), d, b, a)
	}
	if b == d {
		return OrderedCCW(b.Ortho(), c, a, b)
	}
	return false
}

// GreatCircleIntersection returns the unique intersection of the full great
// circles through (a0,a1) and (b0,b1) that lies closest to all four input
// points, disambiguating between the two antipodal candidates. Ported from
// edgeutil.go's GetIntersection.
func GreatCircleIntersection(a0, a1, b0, b1 Node) Node {
	aNorm := PointCross(a0, a1).Normalize()
	bNorm := PointCross(b0, b1).Normalize()
	x := PointCross(aNorm, bNorm).Normalize()
	if x.Dot(a0.Add(a1).Add(b0).Add(b1)) < 0 {
		x = x.Mul(-1)
	}
	if OrderedCCW(a0, x, a1, aNorm) && OrderedCCW(b0, x, b1, bNorm) {
		return x
	}
	dmin2 := 10.0
	vmin := x
	replace := func(y Node) {
		d2 := x.Sub(y).Norm2()
		if d2 < dmin2 || (d2 == dmin2 && y.LessThan(vmin)) {
			dmin2 = d2
			vmin = y
		}
	}
	if OrderedCCW(b0, a0, b1, bNorm) {
		replace(a0)
	}
	if OrderedCCW(b0, a1, b1, bNorm) {
		replace(a1)
	}
	if OrderedCCW(a0, b0, a1, aNorm) {
		replace(b0)
	}
	if OrderedCCW(a0, b1, a1, aNorm) {
		replace(b1)
	}
	return vmin
}

// GetDistanceFraction returns the fraction of the distance from a0 to a1
// (along the great-circle arc between them) at which x lies. Ported from
// edgeutil.go; nothing else in this module calls it.
func GetDistanceFraction(x, a0, a1 Node) float64 {
	d0 := a0.Angle(x)
	d1 := x.Angle(a1)
	if d0+d1 == 0 {
		return 0
	}
	return d0 / (d0 + d1)
}

// OnArc reports whether p lies on the arc v0->v1 of the given type,
// inclusive of endpoints. Exposed for the query package's node/edge
// classification, which needs the same membership test
// CalculateEdgeIntersections uses internally without going through a
// degenerate zero-length second edge to get it.
func OnArc(p, v0, v1 Node, etype sphere.EdgeType) bool {
	if etype == sphere.ConstantLatitude {
		if math.Abs(p.Z-latOf(v0, v1)) > 1e-9 {
			return false
		}
		return onConstantLatitudeArc(p, v0, v1)
	}
	return onGreatCircleArc(p, v0, v1)
}

// onGreatCircleArc reports whether p lies on the arc from a0 to a1 (the
// shorter way around), inclusive of endpoints.
func onGreatCircleArc(p, a0, a1 Node) bool {
	if p == a0 || p == a1 {
		return true
	}
	axis := PointCross(a0, a1)
	if math.Abs(p.Dot(axis)) > 1e-9 {
		return false
	}
	return OrderedCCW(a0, p, a1, axis)
}

// latOf returns the constant z-coordinate of a ConstantLatitude edge,
// defined as the average of its two endpoints' z (they should already
// agree up to floating-point noise).
func latOf(b0, b1 Node) float64 { return 0.5 * (b0.Z + b1.Z) }

// onConstantLatitudeArc reports whether p (already known to share the
// arc's latitude) lies within the longitude range spanned by b0->b1, the
// shorter way around.
func onConstantLatitudeArc(p, b0, b1 Node) bool {
	if p == b0 || p == b1 {
		return true
	}
	lng := func(v Node) float64 { return math.Atan2(v.Y, v.X) }
	lp, l0, l1 := lng(p), lng(b0), lng(b1)
	norm := func(a float64) float64 {
		for a < 0 {
			a += 2 * math.Pi
		}
		for a >= 2*math.Pi {
			a -= 2 * math.Pi
		}
		return a
	}
	lp, l0, l1 = norm(lp), norm(l0), norm(l1)
	span := norm(l1 - l0)
	if span > math.Pi {
		// b0->b1 the "short way" actually runs the other direction.
		l0, l1 = l1, l0
		span = norm(l1 - l0)
	}
	d := norm(lp - l0)
	return d <= span
}

// greatCircleVsLatitude solves for the (<=2) points common to the great
// circle through a0,a1 and the latitude circle at z=zLat.
func greatCircleVsLatitude(a0, a1 Node, zLat float64) []Node {
	n := a0.Cross(a1)
	r2 := 1 - zLat*zLat
	if r2 < 0 {
		return nil
	}
	A, B := n.X, n.Y
	c := -n.Z * zLat
	denom := A*A + B*B
	if denom < 1e-30 {
		// The great circle's plane is (nearly) the equatorial plane
		// itself; a proper intersection set only exists at zLat == 0,
		// and that case is positive-measure (coincident), handled by
		// the caller before this is reached.
		return nil
	}
	x0 := A * c / denom
	y0 := B * c / denom
	d2 := c * c / denom
	h2 := r2 - d2
	if h2 < -1e-12 {
		return nil
	}
	if h2 < 0 {
		h2 = 0
	}
	h := math.Sqrt(h2)
	dirX, dirY := -B/math.Sqrt(denom), A/math.Sqrt(denom)
	p1 := r3.Vector{X: x0 + h*dirX, Y: y0 + h*dirY, Z: zLat}
	if h2 == 0 {
		return []Node{p1}
	}
	p2 := r3.Vector{X: x0 - h*dirX, Y: y0 - h*dirY, Z: zLat}
	return []Node{p1, p2}
}

// calculateEdgeIntersections is shared by both kernel variants; eq is the
// node-equality predicate to use for de-duplication and last-intersection
// filtering (the only real behavioral difference between the Fuzzy and
// Exact kernels, besides which one ultimately decides this call).
func calculateEdgeIntersections(
	a0, a1 Node, aType sphere.EdgeType,
	b0, b1 Node, bType sphere.EdgeType,
	last *Node,
	eq func(x, y Node) bool,
) ([]Node, bool) {
	var candidates []Node
	coincident := false

	switch {
	case aType == sphere.GreatCircleArc && bType == sphere.GreatCircleArc:
		nA := PointCross(a0, a1)
		nB := PointCross(b0, b1)
		if nA.Cross(nB).Norm2() < 1e-28 {
			// Same great circle.
			if onGreatCircleArc(b0, a0, a1) || onGreatCircleArc(b1, a0, a1) ||
				onGreatCircleArc(a0, b0, b1) || onGreatCircleArc(a1, b0, b1) {
				coincident = true
			}
			break
		}
		p := GreatCircleIntersection(a0, a1, b0, b1)
		if onGreatCircleArc(p, a0, a1) && onGreatCircleArc(p, b0, b1) {
			candidates = append(candidates, p)
		}
		pAnti := p.Mul(-1)
		if onGreatCircleArc(pAnti, a0, a1) && onGreatCircleArc(pAnti, b0, b1) {
			candidates = append(candidates, pAnti)
		}

	case aType == sphere.GreatCircleArc && bType == sphere.ConstantLatitude:
		zLat := latOf(b0, b1)
		for _, p := range greatCircleVsLatitude(a0, a1, zLat) {
			if onGreatCircleArc(p, a0, a1) && onConstantLatitudeArc(p, b0, b1) {
				candidates = append(candidates, p)
			}
		}

	case aType == sphere.ConstantLatitude && bType == sphere.GreatCircleArc:
		zLat := latOf(a0, a1)
		for _, p := range greatCircleVsLatitude(b0, b1, zLat) {
			if onConstantLatitudeArc(p, a0, a1) && onGreatCircleArc(p, b0, b1) {
				candidates = append(candidates, p)
			}
		}

	default: // both ConstantLatitude
		zA, zB := latOf(a0, a1), latOf(b0, b1)
		if math.Abs(zA-zB) < 1e-12 {
			if onConstantLatitudeArc(b0, a0, a1) || onConstantLatitudeArc(b1, a0, a1) ||
				onConstantLatitudeArc(a0, b0, b1) || onConstantLatitudeArc(a1, b0, b1) {
				coincident = true
			}
		}
	}

	if coincident {
		return nil, true
	}

	out := make([]Node, 0, len(candidates))
	for _, p := range candidates {
		if last != nil && eq(p, *last) {
			continue
		}
		dup := false
		for _, q := range out {
			if eq(p, q) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out, false
}
