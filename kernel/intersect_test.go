package kernel

import (
	"math"
	"testing"

	"github.com/rajeeja/tempestremap/sphere"
)

func TestCalculateEdgeIntersectionsCrossingGreatCircles(t *testing.T) {
	k := New(Fuzzy)
	// Equator arc from lon -45 to +45, and a meridian arc crossing it at
	// the prime meridian (1,0,0).
	a0 := unit(math.Cos(-math.Pi/4), math.Sin(-math.Pi/4), 0)
	a1 := unit(math.Cos(math.Pi/4), math.Sin(math.Pi/4), 0)
	b0 := unit(1, 0, -0.5)
	b1 := unit(1, 0, 0.5)
	pts, coincident := k.CalculateEdgeIntersections(a0, a1, sphere.GreatCircleArc, b0, b1, sphere.GreatCircleArc, nil)
	if coincident {
		t.Fatal("expected no coincidence")
	}
	if len(pts) != 1 {
		t.Fatalf("got %d intersections, want 1", len(pts))
	}
	if !k.AreNodesEqual(pts[0], unit(1, 0, 0)) {
		t.Errorf("intersection = %v, want (1,0,0)", pts[0])
	}
}

func TestCalculateEdgeIntersectionsNoCrossing(t *testing.T) {
	k := New(Fuzzy)
	a0 := unit(1, 0, 0)
	a1 := unit(0, 1, 0)
	b0 := unit(-1, 0, 0)
	b1 := unit(0, -1, 0)
	pts, coincident := k.CalculateEdgeIntersections(a0, a1, sphere.GreatCircleArc, b0, b1, sphere.GreatCircleArc, nil)
	if coincident {
		t.Fatal("expected no coincidence")
	}
	if len(pts) != 0 {
		t.Errorf("got %d intersections, want 0", len(pts))
	}
}

func TestCalculateEdgeIntersectionsGreatCircleVsLatitude(t *testing.T) {
	k := New(Fuzzy)
	// A meridian arc (lon=0) crossing the z=0.5 latitude circle.
	a0 := unit(0, 0, -1)
	a1 := unit(1, 0, 1)
	zLat := 0.5
	r := math.Sqrt(1 - zLat*zLat)
	b0 := r3VectorAt(r, 0, zLat)
	b1 := r3VectorAt(0, r, zLat)
	pts, coincident := k.CalculateEdgeIntersections(a0, a1, sphere.GreatCircleArc, b0, b1, sphere.ConstantLatitude, nil)
	if coincident {
		t.Fatal("expected no coincidence")
	}
	if len(pts) == 0 {
		t.Fatal("expected at least one intersection")
	}
	for _, p := range pts {
		if math.Abs(p.Z-zLat) > 1e-9 {
			t.Errorf("intersection %v not at latitude %v", p, zLat)
		}
	}
}

func r3VectorAt(x, y, z float64) Node { return Node{X: x, Y: y, Z: z} }

func TestCalculateEdgeIntersectionsCoincidentGreatCircle(t *testing.T) {
	k := New(Fuzzy)
	a0 := unit(1, 0, 0)
	a1 := unit(0, 1, 0)
	b0 := unit(0.9, 0.1, 0)
	b1 := unit(0.1, 0.9, 0)
	_, coincident := k.CalculateEdgeIntersections(a0, a1, sphere.GreatCircleArc, b0, b1, sphere.GreatCircleArc, nil)
	if !coincident {
		t.Errorf("expected coincident, got false")
	}
}
