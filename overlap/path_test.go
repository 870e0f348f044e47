package overlap

import (
	"testing"

	"github.com/rajeeja/tempestremap/kernel"
	"github.com/rajeeja/tempestremap/r3"
	"github.com/rajeeja/tempestremap/sphere"
)

func unit(x, y, z float64) r3.Vector { return r3.Vector{X: x, Y: y, Z: z}.Normalize() }

// bigOctantTriangle returns a single-face mesh covering the positive
// octant, vertices in the CCW order the Geometry Kernel's RobustCCW
// expects (outward from the sphere center).
func bigOctantTriangle(t *testing.T) *sphere.Mesh {
	t.Helper()
	nodes := []r3.Vector{unit(1, 0, 0), unit(0, 1, 0), unit(0, 0, 1)}
	face := sphere.Face{Edges: []sphere.Edge{
		{Node0: 0, Node1: 1, Type: sphere.GreatCircleArc},
		{Node0: 1, Node1: 2, Type: sphere.GreatCircleArc},
		{Node0: 2, Node1: 0, Type: sphere.GreatCircleArc},
	}}
	m, err := sphere.NewMesh(nodes, []sphere.Face{face})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// smallInteriorTriangle returns a single-face mesh strictly inside
// bigOctantTriangle, far from every one of its edges.
func smallInteriorTriangle(t *testing.T) *sphere.Mesh {
	t.Helper()
	nodes := []r3.Vector{unit(0.5, 0.3, 0.2), unit(0.2, 0.5, 0.3), unit(0.3, 0.2, 0.5)}
	face := sphere.Face{Edges: []sphere.Edge{
		{Node0: 0, Node1: 1, Type: sphere.GreatCircleArc},
		{Node0: 1, Node1: 2, Type: sphere.GreatCircleArc},
		{Node0: 2, Node1: 0, Type: sphere.GreatCircleArc},
	}}
	m, err := sphere.NewMesh(nodes, []sphere.Face{face})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestGeneratePathFirstWhollyInsideSecond(t *testing.T) {
	first := smallInteriorTriangle(t)
	second := bigOctantTriangle(t)
	k := kernel.New(kernel.Fuzzy)
	secondNodeMap := []int{3, 4, 5}
	store := &NodeStore{Nodes: append(append([]r3.Vector{}, first.Nodes...), second.Nodes...)}

	path, warnings, err := GeneratePath(first, second, 0, secondNodeMap, store, k, nopLogger{})
	if err != nil {
		t.Fatalf("GeneratePath returned error: %v", err)
	}
	if warnings != 0 {
		t.Errorf("warnings = %d, want 0", warnings)
	}
	if len(path) != 3 {
		t.Fatalf("len(path) = %d, want 3", len(path))
	}
	for _, seg := range path {
		if seg.IntType != IntersectNone {
			t.Errorf("segment %+v: IntType = %v, want IntersectNone", seg, seg.IntType)
		}
		if seg.SecondFace != 0 {
			t.Errorf("segment %+v: SecondFace = %d, want 0", seg, seg.SecondFace)
		}
	}
	if path[0].Node0 != 0 {
		t.Errorf("path[0].Node0 = %d, want 0", path[0].Node0)
	}
	if path[len(path)-1].Node1 != path[0].Node0 {
		t.Errorf("path does not close: last Node1 = %d, first Node0 = %d", path[len(path)-1].Node1, path[0].Node0)
	}
}
