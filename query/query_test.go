package query

import (
	"testing"

	"github.com/rajeeja/tempestremap/kernel"
	"github.com/rajeeja/tempestremap/r3"
	"github.com/rajeeja/tempestremap/sphere"
)

func unit(x, y, z float64) kernel.Node { return r3.Vector{X: x, Y: y, Z: z}.Normalize() }

func twoTriangleMesh(t *testing.T) *sphere.Mesh {
	t.Helper()
	nodes := []r3.Vector{
		unit(1, 0, 0),  // 0
		unit(0, 1, 0),  // 1
		unit(0, 0, 1),  // 2
		unit(0, -1, 0), // 3
	}
	faceA := sphere.Face{Edges: []sphere.Edge{
		{Node0: 0, Node1: 1, Type: sphere.GreatCircleArc},
		{Node0: 1, Node1: 2, Type: sphere.GreatCircleArc},
		{Node0: 2, Node1: 0, Type: sphere.GreatCircleArc},
	}}
	faceB := sphere.Face{Edges: []sphere.Edge{
		{Node0: 0, Node1: 3, Type: sphere.GreatCircleArc},
		{Node0: 3, Node1: 2, Type: sphere.GreatCircleArc},
		{Node0: 2, Node1: 0, Type: sphere.GreatCircleArc},
	}}
	m, err := sphere.NewMesh(nodes, []sphere.Face{faceA, faceB})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestFindFaceFromNodeInterior(t *testing.T) {
	m := twoTriangleMesh(t)
	k := kernel.New(kernel.Fuzzy)
	interior := unit(0.3, 0.3, 0.3)
	res := FindFaceFromNode(m, interior, k)
	hit, ok := res.Unique()
	if !ok {
		t.Fatalf("expected a unique face hit, got %d hits", len(res.Hits))
	}
	if hit.Face != 0 {
		t.Errorf("interior point classified into face %d, want 0", hit.Face)
	}
	if hit.Location != Interior {
		t.Errorf("location = %v, want Interior", hit.Location)
	}
}

func TestFindFaceFromNodeSharedEdge(t *testing.T) {
	m := twoTriangleMesh(t)
	k := kernel.New(kernel.Fuzzy)
	mid := m.Nodes[0].Add(m.Nodes[2]).Normalize()
	res := FindFaceFromNode(m, mid, k)
	if len(res.Hits) != 2 {
		t.Fatalf("got %d hits on the shared edge, want 2", len(res.Hits))
	}
	for _, h := range res.Hits {
		if h.Location != OnEdge {
			t.Errorf("face %d location = %v, want OnEdge", h.Face, h.Location)
		}
	}
}

func TestFindFaceNearNodeDisambiguatesSharedVertex(t *testing.T) {
	m := twoTriangleMesh(t)
	k := kernel.New(kernel.Fuzzy)
	node := m.Nodes[0]
	// Toward vertex 1 should resolve to face 0; toward vertex 3 to face 1.
	f, err := FindFaceNearNode(m, node, m.Nodes[1], sphere.GreatCircleArc, k)
	if err != nil {
		t.Fatal(err)
	}
	if f != 0 {
		t.Errorf("FindFaceNearNode toward vertex 1 = face %d, want 0", f)
	}
	f, err = FindFaceNearNode(m, node, m.Nodes[3], sphere.GreatCircleArc, k)
	if err != nil {
		t.Fatal(err)
	}
	if f != 1 {
		t.Errorf("FindFaceNearNode toward vertex 3 = face %d, want 1", f)
	}
}

func TestGetEdgeIndex(t *testing.T) {
	m := twoTriangleMesh(t)
	idx := GetEdgeIndex(m.Faces[0], sphere.Edge{Node0: 2, Node1: 0})
	if idx != 2 {
		t.Errorf("GetEdgeIndex = %d, want 2", idx)
	}
}
