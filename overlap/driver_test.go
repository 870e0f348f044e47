package overlap

import (
	"errors"
	"math"
	"testing"

	"github.com/rajeeja/tempestremap/r3"
	"github.com/rajeeja/tempestremap/sphere"
)

func TestGenerateOverlapMeshFirstWhollyInsideSecond(t *testing.T) {
	first := smallInteriorTriangle(t)
	second := bigOctantTriangle(t)

	result, err := GenerateOverlapMesh(first, second, NewOptions())
	if err != nil {
		t.Fatalf("GenerateOverlapMesh returned error: %v", err)
	}
	if result.FaceCount != 1 {
		t.Errorf("FaceCount = %d, want 1", result.FaceCount)
	}
	if result.WarningCount != 0 {
		t.Errorf("WarningCount = %d, want 0", result.WarningCount)
	}
	if len(result.Mesh.Faces) != 1 {
		t.Fatalf("Mesh has %d faces, want 1", len(result.Mesh.Faces))
	}
	if len(result.FirstFaceIx) != 1 || len(result.SecondFaceIx) != 1 {
		t.Fatalf("tag slices have lengths (%d,%d), want (1,1)", len(result.FirstFaceIx), len(result.SecondFaceIx))
	}
	if result.FirstFaceIx[0] != 0 || result.SecondFaceIx[0] != 0 {
		t.Errorf("face 0 tagged (%d,%d), want (0,0)", result.FirstFaceIx[0], result.SecondFaceIx[0])
	}

	got := result.Mesh.Faces[0]
	if len(got.Edges) != 3 {
		t.Fatalf("overlap face has %d edges, want 3", len(got.Edges))
	}
	for i, e := range got.Edges {
		want := i
		wantNext := (i + 1) % 3
		if e.Node0 != want || e.Node1 != wantNext {
			t.Errorf("edge %d = (%d,%d), want (%d,%d)", i, e.Node0, e.Node1, want, wantNext)
		}
	}
}

// TestGenerateOverlapMeshCoincidentEdgesIsFatal documents a known,
// spec-faithful limitation: the coincident-edge path spec.md scopes out of
// this module's Non-goals is detected as soon as the Path Tracer compares
// a First-edge against the identical Second-edge underneath it, so tracing
// two meshes that share a boundary fails fast rather than producing a
// degenerate overlap face.
func TestGenerateOverlapMeshCoincidentEdgesIsFatal(t *testing.T) {
	first := bigOctantTriangle(t)
	second := bigOctantTriangle(t)

	_, err := GenerateOverlapMesh(first, second, NewOptions())
	if err == nil {
		t.Fatal("expected an error tracing two identical meshes against each other, got nil")
	}
	if !errors.Is(err, ErrCoincidentEdges) {
		t.Errorf("err = %v, want it to wrap ErrCoincidentEdges", err)
	}
}

// triOfEdges builds a single-face, 3-node mesh from 3 great-circle-arc
// vertices in CCW order.
func triOfEdges(t *testing.T, nodes ...r3.Vector) *sphere.Mesh {
	t.Helper()
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

// TestGenerateOverlapMeshTJunctionReusesFirstNode drives GeneratePath
// through a real geometric T-junction: First's own vertex 0 sits exactly on
// the interior of Second's A-B edge (bigOctantTriangle's first edge), with
// First's other two vertices placed one inside and one outside Second so
// the boundary genuinely crosses rather than merely touching. Since First's
// starting vertex is also where the last edge of the same closed triangle
// ends, this exercises both halves of the T-junction bug in one trace: the
// first edge's own scan must not re-report the point it's standing on as a
// fresh crossing (nodeLastIntersection has to be seeded from this edge's
// a0, not leaked over from some previous edge), and the edge that crosses
// back onto the junction point must close the loop onto First's existing
// node rather than minting a duplicate at the same coordinates.
func TestGenerateOverlapMeshTJunctionReusesFirstNode(t *testing.T) {
	second := bigOctantTriangle(t)

	v0 := unit(1, 1, 0) // exactly on Second's A(1,0,0)-B(0,1,0) edge
	v1 := unit(0.3, 0.3, 0.8)
	v2 := unit(0.5, 0.1, -0.8)
	first := triOfEdges(t, v0, v1, v2)

	result, err := GenerateOverlapMesh(first, second, NewOptions())
	if err != nil {
		t.Fatalf("GenerateOverlapMesh returned error: %v", err)
	}
	if result.FaceCount == 0 {
		t.Fatal("FaceCount = 0, want at least one overlap face")
	}

	for i := 0; i < len(result.Mesh.Nodes); i++ {
		for j := i + 1; j < len(result.Mesh.Nodes); j++ {
			if result.Mesh.Nodes[i].ApproxEqual(result.Mesh.Nodes[j]) {
				t.Errorf("overlap nodes %d and %d duplicate the same coordinates: %v", i, j, result.Mesh.Nodes[i])
			}
		}
	}
	for _, f := range result.Mesh.Faces {
		if len(f.Edges) == 0 {
			continue
		}
		for i, e := range f.Edges {
			next := f.Edges[(i+1)%len(f.Edges)]
			if e.Node1 != next.Node0 {
				t.Errorf("face edge %d ends at node %d but edge %d starts at node %d: face does not close", i, e.Node1, (i+1)%len(f.Edges), next.Node0)
			}
		}
	}
}

// offsetHexagonTriangles builds two congruent equilateral spherical
// triangles at the same latitude, Second rotated 60° in longitude from
// First, the spherical analogue of two triangles offset by a rotation
// (spec.md §8 scenario 2) overlapping in a hexagon. The triangle named in
// scenario 1 isn't usable for this directly: rotating it by 30° about
// (0,0,1) keeps its A-B edge (both endpoints at z=0) on the very same
// great circle as the rotated copy's A'-B' edge, so CalculateEdgeIntersections
// reports ErrCoincidentEdges before First's vertices ever get anywhere near
// Second's boundary. Spacing the two triangles 120°/60° apart in longitude
// at a shared latitude (a spherical Star of David) keeps the same "two
// offset triangles cross into a hexagon" shape without that degeneracy: no
// edge of either triangle shares a great circle with any edge of the
// other, and by 6-fold symmetry each First-edge is cut by exactly two
// Second-edges.
func offsetHexagonTriangles(t *testing.T) (*sphere.Mesh, *sphere.Mesh) {
	t.Helper()
	at := func(lonDeg float64) r3.Vector {
		lon := lonDeg * math.Pi / 180
		return unit(math.Cos(lon)*math.Cos(math.Pi/6), math.Sin(lon)*math.Cos(math.Pi/6), math.Sin(math.Pi/6))
	}
	first := triOfEdges(t, at(0), at(120), at(240))
	second := triOfEdges(t, at(60), at(180), at(300))
	return first, second
}

func TestGenerateOverlapMeshOffsetTrianglesCrossInHexagon(t *testing.T) {
	first, second := offsetHexagonTriangles(t)

	result, err := GenerateOverlapMesh(first, second, NewOptions())
	if err != nil {
		t.Fatalf("GenerateOverlapMesh returned error: %v", err)
	}
	if result.WarningCount != 0 {
		t.Errorf("WarningCount = %d, want 0", result.WarningCount)
	}
	if result.FaceCount != 1 {
		t.Fatalf("FaceCount = %d, want 1 (the two triangles overlap in a single convex region)", result.FaceCount)
	}

	got := result.Mesh.Faces[0]
	if len(got.Edges) != 6 {
		t.Fatalf("overlap face has %d edges, want 6 (a hexagon: each First-edge is cut by two Second-edges)", len(got.Edges))
	}
	for i, e := range got.Edges {
		next := got.Edges[(i+1)%len(got.Edges)]
		if e.Node1 != next.Node0 {
			t.Errorf("edge %d ends at node %d but edge %d starts at node %d: face does not close", i, e.Node1, (i+1)%len(got.Edges), next.Node0)
		}
	}
}
