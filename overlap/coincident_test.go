package overlap

import (
	"testing"

	"github.com/rajeeja/tempestremap/kernel"
	"github.com/rajeeja/tempestremap/sphere"
)

func TestBuildCoincidentNodeVector(t *testing.T) {
	first := smallInteriorTriangle(t)
	second := bigOctantTriangle(t)
	k := kernel.New(kernel.Fuzzy)

	count, m := BuildCoincidentNodeVector(first, second, k)
	if count != 0 {
		t.Fatalf("count = %d, want 0 (no shared coordinates between the two meshes)", count)
	}
	for i, v := range m {
		if v != sphere.InvalidNode {
			t.Errorf("m[%d] = %d, want InvalidNode", i, v)
		}
	}

	// Build a Second mesh that reuses First's own nodes verbatim, so every
	// Second-node coincides with the First-node at the same index.
	sameNodeSecond, err := sphere.NewMesh(first.Nodes, []sphere.Face{first.Faces[0]})
	if err != nil {
		t.Fatal(err)
	}
	count, m = BuildCoincidentNodeVector(first, sameNodeSecond, k)
	if count != len(first.Nodes) {
		t.Fatalf("count = %d, want %d", count, len(first.Nodes))
	}
	for i, v := range m {
		if v != i {
			t.Errorf("m[%d] = %d, want %d", i, v, i)
		}
	}
}
