// Package overlap implements the Path Tracer, Face Reconstructor, and
// Driver: the three components that, given a First and a Second mesh on
// the unit sphere, produce the Overlap mesh whose faces are exactly the
// non-empty intersections of a First face with a Second face. Grounded on
// original_source/OverlapMesh.cpp's GeneratePath / GenerateOverlapFaces /
// GenerateOverlapMesh, restructured the way the teacher splits a large
// C++ algorithm into a PolygonBuilder-style state object
// (polygonbuilder.go) plus free functions, rather than one C++ method
// with a dozen local variables mutated in place.
package overlap

import (
	"github.com/rajeeja/tempestremap/kernel"
	"github.com/rajeeja/tempestremap/sphere"
)

// IntersectionType tags what terminates a PathSegment: nothing (the
// First-edge simply ended inside the current Second face), a Second-edge
// crossing, or a Second-vertex coincidence.
type IntersectionType int

const (
	IntersectNone IntersectionType = iota
	IntersectEdge
	IntersectNode
)

func (t IntersectionType) String() string {
	switch t {
	case IntersectEdge:
		return "Edge"
	case IntersectNode:
		return "Node"
	default:
		return "None"
	}
}

// PathSegment is an Edge plus the Path Tracer's annotation record,
// modeled as a value type with an embedded Edge rather than the C++
// original's subclass, per spec.md §9's design note.
type PathSegment struct {
	sphere.Edge

	FirstFace  int
	SecondFace int

	IntType IntersectionType
	// IxIntersect is, for IntersectNode, the local vertex index just
	// visited on SecondFace; for IntersectEdge, the local edge index of
	// the Second-edge that was crossed.
	IxIntersect int
	// EdgeIntersect is the actual Second-edge crossed, meaningful only
	// when IntType == IntersectEdge (the Second-face handle changes
	// across the crossing, so the edge itself must be captured too).
	EdgeIntersect sphere.Edge
}

// NodeStore accumulates newly-born Overlap nodes (edge/edge intersection
// points) during tracing. First- and Second-nodes are pre-seeded by the
// driver; this is only ever appended to afterward, matching spec.md §3's
// append-only Overlap-node lifecycle.
type NodeStore struct {
	Nodes []kernel.Node
}

func (s *NodeStore) Append(n kernel.Node) int {
	s.Nodes = append(s.Nodes, n)
	return len(s.Nodes) - 1
}

// TaggedFaces accumulates Overlap-mesh faces alongside the (First face,
// Second face) index pair that produced each one, per spec.md §1/§3/§6's
// output-tagging requirement. Mirrors the parallel vecFirstFaceIx/
// vecSecondFaceIx arrays original_source/GenerateOfflineMap.cpp reads an
// overlap mesh back through, rather than carrying the tag on sphere.Face
// itself (which First- and Second-meshes also use, and have no tag to
// carry).
type TaggedFaces struct {
	Faces      []sphere.Face
	FirstFace  []int
	SecondFace []int
}

// Append records one emitted face and its producing (First, Second) pair.
func (t *TaggedFaces) Append(f sphere.Face, ixFirstFace, ixSecondFace int) {
	t.Faces = append(t.Faces, f)
	t.FirstFace = append(t.FirstFace, ixFirstFace)
	t.SecondFace = append(t.SecondFace, ixSecondFace)
}
