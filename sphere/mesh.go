// Package sphere defines the mesh data model the overlap engine operates
// on: nodes on the unit sphere, directed edges of two possible types, and
// faces as closed chains of edges, plus the edge-to-face map each mesh
// carries. The shapes here mirror the teacher's Loop/Polygon split (vertex
// slice plus cached bound) adapted to spec.md's explicit Edge/Face model,
// since a Face here may mix great-circle and constant-latitude edges, which
// the teacher's always-great-circle Loop never needed to represent.
package sphere

import (
	"fmt"

	"github.com/rajeeja/tempestremap/r3"
)

// EdgeType distinguishes the two arc types a Face boundary may be built
// from.
type EdgeType int

const (
	GreatCircleArc EdgeType = iota
	ConstantLatitude
)

func (t EdgeType) String() string {
	if t == ConstantLatitude {
		return "ConstantLatitude"
	}
	return "GreatCircleArc"
}

// InvalidNode is the sentinel used by the coincident-node map and the face
// reconstructor's exit-node search.
const InvalidNode = -1

// Edge is an ordered pair of node indices plus the arc type connecting
// them. Edges are directed for face traversal; FacePair lookups treat them
// as unordered (see Mesh.edgemap).
type Edge struct {
	Node0, Node1 int
	Type         EdgeType
}

// IsDegenerate reports whether this is a placeholder edge, permitted by
// spec.md §3 as a skippable filler in a Face's edge list.
func (e Edge) IsDegenerate() bool { return e.Node0 == e.Node1 }

// SameUndirected reports whether e and other connect the same two nodes,
// regardless of direction.
func (e Edge) SameUndirected(other Edge) bool {
	return e.unordered() == other.unordered()
}

// unordered returns a key that identifies this edge regardless of
// traversal direction, used to index Mesh.edgemap.
func (e Edge) unordered() edgeKey {
	if e.Node0 <= e.Node1 {
		return edgeKey{e.Node0, e.Node1}
	}
	return edgeKey{e.Node1, e.Node0}
}

type edgeKey struct{ a, b int }

// FacePair holds the (at most two) face indices incident to an edge. A
// boundary edge of the mesh's covered domain has only Face0 populated;
// Face1 is InvalidNode.
type FacePair struct {
	Face0, Face1 int
}

// Other returns the face on the opposite side of this edge from ixFace, or
// InvalidNode if ixFace is not one of the pair (a logic error at the call
// site).
func (fp FacePair) Other(ixFace int) int {
	switch ixFace {
	case fp.Face0:
		return fp.Face1
	case fp.Face1:
		return fp.Face0
	default:
		return InvalidNode
	}
}

// Face is an ordered, counter-clockwise (viewed from outside the sphere)
// chain of Edges forming a closed simple spherical polygon.
type Face struct {
	Edges []Edge
}

func NewFace(n int) Face { return Face{Edges: make([]Edge, n)} }

// GetEdgeIndex returns the local index of e within the face (matching node
// indices in either direction), or -1 if absent. Grounded on the teacher's
// Face::GetEdgeIndex call sites in polygon.go/OverlapMesh.cpp.
func (f Face) GetEdgeIndex(e Edge) int {
	for i, fe := range f.Edges {
		if fe.unordered() == e.unordered() {
			return i
		}
	}
	return -1
}

// EdgeMap maps an unordered Edge to the (<=2) face indices incident to it.
type EdgeMap struct {
	m map[edgeKey]FacePair
}

func NewEdgeMap() *EdgeMap { return &EdgeMap{m: make(map[edgeKey]FacePair)} }

func (em *EdgeMap) Lookup(e Edge) (FacePair, bool) {
	fp, ok := em.m[e.unordered()]
	return fp, ok
}

func (em *EdgeMap) add(e Edge, ixFace int) error {
	key := e.unordered()
	fp, ok := em.m[key]
	if !ok {
		em.m[key] = FacePair{Face0: ixFace, Face1: InvalidNode}
		return nil
	}
	if fp.Face1 != InvalidNode {
		return fmt.Errorf("edge (%d,%d) already incident to two faces (%d,%d), cannot add face %d",
			e.Node0, e.Node1, fp.Face0, fp.Face1, ixFace)
	}
	fp.Face1 = ixFace
	em.m[key] = fp
	return nil
}

// Mesh owns a node list, a face list, and the edge-to-facepair map
// connecting them. Input meshes are treated as immutable by the overlap
// engine; the Overlap mesh it produces is built append-only.
type Mesh struct {
	Nodes   []r3.Vector
	Faces   []Face
	edgemap *EdgeMap
	index   *faceIndex // spatial acceleration, see query package
}

// NewMesh builds a Mesh from raw node coordinates and face edge lists,
// deriving the edge-to-face map (spec.md treats this as a precondition on
// the input meshes; this constructor is the ambient infrastructure that
// actually produces one, so the module is runnable end to end without a
// caller hand-assembling an EdgeMap for every test).
func NewMesh(nodes []r3.Vector, faces []Face) (*Mesh, error) {
	m := &Mesh{
		Nodes:   nodes,
		Faces:   faces,
		edgemap: NewEdgeMap(),
	}
	for ixFace, face := range faces {
		for _, e := range face.Edges {
			if e.IsDegenerate() {
				continue
			}
			if err := m.edgemap.add(e, ixFace); err != nil {
				return nil, fmt.Errorf("building edge map for face %d: %w", ixFace, err)
			}
		}
	}
	m.index = newFaceIndex(m)
	return m, nil
}

func (m *Mesh) EdgeMap() *EdgeMap { return m.edgemap }

// Vertex returns the i'th vertex of a face, treating the vertex list as
// cyclic (vertex(n) == vertex(0)), matching the teacher's Loop.vertex
// convention.
func (f Face) Vertex(i int, nodes []r3.Vector) r3.Vector {
	n := len(f.Edges)
	return nodes[f.Edges[((i%n)+n)%n].Node0]
}

func (f Face) NumVertices() int { return len(f.Edges) }
