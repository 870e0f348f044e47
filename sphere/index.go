package sphere

import (
	"github.com/dhconnelly/rtreego"

	"github.com/rajeeja/tempestremap/r3"
)

// faceIndex accelerates "which faces could possibly contain or border this
// point/edge" queries by bounding each face with an axis-aligned box in
// chord space (ℝ³) and indexing those boxes in an R-tree. This supplements
// spec.md's Mesh Queries component, which leaves candidate-face filtering
// unspecified beyond "the edge-to-face map is assumed already built" —
// the edgemap still carries the authoritative topology; the R-tree only
// narrows which faces a query needs to examine exactly.
type faceIndex struct {
	tree *rtreego.Rtree
}

const boundPad = 1e-9

type spatialFace struct {
	ixFace int
	rect   rtreego.Rect
}

func (sf *spatialFace) Bounds() rtreego.Rect { return sf.rect }

func faceBounds(mesh *Mesh, face Face) (rtreego.Rect, error) {
	n := face.NumVertices()
	if n == 0 {
		return rtreego.NewRect(rtreego.Point{0, 0, 0}, []float64{2 * boundPad, 2 * boundPad, 2 * boundPad})
	}
	v0 := face.Vertex(0, mesh.Nodes)
	minX, maxX := v0.X, v0.X
	minY, maxY := v0.Y, v0.Y
	minZ, maxZ := v0.Z, v0.Z
	for i := 1; i < n; i++ {
		v := face.Vertex(i, mesh.Nodes)
		minX, maxX = minF(minX, v.X), maxF(maxX, v.X)
		minY, maxY = minF(minY, v.Y), maxF(maxY, v.Y)
		minZ, maxZ = minF(minZ, v.Z), maxF(maxZ, v.Z)
	}
	return rtreego.NewRect(
		rtreego.Point{minX - boundPad, minY - boundPad, minZ - boundPad},
		[]float64{
			(maxX - minX) + 2*boundPad,
			(maxY - minY) + 2*boundPad,
			(maxZ - minZ) + 2*boundPad,
		},
	)
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func newFaceIndex(mesh *Mesh) *faceIndex {
	tree := rtreego.NewTree(3, 4, 16)
	for ixFace, face := range mesh.Faces {
		rect, err := faceBounds(mesh, face)
		if err != nil {
			continue
		}
		tree.Insert(&spatialFace{ixFace: ixFace, rect: rect})
	}
	return &faceIndex{tree: tree}
}

// CandidateFaces returns the indices of faces whose bounding box contains
// node, widened by tol on every side to absorb fuzzy-kernel tolerance.
func (m *Mesh) CandidateFaces(node r3.Vector, tol float64) []int {
	if m.index == nil {
		out := make([]int, len(m.Faces))
		for i := range out {
			out[i] = i
		}
		return out
	}
	rect, err := rtreego.NewRect(
		rtreego.Point{node.X - tol, node.Y - tol, node.Z - tol},
		[]float64{2 * tol, 2 * tol, 2 * tol},
	)
	if err != nil {
		return nil
	}
	results := m.index.tree.SearchIntersect(rect)
	out := make([]int, 0, len(results))
	for _, r := range results {
		out = append(out, r.(*spatialFace).ixFace)
	}
	return out
}
