package overlap

import (
	"fmt"

	"github.com/rajeeja/tempestremap/sphere"
)

// Result is the outcome of a successful GenerateOverlapMesh call: the
// produced mesh plus counters a caller can log or assert against.
// FirstFaceIx and SecondFaceIx are parallel to Mesh.Faces: FirstFaceIx[i]/
// SecondFaceIx[i] is the (First, Second) pair that produced Mesh.Faces[i],
// mirroring original_source/GenerateOfflineMap.cpp's vecFirstFaceIx/
// vecSecondFaceIx output arrays per spec.md §1/§6.
type Result struct {
	Mesh         *sphere.Mesh
	FirstFaceIx  []int
	SecondFaceIx []int
	FaceCount    int
	WarningCount int
}

// warnCounter wraps a caller-supplied Logger to additionally count
// warnings emitted during a run, surfaced on Result.WarningCount per
// spec.md §9's "aggregate count in the driver return".
type warnCounter struct {
	inner Logger
	count int
}

func (w *warnCounter) Warnf(format string, args ...any) {
	w.count++
	w.inner.Warnf(format, args...)
}

func (w *warnCounter) Debugf(format string, args ...any) { w.inner.Debugf(format, args...) }

// GenerateOverlapMesh is the Driver: it seeds the Overlap node list with
// First-nodes then Second-nodes (aliasing coincident nodes through the
// coincident-node map), then traces and reconstructs every First face in
// turn. Ported from OverlapMesh.cpp's GenerateOverlapMesh.
func GenerateOverlapMesh(first, second *sphere.Mesh, opts *Options) (*Result, error) {
	if opts == nil {
		opts = NewOptions()
	}
	k := opts.kernel()
	wc := &warnCounter{inner: opts.logger}

	_, rawMap := BuildCoincidentNodeVector(first, second, k)
	secondNodeMap := make([]int, len(rawMap))
	for i, v := range rawMap {
		if v == sphere.InvalidNode {
			secondNodeMap[i] = len(first.Nodes) + i
		} else {
			secondNodeMap[i] = v
		}
	}

	store := &NodeStore{}
	store.Nodes = append(store.Nodes, first.Nodes...)
	// Append the Second-node block verbatim; coincident entries keep
	// their First-node position and the corresponding slot in this
	// block is simply never referenced via secondNodeMap.
	store.Nodes = append(store.Nodes, second.Nodes...)

	tagged := &TaggedFaces{}
	for ixFirstFace := range first.Faces {
		// GeneratePath reports each warning through wc as well as in its
		// returned count, so wc.count already includes them.
		path, _, err := GeneratePath(first, second, ixFirstFace, secondNodeMap, store, k, wc)
		if err != nil {
			return nil, fmt.Errorf("generating path for first face %d: %w", ixFirstFace, err)
		}

		if err := GenerateOverlapFaces(first, second, ixFirstFace, path, secondNodeMap, tagged, k, wc); err != nil {
			return nil, fmt.Errorf("OverlapMesh generation failed reconstructing first face %d: %w", ixFirstFace, err)
		}
	}

	mesh, err := sphere.NewMesh(store.Nodes, tagged.Faces)
	if err != nil {
		return nil, fmt.Errorf("assembling overlap mesh: %w", err)
	}

	return &Result{
		Mesh:         mesh,
		FirstFaceIx:  tagged.FirstFace,
		SecondFaceIx: tagged.SecondFace,
		FaceCount:    len(tagged.Faces),
		WarningCount: wc.count,
	}, nil
}
