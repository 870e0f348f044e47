package overlap

import (
	"github.com/rajeeja/tempestremap/kernel"
	"github.com/rajeeja/tempestremap/sphere"
)

// BuildCoincidentNodeVector returns how many Second-nodes coincide with a
// First-node, and a map[0..|second.Nodes|) giving, for each Second-node,
// either the coincident First-node's index or sphere.InvalidNode. The
// driver later rewrites every InvalidNode entry to len(first.Nodes)+i.
// Grounded on the original's node-coincidence pass in OverlapMesh.cpp
// (run once before GeneratePath is ever called).
func BuildCoincidentNodeVector(first, second *sphere.Mesh, k kernel.Kernel) (int, []int) {
	m := make([]int, len(second.Nodes))
	count := 0
	for i, sn := range second.Nodes {
		m[i] = sphere.InvalidNode
		for j, fn := range first.Nodes {
			if k.AreNodesEqual(sn, fn) {
				m[i] = j
				count++
				break
			}
		}
	}
	return count, m
}
