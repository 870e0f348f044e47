package overlap

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/rajeeja/tempestremap/kernel"
	"github.com/rajeeja/tempestremap/query"
	"github.com/rajeeja/tempestremap/sphere"
)

// GenerateOverlapFaces stitches one First face's PathSegment trail into
// closed Overlap polygons, alternating First-boundary legs with
// Second-face interior legs, then flood-fills any Second face left wholly
// interior to the First face. Appends the resulting faces to out, tagged
// with the (First face, Second face) pair that produced each one (see
// TaggedFaces) per spec.md §1/§3/§6. Ported from OverlapMesh.cpp's
// GenerateOverlapFaces.
func GenerateOverlapFaces(
	first, second *sphere.Mesh,
	ixFirstFace int,
	path []PathSegment,
	secondNodeMap []int,
	out *TaggedFaces,
	k kernel.Kernel,
	log Logger,
) error {
	n := len(path)
	if n == 0 {
		return nil
	}
	used := make([]bool, n)
	boundary := map[int]bool{}
	interior := map[int]bool{}
	for _, seg := range path {
		boundary[seg.SecondFace] = true
	}

	for {
		j := -1
		for idx, u := range used {
			if !u {
				j = idx
				break
			}
		}
		if j == -1 {
			break
		}

		origin := path[j].Node0
		// tagSecondFace names the Second face this loop is stitched
		// against. It's set once at the start of each closed loop
		// (the common case is a loop that only ever touches one
		// Second face between transitions) and is what the emitted
		// face gets tagged with.
		tagSecondFace := path[j].SecondFace
		var face sphere.Face

		for {
			if used[j] {
				return ErrReuseTracedSegment
			}
			used[j] = true
			seg := path[j]
			face.Edges = append(face.Edges, seg.Edge)

			if seg.Node1 == origin {
				out.Append(face, ixFirstFace, tagSecondFace)
				face = sphere.Face{}
				break
			}

			if seg.IntType == IntersectNone {
				j = (j + 1) % n
				continue
			}

			// Second-boundary leg: walk the current Second face's
			// edges starting at seg.IxIntersect, looking for an exit
			// back onto the First boundary.
			ixCurSecondFace := seg.SecondFace
			if ixCurSecondFace != tagSecondFace {
				return ErrSecondFaceMismatch
			}
			secondFace := second.Faces[ixCurSecondFace]
			m := secondFace.NumVertices()
			ixEdge := seg.IxIntersect
			currentOverlapNode := seg.Node1
			closed := false
			steps := 0

			for {
				se := secondFace.Edges[ixEdge]
				if se.IsDegenerate() {
					ixEdge = (ixEdge + 1) % m
					steps++
					if steps > m {
						return ErrInfiniteLoop
					}
					continue
				}

				fp, ok := second.EdgeMap().Lookup(se)
				if !ok {
					return fmt.Errorf("second face %d, edge %d: %w", ixCurSecondFace, ixEdge, ErrMissingEdge)
				}
				interior[fp.Other(ixCurSecondFace)] = true

				exitK := -1
				for k := j + 1; k < n; k++ {
					cand := path[k]
					matches := false
					switch cand.IntType {
					case IntersectNode:
						// cand.IxIntersect is a local edge/vertex index on
						// whichever Second face segment k was recorded
						// against, not a global node id — comparing it to
						// se.Node0/Node1 directly only happens to work when
						// local indices coincide with global ones. Compare
						// the Overlap node segment k actually arrived at
						// instead.
						matches = cand.Node1 == secondNodeMap[se.Node0] || cand.Node1 == secondNodeMap[se.Node1]
					case IntersectEdge:
						matches = cand.EdgeIntersect.SameUndirected(se)
					}
					if matches {
						exitK = k
						break
					}
				}

				if exitK >= 0 && exitK+1 < n && path[exitK+1].SecondFace == ixCurSecondFace {
					face.Edges = append(face.Edges, sphere.Edge{
						Node0: currentOverlapNode,
						Node1: path[exitK].Node1,
						Type:  se.Type,
					})
					if path[exitK].Node1 == origin {
						out.Append(face, ixFirstFace, tagSecondFace)
						face = sphere.Face{}
						closed = true
						j = exitK + 1
						break
					}
					j = exitK + 1
					break
				}

				nextOverlapNode := secondNodeMap[se.Node1]
				face.Edges = append(face.Edges, sphere.Edge{
					Node0: currentOverlapNode,
					Node1: nextOverlapNode,
					Type:  se.Type,
				})
				currentOverlapNode = nextOverlapNode
				if currentOverlapNode == origin {
					out.Append(face, ixFirstFace, tagSecondFace)
					face = sphere.Face{}
					closed = true
					j = (j + 1) % n
					break
				}

				ixEdge = (ixEdge + 1) % m
				steps++
				if steps > m {
					return ErrInfiniteLoop
				}
			}

			if closed {
				break
			}
		}
	}

	// A Second face that lies wholly inside the First face never appears
	// on any PathSegment (the First boundary never comes near it), so it
	// can't be discovered through `interior` alone. Supplementing the
	// path-derived interior set with a direct containment test against
	// a representative vertex of every not-yet-seen Second face closes
	// that gap (spec.md §8's "Second face lies wholly inside a First
	// face" boundary case).
	for f, face := range second.Faces {
		if boundary[f] || interior[f] || face.NumVertices() == 0 {
			continue
		}
		if query.Contains(first, ixFirstFace, face.Vertex(0, second.Nodes), k) {
			interior[f] = true
		}
	}

	// setSecondFacesInterior − setSecondFacesOnBoundary, per spec: every
	// Second face touched only from the inside, never from the First
	// boundary itself, is a flood-fill seed.
	queue := lo.Filter(lo.Keys(interior), func(f int, _ int) bool {
		return f != sphere.InvalidNode && !boundary[f]
	})
	added := map[int]bool{}
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		if added[f] {
			continue
		}
		added[f] = true
		out.Append(copySecondFace(second.Faces[f], secondNodeMap), ixFirstFace, f)
		for _, e := range second.Faces[f].Edges {
			if e.IsDegenerate() {
				continue
			}
			fp, ok := second.EdgeMap().Lookup(e)
			if !ok {
				continue
			}
			other := fp.Other(f)
			if other != sphere.InvalidNode && !added[other] && !boundary[other] {
				queue = append(queue, other)
			}
		}
	}

	return nil
}

func copySecondFace(f sphere.Face, secondNodeMap []int) sphere.Face {
	out := sphere.Face{Edges: make([]sphere.Edge, len(f.Edges))}
	for i, e := range f.Edges {
		out.Edges[i] = sphere.Edge{
			Node0: secondNodeMap[e.Node0],
			Node1: secondNodeMap[e.Node1],
			Type:  e.Type,
		}
	}
	return out
}
