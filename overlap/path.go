package overlap

import (
	"fmt"

	"github.com/rajeeja/tempestremap/kernel"
	"github.com/rajeeja/tempestremap/query"
	"github.com/rajeeja/tempestremap/sphere"
)

// GeneratePath traces the oriented boundary of First-face ixFirstFace
// against the Second mesh, emitting one PathSegment per sub-arc that lies
// entirely within a single Second face. secondNodeMap is the coincident-
// node map (BuildCoincidentNodeVector's result, already rewritten by the
// driver to fall back to len(first.Nodes)+i). nodes is the shared,
// append-only Overlap node store; newly-born intersection nodes are
// pushed onto it as they're discovered. Ported from OverlapMesh.cpp's
// GeneratePath.
func GeneratePath(
	first, second *sphere.Mesh,
	ixFirstFace int,
	secondNodeMap []int,
	nodes *NodeStore,
	k kernel.Kernel,
	log Logger,
) ([]PathSegment, int, error) {
	firstFace := first.Faces[ixFirstFace]
	n := firstFace.NumVertices()
	if n == 0 {
		return nil, 0, nil
	}

	firstRawNode := func(ix int) kernel.Node { return first.Nodes[ix] }

	startRaw := firstFace.Edges[0].Node0
	startCoord := firstRawNode(startRaw)
	hits := query.FindFaceFromNode(second, startCoord, k)
	if len(hits.Hits) == 0 {
		return nil, 0, fmt.Errorf("face %d, vertex 0: %w", ixFirstFace, ErrNoInitialFace)
	}
	var ixCurrentSecondFace int
	if len(hits.Hits) == 1 {
		ixCurrentSecondFace = hits.Hits[0].Face
	} else {
		dirEnd := firstRawNode(firstFace.Edges[0].Node1)
		var candidates []int
		for _, h := range hits.Hits {
			candidates = append(candidates, h.Face)
		}
		f, err := query.FindFaceNearNode(second, startCoord, dirEnd, firstFace.Edges[0].Type, k, candidates...)
		if err != nil {
			return nil, 0, fmt.Errorf("face %d, vertex 0: %w: %v", ixFirstFace, ErrNoInitialFace, err)
		}
		ixCurrentSecondFace = f
	}

	var path []PathSegment
	ixOverlapNodeCurrent := startRaw
	warnings := 0

	for i := 0; i < n; i++ {
		firstEdge := firstFace.Edges[i]
		if firstEdge.IsDegenerate() {
			continue
		}
		nodeFirstEnd := firstEdge.Node1
		a0 := firstRawNode(firstEdge.Node0)
		a1 := firstRawNode(nodeFirstEnd)
		nextEdge := firstFace.Edges[(i+1)%n]
		nextDirEnd := firstRawNode(nextEdge.Node1)
		// Reset per first-edge, mirroring OverlapMesh.cpp:207's
		// Node nodeLastIntersection = nodeFirstBegin declared inside this
		// same loop: a0 is where this edge starts, so any intersection the
		// previous edge ended on (which is this edge's a0 too, for a T-
		// junction) is re-armed as the filter for this edge's own scan
		// instead of leaking across edges.
		a0v := a0
		nodeLastIntersection := &a0v

		for {
			secondFace := second.Faces[ixCurrentSecondFace]
			m := secondFace.NumVertices()

			type hit struct {
				j     int
				point kernel.Node
			}
			var found []hit

			for j := 0; j < m; j++ {
				se := secondFace.Edges[j]
				if se.IsDegenerate() {
					return nil, 0, fmt.Errorf("face %d, second face %d, edge %d: %w", ixFirstFace, ixCurrentSecondFace, j, ErrZeroEdge)
				}
				b0 := second.Nodes[se.Node0]
				b1 := second.Nodes[se.Node1]
				pts, coincident := k.CalculateEdgeIntersections(a0, a1, firstEdge.Type, b0, b1, se.Type, nodeLastIntersection)
				if coincident {
					return nil, 0, fmt.Errorf("face %d, second face %d, edge %d: %w", ixFirstFace, ixCurrentSecondFace, j, ErrCoincidentEdges)
				}
				for _, p := range pts {
					found = append(found, hit{j: j, point: p})
				}
			}

			if len(found) == 0 {
				if err := query.CheckNoSpuriousEdgeTermination(second, ixCurrentSecondFace, a1, k); err != nil {
					log.Debugf("face %d: %v", ixFirstFace, err)
				}
				path = append(path, PathSegment{
					Edge:       sphere.Edge{Node0: ixOverlapNodeCurrent, Node1: nodeFirstEnd, Type: firstEdge.Type},
					FirstFace:  ixFirstFace,
					SecondFace: ixCurrentSecondFace,
					IntType:    IntersectNone,
				})
				ixOverlapNodeCurrent = nodeFirstEnd
				break
			}

			countsByEdge := map[int]int{}
			for _, h := range found {
				countsByEdge[h.j]++
			}
			for _, c := range countsByEdge {
				if c > 1 {
					return nil, 0, fmt.Errorf("face %d, second face %d: %w", ixFirstFace, ixCurrentSecondFace, ErrNonConvexIntersection)
				}
			}
			if len(found) > 1 {
				return nil, 0, fmt.Errorf("face %d, second face %d: %w", ixFirstFace, ixCurrentSecondFace, ErrNonConvexIntersection)
			}

			j := found[0].j
			p := found[0].point
			se := secondFace.Edges[j]
			s0, s1 := se.Node0, se.Node1
			s0Coord, s1Coord := second.Nodes[s0], second.Nodes[s1]

			endsOnFirstEdgeEnd := k.AreNodesEqual(p, a1)

			switch {
			case endsOnFirstEdgeEnd && k.AreNodesEqual(p, s0Coord):
				// Case A, p == s0: first edge ends exactly on a
				// Second-vertex.
				next, err := query.FindFaceNearNode(second, s0Coord, nextDirEnd, nextEdge.Type, k)
				segType := IntersectNode
				ixIntersect := j
				if err == nil && next != ixCurrentSecondFace {
					path = append(path, PathSegment{
						Edge:        sphere.Edge{Node0: ixOverlapNodeCurrent, Node1: secondNodeMap[s0], Type: firstEdge.Type},
						FirstFace:   ixFirstFace,
						SecondFace:  ixCurrentSecondFace,
						IntType:     segType,
						IxIntersect: ixIntersect,
					})
					ixCurrentSecondFace = next
				} else {
					path = append(path, PathSegment{
						Edge:        sphere.Edge{Node0: ixOverlapNodeCurrent, Node1: secondNodeMap[s0], Type: firstEdge.Type},
						FirstFace:   ixFirstFace,
						SecondFace:  ixCurrentSecondFace,
						IntType:     IntersectNone,
						IxIntersect: j,
					})
					warnings++
					log.Warnf("face %d: second face did not change across vertex crossing at end of first-edge %d", ixFirstFace, i)
				}
				ixOverlapNodeCurrent = nodeFirstEnd

			case endsOnFirstEdgeEnd && k.AreNodesEqual(p, s1Coord):
				// Case A, p == s1: symmetric, local index (j+1)%m.
				jNext := (j + 1) % m
				next, err := query.FindFaceNearNode(second, s1Coord, nextDirEnd, nextEdge.Type, k)
				if err == nil && next != ixCurrentSecondFace {
					path = append(path, PathSegment{
						Edge:        sphere.Edge{Node0: ixOverlapNodeCurrent, Node1: secondNodeMap[s1], Type: firstEdge.Type},
						FirstFace:   ixFirstFace,
						SecondFace:  ixCurrentSecondFace,
						IntType:     IntersectNode,
						IxIntersect: jNext,
					})
					ixCurrentSecondFace = next
				} else {
					path = append(path, PathSegment{
						Edge:        sphere.Edge{Node0: ixOverlapNodeCurrent, Node1: secondNodeMap[s1], Type: firstEdge.Type},
						FirstFace:   ixFirstFace,
						SecondFace:  ixCurrentSecondFace,
						IntType:     IntersectNone,
						IxIntersect: jNext,
					})
					warnings++
					log.Warnf("face %d: second face did not change across vertex crossing at end of first-edge %d", ixFirstFace, i)
				}
				ixOverlapNodeCurrent = nodeFirstEnd

			case endsOnFirstEdgeEnd:
				// Case A, p strictly interior to the Second-edge: p is
				// exactly nodeFirstEnd by construction (that's what
				// endsOnFirstEdgeEnd asserts), so this reuses the
				// First-mesh's own node rather than minting a new one,
				// mirroring OverlapMesh.cpp:450-458's reuse of
				// edgeFirstCurrent[1] here instead of pushing a fresh
				// node onto nodevecOverlap.
				fp, ok := second.EdgeMap().Lookup(se)
				if !ok {
					return nil, 0, fmt.Errorf("face %d: %w", ixFirstFace, ErrMissingEdge)
				}
				other := fp.Other(ixCurrentSecondFace)
				next, err := query.FindFaceNearNode(second, p, nextDirEnd, nextEdge.Type, k, ixCurrentSecondFace, other)
				ixEndNode := nodeFirstEnd
				if err == nil && next != ixCurrentSecondFace {
					path = append(path, PathSegment{
						Edge:          sphere.Edge{Node0: ixOverlapNodeCurrent, Node1: ixEndNode, Type: firstEdge.Type},
						FirstFace:     ixFirstFace,
						SecondFace:    ixCurrentSecondFace,
						IntType:       IntersectEdge,
						IxIntersect:   j,
						EdgeIntersect: se,
					})
					ixCurrentSecondFace = next
				} else {
					path = append(path, PathSegment{
						Edge:          sphere.Edge{Node0: ixOverlapNodeCurrent, Node1: ixEndNode, Type: firstEdge.Type},
						FirstFace:     ixFirstFace,
						SecondFace:    ixCurrentSecondFace,
						IntType:       IntersectEdge,
						IxIntersect:   j,
						EdgeIntersect: se,
					})
					warnings++
					log.Warnf("face %d: second face did not change across edge crossing at end of first-edge %d", ixFirstFace, i)
				}
				ixOverlapNodeCurrent = nodeFirstEnd

			case k.AreNodesEqual(p, s0Coord):
				// Case B: first edge crosses a Second-vertex strictly
				// before its own end.
				path = append(path, PathSegment{
					Edge:        sphere.Edge{Node0: ixOverlapNodeCurrent, Node1: secondNodeMap[s0], Type: firstEdge.Type},
					FirstFace:   ixFirstFace,
					SecondFace:  ixCurrentSecondFace,
					IntType:     IntersectNode,
					IxIntersect: j,
				})
				next, err := query.FindFaceNearNode(second, s0Coord, a1, firstEdge.Type, k)
				if err == nil {
					ixCurrentSecondFace = next
				} else {
					warnings++
					log.Warnf("face %d: could not disambiguate face across vertex on first-edge %d", ixFirstFace, i)
				}
				ixOverlapNodeCurrent = secondNodeMap[s0]
				pv := p
				nodeLastIntersection = &pv
				continue

			case k.AreNodesEqual(p, s1Coord):
				// Case C: symmetric, local index (j+1)%m.
				jNext := (j + 1) % m
				path = append(path, PathSegment{
					Edge:        sphere.Edge{Node0: ixOverlapNodeCurrent, Node1: secondNodeMap[s1], Type: firstEdge.Type},
					FirstFace:   ixFirstFace,
					SecondFace:  ixCurrentSecondFace,
					IntType:     IntersectNode,
					IxIntersect: jNext,
				})
				next, err := query.FindFaceNearNode(second, s1Coord, a1, firstEdge.Type, k)
				if err == nil {
					ixCurrentSecondFace = next
				} else {
					warnings++
					log.Warnf("face %d: could not disambiguate face across vertex on first-edge %d", ixFirstFace, i)
				}
				ixOverlapNodeCurrent = secondNodeMap[s1]
				pv := p
				nodeLastIntersection = &pv
				continue

			default:
				// Case D: p strictly interior to both edges.
				ixNewNode := nodes.Append(p)
				path = append(path, PathSegment{
					Edge:          sphere.Edge{Node0: ixOverlapNodeCurrent, Node1: ixNewNode, Type: firstEdge.Type},
					FirstFace:     ixFirstFace,
					SecondFace:    ixCurrentSecondFace,
					IntType:       IntersectEdge,
					IxIntersect:   j,
					EdgeIntersect: se,
				})
				fp, ok := second.EdgeMap().Lookup(se)
				if !ok {
					return nil, 0, fmt.Errorf("face %d: %w", ixFirstFace, ErrMissingEdge)
				}
				next, err := query.FindFaceNearNode(second, p, a1, firstEdge.Type, k, fp.Face0, fp.Face1)
				if err == nil && next != ixCurrentSecondFace {
					ixCurrentSecondFace = next
				} else {
					warnings++
					log.Warnf("face %d: second face did not change across edge crossing mid first-edge %d", ixFirstFace, i)
					if err == nil {
						ixCurrentSecondFace = next
					}
				}
				ixOverlapNodeCurrent = ixNewNode
				pv := p
				nodeLastIntersection = &pv
				continue
			}

			break
		}
	}

	return path, warnings, nil
}
