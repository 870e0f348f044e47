package kernel

import "github.com/rajeeja/tempestremap/r3"

// Node is a point on the unit sphere, spec.md §3's Node, represented as the
// r3.Vector the rest of the geometry kernel operates on.
type Node = r3.Vector
