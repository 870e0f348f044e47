// Package s1 holds the one-dimensional (angle) type shared by the geometry
// kernel and mesh queries, mirroring the teacher's split of angle/interval
// arithmetic into its own package rather than folding it into r3 or sphere.
package s1

import "math"

// Angle represents a one-dimensional angle, stored as radians.
type Angle float64

func (a Angle) Radians() float64 { return float64(a) }
func (a Angle) Degrees() float64 { return float64(a) * 180 / math.Pi }

func AngleFromDegrees(deg float64) Angle { return Angle(deg * math.Pi / 180) }
