package trace

import (
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/rajeeja/tempestremap/r3"
)

// SVGDump renders a set of spherical polygons to an equirectangular
// (longitude/latitude) projection for visual debugging of a failed or
// suspect trace, per spec.md §9's note that the original's printf
// debugging should become a real diagnostic facility rather than a
// second production output format. Not part of the core algorithm: this
// is purely an optional developer aid, invoked by callers that want to
// see what a Path Tracer run produced.
type SVGDump struct {
	w, h int
	canvas *svg.SVG
}

// NewSVGDump starts an SVG document of the given pixel size. Call Close
// when done to emit the closing tag.
func NewSVGDump(out io.Writer, width, height int) *SVGDump {
	canvas := svg.New(out)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")
	return &SVGDump{w: width, h: height, canvas: canvas}
}

func (d *SVGDump) project(n r3.Vector) (int, int) {
	lon := math.Atan2(n.Y, n.X)
	lat := math.Asin(clamp(n.Z, -1, 1))
	x := int((lon + math.Pi) / (2 * math.Pi) * float64(d.w))
	y := int((math.Pi/2 - lat) / math.Pi * float64(d.h))
	return x, y
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Polygon draws a closed loop of sphere nodes with the given stroke/fill
// style string (an SVG style attribute value, e.g. "fill:none;stroke:red").
func (d *SVGDump) Polygon(nodes []r3.Vector, style string) {
	if len(nodes) == 0 {
		return
	}
	xs := make([]int, len(nodes))
	ys := make([]int, len(nodes))
	for i, n := range nodes {
		xs[i], ys[i] = d.project(n)
	}
	d.canvas.Polygon(xs, ys, style)
}

// Point marks a single node, used to call out intersection/coincidence
// points distinctly from the polygon boundaries around them.
func (d *SVGDump) Point(n r3.Vector, radius int, style string) {
	x, y := d.project(n)
	d.canvas.Circle(x, y, radius, style)
}

// Label writes free text at a node's projected position, used to annotate
// face or warning indices during debugging.
func (d *SVGDump) Label(n r3.Vector, text string) {
	x, y := d.project(n)
	d.canvas.Text(x, y, text, "font-size:10px;fill:black")
}

// Close finalizes the SVG document.
func (d *SVGDump) Close() {
	d.canvas.End()
}
