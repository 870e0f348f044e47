package overlap

import (
	"os"

	"github.com/rajeeja/tempestremap/kernel"
	"github.com/rajeeja/tempestremap/trace"
)

// Logger is the diagnostic sink the Path Tracer and Face Reconstructor
// report soft warnings through (spec.md §9's "NoFaceChange" and similar).
// Satisfied by *trace.Logger, and by any other type with these two
// methods, following the teacher's PolygonBuilderOptions pattern of taking
// small interfaces for its pluggable pieces (S2RegionCoverer's loggable
// hooks).
type Logger interface {
	Warnf(format string, args ...any)
	Debugf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Debugf(string, ...any) {}

// DedupStrategy selects how the driver handles nodes that coincide but
// weren't caught by BuildCoincidentNodeVector's kernel-equality pass, per spec.md
// §6. Retain is the only strategy the core itself performs; HashBins and
// MultimapBins name strategies spec.md scopes out as "external, out of
// core scope" (a downstream consumer's job, not the tracer's) and are
// accepted here purely so a caller can record the intended disposition
// without the driver silently ignoring an unrecognized value.
type DedupStrategy int

const (
	// Retain keeps every node the driver produces, coincident or not.
	// This is the only strategy GenerateOverlapMesh itself implements.
	Retain DedupStrategy = iota
	// HashBins names an external post-process that buckets nodes by a
	// spatial hash and merges bins; not performed by this package.
	HashBins
	// MultimapBins names an external post-process that buckets nodes
	// into a multimap keyed by rounded coordinate; not performed by
	// this package.
	MultimapBins
)

func (d DedupStrategy) String() string {
	switch d {
	case HashBins:
		return "HashBins"
	case MultimapBins:
		return "MultimapBins"
	default:
		return "Retain"
	}
}

// Options configures a GenerateOverlapMesh run. Built with functional
// setters rather than a struct literal, mirroring the teacher's
// PolygonBuilderOptions (polygonbuilder.go).
type Options struct {
	variant            kernel.Variant
	highTolerance      float64
	referenceTolerance float64
	dedup              DedupStrategy
	logger             Logger
}

// NewOptions returns the default configuration: the Fuzzy kernel at
// kernel.HighTolerance/kernel.ReferenceTolerance, Retain dedup, and a
// no-op logger.
func NewOptions() *Options {
	return &Options{
		variant:            kernel.Fuzzy,
		highTolerance:      kernel.HighTolerance,
		referenceTolerance: kernel.ReferenceTolerance,
		dedup:              Retain,
		logger:             nopLogger{},
	}
}

// WithKernel selects the Geometry Kernel variant.
func (o *Options) WithKernel(v kernel.Variant) *Options {
	o.variant = v
	return o
}

// WithHighTolerance overrides the Fuzzy kernel's node-equality tolerance
// (radians), per spec.md §6's "Tolerances are configurable". Has no
// effect on a run using the Exact kernel.
func (o *Options) WithHighTolerance(radians float64) *Options {
	o.highTolerance = radians
	return o
}

// WithReferenceTolerance overrides the Exact kernel's node-equality
// tolerance (radians), per spec.md §6's "Tolerances are configurable".
// Has no effect on a run using the Fuzzy kernel.
func (o *Options) WithReferenceTolerance(radians float64) *Options {
	o.referenceTolerance = radians
	return o
}

// WithDedupStrategy records the intended node-dedup disposition. Only
// Retain is actually performed by GenerateOverlapMesh; HashBins and
// MultimapBins are recorded on the Options value for a caller to act on
// downstream, not applied internally (see DedupStrategy).
func (o *Options) WithDedupStrategy(d DedupStrategy) *Options {
	o.dedup = d
	return o
}

// DedupStrategy reports the configured node-dedup disposition.
func (o *Options) DedupStrategy() DedupStrategy { return o.dedup }

// WithLogger installs a diagnostic sink for soft warnings.
func (o *Options) WithLogger(l Logger) *Options {
	if l != nil {
		o.logger = l
	}
	return o
}

// WithVerbosity installs a default trace.Logger writing to stderr at the
// given verbosity, per spec.md §9's nVerbosity knob. A caller who needs a
// different writer should build their own trace.Logger and pass it to
// WithLogger instead; this is sugar for the common case.
func (o *Options) WithVerbosity(v trace.Verbosity) *Options {
	o.logger = trace.NewLogger(os.Stderr, v)
	return o
}

func (o *Options) kernel() kernel.Kernel {
	return kernel.NewWithTolerances(o.variant, o.highTolerance, o.referenceTolerance)
}
