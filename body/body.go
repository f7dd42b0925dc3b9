// Package body turns the lofted section grid of a fuselage-like body into the
// inputs of a panel / vortex lattice solver: a triangulated surface mesh, a
// flat-plate (mean surface) grid with outward normals, per-station local chords,
// and the trailing-edge Kutta nodes with their wake seed positions.
//
// A Body moves through the stages Uninitialized → GeometryLoaded → Classified →
// Derived → Meshed → WakeReady. Each pipeline step requires the previous stage,
// and changing the geometry drops the body back to GeometryLoaded, discarding
// everything derived from it.
package body

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/notargets/VSPBody/grid"
	"github.com/notargets/VSPBody/mesh"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	ErrStage    = errors.New("body stage not reached")
	ErrTopology = errors.New("invalid body topology")
	ErrIngest   = errors.New("geometry ingestion failed")
)

// SliceType selects the plane the flat plate is collapsed into. The values
// match the solver's VERTICAL / HORIZONTAL flags.
type SliceType int

const (
	Vertical   SliceType = 1 // Plate in the x-z plane
	Horizontal SliceType = 2 // Plate in the x-y plane
)

func (s SliceType) String() string {
	switch s {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	}
	return fmt.Sprintf("SliceType(%d)", int(s))
}

// ParseSliceType accepts "vertical" or "horizontal", in any case
func ParseSliceType(s string) (SliceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical":
		return Vertical, nil
	case "horizontal":
		return Horizontal, nil
	}
	return 0, fmt.Errorf("unknown slice type %q", s)
}

// EndCapPolicy controls how open nose and tail sections are closed in the mesh
type EndCapPolicy int

const (
	EndCapFan  EndCapPolicy = iota // Fan of triangles around an added centroid node
	EndCapNone                     // Leave the section open
)

func (e EndCapPolicy) String() string {
	switch e {
	case EndCapFan:
		return "fan"
	case EndCapNone:
		return "none"
	}
	return fmt.Sprintf("EndCapPolicy(%d)", int(e))
}

func ParseEndCapPolicy(s string) (EndCapPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fan":
		return EndCapFan, nil
	case "none":
		return EndCapNone, nil
	}
	return 0, fmt.Errorf("unknown end cap policy %q", s)
}

type Options struct {
	// A section whose points all lie within Tolerance of their centroid is
	// collapsed to a single point
	Tolerance float64
	SliceType SliceType
	EndCaps   EndCapPolicy
	Verbose   bool
}

func DefaultOptions() Options {
	return Options{
		Tolerance: 1e-6,
		SliceType: Horizontal,
		EndCaps:   EndCapFan,
	}
}

func (o Options) Validate() error {
	if !(o.Tolerance > 0) {
		return fmt.Errorf("tolerance must be positive, got %g", o.Tolerance)
	}
	if o.SliceType != Vertical && o.SliceType != Horizontal {
		return fmt.Errorf("invalid slice type %d", int(o.SliceType))
	}
	if o.EndCaps != EndCapFan && o.EndCaps != EndCapNone {
		return fmt.Errorf("invalid end cap policy %d", int(o.EndCaps))
	}
	return nil
}

type Stage uint8

const (
	Uninitialized Stage = iota
	GeometryLoaded
	Classified
	Derived
	Meshed
	WakeReady
)

func (s Stage) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case GeometryLoaded:
		return "GeometryLoaded"
	case Classified:
		return "Classified"
	case Derived:
		return "Derived"
	case Meshed:
		return "Meshed"
	case WakeReady:
		return "WakeReady"
	}
	return fmt.Sprintf("Stage(%d)", uint8(s))
}

// NormalWarning reports a plate node whose own normal was undefined and was
// replaced by a neighbor's. It points at suspect input geometry.
type NormalWarning struct {
	I, J   int
	Source string // Where the substitute came from
}

func (w NormalWarning) String() string {
	return fmt.Sprintf("degenerate normal at (%d,%d), substituted from %s", w.I, w.J, w.Source)
}

// Body owns the raw section grid of one component and everything derived from
// it. No storage is shared between bodies.
type Body struct {
	ID     uuid.UUID
	Reader GeometryReader // nil selects readers.DegenReader

	opts          Options
	stage         Stage
	componentName string

	// Raw lofted geometry
	geom *grid.SectionGrid

	// Section classification, station arrays are 1-based
	noseIsClosed bool
	tailIsClosed bool
	seamIsClosed bool
	collapsed    []bool
	numDistinctJ int
	centroid     []r3.Vec

	// Flat plate representation
	plate      *grid.PlateGrid
	localChord []float64
	warnings   []NormalWarning

	// Triangulated surface
	surfaceID int
	surface   *mesh.Mesh
	meshNode  []int // Geometry flat index → mesh node

	// Wake data, 1-based
	trailingRow        int
	numberOfKuttaNodes int
	kuttaNode          []int
	kuttaMeshNode      []int
	wakeTrailingEdgeX  []float64
	wakeTrailingEdgeY  []float64
	wakeTrailingEdgeZ  []float64
}

// New creates an uninitialized body. Invalid options panic.
func New(opts Options) *Body {
	if err := opts.Validate(); err != nil {
		panic(err)
	}
	return &Body{
		ID:      uuid.New(),
		opts:    opts,
		surface: mesh.New(),
	}
}

func (b *Body) logf(format string, args ...interface{}) {
	if b.opts.Verbose {
		fmt.Printf(format, args...)
	}
}

// resetTo drops the body back to stage s, discarding data of later stages
func (b *Body) resetTo(s Stage) {
	if s < WakeReady {
		b.trailingRow = 0
		b.numberOfKuttaNodes = 0
		b.kuttaNode, b.kuttaMeshNode = nil, nil
		b.wakeTrailingEdgeX, b.wakeTrailingEdgeY, b.wakeTrailingEdgeZ = nil, nil, nil
	}
	if s < Meshed {
		b.surfaceID = 0
		b.surface = mesh.New()
		b.meshNode = nil
	}
	if s < Derived {
		b.plate = nil
		b.localChord = nil
		b.warnings = nil
	}
	if s < Classified {
		b.noseIsClosed, b.tailIsClosed, b.seamIsClosed = false, false, false
		b.collapsed = nil
		b.numDistinctJ = 0
		b.centroid = nil
	}
	if s < GeometryLoaded {
		b.geom = nil
		b.componentName = ""
	}
	b.stage = s
}

func (b *Body) requireStage(s Stage, op string) error {
	if b.stage < s {
		return fmt.Errorf("%w: %s needs %v, body %q is %v", ErrStage, op, s, b.componentName, b.stage)
	}
	return nil
}

func (b *Body) mustReach(s Stage, what string) {
	if b.stage < s {
		panic(fmt.Sprintf("%s queried before stage %v, body %q is %v", what, s, b.componentName, b.stage))
	}
}

// Prepare runs every remaining pipeline step, tagging the mesh with surfaceID
func (b *Body) Prepare(surfaceID int) error {
	if err := b.requireStage(GeometryLoaded, "Prepare"); err != nil {
		return err
	}
	if b.stage < Classified {
		if err := b.CheckForDegenerateXSections(); err != nil {
			return err
		}
	}
	if b.stage < Derived {
		if err := b.CreateFlatPlate(); err != nil {
			return err
		}
	}
	if b.stage < Meshed || b.surfaceID != surfaceID {
		if err := b.CreateMesh(surfaceID); err != nil {
			return err
		}
	}
	if b.stage < WakeReady {
		if err := b.FindKuttaNodes(); err != nil {
			return err
		}
	}
	return nil
}

func (b *Body) Stage() Stage            { return b.stage }
func (b *Body) Options() Options        { return b.opts }
func (b *Body) ComponentName() string   { return b.componentName }
func (b *Body) SliceType() SliceType    { return b.opts.SliceType }
func (b *Body) Verbose() bool           { return b.opts.Verbose }
func (b *Body) SetVerbose(verbose bool) { b.opts.Verbose = verbose }

func (b *Body) NumGeomI() int {
	b.mustReach(GeometryLoaded, "NumGeomI")
	return b.geom.NI
}

func (b *Body) NumGeomJ() int {
	b.mustReach(GeometryLoaded, "NumGeomJ")
	return b.geom.NJ
}

// Geometry exposes the raw section grid. It must be treated as read only; use
// SetGeometryNode to edit it.
func (b *Body) Geometry() *grid.SectionGrid {
	b.mustReach(GeometryLoaded, "Geometry")
	return b.geom
}

func (b *Body) NoseIsClosed() bool {
	b.mustReach(Classified, "NoseIsClosed")
	return b.noseIsClosed
}

func (b *Body) TailIsClosed() bool {
	b.mustReach(Classified, "TailIsClosed")
	return b.tailIsClosed
}

// SeamIsClosed reports whether the last circumferential point repeats the first
func (b *Body) SeamIsClosed() bool {
	b.mustReach(Classified, "SeamIsClosed")
	return b.seamIsClosed
}

// SectionIsCollapsed reports whether section i degenerates to a single point
func (b *Body) SectionIsCollapsed(i int) bool {
	b.mustReach(Classified, "SectionIsCollapsed")
	return b.collapsed[i]
}

// NumberOfDistinctJ is the number of distinct circumferential points per section
func (b *Body) NumberOfDistinctJ() int {
	b.mustReach(Classified, "NumberOfDistinctJ")
	return b.numDistinctJ
}

// StationCentroid returns the centroid of section i
func (b *Body) StationCentroid(i int) r3.Vec {
	b.mustReach(Classified, "StationCentroid")
	return b.centroid[i]
}

func (b *Body) Plate() *grid.PlateGrid {
	b.mustReach(Derived, "Plate")
	return b.plate
}

func (b *Body) NumPlateI() int {
	b.mustReach(Derived, "NumPlateI")
	return b.plate.NI
}

func (b *Body) NumPlateJ() int {
	b.mustReach(Derived, "NumPlateJ")
	return b.plate.NJ
}

// NumberOfSpanStations counts the gaps between plate I rows
func (b *Body) NumberOfSpanStations() int {
	b.mustReach(Derived, "NumberOfSpanStations")
	return b.plate.NI - 1
}

// LocalChord returns the characteristic streamwise length of plate station i
func (b *Body) LocalChord(i int) float64 {
	b.mustReach(Derived, "LocalChord")
	return b.localChord[i]
}

// Warnings returns the degenerate normal substitutions made for the plate
func (b *Body) Warnings() []NormalWarning {
	b.mustReach(Derived, "Warnings")
	return append([]NormalWarning(nil), b.warnings...)
}

// Grid returns the body's triangle mesh
func (b *Body) Grid() *mesh.Mesh {
	b.mustReach(Meshed, "Grid")
	return b.surface
}

func (b *Body) SurfaceID() int {
	b.mustReach(Meshed, "SurfaceID")
	return b.surfaceID
}

// MeshNode returns the mesh node of geometry node (i,j)
func (b *Body) MeshNode(i, j int) int {
	b.mustReach(Meshed, "MeshNode")
	return b.meshNode[b.geom.Index(i, j)]
}

func (b *Body) NumberOfKuttaNodes() int {
	b.mustReach(WakeReady, "NumberOfKuttaNodes")
	return b.numberOfKuttaNodes
}

// KuttaNode returns the plate flat index of Kutta node k, k in [1,NumberOfKuttaNodes]
func (b *Body) KuttaNode(k int) int {
	b.mustReach(WakeReady, "KuttaNode")
	return b.kuttaNode[k]
}

// KuttaMeshNode returns the mesh node of Kutta node k
func (b *Body) KuttaMeshNode(k int) int {
	b.mustReach(WakeReady, "KuttaMeshNode")
	return b.kuttaMeshNode[k]
}

func (b *Body) WakeTrailingEdgeX(k int) float64 {
	b.mustReach(WakeReady, "WakeTrailingEdgeX")
	return b.wakeTrailingEdgeX[k]
}

func (b *Body) WakeTrailingEdgeY(k int) float64 {
	b.mustReach(WakeReady, "WakeTrailingEdgeY")
	return b.wakeTrailingEdgeY[k]
}

func (b *Body) WakeTrailingEdgeZ(k int) float64 {
	b.mustReach(WakeReady, "WakeTrailingEdgeZ")
	return b.wakeTrailingEdgeZ[k]
}

// TrailingEdgeRow is the plate I row the wake is shed from
func (b *Body) TrailingEdgeRow() int {
	b.mustReach(WakeReady, "TrailingEdgeRow")
	return b.trailingRow
}

// Copy returns a deep copy of b with a fresh ID. The copy shares no storage
// with b.
func (b *Body) Copy() *Body {
	c := &Body{
		ID:                 uuid.New(),
		Reader:             b.Reader,
		opts:               b.opts,
		stage:              b.stage,
		componentName:      b.componentName,
		noseIsClosed:       b.noseIsClosed,
		tailIsClosed:       b.tailIsClosed,
		seamIsClosed:       b.seamIsClosed,
		collapsed:          append([]bool(nil), b.collapsed...),
		numDistinctJ:       b.numDistinctJ,
		centroid:           append([]r3.Vec(nil), b.centroid...),
		localChord:         append([]float64(nil), b.localChord...),
		warnings:           append([]NormalWarning(nil), b.warnings...),
		surfaceID:          b.surfaceID,
		surface:            b.surface.Copy(),
		meshNode:           append([]int(nil), b.meshNode...),
		trailingRow:        b.trailingRow,
		numberOfKuttaNodes: b.numberOfKuttaNodes,
		kuttaNode:          append([]int(nil), b.kuttaNode...),
		kuttaMeshNode:      append([]int(nil), b.kuttaMeshNode...),
		wakeTrailingEdgeX:  append([]float64(nil), b.wakeTrailingEdgeX...),
		wakeTrailingEdgeY:  append([]float64(nil), b.wakeTrailingEdgeY...),
		wakeTrailingEdgeZ:  append([]float64(nil), b.wakeTrailingEdgeZ...),
	}
	if b.geom != nil {
		c.geom = b.geom.Copy()
	}
	if b.plate != nil {
		c.plate = b.plate.Copy()
	}
	for k := range c.surface.Surfaces {
		c.surface.Surfaces[k].BodyID = c.ID
	}
	return c
}

// String returns a summary of the body and its derived data
func (b *Body) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("=== Body %q ===\n", b.componentName))
	sb.WriteString(fmt.Sprintf("  Stage: %v\n", b.stage))
	sb.WriteString(fmt.Sprintf("  Slice type: %v, end caps: %v, tolerance: %g\n",
		b.opts.SliceType, b.opts.EndCaps, b.opts.Tolerance))
	if b.stage < GeometryLoaded {
		return sb.String()
	}

	sb.WriteString("\n--- Geometry ---\n")
	sb.WriteString(fmt.Sprintf("  Sections (NumGeomI): %d\n", b.geom.NI))
	sb.WriteString(fmt.Sprintf("  Points per section (NumGeomJ): %d\n", b.geom.NJ))

	if b.stage >= Classified {
		sb.WriteString("\n--- Classification ---\n")
		sb.WriteString(fmt.Sprintf("  Nose closed: %v\n", b.noseIsClosed))
		sb.WriteString(fmt.Sprintf("  Tail closed: %v\n", b.tailIsClosed))
		sb.WriteString(fmt.Sprintf("  Seam closed: %v (%d distinct points)\n", b.seamIsClosed, b.numDistinctJ))
	}

	if b.stage >= Derived {
		sb.WriteString("\n--- Flat Plate ---\n")
		sb.WriteString(fmt.Sprintf("  Plate nodes: %d x %d\n", b.plate.NI, b.plate.NJ))
		sb.WriteString(fmt.Sprintf("  Span stations: %d\n", b.plate.NI-1))
		sb.WriteString(fmt.Sprintf("  Chord range: [%.4e, %.4e], total %.4e\n",
			floats.Min(b.localChord[1:]), floats.Max(b.localChord[1:]), floats.Sum(b.localChord[1:])))
		if len(b.warnings) > 0 {
			sb.WriteString(fmt.Sprintf("  Degenerate normals substituted: %d\n", len(b.warnings)))
		}
	}

	if b.stage >= Meshed {
		sb.WriteString("\n--- Mesh ---\n")
		sb.WriteString(fmt.Sprintf("  SurfaceID: %d\n", b.surfaceID))
		sb.WriteString(fmt.Sprintf("  Nodes: %d\n", b.surface.NumberOfNodes()))
		sb.WriteString(fmt.Sprintf("  Triangles: %d\n", b.surface.NumberOfTris()))
		sb.WriteString(fmt.Sprintf("  Wetted area: %.4e\n", b.surface.TotalArea(b.surfaceID)))
	}

	if b.stage >= WakeReady {
		sb.WriteString("\n--- Wake ---\n")
		sb.WriteString(fmt.Sprintf("  Trailing edge row: %d\n", b.trailingRow))
		sb.WriteString(fmt.Sprintf("  Kutta nodes: %d\n", b.numberOfKuttaNodes))
	}

	return sb.String()
}
