package body

import (
	"fmt"
	"io"
	"os"

	"github.com/notargets/VSPBody/grid"
	"github.com/notargets/VSPBody/readers"
	"gonum.org/v1/gonum/spatial/r3"
)

// GeometryReader extracts the section grid of the caseNumber-th component
// named name from r, returning the component's name as found in the input
type GeometryReader interface {
	ReadGeometry(name string, caseNumber int, r io.Reader) (string, *grid.SectionGrid, error)
}

func (b *Body) reader() GeometryReader {
	if b.Reader == nil {
		return readers.DegenReader{}
	}
	return b.Reader
}

// ReadFile loads the body geometry from r. On failure the body is left
// Uninitialized.
func (b *Body) ReadFile(name string, caseNumber int, r io.Reader) error {
	component, g, err := b.reader().ReadGeometry(name, caseNumber, r)
	if err != nil {
		b.resetTo(Uninitialized)
		return fmt.Errorf("%w: component %q case %d: %w", ErrIngest, name, caseNumber, err)
	}
	b.resetTo(Uninitialized)
	b.componentName = component
	b.geom = g
	b.stage = GeometryLoaded
	b.logf("Body %s: read %d sections of %d points\n", component, g.NI, g.NJ)
	return nil
}

// ReadFilePath opens path and calls ReadFile
func (b *Body) ReadFilePath(path, name string, caseNumber int) error {
	f, err := os.Open(path)
	if err != nil {
		b.resetTo(Uninitialized)
		return fmt.Errorf("%w: %w", ErrIngest, err)
	}
	defer f.Close()
	return b.ReadFile(name, caseNumber, f)
}

// SetGeometry loads a copy of g as the body geometry
func (b *Body) SetGeometry(componentName string, g *grid.SectionGrid) {
	b.resetTo(Uninitialized)
	b.componentName = componentName
	b.geom = g.Copy()
	b.stage = GeometryLoaded
}

// SetComponentName renames the body without touching its geometry
func (b *Body) SetComponentName(name string) {
	b.componentName = name
}

// SizeGeometryLists allocates an empty ni x nj geometry, discarding the current
// one and everything derived from it. Non-positive dimensions panic.
func (b *Body) SizeGeometryLists(ni, nj int) {
	g := grid.NewSectionGrid(ni, nj)
	b.resetTo(GeometryLoaded)
	b.geom = g
}

// SetGeometryNode edits raw node (i,j) and drops the body back to GeometryLoaded
func (b *Body) SetGeometryNode(i, j int, p r3.Vec, u, v float64) {
	b.mustReach(GeometryLoaded, "SetGeometryNode")
	b.geom.SetPoint(i, j, p)
	b.geom.SetUV(i, j, u, v)
	b.resetTo(GeometryLoaded)
}
