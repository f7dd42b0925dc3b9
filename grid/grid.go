// Package grid stores structured (I,J) surface grids with the 1-based, J-fastest
// indexing used by the panel solver: node (i,j) lives at flat index (i-1)*NJ + j.
// Slot 0 of every flat array is unused so that flat index and storage index agree.
package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Dims holds the extent of a structured grid
type Dims struct {
	NI int // Streamwise sections
	NJ int // Points per section
}

func newDims(ni, nj int) Dims {
	if ni <= 0 || nj <= 0 {
		panic(fmt.Sprintf("invalid grid dimensions: NI=%d, NJ=%d", ni, nj))
	}
	// The flat arrays carry one extra slot
	if nj > (math.MaxInt-1)/ni {
		panic(fmt.Sprintf("grid dimensions overflow: NI=%d, NJ=%d", ni, nj))
	}
	return Dims{NI: ni, NJ: nj}
}

// Index returns the flat storage index of node (i,j), both 1-based
func (d Dims) Index(i, j int) int {
	if i < 1 || i > d.NI || j < 1 || j > d.NJ {
		panic(fmt.Sprintf("grid index (%d,%d) out of range [1..%d]x[1..%d]", i, j, d.NI, d.NJ))
	}
	return (i-1)*d.NJ + j
}

// Len is the number of nodes in the grid
func (d Dims) Len() int {
	return d.NI * d.NJ
}

func (d Dims) checkFlat(k int) {
	if k < 1 || k > d.Len() {
		panic(fmt.Sprintf("flat grid index %d out of range [1..%d]", k, d.Len()))
	}
}

// field allocates one 1-based flat array
func (d Dims) field() []float64 {
	return make([]float64, d.Len()+1)
}

func copyField(f []float64) []float64 {
	out := make([]float64, len(f))
	copy(out, f)
	return out
}

// SectionGrid is the raw lofted surface: NI cross sections of NJ points, each
// carrying a position and its (u,v) surface parameters.
type SectionGrid struct {
	Dims
	x, y, z []float64
	u, v    []float64
}

// NewSectionGrid allocates a zeroed section grid. Non-positive dimensions panic.
func NewSectionGrid(ni, nj int) *SectionGrid {
	g := &SectionGrid{}
	g.Size(ni, nj)
	return g
}

// Size (re)allocates the grid, discarding any existing contents
func (g *SectionGrid) Size(ni, nj int) {
	g.Dims = newDims(ni, nj)
	g.x, g.y, g.z = g.field(), g.field(), g.field()
	g.u, g.v = g.field(), g.field()
}

func (g *SectionGrid) X(i, j int) float64 { return g.x[g.Index(i, j)] }
func (g *SectionGrid) Y(i, j int) float64 { return g.y[g.Index(i, j)] }
func (g *SectionGrid) Z(i, j int) float64 { return g.z[g.Index(i, j)] }
func (g *SectionGrid) U(i, j int) float64 { return g.u[g.Index(i, j)] }
func (g *SectionGrid) V(i, j int) float64 { return g.v[g.Index(i, j)] }

// XAt, YAt, ZAt, UAt and VAt address the flat 1-based arrays directly
func (g *SectionGrid) XAt(k int) float64 { g.checkFlat(k); return g.x[k] }
func (g *SectionGrid) YAt(k int) float64 { g.checkFlat(k); return g.y[k] }
func (g *SectionGrid) ZAt(k int) float64 { g.checkFlat(k); return g.z[k] }
func (g *SectionGrid) UAt(k int) float64 { g.checkFlat(k); return g.u[k] }
func (g *SectionGrid) VAt(k int) float64 { g.checkFlat(k); return g.v[k] }

// Point returns node (i,j) as a vector
func (g *SectionGrid) Point(i, j int) r3.Vec {
	k := g.Index(i, j)
	return r3.Vec{X: g.x[k], Y: g.y[k], Z: g.z[k]}
}

// SetPoint stores the position of node (i,j)
func (g *SectionGrid) SetPoint(i, j int, p r3.Vec) {
	k := g.Index(i, j)
	g.x[k], g.y[k], g.z[k] = p.X, p.Y, p.Z
}

// SetUV stores the surface parameters of node (i,j)
func (g *SectionGrid) SetUV(i, j int, u, v float64) {
	k := g.Index(i, j)
	g.u[k], g.v[k] = u, v
}

// Copy returns a deep copy sharing no storage with g
func (g *SectionGrid) Copy() *SectionGrid {
	return &SectionGrid{
		Dims: g.Dims,
		x:    copyField(g.x),
		y:    copyField(g.y),
		z:    copyField(g.z),
		u:    copyField(g.u),
		v:    copyField(g.v),
	}
}

// PlateGrid is the flat-plate (mean surface) grid: a position and an outward unit
// normal per node.
type PlateGrid struct {
	Dims
	x, y, z    []float64
	nx, ny, nz []float64
}

// NewPlateGrid allocates a zeroed plate grid. Non-positive dimensions panic.
func NewPlateGrid(ni, nj int) *PlateGrid {
	p := &PlateGrid{}
	p.Size(ni, nj)
	return p
}

// Size (re)allocates the grid, discarding any existing contents
func (p *PlateGrid) Size(ni, nj int) {
	p.Dims = newDims(ni, nj)
	p.x, p.y, p.z = p.field(), p.field(), p.field()
	p.nx, p.ny, p.nz = p.field(), p.field(), p.field()
}

func (p *PlateGrid) X(i, j int) float64  { return p.x[p.Index(i, j)] }
func (p *PlateGrid) Y(i, j int) float64  { return p.y[p.Index(i, j)] }
func (p *PlateGrid) Z(i, j int) float64  { return p.z[p.Index(i, j)] }
func (p *PlateGrid) Nx(i, j int) float64 { return p.nx[p.Index(i, j)] }
func (p *PlateGrid) Ny(i, j int) float64 { return p.ny[p.Index(i, j)] }
func (p *PlateGrid) Nz(i, j int) float64 { return p.nz[p.Index(i, j)] }

func (p *PlateGrid) XAt(k int) float64 { p.checkFlat(k); return p.x[k] }
func (p *PlateGrid) YAt(k int) float64 { p.checkFlat(k); return p.y[k] }
func (p *PlateGrid) ZAt(k int) float64 { p.checkFlat(k); return p.z[k] }

// Point returns the plate position of node (i,j)
func (p *PlateGrid) Point(i, j int) r3.Vec {
	k := p.Index(i, j)
	return r3.Vec{X: p.x[k], Y: p.y[k], Z: p.z[k]}
}

// PointAt returns the plate position at flat index k
func (p *PlateGrid) PointAt(k int) r3.Vec {
	p.checkFlat(k)
	return r3.Vec{X: p.x[k], Y: p.y[k], Z: p.z[k]}
}

// Normal returns the normal of node (i,j)
func (p *PlateGrid) Normal(i, j int) r3.Vec {
	k := p.Index(i, j)
	return r3.Vec{X: p.nx[k], Y: p.ny[k], Z: p.nz[k]}
}

func (p *PlateGrid) SetPoint(i, j int, v r3.Vec) {
	k := p.Index(i, j)
	p.x[k], p.y[k], p.z[k] = v.X, v.Y, v.Z
}

func (p *PlateGrid) SetNormal(i, j int, n r3.Vec) {
	k := p.Index(i, j)
	p.nx[k], p.ny[k], p.nz[k] = n.X, n.Y, n.Z
}

// Copy returns a deep copy sharing no storage with p
func (p *PlateGrid) Copy() *PlateGrid {
	return &PlateGrid{
		Dims: p.Dims,
		x:    copyField(p.x),
		y:    copyField(p.y),
		z:    copyField(p.z),
		nx:   copyField(p.nx),
		ny:   copyField(p.ny),
		nz:   copyField(p.nz),
	}
}
