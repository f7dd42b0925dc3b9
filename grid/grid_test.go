package grid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func fillSectionGrid(g *SectionGrid) {
	for i := 1; i <= g.NI; i++ {
		for j := 1; j <= g.NJ; j++ {
			f := float64(100*i + j)
			g.SetPoint(i, j, r3.Vec{X: f, Y: f + 0.25, Z: f + 0.5})
			g.SetUV(i, j, f+0.75, -f)
		}
	}
}

func TestSectionGridIndexing(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {5, 4}, {10, 8}, {3, 17}} {
		g := NewSectionGrid(dims[0], dims[1])
		fillSectionGrid(g)
		for i := 1; i <= g.NI; i++ {
			for j := 1; j <= g.NJ; j++ {
				k := (i-1)*g.NJ + j
				require.Equal(t, k, g.Index(i, j))
				assert.Equal(t, g.XAt(k), g.X(i, j))
				assert.Equal(t, g.YAt(k), g.Y(i, j))
				assert.Equal(t, g.ZAt(k), g.Z(i, j))
				assert.Equal(t, g.UAt(k), g.U(i, j))
				assert.Equal(t, g.VAt(k), g.V(i, j))
				assert.Equal(t, float64(100*i+j), g.X(i, j))
			}
		}
		assert.Equal(t, dims[0]*dims[1], g.Len())
	}
}

func TestSectionGridBounds(t *testing.T) {
	g := NewSectionGrid(3, 4)
	assert.Panics(t, func() { g.X(0, 1) })
	assert.Panics(t, func() { g.X(4, 1) })
	assert.Panics(t, func() { g.X(1, 0) })
	assert.Panics(t, func() { g.X(1, 5) })
	assert.Panics(t, func() { g.XAt(0) })
	assert.Panics(t, func() { g.XAt(13) })
	assert.NotPanics(t, func() { g.XAt(12) })
}

func TestSizeRejectsMalformedDimensions(t *testing.T) {
	assert.Panics(t, func() { NewSectionGrid(0, 4) })
	assert.Panics(t, func() { NewSectionGrid(4, 0) })
	assert.Panics(t, func() { NewSectionGrid(-1, 4) })
	assert.Panics(t, func() { NewPlateGrid(2, -3) })
	assert.Panics(t, func() { NewSectionGrid(math.MaxInt, 2) })
}

func TestResizeDiscardsContents(t *testing.T) {
	g := NewSectionGrid(2, 3)
	fillSectionGrid(g)
	g.Size(3, 2)
	assert.Equal(t, 3, g.NI)
	assert.Equal(t, 2, g.NJ)
	for k := 1; k <= g.Len(); k++ {
		assert.Zero(t, g.XAt(k))
	}
}

func TestSectionGridCopyIsDeep(t *testing.T) {
	g := NewSectionGrid(4, 3)
	fillSectionGrid(g)
	c := g.Copy()
	c.SetPoint(2, 2, r3.Vec{X: -1, Y: -2, Z: -3})
	c.SetUV(2, 2, -4, -5)

	assert.Equal(t, 202.0, g.X(2, 2))
	assert.Equal(t, 202.25, g.Y(2, 2))
	assert.Equal(t, 202.75, g.U(2, 2))
	assert.Equal(t, -1.0, c.X(2, 2))
	assert.Equal(t, -5.0, c.V(2, 2))
}

func TestPlateGridAccessors(t *testing.T) {
	p := NewPlateGrid(3, 5)
	p.SetPoint(2, 4, r3.Vec{X: 1, Y: 2, Z: 3})
	p.SetNormal(2, 4, r3.Vec{Z: 1})

	k := (2-1)*5 + 4
	assert.Equal(t, r3.Vec{X: 1, Y: 2, Z: 3}, p.PointAt(k))
	assert.Equal(t, 1.0, p.XAt(k))
	assert.Equal(t, 1.0, p.Nz(2, 4))

	c := p.Copy()
	c.SetNormal(2, 4, r3.Vec{X: 1})
	assert.Equal(t, r3.Vec{Z: 1}, p.Normal(2, 4))
	assert.Equal(t, r3.Vec{X: 1}, c.Normal(2, 4))
}
