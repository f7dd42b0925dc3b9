package body

import (
	"fmt"

	"github.com/notargets/VSPBody/grid"
	"gonum.org/v1/gonum/spatial/r3"
)

// sectionCentroid averages points 1..nj of section i
func sectionCentroid(g *grid.SectionGrid, i, nj int) (c r3.Vec) {
	for j := 1; j <= nj; j++ {
		c = r3.Add(c, g.Point(i, j))
	}
	return r3.Scale(1/float64(nj), c)
}

// SectionIsDegenerate reports whether every point of section i lies within tol
// of the section centroid, i.e. the section has collapsed to a point.
func SectionIsDegenerate(g *grid.SectionGrid, i int, tol float64) bool {
	c := sectionCentroid(g, i, g.NJ)
	for j := 1; j <= g.NJ; j++ {
		if r3.Norm(r3.Sub(g.Point(i, j), c)) > tol {
			return false
		}
	}
	return true
}

// seamIsClosed checks that the last circumferential point repeats the first at
// every open station
func seamIsClosed(g *grid.SectionGrid, collapsed []bool, tol float64) bool {
	if g.NJ < 2 {
		return false
	}
	for i := 1; i <= g.NI; i++ {
		if collapsed[i] {
			continue
		}
		if r3.Norm(r3.Sub(g.Point(i, g.NJ), g.Point(i, 1))) > tol {
			return false
		}
	}
	return true
}

// CheckForDegenerateXSections classifies every station as open or collapsed,
// sets the nose, tail and seam flags, and computes the station centroids.
func (b *Body) CheckForDegenerateXSections() error {
	if err := b.requireStage(GeometryLoaded, "CheckForDegenerateXSections"); err != nil {
		return err
	}
	b.resetTo(GeometryLoaded)

	var (
		g   = b.geom
		tol = b.opts.Tolerance
	)
	if g.NI < 2 {
		return fmt.Errorf("%w: body %q has %d sections, need at least 2", ErrTopology, b.componentName, g.NI)
	}

	collapsed := make([]bool, g.NI+1)
	nOpen := 0
	for i := 1; i <= g.NI; i++ {
		collapsed[i] = SectionIsDegenerate(g, i, tol)
		if !collapsed[i] {
			nOpen++
		}
	}
	if nOpen == 0 {
		return fmt.Errorf("%w: every section of body %q is collapsed", ErrTopology, b.componentName)
	}
	for i := 1; i < g.NI; i++ {
		if collapsed[i] && collapsed[i+1] {
			return fmt.Errorf("%w: body %q has consecutive collapsed sections %d and %d",
				ErrTopology, b.componentName, i, i+1)
		}
	}

	seam := seamIsClosed(g, collapsed, tol)
	nd := g.NJ
	if seam {
		nd = g.NJ - 1
	}
	if nd < 3 {
		return fmt.Errorf("%w: body %q has %d distinct points per section, need at least 3",
			ErrTopology, b.componentName, nd)
	}

	centroid := make([]r3.Vec, g.NI+1)
	for i := 1; i <= g.NI; i++ {
		centroid[i] = sectionCentroid(g, i, nd)
	}

	b.collapsed = collapsed
	b.noseIsClosed = collapsed[1]
	b.tailIsClosed = collapsed[g.NI]
	b.seamIsClosed = seam
	b.numDistinctJ = nd
	b.centroid = centroid
	b.stage = Classified

	b.logf("Body %s: nose closed %v, tail closed %v, seam closed %v, %d open of %d sections\n",
		b.componentName, b.noseIsClosed, b.tailIsClosed, b.seamIsClosed, nOpen, g.NI)
	return nil
}
