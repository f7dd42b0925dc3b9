package body

import (
	"fmt"

	"github.com/notargets/VSPBody/grid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// Tangents closer to parallel than this give no usable normal
const parallelTol = 1e-12

// CreateFlatPlate builds the plate grid: every distinct raw node projected onto
// the slice plane through its station centroid, carrying the outward unit normal
// of the full body surface at that node. It also computes the local chords.
func (b *Body) CreateFlatPlate() error {
	if err := b.requireStage(Classified, "CreateFlatPlate"); err != nil {
		return err
	}
	b.resetTo(Classified)

	// The repeated seam point of a closed seam gets no plate node of its own
	var (
		g      = b.geom
		ni, nj = g.NI, b.numDistinctJ
		plate  = grid.NewPlateGrid(ni, nj)
	)

	for i := 1; i <= ni; i++ {
		c := b.centroid[i]
		for j := 1; j <= nj; j++ {
			p := c
			if !b.collapsed[i] {
				p = g.Point(i, j)
			}
			switch b.opts.SliceType {
			case Horizontal:
				p.Z = c.Z
			case Vertical:
				p.Y = c.Y
			}
			plate.SetPoint(i, j, p)
		}
	}

	normals, warnings, err := b.surfaceNormals()
	if err != nil {
		return err
	}
	for i := 1; i <= ni; i++ {
		for j := 1; j <= nj; j++ {
			plate.SetNormal(i, j, normals[i][j])
		}
	}

	b.plate = plate
	b.localChord = b.computeLocalChord()
	b.warnings = warnings
	b.stage = Derived

	for _, w := range warnings {
		b.logf("Body %s: %v\n", b.componentName, w)
	}
	b.logf("Body %s: flat plate %d x %d, centerline length %.4e\n",
		b.componentName, ni, nj, floats.Sum(b.localChord[1:]))
	return nil
}

// surfaceNormals returns unit outward normals indexed [i][j], j over the
// distinct circumferential points
func (b *Body) surfaceNormals() ([][]r3.Vec, []NormalWarning, error) {
	var (
		g      = b.geom
		ni, nd = g.NI, b.numDistinctJ
		raw    = make([][]r3.Vec, ni+1)
		valid  = make([][]bool, ni+1)
	)

	// Pass 1: T_i x T_j wherever the tangents are usable
	for i := 1; i <= ni; i++ {
		raw[i] = make([]r3.Vec, nd+1)
		valid[i] = make([]bool, nd+1)
		if b.collapsed[i] {
			continue
		}
		for j := 1; j <= nd; j++ {
			ti, tj := b.tangents(i, j)
			n := r3.Cross(ti, tj)
			mag := r3.Norm(n)
			if mag == 0 || mag <= parallelTol*r3.Norm(ti)*r3.Norm(tj) {
				continue
			}
			raw[i][j] = r3.Scale(1/mag, n)
			valid[i][j] = true
		}
	}

	// Pass 2: orient, outward being away from the station centroids
	var outward float64
	for i := 1; i <= ni; i++ {
		for j := 1; j <= nd; j++ {
			if valid[i][j] {
				outward += r3.Dot(raw[i][j], r3.Sub(g.Point(i, j), b.centroid[i]))
			}
		}
	}
	if outward < 0 {
		for i := 1; i <= ni; i++ {
			for j := 1; j <= nd; j++ {
				raw[i][j] = r3.Scale(-1, raw[i][j])
			}
		}
	}

	// Pass 3: substitute undefined normals at open stations
	var (
		normals  = make([][]r3.Vec, ni+1)
		warnings []NormalWarning
	)
	for i := 1; i <= ni; i++ {
		normals[i] = make([]r3.Vec, nd+1)
		if b.collapsed[i] {
			continue
		}
		for j := 1; j <= nd; j++ {
			if valid[i][j] {
				normals[i][j] = raw[i][j]
				continue
			}
			n, source, ok := b.substituteNormal(raw, valid, i, j)
			if !ok {
				return nil, nil, fmt.Errorf("%w: body %q has no valid normal at section %d",
					ErrTopology, b.componentName, i)
			}
			normals[i][j] = n
			warnings = append(warnings, NormalWarning{I: i, J: j, Source: source})
		}
	}

	// Pass 4: collapsed stations take the mean normal of the nearest open one
	for i := 1; i <= ni; i++ {
		if !b.collapsed[i] {
			continue
		}
		s := b.nearestOpenStation(i)
		var avg r3.Vec
		for j := 1; j <= nd; j++ {
			avg = r3.Add(avg, normals[s][j])
		}
		if mag := r3.Norm(avg); mag > parallelTol {
			avg = r3.Scale(1/mag, avg)
			for j := 1; j <= nd; j++ {
				normals[i][j] = avg
			}
		} else {
			copy(normals[i], normals[s])
		}
	}
	return normals, warnings, nil
}

// tangents returns the streamwise and circumferential difference vectors at
// (i,j). The circumferential direction is periodic over the distinct points.
func (b *Body) tangents(i, j int) (ti, tj r3.Vec) {
	var (
		g  = b.geom
		nd = b.numDistinctJ
	)
	switch {
	case i == 1:
		ti = r3.Sub(g.Point(2, j), g.Point(1, j))
	case i == g.NI:
		ti = r3.Sub(g.Point(i, j), g.Point(i-1, j))
	default:
		ti = r3.Sub(g.Point(i+1, j), g.Point(i-1, j))
	}
	jn := j%nd + 1
	jp := (j+nd-2)%nd + 1
	tj = r3.Sub(g.Point(i, jn), g.Point(i, jp))
	return
}

func (b *Body) substituteNormal(raw [][]r3.Vec, valid [][]bool, i, j int) (n r3.Vec, source string, ok bool) {
	var (
		ni, nd = b.geom.NI, b.numDistinctJ
		jn     = j%nd + 1
		jp     = (j+nd-2)%nd + 1
	)
	for _, nb := range [][2]int{{i, jp}, {i, jn}, {i - 1, j}, {i + 1, j}} {
		ii, jj := nb[0], nb[1]
		if ii < 1 || ii > ni || !valid[ii][jj] {
			continue
		}
		return raw[ii][jj], fmt.Sprintf("(%d,%d)", ii, jj), true
	}
	var avg r3.Vec
	for jj := 1; jj <= nd; jj++ {
		if valid[i][jj] {
			avg = r3.Add(avg, raw[i][jj])
		}
	}
	if mag := r3.Norm(avg); mag > parallelTol {
		return r3.Scale(1/mag, avg), fmt.Sprintf("section %d average", i), true
	}
	return r3.Vec{}, "", false
}

// nearestOpenStation searches outward from i, preferring the lower index on a tie
func (b *Body) nearestOpenStation(i int) int {
	ni := b.geom.NI
	for d := 1; d < ni; d++ {
		if i-d >= 1 && !b.collapsed[i-d] {
			return i - d
		}
		if i+d <= ni && !b.collapsed[i+d] {
			return i + d
		}
	}
	panic(fmt.Sprintf("body %q has no open section", b.componentName))
}

// computeLocalChord splits the centerline length between the stations: half of
// each adjoining centroid gap
func (b *Body) computeLocalChord() []float64 {
	ni := b.geom.NI
	chord := make([]float64, ni+1)
	for i := 1; i <= ni; i++ {
		if i > 1 {
			chord[i] += 0.5 * r3.Norm(r3.Sub(b.centroid[i], b.centroid[i-1]))
		}
		if i < ni {
			chord[i] += 0.5 * r3.Norm(r3.Sub(b.centroid[i+1], b.centroid[i]))
		}
	}
	return chord
}
