// Package report draws diagnostic plots of prepared bodies.
package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/notargets/VSPBody/body"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ChordData returns the local chord of every plate station against the station
// centroid x
func ChordData(b *body.Body) plotter.XYs {
	ni := b.NumPlateI()
	xys := make(plotter.XYs, ni)
	for i := 1; i <= ni; i++ {
		xys[i-1] = plotter.XY{X: b.StationCentroid(i).X, Y: b.LocalChord(i)}
	}
	return xys
}

// ExportChordDiagram plots the local chord distribution of b
func ExportChordDiagram(b *body.Body, filename string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Local chord, %s", b.ComponentName())
	p.X.Label.Text = "Station x"
	p.Y.Label.Text = "Local chord"

	xys := ChordData(b)
	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	p.Add(line)

	stations, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	stations.GlyphStyle.Shape = draw.CircleGlyph{}
	stations.GlyphStyle.Radius = vg.Points(3)
	p.Add(stations)

	return save(p, filename)
}

// ExportPlanform plots the flat plate grid lines of b seen along its plate
// normal axis, with the Kutta nodes marked
func ExportPlanform(b *body.Body, filename string) error {
	pg := b.Plate()
	vertical := b.SliceType() == body.Vertical

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Flat plate, %s", b.ComponentName())
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	if vertical {
		p.Y.Label.Text = "z"
	}
	second := func(i, j int) float64 {
		if vertical {
			return pg.Z(i, j)
		}
		return pg.Y(i, j)
	}

	for j := 1; j <= pg.NJ; j++ {
		xys := make(plotter.XYs, pg.NI)
		for i := 1; i <= pg.NI; i++ {
			xys[i-1] = plotter.XY{X: pg.X(i, j), Y: second(i, j)}
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.LineStyle.Color = color.Gray{Y: 128}
		p.Add(line)
	}

	nk := b.NumberOfKuttaNodes()
	te := make(plotter.XYs, nk)
	for k := 1; k <= nk; k++ {
		y := b.WakeTrailingEdgeY(k)
		if vertical {
			y = b.WakeTrailingEdgeZ(k)
		}
		te[k-1] = plotter.XY{X: b.WakeTrailingEdgeX(k), Y: y}
	}
	kutta, err := plotter.NewScatter(te)
	if err != nil {
		return err
	}
	kutta.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
	kutta.GlyphStyle.Shape = draw.CrossGlyph{}
	kutta.GlyphStyle.Radius = vg.Points(4)
	p.Add(kutta)

	return save(p, filename)
}

func save(p *plot.Plot, filename string) error {
	width := 8 * vg.Inch
	height := 6 * vg.Inch

	if dir := filepath.Dir(filename); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
