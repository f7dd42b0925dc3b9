// Package shapes generates synthetic lofted bodies as section grids, for tests,
// examples and the CLI demo.
package shapes

import (
	"math"

	"github.com/notargets/VSPBody/grid"
	"gonum.org/v1/gonum/spatial/r3"
)

// frac maps k in [1,n] to [0,1]
func frac(k, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(k-1) / float64(n-1)
}

// Axisymmetric returns a body of revolution about the x axis whose radius rises
// linearly from zero at the nose to radius at mid length and back to zero at the
// tail. With closedSeam the last circumferential point repeats the first.
func Axisymmetric(ni, nj int, length, radius float64, closedSeam bool) *grid.SectionGrid {
	return Revolve(ni, nj, length, closedSeam, func(s float64) float64 {
		return radius * (1 - math.Abs(2*s-1))
	})
}

// Revolve returns a body of revolution about the x axis with radius profile r(s),
// s in [0,1] running from nose to tail.
func Revolve(ni, nj int, length float64, closedSeam bool, r func(s float64) float64) *grid.SectionGrid {
	g := grid.NewSectionGrid(ni, nj)
	nTheta := nj
	if closedSeam {
		nTheta = nj - 1
	}
	for i := 1; i <= ni; i++ {
		s := frac(i, ni)
		rad := r(s)
		for j := 1; j <= nj; j++ {
			theta := 0.0
			if nTheta > 0 {
				theta = 2 * math.Pi * float64(j-1) / float64(nTheta)
			}
			if closedSeam && j == nj {
				theta = 0
			}
			g.SetPoint(i, j, r3.Vec{
				X: s * length,
				Y: rad * math.Cos(theta),
				Z: rad * math.Sin(theta),
			})
			g.SetUV(i, j, s, frac(j, nj))
		}
	}
	return g
}

// Box returns an ni x 4 grid of constant rectangular sections, width along y and
// height along z, the corners ordered counter clockwise seen from +x.
func Box(ni int, length, width, height float64) *grid.SectionGrid {
	g := grid.NewSectionGrid(ni, 4)
	hw, hh := width/2, height/2
	corners := [4][2]float64{{hw, hh}, {-hw, hh}, {-hw, -hh}, {hw, -hh}}
	for i := 1; i <= ni; i++ {
		s := frac(i, ni)
		for j, c := range corners {
			g.SetPoint(i, j+1, r3.Vec{X: s * length, Y: c[0], Z: c[1]})
			g.SetUV(i, j+1, s, frac(j+1, 4))
		}
	}
	return g
}
