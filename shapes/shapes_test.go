package shapes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestAxisymmetric(t *testing.T) {
	g := Axisymmetric(5, 9, 4, 2, true)
	assert.Equal(t, 5, g.NI)
	assert.Equal(t, 9, g.NJ)
	for j := 1; j <= 9; j++ {
		assert.Equal(t, r3.Vec{}, g.Point(1, j))
		assert.InDelta(t, 2, math.Hypot(g.Y(3, j), g.Z(3, j)), 1e-12)
	}
	assert.Equal(t, g.Point(3, 1), g.Point(3, 9))
	assert.Equal(t, 4.0, g.X(5, 1))
	assert.Equal(t, 1.0, g.U(5, 1))
	assert.Equal(t, 1.0, g.V(5, 9))
}

func TestBox(t *testing.T) {
	g := Box(3, 2, 2, 1)
	assert.Equal(t, r3.Vec{X: 0, Y: 1, Z: 0.5}, g.Point(1, 1))
	assert.Equal(t, r3.Vec{X: 1, Y: -1, Z: 0.5}, g.Point(2, 2))
	assert.Equal(t, r3.Vec{X: 2, Y: 1, Z: -0.5}, g.Point(3, 4))
}
