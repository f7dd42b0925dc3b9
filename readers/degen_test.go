package readers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/notargets/VSPBody/shapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoBodies = `# DegenGeom Type, Name, SurfNdx, MainSurfNdx, SymCopyNdx
LIFTING_SURFACE,Wing,0,0,0
SURFACE_NODE,1,3
0,0,0
1,0,0
2,0,0
BODY,Pod,0,0,0
SURFACE_NODE,2,3
# x,y,z,u,w
0,1,0,0,0
0,0,1,0,0.5
0,-1,0,0,1
1,1,0,1,0
1,0,1,1,0.5
1,-1,0,1,1
BODY,Pod,1,0,0
SURFACE_NODE,2,3
5,1,0
5,0,1
5,-1,0
6,1,0
6,0,1
6,-1,0
`

func TestReadGeometry(t *testing.T) {
	var r DegenReader

	t.Run("FirstCase", func(t *testing.T) {
		name, g, err := r.ReadGeometry("Pod", 1, strings.NewReader(twoBodies))
		require.NoError(t, err)
		assert.Equal(t, "Pod", name)
		assert.Equal(t, 2, g.NI)
		assert.Equal(t, 3, g.NJ)
		assert.Equal(t, 1.0, g.Z(1, 2))
		assert.Equal(t, 0.5, g.V(2, 2))
		assert.Equal(t, 1.0, g.U(2, 3))
	})

	t.Run("SecondCase", func(t *testing.T) {
		_, g, err := r.ReadGeometry("Pod", 2, strings.NewReader(twoBodies))
		require.NoError(t, err)
		assert.Equal(t, 5.0, g.X(1, 1))
		assert.Equal(t, 6.0, g.X(2, 3))
		// u,v default to zero
		assert.Zero(t, g.U(2, 3))
		assert.Zero(t, g.V(2, 3))
	})

	t.Run("AnyName", func(t *testing.T) {
		_, g, err := r.ReadGeometry("", 2, strings.NewReader(twoBodies))
		require.NoError(t, err)
		assert.Equal(t, 5.0, g.X(1, 1))
	})

	t.Run("NotFound", func(t *testing.T) {
		_, _, err := r.ReadGeometry("Wing", 1, strings.NewReader(twoBodies))
		assert.ErrorIs(t, err, ErrComponentNotFound)
		_, _, err = r.ReadGeometry("Pod", 3, strings.NewReader(twoBodies))
		assert.ErrorIs(t, err, ErrComponentNotFound)
		_, _, err = r.ReadGeometry("Pod", 0, strings.NewReader(twoBodies))
		assert.Error(t, err)
	})
}

func TestReadGeometryErrors(t *testing.T) {
	var r DegenReader
	testCases := []struct {
		name  string
		input string
		want  error
	}{
		{"MissingSurface", "BODY,Pod\nBODY,Other\nSURFACE_NODE,1,3\n0,0,0\n0,0,0\n0,0,0\n", ErrMissingSurface},
		{"MissingSurfaceEOF", "BODY,Pod\n", ErrMissingSurface},
		{"Truncated", "BODY,Pod\nSURFACE_NODE,2,2\n0,0,0\n1,0,0\n", ErrTruncated},
		{"NextComponent", "BODY,Pod\nSURFACE_NODE,1,2\n0,0,0\nBODY,Other\n", ErrTruncated},
		{"BadNumber", "BODY,Pod\nSURFACE_NODE,1,1\n0,zero,0\n", ErrFormat},
		{"ShortRow", "BODY,Pod\nSURFACE_NODE,1,1\n0,0\n", ErrFormat},
		{"BadSize", "BODY,Pod\nSURFACE_NODE,0,4\n", ErrFormat},
		{"BadSizeField", "BODY,Pod\nSURFACE_NODE,two,4\n", ErrFormat},
		{"Oversize", "BODY,Pod\nSURFACE_NODE,3037000500,3037000500\n1,2,3\n", ErrFormat},
		{"OversizeRow", "BODY,Pod\nSURFACE_NODE,1,16777217\n1,2,3\n", ErrFormat},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := r.ReadGeometry("Pod", 1, strings.NewReader(tc.input))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestWriteThenRead(t *testing.T) {
	g := shapes.Axisymmetric(6, 9, 3, 0.5, true)
	var buf bytes.Buffer
	require.NoError(t, WriteDegenCSV(&buf, "Fuselage", g))

	name, h, err := DegenReader{}.ReadGeometry("Fuselage", 1, &buf)
	require.NoError(t, err)
	assert.Equal(t, "Fuselage", name)
	require.Equal(t, g.Dims, h.Dims)
	for i := 1; i <= g.NI; i++ {
		for j := 1; j <= g.NJ; j++ {
			assert.Equal(t, g.Point(i, j), h.Point(i, j))
			assert.Equal(t, g.U(i, j), h.U(i, j))
			assert.Equal(t, g.V(i, j), h.V(i, j))
		}
	}
}
