package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/notargets/VSPBody/body"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	wrap := Default()
	require.NoError(t, wrap.Validate())
	assert.Equal(t, body.DefaultOptions(), wrap.BodyOptions())
}

func TestExampleConfigFile(t *testing.T) {
	wrap, err := Parse(ExampleConfigFile)
	require.NoError(t, err)
	assert.Equal(t, body.DefaultOptions(), wrap.BodyOptions())
	assert.Empty(t, wrap.Output.STL)
}

func TestOverrides(t *testing.T) {
	wrap, err := Parse(`[Body]
Tolerance = 0.001
SliceType = Vertical
EndCaps = none
Verbose = true

[Output]
STL = out.stl
ChordPlot = chord.png
`)
	require.NoError(t, err)
	opts := wrap.BodyOptions()
	assert.Equal(t, 0.001, opts.Tolerance)
	assert.Equal(t, body.Vertical, opts.SliceType)
	assert.Equal(t, body.EndCapNone, opts.EndCaps)
	assert.True(t, opts.Verbose)
	assert.Equal(t, "out.stl", wrap.Output.STL)
	assert.Equal(t, "chord.png", wrap.Output.ChordPlot)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	wrap, err := Parse("[Body]\nSliceType = vertical\n")
	require.NoError(t, err)
	assert.Equal(t, 1e-6, wrap.Body.Tolerance)
	assert.Equal(t, "fan", wrap.Body.EndCaps)
}

func TestInvalid(t *testing.T) {
	testCases := []struct {
		name, cfg string
	}{
		{"Tolerance", "[Body]\nTolerance = -1\n"},
		{"SliceType", "[Body]\nSliceType = Diagonal\n"},
		{"EndCaps", "[Body]\nEndCaps = Dome\n"},
		{"UnknownKey", "[Body]\nColor = red\n"},
		{"NotANumber", "[Body]\nTolerance = small\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.cfg)
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "body.cfg")
	require.NoError(t, os.WriteFile(path, []byte("[Body]\nTolerance = 1e-4\n"), 0644))
	wrap, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1e-4, wrap.Body.Tolerance)

	_, err = Load(filepath.Join(t.TempDir(), "missing.cfg"))
	assert.Error(t, err)
}
