package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/notargets/VSPBody/body"
	"github.com/notargets/VSPBody/readers"
	"github.com/notargets/VSPBody/shapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	// Flags are package level, start every run from the defaults
	meshFile, meshName, meshCase, meshAll, meshSurface = "", "", 1, false, 1
	meshConfig, meshSTL, meshChordPlot, meshPlanform, meshDemo = "", "", "", "", "axisymmetric"

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "vspbody v"+Version)
}

func TestConfigCommand(t *testing.T) {
	out, err := run(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "[Body]")
	assert.Contains(t, out, "Tolerance")
}

func TestMeshDemo(t *testing.T) {
	stl := filepath.Join(t.TempDir(), "box.stl")
	out, err := run(t, "mesh", "--demo", "box", "--stl", stl)
	require.NoError(t, err)
	assert.Contains(t, out, "Kutta nodes: 4")
	assert.Contains(t, out, "Mesh check passed")
	_, err = os.Stat(stl)
	assert.NoError(t, err)

	_, err = run(t, "mesh", "--demo", "sphere")
	assert.Error(t, err)
}

func TestMeshFileAll(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aircraft.csv")
	var buf bytes.Buffer
	require.NoError(t, readers.WriteDegenCSV(&buf, "Fuselage", shapes.Axisymmetric(10, 8, 9, 1, true)))
	require.NoError(t, readers.WriteDegenCSV(&buf, "Pod", shapes.Box(5, 4, 2, 1)))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	cfg := filepath.Join(dir, "body.cfg")
	require.NoError(t, os.WriteFile(cfg, []byte("[Body]\nSliceType = Vertical\n"), 0644))

	chord := filepath.Join(dir, "chord.png")
	out, err := run(t, "mesh", "-f", path, "--all", "-c", cfg, "-s", "5", "--chord-plot", chord)
	require.NoError(t, err)
	assert.Contains(t, out, `Body "Fuselage"`)
	assert.Contains(t, out, `Body "Pod"`)
	assert.Contains(t, out, "SurfaceID: 6")
	assert.Contains(t, out, "Slice type: vertical")
	assert.Contains(t, out, "Mesh check passed")
	for _, f := range []string{"chord_1.png", "chord_2.png"} {
		_, err = os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err)
	}

	_, err = run(t, "mesh", "-f", path, "-n", "Wing")
	assert.Error(t, err)
}

func TestCheckMesh(t *testing.T) {
	opts := body.DefaultOptions()
	opts.EndCaps = body.EndCapNone
	b := body.New(opts)
	b.SetGeometry("Box", shapes.Box(5, 4, 2, 1))
	require.NoError(t, b.Prepare(1))

	// Uncapped ends leave boundary edges
	var out bytes.Buffer
	err := checkMesh(&out, b.Grid(), true)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mesh check failed")
	assert.Empty(t, out.String())

	require.NoError(t, checkMesh(&out, b.Grid(), false))
	assert.Contains(t, out.String(), "Mesh check passed: 20 nodes, 32 triangles")
}

// Without end caps the check does not require closure
func TestMeshWithoutEndCaps(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "body.cfg")
	require.NoError(t, os.WriteFile(cfg, []byte("[Body]\nEndCaps = None\n"), 0644))

	stl := filepath.Join(dir, "box.stl")
	out, err := run(t, "mesh", "--demo", "box", "-c", cfg, "--stl", stl)
	require.NoError(t, err)
	assert.Contains(t, out, "Mesh check passed")
	_, err = os.Stat(stl)
	assert.NoError(t, err)
}
