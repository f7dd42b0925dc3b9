package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/notargets/VSPBody/body"
	"github.com/notargets/VSPBody/config"
	"github.com/notargets/VSPBody/grid"
	"github.com/notargets/VSPBody/mesh"
	"github.com/notargets/VSPBody/readers"
	"github.com/notargets/VSPBody/report"
	"github.com/notargets/VSPBody/shapes"
	"github.com/spf13/cobra"
)

var (
	meshFile      string
	meshName      string
	meshCase      int
	meshAll       bool
	meshSurface   int
	meshConfig    string
	meshSTL       string
	meshChordPlot string
	meshPlanform  string
	meshDemo      string
)

var meshCmd = &cobra.Command{
	Use:   "mesh",
	Short: "Classify, flatten and mesh lofted bodies",
	Long: `Run the body preprocessing pipeline and report the result.

The geometry comes from a DegenGeom CSV file, or from a built in demo shape
when no file is given. With --all every BODY component in the file is
prepared in parallel and merged into one mesh, SurfaceIDs counting up from
--surface.

Examples:
  vspbody mesh --demo axisymmetric
  vspbody mesh -f fuselage.csv -n Fuselage --stl fuselage.stl
  vspbody mesh -f aircraft.csv --all -c body.cfg --chord-plot plots/chord.png`,
	RunE: runMesh,
}

func init() {
	rootCmd.AddCommand(meshCmd)

	meshCmd.Flags().StringVarP(&meshFile, "file", "f", "", "DegenGeom CSV file")
	meshCmd.Flags().StringVarP(&meshName, "name", "n", "", "Component name, empty matches any BODY")
	meshCmd.Flags().IntVar(&meshCase, "case", 1, "Which matching BODY to read, 1 based")
	meshCmd.Flags().BoolVar(&meshAll, "all", false, "Prepare every matching BODY in the file")
	meshCmd.Flags().IntVarP(&meshSurface, "surface", "s", 1, "SurfaceID of the (first) body")
	meshCmd.Flags().StringVarP(&meshConfig, "config", "c", "", "Configuration file, see 'vspbody config'")
	meshCmd.Flags().StringVar(&meshDemo, "demo", "axisymmetric", "Demo shape used without --file: axisymmetric or box")

	// Outputs, these override the [Output] section of the configuration
	meshCmd.Flags().StringVar(&meshSTL, "stl", "", "Write the mesh as binary STL")
	meshCmd.Flags().StringVar(&meshChordPlot, "chord-plot", "", "Plot the local chord distribution (png, svg, pdf)")
	meshCmd.Flags().StringVar(&meshPlanform, "planform", "", "Plot the flat plate and Kutta nodes (png, svg, pdf)")
}

func runMesh(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if meshConfig != "" {
		var err error
		if cfg, err = config.Load(meshConfig); err != nil {
			return err
		}
	}
	stl, chordPlot := meshSTL, meshChordPlot
	if stl == "" {
		stl = cfg.Output.STL
	}
	if chordPlot == "" {
		chordPlot = cfg.Output.ChordPlot
	}
	opts := cfg.BodyOptions()

	bodies, err := loadBodies(opts)
	if err != nil {
		return err
	}

	shared := mesh.New()
	ranges, err := body.BuildAll(bodies, shared, meshSurface)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for k, b := range bodies {
		fmt.Fprintln(out, b.String())
		printKuttaNodes(out, b, ranges[k])
	}

	if err = checkMesh(out, shared, opts.EndCaps == body.EndCapFan); err != nil {
		return err
	}

	if stl != "" {
		if err = shared.SaveSTL(stl); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", stl)
	}
	for k, b := range bodies {
		if chordPlot != "" {
			fname := numbered(chordPlot, k, len(bodies))
			if err = report.ExportChordDiagram(b, fname); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %s\n", fname)
		}
		if meshPlanform != "" {
			fname := numbered(meshPlanform, k, len(bodies))
			if err = report.ExportPlanform(b, fname); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %s\n", fname)
		}
	}
	return nil
}

// checkMesh verifies the edge connectivity of the merged mesh. With closed set
// every edge must be shared by exactly two triangles.
func checkMesh(out io.Writer, m *mesh.Mesh, closed bool) error {
	ec, err := mesh.NewEdgeConnector(m)
	if err != nil {
		return err
	}
	if err = ec.Verify(closed); err != nil {
		return fmt.Errorf("mesh check failed: %w", err)
	}
	fmt.Fprintf(out, "Mesh check passed: %d nodes, %d triangles, %d edges, %d boundary edges\n",
		m.NumberOfNodes(), m.NumberOfTris(), ec.NumEdges(), len(ec.Boundary))
	return nil
}

func loadBodies(opts body.Options) ([]*body.Body, error) {
	if meshFile == "" {
		g, err := demoShape(meshDemo)
		if err != nil {
			return nil, err
		}
		b := body.New(opts)
		b.SetGeometry(meshDemo, g)
		return []*body.Body{b}, nil
	}

	if !meshAll {
		b := body.New(opts)
		if err := b.ReadFilePath(meshFile, meshName, meshCase); err != nil {
			return nil, err
		}
		return []*body.Body{b}, nil
	}

	var bodies []*body.Body
	for c := 1; ; c++ {
		b := body.New(opts)
		err := b.ReadFilePath(meshFile, meshName, c)
		if errors.Is(err, readers.ErrComponentNotFound) && len(bodies) > 0 {
			return bodies, nil
		}
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, b)
	}
}

func demoShape(name string) (*grid.SectionGrid, error) {
	switch strings.ToLower(name) {
	case "axisymmetric":
		return shapes.Axisymmetric(21, 17, 10, 1, true), nil
	case "box":
		return shapes.Box(11, 10, 2, 1), nil
	}
	return nil, fmt.Errorf("unknown demo shape %q, use axisymmetric or box", name)
}

// numbered inserts the body index before the extension when several bodies
// share one output name
func numbered(fname string, k, n int) string {
	if n == 1 {
		return fname
	}
	ext := filepath.Ext(fname)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(fname, ext), k+1, ext)
}

func printKuttaNodes(out io.Writer, b *body.Body, r mesh.Range) {
	fmt.Fprintf(out, "  Kutta nodes of %s (mesh nodes offset by %d):\n", b.ComponentName(), r.NodeOffset)
	for k := 1; k <= b.NumberOfKuttaNodes(); k++ {
		fmt.Fprintf(out, "    %3d  plate %5d  mesh %6d  wake TE (%12.5e, %12.5e, %12.5e)\n",
			k, b.KuttaNode(k), r.NodeOffset+b.KuttaMeshNode(k),
			b.WakeTrailingEdgeX(k), b.WakeTrailingEdgeY(k), b.WakeTrailingEdgeZ(k))
	}
	fmt.Fprintln(out)
}
