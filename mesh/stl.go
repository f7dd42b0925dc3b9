package mesh

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

func toV3(p r3.Vec) v3.Vec {
	return v3.Vec{X: p.X, Y: p.Y, Z: p.Z}
}

// Triangles3 converts the mesh, optionally restricted to one SurfaceID
// (surfaceID < 0 selects every triangle), to sdfx triangles.
func (m *Mesh) Triangles3(surfaceID int) []*sdf.Triangle3 {
	tris := make([]*sdf.Triangle3, 0, len(m.Tris))
	for _, t := range m.Tris {
		if surfaceID >= 0 && t.SurfaceID != surfaceID {
			continue
		}
		tris = append(tris, &sdf.Triangle3{
			toV3(m.Nodes[t.Nodes[0]]),
			toV3(m.Nodes[t.Nodes[1]]),
			toV3(m.Nodes[t.Nodes[2]]),
		})
	}
	return tris
}

// SaveSTL writes the mesh as a binary STL file
func (m *Mesh) SaveSTL(path string) error {
	if len(m.Tris) == 0 {
		return fmt.Errorf("mesh has no triangles to write to %s", path)
	}
	if err := render.SaveSTL(path, m.Triangles3(-1)); err != nil {
		return fmt.Errorf("saving STL %s: %w", path, err)
	}
	return nil
}
