package body

import (
	"fmt"

	"github.com/notargets/VSPBody/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// CreateMesh triangulates the classified section grid into the body's own mesh,
// tagging every triangle with surfaceID.
//
// Each quad (i,j),(i+1,j),(i+1,j+1),(i,j+1) is split along the (i,j)-(i+1,j+1)
// diagonal. The circumferential index wraps over the distinct points, so an open
// seam is closed by the wrap quads. A collapsed station is a single pole node and
// its zero area triangles are dropped, leaving a fan. With EndCapFan an open end
// section is closed by a fan around a node at its centroid.
func (b *Body) CreateMesh(surfaceID int) error {
	if err := b.requireStage(Derived, "CreateMesh"); err != nil {
		return err
	}
	b.resetTo(Derived)

	var (
		g          = b.geom
		ni, nj, nd = g.NI, g.NJ, b.numDistinctJ
		m          = mesh.New()
		nodeOf     = make([]int, g.Len()+1)
		nodeNormal []r3.Vec
	)
	addNode := func(p, n r3.Vec) int {
		nodeNormal = append(nodeNormal, n)
		return m.AddNode(p)
	}

	for i := 1; i <= ni; i++ {
		if b.collapsed[i] {
			pole := addNode(b.centroid[i], b.plate.Normal(i, 1))
			for j := 1; j <= nj; j++ {
				nodeOf[g.Index(i, j)] = pole
			}
			continue
		}
		for j := 1; j <= nd; j++ {
			nodeOf[g.Index(i, j)] = addNode(g.Point(i, j), b.plate.Normal(i, j))
		}
		for j := nd + 1; j <= nj; j++ {
			nodeOf[g.Index(i, j)] = nodeOf[g.Index(i, 1)]
		}
	}
	node := func(i, j int) int { return nodeOf[g.Index(i, j)] }

	var tris [][3]int
	for i := 1; i < ni; i++ {
		for j := 1; j <= nd; j++ {
			jn := j%nd + 1
			n1, n2, n3, n4 := node(i, j), node(i+1, j), node(i+1, jn), node(i, jn)
			if !b.collapsed[i+1] {
				tris = append(tris, [3]int{n1, n2, n3})
			}
			if !b.collapsed[i] {
				tris = append(tris, [3]int{n1, n3, n4})
			}
		}
	}

	if b.opts.EndCaps == EndCapFan {
		if !b.collapsed[1] {
			center := addNode(b.centroid[1], r3.Vec{})
			for j := 1; j <= nd; j++ {
				tris = append(tris, [3]int{center, node(1, j), node(1, j%nd+1)})
			}
		}
		if !b.collapsed[ni] {
			center := addNode(b.centroid[ni], r3.Vec{})
			for j := 1; j <= nd; j++ {
				tris = append(tris, [3]int{center, node(ni, j%nd+1), node(ni, j)})
			}
		}
	}

	minArea := 0.5 * b.opts.Tolerance * b.opts.Tolerance
	for _, t := range tris {
		p1, p2, p3 := m.Nodes[t[0]], m.Nodes[t[1]], m.Nodes[t[2]]
		if area := 0.5 * r3.Norm(r3.Cross(r3.Sub(p2, p1), r3.Sub(p3, p1))); area <= minArea {
			return fmt.Errorf("%w: body %q has a zero area triangle (%v, %v, %v)",
				ErrTopology, b.componentName, p1, p2, p3)
		}
		if _, err := m.AddTri(t[0], t[1], t[2], surfaceID); err != nil {
			return fmt.Errorf("%w: body %q: %w", ErrTopology, b.componentName, err)
		}
	}

	// Agree with the outward plate normals
	var agreement float64
	for _, t := range m.Tris {
		for _, n := range t.Nodes {
			agreement += r3.Dot(t.Normal, nodeNormal[n])
		}
	}
	if agreement < 0 {
		m.FlipOrientation()
	}

	m.Surfaces = append(m.Surfaces, mesh.SurfaceRecord{
		SurfaceID: surfaceID,
		Name:      b.componentName,
		BodyID:    b.ID,
		Range:     mesh.Range{NumNodes: m.NumberOfNodes(), NumTris: m.NumberOfTris()},
	})

	b.surface = m
	b.surfaceID = surfaceID
	b.meshNode = nodeOf
	b.stage = Meshed

	b.logf("Body %s: mesh surface %d, %d nodes, %d triangles\n",
		b.componentName, surfaceID, m.NumberOfNodes(), m.NumberOfTris())
	return nil
}
