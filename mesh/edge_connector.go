package mesh

import (
	"fmt"
	"sort"
)

// EdgeKey identifies an undirected edge by its two node indices, low first
type EdgeKey [2]int

func newEdgeKey(a, b int) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey{a, b}
}

// EdgeUse records one triangle using an edge
type EdgeUse struct {
	Tri     int
	Local   int  // Local edge number 0..2, edge k runs from vertex k to vertex k+1
	Forward bool // True when the triangle traverses the edge low→high
}

// EdgeConnector manages edge to triangle connectivity for a triangle mesh
type EdgeConnector struct {
	NumNodes int
	NumTris  int

	// Edge → triangles using it
	EToT map[EdgeKey][]EdgeUse

	// Triangle → neighbor across each local edge, -1 on a boundary
	TToT [][3]int

	// Edges used by exactly one triangle, sorted
	Boundary []EdgeKey
}

// NewEdgeConnector creates an edge connector from mesh connectivity
func NewEdgeConnector(m *Mesh) (*EdgeConnector, error) {
	// Validate inputs
	if len(m.Nodes) == 0 || len(m.Tris) == 0 {
		return nil, fmt.Errorf("invalid mesh: %d nodes, %d triangles", len(m.Nodes), len(m.Tris))
	}
	for k, t := range m.Tris {
		for _, n := range t.Nodes {
			if n < 0 || n >= len(m.Nodes) {
				return nil, fmt.Errorf("triangle %d references node %d, mesh has %d nodes", k, n, len(m.Nodes))
			}
		}
	}

	ec := &EdgeConnector{
		NumNodes: len(m.Nodes),
		NumTris:  len(m.Tris),
		EToT:     make(map[EdgeKey][]EdgeUse),
	}

	ec.buildEdgeMap(m)
	ec.buildNeighbors()

	return ec, nil
}

// buildEdgeMap collects the uses of every edge
func (ec *EdgeConnector) buildEdgeMap(m *Mesh) {
	for k, t := range m.Tris {
		for e := 0; e < 3; e++ {
			a, b := t.Nodes[e], t.Nodes[(e+1)%3]
			key := newEdgeKey(a, b)
			ec.EToT[key] = append(ec.EToT[key], EdgeUse{
				Tri:     k,
				Local:   e,
				Forward: a < b,
			})
		}
	}
}

// buildNeighbors fills TToT and the boundary edge list
func (ec *EdgeConnector) buildNeighbors() {
	ec.TToT = make([][3]int, ec.NumTris)
	for k := range ec.TToT {
		ec.TToT[k] = [3]int{-1, -1, -1}
	}

	ec.Boundary = ec.Boundary[:0]
	for key, uses := range ec.EToT {
		switch len(uses) {
		case 1:
			ec.Boundary = append(ec.Boundary, key)
		case 2:
			u0, u1 := uses[0], uses[1]
			ec.TToT[u0.Tri][u0.Local] = u1.Tri
			ec.TToT[u1.Tri][u1.Local] = u0.Tri
		}
	}
	sort.Slice(ec.Boundary, func(i, j int) bool {
		if ec.Boundary[i][0] != ec.Boundary[j][0] {
			return ec.Boundary[i][0] < ec.Boundary[j][0]
		}
		return ec.Boundary[i][1] < ec.Boundary[j][1]
	})
}

// NumEdges returns the number of distinct edges
func (ec *EdgeConnector) NumEdges() int {
	return len(ec.EToT)
}

// Neighbors returns the triangles across the three edges of triangle k
func (ec *EdgeConnector) Neighbors(k int) [3]int {
	if k < 0 || k >= ec.NumTris {
		return [3]int{-1, -1, -1}
	}
	return ec.TToT[k]
}

// Verify checks manifoldness and orientation. A closed surface additionally
// requires every edge to be shared by exactly two triangles.
func (ec *EdgeConnector) Verify(closed bool) error {
	// Verify 1: Manifold - no edge is used by more than two triangles
	for key, uses := range ec.EToT {
		if len(uses) > 2 {
			return fmt.Errorf("non-manifold edge (%d,%d) used by %d triangles", key[0], key[1], len(uses))
		}
	}

	// Verify 2: Orientation - shared edges are traversed in opposite directions
	for key, uses := range ec.EToT {
		if len(uses) == 2 && uses[0].Forward == uses[1].Forward {
			return fmt.Errorf("inconsistent orientation across edge (%d,%d): triangles %d and %d",
				key[0], key[1], uses[0].Tri, uses[1].Tri)
		}
	}

	// Verify 3: Closure - no boundary edges on a closed surface
	if closed && len(ec.Boundary) > 0 {
		return fmt.Errorf("surface is not watertight: %d boundary edges, first (%d,%d)",
			len(ec.Boundary), ec.Boundary[0][0], ec.Boundary[0][1])
	}

	return nil
}
