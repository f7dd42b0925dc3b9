// Package mesh holds the unstructured triangle surface mesh consumed by the panel
// solver. Several bodies may write into one mesh; every triangle carries the
// SurfaceID of the body that produced it.
package mesh

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	ErrBadTriangle = errors.New("invalid triangle")
)

// Tri is one surface panel. Nodes index Mesh.Nodes and are ordered so that the
// right hand rule gives the outward normal.
type Tri struct {
	Nodes     [3]int
	SurfaceID int
	Normal    r3.Vec // Unit normal
	Area      float64
}

// Range is the block of nodes and triangles one Append occupied
type Range struct {
	NodeOffset int
	NumNodes   int
	TriOffset  int
	NumTris    int
}

// SurfaceRecord names the body that produced a range of the mesh
type SurfaceRecord struct {
	SurfaceID int
	Name      string
	BodyID    uuid.UUID
	Range
}

// Mesh is a triangle surface mesh. Append is safe for concurrent use; the other
// mutators are meant for the single owner building a fragment.
type Mesh struct {
	mu       sync.Mutex
	Nodes    []r3.Vec
	Tris     []Tri
	Surfaces []SurfaceRecord
}

func New() *Mesh {
	return &Mesh{}
}

func (m *Mesh) NumberOfNodes() int { return len(m.Nodes) }
func (m *Mesh) NumberOfTris() int  { return len(m.Tris) }

// IsEmpty returns true if the mesh has no geometry
func (m *Mesh) IsEmpty() bool {
	return len(m.Nodes) == 0
}

// AddNode appends a node and returns its index
func (m *Mesh) AddNode(p r3.Vec) int {
	m.Nodes = append(m.Nodes, p)
	return len(m.Nodes) - 1
}

// AddTri appends triangle (n1,n2,n3) and returns its index. Repeated or unknown
// nodes and zero area triangles are rejected.
func (m *Mesh) AddTri(n1, n2, n3, surfaceID int) (int, error) {
	nn := len(m.Nodes)
	for _, n := range [3]int{n1, n2, n3} {
		if n < 0 || n >= nn {
			return -1, fmt.Errorf("%w: node %d out of range [0,%d)", ErrBadTriangle, n, nn)
		}
	}
	if n1 == n2 || n2 == n3 || n1 == n3 {
		return -1, fmt.Errorf("%w: repeated node in (%d,%d,%d)", ErrBadTriangle, n1, n2, n3)
	}
	normal, area := triangleNormal(m.Nodes[n1], m.Nodes[n2], m.Nodes[n3])
	if !(area > 0) {
		return -1, fmt.Errorf("%w: zero area triangle (%d,%d,%d)", ErrBadTriangle, n1, n2, n3)
	}
	m.Tris = append(m.Tris, Tri{
		Nodes:     [3]int{n1, n2, n3},
		SurfaceID: surfaceID,
		Normal:    normal,
		Area:      area,
	})
	return len(m.Tris) - 1, nil
}

func triangleNormal(a, b, c r3.Vec) (n r3.Vec, area float64) {
	cr := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
	mag := r3.Norm(cr)
	if mag == 0 || math.IsNaN(mag) {
		return r3.Vec{}, 0
	}
	return r3.Scale(1/mag, cr), 0.5 * mag
}

// FlipOrientation reverses the winding, and so the normal, of every triangle
func (m *Mesh) FlipOrientation() {
	for k := range m.Tris {
		t := &m.Tris[k]
		t.Nodes[1], t.Nodes[2] = t.Nodes[2], t.Nodes[1]
		t.Normal = r3.Scale(-1, t.Normal)
	}
}

// TotalArea sums the triangle areas, optionally restricted to one SurfaceID
// (surfaceID < 0 selects every triangle).
func (m *Mesh) TotalArea(surfaceID int) (area float64) {
	for _, t := range m.Tris {
		if surfaceID < 0 || t.SurfaceID == surfaceID {
			area += t.Area
		}
	}
	return
}

// Volume is the signed volume enclosed by the triangles, positive for an
// outward oriented closed surface
func (m *Mesh) Volume() (vol float64) {
	for _, t := range m.Tris {
		a, b, c := m.Nodes[t.Nodes[0]], m.Nodes[t.Nodes[1]], m.Nodes[t.Nodes[2]]
		vol += r3.Dot(a, r3.Cross(b, c)) / 6
	}
	return
}

// Append copies frag into m, offsetting its node indices by the number of nodes
// m held before the insertion. The returned Range locates frag inside m.
func (m *Mesh) Append(frag *Mesh) Range {
	m.mu.Lock()
	defer m.mu.Unlock()

	r := Range{
		NodeOffset: len(m.Nodes),
		NumNodes:   len(frag.Nodes),
		TriOffset:  len(m.Tris),
		NumTris:    len(frag.Tris),
	}
	m.Nodes = append(m.Nodes, frag.Nodes...)
	for _, t := range frag.Tris {
		t.Nodes[0] += r.NodeOffset
		t.Nodes[1] += r.NodeOffset
		t.Nodes[2] += r.NodeOffset
		m.Tris = append(m.Tris, t)
	}
	for _, s := range frag.Surfaces {
		s.NodeOffset += r.NodeOffset
		s.TriOffset += r.TriOffset
		m.Surfaces = append(m.Surfaces, s)
	}
	return r
}

// Copy returns a deep copy sharing no storage with m
func (m *Mesh) Copy() *Mesh {
	c := &Mesh{
		Nodes:    make([]r3.Vec, len(m.Nodes)),
		Tris:     make([]Tri, len(m.Tris)),
		Surfaces: make([]SurfaceRecord, len(m.Surfaces)),
	}
	copy(c.Nodes, m.Nodes)
	copy(c.Tris, m.Tris)
	copy(c.Surfaces, m.Surfaces)
	return c
}

// Surface returns the record for surfaceID, if present
func (m *Mesh) Surface(surfaceID int) (SurfaceRecord, bool) {
	for _, s := range m.Surfaces {
		if s.SurfaceID == surfaceID {
			return s, true
		}
	}
	return SurfaceRecord{}, false
}

// Bounds returns the axis aligned bounding box of the nodes
func (m *Mesh) Bounds() (min, max r3.Vec) {
	if len(m.Nodes) == 0 {
		return
	}
	min, max = m.Nodes[0], m.Nodes[0]
	for _, p := range m.Nodes[1:] {
		min = r3.Vec{X: math.Min(min.X, p.X), Y: math.Min(min.Y, p.Y), Z: math.Min(min.Z, p.Z)}
		max = r3.Vec{X: math.Max(max.X, p.X), Y: math.Max(max.Y, p.Y), Z: math.Max(max.Z, p.Z)}
	}
	return
}
