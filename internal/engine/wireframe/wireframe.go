// Package wireframe prepares mesh edges for anti-aliased line rendering.
//
// Each edge becomes a thin quad of four vertices. Both endpoints are emitted
// twice with opposite unit normals perpendicular to the edge in the XY plane;
// the vertex shader pushes each copy out along its normal by half the line
// width, and the fragment shader fades alpha across the normal.
package wireframe

import (
	"github.com/Faultbox/orbitview/internal/engine/bmesh"
	"github.com/Faultbox/orbitview/pkg/math"
)

// EdgeVertex is one corner of an edge quad. The Z coordinate of Position is
// only used for depth testing.
type EdgeVertex struct {
	Position [3]float32
	Normal   [2]float32
}

// EdgeVertexStride is the size of EdgeVertex in bytes.
const EdgeVertexStride = 5 * 4

// segmentIndices triangulates the quad {p0+n, p0-n, p1+n, p1-n}.
var segmentIndices = [6]uint16{0, 1, 2, 1, 2, 3}

// Mesh is a batch of edge quads.
type Mesh struct {
	Vertices []EdgeVertex
	Indices  []uint16
}

// FromSegment builds the quad for the edge p0-p1. An edge with no XY extent
// gets zero normals and collapses to a line.
func FromSegment(p0, p1 math.Vec3) Mesh {
	n := p1.Sub(p0).XY().PerpendicularCW().Normalize()
	pos, neg := n.Array(), n.Neg().Array()

	return Mesh{
		Vertices: []EdgeVertex{
			{Position: p0.Array(), Normal: pos},
			{Position: p0.Array(), Normal: neg},
			{Position: p1.Array(), Normal: pos},
			{Position: p1.Array(), Normal: neg},
		},
		Indices: append([]uint16(nil), segmentIndices[:]...),
	}
}

// Append adds other to m, offsetting its indices.
func (m *Mesh) Append(other Mesh) error {
	base := len(m.Vertices)
	if base+len(other.Vertices) > bmesh.MaxVertices {
		return bmesh.ErrTooManyVertices
	}
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, uint16(base)+idx)
	}
	return nil
}

// FromMesh builds the quads of every edge of mesh, in edge order.
func FromMesh(mesh *bmesh.Mesh) (Mesh, error) {
	segments := mesh.EdgePositions()
	out := Mesh{
		Vertices: make([]EdgeVertex, 0, len(segments)*4),
		Indices:  make([]uint16, 0, len(segments)*6),
	}
	for _, s := range segments {
		if err := out.Append(FromSegment(s[0], s[1])); err != nil {
			return Mesh{}, err
		}
	}
	return out, nil
}
