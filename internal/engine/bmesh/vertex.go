package bmesh

import "github.com/Faultbox/orbitview/pkg/math"

// VertexHandle indexes the vertex arena of a mesh.
type VertexHandle int

// Vertex is a mesh vertex. ID is unique within the mesh and is the key used
// by the edge lookup table and tesselation merging.
type Vertex struct {
	ID       uint32
	Position math.Vec3
}

// idAllocator draws identifiers from an IDSource, redrawing on collision.
type idAllocator struct {
	src  IDSource
	used map[uint32]struct{}
}

func newIDAllocator(src IDSource) idAllocator {
	return idAllocator{src: src, used: make(map[uint32]struct{})}
}

func (a *idAllocator) next() uint32 {
	for {
		id := a.src.Uint32()
		if _, taken := a.used[id]; !taken {
			a.used[id] = struct{}{}
			return id
		}
	}
}
