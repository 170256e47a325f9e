package bmesh

import "fmt"

// Tesselation is a vertex list plus a triangle index list into it.
type Tesselation struct {
	Vertices []VertexHandle
	Indices  []uint16
}

// Aggregate merges the local tesselations of faces into one buffer
// description. Vertices sharing an ID are merged: the first occurrence takes
// the next free slot and later occurrences reuse it. Slots are assigned in face
// order, then in loop order within a face.
func Aggregate(vertices []Vertex, faces []Face) (Tesselation, error) {
	var out Tesselation
	slots := make(map[uint32]uint16)

	for fi, face := range faces {
		local := face.Tesselation()
		remap := make([]uint16, len(local.Vertices))

		for i, h := range local.Vertices {
			if int(h) < 0 || int(h) >= len(vertices) {
				return Tesselation{}, fmt.Errorf("face %d: %w: vertex %d", fi, ErrInvalidHandle, h)
			}
			id := vertices[h].ID

			slot, seen := slots[id]
			if !seen {
				if len(out.Vertices) >= MaxVertices {
					return Tesselation{}, fmt.Errorf("face %d: %w", fi, ErrTooManyVertices)
				}
				slot = uint16(len(out.Vertices))
				slots[id] = slot
				out.Vertices = append(out.Vertices, h)
			}
			remap[i] = slot
		}

		for _, idx := range local.Indices {
			out.Indices = append(out.Indices, remap[idx])
		}
	}

	return out, nil
}
