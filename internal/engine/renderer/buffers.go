package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/orbitview/internal/engine/meshbank"
	"github.com/Faultbox/orbitview/internal/engine/wireframe"
)

// attrib describes one float vertex attribute.
type attrib struct {
	location uint32
	size     int32
	offset   uintptr
}

// indexedBuffers is a VAO with a vertex buffer and a 16-bit index buffer.
type indexedBuffers struct {
	vao, vbo, ebo uint32
	count         int32
}

func newIndexedBuffers(vertices unsafe.Pointer, vertexBytes int, stride int32, attribs []attrib, indices []uint16) (*indexedBuffers, error) {
	if vertexBytes == 0 || len(indices) == 0 {
		return nil, fmt.Errorf("empty mesh")
	}

	b := &indexedBuffers{count: int32(len(indices))}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, vertexBytes, vertices, gl.STATIC_DRAW)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*2, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	for _, a := range attribs {
		gl.VertexAttribPointerWithOffset(a.location, a.size, gl.FLOAT, false, stride, a.offset)
		gl.EnableVertexAttribArray(a.location)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return b, nil
}

func uploadMesh(m *meshbank.GPUMesh) (*indexedBuffers, error) {
	if len(m.Vertices) == 0 {
		return nil, fmt.Errorf("empty mesh")
	}
	return newIndexedBuffers(
		unsafe.Pointer(&m.Vertices[0]),
		len(m.Vertices)*meshbank.VertexStride,
		meshbank.VertexStride,
		[]attrib{
			{location: 0, size: 3, offset: 0},     // position
			{location: 1, size: 3, offset: 3 * 4}, // color
		},
		m.Indices,
	)
}

func uploadEdges(m wireframe.Mesh) (*indexedBuffers, error) {
	if len(m.Vertices) == 0 {
		return nil, fmt.Errorf("empty edge mesh")
	}
	return newIndexedBuffers(
		unsafe.Pointer(&m.Vertices[0]),
		len(m.Vertices)*wireframe.EdgeVertexStride,
		wireframe.EdgeVertexStride,
		[]attrib{
			{location: 0, size: 3, offset: 0},     // position
			{location: 1, size: 2, offset: 3 * 4}, // normal
		},
		m.Indices,
	)
}

func (b *indexedBuffers) draw() {
	gl.BindVertexArray(b.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, b.count, gl.UNSIGNED_SHORT, 0)
	gl.BindVertexArray(0)
}

func (b *indexedBuffers) delete() {
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteBuffers(1, &b.ebo)
}
