// Package meshbank caches the default meshes of the viewer, built through
// bmesh and flattened into GPU-ready vertex and index streams.
package meshbank

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/engine/bmesh"
	"github.com/Faultbox/orbitview/internal/logger"
	"github.com/Faultbox/orbitview/pkg/math"
)

// ErrUnknownMesh is returned for keys the bank has no builder for.
var ErrUnknownMesh = errors.New("unknown mesh")

// Key identifies a default mesh.
type Key int

const (
	// Cube is a unit cube centered at the origin.
	Cube Key = iota
)

func (k Key) String() string {
	switch k {
	case Cube:
		return "cube"
	default:
		return fmt.Sprintf("Key(%d)", int(k))
	}
}

// Vertex is the GPU vertex layout: position then color, 6 floats.
type Vertex struct {
	Position [3]float32
	Color    [3]float32
}

// VertexStride is the size of Vertex in bytes.
const VertexStride = 6 * 4

// GPUMesh is a flattened triangle mesh.
type GPUMesh struct {
	Vertices []Vertex
	Indices  []uint16

	// Topology is kept for wireframe and picking.
	Topology *bmesh.Mesh
}

// DefaultColor is the color of every default mesh vertex.
var DefaultColor = [3]float32{0.9, 0.9, 0.9}

// Bank builds default meshes on first use and returns the cached copy after.
type Bank struct {
	mu     sync.Mutex
	ids    bmesh.IDSource
	meshes map[Key]*GPUMesh
}

// New creates a bank drawing element IDs from ids. A nil source uses a
// time-seeded generator.
func New(ids bmesh.IDSource) *Bank {
	if ids == nil {
		ids = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Bank{ids: ids, meshes: make(map[Key]*GPUMesh)}
}

// Get returns the mesh for key, building it on first request.
func (b *Bank) Get(key Key) (*GPUMesh, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if m, ok := b.meshes[key]; ok {
		return m, nil
	}

	var (
		topo *bmesh.Mesh
		err  error
	)
	switch key {
	case Cube:
		topo, err = buildCube(b.ids)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMesh, key)
	}
	if err != nil {
		return nil, fmt.Errorf("build %v: %w", key, err)
	}

	m := flatten(topo, DefaultColor)
	b.meshes[key] = m

	logger.Debug("mesh built",
		zap.Stringer("mesh", key),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("indices", len(m.Indices)),
		zap.Int("edges", topo.NumEdges()),
	)
	return m, nil
}

var cubeCorners = []math.Vec3{
	{X: -0.5, Y: 0.5, Z: -0.5},  // 0
	{X: 0.5, Y: 0.5, Z: -0.5},   // 1
	{X: -0.5, Y: -0.5, Z: -0.5}, // 2
	{X: 0.5, Y: -0.5, Z: -0.5},  // 3
	{X: 0.5, Y: 0.5, Z: 0.5},    // 4
	{X: 0.5, Y: -0.5, Z: 0.5},   // 5
	{X: -0.5, Y: 0.5, Z: 0.5},   // 6
	{X: -0.5, Y: -0.5, Z: 0.5},  // 7
}

// Every loop winds counter-clockwise when seen from outside the cube.
var cubeFaces = [][]int{
	{0, 1, 3, 2}, // front
	{4, 5, 3, 1}, // right
	{2, 7, 6, 0}, // left
	{7, 5, 4, 6}, // back
	{0, 6, 4, 1}, // top
	{3, 5, 7, 2}, // bottom
}

func buildCube(ids bmesh.IDSource) (*bmesh.Mesh, error) {
	b := bmesh.NewBuilder(ids)

	handles := make([]bmesh.VertexHandle, len(cubeCorners))
	for i, p := range cubeCorners {
		h, err := b.AddVertex(p)
		if err != nil {
			return nil, err
		}
		handles[i] = h
	}

	loops := make([][]bmesh.VertexHandle, len(cubeFaces))
	for i, face := range cubeFaces {
		loop := make([]bmesh.VertexHandle, len(face))
		for j, corner := range face {
			loop[j] = handles[corner]
		}
		loops[i] = loop
	}

	for _, loop := range loops {
		if _, err := b.AddEdgeLoop(loop); err != nil {
			return nil, err
		}
	}
	for _, loop := range loops {
		if _, err := b.AddFace(loop); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

func flatten(topo *bmesh.Mesh, color [3]float32) *GPUMesh {
	positions := topo.Positions()
	vertices := make([]Vertex, len(positions))
	for i, p := range positions {
		vertices[i] = Vertex{Position: p.Array(), Color: color}
	}
	return &GPUMesh{
		Vertices: vertices,
		Indices:  topo.Indices(),
		Topology: topo,
	}
}
