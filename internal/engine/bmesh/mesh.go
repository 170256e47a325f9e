package bmesh

import (
	"fmt"

	"github.com/Faultbox/orbitview/pkg/math"
)

type stage int

const (
	stageVertices stage = iota
	stageEdges
	stageFaces
	stageBuilt
)

func (s stage) String() string {
	return [...]string{"vertices", "edges", "faces", "built"}[s]
}

// Builder constructs a Mesh. Steps must follow the order vertices, edges,
// faces; a step that goes back to an earlier stage fails with
// ErrPipelineOrder.
type Builder struct {
	vertexIDs idAllocator
	edgeIDs   idAllocator

	vertices []Vertex
	edges    []Edge
	faces    []Face
	lookup   *EdgeLookupTable

	stage stage
}

// NewBuilder creates a builder drawing element IDs from ids.
func NewBuilder(ids IDSource) *Builder {
	return &Builder{
		vertexIDs: newIDAllocator(ids),
		edgeIDs:   newIDAllocator(ids),
		lookup:    NewEdgeLookupTable(),
	}
}

// AddVertex allocates a vertex with a fresh ID.
func (b *Builder) AddVertex(position math.Vec3) (VertexHandle, error) {
	if err := b.enter(stageVertices); err != nil {
		return 0, err
	}
	h := VertexHandle(len(b.vertices))
	b.vertices = append(b.vertices, Vertex{ID: b.vertexIDs.next(), Position: position})
	return h, nil
}

// AddEdge allocates an edge between v0 and v1 and registers it in the lookup
// table in both directions. An existing edge between the same vertices is
// replaced in the table (see EdgeLookupTable).
func (b *Builder) AddEdge(v0, v1 VertexHandle) (EdgeHandle, error) {
	if err := b.allow(stageEdges); err != nil {
		return 0, err
	}
	if err := b.checkVertex(v0); err != nil {
		return 0, err
	}
	if err := b.checkVertex(v1); err != nil {
		return 0, err
	}
	if v0 == v1 {
		return 0, fmt.Errorf("%w: vertex %d", ErrDegenerateEdge, v0)
	}

	b.stage = stageEdges
	h := EdgeHandle(len(b.edges))
	b.edges = append(b.edges, Edge{ID: b.edgeIDs.next(), V0: v0, V1: v1})
	b.lookup.Insert(b.vertices[v0].ID, b.vertices[v1].ID, h)
	return h, nil
}

// AddEdgeLoop connects each vertex of loop to its successor, wrapping around,
// creating only the edges that do not exist yet. It returns the loop's edges
// in order.
func (b *Builder) AddEdgeLoop(loop []VertexHandle) ([]EdgeHandle, error) {
	cycle, err := NewCycle(loop)
	if err != nil {
		return nil, err
	}

	edges := make([]EdgeHandle, 0, cycle.Len())
	for _, pair := range cycle.pairs() {
		if err := b.checkVertex(pair[0]); err != nil {
			return nil, err
		}
		if err := b.checkVertex(pair[1]); err != nil {
			return nil, err
		}
		if e, ok := b.lookup.Edge(b.vertices[pair[0]].ID, b.vertices[pair[1]].ID); ok {
			edges = append(edges, e)
			continue
		}
		e, err := b.AddEdge(pair[0], pair[1])
		if err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, nil
}

// AddFace creates a face from a counter-clockwise vertex loop. The tesselation
// strategy is chosen by the loop length, and consecutive vertices must already
// be connected by edges. A rejected face leaves the builder unchanged, so the
// missing edges can still be added.
func (b *Builder) AddFace(loop []VertexHandle) (FaceHandle, error) {
	if err := b.allow(stageFaces); err != nil {
		return 0, err
	}
	strategy, err := StrategyForArity(len(loop))
	if err != nil {
		return 0, err
	}

	cycle, err := NewCycle(loop)
	if err != nil {
		return 0, err
	}
	seen := make(map[VertexHandle]bool, len(loop))
	for _, h := range loop {
		if err := b.checkVertex(h); err != nil {
			return 0, err
		}
		if seen[h] {
			return 0, fmt.Errorf("%w: vertex %d repeats", ErrDegenerateFace, h)
		}
		seen[h] = true
	}
	for _, pair := range cycle.pairs() {
		if _, ok := b.lookup.Edge(b.vertices[pair[0]].ID, b.vertices[pair[1]].ID); !ok {
			return 0, fmt.Errorf("%w: %d-%d", ErrMissingEdge, pair[0], pair[1])
		}
	}

	face, err := NewFace(loop, strategy)
	if err != nil {
		return 0, err
	}
	b.stage = stageFaces
	h := FaceHandle(len(b.faces))
	b.faces = append(b.faces, face)
	return h, nil
}

// Build aggregates the face tesselations and returns the finished mesh. The
// builder cannot be used afterwards.
func (b *Builder) Build() (*Mesh, error) {
	if err := b.enter(stageBuilt); err != nil {
		return nil, err
	}

	tesselation, err := Aggregate(b.vertices, b.faces)
	if err != nil {
		return nil, fmt.Errorf("aggregate tesselation: %w", err)
	}

	return &Mesh{
		vertices:    b.vertices,
		edges:       b.edges,
		faces:       b.faces,
		lookup:      b.lookup,
		tesselation: tesselation,
	}, nil
}

// allow reports whether a step of stage s may run now.
func (b *Builder) allow(s stage) error {
	if b.stage == stageBuilt || s < b.stage {
		return fmt.Errorf("%w: %v after %v", ErrPipelineOrder, s, b.stage)
	}
	return nil
}

func (b *Builder) enter(s stage) error {
	if err := b.allow(s); err != nil {
		return err
	}
	b.stage = s
	return nil
}

func (b *Builder) checkVertex(h VertexHandle) error {
	if int(h) < 0 || int(h) >= len(b.vertices) {
		return fmt.Errorf("%w: vertex %d", ErrInvalidHandle, h)
	}
	return nil
}

// FromNgon builds a single-face mesh from a counter-clockwise loop of points.
// Only triangles and quads are supported.
func FromNgon(ids IDSource, points []math.Vec3) (*Mesh, error) {
	if _, err := StrategyForArity(len(points)); err != nil {
		return nil, err
	}

	b := NewBuilder(ids)
	loop := make([]VertexHandle, 0, len(points))
	for _, p := range points {
		h, err := b.AddVertex(p)
		if err != nil {
			return nil, err
		}
		loop = append(loop, h)
	}
	if _, err := b.AddEdgeLoop(loop); err != nil {
		return nil, err
	}
	if _, err := b.AddFace(loop); err != nil {
		return nil, err
	}
	return b.Build()
}

// Mesh is a built, read-only mesh.
type Mesh struct {
	vertices []Vertex
	edges    []Edge
	faces    []Face
	lookup   *EdgeLookupTable

	tesselation Tesselation
}

// NumVertices returns the number of vertices.
func (m *Mesh) NumVertices() int { return len(m.vertices) }

// NumEdges returns the number of edges.
func (m *Mesh) NumEdges() int { return len(m.edges) }

// NumFaces returns the number of faces.
func (m *Mesh) NumFaces() int { return len(m.faces) }

// Vertex returns the vertex for h.
func (m *Mesh) Vertex(h VertexHandle) (Vertex, error) {
	if int(h) < 0 || int(h) >= len(m.vertices) {
		return Vertex{}, fmt.Errorf("%w: vertex %d", ErrInvalidHandle, h)
	}
	return m.vertices[h], nil
}

// Edges returns a copy of the edge list.
func (m *Mesh) Edges() []Edge {
	return append([]Edge(nil), m.edges...)
}

// Faces returns a deep copy of the face list.
func (m *Mesh) Faces() []Face {
	out := make([]Face, len(m.faces))
	for i, f := range m.faces {
		out[i] = f.clone()
	}
	return out
}

// EdgeBetween returns the edge connecting a and b.
func (m *Mesh) EdgeBetween(a, b VertexHandle) (EdgeHandle, bool) {
	va, err := m.Vertex(a)
	if err != nil {
		return 0, false
	}
	vb, err := m.Vertex(b)
	if err != nil {
		return 0, false
	}
	return m.lookup.Edge(va.ID, vb.ID)
}

// EdgesOf returns the edges touching v.
func (m *Mesh) EdgesOf(v VertexHandle) []EdgeHandle {
	vv, err := m.Vertex(v)
	if err != nil {
		return nil
	}
	return m.lookup.EdgesOf(vv.ID)
}

// Tesselation returns the aggregated tesselation of all faces.
func (m *Mesh) Tesselation() Tesselation {
	return Tesselation{
		Vertices: append([]VertexHandle(nil), m.tesselation.Vertices...),
		Indices:  append([]uint16(nil), m.tesselation.Indices...),
	}
}

// Positions returns the vertex positions in tesselation slot order, ready to
// be paired with Indices.
func (m *Mesh) Positions() []math.Vec3 {
	out := make([]math.Vec3, len(m.tesselation.Vertices))
	for i, h := range m.tesselation.Vertices {
		out[i] = m.vertices[h].Position
	}
	return out
}

// Indices returns the triangle index list.
func (m *Mesh) Indices() []uint16 {
	return append([]uint16(nil), m.tesselation.Indices...)
}

// EdgePositions returns the endpoint positions of every edge.
func (m *Mesh) EdgePositions() [][2]math.Vec3 {
	out := make([][2]math.Vec3, len(m.edges))
	for i, e := range m.edges {
		out[i] = [2]math.Vec3{m.vertices[e.V0].Position, m.vertices[e.V1].Position}
	}
	return out
}
