package bmesh

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/Faultbox/orbitview/pkg/math"
)

// seqIDs hands out 1, 2, 3, ...
type seqIDs struct{ n uint32 }

func (s *seqIDs) Uint32() uint32 {
	s.n++
	return s.n
}

// repeatIDs replays a fixed list of values, then counts up from 1000.
type repeatIDs struct {
	values []uint32
	n      uint32
}

func (r *repeatIDs) Uint32() uint32 {
	if len(r.values) > 0 {
		v := r.values[0]
		r.values = r.values[1:]
		return v
	}
	r.n++
	return 1000 + r.n
}

func addVertices(t *testing.T, b *Builder, points ...math.Vec3) []VertexHandle {
	t.Helper()
	var out []VertexHandle
	for _, p := range points {
		h, err := b.AddVertex(p)
		if err != nil {
			t.Fatalf("AddVertex(%v) error = %v", p, err)
		}
		out = append(out, h)
	}
	return out
}

func TestAggregateSharedEdge(t *testing.T) {
	b := NewBuilder(&seqIDs{})
	v := addVertices(t, b,
		math.Vec3{X: 0, Y: 0},
		math.Vec3{X: 1, Y: 0},
		math.Vec3{X: 1, Y: 1},
		math.Vec3{X: 0, Y: 1},
	)

	first := []VertexHandle{v[0], v[1], v[2]}
	second := []VertexHandle{v[0], v[2], v[3]}
	for _, loop := range [][]VertexHandle{first, second} {
		if _, err := b.AddEdgeLoop(loop); err != nil {
			t.Fatalf("AddEdgeLoop(%v) error = %v", loop, err)
		}
	}
	for _, loop := range [][]VertexHandle{first, second} {
		if _, err := b.AddFace(loop); err != nil {
			t.Fatalf("AddFace(%v) error = %v", loop, err)
		}
	}

	m, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	tess := m.Tesselation()
	if len(tess.Vertices) != 4 {
		t.Errorf("unique vertices = %d, want 4", len(tess.Vertices))
	}
	want := []uint16{0, 1, 2, 0, 2, 3}
	if len(tess.Indices) != len(want) {
		t.Fatalf("indices = %v, want %v", tess.Indices, want)
	}
	for i := range want {
		if tess.Indices[i] != want[i] {
			t.Errorf("indices = %v, want %v", tess.Indices, want)
			break
		}
	}

	// The shared diagonal was created once.
	if m.NumEdges() != 5 {
		t.Errorf("NumEdges() = %d, want 5", m.NumEdges())
	}
}

func TestAggregateQuadRemapsIndices(t *testing.T) {
	vertices := []Vertex{{ID: 40}, {ID: 10}, {ID: 30}, {ID: 20}}
	face, err := NewFace([]VertexHandle{3, 2, 1, 0}, Quad)
	if err != nil {
		t.Fatalf("NewFace() error = %v", err)
	}

	tess, err := Aggregate(vertices, []Face{face})
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	// Slots follow loop order, not handle or ID order.
	wantVertices := []VertexHandle{3, 2, 1, 0}
	for i, h := range wantVertices {
		if tess.Vertices[i] != h {
			t.Fatalf("vertices = %v, want %v", tess.Vertices, wantVertices)
		}
	}
	wantIndices := []uint16{0, 1, 2, 2, 3, 0}
	for i, idx := range wantIndices {
		if tess.Indices[i] != idx {
			t.Fatalf("indices = %v, want %v", tess.Indices, wantIndices)
		}
	}
}

func TestAggregateDeterministic(t *testing.T) {
	vertices := []Vertex{{ID: 7}, {ID: 3}, {ID: 9}, {ID: 1}, {ID: 5}}
	f1, _ := NewFace([]VertexHandle{4, 3, 2}, Triangle)
	f2, _ := NewFace([]VertexHandle{0, 1, 2, 3}, Quad)

	a, err := Aggregate(vertices, []Face{f1, f2})
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		b, _ := Aggregate(vertices, []Face{f1, f2})
		for j := range a.Indices {
			if a.Indices[j] != b.Indices[j] {
				t.Fatalf("run %d: indices differ: %v vs %v", i, a.Indices, b.Indices)
			}
		}
	}

	// Face order decides slots: 4,3,2 come first.
	want := []VertexHandle{4, 3, 2, 0, 1}
	for i, h := range want {
		if a.Vertices[i] != h {
			t.Fatalf("vertices = %v, want %v", a.Vertices, want)
		}
	}

	for _, idx := range a.Indices {
		if int(idx) >= len(a.Vertices) {
			t.Errorf("index %d out of range for %d vertices", idx, len(a.Vertices))
		}
	}
}

func TestAggregateInvalidHandle(t *testing.T) {
	face, _ := NewFace([]VertexHandle{0, 1, 5}, Triangle)
	_, err := Aggregate([]Vertex{{ID: 1}, {ID: 2}}, []Face{face})
	if !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("Aggregate() error = %v, want ErrInvalidHandle", err)
	}
}

func TestAggregateVertexCeiling(t *testing.T) {
	const quads = MaxVertices/4 + 1
	vertices := make([]Vertex, quads*4)
	faces := make([]Face, 0, quads)
	for i := range vertices {
		vertices[i] = Vertex{ID: uint32(i + 1)}
	}
	for q := 0; q < quads; q++ {
		base := VertexHandle(q * 4)
		f, err := NewFace([]VertexHandle{base, base + 1, base + 2, base + 3}, Quad)
		if err != nil {
			t.Fatalf("NewFace() error = %v", err)
		}
		faces = append(faces, f)
	}

	if _, err := Aggregate(vertices, faces[:quads-1]); err != nil {
		t.Fatalf("Aggregate() of exactly %d vertices error = %v", MaxVertices, err)
	}
	if _, err := Aggregate(vertices, faces); !errors.Is(err, ErrTooManyVertices) {
		t.Errorf("Aggregate() error = %v, want ErrTooManyVertices", err)
	}
}

func TestFromNgon(t *testing.T) {
	tests := []struct {
		name        string
		points      []math.Vec3
		wantIndices []uint16
	}{
		{
			name:        "triangle",
			points:      []math.Vec3{{X: 0}, {X: 1}, {Y: 1}},
			wantIndices: []uint16{0, 1, 2},
		},
		{
			name:        "quad",
			points:      []math.Vec3{{X: 0}, {X: 1}, {X: 1, Y: 1}, {Y: 1}},
			wantIndices: []uint16{0, 1, 2, 2, 3, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := FromNgon(rand.New(rand.NewPCG(1, 2)), tt.points)
			if err != nil {
				t.Fatalf("FromNgon() error = %v", err)
			}
			if m.NumVertices() != len(tt.points) || m.NumEdges() != len(tt.points) || m.NumFaces() != 1 {
				t.Errorf("counts = (%d, %d, %d)", m.NumVertices(), m.NumEdges(), m.NumFaces())
			}
			got := m.Indices()
			if len(got) != len(tt.wantIndices) {
				t.Fatalf("Indices() = %v, want %v", got, tt.wantIndices)
			}
			for i := range got {
				if got[i] != tt.wantIndices[i] {
					t.Fatalf("Indices() = %v, want %v", got, tt.wantIndices)
				}
			}
			positions := m.Positions()
			for i, p := range tt.points {
				if positions[i] != p {
					t.Errorf("Positions()[%d] = %v, want %v", i, positions[i], p)
				}
			}
		})
	}
}

func TestFromNgonUnsupportedArity(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5, 8} {
		points := make([]math.Vec3, n)
		for i := range points {
			points[i] = math.Vec3{X: float32(i)}
		}
		m, err := FromNgon(&seqIDs{}, points)
		if !errors.Is(err, ErrUnsupportedArity) {
			t.Errorf("FromNgon(%d points) error = %v, want ErrUnsupportedArity", n, err)
		}
		if m != nil {
			t.Errorf("FromNgon(%d points) returned a mesh", n)
		}
	}
}

func TestAddFaceUnsupportedArity(t *testing.T) {
	b := NewBuilder(&seqIDs{})
	v := addVertices(t, b,
		math.Vec3{X: 0}, math.Vec3{X: 1}, math.Vec3{X: 2}, math.Vec3{X: 3}, math.Vec3{X: 4},
	)
	if _, err := b.AddEdgeLoop(v); err != nil {
		t.Fatalf("AddEdgeLoop() error = %v", err)
	}
	if _, err := b.AddFace(v); !errors.Is(err, ErrUnsupportedArity) {
		t.Errorf("AddFace(5 vertices) error = %v, want ErrUnsupportedArity", err)
	}
}

func TestNewFaceArityMismatch(t *testing.T) {
	if _, err := NewFace([]VertexHandle{0, 1, 2}, Quad); !errors.Is(err, ErrUnsupportedArity) {
		t.Errorf("NewFace(3, Quad) error = %v", err)
	}
	if _, err := NewFace([]VertexHandle{0, 1, 2}, TesselationStrategy(9)); !errors.Is(err, ErrUnsupportedArity) {
		t.Errorf("NewFace with unknown strategy error = %v", err)
	}
}

func TestAddFaceMissingEdge(t *testing.T) {
	b := NewBuilder(&seqIDs{})
	v := addVertices(t, b, math.Vec3{X: 0}, math.Vec3{X: 1}, math.Vec3{Y: 1})
	if _, err := b.AddEdge(v[0], v[1]); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	if _, err := b.AddEdge(v[1], v[2]); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	if _, err := b.AddFace(v); !errors.Is(err, ErrMissingEdge) {
		t.Errorf("AddFace() error = %v, want ErrMissingEdge", err)
	}
}

func TestAddFaceRetryAfterMissingEdge(t *testing.T) {
	b := NewBuilder(&seqIDs{})
	v := addVertices(t, b, math.Vec3{X: 0}, math.Vec3{X: 1}, math.Vec3{Y: 1})
	if _, err := b.AddEdge(v[0], v[1]); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	if _, err := b.AddEdge(v[2], v[0]); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	if _, err := b.AddFace(v); !errors.Is(err, ErrMissingEdge) {
		t.Fatalf("AddFace() error = %v, want ErrMissingEdge", err)
	}

	// The rejected face must not have closed the edge stage.
	if _, err := b.AddEdge(v[1], v[2]); err != nil {
		t.Fatalf("AddEdge after rejected face error = %v", err)
	}
	if _, err := b.AddFace(v); err != nil {
		t.Fatalf("AddFace retry error = %v", err)
	}
	m, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if m.NumFaces() != 1 || m.NumEdges() != 3 {
		t.Errorf("faces = %d, edges = %d, want 1 and 3", m.NumFaces(), m.NumEdges())
	}
}

func TestAddEdgeFailureKeepsStage(t *testing.T) {
	b := NewBuilder(&seqIDs{})
	v := addVertices(t, b, math.Vec3{X: 0}, math.Vec3{X: 1})
	if _, err := b.AddEdge(v[0], v[0]); !errors.Is(err, ErrDegenerateEdge) {
		t.Fatalf("AddEdge(v, v) error = %v, want ErrDegenerateEdge", err)
	}
	if _, err := b.AddVertex(math.Vec3{Y: 1}); err != nil {
		t.Errorf("AddVertex after rejected edge error = %v", err)
	}
}

func TestAddFaceRepeatedVertex(t *testing.T) {
	b := NewBuilder(&seqIDs{})
	v := addVertices(t, b, math.Vec3{X: 0}, math.Vec3{X: 1})
	if _, err := b.AddEdge(v[0], v[1]); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}

	tests := []struct {
		name string
		loop []VertexHandle
	}{
		{"quad", []VertexHandle{v[0], v[1], v[0], v[1]}},
		{"triangle", []VertexHandle{v[0], v[1], v[1]}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := b.AddFace(tt.loop); !errors.Is(err, ErrDegenerateFace) {
				t.Errorf("AddFace(%v) error = %v, want ErrDegenerateFace", tt.loop, err)
			}
		})
	}
}

func TestFacesAreCopies(t *testing.T) {
	m, err := FromNgon(&seqIDs{}, []math.Vec3{{X: 0}, {X: 1}, {Y: 1}})
	if err != nil {
		t.Fatalf("FromNgon() error = %v", err)
	}

	faces := m.Faces()
	faces[0].Loop[0] = 99
	local := faces[0].Tesselation()
	local.Vertices[1] = 98
	local.Indices[0] = 7
	whole := m.Tesselation()
	whole.Vertices[2] = 97
	whole.Indices[1] = 7

	f := m.Faces()[0]
	if f.Loop[0] != 0 {
		t.Errorf("Loop[0] = %d, want 0", f.Loop[0])
	}
	got := f.Tesselation()
	for i, want := range []VertexHandle{0, 1, 2} {
		if got.Vertices[i] != want {
			t.Fatalf("face tesselation vertices = %v, want [0 1 2]", got.Vertices)
		}
	}
	if got.Indices[0] != 0 {
		t.Errorf("face tesselation indices = %v", got.Indices)
	}
	mt := m.Tesselation()
	if mt.Vertices[2] != 2 || mt.Indices[1] != 1 {
		t.Errorf("mesh tesselation = %v %v, want it unchanged", mt.Vertices, mt.Indices)
	}
}

func TestPipelineOrder(t *testing.T) {
	b := NewBuilder(&seqIDs{})
	v := addVertices(t, b, math.Vec3{X: 0}, math.Vec3{X: 1}, math.Vec3{Y: 1})
	if _, err := b.AddEdgeLoop(v); err != nil {
		t.Fatalf("AddEdgeLoop() error = %v", err)
	}
	if _, err := b.AddVertex(math.Vec3{Z: 1}); !errors.Is(err, ErrPipelineOrder) {
		t.Errorf("AddVertex after edges error = %v, want ErrPipelineOrder", err)
	}
	if _, err := b.AddFace(v); err != nil {
		t.Fatalf("AddFace() error = %v", err)
	}
	if _, err := b.AddEdge(v[0], v[1]); !errors.Is(err, ErrPipelineOrder) {
		t.Errorf("AddEdge after faces error = %v, want ErrPipelineOrder", err)
	}
	if _, err := b.Build(); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, err := b.AddFace(v); !errors.Is(err, ErrPipelineOrder) {
		t.Errorf("AddFace after Build error = %v, want ErrPipelineOrder", err)
	}
	if _, err := b.Build(); !errors.Is(err, ErrPipelineOrder) {
		t.Errorf("second Build error = %v, want ErrPipelineOrder", err)
	}
}

func TestAddEdgeInvalid(t *testing.T) {
	b := NewBuilder(&seqIDs{})
	v := addVertices(t, b, math.Vec3{X: 0}, math.Vec3{X: 1})
	if _, err := b.AddEdge(v[0], v[0]); !errors.Is(err, ErrDegenerateEdge) {
		t.Errorf("AddEdge(v, v) error = %v, want ErrDegenerateEdge", err)
	}
	if _, err := b.AddEdge(v[0], 7); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("AddEdge(v, 7) error = %v, want ErrInvalidHandle", err)
	}
}

func TestVertexIDsUnique(t *testing.T) {
	// The source repeats 5 three times; every vertex must still get its own ID.
	b := NewBuilder(&repeatIDs{values: []uint32{5, 5, 5, 6}})
	v := addVertices(t, b, math.Vec3{X: 0}, math.Vec3{X: 1}, math.Vec3{X: 2})
	if _, err := b.AddEdgeLoop(v); err != nil {
		t.Fatalf("AddEdgeLoop() error = %v", err)
	}
	if _, err := b.AddFace(v); err != nil {
		t.Fatalf("AddFace() error = %v", err)
	}
	m, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	seen := map[uint32]bool{}
	for _, h := range v {
		vv, err := m.Vertex(h)
		if err != nil {
			t.Fatalf("Vertex(%d) error = %v", h, err)
		}
		if seen[vv.ID] {
			t.Errorf("duplicate vertex ID %d", vv.ID)
		}
		seen[vv.ID] = true
	}
	if len(m.Tesselation().Vertices) != 3 {
		t.Errorf("tesselation merged distinct vertices: %v", m.Tesselation().Vertices)
	}
}

func TestMeshEdgeQueries(t *testing.T) {
	m, err := FromNgon(&seqIDs{}, []math.Vec3{{X: 0}, {X: 1}, {X: 1, Y: 1}, {Y: 1}})
	if err != nil {
		t.Fatalf("FromNgon() error = %v", err)
	}

	e01, ok := m.EdgeBetween(0, 1)
	if !ok {
		t.Fatal("EdgeBetween(0, 1) not found")
	}
	e10, ok := m.EdgeBetween(1, 0)
	if !ok || e10 != e01 {
		t.Errorf("EdgeBetween(1, 0) = %d, %v; want %d", e10, ok, e01)
	}
	if _, ok := m.EdgeBetween(0, 2); ok {
		t.Error("EdgeBetween(0, 2) should not exist in a quad loop")
	}
	if _, ok := m.EdgeBetween(0, 99); ok {
		t.Error("EdgeBetween with invalid handle should be false")
	}

	for v := VertexHandle(0); v < 4; v++ {
		if got := len(m.EdgesOf(v)); got != 2 {
			t.Errorf("EdgesOf(%d) has %d edges, want 2", v, got)
		}
	}
	if len(m.EdgePositions()) != 4 {
		t.Errorf("EdgePositions() = %d, want 4", len(m.EdgePositions()))
	}
}
