package bmesh

import (
	"sort"

	"go.uber.org/zap"
)

// EdgeHandle indexes the edge arena of a mesh.
type EdgeHandle int

// Edge connects two vertices. It is undirected for lookup purposes.
type Edge struct {
	ID uint32
	V0 VertexHandle
	V1 VertexHandle
}

// EdgeLookupTable indexes edges by the IDs of their vertices.
//   - EdgesOf(id) returns every edge touching the vertex.
//   - Edge(a, b) returns the edge between the two vertices, in either order.
//
// Every inserted edge is reachable from both endpoints. Inserting a second edge
// between the same pair replaces the adjacency entry; the replaced edge stays
// in the mesh but can no longer be found through the table, and a warning is
// logged.
type EdgeLookupTable struct {
	table map[uint32]map[uint32]EdgeHandle
}

// NewEdgeLookupTable creates an empty table.
func NewEdgeLookupTable() *EdgeLookupTable {
	return &EdgeLookupTable{table: make(map[uint32]map[uint32]EdgeHandle)}
}

// Insert registers e under (id0, id1) and (id1, id0). It returns the edge it
// replaced, if any.
func (t *EdgeLookupTable) Insert(id0, id1 uint32, e EdgeHandle) (replaced EdgeHandle, ok bool) {
	replaced, ok = t.Edge(id0, id1)
	if ok {
		log().Warn("duplicate edge replaces adjacency entry",
			zap.Uint32("v0", id0),
			zap.Uint32("v1", id1),
			zap.Int("old", int(replaced)),
			zap.Int("new", int(e)),
		)
	}

	t.entry(id0)[id1] = e
	t.entry(id1)[id0] = e
	return replaced, ok
}

// Edge returns the edge connecting the two vertices.
func (t *EdgeLookupTable) Edge(id0, id1 uint32) (EdgeHandle, bool) {
	e, ok := t.table[id0][id1]
	return e, ok
}

// EdgesOf returns the edges touching the vertex, ordered by handle.
func (t *EdgeLookupTable) EdgesOf(id uint32) []EdgeHandle {
	neighbours := t.table[id]
	edges := make([]EdgeHandle, 0, len(neighbours))
	for _, e := range neighbours {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i] < edges[j] })
	return edges
}

// Len returns the number of connected vertex pairs.
func (t *EdgeLookupTable) Len() int {
	n := 0
	for _, neighbours := range t.table {
		n += len(neighbours)
	}
	return n / 2
}

func (t *EdgeLookupTable) entry(id uint32) map[uint32]EdgeHandle {
	m, ok := t.table[id]
	if !ok {
		m = make(map[uint32]EdgeHandle)
		t.table[id] = m
	}
	return m
}
