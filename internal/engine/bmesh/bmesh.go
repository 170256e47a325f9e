// Package bmesh provides a small vertex/edge/face mesh topology with an edge
// adjacency table and per-face tesselation into 16-bit index buffers.
//
// Elements live in arenas owned by the mesh and refer to each other through
// integer handles. Only forward references are stored (face to vertex, edge to
// vertex), so no cycles can form.
//
// Construction is a strict pipeline: vertices, then edges, then faces, then
// Build. A built Mesh is read-only; rebuilding means starting a new Builder.
package bmesh

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/logger"
)

// MaxVertices is the vertex ceiling imposed by 16-bit indices.
const MaxVertices = 1 << 16

var (
	// ErrUnsupportedArity is returned for faces that are neither triangles nor quads.
	ErrUnsupportedArity = errors.New("unsupported face arity")
	// ErrInvalidHandle is returned for handles that do not exist in the mesh.
	ErrInvalidHandle = errors.New("invalid handle")
	// ErrDegenerateEdge is returned for an edge from a vertex to itself.
	ErrDegenerateEdge = errors.New("degenerate edge")
	// ErrDegenerateFace is returned for a face loop that visits a vertex twice.
	ErrDegenerateFace = errors.New("degenerate face")
	// ErrMissingEdge is returned when a face loop crosses vertices with no edge.
	ErrMissingEdge = errors.New("missing edge")
	// ErrPipelineOrder is returned when a construction step comes after a later stage.
	ErrPipelineOrder = errors.New("mesh construction out of order")
	// ErrTooManyVertices is returned when a tesselation needs more than MaxVertices slots.
	ErrTooManyVertices = errors.New("too many vertices for 16-bit indices")
	// ErrEmptyCycle is returned when creating a Cycle with no elements.
	ErrEmptyCycle = errors.New("empty cycle")
)

// IDSource produces the random identifiers assigned to vertices and edges.
// *rand.Rand from math/rand/v2 satisfies it.
type IDSource interface {
	Uint32() uint32
}

func log() *zap.Logger {
	return logger.Named("bmesh")
}
