package bmesh

import "fmt"

// FaceHandle indexes the face arena of a mesh.
type FaceHandle int

// TesselationStrategy selects the fixed triangulation recipe of a face.
type TesselationStrategy int

const (
	// Triangle is a single triangle: [0 1 2].
	Triangle TesselationStrategy = iota
	// Quad is two triangles sharing the 0-2 diagonal: [0 1 2 2 3 0].
	Quad
)

var strategyIndices = map[TesselationStrategy][]uint16{
	Triangle: {0, 1, 2},
	Quad:     {0, 1, 2, 2, 3, 0},
}

// StrategyForArity returns the strategy for a loop of n vertices.
func StrategyForArity(n int) (TesselationStrategy, error) {
	switch n {
	case 3:
		return Triangle, nil
	case 4:
		return Quad, nil
	default:
		return 0, fmt.Errorf("%w: %d-gon", ErrUnsupportedArity, n)
	}
}

// Arity returns the number of vertices the strategy tesselates.
func (s TesselationStrategy) Arity() int {
	switch s {
	case Triangle:
		return 3
	case Quad:
		return 4
	default:
		return 0
	}
}

func (s TesselationStrategy) String() string {
	switch s {
	case Triangle:
		return "triangle"
	case Quad:
		return "quad"
	default:
		return fmt.Sprintf("TesselationStrategy(%d)", int(s))
	}
}

// Face is an ordered loop of vertices, counter-clockwise when seen from the
// front, with its local tesselation.
type Face struct {
	Loop     []VertexHandle
	Strategy TesselationStrategy

	tesselation Tesselation
}

// NewFace tesselates loop with strategy. The loop length must match the
// strategy's arity.
func NewFace(loop []VertexHandle, strategy TesselationStrategy) (Face, error) {
	indices, ok := strategyIndices[strategy]
	if !ok {
		return Face{}, fmt.Errorf("%w: strategy %v", ErrUnsupportedArity, strategy)
	}
	if len(loop) != strategy.Arity() {
		return Face{}, fmt.Errorf("%w: %d vertices for %v", ErrUnsupportedArity, len(loop), strategy)
	}

	return Face{
		Loop:     append([]VertexHandle(nil), loop...),
		Strategy: strategy,
		tesselation: Tesselation{
			Vertices: append([]VertexHandle(nil), loop...),
			Indices:  append([]uint16(nil), indices...),
		},
	}, nil
}

// Tesselation returns a copy of the face's local tesselation. Indices refer
// to positions in the face loop.
func (f Face) Tesselation() Tesselation {
	return Tesselation{
		Vertices: append([]VertexHandle(nil), f.tesselation.Vertices...),
		Indices:  append([]uint16(nil), f.tesselation.Indices...),
	}
}

func (f Face) clone() Face {
	f.Loop = append([]VertexHandle(nil), f.Loop...)
	f.tesselation = f.Tesselation()
	return f
}
