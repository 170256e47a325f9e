// Package debug provides debug visualization and capture utilities.
package debug

import "github.com/Faultbox/orbitview/pkg/math"

// BoxEdges returns the 12 edges of the axis-aligned box spanned by min and
// max: the bottom face, the top face, then the vertical edges.
func BoxEdges(min, max math.Vec3) [][2]math.Vec3 {
	corner := func(x, y, z float32) math.Vec3 { return math.Vec3{X: x, Y: y, Z: z} }

	bottom := [4]math.Vec3{
		corner(min.X, min.Y, min.Z),
		corner(max.X, min.Y, min.Z),
		corner(max.X, min.Y, max.Z),
		corner(min.X, min.Y, max.Z),
	}
	top := [4]math.Vec3{
		corner(min.X, max.Y, min.Z),
		corner(max.X, max.Y, min.Z),
		corner(max.X, max.Y, max.Z),
		corner(min.X, max.Y, max.Z),
	}

	edges := make([][2]math.Vec3, 0, 12)
	for i := 0; i < 4; i++ {
		edges = append(edges, [2]math.Vec3{bottom[i], bottom[(i+1)%4]})
	}
	for i := 0; i < 4; i++ {
		edges = append(edges, [2]math.Vec3{top[i], top[(i+1)%4]})
	}
	for i := 0; i < 4; i++ {
		edges = append(edges, [2]math.Vec3{bottom[i], top[i]})
	}
	return edges
}

// Inflate grows the box by margin on every side.
func Inflate(min, max math.Vec3, margin float32) (math.Vec3, math.Vec3) {
	m := math.Vec3{X: margin, Y: margin, Z: margin}
	return min.Sub(m), max.Add(m)
}
