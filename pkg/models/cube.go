package models

import "github.com/taigrr/flycube/pkg/math3d"

// cube is built once and shared; callers must treat it as read-only.
var cube = newCube()

// Cube returns the shared 2x2x2 cube centered at the origin: 8 vertices and
// 12 triangles, two per side.
func Cube() *Mesh {
	return cube
}

func newCube() *Mesh {
	m := NewMesh("cube")
	m.Vertices = []math3d.Vec3{
		{X: -1, Y: -1, Z: -1}, // 0: bottom-left-back
		{X: 1, Y: -1, Z: -1},  // 1: bottom-right-back
		{X: 1, Y: 1, Z: -1},   // 2: top-right-back
		{X: -1, Y: 1, Z: -1},  // 3: top-left-back
		{X: -1, Y: -1, Z: 1},  // 4: bottom-left-front
		{X: 1, Y: -1, Z: 1},   // 5: bottom-right-front
		{X: 1, Y: 1, Z: 1},    // 6: top-right-front
		{X: -1, Y: 1, Z: 1},   // 7: top-left-front
	}
	m.Faces = []Face{
		// z = -1
		{V: [3]int{0, 1, 2}},
		{V: [3]int{0, 2, 3}},
		// z = +1
		{V: [3]int{4, 5, 6}},
		{V: [3]int{4, 6, 7}},
		// y = -1
		{V: [3]int{0, 1, 5}},
		{V: [3]int{0, 5, 4}},
		// y = +1
		{V: [3]int{2, 3, 7}},
		{V: [3]int{2, 7, 6}},
		// x = +1
		{V: [3]int{1, 2, 6}},
		{V: [3]int{1, 6, 5}},
		// x = -1
		{V: [3]int{0, 3, 7}},
		{V: [3]int{0, 7, 4}},
	}
	m.CalculateBounds()
	return m
}
