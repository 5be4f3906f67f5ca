// Package debug provides debug visualization geometry.
package debug

import (
	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/internal/engine/resource"
	"github.com/Faultbox/sceneview/pkg/math"
)

// BBoxVertexCount and BBoxIndexCount describe the unit cube wireframe.
const (
	BBoxVertexCount = 8
	BBoxIndexCount  = 24 // 12 edges
)

// BBoxColor is the flat color boxes are drawn in.
var BBoxColor = math.RGBA(0, 1, 0, 1)

// UnitCubeWireframe returns a line list spanning 0..1 on every axis.
func UnitCubeWireframe() resource.GeometryData {
	return resource.GeometryData{
		Mode: gpu.Lines,
		Vertices: []math.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 1, Y: 1, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 0, Z: 1},
			{X: 0, Y: 1, Z: 1},
			{X: 1, Y: 1, Z: 1},
			{X: 1, Y: 0, Z: 1},
		},
		Indices: []uint32{
			// z = 0 face
			0, 1, 1, 2, 2, 3, 3, 0,
			// z = 1 face
			4, 5, 5, 6, 6, 7, 7, 4,
			// edges between them
			0, 4, 1, 5, 2, 6, 3, 7,
		},
	}
}

// BBoxTransform maps the unit cube onto box: translate to Min, scale by
// the extent.
func BBoxTransform(box math.AABB) math.Mat4 {
	size := box.Size()
	return math.Translate(box.Min.X, box.Min.Y, box.Min.Z).Mul(math.Scale(size.X, size.Y, size.Z))
}
