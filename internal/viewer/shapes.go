package viewer

import (
	"image"
	"image/color"

	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/internal/engine/resource"
	"github.com/Faultbox/sceneview/pkg/math"
)

// cubeFaces lists each face as normal, then the two tangent axes whose
// cross product is the normal.
var cubeFaces = [6][3]math.Vec3{
	{{X: 1}, {Z: -1}, {Y: 1}},
	{{X: -1}, {Z: 1}, {Y: 1}},
	{{Y: 1}, {X: 1}, {Z: -1}},
	{{Y: -1}, {X: 1}, {Z: 1}},
	{{Z: 1}, {X: 1}, {Y: 1}},
	{{Z: -1}, {X: -1}, {Y: 1}},
}

// litCube is a unit cube centered on the origin with flat normals and one
// color per face.
func litCube(colors [6]math.Vec4, shininess float32) resource.GeometryData {
	d := resource.GeometryData{Mode: gpu.Triangles}
	for f, face := range cubeFaces {
		n, u, v := face[0], face[1], face[2]
		base := uint32(len(d.Vertices))
		for _, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := n.Add(u.Scale(c[0])).Add(v.Scale(c[1])).Scale(0.5)
			d.Vertices = append(d.Vertices, p)
			d.Normals = append(d.Normals, n)
			d.Diffuse = append(d.Diffuse, colors[f])
			d.Specular = append(d.Specular, math.RGBA(1, 1, 1, 1))
			d.Shininess = append(d.Shininess, shininess)
		}
		d.Indices = append(d.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return d
}

// ground is a size x size plane on y = 0 facing +Y.
func ground(size float32, c math.Vec4) resource.GeometryData {
	h := size / 2
	d := resource.GeometryData{
		Mode: gpu.TriangleStrip,
		Vertices: []math.Vec3{
			{X: -h, Z: h}, {X: h, Z: h}, {X: -h, Z: -h}, {X: h, Z: -h},
		},
	}
	for range d.Vertices {
		d.Normals = append(d.Normals, math.Vec3{Y: 1})
		d.Diffuse = append(d.Diffuse, c)
		d.Specular = append(d.Specular, math.Vec4{})
		d.Shininess = append(d.Shininess, 1)
	}
	return d
}

// texturedQuad is a unit quad in the XY plane facing +Z.
func texturedQuad() resource.GeometryData {
	return resource.GeometryData{
		Mode: gpu.TriangleFan,
		Vertices: []math.Vec3{
			{X: -0.5, Y: -0.5}, {X: 0.5, Y: -0.5}, {X: 0.5, Y: 0.5}, {X: -0.5, Y: 0.5},
		},
		TexCoords0: []math.Vec2{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}},
	}
}

// axes is three unit lines from the origin along X, Y and Z.
func axes() resource.GeometryData {
	return resource.GeometryData{
		Mode: gpu.Lines,
		Vertices: []math.Vec3{
			{}, {X: 1},
			{}, {Y: 1},
			{}, {Z: 1},
		},
	}
}

// checker returns a size x size checkerboard of cells x cells squares.
func checker(size, cells int, a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := max(size/cells, 1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, a)
			} else {
				img.SetRGBA(x, y, b)
			}
		}
	}
	return img
}
