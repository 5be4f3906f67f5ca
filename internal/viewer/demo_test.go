package viewer

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sceneview/internal/config"
	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/internal/engine/gpu/gputest"
	"github.com/Faultbox/sceneview/internal/engine/render"
	"github.com/Faultbox/sceneview/internal/engine/resource"
	"github.com/Faultbox/sceneview/internal/engine/scene"
	"github.com/Faultbox/sceneview/pkg/math"
)

func TestBuildDemo(t *testing.T) {
	rec := gputest.New()
	res := resource.NewManager(rec, nil)
	sc := scene.New(res, nil)

	d, err := BuildDemo(res, sc, config.Default().Camera, 16.0/9, resource.ShaderID{})
	require.NoError(t, err)

	assert.Len(t, sc.Meshes(), 5)
	assert.Len(t, sc.Lights(), 2)

	view, err := sc.ResolveCamera(d.Camera)
	require.NoError(t, err)
	assert.InDelta(t, 5, view.Eye.X, 1e-3)
	assert.InDelta(t, -10, view.Eye.Z, 1e-3)

	// Meshes hold the only references to their resources.
	stats := res.Stats()
	assert.Equal(t, 4, stats.Geometries)
	assert.Equal(t, 4, stats.Materials)
	assert.Equal(t, 1, stats.Textures)
	assert.Equal(t, 3, stats.Shaders)

	require.NoError(t, sc.Remove(d.Spinner))
	assert.Len(t, sc.Meshes(), 3)
	assert.Len(t, sc.Lights(), 1)
	assert.Equal(t, 3, res.Stats().Geometries, "cube released with its last mesh")
}

func TestDemoDraws(t *testing.T) {
	rec := gputest.New()
	res := resource.NewManager(rec, nil)
	sc := scene.New(res, nil)
	d, err := BuildDemo(res, sc, config.Default().Camera, 1, resource.ShaderID{})
	require.NoError(t, err)

	ds := render.New(res, sc, rec, nil)
	require.NoError(t, ds.Draw(d.Camera))

	s := ds.Stats()
	assert.Equal(t, 5, s.DrawCalls)
	assert.Equal(t, 2, s.LightsUsed)
	assert.Zero(t, s.GPUErrors)
	assert.Equal(t, 1, rec.Count("BindTexture"))
	assert.Equal(t, []gputest.Call{
		{Op: "LineWidth", Args: []any{float32(2)}},
		{Op: "LineWidth", Args: []any{gpu.DefaultLineWidth}},
	}, rec.Filter("LineWidth"))
}

func TestLitCubeWinding(t *testing.T) {
	d := litCube([6]math.Vec4{}, 1)
	require.Len(t, d.Vertices, 24)
	require.Len(t, d.Indices, 36)

	for i := 0; i < len(d.Indices); i += 3 {
		a, b, c := d.Vertices[d.Indices[i]], d.Vertices[d.Indices[i+1]], d.Vertices[d.Indices[i+2]]
		face := b.Sub(a).Cross(c.Sub(a)).Normalize()
		n := d.Normals[d.Indices[i]]
		assert.InDelta(t, 1, face.Dot(n), 1e-5, "triangle %d is not counter-clockwise", i/3)
	}
	assert.Equal(t, math.NewAABB(math.Vec3{X: -0.5, Y: -0.5, Z: -0.5}, math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}),
		math.BoundsOf(d.Vertices...))
}

func TestChecker(t *testing.T) {
	a := color.RGBA{R: 255, A: 255}
	b := color.RGBA{B: 255, A: 255}
	img := checker(8, 2, a, b)
	assert.Equal(t, a, img.RGBAAt(0, 0))
	assert.Equal(t, b, img.RGBAAt(4, 0))
	assert.Equal(t, a, img.RGBAAt(4, 4))
}
