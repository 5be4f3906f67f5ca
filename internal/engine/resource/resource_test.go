package resource

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/internal/engine/gpu/gputest"
	"github.com/Faultbox/sceneview/pkg/math"
)

func quad() GeometryData {
	return GeometryData{
		Mode: gpu.TriangleFan,
		Vertices: []math.Vec3{
			{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1},
		},
		Normals: []math.Vec3{
			{Z: 1}, {Z: 1}, {Z: 1}, {Z: 1},
		},
		TexCoords0: []math.Vec2{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		},
	}
}

func TestLoadGeometryLayout(t *testing.T) {
	rec := gputest.New()
	m := NewManager(rec, nil)

	id, err := m.LoadGeometry(quad())
	require.NoError(t, err)
	g, err := m.Geometry(id)
	require.NoError(t, err)

	assert.Equal(t, 4, g.NumVertices)
	assert.False(t, g.Indexed())
	assert.Equal(t, AttribLayout{Count: 4, Offset: 0}, g.Attribs[AttribPosition])
	assert.Equal(t, AttribLayout{Count: 4, Offset: 48}, g.Attribs[AttribNormal])
	assert.Equal(t, AttribLayout{Count: 0, Offset: 96}, g.Attribs[AttribDiffuse])
	assert.Equal(t, AttribLayout{Count: 4, Offset: 96}, g.Attribs[AttribTexCoord0])
	assert.False(t, g.Has(AttribShininess))
	assert.Len(t, rec.Buffers[g.VertexBuffer], 128)
	assert.Equal(t, math.AABB{Min: math.Vec3{X: -1, Y: -1}, Max: math.Vec3{X: 1, Y: 1}}, g.Bounds)
}

func TestLoadGeometryIndexed(t *testing.T) {
	rec := gputest.New()
	m := NewManager(rec, nil)

	data := quad()
	data.Mode = gpu.Triangles
	data.Indices = []uint32{0, 1, 2, 0, 2, 3}
	id, err := m.LoadGeometry(data)
	require.NoError(t, err)

	g, _ := m.Geometry(id)
	require.True(t, g.Indexed())
	assert.Equal(t, gpu.UnsignedShort, g.IndexType)
	assert.Equal(t, 6, g.NumIndices)
	assert.Len(t, rec.Buffers[g.IndexBuffer], 12)
}

func TestLoadGeometryMalformed(t *testing.T) {
	m := NewManager(gputest.New(), nil)

	short := quad()
	short.Normals = short.Normals[:3]
	_, err := m.LoadGeometry(short)
	assert.ErrorIs(t, err, ErrMalformedGeometry)

	badIndex := quad()
	badIndex.Indices = []uint32{0, 1, 4}
	_, err = m.LoadGeometry(badIndex)
	assert.ErrorIs(t, err, ErrMalformedGeometry)
}

func TestReloadGeometryKeepsHandle(t *testing.T) {
	rec := gputest.New()
	m := NewManager(rec, nil)
	id, err := m.LoadGeometry(quad())
	require.NoError(t, err)
	g, _ := m.Geometry(id)
	oldVBO := g.VertexBuffer
	rev := m.GeometryRevision()

	data := quad()
	data.Vertices[2] = math.Vec3{X: 3, Y: 3}
	require.NoError(t, m.ReloadGeometry(id, data))

	g, err = m.Geometry(id)
	require.NoError(t, err)
	assert.NotEqual(t, oldVBO, g.VertexBuffer)
	assert.NotContains(t, rec.Buffers, oldVBO)
	assert.Equal(t, float32(3), g.Bounds.Max.X)
	assert.Greater(t, m.GeometryRevision(), rev)
}

func TestGeometryReleaseDeletesBuffers(t *testing.T) {
	rec := gputest.New()
	m := NewManager(rec, nil)
	data := quad()
	data.Indices = []uint32{0, 1, 2}
	id, err := m.LoadGeometry(data)
	require.NoError(t, err)
	require.NoError(t, m.RetainGeometry(id))

	require.NoError(t, m.ReleaseGeometry(id))
	assert.Len(t, rec.Buffers, 2, "still referenced")

	require.NoError(t, m.ReleaseGeometry(id))
	assert.Empty(t, rec.Buffers)

	_, err = m.Geometry(id)
	assert.ErrorIs(t, err, ErrInvalidHandle)
	assert.ErrorIs(t, m.ReleaseGeometry(id), ErrInvalidHandle)
}

func TestShaderStandardVariables(t *testing.T) {
	rec := gputest.New()
	rec.Layouts["lit.vert"] = gputest.Layout{
		Uniforms: map[string]int32{
			"sv_mvp_mat":              1,
			"sv_model_normal_mat":     2,
			"sv_lights[0].direction":  10,
			"sv_lights[3].cone_angle": 40,
			"tint":                    7,
		},
		Attribs: map[string]int32{
			"sv_vert_pos": 0,
			"sv_normal":   1,
		},
	}
	m := NewManager(rec, nil)

	id, err := m.LoadShader("lit", "lit.vert", "lit.frag")
	require.NoError(t, err)
	s, err := m.Shader(id)
	require.NoError(t, err)

	v := s.Vars
	assert.Equal(t, int32(1), v.MVPMat)
	assert.Equal(t, int32(2), v.ModelNormalMat)
	assert.Equal(t, int32(-1), v.ProjMat)
	assert.Equal(t, int32(-1), v.ViewMatInv)
	assert.Equal(t, int32(10), v.Lights[0].Direction)
	assert.Equal(t, int32(-1), v.Lights[0].Position)
	assert.Equal(t, int32(40), v.Lights[3].ConeAngle)
	assert.Equal(t, int32(0), v.Attribs[AttribPosition])
	assert.Equal(t, int32(1), v.Attribs[AttribNormal])
	assert.Equal(t, int32(-1), v.Attribs[AttribTexCoord0])

	assert.Equal(t, int32(7), s.Uniform("tint"))
	assert.Equal(t, int32(-1), s.Uniform("missing"))

	found, ok := m.ShaderByName("lit")
	assert.True(t, ok)
	assert.Equal(t, id, found)
}

func TestLoadShaderErrors(t *testing.T) {
	rec := gputest.New()
	rec.CompileErrors["broken.vert"] = errors.New("0:1: syntax error")
	m := NewManager(rec, nil)

	_, err := m.LoadShader("broken", "broken.vert", "f")
	assert.ErrorContains(t, err, "syntax error")

	_, err = m.LoadShader("a", "v", "f")
	require.NoError(t, err)
	_, err = m.LoadShader("a", "v", "f")
	assert.Error(t, err, "duplicate name")
}

func TestReloadShaderFailureKeepsProgram(t *testing.T) {
	rec := gputest.New()
	rec.CompileErrors["bad.vert"] = errors.New("compile failed")
	m := NewManager(rec, nil)

	id, err := m.LoadShader("s", "good.vert", "f")
	require.NoError(t, err)
	s, _ := m.Shader(id)
	prog := s.Program

	assert.Error(t, m.ReloadShader(id, "bad.vert", "f"))
	assert.Equal(t, prog, s.Program)

	require.NoError(t, m.ReloadShader(id, "good2.vert", "f"))
	assert.NotEqual(t, prog, s.Program)
	assert.NotContains(t, rec.Programs, prog)
}

func TestMaterialDefaults(t *testing.T) {
	m := NewManager(gputest.New(), nil)
	id, err := m.MakeMaterial("plain", ShaderID{})
	require.NoError(t, err)
	mat, err := m.Material(id)
	require.NoError(t, err)

	assert.True(t, mat.Shader().IsZero())
	assert.False(t, mat.TwoSided)
	assert.True(t, mat.DepthWrite)
	assert.True(t, mat.DepthTest)
	assert.True(t, mat.ColorWrite)
	assert.Zero(t, mat.PointSize)
	assert.Zero(t, mat.LineWidth)
	assert.True(t, mat.Blend)
	assert.Equal(t, gpu.SrcAlpha, mat.BlendSrc)
	assert.Equal(t, gpu.OneMinusSrcAlpha, mat.BlendDst)
}

func TestMaterialParamsKeepOrder(t *testing.T) {
	m := NewManager(gputest.New(), nil)
	id, _ := m.MakeMaterial("params", ShaderID{})
	mat, _ := m.Material(id)

	mat.SetParam4f("color", 1, 0, 0, 1)
	mat.SetParamInt("mode", 2)
	mat.SetParamFloats("weights", []float32{0.25, 0.75})
	mat.SetParam4f("color", 0, 1, 0, 1)

	params := mat.Params()
	require.Len(t, params, 3)
	assert.Equal(t, "color", params[0].Name)
	assert.Equal(t, []float32{0, 1, 0, 1}, params[0].Floats)
	assert.Equal(t, ParamInt, params[1].Type)
	assert.Equal(t, ParamFloats, params[2].Type)

	p, ok := mat.Param("mode")
	assert.True(t, ok)
	assert.Equal(t, []int32{2}, p.Ints)
}

func TestMaterialRetainsShader(t *testing.T) {
	rec := gputest.New()
	m := NewManager(rec, nil)
	sh, err := m.LoadShader("s", "v", "f")
	require.NoError(t, err)
	mat, err := m.MakeMaterial("m", sh)
	require.NoError(t, err)

	// Drop the loader's reference; the material keeps the program alive.
	require.NoError(t, m.ReleaseShader(sh))
	_, err = m.Shader(sh)
	require.NoError(t, err)
	assert.Len(t, rec.Programs, 1)

	require.NoError(t, m.ReleaseMaterial(mat))
	_, err = m.Shader(sh)
	assert.ErrorIs(t, err, ErrInvalidHandle)
	assert.Empty(t, rec.Programs)
	_, ok := m.ShaderByName("s")
	assert.False(t, ok)
}

func TestMakeMaterialStaleShader(t *testing.T) {
	m := NewManager(gputest.New(), nil)
	sh, _ := m.LoadShader("s", "v", "f")
	require.NoError(t, m.ReleaseShader(sh))

	_, err := m.MakeMaterial("m", sh)
	assert.ErrorIs(t, err, ErrInvalidHandle)
}

func TestMaterialTextures(t *testing.T) {
	rec := gputest.New()
	m := NewManager(rec, nil)
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	t0, err := m.LoadTexture("a", img)
	require.NoError(t, err)
	t1, err := m.LoadTexture("b", img)
	require.NoError(t, err)
	t2, err := m.LoadTexture("c", img)
	require.NoError(t, err)

	id, _ := m.MakeMaterial("m", ShaderID{})
	mat, _ := m.Material(id)
	require.NoError(t, mat.AddTexture("diffuse", t0))
	require.NoError(t, mat.AddTexture("detail", t1))
	require.NoError(t, mat.AddTexture("diffuse", t2))

	tex := mat.Textures()
	require.Len(t, tex, 2)
	assert.Equal(t, TextureBinding{Sampler: "diffuse", Texture: t2}, tex[0])
	assert.Equal(t, TextureBinding{Sampler: "detail", Texture: t1}, tex[1])

	// Loader references plus the material's; t0 was released on replace.
	for _, tid := range []TextureID{t0, t1, t2} {
		require.NoError(t, m.ReleaseTexture(tid))
	}
	assert.Len(t, rec.Textures, 2)

	require.NoError(t, m.ReleaseMaterial(id))
	assert.Empty(t, rec.Textures)

	assert.ErrorIs(t, mat.AddTexture("x", t0), ErrInvalidHandle)
}

func TestLoadTextureBytes(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	rec := gputest.New()
	m := NewManager(rec, nil)
	id, err := m.LoadTextureBytes("red.png", buf.Bytes(), nil)
	require.NoError(t, err)

	tex, err := m.Texture(id)
	require.NoError(t, err)
	assert.Equal(t, 3, tex.Width)
	assert.Equal(t, 2, tex.Height)
	assert.Equal(t, image.Rect(0, 0, 3, 2), rec.Textures[tex.Handle])
}

func TestStockShaderCompiledOnce(t *testing.T) {
	rec := gputest.New()
	m := NewManager(rec, nil)

	a, err := m.StockShader(UniformColorNoLighting)
	require.NoError(t, err)
	b, err := m.StockShader(UniformColorNoLighting)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, rec.Programs, 1)

	s, _ := m.Shader(a)
	assert.Equal(t, "stock/uniform_color_unlit", s.Name)

	_, err = m.StockShader(StockShader(99))
	assert.Error(t, err)
}

func TestStockSourcesDeclareStandardNames(t *testing.T) {
	for _, kind := range []StockShader{UniformColorNoLighting, PerVertexColorLighting, TextureUniformColorNoLighting} {
		vs, fs, err := StockSource(kind)
		require.NoError(t, err, kind)
		assert.Contains(t, vs, "sv_vert_pos", kind)
		assert.Contains(t, vs, "sv_mvp_mat", kind)
		assert.NotEmpty(t, fs, kind)
	}
	_, fs, _ := StockSource(PerVertexColorLighting)
	assert.Contains(t, fs, "sv_lights")
}

// Point size comes from the material through glPointSize, so no stock
// program may take it over.
func TestStockSourcesLeavePointSizeToRasterizer(t *testing.T) {
	for _, kind := range []StockShader{UniformColorNoLighting, PerVertexColorLighting, TextureUniformColorNoLighting} {
		vs, fs, err := StockSource(kind)
		require.NoError(t, err, kind)
		assert.NotContains(t, vs, "gl_PointSize", kind)
		assert.NotContains(t, fs, "gl_PointSize", kind)
	}
}

func TestClose(t *testing.T) {
	rec := gputest.New()
	m := NewManager(rec, nil)
	g, _ := m.LoadGeometry(quad())
	sh, _ := m.StockShader(UniformColorNoLighting)
	_, _ = m.MakeMaterial("m", sh)
	_, _ = m.LoadTexture("t", image.NewRGBA(image.Rect(0, 0, 1, 1)))

	m.Close()

	assert.Equal(t, Stats{}, m.Stats())
	assert.Empty(t, rec.Buffers)
	assert.Empty(t, rec.Programs)
	assert.Empty(t, rec.Textures)
	_, err := m.Geometry(g)
	assert.ErrorIs(t, err, ErrInvalidHandle)
}
