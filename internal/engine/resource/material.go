package resource

import (
	"fmt"

	"github.com/Faultbox/sceneview/internal/engine/gpu"
)

// ParamType tags the value stored in a Param.
type ParamType int

const (
	ParamInt ParamType = iota
	ParamInts
	ParamFloat
	ParamVec2
	ParamVec3
	ParamVec4
	ParamFloats
)

// Param is a named uniform value. Int kinds use Ints, float kinds use Floats.
type Param struct {
	Name   string
	Type   ParamType
	Ints   []int32
	Floats []float32
}

// TextureBinding attaches a texture to a sampler uniform.
type TextureBinding struct {
	Sampler string
	Texture TextureID
}

// Material binds a shader to uniform values, textures and fixed-function
// state. Materials are only created by Manager.MakeMaterial.
type Material struct {
	Name string

	// Fixed-function state applied around every draw.
	TwoSided   bool
	DepthWrite bool
	DepthTest  bool
	ColorWrite bool
	PointSize  float32 // 0 leaves the rasterizer default
	LineWidth  float32 // 0 leaves the rasterizer default
	Blend      bool
	BlendSrc   gpu.BlendFactor
	BlendDst   gpu.BlendFactor

	mgr      *Manager
	shader   ShaderID
	params   []Param
	textures []TextureBinding
}

func newMaterial(m *Manager, name string, shader ShaderID) *Material {
	return &Material{
		Name:       name,
		DepthWrite: true,
		DepthTest:  true,
		ColorWrite: true,
		Blend:      true,
		BlendSrc:   gpu.SrcAlpha,
		BlendDst:   gpu.OneMinusSrcAlpha,
		mgr:        m,
		shader:     shader,
	}
}

// Shader returns the material's shader; the zero handle means none.
func (mat *Material) Shader() ShaderID {
	return mat.shader
}

// SetShader switches the material to another shader. The zero handle
// detaches the current one.
func (mat *Material) SetShader(id ShaderID) error {
	if !id.IsZero() {
		if err := mat.mgr.RetainShader(id); err != nil {
			return err
		}
	}
	if !mat.shader.IsZero() {
		mat.mgr.ReleaseShader(mat.shader)
	}
	mat.shader = id
	return nil
}

// SetBlendFunc sets the source and destination blend factors.
func (mat *Material) SetBlendFunc(src, dst gpu.BlendFactor) {
	mat.BlendSrc, mat.BlendDst = src, dst
}

// Params returns the uniform values in the order they were first set.
func (mat *Material) Params() []Param {
	return mat.params
}

// Param returns the value set for name.
func (mat *Material) Param(name string) (Param, bool) {
	for _, p := range mat.params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

func (mat *Material) setParam(p Param) {
	for i := range mat.params {
		if mat.params[i].Name == p.Name {
			mat.params[i] = p
			return
		}
	}
	mat.params = append(mat.params, p)
}

func (mat *Material) SetParamInt(name string, v int32) {
	mat.setParam(Param{Name: name, Type: ParamInt, Ints: []int32{v}})
}

func (mat *Material) SetParamInts(name string, v []int32) {
	mat.setParam(Param{Name: name, Type: ParamInts, Ints: append([]int32(nil), v...)})
}

func (mat *Material) SetParamFloat(name string, v float32) {
	mat.setParam(Param{Name: name, Type: ParamFloat, Floats: []float32{v}})
}

func (mat *Material) SetParam2f(name string, x, y float32) {
	mat.setParam(Param{Name: name, Type: ParamVec2, Floats: []float32{x, y}})
}

func (mat *Material) SetParam3f(name string, x, y, z float32) {
	mat.setParam(Param{Name: name, Type: ParamVec3, Floats: []float32{x, y, z}})
}

func (mat *Material) SetParam4f(name string, x, y, z, w float32) {
	mat.setParam(Param{Name: name, Type: ParamVec4, Floats: []float32{x, y, z, w}})
}

func (mat *Material) SetParamFloats(name string, v []float32) {
	mat.setParam(Param{Name: name, Type: ParamFloats, Floats: append([]float32(nil), v...)})
}

// Textures returns the sampler bindings in insertion order.
func (mat *Material) Textures() []TextureBinding {
	return mat.textures
}

// AddTexture binds tex to a sampler uniform. Re-adding a sampler replaces
// its texture in place and keeps its unit.
func (mat *Material) AddTexture(sampler string, tex TextureID) error {
	if err := mat.mgr.RetainTexture(tex); err != nil {
		return fmt.Errorf("sampler %q: %w", sampler, err)
	}
	for i := range mat.textures {
		if mat.textures[i].Sampler == sampler {
			mat.mgr.ReleaseTexture(mat.textures[i].Texture)
			mat.textures[i].Texture = tex
			return nil
		}
	}
	mat.textures = append(mat.textures, TextureBinding{Sampler: sampler, Texture: tex})
	return nil
}

func (mat *Material) release() {
	for _, tb := range mat.textures {
		mat.mgr.ReleaseTexture(tb.Texture)
	}
	mat.textures = nil
	if !mat.shader.IsZero() {
		mat.mgr.ReleaseShader(mat.shader)
		mat.shader = ShaderID{}
	}
}
