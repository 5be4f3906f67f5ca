package resource

import (
	"fmt"

	"github.com/Faultbox/sceneview/internal/engine/gpu"
)

// MaxShaderLights is the number of light slots a shader can declare.
const MaxShaderLights = 4

// LightSlot holds the uniform locations of one sv_lights[i] entry.
type LightSlot struct {
	IsDirectional int32
	Direction     int32
	Position      int32
	Ambient       int32
	Color         int32
	Attenuation   int32
	ConeAngle     int32
}

// StandardVariables are the semantic uniforms and attributes a program may
// declare. A location of -1 means the program does not use it.
type StandardVariables struct {
	ProjMat        int32
	ViewMat        int32
	ViewMatInv     int32
	ModelMat       int32
	MVPMat         int32
	MVMat          int32
	ModelNormalMat int32

	Lights  [MaxShaderLights]LightSlot
	Attribs [NumAttributes]int32
}

func resolveStandardVariables(alloc gpu.Allocator, p gpu.Program) StandardVariables {
	u := func(name string) int32 { return alloc.UniformLocation(p, name) }

	v := StandardVariables{
		ProjMat:        u("sv_proj_mat"),
		ViewMat:        u("sv_view_mat"),
		ViewMatInv:     u("sv_view_mat_inv"),
		ModelMat:       u("sv_model_mat"),
		MVPMat:         u("sv_mvp_mat"),
		MVMat:          u("sv_mv_mat"),
		ModelNormalMat: u("sv_model_normal_mat"),
	}
	for i := range v.Lights {
		prefix := fmt.Sprintf("sv_lights[%d].", i)
		v.Lights[i] = LightSlot{
			IsDirectional: u(prefix + "is_directional"),
			Direction:     u(prefix + "direction"),
			Position:      u(prefix + "position"),
			Ambient:       u(prefix + "ambient"),
			Color:         u(prefix + "color"),
			Attenuation:   u(prefix + "attenuation"),
			ConeAngle:     u(prefix + "cone_angle"),
		}
	}
	for a := Attribute(0); a < NumAttributes; a++ {
		v.Attribs[a] = alloc.AttribLocation(p, a.Name())
	}
	return v
}

// Shader is a linked program with its standard variables resolved.
type Shader struct {
	Name    string
	Program gpu.Program
	Vars    StandardVariables

	vertexPath   string
	fragmentPath string

	alloc    gpu.Allocator
	uniforms map[string]int32
}

// Uniform returns the location of a named uniform, caching the lookup.
func (s *Shader) Uniform(name string) int32 {
	if loc, ok := s.uniforms[name]; ok {
		return loc
	}
	loc := s.alloc.UniformLocation(s.Program, name)
	s.uniforms[name] = loc
	return loc
}

// Files returns the source paths a file-backed shader was loaded from.
func (s *Shader) Files() (vertex, fragment string) {
	return s.vertexPath, s.fragmentPath
}

func (m *Manager) compileShader(name, vertexSrc, fragmentSrc string) (*Shader, error) {
	prog, err := m.dev.CreateProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("shader %q: %w", name, err)
	}
	return &Shader{
		Name:     name,
		Program:  prog,
		Vars:     resolveStandardVariables(m.dev, prog),
		alloc:    m.dev,
		uniforms: make(map[string]int32),
	}, nil
}
