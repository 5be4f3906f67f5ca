package resource

import (
	"embed"
	"fmt"

	"github.com/Faultbox/sceneview/internal/engine/arena"
)

//go:embed shaders/*.glsl
var stockSources embed.FS

// StockShader names a built-in program.
type StockShader int

const (
	// UniformColorNoLighting draws every fragment in the "color" vec4.
	UniformColorNoLighting StockShader = iota
	// PerVertexColorLighting shades sv_diffuse/sv_specular with the scene lights.
	PerVertexColorLighting
	// TextureUniformColorNoLighting modulates sampler "texture0" by "color".
	TextureUniformColorNoLighting
)

var stockFiles = map[StockShader]string{
	UniformColorNoLighting:        "uniform_color_unlit",
	PerVertexColorLighting:        "per_vertex_color_lit",
	TextureUniformColorNoLighting: "texture_uniform_color_unlit",
}

func (k StockShader) String() string {
	if f, ok := stockFiles[k]; ok {
		return f
	}
	return fmt.Sprintf("StockShader(%d)", int(k))
}

// StockShader returns a built-in shader, compiling it on first use. The
// handle is owned by the manager: callers that keep it must retain it.
func (m *Manager) StockShader(kind StockShader) (ShaderID, error) {
	if id, ok := m.stock[kind]; ok && m.shaders.Contains(arena.Handle(id)) {
		return id, nil
	}
	vs, fs, err := StockSource(kind)
	if err != nil {
		return ShaderID{}, err
	}
	id, err := m.LoadShader("stock/"+kind.String(), vs, fs)
	if err != nil {
		return ShaderID{}, err
	}
	m.stock[kind] = id
	return id, nil
}

// StockSource returns the embedded GLSL of a built-in shader.
func StockSource(kind StockShader) (vertex, fragment string, err error) {
	base, ok := stockFiles[kind]
	if !ok {
		return "", "", fmt.Errorf("unknown stock shader %d", int(kind))
	}
	vs, err := stockSources.ReadFile("shaders/" + base + ".vert.glsl")
	if err != nil {
		return "", "", err
	}
	fs, err := stockSources.ReadFile("shaders/" + base + ".frag.glsl")
	if err != nil {
		return "", "", err
	}
	return string(vs), string(fs), nil
}
