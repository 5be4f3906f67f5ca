// Package resource owns GPU-resident geometry, shaders, materials and
// textures behind generation-checked, reference-counted handles.
package resource

import (
	"errors"
	"fmt"
	"image"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/arena"
	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/internal/engine/texture"
)

// ErrMalformedGeometry is returned when attribute arrays disagree with the
// vertex count or indices point past the last vertex.
var ErrMalformedGeometry = errors.New("resource: malformed geometry")

// Manager creates resources on an allocator and tracks their lifetime.
// Every Make/Load call returns a handle holding one reference. It must be
// used from the thread that owns the GPU context.
type Manager struct {
	dev gpu.Allocator
	log *zap.Logger

	geometries arena.Arena[*Geometry]
	shaders    arena.Arena[*Shader]
	materials  arena.Arena[*Material]
	textures   arena.Arena[*Texture]

	shaderNames map[string]ShaderID
	stock       map[StockShader]ShaderID

	geometryRevision uint64
}

// NewManager creates a manager. A nil logger discards diagnostics.
func NewManager(dev gpu.Allocator, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		dev:         dev,
		log:         log.Named("resource"),
		shaderNames: make(map[string]ShaderID),
		stock:       make(map[StockShader]ShaderID),
	}
}

// Geometry

// LoadGeometry uploads data as a new geometry.
func (m *Manager) LoadGeometry(data GeometryData) (GeometryID, error) {
	g, err := m.uploadGeometry(&data)
	if err != nil {
		return GeometryID{}, err
	}
	id := GeometryID(m.geometries.Insert(g))
	m.log.Debug("geometry loaded",
		zap.Int("vertices", g.NumVertices),
		zap.Int("indices", g.NumIndices),
		zap.Stringer("mode", g.Mode))
	return id, nil
}

// ReloadGeometry replaces the buffers behind id. Callers must not reload
// while a frame referencing it is being drawn.
func (m *Manager) ReloadGeometry(id GeometryID, data GeometryData) error {
	old, ok := m.geometries.Get(arena.Handle(id))
	if !ok {
		return ErrInvalidHandle
	}
	g, err := m.uploadGeometry(&data)
	if err != nil {
		return err
	}
	m.deleteGeometry(old)
	*old = *g
	m.geometryRevision++
	return nil
}

// Geometry returns the geometry behind id.
func (m *Manager) Geometry(id GeometryID) (*Geometry, error) {
	g, ok := m.geometries.Get(arena.Handle(id))
	if !ok {
		return nil, ErrInvalidHandle
	}
	return g, nil
}

// GeometryRevision changes whenever any geometry is reloaded.
func (m *Manager) GeometryRevision() uint64 {
	return m.geometryRevision
}

func (m *Manager) RetainGeometry(id GeometryID) error {
	if !m.geometries.Retain(arena.Handle(id)) {
		return ErrInvalidHandle
	}
	return nil
}

func (m *Manager) ReleaseGeometry(id GeometryID) error {
	g, removed, ok := m.geometries.Release(arena.Handle(id))
	if !ok {
		return ErrInvalidHandle
	}
	if removed {
		m.deleteGeometry(g)
	}
	return nil
}

// Shaders

// LoadShader compiles a program from source. Names are unique; loading a
// name twice fails.
func (m *Manager) LoadShader(name, vertexSrc, fragmentSrc string) (ShaderID, error) {
	if _, dup := m.shaderNames[name]; dup && name != "" {
		return ShaderID{}, fmt.Errorf("shader %q already loaded", name)
	}
	s, err := m.compileShader(name, vertexSrc, fragmentSrc)
	if err != nil {
		return ShaderID{}, err
	}
	id := ShaderID(m.shaders.Insert(s))
	if name != "" {
		m.shaderNames[name] = id
	}
	m.log.Debug("shader loaded", zap.String("name", name), zap.Uint32("program", uint32(s.Program)))
	return id, nil
}

// LoadShaderFiles compiles a program from two source files and remembers
// the paths so a Watcher can reload it.
func (m *Manager) LoadShaderFiles(name, vertexPath, fragmentPath string) (ShaderID, error) {
	vs, fs, err := readShaderFiles(vertexPath, fragmentPath)
	if err != nil {
		return ShaderID{}, err
	}
	id, err := m.LoadShader(name, vs, fs)
	if err != nil {
		return ShaderID{}, err
	}
	s, _ := m.shaders.Get(arena.Handle(id))
	s.vertexPath, s.fragmentPath = vertexPath, fragmentPath
	return id, nil
}

func readShaderFiles(vertexPath, fragmentPath string) (string, string, error) {
	vs, err := os.ReadFile(vertexPath)
	if err != nil {
		return "", "", fmt.Errorf("reading vertex shader: %w", err)
	}
	fs, err := os.ReadFile(fragmentPath)
	if err != nil {
		return "", "", fmt.Errorf("reading fragment shader: %w", err)
	}
	return string(vs), string(fs), nil
}

// ReloadShader recompiles id in place. On failure the previous program
// stays active.
func (m *Manager) ReloadShader(id ShaderID, vertexSrc, fragmentSrc string) error {
	old, ok := m.shaders.Get(arena.Handle(id))
	if !ok {
		return ErrInvalidHandle
	}
	s, err := m.compileShader(old.Name, vertexSrc, fragmentSrc)
	if err != nil {
		return err
	}
	m.dev.DeleteProgram(old.Program)
	old.Program = s.Program
	old.Vars = s.Vars
	old.uniforms = s.uniforms
	m.log.Info("shader reloaded", zap.String("name", old.Name))
	return nil
}

// ShaderByName finds a loaded shader.
func (m *Manager) ShaderByName(name string) (ShaderID, bool) {
	id, ok := m.shaderNames[name]
	return id, ok
}

// Shader returns the shader behind id.
func (m *Manager) Shader(id ShaderID) (*Shader, error) {
	s, ok := m.shaders.Get(arena.Handle(id))
	if !ok {
		return nil, ErrInvalidHandle
	}
	return s, nil
}

func (m *Manager) RetainShader(id ShaderID) error {
	if !m.shaders.Retain(arena.Handle(id)) {
		return ErrInvalidHandle
	}
	return nil
}

func (m *Manager) ReleaseShader(id ShaderID) error {
	s, removed, ok := m.shaders.Release(arena.Handle(id))
	if !ok {
		return ErrInvalidHandle
	}
	if removed {
		m.dev.DeleteProgram(s.Program)
		if m.shaderNames[s.Name] == id {
			delete(m.shaderNames, s.Name)
		}
	}
	return nil
}

// Materials

// MakeMaterial creates a material using shader, which may be the zero
// handle for a material drawn without a program.
func (m *Manager) MakeMaterial(name string, shader ShaderID) (MaterialID, error) {
	if !shader.IsZero() {
		if err := m.RetainShader(shader); err != nil {
			return MaterialID{}, fmt.Errorf("material %q: %w", name, err)
		}
	}
	return MaterialID(m.materials.Insert(newMaterial(m, name, shader))), nil
}

// Material returns the material behind id.
func (m *Manager) Material(id MaterialID) (*Material, error) {
	mat, ok := m.materials.Get(arena.Handle(id))
	if !ok {
		return nil, ErrInvalidHandle
	}
	return mat, nil
}

func (m *Manager) RetainMaterial(id MaterialID) error {
	if !m.materials.Retain(arena.Handle(id)) {
		return ErrInvalidHandle
	}
	return nil
}

// ReleaseMaterial drops a reference; the last one releases the material's
// shader and textures.
func (m *Manager) ReleaseMaterial(id MaterialID) error {
	mat, removed, ok := m.materials.Release(arena.Handle(id))
	if !ok {
		return ErrInvalidHandle
	}
	if removed {
		mat.release()
	}
	return nil
}

// Textures

// LoadTexture uploads img as an RGBA texture.
func (m *Manager) LoadTexture(name string, img image.Image) (TextureID, error) {
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Bounds().Min != (image.Point{}) {
		rgba = texture.ToRGBA(img, nil)
	}
	handle, err := m.dev.CreateTexture(rgba)
	if err != nil {
		return TextureID{}, fmt.Errorf("texture %q: %w", name, err)
	}
	b := rgba.Bounds()
	t := &Texture{Name: name, Handle: handle, Width: b.Dx(), Height: b.Dy()}
	return TextureID(m.textures.Insert(t)), nil
}

// LoadTextureBytes decodes an encoded image and uploads it. key, if set,
// makes matching pixels transparent.
func (m *Manager) LoadTextureBytes(name string, data []byte, key *texture.ColorKey) (TextureID, error) {
	img, err := texture.Decode(data, name)
	if err != nil {
		return TextureID{}, err
	}
	return m.LoadTexture(name, texture.ToRGBA(img, key))
}

// Texture returns the texture behind id.
func (m *Manager) Texture(id TextureID) (*Texture, error) {
	t, ok := m.textures.Get(arena.Handle(id))
	if !ok {
		return nil, ErrInvalidHandle
	}
	return t, nil
}

func (m *Manager) RetainTexture(id TextureID) error {
	if !m.textures.Retain(arena.Handle(id)) {
		return ErrInvalidHandle
	}
	return nil
}

func (m *Manager) ReleaseTexture(id TextureID) error {
	t, removed, ok := m.textures.Release(arena.Handle(id))
	if !ok {
		return ErrInvalidHandle
	}
	if removed {
		m.dev.DeleteTexture(t.Handle)
	}
	return nil
}

// Stats reports live resource counts.
type Stats struct {
	Geometries int
	Shaders    int
	Materials  int
	Textures   int
}

func (m *Manager) Stats() Stats {
	return Stats{
		Geometries: m.geometries.Len(),
		Shaders:    m.shaders.Len(),
		Materials:  m.materials.Len(),
		Textures:   m.textures.Len(),
	}
}

// Close deletes every GPU object regardless of outstanding references.
// Handles issued before Close become invalid.
func (m *Manager) Close() {
	n := m.Stats()
	m.materials.Each(func(h arena.Handle, _ *Material) bool {
		m.materials.Remove(h)
		return true
	})
	m.geometries.Each(func(h arena.Handle, g *Geometry) bool {
		m.deleteGeometry(g)
		m.geometries.Remove(h)
		return true
	})
	m.shaders.Each(func(h arena.Handle, s *Shader) bool {
		m.dev.DeleteProgram(s.Program)
		m.shaders.Remove(h)
		return true
	})
	m.textures.Each(func(h arena.Handle, t *Texture) bool {
		m.dev.DeleteTexture(t.Handle)
		m.textures.Remove(h)
		return true
	})
	clear(m.shaderNames)
	clear(m.stock)
	m.log.Debug("resources closed",
		zap.Int("geometries", n.Geometries),
		zap.Int("shaders", n.Shaders),
		zap.Int("materials", n.Materials),
		zap.Int("textures", n.Textures))
}
