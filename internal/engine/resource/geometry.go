package resource

import (
	"encoding/binary"
	"fmt"
	stdmath "math"

	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Attribute is a per-vertex attribute kind.
type Attribute int

const (
	AttribPosition Attribute = iota
	AttribNormal
	AttribDiffuse
	AttribSpecular
	AttribShininess
	AttribTexCoord0

	NumAttributes
)

var attribInfo = [NumAttributes]struct {
	name string
	size int32
}{
	AttribPosition:  {"sv_vert_pos", 3},
	AttribNormal:    {"sv_normal", 3},
	AttribDiffuse:   {"sv_diffuse", 4},
	AttribSpecular:  {"sv_specular", 4},
	AttribShininess: {"sv_shininess", 1},
	AttribTexCoord0: {"sv_tex_coords_0", 2},
}

// Name returns the shader variable name the attribute binds to.
func (a Attribute) Name() string { return attribInfo[a].name }

// Size returns the number of float components per vertex.
func (a Attribute) Size() int32 { return attribInfo[a].size }

func (a Attribute) String() string { return a.Name() }

// GeometryData is the CPU-side description of a geometry. Every attribute
// slice must be empty or have one entry per vertex.
type GeometryData struct {
	Mode       gpu.Primitive
	Vertices   []math.Vec3
	Normals    []math.Vec3
	Diffuse    []math.Vec4
	Specular   []math.Vec4
	Shininess  []float32
	TexCoords0 []math.Vec2
	Indices    []uint32
}

// AttribLayout locates one attribute inside the vertex buffer.
type AttribLayout struct {
	Count  int // 0 when absent, otherwise the vertex count
	Offset int // bytes from the start of the buffer
}

// Geometry is an uploaded GeometryData. Attributes are packed one after
// another (not interleaved) in a single vertex buffer.
type Geometry struct {
	Mode         gpu.Primitive
	VertexBuffer gpu.Buffer
	IndexBuffer  gpu.Buffer // 0 when drawn without indices
	IndexType    gpu.IndexType
	NumVertices  int
	NumIndices   int
	Attribs      [NumAttributes]AttribLayout
	Bounds       math.AABB
}

// Indexed reports whether the geometry has an index buffer.
func (g *Geometry) Indexed() bool {
	return g.IndexBuffer != 0
}

// Has reports whether the geometry supplies attribute a.
func (g *Geometry) Has(a Attribute) bool {
	return g.Attribs[a].Count > 0
}

func (d *GeometryData) counts() [NumAttributes]int {
	return [NumAttributes]int{
		len(d.Vertices), len(d.Normals), len(d.Diffuse),
		len(d.Specular), len(d.Shininess), len(d.TexCoords0),
	}
}

func (d *GeometryData) validate() error {
	n := len(d.Vertices)
	for a, c := range d.counts() {
		if c != 0 && c != n {
			return fmt.Errorf("%w: %s has %d entries for %d vertices", ErrMalformedGeometry, Attribute(a), c, n)
		}
	}
	for i, idx := range d.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: index %d at %d out of range", ErrMalformedGeometry, idx, i)
		}
	}
	return nil
}

// pack lays out the attribute arrays back to back as little-endian floats.
func (d *GeometryData) pack() ([]byte, [NumAttributes]AttribLayout) {
	var layout [NumAttributes]AttribLayout
	counts := d.counts()

	size := 0
	for a := Attribute(0); a < NumAttributes; a++ {
		layout[a] = AttribLayout{Count: counts[a], Offset: size}
		size += counts[a] * int(a.Size()) * 4
	}

	buf := make([]byte, 0, size)
	put := func(fs ...float32) {
		for _, f := range fs {
			buf = binary.LittleEndian.AppendUint32(buf, stdmath.Float32bits(f))
		}
	}
	for _, v := range d.Vertices {
		put(v.X, v.Y, v.Z)
	}
	for _, v := range d.Normals {
		put(v.X, v.Y, v.Z)
	}
	for _, v := range d.Diffuse {
		put(v[:]...)
	}
	for _, v := range d.Specular {
		put(v[:]...)
	}
	put(d.Shininess...)
	for _, v := range d.TexCoords0 {
		put(v.X, v.Y)
	}
	return buf, layout
}

// packIndices picks the narrowest index type that fits numVertices.
func packIndices(indices []uint32, numVertices int) ([]byte, gpu.IndexType) {
	if numVertices <= 1<<16 {
		buf := make([]byte, 0, len(indices)*2)
		for _, i := range indices {
			buf = binary.LittleEndian.AppendUint16(buf, uint16(i))
		}
		return buf, gpu.UnsignedShort
	}
	buf := make([]byte, 0, len(indices)*4)
	for _, i := range indices {
		buf = binary.LittleEndian.AppendUint32(buf, i)
	}
	return buf, gpu.UnsignedInt
}

func (m *Manager) uploadGeometry(d *GeometryData) (*Geometry, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}

	data, layout := d.pack()
	g := &Geometry{
		Mode:        d.Mode,
		NumVertices: len(d.Vertices),
		NumIndices:  len(d.Indices),
		Attribs:     layout,
		Bounds:      math.BoundsOf(d.Vertices...),
	}
	if len(data) == 0 {
		return g, nil
	}

	vbo, err := m.dev.CreateBuffer(gpu.ArrayBuffer, data)
	if err != nil {
		return nil, fmt.Errorf("creating vertex buffer: %w", err)
	}
	g.VertexBuffer = vbo

	if len(d.Indices) > 0 {
		idx, typ := packIndices(d.Indices, g.NumVertices)
		ibo, err := m.dev.CreateBuffer(gpu.ElementArrayBuffer, idx)
		if err != nil {
			m.dev.DeleteBuffer(vbo)
			return nil, fmt.Errorf("creating index buffer: %w", err)
		}
		g.IndexBuffer = ibo
		g.IndexType = typ
	}
	return g, nil
}

func (m *Manager) deleteGeometry(g *Geometry) {
	if g.VertexBuffer != 0 {
		m.dev.DeleteBuffer(g.VertexBuffer)
	}
	if g.IndexBuffer != 0 {
		m.dev.DeleteBuffer(g.IndexBuffer)
	}
}
