// Package gputest provides an in-memory gpu.Device that records every call,
// for testing renderer code without a GPU.
package gputest

import (
	"fmt"
	"image"
	"strings"

	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/pkg/math"
)

var _ gpu.Device = (*Recorder)(nil)

// Call is one recorded capability invocation.
type Call struct {
	Op   string
	Args []any
}

func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return c.Op + "(" + strings.Join(parts, ", ") + ")"
}

// Layout scripts the locations a compiled program reports. Names that are
// absent resolve to -1.
type Layout struct {
	Uniforms map[string]int32
	Attribs  map[string]int32
}

// State mirrors the fixed-function state the recorder has been driven into.
type State struct {
	Program      gpu.Program
	ArrayBuffer  gpu.Buffer
	IndexBuffer  gpu.Buffer
	Capabilities map[gpu.Capability]bool
	Attribs      map[uint32]bool
	DepthWrite   bool
	ColorMask    [4]bool
	PointSize    float32
	LineWidth    float32
	BlendSrc     gpu.BlendFactor
	BlendDst     gpu.BlendFactor
}

// Recorder implements gpu.Device in memory.
type Recorder struct {
	// Layouts maps a vertex shader source to the locations its program reports.
	Layouts map[string]Layout
	// CompileErrors makes CreateProgram fail for the given vertex source.
	CompileErrors map[string]error
	// PendingErrors are returned by Error in order, then NoError.
	PendingErrors []gpu.ErrorCode

	Buffers  map[gpu.Buffer][]byte
	Textures map[gpu.Texture]image.Rectangle
	Programs map[gpu.Program]Layout
	State    State

	calls  []Call
	nextID uint32
}

// New returns a recorder in the default GL state.
func New() *Recorder {
	return &Recorder{
		Layouts:       make(map[string]Layout),
		CompileErrors: make(map[string]error),
		Buffers:       make(map[gpu.Buffer][]byte),
		Textures:      make(map[gpu.Texture]image.Rectangle),
		Programs:      make(map[gpu.Program]Layout),
		State: State{
			Capabilities: make(map[gpu.Capability]bool),
			Attribs:      make(map[uint32]bool),
			DepthWrite:   true,
			ColorMask:    [4]bool{true, true, true, true},
			PointSize:    gpu.DefaultPointSize,
			LineWidth:    gpu.DefaultLineWidth,
			BlendSrc:     gpu.One,
			BlendDst:     gpu.Zero,
		},
	}
}

// Calls returns every draw-time call recorded since the last Reset.
func (r *Recorder) Calls() []Call {
	return r.calls
}

// Ops returns the recorded call names in order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.calls))
	for i, c := range r.calls {
		ops[i] = c.Op
	}
	return ops
}

// Filter returns the recorded calls with the given name.
func (r *Recorder) Filter(op string) []Call {
	var out []Call
	for _, c := range r.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many calls with the given name were recorded.
func (r *Recorder) Count(op string) int {
	return len(r.Filter(op))
}

// CountPrefix returns how many calls start with prefix, e.g. "SetUniform".
func (r *Recorder) CountPrefix(prefix string) int {
	n := 0
	for _, c := range r.calls {
		if strings.HasPrefix(c.Op, prefix) {
			n++
		}
	}
	return n
}

// Reset drops recorded calls; GPU objects and state are kept.
func (r *Recorder) Reset() {
	r.calls = nil
}

func (r *Recorder) record(op string, args ...any) {
	r.calls = append(r.calls, Call{Op: op, Args: args})
}

func (r *Recorder) id() uint32 {
	r.nextID++
	return r.nextID
}

// Allocation. Not recorded as calls so draw assertions stay focused.

func (r *Recorder) CreateBuffer(target gpu.BufferTarget, data []byte) (gpu.Buffer, error) {
	b := gpu.Buffer(r.id())
	r.Buffers[b] = append([]byte(nil), data...)
	return b, nil
}

func (r *Recorder) DeleteBuffer(b gpu.Buffer) {
	delete(r.Buffers, b)
}

func (r *Recorder) CreateProgram(vertexSrc, fragmentSrc string) (gpu.Program, error) {
	if err := r.CompileErrors[vertexSrc]; err != nil {
		return 0, err
	}
	p := gpu.Program(r.id())
	r.Programs[p] = r.Layouts[vertexSrc]
	return p, nil
}

func (r *Recorder) DeleteProgram(p gpu.Program) {
	delete(r.Programs, p)
}

func (r *Recorder) UniformLocation(p gpu.Program, name string) int32 {
	if loc, ok := r.Programs[p].Uniforms[name]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) AttribLocation(p gpu.Program, name string) int32 {
	if loc, ok := r.Programs[p].Attribs[name]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) CreateTexture(img *image.RGBA) (gpu.Texture, error) {
	t := gpu.Texture(r.id())
	r.Textures[t] = img.Bounds()
	return t, nil
}

func (r *Recorder) DeleteTexture(t gpu.Texture) {
	delete(r.Textures, t)
}

// Drawing.

func (r *Recorder) BindBuffer(target gpu.BufferTarget, b gpu.Buffer) {
	r.record("BindBuffer", target, b)
	if target == gpu.ElementArrayBuffer {
		r.State.IndexBuffer = b
	} else {
		r.State.ArrayBuffer = b
	}
}

func (r *Recorder) UseProgram(p gpu.Program) {
	r.record("UseProgram", p)
	r.State.Program = p
}

func (r *Recorder) SetUniformInt(loc int32, v int32) {
	r.record("SetUniformInt", loc, v)
}

func (r *Recorder) SetUniformInts(loc int32, v []int32) {
	r.record("SetUniformInts", loc, append([]int32(nil), v...))
}

func (r *Recorder) SetUniformFloat(loc int32, v float32) {
	r.record("SetUniformFloat", loc, v)
}

func (r *Recorder) SetUniformFloats(loc int32, v []float32) {
	r.record("SetUniformFloats", loc, append([]float32(nil), v...))
}

func (r *Recorder) SetUniformVec2(loc int32, x, y float32) {
	r.record("SetUniformVec2", loc, x, y)
}

func (r *Recorder) SetUniformVec3(loc int32, v math.Vec3) {
	r.record("SetUniformVec3", loc, v)
}

func (r *Recorder) SetUniformVec4(loc int32, v math.Vec4) {
	r.record("SetUniformVec4", loc, v)
}

func (r *Recorder) SetUniformMat3(loc int32, m math.Mat3) {
	r.record("SetUniformMat3", loc, m)
}

func (r *Recorder) SetUniformMat4(loc int32, m math.Mat4) {
	r.record("SetUniformMat4", loc, m)
}

func (r *Recorder) EnableVertexAttrib(loc uint32) {
	r.record("EnableVertexAttrib", loc)
	r.State.Attribs[loc] = true
}

func (r *Recorder) DisableVertexAttrib(loc uint32) {
	r.record("DisableVertexAttrib", loc)
	r.State.Attribs[loc] = false
}

func (r *Recorder) VertexAttribFloats(loc uint32, size int32, offset int) {
	r.record("VertexAttribFloats", loc, size, offset)
}

func (r *Recorder) BindTexture(unit uint32, t gpu.Texture) {
	r.record("BindTexture", unit, t)
}

func (r *Recorder) SetCapability(c gpu.Capability, enabled bool) {
	r.record("SetCapability", c, enabled)
	r.State.Capabilities[c] = enabled
}

func (r *Recorder) CullFace(f gpu.Face) {
	r.record("CullFace", f)
}

func (r *Recorder) FrontFace(w gpu.Winding) {
	r.record("FrontFace", w)
}

func (r *Recorder) DepthMask(write bool) {
	r.record("DepthMask", write)
	r.State.DepthWrite = write
}

func (r *Recorder) ColorMask(cr, cg, cb, ca bool) {
	r.record("ColorMask", cr, cg, cb, ca)
	r.State.ColorMask = [4]bool{cr, cg, cb, ca}
}

func (r *Recorder) PointSize(size float32) {
	r.record("PointSize", size)
	r.State.PointSize = size
}

func (r *Recorder) LineWidth(width float32) {
	r.record("LineWidth", width)
	r.State.LineWidth = width
}

func (r *Recorder) BlendFunc(src, dst gpu.BlendFactor) {
	r.record("BlendFunc", src, dst)
	r.State.BlendSrc = src
	r.State.BlendDst = dst
}

func (r *Recorder) DrawArrays(mode gpu.Primitive, first, count int32) {
	r.record("DrawArrays", mode, first, count)
}

func (r *Recorder) DrawElements(mode gpu.Primitive, count int32, indexType gpu.IndexType) {
	r.record("DrawElements", mode, count, indexType)
}

func (r *Recorder) Error() gpu.ErrorCode {
	r.record("Error")
	if len(r.PendingErrors) == 0 {
		return gpu.NoError
	}
	code := r.PendingErrors[0]
	r.PendingErrors = r.PendingErrors[1:]
	return code
}
