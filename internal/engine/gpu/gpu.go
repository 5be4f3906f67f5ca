// Package gpu defines the capability surface the renderer consumes from a
// graphics API binding. Handles are opaque; zero always means "none".
package gpu

import (
	"image"

	"github.com/Faultbox/sceneview/pkg/math"
)

// Buffer is an opaque GPU buffer handle.
type Buffer uint32

// Program is an opaque linked shader program handle.
type Program uint32

// Texture is an opaque 2D texture handle.
type Texture uint32

// Rasterizer defaults restored after every draw that overrides them.
const (
	DefaultPointSize float32 = 1
	DefaultLineWidth float32 = 1
)

// Allocator creates and destroys GPU objects. Used by the resource manager.
type Allocator interface {
	CreateBuffer(target BufferTarget, data []byte) (Buffer, error)
	DeleteBuffer(b Buffer)

	// CreateProgram compiles and links a vertex/fragment pair.
	CreateProgram(vertexSrc, fragmentSrc string) (Program, error)
	DeleteProgram(p Program)

	// UniformLocation and AttribLocation return -1 when the program does
	// not declare (or the compiler eliminated) the name.
	UniformLocation(p Program, name string) int32
	AttribLocation(p Program, name string) int32

	CreateTexture(img *image.RGBA) (Texture, error)
	DeleteTexture(t Texture)
}

// Context is the draw-time state machine of a single GPU context. It is not
// safe for concurrent use.
type Context interface {
	BindBuffer(target BufferTarget, b Buffer)
	UseProgram(p Program)

	UniformLocation(p Program, name string) int32
	SetUniformInt(loc int32, v int32)
	SetUniformInts(loc int32, v []int32)
	SetUniformFloat(loc int32, v float32)
	SetUniformFloats(loc int32, v []float32)
	SetUniformVec2(loc int32, x, y float32)
	SetUniformVec3(loc int32, v math.Vec3)
	SetUniformVec4(loc int32, v math.Vec4)
	SetUniformMat3(loc int32, m math.Mat3)
	SetUniformMat4(loc int32, m math.Mat4)

	EnableVertexAttrib(loc uint32)
	DisableVertexAttrib(loc uint32)
	// VertexAttribFloats configures a tightly packed float attribute of
	// size components starting at offset bytes into the bound array buffer.
	VertexAttribFloats(loc uint32, size int32, offset int)

	BindTexture(unit uint32, t Texture)

	SetCapability(c Capability, enabled bool)
	CullFace(f Face)
	FrontFace(w Winding)
	DepthMask(write bool)
	ColorMask(r, g, b, a bool)
	PointSize(size float32)
	LineWidth(width float32)
	BlendFunc(src, dst BlendFactor)

	DrawArrays(mode Primitive, first, count int32)
	DrawElements(mode Primitive, count int32, indexType IndexType)

	// Error returns and clears the oldest pending error code.
	Error() ErrorCode
}

// Device is a full binding: allocation plus drawing on one context.
type Device interface {
	Allocator
	Context
}
