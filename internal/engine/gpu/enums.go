package gpu

import "fmt"

// BufferTarget selects the binding point of a buffer.
type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

// Primitive is the topology used to assemble vertices.
type Primitive int

const (
	Points Primitive = iota
	Lines
	LineStrip
	LineLoop
	Triangles
	TriangleStrip
	TriangleFan
)

func (p Primitive) String() string {
	switch p {
	case Points:
		return "points"
	case Lines:
		return "lines"
	case LineStrip:
		return "line_strip"
	case LineLoop:
		return "line_loop"
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle_strip"
	case TriangleFan:
		return "triangle_fan"
	default:
		return fmt.Sprintf("Primitive(%d)", int(p))
	}
}

// IndexType is the element type of an index buffer.
type IndexType int

const (
	UnsignedShort IndexType = iota
	UnsignedInt
)

// Size returns the byte size of one index.
func (t IndexType) Size() int {
	if t == UnsignedShort {
		return 2
	}
	return 4
}

// Capability is a toggleable piece of fixed-function state.
type Capability int

const (
	CullFaceTest Capability = iota
	DepthTest
	Blend
)

func (c Capability) String() string {
	switch c {
	case CullFaceTest:
		return "cull_face"
	case DepthTest:
		return "depth_test"
	case Blend:
		return "blend"
	default:
		return fmt.Sprintf("Capability(%d)", int(c))
	}
}

// Face selects polygons for culling.
type Face int

const (
	Back Face = iota
	Front
	FrontAndBack
)

// Winding is the vertex order that defines a front face.
type Winding int

const (
	CCW Winding = iota
	CW
)

// BlendFactor is a source or destination blend coefficient.
type BlendFactor int

const (
	Zero BlendFactor = iota
	One
	SrcColor
	OneMinusSrcColor
	DstColor
	OneMinusDstColor
	SrcAlpha
	OneMinusSrcAlpha
	DstAlpha
	OneMinusDstAlpha
)

// ErrorCode is a driver error reported after a call.
type ErrorCode int

const (
	NoError ErrorCode = iota
	InvalidEnum
	InvalidValue
	InvalidOperation
	InvalidFramebufferOperation
	OutOfMemory
	StackUnderflow
	StackOverflow
)

func (e ErrorCode) String() string {
	switch e {
	case NoError:
		return "no error"
	case InvalidEnum:
		return "invalid enum"
	case InvalidValue:
		return "invalid value"
	case InvalidOperation:
		return "invalid operation"
	case InvalidFramebufferOperation:
		return "invalid framebuffer operation"
	case OutOfMemory:
		return "out of memory"
	case StackUnderflow:
		return "stack underflow"
	case StackOverflow:
		return "stack overflow"
	default:
		return fmt.Sprintf("unknown error 0x%x", int(e))
	}
}
