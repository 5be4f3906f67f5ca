package glcore

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/pkg/math"
)

// BindBuffer binds b (or unbinds when b is 0).
func (d *Device) BindBuffer(target gpu.BufferTarget, b gpu.Buffer) {
	gl.BindBuffer(bufferTarget(target), uint32(b))
}

// UseProgram makes p current; 0 disables programmable shading.
func (d *Device) UseProgram(p gpu.Program) {
	gl.UseProgram(uint32(p))
}

func (d *Device) SetUniformInt(loc int32, v int32) {
	gl.Uniform1i(loc, v)
}

func (d *Device) SetUniformInts(loc int32, v []int32) {
	if len(v) > 0 {
		gl.Uniform1iv(loc, int32(len(v)), &v[0])
	}
}

func (d *Device) SetUniformFloat(loc int32, v float32) {
	gl.Uniform1f(loc, v)
}

func (d *Device) SetUniformFloats(loc int32, v []float32) {
	if len(v) > 0 {
		gl.Uniform1fv(loc, int32(len(v)), &v[0])
	}
}

func (d *Device) SetUniformVec2(loc int32, x, y float32) {
	gl.Uniform2f(loc, x, y)
}

func (d *Device) SetUniformVec3(loc int32, v math.Vec3) {
	gl.Uniform3f(loc, v.X, v.Y, v.Z)
}

func (d *Device) SetUniformVec4(loc int32, v math.Vec4) {
	gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
}

func (d *Device) SetUniformMat3(loc int32, m math.Mat3) {
	gl.UniformMatrix3fv(loc, 1, false, &m[0])
}

func (d *Device) SetUniformMat4(loc int32, m math.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (d *Device) EnableVertexAttrib(loc uint32) {
	gl.EnableVertexAttribArray(loc)
}

func (d *Device) DisableVertexAttrib(loc uint32) {
	gl.DisableVertexAttribArray(loc)
}

func (d *Device) VertexAttribFloats(loc uint32, size int32, offset int) {
	gl.VertexAttribPointerWithOffset(loc, size, gl.FLOAT, false, 0, uintptr(offset))
}

// BindTexture activates unit and binds t as its 2D texture.
func (d *Device) BindTexture(unit uint32, t gpu.Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
}

func (d *Device) SetCapability(c gpu.Capability, enabled bool) {
	var glCap uint32
	switch c {
	case gpu.CullFaceTest:
		glCap = gl.CULL_FACE
	case gpu.DepthTest:
		glCap = gl.DEPTH_TEST
	case gpu.Blend:
		glCap = gl.BLEND
	default:
		return
	}
	if enabled {
		gl.Enable(glCap)
	} else {
		gl.Disable(glCap)
	}
}

func (d *Device) CullFace(f gpu.Face) {
	switch f {
	case gpu.Front:
		gl.CullFace(gl.FRONT)
	case gpu.FrontAndBack:
		gl.CullFace(gl.FRONT_AND_BACK)
	default:
		gl.CullFace(gl.BACK)
	}
}

func (d *Device) FrontFace(w gpu.Winding) {
	if w == gpu.CW {
		gl.FrontFace(gl.CW)
		return
	}
	gl.FrontFace(gl.CCW)
}

func (d *Device) DepthMask(write bool) {
	gl.DepthMask(write)
}

func (d *Device) ColorMask(r, g, b, a bool) {
	gl.ColorMask(r, g, b, a)
}

func (d *Device) PointSize(size float32) {
	gl.PointSize(size)
}

func (d *Device) LineWidth(width float32) {
	gl.LineWidth(width)
}

func (d *Device) BlendFunc(src, dst gpu.BlendFactor) {
	gl.BlendFunc(blendFactor(src), blendFactor(dst))
}

func (d *Device) DrawArrays(mode gpu.Primitive, first, count int32) {
	gl.DrawArrays(primitive(mode), first, count)
}

func (d *Device) DrawElements(mode gpu.Primitive, count int32, indexType gpu.IndexType) {
	t := uint32(gl.UNSIGNED_INT)
	if indexType == gpu.UnsignedShort {
		t = gl.UNSIGNED_SHORT
	}
	gl.DrawElementsWithOffset(primitive(mode), count, t, 0)
}

// Error maps glGetError to a gpu.ErrorCode.
func (d *Device) Error() gpu.ErrorCode {
	switch gl.GetError() {
	case gl.NO_ERROR:
		return gpu.NoError
	case gl.INVALID_ENUM:
		return gpu.InvalidEnum
	case gl.INVALID_VALUE:
		return gpu.InvalidValue
	case gl.INVALID_OPERATION:
		return gpu.InvalidOperation
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return gpu.InvalidFramebufferOperation
	case gl.OUT_OF_MEMORY:
		return gpu.OutOfMemory
	case gl.STACK_UNDERFLOW:
		return gpu.StackUnderflow
	case gl.STACK_OVERFLOW:
		return gpu.StackOverflow
	default:
		return gpu.InvalidOperation
	}
}

func bufferTarget(t gpu.BufferTarget) uint32 {
	if t == gpu.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func primitive(p gpu.Primitive) uint32 {
	switch p {
	case gpu.Points:
		return gl.POINTS
	case gpu.Lines:
		return gl.LINES
	case gpu.LineStrip:
		return gl.LINE_STRIP
	case gpu.LineLoop:
		return gl.LINE_LOOP
	case gpu.TriangleStrip:
		return gl.TRIANGLE_STRIP
	case gpu.TriangleFan:
		return gl.TRIANGLE_FAN
	default:
		return gl.TRIANGLES
	}
}

func blendFactor(f gpu.BlendFactor) uint32 {
	switch f {
	case gpu.Zero:
		return gl.ZERO
	case gpu.One:
		return gl.ONE
	case gpu.SrcColor:
		return gl.SRC_COLOR
	case gpu.OneMinusSrcColor:
		return gl.ONE_MINUS_SRC_COLOR
	case gpu.DstColor:
		return gl.DST_COLOR
	case gpu.OneMinusDstColor:
		return gl.ONE_MINUS_DST_COLOR
	case gpu.SrcAlpha:
		return gl.SRC_ALPHA
	case gpu.OneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case gpu.DstAlpha:
		return gl.DST_ALPHA
	default:
		return gl.ONE_MINUS_DST_ALPHA
	}
}
