// Package glcore implements the gpu capability surface on OpenGL 4.1 core.
// All calls must be made from the thread that owns the GL context.
package glcore

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/pkg/math"
)

var _ gpu.Device = (*Device)(nil)

// Device drives the current OpenGL context.
type Device struct {
	log *zap.Logger

	// Core profile refuses attribute pointers without a bound VAO; one
	// shared VAO stays bound for the lifetime of the device.
	vao uint32
}

// New initializes OpenGL function pointers and returns a device.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(log *zap.Logger) (*Device, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	d := &Device{log: log}
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	return d, nil
}

// Close releases device-owned objects.
func (d *Device) Close() {
	if d.vao != 0 {
		gl.BindVertexArray(0)
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}

// Viewport sets the viewport rectangle.
func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Clear clears color and depth buffers.
func (d *Device) Clear(c math.Vec4) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// CreateBuffer uploads data into a new static buffer.
func (d *Device) CreateBuffer(target gpu.BufferTarget, data []byte) (gpu.Buffer, error) {
	var id uint32
	gl.GenBuffers(1, &id)
	if id == 0 {
		return 0, fmt.Errorf("glGenBuffers returned 0")
	}
	t := bufferTarget(target)
	gl.BindBuffer(t, id)
	if len(data) > 0 {
		gl.BufferData(t, len(data), gl.Ptr(&data[0]), gl.STATIC_DRAW)
	}
	gl.BindBuffer(t, 0)
	if code := d.Error(); code != gpu.NoError {
		gl.DeleteBuffers(1, &id)
		return 0, fmt.Errorf("uploading %d bytes: %s", len(data), code)
	}
	return gpu.Buffer(id), nil
}

// DeleteBuffer deletes a buffer.
func (d *Device) DeleteBuffer(b gpu.Buffer) {
	id := uint32(b)
	if id != 0 {
		gl.DeleteBuffers(1, &id)
	}
}

// DeleteProgram deletes a program.
func (d *Device) DeleteProgram(p gpu.Program) {
	if p != 0 {
		gl.DeleteProgram(uint32(p))
	}
}

// UniformLocation returns the uniform location for the given name, or -1.
func (d *Device) UniformLocation(p gpu.Program, name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
}

// AttribLocation returns the attribute location for the given name, or -1.
func (d *Device) AttribLocation(p gpu.Program, name string) int32 {
	return gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00"))
}

// CreateTexture uploads an RGBA image with mipmaps.
func (d *Device) CreateTexture(img *image.RGBA) (gpu.Texture, error) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return 0, fmt.Errorf("empty image %v", b)
	}
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if code := d.Error(); code != gpu.NoError {
		gl.DeleteTextures(1, &id)
		return 0, fmt.Errorf("uploading %dx%d texture: %s", b.Dx(), b.Dy(), code)
	}
	return gpu.Texture(id), nil
}

// DeleteTexture deletes a texture.
func (d *Device) DeleteTexture(t gpu.Texture) {
	id := uint32(t)
	if id != 0 {
		gl.DeleteTextures(1, &id)
	}
}
