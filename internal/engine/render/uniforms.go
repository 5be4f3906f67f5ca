package render

import (
	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/internal/engine/lighting"
	"github.com/Faultbox/sceneview/internal/engine/resource"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Every setter below skips locations < 0: a program that does not declare
// a variable simply does not receive it.

func (d *DrawScene) setStandardUniforms(sh *resource.Shader, model math.Mat4) {
	v := &sh.Vars
	ctx := d.ctx

	if v.ProjMat >= 0 {
		ctx.SetUniformMat4(v.ProjMat, d.view.Proj)
	}
	if v.ViewMat >= 0 {
		ctx.SetUniformMat4(v.ViewMat, d.view.View)
	}
	if v.ViewMatInv >= 0 {
		ctx.SetUniformMat4(v.ViewMatInv, d.view.ViewInv)
	}
	if v.ModelMat >= 0 {
		ctx.SetUniformMat4(v.ModelMat, model)
	}
	if v.MVPMat >= 0 {
		ctx.SetUniformMat4(v.MVPMat, d.viewProj.Mul(model))
	}
	if v.MVMat >= 0 {
		ctx.SetUniformMat4(v.MVMat, d.view.View.Mul(model))
	}
	if v.ModelNormalMat >= 0 {
		ctx.SetUniformMat3(v.ModelNormalMat, model.NormalMatrix())
	}
}

// setLights fills one slot per resolved light. The light buffer never
// holds more than resource.MaxShaderLights entries.
func (d *DrawScene) setLights(sh *resource.Shader) {
	ctx := d.ctx
	for i, l := range d.lights.Lights {
		slot := sh.Vars.Lights[i]
		if slot.IsDirectional >= 0 {
			var dir int32
			if l.Type == lighting.Directional {
				dir = 1
			}
			ctx.SetUniformInt(slot.IsDirectional, dir)
		}
		if slot.Direction >= 0 {
			ctx.SetUniformVec3(slot.Direction, l.Direction)
		}
		if slot.Position >= 0 {
			ctx.SetUniformVec3(slot.Position, l.Position)
		}
		if slot.Ambient >= 0 {
			ctx.SetUniformFloat(slot.Ambient, l.Ambient)
		}
		if slot.Color >= 0 {
			ctx.SetUniformVec3(slot.Color, l.Color)
		}
		if slot.Attenuation >= 0 {
			ctx.SetUniformFloat(slot.Attenuation, l.Attenuation)
		}
		if slot.ConeAngle >= 0 {
			ctx.SetUniformFloat(slot.ConeAngle, l.ConeRadians())
		}
	}
}

func (d *DrawScene) setParams(sh *resource.Shader, mat *resource.Material) {
	ctx := d.ctx
	for _, p := range mat.Params() {
		loc := sh.Uniform(p.Name)
		if loc < 0 {
			continue
		}
		switch p.Type {
		case resource.ParamInt:
			ctx.SetUniformInt(loc, p.Ints[0])
		case resource.ParamInts:
			ctx.SetUniformInts(loc, p.Ints)
		case resource.ParamFloat:
			ctx.SetUniformFloat(loc, p.Floats[0])
		case resource.ParamVec2:
			ctx.SetUniformVec2(loc, p.Floats[0], p.Floats[1])
		case resource.ParamVec3:
			ctx.SetUniformVec3(loc, math.Vec3{X: p.Floats[0], Y: p.Floats[1], Z: p.Floats[2]})
		case resource.ParamVec4:
			ctx.SetUniformVec4(loc, math.Vec4{p.Floats[0], p.Floats[1], p.Floats[2], p.Floats[3]})
		case resource.ParamFloats:
			ctx.SetUniformFloats(loc, p.Floats)
		}
	}
}

// bindTextures assigns units in the material's texture order: the first
// sampler gets unit 0, the next unit 1 and so on.
func (d *DrawScene) bindTextures(sh *resource.Shader, mat *resource.Material) {
	for unit, tb := range mat.Textures() {
		tex, err := d.res.Texture(tb.Texture)
		if err != nil {
			continue
		}
		d.ctx.BindTexture(uint32(unit), tex.Handle)
		if loc := sh.Uniform(tb.Sampler); loc >= 0 {
			d.ctx.SetUniformInt(loc, int32(unit))
		}
	}
}

// bindAttributes sets every attribute the program declares, disabling the
// ones the geometry lacks so nothing carries over from a previous draw.
func (d *DrawScene) bindAttributes(sh *resource.Shader, g *resource.Geometry) {
	for a := resource.Attribute(0); a < resource.NumAttributes; a++ {
		loc := sh.Vars.Attribs[a]
		if loc < 0 {
			continue
		}
		if g.Has(a) {
			d.ctx.EnableVertexAttrib(uint32(loc))
			d.ctx.VertexAttribFloats(uint32(loc), a.Size(), g.Attribs[a].Offset)
		} else {
			d.ctx.DisableVertexAttrib(uint32(loc))
		}
	}
}

func (d *DrawScene) applyState(mat *resource.Material) {
	ctx := d.ctx
	ctx.FrontFace(gpu.CCW)
	if mat.TwoSided {
		ctx.SetCapability(gpu.CullFaceTest, false)
	} else {
		ctx.CullFace(gpu.Back)
		ctx.SetCapability(gpu.CullFaceTest, true)
	}
	ctx.SetCapability(gpu.DepthTest, mat.DepthTest)
	ctx.DepthMask(mat.DepthWrite)
	ctx.ColorMask(mat.ColorWrite, mat.ColorWrite, mat.ColorWrite, mat.ColorWrite)
	if mat.PointSize > 0 {
		ctx.PointSize(mat.PointSize)
	}
	if mat.LineWidth > 0 {
		ctx.LineWidth(mat.LineWidth)
	}
	ctx.SetCapability(gpu.Blend, mat.Blend)
	ctx.BlendFunc(mat.BlendSrc, mat.BlendDst)
}
