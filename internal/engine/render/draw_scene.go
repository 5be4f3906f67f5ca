// Package render implements the per-frame draw pass over a scene.
package render

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/internal/engine/lighting"
	"github.com/Faultbox/sceneview/internal/engine/resource"
	"github.com/Faultbox/sceneview/internal/engine/scene"
	"github.com/Faultbox/sceneview/pkg/math"
)

// ErrDrawInProgress is returned when Draw is entered while a frame is
// already being drawn.
var ErrDrawInProgress = errors.New("render: draw already in progress")

// Stats counts what the last Draw did.
type Stats struct {
	MeshesVisited  int
	MeshesDrawn    int
	Components     int
	DrawCalls      int
	Skipped        int // components with a stale geometry or material
	GPUErrors      int
	LightsUsed     int
	LightsDropped  int
	BoundingBoxes  int
	ShaderFallback int // components drawn with no program bound
}

// DrawScene draws a scene's meshes through a GPU context. It is bound to a
// single context and must only be used from the thread that owns it.
type DrawScene struct {
	res   *resource.Manager
	scene *scene.Scene
	ctx   gpu.Context
	log   *zap.Logger

	drawing   bool
	view      scene.View
	viewProj  math.Mat4
	lights    *lighting.Buffer
	stats     Stats
	drawBoxes bool
	bbox      boundingBox
}

// New creates a draw pass. A nil logger discards diagnostics.
func New(res *resource.Manager, sc *scene.Scene, ctx gpu.Context, log *zap.Logger) *DrawScene {
	if log == nil {
		log = zap.NewNop()
	}
	return &DrawScene{
		res:    res,
		scene:  sc,
		ctx:    ctx,
		log:    log.Named("render"),
		lights: lighting.NewBuffer(resource.MaxShaderLights),
	}
}

// SetDrawBoundingBoxes toggles the world-space bounding box overlay.
func (d *DrawScene) SetDrawBoundingBoxes(on bool) {
	d.drawBoxes = on
}

// DrawBoundingBoxes reports whether the overlay is enabled.
func (d *DrawScene) DrawBoundingBoxes() bool {
	return d.drawBoxes
}

// Stats returns the counters of the last completed Draw.
func (d *DrawScene) Stats() Stats {
	return d.stats
}

// Draw renders every visible mesh as seen from camera, in scene list order
// and, within a mesh, in component order. Only an unusable camera or a
// re-entrant call fail; problems with individual draws are logged and
// counted in Stats. With the bounding-box overlay on, every mesh with
// non-empty bounds gets a box, including hidden ones.
func (d *DrawScene) Draw(camera scene.NodeID) error {
	if d.drawing {
		return ErrDrawInProgress
	}
	view, err := d.scene.ResolveCamera(camera)
	if err != nil {
		return fmt.Errorf("camera: %w", err)
	}

	d.drawing = true
	d.view = view
	d.viewProj = view.Proj.Mul(view.View)
	d.stats = Stats{}
	defer func() {
		d.drawing = false
		d.view = scene.View{}
	}()

	d.scene.ResolveLights(d.lights)
	d.stats.LightsUsed = len(d.lights.Lights)
	d.stats.LightsDropped = d.lights.Dropped
	if d.lights.Dropped > 0 {
		d.log.Warn("too many lights, extra lights ignored",
			zap.Int("lights", len(d.lights.Lights)+d.lights.Dropped),
			zap.Int("max", d.lights.Max()))
	}

	for _, id := range d.scene.Meshes() {
		d.stats.MeshesVisited++
		if world, visible := d.scene.WorldTransform(id); visible {
			d.drawMesh(id, world)
		}
		if d.drawBoxes {
			d.drawBoundingBox(id)
		}
	}
	return nil
}

func (d *DrawScene) drawMesh(id scene.NodeID, world math.Mat4) {
	n, err := d.scene.Node(id)
	if err != nil {
		return
	}
	d.stats.MeshesDrawn++
	for _, c := range n.Mesh().Components() {
		g, err := d.res.Geometry(c.Geometry)
		if err != nil {
			d.stats.Skipped++
			d.log.Warn("skipping component", zap.String("mesh", n.Name), zap.String("resource", "geometry"), zap.Error(err))
			continue
		}
		mat, err := d.res.Material(c.Material)
		if err != nil {
			d.stats.Skipped++
			d.log.Warn("skipping component", zap.String("mesh", n.Name), zap.String("resource", "material"), zap.Error(err))
			continue
		}
		d.stats.Components++
		d.drawComponent(g, mat, world)
	}
}

// drawComponent issues one draw and restores every piece of state it
// changed, so no binding leaks into the next component.
func (d *DrawScene) drawComponent(g *resource.Geometry, mat *resource.Material, model math.Mat4) {
	ctx := d.ctx
	ctx.BindBuffer(gpu.ArrayBuffer, g.VertexBuffer)

	sh := d.shaderFor(mat)
	if sh != nil {
		ctx.UseProgram(sh.Program)
		d.setStandardUniforms(sh, model)
		d.setLights(sh)
		d.setParams(sh, mat)
		d.bindTextures(sh, mat)
		d.bindAttributes(sh, g)
	} else {
		ctx.UseProgram(0)
	}

	d.applyState(mat)

	if g.Indexed() {
		ctx.BindBuffer(gpu.ElementArrayBuffer, g.IndexBuffer)
		ctx.DrawElements(g.Mode, int32(g.NumIndices), g.IndexType)
	} else {
		ctx.DrawArrays(g.Mode, 0, int32(g.NumVertices))
	}
	d.stats.DrawCalls++
	if code := ctx.Error(); code != gpu.NoError {
		d.stats.GPUErrors++
		d.log.Error("GPU error after draw",
			zap.Stringer("code", code),
			zap.String("material", mat.Name),
			zap.Stringer("mode", g.Mode))
	}

	if sh != nil {
		ctx.UseProgram(0)
	}
	if g.Indexed() {
		ctx.BindBuffer(gpu.ElementArrayBuffer, 0)
	}
	ctx.BindBuffer(gpu.ArrayBuffer, 0)
	if mat.PointSize > 0 {
		ctx.PointSize(gpu.DefaultPointSize)
	}
	if mat.LineWidth > 0 {
		ctx.LineWidth(gpu.DefaultLineWidth)
	}
	ctx.ColorMask(true, true, true, true)
}

// shaderFor returns the material's shader, or nil when the draw has to
// fall back to no program.
func (d *DrawScene) shaderFor(mat *resource.Material) *resource.Shader {
	if mat.Shader().IsZero() {
		d.stats.ShaderFallback++
		return nil
	}
	sh, err := d.res.Shader(mat.Shader())
	if err != nil || sh.Program == 0 {
		d.stats.ShaderFallback++
		d.log.Debug("material shader unavailable, drawing without program", zap.String("material", mat.Name))
		return nil
	}
	return sh
}
