package render

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/debug"
	"github.com/Faultbox/sceneview/internal/engine/resource"
	"github.com/Faultbox/sceneview/internal/engine/scene"
)

// boundingBox is the overlay's unit cube. It lives only here, never in the
// scene, so regular traversal cannot reach it.
type boundingBox struct {
	geometry resource.GeometryID
	material resource.MaterialID
	ready    bool
	failed   bool
}

func (d *DrawScene) ensureBoundingBox() error {
	if d.bbox.ready {
		return nil
	}
	shader, err := d.res.StockShader(resource.UniformColorNoLighting)
	if err != nil {
		return err
	}
	mat, err := d.res.MakeMaterial("debug/bbox", shader)
	if err != nil {
		return err
	}
	m, _ := d.res.Material(mat)
	c := debug.BBoxColor
	m.SetParam4f("color", c[0], c[1], c[2], c[3])

	geo, err := d.res.LoadGeometry(debug.UnitCubeWireframe())
	if err != nil {
		d.res.ReleaseMaterial(mat)
		return fmt.Errorf("bounding box geometry: %w", err)
	}
	d.bbox = boundingBox{geometry: geo, material: mat, ready: true}
	return nil
}

// drawBoundingBox draws the world-space box of a mesh fitted from the
// unit cube. Meshes without geometry have no box.
func (d *DrawScene) drawBoundingBox(id scene.NodeID) {
	box, err := d.scene.WorldBounds(id)
	if err != nil || box.IsEmpty() {
		return
	}
	if d.bbox.failed {
		return
	}
	if err := d.ensureBoundingBox(); err != nil {
		d.bbox.failed = true
		d.log.Error("bounding box overlay unavailable", zap.Error(err))
		return
	}

	g, err := d.res.Geometry(d.bbox.geometry)
	if err != nil {
		return
	}
	mat, err := d.res.Material(d.bbox.material)
	if err != nil {
		return
	}
	d.drawComponent(g, mat, debug.BBoxTransform(box))
	d.stats.BoundingBoxes++
}

// Close releases the resources the draw pass created for itself.
func (d *DrawScene) Close() {
	if !d.bbox.ready {
		return
	}
	d.res.ReleaseGeometry(d.bbox.geometry)
	d.res.ReleaseMaterial(d.bbox.material)
	d.bbox = boundingBox{}
}
