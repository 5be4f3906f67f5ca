package viewer

import (
	"fmt"
	"image/color"

	"github.com/Faultbox/sceneview/internal/config"
	"github.com/Faultbox/sceneview/internal/engine/lighting"
	"github.com/Faultbox/sceneview/internal/engine/resource"
	"github.com/Faultbox/sceneview/internal/engine/scene"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Demo holds the nodes of the built-in scene the viewer animates.
type Demo struct {
	Camera  scene.NodeID
	Spinner scene.NodeID
	Sun     scene.NodeID
	Lamp    scene.NodeID
}

// demoBuilder keeps the handles it creates so a failed build can release
// them and a successful one can drop its creation references.
type demoBuilder struct {
	res *resource.Manager
	sc  *scene.Scene

	geometries []resource.GeometryID
	materials  []resource.MaterialID
	textures   []resource.TextureID
	err        error
}

func (b *demoBuilder) geometry(d resource.GeometryData) resource.GeometryID {
	if b.err != nil {
		return resource.GeometryID{}
	}
	id, err := b.res.LoadGeometry(d)
	if err != nil {
		b.err = err
		return id
	}
	b.geometries = append(b.geometries, id)
	return id
}

func (b *demoBuilder) stock(kind resource.StockShader) resource.ShaderID {
	if b.err != nil {
		return resource.ShaderID{}
	}
	id, err := b.res.StockShader(kind)
	if err != nil {
		b.err = fmt.Errorf("stock shader %s: %w", kind, err)
	}
	return id
}

func (b *demoBuilder) material(name string, shader resource.ShaderID) *resource.Material {
	if b.err != nil {
		return nil
	}
	id, err := b.res.MakeMaterial(name, shader)
	if err != nil {
		b.err = err
		return nil
	}
	b.materials = append(b.materials, id)
	mat, _ := b.res.Material(id)
	return mat
}

func (b *demoBuilder) lastMaterial() resource.MaterialID {
	if len(b.materials) == 0 {
		return resource.MaterialID{}
	}
	return b.materials[len(b.materials)-1]
}

func (b *demoBuilder) mesh(parent scene.NodeID, name string, geo resource.GeometryID, mat resource.MaterialID) scene.NodeID {
	if b.err != nil {
		return scene.NodeID{}
	}
	id, err := b.sc.MakeMesh(parent)
	if err == nil {
		err = b.sc.AddComponent(id, geo, mat)
	}
	if err != nil {
		b.err = err
		return id
	}
	n, _ := b.sc.Node(id)
	n.Name = name
	return id
}

// release drops the creation references; meshes hold their own.
func (b *demoBuilder) release() {
	for _, id := range b.materials {
		b.res.ReleaseMaterial(id)
	}
	for _, id := range b.geometries {
		b.res.ReleaseGeometry(id)
	}
	for _, id := range b.textures {
		b.res.ReleaseTexture(id)
	}
}

// BuildDemo populates sc with a lit cube on a ground plane, a textured
// billboard, an axis gizmo, a sun, a point lamp and a camera configured
// from cam. custom, when not zero, shades the cube instead of the stock
// lit shader.
func BuildDemo(res *resource.Manager, sc *scene.Scene, cam config.CameraConfig, aspect float32, custom resource.ShaderID) (*Demo, error) {
	b := &demoBuilder{res: res, sc: sc}
	defer b.release()

	lit := b.stock(resource.PerVertexColorLighting)
	flat := b.stock(resource.UniformColorNoLighting)
	textured := b.stock(resource.TextureUniformColorNoLighting)
	if custom.IsZero() {
		custom = lit
	}

	b.material("demo/ground", lit)
	groundMat := b.lastMaterial()
	b.mesh(sc.Root(), "ground", b.geometry(ground(20, math.RGBA(0.35, 0.4, 0.35, 1))), groundMat)

	b.material("demo/cube", custom)
	cubeMat := b.lastMaterial()
	cube := b.geometry(litCube([6]math.Vec4{
		math.RGBA(0.9, 0.2, 0.2, 1), math.RGBA(0.2, 0.9, 0.2, 1),
		math.RGBA(0.2, 0.2, 0.9, 1), math.RGBA(0.9, 0.9, 0.2, 1),
		math.RGBA(0.2, 0.9, 0.9, 1), math.RGBA(0.9, 0.2, 0.9, 1),
	}, 32))

	var spinner scene.NodeID
	if b.err == nil {
		spinner, b.err = sc.MakeGroup(sc.Root())
	}
	cubeNode := b.mesh(spinner, "cube", cube, cubeMat)
	moon := b.mesh(spinner, "moon", cube, cubeMat)

	if m := b.material("demo/billboard", textured); m != nil {
		m.SetParam4f("color", 1, 1, 1, 1)
		m.TwoSided = true
		tex, err := res.LoadTexture("demo/checker", checker(64, 8,
			color.RGBA{R: 240, G: 240, B: 240, A: 255},
			color.RGBA{R: 40, G: 40, B: 60, A: 255}))
		if err == nil {
			b.textures = append(b.textures, tex)
			err = m.AddTexture("texture0", tex)
		}
		if err != nil {
			b.err = err
		}
	}
	billboard := b.mesh(sc.Root(), "billboard", b.geometry(texturedQuad()), b.lastMaterial())

	if m := b.material("demo/axes", flat); m != nil {
		m.SetParam4f("color", 1, 1, 1, 1)
		m.LineWidth = 2
		m.DepthTest = false
	}
	gizmo := b.mesh(sc.Root(), "axes", b.geometry(axes()), b.lastMaterial())

	if b.err != nil {
		return nil, fmt.Errorf("building demo scene: %w", b.err)
	}

	setTransform(sc, cubeNode, math.Vec3{Y: 1}, math.Vec3{X: 2, Y: 2, Z: 2})
	setTransform(sc, moon, math.Vec3{X: 3, Y: 1.5}, math.Vec3{X: 0.5, Y: 0.5, Z: 0.5})
	setTransform(sc, billboard, math.Vec3{X: -4, Y: 1.5, Z: 2}, math.Vec3{X: 3, Y: 3, Z: 1})
	setTransform(sc, gizmo, math.Vec3{Y: 0.01}, math.Vec3{X: 2, Y: 2, Z: 2})

	d := &Demo{Spinner: spinner}
	var err error

	if d.Sun, err = sc.MakeLight(sc.Root()); err != nil {
		return nil, err
	}
	sun, _ := sc.Node(d.Sun)
	sun.Name = "sun"
	setLight(sun.Light(), lighting.Sunlight(135, 45, math.Vec3{X: 1, Y: 0.95, Z: 0.85}, 0.15))

	if d.Lamp, err = sc.MakeLight(spinner); err != nil {
		return nil, err
	}
	lamp, _ := sc.Node(d.Lamp)
	lamp.Name = "lamp"
	lamp.SetTranslation(math.Vec3{X: -3, Y: 3})
	l := lamp.Light()
	l.Type = lighting.Point
	l.Color = math.Vec3{X: 0.4, Y: 0.6, Z: 1}
	l.Attenuation = 0.05

	if d.Camera, err = sc.MakeCamera(sc.Root()); err != nil {
		return nil, err
	}
	cn, _ := sc.Node(d.Camera)
	cn.Name = "camera"
	c := cn.Camera()
	c.SetPerspective(cam.FovY, aspect, cam.Near, cam.Far)
	c.LookAt(vec3(cam.Eye), vec3(cam.Target), vec3(cam.Up))
	return d, nil
}

func setTransform(sc *scene.Scene, id scene.NodeID, t, s math.Vec3) {
	n, err := sc.Node(id)
	if err != nil {
		return
	}
	n.SetTranslation(t)
	n.SetScale(s)
}

func setLight(dst *scene.Light, src lighting.Light) {
	dst.Type = src.Type
	dst.Direction = src.Direction
	dst.Color = src.Color
	dst.Ambient = src.Ambient
	dst.Attenuation = src.Attenuation
	dst.ConeAngle = src.ConeAngle
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
