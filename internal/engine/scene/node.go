package scene

import (
	"fmt"

	"github.com/Faultbox/sceneview/internal/engine/arena"
	"github.com/Faultbox/sceneview/internal/engine/resource"
	"github.com/Faultbox/sceneview/pkg/math"
)

// NodeID identifies a node within one Scene. The zero NodeID is "none".
type NodeID arena.Handle

// IsZero reports whether id is the "none" handle.
func (id NodeID) IsZero() bool { return arena.Handle(id).IsZero() }

// Kind discriminates the payload a node carries.
type Kind int

const (
	KindGroup Kind = iota
	KindMesh
	KindCamera
	KindLight
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindMesh:
		return "mesh"
	case KindCamera:
		return "camera"
	case KindLight:
		return "light"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Component pairs a geometry with the material it is drawn with.
type Component struct {
	Geometry resource.GeometryID
	Material resource.MaterialID
}

// Mesh is the payload of a mesh node.
type Mesh struct {
	components []Component

	bounds      math.AABB
	boundsRev   uint64
	boundsValid bool
}

// Components returns the mesh's components in the order they were added.
func (m *Mesh) Components() []Component {
	return m.components
}

// Node is one element of the scene tree: a local transform, a local
// visibility flag and, depending on Kind, a mesh, camera or light payload.
// Nodes are created and destroyed by their Scene.
type Node struct {
	Name string

	kind        Kind
	translation math.Vec3
	rotation    math.Quat
	scale       math.Vec3
	visible     bool

	parent   NodeID
	children []NodeID

	mesh   *Mesh
	camera *Camera
	light  *Light
}

func newNode(kind Kind) *Node {
	n := &Node{
		kind:     kind,
		rotation: math.QuatIdentity(),
		scale:    math.Vec3{X: 1, Y: 1, Z: 1},
		visible:  true,
	}
	switch kind {
	case KindMesh:
		n.mesh = &Mesh{}
	case KindCamera:
		n.camera = newCamera()
	case KindLight:
		n.light = newLight()
	}
	return n
}

func (n *Node) Kind() Kind { return n.kind }

// Parent returns the parent id; zero for the root.
func (n *Node) Parent() NodeID { return n.parent }

// Children returns the child ids in insertion order.
func (n *Node) Children() []NodeID { return n.children }

func (n *Node) Translation() math.Vec3 { return n.translation }
func (n *Node) Rotation() math.Quat    { return n.rotation }
func (n *Node) Scale() math.Vec3       { return n.scale }

func (n *Node) SetTranslation(t math.Vec3) { n.translation = t }
func (n *Node) SetRotation(r math.Quat)    { n.rotation = r.Normalize() }
func (n *Node) SetScale(s math.Vec3)       { n.scale = s }

// Visible returns the node's own flag. See Scene.Visible for the
// inherited value.
func (n *Node) Visible() bool { return n.visible }

func (n *Node) SetVisible(v bool) { n.visible = v }

// LocalTransform returns translation * rotation * scale.
func (n *Node) LocalTransform() math.Mat4 {
	return math.TRS(n.translation, n.rotation, n.scale)
}

// Mesh returns the mesh payload, or nil if the node is not a mesh.
func (n *Node) Mesh() *Mesh { return n.mesh }

// Camera returns the camera payload, or nil if the node is not a camera.
func (n *Node) Camera() *Camera { return n.camera }

// Light returns the light payload, or nil if the node is not a light.
func (n *Node) Light() *Light { return n.light }
