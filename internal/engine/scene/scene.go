// Package scene holds the node tree: groups, meshes, cameras and lights
// stored in an arena and linked by parent and child ids. Flat mesh and
// light lists let the draw pass iterate without walking the tree.
package scene

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/arena"
	"github.com/Faultbox/sceneview/internal/engine/lighting"
	"github.com/Faultbox/sceneview/internal/engine/resource"
	"github.com/Faultbox/sceneview/pkg/math"
)

var (
	// ErrInvalidNode is returned for zero, stale or removed node ids.
	ErrInvalidNode = errors.New("scene: invalid node")
	// ErrCycle is returned when reparenting would make a node its own ancestor.
	ErrCycle = errors.New("scene: node would become its own ancestor")
	// ErrRootNode is returned when an operation does not apply to the root.
	ErrRootNode = errors.New("scene: operation not allowed on root")
	// ErrWrongKind is returned when a node lacks the payload an operation needs.
	ErrWrongKind = errors.New("scene: wrong node kind")
	// ErrInvalidCamera is returned for cameras with degenerate parameters.
	ErrInvalidCamera = errors.New("scene: degenerate camera")
)

// Scene owns a node tree. It is not safe for concurrent use; mutate it
// between frames on the render thread.
type Scene struct {
	res *resource.Manager
	log *zap.Logger

	nodes  arena.Arena[*Node]
	root   NodeID
	meshes []NodeID
	lights []NodeID
}

// New creates a scene with an empty root group. Mesh components are
// retained in and released to res. A nil logger discards diagnostics.
func New(res *resource.Manager, log *zap.Logger) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scene{res: res, log: log.Named("scene")}
	root := newNode(KindGroup)
	root.Name = "root"
	s.root = NodeID(s.nodes.Insert(root))
	return s
}

// Root returns the root group.
func (s *Scene) Root() NodeID {
	return s.root
}

// Node returns the node behind id.
func (s *Scene) Node(id NodeID) (*Node, error) {
	n, ok := s.nodes.Get(arena.Handle(id))
	if !ok {
		return nil, ErrInvalidNode
	}
	return n, nil
}

// Len returns the number of nodes, root included.
func (s *Scene) Len() int {
	return s.nodes.Len()
}

// Meshes returns every mesh node in creation order. The slice is owned by
// the scene.
func (s *Scene) Meshes() []NodeID {
	return s.meshes
}

// Lights returns every light node in creation order. The slice is owned
// by the scene.
func (s *Scene) Lights() []NodeID {
	return s.lights
}

func (s *Scene) make(kind Kind, parent NodeID) (NodeID, error) {
	if parent.IsZero() {
		parent = s.root
	}
	p, err := s.Node(parent)
	if err != nil {
		return NodeID{}, fmt.Errorf("parent: %w", err)
	}
	n := newNode(kind)
	n.parent = parent
	id := NodeID(s.nodes.Insert(n))
	p.children = append(p.children, id)

	switch kind {
	case KindMesh:
		s.meshes = append(s.meshes, id)
	case KindLight:
		s.lights = append(s.lights, id)
	}
	return id, nil
}

// MakeGroup adds an empty group under parent (the root if zero).
func (s *Scene) MakeGroup(parent NodeID) (NodeID, error) {
	return s.make(KindGroup, parent)
}

// MakeMesh adds a mesh with no components under parent (the root if zero).
func (s *Scene) MakeMesh(parent NodeID) (NodeID, error) {
	return s.make(KindMesh, parent)
}

// MakeCamera adds a perspective camera under parent (the root if zero).
func (s *Scene) MakeCamera(parent NodeID) (NodeID, error) {
	return s.make(KindCamera, parent)
}

// MakeLight adds a white directional light under parent (the root if zero).
func (s *Scene) MakeLight(parent NodeID) (NodeID, error) {
	return s.make(KindLight, parent)
}

// AddComponent appends a geometry/material pair to a mesh. The mesh takes
// a reference to both.
func (s *Scene) AddComponent(mesh NodeID, geometry resource.GeometryID, material resource.MaterialID) error {
	n, err := s.Node(mesh)
	if err != nil {
		return err
	}
	if n.mesh == nil {
		return fmt.Errorf("%w: %s is not a mesh", ErrWrongKind, n.kind)
	}
	if err := s.res.RetainGeometry(geometry); err != nil {
		return fmt.Errorf("geometry: %w", err)
	}
	if err := s.res.RetainMaterial(material); err != nil {
		s.res.ReleaseGeometry(geometry)
		return fmt.Errorf("material: %w", err)
	}
	n.mesh.components = append(n.mesh.components, Component{Geometry: geometry, Material: material})
	n.mesh.boundsValid = false
	return nil
}

// SetParent moves id, with its subtree, to the end of parent's children.
func (s *Scene) SetParent(id, parent NodeID) error {
	if id == s.root {
		return ErrRootNode
	}
	n, err := s.Node(id)
	if err != nil {
		return err
	}
	if parent.IsZero() {
		parent = s.root
	}
	p, err := s.Node(parent)
	if err != nil {
		return fmt.Errorf("parent: %w", err)
	}
	for a := parent; !a.IsZero(); {
		if a == id {
			return ErrCycle
		}
		an, _ := s.Node(a)
		a = an.parent
	}

	old, _ := s.Node(n.parent)
	old.children = slices.DeleteFunc(old.children, func(c NodeID) bool { return c == id })
	n.parent = parent
	p.children = append(p.children, id)
	return nil
}

// Remove destroys id and its whole subtree, releasing mesh resources.
func (s *Scene) Remove(id NodeID) error {
	if id == s.root {
		return ErrRootNode
	}
	n, err := s.Node(id)
	if err != nil {
		return err
	}
	p, _ := s.Node(n.parent)
	p.children = slices.DeleteFunc(p.children, func(c NodeID) bool { return c == id })

	removed := make(map[NodeID]bool)
	s.destroy(id, removed)
	s.meshes = slices.DeleteFunc(s.meshes, func(m NodeID) bool { return removed[m] })
	s.lights = slices.DeleteFunc(s.lights, func(l NodeID) bool { return removed[l] })
	return nil
}

func (s *Scene) destroy(id NodeID, removed map[NodeID]bool) {
	n, ok := s.nodes.Remove(arena.Handle(id))
	if !ok {
		return
	}
	removed[id] = true
	for _, c := range n.children {
		s.destroy(c, removed)
	}
	if n.mesh == nil {
		return
	}
	for _, c := range n.mesh.components {
		if err := s.res.ReleaseGeometry(c.Geometry); err != nil {
			s.log.Warn("releasing geometry", zap.Error(err))
		}
		if err := s.res.ReleaseMaterial(c.Material); err != nil {
			s.log.Warn("releasing material", zap.Error(err))
		}
	}
}

// WorldTransform resolves a node's world matrix, root first:
// world = T_root * ... * T_parent * T_node. visible is false when the node
// or any ancestor is hidden; the walk stops at the first hidden node and
// world is then meaningless. Invalid ids report not visible.
func (s *Scene) WorldTransform(id NodeID) (world math.Mat4, visible bool) {
	n, ok := s.nodes.Get(arena.Handle(id))
	if !ok || !n.visible {
		return math.Identity(), false
	}
	world = n.LocalTransform()
	for p := n.parent; !p.IsZero(); {
		pn, _ := s.nodes.Get(arena.Handle(p))
		if !pn.visible {
			return math.Identity(), false
		}
		world = pn.LocalTransform().Mul(world)
		p = pn.parent
	}
	return world, true
}

// WorldMatrix resolves a node's world matrix regardless of visibility.
func (s *Scene) WorldMatrix(id NodeID) (math.Mat4, error) {
	n, ok := s.nodes.Get(arena.Handle(id))
	if !ok {
		return math.Identity(), ErrInvalidNode
	}
	world := n.LocalTransform()
	for p := n.parent; !p.IsZero(); {
		pn, _ := s.nodes.Get(arena.Handle(p))
		world = pn.LocalTransform().Mul(world)
		p = pn.parent
	}
	return world, nil
}

// Visible reports whether id and all its ancestors are visible.
func (s *Scene) Visible(id NodeID) bool {
	for cur := id; !cur.IsZero(); {
		n, ok := s.nodes.Get(arena.Handle(cur))
		if !ok || !n.visible {
			return false
		}
		cur = n.parent
	}
	return true
}

// LocalBounds returns the union of a mesh's component geometry bounds.
// The result is cached until a component is added or a geometry reloaded.
func (s *Scene) LocalBounds(mesh NodeID) (math.AABB, error) {
	n, err := s.Node(mesh)
	if err != nil {
		return math.EmptyAABB(), err
	}
	m := n.mesh
	if m == nil {
		return math.EmptyAABB(), fmt.Errorf("%w: %s is not a mesh", ErrWrongKind, n.kind)
	}
	rev := s.res.GeometryRevision()
	if m.boundsValid && m.boundsRev == rev {
		return m.bounds, nil
	}
	b := math.EmptyAABB()
	for _, c := range m.components {
		g, err := s.res.Geometry(c.Geometry)
		if err != nil {
			continue
		}
		b = b.Union(g.Bounds)
	}
	m.bounds, m.boundsRev, m.boundsValid = b, rev, true
	return b, nil
}

// WorldBounds returns a mesh's local bounds transformed to world space.
func (s *Scene) WorldBounds(mesh NodeID) (math.AABB, error) {
	local, err := s.LocalBounds(mesh)
	if err != nil {
		return local, err
	}
	world, err := s.WorldMatrix(mesh)
	if err != nil {
		return math.EmptyAABB(), err
	}
	return local.Transformed(world), nil
}

// ResolveCamera computes the matrices of a camera node. The view matrix
// accounts for the camera node's own transform and its ancestors'.
func (s *Scene) ResolveCamera(id NodeID) (View, error) {
	n, err := s.Node(id)
	if err != nil {
		return View{}, err
	}
	c := n.camera
	if c == nil {
		return View{}, fmt.Errorf("%w: %s is not a camera", ErrWrongKind, n.kind)
	}
	if !c.Valid() {
		return View{}, ErrInvalidCamera
	}
	world, _ := s.WorldMatrix(id)
	view := c.localView().Mul(world.Inverse())
	viewInv := view.Inverse()
	return View{
		Proj:    c.ProjectionMatrix(),
		View:    view,
		ViewInv: viewInv,
		Eye:     viewInv.Translation(),
	}, nil
}

// ResolveLights fills buf with the lights of all effectively visible light
// nodes, in creation order, until it is full.
func (s *Scene) ResolveLights(buf *lighting.Buffer) {
	buf.Reset()
	for _, id := range s.lights {
		world, visible := s.WorldTransform(id)
		if !visible {
			continue
		}
		n, _ := s.Node(id)
		l := n.light
		buf.Add(lighting.Light{
			Type:        l.Type,
			Position:    world.Translation(),
			Direction:   world.TransformDirection(l.Direction).Normalize(),
			Color:       l.Color,
			Ambient:     l.Ambient,
			Attenuation: l.Attenuation,
			ConeAngle:   l.ConeAngle,
		})
	}
}
