package resource

import (
	"errors"

	"github.com/Faultbox/sceneview/internal/engine/arena"
)

// ErrInvalidHandle is returned for zero, stale or released handles.
var ErrInvalidHandle = errors.New("resource: invalid handle")

// GeometryID refers to a Geometry owned by a Manager.
type GeometryID arena.Handle

// IsZero reports whether id is the "none" handle.
func (id GeometryID) IsZero() bool { return arena.Handle(id).IsZero() }

// ShaderID refers to a Shader owned by a Manager.
type ShaderID arena.Handle

// IsZero reports whether id is the "none" handle.
func (id ShaderID) IsZero() bool { return arena.Handle(id).IsZero() }

// MaterialID refers to a Material owned by a Manager.
type MaterialID arena.Handle

// IsZero reports whether id is the "none" handle.
func (id MaterialID) IsZero() bool { return arena.Handle(id).IsZero() }

// TextureID refers to a Texture owned by a Manager.
type TextureID arena.Handle

// IsZero reports whether id is the "none" handle.
func (id TextureID) IsZero() bool { return arena.Handle(id).IsZero() }
