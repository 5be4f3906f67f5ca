package resource

import "github.com/Faultbox/sceneview/internal/engine/gpu"

// Texture is an uploaded 2D RGBA texture.
type Texture struct {
	Name   string
	Handle gpu.Texture
	Width  int
	Height int
}
