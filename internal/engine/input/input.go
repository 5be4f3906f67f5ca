// Package input turns SDL2 events into the per-frame controls of the viewer.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Frame is the input gathered during one Update.
type Frame struct {
	Quit bool

	// Resized is set with the new size when the window changed size.
	Resized       bool
	Width, Height int

	// Mouse drag with the left button held, in pixels.
	DragX, DragY float32
	// Scroll wheel steps, positive away from the user.
	Wheel float32

	// Movement axes from W/S, D/A and E/Q, each -1, 0 or 1.
	Forward, Right, Up float32

	pressed []sdl.Scancode
}

// Pressed reports whether key went down during this frame.
func (f *Frame) Pressed(key sdl.Scancode) bool {
	for _, k := range f.pressed {
		if k == key {
			return true
		}
	}
	return false
}

// Input tracks held keys and buttons across frames.
type Input struct {
	held     map[sdl.Scancode]bool
	dragging bool
	frame    Frame
}

// New creates a new input handler.
func New() *Input {
	return &Input{held: make(map[sdl.Scancode]bool)}
}

// Update drains the SDL event queue and returns the frame's input.
func (i *Input) Update() Frame {
	i.begin()
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		i.handle(ev)
	}
	return i.end()
}

func (i *Input) begin() {
	i.frame = Frame{pressed: i.frame.pressed[:0]}
}

func (i *Input) handle(ev sdl.Event) {
	f := &i.frame
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		f.Quit = true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED {
			f.Resized = true
			f.Width, f.Height = int(e.Data1), int(e.Data2)
		}

	case *sdl.KeyboardEvent:
		key := e.Keysym.Scancode
		switch e.Type {
		case sdl.KEYDOWN:
			if e.Repeat == 0 {
				f.pressed = append(f.pressed, key)
			}
			i.held[key] = true
			if key == sdl.SCANCODE_ESCAPE {
				f.Quit = true
			}
		case sdl.KEYUP:
			delete(i.held, key)
		}

	case *sdl.MouseButtonEvent:
		if e.Button == sdl.BUTTON_LEFT {
			i.dragging = e.Type == sdl.MOUSEBUTTONDOWN
		}

	case *sdl.MouseMotionEvent:
		if i.dragging {
			f.DragX += float32(e.XRel)
			f.DragY += float32(e.YRel)
		}

	case *sdl.MouseWheelEvent:
		f.Wheel += float32(e.Y)
	}
}

func (i *Input) end() Frame {
	f := i.frame
	f.Forward = i.axis(sdl.SCANCODE_W, sdl.SCANCODE_S)
	f.Right = i.axis(sdl.SCANCODE_D, sdl.SCANCODE_A)
	f.Up = i.axis(sdl.SCANCODE_E, sdl.SCANCODE_Q)
	return f
}

func (i *Input) axis(pos, neg sdl.Scancode) float32 {
	var v float32
	if i.held[pos] {
		v++
	}
	if i.held[neg] {
		v--
	}
	return v
}
