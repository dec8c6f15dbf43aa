// Package backend describes what a window system must provide for a GL
// context to be driven by this module.
package backend

import (
	"errors"
	"unsafe"
)

var ErrContextLost = errors.New("the OpenGL context has been lost")

type Backend interface {
	// SwapBuffers presents the back buffer. It returns ErrContextLost when
	// the window or context is gone.
	SwapBuffers() error

	// GetProcAddress returns the address of a GL entry point, or nil.
	GetProcAddress(name string) unsafe.Pointer

	// FramebufferDimensions is the size of the default framebuffer in pixels.
	FramebufferDimensions() (width, height uint32)

	IsCurrent() bool

	// MakeCurrent binds the context to the calling thread.
	MakeCurrent()
}

// WindowOptions are the window and default framebuffer settings requested
// from a windowing library
type WindowOptions struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`

	// GLMajor and GLMinor request a core profile of at least this version
	GLMajor int `toml:"gl_major"`
	GLMinor int `toml:"gl_minor"`

	// MSAA is the sample count of the default framebuffer, 0 disables it
	MSAA    int  `toml:"msaa"`
	Depth   bool `toml:"depth"`
	Stencil bool `toml:"stencil"`
	Srgb    bool `toml:"srgb"`
	VSync   bool `toml:"vsync"`

	Resizable bool `toml:"resizable"`
}

func DefaultWindowOptions() WindowOptions {
	return WindowOptions{
		Title:   "ngl",
		Width:   1280,
		Height:  720,
		GLMajor: 4,
		GLMinor: 1,
		Depth:   true,
		Stencil: true,
		Srgb:    true,
		VSync:   true,
	}
}
