// Package glfwbackend opens a GLFW window with an OpenGL context and exposes
// it as a backend.Backend.
//
// GLFW window and event functions only work on the main thread, so they are
// sent there with mainthread. The program must run inside mainthread.Run.
// GL calls happen on whatever goroutine made the context current, which
// must be locked to its OS thread.
package glfwbackend

import (
	"errors"
	"sync/atomic"
	"unsafe"

	"github.com/bloeys/ngl/backend"
	"github.com/faiface/mainthread"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var ErrWindowDestroyed = errors.New("glfwbackend: window was destroyed")

var _ backend.Backend = &Window{}

type Window struct {
	Handle *glfw.Window

	// Framebuffer size, updated on the main thread by the resize callback
	fbWidth, fbHeight atomic.Uint32

	destroyed atomic.Bool
}

// Init starts GLFW on the main thread
func Init() error {
	return mainthread.CallErr(glfw.Init)
}

func Terminate() {
	mainthread.Call(glfw.Terminate)
}

func boolToInt(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func setHints(opts *backend.WindowOptions) {

	glfw.DefaultWindowHints()

	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, opts.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, opts.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	glfw.WindowHint(glfw.Resizable, boolToInt(opts.Resizable))
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.SRGBCapable, boolToInt(opts.Srgb))
	glfw.WindowHint(glfw.Samples, opts.MSAA)

	depth, stencil := 0, 0
	if opts.Depth {
		depth = 24
	}
	if opts.Stencil {
		stencil = 8
	}
	glfw.WindowHint(glfw.DepthBits, depth)
	glfw.WindowHint(glfw.StencilBits, stencil)
}

// CreateWindow opens the window. Its context is not current anywhere, the
// render goroutine makes it current with MakeCurrent.
func CreateWindow(opts backend.WindowOptions) (*Window, error) {

	w := &Window{}
	err := mainthread.CallErr(func() error {

		setHints(&opts)

		handle, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
		if err != nil {
			return err
		}
		w.Handle = handle

		width, height := handle.GetFramebufferSize()
		w.setSize(width, height)

		handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
			w.setSize(width, height)
		})

		handle.SetKeyCallback(func(win *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
			if key == glfw.KeyEscape && action == glfw.Press {
				win.SetShouldClose(true)
			}
		})

		return nil
	})

	if err != nil {
		return nil, err
	}

	return w, nil
}

func (w *Window) setSize(width, height int) {

	if width < 0 || height < 0 {
		width, height = 0, 0
	}

	w.fbWidth.Store(uint32(width))
	w.fbHeight.Store(uint32(height))
}

func (w *Window) SwapBuffers() error {

	if w.destroyed.Load() {
		return backend.ErrContextLost
	}

	w.Handle.SwapBuffers()
	return nil
}

// GetProcAddress needs the context to be current on the calling thread
func (w *Window) GetProcAddress(name string) unsafe.Pointer {
	return glfw.GetProcAddress(name)
}

func (w *Window) FramebufferDimensions() (width, height uint32) {
	return w.fbWidth.Load(), w.fbHeight.Load()
}

func (w *Window) IsCurrent() bool {
	return !w.destroyed.Load() && glfw.GetCurrentContext() == w.Handle
}

// MakeCurrent makes the context current on the calling thread
func (w *Window) MakeCurrent() {

	if w.destroyed.Load() {
		return
	}

	w.Handle.MakeContextCurrent()
}

// SetVSync applies to the context current on the calling thread
func (w *Window) SetVSync(enabled bool) {

	interval := 0
	if enabled {
		interval = 1
	}

	glfw.SwapInterval(interval)
}

func (w *Window) PollEvents() {
	mainthread.Call(glfw.PollEvents)
}

func (w *Window) ShouldClose() bool {
	return w.destroyed.Load() || w.Handle.ShouldClose()
}

// Destroy closes the window. The context must not be current on any thread
// other than the main one.
func (w *Window) Destroy() error {

	if w.destroyed.Swap(true) {
		return ErrWindowDestroyed
	}

	glfw.DetachCurrentContext()
	mainthread.Call(w.Handle.Destroy)
	return nil
}
