// Package sdlbackend opens an SDL2 window with an OpenGL context and
// exposes it as a backend.Backend.
package sdlbackend

import (
	"errors"
	"runtime"
	"unsafe"

	"github.com/bloeys/ngl/backend"
	"github.com/bloeys/ngl/logging"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	isInited = false

	ErrNotInited = errors.New("sdlbackend: Init was not called")
)

var _ backend.Backend = &Window{}

type Window struct {
	SDLWin         *sdl.Window
	GlCtx          sdl.GLContext
	EventCallbacks []func(sdl.Event)

	current     bool
	shouldClose bool
	lost        bool
}

// Init starts SDL and locks the calling goroutine to its thread. Every
// other call in this package must come from that goroutine.
func Init() error {

	runtime.LockOSThread()

	if err := sdl.Init(sdl.INIT_TIMER | sdl.INIT_VIDEO); err != nil {
		return err
	}

	isInited = true
	sdl.ShowCursor(1)
	return nil
}

func Quit() {
	sdl.Quit()
	isInited = false
}

func setAttributes(opts *backend.WindowOptions) {

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, opts.GLMajor)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, opts.GLMinor)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	sdl.GLSetAttribute(sdl.GL_RED_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_GREEN_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_BLUE_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_ALPHA_SIZE, 8)

	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	depth, stencil := 0, 0
	if opts.Depth {
		depth = 24
	}
	if opts.Stencil {
		stencil = 8
	}
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, depth)
	sdl.GLSetAttribute(sdl.GL_STENCIL_SIZE, stencil)

	if opts.Srgb {
		sdl.GLSetAttribute(sdl.GL_FRAMEBUFFER_SRGB_CAPABLE, 1)
	}

	if opts.MSAA > 0 {
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 1)
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, opts.MSAA)
	}
}

// CreateOpenGLWindow opens a centered window and makes its context current
func CreateOpenGLWindow(opts backend.WindowOptions) (*Window, error) {

	if !isInited {
		return nil, ErrNotInited
	}

	setAttributes(&opts)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_ALLOW_HIGHDPI)
	if opts.Resizable {
		flags |= uint32(sdl.WINDOW_RESIZABLE)
	}

	sdlWin, err := sdl.CreateWindow(opts.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, int32(opts.Width), int32(opts.Height), flags)
	if err != nil {
		return nil, err
	}

	win := &Window{
		SDLWin:         sdlWin,
		EventCallbacks: make([]func(sdl.Event), 0),
	}

	win.GlCtx, err = sdlWin.GLCreateContext()
	if err != nil {
		return nil, errors.Join(err, sdlWin.Destroy())
	}
	win.current = true

	win.SetVSync(opts.VSync)
	return win, nil
}

func (w *Window) SwapBuffers() error {

	if w.lost {
		return backend.ErrContextLost
	}

	w.SDLWin.GLSwap()
	return nil
}

func (w *Window) GetProcAddress(name string) unsafe.Pointer {
	return sdl.GLGetProcAddress(name)
}

func (w *Window) FramebufferDimensions() (width, height uint32) {

	fbWidth, fbHeight := w.SDLWin.GLGetDrawableSize()
	if fbWidth <= 0 || fbHeight <= 0 {
		return 0, 0
	}

	return uint32(fbWidth), uint32(fbHeight)
}

func (w *Window) IsCurrent() bool {
	return w.current
}

func (w *Window) MakeCurrent() {

	if err := w.SDLWin.GLMakeCurrent(w.GlCtx); err != nil {
		logging.ErrLog.Println("sdlbackend: failed to make context current. Err:", err)
		w.lost = true
		return
	}

	w.current = true
}

func (w *Window) SetVSync(enabled bool) {

	interval := 0
	if enabled {
		interval = 1
	}

	if err := sdl.GLSetSwapInterval(interval); err != nil {
		logging.WarnLog.Println("sdlbackend: failed to set swap interval. Err:", err)
	}
}

// PollEvents drains the SDL event queue and fires the event callbacks
func (w *Window) PollEvents() {

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {

		for i := 0; i < len(w.EventCallbacks); i++ {
			w.EventCallbacks[i](event)
		}

		switch e := event.(type) {

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
				w.shouldClose = true
			}

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_CLOSE {
				w.shouldClose = true
			}

		case *sdl.QuitEvent:
			w.shouldClose = true
		}
	}
}

func (w *Window) ShouldClose() bool {
	return w.shouldClose
}

func (w *Window) Destroy() error {

	sdl.GLDeleteContext(w.GlCtx)
	w.current = false
	w.lost = true

	return w.SDLWin.Destroy()
}
