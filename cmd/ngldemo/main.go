// Command ngldemo opens a window and renders a textured quad through the
// ngl wrapper, drawing into an offscreen framebuffer first and then
// blitting it to the window.
package main

import (
	"errors"
	"os"
	"runtime"

	"github.com/bloeys/ngl/backend"
	"github.com/bloeys/ngl/backend/glfwbackend"
	"github.com/bloeys/ngl/backend/sdlbackend"
	"github.com/bloeys/ngl/logging"
	"github.com/faiface/mainthread"
	"github.com/urfave/cli/v2"
)

// window is what the render loop needs on top of backend.Backend
type window interface {
	backend.Backend
	PollEvents()
	ShouldClose() bool
	SetVSync(enabled bool)
	Destroy() error
}

func main() {

	app := &cli.App{
		Name:  "ngldemo",
		Usage: "render a textured quad through ngl",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "TOML config file"},
			&cli.StringFlag{Name: "backend", Usage: "window backend, 'sdl' or 'glfw'"},
			&cli.IntFlag{Name: "width", Usage: "window width"},
			&cli.IntFlag{Name: "height", Usage: "window height"},
			&cli.BoolFlag{Name: "vsync", Usage: "wait for vertical sync", Value: true},
			&cli.BoolFlag{Name: "debug", Usage: "enable GL debug output and state consistency checks"},
			&cli.StringFlag{Name: "texture", Usage: "image drawn on the quad"},
			&cli.StringFlag{Name: "model", Usage: "model drawn into the offscreen framebuffer"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logging.ErrLog.Fatalln("ngldemo failed. Err:", err)
	}
}

func configFromFlags(c *cli.Context) (DemoConfig, error) {

	cfg, err := LoadDemoConfig(c.String("config"))
	if err != nil {
		return cfg, err
	}

	if c.IsSet("backend") {
		cfg.Backend = c.String("backend")
	}
	if c.IsSet("width") {
		cfg.Window.Width = c.Int("width")
	}
	if c.IsSet("height") {
		cfg.Window.Height = c.Int("height")
	}
	if c.IsSet("vsync") {
		cfg.Window.VSync = c.Bool("vsync")
	}
	if c.Bool("debug") {
		cfg.GL.DebugOutput = true
		cfg.GL.CheckConsistency = true
	}
	if c.IsSet("texture") {
		cfg.Texture = c.String("texture")
	}
	if c.IsSet("model") {
		cfg.Model = c.String("model")
	}

	return cfg, cfg.Validate()
}

func run(c *cli.Context) error {

	cfg, err := configFromFlags(c)
	if err != nil {
		return err
	}

	if cfg.Backend == Backend_GLFW {
		return runGLFW(&cfg)
	}

	return runSDL(&cfg)
}

func runSDL(cfg *DemoConfig) error {

	// SDL owns the calling thread from here on
	err := sdlbackend.Init()
	if err != nil {
		return err
	}
	defer sdlbackend.Quit()

	win, err := sdlbackend.CreateOpenGLWindow(cfg.Window)
	if err != nil {
		return err
	}

	return errors.Join(renderLoop(win, cfg), win.Destroy())
}

func runGLFW(cfg *DemoConfig) (err error) {

	mainthread.Run(func() {

		if err = glfwbackend.Init(); err != nil {
			return
		}
		defer glfwbackend.Terminate()

		var win *glfwbackend.Window
		win, err = glfwbackend.CreateWindow(cfg.Window)
		if err != nil {
			return
		}

		// GL calls are made from this goroutine
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		win.MakeCurrent()
		win.SetVSync(cfg.Window.VSync)

		err = errors.Join(renderLoop(win, cfg), win.Destroy())
	})

	return err
}
