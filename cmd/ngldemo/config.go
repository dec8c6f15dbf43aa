package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/bloeys/ngl/backend"
	"github.com/bloeys/ngl/glcontext"
)

const (
	Backend_SDL  = "sdl"
	Backend_GLFW = "glfw"
)

type DemoConfig struct {
	Backend string                `toml:"backend"`
	Window  backend.WindowOptions `toml:"window"`
	GL      glcontext.Config      `toml:"gl"`

	// Texture is drawn on the quad. Empty uses a generated checkerboard.
	Texture string `toml:"texture"`
	// Model is an optional model file drawn into the offscreen framebuffer
	Model string `toml:"model"`
}

func DefaultDemoConfig() DemoConfig {
	return DemoConfig{
		Backend: Backend_SDL,
		Window:  backend.DefaultWindowOptions(),
		GL:      glcontext.DefaultConfig(),
	}
}

// LoadDemoConfig reads a TOML file over the defaults. Keys missing from the
// file keep their default value.
func LoadDemoConfig(path string) (DemoConfig, error) {

	cfg := DefaultDemoConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("ngldemo: failed to read config: %w", err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("ngldemo: failed to parse config '%s': %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("ngldemo: unknown config keys in '%s': %v", path, undecoded)
	}

	return cfg, cfg.Validate()
}

func (c *DemoConfig) Validate() error {

	if c.Backend != Backend_SDL && c.Backend != Backend_GLFW {
		return fmt.Errorf("ngldemo: unknown backend '%s', expected '%s' or '%s'", c.Backend, Backend_SDL, Backend_GLFW)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("ngldemo: invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}

	if c.Window.GLMajor < 3 || (c.Window.GLMajor == 3 && c.Window.GLMinor < 3) {
		return fmt.Errorf("ngldemo: OpenGL %d.%d requested, the demo needs 3.3 or newer", c.Window.GLMajor, c.Window.GLMinor)
	}

	if c.Window.MSAA < 0 {
		return fmt.Errorf("ngldemo: invalid msaa sample count %d", c.Window.MSAA)
	}

	return nil
}
