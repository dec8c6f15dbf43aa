package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {

	t.Helper()

	path := filepath.Join(t.TempDir(), "ngldemo.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadDemoConfig(t *testing.T) {

	cfg, err := LoadDemoConfig("")
	require.NoError(t, err)
	require.Equal(t, DefaultDemoConfig(), cfg)

	path := writeConfig(t, `
backend = "glfw"

[window]
width = 640
gl_minor = 6

[gl]
check_consistency = true
sync_timeout = "250ms"
`)

	cfg, err = LoadDemoConfig(path)
	require.NoError(t, err)
	require.Equal(t, Backend_GLFW, cfg.Backend)
	require.Equal(t, 640, cfg.Window.Width)
	require.Equal(t, 720, cfg.Window.Height)
	require.Equal(t, 4, cfg.Window.GLMajor)
	require.Equal(t, 6, cfg.Window.GLMinor)
	require.True(t, cfg.GL.CheckConsistency)
	require.Equal(t, 250*time.Millisecond, cfg.GL.SyncTimeout)
	require.Equal(t, 64, cfg.GL.SamplerCacheSize)
}

func TestLoadDemoConfigErrors(t *testing.T) {

	_, err := LoadDemoConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	_, err = LoadDemoConfig(writeConfig(t, `backend = "vulkan"`))
	require.ErrorContains(t, err, "unknown backend")

	_, err = LoadDemoConfig(writeConfig(t, "[window]\nheight = 0\n"))
	require.ErrorContains(t, err, "invalid window size")

	_, err = LoadDemoConfig(writeConfig(t, "[window]\ngl_major = 2\n"))
	require.ErrorContains(t, err, "needs 3.3")

	_, err = LoadDemoConfig(writeConfig(t, "colour = true\n"))
	require.ErrorContains(t, err, "unknown config keys")

	_, err = LoadDemoConfig(writeConfig(t, "backend = \n"))
	require.Error(t, err)
}

func TestSampleConfigLoads(t *testing.T) {

	cfg, err := LoadDemoConfig("ngldemo.toml")
	require.NoError(t, err)
	require.Equal(t, Backend_SDL, cfg.Backend)
	require.Equal(t, 4, cfg.Window.MSAA)
	require.True(t, cfg.GL.DebugOutput)
	require.Equal(t, time.Second, cfg.GL.SyncTimeout)
}

func TestCheckerboard(t *testing.T) {

	img := checkerboard(4, 2)
	require.NoError(t, img.Validate())

	pixel := func(x, y int) byte { return img.Data[(y*4+x)*4] }
	require.Equal(t, byte(220), pixel(0, 0))
	require.Equal(t, byte(220), pixel(1, 1))
	require.Equal(t, byte(60), pixel(2, 0))
	require.Equal(t, byte(60), pixel(0, 3))
	require.Equal(t, byte(220), pixel(3, 3))
}
