package gltest

import (
	"testing"

	"github.com/bloeys/ngl/glcontext"
	"github.com/stretchr/testify/require"
)

// NewContext creates a context over a fresh fake driver with an 800x600
// backend. The calls made during creation are forgotten.
func NewContext(t testing.TB, version string, exts ...string) (*glcontext.Context, *Functions) {

	t.Helper()

	cfg := glcontext.DefaultConfig()
	cfg.CheckConsistency = true
	return NewContextWithConfig(t, cfg, version, exts...)
}

func NewContextWithConfig(t testing.TB, cfg glcontext.Config, version string, exts ...string) (*glcontext.Context, *Functions) {

	t.Helper()

	f := New(version, exts...)
	f.SetViewport(800, 600)

	ctx, err := glcontext.New(NewBackend(800, 600), f, cfg)
	require.NoError(t, err)

	f.Reset()
	return ctx, f
}

// Exec runs fn on the context and fails the test on error
func Exec(t testing.TB, ctx *glcontext.Context, fn func(cc *glcontext.CommandContext) error) {

	t.Helper()
	require.NoError(t, ctx.Exec(fn))
}
