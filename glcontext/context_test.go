package glcontext_test

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/gltest"
	"github.com/bloeys/ngl/logging"
	"github.com/stretchr/testify/require"
)

func newContext(t *testing.T, cfg glcontext.Config, version string, exts ...string) (*glcontext.Context, *gltest.Functions, *gltest.Backend) {

	t.Helper()

	f := gltest.New(version, exts...)
	f.SetViewport(800, 600)
	b := gltest.NewBackend(800, 600)

	ctx, err := glcontext.New(b, f, cfg)
	require.NoError(t, err)

	f.Reset()
	return ctx, f, b
}

func consistentConfig() glcontext.Config {
	cfg := glcontext.DefaultConfig()
	cfg.CheckConsistency = true
	return cfg
}

func TestNewReadsCapabilities(t *testing.T) {

	ctx, _, _ := newContext(t, glcontext.DefaultConfig(), "4.6.0 NVIDIA 535.0", "GL_ARB_debug_output", "GL_EXT_unknown")

	caps := ctx.Capabilities()
	require.Equal(t, gl.Version{Api: gl.ApiGL, Major: 4, Minor: 6}, ctx.Version())
	require.Equal(t, glcontext.Profile_Core, caps.Profile)
	require.True(t, caps.Extensions.ARBDebugOutput)
	require.True(t, ctx.Extensions().Has("GL_EXT_unknown"))
	require.False(t, caps.Extensions.KHRDebug)

	require.True(t, caps.SupportsBufferStorage())
	require.True(t, caps.SupportsDSA())
	require.Equal(t, 32, caps.Limits.MaxCombinedTextureImageUnits)
	require.Equal(t, 16, caps.Limits.MaxUniformBufferBindings)
	require.Equal(t, float32(16), caps.Limits.MaxTextureMaxAnisotropy)
	require.Equal(t, [2]int{16384, 16384}, caps.Limits.MaxViewportDims)
}

func TestExtensionFallbackOnOldContexts(t *testing.T) {

	ctx, _, _ := newContext(t, glcontext.DefaultConfig(), "2.1 Mesa", "GL_ARB_vertex_array_object", "GL_ARB_framebuffer_object", "GL_ARB_sync")

	caps := ctx.Capabilities()
	require.True(t, caps.SupportsVertexArrayObject())
	require.True(t, caps.SupportsFramebufferObject())
	require.True(t, caps.SupportsSync())
	require.False(t, caps.SupportsBufferStorage())
	require.False(t, caps.SupportsUniformBuffers())
	require.Equal(t, glcontext.Profile_Compatibility, caps.Profile)
	require.Equal(t, 1, caps.Limits.MaxDrawBuffers)

	es, _, _ := newContext(t, glcontext.DefaultConfig(), "OpenGL ES 3.0 Mesa")
	require.True(t, es.Capabilities().SupportsFixedIndexRestart())
	require.False(t, es.Capabilities().SupportsPolygonMode())
	require.False(t, es.Capabilities().SupportsGetBufferSubData())
}

func TestParseExtensions(t *testing.T) {

	e := glcontext.ParseExtensions([]string{"GL_ARB_sync", " GL_KHR_debug ", "", "GL_EXT_texture_filter_anisotropic"})
	require.True(t, e.ARBSync)
	require.True(t, e.KHRDebug)
	require.True(t, e.EXTTextureFilterAnisotropic)
	require.False(t, e.ARBBufferStorage)
	require.Len(t, e.All, 3)
}

func TestRedundantBindsAreSkipped(t *testing.T) {

	ctx, f, _ := newContext(t, consistentConfig(), "4.6.0 Fake")

	err := ctx.Exec(func(cc *glcontext.CommandContext) error {

		cc.BindBuffer(gl.ARRAY_BUFFER, 5)
		cc.BindBuffer(gl.ARRAY_BUFFER, 5)
		cc.UseProgram(0)
		cc.Enable(gl.BLEND)
		cc.Enable(gl.BLEND)
		cc.Viewport(0, 0, 800, 600)
		cc.BindTextureUnit(3, gl.TEXTURE_2D, 9)
		cc.BindTextureUnit(3, gl.TEXTURE_2D, 9)
		cc.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ZERO)
		cc.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ZERO)
		return nil
	})
	require.NoError(t, err)

	require.Equal(t, []string{
		"BindBuffer",
		"Enable",
		"ActiveTexture",
		"BindTexture",
		"BlendFuncSeparate",
		// the consistency check walks every texture unit
		"ActiveTexture",
	}, f.Names()[:6])
	require.Equal(t, 1, f.Count("BindBuffer"))
	require.Equal(t, 0, f.Count("UseProgram"))
	require.Equal(t, 0, f.Count("Viewport"))
}

func TestDepthClearAndRangeEntryPoints(t *testing.T) {

	ctx, f, _ := newContext(t, consistentConfig(), "3.3.0 Fake")
	require.False(t, ctx.Capabilities().SupportsES2Compatibility())

	setDepth := func(ctx *glcontext.Context) {
		require.NoError(t, ctx.Exec(func(cc *glcontext.CommandContext) error {
			cc.ClearDepth(0.5)
			cc.DepthRange(0.25, 0.75)
			return nil
		}))
	}

	setDepth(ctx)
	require.Equal(t, []string{"ClearDepth", "DepthRange"}, f.Names())
	require.Equal(t, []any{0.5}, f.CallsNamed("ClearDepth")[0].Args)
	require.Equal(t, []any{0.25, 0.75}, f.CallsNamed("DepthRange")[0].Args)

	ctx, f, _ = newContext(t, consistentConfig(), "3.3.0 Fake", "GL_ARB_ES2_compatibility")
	setDepth(ctx)
	require.Equal(t, []string{"ClearDepthf", "DepthRangef"}, f.Names())

	ctx, f, _ = newContext(t, consistentConfig(), "4.6.0 Fake")
	setDepth(ctx)
	require.Equal(t, []string{"ClearDepthf", "DepthRangef"}, f.Names())
	require.Equal(t, []any{float32(0.5)}, f.CallsNamed("ClearDepthf")[0].Args)
}

func TestElementBufferIsPerVertexArray(t *testing.T) {

	ctx, f, _ := newContext(t, consistentConfig(), "4.6.0 Fake")

	err := ctx.Exec(func(cc *glcontext.CommandContext) error {

		cc.BindVertexArray(1)
		cc.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 7)
		cc.BindVertexArray(2)
		cc.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 7)
		cc.BindVertexArray(1)
		cc.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 7)

		require.Equal(t, uint32(7), cc.State.ElementArrayBuffer())
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 2, f.Count("BindBuffer"))
}

func TestIndexedBindings(t *testing.T) {

	ctx, f, _ := newContext(t, consistentConfig(), "4.6.0 Fake")

	err := ctx.Exec(func(cc *glcontext.CommandContext) error {

		cc.BindBufferRange(gl.UNIFORM_BUFFER, 2, 11, 256, 64)
		cc.BindBufferRange(gl.UNIFORM_BUFFER, 2, 11, 256, 64)
		cc.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 0, 12)

		require.Equal(t, glcontext.BufferBinding{Buffer: 11, Offset: 256, Size: 64}, cc.IndexedBinding(gl.UNIFORM_BUFFER, 2))
		require.Equal(t, uint32(11), cc.State.Buffers[gl.UNIFORM_BUFFER])
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, f.Count("BindBufferRange"))
	require.Equal(t, 1, f.Count("BindBufferBase"))
}

func TestDeleteResetsMirror(t *testing.T) {

	ctx, f, _ := newContext(t, consistentConfig(), "4.6.0 Fake")

	err := ctx.Exec(func(cc *glcontext.CommandContext) error {

		b := cc.GL.GenBuffer()
		tex := cc.GL.GenTexture()
		p := cc.GL.CreateProgram()

		cc.BindBuffer(gl.ARRAY_BUFFER, b)
		cc.BindBufferBase(gl.UNIFORM_BUFFER, 1, b)
		cc.BindTextureUnit(4, gl.TEXTURE_2D, tex)
		cc.UseProgram(p)

		cc.DeleteBuffer(b)
		cc.DeleteTexture(tex)
		cc.DeleteProgram(p)

		require.Zero(t, cc.State.Buffers[gl.ARRAY_BUFFER])
		require.Zero(t, cc.IndexedBinding(gl.UNIFORM_BUFFER, 1).Buffer)
		require.Zero(t, cc.BoundTexture(4, gl.TEXTURE_2D))
		require.Zero(t, cc.State.Program)
		return nil
	})
	require.NoError(t, err)

	require.Zero(t, f.Live("buffer"))
	require.Zero(t, f.Live("texture"))
	require.Zero(t, f.Live("program"))
}

func TestReleaseQueueIsDrainedOnExec(t *testing.T) {

	ctx, f, _ := newContext(t, glcontext.DefaultConfig(), "4.6.0 Fake")

	var b uint32
	require.NoError(t, ctx.Exec(func(cc *glcontext.CommandContext) error {
		b = cc.GL.GenBuffer()
		return nil
	}))

	done := make(chan struct{})
	go func() {
		ctx.Release(glcontext.ObjectKind_Buffer, b)
		ctx.Release(glcontext.ObjectKind_Buffer, 0)
		close(done)
	}()
	<-done

	require.Equal(t, 1, ctx.PendingReleases())
	require.True(t, f.IsLive("buffer", b))

	require.NoError(t, ctx.Exec(func(cc *glcontext.CommandContext) error { return nil }))
	require.Zero(t, ctx.PendingReleases())
	require.False(t, f.IsLive("buffer", b))
}

func TestExecIsNotReentrant(t *testing.T) {

	ctx, _, _ := newContext(t, glcontext.DefaultConfig(), "4.6.0 Fake")

	var inner error
	err := ctx.Exec(func(cc *glcontext.CommandContext) error {
		inner = ctx.Exec(func(cc *glcontext.CommandContext) error { return nil })
		return nil
	})

	require.NoError(t, err)
	require.ErrorIs(t, inner, glcontext.ErrContextBusy)
}

func TestExecMakesBackendCurrent(t *testing.T) {

	ctx, _, b := newContext(t, glcontext.DefaultConfig(), "4.6.0 Fake")

	b.Current = false
	require.NoError(t, ctx.Exec(func(cc *glcontext.CommandContext) error { return nil }))
	require.True(t, b.Current)
	require.Equal(t, 1, b.MakeCurrentCalls)
}

func TestConsistencyCheckCatchesRawCalls(t *testing.T) {

	ctx, _, _ := newContext(t, consistentConfig(), "4.6.0 Fake")

	err := ctx.Exec(func(cc *glcontext.CommandContext) error {
		cc.GL.Enable(gl.CULL_FACE)
		cc.GL.BindBuffer(gl.ARRAY_BUFFER, 3)
		return nil
	})

	require.ErrorIs(t, err, glcontext.ErrStateMismatch)
	require.Contains(t, err.Error(), "buffer(0x8892): mirror=0 driver=3")
}

func TestConsistencyCheckIsNotRecorded(t *testing.T) {

	ctx, f, _ := newContext(t, consistentConfig(), "4.6.0 Fake")

	require.NoError(t, ctx.Exec(func(cc *glcontext.CommandContext) error {
		cc.BindBuffer(gl.ARRAY_BUFFER, 3)
		return nil
	}))

	require.Equal(t, []string{"BindBuffer"}, f.Names())
	require.Zero(t, f.Count("ActiveTexture"))
	require.Zero(t, f.Count("GetInteger"))

	// Recording resumes after the check
	require.NoError(t, ctx.Exec(func(cc *glcontext.CommandContext) error {
		cc.ActiveTexture(2)
		return nil
	}))
	require.Equal(t, 1, f.Count("ActiveTexture"))
}

func TestExecUnsafeRequeriesState(t *testing.T) {

	ctx, f, _ := newContext(t, consistentConfig(), "4.6.0 Fake")

	require.NoError(t, ctx.ExecUnsafe(func(raw gl.Functions) {
		raw.Enable(gl.CULL_FACE)
		raw.DepthFunc(gl.LEQUAL)
		raw.BindBuffer(gl.ARRAY_BUFFER, 3)
	}))

	f.Reset()
	require.NoError(t, ctx.Exec(func(cc *glcontext.CommandContext) error {
		cc.Enable(gl.CULL_FACE)
		cc.DepthFunc(gl.LEQUAL)
		cc.BindBuffer(gl.ARRAY_BUFFER, 3)
		return nil
	}))

	require.Zero(t, f.Count("Enable"))
	require.Zero(t, f.Count("DepthFunc"))
	require.Zero(t, f.Count("BindBuffer"))
}

func TestFramebufferBindings(t *testing.T) {

	ctx, f, _ := newContext(t, consistentConfig(), "4.6.0 Fake")

	require.NoError(t, ctx.Exec(func(cc *glcontext.CommandContext) error {

		cc.BindFramebuffer(gl.FRAMEBUFFER, 4)
		cc.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 4)
		cc.BindFramebuffer(gl.READ_FRAMEBUFFER, 5)
		cc.BindFramebuffer(gl.FRAMEBUFFER, 5)

		require.Equal(t, uint32(5), cc.State.DrawFramebuffer)
		require.Equal(t, uint32(5), cc.State.ReadFramebuffer)
		return nil
	}))

	calls := f.CallsNamed("BindFramebuffer")
	require.Len(t, calls, 3)
	require.Equal(t, []any{gl.Enum(gl.DRAW_FRAMEBUFFER), uint32(5)}, calls[2].Args)
}

type bufferKey struct {
	buffer uint32
}

func (k bufferKey) UsesObject(kind glcontext.ObjectKind, name uint32) bool {
	return kind == glcontext.ObjectKind_Buffer && name == k.buffer
}

func TestObjectCacheEvictionDeletes(t *testing.T) {

	cfg := glcontext.DefaultConfig()
	cfg.VertexArrayCacheSize = 2
	ctx, f, _ := newContext(t, cfg, "4.6.0 Fake")

	require.NoError(t, ctx.Exec(func(cc *glcontext.CommandContext) error {

		cache := cc.VertexArrayCache()
		for i := uint32(1); i <= 3; i++ {
			va := cc.GL.GenVertexArray()
			cc.BindVertexArray(va)
			cache.Add(bufferKey{buffer: 100 + i}, va)
		}

		require.Equal(t, 2, cache.Len())
		require.Equal(t, 2, f.Live("vertex array"))

		_, ok := cache.Get(bufferKey{buffer: 101})
		require.False(t, ok)

		va, ok := cache.Get(bufferKey{buffer: 103})
		require.True(t, ok)
		require.Equal(t, va, cc.State.VertexArray)

		// deleting a buffer drops the vertex arrays built from it
		cc.DeleteBuffer(103)
		require.Equal(t, 1, cache.Len())
		require.Zero(t, cc.State.VertexArray)

		hits, misses := cache.Stats()
		require.Equal(t, uint64(1), hits)
		require.Equal(t, uint64(1), misses)
		return nil
	}))

	require.Equal(t, 1, f.Live("vertex array"))
	require.NoError(t, ctx.Close())
	require.Zero(t, f.Live("vertex array"))
}

func TestFences(t *testing.T) {

	ctx, f, _ := newContext(t, glcontext.DefaultConfig(), "4.6.0 Fake")

	require.NoError(t, ctx.Exec(func(cc *glcontext.CommandContext) error {

		s := cc.InsertFence()
		require.NotZero(t, s)
		require.NoError(t, cc.WaitFence(s, time.Millisecond))

		f.WaitResult = gl.TIMEOUT_EXPIRED
		require.ErrorIs(t, cc.WaitFence(s, time.Millisecond), glcontext.ErrFenceTimeout)
		require.ErrorIs(t, cc.WaitAndDeleteFence(s), glcontext.ErrFenceTimeout)
		require.Equal(t, 1, f.LiveSyncs())

		f.WaitResult = gl.CONDITION_SATISFIED
		require.NoError(t, cc.WaitAndDeleteFence(s))
		require.Zero(t, f.LiveSyncs())

		require.ErrorIs(t, cc.WaitFence(s, time.Millisecond), glcontext.ErrFenceWaitFailed)
		return nil
	}))

	// Without sync objects waiting falls back to Finish
	old, f2, _ := newContext(t, glcontext.DefaultConfig(), "2.1 Mesa")
	require.NoError(t, old.Exec(func(cc *glcontext.CommandContext) error {
		s := cc.InsertFence()
		require.Zero(t, s)
		return cc.WaitFence(s, time.Second)
	}))
	require.Equal(t, 1, f2.Count("Finish"))
}

func TestAssertNoError(t *testing.T) {

	ctx, f, _ := newContext(t, glcontext.DefaultConfig(), "4.6.0 Fake")
	require.NoError(t, ctx.AssertNoError())

	f.PendingErrors = []gl.Enum{gl.INVALID_ENUM, gl.OUT_OF_MEMORY}
	err := ctx.AssertNoError()

	var glErr *glcontext.GLError
	require.True(t, errors.As(err, &glErr))
	require.Equal(t, []gl.Enum{gl.INVALID_ENUM, gl.OUT_OF_MEMORY}, glErr.Codes)
	require.Contains(t, err.Error(), "GL_OUT_OF_MEMORY")
}

func TestDebugOutputIsLogged(t *testing.T) {

	var out bytes.Buffer
	logging.SetOutput(&out)
	t.Cleanup(func() { logging.SetOutput(os.Stderr) })

	cfg := glcontext.DefaultConfig()
	cfg.DebugOutput = true
	ctx, f, _ := newContext(t, cfg, "4.6.0 Fake")

	require.NoError(t, ctx.Exec(func(cc *glcontext.CommandContext) error {
		require.True(t, cc.IsEnabled(gl.DEBUG_OUTPUT))
		require.True(t, cc.IsEnabled(gl.DEBUG_OUTPUT_SYNCHRONOUS))
		return nil
	}))

	f.EmitDebug(gl.DEBUG_SOURCE_API, gl.DEBUG_TYPE_ERROR, 7, gl.DEBUG_SEVERITY_HIGH, "bad things")
	require.Contains(t, out.String(), "(err) ")
	require.Contains(t, out.String(), "source: api, type: error, id: 7): bad things")
}

func TestSwapBuffers(t *testing.T) {

	ctx, _, b := newContext(t, glcontext.DefaultConfig(), "4.6.0 Fake")

	require.NoError(t, ctx.SwapBuffers())
	require.Equal(t, 1, b.Swaps)

	w, h := ctx.FramebufferDimensions()
	require.Equal(t, uint32(800), w)
	require.Equal(t, uint32(600), h)
}

func TestQueries(t *testing.T) {

	ctx, f, _ := newContext(t, glcontext.DefaultConfig(), "4.6.0 Fake")

	require.NoError(t, ctx.Exec(func(cc *glcontext.CommandContext) error {

		require.NoError(t, cc.BeginQuery(gl.SAMPLES_PASSED, 3))
		require.NoError(t, cc.BeginQuery(gl.SAMPLES_PASSED, 3))
		require.ErrorIs(t, cc.BeginQuery(gl.SAMPLES_PASSED, 4), glcontext.ErrQueryAlreadyActive)

		cc.EndAllQueries()
		cc.EndQuery(gl.SAMPLES_PASSED)
		return nil
	}))

	require.Equal(t, 1, f.Count("BeginQuery"))
	require.Equal(t, 1, f.Count("EndQuery"))
}
