package glcontext

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bloeys/ngl/backend"
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/logging"
)

var (
	ErrContextBusy        = errors.New("glcontext: context is already executing commands")
	ErrContextMismatch    = errors.New("glcontext: object belongs to a different context")
	ErrDeleted            = errors.New("glcontext: object was deleted")
	ErrStateMismatch      = errors.New("glcontext: state mirror does not match the driver")
	ErrQueryAlreadyActive = errors.New("glcontext: another query is already active on this target")
	ErrObjectCreation     = errors.New("glcontext: driver failed to create object")
)

// maxErrors bounds the GetError loop, since a lost context can report
// CONTEXT_LOST forever.
const maxErrors = 32

// GLError holds the error codes returned by GetError
type GLError struct {
	Codes []gl.Enum
}

func (e *GLError) Error() string {

	names := make([]string, len(e.Codes))
	for i, c := range e.Codes {
		names[i] = gl.ErrorString(c)
	}

	return "glcontext: driver reported errors: " + strings.Join(names, ", ")
}

type Config struct {
	DebugOutput      bool `toml:"debug_output"`
	CheckConsistency bool `toml:"check_consistency"`

	SamplerCacheSize     int `toml:"sampler_cache_size"`
	VertexArrayCacheSize int `toml:"vertex_array_cache_size"`
	FramebufferCacheSize int `toml:"framebuffer_cache_size"`

	// SyncTimeout is how long CPU access to a buffer waits for the GPU.
	// A negative value waits forever.
	SyncTimeout time.Duration `toml:"sync_timeout"`
}

func DefaultConfig() Config {
	return Config{
		SamplerCacheSize:     64,
		VertexArrayCacheSize: 256,
		FramebufferCacheSize: 32,
		SyncTimeout:          time.Second,
	}
}

var nextContextId atomic.Uint64

type Context struct {
	id      uint64
	backend backend.Backend
	gl      gl.Functions
	cfg     Config
	caps    *Capabilities
	state   GLState
	cmd     CommandContext

	// mu is held for the duration of Exec
	mu sync.Mutex

	releaseMu sync.Mutex
	releases  []pendingRelease

	samplers     *ObjectCache
	vertexArrays *ObjectCache
	framebuffers *ObjectCache
}

// New wraps the GL context of b. It reads the version, extensions and limits
// and initialises the state mirror from the driver.
func New(b backend.Backend, f gl.Functions, cfg Config) (*Context, error) {

	def := DefaultConfig()
	if cfg.SamplerCacheSize <= 0 {
		cfg.SamplerCacheSize = def.SamplerCacheSize
	}
	if cfg.VertexArrayCacheSize <= 0 {
		cfg.VertexArrayCacheSize = def.VertexArrayCacheSize
	}
	if cfg.FramebufferCacheSize <= 0 {
		cfg.FramebufferCacheSize = def.FramebufferCacheSize
	}

	if !b.IsCurrent() {
		b.MakeCurrent()
	}

	caps, err := queryCapabilities(f)
	if err != nil {
		return nil, fmt.Errorf("glcontext: failed to read capabilities: %w", err)
	}

	c := &Context{
		id:      nextContextId.Add(1),
		backend: b,
		gl:      f,
		cfg:     cfg,
		caps:    caps,
	}
	c.state = c.readState()
	c.cmd = CommandContext{GL: f, State: &c.state, Caps: caps, ctx: c}

	c.samplers, err = newObjectCache(ObjectKind_Sampler, cfg.SamplerCacheSize, c.cmd.deleteSampler)
	if err != nil {
		return nil, err
	}

	c.vertexArrays, err = newObjectCache(ObjectKind_VertexArray, cfg.VertexArrayCacheSize, c.cmd.deleteVertexArray)
	if err != nil {
		return nil, err
	}

	c.framebuffers, err = newObjectCache(ObjectKind_Framebuffer, cfg.FramebufferCacheSize, c.cmd.deleteFramebuffer)
	if err != nil {
		return nil, err
	}

	if cfg.DebugOutput {
		c.cmd.enableDebugOutput()
	}

	logging.InfoLog.Printf("Created context: %s (GLSL %s), renderer: %s, vendor: %s, profile: %s\n",
		caps.Version, caps.GLSLVersion, caps.Renderer, caps.Vendor, caps.Profile)

	return c, nil
}

// Id is unique per context for the lifetime of the process
func (c *Context) Id() uint64 {
	return c.id
}

func (c *Context) Config() Config {
	return c.cfg
}

func (c *Context) Capabilities() *Capabilities {
	return c.caps
}

func (c *Context) Extensions() *Extensions {
	return &c.caps.Extensions
}

func (c *Context) Version() gl.Version {
	return c.caps.Version
}

func (c *Context) Backend() backend.Backend {
	return c.backend
}

// Exec runs fn with exclusive access to the context. Calling Exec from
// inside fn, or from another goroutine while fn runs, fails with
// ErrContextBusy instead of blocking.
func (c *Context) Exec(fn func(cc *CommandContext) error) error {

	if !c.mu.TryLock() {
		return ErrContextBusy
	}
	defer c.mu.Unlock()

	if !c.backend.IsCurrent() {
		c.backend.MakeCurrent()
	}

	c.drainReleases()

	err := fn(&c.cmd)

	if c.cfg.CheckConsistency {
		if cerr := c.checkConsistency(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}

	return err
}

// ExecUnsafe runs raw GL calls that bypass the mirror. The mirror is read
// back from the driver afterwards.
func (c *Context) ExecUnsafe(fn func(f gl.Functions)) error {

	if !c.mu.TryLock() {
		return ErrContextBusy
	}
	defer c.mu.Unlock()

	if !c.backend.IsCurrent() {
		c.backend.MakeCurrent()
	}

	fn(c.gl)

	// Running queries and transform feedback can not be queried
	queries := c.state.ActiveQueries
	tf := c.state.TransformFeedbackActive

	c.state = c.readState()
	c.state.ActiveQueries = queries
	c.state.TransformFeedbackActive = tf

	return nil
}

// stateReader is implemented by gl.Functions that record commands and want
// the state read-back left out of the recording
type stateReader interface {
	BeginStateRead()
	EndStateRead()
}

func (c *Context) readState() GLState {

	if r, ok := c.gl.(stateReader); ok {
		r.BeginStateRead()
		defer r.EndStateRead()
	}

	return queryState(c.gl, c.caps)
}

func (c *Context) checkConsistency() error {

	driver := c.readState()
	diffs := c.state.diff(&driver)
	if len(diffs) == 0 {
		return nil
	}

	return fmt.Errorf("%w:\n\t%s", ErrStateMismatch, strings.Join(diffs, "\n\t"))
}

// CheckError drains GetError and returns a *GLError if anything was reported
func (cc *CommandContext) CheckError() error {

	var codes []gl.Enum
	for i := 0; i < maxErrors; i++ {

		e := cc.GL.GetError()
		if e == gl.NO_ERROR {
			break
		}

		codes = append(codes, e)
	}

	if len(codes) == 0 {
		return nil
	}

	return &GLError{Codes: codes}
}

// AssertNoError returns an error if the driver has recorded any errors
func (c *Context) AssertNoError() error {
	return c.Exec(func(cc *CommandContext) error {
		return cc.CheckError()
	})
}

func (c *Context) Flush() error {
	return c.Exec(func(cc *CommandContext) error {
		cc.GL.Flush()
		return nil
	})
}

// Finish blocks until the GPU has executed all commands
func (c *Context) Finish() error {
	return c.Exec(func(cc *CommandContext) error {
		cc.GL.Finish()
		return nil
	})
}

func (c *Context) SwapBuffers() error {
	return c.Exec(func(cc *CommandContext) error {
		return c.backend.SwapBuffers()
	})
}

func (c *Context) FramebufferDimensions() (width, height uint32) {
	return c.backend.FramebufferDimensions()
}

// Close deletes every cached object and everything waiting in the release
// queue. Objects still owned by the user are not touched.
func (c *Context) Close() error {
	return c.Exec(func(cc *CommandContext) error {
		c.samplers.Purge()
		c.vertexArrays.Purge()
		c.framebuffers.Purge()
		return nil
	})
}

func (cc *CommandContext) SamplerCache() *ObjectCache {
	return cc.ctx.samplers
}

func (cc *CommandContext) VertexArrayCache() *ObjectCache {
	return cc.ctx.vertexArrays
}

func (cc *CommandContext) FramebufferCache() *ObjectCache {
	return cc.ctx.framebuffers
}

func (cc *CommandContext) Config() Config {
	return cc.ctx.cfg
}
