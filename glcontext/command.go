package glcontext

import (
	"github.com/bloeys/ngl/assert"
	"github.com/bloeys/ngl/gl"
)

// CommandContext is handed to the function passed to Context.Exec. All GL
// state changes go through it so the mirror stays in sync with the driver
// and redundant calls are skipped.
type CommandContext struct {
	GL    gl.Functions
	State *GLState
	Caps  *Capabilities

	ctx *Context
}

func (cc *CommandContext) Context() *Context {
	return cc.ctx
}

func (cc *CommandContext) Version() gl.Version {
	return cc.Caps.Version
}

func (cc *CommandContext) Extensions() *Extensions {
	return &cc.Caps.Extensions
}

// CheckOwner returns ErrContextMismatch if an object created by owner is
// being used with this context.
func (cc *CommandContext) CheckOwner(owner *Context) error {
	if owner != cc.ctx {
		return ErrContextMismatch
	}
	return nil
}

// SetEnabled enables or disables a capability, skipping the call if it is
// already in the requested state.
func (cc *CommandContext) SetEnabled(cap gl.Enum, enabled bool) {

	if cur, ok := cc.State.Enabled[cap]; ok && cur == enabled {
		return
	}

	if enabled {
		cc.GL.Enable(cap)
	} else {
		cc.GL.Disable(cap)
	}

	cc.State.Enabled[cap] = enabled
}

func (cc *CommandContext) Enable(cap gl.Enum) {
	cc.SetEnabled(cap, true)
}

func (cc *CommandContext) Disable(cap gl.Enum) {
	cc.SetEnabled(cap, false)
}

func (cc *CommandContext) IsEnabled(cap gl.Enum) bool {
	return cc.State.Enabled[cap]
}

func (cc *CommandContext) UseProgram(p uint32) {

	if cc.State.Program == p {
		return
	}

	cc.GL.UseProgram(p)
	cc.State.Program = p
}

func (cc *CommandContext) BindVertexArray(va uint32) {

	if cc.State.VertexArray == va {
		return
	}

	cc.GL.BindVertexArray(va)
	cc.State.VertexArray = va
}

// BindBuffer binds b to a non-indexed target. Binding to ELEMENT_ARRAY_BUFFER
// modifies the currently bound vertex array.
func (cc *CommandContext) BindBuffer(target gl.Enum, b uint32) {

	if target == gl.ELEMENT_ARRAY_BUFFER {

		if cur, ok := cc.State.elementBuffers[cc.State.VertexArray]; ok && cur == b {
			return
		}

		cc.GL.BindBuffer(target, b)
		cc.State.elementBuffers[cc.State.VertexArray] = b
		return
	}

	if cur, ok := cc.State.Buffers[target]; ok && cur == b {
		return
	}

	cc.GL.BindBuffer(target, b)
	cc.State.Buffers[target] = b
}

// BindBufferRange binds a range of b to an index of an indexed target.
// A size of 0 binds the whole buffer with BindBufferBase. Both forms also
// change the generic binding of target, which the mirror records.
func (cc *CommandContext) BindBufferRange(target gl.Enum, index uint32, b uint32, offset, size int) {

	bindings, ok := cc.State.Indexed[target]
	assert.T(ok, "buffer target 0x%X is not an indexed target supported by this context", target)
	assert.T(int(index) < len(bindings), "bind point %d of target 0x%X is out of range (max %d)", index, target, len(bindings))

	want := BufferBinding{Buffer: b, Offset: offset, Size: size}
	if bindings[index] == want {
		return
	}

	if size == 0 {
		cc.GL.BindBufferBase(target, index, b)
	} else {
		cc.GL.BindBufferRange(target, index, b, offset, size)
	}

	bindings[index] = want
	cc.State.Buffers[target] = b
}

func (cc *CommandContext) BindBufferBase(target gl.Enum, index uint32, b uint32) {
	cc.BindBufferRange(target, index, b, 0, 0)
}

// IndexedBinding returns what is bound at index of target
func (cc *CommandContext) IndexedBinding(target gl.Enum, index uint32) BufferBinding {

	bindings := cc.State.Indexed[target]
	if int(index) >= len(bindings) {
		return BufferBinding{}
	}

	return bindings[index]
}

// BindFramebuffer binds fb for drawing, reading or both (FRAMEBUFFER)
func (cc *CommandContext) BindFramebuffer(target gl.Enum, fb uint32) {

	// Without separate read/draw bindings everything goes through FRAMEBUFFER
	if !cc.Caps.SupportsBlitFramebuffer() {
		target = gl.FRAMEBUFFER
	}

	switch target {
	case gl.DRAW_FRAMEBUFFER:

		if cc.State.DrawFramebuffer == fb {
			return
		}
		cc.GL.BindFramebuffer(target, fb)
		cc.State.DrawFramebuffer = fb

	case gl.READ_FRAMEBUFFER:

		if cc.State.ReadFramebuffer == fb {
			return
		}
		cc.GL.BindFramebuffer(target, fb)
		cc.State.ReadFramebuffer = fb

	case gl.FRAMEBUFFER:

		if cc.State.DrawFramebuffer == fb && cc.State.ReadFramebuffer == fb {
			return
		}

		if cc.State.DrawFramebuffer == fb {
			cc.BindFramebuffer(gl.READ_FRAMEBUFFER, fb)
			return
		}

		if cc.State.ReadFramebuffer == fb && cc.Caps.SupportsBlitFramebuffer() {
			cc.BindFramebuffer(gl.DRAW_FRAMEBUFFER, fb)
			return
		}

		cc.GL.BindFramebuffer(gl.FRAMEBUFFER, fb)
		cc.State.DrawFramebuffer = fb
		cc.State.ReadFramebuffer = fb

	default:
		assert.T(false, "unknown framebuffer target 0x%X", target)
	}
}

func (cc *CommandContext) BindRenderbuffer(rb uint32) {

	if cc.State.Renderbuffer == rb {
		return
	}

	cc.GL.BindRenderbuffer(gl.RENDERBUFFER, rb)
	cc.State.Renderbuffer = rb
}

// ActiveTexture selects a texture unit by index (not TEXTURE0+index)
func (cc *CommandContext) ActiveTexture(unit uint32) {

	if cc.State.ActiveTexture == unit {
		return
	}

	cc.GL.ActiveTexture(gl.TEXTURE0 + unit)
	cc.State.ActiveTexture = unit
}

// BindTextureUnit binds t to target on the given unit
func (cc *CommandContext) BindTextureUnit(unit uint32, target gl.Enum, t uint32) {

	assert.T(int(unit) < len(cc.State.TextureUnits), "texture unit %d is out of range (max %d)", unit, len(cc.State.TextureUnits))

	u := &cc.State.TextureUnits[unit]
	if cur, ok := u.Textures[target]; ok && cur == t {
		return
	}

	cc.ActiveTexture(unit)
	cc.GL.BindTexture(target, t)
	u.Textures[target] = t
}

// BindTexture binds t on whatever unit is active. It is used for uploads
// and parameter changes where the unit does not matter.
func (cc *CommandContext) BindTexture(target gl.Enum, t uint32) {
	cc.BindTextureUnit(cc.State.ActiveTexture, target, t)
}

func (cc *CommandContext) BoundTexture(unit uint32, target gl.Enum) uint32 {

	if int(unit) >= len(cc.State.TextureUnits) {
		return 0
	}

	return cc.State.TextureUnits[unit].Textures[target]
}

func (cc *CommandContext) BindSampler(unit uint32, s uint32) {

	assert.T(int(unit) < len(cc.State.TextureUnits), "texture unit %d is out of range (max %d)", unit, len(cc.State.TextureUnits))

	u := &cc.State.TextureUnits[unit]
	if u.Sampler == s {
		return
	}

	cc.GL.BindSampler(unit, s)
	u.Sampler = s
}

func (cc *CommandContext) BeginQuery(target gl.Enum, q uint32) error {

	if cur, ok := cc.State.ActiveQueries[target]; ok && cur != 0 {
		if cur == q {
			return nil
		}
		return ErrQueryAlreadyActive
	}

	cc.GL.BeginQuery(target, q)
	cc.State.ActiveQueries[target] = q
	return nil
}

func (cc *CommandContext) EndQuery(target gl.Enum) {

	if cc.State.ActiveQueries[target] == 0 {
		return
	}

	cc.GL.EndQuery(target)
	delete(cc.State.ActiveQueries, target)
}

// EndAllQueries ends every running query. It runs before operations that
// must not be counted, like blits and clears.
func (cc *CommandContext) EndAllQueries() {
	for t := range cc.State.ActiveQueries {
		cc.EndQuery(t)
	}
}

func (cc *CommandContext) BeginTransformFeedback(mode gl.Enum) {

	if cc.State.TransformFeedbackActive {
		return
	}

	cc.GL.BeginTransformFeedback(mode)
	cc.State.TransformFeedbackActive = true
}

func (cc *CommandContext) EndTransformFeedback() {

	if !cc.State.TransformFeedbackActive {
		return
	}

	cc.GL.EndTransformFeedback()
	cc.State.TransformFeedbackActive = false
}
