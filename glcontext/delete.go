package glcontext

// The Delete* methods remove an object from the driver and reset every
// mirror slot that referenced it, matching what the driver does with its
// own bindings. Cached objects built from the deleted one are dropped too.

func (cc *CommandContext) DeleteBuffer(b uint32) {

	if b == 0 {
		return
	}

	cc.ctx.vertexArrays.PurgeUsing(ObjectKind_Buffer, b)

	s := cc.State
	for t, cur := range s.Buffers {
		if cur == b {
			s.Buffers[t] = 0
		}
	}

	// The driver only detaches the buffer from the bound vertex array. Other
	// vertex arrays keep a reference we can no longer trust, so forget them.
	for va, cur := range s.elementBuffers {

		if cur != b {
			continue
		}

		if va == s.VertexArray {
			s.elementBuffers[va] = 0
		} else {
			delete(s.elementBuffers, va)
		}
	}

	for _, bindings := range s.Indexed {
		for i := range bindings {
			if bindings[i].Buffer == b {
				bindings[i] = BufferBinding{}
			}
		}
	}

	cc.GL.DeleteBuffer(b)
}

func (cc *CommandContext) DeleteTexture(t uint32) {

	if t == 0 {
		return
	}

	cc.ctx.framebuffers.PurgeUsing(ObjectKind_Texture, t)

	for i := range cc.State.TextureUnits {
		u := &cc.State.TextureUnits[i]
		for target, cur := range u.Textures {
			if cur == t {
				u.Textures[target] = 0
			}
		}
	}

	cc.GL.DeleteTexture(t)
}

// DeleteProgram unbinds p first if it is current, since the driver would
// otherwise keep it alive until another program is used.
func (cc *CommandContext) DeleteProgram(p uint32) {

	if p == 0 {
		return
	}

	cc.ctx.vertexArrays.PurgeUsing(ObjectKind_Program, p)

	if cc.State.Program == p {
		cc.UseProgram(0)
	}

	cc.GL.DeleteProgram(p)
}

func (cc *CommandContext) DeleteVertexArray(va uint32) {

	if va == 0 {
		return
	}

	// Removing from the cache deletes through the eviction callback
	if cc.ctx.vertexArrays.RemoveName(va) {
		return
	}
	cc.deleteVertexArray(va)
}

func (cc *CommandContext) deleteVertexArray(va uint32) {

	if cc.State.VertexArray == va {
		cc.State.VertexArray = 0
	}
	delete(cc.State.elementBuffers, va)

	cc.GL.DeleteVertexArray(va)
}

func (cc *CommandContext) DeleteFramebuffer(fb uint32) {

	if fb == 0 {
		return
	}

	if cc.ctx.framebuffers.RemoveName(fb) {
		return
	}
	cc.deleteFramebuffer(fb)
}

func (cc *CommandContext) deleteFramebuffer(fb uint32) {

	if cc.State.DrawFramebuffer == fb {
		cc.State.DrawFramebuffer = 0
	}
	if cc.State.ReadFramebuffer == fb {
		cc.State.ReadFramebuffer = 0
	}

	cc.GL.DeleteFramebuffer(fb)
}

func (cc *CommandContext) DeleteRenderbuffer(rb uint32) {

	if rb == 0 {
		return
	}

	cc.ctx.framebuffers.PurgeUsing(ObjectKind_Renderbuffer, rb)

	if cc.State.Renderbuffer == rb {
		cc.State.Renderbuffer = 0
	}

	cc.GL.DeleteRenderbuffer(rb)
}

func (cc *CommandContext) DeleteSampler(s uint32) {

	if s == 0 {
		return
	}

	if cc.ctx.samplers.RemoveName(s) {
		return
	}
	cc.deleteSampler(s)
}

func (cc *CommandContext) deleteSampler(s uint32) {

	for i := range cc.State.TextureUnits {
		if cc.State.TextureUnits[i].Sampler == s {
			cc.State.TextureUnits[i].Sampler = 0
		}
	}

	cc.GL.DeleteSampler(s)
}

func (cc *CommandContext) DeleteQuery(q uint32) {

	if q == 0 {
		return
	}

	for t, cur := range cc.State.ActiveQueries {
		if cur == q {
			cc.EndQuery(t)
		}
	}

	cc.GL.DeleteQuery(q)
}
