package glcontext

import "github.com/bloeys/ngl/gl"

func (cc *CommandContext) Viewport(x, y, width, height int) {

	v := [4]int{x, y, width, height}
	if cc.State.Viewport == v {
		return
	}

	cc.GL.Viewport(x, y, width, height)
	cc.State.Viewport = v
}

func (cc *CommandContext) Scissor(x, y, width, height int) {

	v := [4]int{x, y, width, height}
	if cc.State.Scissor == v {
		return
	}

	cc.GL.Scissor(x, y, width, height)
	cc.State.Scissor = v
}

func (cc *CommandContext) ClearColor(r, g, b, a float32) {

	v := [4]float32{r, g, b, a}
	if cc.State.ClearColor == v {
		return
	}

	cc.GL.ClearColor(r, g, b, a)
	cc.State.ClearColor = v
}

func (cc *CommandContext) ClearDepth(d float32) {

	if cc.State.ClearDepth == d {
		return
	}

	if cc.Caps.SupportsES2Compatibility() {
		cc.GL.ClearDepthf(d)
	} else {
		cc.GL.ClearDepth(float64(d))
	}
	cc.State.ClearDepth = d
}

func (cc *CommandContext) ClearStencil(s int) {

	if cc.State.ClearStencil == s {
		return
	}

	cc.GL.ClearStencil(s)
	cc.State.ClearStencil = s
}

func (cc *CommandContext) DepthFunc(fn gl.Enum) {

	if cc.State.DepthFunc == fn {
		return
	}

	cc.GL.DepthFunc(fn)
	cc.State.DepthFunc = fn
}

func (cc *CommandContext) DepthMask(mask bool) {

	if cc.State.DepthMask == mask {
		return
	}

	cc.GL.DepthMask(mask)
	cc.State.DepthMask = mask
}

func (cc *CommandContext) DepthRange(near, far float32) {

	v := [2]float32{near, far}
	if cc.State.DepthRange == v {
		return
	}

	if cc.Caps.SupportsES2Compatibility() {
		cc.GL.DepthRangef(near, far)
	} else {
		cc.GL.DepthRange(float64(near), float64(far))
	}
	cc.State.DepthRange = v
}

func (cc *CommandContext) ColorMask(r, g, b, a bool) {

	v := [4]bool{r, g, b, a}
	if cc.State.ColorMask == v {
		return
	}

	cc.GL.ColorMask(r, g, b, a)
	cc.State.ColorMask = v
}

func (cc *CommandContext) BlendEquation(modeRGB, modeAlpha gl.Enum) {

	if cc.State.BlendEquationRGB == modeRGB && cc.State.BlendEquationAlpha == modeAlpha {
		return
	}

	cc.GL.BlendEquationSeparate(modeRGB, modeAlpha)
	cc.State.BlendEquationRGB = modeRGB
	cc.State.BlendEquationAlpha = modeAlpha
}

func (cc *CommandContext) BlendFunc(srcRGB, dstRGB, srcAlpha, dstAlpha gl.Enum) {

	s := cc.State
	if s.BlendSrcRGB == srcRGB && s.BlendDstRGB == dstRGB && s.BlendSrcAlpha == srcAlpha && s.BlendDstAlpha == dstAlpha {
		return
	}

	cc.GL.BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha)
	s.BlendSrcRGB = srcRGB
	s.BlendDstRGB = dstRGB
	s.BlendSrcAlpha = srcAlpha
	s.BlendDstAlpha = dstAlpha
}

func (cc *CommandContext) BlendColor(r, g, b, a float32) {

	v := [4]float32{r, g, b, a}
	if cc.State.BlendColor == v {
		return
	}

	cc.GL.BlendColor(r, g, b, a)
	cc.State.BlendColor = v
}

// StencilFunc sets the test for one face. face is FRONT or BACK.
func (cc *CommandContext) StencilFunc(face gl.Enum, fn gl.Enum, ref int, mask uint32) {

	f := cc.stencilFace(face)
	if f.Func == fn && f.Ref == ref && f.ValueMask == mask {
		return
	}

	cc.GL.StencilFuncSeparate(face, fn, ref, mask)
	f.Func = fn
	f.Ref = ref
	f.ValueMask = mask
}

func (cc *CommandContext) StencilOp(face gl.Enum, sfail, dpfail, dppass gl.Enum) {

	f := cc.stencilFace(face)
	if f.Fail == sfail && f.PassDepthFail == dpfail && f.PassDepthPass == dppass {
		return
	}

	cc.GL.StencilOpSeparate(face, sfail, dpfail, dppass)
	f.Fail = sfail
	f.PassDepthFail = dpfail
	f.PassDepthPass = dppass
}

func (cc *CommandContext) StencilMask(face gl.Enum, mask uint32) {

	f := cc.stencilFace(face)
	if f.WriteMask == mask {
		return
	}

	cc.GL.StencilMaskSeparate(face, mask)
	f.WriteMask = mask
}

func (cc *CommandContext) stencilFace(face gl.Enum) *StencilFace {
	if face == gl.BACK {
		return &cc.State.StencilBack
	}
	return &cc.State.StencilFront
}

func (cc *CommandContext) CullFace(mode gl.Enum) {

	if cc.State.CullFace == mode {
		return
	}

	cc.GL.CullFace(mode)
	cc.State.CullFace = mode
}

func (cc *CommandContext) FrontFace(mode gl.Enum) {

	if cc.State.FrontFace == mode {
		return
	}

	cc.GL.FrontFace(mode)
	cc.State.FrontFace = mode
}

func (cc *CommandContext) PolygonMode(mode gl.Enum) {

	if cc.State.PolygonMode == mode {
		return
	}

	cc.GL.PolygonMode(gl.FRONT_AND_BACK, mode)
	cc.State.PolygonMode = mode
}

func (cc *CommandContext) PolygonOffset(factor, units float32) {

	v := [2]float32{factor, units}
	if cc.State.PolygonOffset == v {
		return
	}

	cc.GL.PolygonOffset(factor, units)
	cc.State.PolygonOffset = v
}

func (cc *CommandContext) LineWidth(w float32) {

	if cc.State.LineWidth == w {
		return
	}

	cc.GL.LineWidth(w)
	cc.State.LineWidth = w
}

func (cc *CommandContext) PointSize(size float32) {

	if cc.State.PointSize == size {
		return
	}

	cc.GL.PointSize(size)
	cc.State.PointSize = size
}

func (cc *CommandContext) ProvokingVertex(mode gl.Enum) {

	if cc.State.ProvokingVertex == mode {
		return
	}

	cc.GL.ProvokingVertex(mode)
	cc.State.ProvokingVertex = mode
}

func (cc *CommandContext) PrimitiveRestartIndex(index uint32) {

	if cc.State.PrimitiveRestartIndex == index {
		return
	}

	cc.GL.PrimitiveRestartIndex(index)
	cc.State.PrimitiveRestartIndex = index
}

func (cc *CommandContext) PatchVertices(n int) {

	if cc.State.PatchVertices == n {
		return
	}

	cc.GL.PatchParameteri(gl.PATCH_VERTICES, n)
	cc.State.PatchVertices = n
}

// PixelStore sets PACK_ALIGNMENT or UNPACK_ALIGNMENT
func (cc *CommandContext) PixelStore(pname gl.Enum, alignment int) {

	cur := &cc.State.UnpackAlignment
	if pname == gl.PACK_ALIGNMENT {
		cur = &cc.State.PackAlignment
	}

	if *cur == alignment {
		return
	}

	cc.GL.PixelStorei(pname, alignment)
	*cur = alignment
}

func (cc *CommandContext) Hint(target, mode gl.Enum) {

	if cur, ok := cc.State.Hints[target]; ok && cur == mode {
		return
	}

	cc.GL.Hint(target, mode)
	cc.State.Hints[target] = mode
}
