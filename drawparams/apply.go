package drawparams

import (
	"github.com/bloeys/ngl/buffers"
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
)

// DrawInfo is what Apply needs to know about the draw itself
type DrawInfo struct {
	Primitive buffers.PrimitiveType
	// Indexed draws with an index buffer of IndexType
	Indexed   bool
	IndexType buffers.IndexType
}

// Apply validates p then pushes it through the state mirror. The program of
// the draw must already be in use. Every Apply must be followed by End once
// the draw is issued.
func Apply(cc *glcontext.CommandContext, p *DrawParameters, surf SurfaceInfo, draw DrawInfo) error {

	if err := p.Validate(cc.Caps, &surf); err != nil {
		return err
	}

	caps := cc.Caps
	desktop := caps.Version.Api == gl.ApiGL

	applyDepth(cc, &p.Depth)
	applyStencil(cc, &p.Stencil)
	applyBlend(cc, &p.Blend)

	cc.ColorMask(p.ColorMask[0], p.ColorMask[1], p.ColorMask[2], p.ColorMask[3])

	lw := p.LineWidth
	if lw == 0 {
		lw = 1
	}
	cc.LineWidth(lw)

	// ES vertex shaders always write gl_PointSize
	if desktop {
		cc.SetEnabled(gl.PROGRAM_POINT_SIZE, p.PointSize == 0)
		if p.PointSize > 0 {
			cc.PointSize(p.PointSize)
		}
	}

	switch p.BackfaceCulling {
	case BackfaceCulling_None:
		cc.Disable(gl.CULL_FACE)
	case BackfaceCulling_Clockwise:
		cc.Enable(gl.CULL_FACE)
		cc.FrontFace(gl.CCW)
		cc.CullFace(gl.BACK)
	case BackfaceCulling_CounterClockwise:
		cc.Enable(gl.CULL_FACE)
		cc.FrontFace(gl.CW)
		cc.CullFace(gl.BACK)
	}

	if caps.SupportsPolygonMode() {
		cc.PolygonMode(p.PolygonMode.ToGL())
	}

	po := &p.PolygonOffset
	if po.Fill || po.Line || po.Point {
		cc.PolygonOffset(po.Factor, po.Units)
	}
	cc.SetEnabled(gl.POLYGON_OFFSET_FILL, po.Fill)
	if desktop {
		cc.SetEnabled(gl.POLYGON_OFFSET_LINE, po.Line)
		cc.SetEnabled(gl.POLYGON_OFFSET_POINT, po.Point)
		cc.SetEnabled(gl.MULTISAMPLE, p.Multisampling)
	}

	cc.SetEnabled(gl.DITHER, p.Dithering)

	if p.Viewport != nil {
		cc.Viewport(p.Viewport.Left, p.Viewport.Bottom, p.Viewport.Width, p.Viewport.Height)
	} else {
		cc.Viewport(0, 0, surf.Width, surf.Height)
	}

	if p.Scissor != nil {
		cc.Enable(gl.SCISSOR_TEST)
		cc.Scissor(p.Scissor.Left, p.Scissor.Bottom, p.Scissor.Width, p.Scissor.Height)
	} else {
		cc.Disable(gl.SCISSOR_TEST)
	}

	if caps.SupportsProvokingVertex() {
		cc.ProvokingVertex(p.ProvokingVertex.ToGL())
	}

	applyPrimitiveRestart(cc, p.PrimitiveRestart && draw.Indexed, draw.IndexType)

	if desktop {
		cc.SetEnabled(gl.LINE_SMOOTH, p.Smooth != Smooth_None)
		cc.SetEnabled(gl.POLYGON_SMOOTH, p.Smooth != Smooth_None)
		if p.Smooth != Smooth_None {
			cc.Hint(gl.LINE_SMOOTH_HINT, p.Smooth.ToGL())
			cc.Hint(gl.POLYGON_SMOOTH_HINT, p.Smooth.ToGL())
		}
	}

	if caps.SupportsTransformFeedback() {
		cc.SetEnabled(gl.RASTERIZER_DISCARD, p.TransformFeedback != nil && p.TransformFeedback.RasterizerDiscard)
	}

	for _, q := range p.queries() {
		if err := q.begin(cc); err != nil {
			End(cc, p)
			return err
		}
	}

	if tf := p.TransformFeedback; tf != nil {

		if err := tf.Buffer.BindIndexed(cc, buffers.BufferType_TransformFeedback, 0, 0, 0); err != nil {
			End(cc, p)
			return err
		}

		cc.BeginTransformFeedback(feedbackPrimitive(draw.Primitive))
	}

	return nil
}

// End stops the queries and transform feedback Apply started
func End(cc *glcontext.CommandContext, p *DrawParameters) {

	if p.TransformFeedback != nil {
		cc.EndTransformFeedback()
	}

	for _, q := range p.queries() {
		q.end(cc)
	}
}

func (p *DrawParameters) queries() []*Query {

	var out []*Query
	for _, q := range [...]*Query{p.SamplesPassed, p.TimeElapsed, p.PrimitivesGenerated, p.PrimitivesWritten} {
		if q != nil {
			out = append(out, q)
		}
	}

	return out
}

func applyDepth(cc *glcontext.CommandContext, d *Depth) {

	// A disabled depth test also disables depth writes
	if !d.usesBuffer() {
		cc.Disable(gl.DEPTH_TEST)
	} else {
		cc.Enable(gl.DEPTH_TEST)
		cc.DepthFunc(d.Test.ToGL())
		cc.DepthMask(d.Write)
	}

	cc.DepthRange(d.Range[0], d.Range[1])

	if cc.Caps.SupportsDepthClamp() {
		cc.SetEnabled(gl.DEPTH_CLAMP, d.Clamp)
	}
}

func applyStencil(cc *glcontext.CommandContext, s *Stencil) {

	if !s.enabled() {
		cc.Disable(gl.STENCIL_TEST)
		return
	}

	cc.Enable(gl.STENCIL_TEST)
	for _, f := range [...]struct {
		face gl.Enum
		s    *StencilFace
	}{{gl.FRONT, &s.Front}, {gl.BACK, &s.Back}} {
		cc.StencilFunc(f.face, f.s.Test.ToGL(), f.s.Ref, f.s.ReadMask)
		cc.StencilOp(f.face, f.s.FailOp.ToGL(), f.s.DepthFailOp.ToGL(), f.s.PassOp.ToGL())
		cc.StencilMask(f.face, f.s.WriteMask)
	}
}

func applyBlend(cc *glcontext.CommandContext, b *Blend) {

	if !b.enabled() {
		cc.Disable(gl.BLEND)
		return
	}

	cc.Enable(gl.BLEND)
	cc.BlendEquation(b.Color.Equation.ToGL(), b.Alpha.Equation.ToGL())
	cc.BlendFunc(b.Color.Src.ToGL(), b.Color.Dst.ToGL(), b.Alpha.Src.ToGL(), b.Alpha.Dst.ToGL())
	cc.BlendColor(b.Constant[0], b.Constant[1], b.Constant[2], b.Constant[3])
}

// applyPrimitiveRestart prefers fixed index restart, which always uses the
// largest index value, over a configurable restart index
func applyPrimitiveRestart(cc *glcontext.CommandContext, enabled bool, typ buffers.IndexType) {

	caps := cc.Caps
	fixed := caps.SupportsFixedIndexRestart()
	configurable := caps.SupportsPrimitiveRestart()

	if !enabled {
		if fixed {
			cc.Disable(gl.PRIMITIVE_RESTART_FIXED_INDEX)
		}
		if configurable {
			cc.Disable(gl.PRIMITIVE_RESTART)
		}
		return
	}

	if fixed {
		cc.Enable(gl.PRIMITIVE_RESTART_FIXED_INDEX)
		if configurable {
			cc.Disable(gl.PRIMITIVE_RESTART)
		}
		return
	}

	cc.Enable(gl.PRIMITIVE_RESTART)
	cc.PrimitiveRestartIndex(typ.RestartIndex())
}

// feedbackPrimitive is the primitive transform feedback captures for a
// draw primitive
func feedbackPrimitive(p buffers.PrimitiveType) gl.Enum {

	switch p {
	case buffers.Primitive_Points:
		return gl.POINTS
	case buffers.Primitive_Lines, buffers.Primitive_LineLoop, buffers.Primitive_LineStrip,
		buffers.Primitive_LinesAdjacency, buffers.Primitive_LineStripAdjacency:
		return gl.LINES
	}

	return gl.TRIANGLES
}
