package glcontext

import (
	"fmt"
	"sort"

	"github.com/bloeys/ngl/gl"
)

// BufferBinding is what is bound at one index of an indexed buffer target
// (uniform, shader storage, atomic counter, transform feedback).
// Size 0 means the whole buffer was bound with BindBufferBase.
type BufferBinding struct {
	Buffer uint32
	Offset int
	Size   int
}

type TextureUnit struct {
	// Textures maps a texture target to the texture bound to it on this unit
	Textures map[gl.Enum]uint32
	Sampler  uint32
}

type StencilFace struct {
	Func          gl.Enum
	Ref           int
	ValueMask     uint32
	WriteMask     uint32
	Fail          gl.Enum
	PassDepthFail gl.Enum
	PassDepthPass gl.Enum
}

// GLState mirrors the driver state the wrapper touches. It is only ever
// modified through CommandContext so that it matches the driver at all times.
type GLState struct {
	Enabled map[gl.Enum]bool

	Program     uint32
	VertexArray uint32

	// Buffers holds non-indexed buffer bindings. ELEMENT_ARRAY_BUFFER is
	// vertex array state and is tracked in elementBuffers instead.
	Buffers        map[gl.Enum]uint32
	elementBuffers map[uint32]uint32
	Indexed        map[gl.Enum][]BufferBinding

	DrawFramebuffer uint32
	ReadFramebuffer uint32
	Renderbuffer    uint32

	ActiveTexture uint32
	TextureUnits  []TextureUnit

	ClearColor   [4]float32
	ClearDepth   float32
	ClearStencil int

	Viewport [4]int
	Scissor  [4]int

	DepthFunc  gl.Enum
	DepthMask  bool
	DepthRange [2]float32
	ColorMask  [4]bool

	BlendEquationRGB   gl.Enum
	BlendEquationAlpha gl.Enum
	BlendSrcRGB        gl.Enum
	BlendDstRGB        gl.Enum
	BlendSrcAlpha      gl.Enum
	BlendDstAlpha      gl.Enum
	BlendColor         [4]float32

	StencilFront StencilFace
	StencilBack  StencilFace

	CullFace              gl.Enum
	FrontFace             gl.Enum
	PolygonMode           gl.Enum
	PolygonOffset         [2]float32
	LineWidth             float32
	PointSize             float32
	ProvokingVertex       gl.Enum
	PrimitiveRestartIndex uint32
	PatchVertices         int

	PackAlignment   int
	UnpackAlignment int

	Hints map[gl.Enum]gl.Enum

	// ActiveQueries maps a query target to the running query
	ActiveQueries           map[gl.Enum]uint32
	TransformFeedbackActive bool
}

// ElementArrayBuffer is the index buffer of the bound vertex array
func (s *GLState) ElementArrayBuffer() uint32 {
	return s.elementBuffers[s.VertexArray]
}

var bufferBindingQueries = map[gl.Enum]gl.Enum{
	gl.ARRAY_BUFFER:              gl.ARRAY_BUFFER_BINDING,
	gl.PIXEL_PACK_BUFFER:         gl.PIXEL_PACK_BUFFER_BINDING,
	gl.PIXEL_UNPACK_BUFFER:       gl.PIXEL_UNPACK_BUFFER_BINDING,
	gl.UNIFORM_BUFFER:            gl.UNIFORM_BUFFER_BINDING,
	gl.COPY_READ_BUFFER:          gl.COPY_READ_BUFFER_BINDING,
	gl.COPY_WRITE_BUFFER:         gl.COPY_WRITE_BUFFER_BINDING,
	gl.TEXTURE_BUFFER:            gl.TEXTURE_BUFFER_BINDING,
	gl.SHADER_STORAGE_BUFFER:     gl.SHADER_STORAGE_BUFFER_BINDING,
	gl.DRAW_INDIRECT_BUFFER:      gl.DRAW_INDIRECT_BUFFER_BINDING,
	gl.DISPATCH_INDIRECT_BUFFER:  gl.DISPATCH_INDIRECT_BUFFER_BINDING,
	gl.QUERY_BUFFER:              gl.QUERY_BUFFER_BINDING,
	gl.ATOMIC_COUNTER_BUFFER:     gl.ATOMIC_COUNTER_BUFFER_BINDING,
	gl.TRANSFORM_FEEDBACK_BUFFER: gl.TRANSFORM_FEEDBACK_BUFFER_BINDING,
}

// indexedBindingQueries holds the binding, start and size queries of each indexed target
var indexedBindingQueries = map[gl.Enum][3]gl.Enum{
	gl.UNIFORM_BUFFER:            {gl.UNIFORM_BUFFER_BINDING, gl.UNIFORM_BUFFER_START, gl.UNIFORM_BUFFER_SIZE},
	gl.SHADER_STORAGE_BUFFER:     {gl.SHADER_STORAGE_BUFFER_BINDING, gl.SHADER_STORAGE_BUFFER_START, gl.SHADER_STORAGE_BUFFER_SIZE},
	gl.ATOMIC_COUNTER_BUFFER:     {gl.ATOMIC_COUNTER_BUFFER_BINDING, gl.ATOMIC_COUNTER_BUFFER_START, gl.ATOMIC_COUNTER_BUFFER_SIZE},
	gl.TRANSFORM_FEEDBACK_BUFFER: {gl.TRANSFORM_FEEDBACK_BUFFER_BINDING, gl.TRANSFORM_FEEDBACK_BUFFER_START, gl.TRANSFORM_FEEDBACK_BUFFER_SIZE},
}

var textureBindingQueries = map[gl.Enum]gl.Enum{
	gl.TEXTURE_1D:                   gl.TEXTURE_BINDING_1D,
	gl.TEXTURE_2D:                   gl.TEXTURE_BINDING_2D,
	gl.TEXTURE_3D:                   gl.TEXTURE_BINDING_3D,
	gl.TEXTURE_RECTANGLE:            gl.TEXTURE_BINDING_RECTANGLE,
	gl.TEXTURE_CUBE_MAP:             gl.TEXTURE_BINDING_CUBE_MAP,
	gl.TEXTURE_1D_ARRAY:             gl.TEXTURE_BINDING_1D_ARRAY,
	gl.TEXTURE_2D_ARRAY:             gl.TEXTURE_BINDING_2D_ARRAY,
	gl.TEXTURE_CUBE_MAP_ARRAY:       gl.TEXTURE_BINDING_CUBE_MAP_ARRAY,
	gl.TEXTURE_2D_MULTISAMPLE:       gl.TEXTURE_BINDING_2D_MULTISAMPLE,
	gl.TEXTURE_2D_MULTISAMPLE_ARRAY: gl.TEXTURE_BINDING_2D_MULTISAMPLE_ARRAY,
	gl.TEXTURE_BUFFER:               gl.TEXTURE_BINDING_BUFFER,
}

func supportedBufferTargets(c *Capabilities) []gl.Enum {

	targets := []gl.Enum{gl.ARRAY_BUFFER}

	if c.desktop(2, 1) || c.es(3, 0) {
		targets = append(targets, gl.PIXEL_PACK_BUFFER, gl.PIXEL_UNPACK_BUFFER)
	}
	if c.SupportsUniformBuffers() {
		targets = append(targets, gl.UNIFORM_BUFFER)
	}
	if c.SupportsCopyBuffer() {
		targets = append(targets, gl.COPY_READ_BUFFER, gl.COPY_WRITE_BUFFER)
	}
	if c.SupportsBufferTextures() {
		targets = append(targets, gl.TEXTURE_BUFFER)
	}
	if c.SupportsShaderStorage() {
		targets = append(targets, gl.SHADER_STORAGE_BUFFER, gl.ATOMIC_COUNTER_BUFFER)
	}
	if c.desktop(4, 0) || c.es(3, 1) {
		targets = append(targets, gl.DRAW_INDIRECT_BUFFER)
	}
	if c.SupportsComputeShaders() {
		targets = append(targets, gl.DISPATCH_INDIRECT_BUFFER)
	}
	if c.desktop(4, 4) {
		targets = append(targets, gl.QUERY_BUFFER)
	}
	if c.SupportsTransformFeedback() {
		targets = append(targets, gl.TRANSFORM_FEEDBACK_BUFFER)
	}

	return targets
}

func supportedIndexedTargets(c *Capabilities) map[gl.Enum]int {

	m := map[gl.Enum]int{}

	if c.SupportsUniformBuffers() {
		m[gl.UNIFORM_BUFFER] = c.Limits.MaxUniformBufferBindings
	}
	if c.SupportsShaderStorage() {
		m[gl.SHADER_STORAGE_BUFFER] = c.Limits.MaxShaderStorageBufferBindings
		m[gl.ATOMIC_COUNTER_BUFFER] = c.Limits.MaxAtomicCounterBufferBindings
	}
	if c.SupportsTransformFeedback() {
		m[gl.TRANSFORM_FEEDBACK_BUFFER] = c.Limits.MaxTransformFeedbackBuffers
	}

	return m
}

func supportedTextureTargets(c *Capabilities) []gl.Enum {

	targets := []gl.Enum{gl.TEXTURE_2D, gl.TEXTURE_CUBE_MAP}

	if c.Version.Api == gl.ApiGL {
		targets = append(targets, gl.TEXTURE_1D)
	}
	if c.desktop(1, 2) || c.es(3, 0) {
		targets = append(targets, gl.TEXTURE_3D)
	}
	if c.desktop(3, 0) {
		targets = append(targets, gl.TEXTURE_1D_ARRAY)
	}
	if c.desktop(3, 0) || c.es(3, 0) {
		targets = append(targets, gl.TEXTURE_2D_ARRAY)
	}
	if c.desktop(3, 1) {
		targets = append(targets, gl.TEXTURE_RECTANGLE)
	}
	if c.SupportsCubeMapArrays() {
		targets = append(targets, gl.TEXTURE_CUBE_MAP_ARRAY)
	}
	if c.SupportsMultisampleTextures() {
		targets = append(targets, gl.TEXTURE_2D_MULTISAMPLE, gl.TEXTURE_2D_MULTISAMPLE_ARRAY)
	}
	if c.SupportsBufferTextures() {
		targets = append(targets, gl.TEXTURE_BUFFER)
	}

	return targets
}

func trackedCapabilities(c *Capabilities) []gl.Enum {

	caps := []gl.Enum{
		gl.BLEND, gl.CULL_FACE, gl.DEPTH_TEST, gl.STENCIL_TEST, gl.SCISSOR_TEST,
		gl.DITHER, gl.POLYGON_OFFSET_FILL, gl.SAMPLE_ALPHA_TO_COVERAGE,
	}

	if c.Version.Api == gl.ApiGL {
		caps = append(caps, gl.MULTISAMPLE, gl.POLYGON_OFFSET_LINE, gl.POLYGON_OFFSET_POINT,
			gl.PROGRAM_POINT_SIZE, gl.LINE_SMOOTH, gl.POLYGON_SMOOTH)
	}
	if c.SupportsFramebufferSRGB() {
		caps = append(caps, gl.FRAMEBUFFER_SRGB)
	}
	if c.SupportsDepthClamp() {
		caps = append(caps, gl.DEPTH_CLAMP)
	}
	if c.SupportsTransformFeedback() {
		caps = append(caps, gl.RASTERIZER_DISCARD)
	}
	if c.SupportsPrimitiveRestart() {
		caps = append(caps, gl.PRIMITIVE_RESTART)
	}
	if c.SupportsFixedIndexRestart() {
		caps = append(caps, gl.PRIMITIVE_RESTART_FIXED_INDEX)
	}
	if c.SupportsSeamlessCubemap() {
		caps = append(caps, gl.TEXTURE_CUBE_MAP_SEAMLESS)
	}
	if c.SupportsDebugOutput() {
		caps = append(caps, gl.DEBUG_OUTPUT, gl.DEBUG_OUTPUT_SYNCHRONOUS)
	}

	return caps
}

// trackedUnits is how many texture units the mirror follows
func trackedUnits(c *Capabilities) int {
	return c.Limits.MaxCombinedTextureImageUnits
}

// queryState reads the whole mirrored state back from the driver. It is used
// when the context is created and after raw GL code ran.
func queryState(f gl.Functions, c *Capabilities) GLState {

	s := GLState{
		Enabled:        map[gl.Enum]bool{},
		Buffers:        map[gl.Enum]uint32{},
		elementBuffers: map[uint32]uint32{},
		Indexed:        map[gl.Enum][]BufferBinding{},
		Hints:          map[gl.Enum]gl.Enum{},
		ActiveQueries:  map[gl.Enum]uint32{},
	}

	for _, cp := range trackedCapabilities(c) {
		s.Enabled[cp] = f.IsEnabled(cp)
	}

	s.Program = uint32(f.GetInteger(gl.CURRENT_PROGRAM))
	if c.SupportsVertexArrayObject() {
		s.VertexArray = uint32(f.GetInteger(gl.VERTEX_ARRAY_BINDING))
	}
	s.elementBuffers[s.VertexArray] = uint32(f.GetInteger(gl.ELEMENT_ARRAY_BUFFER_BINDING))

	for _, t := range supportedBufferTargets(c) {
		s.Buffers[t] = uint32(f.GetInteger(bufferBindingQueries[t]))
	}

	for t, count := range supportedIndexedTargets(c) {

		q := indexedBindingQueries[t]
		bindings := make([]BufferBinding, count)
		for i := range bindings {
			bindings[i] = BufferBinding{
				Buffer: uint32(f.GetIntegeri(q[0], uint32(i))),
				Offset: f.GetIntegeri(q[1], uint32(i)),
				Size:   f.GetIntegeri(q[2], uint32(i)),
			}
		}
		s.Indexed[t] = bindings
	}

	// DRAW_FRAMEBUFFER_BINDING has the value of the older FRAMEBUFFER_BINDING
	s.DrawFramebuffer = uint32(f.GetInteger(gl.DRAW_FRAMEBUFFER_BINDING))
	s.ReadFramebuffer = s.DrawFramebuffer
	if c.SupportsBlitFramebuffer() {
		s.ReadFramebuffer = uint32(f.GetInteger(gl.READ_FRAMEBUFFER_BINDING))
	}
	s.Renderbuffer = uint32(f.GetInteger(gl.RENDERBUFFER_BINDING))

	s.ActiveTexture = uint32(f.GetInteger(gl.ACTIVE_TEXTURE) - gl.TEXTURE0)
	targets := supportedTextureTargets(c)
	s.TextureUnits = make([]TextureUnit, trackedUnits(c))
	for i := range s.TextureUnits {

		f.ActiveTexture(gl.TEXTURE0 + uint32(i))

		u := TextureUnit{Textures: make(map[gl.Enum]uint32, len(targets))}
		for _, t := range targets {
			u.Textures[t] = uint32(f.GetInteger(textureBindingQueries[t]))
		}

		if c.SupportsSamplerObjects() {
			u.Sampler = uint32(f.GetInteger(gl.SAMPLER_BINDING))
		}

		s.TextureUnits[i] = u
	}
	f.ActiveTexture(gl.TEXTURE0 + s.ActiveTexture)

	s.ClearColor = f.GetFloat4(gl.COLOR_CLEAR_VALUE)
	s.ClearDepth = f.GetFloat(gl.DEPTH_CLEAR_VALUE)
	s.ClearStencil = f.GetInteger(gl.STENCIL_CLEAR_VALUE)
	s.Viewport = f.GetInteger4(gl.VIEWPORT)
	s.Scissor = f.GetInteger4(gl.SCISSOR_BOX)

	s.DepthFunc = gl.Enum(f.GetInteger(gl.DEPTH_FUNC))
	s.DepthMask = f.GetInteger(gl.DEPTH_WRITEMASK) != 0
	dr := f.GetFloat4(gl.DEPTH_RANGE)
	s.DepthRange = [2]float32{dr[0], dr[1]}

	cm := f.GetInteger4(gl.COLOR_WRITEMASK)
	s.ColorMask = [4]bool{cm[0] != 0, cm[1] != 0, cm[2] != 0, cm[3] != 0}

	s.BlendEquationRGB = gl.Enum(f.GetInteger(gl.BLEND_EQUATION_RGB))
	s.BlendEquationAlpha = gl.Enum(f.GetInteger(gl.BLEND_EQUATION_ALPHA))
	s.BlendSrcRGB = gl.Enum(f.GetInteger(gl.BLEND_SRC_RGB))
	s.BlendDstRGB = gl.Enum(f.GetInteger(gl.BLEND_DST_RGB))
	s.BlendSrcAlpha = gl.Enum(f.GetInteger(gl.BLEND_SRC_ALPHA))
	s.BlendDstAlpha = gl.Enum(f.GetInteger(gl.BLEND_DST_ALPHA))
	s.BlendColor = f.GetFloat4(gl.BLEND_COLOR)

	s.StencilFront = StencilFace{
		Func:          gl.Enum(f.GetInteger(gl.STENCIL_FUNC)),
		Ref:           f.GetInteger(gl.STENCIL_REF),
		ValueMask:     uint32(f.GetInteger(gl.STENCIL_VALUE_MASK)),
		WriteMask:     uint32(f.GetInteger(gl.STENCIL_WRITEMASK)),
		Fail:          gl.Enum(f.GetInteger(gl.STENCIL_FAIL)),
		PassDepthFail: gl.Enum(f.GetInteger(gl.STENCIL_PASS_DEPTH_FAIL)),
		PassDepthPass: gl.Enum(f.GetInteger(gl.STENCIL_PASS_DEPTH_PASS)),
	}
	s.StencilBack = StencilFace{
		Func:          gl.Enum(f.GetInteger(gl.STENCIL_BACK_FUNC)),
		Ref:           f.GetInteger(gl.STENCIL_BACK_REF),
		ValueMask:     uint32(f.GetInteger(gl.STENCIL_BACK_VALUE_MASK)),
		WriteMask:     uint32(f.GetInteger(gl.STENCIL_BACK_WRITEMASK)),
		Fail:          gl.Enum(f.GetInteger(gl.STENCIL_BACK_FAIL)),
		PassDepthFail: gl.Enum(f.GetInteger(gl.STENCIL_BACK_PASS_DEPTH_FAIL)),
		PassDepthPass: gl.Enum(f.GetInteger(gl.STENCIL_BACK_PASS_DEPTH_PASS)),
	}

	s.CullFace = gl.Enum(f.GetInteger(gl.CULL_FACE_MODE))
	s.FrontFace = gl.Enum(f.GetInteger(gl.FRONT_FACE))
	s.PolygonMode = gl.FILL
	if c.SupportsPolygonMode() {
		s.PolygonMode = gl.Enum(f.GetInteger4(gl.POLYGON_MODE)[0])
	}
	s.PolygonOffset = [2]float32{f.GetFloat(gl.POLYGON_OFFSET_FACTOR), f.GetFloat(gl.POLYGON_OFFSET_UNITS)}
	s.LineWidth = f.GetFloat(gl.LINE_WIDTH)
	s.PointSize = 1
	if c.Version.Api == gl.ApiGL {
		s.PointSize = f.GetFloat(gl.POINT_SIZE)
	}
	s.ProvokingVertex = gl.LAST_VERTEX_CONVENTION
	if c.SupportsProvokingVertex() {
		s.ProvokingVertex = gl.Enum(f.GetInteger(gl.PROVOKING_VERTEX))
	}
	if c.SupportsPrimitiveRestart() {
		s.PrimitiveRestartIndex = uint32(f.GetInteger(gl.PRIMITIVE_RESTART_INDEX))
	}
	s.PatchVertices = 3
	if c.SupportsTessellation() {
		s.PatchVertices = f.GetInteger(gl.PATCH_VERTICES)
	}

	s.PackAlignment = f.GetInteger(gl.PACK_ALIGNMENT)
	s.UnpackAlignment = f.GetInteger(gl.UNPACK_ALIGNMENT)

	if c.Version.Api == gl.ApiGL {
		s.Hints[gl.LINE_SMOOTH_HINT] = gl.Enum(f.GetInteger(gl.LINE_SMOOTH_HINT))
		s.Hints[gl.POLYGON_SMOOTH_HINT] = gl.Enum(f.GetInteger(gl.POLYGON_SMOOTH_HINT))
	}

	return s
}

// diff lists the fields where s and o disagree. Queries and transform
// feedback are not queryable and are carried over from the mirror.
func (s *GLState) diff(o *GLState) []string {

	var out []string
	check := func(name string, a, b any) {
		if fmt.Sprint(a) != fmt.Sprint(b) {
			out = append(out, fmt.Sprintf("%s: mirror=%v driver=%v", name, a, b))
		}
	}

	keys := make([]int, 0, len(o.Enabled))
	for k := range o.Enabled {
		keys = append(keys, int(k))
	}
	sort.Ints(keys)
	for _, k := range keys {
		check(fmt.Sprintf("enabled(0x%X)", k), s.Enabled[gl.Enum(k)], o.Enabled[gl.Enum(k)])
	}

	check("program", s.Program, o.Program)
	check("vertex array", s.VertexArray, o.VertexArray)
	check("element array buffer", s.ElementArrayBuffer(), o.ElementArrayBuffer())

	for t, b := range o.Buffers {
		check(fmt.Sprintf("buffer(0x%X)", t), s.Buffers[t], b)
	}

	for t, bindings := range o.Indexed {
		for i, b := range bindings {

			var mine BufferBinding
			if i < len(s.Indexed[t]) {
				mine = s.Indexed[t][i]
			}

			// The driver reports 0 offset/size for BindBufferBase bindings
			if mine.Size == 0 && b.Size == 0 {
				check(fmt.Sprintf("indexed(0x%X)[%d]", t, i), mine.Buffer, b.Buffer)
				continue
			}
			check(fmt.Sprintf("indexed(0x%X)[%d]", t, i), mine, b)
		}
	}

	check("draw framebuffer", s.DrawFramebuffer, o.DrawFramebuffer)
	check("read framebuffer", s.ReadFramebuffer, o.ReadFramebuffer)
	check("renderbuffer", s.Renderbuffer, o.Renderbuffer)
	check("active texture", s.ActiveTexture, o.ActiveTexture)

	for i, u := range o.TextureUnits {

		if i >= len(s.TextureUnits) {
			break
		}

		for t, tex := range u.Textures {
			check(fmt.Sprintf("unit %d texture(0x%X)", i, t), s.TextureUnits[i].Textures[t], tex)
		}
		check(fmt.Sprintf("unit %d sampler", i), s.TextureUnits[i].Sampler, u.Sampler)
	}

	check("clear color", s.ClearColor, o.ClearColor)
	check("clear depth", s.ClearDepth, o.ClearDepth)
	check("clear stencil", s.ClearStencil, o.ClearStencil)
	check("viewport", s.Viewport, o.Viewport)
	check("scissor", s.Scissor, o.Scissor)
	check("depth func", s.DepthFunc, o.DepthFunc)
	check("depth mask", s.DepthMask, o.DepthMask)
	check("depth range", s.DepthRange, o.DepthRange)
	check("color mask", s.ColorMask, o.ColorMask)
	check("blend equation", [2]gl.Enum{s.BlendEquationRGB, s.BlendEquationAlpha}, [2]gl.Enum{o.BlendEquationRGB, o.BlendEquationAlpha})
	check("blend func", [4]gl.Enum{s.BlendSrcRGB, s.BlendDstRGB, s.BlendSrcAlpha, s.BlendDstAlpha}, [4]gl.Enum{o.BlendSrcRGB, o.BlendDstRGB, o.BlendSrcAlpha, o.BlendDstAlpha})
	check("blend color", s.BlendColor, o.BlendColor)
	check("stencil front", s.StencilFront, o.StencilFront)
	check("stencil back", s.StencilBack, o.StencilBack)
	check("cull face", s.CullFace, o.CullFace)
	check("front face", s.FrontFace, o.FrontFace)
	check("polygon mode", s.PolygonMode, o.PolygonMode)
	check("polygon offset", s.PolygonOffset, o.PolygonOffset)
	check("line width", s.LineWidth, o.LineWidth)
	check("point size", s.PointSize, o.PointSize)
	check("provoking vertex", s.ProvokingVertex, o.ProvokingVertex)
	check("primitive restart index", s.PrimitiveRestartIndex, o.PrimitiveRestartIndex)
	check("patch vertices", s.PatchVertices, o.PatchVertices)
	check("pack alignment", s.PackAlignment, o.PackAlignment)
	check("unpack alignment", s.UnpackAlignment, o.UnpackAlignment)

	for h, v := range o.Hints {
		check(fmt.Sprintf("hint(0x%X)", h), s.Hints[h], v)
	}

	sort.Strings(out)
	return out
}
