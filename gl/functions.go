package gl

// Sync is a fence object handle as returned by FenceSync
type Sync uintptr

// DebugProc receives messages from the driver's debug output
type DebugProc func(source, msgType Enum, id uint32, severity Enum, message string)

// Functions is the set of OpenGL entry points the wrapper calls.
//
// Object names are plain uint32s, client memory is passed as byte slices and
// buffer offsets as ints. Entry points that only exist in newer versions or
// in extensions (DSA, buffer storage, sync, ...) may be nil or no-ops on
// older drivers, so callers must consult the context capabilities first.
type Functions interface {
	GetError() Enum
	GetString(name Enum) string
	GetStringi(name Enum, index uint32) string
	GetInteger(pname Enum) int
	GetIntegeri(pname Enum, index uint32) int
	GetInteger4(pname Enum) [4]int
	GetFloat(pname Enum) float32
	GetFloat4(pname Enum) [4]float32
	IsEnabled(cap Enum) bool
	Enable(cap Enum)
	Disable(cap Enum)
	Flush()
	Finish()
	Hint(target, mode Enum)
	PixelStorei(pname Enum, param int)
	MemoryBarrier(barriers Enum)

	// Fixed function state
	Viewport(x, y, width, height int)
	Scissor(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	ClearDepth(d float64)
	ClearDepthf(d float32)
	ClearStencil(s int)
	Clear(mask Enum)
	DepthFunc(fn Enum)
	DepthMask(mask bool)
	DepthRange(near, far float64)
	DepthRangef(near, far float32)
	ColorMask(r, g, b, a bool)
	BlendEquationSeparate(modeRGB, modeAlpha Enum)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha Enum)
	BlendColor(r, g, b, a float32)
	StencilFuncSeparate(face, fn Enum, ref int, mask uint32)
	StencilOpSeparate(face, sfail, dpfail, dppass Enum)
	StencilMaskSeparate(face Enum, mask uint32)
	CullFace(mode Enum)
	FrontFace(mode Enum)
	PolygonMode(face, mode Enum)
	PolygonOffset(factor, units float32)
	LineWidth(width float32)
	PointSize(size float32)
	ProvokingVertex(mode Enum)
	PrimitiveRestartIndex(index uint32)
	PatchParameteri(pname Enum, value int)

	// Buffers
	GenBuffer() uint32
	CreateBuffer() uint32
	DeleteBuffer(b uint32)
	BindBuffer(target Enum, b uint32)
	BindBufferBase(target Enum, index, b uint32)
	BindBufferRange(target Enum, index, b uint32, offset, size int)
	BufferData(target Enum, size int, data []byte, usage Enum)
	BufferStorage(target Enum, size int, data []byte, flags Enum)
	NamedBufferStorage(b uint32, size int, data []byte, flags Enum)
	BufferSubData(target Enum, offset int, data []byte)
	NamedBufferSubData(b uint32, offset int, data []byte)
	GetBufferSubData(target Enum, offset int, dst []byte)
	GetNamedBufferSubData(b uint32, offset int, dst []byte)
	MapBufferRange(target Enum, offset, length int, access Enum) []byte
	MapNamedBufferRange(b uint32, offset, length int, access Enum) []byte
	UnmapBuffer(target Enum) bool
	UnmapNamedBuffer(b uint32) bool
	CopyBufferSubData(readTarget, writeTarget Enum, readOffset, writeOffset, size int)
	CopyNamedBufferSubData(src, dst uint32, readOffset, writeOffset, size int)
	InvalidateBufferData(b uint32)

	// Sync
	FenceSync(condition, flags Enum) Sync
	ClientWaitSync(s Sync, flags Enum, timeout uint64) Enum
	DeleteSync(s Sync)

	// Vertex arrays
	GenVertexArray() uint32
	DeleteVertexArray(va uint32)
	BindVertexArray(va uint32)
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int, typ Enum, normalized bool, stride, offset int)
	VertexAttribIPointer(index uint32, size int, typ Enum, stride, offset int)
	VertexAttribDivisor(index, divisor uint32)

	// Textures
	GenTexture() uint32
	DeleteTexture(t uint32)
	ActiveTexture(unit Enum)
	BindTexture(target Enum, t uint32)
	TexStorage1D(target Enum, levels int, internalFormat Enum, width int)
	TexStorage2D(target Enum, levels int, internalFormat Enum, width, height int)
	TexStorage3D(target Enum, levels int, internalFormat Enum, width, height, depth int)
	TexStorage2DMultisample(target Enum, samples int, internalFormat Enum, width, height int, fixedLocations bool)
	TexStorage3DMultisample(target Enum, samples int, internalFormat Enum, width, height, depth int, fixedLocations bool)
	TexImage1D(target Enum, level int, internalFormat Enum, width int, format, typ Enum, data []byte)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, typ Enum, data []byte)
	TexImage3D(target Enum, level int, internalFormat Enum, width, height, depth int, format, typ Enum, data []byte)
	TexImage2DMultisample(target Enum, samples int, internalFormat Enum, width, height int, fixedLocations bool)
	TexImage3DMultisample(target Enum, samples int, internalFormat Enum, width, height, depth int, fixedLocations bool)
	TexSubImage1D(target Enum, level, x, width int, format, typ Enum, data []byte)
	TexSubImage2D(target Enum, level, x, y, width, height int, format, typ Enum, data []byte)
	TexSubImage3D(target Enum, level, x, y, z, width, height, depth int, format, typ Enum, data []byte)
	GetTexImage(target Enum, level int, format, typ Enum, dst []byte)
	TexParameteri(target, pname Enum, param int)
	TexParameterf(target, pname Enum, param float32)
	GenerateMipmap(target Enum)
	TexBuffer(target, internalFormat Enum, b uint32)

	// Samplers
	GenSampler() uint32
	DeleteSampler(s uint32)
	BindSampler(unit, s uint32)
	SamplerParameteri(s uint32, pname Enum, param int)
	SamplerParameterf(s uint32, pname Enum, param float32)

	// Renderbuffers and framebuffers
	GenRenderbuffer() uint32
	DeleteRenderbuffer(rb uint32)
	BindRenderbuffer(target Enum, rb uint32)
	RenderbufferStorage(target, internalFormat Enum, width, height int)
	RenderbufferStorageMultisample(target Enum, samples int, internalFormat Enum, width, height int)
	GenFramebuffer() uint32
	DeleteFramebuffer(fb uint32)
	BindFramebuffer(target Enum, fb uint32)
	FramebufferTexture(target, attachment Enum, t uint32, level int)
	FramebufferTexture2D(target, attachment, texTarget Enum, t uint32, level int)
	FramebufferTextureLayer(target, attachment Enum, t uint32, level, layer int)
	FramebufferRenderbuffer(target, attachment, rbTarget Enum, rb uint32)
	FramebufferParameteri(target, pname Enum, param int)
	CheckFramebufferStatus(target Enum) Enum
	DrawBuffers(bufs []Enum)
	ReadBuffer(src Enum)
	BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int, mask, filter Enum)
	ReadPixels(x, y, width, height int, format, typ Enum, dst []byte)

	// Shaders and programs
	CreateShader(typ Enum) uint32
	ShaderSource(s uint32, src string)
	CompileShader(s uint32)
	GetShaderi(s uint32, pname Enum) int
	GetShaderInfoLog(s uint32) string
	DeleteShader(s uint32)
	CreateProgram() uint32
	AttachShader(p, s uint32)
	DetachShader(p, s uint32)
	LinkProgram(p uint32)
	GetProgrami(p uint32, pname Enum) int
	GetProgramInfoLog(p uint32) string
	DeleteProgram(p uint32)
	UseProgram(p uint32)
	GetActiveUniform(p, index uint32) (name string, size int, typ Enum)
	GetActiveAttrib(p, index uint32) (name string, size int, typ Enum)
	GetUniformLocation(p uint32, name string) int
	GetAttribLocation(p uint32, name string) int
	GetFragDataLocation(p uint32, name string) int
	GetActiveUniformsi(p uint32, indices []uint32, pname Enum) []int
	GetActiveUniformBlockName(p, index uint32) string
	GetActiveUniformBlocki(p, index uint32, pname Enum) int
	GetActiveUniformBlockIndices(p, index uint32) []uint32
	UniformBlockBinding(p, blockIndex, binding uint32)
	ShaderStorageBlockBinding(p, blockIndex, binding uint32)
	GetProgramInterfacei(p uint32, iface, pname Enum) int
	GetProgramResourceName(p uint32, iface Enum, index uint32) string
	GetProgramResourceiv(p uint32, iface Enum, index uint32, props []Enum) []int
	Uniform1iv(loc int, v []int32)
	Uniform2iv(loc int, v []int32)
	Uniform3iv(loc int, v []int32)
	Uniform4iv(loc int, v []int32)
	Uniform1uiv(loc int, v []uint32)
	Uniform2uiv(loc int, v []uint32)
	Uniform3uiv(loc int, v []uint32)
	Uniform4uiv(loc int, v []uint32)
	Uniform1fv(loc int, v []float32)
	Uniform2fv(loc int, v []float32)
	Uniform3fv(loc int, v []float32)
	Uniform4fv(loc int, v []float32)
	UniformMatrix2fv(loc int, v []float32)
	UniformMatrix3fv(loc int, v []float32)
	UniformMatrix4fv(loc int, v []float32)
	DispatchCompute(x, y, z uint32)

	// Drawing
	DrawArrays(mode Enum, first, count int)
	DrawArraysInstanced(mode Enum, first, count, instances int)
	DrawElements(mode Enum, count int, typ Enum, offset int)
	DrawElementsInstanced(mode Enum, count int, typ Enum, offset, instances int)
	DrawElementsBaseVertex(mode Enum, count int, typ Enum, offset, baseVertex int)
	DrawElementsInstancedBaseVertex(mode Enum, count int, typ Enum, offset, instances, baseVertex int)
	BeginTransformFeedback(mode Enum)
	EndTransformFeedback()

	// Queries
	GenQuery() uint32
	DeleteQuery(q uint32)
	BeginQuery(target Enum, q uint32)
	EndQuery(target Enum)
	GetQueryObjectui64(q uint32, pname Enum) uint64

	DebugMessageCallback(cb DebugProc)
}
