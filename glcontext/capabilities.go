package glcontext

import (
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/logging"
)

type Profile uint8

const (
	Profile_Unknown Profile = iota
	Profile_Core
	Profile_Compatibility
)

func (p Profile) String() string {
	switch p {
	case Profile_Core:
		return "core"
	case Profile_Compatibility:
		return "compatibility"
	default:
		return "unknown"
	}
}

// Limits are the implementation dependent values queried once at context creation
type Limits struct {
	MaxTextureSize                 int
	Max3DTextureSize               int
	MaxCubeMapTextureSize          int
	MaxArrayTextureLayers          int
	MaxCombinedTextureImageUnits   int
	MaxTextureMaxAnisotropy        float32
	MaxViewportDims                [2]int
	MaxDrawBuffers                 int
	MaxColorAttachments            int
	MaxSamples                     int
	MaxRenderbufferSize            int
	MaxUniformBufferBindings       int
	MaxUniformBlockSize            int
	MaxShaderStorageBufferBindings int
	MaxAtomicCounterBufferBindings int
	MaxTransformFeedbackBuffers    int
	MaxVertexAttribs               int
	MaxPatchVertices               int
	MaxTextureBufferSize           int
	MaxFramebufferWidth            int
	MaxFramebufferHeight           int
	UniformBufferOffsetAlignment   int
	ShaderStorageOffsetAlignment   int
}

type Capabilities struct {
	Version     gl.Version
	GLSLVersion gl.Version
	Vendor      string
	Renderer    string
	Profile     Profile
	Debug       bool
	Extensions  Extensions
	Limits      Limits
}

func (c *Capabilities) desktop(major, minor int) bool {
	return c.Version.AtLeast(gl.ApiGL, major, minor)
}

func (c *Capabilities) es(major, minor int) bool {
	return c.Version.AtLeast(gl.ApiGLES, major, minor)
}

func (c *Capabilities) SupportsBufferStorage() bool {
	return c.desktop(4, 4) || c.Extensions.ARBBufferStorage
}

func (c *Capabilities) SupportsDSA() bool {
	return c.desktop(4, 5) || c.Extensions.ARBDirectStateAccess
}

func (c *Capabilities) SupportsSync() bool {
	return c.desktop(3, 2) || c.es(3, 0) || c.Extensions.ARBSync
}

func (c *Capabilities) SupportsMapBufferRange() bool {
	return c.desktop(3, 0) || c.es(3, 0) || c.Extensions.ARBMapBufferRange
}

func (c *Capabilities) SupportsVertexArrayObject() bool {
	return c.desktop(3, 0) || c.es(3, 0) || c.Extensions.ARBVertexArrayObject || c.Extensions.OESVertexArrayObject
}

func (c *Capabilities) SupportsFramebufferObject() bool {
	return c.desktop(3, 0) || c.es(2, 0) || c.Extensions.ARBFramebufferObject
}

func (c *Capabilities) SupportsFramebufferNoAttachments() bool {
	return c.desktop(4, 3) || c.es(3, 1) || c.Extensions.ARBFramebufferNoAttachments
}

func (c *Capabilities) SupportsUniformBuffers() bool {
	return c.desktop(3, 1) || c.es(3, 0) || c.Extensions.ARBUniformBufferObject
}

func (c *Capabilities) SupportsShaderStorage() bool {
	return c.desktop(4, 3) || c.es(3, 1) || c.Extensions.ARBShaderStorageBufferObject
}

func (c *Capabilities) SupportsSamplerObjects() bool {
	return c.desktop(3, 3) || c.es(3, 0) || c.Extensions.ARBSamplerObjects
}

func (c *Capabilities) SupportsTextureStorage() bool {
	return c.desktop(4, 2) || c.es(3, 0) || c.Extensions.ARBTextureStorage
}

// SupportsMultisampleTextureStorage is TexStorage2DMultisample, which came
// later than multisample textures themselves.
func (c *Capabilities) SupportsMultisampleTextureStorage() bool {
	return c.desktop(4, 3) || c.es(3, 1)
}

func (c *Capabilities) SupportsMultisampleTextures() bool {
	return c.desktop(3, 2) || c.es(3, 1) || c.Extensions.ARBTextureMultisample
}

func (c *Capabilities) SupportsBufferTextures() bool {
	return c.desktop(3, 1) || c.es(3, 2) || c.Extensions.ARBTextureBufferObject || c.Extensions.EXTTextureBuffer
}

func (c *Capabilities) SupportsCubeMapArrays() bool {
	return c.desktop(4, 0) || c.es(3, 2) || c.Extensions.ARBTextureCubeMapArray
}

func (c *Capabilities) SupportsTextureRG() bool {
	return c.desktop(3, 0) || c.es(3, 0) || c.Extensions.ARBTextureRG
}

func (c *Capabilities) SupportsFloatTextures() bool {
	return c.desktop(3, 0) || c.es(3, 0) || c.Extensions.ARBTextureFloat || c.Extensions.OESTextureFloat
}

func (c *Capabilities) SupportsIntegerTextures() bool {
	return c.desktop(3, 0) || c.es(3, 0)
}

func (c *Capabilities) SupportsSRGBTextures() bool {
	return c.desktop(2, 1) || c.es(3, 0) || c.Extensions.EXTTextureSRGB || c.Extensions.EXTSRGB
}

func (c *Capabilities) SupportsDepthFloat() bool {
	return c.desktop(3, 0) || c.es(3, 0) || c.Extensions.ARBDepthBufferFloat
}

func (c *Capabilities) SupportsAnisotropy() bool {
	return c.desktop(4, 6) || c.Extensions.ARBTextureFilterAnisotropic || c.Extensions.EXTTextureFilterAnisotropic
}

func (c *Capabilities) SupportsDebugOutput() bool {
	return c.desktop(4, 3) || c.es(3, 2) || c.Extensions.KHRDebug || c.Extensions.ARBDebugOutput
}

func (c *Capabilities) SupportsInstancing() bool {
	return c.desktop(3, 3) || c.es(3, 0) || c.Extensions.ARBInstancedArrays
}

func (c *Capabilities) SupportsDrawInstanced() bool {
	return c.desktop(3, 1) || c.es(3, 0) || c.Extensions.ARBDrawInstanced
}

func (c *Capabilities) SupportsBaseVertex() bool {
	return c.desktop(3, 2) || c.es(3, 2) || c.Extensions.ARBDrawElementsBaseVertex
}

func (c *Capabilities) SupportsInvalidateBuffer() bool {
	return c.desktop(4, 3) || c.Extensions.ARBInvalidateSubdata
}

func (c *Capabilities) SupportsCopyBuffer() bool {
	return c.desktop(3, 1) || c.es(3, 0) || c.Extensions.ARBCopyBuffer
}

// SupportsGetBufferSubData is false on ES, which can only read buffers back
// through a mapping.
func (c *Capabilities) SupportsGetBufferSubData() bool {
	return c.Version.Api == gl.ApiGL
}

func (c *Capabilities) SupportsGetTexImage() bool {
	return c.Version.Api == gl.ApiGL
}

func (c *Capabilities) SupportsProgramInterfaceQuery() bool {
	return c.desktop(4, 3) || c.es(3, 1) || c.Extensions.ARBProgramInterfaceQuery
}

func (c *Capabilities) SupportsDepthClamp() bool {
	return c.desktop(3, 2) || c.Extensions.ARBDepthClamp || c.Extensions.NVDepthClamp
}

func (c *Capabilities) SupportsProvokingVertex() bool {
	return c.desktop(3, 2) || c.Extensions.ARBProvokingVertex || c.Extensions.EXTProvokingVertex
}

// SupportsES2Compatibility reports whether the float32 ClearDepthf and
// DepthRangef entry points exist
func (c *Capabilities) SupportsES2Compatibility() bool {
	return c.desktop(4, 1) || c.es(2, 0) || c.Extensions.ARBES2Compatibility
}

func (c *Capabilities) SupportsFixedIndexRestart() bool {
	return c.desktop(4, 3) || c.es(3, 0) || c.Extensions.ARBES3Compatibility
}

func (c *Capabilities) SupportsPrimitiveRestart() bool {
	return c.desktop(3, 1) || c.Extensions.NVPrimitiveRestart
}

func (c *Capabilities) SupportsFramebufferSRGB() bool {
	return c.desktop(3, 0) || c.Extensions.ARBFramebufferSRGB || c.Extensions.EXTFramebufferSRGB
}

func (c *Capabilities) SupportsTimerQuery() bool {
	return c.desktop(3, 3) || c.Extensions.ARBTimerQuery || c.Extensions.EXTDisjointTimerQuery
}

func (c *Capabilities) SupportsAnySamplesPassed() bool {
	return c.desktop(3, 3) || c.es(3, 0) || c.Extensions.ARBOcclusionQuery2
}

func (c *Capabilities) SupportsComputeShaders() bool {
	return c.desktop(4, 3) || c.es(3, 1) || c.Extensions.ARBComputeShader
}

func (c *Capabilities) SupportsSeamlessCubemap() bool {
	return c.desktop(3, 2) || c.Extensions.ARBSeamlessCubeMap
}

func (c *Capabilities) SupportsTessellation() bool {
	return c.desktop(4, 0) || c.es(3, 2) || c.Extensions.ARBTessellationShader
}

func (c *Capabilities) SupportsGeometryShaders() bool {
	return c.desktop(3, 2) || c.es(3, 2) || c.Extensions.ARBGeometryShader4
}

func (c *Capabilities) SupportsTransformFeedback() bool {
	return c.desktop(3, 0) || c.es(3, 0)
}

// SupportsPolygonMode is false on ES, which only rasterizes filled polygons
func (c *Capabilities) SupportsPolygonMode() bool {
	return c.Version.Api == gl.ApiGL
}

func (c *Capabilities) SupportsBlitFramebuffer() bool {
	return c.desktop(3, 0) || c.es(3, 0) || c.Extensions.ARBFramebufferObject
}

// SupportsARBHandles reports whether program objects are legacy
// GL_ARB_shader_objects handles. Only pre 2.0 desktop drivers need this.
func (c *Capabilities) SupportsARBHandles() bool {
	return !c.desktop(2, 0) && c.Version.Api == gl.ApiGL && c.Extensions.ARBShaderObjects
}

func queryCapabilities(f gl.Functions) (*Capabilities, error) {

	v, err := gl.ParseVersion(f.GetString(gl.VERSION))
	if err != nil {
		return nil, err
	}

	caps := &Capabilities{
		Version:  v,
		Vendor:   f.GetString(gl.VENDOR),
		Renderer: f.GetString(gl.RENDERER),
	}

	if glsl, err := gl.ParseGLSLVersion(f.GetString(gl.SHADING_LANGUAGE_VERSION)); err == nil {
		caps.GLSLVersion = glsl
	} else {
		logging.WarnLog.Printf("could not parse shading language version: %v\n", err)
	}

	caps.Extensions = queryExtensions(f, v)

	if v.AtLeast(gl.ApiGL, 3, 2) {

		mask := f.GetInteger(gl.CONTEXT_PROFILE_MASK)
		if mask&gl.CONTEXT_CORE_PROFILE_BIT != 0 {
			caps.Profile = Profile_Core
		} else if mask&gl.CONTEXT_COMPATIBILITY_PROFILE_BIT != 0 {
			caps.Profile = Profile_Compatibility
		}
	} else if v.Api == gl.ApiGL {
		caps.Profile = Profile_Compatibility
	}

	if v.AtLeast(gl.ApiGL, 3, 0) || v.AtLeast(gl.ApiGLES, 3, 2) {
		caps.Debug = f.GetInteger(gl.CONTEXT_FLAGS)&gl.CONTEXT_FLAG_DEBUG_BIT != 0
	}

	l := &caps.Limits
	l.MaxTextureSize = f.GetInteger(gl.MAX_TEXTURE_SIZE)
	l.MaxCubeMapTextureSize = f.GetInteger(gl.MAX_CUBE_MAP_TEXTURE_SIZE)
	l.MaxCombinedTextureImageUnits = f.GetInteger(gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS)
	l.MaxVertexAttribs = f.GetInteger(gl.MAX_VERTEX_ATTRIBS)
	l.MaxRenderbufferSize = f.GetInteger(gl.MAX_RENDERBUFFER_SIZE)

	dims := f.GetInteger4(gl.MAX_VIEWPORT_DIMS)
	l.MaxViewportDims = [2]int{dims[0], dims[1]}

	if v.AtLeast(gl.ApiGL, 1, 2) || v.AtLeast(gl.ApiGLES, 3, 0) {
		l.Max3DTextureSize = f.GetInteger(gl.MAX_3D_TEXTURE_SIZE)
	}

	if v.AtLeast(gl.ApiGL, 3, 0) || v.AtLeast(gl.ApiGLES, 3, 0) {
		l.MaxArrayTextureLayers = f.GetInteger(gl.MAX_ARRAY_TEXTURE_LAYERS)
		l.MaxSamples = f.GetInteger(gl.MAX_SAMPLES)
		l.MaxDrawBuffers = f.GetInteger(gl.MAX_DRAW_BUFFERS)
		l.MaxColorAttachments = f.GetInteger(gl.MAX_COLOR_ATTACHMENTS)
	} else {
		l.MaxDrawBuffers = 1
		l.MaxColorAttachments = 1
	}

	if caps.SupportsAnisotropy() {
		l.MaxTextureMaxAnisotropy = f.GetFloat(gl.MAX_TEXTURE_MAX_ANISOTROPY)
	}

	if caps.SupportsUniformBuffers() {
		l.MaxUniformBufferBindings = f.GetInteger(gl.MAX_UNIFORM_BUFFER_BINDINGS)
		l.MaxUniformBlockSize = f.GetInteger(gl.MAX_UNIFORM_BLOCK_SIZE)
		l.UniformBufferOffsetAlignment = f.GetInteger(gl.UNIFORM_BUFFER_OFFSET_ALIGNMENT)
	}

	if caps.SupportsShaderStorage() {
		l.MaxShaderStorageBufferBindings = f.GetInteger(gl.MAX_SHADER_STORAGE_BUFFER_BINDINGS)
		l.ShaderStorageOffsetAlignment = f.GetInteger(gl.SHADER_STORAGE_BUFFER_OFFSET_ALIGNMENT)
		l.MaxAtomicCounterBufferBindings = f.GetInteger(gl.MAX_ATOMIC_COUNTER_BUFFER_BINDINGS)
	}

	if caps.SupportsTransformFeedback() {
		l.MaxTransformFeedbackBuffers = f.GetInteger(gl.MAX_TRANSFORM_FEEDBACK_BUFFERS)
	}

	if caps.SupportsTessellation() {
		l.MaxPatchVertices = f.GetInteger(gl.MAX_PATCH_VERTICES)
	}

	if caps.SupportsBufferTextures() {
		l.MaxTextureBufferSize = f.GetInteger(gl.MAX_TEXTURE_BUFFER_SIZE)
	}

	if caps.SupportsFramebufferNoAttachments() {
		l.MaxFramebufferWidth = f.GetInteger(gl.MAX_FRAMEBUFFER_WIDTH)
		l.MaxFramebufferHeight = f.GetInteger(gl.MAX_FRAMEBUFFER_HEIGHT)
	}

	return caps, nil
}
