package glcontext

import (
	"strings"

	"github.com/bloeys/ngl/gl"
)

// Extensions holds the extensions the wrapper knows how to use. Extensions
// not listed here are kept in All but otherwise ignored.
type Extensions struct {
	All map[string]struct{}

	ARBBufferStorage             bool
	ARBDirectStateAccess         bool
	ARBSync                      bool
	ARBMapBufferRange            bool
	ARBVertexArrayObject         bool
	OESVertexArrayObject         bool
	ARBFramebufferObject         bool
	ARBFramebufferNoAttachments  bool
	ARBUniformBufferObject       bool
	ARBShaderStorageBufferObject bool
	ARBSamplerObjects            bool
	ARBTextureStorage            bool
	ARBTextureMultisample        bool
	ARBTextureBufferObject       bool
	EXTTextureBuffer             bool
	ARBTextureFilterAnisotropic  bool
	EXTTextureFilterAnisotropic  bool
	ARBTextureRG                 bool
	ARBTextureFloat              bool
	OESTextureFloat              bool
	ARBDepthBufferFloat          bool
	ARBTextureCubeMapArray       bool
	EXTTextureSRGB               bool
	EXTSRGB                      bool
	KHRDebug                     bool
	ARBDebugOutput               bool
	ARBInstancedArrays           bool
	ARBDrawInstanced             bool
	ARBDrawElementsBaseVertex    bool
	ARBInvalidateSubdata         bool
	ARBCopyBuffer                bool
	ARBProgramInterfaceQuery     bool
	ARBDepthClamp                bool
	NVDepthClamp                 bool
	ARBProvokingVertex           bool
	EXTProvokingVertex           bool
	ARBES2Compatibility          bool
	ARBES3Compatibility          bool
	NVPrimitiveRestart           bool
	ARBFramebufferSRGB           bool
	EXTFramebufferSRGB           bool
	ARBTimerQuery                bool
	EXTDisjointTimerQuery        bool
	ARBOcclusionQuery2           bool
	ARBComputeShader             bool
	ARBSeamlessCubeMap           bool
	ARBTessellationShader        bool
	ARBGeometryShader4           bool
	ARBShaderObjects             bool
	ARBTransformFeedback3        bool
}

func (e *Extensions) fields() map[string]*bool {
	return map[string]*bool{
		"GL_ARB_buffer_storage":               &e.ARBBufferStorage,
		"GL_ARB_direct_state_access":          &e.ARBDirectStateAccess,
		"GL_ARB_sync":                         &e.ARBSync,
		"GL_ARB_map_buffer_range":             &e.ARBMapBufferRange,
		"GL_ARB_vertex_array_object":          &e.ARBVertexArrayObject,
		"GL_OES_vertex_array_object":          &e.OESVertexArrayObject,
		"GL_ARB_framebuffer_object":           &e.ARBFramebufferObject,
		"GL_ARB_framebuffer_no_attachments":   &e.ARBFramebufferNoAttachments,
		"GL_ARB_uniform_buffer_object":        &e.ARBUniformBufferObject,
		"GL_ARB_shader_storage_buffer_object": &e.ARBShaderStorageBufferObject,
		"GL_ARB_sampler_objects":              &e.ARBSamplerObjects,
		"GL_ARB_texture_storage":              &e.ARBTextureStorage,
		"GL_ARB_texture_multisample":          &e.ARBTextureMultisample,
		"GL_ARB_texture_buffer_object":        &e.ARBTextureBufferObject,
		"GL_EXT_texture_buffer":               &e.EXTTextureBuffer,
		"GL_ARB_texture_filter_anisotropic":   &e.ARBTextureFilterAnisotropic,
		"GL_EXT_texture_filter_anisotropic":   &e.EXTTextureFilterAnisotropic,
		"GL_ARB_texture_rg":                   &e.ARBTextureRG,
		"GL_ARB_texture_float":                &e.ARBTextureFloat,
		"GL_OES_texture_float":                &e.OESTextureFloat,
		"GL_ARB_depth_buffer_float":           &e.ARBDepthBufferFloat,
		"GL_ARB_texture_cube_map_array":       &e.ARBTextureCubeMapArray,
		"GL_EXT_texture_sRGB":                 &e.EXTTextureSRGB,
		"GL_EXT_sRGB":                         &e.EXTSRGB,
		"GL_KHR_debug":                        &e.KHRDebug,
		"GL_ARB_debug_output":                 &e.ARBDebugOutput,
		"GL_ARB_instanced_arrays":             &e.ARBInstancedArrays,
		"GL_ARB_draw_instanced":               &e.ARBDrawInstanced,
		"GL_ARB_draw_elements_base_vertex":    &e.ARBDrawElementsBaseVertex,
		"GL_ARB_invalidate_subdata":           &e.ARBInvalidateSubdata,
		"GL_ARB_copy_buffer":                  &e.ARBCopyBuffer,
		"GL_ARB_program_interface_query":      &e.ARBProgramInterfaceQuery,
		"GL_ARB_depth_clamp":                  &e.ARBDepthClamp,
		"GL_NV_depth_clamp":                   &e.NVDepthClamp,
		"GL_ARB_provoking_vertex":             &e.ARBProvokingVertex,
		"GL_EXT_provoking_vertex":             &e.EXTProvokingVertex,
		"GL_ARB_ES2_compatibility":            &e.ARBES2Compatibility,
		"GL_ARB_ES3_compatibility":            &e.ARBES3Compatibility,
		"GL_NV_primitive_restart":             &e.NVPrimitiveRestart,
		"GL_ARB_framebuffer_sRGB":             &e.ARBFramebufferSRGB,
		"GL_EXT_framebuffer_sRGB":             &e.EXTFramebufferSRGB,
		"GL_ARB_timer_query":                  &e.ARBTimerQuery,
		"GL_EXT_disjoint_timer_query":         &e.EXTDisjointTimerQuery,
		"GL_ARB_occlusion_query2":             &e.ARBOcclusionQuery2,
		"GL_ARB_compute_shader":               &e.ARBComputeShader,
		"GL_ARB_seamless_cube_map":            &e.ARBSeamlessCubeMap,
		"GL_ARB_tessellation_shader":          &e.ARBTessellationShader,
		"GL_ARB_geometry_shader4":             &e.ARBGeometryShader4,
		"GL_ARB_shader_objects":               &e.ARBShaderObjects,
		"GL_ARB_transform_feedback3":          &e.ARBTransformFeedback3,
	}
}

// Has reports whether the driver advertises the named extension,
// e.g. "GL_ARB_sync".
func (e *Extensions) Has(name string) bool {
	_, ok := e.All[name]
	return ok
}

// ParseExtensions builds an Extensions from a list of extension names
func ParseExtensions(names []string) Extensions {

	e := Extensions{All: make(map[string]struct{}, len(names))}
	known := e.fields()

	for _, n := range names {

		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}

		e.All[n] = struct{}{}
		if f, ok := known[n]; ok {
			*f = true
		}
	}

	return e
}

// queryExtensions reads the extension list using GetStringi on GL 3.0+/ES 3.0+
// and the space separated GetString(EXTENSIONS) otherwise, which core
// profiles no longer support.
func queryExtensions(f gl.Functions, v gl.Version) Extensions {

	if v.AtLeast(gl.ApiGL, 3, 0) || v.AtLeast(gl.ApiGLES, 3, 0) {

		count := f.GetInteger(gl.NUM_EXTENSIONS)
		names := make([]string, 0, count)
		for i := 0; i < count; i++ {
			names = append(names, f.GetStringi(gl.EXTENSIONS, uint32(i)))
		}

		return ParseExtensions(names)
	}

	return ParseExtensions(strings.Split(f.GetString(gl.EXTENSIONS), " "))
}
