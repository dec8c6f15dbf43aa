package gl

// Enum values from the OpenGL registry. ARB and EXT variants that were
// promoted to core share the core value and are not listed separately.
type Enum = uint32

const (
	FALSE = 0
	TRUE  = 1
	NONE  = 0
	ZERO  = 0
	ONE   = 1

	DEPTH_BUFFER_BIT   = 0x100
	STENCIL_BUFFER_BIT = 0x400
	COLOR_BUFFER_BIT   = 0x4000

	// Primitives
	POINTS                   = 0x0
	LINES                    = 0x1
	LINE_LOOP                = 0x2
	LINE_STRIP               = 0x3
	TRIANGLES                = 0x4
	TRIANGLE_STRIP           = 0x5
	TRIANGLE_FAN             = 0x6
	LINES_ADJACENCY          = 0xA
	LINE_STRIP_ADJACENCY     = 0xB
	TRIANGLES_ADJACENCY      = 0xC
	TRIANGLE_STRIP_ADJACENCY = 0xD
	PATCHES                  = 0xE

	// Comparison functions
	NEVER    = 0x200
	LESS     = 0x201
	EQUAL    = 0x202
	LEQUAL   = 0x203
	GREATER  = 0x204
	NOTEQUAL = 0x205
	GEQUAL   = 0x206
	ALWAYS   = 0x207

	// Blending
	SRC_COLOR                = 0x300
	ONE_MINUS_SRC_COLOR      = 0x301
	SRC_ALPHA                = 0x302
	ONE_MINUS_SRC_ALPHA      = 0x303
	DST_ALPHA                = 0x304
	ONE_MINUS_DST_ALPHA      = 0x305
	DST_COLOR                = 0x306
	ONE_MINUS_DST_COLOR      = 0x307
	SRC_ALPHA_SATURATE       = 0x308
	CONSTANT_COLOR           = 0x8001
	ONE_MINUS_CONSTANT_COLOR = 0x8002
	CONSTANT_ALPHA           = 0x8003
	ONE_MINUS_CONSTANT_ALPHA = 0x8004
	BLEND_COLOR              = 0x8005
	FUNC_ADD                 = 0x8006
	MIN                      = 0x8007
	MAX                      = 0x8008
	BLEND_EQUATION_RGB       = 0x8009
	FUNC_SUBTRACT            = 0x800A
	FUNC_REVERSE_SUBTRACT    = 0x800B
	BLEND_DST_RGB            = 0x80C8
	BLEND_SRC_RGB            = 0x80C9
	BLEND_DST_ALPHA          = 0x80CA
	BLEND_SRC_ALPHA          = 0x80CB
	BLEND_EQUATION_ALPHA     = 0x883D

	// Faces and polygon modes
	BACK_LEFT      = 0x402
	FRONT          = 0x404
	BACK           = 0x405
	FRONT_AND_BACK = 0x408
	CW             = 0x900
	CCW            = 0x901
	POINT          = 0x1B00
	LINE           = 0x1B01
	FILL           = 0x1B02
	COLOR          = 0x1800

	// Stencil ops
	KEEP      = 0x1E00
	REPLACE   = 0x1E01
	INCR      = 0x1E02
	DECR      = 0x1E03
	INVERT    = 0x150A
	INCR_WRAP = 0x8507
	DECR_WRAP = 0x8508

	// Capabilities
	POINT_SMOOTH                  = 0xB10
	LINE_SMOOTH                   = 0xB20
	POLYGON_SMOOTH                = 0xB41
	CULL_FACE                     = 0xB44
	DEPTH_TEST                    = 0xB71
	STENCIL_TEST                  = 0xB90
	DITHER                        = 0xBD0
	BLEND                         = 0xBE2
	SCISSOR_TEST                  = 0xC11
	POLYGON_OFFSET_POINT          = 0x2A01
	POLYGON_OFFSET_LINE           = 0x2A02
	POLYGON_OFFSET_FILL           = 0x8037
	MULTISAMPLE                   = 0x809D
	SAMPLE_ALPHA_TO_COVERAGE      = 0x809E
	PROGRAM_POINT_SIZE            = 0x8642
	DEPTH_CLAMP                   = 0x864F
	TEXTURE_CUBE_MAP_SEAMLESS     = 0x884F
	RASTERIZER_DISCARD            = 0x8C89
	PRIMITIVE_RESTART_FIXED_INDEX = 0x8D69
	FRAMEBUFFER_SRGB              = 0x8DB9
	PRIMITIVE_RESTART             = 0x8F9D
	DEBUG_OUTPUT_SYNCHRONOUS      = 0x8242
	DEBUG_OUTPUT                  = 0x92E0

	// Hints
	LINE_SMOOTH_HINT    = 0xC52
	POLYGON_SMOOTH_HINT = 0xC53
	DONT_CARE           = 0x1100
	FASTEST             = 0x1101
	NICEST              = 0x1102

	FIRST_VERTEX_CONVENTION = 0x8E4D
	LAST_VERTEX_CONVENTION  = 0x8E4E
	PROVOKING_VERTEX        = 0x8E4F

	// Data types
	BYTE                           = 0x1400
	UNSIGNED_BYTE                  = 0x1401
	SHORT                          = 0x1402
	UNSIGNED_SHORT                 = 0x1403
	INT                            = 0x1404
	UNSIGNED_INT                   = 0x1405
	FLOAT                          = 0x1406
	DOUBLE                         = 0x140A
	HALF_FLOAT                     = 0x140B
	UNSIGNED_INT_2_10_10_10_REV    = 0x8368
	UNSIGNED_INT_24_8              = 0x84FA
	UNSIGNED_INT_10F_11F_11F_REV   = 0x8C3B
	UNSIGNED_INT_5_9_9_9_REV       = 0x8C3E
	FLOAT_32_UNSIGNED_INT_24_8_REV = 0x8DAD

	// Strings
	VENDOR                   = 0x1F00
	RENDERER                 = 0x1F01
	VERSION                  = 0x1F02
	EXTENSIONS               = 0x1F03
	SHADING_LANGUAGE_VERSION = 0x8B8C

	// Context info
	MAJOR_VERSION                       = 0x821B
	MINOR_VERSION                       = 0x821C
	NUM_EXTENSIONS                      = 0x821D
	CONTEXT_FLAGS                       = 0x821E
	CONTEXT_PROFILE_MASK                = 0x9126
	CONTEXT_CORE_PROFILE_BIT            = 0x1
	CONTEXT_COMPATIBILITY_PROFILE_BIT   = 0x2
	CONTEXT_FLAG_FORWARD_COMPATIBLE_BIT = 0x1
	CONTEXT_FLAG_DEBUG_BIT              = 0x2
	CONTEXT_FLAG_ROBUST_ACCESS_BIT      = 0x4
	CONTEXT_FLAG_NO_ERROR_BIT           = 0x8

	// Errors
	NO_ERROR                      = 0x0
	INVALID_ENUM                  = 0x500
	INVALID_VALUE                 = 0x501
	INVALID_OPERATION             = 0x502
	STACK_OVERFLOW                = 0x503
	STACK_UNDERFLOW               = 0x504
	OUT_OF_MEMORY                 = 0x505
	INVALID_FRAMEBUFFER_OPERATION = 0x506
	CONTEXT_LOST                  = 0x507

	// Limits
	MAX_TEXTURE_SIZE                       = 0xD33
	MAX_VIEWPORT_DIMS                      = 0xD3A
	MAX_3D_TEXTURE_SIZE                    = 0x8073
	MAX_CUBE_MAP_TEXTURE_SIZE              = 0x851C
	MAX_RENDERBUFFER_SIZE                  = 0x84E8
	MAX_TEXTURE_MAX_ANISOTROPY             = 0x84FF
	MAX_DRAW_BUFFERS                       = 0x8824
	MAX_VERTEX_ATTRIBS                     = 0x8869
	MAX_ARRAY_TEXTURE_LAYERS               = 0x88FF
	MAX_COMBINED_TEXTURE_IMAGE_UNITS       = 0x8B4D
	MAX_UNIFORM_BUFFER_BINDINGS            = 0x8A2F
	MAX_UNIFORM_BLOCK_SIZE                 = 0x8A30
	UNIFORM_BUFFER_OFFSET_ALIGNMENT        = 0x8A34
	MAX_TEXTURE_BUFFER_SIZE                = 0x8C2B
	MAX_COLOR_ATTACHMENTS                  = 0x8CDF
	MAX_SAMPLES                            = 0x8D57
	MAX_TRANSFORM_FEEDBACK_BUFFERS         = 0x8E70
	MAX_PATCH_VERTICES                     = 0x8E7D
	MAX_SHADER_STORAGE_BUFFER_BINDINGS     = 0x90DD
	SHADER_STORAGE_BUFFER_OFFSET_ALIGNMENT = 0x90DF
	MAX_ATOMIC_COUNTER_BUFFER_BINDINGS     = 0x92DC
	MAX_FRAMEBUFFER_WIDTH                  = 0x9315
	MAX_FRAMEBUFFER_HEIGHT                 = 0x9316

	// State queries
	DEPTH_RANGE                          = 0xB70
	DEPTH_WRITEMASK                      = 0xB72
	DEPTH_CLEAR_VALUE                    = 0xB73
	DEPTH_FUNC                           = 0xB74
	STENCIL_CLEAR_VALUE                  = 0xB91
	CULL_FACE_MODE                       = 0xB45
	FRONT_FACE                           = 0xB46
	LINE_WIDTH                           = 0xB21
	POINT_SIZE                           = 0xB11
	VIEWPORT                             = 0xBA2
	SCISSOR_BOX                          = 0xC10
	COLOR_CLEAR_VALUE                    = 0xC22
	COLOR_WRITEMASK                      = 0xC23
	UNPACK_ALIGNMENT                     = 0xCF5
	PACK_ALIGNMENT                       = 0xD05
	POLYGON_OFFSET_UNITS                 = 0x2A00
	POLYGON_OFFSET_FACTOR                = 0x8038
	TEXTURE_BINDING_1D                   = 0x8068
	TEXTURE_BINDING_2D                   = 0x8069
	TEXTURE_BINDING_3D                   = 0x806A
	ACTIVE_TEXTURE                       = 0x84E0
	TEXTURE_BINDING_CUBE_MAP             = 0x8514
	VERTEX_ARRAY_BINDING                 = 0x85B5
	ARRAY_BUFFER_BINDING                 = 0x8894
	ELEMENT_ARRAY_BUFFER_BINDING         = 0x8895
	PIXEL_PACK_BUFFER_BINDING            = 0x88ED
	PIXEL_UNPACK_BUFFER_BINDING          = 0x88EF
	SAMPLER_BINDING                      = 0x8919
	UNIFORM_BUFFER_BINDING               = 0x8A28
	UNIFORM_BUFFER_START                 = 0x8A29
	UNIFORM_BUFFER_SIZE                  = 0x8A2A
	CURRENT_PROGRAM                      = 0x8B8D
	TEXTURE_BINDING_1D_ARRAY             = 0x8C1C
	TEXTURE_BINDING_2D_ARRAY             = 0x8C1D
	TEXTURE_BINDING_BUFFER               = 0x8C2C
	DRAW_FRAMEBUFFER_BINDING             = 0x8CA6
	RENDERBUFFER_BINDING                 = 0x8CA7
	READ_FRAMEBUFFER_BINDING             = 0x8CAA
	PRIMITIVE_RESTART_INDEX              = 0x8F9E
	TEXTURE_BINDING_CUBE_MAP_ARRAY       = 0x900A
	TEXTURE_BINDING_2D_MULTISAMPLE       = 0x9104
	TEXTURE_BINDING_2D_MULTISAMPLE_ARRAY = 0x9105
	SHADER_STORAGE_BUFFER_BINDING        = 0x90D3
	SHADER_STORAGE_BUFFER_START          = 0x90D4
	SHADER_STORAGE_BUFFER_SIZE           = 0x90D5
	TEXTURE_BINDING_RECTANGLE            = 0x84F6
	COPY_READ_BUFFER_BINDING             = 0x8F36
	COPY_WRITE_BUFFER_BINDING            = 0x8F37
	TEXTURE_BUFFER_BINDING               = 0x8C2A
	DRAW_INDIRECT_BUFFER_BINDING         = 0x8F43
	DISPATCH_INDIRECT_BUFFER_BINDING     = 0x90EF
	QUERY_BUFFER_BINDING                 = 0x9193
	ATOMIC_COUNTER_BUFFER_BINDING        = 0x92C1
	ATOMIC_COUNTER_BUFFER_START          = 0x92C2
	ATOMIC_COUNTER_BUFFER_SIZE           = 0x92C3
	TRANSFORM_FEEDBACK_BUFFER_BINDING    = 0x8C8F
	TRANSFORM_FEEDBACK_BUFFER_START      = 0x8C84
	TRANSFORM_FEEDBACK_BUFFER_SIZE       = 0x8C85
	STENCIL_FUNC                         = 0xB92
	STENCIL_VALUE_MASK                   = 0xB93
	STENCIL_FAIL                         = 0xB94
	STENCIL_PASS_DEPTH_FAIL              = 0xB95
	STENCIL_PASS_DEPTH_PASS              = 0xB96
	STENCIL_REF                          = 0xB97
	STENCIL_WRITEMASK                    = 0xB98
	STENCIL_BACK_FUNC                    = 0x8800
	STENCIL_BACK_FAIL                    = 0x8801
	STENCIL_BACK_PASS_DEPTH_FAIL         = 0x8802
	STENCIL_BACK_PASS_DEPTH_PASS         = 0x8803
	STENCIL_BACK_REF                     = 0x8CA3
	STENCIL_BACK_VALUE_MASK              = 0x8CA4
	STENCIL_BACK_WRITEMASK               = 0x8CA5
	POLYGON_MODE                         = 0xB40

	// Buffer targets
	ARRAY_BUFFER              = 0x8892
	ELEMENT_ARRAY_BUFFER      = 0x8893
	PIXEL_PACK_BUFFER         = 0x88EB
	PIXEL_UNPACK_BUFFER       = 0x88EC
	UNIFORM_BUFFER            = 0x8A11
	TEXTURE_BUFFER            = 0x8C2A
	TRANSFORM_FEEDBACK_BUFFER = 0x8C8E
	COPY_READ_BUFFER          = 0x8F36
	COPY_WRITE_BUFFER         = 0x8F37
	DRAW_INDIRECT_BUFFER      = 0x8F3F
	SHADER_STORAGE_BUFFER     = 0x90D2
	DISPATCH_INDIRECT_BUFFER  = 0x90EE
	QUERY_BUFFER              = 0x9192
	ATOMIC_COUNTER_BUFFER     = 0x92C0

	// Buffer usage
	STREAM_DRAW  = 0x88E0
	STREAM_READ  = 0x88E1
	STREAM_COPY  = 0x88E2
	STATIC_DRAW  = 0x88E4
	STATIC_READ  = 0x88E5
	STATIC_COPY  = 0x88E6
	DYNAMIC_DRAW = 0x88E8
	DYNAMIC_READ = 0x88E9
	DYNAMIC_COPY = 0x88EA

	BUFFER_SIZE = 0x8764

	// Map and storage flags
	MAP_READ_BIT              = 0x1
	MAP_WRITE_BIT             = 0x2
	MAP_INVALIDATE_RANGE_BIT  = 0x4
	MAP_INVALIDATE_BUFFER_BIT = 0x8
	MAP_FLUSH_EXPLICIT_BIT    = 0x10
	MAP_UNSYNCHRONIZED_BIT    = 0x20
	MAP_PERSISTENT_BIT        = 0x40
	MAP_COHERENT_BIT          = 0x80
	DYNAMIC_STORAGE_BIT       = 0x100
	CLIENT_STORAGE_BIT        = 0x200

	// Sync
	SYNC_FLUSH_COMMANDS_BIT    = 0x1
	SYNC_GPU_COMMANDS_COMPLETE = 0x9117
	ALREADY_SIGNALED           = 0x911A
	TIMEOUT_EXPIRED            = 0x911B
	CONDITION_SATISFIED        = 0x911C
	WAIT_FAILED                = 0x911D

	// Memory barriers
	VERTEX_ATTRIB_ARRAY_BARRIER_BIT  = 0x1
	ELEMENT_ARRAY_BARRIER_BIT        = 0x2
	UNIFORM_BARRIER_BIT              = 0x4
	TEXTURE_FETCH_BARRIER_BIT        = 0x8
	SHADER_IMAGE_ACCESS_BARRIER_BIT  = 0x20
	BUFFER_UPDATE_BARRIER_BIT        = 0x200
	FRAMEBUFFER_BARRIER_BIT          = 0x400
	SHADER_STORAGE_BARRIER_BIT       = 0x2000
	CLIENT_MAPPED_BUFFER_BARRIER_BIT = 0x4000
	ALL_BARRIER_BITS                 = 0xFFFFFFFF

	// Texture targets
	TEXTURE_1D                   = 0xDE0
	TEXTURE_2D                   = 0xDE1
	TEXTURE_3D                   = 0x806F
	TEXTURE_RECTANGLE            = 0x84F5
	TEXTURE_CUBE_MAP             = 0x8513
	TEXTURE_CUBE_MAP_POSITIVE_X  = 0x8515
	TEXTURE_CUBE_MAP_NEGATIVE_X  = 0x8516
	TEXTURE_CUBE_MAP_POSITIVE_Y  = 0x8517
	TEXTURE_CUBE_MAP_NEGATIVE_Y  = 0x8518
	TEXTURE_CUBE_MAP_POSITIVE_Z  = 0x8519
	TEXTURE_CUBE_MAP_NEGATIVE_Z  = 0x851A
	TEXTURE_1D_ARRAY             = 0x8C18
	TEXTURE_2D_ARRAY             = 0x8C1A
	TEXTURE_CUBE_MAP_ARRAY       = 0x9009
	TEXTURE_2D_MULTISAMPLE       = 0x9100
	TEXTURE_2D_MULTISAMPLE_ARRAY = 0x9102

	TEXTURE0 = 0x84C0

	// Texture and sampler parameters
	TEXTURE_BORDER_COLOR   = 0x1004
	TEXTURE_MAG_FILTER     = 0x2800
	TEXTURE_MIN_FILTER     = 0x2801
	TEXTURE_WRAP_S         = 0x2802
	TEXTURE_WRAP_T         = 0x2803
	TEXTURE_WRAP_R         = 0x8072
	TEXTURE_MIN_LOD        = 0x813A
	TEXTURE_MAX_LOD        = 0x813B
	TEXTURE_BASE_LEVEL     = 0x813C
	TEXTURE_MAX_LEVEL      = 0x813D
	TEXTURE_MAX_ANISOTROPY = 0x84FE
	TEXTURE_COMPARE_MODE   = 0x884C
	TEXTURE_COMPARE_FUNC   = 0x884D
	COMPARE_REF_TO_TEXTURE = 0x884E

	NEAREST                = 0x2600
	LINEAR                 = 0x2601
	NEAREST_MIPMAP_NEAREST = 0x2700
	LINEAR_MIPMAP_NEAREST  = 0x2701
	NEAREST_MIPMAP_LINEAR  = 0x2702
	LINEAR_MIPMAP_LINEAR   = 0x2703

	REPEAT               = 0x2901
	CLAMP_TO_BORDER      = 0x812D
	CLAMP_TO_EDGE        = 0x812F
	MIRRORED_REPEAT      = 0x8370
	MIRROR_CLAMP_TO_EDGE = 0x8743

	// Client pixel formats
	STENCIL_INDEX   = 0x1901
	DEPTH_COMPONENT = 0x1902
	RED             = 0x1903
	GREEN           = 0x1904
	BLUE            = 0x1905
	ALPHA           = 0x1906
	RGB             = 0x1907
	RGBA            = 0x1908
	LUMINANCE       = 0x1909
	BGR             = 0x80E0
	BGRA            = 0x80E1
	RG              = 0x8227
	RG_INTEGER      = 0x8228
	DEPTH_STENCIL   = 0x84F9
	RED_INTEGER     = 0x8D94
	RGB_INTEGER     = 0x8D98
	RGBA_INTEGER    = 0x8D99

	// Internal formats
	RGB8               = 0x8051
	RGB16              = 0x8054
	RGBA4              = 0x8056
	RGB5_A1            = 0x8057
	RGBA8              = 0x8058
	RGB10_A2           = 0x8059
	RGBA16             = 0x805B
	DEPTH_COMPONENT16  = 0x81A5
	DEPTH_COMPONENT24  = 0x81A6
	DEPTH_COMPONENT32  = 0x81A7
	R8                 = 0x8229
	R16                = 0x822A
	RG8                = 0x822B
	RG16               = 0x822C
	R16F               = 0x822D
	R32F               = 0x822E
	RG16F              = 0x822F
	RG32F              = 0x8230
	R8I                = 0x8231
	R8UI               = 0x8232
	R16I               = 0x8233
	R16UI              = 0x8234
	R32I               = 0x8235
	R32UI              = 0x8236
	RG8I               = 0x8237
	RG8UI              = 0x8238
	RG16I              = 0x8239
	RG16UI             = 0x823A
	RG32I              = 0x823B
	RG32UI             = 0x823C
	RGBA32F            = 0x8814
	RGB32F             = 0x8815
	RGBA16F            = 0x881A
	RGB16F             = 0x881B
	DEPTH24_STENCIL8   = 0x88F0
	R11F_G11F_B10F     = 0x8C3A
	RGB9_E5            = 0x8C3D
	SRGB               = 0x8C40
	SRGB8              = 0x8C41
	SRGB_ALPHA         = 0x8C42
	SRGB8_ALPHA8       = 0x8C43
	DEPTH_COMPONENT32F = 0x8CAC
	DEPTH32F_STENCIL8  = 0x8CAD
	STENCIL_INDEX8     = 0x8D48
	RGBA32UI           = 0x8D70
	RGB32UI            = 0x8D71
	RGBA16UI           = 0x8D76
	RGB16UI            = 0x8D77
	RGBA8UI            = 0x8D7C
	RGB8UI             = 0x8D7D
	RGBA32I            = 0x8D82
	RGB32I             = 0x8D83
	RGBA16I            = 0x8D88
	RGB16I             = 0x8D89
	RGBA8I             = 0x8D8E
	RGB8I              = 0x8D8F
	R8_SNORM           = 0x8F94
	RG8_SNORM          = 0x8F95
	RGB8_SNORM         = 0x8F96
	RGBA8_SNORM        = 0x8F97

	// Framebuffers
	FRAMEBUFFER_UNDEFINED                     = 0x8219
	DEPTH_STENCIL_ATTACHMENT                  = 0x821A
	READ_FRAMEBUFFER                          = 0x8CA8
	DRAW_FRAMEBUFFER                          = 0x8CA9
	FRAMEBUFFER_COMPLETE                      = 0x8CD5
	FRAMEBUFFER_INCOMPLETE_ATTACHMENT         = 0x8CD6
	FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT = 0x8CD7
	FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER        = 0x8CDB
	FRAMEBUFFER_INCOMPLETE_READ_BUFFER        = 0x8CDC
	FRAMEBUFFER_UNSUPPORTED                   = 0x8CDD
	COLOR_ATTACHMENT0                         = 0x8CE0
	COLOR_ATTACHMENT1                         = 0x8CE1
	COLOR_ATTACHMENT2                         = 0x8CE2
	COLOR_ATTACHMENT3                         = 0x8CE3
	DEPTH_ATTACHMENT                          = 0x8D00
	STENCIL_ATTACHMENT                        = 0x8D20
	FRAMEBUFFER                               = 0x8D40
	RENDERBUFFER                              = 0x8D41
	FRAMEBUFFER_INCOMPLETE_MULTISAMPLE        = 0x8D56
	FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS      = 0x8DA8
	FRAMEBUFFER_DEFAULT_WIDTH                 = 0x9310
	FRAMEBUFFER_DEFAULT_HEIGHT                = 0x9311
	FRAMEBUFFER_DEFAULT_LAYERS                = 0x9312
	FRAMEBUFFER_DEFAULT_SAMPLES               = 0x9313
	FRAMEBUFFER_DEFAULT_FIXED_SAMPLE_LOCATIONS = 0x9314

	// Shaders and programs
	UNIFORM_BLOCK_BINDING                = 0x8A3F
	UNIFORM_BLOCK_DATA_SIZE              = 0x8A40
	UNIFORM_BLOCK_ACTIVE_UNIFORMS        = 0x8A42
	UNIFORM_BLOCK_ACTIVE_UNIFORM_INDICES = 0x8A43
	ACTIVE_UNIFORM_BLOCKS                = 0x8A36
	UNIFORM_TYPE                         = 0x8A37
	UNIFORM_SIZE                         = 0x8A38
	UNIFORM_BLOCK_INDEX                  = 0x8A3A
	UNIFORM_OFFSET                       = 0x8A3B
	UNIFORM_ARRAY_STRIDE                 = 0x8A3C
	UNIFORM_MATRIX_STRIDE                = 0x8A3D
	FRAGMENT_SHADER                      = 0x8B30
	VERTEX_SHADER                        = 0x8B31
	COMPILE_STATUS                       = 0x8B81
	LINK_STATUS                          = 0x8B82
	INFO_LOG_LENGTH                      = 0x8B84
	ATTACHED_SHADERS                     = 0x8B85
	ACTIVE_UNIFORMS                      = 0x8B86
	ACTIVE_ATTRIBUTES                    = 0x8B89
	GEOMETRY_SHADER                      = 0x8DD9
	PATCH_VERTICES                       = 0x8E72
	TESS_EVALUATION_SHADER               = 0x8E87
	TESS_CONTROL_SHADER                  = 0x8E88
	COMPUTE_SHADER                       = 0x91B9
	INVALID_INDEX                        = 0xFFFFFFFF

	// Program interface query
	UNIFORM                = 0x92E1
	UNIFORM_BLOCK          = 0x92E2
	PROGRAM_INPUT          = 0x92E3
	PROGRAM_OUTPUT         = 0x92E4
	BUFFER_VARIABLE        = 0x92E5
	SHADER_STORAGE_BLOCK   = 0x92E6
	ACTIVE_RESOURCES       = 0x92F5
	TYPE                   = 0x92FA
	ARRAY_SIZE             = 0x92FB
	OFFSET                 = 0x92FC
	ARRAY_STRIDE           = 0x92FE
	MATRIX_STRIDE          = 0x92FF
	BUFFER_BINDING         = 0x9302
	BUFFER_DATA_SIZE       = 0x9303
	NUM_ACTIVE_VARIABLES   = 0x9304
	ACTIVE_VARIABLES       = 0x9305
	TOP_LEVEL_ARRAY_SIZE   = 0x930C
	TOP_LEVEL_ARRAY_STRIDE = 0x930D
	LOCATION               = 0x930E

	// Uniform and attribute types
	FLOAT_VEC2                                = 0x8B50
	FLOAT_VEC3                                = 0x8B51
	FLOAT_VEC4                                = 0x8B52
	INT_VEC2                                  = 0x8B53
	INT_VEC3                                  = 0x8B54
	INT_VEC4                                  = 0x8B55
	BOOL                                      = 0x8B56
	BOOL_VEC2                                 = 0x8B57
	BOOL_VEC3                                 = 0x8B58
	BOOL_VEC4                                 = 0x8B59
	FLOAT_MAT2                                = 0x8B5A
	FLOAT_MAT3                                = 0x8B5B
	FLOAT_MAT4                                = 0x8B5C
	SAMPLER_1D                                = 0x8B5D
	SAMPLER_2D                                = 0x8B5E
	SAMPLER_3D                                = 0x8B5F
	SAMPLER_CUBE                              = 0x8B60
	SAMPLER_1D_SHADOW                         = 0x8B61
	SAMPLER_2D_SHADOW                         = 0x8B62
	FLOAT_MAT2x3                              = 0x8B65
	FLOAT_MAT2x4                              = 0x8B66
	FLOAT_MAT3x2                              = 0x8B67
	FLOAT_MAT3x4                              = 0x8B68
	FLOAT_MAT4x2                              = 0x8B69
	FLOAT_MAT4x3                              = 0x8B6A
	SAMPLER_1D_ARRAY                          = 0x8DC0
	SAMPLER_2D_ARRAY                          = 0x8DC1
	SAMPLER_BUFFER                            = 0x8DC2
	SAMPLER_1D_ARRAY_SHADOW                   = 0x8DC3
	SAMPLER_2D_ARRAY_SHADOW                   = 0x8DC4
	SAMPLER_CUBE_SHADOW                       = 0x8DC5
	UNSIGNED_INT_VEC2                         = 0x8DC6
	UNSIGNED_INT_VEC3                         = 0x8DC7
	UNSIGNED_INT_VEC4                         = 0x8DC8
	INT_SAMPLER_1D                            = 0x8DC9
	INT_SAMPLER_2D                            = 0x8DCA
	INT_SAMPLER_3D                            = 0x8DCB
	INT_SAMPLER_CUBE                          = 0x8DCC
	INT_SAMPLER_1D_ARRAY                      = 0x8DCE
	INT_SAMPLER_2D_ARRAY                      = 0x8DCF
	INT_SAMPLER_BUFFER                        = 0x8DD0
	UNSIGNED_INT_SAMPLER_1D                   = 0x8DD1
	UNSIGNED_INT_SAMPLER_2D                   = 0x8DD2
	UNSIGNED_INT_SAMPLER_3D                   = 0x8DD3
	UNSIGNED_INT_SAMPLER_CUBE                 = 0x8DD4
	UNSIGNED_INT_SAMPLER_1D_ARRAY             = 0x8DD6
	UNSIGNED_INT_SAMPLER_2D_ARRAY             = 0x8DD7
	UNSIGNED_INT_SAMPLER_BUFFER               = 0x8DD8
	SAMPLER_CUBE_MAP_ARRAY                    = 0x900C
	SAMPLER_CUBE_MAP_ARRAY_SHADOW             = 0x900D
	INT_SAMPLER_CUBE_MAP_ARRAY                = 0x900E
	UNSIGNED_INT_SAMPLER_CUBE_MAP_ARRAY       = 0x900F
	SAMPLER_2D_MULTISAMPLE                    = 0x9108
	INT_SAMPLER_2D_MULTISAMPLE                = 0x9109
	UNSIGNED_INT_SAMPLER_2D_MULTISAMPLE       = 0x910A
	SAMPLER_2D_MULTISAMPLE_ARRAY              = 0x910B
	INT_SAMPLER_2D_MULTISAMPLE_ARRAY          = 0x910C
	UNSIGNED_INT_SAMPLER_2D_MULTISAMPLE_ARRAY = 0x910D

	// Queries
	TIME_ELAPSED                          = 0x88BF
	QUERY_RESULT                          = 0x8866
	QUERY_RESULT_AVAILABLE                = 0x8867
	SAMPLES_PASSED                        = 0x8914
	PRIMITIVES_GENERATED                  = 0x8C87
	TRANSFORM_FEEDBACK_PRIMITIVES_WRITTEN = 0x8C88
	ANY_SAMPLES_PASSED                    = 0x8C2F
	ANY_SAMPLES_PASSED_CONSERVATIVE       = 0x8D6A

	// Debug output
	DEBUG_SOURCE_API               = 0x8246
	DEBUG_SOURCE_WINDOW_SYSTEM     = 0x8247
	DEBUG_SOURCE_SHADER_COMPILER   = 0x8248
	DEBUG_SOURCE_THIRD_PARTY       = 0x8249
	DEBUG_SOURCE_APPLICATION       = 0x824A
	DEBUG_SOURCE_OTHER             = 0x824B
	DEBUG_TYPE_ERROR               = 0x824C
	DEBUG_TYPE_DEPRECATED_BEHAVIOR = 0x824D
	DEBUG_TYPE_UNDEFINED_BEHAVIOR  = 0x824E
	DEBUG_TYPE_PORTABILITY         = 0x824F
	DEBUG_TYPE_PERFORMANCE         = 0x8250
	DEBUG_TYPE_OTHER               = 0x8251
	DEBUG_SEVERITY_NOTIFICATION    = 0x826B
	DEBUG_SEVERITY_HIGH            = 0x9146
	DEBUG_SEVERITY_MEDIUM          = 0x9147
	DEBUG_SEVERITY_LOW             = 0x9148
)

// TIMEOUT_IGNORED is a uint64 so it lives outside the Enum block.
const TIMEOUT_IGNORED uint64 = 0xFFFFFFFFFFFFFFFF

// ErrorString returns the registry name of a GetError code
func ErrorString(e Enum) string {

	switch e {
	case NO_ERROR:
		return "GL_NO_ERROR"
	case INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case STACK_OVERFLOW:
		return "GL_STACK_OVERFLOW"
	case STACK_UNDERFLOW:
		return "GL_STACK_UNDERFLOW"
	case OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	case INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case CONTEXT_LOST:
		return "GL_CONTEXT_LOST"
	default:
		return "unknown GL error"
	}
}
