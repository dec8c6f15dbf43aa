// Package gltest provides a recording fake of gl.Functions. It keeps enough
// driver state (bindings, buffer contents, texture images, programs) for the
// wrapper packages to be tested without a GPU.
package gltest

import (
	"fmt"
	"strings"

	"github.com/bloeys/ngl/gl"
)

var _ gl.Functions = &Functions{}

type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {

	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = fmt.Sprint(a)
	}

	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

// Var is an active uniform, attribute or fragment output of a fake program
type Var struct {
	Name     string
	Size     int
	Type     gl.Enum
	Location int
}

type BlockMember struct {
	Name         string
	Type         gl.Enum
	Size         int
	Offset       int
	ArrayStride  int
	MatrixStride int
}

type Block struct {
	Name     string
	DataSize int
	Binding  uint32
	Members  []BlockMember
}

// ProgramInfo describes what the next successfully linked program exposes
type ProgramInfo struct {
	Uniforms      []Var
	Attributes    []Var
	Outputs       []Var
	Blocks        []Block
	StorageBlocks []Block
}

type buffer struct {
	data      []byte
	mapped    bool
	immutable bool
}

type image struct {
	w, h, d int
	data    []byte
}

type imageKey struct {
	tex    uint32
	target gl.Enum
	level  int
}

type shader struct {
	typ      gl.Enum
	src      string
	compiled bool
	log      string
}

type program struct {
	shaders         map[uint32]bool
	linked          bool
	log             string
	info            ProgramInfo
	blockBindings   []uint32
	storageBindings []uint32
}

type indexedBinding struct {
	buffer       uint32
	offset, size int
}

type stencilFace struct {
	fn                         gl.Enum
	ref                        int
	valueMask, writeMask       uint32
	fail, depthFail, depthPass gl.Enum
}

type Functions struct {
	VersionString string
	GLSLString    string
	Vendor        string
	Renderer      string
	Exts          []string
	ContextFlags  int
	ProfileMask   int

	// Limits answers GetInteger for MAX_* style queries
	Limits      map[gl.Enum]int
	FloatLimits map[gl.Enum]float32

	Calls []Call
	// readingState is set while the context reads its state mirror back
	readingState bool

	// FailNextGen makes the next Gen*/Create* call return 0
	FailNextGen bool
	// PendingErrors are returned by GetError in order
	PendingErrors []gl.Enum
	// FailLink makes the next LinkProgram fail with this log
	FailLink string
	// NextProgram is what the next successful LinkProgram exposes
	NextProgram ProgramInfo
	// FramebufferStatus is returned by CheckFramebufferStatus
	FramebufferStatus gl.Enum
	// WaitResult is returned by ClientWaitSync for live syncs
	WaitResult gl.Enum
	// QueryResult is returned by GetQueryObjectui64
	QueryResult uint64
	// ReadPixelsFill is written to every byte of a ReadPixels destination
	ReadPixelsFill byte

	nextName uint32
	nextSync gl.Sync
	live     map[string]map[uint32]bool
	syncs    map[gl.Sync]bool
	debugCB  gl.DebugProc

	buffers  map[uint32]*buffer
	images   map[imageKey]*image
	shaders  map[uint32]*shader
	programs map[uint32]*program

	enabled      map[gl.Enum]bool
	curProgram   uint32
	vao          uint32
	bindings     map[gl.Enum]uint32
	vaoElements  map[uint32]uint32
	indexed      map[gl.Enum][]indexedBinding
	drawFB       uint32
	readFB       uint32
	renderbuffer uint32
	activeUnit   uint32
	units        []map[gl.Enum]uint32
	samplers     []uint32

	clearColor    [4]float32
	clearDepth    float32
	clearStencil  int
	viewport      [4]int
	scissor       [4]int
	depthFunc     gl.Enum
	depthMask     bool
	depthRange    [2]float32
	colorMask     [4]bool
	blendEq       [2]gl.Enum
	blendFunc     [4]gl.Enum
	blendColor    [4]float32
	stencil       [2]stencilFace
	cullFace      gl.Enum
	frontFace     gl.Enum
	polygonMode   gl.Enum
	polygonOffset [2]float32
	lineWidth     float32
	pointSize     float32
	provoking     gl.Enum
	restartIndex  uint32
	patchVertices int
	pack, unpack  int
	hints         map[gl.Enum]gl.Enum
}

var defaultLimits = map[gl.Enum]int{
	gl.MAX_TEXTURE_SIZE:                       16384,
	gl.MAX_3D_TEXTURE_SIZE:                    2048,
	gl.MAX_CUBE_MAP_TEXTURE_SIZE:              16384,
	gl.MAX_ARRAY_TEXTURE_LAYERS:               2048,
	gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS:       32,
	gl.MAX_DRAW_BUFFERS:                       8,
	gl.MAX_COLOR_ATTACHMENTS:                  8,
	gl.MAX_SAMPLES:                            8,
	gl.MAX_RENDERBUFFER_SIZE:                  16384,
	gl.MAX_UNIFORM_BUFFER_BINDINGS:            16,
	gl.MAX_UNIFORM_BLOCK_SIZE:                 65536,
	gl.UNIFORM_BUFFER_OFFSET_ALIGNMENT:        256,
	gl.MAX_SHADER_STORAGE_BUFFER_BINDINGS:     16,
	gl.SHADER_STORAGE_BUFFER_OFFSET_ALIGNMENT: 16,
	gl.MAX_ATOMIC_COUNTER_BUFFER_BINDINGS:     8,
	gl.MAX_TRANSFORM_FEEDBACK_BUFFERS:         4,
	gl.MAX_VERTEX_ATTRIBS:                     16,
	gl.MAX_PATCH_VERTICES:                     32,
	gl.MAX_TEXTURE_BUFFER_SIZE:                1 << 27,
	gl.MAX_FRAMEBUFFER_WIDTH:                  16384,
	gl.MAX_FRAMEBUFFER_HEIGHT:                 16384,
}

// New returns a fake driver reporting the given GL_VERSION string,
// e.g. "4.6.0 Fake" or "OpenGL ES 3.0 Fake".
func New(version string, extensions ...string) *Functions {

	f := &Functions{
		VersionString:     version,
		GLSLString:        "4.60",
		Vendor:            "ngl",
		Renderer:          "gltest",
		Exts:              extensions,
		ProfileMask:       int(gl.CONTEXT_CORE_PROFILE_BIT),
		Limits:            map[gl.Enum]int{},
		FloatLimits:       map[gl.Enum]float32{gl.MAX_TEXTURE_MAX_ANISOTROPY: 16},
		FramebufferStatus: gl.FRAMEBUFFER_COMPLETE,
		WaitResult:        gl.ALREADY_SIGNALED,

		live:     map[string]map[uint32]bool{},
		syncs:    map[gl.Sync]bool{},
		buffers:  map[uint32]*buffer{},
		images:   map[imageKey]*image{},
		shaders:  map[uint32]*shader{},
		programs: map[uint32]*program{},

		enabled:     map[gl.Enum]bool{gl.DITHER: true, gl.MULTISAMPLE: true},
		bindings:    map[gl.Enum]uint32{},
		vaoElements: map[uint32]uint32{},
		indexed:     map[gl.Enum][]indexedBinding{},
		hints:       map[gl.Enum]gl.Enum{gl.LINE_SMOOTH_HINT: gl.DONT_CARE, gl.POLYGON_SMOOTH_HINT: gl.DONT_CARE},

		clearDepth:    1,
		depthFunc:     gl.LESS,
		depthMask:     true,
		depthRange:    [2]float32{0, 1},
		colorMask:     [4]bool{true, true, true, true},
		blendEq:       [2]gl.Enum{gl.FUNC_ADD, gl.FUNC_ADD},
		blendFunc:     [4]gl.Enum{gl.ONE, gl.ZERO, gl.ONE, gl.ZERO},
		cullFace:      gl.BACK,
		frontFace:     gl.CCW,
		polygonMode:   gl.FILL,
		lineWidth:     1,
		pointSize:     1,
		provoking:     gl.LAST_VERTEX_CONVENTION,
		patchVertices: 3,
		pack:          4,
		unpack:        4,
	}

	for k, v := range defaultLimits {
		f.Limits[k] = v
	}

	for i := range f.stencil {
		f.stencil[i] = stencilFace{
			fn:        gl.ALWAYS,
			valueMask: 0xFFFFFFFF,
			writeMask: 0xFFFFFFFF,
			fail:      gl.KEEP,
			depthFail: gl.KEEP,
			depthPass: gl.KEEP,
		}
	}

	units := f.Limits[gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS]
	f.units = make([]map[gl.Enum]uint32, units)
	for i := range f.units {
		f.units[i] = map[gl.Enum]uint32{}
	}
	f.samplers = make([]uint32, units)

	return f
}

// SetViewport sets the initial viewport and scissor box, which a real driver
// sets to the window size.
func (f *Functions) SetViewport(width, height int) {
	f.viewport = [4]int{0, 0, width, height}
	f.scissor = [4]int{0, 0, width, height}
}

func (f *Functions) record(name string, args ...any) {

	if f.readingState {
		return
	}

	f.Calls = append(f.Calls, Call{Name: name, Args: args})
}

// BeginStateRead stops recording until EndStateRead. The context calls it
// around reading its state mirror back so consistency checks stay out of Calls.
func (f *Functions) BeginStateRead() {
	f.readingState = true
}

func (f *Functions) EndStateRead() {
	f.readingState = false
}

// Count is how many times the named entry point was called
func (f *Functions) Count(name string) int {

	n := 0
	for _, c := range f.Calls {
		if c.Name == name {
			n++
		}
	}

	return n
}

func (f *Functions) CallsNamed(name string) []Call {

	var out []Call
	for _, c := range f.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}

	return out
}

// Names lists the recorded calls in order, skipping the Get*/Is* queries
func (f *Functions) Names() []string {

	out := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		if strings.HasPrefix(c.Name, "Get") || strings.HasPrefix(c.Name, "Is") {
			continue
		}
		out = append(out, c.Name)
	}

	return out
}

// Reset forgets the recorded calls but keeps the driver state
func (f *Functions) Reset() {
	f.Calls = nil
}

// Live is how many objects of a kind ("buffer", "texture", "program",
// "shader", "vertex array", "framebuffer", "renderbuffer", "sampler", "query")
// exist in the fake driver.
func (f *Functions) Live(kind string) int {
	return len(f.live[kind])
}

func (f *Functions) IsLive(kind string, name uint32) bool {
	return f.live[kind][name]
}

func (f *Functions) LiveSyncs() int {
	return len(f.syncs)
}

// BufferContents returns the storage of buffer b
func (f *Functions) BufferContents(b uint32) []byte {

	if buf, ok := f.buffers[b]; ok {
		return buf.data
	}

	return nil
}

// EmitDebug sends a message through the installed debug callback
func (f *Functions) EmitDebug(source, msgType gl.Enum, id uint32, severity gl.Enum, msg string) {
	if f.debugCB != nil {
		f.debugCB(source, msgType, id, severity, msg)
	}
}

func (f *Functions) gen(kind string) uint32 {

	if f.FailNextGen {
		f.FailNextGen = false
		return 0
	}

	f.nextName++
	if f.live[kind] == nil {
		f.live[kind] = map[uint32]bool{}
	}
	f.live[kind][f.nextName] = true

	return f.nextName
}

func (f *Functions) del(kind string, name uint32) {
	delete(f.live[kind], name)
}

func (f *Functions) version() gl.Version {
	v, _ := gl.ParseVersion(f.VersionString)
	return v
}

/*
	General
*/

func (f *Functions) GetError() gl.Enum {

	f.record("GetError")
	if len(f.PendingErrors) == 0 {
		return gl.NO_ERROR
	}

	e := f.PendingErrors[0]
	f.PendingErrors = f.PendingErrors[1:]
	return e
}

func (f *Functions) GetString(name gl.Enum) string {

	f.record("GetString", name)
	switch name {
	case gl.VERSION:
		return f.VersionString
	case gl.SHADING_LANGUAGE_VERSION:
		return f.GLSLString
	case gl.VENDOR:
		return f.Vendor
	case gl.RENDERER:
		return f.Renderer
	case gl.EXTENSIONS:
		return strings.Join(f.Exts, " ")
	}

	return ""
}

func (f *Functions) GetStringi(name gl.Enum, index uint32) string {

	f.record("GetStringi", name, index)
	if name == gl.EXTENSIONS && int(index) < len(f.Exts) {
		return f.Exts[index]
	}

	return ""
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (f *Functions) GetInteger(pname gl.Enum) int {

	f.record("GetInteger", pname)

	if v, ok := f.Limits[pname]; ok {
		return v
	}

	for t, q := range bindingQueries {
		if q == pname {
			return int(f.bindings[t])
		}
	}

	for t, q := range textureQueries {
		if q == pname {
			return int(f.units[f.activeUnit][t])
		}
	}

	v := f.version()
	switch pname {
	case gl.MAJOR_VERSION:
		return v.Major
	case gl.MINOR_VERSION:
		return v.Minor
	case gl.NUM_EXTENSIONS:
		return len(f.Exts)
	case gl.CONTEXT_FLAGS:
		return f.ContextFlags
	case gl.CONTEXT_PROFILE_MASK:
		return f.ProfileMask
	case gl.CURRENT_PROGRAM:
		return int(f.curProgram)
	case gl.VERTEX_ARRAY_BINDING:
		return int(f.vao)
	case gl.ELEMENT_ARRAY_BUFFER_BINDING:
		return int(f.vaoElements[f.vao])
	case gl.DRAW_FRAMEBUFFER_BINDING:
		return int(f.drawFB)
	case gl.READ_FRAMEBUFFER_BINDING:
		return int(f.readFB)
	case gl.RENDERBUFFER_BINDING:
		return int(f.renderbuffer)
	case gl.ACTIVE_TEXTURE:
		return int(gl.TEXTURE0 + f.activeUnit)
	case gl.SAMPLER_BINDING:
		return int(f.samplers[f.activeUnit])
	case gl.STENCIL_CLEAR_VALUE:
		return f.clearStencil
	case gl.DEPTH_FUNC:
		return int(f.depthFunc)
	case gl.DEPTH_WRITEMASK:
		return boolInt(f.depthMask)
	case gl.BLEND_EQUATION_RGB:
		return int(f.blendEq[0])
	case gl.BLEND_EQUATION_ALPHA:
		return int(f.blendEq[1])
	case gl.BLEND_SRC_RGB:
		return int(f.blendFunc[0])
	case gl.BLEND_DST_RGB:
		return int(f.blendFunc[1])
	case gl.BLEND_SRC_ALPHA:
		return int(f.blendFunc[2])
	case gl.BLEND_DST_ALPHA:
		return int(f.blendFunc[3])
	case gl.STENCIL_FUNC:
		return int(f.stencil[0].fn)
	case gl.STENCIL_REF:
		return f.stencil[0].ref
	case gl.STENCIL_VALUE_MASK:
		return int(f.stencil[0].valueMask)
	case gl.STENCIL_WRITEMASK:
		return int(f.stencil[0].writeMask)
	case gl.STENCIL_FAIL:
		return int(f.stencil[0].fail)
	case gl.STENCIL_PASS_DEPTH_FAIL:
		return int(f.stencil[0].depthFail)
	case gl.STENCIL_PASS_DEPTH_PASS:
		return int(f.stencil[0].depthPass)
	case gl.STENCIL_BACK_FUNC:
		return int(f.stencil[1].fn)
	case gl.STENCIL_BACK_REF:
		return f.stencil[1].ref
	case gl.STENCIL_BACK_VALUE_MASK:
		return int(f.stencil[1].valueMask)
	case gl.STENCIL_BACK_WRITEMASK:
		return int(f.stencil[1].writeMask)
	case gl.STENCIL_BACK_FAIL:
		return int(f.stencil[1].fail)
	case gl.STENCIL_BACK_PASS_DEPTH_FAIL:
		return int(f.stencil[1].depthFail)
	case gl.STENCIL_BACK_PASS_DEPTH_PASS:
		return int(f.stencil[1].depthPass)
	case gl.CULL_FACE_MODE:
		return int(f.cullFace)
	case gl.FRONT_FACE:
		return int(f.frontFace)
	case gl.PROVOKING_VERTEX:
		return int(f.provoking)
	case gl.PRIMITIVE_RESTART_INDEX:
		return int(f.restartIndex)
	case gl.PATCH_VERTICES:
		return f.patchVertices
	case gl.PACK_ALIGNMENT:
		return f.pack
	case gl.UNPACK_ALIGNMENT:
		return f.unpack
	case gl.LINE_SMOOTH_HINT, gl.POLYGON_SMOOTH_HINT:
		return int(f.hints[pname])
	}

	return 0
}

var bindingQueries = map[gl.Enum]gl.Enum{
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

var indexedQueries = map[gl.Enum][3]gl.Enum{
	gl.UNIFORM_BUFFER:            {gl.UNIFORM_BUFFER_BINDING, gl.UNIFORM_BUFFER_START, gl.UNIFORM_BUFFER_SIZE},
	gl.SHADER_STORAGE_BUFFER:     {gl.SHADER_STORAGE_BUFFER_BINDING, gl.SHADER_STORAGE_BUFFER_START, gl.SHADER_STORAGE_BUFFER_SIZE},
	gl.ATOMIC_COUNTER_BUFFER:     {gl.ATOMIC_COUNTER_BUFFER_BINDING, gl.ATOMIC_COUNTER_BUFFER_START, gl.ATOMIC_COUNTER_BUFFER_SIZE},
	gl.TRANSFORM_FEEDBACK_BUFFER: {gl.TRANSFORM_FEEDBACK_BUFFER_BINDING, gl.TRANSFORM_FEEDBACK_BUFFER_START, gl.TRANSFORM_FEEDBACK_BUFFER_SIZE},
}

var textureQueries = map[gl.Enum]gl.Enum{
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

func (f *Functions) GetIntegeri(pname gl.Enum, index uint32) int {

	f.record("GetIntegeri", pname, index)

	for t, q := range indexedQueries {

		if int(index) >= len(f.indexed[t]) {
			continue
		}

		b := f.indexed[t][index]
		switch pname {
		case q[0]:
			return int(b.buffer)
		case q[1]:
			return b.offset
		case q[2]:
			return b.size
		}
	}

	return 0
}

func (f *Functions) GetInteger4(pname gl.Enum) [4]int {

	f.record("GetInteger4", pname)
	switch pname {
	case gl.VIEWPORT:
		return f.viewport
	case gl.SCISSOR_BOX:
		return f.scissor
	case gl.COLOR_WRITEMASK:
		return [4]int{boolInt(f.colorMask[0]), boolInt(f.colorMask[1]), boolInt(f.colorMask[2]), boolInt(f.colorMask[3])}
	case gl.POLYGON_MODE:
		return [4]int{int(f.polygonMode), int(f.polygonMode)}
	case gl.MAX_VIEWPORT_DIMS:
		return [4]int{16384, 16384}
	}

	return [4]int{}
}

func (f *Functions) GetFloat(pname gl.Enum) float32 {

	f.record("GetFloat", pname)
	if v, ok := f.FloatLimits[pname]; ok {
		return v
	}

	switch pname {
	case gl.DEPTH_CLEAR_VALUE:
		return f.clearDepth
	case gl.POLYGON_OFFSET_FACTOR:
		return f.polygonOffset[0]
	case gl.POLYGON_OFFSET_UNITS:
		return f.polygonOffset[1]
	case gl.LINE_WIDTH:
		return f.lineWidth
	case gl.POINT_SIZE:
		return f.pointSize
	}

	return 0
}

func (f *Functions) GetFloat4(pname gl.Enum) [4]float32 {

	f.record("GetFloat4", pname)
	switch pname {
	case gl.COLOR_CLEAR_VALUE:
		return f.clearColor
	case gl.BLEND_COLOR:
		return f.blendColor
	case gl.DEPTH_RANGE:
		return [4]float32{f.depthRange[0], f.depthRange[1]}
	}

	return [4]float32{}
}

func (f *Functions) IsEnabled(cap gl.Enum) bool {
	f.record("IsEnabled", cap)
	return f.enabled[cap]
}

func (f *Functions) Enable(cap gl.Enum) {
	f.record("Enable", cap)
	f.enabled[cap] = true
}

func (f *Functions) Disable(cap gl.Enum) {
	f.record("Disable", cap)
	f.enabled[cap] = false
}

func (f *Functions) Flush()  { f.record("Flush") }
func (f *Functions) Finish() { f.record("Finish") }

func (f *Functions) Hint(target, mode gl.Enum) {
	f.record("Hint", target, mode)
	f.hints[target] = mode
}

func (f *Functions) PixelStorei(pname gl.Enum, param int) {

	f.record("PixelStorei", pname, param)
	if pname == gl.PACK_ALIGNMENT {
		f.pack = param
	} else if pname == gl.UNPACK_ALIGNMENT {
		f.unpack = param
	}
}

func (f *Functions) MemoryBarrier(barriers gl.Enum) {
	f.record("MemoryBarrier", barriers)
}

/*
	Fixed function
*/

func (f *Functions) Viewport(x, y, width, height int) {
	f.record("Viewport", x, y, width, height)
	f.viewport = [4]int{x, y, width, height}
}

func (f *Functions) Scissor(x, y, width, height int) {
	f.record("Scissor", x, y, width, height)
	f.scissor = [4]int{x, y, width, height}
}

func (f *Functions) ClearColor(r, g, b, a float32) {
	f.record("ClearColor", r, g, b, a)
	f.clearColor = [4]float32{r, g, b, a}
}

func (f *Functions) ClearDepth(d float64) {
	f.record("ClearDepth", d)
	f.clearDepth = float32(d)
}

func (f *Functions) ClearDepthf(d float32) {
	f.record("ClearDepthf", d)
	f.clearDepth = d
}

func (f *Functions) ClearStencil(s int) {
	f.record("ClearStencil", s)
	f.clearStencil = s
}

func (f *Functions) Clear(mask gl.Enum) {
	f.record("Clear", mask)
}

func (f *Functions) DepthFunc(fn gl.Enum) {
	f.record("DepthFunc", fn)
	f.depthFunc = fn
}

func (f *Functions) DepthMask(mask bool) {
	f.record("DepthMask", mask)
	f.depthMask = mask
}

func (f *Functions) DepthRange(near, far float64) {
	f.record("DepthRange", near, far)
	f.depthRange = [2]float32{float32(near), float32(far)}
}

func (f *Functions) DepthRangef(near, far float32) {
	f.record("DepthRangef", near, far)
	f.depthRange = [2]float32{near, far}
}

func (f *Functions) ColorMask(r, g, b, a bool) {
	f.record("ColorMask", r, g, b, a)
	f.colorMask = [4]bool{r, g, b, a}
}

func (f *Functions) BlendEquationSeparate(modeRGB, modeAlpha gl.Enum) {
	f.record("BlendEquationSeparate", modeRGB, modeAlpha)
	f.blendEq = [2]gl.Enum{modeRGB, modeAlpha}
}

func (f *Functions) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha gl.Enum) {
	f.record("BlendFuncSeparate", srcRGB, dstRGB, srcAlpha, dstAlpha)
	f.blendFunc = [4]gl.Enum{srcRGB, dstRGB, srcAlpha, dstAlpha}
}

func (f *Functions) BlendColor(r, g, b, a float32) {
	f.record("BlendColor", r, g, b, a)
	f.blendColor = [4]float32{r, g, b, a}
}

func (f *Functions) stencilFaces(face gl.Enum) []*stencilFace {

	switch face {
	case gl.FRONT:
		return []*stencilFace{&f.stencil[0]}
	case gl.BACK:
		return []*stencilFace{&f.stencil[1]}
	default:
		return []*stencilFace{&f.stencil[0], &f.stencil[1]}
	}
}

func (f *Functions) StencilFuncSeparate(face, fn gl.Enum, ref int, mask uint32) {

	f.record("StencilFuncSeparate", face, fn, ref, mask)
	for _, s := range f.stencilFaces(face) {
		s.fn, s.ref, s.valueMask = fn, ref, mask
	}
}

func (f *Functions) StencilOpSeparate(face, sfail, dpfail, dppass gl.Enum) {

	f.record("StencilOpSeparate", face, sfail, dpfail, dppass)
	for _, s := range f.stencilFaces(face) {
		s.fail, s.depthFail, s.depthPass = sfail, dpfail, dppass
	}
}

func (f *Functions) StencilMaskSeparate(face gl.Enum, mask uint32) {

	f.record("StencilMaskSeparate", face, mask)
	for _, s := range f.stencilFaces(face) {
		s.writeMask = mask
	}
}

func (f *Functions) CullFace(mode gl.Enum) {
	f.record("CullFace", mode)
	f.cullFace = mode
}

func (f *Functions) FrontFace(mode gl.Enum) {
	f.record("FrontFace", mode)
	f.frontFace = mode
}

func (f *Functions) PolygonMode(face, mode gl.Enum) {
	f.record("PolygonMode", face, mode)
	f.polygonMode = mode
}

func (f *Functions) PolygonOffset(factor, units float32) {
	f.record("PolygonOffset", factor, units)
	f.polygonOffset = [2]float32{factor, units}
}

func (f *Functions) LineWidth(width float32) {
	f.record("LineWidth", width)
	f.lineWidth = width
}

func (f *Functions) PointSize(size float32) {
	f.record("PointSize", size)
	f.pointSize = size
}

func (f *Functions) ProvokingVertex(mode gl.Enum) {
	f.record("ProvokingVertex", mode)
	f.provoking = mode
}

func (f *Functions) PrimitiveRestartIndex(index uint32) {
	f.record("PrimitiveRestartIndex", index)
	f.restartIndex = index
}

func (f *Functions) PatchParameteri(pname gl.Enum, value int) {
	f.record("PatchParameteri", pname, value)
	if pname == gl.PATCH_VERTICES {
		f.patchVertices = value
	}
}
