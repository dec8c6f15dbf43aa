package drawparams

import (
	"errors"
	"fmt"

	"github.com/bloeys/ngl/assert"
	"github.com/bloeys/ngl/buffers"
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
)

var (
	ErrDepthClampNotSupported           = errors.New("drawparams: depth clamping is not supported by this context")
	ErrProvokingVertexNotSupported      = errors.New("drawparams: choosing the provoking vertex is not supported by this context")
	ErrFixedIndexRestartingNotSupported = errors.New("drawparams: primitive restart is not supported by this context")
	ErrPolygonModeNotSupported          = errors.New("drawparams: polygon modes other than fill are not supported by this context")
	ErrSmoothingNotSupported            = errors.New("drawparams: line and polygon smoothing is not supported by this context")
	ErrTransformFeedbackNotSupported    = errors.New("drawparams: transform feedback is not supported by this context")
	ErrQueryNotSupported                = errors.New("drawparams: query type is not supported by this context")
	ErrQueryTypeMismatch                = errors.New("drawparams: query type does not match its draw parameter")
	ErrInvalidDepthRange                = errors.New("drawparams: depth range values must be within [0, 1]")
	ErrInvalidLineWidth                 = errors.New("drawparams: line width and point size can not be negative")
	ErrViewportTooLarge                 = errors.New("drawparams: viewport is larger than the maximum viewport dimensions")
	ErrInvalidRect                      = errors.New("drawparams: rect has a negative size")
	ErrNoDepthBuffer                    = errors.New("drawparams: depth testing or writing needs a surface with a depth buffer")
	ErrNoStencilBuffer                  = errors.New("drawparams: stencil testing or writing needs a surface with a stencil buffer")
)

// Rect is a region of a surface in pixels with the origin at the bottom left
type Rect struct {
	Left   int
	Bottom int
	Width  int
	Height int
}

type DepthTest uint8

const (
	// DepthTest_Overwrite always passes
	DepthTest_Overwrite DepthTest = iota
	// DepthTest_Ignore never passes
	DepthTest_Ignore
	DepthTest_IfEqual
	DepthTest_IfNotEqual
	DepthTest_IfMore
	DepthTest_IfMoreOrEqual
	DepthTest_IfLess
	DepthTest_IfLessOrEqual
)

func (d DepthTest) ToGL() gl.Enum {

	switch d {
	case DepthTest_Overwrite:
		return gl.ALWAYS
	case DepthTest_Ignore:
		return gl.NEVER
	case DepthTest_IfEqual:
		return gl.EQUAL
	case DepthTest_IfNotEqual:
		return gl.NOTEQUAL
	case DepthTest_IfMore:
		return gl.GREATER
	case DepthTest_IfMoreOrEqual:
		return gl.GEQUAL
	case DepthTest_IfLess:
		return gl.LESS
	case DepthTest_IfLessOrEqual:
		return gl.LEQUAL
	}

	assert.T(false, "Unexpected DepthTest value '%d'", d)
	return 0
}

type Depth struct {
	Test  DepthTest
	Write bool
	// Range maps normalized depth to window depth, both within [0, 1]
	Range [2]float32
	// Clamp disables near and far plane clipping
	Clamp bool
}

// usesBuffer is false when the depth test could be disabled entirely
func (d *Depth) usesBuffer() bool {
	return d.Test != DepthTest_Overwrite || d.Write
}

type StencilTest uint8

const (
	StencilTest_AlwaysPass StencilTest = iota
	StencilTest_AlwaysFail
	StencilTest_IfLess
	StencilTest_IfLessOrEqual
	StencilTest_IfMore
	StencilTest_IfMoreOrEqual
	StencilTest_IfEqual
	StencilTest_IfNotEqual
)

func (s StencilTest) ToGL() gl.Enum {

	switch s {
	case StencilTest_AlwaysPass:
		return gl.ALWAYS
	case StencilTest_AlwaysFail:
		return gl.NEVER
	case StencilTest_IfLess:
		return gl.LESS
	case StencilTest_IfLessOrEqual:
		return gl.LEQUAL
	case StencilTest_IfMore:
		return gl.GREATER
	case StencilTest_IfMoreOrEqual:
		return gl.GEQUAL
	case StencilTest_IfEqual:
		return gl.EQUAL
	case StencilTest_IfNotEqual:
		return gl.NOTEQUAL
	}

	assert.T(false, "Unexpected StencilTest value '%d'", s)
	return 0
}

type StencilOp uint8

const (
	StencilOp_Keep StencilOp = iota
	StencilOp_Zero
	StencilOp_Replace
	StencilOp_Increment
	StencilOp_IncrementWrap
	StencilOp_Decrement
	StencilOp_DecrementWrap
	StencilOp_Invert
)

func (s StencilOp) ToGL() gl.Enum {

	switch s {
	case StencilOp_Keep:
		return gl.KEEP
	case StencilOp_Zero:
		return gl.ZERO
	case StencilOp_Replace:
		return gl.REPLACE
	case StencilOp_Increment:
		return gl.INCR
	case StencilOp_IncrementWrap:
		return gl.INCR_WRAP
	case StencilOp_Decrement:
		return gl.DECR
	case StencilOp_DecrementWrap:
		return gl.DECR_WRAP
	case StencilOp_Invert:
		return gl.INVERT
	}

	assert.T(false, "Unexpected StencilOp value '%d'", s)
	return 0
}

// StencilFace is the stencil state for one side of polygons. Points and
// lines use the front face.
type StencilFace struct {
	Test StencilTest
	Ref  int
	// ReadMask is ANDed with both Ref and the stored value before testing
	ReadMask  uint32
	WriteMask uint32

	FailOp      StencilOp
	DepthFailOp StencilOp
	PassOp      StencilOp
}

func (s *StencilFace) isNoop() bool {
	return s.Test == StencilTest_AlwaysPass && s.FailOp == StencilOp_Keep && s.DepthFailOp == StencilOp_Keep && s.PassOp == StencilOp_Keep
}

type Stencil struct {
	Front StencilFace
	Back  StencilFace
}

func (s *Stencil) enabled() bool {
	return !s.Front.isNoop() || !s.Back.isNoop()
}

func defaultStencilFace() StencilFace {
	return StencilFace{
		Test:      StencilTest_AlwaysPass,
		ReadMask:  0xFFFFFFFF,
		WriteMask: 0xFFFFFFFF,
	}
}

type BlendEquation uint8

const (
	BlendEquation_Add BlendEquation = iota
	BlendEquation_Subtract
	BlendEquation_ReverseSubtract
	BlendEquation_Min
	BlendEquation_Max
)

func (b BlendEquation) ToGL() gl.Enum {

	switch b {
	case BlendEquation_Add:
		return gl.FUNC_ADD
	case BlendEquation_Subtract:
		return gl.FUNC_SUBTRACT
	case BlendEquation_ReverseSubtract:
		return gl.FUNC_REVERSE_SUBTRACT
	case BlendEquation_Min:
		return gl.MIN
	case BlendEquation_Max:
		return gl.MAX
	}

	assert.T(false, "Unexpected BlendEquation value '%d'", b)
	return 0
}

type BlendFactor uint8

const (
	BlendFactor_Zero BlendFactor = iota
	BlendFactor_One
	BlendFactor_SrcColor
	BlendFactor_OneMinusSrcColor
	BlendFactor_DstColor
	BlendFactor_OneMinusDstColor
	BlendFactor_SrcAlpha
	BlendFactor_OneMinusSrcAlpha
	BlendFactor_DstAlpha
	BlendFactor_OneMinusDstAlpha
	BlendFactor_ConstantColor
	BlendFactor_OneMinusConstantColor
	BlendFactor_ConstantAlpha
	BlendFactor_OneMinusConstantAlpha
	BlendFactor_SrcAlphaSaturate
)

func (b BlendFactor) ToGL() gl.Enum {

	switch b {
	case BlendFactor_Zero:
		return gl.ZERO
	case BlendFactor_One:
		return gl.ONE
	case BlendFactor_SrcColor:
		return gl.SRC_COLOR
	case BlendFactor_OneMinusSrcColor:
		return gl.ONE_MINUS_SRC_COLOR
	case BlendFactor_DstColor:
		return gl.DST_COLOR
	case BlendFactor_OneMinusDstColor:
		return gl.ONE_MINUS_DST_COLOR
	case BlendFactor_SrcAlpha:
		return gl.SRC_ALPHA
	case BlendFactor_OneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case BlendFactor_DstAlpha:
		return gl.DST_ALPHA
	case BlendFactor_OneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	case BlendFactor_ConstantColor:
		return gl.CONSTANT_COLOR
	case BlendFactor_OneMinusConstantColor:
		return gl.ONE_MINUS_CONSTANT_COLOR
	case BlendFactor_ConstantAlpha:
		return gl.CONSTANT_ALPHA
	case BlendFactor_OneMinusConstantAlpha:
		return gl.ONE_MINUS_CONSTANT_ALPHA
	case BlendFactor_SrcAlphaSaturate:
		return gl.SRC_ALPHA_SATURATE
	}

	assert.T(false, "Unexpected BlendFactor value '%d'", b)
	return 0
}

// BlendFunc computes Equation(Src*source, Dst*destination)
type BlendFunc struct {
	Equation BlendEquation
	Src      BlendFactor
	Dst      BlendFactor
}

// Replace writes the source unchanged
var Replace = BlendFunc{Equation: BlendEquation_Add, Src: BlendFactor_One, Dst: BlendFactor_Zero}

type Blend struct {
	Color BlendFunc
	Alpha BlendFunc
	// Constant is used by the Constant* factors
	Constant [4]float32
}

func (b *Blend) enabled() bool {
	return b.Color != Replace || b.Alpha != Replace
}

// AlphaBlending is classic src over dst transparency
func AlphaBlending() Blend {

	f := BlendFunc{Equation: BlendEquation_Add, Src: BlendFactor_SrcAlpha, Dst: BlendFactor_OneMinusSrcAlpha}
	return Blend{Color: f, Alpha: f}
}

type BackfaceCulling uint8

const (
	BackfaceCulling_None BackfaceCulling = iota
	BackfaceCulling_Clockwise
	BackfaceCulling_CounterClockwise
)

type PolygonMode uint8

const (
	PolygonMode_Fill PolygonMode = iota
	PolygonMode_Line
	PolygonMode_Point
)

func (p PolygonMode) ToGL() gl.Enum {

	switch p {
	case PolygonMode_Fill:
		return gl.FILL
	case PolygonMode_Line:
		return gl.LINE
	case PolygonMode_Point:
		return gl.POINT
	}

	assert.T(false, "Unexpected PolygonMode value '%d'", p)
	return 0
}

// PolygonOffset adds Factor*slope + Units*r to the depth of the selected
// polygon modes
type PolygonOffset struct {
	Factor float32
	Units  float32
	Fill   bool
	Line   bool
	Point  bool
}

type ProvokingVertex uint8

const (
	ProvokingVertex_Last ProvokingVertex = iota
	ProvokingVertex_First
)

func (p ProvokingVertex) ToGL() gl.Enum {
	if p == ProvokingVertex_First {
		return gl.FIRST_VERTEX_CONVENTION
	}
	return gl.LAST_VERTEX_CONVENTION
}

type Smooth uint8

const (
	Smooth_None Smooth = iota
	Smooth_Fastest
	Smooth_Nicest
	Smooth_DontCare
)

func (s Smooth) ToGL() gl.Enum {

	switch s {
	case Smooth_Fastest:
		return gl.FASTEST
	case Smooth_Nicest:
		return gl.NICEST
	}

	return gl.DONT_CARE
}

// TransformFeedback captures vertex shader outputs into Buffer. Outputs are
// selected in the shader with xfb_buffer/xfb_offset layout qualifiers.
type TransformFeedback struct {
	Buffer *buffers.Alloc
	// RasterizerDiscard stops after transform feedback without drawing
	RasterizerDiscard bool
}

// DrawParameters is the fixed function state of one draw. Start from
// Default() and change what the draw needs.
type DrawParameters struct {
	Depth   Depth
	Stencil Stencil
	Blend   Blend

	ColorMask [4]bool

	LineWidth float32
	// PointSize of 0 lets the vertex shader write gl_PointSize
	PointSize float32

	BackfaceCulling BackfaceCulling
	PolygonMode     PolygonMode
	PolygonOffset   PolygonOffset

	Multisampling bool
	Dithering     bool

	// Viewport nil covers the whole surface
	Viewport *Rect
	// Scissor nil disables the scissor test
	Scissor *Rect

	ProvokingVertex ProvokingVertex
	// PrimitiveRestart restarts strips at the largest value of the index type
	PrimitiveRestart bool
	Smooth           Smooth

	SamplesPassed       *Query
	TimeElapsed         *Query
	PrimitivesGenerated *Query
	// PrimitivesWritten counts primitives captured by transform feedback
	PrimitivesWritten *Query

	TransformFeedback *TransformFeedback
}

func Default() DrawParameters {
	return DrawParameters{
		Depth: Depth{
			Test:  DepthTest_Overwrite,
			Range: [2]float32{0, 1},
		},
		Stencil: Stencil{
			Front: defaultStencilFace(),
			Back:  defaultStencilFace(),
		},
		Blend:         Blend{Color: Replace, Alpha: Replace},
		ColorMask:     [4]bool{true, true, true, true},
		LineWidth:     1,
		PointSize:     1,
		Multisampling: true,
		Dithering:     true,
	}
}

// SurfaceInfo describes the surface a draw targets
type SurfaceInfo struct {
	Width      int
	Height     int
	HasDepth   bool
	HasStencil bool
}

func validateRect(r *Rect, caps *glcontext.Capabilities) error {

	if r.Width < 0 || r.Height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidRect, r.Width, r.Height)
	}

	if r.Width > caps.Limits.MaxViewportDims[0] || r.Height > caps.Limits.MaxViewportDims[1] {
		return fmt.Errorf("%w: %dx%d exceeds %dx%d", ErrViewportTooLarge, r.Width, r.Height, caps.Limits.MaxViewportDims[0], caps.Limits.MaxViewportDims[1])
	}

	return nil
}

func validateQuery(q *Query, allowed ...QueryType) error {

	if q == nil {
		return nil
	}

	for _, t := range allowed {
		if q.typ == t {
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrQueryTypeMismatch, q.typ)
}

// Validate checks the parameters against what the context and the surface
// support. A nil surface skips the surface checks.
func (p *DrawParameters) Validate(caps *glcontext.Capabilities, surf *SurfaceInfo) error {

	d := &p.Depth
	if d.Range[0] < 0 || d.Range[0] > 1 || d.Range[1] < 0 || d.Range[1] > 1 {
		return fmt.Errorf("%w: (%v, %v)", ErrInvalidDepthRange, d.Range[0], d.Range[1])
	}

	if d.Clamp && !caps.SupportsDepthClamp() {
		return ErrDepthClampNotSupported
	}

	if p.LineWidth < 0 || p.PointSize < 0 {
		return ErrInvalidLineWidth
	}

	if p.PolygonMode != PolygonMode_Fill && !caps.SupportsPolygonMode() {
		return ErrPolygonModeNotSupported
	}

	if p.ProvokingVertex == ProvokingVertex_First && !caps.SupportsProvokingVertex() {
		return ErrProvokingVertexNotSupported
	}

	if p.PrimitiveRestart && !caps.SupportsFixedIndexRestart() && !caps.SupportsPrimitiveRestart() {
		return ErrFixedIndexRestartingNotSupported
	}

	if p.Smooth != Smooth_None && caps.Version.Api != gl.ApiGL {
		return ErrSmoothingNotSupported
	}

	if p.Viewport != nil {
		if err := validateRect(p.Viewport, caps); err != nil {
			return err
		}
	}

	if p.Scissor != nil && (p.Scissor.Width < 0 || p.Scissor.Height < 0) {
		return fmt.Errorf("%w: scissor %dx%d", ErrInvalidRect, p.Scissor.Width, p.Scissor.Height)
	}

	if err := validateQuery(p.SamplesPassed, QueryType_SamplesPassed, QueryType_AnySamplesPassed); err != nil {
		return err
	}
	if err := validateQuery(p.TimeElapsed, QueryType_TimeElapsed); err != nil {
		return err
	}
	if err := validateQuery(p.PrimitivesGenerated, QueryType_PrimitivesGenerated); err != nil {
		return err
	}
	if err := validateQuery(p.PrimitivesWritten, QueryType_PrimitivesWritten); err != nil {
		return err
	}

	if p.TransformFeedback != nil && !caps.SupportsTransformFeedback() {
		return ErrTransformFeedbackNotSupported
	}

	if surf == nil {
		return nil
	}

	if d.usesBuffer() && !surf.HasDepth {
		return ErrNoDepthBuffer
	}

	if p.Stencil.enabled() && !surf.HasStencil {
		return ErrNoStencilBuffer
	}

	return nil
}
