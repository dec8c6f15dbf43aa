package framebuffer

import (
	"fmt"

	"github.com/bloeys/ngl/drawparams"
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/shaders"
	"github.com/bloeys/ngl/textures"
)

// maxColorAttachments bounds the attachment arrays of cache keys.
// Implementations report 8 almost everywhere.
const maxColorAttachments = 16

type attachmentKey struct {
	renderbuffer bool
	id           uint32
	level        int
	layer        int
}

// fboKey identifies a cached framebuffer object. Draw buffers are per
// framebuffer state, so programs writing different outputs get different
// objects for the same attachments.
type fboKey struct {
	colors       [maxColorAttachments]attachmentKey
	depth        attachmentKey
	stencil      attachmentKey
	depthStencil attachmentKey

	// drawBuffers[location] is the color attachment a fragment output writes
	// to, as COLOR_ATTACHMENTi, or NONE
	drawBuffers [maxColorAttachments]gl.Enum

	// Framebuffers without attachments
	width, height, layers, samples int
	fixedLocations                 bool
}

func (k fboKey) UsesObject(kind glcontext.ObjectKind, name uint32) bool {

	var rb bool
	switch kind {
	case glcontext.ObjectKind_Texture:
	case glcontext.ObjectKind_Renderbuffer:
		rb = true
	default:
		return false
	}

	uses := func(a attachmentKey) bool {
		return a.id == name && a.renderbuffer == rb
	}

	for _, c := range k.colors {
		if uses(c) {
			return true
		}
	}

	return uses(k.depth) || uses(k.stencil) || uses(k.depthStencil)
}

// cachedFramebuffer binds the framebuffer object for key to fbTarget,
// building it with attach on a cache miss. A freshly built object ends up
// bound to both targets.
func cachedFramebuffer(cc *glcontext.CommandContext, fbTarget gl.Enum, key fboKey, attach func(fbTarget gl.Enum)) (uint32, error) {

	cache := cc.FramebufferCache()
	if id, ok := cache.Get(key); ok {
		cc.BindFramebuffer(fbTarget, id)
		return id, nil
	}

	id := cc.GL.GenFramebuffer()
	if id == 0 {
		return 0, fmt.Errorf("%w: framebuffer", glcontext.ErrObjectCreation)
	}

	// DrawBuffers and ReadBuffer act on different bindings, so building
	// binds both
	cc.BindFramebuffer(gl.FRAMEBUFFER, id)
	attach(gl.FRAMEBUFFER)

	if status := cc.GL.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		cc.DeleteFramebuffer(id)
		return 0, &ValidationError{Err: ErrIncomplete, Detail: statusString(status)}
	}

	cache.Add(key, id)
	return id, nil
}

func statusString(status gl.Enum) string {

	switch status {
	case gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		return "incomplete attachment"
	case gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT:
		return "missing attachment"
	case gl.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER:
		return "incomplete draw buffer"
	case gl.FRAMEBUFFER_INCOMPLETE_READ_BUFFER:
		return "incomplete read buffer"
	case gl.FRAMEBUFFER_UNSUPPORTED:
		return "unsupported combination of formats"
	case gl.FRAMEBUFFER_INCOMPLETE_MULTISAMPLE:
		return "incomplete multisample"
	case gl.FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS:
		return "incomplete layer targets"
	default:
		return fmt.Sprintf("status 0x%X", status)
	}
}

// Output maps a fragment shader output to the attachment it writes to
type Output struct {
	Name       string
	Attachment Attachment
}

// attachedFramebuffer is a framebuffer built from user owned images
type attachedFramebuffer struct {
	surface

	ctx *glcontext.Context
	// names are the fragment outputs writing to colors, "" for the output at
	// location 0
	names  []string
	colors []Attachment
	ds     DepthStencil
	info   attachmentsInfo
	srgb   bool
}

func newAttached(cc *glcontext.CommandContext, names []string, colors []Attachment, ds DepthStencil) (*attachedFramebuffer, error) {

	info, err := validate(cc, colors, &ds)
	if err != nil {
		return nil, err
	}

	fb := &attachedFramebuffer{
		ctx:    cc.Context(),
		names:  names,
		colors: colors,
		ds:     ds,
		info:   info,
	}
	fb.surface = surface{t: fb}

	for _, c := range colors {
		if c.Format().Kind == textures.FormatKind_SRGB {
			fb.srgb = true
		}
	}

	// Build the object now so driver side incompleteness is reported here
	if _, err := fb.bind(cc, gl.DRAW_FRAMEBUFFER, fb.defaultDrawBuffers()); err != nil {
		return nil, err
	}

	return fb, nil
}

func (fb *attachedFramebuffer) key(drawBuffers [maxColorAttachments]gl.Enum) fboKey {

	k := fboKey{
		depth:        fb.ds.Depth.key(),
		stencil:      fb.ds.Stencil.key(),
		depthStencil: fb.ds.DepthStencil.key(),
		drawBuffers:  drawBuffers,
	}

	for i, c := range fb.colors {
		k.colors[i] = c.key()
	}

	return k
}

// defaultDrawBuffers writes output i to color attachment i
func (fb *attachedFramebuffer) defaultDrawBuffers() [maxColorAttachments]gl.Enum {

	var bufs [maxColorAttachments]gl.Enum
	for i := range fb.colors {
		bufs[i] = gl.COLOR_ATTACHMENT0 + gl.Enum(i)
	}

	return bufs
}

// programDrawBuffers routes every named output of prog to its attachment.
// Outputs prog does not write are skipped.
func (fb *attachedFramebuffer) programDrawBuffers(cc *glcontext.CommandContext, prog *shaders.Program) ([maxColorAttachments]gl.Enum, error) {

	var bufs [maxColorAttachments]gl.Enum
	for i, name := range fb.names {

		loc := 0
		if name != "" {

			l, ok := prog.OutputLocation(cc, name)
			if !ok {
				continue
			}
			loc = l
		}

		if loc >= cc.Caps.Limits.MaxDrawBuffers || loc >= maxColorAttachments {
			return bufs, fmt.Errorf("%w: output '%s' is at location %d", ErrTooManyColorAttachments, name, loc)
		}

		bufs[loc] = gl.COLOR_ATTACHMENT0 + gl.Enum(i)
	}

	return bufs, nil
}

func (fb *attachedFramebuffer) bind(cc *glcontext.CommandContext, fbTarget gl.Enum, drawBuffers [maxColorAttachments]gl.Enum) (uint32, error) {

	if err := cc.CheckOwner(fb.ctx); err != nil {
		return 0, err
	}

	for _, na := range attachmentList(fb.colors, &fb.ds) {
		if err := na.a.check(cc); err != nil {
			return 0, fmt.Errorf("framebuffer: %s attachment: %w", na.point, err)
		}
	}

	return cachedFramebuffer(cc, fbTarget, fb.key(drawBuffers), func(fbTarget gl.Enum) {

		for _, na := range attachmentList(fb.colors, &fb.ds) {
			na.a.attach(cc, fbTarget, na.glPt)
		}

		n := 0
		for i, b := range drawBuffers {
			if b != gl.NONE {
				n = i + 1
			}
		}

		if n == 0 {
			cc.GL.DrawBuffers([]gl.Enum{gl.NONE})
		} else {
			cc.GL.DrawBuffers(drawBuffers[:n])
		}

		if len(fb.colors) > 0 {
			cc.GL.ReadBuffer(gl.COLOR_ATTACHMENT0)
		} else {
			cc.GL.ReadBuffer(gl.NONE)
		}
	})
}

func (fb *attachedFramebuffer) bindDraw(cc *glcontext.CommandContext, prog *shaders.Program) error {

	bufs := fb.defaultDrawBuffers()
	if prog != nil {

		var err error
		bufs, err = fb.programDrawBuffers(cc, prog)
		if err != nil {
			return err
		}
	}

	if _, err := fb.bind(cc, gl.DRAW_FRAMEBUFFER, bufs); err != nil {
		return err
	}

	if cc.Caps.SupportsFramebufferSRGB() {
		cc.SetEnabled(gl.FRAMEBUFFER_SRGB, fb.srgb)
	}

	return nil
}

func (fb *attachedFramebuffer) bindRead(cc *glcontext.CommandContext) (textures.Format, error) {

	if len(fb.colors) == 0 {
		return textures.Format{}, ErrNoColorBuffer
	}

	if _, err := fb.bind(cc, gl.READ_FRAMEBUFFER, fb.defaultDrawBuffers()); err != nil {
		return textures.Format{}, err
	}

	return fb.colors[0].Format(), nil
}

func (fb *attachedFramebuffer) surfaceInfo() drawparams.SurfaceInfo {
	return drawparams.SurfaceInfo{
		Width:      fb.info.width,
		Height:     fb.info.height,
		HasDepth:   fb.ds.hasDepth(),
		HasStencil: fb.ds.hasStencil(),
	}
}

func (fb *attachedFramebuffer) uses(t *textures.Texture) bool {

	for _, na := range attachmentList(fb.colors, &fb.ds) {
		if tex := na.a.Texture(); tex != nil && tex == t {
			return true
		}
	}

	return false
}

func (fb *attachedFramebuffer) Dimensions() (width, height int) {
	return fb.info.width, fb.info.height
}

func (fb *attachedFramebuffer) Samples() int {
	return fb.info.samples
}

func (fb *attachedFramebuffer) HasDepthBuffer() bool {
	return fb.ds.hasDepth()
}

func (fb *attachedFramebuffer) HasStencilBuffer() bool {
	return fb.ds.hasStencil()
}

// SimpleFramebuffer renders into at most one color image plus optional
// depth and stencil images
type SimpleFramebuffer struct {
	*attachedFramebuffer
}

// NewSimpleFramebuffer attaches color and ds. color may be zero for depth
// only rendering, like shadow maps.
func NewSimpleFramebuffer(cc *glcontext.CommandContext, color Attachment, ds DepthStencil) (*SimpleFramebuffer, error) {

	var colors []Attachment
	var names []string
	if !color.IsZero() {
		colors = []Attachment{color}
		names = []string{""}
	}

	fb, err := newAttached(cc, names, colors, ds)
	if err != nil {
		return nil, err
	}

	return &SimpleFramebuffer{fb}, nil
}

func (fb *SimpleFramebuffer) Color() Attachment {
	if len(fb.colors) == 0 {
		return Attachment{}
	}
	return fb.colors[0]
}

// MultiOutputFramebuffer routes named fragment shader outputs to their own
// color images
type MultiOutputFramebuffer struct {
	*attachedFramebuffer
}

func NewMultiOutputFramebuffer(cc *glcontext.CommandContext, outputs []Output, ds DepthStencil) (*MultiOutputFramebuffer, error) {

	names := make([]string, len(outputs))
	colors := make([]Attachment, len(outputs))
	seen := make(map[string]bool, len(outputs))
	for i, o := range outputs {

		if o.Name == "" || seen[o.Name] {
			return nil, &ValidationError{Point: fmt.Sprintf("color %d", i), Err: ErrBadOutputName, Detail: fmt.Sprintf("'%s'", o.Name)}
		}

		seen[o.Name] = true
		names[i] = o.Name
		colors[i] = o.Attachment
	}

	fb, err := newAttached(cc, names, colors, ds)
	if err != nil {
		return nil, err
	}

	return &MultiOutputFramebuffer{fb}, nil
}

// Output returns the attachment the named output writes to
func (fb *MultiOutputFramebuffer) Output(name string) (Attachment, bool) {

	for i, n := range fb.names {
		if n == name {
			return fb.colors[i], true
		}
	}

	return Attachment{}, false
}
