package framebuffer

import (
	"errors"
	"fmt"

	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/textures"
)

var (
	ErrNoAttachments            = errors.New("framebuffer: no attachments")
	ErrTooManyColorAttachments  = errors.New("framebuffer: too many color attachments")
	ErrWrongAttachmentFormat    = errors.New("framebuffer: format can not be attached to this point")
	ErrDimensionsMismatch       = errors.New("framebuffer: attachments have different dimensions")
	ErrSamplesMismatch          = errors.New("framebuffer: attachments have different sample counts")
	ErrLayeringMismatch         = errors.New("framebuffer: layered and non-layered attachments are mixed")
	ErrDuplicateAttachment      = errors.New("framebuffer: image is attached more than once")
	ErrConflictingDepthStencil  = errors.New("framebuffer: depth-stencil attachment used with a depth or stencil attachment")
	ErrFramebufferTooLarge      = errors.New("framebuffer: dimensions exceed the implementation limits")
	ErrIncomplete               = errors.New("framebuffer: driver reports the framebuffer incomplete")
	ErrFramebufferNotSupported  = errors.New("framebuffer: framebuffer objects are not supported")
	ErrNoAttachmentsUnsupported = errors.New("framebuffer: framebuffers without attachments need GL 4.3, GLES 3.1 or ARB_framebuffer_no_attachments")
)

// ValidationError reports an attachment set that can not form a framebuffer
type ValidationError struct {
	// Point names the attachment point at fault, empty when the set as a whole is wrong
	Point  string
	Detail string
	Err    error
}

func (e *ValidationError) Error() string {

	msg := e.Err.Error()
	if e.Point != "" {
		msg += " (" + e.Point + ")"
	}

	if e.Detail != "" {
		msg += ": " + e.Detail
	}

	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Attachment is an image a framebuffer renders into: a level, layer or cube
// face of a texture, or a renderbuffer. The zero value is no attachment.
type Attachment struct {
	image textures.TextureImage
	rb    *textures.Renderbuffer
}

func TextureAttachment(img textures.TextureImage) Attachment {
	return Attachment{image: img}
}

// TextureLevel attaches the main level of t
func TextureLevel(t *textures.Texture) Attachment {
	return Attachment{image: t.MainLevel()}
}

func RenderbufferAttachment(rb *textures.Renderbuffer) Attachment {
	return Attachment{rb: rb}
}

func (a Attachment) IsZero() bool {
	return a.rb == nil && a.image.Texture() == nil
}

func (a Attachment) IsRenderbuffer() bool {
	return a.rb != nil
}

// Texture is the attached texture, nil for renderbuffers
func (a Attachment) Texture() *textures.Texture {
	if a.rb != nil {
		return nil
	}
	return a.image.Texture()
}

func (a Attachment) Format() textures.Format {
	if a.rb != nil {
		return a.rb.Format()
	}
	return a.image.Format()
}

func (a Attachment) Size() (width, height int) {
	if a.rb != nil {
		return a.rb.Size()
	}
	return a.image.Size()
}

func (a Attachment) Samples() int {
	if a.rb != nil {
		return a.rb.Samples()
	}
	return a.image.Samples()
}

func (a Attachment) isLayered() bool {
	return a.rb == nil && a.image.IsLayered()
}

func (a Attachment) check(cc *glcontext.CommandContext) error {
	if a.rb != nil {
		return a.rb.Check(cc)
	}
	return a.image.Check(cc)
}

func (a Attachment) attach(cc *glcontext.CommandContext, fbTarget, point gl.Enum) {
	if a.rb != nil {
		a.rb.Attach(cc, fbTarget, point)
		return
	}
	a.image.Attach(cc, fbTarget, point)
}

func (a Attachment) key() attachmentKey {

	if a.IsZero() {
		return attachmentKey{}
	}

	if a.rb != nil {
		return attachmentKey{renderbuffer: true, id: a.rb.Id()}
	}

	return attachmentKey{id: a.image.Texture().Id(), level: a.image.Level(), layer: a.image.LayerIndex()}
}

func (a Attachment) String() string {
	if a.rb != nil {
		return fmt.Sprintf("renderbuffer %d", a.rb.Id())
	}
	return a.image.String()
}

// DepthStencil are the optional non-color attachments of a framebuffer.
// DepthStencil excludes Depth and Stencil.
type DepthStencil struct {
	Depth        Attachment
	Stencil      Attachment
	DepthStencil Attachment
}

func (ds *DepthStencil) hasDepth() bool {
	return !ds.Depth.IsZero() || !ds.DepthStencil.IsZero()
}

func (ds *DepthStencil) hasStencil() bool {
	return !ds.Stencil.IsZero() || !ds.DepthStencil.IsZero()
}

type namedAttachment struct {
	point string
	glPt  gl.Enum
	a     Attachment
}

func attachmentList(colors []Attachment, ds *DepthStencil) []namedAttachment {

	out := make([]namedAttachment, 0, len(colors)+3)
	for i, c := range colors {
		out = append(out, namedAttachment{point: fmt.Sprintf("color %d", i), glPt: gl.COLOR_ATTACHMENT0 + gl.Enum(i), a: c})
	}

	if !ds.Depth.IsZero() {
		out = append(out, namedAttachment{point: "depth", glPt: gl.DEPTH_ATTACHMENT, a: ds.Depth})
	}
	if !ds.Stencil.IsZero() {
		out = append(out, namedAttachment{point: "stencil", glPt: gl.STENCIL_ATTACHMENT, a: ds.Stencil})
	}
	if !ds.DepthStencil.IsZero() {
		out = append(out, namedAttachment{point: "depth-stencil", glPt: gl.DEPTH_STENCIL_ATTACHMENT, a: ds.DepthStencil})
	}

	return out
}

// ValidateAttachments checks that colors and ds can be attached to one
// framebuffer. Attachments that were deleted or belong to another context
// fail with their own errors, everything else with a *ValidationError.
func ValidateAttachments(cc *glcontext.CommandContext, colors []Attachment, ds DepthStencil) error {

	_, err := validate(cc, colors, &ds)
	return err
}

type attachmentsInfo struct {
	width, height int
	samples       int
	layered       bool
}

func validate(cc *glcontext.CommandContext, colors []Attachment, ds *DepthStencil) (attachmentsInfo, error) {

	var info attachmentsInfo

	if !cc.Caps.SupportsFramebufferObject() {
		return info, ErrFramebufferNotSupported
	}

	limits := &cc.Caps.Limits
	if len(colors) > limits.MaxColorAttachments || len(colors) > limits.MaxDrawBuffers || len(colors) > maxColorAttachments {
		return info, &ValidationError{
			Err:    ErrTooManyColorAttachments,
			Detail: fmt.Sprintf("%d given, at most %d color attachments and %d draw buffers supported", len(colors), limits.MaxColorAttachments, limits.MaxDrawBuffers),
		}
	}

	if !ds.DepthStencil.IsZero() && (!ds.Depth.IsZero() || !ds.Stencil.IsZero()) {
		return info, &ValidationError{Point: "depth-stencil", Err: ErrConflictingDepthStencil}
	}

	all := attachmentList(colors, ds)
	if len(all) == 0 {
		return info, &ValidationError{Err: ErrNoAttachments}
	}

	seen := make(map[attachmentKey]string, len(all))
	for i, na := range all {

		if na.a.IsZero() {
			return info, &ValidationError{Point: na.point, Err: ErrNoAttachments, Detail: "empty color attachment"}
		}

		if err := na.a.check(cc); err != nil {
			return info, fmt.Errorf("framebuffer: %s attachment: %w", na.point, err)
		}

		if err := checkFormat(na); err != nil {
			return info, err
		}

		k := na.a.key()
		if other, ok := seen[k]; ok {
			return info, &ValidationError{Point: na.point, Err: ErrDuplicateAttachment, Detail: fmt.Sprintf("%s is also attached to %s", na.a, other)}
		}
		seen[k] = na.point

		w, h := na.a.Size()
		if i == 0 {
			info = attachmentsInfo{width: w, height: h, samples: na.a.Samples(), layered: na.a.isLayered()}
			continue
		}

		if w != info.width || h != info.height {
			return info, &ValidationError{Point: na.point, Err: ErrDimensionsMismatch, Detail: fmt.Sprintf("%dx%d, expected %dx%d", w, h, info.width, info.height)}
		}

		if s := na.a.Samples(); s != info.samples {
			return info, &ValidationError{Point: na.point, Err: ErrSamplesMismatch, Detail: fmt.Sprintf("%d samples, expected %d", s, info.samples)}
		}

		if na.a.isLayered() != info.layered {
			return info, &ValidationError{Point: na.point, Err: ErrLayeringMismatch}
		}
	}

	if info.width > limits.MaxRenderbufferSize || info.height > limits.MaxRenderbufferSize {
		return info, &ValidationError{Err: ErrFramebufferTooLarge, Detail: fmt.Sprintf("%dx%d", info.width, info.height)}
	}

	return info, nil
}

func checkFormat(na namedAttachment) error {

	f := na.a.Format()

	var ok bool
	switch na.glPt {
	case gl.DEPTH_ATTACHMENT:
		ok = f.HasDepth()
	case gl.STENCIL_ATTACHMENT:
		ok = f.HasStencil()
	case gl.DEPTH_STENCIL_ATTACHMENT:
		ok = f.HasDepth() && f.HasStencil()
	default:
		ok = f.IsColor()
	}

	if !ok {
		return &ValidationError{Point: na.point, Err: ErrWrongAttachmentFormat, Detail: f.String()}
	}

	return nil
}
