package textures

import (
	"errors"
	"fmt"
	"math/bits"
	"runtime"

	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
)

var (
	ErrInvalidDimensions       = errors.New("textures: texture dimensions must be larger than zero")
	ErrDimensionsNotSupported  = errors.New("textures: texture kind is not supported by this context")
	ErrTooLarge                = errors.New("textures: texture is larger than the context allows")
	ErrCubeNotSquare           = errors.New("textures: cube map faces must be square")
	ErrMultisampleMipmaps      = errors.New("textures: multisample textures can not have mipmaps")
	ErrInvalidSamples          = errors.New("textures: invalid sample count")
	ErrMipmapsNotSupported     = errors.New("textures: mipmaps can not be generated for this texture")
	ErrLevelOutOfRange         = errors.New("textures: mipmap level does not exist")
	ErrOutOfBounds             = errors.New("textures: region is outside of the texture")
	ErrImageFormatMismatch     = errors.New("textures: image client format does not match the texture format")
	ErrReadNotSupported        = errors.New("textures: reading textures back is not supported by this context")
	ErrMultisampleNotWriteable = errors.New("textures: multisample textures can only be written by rendering")
)

// TextureCreationError is returned by NewTexture when the description is
// rejected before any driver object is made
type TextureCreationError struct {
	Dimensions Dimensions
	Format     Format
	Err        error
}

func (e *TextureCreationError) Error() string {
	return fmt.Sprintf("textures: failed creating %s texture with format %s: %v", e.Dimensions, e.Format, e.Err)
}

func (e *TextureCreationError) Unwrap() error {
	return e.Err
}

type MipmapsKind int

const (
	// MipmapsKind_None allocates only the base level
	MipmapsKind_None MipmapsKind = iota
	// MipmapsKind_Empty allocates the full chain without filling it
	MipmapsKind_Empty
	// MipmapsKind_Generated allocates the full chain and generates it from
	// the base level after the initial upload
	MipmapsKind_Generated
	// MipmapsKind_Count allocates Count levels without filling them
	MipmapsKind_Count
)

type MipmapsOption struct {
	Kind  MipmapsKind
	Count int
}

var (
	NoMipmaps        = MipmapsOption{Kind: MipmapsKind_None}
	EmptyMipmaps     = MipmapsOption{Kind: MipmapsKind_Empty}
	GeneratedMipmaps = MipmapsOption{Kind: MipmapsKind_Generated}
)

func MipmapCount(n int) MipmapsOption {
	return MipmapsOption{Kind: MipmapsKind_Count, Count: n}
}

// MaxMipmapLevels is the length of a full chain down to 1x1
func MaxMipmapLevels(width, height, depth int) int {
	return bits.Len(uint(max(width, height, depth, 1)))
}

type TextureDesc struct {
	Dimensions Dimensions
	Format     Format
	Width      int
	// Height is ignored for 1D textures
	Height int
	// Depth is only used by 3D textures
	Depth int
	// ArraySize is the layer count of array textures. Cube arrays count
	// cubes, not faces.
	ArraySize int
	// Samples is only used by multisample textures
	Samples int
	Mipmaps MipmapsOption
	// FixedSampleLocations is passed to multisample storage calls
	FixedSampleLocations bool
}

// normalized fills in the sizes that do not apply to the dimensions
func (d TextureDesc) normalized() TextureDesc {

	switch d.Dimensions {
	case Dimensions_1D, Dimensions_1DArray:
		d.Height = 1
	}

	if d.Dimensions != Dimensions_3D {
		d.Depth = 1
	}

	if !d.Dimensions.IsArray() {
		d.ArraySize = 1
	}

	if !d.Dimensions.IsMultisample() {
		d.Samples = 0
	}

	return d
}

// Box is a region of one mip level. Z and D select layers for array
// textures, faces for cube maps and slices for 3D textures.
type Box struct {
	X, Y, Z int
	W, H, D int
}

func (b Box) depth() int {
	if b.D == 0 {
		return 1
	}
	return b.D
}

// Texture is any kind of texture except buffer textures. All operations take
// the CommandContext of the context that created it.
type Texture struct {
	ctx    *glcontext.Context
	id     uint32
	dims   Dimensions
	format Format
	// requested is the format asked for, which uploads are checked against
	requested Format

	width   int
	height  int
	depth   int
	arrSize int
	samples int
	levels  int

	// storage is true when the texture was made by TexStorage and so is
	// immutable in size and format
	storage bool

	// applied is what the TexParameter fallback last set on the texture
	applied    SamplerBehavior
	hasApplied bool
}

func validateDesc(caps *glcontext.Capabilities, d *TextureDesc) error {

	if !d.Dimensions.Supported(caps) {
		return ErrDimensionsNotSupported
	}

	if d.Width <= 0 || d.Height <= 0 || d.Depth <= 0 || d.ArraySize <= 0 {
		return ErrInvalidDimensions
	}

	l := &caps.Limits
	maxSize := l.MaxTextureSize
	switch d.Dimensions {
	case Dimensions_3D:
		maxSize = l.Max3DTextureSize
	case Dimensions_Cube, Dimensions_CubeArray:
		maxSize = l.MaxCubeMapTextureSize
	}

	if d.Width > maxSize || d.Height > maxSize || d.Depth > maxSize {
		return fmt.Errorf("%w: %dx%dx%d exceeds %d", ErrTooLarge, d.Width, d.Height, d.Depth, maxSize)
	}

	if d.Dimensions.IsArray() {

		layers := d.ArraySize
		if d.Dimensions == Dimensions_CubeArray {
			layers *= 6
		}

		if layers > l.MaxArrayTextureLayers {
			return fmt.Errorf("%w: %d layers exceeds %d", ErrTooLarge, layers, l.MaxArrayTextureLayers)
		}
	}

	if d.Dimensions.IsCube() && d.Width != d.Height {
		return ErrCubeNotSquare
	}

	if d.Dimensions.IsMultisample() {

		if d.Mipmaps.Kind != MipmapsKind_None && !(d.Mipmaps.Kind == MipmapsKind_Count && d.Mipmaps.Count == 1) {
			return ErrMultisampleMipmaps
		}

		if d.Samples <= 0 || d.Samples > l.MaxSamples {
			return fmt.Errorf("%w: %d (max %d)", ErrInvalidSamples, d.Samples, l.MaxSamples)
		}
	}

	if d.Mipmaps.Kind == MipmapsKind_Count && d.Mipmaps.Count <= 0 {
		return fmt.Errorf("%w: explicit mipmap count must be at least 1, got %d", ErrInvalidDimensions, d.Mipmaps.Count)
	}

	if d.Mipmaps.Kind == MipmapsKind_Generated && d.Format.IsInteger() {
		return ErrMipmapsNotSupported
	}

	return nil
}

// NewTexture creates a texture and optionally uploads data to its base
// level. data must cover every layer (or face) of the base level.
func NewTexture(cc *glcontext.CommandContext, desc TextureDesc, data *RawImage) (*Texture, error) {

	desc = desc.normalized()
	creationErr := func(err error) (*Texture, error) {
		return nil, &TextureCreationError{Dimensions: desc.Dimensions, Format: desc.Format, Err: err}
	}

	if desc.Dimensions == Dimensions_Buffer {
		return creationErr(fmt.Errorf("%w: use NewBufferTexture", ErrDimensionsNotSupported))
	}

	if err := validateDesc(cc.Caps, &desc); err != nil {
		return creationErr(err)
	}

	format, err := desc.Format.Resolve(cc.Caps)
	if err != nil {
		return creationErr(err)
	}

	t := &Texture{
		ctx:       cc.Context(),
		dims:      desc.Dimensions,
		format:    format,
		requested: desc.Format,
		width:     desc.Width,
		height:    desc.Height,
		depth:     desc.Depth,
		arrSize:   desc.ArraySize,
		samples:   desc.Samples,
	}

	switch desc.Mipmaps.Kind {
	case MipmapsKind_None:
		t.levels = 1
	case MipmapsKind_Count:
		t.levels = min(desc.Mipmaps.Count, t.maxLevels())
	default:
		t.levels = t.maxLevels()
	}

	if data != nil {

		if t.dims.IsMultisample() {
			return creationErr(ErrMultisampleNotWriteable)
		}

		if err := t.checkImage(data, Box{W: t.width, H: t.height, D: t.layers()}, desc.Format); err != nil {
			return creationErr(err)
		}
	}

	t.id = cc.GL.GenTexture()
	if t.id == 0 {
		return nil, fmt.Errorf("%w: texture", glcontext.ErrObjectCreation)
	}

	t.allocate(cc, desc.FixedSampleLocations)

	if data != nil {
		t.upload(cc, 0, Box{W: t.width, H: t.height, D: t.layers()}, data)
	}

	if desc.Mipmaps.Kind == MipmapsKind_Generated && t.levels > 1 {
		cc.GL.GenerateMipmap(t.Target())
	}

	runtime.SetFinalizer(t, (*Texture).finalize)
	return t, nil
}

func (t *Texture) finalize() {
	t.ctx.Release(glcontext.ObjectKind_Texture, t.id)
}

func (t *Texture) maxLevels() int {
	if t.dims == Dimensions_3D {
		return MaxMipmapLevels(t.width, t.height, t.depth)
	}
	return MaxMipmapLevels(t.width, t.height, 1)
}

// layers is the number of 2D images per level: array layers, cube faces
// or 3D slices
func (t *Texture) layers() int {

	switch t.dims {
	case Dimensions_Cube:
		return 6
	case Dimensions_CubeArray:
		return t.arrSize * 6
	case Dimensions_3D:
		return t.depth
	default:
		return t.arrSize
	}
}

// allocate creates the storage of every level on the bound texture
func (t *Texture) allocate(cc *glcontext.CommandContext, fixedLocations bool) {

	target := t.Target()
	cc.BindTexture(target, t.id)

	caps := cc.Caps
	internal := t.format.Internal

	if t.dims.IsMultisample() {

		t.storage = caps.SupportsMultisampleTextureStorage()
		switch {
		case t.dims == Dimensions_2DMultisample && t.storage:
			cc.GL.TexStorage2DMultisample(target, t.samples, internal, t.width, t.height, fixedLocations)
		case t.dims == Dimensions_2DMultisample:
			cc.GL.TexImage2DMultisample(target, t.samples, internal, t.width, t.height, fixedLocations)
		case t.storage:
			cc.GL.TexStorage3DMultisample(target, t.samples, internal, t.width, t.height, t.arrSize, fixedLocations)
		default:
			cc.GL.TexImage3DMultisample(target, t.samples, internal, t.width, t.height, t.arrSize, fixedLocations)
		}

		return
	}

	if caps.SupportsTextureStorage() {

		t.storage = true
		switch t.dims {
		case Dimensions_1D:
			cc.GL.TexStorage1D(target, t.levels, internal, t.width)
		case Dimensions_1DArray:
			cc.GL.TexStorage2D(target, t.levels, internal, t.width, t.arrSize)
		case Dimensions_2D, Dimensions_Cube:
			cc.GL.TexStorage2D(target, t.levels, internal, t.width, t.height)
		default:
			cc.GL.TexStorage3D(target, t.levels, internal, t.width, t.height, t.layers())
		}

		return
	}

	f := t.format
	for level := 0; level < t.levels; level++ {

		w, h, d := t.LevelSize(level)
		switch t.dims {
		case Dimensions_1D:
			cc.GL.TexImage1D(target, level, internal, w, f.ClientFormat, f.ClientType, nil)
		case Dimensions_1DArray:
			cc.GL.TexImage2D(target, level, internal, w, t.arrSize, f.ClientFormat, f.ClientType, nil)
		case Dimensions_2D:
			cc.GL.TexImage2D(target, level, internal, w, h, f.ClientFormat, f.ClientType, nil)
		case Dimensions_Cube:
			for face := CubeFace_PositiveX; face <= CubeFace_NegativeZ; face++ {
				cc.GL.TexImage2D(face.Target(), level, internal, w, h, f.ClientFormat, f.ClientType, nil)
			}
		default:
			cc.GL.TexImage3D(target, level, internal, w, h, d, f.ClientFormat, f.ClientType, nil)
		}
	}

	// Without this the texture is incomplete until every level down to 1x1
	// is specified
	if caps.Version.Api == gl.ApiGL || caps.Version.Major >= 3 {
		cc.GL.TexParameteri(target, gl.TEXTURE_MAX_LEVEL, t.levels-1)
	}
}

func (t *Texture) Id() uint32 {
	return t.id
}

func (t *Texture) Context() *glcontext.Context {
	return t.ctx
}

func (t *Texture) Dimensions() Dimensions {
	return t.dims
}

func (t *Texture) Target() gl.Enum {
	return t.dims.Target()
}

// Format is the format the texture was actually created with, which may be
// a fallback of the requested one
func (t *Texture) Format() Format {
	return t.format
}

func (t *Texture) Width() int {
	return t.width
}

func (t *Texture) Height() int {
	return t.height
}

// Depth is the depth of 3D textures and 1 otherwise
func (t *Texture) Depth() int {
	return t.depth
}

// ArraySize is the number of layers of array textures and 1 otherwise
func (t *Texture) ArraySize() int {
	return t.arrSize
}

// Samples is 0 for textures that are not multisampled
func (t *Texture) Samples() int {
	return t.samples
}

func (t *Texture) Levels() int {
	return t.levels
}

func (t *Texture) IsImmutable() bool {
	return t.storage
}

func (t *Texture) IsDeleted() bool {
	return t.id == 0
}

// LevelSize is the size of a mip level. Depth only shrinks for 3D textures,
// for other kinds it is the number of layers (or faces).
func (t *Texture) LevelSize(level int) (width, height, depth int) {

	width = max(1, t.width>>level)
	height = max(1, t.height>>level)
	depth = t.layers()

	switch t.dims {
	case Dimensions_1D, Dimensions_1DArray:
		height = 1
	case Dimensions_3D:
		depth = max(1, t.depth>>level)
	}

	return width, height, depth
}

func (t *Texture) check(cc *glcontext.CommandContext) error {

	if t.id == 0 {
		return glcontext.ErrDeleted
	}

	return cc.CheckOwner(t.ctx)
}

func (t *Texture) checkLevel(level int) error {

	if level < 0 || level >= t.levels {
		return fmt.Errorf("%w: level %d of a texture with %d levels", ErrLevelOutOfRange, level, t.levels)
	}

	return nil
}

// checkImage verifies img fills box and matches the client layout of want
func (t *Texture) checkImage(img *RawImage, box Box, want Format) error {

	if err := img.Validate(); err != nil {
		return err
	}

	if img.Format.ClientFormat != want.ClientFormat || img.Format.ClientType != want.ClientType {
		return fmt.Errorf("%w: image is %s, texture is %s", ErrImageFormatMismatch, img.Format, want)
	}

	if img.Width != box.W || img.Height != max(box.H, 1) || img.depth() != box.depth() {
		return fmt.Errorf("%w: image is %dx%dx%d but the region is %dx%dx%d", ErrImageSize, img.Width, img.Height, img.depth(), box.W, box.H, box.depth())
	}

	return nil
}

// unbindPixelBuffer makes client memory pointers passed to the driver be
// read as memory and not as offsets into a pixel buffer
func unbindPixelBuffer(cc *glcontext.CommandContext, target gl.Enum) {
	if b, ok := cc.State.Buffers[target]; ok && b != 0 {
		cc.BindBuffer(target, 0)
	}
}

func alignmentFor(rowBytes int) int {

	switch {
	case rowBytes%8 == 0:
		return 8
	case rowBytes%4 == 0:
		return 4
	case rowBytes%2 == 0:
		return 2
	default:
		return 1
	}
}

// Upload writes img into box of level. For 1D arrays the layers are Z and D,
// like every other layered kind.
func (t *Texture) Upload(cc *glcontext.CommandContext, level int, box Box, img RawImage) error {

	if err := t.check(cc); err != nil {
		return err
	}

	if t.dims.IsMultisample() {
		return ErrMultisampleNotWriteable
	}

	if err := t.checkLevel(level); err != nil {
		return err
	}

	if t.dims == Dimensions_1D || t.dims == Dimensions_1DArray {
		box.Y, box.H = 0, 1
	}

	w, h, d := t.LevelSize(level)
	if box.X < 0 || box.Y < 0 || box.Z < 0 || box.W <= 0 || box.H <= 0 || box.X+box.W > w || box.Y+box.H > h || box.Z+box.depth() > d {
		return fmt.Errorf("%w: box %+v of level %d which is %dx%dx%d", ErrOutOfBounds, box, level, w, h, d)
	}

	if err := t.checkImage(&img, box, t.requested); err != nil {
		return err
	}

	t.upload(cc, level, box, &img)
	return nil
}

func (t *Texture) upload(cc *glcontext.CommandContext, level int, box Box, img *RawImage) {

	unbindPixelBuffer(cc, gl.PIXEL_UNPACK_BUFFER)
	cc.PixelStore(gl.UNPACK_ALIGNMENT, alignmentFor(img.RowBytes()))

	target := t.Target()
	cc.BindTexture(target, t.id)

	f := t.format
	switch t.dims {
	case Dimensions_1D:
		cc.GL.TexSubImage1D(target, level, box.X, box.W, f.ClientFormat, f.ClientType, img.Data)

	case Dimensions_1DArray:
		cc.GL.TexSubImage2D(target, level, box.X, box.Z, box.W, box.depth(), f.ClientFormat, f.ClientType, img.Data)

	case Dimensions_2D:
		cc.GL.TexSubImage2D(target, level, box.X, box.Y, box.W, box.H, f.ClientFormat, f.ClientType, img.Data)

	case Dimensions_Cube:
		faceBytes := img.RowBytes() * img.Height
		for i := 0; i < box.depth(); i++ {
			face := CubeFace(box.Z + i)
			cc.GL.TexSubImage2D(face.Target(), level, box.X, box.Y, box.W, box.H, f.ClientFormat, f.ClientType, img.Data[i*faceBytes:(i+1)*faceBytes])
		}

	default:
		cc.GL.TexSubImage3D(target, level, box.X, box.Y, box.Z, box.W, box.H, box.depth(), f.ClientFormat, f.ClientType, img.Data)
	}
}

// Read returns the whole of level, every layer included. It needs
// GetTexImage, which only desktop GL has.
func (t *Texture) Read(cc *glcontext.CommandContext, level int) (RawImage, error) {

	if err := t.check(cc); err != nil {
		return RawImage{}, err
	}

	if !cc.Caps.SupportsGetTexImage() || t.dims.IsMultisample() {
		return RawImage{}, ErrReadNotSupported
	}

	if err := t.checkLevel(level); err != nil {
		return RawImage{}, err
	}

	w, h, d := t.LevelSize(level)
	img := NewRawImage(t.format, w, h, d)

	unbindPixelBuffer(cc, gl.PIXEL_PACK_BUFFER)
	cc.PixelStore(gl.PACK_ALIGNMENT, alignmentFor(img.RowBytes()))

	target := t.Target()
	cc.BindTexture(target, t.id)

	f := t.format
	if t.dims == Dimensions_Cube {

		faceBytes := img.RowBytes() * h
		for face := CubeFace_PositiveX; face <= CubeFace_NegativeZ; face++ {
			dst := img.Data[int(face)*faceBytes : (int(face)+1)*faceBytes]
			cc.GL.GetTexImage(face.Target(), level, f.ClientFormat, f.ClientType, dst)
		}

		return img, nil
	}

	cc.GL.GetTexImage(target, level, f.ClientFormat, f.ClientType, img.Data)
	return img, nil
}

// GenerateMipmaps fills every level from the base level
func (t *Texture) GenerateMipmaps(cc *glcontext.CommandContext) error {

	if err := t.check(cc); err != nil {
		return err
	}

	if t.levels <= 1 || t.dims.IsMultisample() || t.format.IsInteger() || !t.format.IsColor() {
		return fmt.Errorf("%w: %s %s texture with %d levels", ErrMipmapsNotSupported, t.dims, t.format, t.levels)
	}

	target := t.Target()
	cc.BindTexture(target, t.id)
	cc.GL.GenerateMipmap(target)
	return nil
}

// BindToUnit binds the texture to unit for sampling with b. Filters that
// would leave the texture incomplete are adjusted first.
func (t *Texture) BindToUnit(cc *glcontext.CommandContext, unit uint32, b SamplerBehavior) error {

	if err := t.check(cc); err != nil {
		return err
	}

	target := t.Target()
	cc.BindTextureUnit(unit, target, t.id)

	// Multisample textures ignore sampler state
	if t.dims.IsMultisample() {
		if cc.Caps.SupportsSamplerObjects() {
			cc.BindSampler(unit, 0)
		}
		return nil
	}

	b = b.adjustedFor(t)
	if cc.Caps.SupportsSamplerObjects() {

		s, err := Sampler(cc, b)
		if err != nil {
			return err
		}

		cc.BindSampler(unit, s)
		return nil
	}

	if t.hasApplied && t.applied == b {
		return nil
	}

	cc.ActiveTexture(unit)
	applyTexParams(cc, target, b)
	t.applied = b
	t.hasApplied = true
	return nil
}

// Sampled pairs a texture with how shaders sample it
type Sampled struct {
	Texture  *Texture
	Behavior SamplerBehavior
}

func (t *Texture) Sampled() Sampled {
	return Sampled{Texture: t, Behavior: DefaultSamplerBehavior()}
}

func (t *Texture) SampledWith(b SamplerBehavior) Sampled {
	return Sampled{Texture: t, Behavior: b}
}

func (t *Texture) Delete(cc *glcontext.CommandContext) error {

	if t.id == 0 {
		return nil
	}

	if err := cc.CheckOwner(t.ctx); err != nil {
		return err
	}

	cc.DeleteTexture(t.id)
	t.id = 0
	runtime.SetFinalizer(t, nil)
	return nil
}
