package buffers

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/bloeys/ngl/assert"
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
)

var (
	ErrAlreadyMapped          = errors.New("buffers: buffer already has a live mapping")
	ErrBufferMapped           = errors.New("buffers: buffer is mapped")
	ErrOutOfRange             = errors.New("buffers: range is outside of the buffer")
	ErrInvalidSize            = errors.New("buffers: buffer size must be larger than zero")
	ErrPersistentNotSupported = errors.New("buffers: persistent mapping needs buffer storage (GL 4.4 or ARB_buffer_storage)")
	ErrCopyNotSupported       = errors.New("buffers: buffer copies need GL 3.1 or ARB_copy_buffer")
	ErrReadNotSupported       = errors.New("buffers: reading buffers back is not supported by this context")
	ErrMapFailed              = errors.New("buffers: driver failed to map the buffer")
	ErrMappingLost            = errors.New("buffers: buffer contents were lost while mapped")
	ErrMisalignedOffset       = errors.New("buffers: offset is not aligned to the bind point's offset alignment")
)

type rangeFence struct {
	offset, size int
	sync         gl.Sync
}

func (f *rangeFence) overlaps(offset, size int) bool {
	return f.offset < offset+size && offset < f.offset+f.size
}

// Alloc is an untyped block of GPU memory. All operations take the
// CommandContext of the context that created it.
type Alloc struct {
	ctx  *glcontext.Context
	id   uint32
	size int
	typ  BufferType
	mode BufferMode

	// storage is true when the memory came from BufferStorage and so can not
	// be respecified with BufferData
	storage bool
	dsa     bool

	// persistent is the mapping held for the life of a persistent buffer
	persistent []byte
	mapped     bool

	fences []rangeFence
}

// NewAlloc creates a buffer of size bytes. data may be nil, otherwise it
// must be exactly size bytes.
func NewAlloc(cc *glcontext.CommandContext, typ BufferType, mode BufferMode, size int, data []byte) (*Alloc, error) {

	assert.T(data == nil || len(data) == size, "buffer data has length %d but the buffer size is %d", len(data), size)

	if size <= 0 {
		return nil, ErrInvalidSize
	}

	caps := cc.Caps
	if mode == BufferMode_Persistent && !caps.SupportsBufferStorage() {
		return nil, ErrPersistentNotSupported
	}

	a := &Alloc{
		ctx:     cc.Context(),
		size:    size,
		typ:     typ,
		mode:    mode,
		storage: caps.SupportsBufferStorage(),
		dsa:     caps.SupportsDSA(),
	}

	switch {
	case a.dsa && a.storage:

		a.id = cc.GL.CreateBuffer()
		if a.id == 0 {
			return nil, fmt.Errorf("%w: buffer", glcontext.ErrObjectCreation)
		}
		cc.GL.NamedBufferStorage(a.id, size, data, mode.storageFlags())

	case a.storage:

		a.id = cc.GL.GenBuffer()
		if a.id == 0 {
			return nil, fmt.Errorf("%w: buffer", glcontext.ErrObjectCreation)
		}
		target := a.bindForEdit(cc)
		cc.GL.BufferStorage(target, size, data, mode.storageFlags())

	default:

		a.id = cc.GL.GenBuffer()
		if a.id == 0 {
			return nil, fmt.Errorf("%w: buffer", glcontext.ErrObjectCreation)
		}
		target := a.bindForEdit(cc)
		cc.GL.BufferData(target, size, data, mode.Usage().ToGL())
	}

	if mode == BufferMode_Persistent {

		access := gl.Enum(gl.MAP_READ_BIT | gl.MAP_WRITE_BIT | gl.MAP_PERSISTENT_BIT | gl.MAP_COHERENT_BIT)
		if a.dsa {
			a.persistent = cc.GL.MapNamedBufferRange(a.id, 0, size, access)
		} else {
			a.persistent = cc.GL.MapBufferRange(a.bindForEdit(cc), 0, size, access)
		}

		if a.persistent == nil {
			cc.DeleteBuffer(a.id)
			return nil, ErrMapFailed
		}
	}

	runtime.SetFinalizer(a, (*Alloc).finalize)
	return a, nil
}

func (a *Alloc) finalize() {
	a.ctx.Release(glcontext.ObjectKind_Buffer, a.id)
}

func (a *Alloc) Id() uint32 {
	return a.id
}

// Size is the size in bytes
func (a *Alloc) Size() int {
	return a.size
}

func (a *Alloc) Type() BufferType {
	return a.typ
}

func (a *Alloc) Mode() BufferMode {
	return a.mode
}

func (a *Alloc) Context() *glcontext.Context {
	return a.ctx
}

func (a *Alloc) IsDeleted() bool {
	return a.id == 0
}

// IsMapped reports whether a Mapping of this buffer is alive
func (a *Alloc) IsMapped() bool {
	return a.mapped
}

func (a *Alloc) IsPersistent() bool {
	return a.persistent != nil
}

// bindForEdit binds the buffer to a target that has no side effects on
// other state and returns that target. Uploads, reads and maps without DSA
// go through it.
func (a *Alloc) bindForEdit(cc *glcontext.CommandContext) gl.Enum {

	target := gl.Enum(gl.ARRAY_BUFFER)
	if cc.Caps.SupportsCopyBuffer() {
		target = gl.COPY_WRITE_BUFFER
	}

	cc.BindBuffer(target, a.id)
	return target
}

func (a *Alloc) check(cc *glcontext.CommandContext) error {

	if a.id == 0 {
		return glcontext.ErrDeleted
	}

	return cc.CheckOwner(a.ctx)
}

// checkUnmapped is check plus refusing buffers with a live Mapping.
// Persistent buffers hold a driver mapping for their whole life but stay
// usable while no Mapping of them is alive.
func (a *Alloc) checkUnmapped(cc *glcontext.CommandContext) error {

	if err := a.check(cc); err != nil {
		return err
	}

	if a.mapped {
		return ErrBufferMapped
	}

	return nil
}

func (a *Alloc) checkRange(offset, size int) error {
	if offset < 0 || size < 0 || offset+size > a.size {
		return fmt.Errorf("%w: [%d, %d) of a %d byte buffer", ErrOutOfRange, offset, offset+size, a.size)
	}
	return nil
}

// Fence records that the GPU is reading or writing a range of the buffer.
// Only persistent buffers need fences, since the driver synchronizes every
// other access path on its own.
func (a *Alloc) Fence(cc *glcontext.CommandContext, offset, size int) {

	if a.persistent == nil || size == 0 {
		return
	}

	s := cc.InsertFence()
	a.fences = append(a.fences, rangeFence{offset: offset, size: size, sync: s})
}

func (a *Alloc) FenceAll(cc *glcontext.CommandContext) {
	a.Fence(cc, 0, a.size)
}

// PendingFences is the number of GPU accesses not yet waited on
func (a *Alloc) PendingFences() int {
	return len(a.fences)
}

// waitFences waits for and removes every fence overlapping the range
func (a *Alloc) waitFences(cc *glcontext.CommandContext, offset, size int) error {

	kept := a.fences[:0]
	var err error
	for i := range a.fences {

		f := a.fences[i]
		if err != nil || !f.overlaps(offset, size) {
			kept = append(kept, f)
			continue
		}

		if werr := cc.WaitAndDeleteFence(f.sync); werr != nil {
			err = werr
			kept = append(kept, f)
		}
	}

	a.fences = kept
	return err
}

// Upload writes data at offset
func (a *Alloc) Upload(cc *glcontext.CommandContext, offset int, data []byte) error {

	if err := a.checkUnmapped(cc); err != nil {
		return err
	}

	if err := a.checkRange(offset, len(data)); err != nil {
		return err
	}

	if len(data) == 0 {
		return nil
	}

	if a.persistent != nil {

		if err := a.waitFences(cc, offset, len(data)); err != nil {
			return err
		}

		copy(a.persistent[offset:], data)
		return nil
	}

	// Storage without DYNAMIC_STORAGE_BIT rejects BufferSubData
	if a.storage && a.mode == BufferMode_Immutable {

		tmp, err := NewAlloc(cc, BufferType_CopyRead, BufferMode_Default, len(data), data)
		if err != nil {
			return err
		}

		err = tmp.CopyTo(cc, a, 0, offset, len(data))
		return errors.Join(err, tmp.Delete(cc))
	}

	if a.dsa {
		cc.GL.NamedBufferSubData(a.id, offset, data)
		return nil
	}

	target := a.bindForEdit(cc)
	cc.GL.BufferSubData(target, offset, data)
	return nil
}

// Read copies len(dst) bytes starting at offset into dst
func (a *Alloc) Read(cc *glcontext.CommandContext, offset int, dst []byte) error {

	if err := a.checkUnmapped(cc); err != nil {
		return err
	}

	if err := a.checkRange(offset, len(dst)); err != nil {
		return err
	}

	if len(dst) == 0 {
		return nil
	}

	caps := cc.Caps
	switch {
	case a.persistent != nil:

		if err := a.waitFences(cc, offset, len(dst)); err != nil {
			return err
		}
		copy(dst, a.persistent[offset:])

	case a.dsa:
		cc.GL.GetNamedBufferSubData(a.id, offset, dst)

	case caps.SupportsGetBufferSubData():
		target := a.bindForEdit(cc)
		cc.GL.GetBufferSubData(target, offset, dst)

	case caps.SupportsMapBufferRange():

		target := a.bindForEdit(cc)
		view := cc.GL.MapBufferRange(target, offset, len(dst), gl.MAP_READ_BIT)
		if view == nil {
			return ErrMapFailed
		}

		copy(dst, view)
		if !cc.GL.UnmapBuffer(target) {
			return ErrMappingLost
		}

	default:
		return ErrReadNotSupported
	}

	return nil
}

// CopyTo copies size bytes from this buffer to dst on the GPU
func (a *Alloc) CopyTo(cc *glcontext.CommandContext, dst *Alloc, srcOffset, dstOffset, size int) error {

	if err := a.checkUnmapped(cc); err != nil {
		return err
	}

	if err := dst.checkUnmapped(cc); err != nil {
		return err
	}

	if err := a.checkRange(srcOffset, size); err != nil {
		return err
	}

	if err := dst.checkRange(dstOffset, size); err != nil {
		return err
	}

	if !cc.Caps.SupportsCopyBuffer() {
		return ErrCopyNotSupported
	}

	if size == 0 {
		return nil
	}

	if a.dsa {
		cc.GL.CopyNamedBufferSubData(a.id, dst.id, srcOffset, dstOffset, size)
	} else {
		cc.BindBuffer(gl.COPY_READ_BUFFER, a.id)
		cc.BindBuffer(gl.COPY_WRITE_BUFFER, dst.id)
		cc.GL.CopyBufferSubData(gl.COPY_READ_BUFFER, gl.COPY_WRITE_BUFFER, srcOffset, dstOffset, size)
	}

	a.Fence(cc, srcOffset, size)
	dst.Fence(cc, dstOffset, size)
	return nil
}

// Invalidate tells the driver the current contents are no longer needed
func (a *Alloc) Invalidate(cc *glcontext.CommandContext) error {

	if err := a.checkUnmapped(cc); err != nil {
		return err
	}

	// Persistent contents are reached through the mapping, so there is
	// nothing to orphan
	if a.persistent != nil {
		return nil
	}

	if cc.Caps.SupportsInvalidateBuffer() {
		cc.GL.InvalidateBufferData(a.id)
		return nil
	}

	if !a.storage {
		target := a.bindForEdit(cc)
		cc.GL.BufferData(target, a.size, nil, a.mode.Usage().ToGL())
	}

	return nil
}

// Bind binds the buffer to the non-indexed target of typ
func (a *Alloc) Bind(cc *glcontext.CommandContext, typ BufferType) error {

	if err := a.checkUnmapped(cc); err != nil {
		return err
	}

	cc.BindBuffer(typ.ToGL(), a.id)
	return nil
}

// BindIndexed binds a range of the buffer to an indexed bind point. A size
// of 0 binds everything from offset to the end.
func (a *Alloc) BindIndexed(cc *glcontext.CommandContext, typ BufferType, index uint32, offset, size int) error {

	assert.T(typ.IsIndexed(), "buffer type '%s' has no indexed bind points", typ)

	if err := a.checkUnmapped(cc); err != nil {
		return err
	}

	if size == 0 {
		size = a.size - offset
	}

	if err := a.checkRange(offset, size); err != nil {
		return err
	}

	align := 1
	switch typ {
	case BufferType_Uniform:
		align = cc.Caps.Limits.UniformBufferOffsetAlignment
	case BufferType_ShaderStorage:
		align = cc.Caps.Limits.ShaderStorageOffsetAlignment
	}

	if align > 1 && offset%align != 0 {
		return fmt.Errorf("%w: offset %d, alignment %d", ErrMisalignedOffset, offset, align)
	}

	if offset == 0 && size == a.size {
		cc.BindBufferBase(typ.ToGL(), index, a.id)
	} else {
		cc.BindBufferRange(typ.ToGL(), index, a.id, offset, size)
	}

	return nil
}

// Delete frees the GPU memory. Deleting twice is a no-op.
func (a *Alloc) Delete(cc *glcontext.CommandContext) error {

	if a.id == 0 {
		return nil
	}

	if err := cc.CheckOwner(a.ctx); err != nil {
		return err
	}

	if a.mapped {
		return ErrBufferMapped
	}

	for _, f := range a.fences {
		cc.DeleteFence(f.sync)
	}

	cc.DeleteBuffer(a.id)

	a.id = 0
	a.fences = nil
	a.persistent = nil
	a.mapped = false
	runtime.SetFinalizer(a, nil)
	return nil
}
