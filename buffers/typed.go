package buffers

import (
	"fmt"
	"unsafe"

	"github.com/bloeys/ngl/glcontext"
)

// Buffer holds Len() values of T. T must be a fixed size type without
// pointers (numbers, arrays and structs of them, gglm vectors).
type Buffer[T any] struct {
	*Alloc
	len int
}

func elemSize[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

func asBytes[T any](vals []T) []byte {
	if len(vals) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&vals[0])), len(vals)*elemSize[T]())
}

// NewBuffer creates a buffer holding data
func NewBuffer[T any](cc *glcontext.CommandContext, typ BufferType, mode BufferMode, data []T) (*Buffer[T], error) {

	a, err := NewAlloc(cc, typ, mode, len(data)*elemSize[T](), asBytes(data))
	if err != nil {
		return nil, err
	}

	return &Buffer[T]{Alloc: a, len: len(data)}, nil
}

// NewEmptyBuffer creates a buffer with room for n values and undefined contents
func NewEmptyBuffer[T any](cc *glcontext.CommandContext, typ BufferType, mode BufferMode, n int) (*Buffer[T], error) {

	a, err := NewAlloc(cc, typ, mode, n*elemSize[T](), nil)
	if err != nil {
		return nil, err
	}

	return &Buffer[T]{Alloc: a, len: n}, nil
}

func (b *Buffer[T]) Len() int {
	return b.len
}

func (b *Buffer[T]) SizeBytes() int {
	return b.len * elemSize[T]()
}

// Write replaces the contents. len(data) must equal Len().
func (b *Buffer[T]) Write(cc *glcontext.CommandContext, data []T) error {

	if len(data) != b.len {
		return fmt.Errorf("%w: writing %d values to a buffer of %d", ErrOutOfRange, len(data), b.len)
	}

	return b.Upload(cc, 0, asBytes(data))
}

func (b *Buffer[T]) Read(cc *glcontext.CommandContext) ([]T, error) {
	return b.All().Read(cc)
}

// All is a slice over the whole buffer
func (b *Buffer[T]) All() Slice[T] {
	return Slice[T]{buf: b, start: 0, end: b.len}
}

// Slice returns the values [start, end)
func (b *Buffer[T]) Slice(start, end int) (Slice[T], error) {

	if start < 0 || end > b.len || start > end {
		return Slice[T]{}, fmt.Errorf("%w: slice [%d, %d) of a buffer of %d values", ErrOutOfRange, start, end, b.len)
	}

	return Slice[T]{buf: b, start: start, end: end}, nil
}

// Slice is a sub-range of a Buffer
type Slice[T any] struct {
	buf        *Buffer[T]
	start, end int
}

func (s Slice[T]) Buffer() *Buffer[T] {
	return s.buf
}

func (s Slice[T]) Len() int {
	return s.end - s.start
}

// Offset is the byte offset of the slice within the buffer
func (s Slice[T]) Offset() int {
	return s.start * elemSize[T]()
}

func (s Slice[T]) SizeBytes() int {
	return s.Len() * elemSize[T]()
}

func (s Slice[T]) Write(cc *glcontext.CommandContext, data []T) error {

	if len(data) != s.Len() {
		return fmt.Errorf("%w: writing %d values to a slice of %d", ErrOutOfRange, len(data), s.Len())
	}

	return s.buf.Upload(cc, s.Offset(), asBytes(data))
}

func (s Slice[T]) Read(cc *glcontext.CommandContext) ([]T, error) {

	out := make([]T, s.Len())
	if err := s.buf.Alloc.Read(cc, s.Offset(), asBytes(out)); err != nil {
		return nil, err
	}

	return out, nil
}

// CopyTo copies the slice into dst on the GPU. The lengths must match.
func (s Slice[T]) CopyTo(cc *glcontext.CommandContext, dst Slice[T]) error {

	if s.Len() != dst.Len() {
		return fmt.Errorf("%w: copying %d values into a slice of %d", ErrOutOfRange, s.Len(), dst.Len())
	}

	return s.buf.Alloc.CopyTo(cc, dst.buf.Alloc, s.Offset(), dst.Offset(), s.SizeBytes())
}

// Sub returns a slice of the slice
func (s Slice[T]) Sub(start, end int) (Slice[T], error) {

	if start < 0 || end > s.Len() || start > end {
		return Slice[T]{}, fmt.Errorf("%w: sub-slice [%d, %d) of a slice of %d values", ErrOutOfRange, start, end, s.Len())
	}

	return Slice[T]{buf: s.buf, start: s.start + start, end: s.start + end}, nil
}

func (s Slice[T]) Map(cc *glcontext.CommandContext) (*Mapping, error) {
	return s.buf.Map(cc, s.Offset(), s.SizeBytes())
}
