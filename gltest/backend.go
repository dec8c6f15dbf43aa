package gltest

import (
	"unsafe"

	"github.com/bloeys/ngl/backend"
)

var _ backend.Backend = &Backend{}

// Backend is a window-less backend.Backend for tests
type Backend struct {
	Width, Height uint32

	Current          bool
	MakeCurrentCalls int
	Swaps            int

	// SwapErr is returned by SwapBuffers when set
	SwapErr error
}

func NewBackend(width, height uint32) *Backend {
	return &Backend{Width: width, Height: height, Current: true}
}

func (b *Backend) SwapBuffers() error {

	if b.SwapErr != nil {
		return b.SwapErr
	}

	b.Swaps++
	return nil
}

func (b *Backend) GetProcAddress(name string) unsafe.Pointer {
	return nil
}

func (b *Backend) FramebufferDimensions() (width, height uint32) {
	return b.Width, b.Height
}

func (b *Backend) IsCurrent() bool {
	return b.Current
}

func (b *Backend) MakeCurrent() {
	b.Current = true
	b.MakeCurrentCalls++
}
