package gl

import "fmt"

// Handle is either a core object name or a legacy GL_ARB_shader_objects
// handle. Both are 32 bit integers on the supported platforms but they live
// in different namespaces and must not be mixed.
type Handle struct {
	value uint32
	arb   bool
}

func IdHandle(id uint32) Handle {
	return Handle{value: id}
}

func ARBHandle(h uint32) Handle {
	return Handle{value: h, arb: true}
}

// IsId reports whether h is a core object name
func (h Handle) IsId() bool {
	return !h.arb
}

func (h Handle) Value() uint32 {
	return h.value
}

func (h Handle) IsZero() bool {
	return h.value == 0
}

func (h Handle) String() string {

	if h.arb {
		return fmt.Sprintf("ARB(%d)", h.value)
	}

	return fmt.Sprintf("Id(%d)", h.value)
}
