package buffers

import (
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
)

type mapStrategy uint8

const (
	// mapStrategy_Persistent is a view into the mapping a persistent buffer always holds
	mapStrategy_Persistent mapStrategy = iota
	// mapStrategy_Range maps with MapBufferRange and unmaps on release
	mapStrategy_Range
	// mapStrategy_Copy reads into client memory and writes back on release
	mapStrategy_Copy
)

// Mapping gives the CPU access to a range of a buffer. While it is alive the
// buffer can not be uploaded to, copied, bound or deleted.
type Mapping struct {
	alloc    *Alloc
	offset   int
	data     []byte
	write    bool
	strategy mapStrategy
	released bool
}

// Bytes is the mapped memory. It must not be used after Release.
func (m *Mapping) Bytes() []byte {
	return m.data
}

func (m *Mapping) Offset() int {
	return m.offset
}

// Map maps a range for reading and writing
func (a *Alloc) Map(cc *glcontext.CommandContext, offset, length int) (*Mapping, error) {
	return a.mapRange(cc, offset, length, true, true)
}

func (a *Alloc) MapRead(cc *glcontext.CommandContext, offset, length int) (*Mapping, error) {
	return a.mapRange(cc, offset, length, true, false)
}

// MapWrite maps a range for writing only. The previous contents of the range
// are undefined in the returned memory.
func (a *Alloc) MapWrite(cc *glcontext.CommandContext, offset, length int) (*Mapping, error) {
	return a.mapRange(cc, offset, length, false, true)
}

func (a *Alloc) mapRange(cc *glcontext.CommandContext, offset, length int, read, write bool) (*Mapping, error) {

	if err := a.check(cc); err != nil {
		return nil, err
	}

	if a.mapped {
		return nil, ErrAlreadyMapped
	}

	if err := a.checkRange(offset, length); err != nil {
		return nil, err
	}

	m := &Mapping{alloc: a, offset: offset, write: write}

	switch {
	case a.persistent != nil:

		if err := a.waitFences(cc, offset, length); err != nil {
			return nil, err
		}

		m.strategy = mapStrategy_Persistent
		m.data = a.persistent[offset : offset+length : offset+length]

	// Immutable storage was created without map access
	case cc.Caps.SupportsMapBufferRange() && !(a.storage && a.mode == BufferMode_Immutable):

		var access gl.Enum
		if read {
			access |= gl.MAP_READ_BIT
		}
		if write {
			access |= gl.MAP_WRITE_BIT
		}
		if write && !read {
			access |= gl.MAP_INVALIDATE_RANGE_BIT
		}

		if a.dsa {
			m.data = cc.GL.MapNamedBufferRange(a.id, offset, length, access)
		} else {
			m.data = cc.GL.MapBufferRange(a.bindForEdit(cc), offset, length, access)
		}

		if m.data == nil {
			return nil, ErrMapFailed
		}

		m.strategy = mapStrategy_Range

	default:

		m.strategy = mapStrategy_Copy
		m.data = make([]byte, length)
		if read {
			if err := a.Read(cc, offset, m.data); err != nil {
				return nil, err
			}
		}
	}

	a.mapped = true
	return m, nil
}

// Release ends the mapping. Writes made through a copy mapping are
// uploaded here.
func (m *Mapping) Release(cc *glcontext.CommandContext) error {

	if m.released {
		return nil
	}

	a := m.alloc
	if err := a.check(cc); err != nil {
		return err
	}

	m.released = true
	a.mapped = false
	data := m.data
	m.data = nil

	switch m.strategy {
	case mapStrategy_Range:

		var ok bool
		if a.dsa {
			ok = cc.GL.UnmapNamedBuffer(a.id)
		} else {
			ok = cc.GL.UnmapBuffer(a.bindForEdit(cc))
		}

		if !ok {
			return ErrMappingLost
		}

	case mapStrategy_Copy:
		if m.write {
			return a.Upload(cc, m.offset, data)
		}
	}

	return nil
}
