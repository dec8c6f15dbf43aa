package buffers

import (
	"errors"

	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
)

// DynamicBuffer is a ring of equally sized buffers for data rewritten every
// frame. Each Next hands out the following buffer after waiting for the GPU
// to finish the draws that last used it.
type DynamicBuffer struct {
	allocs []*Alloc
	fences []gl.Sync
	cur    int
}

// NewDynamicBuffer creates count buffers of size bytes. Persistent buffers
// are used when the context has buffer storage.
func NewDynamicBuffer(cc *glcontext.CommandContext, typ BufferType, size, count int) (*DynamicBuffer, error) {

	if count < 1 {
		count = 1
	}

	mode := BufferMode_Dynamic
	if cc.Caps.SupportsBufferStorage() {
		mode = BufferMode_Persistent
	}

	db := &DynamicBuffer{
		allocs: make([]*Alloc, 0, count),
		fences: make([]gl.Sync, count),
		cur:    -1,
	}

	for i := 0; i < count; i++ {

		a, err := NewAlloc(cc, typ, mode, size, nil)
		if err != nil {
			return nil, errors.Join(err, db.Delete(cc))
		}

		db.allocs = append(db.allocs, a)
	}

	return db, nil
}

func (db *DynamicBuffer) Len() int {
	return len(db.allocs)
}

// Current is the buffer returned by the last Next, or nil before the first
func (db *DynamicBuffer) Current() *Alloc {
	if db.cur < 0 {
		return nil
	}
	return db.allocs[db.cur]
}

// Next moves to the following buffer in the ring and uploads data into it
func (db *DynamicBuffer) Next(cc *glcontext.CommandContext, data []byte) (*Alloc, error) {

	if len(db.allocs) == 0 {
		return nil, glcontext.ErrDeleted
	}

	next := (db.cur + 1) % len(db.allocs)

	if s := db.fences[next]; s != 0 {

		if err := cc.WaitAndDeleteFence(s); err != nil {
			return nil, err
		}
		db.fences[next] = 0
	}

	db.cur = next
	a := db.allocs[next]

	if err := a.Upload(cc, 0, data); err != nil {
		return nil, err
	}

	return a, nil
}

// EndFrame fences the current buffer so a later Next does not overwrite
// it while the GPU still reads it
func (db *DynamicBuffer) EndFrame(cc *glcontext.CommandContext) {

	if db.cur < 0 || db.fences[db.cur] != 0 {
		return
	}

	db.fences[db.cur] = cc.InsertFence()
}

func (db *DynamicBuffer) Delete(cc *glcontext.CommandContext) error {

	var err error
	for i, s := range db.fences {
		cc.DeleteFence(s)
		db.fences[i] = 0
	}

	for _, a := range db.allocs {
		err = errors.Join(err, a.Delete(cc))
	}

	db.allocs = nil
	db.cur = -1
	return err
}
