package glcontext

import (
	"errors"
	"time"

	"github.com/bloeys/ngl/gl"
)

var (
	ErrFenceTimeout    = errors.New("glcontext: timed out waiting for fence")
	ErrFenceWaitFailed = errors.New("glcontext: waiting for fence failed")
)

// InsertFence places a fence after all previously issued commands. On
// contexts without sync objects it returns 0, and waiting on 0 falls back
// to Finish.
func (cc *CommandContext) InsertFence() gl.Sync {

	if !cc.Caps.SupportsSync() {
		return 0
	}

	return cc.GL.FenceSync(gl.SYNC_GPU_COMMANDS_COMPLETE, 0)
}

// WaitFence blocks until the GPU has passed s or the timeout expires.
// The fence is not deleted.
func (cc *CommandContext) WaitFence(s gl.Sync, timeout time.Duration) error {

	if s == 0 {
		cc.GL.Finish()
		return nil
	}

	ns := gl.TIMEOUT_IGNORED
	if timeout >= 0 {
		ns = uint64(timeout.Nanoseconds())
	}

	switch cc.GL.ClientWaitSync(s, gl.SYNC_FLUSH_COMMANDS_BIT, ns) {
	case gl.ALREADY_SIGNALED, gl.CONDITION_SATISFIED:
		return nil
	case gl.TIMEOUT_EXPIRED:
		return ErrFenceTimeout
	default:
		return ErrFenceWaitFailed
	}
}

// WaitAndDeleteFence waits using the context's configured timeout and
// deletes the fence when the wait succeeded.
func (cc *CommandContext) WaitAndDeleteFence(s gl.Sync) error {

	if err := cc.WaitFence(s, cc.ctx.cfg.SyncTimeout); err != nil {
		return err
	}

	cc.DeleteFence(s)
	return nil
}

func (cc *CommandContext) DeleteFence(s gl.Sync) {
	if s != 0 {
		cc.GL.DeleteSync(s)
	}
}
