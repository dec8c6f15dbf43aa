package glcontext

import (
	"fmt"

	"github.com/bloeys/ngl/assert"
)

type ObjectKind int

const (
	ObjectKind_Unknown ObjectKind = iota
	ObjectKind_Buffer
	ObjectKind_Texture
	ObjectKind_Program
	ObjectKind_Shader
	ObjectKind_VertexArray
	ObjectKind_Framebuffer
	ObjectKind_Renderbuffer
	ObjectKind_Sampler
	ObjectKind_Query
)

func (k ObjectKind) String() string {

	switch k {
	case ObjectKind_Buffer:
		return "buffer"
	case ObjectKind_Texture:
		return "texture"
	case ObjectKind_Program:
		return "program"
	case ObjectKind_Shader:
		return "shader"
	case ObjectKind_VertexArray:
		return "vertex array"
	case ObjectKind_Framebuffer:
		return "framebuffer"
	case ObjectKind_Renderbuffer:
		return "renderbuffer"
	case ObjectKind_Sampler:
		return "sampler"
	case ObjectKind_Query:
		return "query"
	default:
		return fmt.Sprintf("ObjectKind(%d)", int(k))
	}
}

type pendingRelease struct {
	kind ObjectKind
	name uint32
}

// Release queues a driver object for deletion at the start of the next Exec.
// It is safe to call from any goroutine, which makes it usable from finalizers.
func (c *Context) Release(kind ObjectKind, name uint32) {

	if name == 0 {
		return
	}

	c.releaseMu.Lock()
	c.releases = append(c.releases, pendingRelease{kind: kind, name: name})
	c.releaseMu.Unlock()
}

// PendingReleases is how many objects are waiting to be deleted
func (c *Context) PendingReleases() int {
	c.releaseMu.Lock()
	defer c.releaseMu.Unlock()
	return len(c.releases)
}

// drainReleases deletes queued objects. The caller must hold c.mu.
func (c *Context) drainReleases() {

	c.releaseMu.Lock()
	pending := c.releases
	c.releases = nil
	c.releaseMu.Unlock()

	for _, r := range pending {
		c.cmd.DeleteObject(r.kind, r.name)
	}
}

// DeleteObject deletes any kind of driver object through the matching
// Delete* method.
func (cc *CommandContext) DeleteObject(kind ObjectKind, name uint32) {

	switch kind {
	case ObjectKind_Buffer:
		cc.DeleteBuffer(name)
	case ObjectKind_Texture:
		cc.DeleteTexture(name)
	case ObjectKind_Program:
		cc.DeleteProgram(name)
	case ObjectKind_Shader:
		cc.GL.DeleteShader(name)
	case ObjectKind_VertexArray:
		cc.DeleteVertexArray(name)
	case ObjectKind_Framebuffer:
		cc.DeleteFramebuffer(name)
	case ObjectKind_Renderbuffer:
		cc.DeleteRenderbuffer(name)
	case ObjectKind_Sampler:
		cc.DeleteSampler(name)
	case ObjectKind_Query:
		cc.DeleteQuery(name)
	default:
		assert.T(false, "can not delete object of unknown kind %v", kind)
	}
}
