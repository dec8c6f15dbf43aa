package buffers

import (
	"fmt"

	"github.com/bloeys/ngl/assert"
	"github.com/bloeys/ngl/gl"
)

type BufUsage int

// Full docs for buffer usage can be found here: https://registry.khronos.org/OpenGL-Refpages/gl4/html/glBufferData.xhtml
const (
	BufUsage_Unknown BufUsage = iota

	//Buffer is set only once and used many times
	BufUsage_Static_Draw
	//Buffer is changed a lot and used many times
	BufUsage_Dynamic_Draw
	//Buffer is set only once and used by the GPU at most a few times
	BufUsage_Stream_Draw

	BufUsage_Static_Read
	BufUsage_Dynamic_Read
	BufUsage_Stream_Read

	BufUsage_Static_Copy
	BufUsage_Dynamic_Copy
	BufUsage_Stream_Copy
)

func (b BufUsage) ToGL() gl.Enum {
	switch b {
	case BufUsage_Static_Draw:
		return gl.STATIC_DRAW
	case BufUsage_Dynamic_Draw:
		return gl.DYNAMIC_DRAW
	case BufUsage_Stream_Draw:
		return gl.STREAM_DRAW

	case BufUsage_Static_Read:
		return gl.STATIC_READ
	case BufUsage_Dynamic_Read:
		return gl.DYNAMIC_READ
	case BufUsage_Stream_Read:
		return gl.STREAM_READ

	case BufUsage_Static_Copy:
		return gl.STATIC_COPY
	case BufUsage_Dynamic_Copy:
		return gl.DYNAMIC_COPY
	case BufUsage_Stream_Copy:
		return gl.STREAM_COPY
	}

	assert.T(false, fmt.Sprintf("Unexpected BufUsage value '%v'", b))
	return 0
}

// BufferType is the binding point a buffer is meant for. The GL lets any
// buffer be bound anywhere, so this only picks the default target.
type BufferType int

const (
	BufferType_Unknown BufferType = iota
	BufferType_Array
	BufferType_ElementArray
	BufferType_PixelPack
	BufferType_PixelUnpack
	BufferType_Uniform
	BufferType_CopyRead
	BufferType_CopyWrite
	BufferType_Texture
	BufferType_ShaderStorage
	BufferType_DrawIndirect
	BufferType_DispatchIndirect
	BufferType_Query
	BufferType_AtomicCounter
	BufferType_TransformFeedback
)

func (t BufferType) ToGL() gl.Enum {

	switch t {
	case BufferType_Array:
		return gl.ARRAY_BUFFER
	case BufferType_ElementArray:
		return gl.ELEMENT_ARRAY_BUFFER
	case BufferType_PixelPack:
		return gl.PIXEL_PACK_BUFFER
	case BufferType_PixelUnpack:
		return gl.PIXEL_UNPACK_BUFFER
	case BufferType_Uniform:
		return gl.UNIFORM_BUFFER
	case BufferType_CopyRead:
		return gl.COPY_READ_BUFFER
	case BufferType_CopyWrite:
		return gl.COPY_WRITE_BUFFER
	case BufferType_Texture:
		return gl.TEXTURE_BUFFER
	case BufferType_ShaderStorage:
		return gl.SHADER_STORAGE_BUFFER
	case BufferType_DrawIndirect:
		return gl.DRAW_INDIRECT_BUFFER
	case BufferType_DispatchIndirect:
		return gl.DISPATCH_INDIRECT_BUFFER
	case BufferType_Query:
		return gl.QUERY_BUFFER
	case BufferType_AtomicCounter:
		return gl.ATOMIC_COUNTER_BUFFER
	case BufferType_TransformFeedback:
		return gl.TRANSFORM_FEEDBACK_BUFFER
	}

	assert.T(false, "Unexpected BufferType value '%d'", t)
	return 0
}

// IsIndexed reports whether the type has numbered bind points
func (t BufferType) IsIndexed() bool {
	switch t {
	case BufferType_Uniform, BufferType_ShaderStorage, BufferType_AtomicCounter, BufferType_TransformFeedback:
		return true
	default:
		return false
	}
}

func (t BufferType) String() string {

	switch t {
	case BufferType_Array:
		return "array"
	case BufferType_ElementArray:
		return "element array"
	case BufferType_PixelPack:
		return "pixel pack"
	case BufferType_PixelUnpack:
		return "pixel unpack"
	case BufferType_Uniform:
		return "uniform"
	case BufferType_CopyRead:
		return "copy read"
	case BufferType_CopyWrite:
		return "copy write"
	case BufferType_Texture:
		return "texture"
	case BufferType_ShaderStorage:
		return "shader storage"
	case BufferType_DrawIndirect:
		return "draw indirect"
	case BufferType_DispatchIndirect:
		return "dispatch indirect"
	case BufferType_Query:
		return "query"
	case BufferType_AtomicCounter:
		return "atomic counter"
	case BufferType_TransformFeedback:
		return "transform feedback"
	default:
		return "unknown"
	}
}

// BufferMode decides how storage is allocated and how the CPU reaches it
type BufferMode int

const (
	// BufferMode_Default is written occasionally from the CPU
	BufferMode_Default BufferMode = iota
	// BufferMode_Immutable is never written directly after creation. Uploads
	// go through a temporary buffer and a GPU copy.
	BufferMode_Immutable
	// BufferMode_Persistent stays mapped for its whole life. Needs buffer storage.
	BufferMode_Persistent
	// BufferMode_Dynamic is rewritten often and kept in client memory if possible
	BufferMode_Dynamic
)

// Usage is the BufferData hint used when buffer storage is not available
func (m BufferMode) Usage() BufUsage {
	switch m {
	case BufferMode_Dynamic, BufferMode_Persistent:
		return BufUsage_Dynamic_Draw
	default:
		return BufUsage_Static_Draw
	}
}

// storageFlags are the BufferStorage flags for the mode
func (m BufferMode) storageFlags() gl.Enum {

	switch m {
	case BufferMode_Immutable:
		return 0
	case BufferMode_Persistent:
		return gl.MAP_READ_BIT | gl.MAP_WRITE_BIT | gl.MAP_PERSISTENT_BIT | gl.MAP_COHERENT_BIT | gl.DYNAMIC_STORAGE_BIT
	case BufferMode_Dynamic:
		return gl.MAP_READ_BIT | gl.MAP_WRITE_BIT | gl.DYNAMIC_STORAGE_BIT | gl.CLIENT_STORAGE_BIT
	default:
		return gl.MAP_READ_BIT | gl.MAP_WRITE_BIT | gl.DYNAMIC_STORAGE_BIT
	}
}

func (m BufferMode) String() string {
	switch m {
	case BufferMode_Default:
		return "default"
	case BufferMode_Immutable:
		return "immutable"
	case BufferMode_Persistent:
		return "persistent"
	case BufferMode_Dynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}
