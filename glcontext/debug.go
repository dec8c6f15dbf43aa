package glcontext

import (
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/logging"
)

func debugSourceString(s gl.Enum) string {

	switch s {
	case gl.DEBUG_SOURCE_API:
		return "api"
	case gl.DEBUG_SOURCE_WINDOW_SYSTEM:
		return "window system"
	case gl.DEBUG_SOURCE_SHADER_COMPILER:
		return "shader compiler"
	case gl.DEBUG_SOURCE_THIRD_PARTY:
		return "third party"
	case gl.DEBUG_SOURCE_APPLICATION:
		return "application"
	default:
		return "other"
	}
}

func debugTypeString(t gl.Enum) string {

	switch t {
	case gl.DEBUG_TYPE_ERROR:
		return "error"
	case gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		return "deprecated behavior"
	case gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		return "undefined behavior"
	case gl.DEBUG_TYPE_PORTABILITY:
		return "portability"
	case gl.DEBUG_TYPE_PERFORMANCE:
		return "performance"
	default:
		return "other"
	}
}

// logDebugMessage routes driver debug output to the logger matching its severity
func logDebugMessage(source, msgType gl.Enum, id uint32, severity gl.Enum, message string) {

	const format = "GL debug (source: %s, type: %s, id: %d): %s\n"
	src, typ := debugSourceString(source), debugTypeString(msgType)

	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		logging.ErrLog.Printf(format, src, typ, id, message)
	case gl.DEBUG_SEVERITY_MEDIUM, gl.DEBUG_SEVERITY_LOW:
		logging.WarnLog.Printf(format, src, typ, id, message)
	default:
		logging.InfoLog.Printf(format, src, typ, id, message)
	}
}

func (cc *CommandContext) enableDebugOutput() bool {

	if !cc.Caps.SupportsDebugOutput() {
		logging.WarnLog.Println("GL debug output was requested but is not supported by this context")
		return false
	}

	cc.Enable(gl.DEBUG_OUTPUT)
	cc.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	cc.GL.DebugMessageCallback(logDebugMessage)
	return true
}
