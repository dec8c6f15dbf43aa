package gl

import (
	"errors"
	"fmt"
	"strings"
)

type Api uint8

const (
	ApiGL Api = iota
	ApiGLES
)

func (a Api) String() string {
	if a == ApiGLES {
		return "OpenGL ES"
	}
	return "OpenGL"
}

type Version struct {
	Api   Api
	Major int
	Minor int
}

// AtLeast reports whether v is of the given api and at least major.minor.
func (v Version) AtLeast(api Api, major, minor int) bool {

	if v.Api != api {
		return false
	}

	if v.Major != major {
		return v.Major > major
	}

	return v.Minor >= minor
}

func (v Version) String() string {
	return fmt.Sprintf("%s %d.%d", v.Api, v.Major, v.Minor)
}

var ErrUnknownVersion = errors.New("unrecognized GL_VERSION string")

// ParseVersion parses a GL_VERSION string such as "4.6.0 NVIDIA 535.54",
// "OpenGL ES 3.2 Mesa 23.0" or "WebGL 2.0". WebGL versions map onto the
// equivalent OpenGL ES version.
func ParseVersion(s string) (Version, error) {

	var v Version
	s = strings.TrimSpace(s)

	if _, err := fmt.Sscanf(s, "OpenGL ES %d.%d", &v.Major, &v.Minor); err == nil {
		v.Api = ApiGLES
		return v, nil
	}

	// Some ES 1.x drivers report a profile between the prefix and the number
	if _, err := fmt.Sscanf(s, "OpenGL ES-CM %d.%d", &v.Major, &v.Minor); err == nil {
		v.Api = ApiGLES
		return v, nil
	}

	if _, err := fmt.Sscanf(s, "WebGL %d.%d", &v.Major, &v.Minor); err == nil {
		v.Api = ApiGLES
		v.Major++
		v.Minor = 0
		return v, nil
	}

	if _, err := fmt.Sscanf(s, "%d.%d", &v.Major, &v.Minor); err == nil {
		v.Api = ApiGL
		return v, nil
	}

	return Version{}, fmt.Errorf("%w: %q", ErrUnknownVersion, s)
}

// ParseGLSLVersion parses GL_SHADING_LANGUAGE_VERSION. ES strings look like
// "OpenGL ES GLSL ES 3.20", desktop ones like "4.60 NVIDIA".
func ParseGLSLVersion(s string) (Version, error) {

	var v Version
	s = strings.TrimSpace(s)

	if _, err := fmt.Sscanf(s, "OpenGL ES GLSL ES %d.%d", &v.Major, &v.Minor); err == nil {
		v.Api = ApiGLES
		return v, nil
	}

	if _, err := fmt.Sscanf(s, "WebGL GLSL ES %d.%d", &v.Major, &v.Minor); err == nil {
		v.Api = ApiGLES
		return v, nil
	}

	if _, err := fmt.Sscanf(s, "%d.%d", &v.Major, &v.Minor); err == nil {
		v.Api = ApiGL
		return v, nil
	}

	return Version{}, fmt.Errorf("%w: %q", ErrUnknownVersion, s)
}
