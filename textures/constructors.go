package textures

import (
	"fmt"

	"github.com/bloeys/ngl/glcontext"
)

func NewTexture1D(cc *glcontext.CommandContext, format Format, width int, mipmaps MipmapsOption, data *RawImage) (*Texture, error) {
	return NewTexture(cc, TextureDesc{Dimensions: Dimensions_1D, Format: format, Width: width, Mipmaps: mipmaps}, data)
}

func NewTexture2D(cc *glcontext.CommandContext, format Format, width, height int, mipmaps MipmapsOption, data *RawImage) (*Texture, error) {
	return NewTexture(cc, TextureDesc{Dimensions: Dimensions_2D, Format: format, Width: width, Height: height, Mipmaps: mipmaps}, data)
}

// NewTexture2DFromImage creates a texture sized and formatted like img
func NewTexture2DFromImage(cc *glcontext.CommandContext, img RawImage, mipmaps MipmapsOption) (*Texture, error) {
	return NewTexture2D(cc, img.Format, img.Width, img.Height, mipmaps, &img)
}

func NewTexture2DArray(cc *glcontext.CommandContext, format Format, width, height, layers int, mipmaps MipmapsOption, data *RawImage) (*Texture, error) {
	return NewTexture(cc, TextureDesc{Dimensions: Dimensions_2DArray, Format: format, Width: width, Height: height, ArraySize: layers, Mipmaps: mipmaps}, data)
}

func NewTexture3D(cc *glcontext.CommandContext, format Format, width, height, depth int, mipmaps MipmapsOption, data *RawImage) (*Texture, error) {
	return NewTexture(cc, TextureDesc{Dimensions: Dimensions_3D, Format: format, Width: width, Height: height, Depth: depth, Mipmaps: mipmaps}, data)
}

// NewCubemap creates a cube map with square faces of size. data, when
// given, holds the six faces in CubeFace order.
func NewCubemap(cc *glcontext.CommandContext, format Format, size int, mipmaps MipmapsOption, data *RawImage) (*Texture, error) {
	return NewTexture(cc, TextureDesc{Dimensions: Dimensions_Cube, Format: format, Width: size, Height: size, Mipmaps: mipmaps}, data)
}

func NewCubemapArray(cc *glcontext.CommandContext, format Format, size, cubes int, mipmaps MipmapsOption) (*Texture, error) {
	return NewTexture(cc, TextureDesc{Dimensions: Dimensions_CubeArray, Format: format, Width: size, Height: size, ArraySize: cubes, Mipmaps: mipmaps}, nil)
}

func NewTexture2DMultisample(cc *glcontext.CommandContext, format Format, width, height, samples int) (*Texture, error) {
	return NewTexture(cc, TextureDesc{Dimensions: Dimensions_2DMultisample, Format: format, Width: width, Height: height, Samples: samples, FixedSampleLocations: true}, nil)
}

// NewDepthTexture2D creates a depth (or depth-stencil) texture usable as a
// shadow map
func NewDepthTexture2D(cc *glcontext.CommandContext, format Format, width, height int) (*Texture, error) {

	if !format.HasDepth() {
		return nil, &TextureCreationError{Dimensions: Dimensions_2D, Format: format, Err: fmt.Errorf("%w: %s has no depth", ErrImageFormatMismatch, format)}
	}

	return NewTexture2D(cc, format, width, height, NoMipmaps, nil)
}

// LoadTexture2D loads an image file into a texture with generated mipmaps
func LoadTexture2D(cc *glcontext.CommandContext, path string, opts LoadOptions) (*Texture, error) {

	img, err := LoadImage(path, opts)
	if err != nil {
		return nil, err
	}

	return NewTexture2DFromImage(cc, img, GeneratedMipmaps)
}

// LoadCubemap loads six face images in CubeFace order into a cube map
func LoadCubemap(cc *glcontext.CommandContext, paths [6]string, opts LoadOptions) (*Texture, error) {

	img, err := LoadCubemapImages(paths, opts)
	if err != nil {
		return nil, err
	}

	return NewCubemap(cc, img.Format, img.Width, NoMipmaps, &img)
}
