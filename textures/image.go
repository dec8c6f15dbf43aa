package textures

import (
	"errors"
	"fmt"
	"image"
	"os"

	// Decoders registered with image.Decode
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/mandykoh/prism"
)

var ErrImageSize = errors.New("textures: image data does not match its dimensions")

// RawImage is pixel data in client memory laid out as Format's client
// format and type, rows bottom to top like GL expects
type RawImage struct {
	Data   []byte
	Width  int
	Height int
	// Depth is the number of layers (or cube faces), 1 for plain images
	Depth  int
	Format Format
}

// NewRawImage allocates a zeroed image
func NewRawImage(format Format, width, height, depth int) RawImage {
	return RawImage{
		Data:   make([]byte, width*height*depth*format.BytesPerPixel),
		Width:  width,
		Height: height,
		Depth:  depth,
		Format: format,
	}
}

func (img *RawImage) depth() int {
	if img.Depth == 0 {
		return 1
	}
	return img.Depth
}

func (img *RawImage) RowBytes() int {
	return img.Width * img.Format.BytesPerPixel
}

func (img *RawImage) Validate() error {

	want := img.Width * img.Height * img.depth() * img.Format.BytesPerPixel
	if len(img.Data) != want {
		return fmt.Errorf("%w: %dx%dx%d %s needs %d bytes, got %d", ErrImageSize, img.Width, img.Height, img.depth(), img.Format, want, len(img.Data))
	}

	return nil
}

// FlipVertically reverses the order of rows in every layer
func (img *RawImage) FlipVertically() {

	row := img.RowBytes()
	tmp := make([]byte, row)
	layer := row * img.Height

	for z := 0; z < img.depth(); z++ {

		base := z * layer
		for y := 0; y < img.Height/2; y++ {

			top := img.Data[base+y*row : base+(y+1)*row]
			bottom := img.Data[base+(img.Height-1-y)*row : base+(img.Height-y)*row]

			copy(tmp, top)
			copy(top, bottom)
			copy(bottom, tmp)
		}
	}
}

// RawImageFromImage converts img to 8 bit RGBA. Go images are stored top
// to bottom so the rows are flipped for GL.
func RawImageFromImage(img image.Image, srgb bool) RawImage {

	nrgba := prism.ConvertImageToNRGBA(img, 2)
	b := nrgba.Bounds()

	format := Format_RGBA8
	if srgb {
		format = Format_SRGBA8
	}

	raw := NewRawImage(format, b.Dx(), b.Dy(), 1)
	row := raw.RowBytes()
	for y := 0; y < b.Dy(); y++ {
		src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+row]
		copy(raw.Data[(b.Dy()-1-y)*row:], src)
	}

	return raw
}

type LoadOptions struct {
	// NoSrgb loads the image as linear data, for normal maps and the like
	NoSrgb bool
}

// LoadImage decodes a png, jpeg, gif, bmp, tiff or webp file
func LoadImage(path string, opts LoadOptions) (RawImage, error) {

	f, err := os.Open(path)
	if err != nil {
		return RawImage{}, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return RawImage{}, fmt.Errorf("textures: decoding %s: %w", path, err)
	}

	return RawImageFromImage(img, !opts.NoSrgb), nil
}

// LoadCubemapImages loads six face images in CubeFace order into one
// image with a depth of 6
func LoadCubemapImages(paths [6]string, opts LoadOptions) (RawImage, error) {

	var out RawImage
	for i, p := range paths {

		face, err := LoadImage(p, opts)
		if err != nil {
			return RawImage{}, err
		}

		// Cube faces use the top-left origin convention
		face.FlipVertically()

		if i == 0 {
			out = NewRawImage(face.Format, face.Width, face.Height, 6)
		} else if face.Width != out.Width || face.Height != out.Height {
			return RawImage{}, fmt.Errorf("%w: cube face %s is %dx%d but the first face is %dx%d", ErrImageSize, p, face.Width, face.Height, out.Width, out.Height)
		}

		copy(out.Data[i*len(face.Data):], face.Data)
	}

	return out, nil
}
