// ABOUTME: Tensor and Shape types
// ABOUTME: Builds [0,1] tensors from images and PNG files
package tensor

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
)

// ErrDecode is returned when a file cannot be read as an image
var ErrDecode = errors.New("image decode failed")

// Shape is the channel, height and width of a tensor
type Shape struct {
	Channels int `msgpack:"channels" yaml:"channels"`
	Height   int `msgpack:"height" yaml:"height"`
	Width    int `msgpack:"width" yaml:"width"`
}

// Size returns the number of values in a tensor of this shape
func (s Shape) Size() int {
	return s.Channels * s.Height * s.Width
}

// Validate checks the shape is usable
func (s Shape) Validate() error {
	if s.Channels != 1 && s.Channels != 3 {
		return fmt.Errorf("channels must be 1 or 3, got %d", s.Channels)
	}
	if s.Height <= 0 || s.Width <= 0 {
		return fmt.Errorf("invalid spatial size %dx%d", s.Width, s.Height)
	}
	return nil
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%dx%d", s.Height, s.Width, s.Channels)
}

// Tensor is a CHW block of normalized values
type Tensor struct {
	Shape Shape     `msgpack:"shape"`
	Data  []float32 `msgpack:"data"`
}

// At returns the value at channel c, row y, column x
func (t Tensor) At(c, y, x int) float32 {
	return t.Data[(c*t.Shape.Height+y)*t.Shape.Width+x]
}

// Float64 returns the data widened to float64
func (t Tensor) Float64() []float64 {
	out := make([]float64, len(t.Data))
	for i, v := range t.Data {
		out[i] = float64(v)
	}
	return out
}

// FromImage resizes img to the shape and scales pixel intensities to [0,1]
func FromImage(img image.Image, shape Shape) (Tensor, error) {
	if err := shape.Validate(); err != nil {
		return Tensor{}, err
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return Tensor{}, fmt.Errorf("%w: empty image", ErrDecode)
	}

	if b.Dx() != shape.Width || b.Dy() != shape.Height {
		img = resize(img, shape.Width, shape.Height)
		b = img.Bounds()
	}

	plane := shape.Height * shape.Width
	data := make([]float32, shape.Size())
	for y := 0; y < shape.Height; y++ {
		for x := 0; x < shape.Width; x++ {
			px := img.At(b.Min.X+x, b.Min.Y+y)
			i := y*shape.Width + x
			if shape.Channels == 1 {
				g := color.Gray16Model.Convert(px).(color.Gray16)
				data[i] = float32(g.Y) / 65535
				continue
			}
			r, g, bl, _ := px.RGBA()
			data[i] = float32(r) / 65535
			data[plane+i] = float32(g) / 65535
			data[2*plane+i] = float32(bl) / 65535
		}
	}

	return Tensor{Shape: shape, Data: data}, nil
}

// Load reads an image file and converts it to a tensor of the given shape
func Load(path string, shape Shape) (Tensor, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tensor{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return Tensor{}, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	return FromImage(img, shape)
}

func resize(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
