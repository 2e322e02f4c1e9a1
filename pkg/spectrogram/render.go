// ABOUTME: Grayscale rendering of decibel frames
// ABOUTME: Maps dB to 8-bit intensity and resizes to the target image size
package spectrogram

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// dbToGray maps [-topDB, 0] dB linearly onto [0, 255]
func dbToGray(db, topDB float64) uint8 {
	v := math.Round(255 * (db + topDB) / topDB)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// raster draws a mel-major dB matrix with time on x and the lowest mel bin
// on the bottom row.
func raster(db []float64, mels, frames int, topDB float64) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, frames, mels))
	for m := 0; m < mels; m++ {
		y := mels - 1 - m
		for t := 0; t < frames; t++ {
			img.Pix[y*img.Stride+t] = dbToGray(db[m*frames+t], topDB)
		}
	}
	return img
}

// Render converts a frame into a grayscale image of the configured size
func Render(f *Frame, cfg Config) *image.Gray {
	src := raster(f.DB(cfg.TopDB), f.Mels, f.Frames, cfg.TopDB)
	if src.Bounds().Dx() == cfg.Width && src.Bounds().Dy() == cfg.Height {
		return src
	}

	dst := image.NewGray(image.Rect(0, 0, cfg.Width, cfg.Height))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
