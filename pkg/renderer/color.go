package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-offline-pathtracer/pkg/core"
)

// ColorToRGBA converts averaged linear radiance to an 8-bit pixel.
// Channels are clamped to [0,1] and gamma corrected with a square root.
func ColorToRGBA(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: channelToByte(c.X),
		G: channelToByte(c.Y),
		B: channelToByte(c.Z),
		A: 255,
	}
}

func channelToByte(v float64) uint8 {
	// Also catches NaN, which fails every comparison
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(255.999 * math.Sqrt(v))
}

// PixelsToImage converts a top-down radiance buffer into an RGBA image
func PixelsToImage(pixels [][]core.Vec3) *image.RGBA {
	height := len(pixels)
	width := 0
	if height > 0 {
		width = len(pixels[0])
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y, row := range pixels {
		for x, c := range row {
			img.SetRGBA(x, y, ColorToRGBA(c))
		}
	}
	return img
}
