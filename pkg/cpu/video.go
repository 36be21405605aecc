package cpu

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"hackasm/pkg/grid"
)

const (
	ScreenWidth  = 512
	ScreenHeight = 256
	wordsPerRow  = ScreenWidth / 16
)

// GetFramebufferRGBA decodes the screen map into a 512×256 RGBA8888 byte
// slice. A set bit is a black pixel; bit 0 of each word is its leftmost pixel.
func (c *CPU) GetFramebufferRGBA() []byte {
	pixels := make([]byte, ScreenWidth*ScreenHeight*4)
	for i := 0; i < ScreenWords; i++ {
		word := c.RAM[ScreenBase+i]
		wx, row := grid.GetGridCoords(i, wordsPerRow)
		col := wx * 16
		for bit := 0; bit < 16; bit++ {
			var v byte = 0xFF
			if word&(1<<bit) != 0 {
				v = 0x00
			}
			idx := (row*ScreenWidth + col + bit) * 4
			pixels[idx+0] = v
			pixels[idx+1] = v
			pixels[idx+2] = v
			pixels[idx+3] = 0xFF
		}
	}
	return pixels
}

// Pixel reports whether pixel (x, y) is black. Out-of-range coordinates are white.
func (c *CPU) Pixel(x, y int) bool {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return false
	}
	word, bit := grid.PixelWord(x, y, ScreenWidth)
	return c.RAM[ScreenBase+word]&(1<<bit) != 0
}

// GetFramebufferImage returns the screen as an *image.RGBA.
func (c *CPU) GetFramebufferImage() *image.RGBA {
	return &image.RGBA{
		Pix:    c.GetFramebufferRGBA(),
		Stride: ScreenWidth * 4,
		Rect:   image.Rect(0, 0, ScreenWidth, ScreenHeight),
	}
}

// ScaledFramebuffer enlarges the screen by an integer factor without smoothing.
func (c *CPU) ScaledFramebuffer(scale int) *image.RGBA {
	src := c.GetFramebufferImage()
	if scale <= 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, ScreenWidth*scale, ScreenHeight*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// SaveScreenshot encodes the screen as a PNG, scaled by scale, and writes it to filename.
func (c *CPU) SaveScreenshot(filename string, scale int) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, c.ScaledFramebuffer(scale)); err != nil {
		return fmt.Errorf("encode %s: %w", filename, err)
	}
	return f.Close()
}
