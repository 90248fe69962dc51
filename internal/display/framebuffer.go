// Package display owns the monochrome frame the renderer paints on and the
// panels that frame is pushed to.
package display

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/i474232898/eink-weather/internal/icons"
)

// Landscape size of the Waveshare 2.13" panel.
const (
	Width  = 250
	Height = 122
)

// Framebuffer is an in-memory landscape frame. Drawing only ever sets pixels;
// nothing is shown until a panel flushes Image.
type Framebuffer struct {
	img  *image1bit.VerticalLSB
	face font.Face
}

func NewFramebuffer() *Framebuffer {
	fb := &Framebuffer{
		img:  image1bit.NewVerticalLSB(image.Rect(0, 0, Width, Height)),
		face: face8x8,
	}
	fb.Blank()
	return fb
}

func (f *Framebuffer) Bounds() image.Rectangle {
	return f.img.Bounds()
}

// Image returns the live frame.
func (f *Framebuffer) Image() image.Image {
	return f.img
}

// Blank fills the whole frame with paper.
func (f *Framebuffer) Blank() {
	draw.Draw(f.img, f.img.Bounds(), &image.Uniform{C: icons.Paper}, image.Point{}, draw.Src)
}

// CharWidth is the horizontal advance of one character.
func (f *Framebuffer) CharWidth() int {
	adv, ok := f.face.GlyphAdvance('0')
	if !ok {
		return 0
	}
	return adv.Ceil()
}

// Text draws s with its top-left corner at (x, y).
func (f *Framebuffer) Text(x, y int, s string) {
	ascent := f.face.Metrics().Ascent.Ceil()
	d := font.Drawer{
		Dst:  f.img,
		Src:  image.NewUniform(icons.Ink),
		Face: f.face,
		Dot:  fixed.P(x, y+ascent),
	}
	d.DrawString(s)
}

// HLine draws a one pixel line from x0 to x1 inclusive at row y.
func (f *Framebuffer) HLine(x0, x1, y int) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		if image.Pt(x, y).In(f.img.Rect) {
			f.img.SetBit(x, y, icons.Ink)
		}
	}
}

// Blit copies src with its top-left corner at (x, y), clipped to the frame.
func (f *Framebuffer) Blit(x, y int, src image.Image) {
	b := src.Bounds()
	r := image.Rectangle{Min: image.Pt(x, y), Max: image.Pt(x+b.Dx(), y+b.Dy())}
	draw.Draw(f.img, r, src, b.Min, draw.Src)
}
