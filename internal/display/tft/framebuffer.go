// internal/display/tft/framebuffer.go
package tft

import (
	"image"
	"image/color"
)

// Framebuffer is an in-memory drivers.Displayer.
// Used for headless runs and to check what a panel would show.
type Framebuffer struct {
	img     *image.RGBA
	flushes int
}

// NewFramebuffer allocates a w x h surface.
func NewFramebuffer(w, h int) *Framebuffer {
	return &Framebuffer{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (f *Framebuffer) Size() (x, y int16) {
	b := f.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

// SetPixel ignores out-of-bounds writes, like a real controller's window clip.
func (f *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	if !(image.Point{X: int(x), Y: int(y)}).In(f.img.Bounds()) {
		return
	}
	f.img.SetRGBA(int(x), int(y), c)
}

// Display counts flushes. Nothing to push.
func (f *Framebuffer) Display() error {
	f.flushes++
	return nil
}

// FillRectangle paints a clipped rectangle.
func (f *Framebuffer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	r := image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height)).Intersect(f.img.Bounds())
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			f.img.SetRGBA(px, py, c)
		}
	}
	return nil
}

// Image exposes the surface.
func (f *Framebuffer) Image() *image.RGBA { return f.img }

// Flushes returns how many times Display was called.
func (f *Framebuffer) Flushes() int { return f.flushes }
