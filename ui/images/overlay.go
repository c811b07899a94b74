package images

import (
	"image"
	"image/color"
	"math"

	"github.com/soocke/ringtrigger/domain/detect"
)

// RingGuide is drawn over previews so the ring can be lined up on screen.
var RingGuide = color.RGBA{R: 0x00, G: 0xC8, B: 0x00, A: 0xFF}

// WithRing returns a copy of frame with the inner and outer ring circles
// traced in RingGuide. The source is not modified.
func WithRing(frame *image.RGBA, ring detect.Ring) *image.RGBA {
	if frame == nil {
		return nil
	}
	b := frame.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+b.Dx()*4], frame.Pix[y*frame.Stride:y*frame.Stride+b.Dx()*4])
	}
	circle(out, ring.Center, ring.Inner)
	circle(out, ring.Center, ring.Outer)
	return out
}

func circle(img *image.RGBA, c image.Point, r float64) {
	if r <= 0 {
		return
	}
	steps := int(2*math.Pi*r) * 2
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		p := image.Pt(c.X+int(math.Round(r*math.Cos(a))), c.Y+int(math.Round(r*math.Sin(a))))
		if p.In(img.Rect) {
			img.SetRGBA(p.X, p.Y, RingGuide)
		}
	}
}
