package detect

import (
	"image"
	"math"
)

// Ring is the annulus strictly between Inner and Outer around Center, in
// sample coordinates.
type Ring struct {
	Center       image.Point
	Inner, Outer float64
}

// NewRing centers a ring on a sample of the given size shifted by offset.
func NewRing(size image.Point, offset image.Point, inner, outer float64) Ring {
	return Ring{
		Center: image.Pt(size.X/2+offset.X, size.Y/2+offset.Y),
		Inner:  inner,
		Outer:  outer,
	}
}

// Contains reports whether p lies strictly inside the annulus. Points on
// either circle are excluded.
func (r Ring) Contains(p image.Point) bool {
	dx := float64(p.X - r.Center.X)
	dy := float64(p.Y - r.Center.Y)
	d2 := dx*dx + dy*dy
	return d2 > r.Inner*r.Inner && d2 < r.Outer*r.Outer
}

// Scan returns every ring coordinate of frame whose color satisfies pred,
// in row-major order.
func (r Ring) Scan(frame *image.RGBA, pred Predicate) []image.Point {
	if frame == nil || pred == nil {
		return nil
	}
	w, h := frame.Rect.Dx(), frame.Rect.Dy()
	// Only the bounding square of the outer circle can contain ring pixels.
	reach := int(math.Ceil(r.Outer))
	bounds := image.Rect(r.Center.X-reach, r.Center.Y-reach, r.Center.X+reach+1, r.Center.Y+reach+1).
		Intersect(image.Rect(0, 0, w, h))
	var out []image.Point
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			p := image.Pt(x, y)
			if !r.Contains(p) {
				continue
			}
			if pred(rgbAt(frame, x, y)) {
				out = append(out, p)
			}
		}
	}
	return out
}
