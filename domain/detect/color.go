package detect

import "image"

// Predicate classifies a single RGB sample.
type Predicate func(r, g, b uint8) bool

// WhiteAtLeast matches pixels whose three channels are all >= threshold.
func WhiteAtLeast(threshold uint8) Predicate {
	return func(r, g, b uint8) bool {
		return r >= threshold && g >= threshold && b >= threshold
	}
}

// RedRule describes the "reddish" confirm color.
// OtherMax is an exclusive upper bound for green and blue (256 disables it).
// Dominance, when non-zero, additionally requires R to exceed G and B by at
// least that margin.
type RedRule struct {
	Min       uint8
	OtherMax  int
	Dominance uint8
}

// Match reports whether (r,g,b) satisfies the rule.
func (rr RedRule) Match(r, g, b uint8) bool {
	if r < rr.Min || int(g) >= rr.OtherMax || int(b) >= rr.OtherMax {
		return false
	}
	if rr.Dominance == 0 {
		return true
	}
	d := int(rr.Dominance)
	return int(r)-int(g) >= d && int(r)-int(b) >= d
}

// Predicate adapts the rule.
func (rr RedRule) Predicate() Predicate { return rr.Match }

// rgbAt reads the sample-relative pixel (x,y). The caller guarantees bounds.
func rgbAt(frame *image.RGBA, x, y int) (uint8, uint8, uint8) {
	i := y*frame.Stride + x*4
	return frame.Pix[i], frame.Pix[i+1], frame.Pix[i+2]
}

func inSample(frame *image.RGBA, p image.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < frame.Rect.Dx() && p.Y < frame.Rect.Dy()
}

// IsBlack reports whether every pixel of rect (clipped to the sample) has
// all channels at zero. An empty intersection counts as black.
func IsBlack(frame *image.RGBA, rect image.Rectangle) bool {
	r := rect.Intersect(image.Rect(0, 0, frame.Rect.Dx(), frame.Rect.Dy()))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := frame.Pix[y*frame.Stride : y*frame.Stride+frame.Rect.Dx()*4]
		for x := r.Min.X; x < r.Max.X; x++ {
			i := x * 4
			if row[i] != 0 || row[i+1] != 0 || row[i+2] != 0 {
				return false
			}
		}
	}
	return true
}
