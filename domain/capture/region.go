package capture

import (
	"fmt"
	"image"

	kbinani "github.com/kbinani/screenshot"
)

// primaryBounds reports the bounds of display 0.
var primaryBounds = func() (image.Rectangle, error) {
	if kbinani.NumActiveDisplays() < 1 {
		return image.Rectangle{}, ErrNoDisplay
	}
	return kbinani.GetDisplayBounds(0), nil
}

// ResolveRegion returns the size x size screen square at (x,y). A negative
// coordinate centers the square on the primary display along that axis.
func ResolveRegion(size, x, y int) (image.Rectangle, error) {
	if size <= 0 {
		return image.Rectangle{}, fmt.Errorf("capture: invalid size %d", size)
	}
	if x < 0 || y < 0 {
		b, err := primaryBounds()
		if err != nil {
			return image.Rectangle{}, err
		}
		if x < 0 {
			x = b.Min.X + (b.Dx()-size)/2
		}
		if y < 0 {
			y = b.Min.Y + (b.Dy()-size)/2
		}
	}
	return image.Rect(x, y, x+size, y+size), nil
}
