package capture

import (
	"image"
	"sync"
)

// framePool recycles sample buffers between ticks. The capture loop acquires
// one per tick and releases it after the detector is done with it.
var framePool sync.Pool // *image.RGBA

// acquireFrame returns an RGBA image with origin (0,0) and the given size.
// Pix has exactly w*h*4 bytes and Stride is w*4; contents are undefined.
func acquireFrame(w, h int) *image.RGBA {
	rect := image.Rect(0, 0, w, h)
	if w <= 0 || h <= 0 {
		return &image.RGBA{Rect: rect}
	}
	needed := w * h * 4
	var img *image.RGBA
	if v := framePool.Get(); v != nil {
		img = v.(*image.RGBA)
	}
	if img == nil || cap(img.Pix) < needed {
		return &image.RGBA{Pix: make([]byte, needed), Stride: w * 4, Rect: rect}
	}
	img.Stride = w * 4
	img.Rect = rect
	img.Pix = img.Pix[:needed]
	return img
}

// RecycleFrame hands a frame back for reuse. The caller must not touch it
// afterwards.
func RecycleFrame(img *image.RGBA) {
	if img == nil || img.Pix == nil {
		return
	}
	framePool.Put(img)
}

// copyInto copies src (any origin) into dst starting at dst's origin. Both
// must have the same size.
func copyInto(dst, src *image.RGBA) {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	rowBytes := w * 4
	for y := 0; y < h; y++ {
		so := y * src.Stride
		do := y * dst.Stride
		copy(dst.Pix[do:do+rowBytes], src.Pix[so:so+rowBytes])
	}
}

// cloneFrame returns an independent copy with origin (0,0).
func cloneFrame(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, src.Rect.Dx(), src.Rect.Dy()))
	copyInto(dst, src)
	return dst
}
