// Package snapshot writes annotated trigger frames as 24-bit BMP files.
package snapshot

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/bmp"

	"github.com/soocke/ringtrigger/domain/detect"
)

// Highlight colors.
var (
	RememberedColor = color.RGBA{R: 0xFF, G: 0x00, B: 0xFF, A: 0xFF}
	ConfirmedColor  = color.RGBA{R: 0xFF, G: 0xFF, B: 0x00, A: 0xFF}
	SafetyColor     = color.RGBA{R: 0x00, G: 0xFF, B: 0xFF, A: 0xFF}
)

// Render returns an opaque copy of frame with safety rectangles outlined,
// remembered coordinates in RememberedColor and confirmed ones drawn on top
// in ConfirmedColor. Coordinates are sample-relative.
func Render(frame *image.RGBA, remembered, confirmed []image.Point, safety []image.Rectangle) *image.RGBA {
	w, h := frame.Rect.Dx(), frame.Rect.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := frame.Pix[y*frame.Stride : y*frame.Stride+w*4]
		dst := out.Pix[y*out.Stride : y*out.Stride+w*4]
		copy(dst, src)
		for i := 3; i < len(dst); i += 4 {
			dst[i] = 0xFF
		}
	}
	for _, r := range safety {
		outline(out, r, SafetyColor)
	}
	for _, p := range remembered {
		plot(out, p, RememberedColor)
	}
	for _, p := range confirmed {
		plot(out, p, ConfirmedColor)
	}
	return out
}

func plot(img *image.RGBA, p image.Point, c color.RGBA) {
	if p.In(img.Rect) {
		img.SetRGBA(p.X, p.Y, c)
	}
}

func outline(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		plot(img, image.Pt(x, r.Min.Y), c)
		plot(img, image.Pt(x, r.Max.Y-1), c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		plot(img, image.Pt(r.Min.X, y), c)
		plot(img, image.Pt(r.Max.X-1, y), c)
	}
}

// Encode writes img as an uncompressed bottom-up BMP. Opaque RGBA input is
// stored with 24 bits per pixel.
func Encode(w io.Writer, img *image.RGBA) error {
	bw := bufio.NewWriter(w)
	if err := bmp.Encode(bw, img); err != nil {
		return err
	}
	return bw.Flush()
}

// Writer saves trigger snapshots to a fixed path. Concurrent Save calls are
// serialized; each one fully replaces the file.
type Writer struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
	last   *image.RGBA
}

// NewWriter returns a writer targeting path.
func NewWriter(path string, logger *slog.Logger) *Writer {
	return &Writer{path: path, logger: logger}
}

// Path returns the output file path.
func (w *Writer) Path() string { return w.path }

// Save renders ev and writes it. ev.Frame must not be shared with the
// capture loop.
func (w *Writer) Save(ev detect.TriggerEvent) error {
	if ev.Frame == nil {
		return fmt.Errorf("snapshot: episode %s has no frame", ev.Episode)
	}
	img := Render(ev.Frame, ev.Remembered, ev.Confirmed, ev.SafetyRects)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.writeFile(img); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", w.path, err)
	}
	w.last = img
	if w.logger != nil {
		w.logger.Info("snapshot saved", "path", w.path, "episode", ev.Episode.String(),
			"remembered", len(ev.Remembered), "confirmed", len(ev.Confirmed))
	}
	return nil
}

// Last returns the most recently written image, or nil.
func (w *Writer) Last() *image.RGBA {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

// writeFile goes through a temp file in the same directory so readers never
// observe a half-written bitmap.
func (w *Writer) writeFile(img *image.RGBA) error {
	dir := filepath.Dir(w.path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*.bmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if err := Encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, w.path); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}
