package snapshot

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/image/bmp"

	"github.com/soocke/ringtrigger/domain/detect"
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 5), B: uint8(x + y), A: 255})
		}
	}
	return img
}

func TestRender_HighlightsOnlyGivenCoordinates(t *testing.T) {
	src := gradient(9, 7)
	remembered := []image.Point{{1, 1}, {2, 1}, {3, 1}}
	confirmed := []image.Point{{2, 1}}
	out := Render(src, remembered, confirmed, nil)
	if got := out.RGBAAt(1, 1); got != RememberedColor {
		t.Fatalf("remembered pixel: got %v", got)
	}
	if got := out.RGBAAt(2, 1); got != ConfirmedColor {
		t.Fatalf("confirmed pixel must win: got %v", got)
	}
	if got, want := out.RGBAAt(4, 4), src.RGBAAt(4, 4); got != want {
		t.Fatalf("untouched pixel changed: %v vs %v", got, want)
	}
	if src.RGBAAt(1, 1) == RememberedColor {
		t.Fatalf("render must not modify the source frame")
	}
}

func TestRender_OutlinesSafetyRects(t *testing.T) {
	out := Render(gradient(10, 10), nil, nil, []image.Rectangle{image.Rect(2, 2, 6, 6)})
	for _, p := range []image.Point{{2, 2}, {5, 2}, {2, 5}, {5, 5}, {3, 2}} {
		if got := out.RGBAAt(p.X, p.Y); got != SafetyColor {
			t.Fatalf("outline missing at %v: %v", p, got)
		}
	}
	if out.RGBAAt(3, 3) == SafetyColor {
		t.Fatalf("outline must not fill the interior")
	}
}

func TestWriter_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "output.bmp")
	w := NewWriter(path, nil)
	src := gradient(13, 6) // odd width exercises row padding
	remembered := []image.Point{{0, 0}, {12, 5}, {6, 3}}
	confirmed := []image.Point{{6, 3}}
	if err := w.Save(detect.TriggerEvent{Episode: uuid.New(), Frame: src, Remembered: remembered, Confirmed: confirmed}); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw[:2]) != "BM" {
		t.Fatalf("missing BMP signature")
	}
	if bpp := binary.LittleEndian.Uint16(raw[28:30]); bpp != 24 {
		t.Fatalf("expected 24 bits per pixel, got %d", bpp)
	}
	rowBytes := (13*3 + 3) &^ 3
	if want := 54 + rowBytes*6; len(raw) != want {
		t.Fatalf("expected %d bytes with padded rows, got %d", want, len(raw))
	}

	decoded, err := bmp.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	highlighted := map[image.Point]color.RGBA{
		{0, 0}:  RememberedColor,
		{12, 5}: RememberedColor,
		{6, 3}:  ConfirmedColor,
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 13; x++ {
			r, g, b, _ := decoded.At(x, y).RGBA()
			got := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255}
			want, ok := highlighted[image.Pt(x, y)]
			if !ok {
				want = src.RGBAAt(x, y)
			}
			if got != want {
				t.Fatalf("pixel (%d,%d): got %v want %v", x, y, got, want)
			}
		}
	}
}

func TestWriter_ConcurrentSavesDoNotInterleave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.bmp")
	w := NewWriter(path, nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			frame := gradient(20+i, 10)
			_ = w.Save(detect.TriggerEvent{Episode: uuid.New(), Frame: frame})
		}(i)
	}
	wg.Wait()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := bmp.Decode(f); err != nil {
		t.Fatalf("final file is not a valid bitmap: %v", err)
	}
	if w.Last() == nil {
		t.Fatalf("expected last image to be recorded")
	}
}

func TestWriter_MissingFrame(t *testing.T) {
	w := NewWriter(filepath.Join(t.TempDir(), "x.bmp"), nil)
	if err := w.Save(detect.TriggerEvent{}); err == nil {
		t.Fatalf("expected error for missing frame")
	}
}

func TestWriter_UnwritableDirectory(t *testing.T) {
	w := NewWriter(filepath.Join(t.TempDir(), "missing", "x.bmp"), nil)
	if err := w.Save(detect.TriggerEvent{Frame: gradient(2, 2)}); err == nil {
		t.Fatalf("expected error writing into a missing directory")
	}
}
