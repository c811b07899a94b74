package view

import (
	"image"

	"github.com/soocke/ringtrigger/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// CapturePreview shows the live sample (with the ring traced) next to the
// last diagnostic snapshot.
type CapturePreview interface {
	UpdateCapture(img image.Image)
	UpdateSnapshot(img image.Image)
	Reset()
}

// Previews are square; samples are scaled up so ring pixels stay visible.
const previewSide = 240

type capturePreview struct {
	captureLabel  *LabelWidget
	snapshotLabel *LabelWidget
	capturePhoto  *Img
	snapshotPhoto *Img
}

// NewCapturePreview grids both preview labels on row.
func NewCapturePreview(row int) CapturePreview {
	v := &capturePreview{}
	v.capturePhoto = placeholder()
	v.snapshotPhoto = placeholder()
	v.captureLabel = Label(Image(v.capturePhoto), Borderwidth(1), Relief("sunken"))
	v.snapshotLabel = Label(Image(v.snapshotPhoto), Borderwidth(1), Relief("sunken"))
	Grid(v.captureLabel, Row(row), Column(0), Columnspan(2), Padx("0.4m"), Pady("0.4m"))
	Grid(v.snapshotLabel, Row(row), Column(2), Columnspan(2), Padx("0.4m"), Pady("0.4m"))
	return v
}

func placeholder() *Img {
	return NewPhoto(Data(images.EncodePNG(image.NewRGBA(image.Rect(0, 0, previewSide, previewSide)))))
}

// swap replaces the label image and frees the previous Tk photo so stale
// pixel data does not accumulate.
func swap(lbl *LabelWidget, prev **Img, img image.Image) {
	if lbl == nil || img == nil {
		return
	}
	data := images.EncodePNG(images.ScaleToFit(img, previewSide, previewSide))
	if data == nil {
		return
	}
	if *prev != nil {
		(*prev).Delete()
	}
	*prev = NewPhoto(Data(data))
	lbl.Configure(Image(*prev))
}

func (v *capturePreview) UpdateCapture(img image.Image) {
	swap(v.captureLabel, &v.capturePhoto, img)
}

func (v *capturePreview) UpdateSnapshot(img image.Image) {
	swap(v.snapshotLabel, &v.snapshotPhoto, img)
}

func (v *capturePreview) Reset() {
	blank := image.NewRGBA(image.Rect(0, 0, previewSide, previewSide))
	swap(v.captureLabel, &v.capturePhoto, blank)
}
