package presenter

import (
	"image"

	"github.com/soocke/ringtrigger/domain/capture"
	"github.com/soocke/ringtrigger/domain/detect"
	"github.com/soocke/ringtrigger/ui/images"
)

// FrameSource provides preview copies of recent samples.
type FrameSource interface {
	LatestFrame() capture.FrameSnapshot
}

// SnapshotSource provides the last written diagnostic snapshot.
type SnapshotSource interface {
	Last() *image.RGBA
}

// PreviewView shows the live sample and the last snapshot.
type PreviewView interface {
	UpdateCapture(img image.Image)
	UpdateSnapshot(img image.Image)
}

// PreviewPresenter pushes new preview frames (with the ring traced) and new
// snapshots to the view.
type PreviewPresenter struct {
	frames  FrameSource
	snaps   SnapshotSource
	ring    detect.Ring
	view    PreviewView
	lastSeq uint64
	lastImg *image.RGBA
}

// NewPreviewPresenter wires the sources; snaps may be nil when snapshots are
// disabled.
func NewPreviewPresenter(frames FrameSource, snaps SnapshotSource, ring detect.Ring, view PreviewView) *PreviewPresenter {
	return &PreviewPresenter{frames: frames, snaps: snaps, ring: ring, view: view}
}

func (p *PreviewPresenter) Tick() {
	if p == nil || p.view == nil {
		return
	}
	if p.frames != nil {
		snap := p.frames.LatestFrame()
		if snap.Image != nil && snap.Sequence != p.lastSeq {
			p.lastSeq = snap.Sequence
			p.view.UpdateCapture(images.WithRing(snap.Image, p.ring))
		}
	}
	if p.snaps != nil {
		if img := p.snaps.Last(); img != nil && img != p.lastImg {
			p.lastImg = img
			p.view.UpdateSnapshot(img)
		}
	}
}
