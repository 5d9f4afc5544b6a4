package view

import (
	"image"

	"github.com/soocke/threshold-tuner/config"
	"github.com/soocke/threshold-tuner/ui/images"
	"github.com/soocke/threshold-tuner/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	// Max preview dimensions per pane; frames are scaled proportionally.
	maxPreviewW = 320
	maxPreviewH = 240
)

type previewSlot struct {
	label *LabelWidget
	photo *Img // current Tk photo, deleted on replacement
}

// PreviewPane shows one image label per polled resource, side by side.
type PreviewPane struct {
	slots map[string]*previewSlot
	maxW  int
	maxH  int
}

// NewPreviewPane grids a caption and a placeholder image for each preview at row.
// It occupies two rows starting at row and spans the given number of columns each.
func NewPreviewPane(previews []config.Preview, row, startCol int) *PreviewPane {
	p := &PreviewPane{slots: make(map[string]*previewSlot, len(previews)), maxW: maxPreviewW, maxH: maxPreviewH}
	placeholder := images.EncodePNG(images.Placeholder(maxPreviewW/2, maxPreviewH/2))
	for i, pv := range previews {
		col := startCol + i
		caption := TLabel(Txt(pv.Label), Style(theme.StyleCaptionLabel), Anchor("w"))
		Grid(caption, Row(row), Column(col), Sticky("w"), Padx("0.4m"))
		photo := NewPhoto(Data(placeholder))
		lbl := Label(Image(photo), Borderwidth(1), Relief("sunken"))
		Grid(lbl, Row(row+1), Column(col), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
		p.slots[pv.Resource] = &previewSlot{label: lbl, photo: photo}
	}
	return p
}

// ShowPreview replaces the image for target. Unknown targets are ignored.
func (p *PreviewPane) ShowPreview(target string, img image.Image) {
	if p == nil || img == nil {
		return
	}
	slot := p.slots[target]
	if slot == nil || slot.label == nil {
		return
	}
	pngBytes := images.EncodePNG(images.ScaleToFit(img, p.maxW, p.maxH))
	if len(pngBytes) == 0 {
		return
	}
	if slot.photo != nil {
		slot.photo.Delete()
	}
	slot.photo = NewPhoto(Data(pngBytes))
	slot.label.Configure(Image(slot.photo))
}
