package view

import (
	"image"
	"log/slog"

	"github.com/soocke/threshold-tuner/config"
	"github.com/soocke/threshold-tuner/ui/presenter"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level layout: the tuning form on the left, previews on the right.
type RootView struct {
	cfg    *config.Config
	logger *slog.Logger

	Panel   *TuningPanel
	Preview *PreviewPane
}

// UI is everything the presenters need from the window.
type UI interface {
	presenter.Form
	presenter.StatusView
	presenter.PreviewView
}

var _ UI = (*RootView)(nil)

// NewRootView returns a view over cfg; widgets are created by Build.
func NewRootView(cfg *config.Config, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, logger: logger}
}

// Build constructs the layout. Handlers are invoked on user actions; onExit backs the Exit button.
func (rv *RootView) Build(h PanelHandlers, onExit func()) {
	if rv == nil {
		return
	}
	rv.Panel = NewTuningPanel(rv.cfg.Types, h, rv.logger)
	endRow := rv.Panel.Build(0)

	exitBtn := Button(Txt("Exit"), Command(onExit))
	Grid(exitBtn, Row(endRow), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	// previews sit to the right of the form, starting at column 4
	rv.Preview = NewPreviewPane(rv.cfg.Previews, 0, 4)
}

func (rv *RootView) Value(c presenter.Control) string {
	if rv == nil || rv.Panel == nil {
		return ""
	}
	return rv.Panel.Value(c)
}

func (rv *RootView) SetValue(c presenter.Control, v string) {
	if rv != nil && rv.Panel != nil {
		rv.Panel.SetValue(c, v)
	}
}

func (rv *RootView) Notify(c presenter.Control) {
	if rv != nil && rv.Panel != nil {
		rv.Panel.Notify(c)
	}
}

// SetStatus proxies to the panel's status line.
func (rv *RootView) SetStatus(text string) {
	if rv != nil {
		rv.Panel.SetStatus(text)
	}
}

// ShowPreview proxies to the preview pane.
func (rv *RootView) ShowPreview(target string, img image.Image) {
	if rv != nil {
		rv.Preview.ShowPreview(target, img)
	}
}

// SelectType moves the type selector without firing its handler.
func (rv *RootView) SelectType(name string) {
	if rv != nil {
		rv.Panel.SelectType(name)
	}
}
