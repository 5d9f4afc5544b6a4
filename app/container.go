package app

import (
	"log/slog"

	"github.com/soocke/threshold-tuner/config"
	"github.com/soocke/threshold-tuner/domain/backend"
	"github.com/soocke/threshold-tuner/domain/preview"
	"github.com/soocke/threshold-tuner/metrics"
	"github.com/soocke/threshold-tuner/ui/model"
	"github.com/soocke/threshold-tuner/ui/presenter"
	"github.com/soocke/threshold-tuner/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config   *config.Config
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Client   *backend.Client
	Store    *model.SettingsStore
	Poller   *preview.Poller
	Frames   *presenter.FrameBuffer
	RootView *view.RootView
	UI       view.UI

	// Presenters
	Binder     *presenter.Binder
	Controller *presenter.Controller
	Preview    *presenter.PreviewPresenter
	Loop       *presenter.Loop
}

// BuildContainer constructs all components. ui is the form/status/preview surface; it is
// normally the RootView but tests substitute a fake. No network traffic happens here.
func BuildContainer(cfg *config.Config, logger *slog.Logger, ui view.UI) *AppContainer {
	c := &AppContainer{Config: cfg, Logger: logger, UI: ui}
	if rv, ok := ui.(*view.RootView); ok {
		c.RootView = rv
	}
	c.Metrics = metrics.New()
	c.Client = backend.NewClient(cfg.BaseURL, backend.Dialect(cfg.Dialect), cfg.RequestTimeout(), logger, c.Metrics)
	c.Store = model.NewSettingsStore(cfg.Types)

	targets := make([]string, 0, len(cfg.Previews))
	for _, p := range cfg.Previews {
		targets = append(targets, p.Resource)
	}
	c.Frames = presenter.NewFrameBuffer(targets)
	c.Poller = preview.NewPoller(c.Client, c.Frames, targets, cfg.RequestTimeout(), logger, c.Metrics)
	c.Preview = presenter.NewPreviewPresenter(c.Poller, c.Frames, ui, cfg.PollInterval(), logger)
	c.Loop = presenter.NewLoop(c.Preview, nil)

	c.Binder = presenter.NewBinder(ui, logger)
	c.Controller = presenter.NewController(c.Store, c.Binder, c.Client, ui, presenter.ControllerOptions{
		InitialType:      cfg.InitialType,
		FetchConcurrency: cfg.FetchConcurrency,
		RequestTimeout:   cfg.RequestTimeout(),
		Post:             c.Loop.Post,
	}, logger)
	return c
}

// Handlers returns the panel callbacks routed to the presenters.
func (c *AppContainer) Handlers() view.PanelHandlers {
	return view.PanelHandlers{
		OnSelectType: func(name string) {
			if err := c.Controller.SelectType(name); err != nil && c.Logger != nil {
				c.Logger.Error("select settings type", "type", name, "error", err)
			}
		},
		OnChange:        c.Controller.OnFormChanged,
		OnStep:          c.Controller.OnStepped,
		OnSave:          c.Controller.Save,
		OnTogglePreview: c.Preview.Toggle,
	}
}
