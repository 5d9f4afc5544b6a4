package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pkg/browser"

	"github.com/soocke/threshold-tuner/config"
	"github.com/soocke/threshold-tuner/debug"
	"github.com/soocke/threshold-tuner/ui/theme"
	"github.com/soocke/threshold-tuner/ui/view"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const tick = 50 * time.Millisecond

type app struct {
	config    *config.Config
	logger    *slog.Logger
	width     int
	height    int
	afterID   string
	container *AppContainer
	cancel    context.CancelFunc
}

func NewApp(title string, width, height int, cfg *config.Config, logger *slog.Logger) *app {
	a := &app{config: cfg, logger: logger, width: width, height: height}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

// Start builds the window, loads settings from the backend, starts preview polling and
// blocks in the Tk event loop until the window closes.
func (a *app) Start() {
	theme.InitStyles(a.config.DarkMode)

	rv := view.NewRootView(a.config, a.logger)
	c := BuildContainer(a.config, a.logger, rv)
	a.container = c
	rv.Build(c.Handlers(), a.exitHandler)
	c.Loop.Schedule = a.scheduleUpdate

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	if a.config.MetricsAddr != "" {
		go a.serveMetrics()
	}
	if a.config.Debug {
		debug.StartRuntimeLogger(ctx, 10*time.Second, a.logger, c.Poller)
	}
	if a.config.OpenBrowser {
		if err := browser.OpenURL(a.config.BaseURL); err != nil {
			a.logger.Warn("open backend page", "url", a.config.BaseURL, "error", err)
		}
	}

	// Every fetch carries the request timeout, so this blocks for at most that long.
	if err := c.Controller.OnLoad(ctx); err != nil {
		a.logger.Warn("settings load incomplete", "error", err)
	}
	if active, ok := c.Controller.Active(); ok {
		rv.SelectType(active.Name)
	}
	c.Preview.Start()

	a.scheduleUpdate()
	App.Wait()
}

func (a *app) serveMetrics() {
	a.logger.Info("metrics listening", "addr", a.config.MetricsAddr)
	if err := a.container.Metrics.StartServer(a.config.MetricsAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.logger.Error("metrics server", "addr", a.config.MetricsAddr, "error", err)
	}
}

func (a *app) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	if a.container != nil {
		a.container.Preview.Stop()
	}
	if a.cancel != nil {
		a.cancel()
	}
	Destroy(App)
}

// scheduleUpdate queues the next loop tick on Tk's event loop thread.
func (a *app) scheduleUpdate() {
	a.afterID = TclAfter(tick, func() { a.container.Loop.Tick() })
}
