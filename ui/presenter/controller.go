package presenter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/remeh/sizedwaitgroup"

	"github.com/soocke/threshold-tuner/domain/settings"
	"github.com/soocke/threshold-tuner/ui/model"
)

// SettingsService narrows what the panel needs from the backend client.
type SettingsService interface {
	Fetch(ctx context.Context, name string) (settings.Record, error)
	Push(ctx context.Context, rec settings.Record) error
	Persist(ctx context.Context) error
}

// StatusView shows one line of feedback (save results, load warnings).
type StatusView interface{ SetStatus(text string) }

// ControllerOptions tunes a Controller. Zero values select defaults.
type ControllerOptions struct {
	InitialType      string
	FetchConcurrency int
	RequestTimeout   time.Duration
	// Go runs fire-and-forget work (pushes, saves). Defaults to a recovered goroutine.
	Go func(func())
	// Post runs f on the UI thread. Defaults to calling f directly.
	Post func(func())
}

// Controller selects the active settings type and wires form edits to the backend.
type Controller struct {
	store   *model.SettingsStore
	binder  *Binder
	svc     SettingsService
	status  StatusView
	logger  *slog.Logger
	opts    ControllerOptions
	saveSeq uint64
}

// NewController returns a controller over store. Nothing is fetched until OnLoad.
func NewController(store *model.SettingsStore, binder *Binder, svc SettingsService, status StatusView, opts ControllerOptions, logger *slog.Logger) *Controller {
	if opts.FetchConcurrency < 1 {
		opts.FetchConcurrency = 1
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 2 * time.Second
	}
	p := &Controller{store: store, binder: binder, svc: svc, status: status, logger: logger, opts: opts}
	if p.opts.Go == nil {
		p.opts.Go = p.goRecovered
	}
	if p.opts.Post == nil {
		p.opts.Post = func(f func()) { f() }
	}
	return p
}

// OnLoad fetches every known type concurrently, stores what arrived, and binds the
// initial type to the form. Types whose fetch failed keep their defaults; the joined
// fetch errors are returned for the caller's information only.
func (p *Controller) OnLoad(ctx context.Context) error {
	if p == nil || p.store == nil || p.svc == nil {
		return nil
	}
	p.binder.SetLoading()
	types := p.store.Types()
	type result struct {
		rec settings.Record
		err error
	}
	results := make([]result, len(types))
	wg := sizedwaitgroup.New(p.opts.FetchConcurrency)
	for i, name := range types {
		wg.Add()
		go func(i int, name string) {
			defer wg.Done()
			fctx, cancel := context.WithTimeout(ctx, p.opts.RequestTimeout)
			defer cancel()
			rec, err := p.svc.Fetch(fctx, name)
			results[i] = result{rec: rec, err: err}
		}(i, name)
	}
	wg.Wait()

	var errs []error
	for i, name := range types {
		if err := results[i].err; err != nil {
			errs = append(errs, err)
			if p.logger != nil {
				p.logger.Warn("settings fetch failed; keeping defaults", "type", name, "error", err)
			}
			continue
		}
		if cur, ok := p.store.Record(name); ok {
			p.store.Store(cur.WithValues(results[i].rec))
		}
	}

	initial := p.opts.InitialType
	if _, ok := p.store.Record(initial); !ok && len(types) > 0 {
		initial = types[0]
	}
	if err := p.SelectType(initial); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 && p.status != nil {
		p.status.SetStatus(fmt.Sprintf("Loaded with %d fetch error(s); showing defaults", len(errs)))
	}
	return errors.Join(errs...)
}

// SelectType makes name the active record and writes it into the form without
// triggering a push.
func (p *Controller) SelectType(name string) error {
	if p == nil || p.store == nil {
		return nil
	}
	if !p.store.SetActive(name) {
		return fmt.Errorf("unknown settings type %q", name)
	}
	rec := p.store.Active()
	p.binder.Apply(*rec)
	if p.logger != nil {
		p.logger.Debug("settings type selected", "type", name, "hue", rec.Hue.String(), "sat", rec.Sat.String(), "val", rec.Val.String())
	}
	return nil
}

// OnFormChanged reads the form into the active record and pushes it when a value
// actually changed. Notifications fired while the binder applies a record are dropped
// by the binder's gate.
func (p *Controller) OnFormChanged() { p.formChanged(false) }

// OnStepped handles a morphology stepper click. The record is pushed even when the
// count could not move (a decrement at zero), as every click is an explicit command.
func (p *Controller) OnStepped() { p.formChanged(true) }

func (p *Controller) formChanged(always bool) {
	if p == nil || p.store == nil || !p.binder.Accepting() {
		return
	}
	rec := p.store.Active()
	if rec == nil {
		return
	}
	changed, err := p.binder.Read(rec)
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("form value rejected", "type", rec.Name, "error", err)
		}
		return
	}
	if !changed && !always {
		return
	}
	snapshot := *rec
	p.opts.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.opts.RequestTimeout)
		defer cancel()
		if err := p.svc.Push(ctx, snapshot); err != nil && p.logger != nil {
			p.logger.Warn("settings push failed", "type", snapshot.Name, "error", err)
		}
	})
	p.binder.Committed()
}

// Save sends the persist command and reports the outcome on the status line.
func (p *Controller) Save() {
	if p == nil || p.svc == nil {
		return
	}
	p.saveSeq++
	seq := p.saveSeq
	p.setStatus("Saving…")
	p.opts.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.opts.RequestTimeout)
		defer cancel()
		err := p.svc.Persist(ctx)
		if err != nil {
			if p.logger != nil {
				p.logger.Error("settings save failed", "error", err)
			}
		} else if p.logger != nil {
			p.logger.Info("settings saved")
		}
		p.opts.Post(func() {
			if seq != p.saveSeq {
				return
			}
			if err != nil {
				p.setStatus("Save failed: " + err.Error())
				return
			}
			p.setStatus("Saved at " + time.Now().Format("15:04:05"))
		})
	})
}

// Active returns a copy of the active record, or false before the first selection.
func (p *Controller) Active() (settings.Record, bool) {
	if p == nil {
		return settings.Record{}, false
	}
	rec := p.store.Active()
	if rec == nil {
		return settings.Record{}, false
	}
	return *rec, true
}

// Types returns the selectable settings types.
func (p *Controller) Types() []string {
	if p == nil {
		return nil
	}
	return p.store.Types()
}

// State reports the binder state for the active selection.
func (p *Controller) State() BindState {
	if p == nil {
		return StateUninitialized
	}
	return p.binder.State()
}

func (p *Controller) setStatus(text string) {
	if p.status != nil {
		p.status.SetStatus(text)
	}
}

func (p *Controller) goRecovered(f func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil && p.logger != nil {
				p.logger.Error("controller task panic", "error", r, "stack", string(debug.Stack()))
			}
		}()
		f()
	}()
}
