package homework

import (
	"context"
	"errors"
	"fmt"
	"homework-assist/internal/cache"
	"homework-assist/internal/components/assert"
	"homework-assist/internal/components/chrono"
	"homework-assist/internal/components/telemetry"
	"homework-assist/internal/scrapers/lms"
	"sync/atomic"
	"time"
)

const (
	report_gate_refresh    = "gate.refresh"
	report_gate_navigation = "gate.observe-navigation"
)

// DefaultCooldown is the minimum age of the cached entry before a refresh is
// allowed to hit the LMS again.
const DefaultCooldown = 15 * time.Second

// RefreshWarning is shown when a refresh is requested within the cooldown.
const RefreshWarning = "過度な更新は避けてください（サーバーへの負荷軽減のため）"

var ErrRefreshTooSoon = errors.New("refresh requested before the cooldown elapsed")

// Extractor produces the full assignment list, Pipeline implements it.
type Extractor interface {
	Run(ctx context.Context, progress lms.ProgressFunc) ([]lms.Assignment, error)
}

// Presenter displays the state of the gate to the user.
type Presenter interface {
	RenderTable(records []lms.Assignment)
	ShowProgress(current, total int)
	ClearProgress()
	ShowWarning(message string)
	ClearRenderedTable()
}

// Gate decides whether assignments are served from the cache or extracted
// anew. At most one extraction runs at a time.
type Gate struct {
	store     cache.Store
	extractor Extractor
	presenter Presenter
	time      chrono.API
	cooldown  time.Duration
	tel       telemetry.API

	inFlight atomic.Bool
}

func NewGate(
	store cache.Store,
	extractor Extractor,
	presenter Presenter,
	time chrono.API,
	cooldown time.Duration,
	tel telemetry.API,
) *Gate {
	assert.NotNil(store)
	assert.NotNil(extractor)
	assert.NotNil(presenter)
	assert.NotNil(time)
	assert.NotNil(tel)

	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}

	return &Gate{
		store:     store,
		extractor: extractor,
		presenter: presenter,
		time:      time,
		cooldown:  cooldown,
		tel:       telemetry.NewScopedAPI("gate", tel),
	}
}

// InProgress reports whether an extraction is currently running.
func (g *Gate) InProgress() bool {
	return g.inFlight.Load()
}

// Load renders the cached entry if there is one, otherwise it extracts,
// renders and caches the assignments.
func (g *Gate) Load(ctx context.Context) error {
	if !g.inFlight.CompareAndSwap(false, true) {
		g.tel.ReportDebug("load ignored, extraction in progress")
		return nil
	}
	defer g.inFlight.Store(false)

	entry, ok, err := g.store.Get(ctx)
	if err != nil {
		return fmt.Errorf("read cache: %w", err)
	}
	if ok {
		g.tel.ReportDebug("serving cached entry", entry.CapturedAt, len(entry.Assignments))
		g.presenter.RenderTable(entry.Assignments)
		return nil
	}
	return g.extract(ctx)
}

// Refresh extracts the assignments again unless the cached entry is younger
// than the cooldown, in which case a warning is shown and ErrRefreshTooSoon
// is returned without touching the network. A refresh requested while
// another extraction runs is ignored.
func (g *Gate) Refresh(ctx context.Context) error {
	if !g.inFlight.CompareAndSwap(false, true) {
		g.tel.ReportDebug("refresh ignored, extraction in progress")
		return nil
	}
	defer g.inFlight.Store(false)

	entry, ok, err := g.store.Get(ctx)
	if err != nil {
		return fmt.Errorf("read cache: %w", err)
	}
	if ok {
		elapsed := g.time.Now().Sub(entry.CapturedAt)
		if elapsed < g.cooldown {
			g.tel.ReportWarning(report_gate_refresh, ErrRefreshTooSoon, elapsed)
			g.presenter.ShowWarning(RefreshWarning)
			return ErrRefreshTooSoon
		}
	}

	g.presenter.ClearRenderedTable()
	return g.extract(ctx)
}

// extract must only be called while holding inFlight.
func (g *Gate) extract(ctx context.Context) error {
	assignments, err := g.extractor.Run(ctx, g.presenter.ShowProgress)
	g.presenter.ClearProgress()
	if err != nil {
		if errors.Is(err, lms.ErrLoggedOut) {
			clearErr := g.clear(ctx)
			if clearErr != nil {
				return errors.Join(err, clearErr)
			}
		}
		return err
	}

	g.presenter.RenderTable(assignments)

	err = g.store.Set(ctx, cache.Entry{
		Assignments: assignments,
		CapturedAt:  g.time.Now(),
	})
	if err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

func (g *Gate) clear(ctx context.Context) error {
	g.tel.ReportWarning(report_gate_navigation, "session expired, clearing cache")
	err := g.store.Clear(ctx)
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// ObserveNavigation clears all cached state when link is the LMS login page.
func (g *Gate) ObserveNavigation(ctx context.Context, link string) error {
	if !lms.IsLoginPage(link) {
		return nil
	}
	return g.clear(ctx)
}
