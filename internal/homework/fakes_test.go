package homework

import (
	"context"
	"fmt"
	"homework-assist/internal/scrapers/lms"
	"sync"
	"testing"
)

type fakePresenter struct {
	mu       sync.Mutex
	events   []string
	rendered [][]lms.Assignment
	warnings []string
}

func (p *fakePresenter) log(event string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *fakePresenter) RenderTable(records []lms.Assignment) {
	p.mu.Lock()
	p.rendered = append(p.rendered, records)
	p.mu.Unlock()
	p.log(fmt.Sprintf("render %d", len(records)))
}

func (p *fakePresenter) ShowProgress(current, total int) {
	p.log(fmt.Sprintf("progress %d/%d", current, total))
}

func (p *fakePresenter) ClearProgress() { p.log("clear progress") }

func (p *fakePresenter) ShowWarning(message string) {
	p.mu.Lock()
	p.warnings = append(p.warnings, message)
	p.mu.Unlock()
	p.log("warning")
}

func (p *fakePresenter) ClearRenderedTable() { p.log("clear table") }

func (p *fakePresenter) Events() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

// fakeExtractor returns a fixed result. When started is set it signals
// every call and then waits on release.
type fakeExtractor struct {
	mu      sync.Mutex
	calls   int
	result  []lms.Assignment
	err     error
	started chan struct{}
	release chan struct{}
}

func (e *fakeExtractor) Run(ctx context.Context, progress lms.ProgressFunc) ([]lms.Assignment, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()

	if e.started != nil {
		e.started <- struct{}{}
		<-e.release
	}
	if progress != nil {
		progress(1, 1)
	}
	if e.err != nil {
		return nil, e.err
	}
	return e.result, nil
}

func (e *fakeExtractor) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

func mustAssignment(t testing.TB, title, lecture string, kind lms.Kind, deadline string) lms.Assignment {
	a, err := lms.NewAssignment(title, lecture, kind, deadline)
	if err != nil {
		t.Fatal(err)
	}
	return a
}
