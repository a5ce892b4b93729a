package telemetry

import (
	"sync"
)

type Level int

const (
	LEVEL_DEBUG Level = iota
	LEVEL_COUNT
	LEVEL_WARNING
	LEVEL_BROKEN
)

type Report struct {
	Level  Level
	Id     string
	Params []any
}

// Recorder keeps every report in memory, for tests.
type Recorder struct {
	mu      sync.Mutex
	reports []Report
}

func (r *Recorder) add(report Report) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report)
}

func (r *Recorder) ReportBroken(id string, params ...any) {
	r.add(Report{Level: LEVEL_BROKEN, Id: id, Params: params})
}

func (r *Recorder) ReportWarning(id string, params ...any) {
	r.add(Report{Level: LEVEL_WARNING, Id: id, Params: params})
}

func (r *Recorder) ReportDebug(msg string, params ...any) {
	r.add(Report{Level: LEVEL_DEBUG, Id: msg, Params: params})
}

func (r *Recorder) ReportCount(id string, count int64) {
	r.add(Report{Level: LEVEL_COUNT, Id: id, Params: []any{count}})
}

// Ids returns the ids reported at level, in order.
func (r *Recorder) Ids(level Level) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, report := range r.reports {
		if report.Level == level {
			ids = append(ids, report.Id)
		}
	}
	return ids
}
