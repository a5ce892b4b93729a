package telemetry

import (
	"strings"
)

// API is where components report what happened to them. Scrapers, the cache
// and the gate take it as a dependency so tests can observe what was reported
// (see Recorder).
type API interface {
	// ReportBroken reports a component that failed in a way someone should
	// look at (the LMS changed its layout, the cache database is unreadable).
	//
	// `id` names the component and method as `<component>.<method>`, lowercase
	// with dashes between words, ex. `client.lecture-page`. Details go into
	// params or a wrapped error.
	ReportBroken(id string, params ...any)

	// ReportWarning reports something unusual that is not necessarily a
	// failure, ex. an expired session or a refresh inside the cooldown.
	ReportWarning(id string, params ...any)

	// ReportDebug reports information only useful with --verbose.
	ReportDebug(msg string, params ...any)

	// ReportCount reports the current value of a count, values are points
	// in time and must not be summed.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id (or debug message) with a namespace, nested
// scopes are joined by ".".
type ScopedAPI struct {
	namespace string
	inner     API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	if parent, ok := inner.(ScopedAPI); ok {
		return ScopedAPI{
			namespace: parent.namespace + "." + namespace,
			inner:     parent.inner,
		}
	}
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) scoped(id string) string {
	return strings.Join([]string{s.namespace, id}, ": ")
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(s.scoped(id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(s.scoped(id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(s.scoped(msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(s.scoped(id), count)
}
