package homework

import (
	"homework-assist/internal/scrapers/lms"
	"homework-assist/lib/textutil"
)

// DefaultLectureThreshold is the minimum similarity for a lecture name to
// match a --lecture query.
const DefaultLectureThreshold = 0.85

// FilterByLecture keeps the records whose lecture name is similar enough to
// query. An empty query keeps everything.
func FilterByLecture(records []lms.Assignment, query string, threshold float64) []lms.Assignment {
	if textutil.NormalizeName(query) == "" {
		return records
	}
	var out []lms.Assignment
	for _, r := range records {
		if textutil.Similarity(query, r.LectureName()) >= threshold {
			out = append(out, r)
		}
	}
	return out
}

// FilteredPresenter renders only the records matching Query, the cache
// keeps the full list.
type FilteredPresenter struct {
	Presenter
	Query     string
	Threshold float64
}

func (p FilteredPresenter) RenderTable(records []lms.Assignment) {
	threshold := p.Threshold
	if threshold <= 0 {
		threshold = DefaultLectureThreshold
	}
	p.Presenter.RenderTable(FilterByLecture(records, p.Query, threshold))
}
