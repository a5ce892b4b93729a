package homework

import (
	"homework-assist/internal/scrapers/lms"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterByLecture(t *testing.T) {
	records := []lms.Assignment{
		mustAssignment(t, "Report 1", "Linear Algebra ", lms.KIND_REPORT, ""),
		mustAssignment(t, "Essay", "English Communication", lms.KIND_REPORT, ""),
		mustAssignment(t, "小テスト", "情報数学　基礎", lms.KIND_TEST, ""),
	}

	titles := func(records []lms.Assignment) []string {
		var out []string
		for _, r := range records {
			out = append(out, r.Title())
		}
		return out
	}

	tests := []struct {
		query    string
		expected []string
	}{
		{query: "", expected: []string{"Report 1", "Essay", "小テスト"}},
		{query: "linear algebra", expected: []string{"Report 1"}},
		{query: "english", expected: []string{"Essay"}},
		{query: "情報数学", expected: []string{"小テスト"}},
		{query: "Lineer Algebra", expected: []string{"Report 1"}},
		{query: "chemistry", expected: nil},
	}

	for _, test := range tests {
		t.Run(test.query, func(t *testing.T) {
			got := FilterByLecture(records, test.query, DefaultLectureThreshold)
			require.Equal(t, test.expected, titles(got))
		})
	}
}

func TestFilteredPresenter(t *testing.T) {
	inner := &fakePresenter{}
	presenter := FilteredPresenter{Presenter: inner, Query: "english"}

	presenter.RenderTable([]lms.Assignment{
		mustAssignment(t, "Report 1", "Linear Algebra", lms.KIND_REPORT, ""),
		mustAssignment(t, "Essay", "English Communication", lms.KIND_REPORT, ""),
	})
	presenter.ShowProgress(1, 2)

	require.Equal(t, []string{"render 1", "progress 1/2"}, inner.Events())
}
