package lms

import (
	"fmt"
	"homework-assist/lib/htmlutil"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	_ "embed"
)

//go:embed testdata/lecture.html
var lecturePage []byte

func mustAssignment(t testing.TB, title, lecture string, kind Kind, deadline string) Assignment {
	a, err := NewAssignment(title, lecture, kind, deadline)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestParseAssignments(t *testing.T) {
	doc, err := ParseDocumentBytes(lecturePage)
	if err != nil {
		t.Fatal(err)
	}
	assignments, err := ParseAssignments(doc)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Assignment{
		mustAssignment(t, "Report 1", "Linear Algebra ", KIND_REPORT, "2024-01-10 23:59"),
		mustAssignment(t, "Mid-term survey", "Linear Algebra ", KIND_SURVEY, "2024-01-12 12:00"),
		mustAssignment(t, "Quiz 2", "Linear Algebra ", KIND_TEST, "2024-01-15 09:00"),
	}
	diff := cmp.Diff(expected, assignments, cmp.AllowUnexported(Assignment{}))
	require.Empty(t, diff)
}

// lecturePageWithRow wraps a single assignment row in the minimal page
// structure ParseAssignments needs.
func lecturePageWithRow(row string) string {
	return fmt.Sprintf(`<div><a id="home">ホーム</a><span>&gt; Linear Algebra [EN101]</span></div>
<table>%s</table>`, row)
}

func TestParseAssignmentsFiltering(t *testing.T) {
	table := []struct {
		name     string
		status   string
		column   string
		expected []string
	}{
		{name: "open, deadline", status: "公開中", column: "期限:2024-01-10 23:59", expected: []string{"2024-01-10 23:59"}},
		{name: "extended, deadline", status: "延長受付中", column: "期限:2024-01-11 10:00", expected: []string{"2024-01-11 10:00"}},
		{name: "closed", status: "受付終了", column: "期限:2024-01-10 23:59"},
		{name: "submitted", status: "公開中", column: "提出済"},
		{name: "not yet open", status: "公開前", column: "期限:2024-03-01 00:00"},
	}

	for _, test := range table {
		t.Run(test.name, func(t *testing.T) {
			doc := mustParse(t, lecturePageWithRow(fmt.Sprintf(
				`<tr><td id="kadaiREP1"></td><td><a>Report</a></td><td><span>%s</span></td><td class="td03">%s</td></tr>`,
				test.status, test.column,
			)))
			assignments, err := ParseAssignments(doc)
			if err != nil {
				t.Fatal(err)
			}

			deadlines := []string{}
			for _, a := range assignments {
				deadlines = append(deadlines, a.Deadline())
			}
			if test.expected == nil {
				test.expected = []string{}
			}
			require.Equal(t, test.expected, deadlines)
		})
	}
}

func TestParseAssignmentsMissingElements(t *testing.T) {
	table := []struct {
		name string
		page string
	}{
		{
			name: "no status column",
			page: lecturePageWithRow(`<tr><td id="kadaiREP1"></td><td><a>Report</a></td><td><span>公開中</span></td></tr>`),
		},
		{
			name: "no title anchor",
			page: lecturePageWithRow(`<tr><td id="kadaiREP1"></td><td><span>公開中</span></td><td class="td03">期限:2024-01-10 23:59</td></tr>`),
		},
		{
			name: "no lecture header",
			page: `<table><tr><td id="kadaiREP1"></td><td><a>Report</a></td><td><span>公開中</span></td><td class="td03">期限:2024-01-10 23:59</td></tr></table>`,
		},
	}

	for _, test := range table {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseAssignments(mustParse(t, test.page))
			require.ErrorIs(t, err, ErrMissingElement)
		})
	}
}

func TestParseAssignmentsWithoutAssignmentCells(t *testing.T) {
	// pages without assignments may also lack the lecture header
	doc := mustParse(t, `<table><tr><td class="td03">期限:2024-01-10 23:59</td></tr></table>`)
	assignments, err := ParseAssignments(doc)
	require.NoError(t, err)
	require.Empty(t, assignments)
}

func TestKindFromCellId(t *testing.T) {
	table := []struct {
		id       string
		expected Kind
	}{
		{id: "kadaiREP0001", expected: KIND_REPORT},
		{id: "kadaiANK0001", expected: KIND_SURVEY},
		{id: "kadaiTES0001", expected: KIND_TEST},
		{id: "REPANK", expected: KIND_REPORT},
		{id: "ANKTES", expected: KIND_SURVEY},
		{id: "other", expected: KIND_TEST},
	}

	for _, row := range table {
		require.Equal(t, row.expected, KindFromCellId(row.id), row.id)
	}
}

func TestExtractLectureName(t *testing.T) {
	table := []struct {
		input    string
		expected string
	}{
		{input: "> Linear Algebra [EN101]", expected: "Linear Algebra "},
		{input: "＞ 線形代数学 [MA101]", expected: "線形代数学 "},
		{input: "> No Code", expected: "No Code"},
		{input: ">", expected: ""},
		// what a cleaned "&gt;&nbsp;" header looks like
		{input: htmlutil.CleanText(">\u00a0Linear Algebra [EN101]"), expected: "Linear Algebra "},
	}

	for _, row := range table {
		require.Equal(t, row.expected, ExtractLectureName(row.input), row.input)
	}
}

func TestParseAssignmentsKeepsUnicodeSpaces(t *testing.T) {
	doc := mustParse(t, `<div><a id="home">ホーム</a><span>&gt;&nbsp;Linear Algebra [EN101]</span></div>
<table><tr>
	<td id="kadaiREP1"></td>
	<td><a>第1回　レポート</a></td>
	<td><span>公開中</span></td>
	<td class="td03">期限:2024-01-10&nbsp;23:59</td>
</tr></table>`)

	assignments, err := ParseAssignments(doc)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, assignments, 1)
	require.Equal(t, "第1回 レポート", assignments[0].Title())
	require.Equal(t, "Linear Algebra ", assignments[0].LectureName())
	require.Equal(t, "2024-01-10 23:59", assignments[0].Deadline())
}

func TestExtractDeadline(t *testing.T) {
	require.Equal(t, "2024-01-10 23:59", ExtractDeadline("期限:2024-01-10 23:59"))
	require.Equal(t, "2024-01-10 23:59", ExtractDeadline("期限: 2024-01-10 23:59 "))
	require.Equal(t, "no separator", ExtractDeadline("no separator"))
}

func TestNewAssignment(t *testing.T) {
	a, err := NewAssignment("Report 1", "Linear Algebra ", KIND_REPORT, "2024-01-10 23:59")
	require.NoError(t, err)
	require.Equal(t, "Report 1", a.Title())
	require.Equal(t, "Linear Algebra ", a.LectureName())
	require.Equal(t, KIND_REPORT, a.Kind())
	require.Equal(t, "2024-01-10 23:59", a.Deadline())

	_, err = NewAssignment("", "Linear Algebra", KIND_REPORT, "")
	require.Error(t, err)
	_, err = NewAssignment("Report", "Linear Algebra", Kind(42), "")
	require.Error(t, err)
}

func TestKindString(t *testing.T) {
	require.Equal(t, "レポート", KIND_REPORT.String())
	require.Equal(t, "アンケート", KIND_SURVEY.String())
	require.Equal(t, "テスト", KIND_TEST.String())
}
