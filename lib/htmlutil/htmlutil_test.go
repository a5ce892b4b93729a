package htmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestGetText(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<div>期限:<b>2024-01-10</b> <i>23:59</i></div>`))
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "期限:2024-01-10 23:59", GetText(doc))
	require.Equal(t, "", GetText(nil))

	doc, err = html.Parse(strings.NewReader(`<div>公開中<script>var s = "受付終了";</script><style>div{}</style></div>`))
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "公開中", GetText(doc))
}

func TestCleanText(t *testing.T) {
	table := []struct {
		input    string
		expected string
	}{
		{input: "  公開中 \n", expected: "公開中"},
		{input: "\t期限:2024-01-10   23:59\n\n", expected: "期限:2024-01-10 23:59"},
		{input: "a\u200bb", expected: "ab"},
		{input: "第1回\u3000レポート", expected: "第1回 レポート"},
		{input: ">\u00a0Linear Algebra [EN101]", expected: "> Linear Algebra [EN101]"},
		{input: "\u3000\u3000課題\u00a0 \u3000A\u3000", expected: "課題 A"},
		{input: "", expected: ""},
	}

	for _, row := range table {
		require.Equal(t, row.expected, CleanText(row.input))
	}
}
