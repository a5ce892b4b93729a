package htmlutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// GetText concatenates the text below node. Like a rendered page, contents
// of script and style elements are left out.
func GetText(node *html.Node) string {
	var out strings.Builder
	writeText(node, &out)
	return out.String()
}

func writeText(node *html.Node, out *strings.Builder) {
	if node == nil {
		return
	}
	switch node.Type {
	case html.TextNode:
		out.WriteString(node.Data)
		return
	case html.ElementNode:
		if node.Data == "script" || node.Data == "style" {
			return
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		writeText(child, out)
	}
}

var whitespaceRun = regexp.MustCompile(`\s\s+`)

// CleanText normalizes text read off a page. Every kind of whitespace
// (including no-break and ideographic spaces) becomes a plain space, other
// invisible runes (zero-width spaces and the like) are dropped, the ends are
// trimmed and runs of spaces collapse into one.
func CleanText(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		if !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, s)
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}
