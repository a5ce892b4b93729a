package textutil

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases a name and drops all whitespace, including the
// ideographic space used in Japanese course titles.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "　", " ")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// Similarity scores two names between 0 and 1 after normalization, a name
// containing the other scores 1.
func Similarity(a, b string) float64 {
	a = NormalizeName(a)
	b = NormalizeName(b)
	if a == "" || b == "" {
		return 0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 1
	}
	return matchr.JaroWinkler(a, b, false)
}
