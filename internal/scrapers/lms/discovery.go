package lms

import (
	"regexp"
	"strings"
)

// periodMarker appears in every timetable cell that holds a lecture
// ("1限", "2限", ...), announcement-only cells lack it.
const periodMarker = "限"

// matches the first single-quoted argument of an onclick handler,
// ex. formSubmit('20240012345') -> 20240012345
var onclickIdRegex = regexp.MustCompile(`'([^']+)'`)

func lectureIdFromOnclick(onclick string) (LectureId, bool) {
	groups := onclickIdRegex.FindStringSubmatch(onclick)
	if len(groups) < 2 {
		return "", false
	}
	return LectureId(groups[1]), true
}

// DiscoverLectures collects the ids of every lecture linked from the
// timetable. Duplicates are dropped, first-seen order is kept.
func DiscoverLectures(timetable Document) []LectureId {
	seen := map[LectureId]struct{}{}
	var ids []LectureId

	for _, cell := range timetable.ElementsByTag("td") {
		if !strings.Contains(cell.Text(), periodMarker) {
			continue
		}
		row, ok := cell.Parent()
		if !ok {
			continue
		}

		for _, anchor := range row.ElementsByTag("a") {
			onclick, ok := anchor.Attr("onclick")
			if !ok {
				continue
			}
			id, ok := lectureIdFromOnclick(onclick)
			if !ok {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	return ids
}
