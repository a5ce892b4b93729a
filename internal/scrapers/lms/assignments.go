package lms

import (
	"fmt"
	"homework-assist/lib/htmlutil"
	"strings"
)

var cellKindTokens = []string{"REP", "ANK", "TES"}

var openStatuses = map[string]struct{}{
	"公開中":   {},
	"延長受付中": {},
}

const (
	// deadlineMarker prefixes the status column while an assignment is
	// still unsubmitted, it is replaced by a confirmation once submitted.
	deadlineMarker = "期限"
	statusColumn   = "td03"
	lectureHeader  = "home"
)

func isAssignmentCell(id string) bool {
	for _, token := range cellKindTokens {
		if strings.Contains(id, token) {
			return true
		}
	}
	return false
}

// KindFromCellId maps an assignment cell id to its kind. REP wins over ANK,
// anything else is a test. Only ids passing isAssignmentCell reach here, so
// the fallback only ever sees TES.
func KindFromCellId(id string) Kind {
	switch {
	case strings.Contains(id, "REP"):
		return KIND_REPORT
	case strings.Contains(id, "ANK"):
		return KIND_SURVEY
	default:
		return KIND_TEST
	}
}

// ExtractLectureName turns the lecture header ("> Linear Algebra [EN101]")
// into the lecture name ("Linear Algebra "): the two leading characters are
// dropped and everything from the first "[" on is cut.
func ExtractLectureName(header string) string {
	runes := []rune(header)
	if len(runes) <= 2 {
		return ""
	}
	name := string(runes[2:])
	idx := strings.Index(name, "[")
	if idx < 0 {
		return name
	}
	return name[:idx]
}

// ExtractDeadline returns what follows the first ":" of a status column
// ("期限:2024-01-10 23:59" -> "2024-01-10 23:59").
func ExtractDeadline(status string) string {
	idx := strings.Index(status, ":")
	return strings.TrimSpace(status[idx+1:])
}

func isOpen(row Node) bool {
	for _, span := range row.ElementsByTag("span") {
		if _, ok := openStatuses[htmlutil.CleanText(span.Text())]; ok {
			return true
		}
	}
	return false
}

func lectureName(doc Document) (string, error) {
	home, ok := doc.ElementById(lectureHeader)
	if !ok {
		return "", fmt.Errorf("#%s: %w", lectureHeader, ErrMissingElement)
	}
	header, ok := home.Next()
	if !ok {
		return "", fmt.Errorf("lecture header after #%s: %w", lectureHeader, ErrMissingElement)
	}
	return ExtractLectureName(htmlutil.CleanText(header.Text())), nil
}

// ParseAssignments extracts the open, unsubmitted assignments from a
// lecture's assignment listing page.
func ParseAssignments(doc Document) ([]Assignment, error) {
	var assignments []Assignment
	var lecture *string

	for _, cell := range doc.ElementsByTag("td") {
		id, ok := cell.Attr("id")
		if !ok || !isAssignmentCell(id) {
			continue
		}

		row, ok := cell.Parent()
		if !ok {
			return nil, fmt.Errorf("row of cell '%s': %w", id, ErrMissingElement)
		}

		open := isOpen(row)

		statusCells := row.ElementsByClass(statusColumn)
		if len(statusCells) == 0 {
			return nil, fmt.Errorf(".%s of cell '%s': %w", statusColumn, id, ErrMissingElement)
		}
		status := htmlutil.CleanText(statusCells[0].Text())
		notCompleted := strings.Contains(status, deadlineMarker)

		if !open || !notCompleted {
			continue
		}

		anchors := row.ElementsByTag("a")
		if len(anchors) == 0 {
			return nil, fmt.Errorf("title anchor of cell '%s': %w", id, ErrMissingElement)
		}

		if lecture == nil {
			name, err := lectureName(doc)
			if err != nil {
				return nil, err
			}
			lecture = &name
		}

		assignment, err := NewAssignment(
			htmlutil.CleanText(anchors[0].Text()),
			*lecture,
			KindFromCellId(id),
			ExtractDeadline(status),
		)
		if err != nil {
			return nil, fmt.Errorf("cell '%s': %w", id, err)
		}
		assignments = append(assignments, assignment)
	}

	return assignments, nil
}
