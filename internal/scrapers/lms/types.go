package lms

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingElement is returned when a page lacks an element the site
	// layout guarantees (a status column, a title anchor, the lecture header).
	ErrMissingElement = errors.New("expected element is missing")
	// ErrLoggedOut is returned when a request lands on the LMS login page.
	ErrLoggedOut = errors.New("lms session has expired")
	// ErrUnexpectedStatus is returned for non-2xx responses.
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// LectureId is the opaque token the LMS uses to address one enrolled lecture.
type LectureId string

type Kind int

const (
	KIND_REPORT Kind = iota
	KIND_SURVEY
	KIND_TEST
)

func (k Kind) Valid() bool {
	return k == KIND_REPORT || k == KIND_SURVEY || k == KIND_TEST
}

// String returns the label the LMS itself uses for the kind.
func (k Kind) String() string {
	switch k {
	case KIND_REPORT:
		return "レポート"
	case KIND_SURVEY:
		return "アンケート"
	case KIND_TEST:
		return "テスト"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Assignment is one open, not yet submitted homework item.
type Assignment struct {
	title       string
	lectureName string
	kind        Kind
	deadline    string
}

func NewAssignment(title, lectureName string, kind Kind, deadline string) (Assignment, error) {
	if title == "" {
		return Assignment{}, fmt.Errorf("new assignment: empty title")
	}
	if !kind.Valid() {
		return Assignment{}, fmt.Errorf("new assignment: invalid kind %d", int(kind))
	}
	return Assignment{
		title:       title,
		lectureName: lectureName,
		kind:        kind,
		deadline:    deadline,
	}, nil
}

func (a Assignment) Title() string       { return a.title }
func (a Assignment) LectureName() string { return a.lectureName }
func (a Assignment) Kind() Kind          { return a.kind }

// Deadline is the deadline as the LMS prints it, ex. "2024-01-10 23:59".
func (a Assignment) Deadline() string { return a.deadline }

func (a Assignment) String() string {
	return fmt.Sprintf("%s (%s, %s) %s", a.title, a.lectureName, a.kind, a.deadline)
}
