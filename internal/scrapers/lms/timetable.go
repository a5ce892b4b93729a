package lms

import (
	"context"
	"fmt"
	"os"
)

// FileTimetable reads the timetable from a saved copy of the LMS home page.
type FileTimetable struct {
	Path string
}

func (f FileTimetable) Timetable(ctx context.Context) (Document, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open timetable: %w", err)
	}
	defer file.Close()

	doc, err := ParseDocument(file)
	if err != nil {
		return nil, fmt.Errorf("parse timetable %s: %w", f.Path, err)
	}
	return doc, nil
}
