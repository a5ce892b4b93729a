package homework

import (
	"context"
	"fmt"
	"homework-assist/internal/components/assert"
	"homework-assist/internal/components/telemetry"
	"homework-assist/internal/scrapers/lms"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("homework-assist/homework")

const report_pipeline_run = "pipeline.run"

// TimetableSource provides the page the enrolled lectures are discovered
// from. *lms.Client and lms.FileTimetable implement it.
type TimetableSource interface {
	Timetable(ctx context.Context) (lms.Document, error)
}

// LectureFetcher is lms.Fetcher.
type LectureFetcher interface {
	Fetch(ctx context.Context, ids []lms.LectureId, progress lms.ProgressFunc) ([]lms.Assignment, error)
}

// Pipeline discovers the enrolled lectures and then fetches their pending
// assignments.
type Pipeline struct {
	timetable TimetableSource
	fetcher   LectureFetcher
	tel       telemetry.API
}

func NewPipeline(timetable TimetableSource, fetcher LectureFetcher, tel telemetry.API) Pipeline {
	assert.NotNil(timetable)
	assert.NotNil(fetcher)
	assert.NotNil(tel)

	return Pipeline{
		timetable: timetable,
		fetcher:   fetcher,
		tel:       telemetry.NewScopedAPI("homework", tel),
	}
}

// Lectures returns the identifiers of the lectures listed in the timetable.
func (p Pipeline) Lectures(ctx context.Context) ([]lms.LectureId, error) {
	doc, err := p.timetable.Timetable(ctx)
	if err != nil {
		return nil, fmt.Errorf("get timetable: %w", err)
	}
	return lms.DiscoverLectures(doc), nil
}

func (p Pipeline) Run(ctx context.Context, progress lms.ProgressFunc) ([]lms.Assignment, error) {
	ctx, span := tracer.Start(ctx, "pipeline:Run")
	defer span.End()

	ids, err := p.Lectures(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to discover lectures")
		return nil, err
	}
	span.SetAttributes(attribute.Int("homework.lectures", len(ids)))
	p.tel.ReportDebug("discovered lectures", len(ids))

	assignments, err := p.fetcher.Fetch(ctx, ids, progress)
	if err != nil {
		p.tel.ReportBroken(report_pipeline_run, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch assignments")
		return nil, err
	}
	return assignments, nil
}
