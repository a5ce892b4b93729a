package lms

import (
	"context"
	"fmt"
	"homework-assist/internal/components/assert"
	"homework-assist/internal/components/chrono"
	"homework-assist/internal/components/telemetry"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("homework-assist/scrapers/lms")

const report_fetcher_fetch = "fetcher.fetch"

// DefaultRequestDelay is the pause between two lecture pages.
const DefaultRequestDelay = 500 * time.Millisecond

// PageFetcher returns the assignment listing of a lecture, *Client
// implements it.
type PageFetcher interface {
	LecturePage(ctx context.Context, id LectureId) (Document, error)
}

// ProgressFunc is told which lecture (1-based) out of how many is about to
// be fetched.
type ProgressFunc func(current, total int)

// Fetcher walks lectures one after the other and collects their pending
// assignments.
type Fetcher struct {
	pages PageFetcher
	time  chrono.API
	delay time.Duration
	tel   telemetry.API

	pageCounter       metric.Int64Counter
	assignmentCounter metric.Int64Counter
}

func NewFetcher(pages PageFetcher, time chrono.API, delay time.Duration, tel telemetry.API) Fetcher {
	assert.NotNil(pages)
	assert.NotNil(time)
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("lms_scraper", tel)

	pageCounter, err := meter.Int64Counter(
		"lms.lecture_pages",
		metric.WithDescription("lecture pages fetched"),
	)
	if err != nil {
		tel.ReportWarning(report_fetcher_fetch, fmt.Errorf("create counter: %w", err))
	}
	assignmentCounter, err := meter.Int64Counter(
		"lms.assignments",
		metric.WithDescription("pending assignments found"),
	)
	if err != nil {
		tel.ReportWarning(report_fetcher_fetch, fmt.Errorf("create counter: %w", err))
	}

	return Fetcher{
		pages:             pages,
		time:              time,
		delay:             delay,
		tel:               tel,
		pageCounter:       pageCounter,
		assignmentCounter: assignmentCounter,
	}
}

// Fetch returns the pending assignments of every lecture in order. Lectures
// are fetched sequentially with a fixed delay between two of them. Any
// failure aborts the whole fetch, nothing partial is returned.
func (f Fetcher) Fetch(ctx context.Context, ids []LectureId, progress ProgressFunc) ([]Assignment, error) {
	ctx, span := tracer.Start(ctx, "fetcher:Fetch")
	defer span.End()

	var assignments []Assignment
	for i, id := range ids {
		if progress != nil {
			progress(i+1, len(ids))
		}

		doc, err := f.pages.LecturePage(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("lecture %s: %w", id, err)
		}
		if f.pageCounter != nil {
			f.pageCounter.Add(ctx, 1)
		}

		found, err := ParseAssignments(doc)
		if err != nil {
			f.tel.ReportBroken(report_fetcher_fetch, err, id)
			return nil, fmt.Errorf("lecture %s: %w", id, err)
		}
		if f.assignmentCounter != nil {
			f.assignmentCounter.Add(ctx, int64(len(found)))
		}
		f.tel.ReportDebug("parsed lecture page", id, len(found))
		assignments = append(assignments, found...)

		if i != len(ids)-1 {
			err = f.time.Sleep(ctx, f.delay)
			if err != nil {
				return nil, err
			}
		}
	}

	f.tel.ReportCount("fetcher.assignments", int64(len(assignments)))
	return assignments, nil
}
