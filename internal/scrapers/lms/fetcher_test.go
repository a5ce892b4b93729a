package lms

import (
	"context"
	"errors"
	"fmt"
	"homework-assist/internal/components/chrono"
	"homework-assist/internal/components/telemetry"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakePages serves every lecture the same page and records the order of
// fetches and sleeps in a shared event log.
type fakePages struct {
	page   []byte
	failOn LectureId
	events *[]string
}

func (f fakePages) LecturePage(ctx context.Context, id LectureId) (Document, error) {
	*f.events = append(*f.events, "fetch "+string(id))
	if id == f.failOn {
		return nil, errors.New("connection reset")
	}
	return ParseDocumentBytes(f.page)
}

func newTestFetcher(pages PageFetcher, clock *chrono.FakeImpl) Fetcher {
	return NewFetcher(pages, clock, DefaultRequestDelay, telemetry.SlogAPI{})
}

func TestFetcherPacing(t *testing.T) {
	var events []string
	clock := chrono.NewFakeImpl(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	clock.OnSleep(func(d time.Duration) {
		events = append(events, fmt.Sprintf("sleep %s", d))
	})

	var progress [][2]int
	fetcher := newTestFetcher(fakePages{page: lecturePage, events: &events}, clock)
	assignments, err := fetcher.Fetch(
		context.Background(),
		[]LectureId{"c", "a", "b"},
		func(current, total int) {
			progress = append(progress, [2]int{current, total})
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, []string{
		"fetch c",
		"sleep 500ms",
		"fetch a",
		"sleep 500ms",
		"fetch b",
	}, events)
	require.Equal(t, []time.Duration{500 * time.Millisecond, 500 * time.Millisecond}, clock.Sleeps())
	require.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, progress)
	// the fixture holds 3 pending assignments
	require.Len(t, assignments, 9)
}

func TestFetcherSingleLectureDoesNotSleep(t *testing.T) {
	var events []string
	clock := chrono.NewFakeImpl(time.Now())

	fetcher := newTestFetcher(fakePages{page: lecturePage, events: &events}, clock)
	_, err := fetcher.Fetch(context.Background(), []LectureId{"only"}, nil)
	require.NoError(t, err)
	require.Empty(t, clock.Sleeps())
	require.Equal(t, []string{"fetch only"}, events)
}

func TestFetcherNoLectures(t *testing.T) {
	var events []string
	clock := chrono.NewFakeImpl(time.Now())

	fetcher := newTestFetcher(fakePages{page: lecturePage, events: &events}, clock)
	assignments, err := fetcher.Fetch(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Empty(t, assignments)
	require.Empty(t, events)
}

func TestFetcherAbortsOnFailure(t *testing.T) {
	var events []string
	clock := chrono.NewFakeImpl(time.Now())

	fetcher := newTestFetcher(fakePages{page: lecturePage, failOn: "b", events: &events}, clock)
	assignments, err := fetcher.Fetch(context.Background(), []LectureId{"a", "b", "c"}, nil)
	require.Error(t, err)
	require.Nil(t, assignments)
	require.Equal(t, []string{"fetch a", "fetch b"}, events)
}

func TestFetcherAbortsOnParseMismatch(t *testing.T) {
	var events []string
	clock := chrono.NewFakeImpl(time.Now())

	broken := []byte(`<table><tr><td id="kadaiREP1"></td><td><span>公開中</span></td></tr></table>`)
	fetcher := newTestFetcher(fakePages{page: broken, events: &events}, clock)
	_, err := fetcher.Fetch(context.Background(), []LectureId{"a", "b"}, nil)
	require.ErrorIs(t, err, ErrMissingElement)
	require.Equal(t, []string{"fetch a"}, events)
}

func TestFetcherStopsWhenContextIsDone(t *testing.T) {
	var events []string
	clock := chrono.NewFakeImpl(time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := newTestFetcher(fakePages{page: lecturePage, events: &events}, clock)
	_, err := fetcher.Fetch(ctx, []LectureId{"a", "b"}, nil)
	require.ErrorIs(t, err, context.Canceled)
}
