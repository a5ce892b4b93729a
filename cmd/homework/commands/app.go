package commands

import (
	"database/sql"
	"fmt"
	"homework-assist/internal/cache"
	"homework-assist/internal/components/chrono"
	"homework-assist/internal/components/telemetry"
	"homework-assist/internal/homework"
	"homework-assist/internal/render"
	"homework-assist/internal/scrapers/lms"
	"homework-assist/lib/restyutil"
	"os"

	"github.com/spf13/cobra"
)

type viewFlags struct {
	format    string
	lecture   string
	timetable string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", "table", "Output format: table, markdown, html or csv.")
	cmd.Flags().StringVar(&f.lecture, "lecture", "", "Only show assignments of lectures matching this name.")
	f.registerTimetable(cmd)
}

func (f *viewFlags) registerTimetable(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.timetable, "timetable", "", "Discover lectures from a saved copy of the LMS home page instead of fetching it.")
}

type app struct {
	db       *sql.DB
	store    cache.Store
	pipeline homework.Pipeline
	gate     *homework.Gate
}

func (a app) Close() error {
	return a.db.Close()
}

func newApp(flags viewFlags) (app, error) {
	tel := telemetry.SlogAPI{}

	format, err := render.ParseFormat(flags.format)
	if err != nil {
		return app{}, err
	}

	clock, err := chrono.NewStandardImpl()
	if err != nil {
		return app{}, fmt.Errorf("load timezone: %w", err)
	}

	opts := lms.ClientOptions{
		BaseUrl:          config.BaseUrl,
		TimetablePath:    config.TimetablePath,
		Cookies:          config.Cookies,
		CloudflareBypass: !config.DisableCloudflareBypass,
	}
	if dumpDir != "" {
		output, err := restyutil.NewFilesystemOutput(dumpDir)
		if err != nil {
			return app{}, fmt.Errorf("create dump dir: %w", err)
		}
		opts.Dump = output
	}
	client, err := lms.NewClient(opts, tel)
	if err != nil {
		return app{}, fmt.Errorf("create lms client: %w", err)
	}

	var timetable homework.TimetableSource = client
	if flags.timetable != "" {
		timetable = lms.FileTimetable{Path: flags.timetable}
	}
	fetcher := lms.NewFetcher(client, clock, config.requestDelay(), tel)
	pipeline := homework.NewPipeline(timetable, fetcher, tel)

	db, err := config.Cache.OpenDB()
	if err != nil {
		return app{}, fmt.Errorf("open cache: %w", err)
	}
	store := cache.NewSqliteStore(db, tel)

	var presenter homework.Presenter = render.NewTerminal(
		os.Stdout,
		os.Stderr,
		format,
		os.Getenv("NO_COLOR") == "",
	)
	if flags.lecture != "" {
		presenter = homework.FilteredPresenter{
			Presenter: presenter,
			Query:     flags.lecture,
			Threshold: config.LectureThreshold,
		}
	}

	gate := homework.NewGate(store, pipeline, presenter, clock, config.cooldown(), tel)

	return app{
		db:       db,
		store:    store,
		pipeline: pipeline,
		gate:     gate,
	}, nil
}
