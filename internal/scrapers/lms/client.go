// client.go contains the http side of scraping the LMS, everything that reads
// the returned pages lives in discovery.go and assignments.go.

package lms

import (
	"bytes"
	"context"
	"fmt"
	"homework-assist/internal/components/assert"
	"homework-assist/internal/components/telemetry"
	"homework-assist/lib/restyutil"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("homework-assist/scrapers/lms")

const (
	report_client_timetable    = "client.timetable"
	report_client_lecture_page = "client.lecture-page"
)

const (
	DefaultBaseUrl       = "https://lms.ynu.ac.jp"
	DefaultTimetablePath = "/lms/homeHoml/"
	LecturePagePath      = "/lms/homeHoml/linkKougi"
	// LoginPagePath is where the LMS sends anyone without a valid session.
	LoginPagePath = "/lms/lginLgir"
)

// IsLoginPage reports whether link points at the LMS login page.
func IsLoginPage(link string) bool {
	return strings.Contains(link, LoginPagePath)
}

type Cookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ClientOptions struct {
	BaseUrl string
	// TimetablePath is the page listing the student's weekly timetable,
	// defaults to DefaultTimetablePath.
	TimetablePath string
	// Cookies carry the browser session, the client never logs in itself.
	Cookies []Cookie
	// CloudflareBypass wraps the transport so that requests carry browser-like
	// TLS fingerprints and headers.
	CloudflareBypass bool
	// Dump, if set, receives every raw response.
	Dump restyutil.Output
}

// Client fetches pages from the LMS using an existing browser session.
type Client struct {
	BaseUrl       *url.URL
	Http          *resty.Client
	timetablePath string
	tel           telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) (*Client, error) {
	assert.NotNil(tel)
	tel = telemetry.NewScopedAPI("lms_scraper", tel)

	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.TimetablePath == "" {
		opts.TimetablePath = DefaultTimetablePath
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	cookies := make([]*http.Cookie, len(opts.Cookies))
	for i, c := range opts.Cookies {
		cookies[i] = &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"}
	}
	jar.SetCookies(baseUrl, cookies)

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseUrl)
	httpClient.SetCookieJar(jar)
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}
	httpClient.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))

	telemetry.InstrumentResty(httpClient, "lms-http", tel)
	restyutil.Dump(httpClient, opts.Dump)

	return &Client{
		BaseUrl:       baseUrl,
		Http:          httpClient,
		timetablePath: opts.TimetablePath,
		tel:           tel,
	}, nil
}

func (c *Client) getDocument(ctx context.Context, reportId string, req *resty.Request, endpoint string) (Document, error) {
	res, err := req.SetContext(ctx).Get(endpoint)
	if err != nil {
		c.tel.ReportBroken(reportId, fmt.Errorf("fetch: %w", err), endpoint)
		return nil, fmt.Errorf("fetch %s: %w", endpoint, err)
	}

	if res.RawResponse != nil && res.RawResponse.Request != nil &&
		IsLoginPage(res.RawResponse.Request.URL.String()) {
		c.tel.ReportWarning(reportId, ErrLoggedOut, endpoint)
		return nil, fmt.Errorf("fetch %s: %w", endpoint, ErrLoggedOut)
	}
	if res.IsError() {
		err := fmt.Errorf("fetch %s: %w: %s", endpoint, ErrUnexpectedStatus, res.Status())
		c.tel.ReportBroken(reportId, err)
		return nil, err
	}

	doc, err := ParseDocument(bytes.NewReader(res.Body()))
	if err != nil {
		c.tel.ReportBroken(reportId, fmt.Errorf("parse: %w", err), endpoint)
		return nil, fmt.Errorf("parse %s: %w", endpoint, err)
	}
	return doc, nil
}

// Timetable fetches the page listing the student's lectures.
func (c *Client) Timetable(ctx context.Context) (Document, error) {
	ctx, span := tracer.Start(ctx, "client:Timetable")
	defer span.End()

	c.tel.ReportDebug("get timetable", c.timetablePath)

	doc, err := c.getDocument(ctx, report_client_timetable, c.Http.R(), c.timetablePath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get timetable")
		return nil, err
	}
	return doc, nil
}

// LecturePage fetches the assignment listing of a single lecture.
func (c *Client) LecturePage(ctx context.Context, id LectureId) (Document, error) {
	ctx, span := tracer.Start(ctx, "client:LecturePage")
	defer span.End()
	span.SetAttributes(attribute.String("lms.lecture_id", string(id)))

	c.tel.ReportDebug(report_client_lecture_page, id)

	req := c.Http.R().SetQueryParam("kougiId", string(id))
	doc, err := c.getDocument(ctx, report_client_lecture_page, req, LecturePagePath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get lecture page")
		return nil, err
	}
	return doc, nil
}
