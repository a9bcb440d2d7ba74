package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"

	"github.com/myusername/nfl-stats-scraper/pkg/models"
)

const (
	// DefaultBaseURL is the FantasyPros site root
	DefaultBaseURL = "https://www.fantasypros.com"
	// DefaultUserAgent is sent with every request unless overridden
	DefaultUserAgent = "Mozilla/5.0"
	// DefaultTimeout bounds a single page request
	DefaultTimeout = 30 * time.Second

	statsPath = "/nfl/stats/{position}.php"
)

// FetchError reports a failed request for one week's stats page
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("error fetching %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ClientOptions configures a Client. Zero values fall back to the defaults.
type ClientOptions struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// RequestsPerSecond caps the request rate; zero or less disables the cap.
	RequestsPerSecond float64
	// BypassCloudflare wraps the transport with browser-like TLS settings.
	BypassCloudflare bool
}

// Client fetches FantasyPros weekly stats pages
type Client struct {
	http *resty.Client
}

// NewClient creates a new stats page client
func NewClient(opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseURL)
	httpClient.SetHeader("User-Agent", opts.UserAgent)
	httpClient.SetTimeout(opts.Timeout)
	if opts.BypassCloudflare {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	limiter := rate.NewLimiter(limit, 1)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	return &Client{http: httpClient}
}

// FetchWeek downloads the weekly stats page for a position and season.
// Any non-2xx status is returned as a *FetchError.
func (c *Client) FetchWeek(ctx context.Context, position models.Position, week, year int) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "FetchWeek")
	defer span.End()

	req := c.http.R().
		SetContext(ctx).
		SetPathParam("position", string(position)).
		SetQueryParams(map[string]string{
			"range": "week",
			"week":  strconv.Itoa(week),
			"year":  strconv.Itoa(year),
		})

	res, err := req.Get(statsPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, &FetchError{URL: req.URL, Err: err}
	}

	span.SetAttributes(
		attribute.String("url", res.Request.URL),
		attribute.Int("status", res.StatusCode()),
	)
	slog.DebugContext(ctx, "fetched page",
		"url", res.Request.URL,
		"status", res.StatusCode(),
		"content_type", res.Header().Get("Content-Type"),
		"bytes", len(res.Body()),
	)

	if !res.IsSuccess() {
		span.SetStatus(codes.Error, http.StatusText(res.StatusCode()))
		return nil, &FetchError{URL: res.Request.URL, StatusCode: res.StatusCode()}
	}
	return res.Body(), nil
}
