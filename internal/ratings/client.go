// Package ratings looks up aggregate review counts for a book on Goodreads.
// Lookups are best effort: every failure is reported as a nil summary.
package ratings

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultTimeout = 5 * time.Second
	maxBodyBytes   = 1 << 20
)

var tracer = otel.Tracer("ratings")

// Summary is the subset of the review_counts payload the book page shows.
type Summary struct {
	ISBN             string
	ISBN13           string
	RatingsCount     int64
	ReviewsCount     int64
	TextReviewsCount int64
	WorkRatingsCount int64
	WorkReviewsCount int64
	AverageRating    string
}

// Observer is notified of every lookup outcome. result is one of "hit",
// "miss" or "error".
type Observer func(result string)

// Client calls the review_counts endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	observe    Observer
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithObserver registers a callback for lookup outcomes.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observe = o }
}

// NewClient builds a client for baseURL authenticated with apiKey.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "?"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		observe: func(string) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup returns the summary for isbn, or nil when the service is unreachable,
// answers with an error, or returns a payload without a book entry.
func (c *Client) Lookup(ctx context.Context, isbn string) *Summary {
	ctx, span := tracer.Start(ctx, "ratings.Lookup", trace.WithAttributes(
		attribute.String("book.isbn", isbn),
	))
	defer span.End()

	body, err := c.fetch(ctx, isbn)
	if err != nil {
		slog.DebugContext(ctx, "Ratings lookup failed", "isbn", isbn, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "ratings lookup failed")
		c.observe("error")
		return nil
	}

	summary := parseSummary(body)
	if summary == nil {
		span.SetAttributes(attribute.Bool("ratings.found", false))
		c.observe("miss")
		return nil
	}

	span.SetAttributes(attribute.Bool("ratings.found", true))
	c.observe("hit")
	return summary
}

func (c *Client) fetch(ctx context.Context, isbn string) ([]byte, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("isbns", isbn)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}

func parseSummary(body []byte) *Summary {
	if !gjson.ValidBytes(body) {
		return nil
	}
	book := gjson.GetBytes(body, "books.0")
	if !book.Exists() || !book.IsObject() {
		return nil
	}

	return &Summary{
		ISBN:             book.Get("isbn").String(),
		ISBN13:           book.Get("isbn13").String(),
		RatingsCount:     book.Get("ratings_count").Int(),
		ReviewsCount:     book.Get("reviews_count").Int(),
		TextReviewsCount: book.Get("text_reviews_count").Int(),
		WorkRatingsCount: book.Get("work_ratings_count").Int(),
		WorkReviewsCount: book.Get("work_reviews_count").Int(),
		AverageRating:    book.Get("average_rating").String(),
	}
}
