package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultTimeout bounds a single bulletin download.
	DefaultTimeout = 30 * time.Second

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	referer   = "https://boletin.bvrd.com.do/"
)

// UnavailableReason classifies why a bulletin could not be retrieved.
type UnavailableReason string

const (
	ReasonConnection  UnavailableReason = "connection"
	ReasonTimeout     UnavailableReason = "timeout"
	ReasonHTTPStatus  UnavailableReason = "http_status"
	ReasonContentKind UnavailableReason = "wrong_content_kind"
)

// Unavailable reports a failed retrieval. It is non-fatal by contract: the
// caller skips the date and continues the range.
type Unavailable struct {
	URL        string
	Reason     UnavailableReason
	StatusCode int
	Cause      error
}

func (u *Unavailable) Error() string {
	if u.StatusCode != 0 {
		return fmt.Sprintf("bulletin unavailable (%s, status %d): %s", u.Reason, u.StatusCode, u.URL)
	}
	return fmt.Sprintf("bulletin unavailable (%s): %s", u.Reason, u.URL)
}

func (u *Unavailable) Unwrap() error {
	return u.Cause
}

// AsUnavailable extracts the Unavailable from err, if any.
func AsUnavailable(err error) (*Unavailable, bool) {
	var u *Unavailable
	ok := errors.As(err, &u)
	return u, ok
}

// Document is a downloaded bulletin held in memory, discarded once sheet
// extraction for its date completes.
type Document struct {
	Body        []byte
	ContentType string
}

// Fetcher downloads bulletin documents with browser-like headers. The
// publisher serves an HTML error page in place of the workbook for dates
// without a bulletin, so the declared content kind is checked before the
// body is accepted.
type Fetcher struct {
	client *resty.Client
	logger *slog.Logger
}

// NewFetcher builds a Fetcher with the given per-request timeout.
func NewFetcher(timeout time.Duration, logger *slog.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Referer", referer)

	return &Fetcher{client: client, logger: logger}
}

// Fetch retrieves the document at url. On failure the returned error is an
// *Unavailable carrying the reason; callers must treat it as a per-date skip.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Document, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		reason := ReasonConnection
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() || errors.Is(err, context.DeadlineExceeded) {
			reason = ReasonTimeout
		}
		f.logger.Warn("bulletin download failed",
			slog.String("url", url),
			slog.String("reason", string(reason)),
			slog.String("error", err.Error()))
		return nil, &Unavailable{URL: url, Reason: reason, Cause: err}
	}

	if resp.IsError() {
		f.logger.Warn("bulletin download returned error status",
			slog.String("url", url),
			slog.Int("status", resp.StatusCode()))
		return nil, &Unavailable{URL: url, Reason: ReasonHTTPStatus, StatusCode: resp.StatusCode()}
	}

	contentType := resp.Header().Get("Content-Type")
	if strings.Contains(strings.ToLower(contentType), "html") {
		f.logger.Warn("server returned a page instead of the workbook",
			slog.String("url", url),
			slog.String("content_type", contentType))
		return nil, &Unavailable{URL: url, Reason: ReasonContentKind, StatusCode: resp.StatusCode()}
	}

	f.logger.Debug("bulletin downloaded",
		slog.String("url", url),
		slog.Int("bytes", len(resp.Body())))

	return &Document{Body: resp.Body(), ContentType: contentType}, nil
}
