package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tartampluch/go-keepintouch/internal/config"
)

// VCardFetcher defines the contract for retrieving vCard data from a
// CardDAV/WebDAV endpoint. An interface so tests can substitute the network.
type VCardFetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// HTTPFetcher implements VCardFetcher using the standard net/http library.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher with configured timeouts.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{
			Timeout: config.HTTPTimeout,
		},
	}
}

// Fetch retrieves vCard data from a remote URL. The URL is sanitized before
// logging (query parameters may carry tokens) and the response size is
// limited.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL, user, pass string) (io.ReadCloser, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	safeURL := u.Scheme + "://" + u.Host + u.Path
	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompImporter),
		slog.String(config.LogKeyURL, safeURL),
	)
	log.Debug("Initiating vCard download")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error during fetch: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn("Server returned error status",
			slog.Int(config.LogKeyStatus, resp.StatusCode),
		)
		return nil, fmt.Errorf("server returned unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	return &limitedReadCloser{
		Reader: io.LimitReader(resp.Body, config.MaxHTTPResponseSize),
		Closer: resp.Body,
	}, nil
}

// limitedReadCloser wraps a size-limited reader with the original closer so
// the network connection is released properly.
type limitedReadCloser struct {
	io.Reader
	io.Closer
}

func (l *limitedReadCloser) Read(p []byte) (n int, err error) {
	return l.Reader.Read(p)
}

func (l *limitedReadCloser) Close() error {
	return l.Closer.Close()
}
