// Package fetch loads the raw bytes of the dataset and font inputs.
//
// A Source is fetched once per pipeline run. Sources are not retried and
// have no timeout of their own; callers bound them with the context.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

var (
	// ErrNotFound is returned when the resource does not exist.
	ErrNotFound = errors.New("fetch: not found")

	// ErrStatus is returned for other non-2xx HTTP responses.
	ErrStatus = errors.New("fetch: unexpected status")
)

// Source produces the bytes of one input.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]byte, error)

// Fetch calls f.
func (f SourceFunc) Fetch(ctx context.Context) ([]byte, error) {
	return f(ctx)
}

// Bytes returns a Source that always yields data.
func Bytes(data []byte) Source {
	return SourceFunc(func(ctx context.Context) ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return data, nil
	})
}

// FileSource reads a local file.
type FileSource struct {
	Path string
}

// File returns a Source reading the file at path.
func File(path string) *FileSource {
	return &FileSource{Path: path}
}

// Fetch implements Source.
func (f *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, f.Path)
	}
	return data, err
}

func (f *FileSource) String() string {
	return f.Path
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithClient sets the HTTP client. The default is http.DefaultClient.
func WithClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		s.client = c
	}
}

// WithHeader adds a request header.
func WithHeader(key, value string) HTTPOption {
	return func(s *HTTPSource) {
		s.headers.Set(key, value)
	}
}

// HTTPSource downloads a URL with a GET request.
type HTTPSource struct {
	URL     string
	client  *http.Client
	headers http.Header
}

// HTTP returns a Source downloading rawURL.
func HTTP(rawURL string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{URL: rawURL, client: http.DefaultClient, headers: make(http.Header)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range s.headers {
		req.Header[k] = v
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, fmt.Errorf("%w: GET %s", err, s.URL)
	}
	return io.ReadAll(resp.Body)
}

func (s *HTTPSource) String() string {
	return s.URL
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w %d", ErrStatus, code)
	}
}

// Open returns the Source for location: an HTTP source for http and https
// URLs, a file source for file URLs and plain paths.
func Open(location string) (Source, error) {
	if location == "" {
		return nil, errors.New("fetch: empty location")
	}
	if !strings.Contains(location, "://") {
		return File(location), nil
	}

	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	switch u.Scheme {
	case "http", "https":
		return HTTP(location), nil
	case "file":
		return File(u.Path), nil
	default:
		return nil, fmt.Errorf("fetch: unsupported scheme %q", u.Scheme)
	}
}
