package openapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LoadOptions configures where documents are read from.
type LoadOptions struct {
	// FileSystem serves relative paths when set; otherwise the operating
	// system is used.
	FileSystem fs.FS
	// HTTPClient enables http(s) locations. Nil disables remote documents.
	HTTPClient *http.Client
	// RequestTimeout caps remote fetches.
	RequestTimeout time.Duration
}

// LoadOption mutates LoadOptions.
type LoadOption func(*LoadOptions)

// WithFileSystem reads locations from files.
func WithFileSystem(files fs.FS) LoadOption {
	return func(opts *LoadOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient enables remote documents.
func WithHTTPClient(client *http.Client, timeout time.Duration) LoadOption {
	return func(opts *LoadOptions) {
		opts.HTTPClient = client
		opts.RequestTimeout = timeout
	}
}

// Load reads the document at location: an http(s) URL, a path inside the
// configured fs.FS, or a file path.
func Load(ctx context.Context, location string, options ...LoadOption) ([]byte, error) {
	var opts LoadOptions
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}
	if strings.TrimSpace(location) == "" {
		return nil, errors.New("openapi: location is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		if opts.HTTPClient == nil {
			return nil, errors.New("openapi: http support disabled")
		}
		return loadHTTP(ctx, opts.HTTPClient, location, opts.RequestTimeout)
	case opts.FileSystem != nil:
		data, err := fs.ReadFile(opts.FileSystem, location)
		if err != nil {
			return nil, fmt.Errorf("openapi: read %s: %w", location, err)
		}
		return data, nil
	default:
		data, err := os.ReadFile(filepath.Clean(location))
		if err != nil {
			return nil, fmt.Errorf("openapi: read %s: %w", location, err)
		}
		return data, nil
	}
}

func loadHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, error) {
	reqCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openapi: fetch %s: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openapi: fetch %s: unexpected status %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
