package schema

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFS supplies the filesystem used for SourceKindFS documents.
func WithFS(fsys fs.FS) LoaderOption {
	return func(l *Loader) {
		l.fs = fsys
	}
}

// WithHTTPClient enables SourceKindURL documents using the provided client.
// When omitted, URL sources fail with an explicit error.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(l *Loader) {
		l.http = client
	}
}

// WithRequestTimeout bounds HTTP fetches issued by the loader.
func WithRequestTimeout(timeout time.Duration) LoaderOption {
	return func(l *Loader) {
		l.timeout = timeout
	}
}

// Loader fetches and parses form documents from files, fs.FS entries, or
// HTTP endpoints.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

// NewLoader constructs a Loader from the provided options.
func NewLoader(options ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load fetches the document behind src and parses it into a Form.
func (l *Loader) Load(ctx context.Context, src Source) (*Form, error) {
	if src == nil {
		return nil, errors.New("schema: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = l.loadFile(src.Location())
	case SourceKindFS:
		data, err = l.loadFS(src.Location())
	case SourceKindURL:
		data, err = l.loadHTTP(ctx, src.Location())
	default:
		err = fmt.Errorf("schema: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

func (l *Loader) loadFile(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("schema: file path is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}

func (l *Loader) loadFS(name string) ([]byte, error) {
	if l.fs == nil {
		return nil, errors.New("schema: fs is not configured")
	}
	if name == "" {
		return nil, errors.New("schema: fs path is required")
	}
	return fs.ReadFile(l.fs, name)
}

func (l *Loader) loadHTTP(ctx context.Context, rawURL string) ([]byte, error) {
	if l.http == nil {
		return nil, errors.New("schema: http support disabled")
	}

	reqCtx := ctx
	if l.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("schema: unexpected status " + resp.Status)
	}

	return io.ReadAll(resp.Body)
}
