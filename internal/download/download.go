// Package download fetches files over HTTPS into place and decodes local JSON files.
package download

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"network-monitor/internal/websocket"
)

const defaultTimeout = 30 * time.Second

var (
	ErrNotFound  = errors.New("download: file not found")
	ErrMalformed = errors.New("download: malformed JSON")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("download: GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// Options tune File. The zero value verifies against the system pool.
type Options struct {
	// CAFile is a PEM bundle; when set it replaces the system roots.
	CAFile string
	// Client overrides the HTTP client entirely; CAFile and Timeout are then ignored.
	Client  *http.Client
	Timeout time.Duration
	Logger  *zerolog.Logger
}

func (o Options) client() (*http.Client, error) {
	if o.Client != nil {
		return o.Client, nil
	}
	tlsCfg, err := websocket.LoadTLSConfig(o.CAFile)
	if err != nil {
		return nil, err
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.TLSClientConfig = tlsCfg
	return &http.Client{Transport: tr, Timeout: timeout}, nil
}

// File downloads url to destination. The body is written to a temporary file next to
// destination and renamed into place, so destination is never left half written.
func File(ctx context.Context, url, destination string, opts Options) error {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	log = log.With().Str("component", "download").Str("url", url).Logger()

	client, err := opts.client()
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("request failed")
		return fmt.Errorf("download: GET %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn().Int("status", resp.StatusCode).Msg("unexpected status")
		return &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	dir := filepath.Dir(destination)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("download: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(destination)+".*")
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}
	tmpName := tmp.Name()
	n, copyErr := io.Copy(tmp, resp.Body)
	closeErr := tmp.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("download: write %s: %w", destination, errors.Join(copyErr, closeErr))
	}
	if err := os.Rename(tmpName, destination); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("download: %w", err)
	}
	log.Info().Int64("bytes", n).Str("path", destination).Msg("downloaded")
	return nil
}

// ParseJSONFile decodes the JSON document at path into v. A missing file wraps
// ErrNotFound and a decoding failure wraps ErrMalformed.
func ParseJSONFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("download: %w", err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return nil
}
