// Package rcsb downloads PDB-format structure text from the RCSB file
// service (https://files.rcsb.org/download/{ID}.pdb).
package rcsb

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/turtacn/ProteinScope/internal/config"
	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ProteinScope/pkg/errors"
)

// Client fetches structure files over HTTP.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	userAgent    string
	maxBytes     int64
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	logger       logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetry sets the retry budget for network errors and 5xx responses.
func WithRetry(max int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		if max >= 0 {
			c.retryMax = max
		}
		if waitMin > 0 && waitMax >= waitMin {
			c.retryWaitMin, c.retryWaitMax = waitMin, waitMax
		}
	}
}

// NewClient builds a Client from the rcsb configuration section.
func NewClient(cfg config.RCSBConfig, log logging.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		userAgent:    cfg.UserAgent,
		maxBytes:     cfg.MaxBytes,
		retryMax:     2,
		retryWaitMin: 250 * time.Millisecond,
		retryWaitMax: 2 * time.Second,
		logger:       log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the download location of pdbID.
func (c *Client) URL(pdbID string) string {
	return fmt.Sprintf("%s/%s.pdb", c.baseURL, pdbID)
}

// Fetch downloads the structure text of pdbID. A 404 is reported as
// STRUCT_005; other failures as STRUCT_006; a body above the configured
// limit as STRUCT_003.
func (c *Client) Fetch(ctx context.Context, pdbID string) ([]byte, error) {
	url := c.URL(pdbID)

	var lastErr error
	for attempt := 0; attempt <= c.retryMax; attempt++ {
		if attempt > 0 {
			wait := c.backoff(attempt)
			c.logger.Debug("retrying structure download",
				logging.String(logging.FieldPDBID, pdbID),
				logging.Int("attempt", attempt),
				logging.Duration("wait", wait))
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		data, retry, err := c.fetchOnce(ctx, url, pdbID)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if !retry || ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (c *Client) fetchOnce(ctx context.Context, url, pdbID string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, errors.Wrap(err, errors.ErrCodeStructureFetchFailed, "failed to create request")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "chemical/x-pdb, text/plain")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, errors.Wrap(err, errors.ErrCodeStructureFetchFailed, "structure download failed").WithDetail(pdbID)
	}
	defer resp.Body.Close()

	c.logger.Debug("structure download",
		logging.String(logging.FieldPDBID, pdbID),
		logging.Int("status", resp.StatusCode),
		logging.Duration("elapsed", time.Since(start)))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, errors.New(errors.ErrCodeStructureNotFound, "structure not found").WithDetail(pdbID)
	case resp.StatusCode >= 500:
		return nil, true, errors.Newf(errors.ErrCodeStructureFetchFailed, "structure service returned %d", resp.StatusCode).WithDetail(pdbID)
	case resp.StatusCode != http.StatusOK:
		return nil, false, errors.Newf(errors.ErrCodeStructureFetchFailed, "structure service returned %d", resp.StatusCode).WithDetail(pdbID)
	}

	body := io.Reader(resp.Body)
	if c.maxBytes > 0 {
		body = io.LimitReader(resp.Body, c.maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, true, errors.Wrap(err, errors.ErrCodeStructureFetchFailed, "failed to read structure body").WithDetail(pdbID)
	}
	if c.maxBytes > 0 && int64(len(data)) > c.maxBytes {
		return nil, false, errors.Newf(errors.ErrCodeStructureTooLarge, "structure file exceeds %d bytes", c.maxBytes).WithDetail(pdbID)
	}
	return data, false, nil
}

func (c *Client) backoff(attempt int) time.Duration {
	wait := c.retryWaitMin * time.Duration(1<<uint(attempt-1))
	if wait > c.retryWaitMax {
		wait = c.retryWaitMax
	}
	if q := int64(wait / 4); q > 0 {
		wait += time.Duration(rand.Int63n(q))
	}
	return wait
}

//Personal.AI order the ending
