// Package content fetches the document, manifests and story metadata the
// front end boots from. Every request bypasses HTTP caches: authors edit
// these files while the app is running.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// StatusError reports a non-success HTTP status.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("%s: HTTP %d", e.URL, e.Code) }

// Client resolves references against a base URL.
type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient accepts an http(s) URL or a local directory. Directories are
// served through a file transport so both behave the same, 404s included.
func NewClient(root string) (*Client, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}
	if strings.HasPrefix(root, "http://") || strings.HasPrefix(root, "https://") {
		u, err := url.Parse(strings.TrimSuffix(root, "/") + "/")
		if err != nil {
			return nil, errors.Wrap(err, "parse content root")
		}
		return &Client{base: u, http: &http.Client{Timeout: 15 * time.Second}}, nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(err, "resolve content root")
	}
	t := &http.Transport{}
	t.RegisterProtocol("file", http.NewFileTransport(http.Dir(abs)))
	return &Client{base: &url.URL{Scheme: "file", Path: "/"}, http: &http.Client{Transport: t}}, nil
}

// NewHTTPClient uses hc against base; tests point it at httptest servers.
func NewHTTPClient(base string, hc *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(base, "/") + "/")
	if err != nil {
		return nil, errors.Wrap(err, "parse content root")
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: u, http: hc}, nil
}

// Resolve returns the absolute URL for ref.
func (c *Client) Resolve(ref string) (string, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return "", errors.Wrapf(err, "parse %q", ref)
	}
	return c.base.ResolveReference(r).String(), nil
}

// Bytes fetches ref. Non-2xx statuses return *StatusError.
func (c *Client) Bytes(ctx context.Context, ref string) ([]byte, error) {
	u, err := c.Resolve(ref)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")
	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, &StatusError{URL: u, Code: res.StatusCode}
	}
	return io.ReadAll(res.Body)
}

// JSON fetches ref and decodes it into v.
func (c *Client) JSON(ctx context.Context, ref string, v any) error {
	b, err := c.Bytes(ctx, ref)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return errors.Wrapf(err, "decode %s", ref)
	}
	return nil
}
