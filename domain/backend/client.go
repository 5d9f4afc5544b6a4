package backend

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/soocke/threshold-tuner/config"
	"github.com/soocke/threshold-tuner/domain/settings"
	"github.com/soocke/threshold-tuner/metrics"
)

// maxBody caps how much of a reply is read. Camera frames arrive base64-encoded.
const maxBody = 16 << 20

// StatusError is returned for any non-2xx reply.
type StatusError struct {
	Op   string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: http %d", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: http %d: %s", e.Op, e.Code, e.Body)
}

// Dialect selects how a push is tagged for the backend's POST dispatcher.
type Dialect string

const (
	// PerType sends callback set<Name>Settings and no type field.
	PerType Dialect = config.DialectPerType
	// Typed sends callback "settings" plus type=<name>.
	Typed Dialect = config.DialectTyped
)

// Callback returns the callback name used to push settings for name.
func (d Dialect) Callback(name string) string {
	if d == Typed {
		return "settings"
	}
	return "set" + capitalize(name) + "Settings"
}

// Type returns the value of the type field for name, empty when the dialect omits it.
func (d Dialect) Type(name string) string {
	if d == Typed {
		return name
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Client talks to the thresholding backend over HTTP.
type Client struct {
	baseURL string
	dialect Dialect
	http    *http.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewClient constructs a client rooted at baseURL. timeout bounds every request.
func NewClient(baseURL string, dialect Dialect, timeout time.Duration, logger *slog.Logger, m *metrics.Metrics) *Client {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		dialect: dialect,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
		metrics: m,
	}
}

// Fetch reads the named settings record. On any failure the returned record is the zero
// value and the caller keeps whatever it already holds.
func (c *Client) Fetch(ctx context.Context, name string) (settings.Record, error) {
	body, err := c.get(ctx, "fetch "+name, "/get/"+name+"Settings")
	if err == nil {
		var w settings.Wire
		if w, err = settings.ParseWire(body); err == nil {
			c.metrics.ObserveFetch(name, nil)
			if c.logger != nil {
				c.logger.Debug("settings fetched", "type", name, "wire", w)
			}
			return settings.FromWire(name, w), nil
		}
		err = fmt.Errorf("fetch %s: %w", name, err)
	}
	c.metrics.ObserveFetch(name, err)
	return settings.Record{}, err
}

// Push writes rec to the backend. The reply body is not consumed.
func (c *Client) Push(ctx context.Context, rec settings.Record) error {
	w := rec.ToWire(c.dialect.Callback(rec.Name), c.dialect.Type(rec.Name))
	err := c.post(ctx, "push "+rec.Name, w.Values().Encode())
	c.metrics.ObservePush(rec.Name, err)
	return err
}

// Persist asks the backend to write its current settings to disk.
func (c *Client) Persist(ctx context.Context) error {
	err := c.post(ctx, "persist", "callback=save")
	c.metrics.ObservePersist(err)
	return err
}

// FetchImage returns the raw body of /get/<resource>, which the backend fills with
// base64-encoded JPEG bytes.
func (c *Client) FetchImage(ctx context.Context, resource string) ([]byte, error) {
	return c.get(ctx, "image "+resource, "/get/"+resource)
}

func (c *Client) get(ctx context.Context, op, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c.do(op, req)
}

func (c *Client) post(ctx context.Context, op, form string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/post", strings.NewReader(form))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	_, err = c.do(op, req)
	return err
}

func (c *Client) do(op string, req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(body))
		if len(msg) > 200 {
			msg = msg[:200]
		}
		return nil, &StatusError{Op: op, Code: resp.StatusCode, Body: msg}
	}
	return body, nil
}
