package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/coocood/freecache"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/madDev-12/fitnutrition/internal/model"
)

const (
	defaultBaseURL  = "http://localhost:8000/api"
	defaultTimeout  = 12 * time.Second
	defaultCacheTTL = 60
	maxListPages    = 50
)

var ErrNotFound = errors.New("not found")

// Error is returned for any non-2xx backend response.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Detail     string
	Body       []byte
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s failed with status %d: %s", e.Method, e.Path, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s %s failed with status %d", e.Method, e.Path, e.StatusCode)
}

func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client talks to the tracker REST backend. The zero value is usable
// against the default local backend without auth or caching.
type Client struct {
	BaseURL string
	// Token is the bearer access token. When a request comes back 401 and
	// RefreshToken is set, the pair is renewed once and the request retried.
	Token        string
	RefreshToken string
	// OnTokens receives every renewed pair so callers can persist it.
	OnTokens   func(model.TokenPair)
	HTTPClient *http.Client
	// Cache holds GET responses keyed by URL; any successful mutation clears it.
	Cache    *freecache.Cache
	CacheTTL int

	authMu sync.Mutex
}

func NewCache(sizeMB int) *freecache.Cache {
	if sizeMB <= 0 {
		sizeMB = 64
	}
	megabyte := 1024 * 1024
	return freecache.NewCache(sizeMB * megabyte)
}

func (c *Client) baseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		return defaultBaseURL
	}
	return base
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return &http.Client{Timeout: defaultTimeout}
	}
	return c.HTTPClient
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL() + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.getURL(ctx, c.endpoint(path, query))
}

func (c *Client) getURL(ctx context.Context, rawURL string) ([]byte, error) {
	cacheKey := []byte("GET::" + rawURL)
	if c.Cache != nil {
		if cached, err := c.Cache.Get(cacheKey); err == nil {
			log.Tracef("cache hit for %s", rawURL)
			return cached, nil
		}
	}
	body, err := c.do(ctx, http.MethodGet, rawURL, nil, "")
	if err != nil {
		return nil, err
	}
	if c.Cache != nil {
		ttl := c.CacheTTL
		if ttl <= 0 {
			ttl = defaultCacheTTL
		}
		if err := c.Cache.Set(cacheKey, body, ttl); err != nil {
			log.Debugf("cache response for %s: %s", rawURL, err)
		}
	}
	return body, nil
}

func (c *Client) send(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	contentType := ""
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s %s payload: %w", method, path, err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}
	return c.mutate(ctx, method, c.endpoint(path, nil), body, contentType)
}

func (c *Client) mutate(ctx context.Context, method, rawURL string, body io.Reader, contentType string) ([]byte, error) {
	out, err := c.do(ctx, method, rawURL, body, contentType)
	if err != nil {
		return nil, err
	}
	if c.Cache != nil {
		c.Cache.Clear()
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, rawURL string, body io.Reader, contentType string) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = io.ReadAll(body); err != nil {
			return nil, fmt.Errorf("read %s %s payload: %w", method, rawURL, err)
		}
	}
	token := c.accessToken()
	out, err := c.roundTrip(ctx, method, rawURL, payload, contentType, token)
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		return out, err
	}
	renewed, refreshErr := c.renewAfter(ctx, token)
	if refreshErr != nil {
		return nil, multierr.Combine(err, refreshErr)
	}
	if !renewed {
		return nil, err
	}
	return c.roundTrip(ctx, method, rawURL, payload, contentType, c.accessToken())
}

func (c *Client) roundTrip(ctx context.Context, method, rawURL string, payload []byte, contentType, token string) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", method, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token = strings.TrimSpace(token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log.WithField("request_id", requestID).Debugf("%s %s", method, rawURL)
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute %s %s: %w", method, rawURL, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, rawURL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{
			Method:     method,
			Path:       req.URL.Path,
			StatusCode: resp.StatusCode,
			Detail:     errorDetail(respBody),
			Body:       respBody,
		}
	}
	return respBody, nil
}

// errorDetail pulls a readable message out of a REST error body:
// detail, then non_field_errors, then per-field messages.
func errorDetail(body []byte) string {
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(body, &parsed); err != nil {
		return strings.TrimSpace(string(body))
	}
	if raw, ok := parsed["detail"]; ok {
		return joinMessages(raw)
	}
	if raw, ok := parsed["non_field_errors"]; ok {
		return joinMessages(raw)
	}
	keys := make([]string, 0, len(parsed))
	for k := range parsed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if msg := joinMessages(parsed[k]); msg != "" {
			parts = append(parts, k+": "+msg)
		}
	}
	return strings.Join(parts, "; ")
}

func joinMessages(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, ", ")
	}
	return strings.TrimSpace(string(raw))
}

func decodeObject(body []byte, out any) error {
	var wrapped struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil {
		data := bytes.TrimSpace(wrapped.Data)
		if len(data) > 0 && data[0] == '{' {
			body = data
		}
	}
	return json.Unmarshal(body, out)
}
