package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// DecodeList normalizes the list shapes the backend produces: a paginated
// {"results": [...]}, a {"data": [...]} envelope, a bare array or null.
// The result is never nil.
func DecodeList[T any](body []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}
	switch trimmed[0] {
	case '[':
		var out []T
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		if out == nil {
			out = []T{}
		}
		return out, nil
	case '{':
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("decode list envelope: %w", err)
		}
		if raw, ok := wrapped["results"]; ok {
			return DecodeList[T](raw)
		}
		if raw, ok := wrapped["data"]; ok {
			return DecodeList[T](raw)
		}
		return nil, fmt.Errorf("decode list: object has neither results nor data")
	default:
		return nil, fmt.Errorf("decode list: unexpected payload %.32q", string(trimmed))
	}
}

func nextPage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ""
	}
	var page struct {
		Next *string `json:"next"`
	}
	if err := json.Unmarshal(trimmed, &page); err != nil || page.Next == nil {
		return ""
	}
	return *page.Next
}

// listAll follows paginated "next" links until the last page.
func listAll[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	out := []T{}
	next := c.endpoint(path, query)
	for page := 0; next != "" && page < maxListPages; page++ {
		body, err := c.getURL(ctx, next)
		if err != nil {
			return nil, err
		}
		items, err := DecodeList[T](body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, items...)
		next = nextPage(body)
	}
	return out, nil
}
