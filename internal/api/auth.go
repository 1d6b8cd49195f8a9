package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/madDev-12/fitnutrition/internal/model"
)

const (
	registerPath = "auth/register/"
	loginPath    = "auth/login/"
	refreshPath  = "auth/token/refresh/"
)

var ErrNoTokens = errors.New("login response carried no access token")

func (c *Client) Register(ctx context.Context, in model.RegisterInput) error {
	_, err := c.postAnonymous(ctx, registerPath, in)
	return err
}

// Login exchanges credentials for a token pair and starts using it.
func (c *Client) Login(ctx context.Context, email, password string) (model.TokenPair, error) {
	body, err := c.postAnonymous(ctx, loginPath, map[string]string{"email": email, "password": password})
	if err != nil {
		return model.TokenPair{}, err
	}
	pair, err := decodeTokenPair(body)
	if err != nil {
		return model.TokenPair{}, err
	}
	c.authMu.Lock()
	c.Token, c.RefreshToken = pair.Access, pair.Refresh
	c.authMu.Unlock()
	return pair, nil
}

// Refresh renews the access token now. Rotated refresh tokens replace the
// current one; a response without one keeps it.
func (c *Client) Refresh(ctx context.Context) (model.TokenPair, error) {
	c.authMu.Lock()
	defer c.authMu.Unlock()
	return c.refreshLocked(ctx)
}

func (c *Client) accessToken() string {
	c.authMu.Lock()
	defer c.authMu.Unlock()
	return c.Token
}

// renewAfter refreshes the pair after stale was rejected. Requests that fail
// together share one refresh: if another goroutine already replaced stale,
// the caller just retries with the new token.
func (c *Client) renewAfter(ctx context.Context, stale string) (bool, error) {
	c.authMu.Lock()
	defer c.authMu.Unlock()
	if c.Token != stale {
		return true, nil
	}
	if strings.TrimSpace(c.RefreshToken) == "" {
		return false, nil
	}
	if _, err := c.refreshLocked(ctx); err != nil {
		return false, fmt.Errorf("refresh session: %w", err)
	}
	return true, nil
}

func (c *Client) refreshLocked(ctx context.Context) (model.TokenPair, error) {
	if strings.TrimSpace(c.RefreshToken) == "" {
		return model.TokenPair{}, fmt.Errorf("no refresh token, log in again")
	}
	body, err := c.postAnonymous(ctx, refreshPath, map[string]string{"refresh": c.RefreshToken})
	if err != nil {
		return model.TokenPair{}, err
	}
	pair, err := decodeTokenPair(body)
	if err != nil {
		return model.TokenPair{}, err
	}
	if pair.Refresh == "" {
		pair.Refresh = c.RefreshToken
	}
	c.Token, c.RefreshToken = pair.Access, pair.Refresh
	log.Debug("access token renewed")
	if c.OnTokens != nil {
		c.OnTokens(pair)
	}
	return pair, nil
}

// postAnonymous sends JSON without the bearer header and never triggers a
// refresh.
func (c *Client) postAnonymous(ctx context.Context, path string, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal POST %s payload: %w", path, err)
	}
	return c.roundTrip(ctx, http.MethodPost, c.endpoint(path, nil), encoded, "application/json", "")
}

// decodeTokenPair accepts {access, refresh} and {tokens: {access, refresh}}.
func decodeTokenPair(body []byte) (model.TokenPair, error) {
	var resp struct {
		model.TokenPair
		Tokens *model.TokenPair `json:"tokens"`
	}
	if err := decodeObject(bytes.TrimSpace(body), &resp); err != nil {
		return model.TokenPair{}, fmt.Errorf("decode tokens: %w", err)
	}
	pair := resp.TokenPair
	if resp.Tokens != nil && pair.Access == "" {
		pair = *resp.Tokens
	}
	if pair.Access == "" {
		return model.TokenPair{}, ErrNoTokens
	}
	return pair, nil
}
