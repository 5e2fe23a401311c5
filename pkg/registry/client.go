// Package registry is the HTTP client for the department registry backend,
// the external service owning persistence, business rules and file storage.
// Every domain is driven through one action-envelope command endpoint.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
)

type ctxKey int

const authTokenKey ctxKey = iota

// WithAuthToken carries the session's opaque backend token; the client
// forwards it verbatim as a bearer header.
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, authTokenKey, token)
}

func authToken(ctx context.Context) string {
	token, _ := ctx.Value(authTokenKey).(string)
	return token
}

// AuthTokenFrom exposes the carried token for callers that need to re-root
// a fetch on a longer-lived context.
func AuthTokenFrom(ctx context.Context) string {
	return authToken(ctx)
}

type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Do posts an action envelope to the domain's command endpoint and returns
// the raw response body. Context cancellation passes through untouched so
// callers can recognize superseded requests and stay silent about them.
func (c *Client) Do(ctx context.Context, domain string, action Action, payload map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(&Envelope{Action: action, Payload: payload})
	if err != nil {
		return nil, errors.Wrap(err, "encode envelope")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(domain), bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if token := authToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrapf(err, "registry %s %s", domain, action)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := parseAPIError(resp.StatusCode, raw)
		if c.log != nil {
			c.log.WithFields(logrus.Fields{
				"domain": domain,
				"action": action,
				"status": resp.StatusCode,
			}).Warn("registry call failed")
		}
		return nil, apiErr
	}
	return raw, nil
}

// List runs READ_ALL and normalizes whatever shape the endpoint returns.
func (c *Client) List(ctx context.Context, domain string, payload map[string]any) (ListResult, error) {
	raw, err := c.Do(ctx, domain, ActionReadAll, payload)
	if err != nil {
		return ListResult{}, err
	}
	return NormalizeList(raw), nil
}

// One runs READ_ONE and unwraps an optional {data: {...}} envelope.
func (c *Client) One(ctx context.Context, domain string, payload map[string]any) (json.RawMessage, error) {
	raw, err := c.Do(ctx, domain, ActionReadOne, payload)
	if err != nil {
		return nil, err
	}
	return unwrapData(raw), nil
}

func unwrapData(raw json.RawMessage) json.RawMessage {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapper); err == nil && len(wrapper.Data) > 0 {
		return wrapper.Data
	}
	return raw
}

// UploadDocument attaches one scanned document to a record as a multipart
// submission against the record-scoped endpoint.
func (c *Client) UploadDocument(ctx context.Context, domain, recordID, filename string, file io.Reader) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return errors.Wrap(err, "create form file")
	}
	if _, err := io.Copy(part, file); err != nil {
		return errors.Wrap(err, "copy file")
	}
	if err := mw.Close(); err != nil {
		return errors.Wrap(err, "close multipart writer")
	}

	url := fmt.Sprintf("%s/%s/%s/documents", c.baseURL, domain, recordID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return errors.Wrap(err, "build upload request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token := authToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrapf(err, "upload document for %s/%s", domain, recordID)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return parseAPIError(resp.StatusCode, raw)
	}
	return nil
}

func (c *Client) endpoint(domain string) string {
	return fmt.Sprintf("%s/%s", c.baseURL, domain)
}

// SessionClaims is the backend's answer to a successful login. Transport
// of the session (cookie vs token) is the backend's concern; the portal
// only stores the claims and forwards the token.
type SessionClaims struct {
	Token      string `json:"token"`
	Username   string `json:"username"`
	Department string `json:"department"`
	Role       string `json:"role"`
	ExpiresIn  int64  `json:"expires_in"`
}

// Login exchanges credentials for session claims.
func (c *Client) Login(ctx context.Context, username, password string) (*SessionClaims, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, errors.Wrap(err, "encode credentials")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build login request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(err, "registry login")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read login response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseAPIError(resp.StatusCode, raw)
	}

	var claims SessionClaims
	if err := json.Unmarshal(unwrapData(raw), &claims); err != nil {
		return nil, errors.Wrap(err, "decode login response")
	}
	return &claims, nil
}

// HumanMessage derives the user-facing message for a failed backend call:
// the server-supplied detail when present, otherwise the generic fallback.
// Cancellation never produces a message; superseded requests stay silent.
func HumanMessage(err error) string {
	if err == nil || errors.Is(err, context.Canceled) {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail()
	}
	return FallbackMessage
}

// StatusOf returns the HTTP status carried by a backend error, or 0 when
// the error did not come from a backend response.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
