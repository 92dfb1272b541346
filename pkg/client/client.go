// Package client implements the job-seeker apply workflow against the board
// API: exchange an external identity for a bearer token, cache it, and submit
// requests with at most one credential refresh on rejection.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrLoginRequired means the workflow has no identity to exchange and
	// no cached credential; the caller must obtain an identity first.
	ErrLoginRequired = errors.New("login required")
	// ErrUnauthorized means the credential was rejected even after the one
	// allowed refresh.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError carries the server's user-visible failure message.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "api error: " + e.Code
}

// Identity is what the external identity provider supplies.
type Identity struct {
	UserID string
	Name   string
	Email  string
	Image  string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      TokenCache
	identity   *Identity
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithTokenCache(cache TokenCache) Option {
	return func(c *Client) { c.cache = cache }
}

func WithIdentity(identity Identity) Option {
	return func(c *Client) { c.identity = &identity }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      NewMemoryCache(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type authRequest struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Image  string `json:"image"`
}

type authResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// ensureToken returns the cached credential or performs the one-shot
// exchange.
func (c *Client) ensureToken(ctx context.Context) (string, error) {
	if token, ok := c.cache.Get(); ok {
		return token, nil
	}
	if c.identity == nil {
		return "", ErrLoginRequired
	}
	payload := authRequest{
		UserID: c.identity.UserID,
		Name:   c.identity.Name,
		Email:  c.identity.Email,
		Image:  c.identity.Image,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode auth request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/jobs/auth", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send auth request: %w", err)
	}
	defer resp.Body.Close()
	payloadBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read auth response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", mapAPIError(resp.StatusCode, payloadBytes)
	}
	var parsed authResponse
	if err := json.Unmarshal(payloadBytes, &parsed); err != nil {
		return "", fmt.Errorf("decode auth response: %w", err)
	}
	if parsed.Token == "" {
		return "", fmt.Errorf("auth response missing token")
	}
	if err := c.cache.Set(parsed.Token); err != nil {
		return "", fmt.Errorf("cache token: %w", err)
	}
	return parsed.Token, nil
}

// withAuthRetry runs one authenticated request with the workflow's bounded
// recovery: on a 401 it invalidates the cached credential, re-exchanges the
// identity once, and retries once. A rejection of the fresh credential is
// surfaced, never retried again. Every authenticated call goes through here
// so no call site grows its own retry loop.
func (c *Client) withAuthRetry(ctx context.Context, do func(token string) (*http.Response, error)) (*http.Response, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := do(token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	drain(resp)
	c.cache.Clear()
	token, err = c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}
	resp, err = do(token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		return nil, ErrUnauthorized
	}
	return resp, nil
}

// ApplyResult reports the workflow outcome. AlreadyApplied is a success from
// the caller's point of view: submitting twice looks exactly like submitting
// once, while the ledger keeps a single record.
type ApplyResult struct {
	AlreadyApplied bool
	Message        string
}

// Apply submits an application for the job. resume may be nil when the
// applicant has a resume on file.
func (c *Client) Apply(ctx context.Context, jobID string, resume io.Reader, resumeName string) (*ApplyResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if resume != nil {
		part, err := writer.CreateFormFile("resume", resumeName)
		if err != nil {
			return nil, fmt.Errorf("create resume part: %w", err)
		}
		if _, err := io.Copy(part, resume); err != nil {
			return nil, fmt.Errorf("copy resume: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}
	body := buf.Bytes()

	resp, err := c.withAuthRetry(ctx, func(token string) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/jobs/apply/"+jobID, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("create apply request: %w", err)
		}
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		return c.httpClient.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	payloadBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read apply response: %w", err)
	}
	if resp.StatusCode == http.StatusOK {
		var parsed struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(payloadBytes, &parsed)
		return &ApplyResult{Message: parsed.Message}, nil
	}
	apiErr := mapAPIError(resp.StatusCode, payloadBytes)
	var coded *APIError
	if errors.As(apiErr, &coded) && coded.Code == "conflict" {
		// a duplicate submit resolves as success; the ledger already holds
		// the record
		return &ApplyResult{AlreadyApplied: true, Message: coded.Message}, nil
	}
	return nil, apiErr
}

// AppliedJob is one row of the applied-jobs listing.
type AppliedJob struct {
	JobID     string    `json:"_id"`
	Title     string    `json:"title"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
	AppliedAt time.Time `json:"createdAt"`
}

func (c *Client) AppliedJobs(ctx context.Context) ([]AppliedJob, error) {
	resp, err := c.withAuthRetry(ctx, func(token string) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/jobs/applied", nil)
		if err != nil {
			return nil, fmt.Errorf("create applied request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		return c.httpClient.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	payloadBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read applied response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, mapAPIError(resp.StatusCode, payloadBytes)
	}
	var items []AppliedJob
	if err := json.Unmarshal(payloadBytes, &items); err != nil {
		return nil, fmt.Errorf("decode applied response: %w", err)
	}
	return items, nil
}

// HasApplied is the advisory pre-submission check. It may be stale under
// concurrent sessions; Apply's conditional write is the only authority on
// duplicates.
func (c *Client) HasApplied(ctx context.Context, jobID string) (bool, error) {
	items, err := c.AppliedJobs(ctx)
	if err != nil {
		return false, err
	}
	for _, item := range items {
		if item.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

// Profile is the seeker's stored profile.
type Profile struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Image  string `json:"image"`
	Resume string `json:"resume"`
}

func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	resp, err := c.withAuthRetry(ctx, func(token string) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/jobs/profile", nil)
		if err != nil {
			return nil, fmt.Errorf("create profile request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		return c.httpClient.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	payloadBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read profile response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, mapAPIError(resp.StatusCode, payloadBytes)
	}
	var parsed Profile
	if err := json.Unmarshal(payloadBytes, &parsed); err != nil {
		return nil, fmt.Errorf("decode profile response: %w", err)
	}
	return &parsed, nil
}

// UpdateResume stores a resume on the seeker's profile and returns its
// reference URL.
func (c *Client) UpdateResume(ctx context.Context, resume io.Reader, resumeName string) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("resume", resumeName)
	if err != nil {
		return "", fmt.Errorf("create resume part: %w", err)
	}
	if _, err := io.Copy(part, resume); err != nil {
		return "", fmt.Errorf("copy resume: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart body: %w", err)
	}
	body := buf.Bytes()

	resp, err := c.withAuthRetry(ctx, func(token string) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/jobs/resume", bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("create resume request: %w", err)
		}
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		return c.httpClient.Do(req)
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	payloadBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read resume response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", mapAPIError(resp.StatusCode, payloadBytes)
	}
	var parsed struct {
		Resume string `json:"resume"`
	}
	if err := json.Unmarshal(payloadBytes, &parsed); err != nil {
		return "", fmt.Errorf("decode resume response: %w", err)
	}
	return parsed.Resume, nil
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func mapAPIError(status int, payload []byte) error {
	var parsed errorResponse
	if err := json.Unmarshal(payload, &parsed); err != nil || (parsed.Error == "" && parsed.Message == "") {
		message := strings.TrimSpace(string(payload))
		if message == "" {
			return &APIError{Code: fmt.Sprintf("http_%d", status)}
		}
		return &APIError{Code: fmt.Sprintf("http_%d", status), Message: message}
	}
	return &APIError{Code: parsed.Error, Message: parsed.Message}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
