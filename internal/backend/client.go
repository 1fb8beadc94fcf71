// Package backend talks to the remote assistant service that answers chat
// questions, searches drugs and services, and looks up insurance status.
package backend

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
)

// DefaultTimeout applies when the caller's context has no deadline
const DefaultTimeout = 10 * time.Second

// ErrInvalidNationalID is returned before any request is made for a malformed ID
var ErrInvalidNationalID = errors.New("national id must be 10 digits starting with 1 or 2")

// ErrNotConfigured is returned by a client with no base URL
var ErrNotConfigured = errors.New("backend url is not configured")

// Client is the remote backend surface used by the API
type Client interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	Search(ctx context.Context, query string) (*SearchResponse, error)
	InsuranceStatus(ctx context.Context, nationalID string) (*InsuranceStatus, error)
}

type ChatRequest struct {
	Message   string `json:"message"`
	Lang      string `json:"lang,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

type ChatResponse struct {
	Reply     string   `json:"reply"`
	SessionID string   `json:"sessionId,omitempty"`
	Sources   []string `json:"sources,omitempty"`
}

type SearchResult struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"` // drug or service
	NameAr      string `json:"nameAr,omitempty"`
	NameEn      string `json:"nameEn,omitempty"`
	Description string `json:"description,omitempty"`
	Covered     bool   `json:"covered"`
}

type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

// InsuranceStatus is the coverage record for one beneficiary
type InsuranceStatus struct {
	NationalID  string `json:"nationalId"`
	Insured     bool   `json:"insured"`
	InsurerName string `json:"insurerName,omitempty"`
	PolicyClass string `json:"policyClass,omitempty"`
	ExpiresOn   string `json:"expiresOn,omitempty"`
}

// StatusError reports a non-2xx response from the backend
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, body)
}

// HTTPClient implements Client over fasthttp
type HTTPClient struct {
	BaseURL string
	Timeout time.Duration
	HTTP    *fasthttp.Client
}

// NewHTTPClient creates a client for the backend at baseURL
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Timeout: DefaultTimeout,
		HTTP: &fasthttp.Client{
			Name:                "chicalc",
			MaxConnsPerHost:     64,
			MaxIdleConnDuration: 90 * time.Second,
			ReadTimeout:         DefaultTimeout,
			WriteTimeout:        DefaultTimeout,
		},
	}
}

func (c *HTTPClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, errors.New("chat message is required")
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	var out ChatResponse
	if err := c.do(ctx, fasthttp.MethodPost, "/chat", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Search(ctx context.Context, query string) (*SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("search query is required")
	}
	var out SearchResponse
	if err := c.do(ctx, fasthttp.MethodGet, "/search?q="+url.QueryEscape(query), nil, &out); err != nil {
		return nil, err
	}
	if out.Query == "" {
		out.Query = query
	}
	return &out, nil
}

func (c *HTTPClient) InsuranceStatus(ctx context.Context, nationalID string) (*InsuranceStatus, error) {
	if !ValidNationalID(nationalID) {
		return nil, ErrInvalidNationalID
	}
	var out InsuranceStatus
	if err := c.do(ctx, fasthttp.MethodGet, "/insurance-status/"+nationalID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidNationalID checks the Saudi national/iqama ID shape: 10 digits, leading 1 or 2
func ValidNationalID(id string) bool {
	if len(id) != 10 || (id[0] != '1' && id[0] != '2') {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body []byte, out any) error {
	if c.BaseURL == "" {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.BaseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if body != nil {
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		timeout := c.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		deadline = time.Now().Add(timeout)
	}
	if err := c.HTTP.DoDeadline(req, resp, deadline); err != nil {
		return fmt.Errorf("backend %s %s: %w", method, path, err)
	}

	if code := resp.StatusCode(); code < 200 || code > 299 {
		return &StatusError{StatusCode: code, Body: string(resp.Body())}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}
