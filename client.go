package ampemail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Version identifies this SDK release in the User-Agent header.
const Version = "1.0.0"

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api.amp-platform.com"

	// DefaultTimeout bounds each request when no timeout option is given.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxConcurrent is the server-side batching concurrency hint
	// applied when BatchCampaignParams.MaxConcurrent is zero.
	DefaultMaxConcurrent = 10

	// DefaultChunkSize is the server-side batching chunk hint applied
	// when BatchCampaignParams.ChunkSize is zero.
	DefaultChunkSize = 100

	defaultUserAgent = "amp-email-go/" + Version
)

// Client calls the AMP email generation API. It holds the immutable
// connection configuration and a pooled HTTP client reused across calls.
// Every operation is a single synchronous request/response round trip:
// no retries, no backoff, no pagination. Callers needing concurrent calls
// must synchronize externally or use independent instances.
//
// Zero value is not usable; use New to create instances.
type Client struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	userAgent  string
	httpClient *http.Client
}

// New creates an API client authenticated with the given key. The key is
// issued from the platform dashboard and sent as a bearer token on every
// request.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrValidation)
	}

	c := &Client{
		apiKey:    apiKey,
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,              // Total connections across all hosts
				MaxIdleConnsPerHost: 10,               // Connections per endpoint
				IdleConnTimeout:     90 * time.Second, // Close idle connections after 90s
			},
		}
	}

	return c, nil
}

// Close releases idle connections held by the underlying HTTP client.
// Safe to call more than once; pair with defer for scoped usage:
//
//	client, err := ampemail.New(apiKey)
//	if err != nil { ... }
//	defer client.Close()
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// GenerateParams are the inputs to Generate. At least one of ProductURLs or
// Products must be set; everything else is optional.
type GenerateParams struct {
	// ProductURLs are product pages for the server to extract data from.
	ProductURLs []string

	// Products are explicit product data objects.
	Products []Product

	// CampaignContext configures the campaign; when nil an empty object
	// is sent and the server applies its defaults.
	CampaignContext *CampaignContext

	// UserContext carries recipient personalization data.
	UserContext *UserContext

	// BrandContext carries brand styling and voice.
	BrandContext *BrandContext

	// Options tunes variation count and merge tag handling.
	Options *GenerationOptions
}

type generateRequest struct {
	ProductURLs     []string           `json:"product_urls,omitempty"`
	Products        []Product          `json:"products,omitempty"`
	CampaignContext any                `json:"campaign_context"`
	UserContext     *UserContext       `json:"user_context,omitempty"`
	BrandContext    *BrandContext      `json:"brand_context,omitempty"`
	Options         *GenerationOptions `json:"options,omitempty"`
}

// Generate requests AMP email template variations for the given products
// and returns the resulting campaign. Validation failures are reported
// before any network call is made.
func (c *Client) Generate(ctx context.Context, params GenerateParams) (*Campaign, error) {
	if len(params.ProductURLs) == 0 && len(params.Products) == 0 {
		return nil, fmt.Errorf("%w: either product URLs or products must be provided", ErrValidation)
	}
	if params.CampaignContext != nil {
		if err := params.CampaignContext.Validate(); err != nil {
			return nil, err
		}
	}
	if params.Options != nil {
		if err := params.Options.Validate(); err != nil {
			return nil, err
		}
	}

	req := generateRequest{
		ProductURLs:  params.ProductURLs,
		Products:     params.Products,
		UserContext:  params.UserContext,
		BrandContext: params.BrandContext,
		Options:      params.Options,
	}
	// campaign_context is always present in the body, empty when unset.
	if params.CampaignContext != nil {
		req.CampaignContext = params.CampaignContext
	} else {
		req.CampaignContext = struct{}{}
	}

	body, err := c.do(ctx, http.MethodPost, "/api/v1/generate", req)
	if err != nil {
		return nil, err
	}

	var campaign Campaign
	if err := json.Unmarshal(body, &campaign); err != nil {
		if errors.Is(err, ErrDecodeResponse) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}
	return &campaign, nil
}

// GetTemplate fetches a template by ID and returns the raw document.
func (c *Client) GetTemplate(ctx context.Context, templateID string) (map[string]any, error) {
	return c.doJSON(ctx, http.MethodGet, "/api/v1/templates/"+url.PathEscape(templateID), nil)
}

type personalizeRequest struct {
	TemplateID    string         `json:"template_id"`
	RecipientData map[string]any `json:"recipient_data"`
}

// Personalize resolves a template's merge tags against the given recipient
// data and returns the raw result document.
func (c *Client) Personalize(ctx context.Context, templateID string, recipientData map[string]any) (map[string]any, error) {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/personalize", personalizeRequest{
		TemplateID:    templateID,
		RecipientData: recipientData,
	})
}

// BatchCampaignParams are the inputs to CreateBatchCampaign.
type BatchCampaignParams struct {
	// CampaignName labels the batch campaign.
	CampaignName string

	// ProductURLs are the product pages to process.
	ProductURLs []string

	// CampaignContext is required and validated before sending.
	CampaignContext CampaignContext

	// MaxConcurrent is a server-side concurrency hint; defaults to 10.
	MaxConcurrent int

	// ChunkSize is a server-side chunking hint; defaults to 100.
	ChunkSize int

	// WebhookURL, when set, is called by the server on completion.
	// Omitted from the request entirely when empty.
	WebhookURL string
}

type batchCampaignRequest struct {
	CampaignName    string          `json:"campaign_name"`
	ProductURLs     []string        `json:"product_urls"`
	CampaignContext CampaignContext `json:"campaign_context"`
	MaxConcurrent   int             `json:"max_concurrent"`
	ChunkSize       int             `json:"chunk_size"`
	WebhookURL      string          `json:"webhook_url,omitempty"`
}

// CreateBatchCampaign submits a large-scale generation job. Batching is
// performed server-side; MaxConcurrent and ChunkSize are forwarded as hints.
func (c *Client) CreateBatchCampaign(ctx context.Context, params BatchCampaignParams) (map[string]any, error) {
	if err := params.CampaignContext.Validate(); err != nil {
		return nil, err
	}

	req := batchCampaignRequest{
		CampaignName:    params.CampaignName,
		ProductURLs:     params.ProductURLs,
		CampaignContext: params.CampaignContext,
		MaxConcurrent:   params.MaxConcurrent,
		ChunkSize:       params.ChunkSize,
		WebhookURL:      params.WebhookURL,
	}
	if req.MaxConcurrent <= 0 {
		req.MaxConcurrent = DefaultMaxConcurrent
	}
	if req.ChunkSize <= 0 {
		req.ChunkSize = DefaultChunkSize
	}

	return c.doJSON(ctx, http.MethodPost, "/api/v1/batch/campaign", req)
}

// GetCampaignAnalytics fetches analytics for a campaign and returns the
// raw document.
func (c *Client) GetCampaignAnalytics(ctx context.Context, campaignID string) (map[string]any, error) {
	return c.doJSON(ctx, http.MethodGet, "/api/v1/analytics/campaign/"+url.PathEscape(campaignID), nil)
}

// doJSON dispatches a request and decodes the 2xx response body into a
// generic JSON document.
func (c *Client) doJSON(ctx context.Context, method, path string, payload any) (map[string]any, error) {
	body, err := c.do(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}
	return out, nil
}

// do performs one HTTP round trip and classifies the outcome. It returns the
// raw 2xx response body; every failure comes back as an *APIError except the
// request marshaling path, which cannot fail for the client's own types.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		body = bytes.NewReader(data)
	}

	// Layer the per-request timeout on top of the caller's context so both
	// constraints are respected.
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &APIError{Message: "request failed: " + err.Error(), Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Message: "request failed: " + err.Error(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "request failed: " + err.Error(), Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "invalid API key", Err: ErrAuthentication}
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "rate limit exceeded", Err: ErrRateLimit}
	case resp.StatusCode >= 400:
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, data)}
	}

	return data, nil
}

// errorMessage extracts the server's message field from an error body,
// falling back to a generic status description.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fmt.Sprintf("API error: %d", status)
}
