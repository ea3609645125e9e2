package customerclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/corray333/backend-labs/checkout/internal/service/models/apperrors"
	"github.com/corray333/backend-labs/checkout/internal/service/models/customer"
	"github.com/corray333/backend-labs/checkout/pkg/cache"
	"github.com/corray333/backend-labs/checkout/pkg/http/middleware/correlation"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
)

// Client calls the external customer service over HTTP. Lookups go through a
// Redis read cache when one is configured; cache failures degrade to the
// origin call.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cache      cache.Cache
	cacheTTL   time.Duration
}

// option is a function that configures the Client.
type option func(*Client)

// NewClient creates a customer service client configured from viper.
func NewClient(opts ...option) *Client {
	timeoutSeconds := viper.GetInt("services.customer.timeout_seconds")
	if timeoutSeconds == 0 {
		timeoutSeconds = 10
	}
	ttlSeconds := viper.GetInt("services.customer.cache_ttl_seconds")
	if ttlSeconds == 0 {
		ttlSeconds = 300
	}

	c := &Client{
		httpClient: &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second},
		baseURL:    viper.GetString("services.customer.url"),
		apiKey:     viper.GetString("services.customer.api_key"),
		cacheTTL:   time.Duration(ttlSeconds) * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithBaseURL overrides the customer service base URL.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithBaseURL(baseURL string) option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithAPIKey overrides the customer service API key.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAPIKey(apiKey string) option {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

// WithCache sets the read cache for customer lookups.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCache(cache cache.Cache) option {
	return func(c *Client) {
		c.cache = cache
	}
}

// GetCustomer fetches the customer record by id.
func (c *Client) GetCustomer(ctx context.Context, customerID int64) (*customer.Customer, error) {
	ctx, span := otel.Tracer("customerclient").Start(ctx, "Client.GetCustomer")
	defer span.End()

	cacheKey := ""
	if c.cache != nil {
		cacheKey = c.cache.GenerateKey("customer", strconv.FormatInt(customerID, 10))
		if raw, err := c.cache.Get(ctx, cacheKey); err != nil {
			slog.WarnContext(ctx, "Customer cache read failed", "error", err)
		} else if raw != "" {
			var cust customer.Customer
			if err := json.Unmarshal([]byte(raw), &cust); err == nil {
				return &cust, nil
			}
		}
	}

	url := c.baseURL + "/clients/" + strconv.FormatInt(customerID, 10)
	slog.InfoContext(ctx, "Fetching customer from customer-service", "customer_id", customerID, "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.CustomerServiceError(err)
	}
	req.Header.Set("Authorization", "ApiKey "+c.apiKey)
	if id := correlation.FromContext(ctx); id != "" {
		req.Header.Set(correlation.Header, id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.CustomerServiceError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.CustomerNotFound(customerID)
	case resp.StatusCode != http.StatusOK:
		return nil, apperrors.CustomerServiceError(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var cust customer.Customer
	if err := json.NewDecoder(resp.Body).Decode(&cust); err != nil {
		return nil, apperrors.CustomerServiceError(fmt.Errorf("failed to decode response: %w", err))
	}

	if c.cache != nil {
		if raw, err := json.Marshal(cust); err == nil {
			if err := c.cache.Set(ctx, cacheKey, string(raw), c.cacheTTL); err != nil {
				slog.WarnContext(ctx, "Customer cache write failed", "error", err)
			}
		}
	}

	return &cust, nil
}
