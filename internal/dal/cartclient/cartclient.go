package cartclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/corray333/backend-labs/checkout/internal/service/models/apperrors"
	"github.com/corray333/backend-labs/checkout/internal/service/models/cart"
	"github.com/corray333/backend-labs/checkout/pkg/http/middleware/correlation"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
)

// Client calls the external cart service over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// option is a function that configures the Client.
type option func(*Client)

// NewClient creates a cart service client configured from viper.
func NewClient(opts ...option) *Client {
	timeoutSeconds := viper.GetInt("services.cart.timeout_seconds")
	if timeoutSeconds == 0 {
		timeoutSeconds = 10
	}

	c := &Client{
		httpClient: &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second},
		baseURL:    viper.GetString("services.cart.url"),
		apiKey:     viper.GetString("services.cart.api_key"),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithBaseURL overrides the cart service base URL.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithBaseURL(baseURL string) option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithAPIKey overrides the cart service API key.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAPIKey(apiKey string) option {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

// cartResponse mirrors the cart service payload.
type cartResponse struct {
	ID              int64              `json:"id"`
	CustomerID      int64              `json:"customerId"`
	Items           []cartItemResponse `json:"items"`
	TotalPriceCents int64              `json:"totalPriceCents"`
	ItemCount       int                `json:"itemCount"`
	Status          string             `json:"status"`
}

type cartItemResponse struct {
	ProductID      int64  `json:"productId"`
	ProductName    string `json:"productName"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
}

func (r *cartResponse) toModel() *cart.Cart {
	items := make([]cart.CartItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = cart.CartItem{
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		}
	}

	return &cart.Cart{
		ID:              r.ID,
		CustomerID:      r.CustomerID,
		Items:           items,
		TotalPriceCents: r.TotalPriceCents,
		ItemCount:       r.ItemCount,
		Status:          r.Status,
	}
}

// GetCart fetches the cart snapshot for a customer.
func (c *Client) GetCart(ctx context.Context, customerID int64) (*cart.Cart, error) {
	ctx, span := otel.Tracer("cartclient").Start(ctx, "Client.GetCart")
	defer span.End()

	url := c.baseURL + "/carts/" + strconv.FormatInt(customerID, 10)
	slog.InfoContext(ctx, "Fetching cart from cart-service", "customer_id", customerID, "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.CartServiceError(err)
	}
	c.setHeaders(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.CartServiceError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.CartNotFound(customerID)
	case resp.StatusCode != http.StatusOK:
		return nil, apperrors.CartServiceError(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body cartResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperrors.CartServiceError(fmt.Errorf("failed to decode response: %w", err))
	}

	return body.toModel(), nil
}

// ClearCart asks the cart service to drop the customer's cart. Callers treat
// a failure here as a diagnostic event, not a workflow error.
func (c *Client) ClearCart(ctx context.Context, customerID int64) error {
	ctx, span := otel.Tracer("cartclient").Start(ctx, "Client.ClearCart")
	defer span.End()

	url := c.baseURL + "/carts/" + strconv.FormatInt(customerID, 10)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build clear cart request: %w", err)
	}
	c.setHeaders(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("failed to clear cart: unexpected status %d", resp.StatusCode)
	}

	return nil
}

func (c *Client) setHeaders(ctx context.Context, req *http.Request) {
	req.Header.Set("Authorization", "ApiKey "+c.apiKey)
	if id := correlation.FromContext(ctx); id != "" {
		req.Header.Set(correlation.Header, id)
	}
}
