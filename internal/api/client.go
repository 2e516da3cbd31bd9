package api

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"go.uber.org/zap"

	apierrors "github.com/diogo/finchat/internal/errors"
	"github.com/diogo/finchat/internal/models"
)

// HTTPDoer is the part of tls_client.HttpClient the quote client needs
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// StockSource is what the resolver needs from a quote provider
type StockSource interface {
	FetchQuote(ctx context.Context, symbol string) (*models.Quote, error)
	FetchHistory(ctx context.Context, symbol string) ([]models.PricePoint, error)
}

// QuoteClient talks to an Alpha Vantage compatible quote service
type QuoteClient struct {
	httpClient    HTTPDoer
	baseURL       string
	apiKey        string
	historyMonths int
	timeout       int
	logger        *zap.Logger
}

// Ensure QuoteClient implements StockSource
var _ StockSource = (*QuoteClient)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*QuoteClient)

// WithBaseURL overrides the service root (scheme and host)
func WithBaseURL(baseURL string) ClientOption {
	return func(c *QuoteClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHistoryMonths sets how many monthly closes FetchHistory returns
func WithHistoryMonths(months int) ClientOption {
	return func(c *QuoteClient) {
		c.historyMonths = months
	}
}

// WithTimeoutSeconds sets a transport timeout. Zero keeps the transport default.
func WithTimeoutSeconds(seconds int) ClientOption {
	return func(c *QuoteClient) {
		c.timeout = seconds
	}
}

// WithHTTPClient injects the transport, mainly for tests
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *QuoteClient) {
		c.httpClient = doer
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *QuoteClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a new QuoteClient. The API key is fixed for the client's lifetime.
func NewClient(apiKey string, opts ...ClientOption) (*QuoteClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("API key cannot be empty")
	}

	client := &QuoteClient{
		baseURL:       models.DefaultBaseURL,
		apiKey:        apiKey,
		historyMonths: models.DefaultHistoryMonths,
		logger:        zap.NewNop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithClientProfile(profiles.Chrome_120),
		}
		if client.timeout > 0 {
			options = append(options, tls_client.WithTimeoutSeconds(client.timeout))
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// FetchQuote returns the current quote for symbol
func (c *QuoteClient) FetchQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	body, err := c.query(ctx, models.FunctionGlobalQuote, symbol)
	if err != nil {
		return nil, err
	}
	return ParseQuote(body, symbol)
}

// FetchHistory returns up to the configured number of monthly closes, oldest first
func (c *QuoteClient) FetchHistory(ctx context.Context, symbol string) ([]models.PricePoint, error) {
	body, err := c.query(ctx, models.FunctionMonthlySeries, symbol)
	if err != nil {
		return nil, err
	}
	return ParseHistory(body, symbol, c.historyMonths)
}

// endpoint builds the request URL for a query function
func (c *QuoteClient) endpoint(function, symbol string) string {
	params := url.Values{}
	params.Set("function", function)
	params.Set("symbol", symbol)
	params.Set("apikey", c.apiKey)
	return c.baseURL + models.QueryPath + "?" + params.Encode()
}

// query performs one GET and returns the body. No retries.
func (c *QuoteClient) query(ctx context.Context, function, symbol string) ([]byte, error) {
	endpoint := c.baseURL + models.QueryPath
	log := c.logger.With(zap.String("function", function), zap.String("symbol", symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(function, symbol), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}

	log.Debug("quote request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("quote request failed", zap.Error(err))
		return nil, apierrors.NewNetworkError(strings.ToLower(function), endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode != http.StatusOK {
		// Limit error body to 4KB for diagnostics
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Warn("quote request rejected", zap.Int("status", resp.StatusCode))
		return nil, apierrors.NewAPIError(resp.StatusCode, endpoint, strings.ToLower(function)+" failed").
			WithBody(string(errorBody))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewNetworkError("read "+strings.ToLower(function), endpoint, err)
	}

	log.Debug("quote response", zap.Int("bytes", len(body)))
	return body, nil
}
