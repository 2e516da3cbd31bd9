package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/diogo/finchat/internal/api"
	"github.com/diogo/finchat/internal/config"
	"github.com/diogo/finchat/internal/history"
	"github.com/diogo/finchat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(ctx context.Context, resolver tui.Resolver, opts tui.ChatOptions) (*history.Log, error)
	RunConfig() error
}

// SourceFactory builds the quote source for a loaded config
type SourceFactory func(cfg config.Config, logger *zap.Logger) (api.StockSource, error)

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewSource creates the market data client.
	NewSource SourceFactory

	// TUI is the terminal user interface.
	TUI TUIInterface
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(ctx context.Context, resolver tui.Resolver, opts tui.ChatOptions) (*history.Log, error) {
	return tui.RunChat(ctx, resolver, opts)
}

func (d *DefaultTUI) RunConfig() error {
	return tui.RunConfig()
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewSource: newQuoteSource,
		TUI:       &DefaultTUI{},
	}
}

// newQuoteSource creates the HTTP quote client from config
func newQuoteSource(cfg config.Config, logger *zap.Logger) (api.StockSource, error) {
	client, err := api.NewClient(cfg.APIKey,
		api.WithBaseURL(cfg.BaseURL),
		api.WithHistoryMonths(cfg.HistoryMonths),
		api.WithTimeoutSeconds(cfg.TimeoutSeconds),
		api.WithLogger(logger.Named("api")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}
