package assistant

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/diogo/finchat/internal/api"
	apierrors "github.com/diogo/finchat/internal/errors"
	"github.com/diogo/finchat/internal/knowledge"
	"github.com/diogo/finchat/internal/models"
)

// Resolver decides which answer source applies to a message and builds the reply.
// It holds no per-conversation state and is safe to reuse across submissions.
type Resolver struct {
	source     api.StockSource
	kb         *knowledge.Base
	concurrent bool
	logger     *zap.Logger
}

// ResolverOption configures a Resolver
type ResolverOption func(*Resolver)

// WithKnowledge replaces the built-in knowledge table
func WithKnowledge(kb *knowledge.Base) ResolverOption {
	return func(r *Resolver) {
		if kb != nil {
			r.kb = kb
		}
	}
}

// WithConcurrentFetch controls whether quote and history are fetched in parallel
func WithConcurrentFetch(enabled bool) ResolverOption {
	return func(r *Resolver) {
		r.concurrent = enabled
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a Resolver backed by source for stock lookups
func NewResolver(source api.StockSource, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		source:     source,
		kb:         knowledge.Default(),
		concurrent: true,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Knowledge returns the table the resolver answers from
func (r *Resolver) Knowledge() *knowledge.Base {
	return r.kb
}

// Resolve produces the reply for one raw message. It never fails: every
// error, including a panic further down, becomes reply text.
func (r *Resolver) Resolve(ctx context.Context, raw string) (resp models.Response) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("resolve panicked", zap.Any("panic", rec))
			resp = models.Response{Text: ErrorMessage}
		}
	}()

	cmd := Parse(raw)
	message := strings.ToLower(strings.TrimSpace(raw))

	// 1. live stock lookup
	if cmd.Command == StockCommand && cmd.Args != "" {
		symbol := strings.ToUpper(cmd.FirstArg())
		r.logger.Debug("resolving stock command", zap.String("symbol", symbol))
		return r.resolveStock(ctx, symbol)
	}

	// 2. exact trigger
	if e, ok := r.kb.Exact(message); ok {
		r.logger.Debug("exact knowledge match", zap.String("trigger", e.Trigger))
		return models.Response{Text: e.Answer}
	}

	// 3. first trigger contained in the message
	if e, ok := r.kb.Contains(message); ok {
		r.logger.Debug("substring knowledge match", zap.String("trigger", e.Trigger))
		return models.Response{Text: e.Answer}
	}

	// 4. "what is ..." / "explain ..."
	if strings.HasPrefix(message, prefixWhatIs) || strings.HasPrefix(message, prefixExplain) {
		if term := definitionTerm(message); term != "" {
			r.logger.Debug("definition query", zap.String("term", term))
			if e, ok := r.kb.Exact(term); ok {
				return models.Response{Text: ExplainPrefix(term) + e.Answer}
			}
			return models.Response{Text: ExplainPrefix(term) + FallbackMessage}
		}
	}

	// 5. fallback
	r.logger.Debug("no match, using fallback")
	return models.Response{Text: FallbackMessage}
}

// definitionTerm removes both prefix phrases, whichever one the message
// actually starts with, and trims what is left.
func definitionTerm(message string) string {
	term := strings.Replace(message, prefixWhatIs, "", 1)
	term = strings.Replace(term, prefixExplain, "", 1)
	return strings.TrimSpace(term)
}

// resolveStock fetches quote and history and shapes the combined reply
func (r *Resolver) resolveStock(ctx context.Context, symbol string) models.Response {
	if r.source == nil {
		r.logger.Warn("no quote source configured")
		return models.Response{Text: FetchFailedMessage(symbol)}
	}

	res := r.fetch(ctx, symbol)

	if res.quoteErr != nil {
		log := r.logger.With(zap.String("symbol", symbol), zap.Error(res.quoteErr))
		switch {
		case apierrors.IsRateLimitError(res.quoteErr):
			log.Warn("quote rate limited")
			return models.Response{Text: RateLimitMessage}
		case apierrors.IsNotFoundError(res.quoteErr):
			log.Info("quote not found")
			return models.Response{Text: NotFoundMessage(symbol)}
		default:
			log.Warn("quote fetch failed")
			return models.Response{Text: FetchFailedMessage(symbol)}
		}
	}

	resp := models.Response{Text: FormatQuote(res.quote)}

	if res.historyErr != nil {
		r.logger.Warn("history fetch failed, replying without chart",
			zap.String("symbol", symbol), zap.Error(res.historyErr))
		return resp
	}
	if len(res.history) > 0 {
		resp.Chart = &models.ChartPayload{Symbol: symbol, Series: res.history}
	}

	return resp
}

// fetchResult holds both lookups; either half may have failed
type fetchResult struct {
	quote      *models.Quote
	quoteErr   error
	history    []models.PricePoint
	historyErr error
}

// fetch issues the quote and history calls, in parallel when enabled.
// Neither result depends on the other, so both orders give the same reply.
func (r *Resolver) fetch(ctx context.Context, symbol string) fetchResult {
	var res fetchResult

	if !r.concurrent {
		res.quote, res.quoteErr = r.source.FetchQuote(ctx, symbol)
		res.history, res.historyErr = r.source.FetchHistory(ctx, symbol)
		return res
	}

	// Errors are kept per call instead of returned so one failure
	// does not discard the other result.
	var g errgroup.Group
	g.Go(func() error {
		defer recoverInto(&res.quoteErr)
		res.quote, res.quoteErr = r.source.FetchQuote(ctx, symbol)
		return nil
	})
	g.Go(func() error {
		defer recoverInto(&res.historyErr)
		res.history, res.historyErr = r.source.FetchHistory(ctx, symbol)
		return nil
	})
	_ = g.Wait()

	return res
}

// recoverInto turns a panic in a fetch goroutine into an error, since the
// recover in Resolve cannot see panics on other goroutines.
func recoverInto(err *error) {
	if rec := recover(); rec != nil {
		*err = fmt.Errorf("fetch panicked: %v", rec)
	}
}
