package commands

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/diogo/finchat/internal/assistant"
	"github.com/diogo/finchat/internal/config"
	"github.com/diogo/finchat/internal/knowledge"
	"github.com/diogo/finchat/internal/logging"
	"github.com/diogo/finchat/internal/render"
)

// globalFlags are the persistent flags shared by every command
type globalFlags struct {
	apiKey        string
	baseURL       string
	knowledgeFile string
	verbose       bool
}

// apply overrides config values with flags that were set
func (f *globalFlags) apply(cfg *config.Config) {
	if f.apiKey != "" {
		cfg.APIKey = f.apiKey
	}
	if f.baseURL != "" {
		cfg.BaseURL = f.baseURL
	}
	if f.knowledgeFile != "" {
		cfg.KnowledgeFile = f.knowledgeFile
	}
	if f.verbose {
		cfg.Verbose = true
	}
}

// loadConfig resolves the effective config: flags > env (.env included) > file > defaults
func loadConfig(flags *globalFlags) (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	flags.apply(&cfg)
	cfg.Normalize()
	return cfg, nil
}

// applyTheme activates the configured TUI theme. Charts use it in both modes.
func applyTheme(cfg config.Config) bool {
	return cfg.TUITheme != "" && render.SetTUITheme(cfg.TUITheme)
}

// newLogger builds the process logger. console selects stderr output when
// verbose is on; the chat TUI always logs to the file.
func newLogger(cfg config.Config, console bool, stderr io.Writer) *zap.Logger {
	path, err := config.GetLogPath()
	if err != nil {
		path = ""
	}

	logger, err := logging.New(logging.Options{
		Path:    path,
		Level:   cfg.LogLevel,
		Verbose: console && cfg.Verbose,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Warning: logging disabled: %v\n", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

// loadKnowledge returns the built-in table plus the user's knowledge file
func loadKnowledge(cfg config.Config, logger *zap.Logger, stderr io.Writer) (*knowledge.Base, error) {
	kb, skipped, err := knowledge.Load(cfg.KnowledgeFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge file: %w", err)
	}
	for _, trigger := range skipped {
		logger.Warn("duplicate trigger ignored", zap.String("trigger", trigger))
		fmt.Fprintf(stderr, "Warning: trigger %q is already defined, ignoring it\n", trigger)
	}
	return kb, nil
}

// newResolver wires the quote source and knowledge table into a resolver
func newResolver(deps *Dependencies, cfg config.Config, kb *knowledge.Base, logger *zap.Logger) (*assistant.Resolver, error) {
	source, err := deps.NewSource(cfg, logger)
	if err != nil {
		return nil, err
	}

	return assistant.NewResolver(source,
		assistant.WithKnowledge(kb),
		assistant.WithConcurrentFetch(cfg.ConcurrentFetch),
		assistant.WithLogger(logger.Named("resolver")),
	), nil
}
