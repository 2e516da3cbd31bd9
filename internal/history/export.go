package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/diogo/finchat/internal/models"
)

// ExportFormat represents the format for exporting conversations
type ExportFormat string

const (
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatJSON     ExportFormat = "json"
)

// ExportOptions configures how conversations are exported
type ExportOptions struct {
	Format       ExportFormat
	Title        string
	IncludeChart bool // Render chart series as a table / include them in JSON
}

// DefaultExportOptions returns sensible defaults for export
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Format:       ExportFormatMarkdown,
		Title:        "finchat transcript",
		IncludeChart: true,
	}
}

// FormatForPath picks JSON for a .json extension and Markdown otherwise
func FormatForPath(path string) ExportFormat {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ExportFormatJSON
	}
	return ExportFormatMarkdown
}

// ExportToMarkdown renders entries as a Markdown transcript
func ExportToMarkdown(entries []models.ConversationEntry, opts ExportOptions) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# ")
	sb.WriteString(opts.Title)
	sb.WriteString("\n\n")

	if len(entries) > 0 {
		sb.WriteString("**Started:** ")
		sb.WriteString(entries[0].Timestamp.Format("2006-01-02 15:04:05"))
		sb.WriteString("\n")
	}
	sb.WriteString("**Messages:** ")
	sb.WriteString(fmt.Sprintf("%d", len(entries)))
	sb.WriteString("\n\n---\n\n")

	for i, entry := range entries {
		role := "User"
		if entry.FromAssistant {
			role = "Assistant"
		}

		sb.WriteString("## ")
		sb.WriteString(role)
		if !entry.Timestamp.IsZero() {
			sb.WriteString(" (")
			sb.WriteString(entry.Timestamp.Format("15:04:05"))
			sb.WriteString(")")
		}
		sb.WriteString("\n\n")

		sb.WriteString(entry.Text)
		sb.WriteString("\n")

		if opts.IncludeChart && entry.Chart != nil && len(entry.Chart.Series) > 0 {
			sb.WriteString("\n")
			writeChartTable(&sb, entry.Chart)
		}

		// Separator between messages (except last)
		if i < len(entries)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return sb.String()
}

func writeChartTable(sb *strings.Builder, chart *models.ChartPayload) {
	fmt.Fprintf(sb, "**%s monthly close**\n\n", chart.Symbol)
	sb.WriteString("| Month | Close |\n")
	sb.WriteString("|---|---:|\n")
	for _, p := range chart.Series {
		fmt.Fprintf(sb, "| %s | %.2f |\n", p.Period, p.Price)
	}
}

type exportEntry struct {
	Role      string               `json:"role"`
	Text      string               `json:"text"`
	Chart     *models.ChartPayload `json:"chart,omitempty"`
	Timestamp time.Time            `json:"timestamp"`
}

type exportTranscript struct {
	Title      string        `json:"title"`
	ExportedAt time.Time     `json:"exported_at"`
	Messages   []exportEntry `json:"messages"`
}

// ExportToJSON renders entries as an indented JSON document
func ExportToJSON(entries []models.ConversationEntry, opts ExportOptions) ([]byte, error) {
	export := exportTranscript{
		Title:      opts.Title,
		ExportedAt: time.Now(),
		Messages:   make([]exportEntry, len(entries)),
	}

	for i, entry := range entries {
		export.Messages[i] = exportEntry{
			Role:      entry.Role(),
			Text:      entry.Text,
			Timestamp: entry.Timestamp,
		}
		if opts.IncludeChart {
			export.Messages[i].Chart = entry.Chart
		}
	}

	return json.MarshalIndent(export, "", "  ")
}

// Export renders the log in the requested format
func (l *Log) Export(opts ExportOptions) ([]byte, error) {
	entries := l.Entries()
	switch opts.Format {
	case ExportFormatJSON:
		return ExportToJSON(entries, opts)
	case ExportFormatMarkdown, "":
		return []byte(ExportToMarkdown(entries, opts)), nil
	default:
		return nil, fmt.Errorf("unknown export format: %s", opts.Format)
	}
}

// ExportToFile writes the log to path, choosing the format from its extension
func (l *Log) ExportToFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("export path is empty")
	}

	opts := DefaultExportOptions()
	opts.Format = FormatForPath(path)

	data, err := l.Export(opts)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
