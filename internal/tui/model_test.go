package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/diogo/finchat/internal/history"
	"github.com/diogo/finchat/internal/knowledge"
	"github.com/diogo/finchat/internal/models"
	"github.com/diogo/finchat/internal/render"
)

// fakeResolver returns a fixed response and records what it was asked
type fakeResolver struct {
	mu       sync.Mutex
	resp     models.Response
	messages []string
}

func (f *fakeResolver) Resolve(ctx context.Context, raw string) models.Response {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, raw)
	return f.resp
}

func newTestChatModel(t *testing.T, resp models.Response) (Model, *fakeResolver) {
	t.Helper()
	resolver := &fakeResolver{resp: resp}
	m := NewChatModel(context.Background(), resolver, history.NewLog(), ChatOptions{
		Render:    render.DefaultOptions(),
		Knowledge: knowledge.Default(),
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model), resolver
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func enter(m Model, text string) (Model, tea.Cmd) {
	m.textarea.SetValue(text)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func TestNewChatModel(t *testing.T) {
	m := NewChatModel(context.Background(), &fakeResolver{}, nil, ChatOptions{})

	if m.log == nil {
		t.Error("a nil log should be replaced with an empty one")
	}
	if m.opts.Logger == nil {
		t.Error("logger should default to a no-op logger")
	}
	if m.loading || m.ready {
		t.Error("new model should be idle and not ready")
	}
	if m.Init() == nil {
		t.Error("Init should start the cursor blink and spinner")
	}
}

func TestModel_WindowSize(t *testing.T) {
	m, _ := newTestChatModel(t, models.Response{})

	if !m.ready {
		t.Fatal("model should be ready after WindowSizeMsg")
	}
	if m.width != 100 || m.height != 40 {
		t.Errorf("size = %dx%d, want 100x40", m.width, m.height)
	}
	if m.viewport.Width != 96 {
		t.Errorf("viewport width = %d, want 96", m.viewport.Width)
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	if h := updated.(Model).viewport.Height; h != 5 {
		t.Errorf("viewport height = %d, want minimum 5", h)
	}
}

func TestModel_SubmitAndRespond(t *testing.T) {
	resp := models.Response{Text: "A stock is a share."}
	m, resolver := newTestChatModel(t, resp)

	m, cmd := enter(m, "  what is a stock  ")
	if cmd == nil {
		t.Fatal("submit should return a command")
	}
	if !m.loading {
		t.Error("model should be loading after submit")
	}
	if m.log.Len() != 1 {
		t.Fatalf("log length = %d, want 1", m.log.Len())
	}
	if first := m.log.Entries()[0]; first.FromAssistant || first.Text != "what is a stock" {
		t.Errorf("user entry = %+v", first)
	}
	if m.textarea.Value() != "" {
		t.Error("input should be cleared on submit")
	}

	msg := m.resolve("what is a stock")()
	rm, ok := msg.(responseMsg)
	if !ok {
		t.Fatalf("resolve produced %T, want responseMsg", msg)
	}
	if len(resolver.messages) != 1 || resolver.messages[0] != "what is a stock" {
		t.Errorf("resolver saw %v", resolver.messages)
	}

	updated, _ := m.Update(rm)
	m = updated.(Model)
	if m.loading {
		t.Error("loading should clear when the response arrives")
	}
	entries := m.log.Entries()
	if last := entries[len(entries)-1]; !last.FromAssistant || last.Text != resp.Text {
		t.Errorf("assistant entry = %+v", last)
	}
}

func TestModel_ResponseWithChart(t *testing.T) {
	chart := &models.ChartPayload{Symbol: "AAPL", Series: []models.PricePoint{
		{Period: "2024-01", Price: 100}, {Period: "2024-02", Price: 110},
	}}
	m, _ := newTestChatModel(t, models.Response{})

	updated, _ := m.Update(responseMsg{resp: models.Response{Text: "quote", Chart: chart}})
	m = updated.(Model)

	if entries := m.log.Entries(); entries[len(entries)-1].Chart != chart {
		t.Error("chart should be stored on the assistant entry")
	}
	if !strings.Contains(ansi.Strip(m.viewport.View()), "AAPL") {
		t.Error("viewport should draw the chart caption")
	}
}

func TestModel_BlankInputIgnored(t *testing.T) {
	m, resolver := newTestChatModel(t, models.Response{})

	m, cmd := enter(m, "   ")
	if cmd != nil {
		t.Error("blank input should not produce a command")
	}
	if m.loading || m.log.Len() != 0 || len(resolver.messages) != 0 {
		t.Error("blank input should be ignored")
	}
}

func TestModel_InputDisabledWhileLoading(t *testing.T) {
	m, _ := newTestChatModel(t, models.Response{})
	m, _ = enter(m, "what is a bond")

	t.Run("enter is ignored", func(t *testing.T) {
		next, cmd := enter(m, "what is an etf")
		if cmd != nil {
			t.Error("enter while loading should do nothing")
		}
		if next.log.Len() != 1 {
			t.Errorf("log length = %d, want 1", next.log.Len())
		}
	})

	t.Run("typing does not reach the input", func(t *testing.T) {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
		if v := updated.(Model).textarea.Value(); v != "" {
			t.Errorf("textarea = %q, want empty", v)
		}
	})

	t.Run("esc does not quit", func(t *testing.T) {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if isQuit(cmd) {
			t.Error("esc while loading should not quit")
		}
	})

	t.Run("ctrl+c quits", func(t *testing.T) {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		if !isQuit(cmd) {
			t.Error("ctrl+c should always quit")
		}
	})
}

func TestModel_EscQuitsWhenIdle(t *testing.T) {
	m, _ := newTestChatModel(t, models.Response{})
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc}); !isQuit(cmd) {
		t.Error("esc should quit when idle")
	}
}

func TestModel_LocalCommands(t *testing.T) {
	t.Run("exit words quit", func(t *testing.T) {
		for _, word := range []string{"exit", "quit", "/quit", "EXIT"} {
			m, resolver := newTestChatModel(t, models.Response{})
			_, cmd := enter(m, word)
			if !isQuit(cmd) {
				t.Errorf("%q should quit", word)
			}
			if len(resolver.messages) != 0 {
				t.Errorf("%q should not reach the resolver", word)
			}
		}
	})

	t.Run("help lists triggers", func(t *testing.T) {
		m, _ := newTestChatModel(t, models.Response{})
		m, _ = enter(m, "/help")

		if !strings.Contains(m.notice, "stock <SYMBOL>") {
			t.Errorf("notice = %q", m.notice)
		}
		if !strings.Contains(m.notice, "what is a stock") {
			t.Error("help should list the knowledge triggers")
		}
		if m.log.Len() != 0 {
			t.Error("/help should not be logged")
		}
	})

	t.Run("export without path shows usage", func(t *testing.T) {
		m, _ := newTestChatModel(t, models.Response{})
		m, _ = enter(m, "/export")
		if !strings.Contains(m.notice, "Usage") {
			t.Errorf("notice = %q", m.notice)
		}
	})

	t.Run("export writes the transcript", func(t *testing.T) {
		m, _ := newTestChatModel(t, models.Response{})
		m.log.Append(models.NewUserEntry("what is a stock"))
		m.log.Append(models.NewAssistantEntry(models.Response{Text: "A share."}))

		path := filepath.Join(t.TempDir(), "out", "chat.md")
		m, _ = enter(m, "/export "+path)

		if m.err != nil {
			t.Fatalf("export error = %v", m.err)
		}
		if !strings.Contains(m.notice, "2 messages") {
			t.Errorf("notice = %q", m.notice)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if !strings.Contains(string(data), "A share.") {
			t.Error("exported file should contain the transcript")
		}
	})
}

func TestModel_View(t *testing.T) {
	m := NewChatModel(context.Background(), &fakeResolver{}, nil, ChatOptions{})
	if !strings.Contains(m.View(), "Initializing") {
		t.Error("view before sizing should show the initializing text")
	}

	m, _ = newTestChatModel(t, models.Response{})
	view := m.View()
	if !strings.Contains(view, "Welcome to finchat") {
		t.Error("empty log should show the welcome screen")
	}
	if !strings.Contains(view, "You") {
		t.Error("idle view should show the input label")
	}

	m, _ = enter(m, "what is a stock")
	if view := m.View(); !strings.Contains(view, "looking that up") {
		t.Error("loading view should show the animation")
	}

	m.loading = false
	m.err = errors.New("boom")
	if view := m.View(); !strings.Contains(view, "boom") {
		t.Error("view should show the error")
	}
}
