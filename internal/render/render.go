package render

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// renderers holds a sync.Pool of glamour renderers per Options value.
// A TermRenderer must not render concurrently, so each call borrows one.
var renderers sync.Map // Options -> *sync.Pool

func borrow(opts Options) (*glamour.TermRenderer, *sync.Pool, error) {
	v, _ := renderers.LoadOrStore(opts, &sync.Pool{})
	pool := v.(*sync.Pool)
	if r, ok := pool.Get().(*glamour.TermRenderer); ok {
		return r, pool, nil
	}
	r, err := newRenderer(opts)
	return r, pool, err
}

func newRenderer(opts Options) (*glamour.TermRenderer, error) {
	rendererOpts := []glamour.TermRendererOption{
		glamour.WithStylePath(ResolveStyle(opts.Style)),
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}
	if opts.EnableEmoji {
		rendererOpts = append(rendererOpts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		rendererOpts = append(rendererOpts, glamour.WithPreservedNewLines())
	}
	return glamour.NewTermRenderer(rendererOpts...)
}

// Markdown renders markdown content for terminal display.
func Markdown(content string, opts Options) (string, error) {
	renderer, pool, err := borrow(opts)
	if err != nil {
		return "", err
	}
	defer pool.Put(renderer)

	return renderer.Render(content)
}

// Answer renders an assistant reply, falling back to the raw text when
// glamour fails. Surrounding blank lines added by glamour are trimmed.
func Answer(text string, opts Options) string {
	out, err := Markdown(text, opts)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
