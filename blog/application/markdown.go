package application

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

const DefaultHighlightStyle = "github-dark"

type relativeLinkTransformer struct {
	domain string
}

func (t *relativeLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch v := n.(type) {
		case *ast.Image:
			dest := string(v.Destination)
			if isRelativeLink(dest) {
				v.Destination = []byte(t.domain + "/images/" + path.Base(dest))
			}
		case *ast.Link:
			dest := string(v.Destination)
			if !isRelativeLink(dest) || strings.HasPrefix(dest, "#") {
				break
			}
			if strings.HasSuffix(dest, markdownExt) {
				// Links to other post files resolve to the post's page
				v.Destination = []byte(t.domain + "/blog/" + strings.TrimSuffix(path.Base(dest), markdownExt))
			} else {
				v.Destination = []byte(t.domain + path.Clean("/"+dest))
			}
		}

		return ast.WalkContinue, nil
	})
}

func isRelativeLink(dest string) bool {
	if dest == "" {
		return false
	}

	if strings.HasPrefix(dest, "/") {
		return !strings.HasPrefix(dest, "//")
	}

	if strings.HasPrefix(dest, "./") || strings.HasPrefix(dest, "../") {
		return true
	}

	return !strings.Contains(dest, ":")
}

// MarkdownRenderer defines the interface for converting a post body to HTML.
// The output is not sanitized: raw HTML in the markdown is emitted as written.
type MarkdownRenderer interface {
	Render(markdown []byte) (string, error)
	// HighlightCSS writes the stylesheet for the classes emitted on highlighted code blocks.
	HighlightCSS(w io.Writer) error
}

type markdownConfig struct {
	gfm           bool
	style         string
	guessLanguage bool
	linkBase      string
}

type MarkdownOption func(*markdownConfig)

// WithGFM toggles the GitHub-flavored extensions (tables, strikethrough, autolinks, task lists).
func WithGFM(enabled bool) MarkdownOption {
	return func(c *markdownConfig) {
		c.gfm = enabled
	}
}

// WithHighlightStyle selects the chroma style used by HighlightCSS.
func WithHighlightStyle(style string) MarkdownOption {
	return func(c *markdownConfig) {
		if style != "" {
			c.style = style
		}
	}
}

// WithGuessLanguage enables lexer detection for fenced code blocks that declare no language.
func WithGuessLanguage(enabled bool) MarkdownOption {
	return func(c *markdownConfig) {
		c.guessLanguage = enabled
	}
}

// WithLinkBase rewrites relative links and images to absolute URLs under base.
func WithLinkBase(base string) MarkdownOption {
	return func(c *markdownConfig) {
		c.linkBase = strings.TrimSuffix(base, "/")
	}
}

type MarkdownRendererImpl struct {
	renderer goldmark.Markdown
	style    string
}

func NewMarkdownRenderer(opts ...MarkdownOption) MarkdownRenderer {
	cfg := markdownConfig{
		gfm:   true,
		style: DefaultHighlightStyle,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	extensions := []goldmark.Extender{
		highlighting.NewHighlighting(
			highlighting.WithStyle(cfg.style),
			highlighting.WithGuessLanguage(cfg.guessLanguage),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
				chromahtml.TabWidth(2),
			),
		),
	}
	if cfg.gfm {
		extensions = append(extensions, extension.GFM)
	}

	parserOpts := []parser.Option{parser.WithAutoHeadingID()}
	if cfg.linkBase != "" {
		parserOpts = append(parserOpts, parser.WithASTTransformers(
			util.Prioritized(&relativeLinkTransformer{domain: cfg.linkBase}, 100),
		))
	}

	renderer := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(parserOpts...),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	return &MarkdownRendererImpl{
		renderer: renderer,
		style:    cfg.style,
	}
}

func (r *MarkdownRendererImpl) Render(markdown []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.renderer.Convert(markdown, &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}

	return buf.String(), nil
}

func (r *MarkdownRendererImpl) HighlightCSS(w io.Writer) error {
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(w, styles.Get(r.style)); err != nil {
		return fmt.Errorf("failed to write highlight stylesheet: %w", err)
	}
	return nil
}
