package application

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dfryer1193/portfolio/blog/domain"
	"gopkg.in/yaml.v3"
)

const (
	maxDescriptionLength = 155
	wordsPerMinute       = 200
	untitledPost         = "Untitled Post"
)

var (
	slugStripRegex  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaceRegex  = regexp.MustCompile(`\s+`)
	slugDashesRegex = regexp.MustCompile(`-+`)
)

// Draft is a markdown document that has not been given front-matter yet.
type Draft struct {
	Markdown []byte
	Locale   domain.Locale
	Tags     []string
	Author   string
	// PublishDate, when set, schedules the post instead of publishing it immediately.
	PublishDate *time.Time
}

// PostFile is a scaffolded post ready to be written into the content store.
type PostFile struct {
	Locale   domain.Locale
	Name     string
	Slug     string
	Contents []byte
}

type draftFrontMatter struct {
	Title       string   `yaml:"title"`
	Date        string   `yaml:"date"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	ReadTime    string   `yaml:"readTime"`
	Author      string   `yaml:"author"`
	PublishDate string   `yaml:"publishDate,omitempty"`
}

// ScaffoldPost derives front-matter from a draft: the title from its first heading, the description
// from its first paragraph, and the read time from its word count. The file is named <date>-<slug>.md.
func ScaffoldPost(d Draft, now time.Time) (*PostFile, error) {
	if len(bytes.TrimSpace(d.Markdown)) == 0 {
		return nil, fmt.Errorf("draft is empty")
	}

	locale := d.Locale
	if locale == "" {
		locale = domain.DefaultLocale
	}

	title := extractPostTitle(d.Markdown)
	slug := slugify(title)
	if slug == "" {
		return nil, fmt.Errorf("could not derive a slug from title %q", title)
	}

	date := now.UTC().Format(time.DateOnly)
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}

	fm := draftFrontMatter{
		Title:       title,
		Date:        date,
		Description: extractSnippet(d.Markdown),
		Tags:        tags,
		ReadTime:    fmt.Sprintf("%d min", readTimeMinutes(d.Markdown)),
		Author:      orDefault(d.Author, DefaultAuthor),
	}
	if d.PublishDate != nil {
		fm.PublishDate = d.PublishDate.UTC().Format(time.RFC3339)
	}

	meta, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("failed to encode front-matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(frontMatterDelimiter + "\n")
	buf.Write(meta)
	buf.WriteString(frontMatterDelimiter + "\n\n")
	buf.Write(bytes.TrimLeft(d.Markdown, "\r\n"))

	name := date + "-" + slug
	return &PostFile{
		Locale:   locale,
		Name:     name + markdownExt,
		Slug:     name,
		Contents: buf.Bytes(),
	}, nil
}

func extractPostTitle(markdown []byte) string {
	for _, line := range strings.Split(string(markdown), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		title, found := strings.CutPrefix(trimmed, "# ")
		if !found {
			return untitledPost
		}
		return strings.TrimSpace(title)
	}

	return untitledPost
}

func extractSnippet(markdown []byte) string {
	lines := strings.Split(string(markdown), "\n")
	var paragraphLines []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Skip headings before we find content
		if strings.HasPrefix(trimmed, "#") {
			if len(paragraphLines) > 0 {
				break
			}
			continue
		}

		if trimmed == "" {
			if len(paragraphLines) > 0 {
				break
			}
			continue
		}

		// Stop at code blocks, horizontal rules, lists, tables
		if strings.HasPrefix(trimmed, "```") ||
			strings.HasPrefix(trimmed, "---") ||
			strings.HasPrefix(trimmed, "***") ||
			strings.HasPrefix(trimmed, "- ") ||
			strings.HasPrefix(trimmed, "* ") ||
			strings.HasPrefix(trimmed, "+ ") ||
			strings.HasPrefix(trimmed, "|") {
			if len(paragraphLines) > 0 {
				break
			}
			continue
		}

		paragraphLines = append(paragraphLines, trimmed)
	}

	if len(paragraphLines) == 0 {
		return ""
	}

	snippet := strings.Join(paragraphLines, " ")

	if utf8.RuneCountInString(snippet) > maxDescriptionLength {
		snippet = string([]rune(snippet)[:maxDescriptionLength])
		if lastSpace := strings.LastIndexAny(snippet, " \t"); lastSpace > 0 {
			snippet = snippet[:lastSpace]
		}
		snippet += "..."
	}

	return snippet
}

func readTimeMinutes(markdown []byte) int {
	words := len(strings.Fields(string(markdown)))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

func slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugStripRegex.ReplaceAllString(slug, "")
	slug = slugSpaceRegex.ReplaceAllString(strings.TrimSpace(slug), "-")
	slug = slugDashesRegex.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
