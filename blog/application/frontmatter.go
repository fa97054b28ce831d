package application

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const frontMatterDelimiter = "---"

var errUnterminatedFrontMatter = errors.New("front-matter block is not terminated")

// frontMatter holds the recognized metadata keys. Unknown keys are ignored.
type frontMatter struct {
	Title       string  `yaml:"title"`
	Date        string  `yaml:"date"`
	Description string  `yaml:"description"`
	Tags        tagList `yaml:"tags"`
	ReadTime    string  `yaml:"readTime"`
	Author      string  `yaml:"author"`
	PublishDate string  `yaml:"publishDate"`
	Image       string  `yaml:"image"`
}

// tagList accepts either a YAML sequence or a single comma-separated scalar.
type tagList []string

func (t *tagList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var tags []string
		for _, tag := range strings.Split(value.Value, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
		*t = tags
		return nil
	case yaml.SequenceNode:
		var tags []string
		if err := value.Decode(&tags); err != nil {
			return err
		}
		*t = tags
		return nil
	default:
		return fmt.Errorf("tags: unsupported YAML node at line %d", value.Line)
	}
}

// splitFrontMatter separates a leading `---` delimited YAML block from the body.
// A file that does not open with a delimiter line has no metadata and is all body.
func splitFrontMatter(raw []byte) (meta []byte, body string, err error) {
	text := strings.TrimPrefix(string(raw), "\ufeff")

	firstLine, rest, found := strings.Cut(text, "\n")
	if strings.TrimRight(firstLine, "\r") != frontMatterDelimiter {
		return nil, text, nil
	}
	if !found {
		return nil, "", errUnterminatedFrontMatter
	}

	var metaBuf bytes.Buffer
	for {
		line, next, more := strings.Cut(rest, "\n")
		if strings.TrimRight(line, "\r") == frontMatterDelimiter {
			return metaBuf.Bytes(), next, nil
		}
		if !more {
			return nil, "", errUnterminatedFrontMatter
		}
		metaBuf.WriteString(line)
		metaBuf.WriteByte('\n')
		rest = next
	}
}

// parseFrontMatter splits raw file text and decodes the metadata block.
func parseFrontMatter(raw []byte) (frontMatter, string, error) {
	var fm frontMatter

	meta, body, err := splitFrontMatter(raw)
	if err != nil {
		return fm, "", err
	}

	if len(bytes.TrimSpace(meta)) == 0 {
		return fm, body, nil
	}

	if err := yaml.Unmarshal(meta, &fm); err != nil {
		return fm, "", fmt.Errorf("failed to decode front-matter: %w", err)
	}

	return fm, body, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// parseTimestamp accepts the ISO 8601 forms listed in timestampLayouts. Values without a zone are UTC.
// Anything else, including free-form dates like "January 3, 2024", is reported as unparseable.
func parseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
