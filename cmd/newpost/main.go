package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dfryer1193/portfolio/blog/application"
	"github.com/dfryer1193/portfolio/blog/domain"
	"github.com/dfryer1193/portfolio/blog/persistence"
	"github.com/dfryer1193/portfolio/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	localeFlag := flag.String("locale", string(domain.DefaultLocale), "locale partition for the post (en or pt)")
	in := flag.String("in", "-", "markdown draft to read, or - for stdin")
	tags := flag.String("tags", "", "comma-separated tags")
	author := flag.String("author", "", "post author (defaults to DEFAULT_AUTHOR)")
	publish := flag.String("publish", "", "schedule the post: RFC3339 timestamp or YYYY-MM-DD")
	dir := flag.String("dir", "", "content directory (defaults to CONTENT_DIR)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	locale, ok := domain.ParseLocale(*localeFlag)
	if !ok {
		log.Fatal().Str("locale", *localeFlag).Msg("Unsupported locale")
	}

	markdown, err := readDraft(*in)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read draft")
	}

	draft := application.Draft{
		Markdown: markdown,
		Locale:   locale,
		Tags:     splitTags(*tags),
		Author:   firstNonEmpty(*author, cfg.DefaultAuthor),
	}

	if *publish != "" {
		at, err := parsePublishDate(*publish)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid publish date")
		}
		draft.PublishDate = &at
	}

	post, err := application.ScaffoldPost(draft, time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to scaffold post")
	}

	store := persistence.NewFileContentStore(firstNonEmpty(*dir, cfg.ContentDir))
	path, err := store.WriteEntry(string(post.Locale), post.Name, post.Contents)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to write post")
	}

	log.Info().Str("path", path).Str("slug", post.Slug).Msg("Post created")
}

func readDraft(in string) ([]byte, error) {
	if in == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(in)
}

func splitTags(value string) []string {
	var tags []string
	for _, tag := range strings.Split(value, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func parsePublishDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is neither RFC3339 nor YYYY-MM-DD", value)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
