package api

import (
	"time"

	"github.com/dfryer1193/portfolio/blog/domain"
	"github.com/dfryer1193/portfolio/shared/i18n"
)

type PostSummary struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Author      string     `json:"author"`
	Date        string     `json:"date"`
	PublishDate *time.Time `json:"publishDate,omitempty"`
	Tags        []string   `json:"tags"`
	ReadTime    string     `json:"readTime"`
	Language    string     `json:"language"`
	Image       string     `json:"image,omitempty"`
}

type Post struct {
	PostSummary
	Content string `json:"content"`
	HTML    string `json:"html"`
}

type LocaleRequest struct {
	Locale string `json:"locale" binding:"required"`
}

type LocaleResponse struct {
	Locale  string       `json:"locale"`
	Strings i18n.Strings `json:"strings"`
}

type SetLocaleResponse struct {
	Success bool   `json:"success"`
	Locale  string `json:"locale"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// NewPostSummary converts a domain post to its listing form, without the body.
func NewPostSummary(p domain.Post) PostSummary {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return PostSummary{
		Slug:        p.Slug,
		Title:       p.Title,
		Description: p.Description,
		Author:      p.Author,
		Date:        p.Date,
		PublishDate: p.PublishDate,
		Tags:        tags,
		ReadTime:    p.ReadTime,
		Language:    string(p.Language),
		Image:       p.Image,
	}
}

// NewPost converts a domain post and its rendered body.
func NewPost(p domain.Post, html string) Post {
	return Post{
		PostSummary: NewPostSummary(p),
		Content:     p.Content,
		HTML:        html,
	}
}
