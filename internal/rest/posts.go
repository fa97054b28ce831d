package rest

import (
	"bytes"
	"net/http"

	"github.com/dfryer1193/portfolio/api"
	"github.com/dfryer1193/portfolio/blog/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// GetPosts lists visible posts newest first. The optional locale query narrows the listing to one locale.
func (h *Handler) GetPosts(c *gin.Context) {
	var locale domain.Locale
	if raw, ok := c.GetQuery("locale"); ok {
		parsed, valid := domain.ParseLocale(raw)
		if !valid {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid locale"})
			return
		}
		locale = parsed
	}

	posts, err := h.posts.ListPosts(c.Request.Context(), locale)
	if err != nil {
		log.Error().Err(err).Str("locale", string(locale)).Msg("Failed to list posts")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to list posts"})
		return
	}

	summaries := make([]api.PostSummary, 0, len(posts))
	for _, p := range posts {
		summaries = append(summaries, api.NewPostSummary(p))
	}

	c.JSON(http.StatusOK, summaries)
}

func (h *Handler) GetPost(c *gin.Context) {
	locale, ok := domain.ParseLocale(c.Param("locale"))
	if !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Post not found"})
		return
	}
	slug := c.Param("slug")

	post, found := h.posts.GetPostBySlug(c.Request.Context(), slug, locale)
	if !found {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Post not found"})
		return
	}

	html, err := h.renderer.RenderPost(c.Request.Context(), post)
	if err != nil {
		log.Error().Err(err).Str("locale", string(locale)).Str("slug", slug).Msg("Failed to render post")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to render post"})
		return
	}

	c.JSON(http.StatusOK, api.NewPost(*post, html))
}

func (h *Handler) GetHighlightCSS(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.renderer.HighlightCSS(&buf); err != nil {
		log.Error().Err(err).Msg("Failed to write highlight stylesheet")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "text/css; charset=utf-8", buf.Bytes())
}
