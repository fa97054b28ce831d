package rest

import (
	"context"
	"io"

	"github.com/dfryer1193/portfolio/blog/domain"
	"github.com/dfryer1193/portfolio/shared/i18n"
	"github.com/gin-gonic/gin"
)

// PostRenderer turns a post body into HTML and serves the matching highlight stylesheet.
type PostRenderer interface {
	RenderPost(ctx context.Context, post *domain.Post) (string, error)
	HighlightCSS(w io.Writer) error
}

// Handler serves the blog and locale endpoints. All dependencies are injected.
type Handler struct {
	posts    domain.PostRepository
	renderer PostRenderer
	catalog  i18n.Catalog
}

func NewHandler(posts domain.PostRepository, renderer PostRenderer, catalog i18n.Catalog) *Handler {
	if catalog == nil {
		catalog = i18n.DefaultCatalog()
	}
	return &Handler{
		posts:    posts,
		renderer: renderer,
		catalog:  catalog,
	}
}

func NewApi(router *gin.Engine, h *Handler) {
	postsV1 := router.Group("posts/v1")
	{
		postsV1.GET("/", h.GetPosts)
		postsV1.GET("/:locale/:slug", h.GetPost)
	}

	router.GET("/locale", h.GetLocale)
	router.POST("/locale", h.SetLocale)

	router.GET("/assets/highlight.css", h.GetHighlightCSS)
}
