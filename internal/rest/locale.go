package rest

import (
	"net/http"

	"github.com/dfryer1193/portfolio/api"
	"github.com/dfryer1193/portfolio/blog/domain"
	"github.com/dfryer1193/portfolio/shared/i18n"
	"github.com/gin-gonic/gin"
)

// GetLocale reports the locale persisted in the visitor's cookie along with its UI strings.
func (h *Handler) GetLocale(c *gin.Context) {
	preference, _ := c.Cookie(i18n.CookieName)
	locale := i18n.ResolveLocale(preference)

	c.JSON(http.StatusOK, api.LocaleResponse{
		Locale:  string(locale),
		Strings: h.catalog.For(locale),
	})
}

// SetLocale persists a locale preference for one year.
func (h *Handler) SetLocale(c *gin.Context) {
	var req api.LocaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid locale"})
		return
	}

	locale, ok := domain.ParseLocale(req.Locale)
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid locale"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(i18n.CookieName, string(locale), int(i18n.CookieMaxAge.Seconds()), "/", "", false, false)

	c.JSON(http.StatusOK, api.SetLocaleResponse{Success: true, Locale: string(locale)})
}
