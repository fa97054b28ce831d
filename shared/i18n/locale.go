package i18n

import (
	"strings"
	"time"

	"github.com/dfryer1193/portfolio/blog/domain"
)

const (
	// CookieName is the cookie that persists the visitor's locale preference.
	CookieName = "locale"
	// CookieMaxAge is how long the preference is kept.
	CookieMaxAge = 365 * 24 * time.Hour
)

// ResolveLocale maps a persisted preference to a supported locale. Anything unrecognized resolves to the default.
func ResolveLocale(preference string) domain.Locale {
	if l, ok := domain.ParseLocale(strings.ToLower(strings.TrimSpace(preference))); ok {
		return l
	}
	return domain.DefaultLocale
}
