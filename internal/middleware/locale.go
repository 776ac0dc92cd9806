package middleware

import (
	"context"
	"net/http"

	"github.com/exampilot/exampilot/internal/utils"
)

type ctxKey int

const localeKey ctxKey = 1

// Locale extracts the locale from the lang query param or Accept-Language
// and stores it in the request context. Japanese is the home locale.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		qLang := r.URL.Query().Get("lang")
		aLang := r.Header.Get("Accept-Language")
		locale := utils.DetermineLocale(qLang, aLang, []string{"ja", "en"}, "ja")
		ctx := context.WithValue(r.Context(), localeKey, locale)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LocaleFromContext retrieves the locale stored by Locale.
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(localeKey).(string); ok {
		return v
	}
	return "ja"
}
