package middlewarectx

import (
	"net/http"
	"net/url"
	"strings"
)

// protectedPrefixes страницы панели, требующие действующей сессии.
var protectedPrefixes = []string{
	"/admin/dashboard",
	"/admin/programs",
	"/admin/profile",
	"/admin/testimonies",
	"/admin/free-users",
	"/admin/premium-users",
}

// loginPath страница входа панели.
const loginPath = "/admin/login"

// dashboardPath страница по умолчанию для залогиненного администратора.
const dashboardPath = "/admin/dashboard"

func isProtected(path string) bool {
	for _, prefix := range protectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// AdminGateMiddleware возвращает страничный гейт админской панели.
//
// Запрос защищённой страницы без валидного токена уводится на страницу
// входа с callbackUrl, чтобы после входа вернуть администратора туда,
// куда он шёл. Залогиненный администратор со страницы входа уводится
// на панель. Остальные пути проходят насквозь.
func AdminGateMiddleware(authService Service, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path

			hasSession := false
			if tokenStr := tokenFromRequest(r, cookieName); tokenStr != "" {
				if _, err := authService.ValidateToken(r.Context(), tokenStr); err == nil {
					hasSession = true
				}
			}

			switch {
			case isProtected(path) && !hasSession:
				target := loginPath + "?callbackUrl=" + url.QueryEscape(path)
				http.Redirect(w, r, target, http.StatusTemporaryRedirect)
			case path == loginPath && hasSession:
				http.Redirect(w, r, dashboardPath, http.StatusTemporaryRedirect)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
