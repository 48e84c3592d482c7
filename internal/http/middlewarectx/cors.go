package middlewarectx

import (
	"net/http"

	"github.com/makingkings/mentorship-api/internal/config"
)

// CORSMiddleware возвращает middleware с фиксированной тройкой
// CORS-заголовков: единственный разрешённый origin, список методов
// и список заголовков. Preflight завершается сразу со статусом 200.
func CORSMiddleware(cfg config.CORS) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.AllowedOrigin)
			w.Header().Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
