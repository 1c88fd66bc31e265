package middlewarex

import (
	"crypto/subtle"
	"net/http"
)

// AdminTokenHeader carries the console admin token.
const AdminTokenHeader = "X-Admin-Token"

// AdminAuth rejects requests without the admin token. An empty configured
// token rejects everything.
func AdminAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(AdminTokenHeader)
			if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
