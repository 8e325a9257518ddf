package http

import "net/http"

// NotFoundHandler is the mux fallback. Unknown paths get the same JSON
// error envelope the rest of the API speaks, not the stdlib plain-text
// 404.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})
}
