package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"bizsuite/internal/requestctx"
)

const requestIDHeader = "X-Request-ID"

// maxRequestIDLen bounds what we accept from clients before minting our own.
const maxRequestIDLen = 64

// RequestID reuses a well-formed inbound X-Request-ID or mints a UUID, puts
// it on the request context, and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := sanitizeRequestID(r.Header.Get(requestIDHeader))
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, reqID)
		ctx := requestctx.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sanitizeRequestID returns id when it is non-empty, within length bounds,
// and made of safe characters, else "". Anything a client sends ends up in
// logs and response headers, so the alphabet stays narrow.
func sanitizeRequestID(id string) string {
	if id == "" || len(id) > maxRequestIDLen {
		return ""
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_' || c == '.':
		default:
			return ""
		}
	}
	return id
}

func GetRequestID(ctx context.Context) string {
	return requestctx.GetRequestID(ctx)
}
