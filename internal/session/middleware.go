package session

import (
	"context"
	"net/http"
)

// Header carries the session identifier between client and server.
const Header = "X-Session-ID"

type contextKey string

const sessionIDKey contextKey = "session_id"

// ContextWithID returns ctx carrying the session identifier.
func ContextWithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// IDFromContext returns the session identifier stored in ctx, or "".
func IDFromContext(ctx context.Context) string {
	id, ok := ctx.Value(sessionIDKey).(string)
	if !ok {
		return ""
	}
	return id
}

// Middleware resolves the client session: it reads the X-Session-ID header,
// mints a new identifier when absent, echoes it on the response, and stores
// it in the request context for handlers to look up their session.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		id := r.Header.Get(Header)
		if id == "" {
			id = NewSessionID()
		}

		ctx := ContextWithID(r.Context(), id)
		w.Header().Set(Header, id)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromRequest returns the request's session from st, using the identifier
// placed in the context by Middleware.
func FromRequest(st *Store, r *http.Request) *Session {
	return st.Get(IDFromContext(r.Context()))
}
