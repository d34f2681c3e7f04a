package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/sessions"
)

const sessionName = "octofit-session"

type contextKey struct{}

var userIDKey contextKey

var store *sessions.CookieStore

// Init configures the cookie session store with the shared secret
func Init(secret string) {
	store = sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// SignIn stores the authenticated user id in the session cookie
func SignIn(w http.ResponseWriter, r *http.Request, userID int) error {
	session, _ := store.Get(r, sessionName)
	session.Values["user_id"] = userID
	return session.Save(r, w)
}

// SignOut clears the session
func SignOut(w http.ResponseWriter, r *http.Request) error {
	session, _ := store.Get(r, sessionName)
	delete(session.Values, "user_id")
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// Middleware rejects requests without a valid session and puts the
// authenticated user id into the request context
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, _ := store.Get(r, sessionName)
		userID, ok := session.Values["user_id"].(int)
		if !ok || userID == 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Authentication required"})
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID returns a context carrying the authenticated user id
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID returns the authenticated user id from the request context,
// or zero when the request is unauthenticated
func UserID(r *http.Request) int {
	userID, _ := r.Context().Value(userIDKey).(int)
	return userID
}
