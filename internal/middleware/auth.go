package middleware

import (
	"net/http"
	"strings"

	"github.com/mbeaulieu/courses/internal/auth"
	"github.com/mbeaulieu/courses/internal/session"
)

const sessionCookieName = "courses_session"

// RequireSession resolves the session token from the Authorization
// header (Bearer) or the session cookie and populates the auth
// context. Requests without a live session get 401.
func RequireSession(reg *session.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				if cookie, err := r.Cookie(sessionCookieName); err == nil {
					token = cookie.Value
				}
			}
			if token == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			sess, ok := reg.Get(token)
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			user := sess.User()
			ac := auth.AuthContext{
				UserID:   user.ID,
				Username: user.Username,
				IsAdmin:  user.IsAdmin,
				Token:    token,
			}
			next.ServeHTTP(w, r.WithContext(auth.WithAuth(r.Context(), ac)))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
