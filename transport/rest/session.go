package rest

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const sessionCookie = "tictactoe_session"

type sessionKey struct{}

// withSession makes sure every request carries a session id, issuing a new
// cookie when the browser has none or sends a malformed one.
func (that *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""

		if cookie, err := r.Cookie(sessionCookie); err == nil {
			if id, err := uuid.Parse(cookie.Value); err == nil {
				sessionID = id.String()
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			that.logger.Debug("new session", "session", sessionID)
		}

		ctx := context.WithValue(r.Context(), sessionKey{}, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(ctx context.Context) string {
	sessionID, _ := ctx.Value(sessionKey{}).(string)
	return sessionID
}
