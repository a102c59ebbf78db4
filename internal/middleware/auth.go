package middleware

import (
	"net/http"
	"strings"

	"github.com/emilhuseynli/cardpay-backend/internal/api/httpx"
	"github.com/emilhuseynli/cardpay-backend/internal/auth"
	repo "github.com/emilhuseynli/cardpay-backend/internal/repository"
	"github.com/emilhuseynli/cardpay-backend/internal/session"
)

// AuthMiddleware turns a bearer access token into a session.Actor.
// The actor (user id, email, active card) is resolved once here and
// travels in the request context; nothing identity-shaped is stored
// outside the request.
type AuthMiddleware struct {
	tm       *auth.TokenManager
	accounts repo.Accounts
}

func NewAuthMiddleware(tm *auth.TokenManager, accounts repo.Accounts) *AuthMiddleware {
	return &AuthMiddleware{tm: tm, accounts: accounts}
}

func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token", nil)
			return
		}
		token := strings.TrimSpace(ah[len("Bearer "):])

		claims, isRefresh, err := m.tm.ParseAny(token)
		if err != nil || isRefresh {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid access token", nil)
			return
		}

		actor := session.Actor{UserID: claims.UserID, Email: claims.Email}
		if acc, err := m.accounts.GetByOwner(r.Context(), claims.UserID); err == nil {
			actor.Card = acc.CardNumber
		}

		next.ServeHTTP(w, r.WithContext(session.WithActor(r.Context(), actor)))
	})
}
