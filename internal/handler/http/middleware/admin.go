package middleware

import (
	"net/http"

	"github.com/factorydesk/workforce-backend-go/internal/domain/auth"
	"github.com/factorydesk/workforce-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AdminOnly rejects kiosk tokens. Kiosks may only punch and read.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != string(auth.RoleAdmin) {
			response.HandleError(w, auth.ErrAdminOnly)
			return
		}

		next.ServeHTTP(w, r)
	})
}
