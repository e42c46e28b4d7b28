package auth

import (
	"net/http"

	"postboard-go/internal/common/response"
	userctx "postboard-go/internal/context"

	"github.com/go-chi/jwtauth/v5"
	"github.com/rs/zerolog/log"
)

// Authenticator rejects requests without a valid token with a JSON 401.
// It must run after jwtauth.Verifier.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			if err != nil {
				log.Debug().
					Err(err).
					Str("path", r.URL.Path).
					Msg("rejected unauthenticated request")
			}
			response.Error(w, http.StatusUnauthorized, response.CodeUnauthorized, "Not authenticated")
			return
		}

		user := userctx.GetUserFromContext(r.Context())
		if user == nil {
			response.Error(w, http.StatusUnauthorized, response.CodeUnauthorized, "Not authenticated")
			return
		}

		next.ServeHTTP(w, r.WithContext(userctx.WithUser(r.Context(), user)))
	})
}
