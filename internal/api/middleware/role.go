package middleware

import (
	"net/http"

	"github.com/dkurganov/BSS-BookingService/internal/api/handlers"
	"github.com/dkurganov/BSS-BookingService/internal/domain"
)

const msgInsufficientRole = "недостаточно прав для выполнения операции"

// RequireRole пропускает только запросы от пользователей с одной из ролей.
// Должен стоять после Auth
func RequireRole(roles ...domain.UserRole) func(http.Handler) http.Handler {
	allowed := make(map[domain.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			if _, ok := allowed[user.Role]; !ok {
				handlers.RespondForbidden(w, msgInsufficientRole)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
