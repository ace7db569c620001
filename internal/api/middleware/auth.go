package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dkurganov/BSS-BookingService/internal/api/handlers"
	"github.com/dkurganov/BSS-BookingService/internal/domain"
)

const (
	userIDHeader = "X-User-ID"

	msgMissingUserID = "отсутствует заголовок X-User-ID"
	msgInvalidUserID = "некорректный заголовок X-User-ID"
	msgUserNotFound  = "пользователь не найден"
)

type contextKey string

const userContextKey contextKey = "auth.user"

// UserProvider интерфейс для загрузки учетной записи по ID
type UserProvider interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth аутентифицирует запрос по заголовку X-User-ID и кладет учетную
// запись в контекст. Механизм сессий вне сервиса; апстрим-прокси
// проставляет заголовок после своей аутентификации
type Auth struct {
	users  UserProvider
	logger Logger
}

// NewAuth создает middleware аутентификации
func NewAuth(users UserProvider, logger Logger) *Auth {
	return &Auth{users: users, logger: logger}
}

// Middleware возвращает http middleware аутентификации
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(userIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			a.logger.Warn("[Auth] Invalid %s header: %q", userIDHeader, raw)
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		user, err := a.users.GetByID(r.Context(), userID)
		if err != nil {
			a.logger.Warn("[Auth] Unknown user %d: %v", userID, err)
			handlers.RespondUnauthorized(w, msgUserNotFound)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext возвращает аутентифицированную учетную запись из контекста
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	return user, ok
}
