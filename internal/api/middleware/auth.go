package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-LessonsService/internal/api/handlers"
)

// Аутентификация доверяет заголовкам внешнего шлюза:
// X-User-ID несёт идентификатор пользователя, X-User-Role: admin - роль.
// Проверка сессии выполняется до этого сервиса.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	roleAdmin = "admin"
)

type contextKey string

const (
	userIDKey  contextKey = "userID"
	isAdminKey contextKey = "isAdmin"
)

// Auth требует валидный X-User-ID и кладет его в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, handlers.CodeAccessDenied, "missing "+HeaderUserID+" header")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, handlers.CodeAccessDenied, "invalid "+HeaderUserID+" header")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, isAdminKey, r.Header.Get(HeaderUserRole) == roleAdmin)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly пропускает только запросы с ролью администратора.
// Ставится после Auth.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			handlers.RespondForbidden(w, handlers.CodeAccessDenied, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserID возвращает идентификатор пользователя из контекста
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// IsAdmin возвращает признак администратора из контекста
func IsAdmin(ctx context.Context) bool {
	isAdmin, ok := ctx.Value(isAdminKey).(bool)
	return ok && isAdmin
}
