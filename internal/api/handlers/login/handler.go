package login

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LessonsService/internal/api/handlers"
	"github.com/m04kA/SMC-LessonsService/internal/service/students"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCredentials = "неверный логин или пароль"
)

type Handler struct {
	authenticator Authenticator
	logger        Logger
}

func NewHandler(authenticator Authenticator, logger Logger) *Handler {
	return &Handler{
		authenticator: authenticator,
		logger:        logger,
	}
}

// Handle POST /api/v1/auth/login
// Проверяет учетные данные и возвращает профиль студента; сессию
// по нему заводит внешний шлюз.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeMalformedInput, msgInvalidRequestBody)
		return
	}

	result, err := h.authenticator.Authenticate(r.Context(), students.AuthCredentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, students.ErrInvalidCredentials) {
			h.logger.Warn("POST /auth/login - Invalid credentials: username=%s", req.Username)
			handlers.RespondError(w, http.StatusUnauthorized, handlers.CodeInvalidCredentials, msgInvalidCredentials)
			return
		}
		h.logger.Error("POST /auth/login - Failed to authenticate: username=%s, error=%v", req.Username, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /auth/login - Student authenticated: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
