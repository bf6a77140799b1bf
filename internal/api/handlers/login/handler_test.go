package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LessonsService/internal/api/handlers"
	"github.com/m04kA/SMC-LessonsService/internal/service/students"
	"github.com/m04kA/SMC-LessonsService/internal/service/students/models"
)

type MockAuthenticator struct{ mock.Mock }

func (m *MockAuthenticator) Authenticate(ctx context.Context, creds students.AuthCredentials) (*models.StudentResponse, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudentResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func doRequest(t *testing.T, authenticator *MockAuthenticator, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(authenticator, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handlers.ErrorResponse {
	t.Helper()
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandle_Success(t *testing.T) {
	authenticator := new(MockAuthenticator)
	authenticator.On("Authenticate", mock.Anything, students.AuthCredentials{Username: "masha", Password: "secret"}).
		Return(&models.StudentResponse{ID: 7, Username: "masha", FirstName: "Мария"}, nil)

	rec := doRequest(t, authenticator, `{"username":"masha","password":"secret"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.StudentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "masha", resp.Username)
	authenticator.AssertExpectations(t)
}

func TestHandle_InvalidCredentials(t *testing.T) {
	authenticator := new(MockAuthenticator)
	authenticator.On("Authenticate", mock.Anything, mock.Anything).
		Return(nil, students.ErrInvalidCredentials)

	rec := doRequest(t, authenticator, `{"username":"masha","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, handlers.CodeInvalidCredentials, decodeError(t, rec).Error.Code)
}

func TestHandle_MalformedBody(t *testing.T) {
	rec := doRequest(t, new(MockAuthenticator), `{"username":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, handlers.CodeMalformedInput, decodeError(t, rec).Error.Code)
}

func TestHandle_ServiceError(t *testing.T) {
	authenticator := new(MockAuthenticator)
	authenticator.On("Authenticate", mock.Anything, mock.Anything).
		Return(nil, errors.New("db down"))

	rec := doRequest(t, authenticator, `{"username":"masha","password":"secret"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, handlers.CodeInternal, decodeError(t, rec).Error.Code)
}
