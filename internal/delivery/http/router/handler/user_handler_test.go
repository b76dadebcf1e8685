package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	domainerrors "stride/internal/domain/errors"
	mockUC "stride/internal/mocks/usecase"
	"stride/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserHandlerFixture() (*UserHandler, *mockUC.MockUserUsecase) {
	uc := new(mockUC.MockUserUsecase)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewUserHandler(uc, logger), uc
}

func TestUserHandler_Register(t *testing.T) {
	h, uc := newUserHandlerFixture()

	out := &usecase.RegisterOutput{ID: uuid.New(), Name: "New User", Email: "new@example.com"}
	uc.On("Register", mock.Anything, mock.AnythingOfType("*usecase.RegisterInput")).Return(out, nil)

	body := `{"name":"New User","email":"new@example.com","password":"hunter2hunter2"}`
	c, rec := newTestContext(http.MethodPost, "/auth/register", body, uuid.Nil)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "new@example.com")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestUserHandler_Register_InvalidEmail(t *testing.T) {
	h, uc := newUserHandlerFixture()

	body := `{"name":"New User","email":"not-an-email","password":"hunter2hunter2"}`
	c, _ := newTestContext(http.MethodPost, "/auth/register", body, uuid.Nil)
	err := h.Register(c)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
	uc.AssertNotCalled(t, "Register")
}

func TestUserHandler_Login(t *testing.T) {
	h, uc := newUserHandlerFixture()

	uc.On("Login", mock.Anything, mock.AnythingOfType("*usecase.LoginInput")).
		Return(&usecase.LoginOutput{Token: "signed.jwt.token"}, nil)

	body := `{"email":"owner@example.com","password":"hunter2hunter2"}`
	c, rec := newTestContext(http.MethodPost, "/auth/login", body, uuid.Nil)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "signed.jwt.token")
}

func TestUserHandler_Login_BadCredentials(t *testing.T) {
	h, uc := newUserHandlerFixture()

	uc.On("Login", mock.Anything, mock.AnythingOfType("*usecase.LoginInput")).
		Return(nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch"))

	body := `{"email":"owner@example.com","password":"wrong-password"}`
	c, _ := newTestContext(http.MethodPost, "/auth/login", body, uuid.Nil)
	err := h.Login(c)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
}

func TestHealthCheck(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/health", "", uuid.Nil)
	require.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
