package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stride/internal/delivery/http/middleware"
	"stride/internal/delivery/http/validator"
	"stride/internal/domain/entity"
	domainerrors "stride/internal/domain/errors"
	mockUC "stride/internal/mocks/usecase"
	"stride/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newHabitHandlerFixture() (*HabitHandler, *mockUC.MockHabitUsecase) {
	uc := new(mockUC.MockHabitUsecase)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewHabitHandler(uc, logger), uc
}

func newTestContext(method, target, body string, userID uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != uuid.Nil {
		c.Set(middleware.KeyUserID, userID)
	}

	return c, rec
}

func TestHabitHandler_Add(t *testing.T) {
	h, uc := newHabitHandlerFixture()
	userID := uuid.New()

	habit := entity.NewHabit("no caffeine", "K7Q2ZD", time.Now().UTC())
	uc.On("AddHabit", mock.Anything, userID, &usecase.AddHabitInput{Name: "no caffeine"}).
		Return(habit, nil)

	c, rec := newTestContext(http.MethodPost, "/habits/add", `{"name":"no caffeine"}`, userID)
	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), "K7Q2ZD")
}

func TestHabitHandler_Add_MissingName(t *testing.T) {
	h, uc := newHabitHandlerFixture()

	c, _ := newTestContext(http.MethodPost, "/habits/add", `{}`, uuid.New())
	err := h.Add(c)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
	uc.AssertNotCalled(t, "AddHabit")
}

func TestHabitHandler_Add_MissingIdentity(t *testing.T) {
	h, uc := newHabitHandlerFixture()

	c, rec := newTestContext(http.MethodPost, "/habits/add", `{"name":"x"}`, uuid.Nil)
	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	uc.AssertNotCalled(t, "AddHabit")
}

func TestHabitHandler_Mine(t *testing.T) {
	h, uc := newHabitHandlerFixture()
	userID := uuid.New()

	uc.On("GetMyHabits", mock.Anything, userID).Return(&usecase.MyHabitsOutput{
		User: usecase.OwnerSummary{ID: userID, Name: "Owner"},
		Habits: []*usecase.HabitView{
			{Name: "no smoking", StreakDays: 4, SharedWithNames: []string{"Alice"}},
		},
	}, nil)

	c, rec := newTestContext(http.MethodGet, "/habits/mine", "", userID)
	require.NoError(t, h.Mine(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"streakDays":4`)
	assert.Contains(t, rec.Body.String(), `"sharedWithNames":["Alice"]`)
}

func TestHabitHandler_Fail(t *testing.T) {
	h, uc := newHabitHandlerFixture()
	userID := uuid.New()
	habitID := uuid.New()

	habit := entity.NewHabit("no smoking", "ABC123", time.Now().UTC())
	habit.LogFailure(time.Now().UTC())
	uc.On("LogFailure", mock.Anything, userID, habitID).Return(habit, nil)

	c, rec := newTestContext(http.MethodPost, "/habits/fail", `{"habitId":"`+habitID.String()+`"}`, userID)
	require.NoError(t, h.Fail(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHabitHandler_Fail_MalformedHabitID(t *testing.T) {
	h, uc := newHabitHandlerFixture()

	c, _ := newTestContext(http.MethodPost, "/habits/fail", `{"habitId":"not-a-uuid"}`, uuid.New())
	err := h.Fail(c)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
	uc.AssertNotCalled(t, "LogFailure")
}

func TestHabitHandler_Urge(t *testing.T) {
	h, uc := newHabitHandlerFixture()
	userID := uuid.New()
	habitID := uuid.New()

	uc.On("LogAlmostRelapse", mock.Anything, userID, habitID, "tough day").Return(3, nil)

	body := `{"habitId":"` + habitID.String() + `","note":"tough day"}`
	c, rec := newTestContext(http.MethodPost, "/habits/urge", body, userID)
	require.NoError(t, h.Urge(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"almostRelapsesCount":3`)
}

func TestHabitHandler_Delete(t *testing.T) {
	h, uc := newHabitHandlerFixture()
	userID := uuid.New()
	habitID := uuid.New()

	uc.On("DeleteHabit", mock.Anything, userID, habitID).Return(nil)

	c, rec := newTestContext(http.MethodDelete, "/habits/"+habitID.String(), "", userID)
	c.SetParamNames("habitId")
	c.SetParamValues(habitID.String())
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHabitHandler_Delete_MalformedID(t *testing.T) {
	h, uc := newHabitHandlerFixture()

	c, rec := newTestContext(http.MethodDelete, "/habits/oops", "", uuid.New())
	c.SetParamNames("habitId")
	c.SetParamValues("oops")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "DeleteHabit")
}

func TestHabitHandler_Share(t *testing.T) {
	h, uc := newHabitHandlerFixture()
	userID := uuid.New()

	uc.On("ShareHabit", mock.Anything, userID, "ABC123").Return(nil)

	c, rec := newTestContext(http.MethodPost, "/habits/share", `{"code":"ABC123"}`, userID)
	require.NoError(t, h.Share(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHabitHandler_Share_DuplicateGrant(t *testing.T) {
	h, uc := newHabitHandlerFixture()
	userID := uuid.New()

	uc.On("ShareHabit", mock.Anything, userID, "ABC123").
		Return(domainerrors.ErrAlreadyShared.WrapMessage("habit already shared with this user"))

	c, _ := newTestContext(http.MethodPost, "/habits/share", `{"code":"ABC123"}`, userID)
	err := h.Share(c)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ALREADY_SHARED", appErr.ErrorCode())
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
}

func TestHabitHandler_Shared(t *testing.T) {
	h, uc := newHabitHandlerFixture()
	userID := uuid.New()

	uc.On("GetSharedHabits", mock.Anything, userID).Return([]*usecase.SharedHabitView{
		{Owner: "Alice", Name: "no smoking", StreakDays: 12, AlmostRelapsesCount: 1},
	}, nil)

	c, rec := newTestContext(http.MethodGet, "/habits/shared", "", userID)
	require.NoError(t, h.Shared(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"owner":"Alice"`)
	assert.Contains(t, rec.Body.String(), `"streakDays":12`)
	// Viewer responses carry no share code and no viewer list.
	assert.NotContains(t, rec.Body.String(), "shareCode")
	assert.NotContains(t, rec.Body.String(), "sharedWith")
}

func TestHabitHandler_QR(t *testing.T) {
	h, uc := newHabitHandlerFixture()
	userID := uuid.New()
	habitID := uuid.New()
	png := []byte{0x89, 0x50, 0x4E, 0x47}

	uc.On("ShareCodeQR", mock.Anything, userID, habitID).Return(png, nil)

	c, rec := newTestContext(http.MethodGet, "/habits/"+habitID.String()+"/qr", "", userID)
	c.SetParamNames("habitId")
	c.SetParamValues(habitID.String())
	require.NoError(t, h.QR(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, png, rec.Body.Bytes())
}
