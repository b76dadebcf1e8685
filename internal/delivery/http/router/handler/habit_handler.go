package handler

import (
	"log/slog"
	"net/http"

	"stride/internal/delivery/http/middleware"
	"stride/internal/delivery/http/response"
	"stride/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HabitHandler holds dependencies for habit tracking and sharing handlers.
// All routes sit behind the auth middleware; the caller's identity comes
// exclusively from the validated token.
type HabitHandler struct {
	uc     usecase.HabitUsecase
	logger *slog.Logger
}

// NewHabitHandler is the constructor for HabitHandler, injected by Fx.
func NewHabitHandler(uc usecase.HabitUsecase, logger *slog.Logger) *HabitHandler {
	return &HabitHandler{
		uc:     uc,
		logger: logger,
	}
}

// Add handles the creation of a new habit.
func (h *HabitHandler) Add(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input usecase.AddHabitInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid habit input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	habit, err := h.uc.AddHabit(c.Request().Context(), userID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, habit, "Habit created successfully")
}

// Mine returns the caller's habits with derived fields.
func (h *HabitHandler) Mine(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	output, err := h.uc.GetMyHabits(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Habits retrieved successfully")
}

// Fail records a relapse on one of the caller's habits.
func (h *HabitHandler) Fail(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input usecase.HabitIDInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid failure input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}
	habitID, err := uuid.Parse(input.HabitID)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid habit id")
	}

	habit, err := h.uc.LogFailure(c.Request().Context(), userID, habitID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, habit, "Failure logged")
}

// Urge records a resisted urge on one of the caller's habits.
func (h *HabitHandler) Urge(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input usecase.LogAlmostRelapseInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid urge input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}
	habitID, err := uuid.Parse(input.HabitID)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid habit id")
	}

	count, err := h.uc.LogAlmostRelapse(c.Request().Context(), userID, habitID, input.Note)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int{"almostRelapsesCount": count}, "Urge logged")
}

// Delete removes one of the caller's habits.
func (h *HabitHandler) Delete(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	habitID, err := uuid.Parse(c.Param("habitId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid habit id")
	}

	if err := h.uc.DeleteHabit(c.Request().Context(), userID, habitID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Habit deleted")
}

// Share grants the caller read access to the habit behind a share code.
func (h *HabitHandler) Share(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input usecase.ShareHabitInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid share input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ShareHabit(c.Request().Context(), userID, input.Code); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Habit shared")
}

// Shared returns the summaries of habits other users share with the caller.
func (h *HabitHandler) Shared(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	views, err := h.uc.GetSharedHabits(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, views, "Shared habits retrieved successfully")
}

// QR renders the habit's share code as a PNG QR image.
func (h *HabitHandler) QR(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	habitID, err := uuid.Parse(c.Param("habitId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid habit id")
	}

	png, err := h.uc.ShareCodeQR(c.Request().Context(), userID, habitID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
