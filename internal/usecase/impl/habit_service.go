// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"stride/config"
	deliverycontext "stride/internal/delivery/context"
	"stride/internal/domain/entity"
	domainerrors "stride/internal/domain/errors"
	"stride/internal/domain/repository"
	"stride/internal/domain/service"
	"stride/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultShareCodeAttempts = 5

// habitService implements the HabitUsecase interface. All mutations run
// inside a transaction scoped to the owning user's state; reads go straight
// through the repositories.
type habitService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	habitRepo        repository.HabitRepository
	codeGenerator    service.ShareCodeGenerator
	qrcodeService    service.QRCodeService
	maxCodeAttempts  int
	logger           *slog.Logger
}

// HabitServiceParams holds dependencies for HabitService, injected by Fx.
type HabitServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	UserRepo      repository.UserRepository
	HabitRepo     repository.HabitRepository
	CodeGenerator service.ShareCodeGenerator
	QRCodeService service.QRCodeService
	Config        *config.Config
	Logger        *slog.Logger
}

// NewHabitService is the constructor for habitService. It receives all dependencies as interfaces.
func NewHabitService(params HabitServiceParams) usecase.HabitUsecase {
	maxCodeAttempts := defaultShareCodeAttempts
	if params.Config != nil && params.Config.ShareCode != nil && params.Config.ShareCode.MaxAttempts > 0 {
		maxCodeAttempts = params.Config.ShareCode.MaxAttempts
	}

	return &habitService{
		txManager:       params.TxManager,
		userRepo:        params.UserRepo,
		habitRepo:       params.HabitRepo,
		codeGenerator:   params.CodeGenerator,
		qrcodeService:   params.QRCodeService,
		maxCodeAttempts: maxCodeAttempts,
		logger:          params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *habitService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AddHabit creates a new habit for the owner with a freshly allocated share code.
func (srv *habitService) AddHabit(ctx context.Context, ownerID uuid.UUID, input *usecase.AddHabitInput) (*entity.Habit, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("habit name is required")
	}

	var created *entity.Habit
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		habitRepo := repoFactory.HabitRepo()

		user, err := userRepo.FindByID(ctx, ownerID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("habit owner does not exist")
			}

			return errors.Wrap(err, "failed to find habit owner")
		}

		code, err := srv.allocateShareCode(ctx, habitRepo)
		if err != nil {
			return err
		}

		habit := entity.NewHabit(name, code, time.Now().UTC())
		if err := habitRepo.AppendHabit(ctx, user.ID, habit); err != nil {
			return errors.Wrap(err, "failed to append habit")
		}
		created = habit

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to add habit", slog.Any("ownerID", ownerID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Habit created", slog.Any("ownerID", ownerID), slog.Any("habitID", created.ID))

	return created, nil
}

// allocateShareCode draws random codes until one is unused. The unique index
// on share_code remains the final arbiter under concurrent inserts.
func (srv *habitService) allocateShareCode(ctx context.Context, habitRepo repository.HabitRepository) (string, error) {
	for attempt := 0; attempt < srv.maxCodeAttempts; attempt++ {
		code, err := srv.codeGenerator.Generate()
		if err != nil {
			return "", errors.Wrap(err, "failed to generate share code")
		}

		_, err = habitRepo.FindOwnerByShareCode(ctx, code)
		if errors.Is(err, repository.ErrShareCodeNotFound) {
			return code, nil
		}
		if err != nil {
			return "", errors.Wrap(err, "failed to check share code availability")
		}
	}

	return "", domainerrors.ErrShareCodeExhausted.WrapMessage("share code space too contended")
}

// LogFailure records a relapse on the habit.
func (srv *habitService) LogFailure(ctx context.Context, ownerID, habitID uuid.UUID) (*entity.Habit, error) {
	var updated *entity.Habit
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		habit, err := srv.loadOwnedHabit(ctx, repoFactory, ownerID, habitID)
		if err != nil {
			return err
		}

		habit.LogFailure(time.Now().UTC())
		if err := repoFactory.HabitRepo().UpdateHabit(ctx, ownerID, habit); err != nil {
			return errors.Wrap(err, "failed to persist failure")
		}
		updated = habit

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to log failure", slog.Any("habitID", habitID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Failure logged", slog.Any("ownerID", ownerID), slog.Any("habitID", habitID))

	return updated, nil
}

// LogAlmostRelapse records a resisted urge and returns the running count
// since the last failure.
func (srv *habitService) LogAlmostRelapse(ctx context.Context, ownerID, habitID uuid.UUID, note string) (int, error) {
	var count int
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		habit, err := srv.loadOwnedHabit(ctx, repoFactory, ownerID, habitID)
		if err != nil {
			return err
		}

		count = habit.LogAlmostRelapse(time.Now().UTC(), note)
		if err := repoFactory.HabitRepo().UpdateHabit(ctx, ownerID, habit); err != nil {
			return errors.Wrap(err, "failed to persist almost relapse")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to log almost relapse", slog.Any("habitID", habitID), slog.Any("error", err))

		return 0, err
	}

	return count, nil
}

// DeleteHabit removes the habit and, through the cascade on habit_shares,
// every grant pointing at it.
func (srv *habitService) DeleteHabit(ctx context.Context, ownerID, habitID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := srv.loadOwnedHabit(ctx, repoFactory, ownerID, habitID); err != nil {
			return err
		}

		if err := repoFactory.HabitRepo().DeleteHabit(ctx, ownerID, habitID); err != nil {
			if errors.Is(err, repository.ErrHabitNotFound) {
				return domainerrors.ErrHabitNotFound.WrapMessage("habit already removed")
			}

			return errors.Wrap(err, "failed to delete habit")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to delete habit", slog.Any("habitID", habitID), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Info("Habit deleted", slog.Any("ownerID", ownerID), slog.Any("habitID", habitID))

	return nil
}

// ShareHabit resolves the share code across all users and grants the caller
// read access. Sharing a habit with its own owner is allowed; only an exact
// duplicate grant is rejected.
func (srv *habitService) ShareHabit(ctx context.Context, receiverID uuid.UUID, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("share code is required")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		habitRepo := repoFactory.HabitRepo()

		receiver, err := userRepo.FindByID(ctx, receiverID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("receiving user does not exist")
			}

			return errors.Wrap(err, "failed to find receiving user")
		}

		owner, err := habitRepo.FindOwnerByShareCode(ctx, code)
		if err != nil {
			if errors.Is(err, repository.ErrShareCodeNotFound) {
				return domainerrors.ErrInvalidShareCode.WrapMessage("no habit carries this code")
			}

			return errors.Wrap(err, "failed to resolve share code")
		}

		habit, ok := owner.HabitByShareCode(code)
		if !ok {
			return domainerrors.ErrInvalidShareCode.WrapMessage("no habit carries this code")
		}

		if habit.IsSharedWith(receiver.ID) {
			return domainerrors.ErrAlreadyShared.WrapMessage("habit already shared with this user")
		}

		if err := habitRepo.AddShare(ctx, habit.ID, receiver.ID); err != nil {
			if errors.Is(err, repository.ErrShareExists) {
				return domainerrors.ErrAlreadyShared.WrapMessage("habit already shared with this user")
			}

			return errors.Wrap(err, "failed to add share")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to share habit", slog.Any("receiverID", receiverID), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Info("Habit shared", slog.Any("receiverID", receiverID))

	return nil
}

// GetMyHabits returns the owner's habits with derived fields computed against
// a single wall-clock reading, so streaks are consistent within one response.
func (srv *habitService) GetMyHabits(ctx context.Context, ownerID uuid.UUID) (*usecase.MyHabitsOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("habit owner does not exist")
		}

		return nil, errors.Wrap(err, "failed to find habit owner")
	}

	names, err := srv.userRepo.FindNamesByIDs(ctx, user.SharedUserIDs())
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve sharing partner names")
	}

	now := time.Now().UTC()
	views := make([]*usecase.HabitView, 0, len(user.Habits))
	for _, habit := range user.Habits {
		views = append(views, buildHabitView(habit, now, names))
	}

	return &usecase.MyHabitsOutput{
		User:   usecase.OwnerSummary{ID: user.ID, Name: user.Name},
		Habits: views,
	}, nil
}

// buildHabitView derives the owner-facing projection of a habit. Viewer ids
// whose accounts no longer resolve are dropped from the names list, so it
// may be shorter than SharedWith.
func buildHabitView(habit *entity.Habit, now time.Time, names map[uuid.UUID]string) *usecase.HabitView {
	sharedWithNames := make([]string, 0, len(habit.SharedWith))
	for _, id := range habit.SharedWith {
		if name, ok := names[id]; ok {
			sharedWithNames = append(sharedWithNames, name)
		}
	}

	return &usecase.HabitView{
		ID:                  habit.ID,
		Name:                habit.Name,
		StartDate:           habit.StartDate,
		LastFailureDate:     habit.LastFailureDate,
		History:             habit.History,
		ShareCode:           habit.ShareCode,
		SharedWith:          habit.SharedWith,
		StreakDays:          habit.StreakDays(now),
		AlmostRelapsesCount: len(habit.AlmostRelapses),
		AlmostRelapses:      habit.AlmostRelapses,
		SharedWithNames:     sharedWithNames,
	}
}

// GetSharedHabits returns the summaries of all habits shared with the viewer.
func (srv *habitService) GetSharedHabits(ctx context.Context, viewerID uuid.UUID) ([]*usecase.SharedHabitView, error) {
	viewer, err := srv.userRepo.FindByID(ctx, viewerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("viewing user does not exist")
		}

		return nil, errors.Wrap(err, "failed to find viewing user")
	}

	owners, err := srv.habitRepo.FindOwnersSharingWith(ctx, viewer.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find shared habits")
	}

	now := time.Now().UTC()
	views := make([]*usecase.SharedHabitView, 0)
	for _, owner := range owners {
		for _, habit := range owner.Habits {
			// The query narrows to owners with at least one grant; each habit
			// still has to prove membership for this viewer.
			if !habit.IsSharedWith(viewer.ID) {
				continue
			}

			views = append(views, &usecase.SharedHabitView{
				Owner:               owner.Name,
				Name:                habit.Name,
				StartDate:           habit.StartDate,
				LastFailureDate:     habit.LastFailureDate,
				StreakDays:          habit.StreakDays(now),
				AlmostRelapsesCount: len(habit.AlmostRelapses),
			})
		}
	}

	return views, nil
}

// ShareCodeQR renders the habit's share code as a PNG QR image for the owner.
func (srv *habitService) ShareCodeQR(ctx context.Context, ownerID, habitID uuid.UUID) ([]byte, error) {
	user, err := srv.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("habit owner does not exist")
		}

		return nil, errors.Wrap(err, "failed to find habit owner")
	}

	habit, ok := user.HabitByID(habitID)
	if !ok {
		return nil, domainerrors.ErrHabitNotFound.WrapMessage("habit does not belong to this user")
	}

	png, err := srv.qrcodeService.GenerateShareQR(habit.ShareCode)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate share code QR")
	}

	return png, nil
}

// loadOwnedHabit fetches the owner inside the current transaction and picks
// the habit out of their collection, mapping both miss cases to domain errors.
func (srv *habitService) loadOwnedHabit(ctx context.Context, repoFactory repository.RepositoryFactory, ownerID, habitID uuid.UUID) (*entity.Habit, error) {
	user, err := repoFactory.UserRepo().FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("habit owner does not exist")
		}

		return nil, errors.Wrap(err, "failed to find habit owner")
	}

	habit, ok := user.HabitByID(habitID)
	if !ok {
		return nil, domainerrors.ErrHabitNotFound.WrapMessage("habit does not belong to this user")
	}

	return habit, nil
}
