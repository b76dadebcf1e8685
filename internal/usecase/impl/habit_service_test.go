package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"stride/config"
	"stride/internal/domain/entity"
	"stride/internal/domain/repository"
	mockRepo "stride/internal/mocks/repository"
	mockSvc "stride/internal/mocks/service"
	"stride/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type habitServiceFixture struct {
	userRepo  *mockRepo.MockUserRepository
	habitRepo *mockRepo.MockHabitRepository
	codeGen   *mockSvc.MockShareCodeGenerator
	qrService *mockSvc.MockQRCodeService
	service   usecase.HabitUsecase
}

func newHabitServiceFixture(cfg *config.Config) *habitServiceFixture {
	if cfg == nil {
		cfg = &config.Config{}
	}

	f := &habitServiceFixture{
		userRepo:  new(mockRepo.MockUserRepository),
		habitRepo: new(mockRepo.MockHabitRepository),
		codeGen:   new(mockSvc.MockShareCodeGenerator),
		qrService: new(mockSvc.MockQRCodeService),
	}

	factory := &mockRepo.StubRepositoryFactory{Users: f.userRepo, Habits: f.habitRepo}
	f.service = NewHabitService(HabitServiceParams{
		TxManager:     &mockRepo.StubTransactionManager{Factory: factory},
		UserRepo:      f.userRepo,
		HabitRepo:     f.habitRepo,
		CodeGenerator: f.codeGen,
		QRCodeService: f.qrService,
		Config:        cfg,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return f
}

func testUser(habits ...*entity.Habit) *entity.User {
	return &entity.User{
		ID:     uuid.New(),
		Email:  "owner@example.com",
		Name:   "Owner",
		Habits: habits,
	}
}

func TestHabitService_AddHabit(t *testing.T) {
	f := newHabitServiceFixture(nil)
	ctx := context.Background()
	user := testUser()

	f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	f.codeGen.On("Generate").Return("K7Q2ZD", nil).Once()
	f.habitRepo.On("FindOwnerByShareCode", ctx, "K7Q2ZD").Return(nil, repository.ErrShareCodeNotFound)
	f.habitRepo.On("AppendHabit", ctx, user.ID, mock.AnythingOfType("*entity.Habit")).Return(nil)

	habit, err := f.service.AddHabit(ctx, user.ID, &usecase.AddHabitInput{Name: "  no caffeine  "})
	require.NoError(t, err)
	assert.Equal(t, "no caffeine", habit.Name)
	assert.Equal(t, "K7Q2ZD", habit.ShareCode)
	assert.Empty(t, habit.History)
	assert.Nil(t, habit.LastFailureDate)
	f.habitRepo.AssertExpectations(t)
}

func TestHabitService_AddHabit_RetriesOnCodeCollision(t *testing.T) {
	f := newHabitServiceFixture(nil)
	ctx := context.Background()
	user := testUser()

	f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	f.codeGen.On("Generate").Return("AAAAAA", nil).Once()
	f.codeGen.On("Generate").Return("BBBBBB", nil).Once()
	f.habitRepo.On("FindOwnerByShareCode", ctx, "AAAAAA").Return(testUser(), nil)
	f.habitRepo.On("FindOwnerByShareCode", ctx, "BBBBBB").Return(nil, repository.ErrShareCodeNotFound)
	f.habitRepo.On("AppendHabit", ctx, user.ID, mock.AnythingOfType("*entity.Habit")).Return(nil)

	habit, err := f.service.AddHabit(ctx, user.ID, &usecase.AddHabitInput{Name: "no sugar"})
	require.NoError(t, err)
	assert.Equal(t, "BBBBBB", habit.ShareCode)
	f.codeGen.AssertExpectations(t)
}

func TestHabitService_LogFailure(t *testing.T) {
	f := newHabitServiceFixture(nil)
	ctx := context.Background()

	habit := entity.NewHabit("no smoking", "ABC123", time.Now().UTC().Add(-72*time.Hour))
	habit.LogAlmostRelapse(time.Now().UTC().Add(-time.Hour), "close call")
	user := testUser(habit)

	f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	f.habitRepo.On("UpdateHabit", ctx, user.ID, habit).Return(nil)

	updated, err := f.service.LogFailure(ctx, user.ID, habit.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.LastFailureDate)
	assert.Len(t, updated.History, 1)
	assert.Empty(t, updated.AlmostRelapses)
	assert.Equal(t, 0, updated.StreakDays(time.Now().UTC()))
	f.habitRepo.AssertExpectations(t)
}

func TestHabitService_LogAlmostRelapse(t *testing.T) {
	f := newHabitServiceFixture(nil)
	ctx := context.Background()

	habit := entity.NewHabit("no smoking", "ABC123", time.Now().UTC())
	habit.LogAlmostRelapse(time.Now().UTC(), "first")
	user := testUser(habit)

	f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	f.habitRepo.On("UpdateHabit", ctx, user.ID, habit).Return(nil)

	count, err := f.service.LogAlmostRelapse(ctx, user.ID, habit.ID, "second")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Empty(t, habit.History)
	assert.Nil(t, habit.LastFailureDate)
}

func TestHabitService_DeleteHabit(t *testing.T) {
	f := newHabitServiceFixture(nil)
	ctx := context.Background()

	habit := entity.NewHabit("no smoking", "ABC123", time.Now().UTC())
	user := testUser(habit)

	f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	f.habitRepo.On("DeleteHabit", ctx, user.ID, habit.ID).Return(nil)

	require.NoError(t, f.service.DeleteHabit(ctx, user.ID, habit.ID))
	f.habitRepo.AssertExpectations(t)
}

func TestHabitService_ShareHabit_NormalizesCode(t *testing.T) {
	f := newHabitServiceFixture(nil)
	ctx := context.Background()

	habit := entity.NewHabit("no smoking", "ABC123", time.Now().UTC())
	owner := testUser(habit)
	receiver := testUser()

	f.userRepo.On("FindByID", ctx, receiver.ID).Return(receiver, nil)
	f.habitRepo.On("FindOwnerByShareCode", ctx, "ABC123").Return(owner, nil)
	f.habitRepo.On("AddShare", ctx, habit.ID, receiver.ID).Return(nil)

	require.NoError(t, f.service.ShareHabit(ctx, receiver.ID, "  abc123 "))
	f.habitRepo.AssertExpectations(t)
}

func TestHabitService_ShareHabit_OwnCodeIsAllowed(t *testing.T) {
	f := newHabitServiceFixture(nil)
	ctx := context.Background()

	habit := entity.NewHabit("no smoking", "ABC123", time.Now().UTC())
	owner := testUser(habit)

	f.userRepo.On("FindByID", ctx, owner.ID).Return(owner, nil)
	f.habitRepo.On("FindOwnerByShareCode", ctx, "ABC123").Return(owner, nil)
	f.habitRepo.On("AddShare", ctx, habit.ID, owner.ID).Return(nil)

	require.NoError(t, f.service.ShareHabit(ctx, owner.ID, "ABC123"))
}

func TestHabitService_GetMyHabits(t *testing.T) {
	f := newHabitServiceFixture(nil)
	ctx := context.Background()

	alice := uuid.New()
	deleted := uuid.New()

	habit := entity.NewHabit("no smoking", "ABC123", time.Now().UTC().Add(-5*24*time.Hour))
	habit.SharedWith = []uuid.UUID{alice, deleted}
	habit.LogAlmostRelapse(time.Now().UTC(), "tough day")
	fresh := entity.NewHabit("no sugar", "XYZ789", time.Now().UTC())
	user := testUser(habit, fresh)

	f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	f.userRepo.On("FindNamesByIDs", ctx, []uuid.UUID{alice, deleted}).
		Return(map[uuid.UUID]string{alice: "Alice"}, nil)

	out, err := f.service.GetMyHabits(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, out.User.ID)
	assert.Equal(t, "Owner", out.User.Name)
	require.Len(t, out.Habits, 2)

	first := out.Habits[0]
	assert.Equal(t, "no smoking", first.Name)
	assert.Equal(t, 5, first.StreakDays)
	assert.Equal(t, 1, first.AlmostRelapsesCount)
	// The deleted account drops out of the names but stays in SharedWith.
	assert.Equal(t, []string{"Alice"}, first.SharedWithNames)
	assert.Len(t, first.SharedWith, 2)

	second := out.Habits[1]
	assert.Equal(t, "no sugar", second.Name)
	assert.Equal(t, 0, second.StreakDays)
	assert.Empty(t, second.SharedWithNames)
}

func TestHabitService_GetSharedHabits(t *testing.T) {
	f := newHabitServiceFixture(nil)
	ctx := context.Background()

	viewer := testUser()

	shared := entity.NewHabit("no smoking", "ABC123", time.Now().UTC().Add(-48*time.Hour))
	shared.SharedWith = []uuid.UUID{viewer.ID}
	private := entity.NewHabit("no sugar", "XYZ789", time.Now().UTC())
	owner := testUser(shared, private)

	f.userRepo.On("FindByID", ctx, viewer.ID).Return(viewer, nil)
	f.habitRepo.On("FindOwnersSharingWith", ctx, viewer.ID).Return([]*entity.User{owner}, nil)

	views, err := f.service.GetSharedHabits(ctx, viewer.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Owner", views[0].Owner)
	assert.Equal(t, "no smoking", views[0].Name)
	assert.Equal(t, 2, views[0].StreakDays)
	assert.Equal(t, 0, views[0].AlmostRelapsesCount)
}

func TestHabitService_GetSharedHabits_NoShares(t *testing.T) {
	f := newHabitServiceFixture(nil)
	ctx := context.Background()
	viewer := testUser()

	f.userRepo.On("FindByID", ctx, viewer.ID).Return(viewer, nil)
	f.habitRepo.On("FindOwnersSharingWith", ctx, viewer.ID).Return([]*entity.User{}, nil)

	views, err := f.service.GetSharedHabits(ctx, viewer.ID)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestHabitService_ShareCodeQR(t *testing.T) {
	f := newHabitServiceFixture(nil)
	ctx := context.Background()

	habit := entity.NewHabit("no smoking", "ABC123", time.Now().UTC())
	user := testUser(habit)
	png := []byte{0x89, 0x50, 0x4E, 0x47}

	f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	f.qrService.On("GenerateShareQR", "ABC123").Return(png, nil)

	got, err := f.service.ShareCodeQR(ctx, user.ID, habit.ID)
	require.NoError(t, err)
	assert.Equal(t, png, got)
}
