package repository

import (
	"context"

	"stride/internal/domain/repository"
)

// StubRepositoryFactory hands out fixed repository instances, letting unit
// tests route transactional callbacks to mocks.
type StubRepositoryFactory struct {
	Users  repository.UserRepository
	Habits repository.HabitRepository
}

func (f *StubRepositoryFactory) UserRepo() repository.UserRepository {
	return f.Users
}

func (f *StubRepositoryFactory) HabitRepo() repository.HabitRepository {
	return f.Habits
}

// StubTransactionManager runs the callback immediately against a fixed
// factory. When Err is set it fails without invoking the callback, which
// models a transaction that could not be started.
type StubTransactionManager struct {
	Factory repository.RepositoryFactory
	Err     error
}

func (m *StubTransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	if m.Err != nil {
		return m.Err
	}

	return fn(m.Factory)
}
