package usecase

import (
	"context"

	"github.com/google/uuid"
)

// UserUsecase defines registration and login. Credential mechanics live in
// the auth services; habit operations only ever see the resulting user id.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}

// RegisterInput defines the data required to create an account.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterOutput echoes the created account without credential material.
type RegisterOutput struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// LoginInput defines the credentials for logging in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginOutput carries the issued access token.
type LoginOutput struct {
	Token string `json:"token"`
}
