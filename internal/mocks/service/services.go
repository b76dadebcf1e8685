// Package service provides hand-written testify mocks for the domain
// service interfaces.
package service

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	domainservice "stride/internal/domain/service"
)

// MockPasswordHasher is a testify mock of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

// MockTokenService is a testify mock of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(userID uuid.UUID) (string, error) {
	args := m.Called(userID)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) ValidateToken(tokenString string) (*domainservice.Claims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*domainservice.Claims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockShareCodeGenerator is a testify mock of service.ShareCodeGenerator.
type MockShareCodeGenerator struct {
	mock.Mock
}

func (m *MockShareCodeGenerator) Generate() (string, error) {
	args := m.Called()

	return args.String(0), args.Error(1)
}

// MockQRCodeService is a testify mock of service.QRCodeService.
type MockQRCodeService struct {
	mock.Mock
}

func (m *MockQRCodeService) GenerateShareQR(shareCode string) ([]byte, error) {
	args := m.Called(shareCode)
	if png, ok := args.Get(0).([]byte); ok {
		return png, args.Error(1)
	}

	return nil, args.Error(1)
}
