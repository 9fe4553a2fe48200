// Package mocks provides mock implementations for testing secret HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/keywhiz-core/internal/sanitize"
	secretsDomain "github.com/allisson/keywhiz-core/internal/secrets/domain"
	secretsUseCase "github.com/allisson/keywhiz-core/internal/secrets/usecase"
)

// MockSecretController is a mock implementation of secretsUseCase.SecretController.
type MockSecretController struct {
	mock.Mock
}

func (m *MockSecretController) Create(
	ctx context.Context,
	input *secretsUseCase.CreateSecretInput,
) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

func (m *MockSecretController) GetByNameAndVersion(
	ctx context.Context,
	name, version string,
) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, name, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

func (m *MockSecretController) GetByIDAndVersion(
	ctx context.Context,
	seriesID int64,
	version string,
) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, seriesID, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

func (m *MockSecretController) GetLatestByID(ctx context.Context, seriesID int64) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, seriesID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

func (m *MockSecretController) GetLatestByName(ctx context.Context, name string) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

func (m *MockSecretController) GetsByID(ctx context.Context, seriesID int64) ([]secretsDomain.Secret, error) {
	args := m.Called(ctx, seriesID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]secretsDomain.Secret), args.Error(1)
}

func (m *MockSecretController) ListAll(ctx context.Context) ([]secretsDomain.Secret, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]secretsDomain.Secret), args.Error(1)
}

func (m *MockSecretController) DeleteSeries(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockSecretController) DeleteVersion(ctx context.Context, name, version string) error {
	args := m.Called(ctx, name, version)
	return args.Error(0)
}

// MockAclEngine is a mock implementation of aclUseCase.AclEngine.
type MockAclEngine struct {
	mock.Mock
}

func (m *MockAclEngine) MayAccess(ctx context.Context, clientID, seriesID int64) (bool, error) {
	args := m.Called(ctx, clientID, seriesID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAclEngine) SeriesFor(ctx context.Context, clientID int64) ([]int64, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockAclEngine) GroupsFor(ctx context.Context, seriesID int64) ([]int64, error) {
	args := m.Called(ctx, seriesID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockAclEngine) ClientsFor(ctx context.Context, seriesID int64) ([]int64, error) {
	args := m.Called(ctx, seriesID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockAclEngine) SecretsFor(ctx context.Context, clientID int64) ([]sanitize.SanitizedSecret, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sanitize.SanitizedSecret), args.Error(1)
}

func (m *MockAclEngine) GetSecretForClient(
	ctx context.Context,
	clientID int64,
	name string,
) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, clientID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

// MockCryptographer is a mock implementation of cryptoService.Cryptographer.
type MockCryptographer struct {
	mock.Mock
}

func (m *MockCryptographer) Seal(name string, content []byte) (string, error) {
	args := m.Called(name, content)
	return args.String(0), args.Error(1)
}

func (m *MockCryptographer) Open(name, envelope string) ([]byte, error) {
	args := m.Called(name, envelope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
