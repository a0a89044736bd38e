package authenticating

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/flow-erp-api/infrastructure/repository/mocks"
	"github.com/vfg2006/flow-erp-api/internal/config"
	"github.com/vfg2006/flow-erp-api/internal/domain"
	"github.com/vfg2006/flow-erp-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "segredo-de-teste"

func newTestService(t *testing.T) (*Service, *mocks.MockUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)

	service := NewService(repo, config.Auth{SecretKey: testSecret}).(*Service)
	return service, repo
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func authCode(t *testing.T, err error) string {
	t.Helper()
	var authErr *AuthError
	require.True(t, errors.As(err, &authErr), "esperado AuthError, obtido %v", err)
	return authErr.Code
}

func TestService_LoginUser(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		setup    func(repo *mocks.MockUserRepository)
		validate func(t *testing.T, service *Service, token string, err error)
	}{
		{
			name:     "Login com sucesso gera token válido",
			email:    "  Ana@Flow.com ",
			password: "Senha@123",
			setup: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "ana@flow.com").Return(&domain.User{
					ID: 7, Name: "Ana", Email: "ana@flow.com", Active: true, RoleID: domain.UserRoleSeller,
					PasswordHash: hashPassword(t, "Senha@123"),
				}, nil)
			},
			validate: func(t *testing.T, service *Service, token string, err error) {
				require.NoError(t, err)
				claims, err := service.ValidateToken(token)
				require.NoError(t, err)
				assert.Equal(t, 7, claims.UserID)
				assert.Equal(t, domain.UserRoleSeller, claims.UserRoleID)
			},
		},
		{
			name:     "Campos vazios",
			setup:    func(repo *mocks.MockUserRepository) {},
			validate: func(t *testing.T, service *Service, token string, err error) {
				assert.ErrorIs(t, err, ErrMissingRequiredData)
				assert.Equal(t, apiErrors.ErrMissingRequiredData, authCode(t, err))
			},
		},
		{
			name:     "Usuário inexistente",
			email:    "nao@existe.com",
			password: "x",
			setup: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "nao@existe.com").Return(nil, nil)
			},
			validate: func(t *testing.T, service *Service, token string, err error) {
				assert.ErrorIs(t, err, ErrUserNotFound)
				assert.True(t, IsCredentialsError(err))
			},
		},
		{
			name:     "Usuário inativo",
			email:    "ana@flow.com",
			password: "Senha@123",
			setup: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "ana@flow.com").Return(&domain.User{ID: 7, Active: false}, nil)
			},
			validate: func(t *testing.T, service *Service, token string, err error) {
				assert.ErrorIs(t, err, ErrUserDisabled)
				assert.Equal(t, apiErrors.ErrUserDisabled, authCode(t, err))
			},
		},
		{
			name:     "Senha incorreta",
			email:    "ana@flow.com",
			password: "errada",
			setup: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "ana@flow.com").Return(&domain.User{
					ID: 7, Active: true, PasswordHash: hashPassword(t, "Senha@123"),
				}, nil)
			},
			validate: func(t *testing.T, service *Service, token string, err error) {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				assert.Empty(t, token)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService(t)
			tt.setup(repo)

			token, err := service.LoginUser(context.Background(), tt.email, tt.password)
			tt.validate(t, service, token, err)
		})
	}
}

func TestService_ValidateToken(t *testing.T) {
	t.Run("Token expirado", func(t *testing.T) {
		service, _ := newTestService(t)
		service.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
		token, err := service.generateJWT(&domain.User{ID: 1})
		require.NoError(t, err)

		service.now = time.Now
		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
		assert.Equal(t, apiErrors.ErrExpiredToken, authCode(t, err))
	})

	t.Run("Assinatura com outro segredo", func(t *testing.T) {
		service, _ := newTestService(t)
		other := NewService(nil, config.Auth{SecretKey: "outro"}).(*Service)
		token, err := other.generateJWT(&domain.User{ID: 1})
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.True(t, IsAuthorizationError(err))
	})
}

func TestService_CreateUser(t *testing.T) {
	t.Run("Usuário novo entra inativo com perfil de produção", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByEmail(gomock.Any(), "bruno@flow.com").Return(nil, nil)
		repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *domain.User) (*domain.User, error) {
			assert.False(t, u.Active)
			assert.Equal(t, domain.UserRoleProduction, u.RoleID)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Senha@123")))
			u.ID = 10
			return u, nil
		})

		user, err := service.CreateUser(context.Background(), &domain.User{
			Name: "Bruno", Lastname: "Lima", Email: "Bruno@Flow.com", PasswordHash: "Senha@123",
		})

		require.NoError(t, err)
		assert.Equal(t, 10, user.ID)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("Email já cadastrado", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByEmail(gomock.Any(), "ana@flow.com").Return(&domain.User{ID: 7}, nil)

		_, err := service.CreateUser(context.Background(), &domain.User{
			Name: "Ana", Lastname: "Souza", Email: "ana@flow.com", PasswordHash: "x",
		})
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
		assert.Equal(t, apiErrors.ErrUserAlreadyExists, authCode(t, err))
	})
}

func TestService_GenerateStrongPassword(t *testing.T) {
	t.Run("Administrador gera senha para outro usuário", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByID(gomock.Any(), 1).Return(&domain.User{ID: 1, RoleID: domain.UserRoleAdmin}, nil)
		repo.EXPECT().GetUserByID(gomock.Any(), 2).Return(&domain.User{ID: 2, RoleID: domain.UserRoleSeller}, nil)
		repo.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(nil)

		password, err := service.GenerateStrongPassword(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.Len(t, password, 12)
		assert.NoError(t, service.ValidatePasswordStrength(password))
	})

	t.Run("Vendedor não pode gerar senha", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByID(gomock.Any(), 2).Return(&domain.User{ID: 2, RoleID: domain.UserRoleSeller}, nil)

		_, err := service.GenerateStrongPassword(context.Background(), 2, 3)
		assert.ErrorIs(t, err, ErrNoAdminPrivileges)
		assert.Equal(t, apiErrors.ErrInsufficientPrivilege, authCode(t, err))
	})
}

func TestService_ValidatePasswordStrength(t *testing.T) {
	service, _ := newTestService(t)

	tests := []struct {
		name     string
		password string
		message  string
	}{
		{name: "Curta", password: "Ab1@", message: "8 caracteres"},
		{name: "Sem maiúscula", password: "senha@123", message: "maiúscula"},
		{name: "Sem minúscula", password: "SENHA@123", message: "minúscula"},
		{name: "Sem número", password: "Senha@abc", message: "número"},
		{name: "Sem especial", password: "Senha1234", message: "especial"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tt.password)
			assert.ErrorIs(t, err, ErrWeakPassword)
			assert.True(t, strings.Contains(err.Error(), tt.message))
		})
	}

	assert.NoError(t, service.ValidatePasswordStrength("Senha@123"))
}

func TestService_ChangePassword(t *testing.T) {
	t.Run("Troca com senha atual correta", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByID(gomock.Any(), 7).Return(&domain.User{ID: 7, PasswordHash: hashPassword(t, "Senha@123")}, nil)
		repo.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *domain.User) error {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Nova#Senha9")))
			return nil
		})

		assert.NoError(t, service.ChangePassword(context.Background(), 7, "Senha@123", "Nova#Senha9"))
	})

	t.Run("Nova senha igual à atual", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByID(gomock.Any(), 7).Return(&domain.User{ID: 7, PasswordHash: hashPassword(t, "Senha@123")}, nil)

		err := service.ChangePassword(context.Background(), 7, "Senha@123", "Senha@123")
		assert.ErrorIs(t, err, ErrSamePassword)
	})
}
