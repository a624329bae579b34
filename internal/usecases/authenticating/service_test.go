package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	repomocks "github.com/Mwenda-Eric/bvaccess-api/infrastructure/repository/mocks"
	"github.com/Mwenda-Eric/bvaccess-api/internal/config"
	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
)

func newAuthService(t *testing.T) (Authenticator, *repomocks.MockUserRepository) {
	ctrl := gomock.NewController(t)

	userRepo := repomocks.NewMockUserRepository(ctrl)
	cfg := &config.Config{SecretKey: "segredo-de-teste"}

	return NewService(userRepo, cfg), userRepo
}

func activeUser(t *testing.T, password string) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &domain.User{
		ID:           7,
		Name:         "Marie",
		Lastname:     "Joseph",
		Email:        "marie@bvaccess.ht",
		PasswordHash: string(hash),
		Active:       true,
		RoleID:       domain.RoleAdmin,
	}
}

func TestLoginUserReturnsValidToken(t *testing.T) {
	service, userRepo := newAuthService(t)
	user := activeUser(t, "S3nha!forte")

	userRepo.EXPECT().
		GetUserByEmail("marie@bvaccess.ht").
		Return(user, nil)

	token, err := service.LoginUser("  Marie@BVAccess.ht ", "S3nha!forte")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.UserRoleID)
	assert.Equal(t, "marie@bvaccess.ht", claims.UserEmail)
}

func TestLoginUserWrongPassword(t *testing.T) {
	service, userRepo := newAuthService(t)
	user := activeUser(t, "S3nha!forte")

	userRepo.EXPECT().
		GetUserByEmail("marie@bvaccess.ht").
		Return(user, nil)

	_, err := service.LoginUser("marie@bvaccess.ht", "senha-errada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUserDisabledAccount(t *testing.T) {
	service, userRepo := newAuthService(t)
	user := activeUser(t, "S3nha!forte")
	user.Active = false

	userRepo.EXPECT().
		GetUserByEmail("marie@bvaccess.ht").
		Return(user, nil)

	_, err := service.LoginUser("marie@bvaccess.ht", "S3nha!forte")
	assert.ErrorIs(t, err, ErrUserDisabled)
}

func TestLoginUserNotFound(t *testing.T) {
	service, userRepo := newAuthService(t)

	userRepo.EXPECT().
		GetUserByEmail("ninguem@bvaccess.ht").
		Return(nil, nil)

	_, err := service.LoginUser("ninguem@bvaccess.ht", "tanto-faz")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLoginUserMissingData(t *testing.T) {
	service, _ := newAuthService(t)

	_, err := service.LoginUser("", "")
	assert.ErrorIs(t, err, ErrMissingRequiredData)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	service, _ := newAuthService(t)

	claims := domain.Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("segredo-de-teste"))
	require.NoError(t, err)

	_, err = service.ValidateToken(expired)
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	service, _ := newAuthService(t)

	claims := domain.Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("outro-segredo"))
	require.NoError(t, err)

	_, err = service.ValidateToken(forged)
	assert.Error(t, err)
}

func TestCreateUserDefaultsToViewer(t *testing.T) {
	service, userRepo := newAuthService(t)

	userRepo.EXPECT().
		GetUserByEmail("novo@bvaccess.ht").
		Return(nil, nil)

	userRepo.EXPECT().
		CreateUser(gomock.Any()).
		DoAndReturn(func(user *domain.User) (*domain.User, error) {
			assert.Equal(t, domain.RoleViewer, user.RoleID)
			assert.False(t, user.Active, "novos usuários entram desativados")
			assert.NotEqual(t, "S3nha!forte", user.PasswordHash, "senha deve ser armazenada como hash")
			user.ID = 10
			return user, nil
		})

	created, err := service.CreateUser(&domain.User{
		Name:         "Novo",
		Lastname:     "Usuário",
		Email:        "novo@bvaccess.ht",
		PasswordHash: "S3nha!forte",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, created.ID)
}

func TestChangePasswordRejectsSamePassword(t *testing.T) {
	service, userRepo := newAuthService(t)
	user := activeUser(t, "S3nha!forte")

	userRepo.EXPECT().
		GetUserByID(7).
		Return(user, nil)

	err := service.ChangePassword(7, "S3nha!forte", "S3nha!forte")
	assert.ErrorIs(t, err, ErrSamePassword)
}

func TestValidatePasswordStrength(t *testing.T) {
	service, _ := newAuthService(t)

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"senha forte", "Abcdef1!", false},
		{"curta demais", "Ab1!", true},
		{"sem maiúscula", "abcdef1!", true},
		{"sem número", "Abcdefg!", true},
		{"sem caractere especial", "Abcdefg1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGenerateStrongPasswordRequiresSuperAdmin(t *testing.T) {
	service, userRepo := newAuthService(t)

	requester := &domain.User{ID: 3, RoleID: domain.RoleAdmin, Active: true}

	userRepo.EXPECT().
		GetUserByID(3).
		Return(requester, nil)

	_, err := service.GenerateStrongPassword(3, 7)
	assert.EqualError(t, err, "apenas administradores podem gerar novas senhas")
}
