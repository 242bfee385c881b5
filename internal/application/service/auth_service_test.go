package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuanvm/stockwise-api/internal/domain/entity"
	"github.com/tuanvm/stockwise-api/internal/domain/enum"
	infraRepo "github.com/tuanvm/stockwise-api/internal/infrastructure/repository"
	"github.com/tuanvm/stockwise-api/pkg/apperror"
	"github.com/tuanvm/stockwise-api/pkg/email"
	"github.com/tuanvm/stockwise-api/pkg/utils"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	db := newTestDB(t)
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(
		infraRepo.NewUserRepository(db),
		infraRepo.NewPasswordResetTokenRepository(db),
		jwtManager,
		email.NewEmailService(email.EmailConfig{}),
	), db
}

func seedCredentials(t *testing.T, db *gorm.DB, emailAddr, password string, role enum.UserRole) *entity.User {
	t.Helper()
	hashed, err := utils.HashPassword(password)
	require.NoError(t, err)
	user := &entity.User{
		DisplayName: "Test User",
		Email:       emailAddr,
		Password:    hashed,
		Role:        role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestRegister_StartsUnassigned(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &RegisterInput{
		DisplayName: "New Hire",
		Email:       "new@example.com",
		Password:    "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, enum.RoleUnassigned, user.Role)
	assert.NotEqual(t, "s3cret-pass", user.Password, "password must be stored hashed")

	_, err = svc.Register(ctx, &RegisterInput{
		DisplayName: "Dupe",
		Email:       "new@example.com",
		Password:    "another-pass",
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestLogin_EmployeeSucceeds(t *testing.T) {
	svc, db := newAuthService(t)
	ctx := context.Background()

	seedCredentials(t, db, "staff@example.com", "s3cret-pass", enum.RoleEmployee)

	out, err := svc.Login(ctx, &LoginInput{Email: "staff@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, enum.RoleEmployee, out.User.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, db := newAuthService(t)
	ctx := context.Background()

	seedCredentials(t, db, "staff@example.com", "s3cret-pass", enum.RoleEmployee)

	_, err := svc.Login(ctx, &LoginInput{Email: "staff@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginInput{Email: "nobody@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestLogin_NonSignInRolesRefused(t *testing.T) {
	svc, db := newAuthService(t)
	ctx := context.Background()

	seedCredentials(t, db, "new@example.com", "s3cret-pass", enum.RoleUnassigned)
	seedCredentials(t, db, "gone@example.com", "s3cret-pass", enum.RoleBlocked)

	_, err := svc.Login(ctx, &LoginInput{Email: "new@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, apperror.ErrAccountNotActive, "unassigned accounts cannot sign in")

	_, err = svc.Login(ctx, &LoginInput{Email: "gone@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, apperror.ErrAccountNotActive, "blocked accounts cannot sign in")
}

func TestRefreshToken_PicksUpRoleChange(t *testing.T) {
	svc, db := newAuthService(t)
	ctx := context.Background()

	user := seedCredentials(t, db, "staff@example.com", "s3cret-pass", enum.RoleEmployee)

	out, err := svc.Login(ctx, &LoginInput{Email: "staff@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, out.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// Blocking the account invalidates refresh at the latest.
	require.NoError(t, db.Model(&entity.User{}).
		Where("id = ?", user.ID).
		Update("role", enum.RoleBlocked).Error)

	_, err = svc.RefreshToken(ctx, out.RefreshToken)
	assert.ErrorIs(t, err, apperror.ErrAccountNotActive)
}

func TestRefreshToken_GarbageRefused(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.RefreshToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	svc, db := newAuthService(t)
	ctx := context.Background()

	user := seedCredentials(t, db, "staff@example.com", "old-password", enum.RoleEmployee)

	err := svc.ChangePassword(ctx, &ChangePasswordInput{
		UserID:          user.ID,
		CurrentPassword: "wrong",
		NewPassword:     "new-password",
	})
	require.Error(t, err, "wrong current password refused")

	require.NoError(t, svc.ChangePassword(ctx, &ChangePasswordInput{
		UserID:          user.ID,
		CurrentPassword: "old-password",
		NewPassword:     "new-password",
	}))

	_, err = svc.Login(ctx, &LoginInput{Email: "staff@example.com", Password: "new-password"})
	require.NoError(t, err)
}

func TestResetPassword_WithValidToken(t *testing.T) {
	svc, db := newAuthService(t)
	ctx := context.Background()

	seedCredentials(t, db, "staff@example.com", "old-password", enum.RoleEmployee)

	token := &entity.PasswordResetToken{
		Email:     "staff@example.com",
		Token:     "known-test-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(token).Error)

	require.NoError(t, svc.ResetPassword(ctx, &ResetPasswordInput{
		Email:       "staff@example.com",
		Token:       "known-test-token",
		NewPassword: "fresh-password",
	}))

	_, err := svc.Login(ctx, &LoginInput{Email: "staff@example.com", Password: "fresh-password"})
	require.NoError(t, err)

	// The token is single-use.
	err = svc.ResetPassword(ctx, &ResetPasswordInput{
		Email:       "staff@example.com",
		Token:       "known-test-token",
		NewPassword: "yet-another",
	})
	require.Error(t, err)
}

func TestResetPassword_ExpiredOrMismatchedToken(t *testing.T) {
	svc, db := newAuthService(t)
	ctx := context.Background()

	seedCredentials(t, db, "staff@example.com", "old-password", enum.RoleEmployee)

	expired := &entity.PasswordResetToken{
		Email:     "staff@example.com",
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, db.Create(expired).Error)

	err := svc.ResetPassword(ctx, &ResetPasswordInput{
		Email:       "staff@example.com",
		Token:       "expired-token",
		NewPassword: "fresh-password",
	})
	require.Error(t, err)

	err = svc.ResetPassword(ctx, &ResetPasswordInput{
		Email:       "other@example.com",
		Token:       "expired-token",
		NewPassword: "fresh-password",
	})
	require.Error(t, err, "token bound to a different email refused")
}
