package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuanvm/stockwise-api/internal/domain/entity"
	"github.com/tuanvm/stockwise-api/internal/domain/enum"
	infraRepo "github.com/tuanvm/stockwise-api/internal/infrastructure/repository"
	"github.com/tuanvm/stockwise-api/pkg/apperror"
	"gorm.io/gorm"
)

func newUserService(t *testing.T) (*UserService, *gorm.DB) {
	db := newTestDB(t)
	return NewUserService(infraRepo.NewUserRepository(db)), db
}

func TestUpdateRole_AssignsWorkingRole(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	admin := seedUser(t, db, "admin@example.com", enum.RoleAdmin)
	newcomer := seedUser(t, db, "new@example.com", enum.RoleUnassigned)

	updated, err := svc.UpdateRole(ctx, &UpdateRoleInput{
		UserID:  newcomer.ID,
		ActorID: admin.ID,
		Role:    enum.RoleEmployee,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.RoleEmployee, updated.Role)

	var stored entity.User
	require.NoError(t, db.First(&stored, "id = ?", newcomer.ID).Error)
	assert.Equal(t, enum.RoleEmployee, stored.Role)
}

func TestUpdateRole_SecondManagerRefused(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	admin := seedUser(t, db, "admin@example.com", enum.RoleAdmin)
	seedUser(t, db, "boss@example.com", enum.RoleManager)
	candidate := seedUser(t, db, "candidate@example.com", enum.RoleEmployee)

	_, err := svc.UpdateRole(ctx, &UpdateRoleInput{
		UserID:  candidate.ID,
		ActorID: admin.ID,
		Role:    enum.RoleManager,
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestUpdateRole_ManagerCanKeepOwnSeat(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	admin := seedUser(t, db, "admin@example.com", enum.RoleAdmin)
	manager := seedUser(t, db, "boss@example.com", enum.RoleManager)

	// Re-assigning manager to the account that already holds it is not a
	// conflict.
	updated, err := svc.UpdateRole(ctx, &UpdateRoleInput{
		UserID:  manager.ID,
		ActorID: admin.ID,
		Role:    enum.RoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.RoleManager, updated.Role)
}

func TestUpdateRole_Protections(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	admin := seedUser(t, db, "admin@example.com", enum.RoleAdmin)
	manager := seedUser(t, db, "boss@example.com", enum.RoleManager)
	employee := seedUser(t, db, "staff@example.com", enum.RoleEmployee)

	// Nobody can change their own role.
	_, err := svc.UpdateRole(ctx, &UpdateRoleInput{
		UserID:  manager.ID,
		ActorID: manager.ID,
		Role:    enum.RoleEmployee,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	// Admin accounts cannot be reassigned.
	_, err = svc.UpdateRole(ctx, &UpdateRoleInput{
		UserID:  admin.ID,
		ActorID: manager.ID,
		Role:    enum.RoleBlocked,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	// The admin role cannot be granted.
	_, err = svc.UpdateRole(ctx, &UpdateRoleInput{
		UserID:  employee.ID,
		ActorID: admin.ID,
		Role:    enum.RoleAdmin,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	// Unknown roles are refused.
	_, err = svc.UpdateRole(ctx, &UpdateRoleInput{
		UserID:  employee.ID,
		ActorID: admin.ID,
		Role:    enum.UserRole("superuser"),
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestUpdateRole_BlockRevokesAccess(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	admin := seedUser(t, db, "admin@example.com", enum.RoleAdmin)
	employee := seedUser(t, db, "staff@example.com", enum.RoleEmployee)

	updated, err := svc.UpdateRole(ctx, &UpdateRoleInput{
		UserID:  employee.ID,
		ActorID: admin.ID,
		Role:    enum.RoleBlocked,
	})
	require.NoError(t, err)
	assert.False(t, updated.Role.CanSignIn())
}

func TestDeleteUser_Protections(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	admin := seedUser(t, db, "admin@example.com", enum.RoleAdmin)
	manager := seedUser(t, db, "boss@example.com", enum.RoleManager)
	employee := seedUser(t, db, "staff@example.com", enum.RoleEmployee)

	err := svc.DeleteUser(ctx, manager.ID, manager.ID)
	require.Error(t, err, "self-deletion refused")

	err = svc.DeleteUser(ctx, admin.ID, manager.ID)
	require.Error(t, err, "admin accounts protected")

	require.NoError(t, svc.DeleteUser(ctx, employee.ID, admin.ID))

	_, err = svc.GetUser(ctx, employee.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
