package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/tuanvm/stockwise-api/internal/domain/entity"
	"github.com/tuanvm/stockwise-api/internal/domain/enum"
	"github.com/tuanvm/stockwise-api/internal/domain/repository"
	"github.com/tuanvm/stockwise-api/pkg/apperror"
	"github.com/tuanvm/stockwise-api/pkg/pagination"
)

// UserService handles user administration
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns a paginated list of users
func (s *UserService) ListUsers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.User], error) {
	users, total, err := s.userRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(users, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// GetUser returns a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateRoleInput represents the role assignment input
type UpdateRoleInput struct {
	UserID  uuid.UUID
	ActorID uuid.UUID
	Role    enum.UserRole
}

// UpdateRole assigns a role to a user. Admin accounts cannot be reassigned or
// blocked through this path, nobody can change their own role, and the
// manager role is held by at most one account at a time.
func (s *UserService) UpdateRole(ctx context.Context, input *UpdateRoleInput) (*entity.User, error) {
	if !input.Role.Valid() {
		return nil, apperror.NewBadRequestError("Unknown role")
	}
	if input.Role == enum.RoleAdmin {
		return nil, apperror.NewBadRequestError("The admin role cannot be granted")
	}
	if input.UserID == input.ActorID {
		return nil, apperror.NewBadRequestError("You cannot change your own role")
	}

	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	if user.Role == enum.RoleAdmin {
		return nil, apperror.NewBadRequestError("Admin accounts cannot be reassigned")
	}

	if input.Role == enum.RoleManager {
		managers, err := s.userRepo.GetByRole(ctx, enum.RoleManager)
		if err != nil {
			return nil, err
		}
		for _, m := range managers {
			if m.ID != user.ID {
				return nil, apperror.NewConflictError("Another account already holds the manager role")
			}
		}
	}

	user.Role = input.Role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser removes a user account. Admin accounts and the caller's own
// account are protected.
func (s *UserService) DeleteUser(ctx context.Context, id, actorID uuid.UUID) error {
	if id == actorID {
		return apperror.NewBadRequestError("You cannot delete your own account")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}
	if user.Role == enum.RoleAdmin {
		return apperror.NewBadRequestError("Admin accounts cannot be deleted")
	}

	return s.userRepo.Delete(ctx, id)
}
