package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/accesshub/rbac-service/internal/core/domain"
	"github.com/accesshub/rbac-service/internal/core/ports"
)

// UserService implements account lifecycle operations. Each mutation runs
// inside the unit of work together with the audit entry it triggers, so
// either both persist or neither does.
type UserService struct {
	uow         ports.UnitOfWork
	users       ports.UserRepository
	roles       ports.RoleRepository
	hasher      *PasswordHasher
	audit       ports.AuditRecorder
	defaultRole string
}

func NewUserService(uow ports.UnitOfWork, users ports.UserRepository, roles ports.RoleRepository, hasher *PasswordHasher, audit ports.AuditRecorder, defaultRole string) *UserService {
	return &UserService{
		uow:         uow,
		users:       users,
		roles:       roles,
		hasher:      hasher,
		audit:       audit,
		defaultRole: defaultRole,
	}
}

// Register creates a self-registered account. The default role is assigned
// when a role definition of that name exists; otherwise the account starts
// with no roles (level 0).
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}

	var created *domain.User
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		user, err := s.newUser(ctx, in.Username, in.Email, in.Password)
		if err != nil {
			return err
		}

		role, err := s.roles.FindByName(ctx, s.defaultRole)
		if err == nil {
			user.Roles = []domain.Role{*role}
		} else if !errors.Is(err, domain.ErrRoleNotFound) {
			return err
		}

		created, err = s.users.Save(ctx, user)
		if err != nil {
			return err
		}

		_, err = s.audit.Record(ctx, domain.ActionRegister, &created.ID, "user self-registered")
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CreateByAdmin creates an account with the exact role set named by the
// actor. Role names absent from the catalog are skipped silently.
func (s *UserService) CreateByAdmin(ctx context.Context, in ports.CreateUserInput, actor *domain.User) (*domain.User, error) {
	var created *domain.User
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		user, err := s.newUser(ctx, in.Username, in.Email, in.Password)
		if err != nil {
			return err
		}

		user.Roles, err = s.roles.FindByNames(ctx, in.RoleNames)
		if err != nil {
			return err
		}

		created, err = s.users.Save(ctx, user)
		if err != nil {
			return err
		}

		details := fmt.Sprintf("created by %s", actor.Username)
		_, err = s.audit.Record(ctx, domain.ActionUserCreatedByAdmin, &created.ID, details)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// AssignRoles replaces the user's full role set with the resolved names.
// The audit entry is attributed to the acting admin, not the target user.
func (s *UserService) AssignRoles(ctx context.Context, userID string, roleNames []string, actor *domain.User) (*domain.User, error) {
	var updated *domain.User
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return err
		}

		user.Roles, err = s.roles.FindByNames(ctx, roleNames)
		if err != nil {
			return err
		}

		updated, err = s.users.Save(ctx, user)
		if err != nil {
			return err
		}

		details := fmt.Sprintf("changed roles for user_id=%s to %v", updated.ID, roleNames)
		_, err = s.audit.Record(ctx, domain.ActionRolesChanged, &actor.ID, details)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, offset, limit int64) ([]domain.User, error) {
	return s.users.List(ctx, offset, limit)
}

// newUser runs the collision checks shared by both creation paths and
// returns an unsaved user with the password hashed.
func (s *UserService) newUser(ctx context.Context, username, email, password string) (*domain.User, error) {
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}, nil
}
