// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/makao-dev/makao-api/internal/authz"
	"github.com/makao-dev/makao-api/internal/core"
	"github.com/makao-dev/makao-api/internal/middleware"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ResolveRole maps an authenticated subject to its persisted user_type.
// A missing row is an authenticated caller that has not completed role
// selection; callers distinguish that from storage failures via
// core.ErrNotFound.
func (s *Service) ResolveRole(
	ctx context.Context,
	subjectID string,
) (string, error) {
	if subjectID == "" {
		return "", fmt.Errorf("resolve role: %w", core.ErrUnauthenticated)
	}

	user, err := s.repo.GetByID(ctx, subjectID)
	if err != nil {
		return "", err
	}

	return user.UserType, nil
}

func (s *Service) GetMe(ctx context.Context, subjectID string) (*User, error) {
	if subjectID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthenticated)
	}

	return s.repo.GetByID(ctx, subjectID)
}

// SelectRole records the caller's chosen role. The landlord alias is
// stored normalized so every later comparison sees "admin".
func (s *Service) SelectRole(
	ctx context.Context,
	subjectID, userType string,
) (*User, error) {
	if subjectID == "" {
		return nil, fmt.Errorf("select role: %w", core.ErrUnauthenticated)
	}

	role := authz.Normalize(userType)
	if role == authz.RoleNone {
		return nil, core.ValidationError(
			fmt.Sprintf("invalid user type %q", userType),
		)
	}

	if err := s.repo.SetUserType(ctx, subjectID, string(role)); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, subjectID)
}

// SyncCreated mirrors a provider "user created" event. Role defaults to
// tenant; replays are no-ops.
func (s *Service) SyncCreated(
	ctx context.Context,
	id, email, fullName string,
	phone *string,
) error {
	if id == "" {
		return fmt.Errorf("sync created: missing user id: %w", core.ErrInvalidInput)
	}

	user := &User{
		ID:          id,
		Email:       email,
		FullName:    fullName,
		PhoneNumber: phone,
		UserType:    UserTypeTenant,
	}

	return s.repo.Insert(ctx, user)
}

// SyncUpdated mirrors a provider "user updated" event. Contact fields
// only; the role is never touched by lifecycle updates.
func (s *Service) SyncUpdated(
	ctx context.Context,
	id, email, fullName string,
	phone *string,
) error {
	if id == "" {
		return fmt.Errorf("sync updated: missing user id: %w", core.ErrInvalidInput)
	}

	return s.repo.UpsertContact(ctx, id, email, fullName, phone)
}

// SyncDeleted redacts the row but keeps it, preserving referential
// integrity with leases and payments. A delete for an unknown id is
// acknowledged and ignored.
func (s *Service) SyncDeleted(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("sync deleted: missing user id: %w", core.ErrInvalidInput)
	}

	err := s.repo.Redact(ctx, id, DeletedEmail(id))
	if errors.Is(err, core.ErrNotFound) {
		return nil
	}
	return err
}

var _ middleware.RoleResolver = (*Service)(nil)
