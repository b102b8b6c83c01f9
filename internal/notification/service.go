// AngelaMos | 2026
// service.go

// Package notification serves per-user notifications. The backing table is
// provisioned independently of the core schema; its absence degrades reads
// to an empty, flagged result instead of an error.
package notification

import (
	"context"
	"log/slog"

	"github.com/makao-dev/makao-api/internal/authz"
)

type Service struct {
	repo   Repository
	gate   *authz.Gate
	logger *slog.Logger
}

func NewService(
	repo Repository,
	gate *authz.Gate,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:   repo,
		gate:   gate,
		logger: logger,
	}
}

// ListMine returns the caller's notifications. ErrNotProvisioned passes
// through for the handler to degrade gracefully.
func (s *Service) ListMine(
	ctx context.Context,
	caller authz.Caller,
) ([]Notification, error) {
	err := s.gate.Authorize(caller, authz.OpReadNotifications, authz.Resource{
		OwnerID: caller.ID,
	})
	if err != nil {
		return nil, err
	}

	return s.repo.ListByUser(ctx, caller.ID)
}

// MarkRead fetches the notification first and gates on its owner.
func (s *Service) MarkRead(
	ctx context.Context,
	caller authz.Caller,
	id string,
) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.gate.Authorize(caller, authz.OpMarkNotificationRead, authz.Resource{
		OwnerID: n.UserID,
	})
	if err != nil {
		return err
	}

	return s.repo.MarkRead(ctx, id)
}
