// AngelaMos | 2026
// service.go

// Package property manages landlord properties and their rental units.
// Mutations are restricted to the owning landlord; the gate is consulted
// with the fetched row's owner so a wrong owner yields 403, not 404.
package property

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/makao-dev/makao-api/internal/authz"
	"github.com/makao-dev/makao-api/internal/core"
	"github.com/makao-dev/makao-api/internal/lease"
)

type Service struct {
	repo   Repository
	gate   *authz.Gate
	logger *slog.Logger
}

var _ lease.UnitProvider = (*Service)(nil)

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

func (s *Service) Create(
	ctx context.Context,
	caller authz.Caller,
	req *CreatePropertyRequest,
) (*Property, error) {
	err := s.gate.Authorize(caller, authz.OpManageProperty, authz.Resource{})
	if err != nil {
		return nil, err
	}

	p := &Property{
		ID:       uuid.NewString(),
		OwnerID:  caller.ID,
		Name:     req.Name,
		Location: req.Location,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}

	s.logger.Info("property created",
		"property_id", p.ID,
		"owner_id", p.OwnerID,
	)

	return p, nil
}

func (s *Service) ListMine(
	ctx context.Context,
	caller authz.Caller,
) ([]PropertyRow, error) {
	err := s.gate.Authorize(caller, authz.OpManageProperty, authz.Resource{})
	if err != nil {
		return nil, err
	}

	return s.repo.ListByOwner(ctx, caller.ID)
}

func (s *Service) Get(
	ctx context.Context,
	caller authz.Caller,
	id string,
) (*Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.gate.Authorize(caller, authz.OpManageProperty, authz.Resource{
		OwnerID: p.OwnerID,
	})
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Update(
	ctx context.Context,
	caller authz.Caller,
	id string,
	req *UpdatePropertyRequest,
) (*Property, error) {
	p, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	p.Name = req.Name
	p.Location = req.Location

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update property: %w", err)
	}

	return p, nil
}

func (s *Service) Delete(
	ctx context.Context,
	caller authz.Caller,
	id string,
) error {
	if _, err := s.Get(ctx, caller, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete property: %w", err)
	}

	s.logger.Info("property deleted", "property_id", id)

	return nil
}

func (s *Service) AddUnit(
	ctx context.Context,
	caller authz.Caller,
	propertyID string,
	req *CreateUnitRequest,
) (*Unit, error) {
	if _, err := s.Get(ctx, caller, propertyID); err != nil {
		return nil, err
	}

	u := &Unit{
		ID:         uuid.NewString(),
		PropertyID: propertyID,
		UnitNumber: req.UnitNumber,
		RentAmount: req.RentAmount,
		Status:     UnitStatusVacant,
	}

	if err := s.repo.CreateUnit(ctx, u); err != nil {
		return nil, fmt.Errorf("add unit: %w", err)
	}

	return u, nil
}

func (s *Service) ListUnits(
	ctx context.Context,
	caller authz.Caller,
	propertyID string,
) ([]Unit, error) {
	if _, err := s.Get(ctx, caller, propertyID); err != nil {
		return nil, err
	}

	return s.repo.ListUnits(ctx, propertyID)
}

func (s *Service) UpdateUnit(
	ctx context.Context,
	caller authz.Caller,
	unitID string,
	req *UpdateUnitRequest,
) (*Unit, error) {
	u, err := s.repo.GetUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	if _, err := s.Get(ctx, caller, u.PropertyID); err != nil {
		return nil, err
	}

	u.UnitNumber = req.UnitNumber
	u.RentAmount = req.RentAmount
	u.Status = req.Status

	if err := s.repo.UpdateUnit(ctx, u); err != nil {
		return nil, fmt.Errorf("update unit: %w", err)
	}

	return u, nil
}

func (s *Service) DeleteUnit(
	ctx context.Context,
	caller authz.Caller,
	unitID string,
) error {
	u, err := s.repo.GetUnit(ctx, unitID)
	if err != nil {
		return err
	}

	if _, err := s.Get(ctx, caller, u.PropertyID); err != nil {
		return err
	}

	if err := s.repo.DeleteUnit(ctx, unitID); err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}

	return nil
}

// GetUnitInfo serves lease assignment. It is not gated here; the lease
// service performs its own authorization before calling in.
func (s *Service) GetUnitInfo(
	ctx context.Context,
	unitID string,
) (*lease.UnitInfo, error) {
	u, err := s.repo.GetUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, u.PropertyID)
	if err != nil {
		return nil, err
	}

	return &lease.UnitInfo{
		ID:              u.ID,
		PropertyID:      u.PropertyID,
		PropertyOwnerID: p.OwnerID,
		UnitNumber:      u.UnitNumber,
		RentAmount:      u.RentAmount,
		Status:          u.Status,
	}, nil
}

func (s *Service) SetUnitStatus(
	ctx context.Context,
	unitID, status string,
) error {
	if status != UnitStatusVacant && status != UnitStatusOccupied {
		return fmt.Errorf(
			"set unit status: %q: %w",
			status,
			core.ErrInvalidInput,
		)
	}

	return s.repo.SetUnitStatus(ctx, unitID, status)
}
