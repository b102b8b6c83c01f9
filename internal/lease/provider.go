// AngelaMos | 2026
// provider.go

package lease

import (
	"context"

	"github.com/makao-dev/makao-api/internal/payment"
)

var _ payment.LeaseProvider = (*Service)(nil)

// GetActiveLease serves payment submission. Not gated here; the payment
// service authorizes the caller before calling in.
func (s *Service) GetActiveLease(
	ctx context.Context,
	tenantID string,
) (*payment.LeaseInfo, error) {
	row, err := s.repo.GetActiveByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return &payment.LeaseInfo{
		ID:         row.ID,
		UnitID:     row.UnitID,
		TenantID:   row.TenantID,
		RentAmount: row.RentAmount,
	}, nil
}
