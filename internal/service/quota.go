package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/halden-dev/shoptrack/internal/domain"
)

var (
	ErrLimitNotPositive = errors.New("limit values must be positive")
)

// QuotaService owns reads and administrative updates of per-organization
// limits. First access bootstraps the defaults row via the store's
// idempotent GetOrCreate.
type QuotaService struct {
	limits domain.LimitsStore
}

func NewQuotaService(limits domain.LimitsStore) *QuotaService {
	return &QuotaService{limits: limits}
}

func (s *QuotaService) GetLimits(ctx context.Context, orgID uuid.UUID) (*domain.OrgLimits, error) {
	l, err := s.limits.GetOrCreate(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("get limits for org %s: %w", orgID, err)
	}
	return l, nil
}

func (s *QuotaService) SetLimits(ctx context.Context, orgID uuid.UUID, upd domain.LimitsUpdate) (*domain.OrgLimits, error) {
	for _, v := range []*int{upd.MaxVehicles, upd.MaxFleets, upd.MaxCustomers, upd.MaxMonthlyInvoices} {
		if v != nil && *v <= 0 {
			return nil, ErrLimitNotPositive
		}
	}

	l, err := s.limits.Update(ctx, orgID, upd)
	if err != nil {
		return nil, fmt.Errorf("update limits for org %s: %w", orgID, err)
	}
	return l, nil
}
