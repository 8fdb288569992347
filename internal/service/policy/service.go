package policy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/policy"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/pkg/database"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type PolicyServiceImpl struct {
	db       *database.DB
	policies policy.PolicyRepository
}

func NewPolicyService(db *database.DB, policies policy.PolicyRepository) policy.PolicyService {
	return &PolicyServiceImpl{
		db:       db,
		policies: policies,
	}
}

func (s *PolicyServiceImpl) Create(ctx context.Context, req policy.CreatePolicyRequest) (policy.LeavePolicy, error) {
	if err := req.Validate(); err != nil {
		return policy.LeavePolicy{}, err
	}

	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		return policy.LeavePolicy{}, fmt.Errorf("failed to parse effective_from: %w", err)
	}
	var effectiveTo *time.Time
	if req.EffectiveTo != nil {
		parsed, err := time.Parse("2006-01-02", *req.EffectiveTo)
		if err != nil {
			return policy.LeavePolicy{}, fmt.Errorf("failed to parse effective_to: %w", err)
		}
		effectiveTo = &parsed
	}

	newPolicy := policy.LeavePolicy{
		Name:               req.Name,
		Scope:              policy.Scope(req.Scope),
		ScopeValue:         req.ScopeValue,
		LeaveTypes:         req.LeaveTypes,
		PayrollIntegration: req.PayrollIntegration,
		EffectiveFrom:      effectiveFrom,
		EffectiveTo:        effectiveTo,
		IsActive:           true,
	}

	var created policy.LeavePolicy
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if req.SupersedePrevious {
			if err := s.policies.DeactivateEffective(txCtx, newPolicy.Scope, newPolicy.ScopeValue, effectiveFrom); err != nil {
				return fmt.Errorf("failed to deactivate superseded policy: %w", err)
			}
		}

		created, err = s.policies.Create(txCtx, newPolicy)
		if err != nil {
			return fmt.Errorf("failed to create policy: %w", err)
		}
		return nil
	})
	if err != nil {
		return policy.LeavePolicy{}, err
	}

	slog.Info("Leave policy created",
		"policy_id", created.ID,
		"scope", created.Scope,
		"effective_from", created.EffectiveFrom.Format("2006-01-02"),
	)
	return created, nil
}

func (s *PolicyServiceImpl) Get(ctx context.Context, id string) (policy.LeavePolicy, error) {
	return s.policies.GetByID(ctx, id)
}

func (s *PolicyServiceImpl) List(ctx context.Context) ([]policy.LeavePolicy, error) {
	return s.policies.List(ctx)
}

func (s *PolicyServiceImpl) Update(ctx context.Context, req policy.UpdatePolicyRequest) (policy.LeavePolicy, error) {
	if err := req.Validate(); err != nil {
		return policy.LeavePolicy{}, err
	}

	current, err := s.policies.GetByID(ctx, req.ID)
	if err != nil {
		return policy.LeavePolicy{}, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if len(req.LeaveTypes) > 0 {
		current.LeaveTypes = req.LeaveTypes
	}
	if req.PayrollIntegration != nil {
		current.PayrollIntegration = *req.PayrollIntegration
	}
	if req.EffectiveTo != nil {
		parsed, err := time.Parse("2006-01-02", *req.EffectiveTo)
		if err != nil {
			return policy.LeavePolicy{}, fmt.Errorf("failed to parse effective_to: %w", err)
		}
		current.EffectiveTo = &parsed
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}

	if err := s.policies.Update(ctx, current); err != nil {
		return policy.LeavePolicy{}, fmt.Errorf("failed to update policy: %w", err)
	}

	return s.policies.GetByID(ctx, req.ID)
}

// Deactivate soft-deletes a policy. Policies are never hard-deleted; history
// stays queryable for audit.
func (s *PolicyServiceImpl) Deactivate(ctx context.Context, id string) error {
	current, err := s.policies.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !current.IsActive {
		return policy.ErrPolicyAlreadyInactive
	}

	if err := s.policies.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("failed to deactivate policy: %w", err)
	}

	slog.Info("Leave policy deactivated", "policy_id", id)
	return nil
}
