package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/policy"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type policyRepositoryImpl struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) policy.PolicyRepository {
	return &policyRepositoryImpl{db: db}
}

const policyColumns = `
	id, name, scope, scope_value,
	leave_types, payroll_integration,
	effective_from, effective_to, is_active,
	created_at, updated_at
`

func scanPolicy(row pgx.Row) (policy.LeavePolicy, error) {
	var p policy.LeavePolicy
	err := row.Scan(
		&p.ID, &p.Name, &p.Scope, &p.ScopeValue,
		&p.LeaveTypes, &p.PayrollIntegration,
		&p.EffectiveFrom, &p.EffectiveTo, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Create implements policy.PolicyRepository.
func (r *policyRepositoryImpl) Create(ctx context.Context, p policy.LeavePolicy) (policy.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_policies (
			id, name, scope, scope_value,
			leave_types, payroll_integration,
			effective_from, effective_to, is_active,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3,
			$4, $5,
			$6, $7, $8,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.Name, p.Scope, p.ScopeValue,
		p.LeaveTypes, p.PayrollIntegration,
		p.EffectiveFrom, p.EffectiveTo, p.IsActive,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return policy.LeavePolicy{}, err
	}

	return p, nil
}

// GetByID implements policy.PolicyRepository.
func (r *policyRepositoryImpl) GetByID(ctx context.Context, id string) (policy.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + policyColumns + ` FROM leave_policies WHERE id = $1`

	p, err := scanPolicy(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return policy.LeavePolicy{}, policy.ErrPolicyNotFound
		}
		return policy.LeavePolicy{}, err
	}
	return p, nil
}

// List implements policy.PolicyRepository.
func (r *policyRepositoryImpl) List(ctx context.Context) ([]policy.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + policyColumns + `
		FROM leave_policies
		ORDER BY scope, scope_value NULLS FIRST, effective_from DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	policies := make([]policy.LeavePolicy, 0)
	for rows.Next() {
		var p policy.LeavePolicy
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Scope, &p.ScopeValue,
			&p.LeaveTypes, &p.PayrollIntegration,
			&p.EffectiveFrom, &p.EffectiveTo, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}

	return policies, nil
}

// Update implements policy.PolicyRepository.
func (r *policyRepositoryImpl) Update(ctx context.Context, p policy.LeavePolicy) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_policies
		SET name = $2,
			leave_types = $3,
			payroll_integration = $4,
			effective_to = $5,
			is_active = $6,
			updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		p.ID, p.Name, p.LeaveTypes, p.PayrollIntegration, p.EffectiveTo, p.IsActive,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return policy.ErrPolicyNotFound
	}
	return nil
}

// Deactivate implements policy.PolicyRepository. Soft delete only.
func (r *policyRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_policies
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return policy.ErrPolicyNotFound
	}
	return nil
}

// FindEffective implements policy.PolicyRepository. Versions at the same
// scope are disambiguated by latest effective_from; expiry filtering is
// opt-in via checkExpiry.
func (r *policyRepositoryImpl) FindEffective(ctx context.Context, scope policy.Scope, scopeValue *string, asOf time.Time, checkExpiry bool) (policy.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + policyColumns + `
		FROM leave_policies
		WHERE scope = $1
		  AND (scope_value = $2 OR ($2::text IS NULL AND scope_value IS NULL))
		  AND is_active = TRUE
		  AND effective_from <= $3
	`
	if checkExpiry {
		query += ` AND (effective_to IS NULL OR effective_to >= $3)`
	}
	query += ` ORDER BY effective_from DESC LIMIT 1`

	p, err := scanPolicy(q.QueryRow(ctx, query, scope, scopeValue, asOf))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return policy.LeavePolicy{}, policy.ErrPolicyNotFound
		}
		return policy.LeavePolicy{}, err
	}
	return p, nil
}

// DeactivateEffective implements policy.PolicyRepository.
func (r *policyRepositoryImpl) DeactivateEffective(ctx context.Context, scope policy.Scope, scopeValue *string, asOf time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_policies
		SET is_active = FALSE, updated_at = NOW()
		WHERE id IN (
			SELECT id FROM leave_policies
			WHERE scope = $1
			  AND (scope_value = $2 OR ($2::text IS NULL AND scope_value IS NULL))
			  AND is_active = TRUE
			  AND effective_from <= $3
			ORDER BY effective_from DESC
			LIMIT 1
		)
	`

	// Zero rows affected is fine: there was nothing to supersede.
	_, err := q.Exec(ctx, query, scope, scopeValue, asOf)
	return err
}
