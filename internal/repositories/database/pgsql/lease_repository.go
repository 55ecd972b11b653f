package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/property_ledger/internal/models"
	"github.com/SscSPs/property_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLeaseRepository reads leases and stores the late-fee policy of landlord entities.
type PgxLeaseRepository struct {
	BaseRepository
}

func newPgxLeaseRepository(pool *pgxpool.Pool) *PgxLeaseRepository {
	return &PgxLeaseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.LeaseReader             = (*PgxLeaseRepository)(nil)
	_ portsrepo.LateFeePolicyRepository = (*PgxLeaseRepository)(nil)
)

// FindLeaseByID retrieves a lease by its ID.
func (r *PgxLeaseRepository) FindLeaseByID(ctx context.Context, leaseID string) (*domain.Lease, error) {
	query := `
		SELECT lease_id, entity_id, property_id, unit_id, tenant_ids, status
		FROM leases
		WHERE lease_id = $1;
	`
	var m models.Lease
	err := r.Pool.QueryRow(ctx, query, leaseID).Scan(
		&m.LeaseID,
		&m.EntityID,
		&m.PropertyID,
		&m.UnitID,
		&m.TenantIDs,
		&m.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLeaseNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find lease by ID "+leaseID, err)
	}
	lease := mapping.ToDomainLease(m)
	return &lease, nil
}

// FindLateFeeSettings retrieves the policy of a landlord entity.
func (r *PgxLeaseRepository) FindLateFeeSettings(ctx context.Context, entityID string) (*domain.LateFeeSettings, error) {
	query := `
		SELECT entity_id, enabled, fee_type, flat_amount, percentage, max_amount, grace_days,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM late_fee_settings
		WHERE entity_id = $1;
	`
	var m models.LateFeeSettings
	err := r.Pool.QueryRow(ctx, query, entityID).Scan(
		&m.EntityID,
		&m.Enabled,
		&m.FeeType,
		&m.FlatAmount,
		&m.Percentage,
		&m.MaxAmount,
		&m.GraceDays,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find late fee settings for entity "+entityID, err)
	}
	settings := mapping.ToDomainLateFeeSettings(m)
	return &settings, nil
}

// SaveLateFeeSettings upserts the policy with its audit entry.
func (r *PgxLeaseRepository) SaveLateFeeSettings(ctx context.Context, settings domain.LateFeeSettings, audit domain.AuditEntry) error {
	m := mapping.ToModelLateFeeSettings(settings)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO late_fee_settings (
			entity_id, enabled, fee_type, flat_amount, percentage, max_amount, grace_days,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (entity_id) DO UPDATE
		SET enabled = EXCLUDED.enabled, fee_type = EXCLUDED.fee_type, flat_amount = EXCLUDED.flat_amount,
		    percentage = EXCLUDED.percentage, max_amount = EXCLUDED.max_amount, grace_days = EXCLUDED.grace_days,
		    last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err = tx.Exec(ctx, query,
		m.EntityID,
		m.Enabled,
		m.FeeType,
		m.FlatAmount,
		m.Percentage,
		m.MaxAmount,
		m.GraceDays,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save late fee settings for entity "+m.EntityID, err)
	}
	if err := insertAuditEntry(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
