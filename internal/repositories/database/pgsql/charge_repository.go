package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/property_ledger/internal/models"
	"github.com/SscSPs/property_ledger/internal/utils/mapping"
	"github.com/SscSPs/property_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const chargeColumns = `
	charge_id, lease_id, period, charge_type, description, amount, paid_amount, due_date, status,
	linked_charge_id, late_fee_applied_at, late_fee_charge_id, void_reason, voided_at,
	sequence, version, created_at, created_by, last_updated_at, last_updated_by`

type PgxChargeRepository struct {
	BaseRepository
}

// newPgxChargeRepository creates a new repository for charge data.
func newPgxChargeRepository(pool *pgxpool.Pool) portsrepo.ChargeRepositoryFacade {
	return &PgxChargeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ChargeRepositoryFacade = (*PgxChargeRepository)(nil)

func scanCharge(row pgx.Row) (models.Charge, error) {
	var c models.Charge
	err := row.Scan(
		&c.ChargeID,
		&c.LeaseID,
		&c.Period,
		&c.ChargeType,
		&c.Description,
		&c.Amount,
		&c.PaidAmount,
		&c.DueDate,
		&c.Status,
		&c.LinkedChargeID,
		&c.LateFeeAppliedAt,
		&c.LateFeeChargeID,
		&c.VoidReason,
		&c.VoidedAt,
		&c.Sequence,
		&c.Version,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

func collectCharges(rows pgx.Rows, what string) ([]models.Charge, error) {
	defer rows.Close()
	charges := []models.Charge{}
	for rows.Next() {
		c, err := scanCharge(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan charge row for "+what, err)
		}
		charges = append(charges, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating charge rows for "+what, err)
	}
	return charges, nil
}

// FindChargeByID retrieves a charge by its ID.
func (r *PgxChargeRepository) FindChargeByID(ctx context.Context, chargeID string) (*domain.Charge, error) {
	query := `SELECT ` + chargeColumns + ` FROM charges WHERE charge_id = $1;`
	m, err := scanCharge(r.Pool.QueryRow(ctx, query, chargeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChargeNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find charge by ID "+chargeID, err)
	}
	c := mapping.ToDomainCharge(m)
	return &c, nil
}

// FindOutstandingChargesByLease returns the open and partial charges of a lease in allocation order.
func (r *PgxChargeRepository) FindOutstandingChargesByLease(ctx context.Context, leaseID string) ([]domain.Charge, error) {
	query := `
		SELECT ` + chargeColumns + `
		FROM charges
		WHERE lease_id = $1 AND voided_at IS NULL AND paid_amount < amount
		ORDER BY due_date, sequence;
	`
	rows, err := r.Pool.Query(ctx, query, leaseID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query outstanding charges for lease "+leaseID, err)
	}
	charges, err := collectCharges(rows, "lease "+leaseID)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainChargeSlice(charges), nil
}

// FindChargesByLease returns every charge of a lease.
func (r *PgxChargeRepository) FindChargesByLease(ctx context.Context, leaseID string) ([]domain.Charge, error) {
	query := `SELECT ` + chargeColumns + ` FROM charges WHERE lease_id = $1 ORDER BY due_date, sequence;`
	rows, err := r.Pool.Query(ctx, query, leaseID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query charges for lease "+leaseID, err)
	}
	charges, err := collectCharges(rows, "lease "+leaseID)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainChargeSlice(charges), nil
}

// ListChargesByLease retrieves a page of a lease's charges ordered by (due_date, sequence).
func (r *PgxChargeRepository) ListChargesByLease(ctx context.Context, leaseID string, filter domain.ChargeFilter, limit int, nextToken *string) ([]domain.Charge, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	// One extra row tells us whether another page exists.
	fetchLimit := limit + 1

	query := `SELECT ` + chargeColumns + ` FROM charges WHERE lease_id = $1`
	args := []any{leaseID}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		query += ` AND status = ANY($` + strconv.Itoa(len(args)) + `)`
	}

	if nextToken != nil && *nextToken != "" {
		lastDueDate, lastSequence, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		args = append(args, lastDueDate, lastSequence)
		query += ` AND (due_date, sequence) > ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY due_date, sequence LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list charges for lease "+leaseID, err)
	}
	charges, err := collectCharges(rows, "lease "+leaseID)
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if len(charges) > limit {
		charges = charges[:limit]
		last := charges[limit-1]
		token := pagination.EncodeToken(last.DueDate, last.Sequence)
		next = &token
	}
	return mapping.ToDomainChargeSlice(charges), next, nil
}

// insertCharge writes a new charge row and returns it with the database-assigned sequence.
func insertCharge(ctx context.Context, tx pgx.Tx, charge domain.Charge) (domain.Charge, error) {
	m := mapping.ToModelCharge(charge)
	if m.Version == 0 {
		m.Version = 1
	}
	query := `
		INSERT INTO charges (
			charge_id, lease_id, period, charge_type, description, amount, paid_amount, due_date, status,
			linked_charge_id, late_fee_applied_at, late_fee_charge_id, void_reason, voided_at,
			version, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING sequence;
	`
	err := tx.QueryRow(ctx, query,
		m.ChargeID,
		m.LeaseID,
		m.Period,
		m.ChargeType,
		m.Description,
		m.Amount,
		m.PaidAmount,
		m.DueDate,
		m.Status,
		m.LinkedChargeID,
		m.LateFeeAppliedAt,
		m.LateFeeChargeID,
		m.VoidReason,
		m.VoidedAt,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&m.Sequence)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Charge{}, fmt.Errorf("%w: charge %s", apperrors.ErrDuplicate, m.ChargeID)
		}
		return domain.Charge{}, apperrors.NewAppError(500, "failed to insert charge "+m.ChargeID, err)
	}
	return mapping.ToDomainCharge(m), nil
}

// updateCharge writes the mutable columns of a charge if it is still at the version it was read at.
func updateCharge(ctx context.Context, tx pgx.Tx, charge domain.Charge) error {
	m := mapping.ToModelCharge(charge)
	query := `
		UPDATE charges
		SET paid_amount = $2, status = $3, void_reason = $4, voided_at = $5,
		    late_fee_applied_at = $6, late_fee_charge_id = $7,
		    last_updated_at = $8, last_updated_by = $9, version = version + 1
		WHERE charge_id = $1 AND version = $10;
	`
	tag, err := tx.Exec(ctx, query,
		m.ChargeID,
		m.PaidAmount,
		m.Status,
		m.VoidReason,
		m.VoidedAt,
		m.LateFeeAppliedAt,
		m.LateFeeChargeID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update charge "+m.ChargeID, err)
	}
	if tag.RowsAffected() == 0 {
		return chargeConflict(ctx, tx, m.ChargeID, m.Version)
	}
	return nil
}

// chargeConflict explains why a guarded update matched no row.
func chargeConflict(ctx context.Context, tx pgx.Tx, chargeID string, expected int64) error {
	var version int64
	err := tx.QueryRow(ctx, `SELECT version FROM charges WHERE charge_id = $1;`, chargeID).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrChargeNotFound
		}
		return apperrors.NewAppError(500, "failed to re-read charge "+chargeID, err)
	}
	return fmt.Errorf("%w: charge %s is at version %d, expected %d", apperrors.ErrConcurrentModification, chargeID, version, expected)
}

// SaveCharge inserts a new charge with its audit entry.
func (r *PgxChargeRepository) SaveCharge(ctx context.Context, charge domain.Charge, audit domain.AuditEntry) (*domain.Charge, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	saved, err := insertCharge(ctx, tx, charge)
	if err != nil {
		return nil, err
	}
	if err := insertAuditEntry(ctx, tx, audit); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &saved, nil
}

// SaveVoidedCharge persists a void with its audit entry.
func (r *PgxChargeRepository) SaveVoidedCharge(ctx context.Context, charge domain.Charge, audit domain.AuditEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := updateCharge(ctx, tx, charge); err != nil {
		return err
	}
	if err := insertAuditEntry(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveLateFee stamps the original charge and inserts the fee. The stamp is conditional on the
// original being unstamped at the expected version, so only one fee can ever land per charge.
func (r *PgxChargeRepository) SaveLateFee(ctx context.Context, original domain.Charge, fee domain.Charge, audit domain.AuditEntry) (*domain.Charge, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE charges
		SET late_fee_applied_at = $2, late_fee_charge_id = $3,
		    last_updated_at = $4, last_updated_by = $5, version = version + 1
		WHERE charge_id = $1 AND version = $6 AND late_fee_applied_at IS NULL;
	`
	tag, err := tx.Exec(ctx, query,
		original.ChargeID,
		original.LateFeeAppliedAt,
		original.LateFeeChargeID,
		original.LastUpdatedAt,
		original.LastUpdatedBy,
		original.Version,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to stamp charge "+original.ChargeID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, lateFeeConflict(ctx, tx, original)
	}

	saved, err := insertCharge(ctx, tx, fee)
	if err != nil {
		return nil, err
	}
	if err := insertAuditEntry(ctx, tx, audit); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &saved, nil
}

func lateFeeConflict(ctx context.Context, tx pgx.Tx, original domain.Charge) error {
	var appliedAt *time.Time
	err := tx.QueryRow(ctx, `SELECT late_fee_applied_at FROM charges WHERE charge_id = $1;`, original.ChargeID).Scan(&appliedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrChargeNotFound
		}
		return apperrors.NewAppError(500, "failed to re-read charge "+original.ChargeID, err)
	}
	if appliedAt != nil {
		return fmt.Errorf("%w: charge %s", apperrors.ErrAlreadyApplied, original.ChargeID)
	}
	return chargeConflict(ctx, tx, original.ChargeID, original.Version)
}
