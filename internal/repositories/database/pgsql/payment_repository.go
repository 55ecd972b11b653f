package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/property_ledger/internal/models"
	"github.com/SscSPs/property_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payments and their allocations.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

// findAllocations loads allocations for the given payments, grouped by payment in Position order.
func (r *PgxPaymentRepository) findAllocations(ctx context.Context, paymentIDs []string) (map[string][]models.PaymentAllocation, error) {
	query := `
		SELECT payment_id, charge_id, amount, position
		FROM payment_allocations
		WHERE payment_id = ANY($1)
		ORDER BY payment_id, position;
	`
	rows, err := r.Pool.Query(ctx, query, paymentIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payment allocations", err)
	}
	defer rows.Close()

	byPayment := make(map[string][]models.PaymentAllocation, len(paymentIDs))
	for rows.Next() {
		var a models.PaymentAllocation
		if err := rows.Scan(&a.PaymentID, &a.ChargeID, &a.Amount, &a.Position); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment allocation row", err)
		}
		byPayment[a.PaymentID] = append(byPayment[a.PaymentID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment allocation rows", err)
	}
	return byPayment, nil
}

func scanPayment(row pgx.Row) (models.Payment, error) {
	var p models.Payment
	err := row.Scan(
		&p.PaymentID,
		&p.LeaseID,
		&p.TenantID,
		&p.Amount,
		&p.Method,
		&p.Memo,
		&p.CreatedAt,
		&p.CreatedBy,
	)
	return p, err
}

// FindPaymentByID retrieves a payment with its allocations.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `
		SELECT payment_id, lease_id, tenant_id, amount, method, memo, created_at, created_by
		FROM payments
		WHERE payment_id = $1;
	`
	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment by ID "+paymentID, err)
	}

	allocations, err := r.findAllocations(ctx, []string{paymentID})
	if err != nil {
		return nil, err
	}
	p, err := mapping.ToDomainPayment(m, allocations[paymentID])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to map payment "+paymentID, err)
	}
	return &p, nil
}

// ListPaymentsByLease returns a lease's payments, newest first.
func (r *PgxPaymentRepository) ListPaymentsByLease(ctx context.Context, leaseID string) ([]domain.Payment, error) {
	query := `
		SELECT payment_id, lease_id, tenant_id, amount, method, memo, created_at, created_by
		FROM payments
		WHERE lease_id = $1
		ORDER BY created_at DESC, payment_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, leaseID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for lease "+leaseID, err)
	}
	defer rows.Close()

	found := []models.Payment{}
	ids := []string{}
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row for lease "+leaseID, err)
		}
		found = append(found, m)
		ids = append(ids, m.PaymentID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows for lease "+leaseID, err)
	}
	rows.Close()

	payments := make([]domain.Payment, 0, len(found))
	if len(found) == 0 {
		return payments, nil
	}
	allocations, err := r.findAllocations(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, m := range found {
		p, err := mapping.ToDomainPayment(m, allocations[m.PaymentID])
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to map payment "+m.PaymentID, err)
		}
		payments = append(payments, p)
	}
	return payments, nil
}

// SavePayment inserts the payment and its allocations, writes every touched charge under its
// version guard and appends the audit entry, all in one transaction.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment, touched []domain.Charge, audit domain.AuditEntry) error {
	m, allocations, err := mapping.ToModelPayment(payment)
	if err != nil {
		return err
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	paymentQuery := `
		INSERT INTO payments (payment_id, lease_id, tenant_id, amount, method, memo, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, paymentQuery,
		m.PaymentID,
		m.LeaseID,
		m.TenantID,
		m.Amount,
		m.Method,
		m.Memo,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: payment %s", apperrors.ErrDuplicate, m.PaymentID)
		}
		return apperrors.NewAppError(500, "failed to insert payment "+m.PaymentID, err)
	}

	// Charges first: a stale version aborts before any allocation row is queued.
	for _, c := range touched {
		if err := updateCharge(ctx, tx, c); err != nil {
			return err
		}
	}

	if len(allocations) > 0 {
		batch := &pgx.Batch{}
		allocationQuery := `
			INSERT INTO payment_allocations (payment_id, charge_id, amount, position)
			VALUES ($1, $2, $3, $4);
		`
		for _, a := range allocations {
			batch.Queue(allocationQuery, a.PaymentID, a.ChargeID, a.Amount, a.Position)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to insert allocations for payment "+m.PaymentID, err)
		}
	}

	if err := insertAuditEntry(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
