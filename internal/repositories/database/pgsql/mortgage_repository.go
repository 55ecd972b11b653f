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

type PgxMortgageRepository struct {
	BaseRepository
}

// newPgxMortgageRepository creates a new repository for mortgages and their payment history.
func newPgxMortgageRepository(pool *pgxpool.Pool) portsrepo.MortgageRepositoryFacade {
	return &PgxMortgageRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MortgageRepositoryFacade = (*PgxMortgageRepository)(nil)

// FindMortgageByID retrieves a mortgage by its ID.
func (r *PgxMortgageRepository) FindMortgageByID(ctx context.Context, mortgageID string) (*domain.Mortgage, error) {
	query := `
		SELECT mortgage_id, property_id, lender, mortgage_type, original_amount, current_balance, interest_rate,
		       term_months, monthly_payment, escrow_amount, payment_due_day, origination_date, next_payment_date,
		       status, version, created_at, created_by, last_updated_at, last_updated_by
		FROM mortgages
		WHERE mortgage_id = $1;
	`
	var m models.Mortgage
	err := r.Pool.QueryRow(ctx, query, mortgageID).Scan(
		&m.MortgageID,
		&m.PropertyID,
		&m.Lender,
		&m.MortgageType,
		&m.OriginalAmount,
		&m.CurrentBalance,
		&m.InterestRate,
		&m.TermMonths,
		&m.MonthlyPayment,
		&m.EscrowAmount,
		&m.PaymentDueDay,
		&m.OriginationDate,
		&m.NextPaymentDate,
		&m.Status,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMortgageNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find mortgage by ID "+mortgageID, err)
	}
	mortgage := mapping.ToDomainMortgage(m)
	return &mortgage, nil
}

// ListMortgagePayments returns the payment history of a mortgage, oldest first.
func (r *PgxMortgageRepository) ListMortgagePayments(ctx context.Context, mortgageID string) ([]domain.MortgagePayment, error) {
	query := `
		SELECT mortgage_payment_id, mortgage_id, payment_date, due_date, amount, principal_amount, interest_amount,
		       escrow_amount, remaining_balance, status, created_at, created_by, last_updated_at, last_updated_by
		FROM mortgage_payments
		WHERE mortgage_id = $1
		ORDER BY payment_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, mortgageID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for mortgage "+mortgageID, err)
	}
	defer rows.Close()

	payments := []domain.MortgagePayment{}
	for rows.Next() {
		var p models.MortgagePayment
		if err := rows.Scan(
			&p.MortgagePaymentID,
			&p.MortgageID,
			&p.PaymentDate,
			&p.DueDate,
			&p.Amount,
			&p.PrincipalAmount,
			&p.InterestAmount,
			&p.EscrowAmount,
			&p.RemainingBalance,
			&p.Status,
			&p.CreatedAt,
			&p.CreatedBy,
			&p.LastUpdatedAt,
			&p.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row for mortgage "+mortgageID, err)
		}
		payments = append(payments, mapping.ToDomainMortgagePayment(p))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows for mortgage "+mortgageID, err)
	}
	return payments, nil
}

// SaveMortgage inserts a new mortgage with its audit entry.
func (r *PgxMortgageRepository) SaveMortgage(ctx context.Context, mortgage domain.Mortgage, audit domain.AuditEntry) error {
	m := mapping.ToModelMortgage(mortgage)
	if m.Version == 0 {
		m.Version = 1
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO mortgages (
			mortgage_id, property_id, lender, mortgage_type, original_amount, current_balance, interest_rate,
			term_months, monthly_payment, escrow_amount, payment_due_day, origination_date, next_payment_date,
			status, version, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err = tx.Exec(ctx, query,
		m.MortgageID,
		m.PropertyID,
		m.Lender,
		m.MortgageType,
		m.OriginalAmount,
		m.CurrentBalance,
		m.InterestRate,
		m.TermMonths,
		m.MonthlyPayment,
		m.EscrowAmount,
		m.PaymentDueDay,
		m.OriginationDate,
		m.NextPaymentDate,
		m.Status,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: mortgage %s", apperrors.ErrDuplicate, m.MortgageID)
		}
		return apperrors.NewAppError(500, "failed to insert mortgage "+m.MortgageID, err)
	}
	if err := insertAuditEntry(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveMortgagePayment appends the payment and updates the mortgage under its version guard.
func (r *PgxMortgageRepository) SaveMortgagePayment(ctx context.Context, mortgage domain.Mortgage, payment domain.MortgagePayment, audit domain.AuditEntry) error {
	m := mapping.ToModelMortgage(mortgage)
	p := mapping.ToModelMortgagePayment(payment)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	updateQuery := `
		UPDATE mortgages
		SET current_balance = $2, next_payment_date = $3, status = $4,
		    last_updated_at = $5, last_updated_by = $6, version = version + 1
		WHERE mortgage_id = $1 AND version = $7;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		m.MortgageID,
		m.CurrentBalance,
		m.NextPaymentDate,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update mortgage "+m.MortgageID, err)
	}
	if tag.RowsAffected() == 0 {
		var version int64
		err := tx.QueryRow(ctx, `SELECT version FROM mortgages WHERE mortgage_id = $1;`, m.MortgageID).Scan(&version)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrMortgageNotFound
		}
		if err != nil {
			return apperrors.NewAppError(500, "failed to re-read mortgage "+m.MortgageID, err)
		}
		return fmt.Errorf("%w: mortgage %s is at version %d, expected %d", apperrors.ErrConcurrentModification, m.MortgageID, version, m.Version)
	}

	paymentQuery := `
		INSERT INTO mortgage_payments (
			mortgage_payment_id, mortgage_id, payment_date, due_date, amount, principal_amount, interest_amount,
			escrow_amount, remaining_balance, status, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, paymentQuery,
		p.MortgagePaymentID,
		p.MortgageID,
		p.PaymentDate,
		p.DueDate,
		p.Amount,
		p.PrincipalAmount,
		p.InterestAmount,
		p.EscrowAmount,
		p.RemainingBalance,
		p.Status,
		p.CreatedAt,
		p.CreatedBy,
		p.LastUpdatedAt,
		p.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment for mortgage "+m.MortgageID, err)
	}
	if err := insertAuditEntry(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
