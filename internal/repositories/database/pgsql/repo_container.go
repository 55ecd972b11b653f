package pgsql

import (
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	chargeRepo := newPgxChargeRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)
	leaseRepo := newPgxLeaseRepository(dbPool)
	mortgageRepo := newPgxMortgageRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ChargeRepo:        chargeRepo,
		PaymentRepo:       paymentRepo,
		LeaseRepo:         leaseRepo,
		LateFeePolicyRepo: leaseRepo,
		MortgageRepo:      mortgageRepo,
	}
}
