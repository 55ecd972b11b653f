package services

import (
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The options (clock, locker) are shared by every service.
func NewServiceContainer(repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Charge:   NewChargeService(repos.ChargeRepo, repos.LeaseRepo, options...),
		Payment:  NewPaymentService(repos.PaymentRepo, repos.ChargeRepo, repos.LeaseRepo, options...),
		LateFee:  NewLateFeeService(repos.ChargeRepo, repos.LeaseRepo, repos.LateFeePolicyRepo, options...),
		Mortgage: NewMortgageService(repos.MortgageRepo, options...),
		Summary:  NewSummaryService(repos.ChargeRepo, repos.LeaseRepo, repos.MortgageRepo, options...),
	}
}
