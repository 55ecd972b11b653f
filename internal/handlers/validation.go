package handlers

import (
	"fmt"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the ledger's custom binding tags to gin's validator:
// "chargetype" accepts a known charge type and "period" a YYYY-MM billing period.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("chargetype", func(fl validator.FieldLevel) bool {
		return domain.ChargeType(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("period", func(fl validator.FieldLevel) bool {
		return domain.BillingPeriod(fl.Field().String()).Validate() == nil
	})
}
