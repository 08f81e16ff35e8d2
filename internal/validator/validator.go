// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"projectdesk/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("charge_period", validateChargePeriod)
		_ = v.RegisterValidation("entry_type", validateEntryType)
		_ = v.RegisterValidation("payment_status", validatePaymentStatus)
		_ = v.RegisterValidation("iso_date", validateISODate)
	}
}

func validateChargePeriod(fl validator.FieldLevel) bool {
	return models.ChargePeriod(fl.Field().String()).IsValid()
}

func validateEntryType(fl validator.FieldLevel) bool {
	return models.EntryType(fl.Field().String()).IsValid()
}

func validatePaymentStatus(fl validator.FieldLevel) bool {
	return models.PaymentStatus(fl.Field().String()).IsValid()
}

// validateISODate accepts calendar days written as YYYY-MM-DD.
func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}
