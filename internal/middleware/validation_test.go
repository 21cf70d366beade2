package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Request shape mirroring the supplier intake form
type supplierForm struct {
	Name         string `json:"name" validate:"required"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
	LeadTimeDays int    `json:"lead_time_days" validate:"required,gte=1,lte=365"`
}

func TestProperty_RequiredFieldValidationWorks(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("missing required fields are rejected", prop.ForAll(
		func(includeName bool, includeEmail bool, includeLeadTime bool) bool {
			// Create request with some fields missing
			reqMap := make(map[string]interface{})

			if includeName {
				reqMap["name"] = "Northloom Textiles"
			}
			if includeEmail {
				reqMap["contact_email"] = "orders@northloom.example"
			}
			if includeLeadTime {
				reqMap["lead_time_days"] = 14
			}

			allFieldsPresent := includeName && includeEmail && includeLeadTime

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var form supplierForm
			err := DecodeAndValidate(req, &form)

			if allFieldsPresent {
				return err == nil
			}
			return err != nil
		},
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Test that validation errors are properly formatted
func TestProperty_ValidationErrorsAreFormatted(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("validation errors include field information", prop.ForAll(
		func() bool {
			// Invalid email format
			reqMap := map[string]interface{}{
				"name":           "Northloom Textiles",
				"contact_email":  "not-an-email",
				"lead_time_days": 14,
			}

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var form supplierForm
			err := DecodeAndValidate(req, &form)
			if err == nil {
				return false
			}

			validationErrors := FormatValidationErrors(err)
			if len(validationErrors) == 0 {
				return false
			}

			// Each error should have a field and message
			for _, ve := range validationErrors {
				if ve.Field == "" || ve.Message == "" {
					return false
				}
			}

			return true
		},
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Test that valid requests pass validation
func TestProperty_ValidRequestsPassValidation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("valid requests pass validation", prop.ForAll(
		func(name string, leadTime int) bool {
			reqMap := map[string]interface{}{
				"name":           name,
				"contact_email":  "orders@example.com",
				"lead_time_days": leadTime,
			}

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var form supplierForm
			err := DecodeAndValidate(req, &form)

			return err == nil
		},
		gen.RegexMatch(`[A-Z][a-z]{2,15}`),
		gen.IntRange(1, 365),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Test lead time range validation
func TestProperty_LeadTimeRangeValidation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("lead time outside valid range is rejected", prop.ForAll(
		func(leadTime int) bool {
			reqMap := map[string]interface{}{
				"name":           "Northloom Textiles",
				"contact_email":  "orders@northloom.example",
				"lead_time_days": leadTime,
			}

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var form supplierForm
			err := DecodeAndValidate(req, &form)

			if leadTime >= 1 && leadTime <= 365 {
				return err == nil
			}
			return err != nil
		},
		gen.IntRange(-100, 500),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
