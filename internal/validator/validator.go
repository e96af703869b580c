// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// addressRegex matches opaque wallet addresses: 3-64 characters drawn from
// letters, digits, and the separators used by common address encodings.
var addressRegex = regexp.MustCompile(`^[a-zA-Z0-9:_.-]{3,64}$`)

// tagRegex matches dataset tags: short lowercase slugs.
var tagRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,31}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("address", validateAddress)
		_ = v.RegisterValidation("basis_points", validateBasisPoints)
		_ = v.RegisterValidation("dataset_tag", validateDatasetTag)
	}
}

func validateAddress(fl validator.FieldLevel) bool {
	return addressRegex.MatchString(fl.Field().String())
}

func validateBasisPoints(fl validator.FieldLevel) bool {
	bp := fl.Field().Int()
	return bp > 0 && bp <= 10000
}

func validateDatasetTag(fl validator.FieldLevel) bool {
	return tagRegex.MatchString(fl.Field().String())
}
