package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var uaPhoneRegex = regexp.MustCompile(`^\+?38?(0\d{9})$`)

// registerRules регистрирует доменные правила валидации.
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("ua_phone", func(fl validator.FieldLevel) bool {
		phone := strings.ReplaceAll(fl.Field().String(), " ", "")
		phone = strings.ReplaceAll(phone, "-", "")
		return uaPhoneRegex.MatchString(phone)
	}); err != nil {
		return err
	}

	if err := v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "high", "medium", "low":
			return true
		}
		return false
	}); err != nil {
		return err
	}

	if err := v.RegisterValidation("lifecycle_status", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "planning", "in_progress", "on_hold", "completed", "cancelled":
			return true
		}
		return false
	}); err != nil {
		return err
	}

	return nil
}
