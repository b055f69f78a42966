package utils

import (
	"mdtcare-service/internal/pkg/constvars"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("specialty", validateSpecialty)
	validate.RegisterValidation("priority", validatePriority)
	validate.RegisterValidation("urgency", validatePriority)
	validate.RegisterValidation("medication_action", validateMedicationAction)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateSpecialty(fl validator.FieldLevel) bool {
	value := strings.ToLower(strings.TrimSpace(fl.Field().String()))
	return constvars.KnownSpecialties[value]
}

func validatePriority(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "routine", "urgent", "critical":
		return true
	}
	return false
}

func validateMedicationAction(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "continue", "modify", "discontinue", "add":
		return true
	}
	return false
}
