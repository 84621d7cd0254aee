// conf/validate.go

package conf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a collection of validation errors
type ValidationError struct {
	Errors []string
}

// Error returns a string representation of the validation errors
func (ve ValidationError) Error() string {
	return fmt.Sprintf("Validation errors: %v", ve.Errors)
}

// ValidateSettings validates the entire Settings struct
func ValidateSettings(settings *Settings) error {
	ve := ValidationError{}

	// Struct tag validation first
	v := validator.New()
	if err := v.Struct(settings); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				ve.Errors = append(ve.Errors, fmt.Sprintf("%s fails '%s' validation", fe.Namespace(), fe.Tag()))
			}
		} else {
			return fmt.Errorf("settings validation: %w", err)
		}
	}

	// Targeted checks the tags cannot express
	if err := validateInputSettings(&settings.Input); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateFilterSettings(&settings.Filter); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	// If there are any errors, return the ValidationError
	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

// validateInputSettings validates the input-specific settings
func validateInputSettings(settings *InputConfig) error {
	var errs []string

	// A whitespace-only column name passes the required tag but breaks
	// the header lookup later
	if strings.TrimSpace(settings.AbundanceColumn) == "" {
		errs = append(errs, "input abundance column must not be blank")
	}

	if strings.TrimSpace(settings.Pattern) == "" {
		errs = append(errs, "input pattern must not be blank")
	}

	if len(errs) > 0 {
		return fmt.Errorf("input settings errors: %v", errs)
	}

	return nil
}

// validateFilterSettings validates the data-quality filter settings
func validateFilterSettings(settings *FilterConfig) error {
	var errs []string

	// Excluded years must be plausible calendar years
	for _, year := range settings.ExcludeYears {
		if year <= 0 {
			errs = append(errs, fmt.Sprintf("filter exclude year %d is not a valid year", year))
		}
	}

	// AOU codes are positive integers
	for _, code := range settings.ExtraExclusions {
		if code <= 0 {
			errs = append(errs, fmt.Sprintf("filter extra exclusion %d is not a valid AOU code", code))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("filter settings errors: %v", errs)
	}

	return nil
}
