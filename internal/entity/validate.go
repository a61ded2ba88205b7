package entity

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidField is the root of every field validation failure in this
// package; wrap details around it so callers can errors.Is against one value.
var ErrInvalidField = errors.New("invalid field")

var (
	dniPattern     = regexp.MustCompile(`^\d{7,8}$`)
	licensePattern = regexp.MustCompile(`^MP-\d{4,6}$`)
)

func nonBlank(value, name string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%w: %s must not be blank", ErrInvalidField, name)
	}
	return value, nil
}

func validDNI(dni string) (string, error) {
	if !dniPattern.MatchString(dni) {
		return "", fmt.Errorf("%w: DNI must be 7 or 8 digits, got %q", ErrInvalidField, dni)
	}
	return dni, nil
}

func validLicense(number string) (string, error) {
	if !licensePattern.MatchString(number) {
		return "", fmt.Errorf("%w: license number must look like MP-12345, got %q", ErrInvalidField, number)
	}
	return number, nil
}
