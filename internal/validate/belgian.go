// Package validate checks Belgian registration identifiers before any write
// reaches the database or the ONSS. All checks are local and side-effect free.
package validate

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrInvalidBCENumber      = errors.New("invalid BCE number")
	ErrInvalidONSSNumber     = errors.New("invalid ONSS number")
	ErrInvalidVATNumber      = errors.New("invalid VAT number")
	ErrInvalidNationalNumber = errors.New("invalid national number")
)

// digits strips the separators commonly typed into Belgian identifiers.
func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case ' ', '.', '-', '/':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// BCENumber validates a Belgian enterprise number: ten digits starting with
// 0 or 1, where the last two digits equal 97 minus the first eight modulo 97.
func BCENumber(value string) error {
	s := digits(value)
	if len(s) != 10 || !allDigits(s) {
		return ErrInvalidBCENumber
	}
	if s[0] != '0' && s[0] != '1' {
		return ErrInvalidBCENumber
	}
	body, _ := strconv.ParseInt(s[:8], 10, 64)
	check, _ := strconv.ParseInt(s[8:], 10, 64)
	if 97-(body%97) != check {
		return ErrInvalidBCENumber
	}
	return nil
}

// ONSSNumber validates the shape of an ONSS registration number (nine
// digits). The ONSS does not publish a check-digit scheme for it, so only the
// shape is enforced.
func ONSSNumber(value string) error {
	s := digits(value)
	if len(s) != 9 || !allDigits(s) {
		return ErrInvalidONSSNumber
	}
	return nil
}

// VATNumber validates a Belgian VAT number: optional "BE" prefix followed by
// a valid enterprise number.
func VATNumber(value string) error {
	s := strings.ToUpper(strings.TrimSpace(value))
	s = strings.TrimPrefix(s, "BE")
	if BCENumber(s) != nil {
		return ErrInvalidVATNumber
	}
	return nil
}

// NationalNumber validates a Belgian national register number: eleven digits
// whose check digits are 97 minus the first nine modulo 97, computed against
// the raw number for people born before 2000 and against the number prefixed
// with 2 for those born after.
func NationalNumber(value string) error {
	s := digits(value)
	if len(s) != 11 || !allDigits(s) {
		return ErrInvalidNationalNumber
	}
	body, _ := strconv.ParseInt(s[:9], 10, 64)
	check, _ := strconv.ParseInt(s[9:], 10, 64)
	if 97-(body%97) == check {
		return nil
	}
	if 97-((2000000000+body)%97) == check {
		return nil
	}
	return ErrInvalidNationalNumber
}
