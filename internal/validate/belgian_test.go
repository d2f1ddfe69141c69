package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBCENumber(t *testing.T) {
	assert.NoError(t, BCENumber("0202239951"))
	assert.NoError(t, BCENumber("0202.239.951"), "separators are tolerated")
	assert.NoError(t, BCENumber("0406266979"))

	assert.ErrorIs(t, BCENumber("0202239950"), ErrInvalidBCENumber, "wrong check digits")
	assert.ErrorIs(t, BCENumber("2202239951"), ErrInvalidBCENumber, "must start with 0 or 1")
	assert.ErrorIs(t, BCENumber("020223995"), ErrInvalidBCENumber, "too short")
	assert.ErrorIs(t, BCENumber("02022399x1"), ErrInvalidBCENumber)
	assert.ErrorIs(t, BCENumber(""), ErrInvalidBCENumber)
}

func TestONSSNumber(t *testing.T) {
	assert.NoError(t, ONSSNumber("123456789"))
	assert.NoError(t, ONSSNumber("123-456-789"))

	assert.ErrorIs(t, ONSSNumber("12345678"), ErrInvalidONSSNumber)
	assert.ErrorIs(t, ONSSNumber("1234567890"), ErrInvalidONSSNumber)
	assert.ErrorIs(t, ONSSNumber("12345678x"), ErrInvalidONSSNumber)
}

func TestVATNumber(t *testing.T) {
	assert.NoError(t, VATNumber("BE0202239951"))
	assert.NoError(t, VATNumber("be 0202.239.951"))
	assert.NoError(t, VATNumber("0202239951"), "prefix is optional")

	assert.ErrorIs(t, VATNumber("BE0202239950"), ErrInvalidVATNumber)
	assert.ErrorIs(t, VATNumber("FR0202239951"), ErrInvalidVATNumber)
}

func TestNationalNumber(t *testing.T) {
	// Born before 2000: check digits against the raw nine-digit body.
	assert.NoError(t, NationalNumber("85011712392"))
	assert.NoError(t, NationalNumber("85.01.17-123.92"))

	// Born in or after 2000: body is checked with the 2 prefix.
	assert.NoError(t, NationalNumber("04051712397"))

	assert.ErrorIs(t, NationalNumber("85011712300"), ErrInvalidNationalNumber)
	assert.ErrorIs(t, NationalNumber("8501171239"), ErrInvalidNationalNumber, "too short")
	assert.ErrorIs(t, NationalNumber("8501171239x"), ErrInvalidNationalNumber)
}
