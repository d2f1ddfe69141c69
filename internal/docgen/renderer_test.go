package docgen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"secretariat/api/internal/models"
)

var (
	testCompany = models.Company{
		Name:       "Acme BVBA",
		BCENumber:  "0202239951",
		ONSSNumber: "123456789",
	}
	testCollaborator = models.Collaborator{
		FirstName:      "Jean",
		LastName:       "Dupont",
		NationalNumber: "85011712392",
		Type:           models.CollaboratorTypeEmployee,
		JobFunction:    "warehouse operator",
		EntryDate:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
)

func TestRenderDimonaConfirmation(t *testing.T) {
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	dimona := models.Dimona{
		Type:          models.DimonaTypeIn,
		Status:        models.DimonaStatusAccepted,
		ONSSReference: "REF-42",
		PeriodStart:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:     &end,
	}

	out := string(RenderDimonaConfirmation(testCompany, testCollaborator, dimona, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)))

	assert.Contains(t, out, "DIMONA DECLARATION CONFIRMATION")
	assert.Contains(t, out, "Acme BVBA")
	assert.Contains(t, out, "0202239951")
	assert.Contains(t, out, "Jean Dupont")
	assert.Contains(t, out, "REF-42")
	assert.Contains(t, out, "Period start: 2025-01-01")
	assert.Contains(t, out, "Period end: 2025-06-30")
}

func TestRenderDimonaConfirmationOmitsEmptyFields(t *testing.T) {
	dimona := models.Dimona{
		Type:        models.DimonaTypeOut,
		Status:      models.DimonaStatusAccepted,
		PeriodStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	company := testCompany
	company.ONSSNumber = ""

	out := string(RenderDimonaConfirmation(company, testCollaborator, dimona, time.Now()))

	assert.NotContains(t, out, "ONSS number:")
	assert.NotContains(t, out, "ONSS reference:")
	assert.NotContains(t, out, "Period end:")
}

func TestRenderEmploymentCertificate(t *testing.T) {
	out := string(RenderEmploymentCertificate(testCompany, testCollaborator, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)))

	assert.Contains(t, out, "EMPLOYMENT CERTIFICATE")
	assert.Contains(t, out, "Jean Dupont")
	assert.Contains(t, out, "warehouse operator")
	assert.Contains(t, out, "since 2024-03-01")
	assert.NotContains(t, out, "until", "no exit date for current employment")
}

func TestRenderEmploymentCertificateWithExitDate(t *testing.T) {
	exit := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
	collaborator := testCollaborator
	collaborator.ExitDate = &exit

	out := string(RenderEmploymentCertificate(testCompany, collaborator, time.Now()))

	assert.Contains(t, out, "until 2025-05-31")
}
