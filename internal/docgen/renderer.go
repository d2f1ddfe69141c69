// Package docgen renders the documents companies can request and runs the
// worker loop that produces them.
package docgen

import (
	"fmt"
	"strings"
	"time"

	"secretariat/api/internal/models"
)

const renderedContentType = "text/plain; charset=utf-8"

// RenderDimonaConfirmation produces the confirmation sheet for an accepted
// declaration.
func RenderDimonaConfirmation(company models.Company, collaborator models.Collaborator, dimona models.Dimona, now time.Time) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "DIMONA DECLARATION CONFIRMATION\n")
	fmt.Fprintf(&b, "Issued: %s\n\n", now.Format("2006-01-02"))

	fmt.Fprintf(&b, "Employer: %s\n", company.Name)
	fmt.Fprintf(&b, "BCE number: %s\n", company.BCENumber)
	if company.ONSSNumber != "" {
		fmt.Fprintf(&b, "ONSS number: %s\n", company.ONSSNumber)
	}
	fmt.Fprintf(&b, "\n")

	fmt.Fprintf(&b, "Worker: %s %s\n", collaborator.FirstName, collaborator.LastName)
	fmt.Fprintf(&b, "National number: %s\n", collaborator.NationalNumber)
	fmt.Fprintf(&b, "Worker type: %s\n\n", collaborator.Type)

	fmt.Fprintf(&b, "Declaration type: %s\n", dimona.Type)
	fmt.Fprintf(&b, "Status: %s\n", dimona.Status)
	if dimona.ONSSReference != "" {
		fmt.Fprintf(&b, "ONSS reference: %s\n", dimona.ONSSReference)
	}
	fmt.Fprintf(&b, "Period start: %s\n", dimona.PeriodStart.Format("2006-01-02"))
	if dimona.PeriodEnd != nil {
		fmt.Fprintf(&b, "Period end: %s\n", dimona.PeriodEnd.Format("2006-01-02"))
	}

	return []byte(b.String())
}

// RenderEmploymentCertificate produces the certificate attesting a
// collaborator's employment with the company.
func RenderEmploymentCertificate(company models.Company, collaborator models.Collaborator, now time.Time) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "EMPLOYMENT CERTIFICATE\n")
	fmt.Fprintf(&b, "Issued: %s\n\n", now.Format("2006-01-02"))

	fmt.Fprintf(&b, "%s (BCE %s) certifies that\n\n", company.Name, company.BCENumber)
	fmt.Fprintf(&b, "%s %s (national number %s)\n", collaborator.FirstName, collaborator.LastName, collaborator.NationalNumber)
	fmt.Fprintf(&b, "is employed as %s since %s", collaborator.JobFunction, collaborator.EntryDate.Format("2006-01-02"))
	if collaborator.ExitDate != nil {
		fmt.Fprintf(&b, " until %s", collaborator.ExitDate.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, ".\n\nWorker type: %s\n", collaborator.Type)

	return []byte(b.String())
}
