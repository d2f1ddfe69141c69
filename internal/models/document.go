package models

import "time"

type DocumentKind string

const (
	DocumentKindDimonaConfirmation    DocumentKind = "DIMONA_CONFIRMATION"
	DocumentKindEmploymentCertificate DocumentKind = "EMPLOYMENT_CERTIFICATE"
)

type DocumentStatus string

const (
	DocumentStatusQueued DocumentStatus = "QUEUED"
	DocumentStatusReady  DocumentStatus = "READY"
	DocumentStatusFailed DocumentStatus = "FAILED"
)

type Document struct {
	ID          string
	CompanyID   string
	RequesterID string
	Kind        DocumentKind
	Status      DocumentStatus
	Bucket      string
	ObjectKey   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
