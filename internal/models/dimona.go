package models

import "time"

type DimonaType string

const (
	DimonaTypeIn     DimonaType = "IN"
	DimonaTypeOut    DimonaType = "OUT"
	DimonaTypeUpdate DimonaType = "UPDATE"
)

func DimonaTypes() []DimonaType {
	return []DimonaType{DimonaTypeIn, DimonaTypeOut, DimonaTypeUpdate}
}

type DimonaStatus string

const (
	DimonaStatusToConfirm  DimonaStatus = "TO_CONFIRM"
	DimonaStatusToSend     DimonaStatus = "TO_SEND"
	DimonaStatusInProgress DimonaStatus = "IN_PROGRESS"
	DimonaStatusRejected   DimonaStatus = "REJECTED"
	DimonaStatusAccepted   DimonaStatus = "ACCEPTED"
)

func DimonaStatuses() []DimonaStatus {
	return []DimonaStatus{
		DimonaStatusToConfirm,
		DimonaStatusToSend,
		DimonaStatusInProgress,
		DimonaStatusRejected,
		DimonaStatusAccepted,
	}
}

type Dimona struct {
	ID             string
	CompanyID      string
	CollaboratorID string
	Type           DimonaType
	Status         DimonaStatus
	PeriodStart    time.Time
	PeriodEnd      *time.Time
	ONSSReference  string
	StatusReason   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
