package models

import "time"

type CollaboratorType string

const (
	CollaboratorTypeEmployee CollaboratorType = "EMPLOYEE"
	CollaboratorTypeWorker   CollaboratorType = "WORKER"
	CollaboratorTypeStudent  CollaboratorType = "STUDENT"
	CollaboratorTypeFlexi    CollaboratorType = "FLEXI"
)

func CollaboratorTypes() []CollaboratorType {
	return []CollaboratorType{
		CollaboratorTypeEmployee,
		CollaboratorTypeWorker,
		CollaboratorTypeStudent,
		CollaboratorTypeFlexi,
	}
}

type Collaborator struct {
	ID             string
	CompanyID      string
	FirstName      string
	LastName       string
	NationalNumber string
	Type           CollaboratorType
	JobFunction    string
	EntryDate      time.Time
	ExitDate       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
