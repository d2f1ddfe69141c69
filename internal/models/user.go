package models

import "time"

type Role string

const (
	RoleCompany     Role = "company"
	RoleSecretariat Role = "secretariat"
	RoleAdmin       Role = "admin"
)

type AccountStatus string

const (
	AccountStatusPending  AccountStatus = "PENDING"
	AccountStatusActive   AccountStatus = "ACTIVE"
	AccountStatusInactive AccountStatus = "INACTIVE"
	AccountStatusLocked   AccountStatus = "LOCKED"
)

func AccountStatuses() []AccountStatus {
	return []AccountStatus{
		AccountStatusPending,
		AccountStatusActive,
		AccountStatusInactive,
		AccountStatusLocked,
	}
}

type User struct {
	ID            string
	Email         string
	PasswordHash  []byte
	DisplayName   string
	Roles         []Role
	CompanyID     *string
	AccountStatus AccountStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (u User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type Session struct {
	ID               string
	UserID           string
	DeviceID         string
	DeviceName       string
	RefreshTokenHash []byte
	IPAddress        string
	UserAgent        string
	CreatedAt        time.Time
	LastSeenAt       time.Time
	ExpiresAt        time.Time
}
