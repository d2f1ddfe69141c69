package models

import "time"

type NotificationType string

const (
	NotificationTypeDimona   NotificationType = "DIMONA"
	NotificationTypeAccount  NotificationType = "ACCOUNT"
	NotificationTypeDocument NotificationType = "DOCUMENT"
	NotificationTypeSystem   NotificationType = "SYSTEM"
)

func NotificationTypes() []NotificationType {
	return []NotificationType{
		NotificationTypeDimona,
		NotificationTypeAccount,
		NotificationTypeDocument,
		NotificationTypeSystem,
	}
}

type Notification struct {
	ID          string
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	Read        bool
	CreatedAt   time.Time
}
