package models

// Badge carries the display label and color the front end renders next to an
// enum value. Mappings are total: unknown values fall back to a neutral badge.
type Badge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var neutralBadge = Badge{Label: "Unknown", Color: "gray"}

func DimonaStatusBadge(status DimonaStatus) Badge {
	switch status {
	case DimonaStatusToConfirm:
		return Badge{Label: "To confirm", Color: "orange"}
	case DimonaStatusToSend:
		return Badge{Label: "To send", Color: "blue"}
	case DimonaStatusInProgress:
		return Badge{Label: "In progress", Color: "purple"}
	case DimonaStatusRejected:
		return Badge{Label: "Rejected", Color: "red"}
	case DimonaStatusAccepted:
		return Badge{Label: "Accepted", Color: "green"}
	default:
		return neutralBadge
	}
}

func DimonaTypeBadge(t DimonaType) Badge {
	switch t {
	case DimonaTypeIn:
		return Badge{Label: "Entry", Color: "green"}
	case DimonaTypeOut:
		return Badge{Label: "Exit", Color: "red"}
	case DimonaTypeUpdate:
		return Badge{Label: "Update", Color: "blue"}
	default:
		return neutralBadge
	}
}

func AccountStatusBadge(status AccountStatus) Badge {
	switch status {
	case AccountStatusPending:
		return Badge{Label: "Pending", Color: "orange"}
	case AccountStatusActive:
		return Badge{Label: "Active", Color: "green"}
	case AccountStatusInactive:
		return Badge{Label: "Inactive", Color: "gray"}
	case AccountStatusLocked:
		return Badge{Label: "Locked", Color: "red"}
	default:
		return neutralBadge
	}
}

func NotificationTypeBadge(t NotificationType) Badge {
	switch t {
	case NotificationTypeDimona:
		return Badge{Label: "Dimona", Color: "blue"}
	case NotificationTypeAccount:
		return Badge{Label: "Account", Color: "green"}
	case NotificationTypeDocument:
		return Badge{Label: "Document", Color: "purple"}
	case NotificationTypeSystem:
		return Badge{Label: "System", Color: "gray"}
	default:
		return neutralBadge
	}
}
