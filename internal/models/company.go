package models

import "time"

type Company struct {
	ID         string
	Name       string
	BCENumber  string
	ONSSNumber string
	VATNumber  string
	Address    string
	City       string
	PostalCode string
	Confirmed  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
