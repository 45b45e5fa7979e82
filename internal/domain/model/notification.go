package model

import "github.com/google/uuid"

// Notification is an e-mail request sent to a customer.
type Notification struct {
	OrderID uuid.UUID
	To      string
	Name    string
	Subject string
	Body    string
}
