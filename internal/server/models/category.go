package models

import "time"

// Category classifies expenses. Default categories have no owning user and
// are visible to everyone; user-created ones belong to a single account.
type Category struct {
	ID          int64
	Name        string
	Description string
	IconName    string
	Color       string
	IsDefault   bool
	UserID      *int64
	CreatedAt   time.Time
}
