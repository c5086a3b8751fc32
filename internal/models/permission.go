package models

import "time"

// Permission is the four-flag ACL row of one user on one event attribute.
// At most one row exists per (UserID, EventAttributeID).
type Permission struct {
	ID               string `json:"id"`
	UserID           string `json:"userId"`
	EventAttributeID string `json:"eventAttributeId"`

	CanCreate bool `json:"canCreate"`
	CanRead   bool `json:"canRead"`
	CanUpdate bool `json:"canUpdate"`
	CanDelete bool `json:"canDelete"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
