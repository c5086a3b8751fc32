package models

import (
	"time"

	"gorm.io/datatypes"
)

// EventData is one submitted value against an attribute. Rows are appended,
// an attribute keeps its whole submission history.
type EventData struct {
	ID               string         `json:"id"`
	EventID          string         `json:"eventId"`
	EventAttributeID string         `json:"eventAttributeId"`
	UserID           string         `json:"userId"`
	Data             datatypes.JSON `json:"data"`
	Comment          *string        `json:"comment"`
	ImageURL         *string        `json:"imageUrl"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
