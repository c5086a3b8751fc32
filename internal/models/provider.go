package models

import (
	"time"

	"gorm.io/datatypes"
)

type Provider struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Email         *string           `json:"email"`
	Phone         *string           `json:"phone"`
	DynamicFields datatypes.JSONMap `json:"dynamicFields"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EventProvider associates a provider with an event. The pair is unique.
type EventProvider struct {
	ID         string    `json:"id"`
	EventID    string    `json:"eventId"`
	ProviderID string    `json:"providerId"`
	CreatedAt  time.Time `json:"createdAt"`
}
