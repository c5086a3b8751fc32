package dto

import "github.com/BruksfildServices01/event-manager/internal/models"

type ProviderRef struct {
	Provider *models.Provider `json:"provider"`
}

type EventRef struct {
	Event *models.EventSummary `json:"event"`
}

type EventCount struct {
	EventData int `json:"eventData"`
}

type ProviderCount struct {
	Events int `json:"events"`
}

// EventListItem is one row of the event listing.
type EventListItem struct {
	models.Event
	Attributes []models.EventAttribute `json:"attributes"`
	Providers  []ProviderRef           `json:"providers"`
	Count      EventCount              `json:"_count"`
}

type EventDetail struct {
	models.Event
	Attributes []models.EventAttribute `json:"attributes"`
	Providers  []ProviderRef           `json:"providers"`
}

type ProviderListItem struct {
	models.Provider
	Count ProviderCount `json:"_count"`
}

type ProviderDetail struct {
	models.Provider
	Events []EventRef `json:"events"`
}

type EventProviderView struct {
	models.EventProvider
	Provider *models.Provider `json:"provider"`
}

type EventDataView struct {
	models.EventData
	User           *models.UserSummary    `json:"user,omitempty"`
	EventAttribute *models.EventAttribute `json:"eventAttribute,omitempty"`
}

type AttributeWithEvent struct {
	models.EventAttribute
	Event *models.EventSummary `json:"event"`
}

type PermissionView struct {
	models.Permission
	User           *models.UserSummary `json:"user,omitempty"`
	EventAttribute *AttributeWithEvent `json:"eventAttribute,omitempty"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

type LoginUser struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  models.Role `json:"role"`
}
