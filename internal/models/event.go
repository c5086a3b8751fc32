package models

import (
	"time"

	"gorm.io/datatypes"
)

type Event struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   *string           `json:"description"`
	StartDate     *time.Time        `json:"startDate"`
	EndDate       *time.Time        `json:"endDate"`
	DynamicFields datatypes.JSONMap `json:"dynamicFields"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type EventSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (e *Event) Summary() *EventSummary {
	return &EventSummary{ID: e.ID, Name: e.Name}
}
