package models

import "time"

// DataType is advisory metadata; submitted values are never checked against it.
type DataType string

const (
	DataTypeText    DataType = "TEXT"
	DataTypeNumber  DataType = "NUMBER"
	DataTypeDate    DataType = "DATE"
	DataTypeBoolean DataType = "BOOLEAN"
)

func (d DataType) Valid() bool {
	switch d {
	case DataTypeText, DataTypeNumber, DataTypeDate, DataTypeBoolean:
		return true
	}
	return false
}

type EventAttribute struct {
	ID          string   `json:"id"`
	EventID     string   `json:"eventId"`
	Name        string   `json:"name"`
	DataType    DataType `json:"dataType"`
	AllowImage  bool     `json:"allowImage"`
	Description *string  `json:"description"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
