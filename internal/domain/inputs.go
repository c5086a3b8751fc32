package domain

import (
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/event-manager/internal/models"
	"github.com/BruksfildServices01/event-manager/internal/optional"
)

// Patch types carry only the fields the caller wants changed. Nil pointers
// and unset optional fields leave the stored value as it is.

type UserPatch struct {
	Email        *string
	Name         *string
	Role         *models.Role
	PasswordHash *string
}

type EventPatch struct {
	Name          *string
	Description   optional.Field[string]
	StartDate     optional.Field[time.Time]
	EndDate       optional.Field[time.Time]
	DynamicFields datatypes.JSONMap
}

type AttributePatch struct {
	Name        *string
	DataType    *models.DataType
	AllowImage  *bool
	Description optional.Field[string]
}

type ProviderPatch struct {
	Name          *string
	Email         optional.Field[string]
	Phone         optional.Field[string]
	DynamicFields datatypes.JSONMap
}

type PermissionFlags struct {
	CanCreate *bool
	CanRead   *bool
	CanUpdate *bool
	CanDelete *bool
}

type PermissionUpsert struct {
	UserID           string
	EventAttributeID string
	PermissionFlags
}

type EventDataPatch struct {
	Data     datatypes.JSON
	Comment  optional.Field[string]
	ImageURL optional.Field[string]
}
