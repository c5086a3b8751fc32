package domain

import (
	"context"

	"github.com/BruksfildServices01/event-manager/internal/dto"
	"github.com/BruksfildServices01/event-manager/internal/models"
)

// Cascade is the outcome of a delete that purges dependent event data.
// Found is false for an unknown id. ImageURLs lists the images of the purged
// rows; the store does not own them, so the caller releases them.
type Cascade struct {
	Found     bool
	ImageURLs []string
}

// Repository is the data store. Lookups of unknown ids return ErrNotFound,
// deletes report whether a row existed and apply the relational cascades.
type Repository interface {
	// -------- Users --------
	CreateUser(ctx context.Context, u *models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id string, p UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id string) (Cascade, error)
	CountUsers(ctx context.Context) (int, error)

	// -------- Events --------
	CreateEvent(ctx context.Context, e *models.Event) error
	FindEventByID(ctx context.Context, id string) (*models.Event, error)
	GetEventDetail(ctx context.Context, id string) (*dto.EventDetail, error)
	ListEvents(ctx context.Context) ([]dto.EventListItem, error)
	UpdateEvent(ctx context.Context, id string, p EventPatch) (*models.Event, error)
	DeleteEvent(ctx context.Context, id string) (Cascade, error)

	// -------- Event attributes --------
	CreateAttribute(ctx context.Context, a *models.EventAttribute) error
	FindAttributeByID(ctx context.Context, id string) (*models.EventAttribute, error)
	ListAttributesByEvent(ctx context.Context, eventID string) ([]models.EventAttribute, error)
	UpdateAttribute(ctx context.Context, id string, p AttributePatch) (*models.EventAttribute, error)
	DeleteAttribute(ctx context.Context, id string) (Cascade, error)

	// -------- Providers --------
	CreateProvider(ctx context.Context, p *models.Provider) error
	FindProviderByID(ctx context.Context, id string) (*models.Provider, error)
	GetProviderDetail(ctx context.Context, id string) (*dto.ProviderDetail, error)
	ListProviders(ctx context.Context) ([]dto.ProviderListItem, error)
	UpdateProvider(ctx context.Context, id string, p ProviderPatch) (*models.Provider, error)
	DeleteProvider(ctx context.Context, id string) (bool, error)

	// -------- Event ↔ provider --------
	CreateEventProvider(ctx context.Context, eventID, providerID string) (*dto.EventProviderView, error)
	DeleteEventProvider(ctx context.Context, eventID, providerID string) (bool, error)

	// -------- Permissions --------
	UpsertPermission(ctx context.Context, in PermissionUpsert) (*models.Permission, bool, error)
	FindPermissionByID(ctx context.Context, id string) (*models.Permission, error)
	FindPermission(ctx context.Context, userID, attributeID string) (*models.Permission, error)
	ListPermissionsByUser(ctx context.Context, userID string) ([]dto.PermissionView, error)
	ListPermissionsByAttribute(ctx context.Context, attributeID string) ([]dto.PermissionView, error)
	GetPermissionView(ctx context.Context, id string) (*dto.PermissionView, error)
	UpdatePermission(ctx context.Context, id string, f PermissionFlags) (*models.Permission, error)
	DeletePermission(ctx context.Context, id string) (bool, error)

	// -------- Event data --------
	CreateEventData(ctx context.Context, d *models.EventData) error
	FindEventDataByID(ctx context.Context, id string) (*models.EventData, error)
	GetEventDataView(ctx context.Context, id string) (*dto.EventDataView, error)
	ListEventDataByAttribute(ctx context.Context, attributeID string) ([]dto.EventDataView, error)
	ListEventDataByEvent(ctx context.Context, eventID string) ([]dto.EventDataView, error)
	UpdateEventData(ctx context.Context, id string, p EventDataPatch) (*models.EventData, error)
	DeleteEventData(ctx context.Context, id string) (bool, error)
}
