package eventdata

import (
	"context"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/event-manager/internal/audit"
	"github.com/BruksfildServices01/event-manager/internal/domain"
	"github.com/BruksfildServices01/event-manager/internal/domain/access"
	"github.com/BruksfildServices01/event-manager/internal/dto"
	"github.com/BruksfildServices01/event-manager/internal/httperr"
	"github.com/BruksfildServices01/event-manager/internal/models"
	"github.com/BruksfildServices01/event-manager/internal/storage"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	User             *models.User
	EventID          string
	EventAttributeID string
	Data             datatypes.JSON
	Comment          *string
	Image            *storage.Upload
}

// ======================================================
// USE CASE
// ======================================================

type Create struct {
	repo   domain.Repository
	access *access.Evaluator
	images ImageStore
	audit  *audit.Dispatcher
}

func NewCreate(
	repo domain.Repository,
	access *access.Evaluator,
	images ImageStore,
	audit *audit.Dispatcher,
) *Create {
	return &Create{
		repo:   repo,
		access: access,
		images: images,
		audit:  audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Create) Execute(ctx context.Context, in CreateInput) (*dto.EventDataView, error) {
	if in.EventID == "" || in.EventAttributeID == "" || len(in.Data) == 0 {
		return nil, httperr.ErrValidation("fields_required", "eventId, eventAttributeId and data are required")
	}

	if err := uc.access.Authorize(ctx, in.User, access.OpCreate, in.EventAttributeID); err != nil {
		return nil, err
	}

	attr, err := uc.repo.FindAttributeByID(ctx, in.EventAttributeID)
	if err != nil {
		return nil, err
	}
	if attr.EventID != in.EventID {
		return nil, httperr.ErrValidation("attribute_event_mismatch", "the attribute does not belong to this event")
	}

	if err := access.CheckImage(attr, in.Image != nil); err != nil {
		return nil, err
	}

	var imageURL *string
	if in.Image != nil {
		url, err := uc.images.Save(ctx, *in.Image)
		if err != nil {
			return nil, err
		}
		imageURL = &url
	}

	row := &models.EventData{
		EventID:          in.EventID,
		EventAttributeID: in.EventAttributeID,
		UserID:           in.User.ID,
		Data:             in.Data,
		Comment:          in.Comment,
		ImageURL:         imageURL,
	}
	if err := uc.repo.CreateEventData(ctx, row); err != nil {
		if imageURL != nil {
			uc.images.Remove(ctx, *imageURL)
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.User.ID,
		Action:   "create",
		Entity:   entity,
		EntityID: row.ID,
		Metadata: map[string]any{"eventAttributeId": row.EventAttributeID, "image": imageURL != nil},
	})

	return uc.repo.GetEventDataView(ctx, row.ID)
}
