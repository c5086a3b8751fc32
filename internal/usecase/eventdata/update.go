package eventdata

import (
	"context"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/event-manager/internal/audit"
	"github.com/BruksfildServices01/event-manager/internal/domain"
	"github.com/BruksfildServices01/event-manager/internal/domain/access"
	"github.com/BruksfildServices01/event-manager/internal/dto"
	"github.com/BruksfildServices01/event-manager/internal/models"
	"github.com/BruksfildServices01/event-manager/internal/optional"
	"github.com/BruksfildServices01/event-manager/internal/storage"
)

// ======================================================
// INPUT
// ======================================================

// UpdateInput changes only what is present: nil Data keeps the value, an
// unset Comment keeps the comment. A new Image replaces the old one,
// ClearImage drops it.
type UpdateInput struct {
	User       *models.User
	ID         string
	Data       datatypes.JSON
	Comment    optional.Field[string]
	Image      *storage.Upload
	ClearImage bool
}

// ======================================================
// USE CASE
// ======================================================

type Update struct {
	repo   domain.Repository
	access *access.Evaluator
	images ImageStore
	audit  *audit.Dispatcher
}

func NewUpdate(
	repo domain.Repository,
	access *access.Evaluator,
	images ImageStore,
	audit *audit.Dispatcher,
) *Update {
	return &Update{
		repo:   repo,
		access: access,
		images: images,
		audit:  audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Update) Execute(ctx context.Context, in UpdateInput) (*dto.EventDataView, error) {
	existing, err := uc.repo.FindEventDataByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if err := uc.access.AuthorizeRow(ctx, in.User, access.OpUpdate, existing); err != nil {
		return nil, err
	}

	attr, err := uc.repo.FindAttributeByID(ctx, existing.EventAttributeID)
	if err != nil {
		return nil, err
	}
	if err := access.CheckImage(attr, in.Image != nil); err != nil {
		return nil, err
	}

	patch := domain.EventDataPatch{
		Data:    in.Data,
		Comment: in.Comment,
	}

	var newURL string
	if in.Image != nil {
		newURL, err = uc.images.Save(ctx, *in.Image)
		if err != nil {
			return nil, err
		}
		patch.ImageURL = optional.Of(newURL)
	} else if in.ClearImage {
		patch.ImageURL = optional.Null[string]()
	}

	if _, err := uc.repo.UpdateEventData(ctx, in.ID, patch); err != nil {
		if newURL != "" {
			uc.images.Remove(ctx, newURL)
		}
		return nil, err
	}

	if patch.ImageURL.Set && existing.ImageURL != nil {
		uc.images.Remove(ctx, *existing.ImageURL)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.User.ID,
		Action:   "update",
		Entity:   entity,
		EntityID: in.ID,
	})

	return uc.repo.GetEventDataView(ctx, in.ID)
}
