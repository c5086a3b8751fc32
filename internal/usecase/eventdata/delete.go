package eventdata

import (
	"context"

	"github.com/BruksfildServices01/event-manager/internal/audit"
	"github.com/BruksfildServices01/event-manager/internal/domain"
	"github.com/BruksfildServices01/event-manager/internal/domain/access"
	"github.com/BruksfildServices01/event-manager/internal/models"
)

type Delete struct {
	repo   domain.Repository
	access *access.Evaluator
	images ImageStore
	audit  *audit.Dispatcher
}

func NewDelete(
	repo domain.Repository,
	access *access.Evaluator,
	images ImageStore,
	audit *audit.Dispatcher,
) *Delete {
	return &Delete{
		repo:   repo,
		access: access,
		images: images,
		audit:  audit,
	}
}

// Execute removes the row and its stored image.
func (uc *Delete) Execute(ctx context.Context, user *models.User, id string) error {
	existing, err := uc.repo.FindEventDataByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.access.AuthorizeRow(ctx, user, access.OpDelete, existing); err != nil {
		return err
	}

	ok, err := uc.repo.DeleteEventData(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}

	if existing.ImageURL != nil {
		uc.images.Remove(ctx, *existing.ImageURL)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  user.ID,
		Action:   "delete",
		Entity:   entity,
		EntityID: id,
	})
	return nil
}
