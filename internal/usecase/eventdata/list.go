package eventdata

import (
	"context"

	"github.com/BruksfildServices01/event-manager/internal/domain"
	"github.com/BruksfildServices01/event-manager/internal/domain/access"
	"github.com/BruksfildServices01/event-manager/internal/dto"
	"github.com/BruksfildServices01/event-manager/internal/models"
)

type List struct {
	repo   domain.Repository
	access *access.Evaluator
}

func NewList(repo domain.Repository, access *access.Evaluator) *List {
	return &List{repo: repo, access: access}
}

// ByAttribute requires read permission on the attribute for non-admins.
func (uc *List) ByAttribute(ctx context.Context, user *models.User, attributeID string) ([]dto.EventDataView, error) {
	if err := uc.access.Authorize(ctx, user, access.OpRead, attributeID); err != nil {
		return nil, err
	}
	if _, err := uc.repo.FindAttributeByID(ctx, attributeID); err != nil {
		return nil, err
	}
	return uc.repo.ListEventDataByAttribute(ctx, attributeID)
}

// ByEvent is open to every authenticated user.
func (uc *List) ByEvent(ctx context.Context, eventID string) ([]dto.EventDataView, error) {
	if _, err := uc.repo.FindEventByID(ctx, eventID); err != nil {
		return nil, err
	}
	return uc.repo.ListEventDataByEvent(ctx, eventID)
}
