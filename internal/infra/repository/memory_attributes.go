package repository

import (
	"context"
	"slices"

	"github.com/BruksfildServices01/event-manager/internal/domain"
	"github.com/BruksfildServices01/event-manager/internal/models"
	"github.com/BruksfildServices01/event-manager/internal/optional"
)

func (r *MemoryRepository) nameTaken(eventID, name, exceptID string) bool {
	return slices.ContainsFunc(r.attributes, func(a models.EventAttribute) bool {
		return a.EventID == eventID && a.Name == name && a.ID != exceptID
	})
}

func (r *MemoryRepository) CreateAttribute(ctx context.Context, a *models.EventAttribute) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.eventIndex(a.EventID) < 0 {
		return domain.ErrNotFound
	}
	if r.nameTaken(a.EventID, a.Name, "") {
		return domain.ErrDuplicateAttribute
	}

	if a.DataType == "" {
		a.DataType = models.DataTypeText
	}

	now := r.now()
	a.ID = r.newID()
	a.CreatedAt = now
	a.UpdatedAt = now

	r.attributes = append(r.attributes, *copyAttribute(*a))
	return nil
}

func (r *MemoryRepository) FindAttributeByID(ctx context.Context, id string) (*models.EventAttribute, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a := r.attributeCopy(id)
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (r *MemoryRepository) ListAttributesByEvent(ctx context.Context, eventID string) ([]models.EventAttribute, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.attributesOf(eventID), nil
}

func (r *MemoryRepository) UpdateAttribute(ctx context.Context, id string, p domain.AttributePatch) (*models.EventAttribute, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.attributeIndex(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}

	a := *copyAttribute(r.attributes[i])
	if p.Name != nil && *p.Name != a.Name {
		if r.nameTaken(a.EventID, *p.Name, id) {
			return nil, domain.ErrDuplicateAttribute
		}
		a.Name = *p.Name
	}
	if p.DataType != nil {
		a.DataType = *p.DataType
	}
	if p.AllowImage != nil {
		a.AllowImage = *p.AllowImage
	}
	optional.Apply(&a.Description, p.Description)
	a.UpdatedAt = r.now()

	r.attributes[i] = a
	return copyAttribute(a), nil
}

// DeleteAttribute removes the attribute with its data rows and permission rows.
func (r *MemoryRepository) DeleteAttribute(ctx context.Context, id string) (domain.Cascade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.attributeIndex(id)
	if i < 0 {
		return domain.Cascade{}, nil
	}

	r.attributes = slices.Delete(r.attributes, i, i+1)
	images := r.purgeEventData(func(d models.EventData) bool { return d.EventAttributeID == id })
	r.permissions = slices.DeleteFunc(r.permissions, func(p models.Permission) bool { return p.EventAttributeID == id })
	return domain.Cascade{Found: true, ImageURLs: images}, nil
}
