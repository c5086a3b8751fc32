package repository

import (
	"context"
	"slices"

	"github.com/BruksfildServices01/event-manager/internal/domain"
	"github.com/BruksfildServices01/event-manager/internal/dto"
	"github.com/BruksfildServices01/event-manager/internal/models"
	"github.com/BruksfildServices01/event-manager/internal/optional"
)

func (r *MemoryRepository) CreateEvent(ctx context.Context, e *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	e.ID = r.newID()
	e.CreatedAt = now
	e.UpdatedAt = now
	e.DynamicFields = cloneMap(e.DynamicFields)

	r.events = append(r.events, *copyEvent(*e))
	return nil
}

func (r *MemoryRepository) FindEventByID(ctx context.Context, id string) (*models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.eventIndex(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	return copyEvent(r.events[i]), nil
}

func (r *MemoryRepository) GetEventDetail(ctx context.Context, id string) (*dto.EventDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.eventIndex(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}

	return &dto.EventDetail{
		Event:      *copyEvent(r.events[i]),
		Attributes: r.attributesOf(id),
		Providers:  r.providersOf(id),
	}, nil
}

// ListEvents attaches attributes, associated providers and the number of
// submitted data rows to every event.
func (r *MemoryRepository) ListEvents(ctx context.Context) ([]dto.EventListItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dto.EventListItem, 0, len(r.events))
	for _, e := range r.events {
		count := 0
		for _, d := range r.eventData {
			if d.EventID == e.ID {
				count++
			}
		}

		out = append(out, dto.EventListItem{
			Event:      *copyEvent(e),
			Attributes: r.attributesOf(e.ID),
			Providers:  r.providersOf(e.ID),
			Count:      dto.EventCount{EventData: count},
		})
	}
	return out, nil
}

func (r *MemoryRepository) UpdateEvent(ctx context.Context, id string, p domain.EventPatch) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.eventIndex(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}

	e := *copyEvent(r.events[i])
	if p.Name != nil {
		e.Name = *p.Name
	}
	optional.Apply(&e.Description, p.Description)
	optional.Apply(&e.StartDate, p.StartDate)
	optional.Apply(&e.EndDate, p.EndDate)
	if p.DynamicFields != nil {
		e.DynamicFields = cloneMap(p.DynamicFields)
	}
	e.UpdatedAt = r.now()

	r.events[i] = e
	return copyEvent(e), nil
}

// DeleteEvent removes the event with its associations, attributes, data and
// the permission rows on those attributes.
func (r *MemoryRepository) DeleteEvent(ctx context.Context, id string) (domain.Cascade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.eventIndex(id)
	if i < 0 {
		return domain.Cascade{}, nil
	}

	attrIDs := make(map[string]struct{})
	for _, a := range r.attributes {
		if a.EventID == id {
			attrIDs[a.ID] = struct{}{}
		}
	}
	ownedAttr := func(attrID string) bool {
		_, ok := attrIDs[attrID]
		return ok
	}

	r.events = slices.Delete(r.events, i, i+1)
	r.eventProviders = slices.DeleteFunc(r.eventProviders, func(ep models.EventProvider) bool { return ep.EventID == id })
	r.attributes = slices.DeleteFunc(r.attributes, func(a models.EventAttribute) bool { return a.EventID == id })
	images := r.purgeEventData(func(d models.EventData) bool {
		return d.EventID == id || ownedAttr(d.EventAttributeID)
	})
	r.permissions = slices.DeleteFunc(r.permissions, func(p models.Permission) bool { return ownedAttr(p.EventAttributeID) })
	return domain.Cascade{Found: true, ImageURLs: images}, nil
}

func (r *MemoryRepository) attributesOf(eventID string) []models.EventAttribute {
	out := []models.EventAttribute{}
	for _, a := range r.attributes {
		if a.EventID == eventID {
			out = append(out, *copyAttribute(a))
		}
	}
	return out
}

func (r *MemoryRepository) providersOf(eventID string) []dto.ProviderRef {
	out := []dto.ProviderRef{}
	for _, ep := range r.eventProviders {
		if ep.EventID != eventID {
			continue
		}
		if p := r.providerCopy(ep.ProviderID); p != nil {
			out = append(out, dto.ProviderRef{Provider: p})
		}
	}
	return out
}
