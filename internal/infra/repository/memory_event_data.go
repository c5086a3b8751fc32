package repository

import (
	"context"
	"slices"

	"github.com/BruksfildServices01/event-manager/internal/domain"
	"github.com/BruksfildServices01/event-manager/internal/dto"
	"github.com/BruksfildServices01/event-manager/internal/models"
	"github.com/BruksfildServices01/event-manager/internal/optional"
)

func (r *MemoryRepository) CreateEventData(ctx context.Context, d *models.EventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.userIndex(d.UserID) < 0 || r.eventIndex(d.EventID) < 0 || r.attributeIndex(d.EventAttributeID) < 0 {
		return domain.ErrNotFound
	}

	now := r.now()
	d.ID = r.newID()
	d.CreatedAt = now
	d.UpdatedAt = now

	r.eventData = append(r.eventData, *copyEventData(*d))
	return nil
}

func (r *MemoryRepository) FindEventDataByID(ctx context.Context, id string) (*models.EventData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.eventDataIndex(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	return copyEventData(r.eventData[i]), nil
}

func (r *MemoryRepository) view(d models.EventData) dto.EventDataView {
	return dto.EventDataView{
		EventData:      *copyEventData(d),
		User:           r.userSummary(d.UserID),
		EventAttribute: r.attributeCopy(d.EventAttributeID),
	}
}

func (r *MemoryRepository) GetEventDataView(ctx context.Context, id string) (*dto.EventDataView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.eventDataIndex(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	v := r.view(r.eventData[i])
	return &v, nil
}

// newestFirst walks rows from the most recently appended so that rows sharing
// a timestamp still come out latest first after the stable sort.
func (r *MemoryRepository) newestFirst(match func(models.EventData) bool) []dto.EventDataView {
	out := []dto.EventDataView{}
	for i := len(r.eventData) - 1; i >= 0; i-- {
		if match(r.eventData[i]) {
			out = append(out, r.view(r.eventData[i]))
		}
	}
	slices.SortStableFunc(out, func(a, b dto.EventDataView) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

func (r *MemoryRepository) ListEventDataByAttribute(ctx context.Context, attributeID string) ([]dto.EventDataView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.newestFirst(func(d models.EventData) bool { return d.EventAttributeID == attributeID }), nil
}

func (r *MemoryRepository) ListEventDataByEvent(ctx context.Context, eventID string) ([]dto.EventDataView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.newestFirst(func(d models.EventData) bool { return d.EventID == eventID }), nil
}

func (r *MemoryRepository) UpdateEventData(ctx context.Context, id string, p domain.EventDataPatch) (*models.EventData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.eventDataIndex(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}

	d := *copyEventData(r.eventData[i])
	if p.Data != nil {
		d.Data = cloneJSON(p.Data)
	}
	optional.Apply(&d.Comment, p.Comment)
	optional.Apply(&d.ImageURL, p.ImageURL)
	d.UpdatedAt = r.now()

	r.eventData[i] = d
	return copyEventData(d), nil
}

func (r *MemoryRepository) DeleteEventData(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.eventDataIndex(id)
	if i < 0 {
		return false, nil
	}

	r.eventData = slices.Delete(r.eventData, i, i+1)
	return true, nil
}
