package repository

import (
	"context"
	"slices"

	"github.com/BruksfildServices01/event-manager/internal/domain"
	"github.com/BruksfildServices01/event-manager/internal/dto"
	"github.com/BruksfildServices01/event-manager/internal/models"
	"github.com/BruksfildServices01/event-manager/internal/optional"
)

func (r *MemoryRepository) CreateProvider(ctx context.Context, p *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	p.ID = r.newID()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.DynamicFields = cloneMap(p.DynamicFields)

	r.providers = append(r.providers, *copyProvider(*p))
	return nil
}

func (r *MemoryRepository) FindProviderByID(ctx context.Context, id string) (*models.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p := r.providerCopy(id)
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// GetProviderDetail attaches the events the provider is associated with.
func (r *MemoryRepository) GetProviderDetail(ctx context.Context, id string) (*dto.ProviderDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p := r.providerCopy(id)
	if p == nil {
		return nil, domain.ErrNotFound
	}

	events := []dto.EventRef{}
	for _, ep := range r.eventProviders {
		if ep.ProviderID != id {
			continue
		}
		if e := r.eventSummary(ep.EventID); e != nil {
			events = append(events, dto.EventRef{Event: e})
		}
	}

	return &dto.ProviderDetail{Provider: *p, Events: events}, nil
}

func (r *MemoryRepository) ListProviders(ctx context.Context) ([]dto.ProviderListItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dto.ProviderListItem, 0, len(r.providers))
	for _, p := range r.providers {
		count := 0
		for _, ep := range r.eventProviders {
			if ep.ProviderID == p.ID {
				count++
			}
		}
		out = append(out, dto.ProviderListItem{
			Provider: *copyProvider(p),
			Count:    dto.ProviderCount{Events: count},
		})
	}
	return out, nil
}

func (r *MemoryRepository) UpdateProvider(ctx context.Context, id string, p domain.ProviderPatch) (*models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.providerIndex(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}

	pr := *copyProvider(r.providers[i])
	if p.Name != nil {
		pr.Name = *p.Name
	}
	optional.Apply(&pr.Email, p.Email)
	optional.Apply(&pr.Phone, p.Phone)
	if p.DynamicFields != nil {
		pr.DynamicFields = cloneMap(p.DynamicFields)
	}
	pr.UpdatedAt = r.now()

	r.providers[i] = pr
	return copyProvider(pr), nil
}

func (r *MemoryRepository) DeleteProvider(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.providerIndex(id)
	if i < 0 {
		return false, nil
	}

	r.providers = slices.Delete(r.providers, i, i+1)
	r.eventProviders = slices.DeleteFunc(r.eventProviders, func(ep models.EventProvider) bool { return ep.ProviderID == id })
	return true, nil
}

// --------------------------------------------------
// event ↔ provider
// --------------------------------------------------

func (r *MemoryRepository) CreateEventProvider(ctx context.Context, eventID, providerID string) (*dto.EventProviderView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.eventIndex(eventID) < 0 || r.providerIndex(providerID) < 0 {
		return nil, domain.ErrNotFound
	}

	dup := slices.ContainsFunc(r.eventProviders, func(ep models.EventProvider) bool {
		return ep.EventID == eventID && ep.ProviderID == providerID
	})
	if dup {
		return nil, domain.ErrDuplicateAssociation
	}

	ep := models.EventProvider{
		ID:         r.newID(),
		EventID:    eventID,
		ProviderID: providerID,
		CreatedAt:  r.now(),
	}
	r.eventProviders = append(r.eventProviders, ep)

	return &dto.EventProviderView{EventProvider: ep, Provider: r.providerCopy(providerID)}, nil
}

func (r *MemoryRepository) DeleteEventProvider(ctx context.Context, eventID, providerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.eventProviders, func(ep models.EventProvider) bool {
		return ep.EventID == eventID && ep.ProviderID == providerID
	})
	if i < 0 {
		return false, nil
	}

	r.eventProviders = slices.Delete(r.eventProviders, i, i+1)
	return true, nil
}
