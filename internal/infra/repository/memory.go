package repository

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/event-manager/internal/domain"
	"github.com/BruksfildServices01/event-manager/internal/models"
)

// MemoryRepository keeps every entity in process memory. One mutex guards all
// tables so that cascades are applied atomically. Values handed in and out
// are copies; callers never alias stored rows.
type MemoryRepository struct {
	mu sync.RWMutex

	users          []models.User
	events         []models.Event
	attributes     []models.EventAttribute
	providers      []models.Provider
	eventProviders []models.EventProvider
	permissions    []models.Permission
	eventData      []models.EventData

	now   func() time.Time
	newID func() string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// --------------------------------------------------
// lookups (callers hold the lock)
// --------------------------------------------------

func (r *MemoryRepository) userIndex(id string) int {
	return slices.IndexFunc(r.users, func(u models.User) bool { return u.ID == id })
}

func (r *MemoryRepository) eventIndex(id string) int {
	return slices.IndexFunc(r.events, func(e models.Event) bool { return e.ID == id })
}

func (r *MemoryRepository) attributeIndex(id string) int {
	return slices.IndexFunc(r.attributes, func(a models.EventAttribute) bool { return a.ID == id })
}

func (r *MemoryRepository) providerIndex(id string) int {
	return slices.IndexFunc(r.providers, func(p models.Provider) bool { return p.ID == id })
}

func (r *MemoryRepository) permissionIndex(id string) int {
	return slices.IndexFunc(r.permissions, func(p models.Permission) bool { return p.ID == id })
}

func (r *MemoryRepository) eventDataIndex(id string) int {
	return slices.IndexFunc(r.eventData, func(d models.EventData) bool { return d.ID == id })
}

// purgeEventData drops the matching rows and returns their image URLs.
func (r *MemoryRepository) purgeEventData(match func(models.EventData) bool) []string {
	var images []string
	r.eventData = slices.DeleteFunc(r.eventData, func(d models.EventData) bool {
		if !match(d) {
			return false
		}
		if d.ImageURL != nil {
			images = append(images, *d.ImageURL)
		}
		return true
	})
	return images
}

func (r *MemoryRepository) userSummary(id string) *models.UserSummary {
	if i := r.userIndex(id); i >= 0 {
		return r.users[i].Summary()
	}
	return nil
}

func (r *MemoryRepository) eventSummary(id string) *models.EventSummary {
	if i := r.eventIndex(id); i >= 0 {
		return r.events[i].Summary()
	}
	return nil
}

func (r *MemoryRepository) attributeCopy(id string) *models.EventAttribute {
	if i := r.attributeIndex(id); i >= 0 {
		return copyAttribute(r.attributes[i])
	}
	return nil
}

func (r *MemoryRepository) providerCopy(id string) *models.Provider {
	if i := r.providerIndex(id); i >= 0 {
		return copyProvider(r.providers[i])
	}
	return nil
}

// --------------------------------------------------
// copies
// --------------------------------------------------

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = cloneValue(x)
		}
		return out
	case datatypes.JSONMap:
		return map[string]any(cloneMap(t))
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = cloneValue(x)
		}
		return out
	default:
		return v
	}
}

func cloneMap(m datatypes.JSONMap) datatypes.JSONMap {
	out := make(datatypes.JSONMap, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneJSON(b datatypes.JSON) datatypes.JSON {
	if b == nil {
		return nil
	}
	return append(datatypes.JSON(nil), b...)
}

func copyUser(u models.User) *models.User {
	return &u
}

func copyEvent(e models.Event) *models.Event {
	e.Description = clonePtr(e.Description)
	e.StartDate = clonePtr(e.StartDate)
	e.EndDate = clonePtr(e.EndDate)
	e.DynamicFields = cloneMap(e.DynamicFields)
	return &e
}

func copyAttribute(a models.EventAttribute) *models.EventAttribute {
	a.Description = clonePtr(a.Description)
	return &a
}

func copyProvider(p models.Provider) *models.Provider {
	p.Email = clonePtr(p.Email)
	p.Phone = clonePtr(p.Phone)
	p.DynamicFields = cloneMap(p.DynamicFields)
	return &p
}

func copyPermission(p models.Permission) *models.Permission {
	return &p
}

func copyEventData(d models.EventData) *models.EventData {
	d.Data = cloneJSON(d.Data)
	d.Comment = clonePtr(d.Comment)
	d.ImageURL = clonePtr(d.ImageURL)
	return &d
}

// Compile-time check
var _ domain.Repository = (*MemoryRepository)(nil)
