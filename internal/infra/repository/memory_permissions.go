package repository

import (
	"context"
	"slices"

	"github.com/BruksfildServices01/event-manager/internal/domain"
	"github.com/BruksfildServices01/event-manager/internal/dto"
	"github.com/BruksfildServices01/event-manager/internal/models"
)

func applyFlags(p *models.Permission, f domain.PermissionFlags) {
	if f.CanCreate != nil {
		p.CanCreate = *f.CanCreate
	}
	if f.CanRead != nil {
		p.CanRead = *f.CanRead
	}
	if f.CanUpdate != nil {
		p.CanUpdate = *f.CanUpdate
	}
	if f.CanDelete != nil {
		p.CanDelete = *f.CanDelete
	}
}

// UpsertPermission keeps one row per (user, attribute). An existing row only
// takes the supplied flags; a new row starts readable and otherwise closed.
// The boolean reports whether a row was created.
func (r *MemoryRepository) UpsertPermission(ctx context.Context, in domain.PermissionUpsert) (*models.Permission, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.userIndex(in.UserID) < 0 || r.attributeIndex(in.EventAttributeID) < 0 {
		return nil, false, domain.ErrNotFound
	}

	now := r.now()

	i := r.pairIndex(in.UserID, in.EventAttributeID)
	if i >= 0 {
		p := r.permissions[i]
		applyFlags(&p, in.PermissionFlags)
		p.UpdatedAt = now
		r.permissions[i] = p
		return copyPermission(p), false, nil
	}

	p := models.Permission{
		ID:               r.newID(),
		UserID:           in.UserID,
		EventAttributeID: in.EventAttributeID,
		CanRead:          true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	applyFlags(&p, in.PermissionFlags)

	r.permissions = append(r.permissions, p)
	return copyPermission(p), true, nil
}

func (r *MemoryRepository) pairIndex(userID, attributeID string) int {
	return slices.IndexFunc(r.permissions, func(p models.Permission) bool {
		return p.UserID == userID && p.EventAttributeID == attributeID
	})
}

func (r *MemoryRepository) FindPermissionByID(ctx context.Context, id string) (*models.Permission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.permissionIndex(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	return copyPermission(r.permissions[i]), nil
}

func (r *MemoryRepository) FindPermission(ctx context.Context, userID, attributeID string) (*models.Permission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.pairIndex(userID, attributeID)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	return copyPermission(r.permissions[i]), nil
}

func (r *MemoryRepository) attributeWithEvent(attributeID string) *dto.AttributeWithEvent {
	a := r.attributeCopy(attributeID)
	if a == nil {
		return nil
	}
	return &dto.AttributeWithEvent{EventAttribute: *a, Event: r.eventSummary(a.EventID)}
}

// ListPermissionsByUser attaches each attribute together with its event.
func (r *MemoryRepository) ListPermissionsByUser(ctx context.Context, userID string) ([]dto.PermissionView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []dto.PermissionView{}
	for _, p := range r.permissions {
		if p.UserID != userID {
			continue
		}
		out = append(out, dto.PermissionView{
			Permission:     p,
			EventAttribute: r.attributeWithEvent(p.EventAttributeID),
		})
	}
	return out, nil
}

// ListPermissionsByAttribute attaches the trimmed user and the attribute.
func (r *MemoryRepository) ListPermissionsByAttribute(ctx context.Context, attributeID string) ([]dto.PermissionView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []dto.PermissionView{}
	for _, p := range r.permissions {
		if p.EventAttributeID != attributeID {
			continue
		}
		out = append(out, dto.PermissionView{
			Permission:     p,
			User:           r.userSummary(p.UserID),
			EventAttribute: r.attributeWithEvent(p.EventAttributeID),
		})
	}
	return out, nil
}

func (r *MemoryRepository) GetPermissionView(ctx context.Context, id string) (*dto.PermissionView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.permissionIndex(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}

	p := r.permissions[i]
	return &dto.PermissionView{
		Permission:     p,
		User:           r.userSummary(p.UserID),
		EventAttribute: r.attributeWithEvent(p.EventAttributeID),
	}, nil
}

func (r *MemoryRepository) UpdatePermission(ctx context.Context, id string, f domain.PermissionFlags) (*models.Permission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.permissionIndex(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}

	p := r.permissions[i]
	applyFlags(&p, f)
	p.UpdatedAt = r.now()

	r.permissions[i] = p
	return copyPermission(p), nil
}

func (r *MemoryRepository) DeletePermission(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.permissionIndex(id)
	if i < 0 {
		return false, nil
	}

	r.permissions = slices.Delete(r.permissions, i, i+1)
	return true, nil
}
