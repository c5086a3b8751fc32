package repository

import (
	"context"
	"slices"

	"github.com/BruksfildServices01/event-manager/internal/domain"
	"github.com/BruksfildServices01/event-manager/internal/models"
)

func (r *MemoryRepository) CreateUser(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.ContainsFunc(r.users, func(x models.User) bool { return x.Email == u.Email }) {
		return domain.ErrDuplicateEmail
	}

	if u.Role == "" {
		u.Role = models.RoleEmployee
	}

	now := r.now()
	u.ID = r.newID()
	u.CreatedAt = now
	u.UpdatedAt = now

	r.users = append(r.users, *u)
	return nil
}

func (r *MemoryRepository) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.userIndex(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	return copyUser(r.users[i]), nil
}

// FindUserByEmail matches the stored email exactly.
func (r *MemoryRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := slices.IndexFunc(r.users, func(u models.User) bool { return u.Email == email })
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	return copyUser(r.users[i]), nil
}

func (r *MemoryRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.users), nil
}

func (r *MemoryRepository) UpdateUser(ctx context.Context, id string, p domain.UserPatch) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.userIndex(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}

	if p.Email != nil {
		taken := slices.ContainsFunc(r.users, func(x models.User) bool {
			return x.ID != id && x.Email == *p.Email
		})
		if taken {
			return nil, domain.ErrDuplicateEmail
		}
	}

	u := r.users[i]
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	u.UpdatedAt = r.now()

	r.users[i] = u
	return copyUser(u), nil
}

// DeleteUser also purges the user's permission rows and authored event data.
func (r *MemoryRepository) DeleteUser(ctx context.Context, id string) (domain.Cascade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.userIndex(id)
	if i < 0 {
		return domain.Cascade{}, nil
	}

	r.users = slices.Delete(r.users, i, i+1)
	r.permissions = slices.DeleteFunc(r.permissions, func(p models.Permission) bool { return p.UserID == id })
	images := r.purgeEventData(func(d models.EventData) bool { return d.UserID == id })
	return domain.Cascade{Found: true, ImageURLs: images}, nil
}

func (r *MemoryRepository) CountUsers(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.users), nil
}
