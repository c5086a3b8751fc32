package seed

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/event-manager/internal/infra/repository"
)

func TestRun_LoadsOnceAndIsIdempotent(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ctx := context.Background()

	loaded, err := Run(ctx, repo)
	if err != nil || !loaded {
		t.Fatalf("first run: loaded=%v err=%v", loaded, err)
	}

	loaded, err = Run(ctx, repo)
	if err != nil || loaded {
		t.Fatalf("second run: loaded=%v err=%v", loaded, err)
	}

	users, _ := repo.ListUsers(ctx)
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}

	events, _ := repo.ListEvents(ctx)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Name != "EtMday" || len(e.Attributes) != 3 || len(e.Providers) != 1 || e.Count.EventData != 0 {
		t.Fatalf("unexpected seeded event %+v", e)
	}

	juan, err := repo.FindUserByEmail(ctx, "juan@respect.com")
	if err != nil {
		t.Fatalf("FindUserByEmail: %v", err)
	}
	perms, _ := repo.ListPermissionsByUser(ctx, juan.ID)
	if len(perms) != 2 {
		t.Fatalf("expected 2 permissions for juan, got %d", len(perms))
	}
	for _, p := range perms {
		if !p.CanUpdate || p.CanDelete {
			t.Fatalf("unexpected flags %+v", p.Permission)
		}
	}
}
