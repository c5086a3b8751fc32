package audit

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/BruksfildServices01/event-manager/internal/config"
	"github.com/BruksfildServices01/event-manager/internal/db"
	"github.com/BruksfildServices01/event-manager/internal/models"
)

func TestGormStore_WriteAndList(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	gdb, err := db.NewDB(&config.Config{DBUrl: url})
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	store := NewGormStore(gdb)
	ctx := context.Background()

	entity := fmt.Sprintf("test_%d", time.Now().UnixNano())
	t.Cleanup(func() {
		gdb.Where("entity = ?", entity).Delete(&models.AuditLog{})
	})

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		err := store.Write(ctx, &models.AuditLog{
			Action:    "update",
			Entity:    entity,
			EntityID:  fmt.Sprint(i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	logs, total, err := store.List(ctx, Filter{Entity: entity, Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 || len(logs) != 2 || logs[0].EntityID != "2" {
		t.Fatalf("unexpected page total=%d %+v", total, logs)
	}

	from := base.Add(time.Minute)
	_, total, err = store.List(ctx, Filter{Entity: entity, From: &from, Page: 1, Limit: 10})
	if err != nil || total != 2 {
		t.Fatalf("from filter: total=%d err=%v", total, err)
	}
}
