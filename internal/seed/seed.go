// Package seed loads the demonstration dataset into an empty store.
package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/event-manager/internal/auth"
	"github.com/BruksfildServices01/event-manager/internal/domain"
	"github.com/BruksfildServices01/event-manager/internal/models"
)

const (
	AdminEmail       = "admin@respect.com"
	AdminPassword    = "admin123"
	EmployeePassword = "empleado123"
)

func ptr[T any](v T) *T { return &v }

// Run is a no-op when the store already holds users. It reports whether
// the dataset was loaded.
func Run(ctx context.Context, repo domain.Repository) (bool, error) {
	n, err := repo.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	adminHash, err := auth.HashPassword(AdminPassword)
	if err != nil {
		return false, err
	}
	employeeHash, err := auth.HashPassword(EmployeePassword)
	if err != nil {
		return false, err
	}

	admin := &models.User{Email: AdminEmail, PasswordHash: adminHash, Name: "Administrador", Role: models.RoleAdmin}
	maria := &models.User{Email: "maria@respect.com", PasswordHash: employeeHash, Name: "María González", Role: models.RoleEmployee}
	juan := &models.User{Email: "juan@respect.com", PasswordHash: employeeHash, Name: "Juan Pérez", Role: models.RoleEmployee}
	for _, u := range []*models.User{admin, maria, juan} {
		if err := repo.CreateUser(ctx, u); err != nil {
			return false, fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}

	event := &models.Event{
		Name:        "EtMday",
		Description: ptr("Evento de ejemplo para demostración"),
		StartDate:   ptr(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:     ptr(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)),
		DynamicFields: datatypes.JSONMap{
			"ubicacion": "Centro de Convenciones",
			"capacidad": 5000,
			"tipo":      "Conferencia",
		},
	}
	if err := repo.CreateEvent(ctx, event); err != nil {
		return false, fmt.Errorf("seed event: %w", err)
	}

	generadores := &models.EventAttribute{
		EventID:     event.ID,
		Name:        "generadores",
		DataType:    models.DataTypeText,
		AllowImage:  true,
		Description: ptr("Generadores de energía del evento"),
	}
	camiones := &models.EventAttribute{
		EventID:     event.ID,
		Name:        "camiones",
		DataType:    models.DataTypeText,
		AllowImage:  true,
		Description: ptr("Camiones utilizados en el evento"),
	}
	banos := &models.EventAttribute{
		EventID:     event.ID,
		Name:        "baños",
		DataType:    models.DataTypeNumber,
		AllowImage:  false,
		Description: ptr("Cantidad de baños portátiles"),
	}
	for _, a := range []*models.EventAttribute{generadores, camiones, banos} {
		if err := repo.CreateAttribute(ctx, a); err != nil {
			return false, fmt.Errorf("seed attribute %s: %w", a.Name, err)
		}
	}

	grants := []domain.PermissionUpsert{
		{UserID: maria.ID, EventAttributeID: generadores.ID, PermissionFlags: flags(true, true, false, false)},
		{UserID: juan.ID, EventAttributeID: generadores.ID, PermissionFlags: flags(true, true, true, false)},
		{UserID: juan.ID, EventAttributeID: banos.ID, PermissionFlags: flags(true, true, true, false)},
	}
	for _, g := range grants {
		if _, _, err := repo.UpsertPermission(ctx, g); err != nil {
			return false, fmt.Errorf("seed permission: %w", err)
		}
	}

	provider := &models.Provider{
		Name:  "Proveedor de Energía Sostenible",
		Email: ptr("contacto@energia-sostenible.com"),
		Phone: ptr("+34 123 456 789"),
		DynamicFields: datatypes.JSONMap{
			"especialidad":    "Energía solar",
			"añosExperiencia": 10,
			"certificaciones": []any{"ISO 14001", "ISO 50001"},
		},
	}
	if err := repo.CreateProvider(ctx, provider); err != nil {
		return false, fmt.Errorf("seed provider: %w", err)
	}
	if _, err := repo.CreateEventProvider(ctx, event.ID, provider.ID); err != nil {
		return false, fmt.Errorf("seed association: %w", err)
	}

	log.Printf("seed loaded: %s / %s (admin), %s and %s / %s (employees)",
		AdminEmail, AdminPassword, maria.Email, juan.Email, EmployeePassword)
	return true, nil
}

func flags(create, read, update, del bool) domain.PermissionFlags {
	return domain.PermissionFlags{
		CanCreate: &create,
		CanRead:   &read,
		CanUpdate: &update,
		CanDelete: &del,
	}
}
