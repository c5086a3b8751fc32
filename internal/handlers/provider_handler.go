package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/event-manager/internal/audit"
	"github.com/BruksfildServices01/event-manager/internal/domain"
	"github.com/BruksfildServices01/event-manager/internal/httperr"
	"github.com/BruksfildServices01/event-manager/internal/httpresp"
	"github.com/BruksfildServices01/event-manager/internal/models"
	"github.com/BruksfildServices01/event-manager/internal/optional"
)

type ProviderHandler struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewProviderHandler(repo domain.Repository, audit *audit.Dispatcher) *ProviderHandler {
	return &ProviderHandler{repo: repo, audit: audit}
}

type CreateProviderRequest struct {
	Name          string            `json:"name" binding:"required"`
	Email         *string           `json:"email"`
	Phone         *string           `json:"phone"`
	DynamicFields datatypes.JSONMap `json:"dynamicFields"`
}

type UpdateProviderRequest struct {
	Name          *string                `json:"name"`
	Email         optional.Field[string] `json:"email"`
	Phone         optional.Field[string] `json:"phone"`
	DynamicFields datatypes.JSONMap      `json:"dynamicFields"`
}

func (h *ProviderHandler) List(c *gin.Context) {
	providers, err := h.repo.ListProviders(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, providers)
}

func (h *ProviderHandler) Get(c *gin.Context) {
	provider, err := h.repo.GetProviderDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, provider)
}

func (h *ProviderHandler) Create(c *gin.Context) {
	var req CreateProviderRequest
	if !bindJSON(c, &req) {
		return
	}

	provider := &models.Provider{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		DynamicFields: req.DynamicFields,
	}
	if err := h.repo.CreateProvider(c.Request.Context(), provider); err != nil {
		httperr.Respond(c, err)
		return
	}

	writeAudit(h.audit, c, "create", "provider", provider.ID, gin.H{"name": provider.Name})
	httpresp.Created(c, provider)
}

func (h *ProviderHandler) Update(c *gin.Context) {
	var req UpdateProviderRequest
	if !bindJSON(c, &req) {
		return
	}

	provider, err := h.repo.UpdateProvider(c.Request.Context(), c.Param("id"), domain.ProviderPatch{
		Name:          nonEmpty(req.Name),
		Email:         req.Email,
		Phone:         req.Phone,
		DynamicFields: req.DynamicFields,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	writeAudit(h.audit, c, "update", "provider", provider.ID, nil)
	httpresp.OK(c, provider)
}

func (h *ProviderHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	ok, err := h.repo.DeleteProvider(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if !ok {
		httperr.NotFound(c, "provider_not_found", "provider not found")
		return
	}

	writeAudit(h.audit, c, "delete", "provider", id, nil)
	httpresp.Message(c, "provider deleted")
}
