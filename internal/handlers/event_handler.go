package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/event-manager/internal/audit"
	"github.com/BruksfildServices01/event-manager/internal/domain"
	"github.com/BruksfildServices01/event-manager/internal/httperr"
	"github.com/BruksfildServices01/event-manager/internal/httpresp"
	"github.com/BruksfildServices01/event-manager/internal/models"
	"github.com/BruksfildServices01/event-manager/internal/optional"
)

type EventHandler struct {
	repo   domain.Repository
	images ImageRemover
	audit  *audit.Dispatcher
	loc    *time.Location
}

func NewEventHandler(repo domain.Repository, images ImageRemover, audit *audit.Dispatcher, loc *time.Location) *EventHandler {
	return &EventHandler{repo: repo, images: images, audit: audit, loc: loc}
}

// --------- Requests ---------

type CreateEventRequest struct {
	Name          string            `json:"name" binding:"required"`
	Description   *string           `json:"description"`
	StartDate     *string           `json:"startDate"`
	EndDate       *string           `json:"endDate"`
	DynamicFields datatypes.JSONMap `json:"dynamicFields"`
}

type UpdateEventRequest struct {
	Name          *string                `json:"name"`
	Description   optional.Field[string] `json:"description"`
	StartDate     optional.Field[string] `json:"startDate"`
	EndDate       optional.Field[string] `json:"endDate"`
	DynamicFields datatypes.JSONMap      `json:"dynamicFields"`
}

type CreateAttributeRequest struct {
	Name        string          `json:"name" binding:"required"`
	DataType    models.DataType `json:"dataType" binding:"required"`
	AllowImage  bool            `json:"allowImage"`
	Description *string         `json:"description"`
}

type UpdateAttributeRequest struct {
	Name        *string                `json:"name"`
	DataType    *models.DataType       `json:"dataType"`
	AllowImage  *bool                  `json:"allowImage"`
	Description optional.Field[string] `json:"description"`
}

type AddProviderRequest struct {
	ProviderID string `json:"providerId" binding:"required"`
}

// --------- Events ---------

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.repo.ListEvents(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, events)
}

func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.repo.GetEventDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, event)
}

func (h *EventHandler) Create(c *gin.Context) {
	var req CreateEventRequest
	if !bindJSON(c, &req) {
		return
	}

	start, err := parseDatePtr(req.StartDate, h.loc)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	end, err := parseDatePtr(req.EndDate, h.loc)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	event := &models.Event{
		Name:          req.Name,
		Description:   req.Description,
		StartDate:     start,
		EndDate:       end,
		DynamicFields: req.DynamicFields,
	}
	if err := h.repo.CreateEvent(c.Request.Context(), event); err != nil {
		httperr.Respond(c, err)
		return
	}

	writeAudit(h.audit, c, "create", "event", event.ID, gin.H{"name": event.Name})
	httpresp.Created(c, event)
}

func (h *EventHandler) Update(c *gin.Context) {
	var req UpdateEventRequest
	if !bindJSON(c, &req) {
		return
	}

	start, err := parseDateField(req.StartDate, h.loc)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	end, err := parseDateField(req.EndDate, h.loc)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	event, err := h.repo.UpdateEvent(c.Request.Context(), c.Param("id"), domain.EventPatch{
		Name:          nonEmpty(req.Name),
		Description:   req.Description,
		StartDate:     start,
		EndDate:       end,
		DynamicFields: req.DynamicFields,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	writeAudit(h.audit, c, "update", "event", event.ID, nil)
	httpresp.OK(c, event)
}

func (h *EventHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	ctx := c.Request.Context()

	res, err := h.repo.DeleteEvent(ctx, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if !res.Found {
		httperr.NotFound(c, "event_not_found", "event not found")
		return
	}
	releaseImages(ctx, h.images, res.ImageURLs)

	writeAudit(h.audit, c, "delete", "event", id, nil)
	httpresp.Message(c, "event deleted")
}

// --------- Attributes ---------

// attributeOfEvent loads :attributeId and checks that it hangs off :id.
func (h *EventHandler) attributeOfEvent(c *gin.Context) (*models.EventAttribute, bool) {
	attr, err := h.repo.FindAttributeByID(c.Request.Context(), c.Param("attributeId"))
	if err != nil {
		httperr.Respond(c, err)
		return nil, false
	}
	if attr.EventID != c.Param("id") {
		httperr.NotFound(c, "attribute_not_found", "attribute not found for this event")
		return nil, false
	}
	return attr, true
}

func (h *EventHandler) CreateAttribute(c *gin.Context) {
	var req CreateAttributeRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.DataType.Valid() {
		httperr.BadRequest(c, "invalid_data_type", "dataType must be TEXT, NUMBER, DATE or BOOLEAN")
		return
	}

	attr := &models.EventAttribute{
		EventID:     c.Param("id"),
		Name:        req.Name,
		DataType:    req.DataType,
		AllowImage:  req.AllowImage,
		Description: req.Description,
	}
	if err := h.repo.CreateAttribute(c.Request.Context(), attr); err != nil {
		httperr.Respond(c, err)
		return
	}

	writeAudit(h.audit, c, "create", "event_attribute", attr.ID, gin.H{"eventId": attr.EventID, "name": attr.Name})
	httpresp.Created(c, attr)
}

func (h *EventHandler) UpdateAttribute(c *gin.Context) {
	var req UpdateAttributeRequest
	if !bindJSON(c, &req) {
		return
	}

	patch := domain.AttributePatch{
		Name:        nonEmpty(req.Name),
		AllowImage:  req.AllowImage,
		Description: req.Description,
	}
	if req.DataType != nil && *req.DataType != "" {
		if !req.DataType.Valid() {
			httperr.BadRequest(c, "invalid_data_type", "dataType must be TEXT, NUMBER, DATE or BOOLEAN")
			return
		}
		patch.DataType = req.DataType
	}

	if _, ok := h.attributeOfEvent(c); !ok {
		return
	}

	attr, err := h.repo.UpdateAttribute(c.Request.Context(), c.Param("attributeId"), patch)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	writeAudit(h.audit, c, "update", "event_attribute", attr.ID, nil)
	httpresp.OK(c, attr)
}

func (h *EventHandler) DeleteAttribute(c *gin.Context) {
	attr, ok := h.attributeOfEvent(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	res, err := h.repo.DeleteAttribute(ctx, attr.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	releaseImages(ctx, h.images, res.ImageURLs)

	writeAudit(h.audit, c, "delete", "event_attribute", attr.ID, nil)
	httpresp.Message(c, "attribute deleted")
}

// --------- Providers ---------

func (h *EventHandler) AddProvider(c *gin.Context) {
	var req AddProviderRequest
	if !bindJSON(c, &req) {
		return
	}

	ep, err := h.repo.CreateEventProvider(c.Request.Context(), c.Param("id"), req.ProviderID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	writeAudit(h.audit, c, "create", "event_provider", ep.ID, gin.H{"eventId": ep.EventID, "providerId": ep.ProviderID})
	httpresp.Created(c, ep)
}

func (h *EventHandler) RemoveProvider(c *gin.Context) {
	eventID, providerID := c.Param("id"), c.Param("providerId")

	ok, err := h.repo.DeleteEventProvider(c.Request.Context(), eventID, providerID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if !ok {
		httperr.NotFound(c, "association_not_found", "provider is not associated with this event")
		return
	}

	writeAudit(h.audit, c, "delete", "event_provider", providerID, gin.H{"eventId": eventID})
	httpresp.Message(c, "provider removed from event")
}
