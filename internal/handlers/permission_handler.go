package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/event-manager/internal/audit"
	"github.com/BruksfildServices01/event-manager/internal/domain"
	"github.com/BruksfildServices01/event-manager/internal/httperr"
	"github.com/BruksfildServices01/event-manager/internal/httpresp"
	"github.com/BruksfildServices01/event-manager/internal/middleware"
)

type PermissionHandler struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewPermissionHandler(repo domain.Repository, audit *audit.Dispatcher) *PermissionHandler {
	return &PermissionHandler{repo: repo, audit: audit}
}

type PermissionFlagsRequest struct {
	CanCreate *bool `json:"canCreate"`
	CanRead   *bool `json:"canRead"`
	CanUpdate *bool `json:"canUpdate"`
	CanDelete *bool `json:"canDelete"`
}

func (r PermissionFlagsRequest) flags() domain.PermissionFlags {
	return domain.PermissionFlags{
		CanCreate: r.CanCreate,
		CanRead:   r.CanRead,
		CanUpdate: r.CanUpdate,
		CanDelete: r.CanDelete,
	}
}

type UpsertPermissionRequest struct {
	UserID           string `json:"userId" binding:"required"`
	EventAttributeID string `json:"eventAttributeId" binding:"required"`
	PermissionFlagsRequest
}

// ByUser lets employees list their own permissions only.
func (h *PermissionHandler) ByUser(c *gin.Context) {
	userID := c.Param("userId")
	me := middleware.CurrentUser(c)
	if !me.IsAdmin() && me.ID != userID {
		httperr.Forbidden(c, "forbidden", "access denied")
		return
	}

	ctx := c.Request.Context()
	if _, err := h.repo.FindUserByID(ctx, userID); err != nil {
		httperr.Respond(c, err)
		return
	}

	perms, err := h.repo.ListPermissionsByUser(ctx, userID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, perms)
}

func (h *PermissionHandler) ByAttribute(c *gin.Context) {
	attrID := c.Param("attributeId")
	ctx := c.Request.Context()

	if _, err := h.repo.FindAttributeByID(ctx, attrID); err != nil {
		httperr.Respond(c, err)
		return
	}

	perms, err := h.repo.ListPermissionsByAttribute(ctx, attrID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, perms)
}

// Upsert answers 201 when the (user, attribute) row is new and 200 when an
// existing row took the supplied flags.
func (h *PermissionHandler) Upsert(c *gin.Context) {
	var req UpsertPermissionRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	perm, created, err := h.repo.UpsertPermission(ctx, domain.PermissionUpsert{
		UserID:           req.UserID,
		EventAttributeID: req.EventAttributeID,
		PermissionFlags:  req.flags(),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	view, err := h.repo.GetPermissionView(ctx, perm.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	action := "update"
	if created {
		action = "create"
	}
	writeAudit(h.audit, c, action, "permission", perm.ID, view.Permission)

	if created {
		httpresp.Created(c, view)
		return
	}
	httpresp.OK(c, view)
}

func (h *PermissionHandler) Update(c *gin.Context) {
	var req PermissionFlagsRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	perm, err := h.repo.UpdatePermission(ctx, c.Param("id"), req.flags())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	view, err := h.repo.GetPermissionView(ctx, perm.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	writeAudit(h.audit, c, "update", "permission", perm.ID, view.Permission)
	httpresp.OK(c, view)
}

func (h *PermissionHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	ok, err := h.repo.DeletePermission(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if !ok {
		httperr.NotFound(c, "permission_not_found", "permission not found")
		return
	}

	writeAudit(h.audit, c, "delete", "permission", id, nil)
	httpresp.Message(c, "permission deleted")
}
