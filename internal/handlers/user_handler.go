package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/event-manager/internal/audit"
	"github.com/BruksfildServices01/event-manager/internal/auth"
	"github.com/BruksfildServices01/event-manager/internal/domain"
	"github.com/BruksfildServices01/event-manager/internal/httperr"
	"github.com/BruksfildServices01/event-manager/internal/httpresp"
	"github.com/BruksfildServices01/event-manager/internal/middleware"
	"github.com/BruksfildServices01/event-manager/internal/models"
)

type UserHandler struct {
	repo   domain.Repository
	images ImageRemover
	audit  *audit.Dispatcher
}

func NewUserHandler(repo domain.Repository, images ImageRemover, audit *audit.Dispatcher) *UserHandler {
	return &UserHandler{repo: repo, images: images, audit: audit}
}

type CreateUserRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=6"`
	Name     string      `json:"name" binding:"required"`
	Role     models.Role `json:"role"`
}

type UpdateUserRequest struct {
	Email    *string      `json:"email" binding:"omitempty,email"`
	Password *string      `json:"password" binding:"omitempty,min=6"`
	Name     *string      `json:"name"`
	Role     *models.Role `json:"role"`
}

func validRole(r *models.Role) bool {
	return r == nil || *r == "" || r.Valid()
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.repo.ListUsers(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, users)
}

// Get lets employees read only their own record.
func (h *UserHandler) Get(c *gin.Context) {
	id := c.Param("id")
	me := middleware.CurrentUser(c)
	if !me.IsAdmin() && me.ID != id {
		httperr.Forbidden(c, "forbidden", "access denied")
		return
	}

	user, err := h.repo.FindUserByID(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, user)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	if !validRole(&req.Role) {
		httperr.BadRequest(c, "invalid_role", "role must be ADMIN or EMPLOYEE")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         req.Role,
	}
	if err := h.repo.CreateUser(c.Request.Context(), user); err != nil {
		httperr.Respond(c, err)
		return
	}

	writeAudit(h.audit, c, "create", "user", user.ID, gin.H{"email": user.Email, "role": user.Role})
	httpresp.Created(c, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	if !validRole(req.Role) {
		httperr.BadRequest(c, "invalid_role", "role must be ADMIN or EMPLOYEE")
		return
	}

	patch := domain.UserPatch{
		Email: nonEmpty(req.Email),
		Name:  nonEmpty(req.Name),
	}
	if req.Role != nil && *req.Role != "" {
		patch.Role = req.Role
	}
	if pw := nonEmpty(req.Password); pw != nil {
		hash, err := auth.HashPassword(*pw)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		patch.PasswordHash = &hash
	}

	user, err := h.repo.UpdateUser(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	writeAudit(h.audit, c, "update", "user", user.ID, nil)
	httpresp.OK(c, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	ctx := c.Request.Context()

	res, err := h.repo.DeleteUser(ctx, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if !res.Found {
		httperr.NotFound(c, "user_not_found", "user not found")
		return
	}
	releaseImages(ctx, h.images, res.ImageURLs)

	writeAudit(h.audit, c, "delete", "user", id, nil)
	httpresp.Message(c, "user deleted")
}
