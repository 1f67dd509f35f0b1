package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"articles-backend/internal/domains/owner"
	"articles-backend/internal/shared/response"
)

type OwnerHandler struct {
	service owner.Service
}

func NewOwnerHandler(svc owner.Service) *OwnerHandler {
	return &OwnerHandler{
		service: svc,
	}
}

// Create - POST /v1/owners
func (h *OwnerHandler) Create(c *gin.Context) {
	var req owner.CreateOwnerRequest

	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// List - GET /v1/owners?sortBy=fullName&orderBy=desc&page=1&limit=10
func (h *OwnerHandler) List(c *gin.Context) {
	entries, shape, err := h.service.List(
		c.Request.Context(),
		c.Query("sortBy"),
		c.Query("orderBy"),
		c.Query("page"),
		c.Query("limit"),
	)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, entries, &response.Meta{
		Page:  shape.Page,
		Limit: shape.Limit,
	})
}

// GetWithItems - GET /v1/owners/:id
func (h *OwnerHandler) GetWithItems(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, owner.ErrInvalidOwnerID.Error())
		return
	}

	view, err := h.service.GetWithItems(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// Update - PUT /v1/owners/:id
func (h *OwnerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, owner.ErrInvalidOwnerID.Error())
		return
	}

	var req owner.UpdateOwnerRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// Delete - DELETE /v1/owners/:id
func (h *OwnerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, owner.ErrInvalidOwnerID.Error())
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, deleted)
}

// IssueToken - POST /v1/owners/:id/token
func (h *OwnerHandler) IssueToken(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, owner.ErrInvalidOwnerID.Error())
		return
	}

	token, err := h.service.IssueToken(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, token)
}

// writeError maps domain outcomes to transport statuses without leaking
// internal detail for unexpected failures.
func (h *OwnerHandler) writeError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		response.ValidationFailed(c, verrs)
	case errors.Is(err, owner.ErrOwnerNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, owner.ErrEmailAlreadyExists):
		response.Conflict(c, err.Error())
	default:
		response.InternalServerError(c, "internal server error")
	}
}
