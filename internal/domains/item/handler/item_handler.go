package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"articles-backend/internal/domains/consistency"
	"articles-backend/internal/domains/item"
	"articles-backend/internal/shared/middleware"
	"articles-backend/internal/shared/response"
)

type ItemHandler struct {
	service item.Service
}

func NewItemHandler(svc item.Service) *ItemHandler {
	return &ItemHandler{
		service: svc,
	}
}

// Create - POST /v1/items
func (h *ItemHandler) Create(c *gin.Context) {
	var req item.CreateItemRequest

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

// List - GET /v1/items?sortBy=title&orderBy=desc&page=1&limit=10
func (h *ItemHandler) List(c *gin.Context) {
	views, shape, err := h.service.List(
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

	response.SuccessWithMeta(c, http.StatusOK, views, &response.Meta{
		Page:  shape.Page,
		Limit: shape.Limit,
	})
}

// GetByID - GET /v1/items/:id
func (h *ItemHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, item.ErrInvalidItemID.Error())
		return
	}

	view, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// Update - PUT /v1/items/:id (owning owner only)
func (h *ItemHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, item.ErrInvalidItemID.Error())
		return
	}

	actor, ok := middleware.Actor(c)
	if !ok {
		middleware.AbortUnauthenticated(c)
		return
	}

	var req item.UpdateItemRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, actor, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// Delete - DELETE /v1/items/:id (owning owner only)
func (h *ItemHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, item.ErrInvalidItemID.Error())
		return
	}

	actor, ok := middleware.Actor(c)
	if !ok {
		middleware.AbortUnauthenticated(c)
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), id, actor)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, deleted)
}

func (h *ItemHandler) writeError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		response.ValidationFailed(c, verrs)
	case errors.Is(err, item.ErrInvalidOwnerID):
		response.BadRequest(c, err.Error())
	case errors.Is(err, consistency.ErrOwnerMissing):
		response.BadRequest(c, err.Error())
	case errors.Is(err, item.ErrItemNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, item.ErrPermissionDenied):
		response.Forbidden(c, err.Error())
	default:
		response.InternalServerError(c, "internal server error")
	}
}
