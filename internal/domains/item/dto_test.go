package item

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"articles-backend/internal/domains/item/model"
)

func validCreateItemRequest() CreateItemRequest {
	return CreateItemRequest{
		Title:       "A History of Histories",
		Description: "Chronicles of how chronicles came to be written.",
		Owner:       uuid.New().String(),
		Category:    model.CategoryHistory,
	}
}

func TestCreateItemRequestValidate(t *testing.T) {
	strptr := func(s string) *string { return &s }

	tests := []struct {
		name    string
		mutate  func(*CreateItemRequest)
		wantErr bool
	}{
		{"valid minimal", func(r *CreateItemRequest) {}, false},
		{"valid with subtitle", func(r *CreateItemRequest) { r.Subtitle = strptr("A closer look") }, false},
		{"missing title", func(r *CreateItemRequest) { r.Title = "" }, true},
		{"title too short", func(r *CreateItemRequest) { r.Title = "Abc" }, true},
		{"title too long", func(r *CreateItemRequest) { r.Title = strings.Repeat("a", 401) }, true},
		{"subtitle too short", func(r *CreateItemRequest) { r.Subtitle = strptr("Hey") }, true},
		{"missing description", func(r *CreateItemRequest) { r.Description = "" }, true},
		{"description too long", func(r *CreateItemRequest) { r.Description = strings.Repeat("a", 5001) }, true},
		{"missing owner", func(r *CreateItemRequest) { r.Owner = "" }, true},
		{"owner not a uuid", func(r *CreateItemRequest) { r.Owner = "owner-42" }, true},
		{"missing category", func(r *CreateItemRequest) { r.Category = "" }, true},
		{"unknown category", func(r *CreateItemRequest) { r.Category = "cooking" }, true},
		{"sport category", func(r *CreateItemRequest) { r.Category = model.CategorySport }, false},
		{"games category", func(r *CreateItemRequest) { r.Category = model.CategoryGames }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateItemRequest()
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateItemRequestValidate(t *testing.T) {
	strptr := func(s string) *string { return &s }

	t.Run("empty update is valid", func(t *testing.T) {
		assert.NoError(t, UpdateItemRequest{}.Validate())
	})

	t.Run("submitted fields are bound-checked", func(t *testing.T) {
		assert.Error(t, UpdateItemRequest{Title: strptr("Abc")}.Validate())
		assert.Error(t, UpdateItemRequest{Category: strptr("cooking")}.Validate())
	})

	t.Run("valid partial update", func(t *testing.T) {
		assert.NoError(t, UpdateItemRequest{
			Title:    strptr("A Revised History of Histories"),
			Category: strptr(model.CategoryGames),
		}.Validate())
	})
}
