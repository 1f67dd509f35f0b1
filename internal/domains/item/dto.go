package item

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"articles-backend/internal/domains/item/model"
	"articles-backend/internal/shared/query"
)

// Sortable declares the item listing's sort surface. Only title and
// category are exposed; anything else falls back to creation time.
var Sortable = query.Sortable{
	Fields: map[string]string{
		"title":    "title",
		"category": "category",
	},
}

// CreateItemRequest creates an item. The owner reference is required and
// must name an existing owner; it cannot be changed afterwards.
type CreateItemRequest struct {
	Title       string  `json:"title"`
	Subtitle    *string `json:"subtitle,omitempty"`
	Description string  `json:"description"`
	Owner       string  `json:"owner"`
	Category    string  `json:"category"`
}

func (r CreateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(model.MinTitleLength, model.MaxTitleLength),
		),
		validation.Field(&r.Subtitle,
			validation.Length(model.MinSubtitleLength, 0),
		),
		validation.Field(&r.Description,
			validation.Required.Error("description is required"),
			validation.Length(model.MinDescriptionLength, model.MaxDescriptionLength),
		),
		validation.Field(&r.Owner,
			validation.Required.Error("owner is required"),
			is.UUID.Error("invalid owner id"),
		),
		validation.Field(&r.Category,
			validation.Required.Error("category is required"),
			validation.In(model.CategorySport, model.CategoryGames, model.CategoryHistory).
				Error("category must be sport, games or history"),
		),
	)
}

// UpdateItemRequest mutates an item. The owner reference is deliberately
// absent: it is immutable after creation.
type UpdateItemRequest struct {
	Title       *string `json:"title,omitempty"`
	Subtitle    *string `json:"subtitle,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
}

func (r UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Length(model.MinTitleLength, model.MaxTitleLength),
		),
		validation.Field(&r.Subtitle,
			validation.Length(model.MinSubtitleLength, 0),
		),
		validation.Field(&r.Description,
			validation.Length(model.MinDescriptionLength, model.MaxDescriptionLength),
		),
		validation.Field(&r.Category,
			validation.In(model.CategorySport, model.CategoryGames, model.CategoryHistory).
				Error("category must be sport, games or history"),
		),
	)
}
