package owner

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"articles-backend/internal/domains/owner/model"
	"articles-backend/internal/shared/query"
)

// emailPattern is the accepted email shape. Addresses are stored
// lowercase; matching happens before the lowering, so the class is
// case-insensitive by construction.
var emailPattern = regexp.MustCompile(`^[\w-]+@([\w-]+\.)+[\w-]{2,4}$`)

// Sortable declares the owner listing's sort surface. The whitelist is
// static; columns not listed here can never be sorted on, and an unknown
// field falls back to creation time. role and age are optional columns,
// so sorting on them filters out rows that lack a value.
var Sortable = query.Sortable{
	Fields: map[string]string{
		"firstName": "first_name",
		"lastName":  "last_name",
		"fullName":  "full_name",
		"email":     "email",
		"role":      "role",
		"age":       "age",
		"itemCount": "item_count",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	},
	Nullable: map[string]bool{
		"role": true,
		"age":  true,
	},
}

// CreateOwnerRequest creates an owner from supplied fields. itemCount and
// timestamps are server-maintained and not accepted from the caller.
type CreateOwnerRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Role      *string `json:"role,omitempty"`
	Age       *int    `json:"age,omitempty"`
}

func (r CreateOwnerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.Required.Error("first name is required"),
			validation.Length(model.MinFirstNameLength, model.MaxFirstNameLength),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("last name is required"),
			validation.Length(model.MinLastNameLength, model.MaxLastNameLength),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			validation.Match(emailPattern).Error("invalid email format"),
		),
		validation.Field(&r.Role,
			validation.In(model.RoleAdmin, model.RoleWriter, model.RoleGuest).
				Error("role must be admin, writer or guest"),
		),
		// No lower bound on age: sub-minimum values are clamped by the
		// normalizer, not rejected.
		validation.Field(&r.Age,
			validation.Max(model.MaxAge),
		),
	)
}

// UpdateOwnerRequest mutates an owner. Any submitted field overwrites the
// prior value; absent fields are left alone.
type UpdateOwnerRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Role      *string `json:"role,omitempty"`
	Age       *int    `json:"age,omitempty"`
}

func (r UpdateOwnerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.Length(model.MinFirstNameLength, model.MaxFirstNameLength),
		),
		validation.Field(&r.LastName,
			validation.Length(model.MinLastNameLength, model.MaxLastNameLength),
		),
		validation.Field(&r.Email,
			validation.Match(emailPattern).Error("invalid email format"),
		),
		validation.Field(&r.Role,
			validation.In(model.RoleAdmin, model.RoleWriter, model.RoleGuest).
				Error("role must be admin, writer or guest"),
		),
		validation.Field(&r.Age,
			validation.Max(model.MaxAge),
		),
	)
}

// TokenResponse carries an issued owner identity token.
type TokenResponse struct {
	Token     string    `json:"token"`
	OwnerID   uuid.UUID `json:"ownerId"`
	ExpiresAt time.Time `json:"expiresAt"`
}
