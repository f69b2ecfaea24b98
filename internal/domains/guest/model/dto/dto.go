package dto

import (
	"strings"

	"hotel/internal/domains/guest/model"
	gDto "hotel/shared/dto"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateGuestRequest struct {
	Name           string             `json:"name"           validate:"required,max=100"`
	Email          string             `json:"email"          validate:"required,email,max=254"`
	Phone          string             `json:"phone"          validate:"required,max=30"`
	Address        *model.Address     `json:"address"        validate:"omitnil"`
	DocumentType   string             `json:"documentType"   validate:"omitempty,oneof=passport id_card driver_license"`
	DocumentNumber string             `json:"documentNumber" validate:"omitempty,max=50"`
	IDProof        *model.IDProof     `json:"idProof"        validate:"omitnil"`
	Preferences    *model.Preferences `json:"preferences"    validate:"omitnil"`
}

// Normalize trims contact fields and lower-cases the email so uniqueness is case-insensitive.
func (c *CreateGuestRequest) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = NormalizeEmail(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.DocumentNumber = strings.TrimSpace(c.DocumentNumber)
}

func (c *CreateGuestRequest) ToModel() model.Guest {
	guest := model.Guest{
		ID:             uuid.NewString(),
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		DocumentType:   c.DocumentType,
		DocumentNumber: c.DocumentNumber,
		IDProof:        c.IDProof,
		Preferences:    c.Preferences,
	}
	guest.Touch(timezone.Now())

	return guest
}

type UpdateGuestRequest struct {
	Name           *string            `db:"name"            json:"name"           validate:"omitnil,min=1,max=100"`
	Email          *string            `db:"email"           json:"email"          validate:"omitnil,email,max=254"`
	Phone          *string            `db:"phone"           json:"phone"          validate:"omitnil,min=1,max=30"`
	Address        *model.Address     `db:"address"         json:"address"        validate:"omitnil"`
	DocumentType   *string            `db:"document_type"   json:"documentType"   validate:"omitnil,oneof=passport id_card driver_license"`
	DocumentNumber *string            `db:"document_number" json:"documentNumber" validate:"omitnil,max=50"`
	IDProof        *model.IDProof     `db:"id_proof"        json:"idProof"        validate:"omitnil"`
	Preferences    *model.Preferences `db:"preferences"     json:"preferences"    validate:"omitnil"`
}

func (u *UpdateGuestRequest) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil && u.Address == nil &&
		u.DocumentType == nil && u.DocumentNumber == nil && u.IDProof == nil && u.Preferences == nil
}

func (u *UpdateGuestRequest) Normalize() {
	trim := func(value *string) *string {
		if value == nil {
			return nil
		}

		trimmed := strings.TrimSpace(*value)

		return &trimmed
	}

	u.Name = trim(u.Name)
	u.Phone = trim(u.Phone)
	u.DocumentNumber = trim(u.DocumentNumber)

	if u.Email != nil {
		email := NormalizeEmail(*u.Email)
		u.Email = &email
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type GuestFilter struct {
	Name string `json:"name" validate:"omitempty,max=100"`
}

func (f *GuestFilter) ToFilterGroup() gDto.FilterGroup {
	filters := []any{}

	if name := strings.TrimSpace(f.Name); name != "" {
		filters = append(filters, gDto.Filter{Table: model.TableName, Field: model.FieldName, Operator: gDto.FilterOperatorLike, Value: name})
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
}

func (f *GuestFilter) CacheFields() map[string]string {
	return map[string]string{model.FieldName: strings.TrimSpace(f.Name)}
}

type GuestResponse struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	Address        *model.Address     `json:"address,omitempty"`
	DocumentType   string             `json:"documentType,omitempty"`
	DocumentNumber string             `json:"documentNumber,omitempty"`
	IDProof        *model.IDProof     `json:"idProof,omitempty"`
	Preferences    *model.Preferences `json:"preferences,omitempty"`
	gDto.Metadata
}

func (r *GuestResponse) FromModel(guest model.Guest) {
	r.ID = guest.ID
	r.Name = guest.Name
	r.Email = guest.Email
	r.Phone = guest.Phone
	r.Address = guest.Address
	r.DocumentType = guest.DocumentType
	r.DocumentNumber = guest.DocumentNumber
	r.IDProof = guest.IDProof
	r.Preferences = guest.Preferences
	r.Metadata.FromModel(guest.Metadata)
}

func FromModels(models []model.Guest) []GuestResponse {
	res := make([]GuestResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
