package dto

import (
	"fmt"
	"path"
	"strings"

	"hotel/internal/domains/room/model"
	gDto "hotel/shared/dto"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateRoomRequest struct {
	Number      string   `json:"number"      validate:"required,max=10"`
	Type        string   `json:"type"        validate:"required,oneof=Single Double Suite Deluxe"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	Status      string   `json:"status"      validate:"omitempty,oneof=available occupied maintenance"`
	Capacity    int      `json:"capacity"    validate:"required,gte=1,lte=4"`
	Amenities   []string `json:"amenities"   validate:"omitempty,max=30,dive,max=50"`
	Description string   `json:"description" validate:"omitempty,max=500"`
}

func (c *CreateRoomRequest) ToModel() model.Room {
	status := c.Status
	if status == "" {
		status = model.StatusAvailable
	}

	room := model.Room{
		ID:          uuid.NewString(),
		Number:      strings.TrimSpace(c.Number),
		Type:        c.Type,
		Price:       *c.Price,
		Status:      status,
		Capacity:    c.Capacity,
		Amenities:   model.UniqueAmenities(c.Amenities),
		Description: strings.TrimSpace(c.Description),
	}
	room.Touch(timezone.Now())

	return room
}

type UpdateRoomRequest struct {
	Number      *string         `db:"number"      json:"number"      validate:"omitnil,min=1,max=10"`
	Type        *string         `db:"type"        json:"type"        validate:"omitnil,oneof=Single Double Suite Deluxe"`
	Price       *float64        `db:"price"       json:"price"       validate:"omitnil,gte=0"`
	Status      *string         `db:"status"      json:"status"      validate:"omitnil,oneof=available occupied maintenance"`
	Capacity    *int            `db:"capacity"    json:"capacity"    validate:"omitnil,gte=1,lte=4"`
	Amenities   *pq.StringArray `db:"amenities"   json:"amenities"   validate:"omitnil,max=30"`
	Description *string         `db:"description" json:"description" validate:"omitnil,max=500"`
}

func (u *UpdateRoomRequest) IsEmpty() bool {
	return u.Number == nil && u.Type == nil && u.Price == nil && u.Status == nil &&
		u.Capacity == nil && u.Amenities == nil && u.Description == nil
}

// Normalize applies the same cleanup as creation.
func (u *UpdateRoomRequest) Normalize() {
	if u.Number != nil {
		number := strings.TrimSpace(*u.Number)
		u.Number = &number
	}

	if u.Amenities != nil {
		amenities := model.UniqueAmenities(*u.Amenities)
		u.Amenities = &amenities
	}
}

type UploadImageRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType" validate:"required,mimetypes=image/png image/jpg image/jpeg"`
	Size        int64  `json:"size"        validate:"gt=0,maxfilesize=1"`
	Data        []byte `json:"-"`
}

// ObjectName builds a collision-free object name that keeps the uploaded extension.
func (u *UploadImageRequest) ObjectName() string {
	name := uuid.NewString()

	if ext := strings.ToLower(path.Ext(u.FileName)); ext != "" {
		name = fmt.Sprintf("%s%s", name, ext)
	}

	return name
}

type RoomFilter struct {
	Type     string   `json:"type"     validate:"omitempty,oneof=Single Double Suite Deluxe"`
	Status   string   `json:"status"   validate:"omitempty,oneof=available occupied maintenance"`
	MinPrice *float64 `json:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice *float64 `json:"maxPrice" validate:"omitempty,gte=0"`
}

func (f *RoomFilter) ToFilterGroup() gDto.FilterGroup {
	filters := []any{}

	if f.Type != "" {
		filters = append(filters, gDto.Filter{Table: model.TableName, Field: model.FieldType, Operator: gDto.FilterOperatorEq, Value: f.Type})
	}

	if f.Status != "" {
		filters = append(filters, gDto.Filter{Table: model.TableName, Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: f.Status})
	}

	if f.MinPrice != nil {
		filters = append(filters, gDto.Filter{
			Table: model.TableName, Field: model.FieldPrice, ArgName: "min_price",
			Operator: gDto.FilterOperatorGreaterEq, Value: *f.MinPrice,
		})
	}

	if f.MaxPrice != nil {
		filters = append(filters, gDto.Filter{
			Table: model.TableName, Field: model.FieldPrice, ArgName: "max_price",
			Operator: gDto.FilterOperatorLessEq, Value: *f.MaxPrice,
		})
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
}

func (f *RoomFilter) CacheFields() map[string]string {
	fields := map[string]string{
		model.FieldType:   f.Type,
		model.FieldStatus: f.Status,
	}

	if f.MinPrice != nil {
		fields["minPrice"] = fmt.Sprint(*f.MinPrice)
	}

	if f.MaxPrice != nil {
		fields["maxPrice"] = fmt.Sprint(*f.MaxPrice)
	}

	return fields
}

type RoomResponse struct {
	ID          string   `json:"id"`
	Number      string   `json:"number"`
	Type        string   `json:"type"`
	Price       float64  `json:"price"`
	Status      string   `json:"status"`
	Capacity    int      `json:"capacity"`
	Amenities   []string `json:"amenities"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Number = model.Number
	r.Type = model.Type
	r.Price = model.Price
	r.Status = model.Status
	r.Capacity = model.Capacity
	r.Amenities = []string(model.Amenities)
	r.Description = model.Description
	r.Image = model.Image
	r.Metadata.FromModel(model.Metadata)

	if r.Amenities == nil {
		r.Amenities = []string{}
	}
}

func FromModels(models []model.Room) []RoomResponse {
	res := make([]RoomResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
