package dto

import (
	"strings"
	"time"

	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

const msgCheckOutBeforeCheckIn = "checkOut must be after checkIn"

type CreateBookingRequest struct {
	GuestID         string `json:"guestId"         validate:"required,uuid"`
	RoomID          string `json:"roomId"          validate:"required,uuid"`
	CheckIn         string `json:"checkIn"         validate:"required,stay_date"`
	CheckOut        string `json:"checkOut"        validate:"required,stay_date"`
	NumberOfGuests  int    `json:"numberOfGuests"  validate:"required,gte=1,lte=4"`
	SpecialRequests string `json:"specialRequests" validate:"omitempty,max=500"`
	PaymentStatus   string `json:"paymentStatus"   validate:"omitempty,oneof=pending paid refunded"`
}

// StayDates parses both dates and rejects a range that does not move forward.
func (c *CreateBookingRequest) StayDates() (checkIn, checkOut time.Time, err error) {
	return stayDates(c.CheckIn, c.CheckOut)
}

func (c *CreateBookingRequest) ToModel(checkIn, checkOut time.Time, nightlyRate float64) model.Booking {
	paymentStatus := c.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = model.PaymentPending
	}

	booking := model.Booking{
		ID:              uuid.NewString(),
		GuestID:         c.GuestID,
		RoomID:          c.RoomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Status:          model.StatusConfirmed,
		TotalAmount:     float64(model.Nights(checkIn, checkOut)) * nightlyRate,
		PaymentStatus:   paymentStatus,
		NumberOfGuests:  c.NumberOfGuests,
		SpecialRequests: strings.TrimSpace(c.SpecialRequests),
	}
	booking.Touch(timezone.Now())

	return booking
}

type UpdateBookingRequest struct {
	CheckIn         *string `json:"checkIn"         validate:"omitnil,stay_date"`
	CheckOut        *string `json:"checkOut"        validate:"omitnil,stay_date"`
	NumberOfGuests  *int    `json:"numberOfGuests"  validate:"omitnil,gte=1,lte=4"`
	Status          *string `json:"status"          validate:"omitnil,oneof=confirmed checked-in checked-out cancelled"`
	PaymentStatus   *string `json:"paymentStatus"   validate:"omitnil,oneof=pending paid refunded"`
	SpecialRequests *string `json:"specialRequests" validate:"omitnil,max=500"`
}

func (u *UpdateBookingRequest) IsEmpty() bool {
	return u.CheckIn == nil && u.CheckOut == nil && u.NumberOfGuests == nil &&
		u.Status == nil && u.PaymentStatus == nil && u.SpecialRequests == nil
}

// Changes merges the request over current and returns the columns to write. The merged stay
// must still end after it starts.
func (u *UpdateBookingRequest) Changes(current model.Booking) (map[string]any, error) {
	fields := map[string]any{}

	checkIn, checkOut := current.CheckIn, current.CheckOut

	if u.CheckIn != nil {
		parsed, err := timezone.ParseDate(*u.CheckIn)
		if err != nil {
			return nil, failure.BadRequestFromString("checkIn must be a date in YYYY-MM-DD or RFC3339 format")
		}

		checkIn = parsed
		fields[model.FieldCheckIn] = checkIn
	}

	if u.CheckOut != nil {
		parsed, err := timezone.ParseDate(*u.CheckOut)
		if err != nil {
			return nil, failure.BadRequestFromString("checkOut must be a date in YYYY-MM-DD or RFC3339 format")
		}

		checkOut = parsed
		fields[model.FieldCheckOut] = checkOut
	}

	if !checkOut.After(checkIn) {
		return nil, failure.BadRequestFromString(msgCheckOutBeforeCheckIn)
	}

	if u.NumberOfGuests != nil {
		fields[model.FieldNumberOfGuests] = *u.NumberOfGuests
	}

	if u.Status != nil {
		fields[model.FieldStatus] = *u.Status
	}

	if u.PaymentStatus != nil {
		fields[model.FieldPaymentStatus] = *u.PaymentStatus
	}

	if u.SpecialRequests != nil {
		fields[model.FieldSpecialRequests] = strings.TrimSpace(*u.SpecialRequests)
	}

	fields[constant.FieldUpdatedAt] = timezone.Now()

	return fields, nil
}

type BookingFilter struct {
	RoomID  string `json:"roomId"  validate:"omitempty,uuid"`
	GuestID string `json:"guestId" validate:"omitempty,uuid"`
	Status  string `json:"status"  validate:"omitempty,oneof=confirmed checked-in checked-out cancelled"`
}

func (f *BookingFilter) ToFilterGroup() gDto.FilterGroup {
	filters := []any{}

	if f.RoomID != "" {
		filters = append(filters, gDto.Filter{Table: model.TableName, Field: model.FieldRoomID, Operator: gDto.FilterOperatorEq, Value: f.RoomID})
	}

	if f.GuestID != "" {
		filters = append(filters, gDto.Filter{Table: model.TableName, Field: model.FieldGuestID, Operator: gDto.FilterOperatorEq, Value: f.GuestID})
	}

	if f.Status != "" {
		filters = append(filters, gDto.Filter{Table: model.TableName, Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: f.Status})
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
}

type GuestSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type RoomSummary struct {
	ID        string   `json:"id"`
	Number    string   `json:"number"`
	Type      string   `json:"type"`
	Price     float64  `json:"price"`
	Status    string   `json:"status"`
	Amenities []string `json:"amenities"`
}

type BookingResponse struct {
	ID              string        `json:"id"`
	GuestID         string        `json:"guestId"`
	RoomID          string        `json:"roomId"`
	Guest           *GuestSummary `json:"guest"`
	Room            *RoomSummary  `json:"room"`
	CheckIn         string        `json:"checkIn"`
	CheckOut        string        `json:"checkOut"`
	Status          string        `json:"status"`
	TotalAmount     float64       `json:"totalAmount"`
	PaymentStatus   string        `json:"paymentStatus"`
	NumberOfGuests  int           `json:"numberOfGuests"`
	SpecialRequests string        `json:"specialRequests,omitempty"`
	gDto.Metadata
}

// FromModel copies the booking; a summary stays nil when the joined guest or room is gone.
func (r *BookingResponse) FromModel(booking model.Booking) {
	r.ID = booking.ID
	r.GuestID = booking.GuestID
	r.RoomID = booking.RoomID
	r.CheckIn = booking.CheckIn.UTC().Format(constant.DateFormat)
	r.CheckOut = booking.CheckOut.UTC().Format(constant.DateFormat)
	r.Status = booking.Status
	r.TotalAmount = booking.TotalAmount
	r.PaymentStatus = booking.PaymentStatus
	r.NumberOfGuests = booking.NumberOfGuests
	r.SpecialRequests = booking.SpecialRequests
	r.Metadata.FromModel(booking.Metadata)

	if booking.GuestName != nil {
		r.Guest = &GuestSummary{
			ID:    booking.GuestID,
			Name:  *booking.GuestName,
			Email: deref(booking.GuestEmail),
			Phone: deref(booking.GuestPhone),
		}
	}

	if booking.RoomNumber != nil {
		r.Room = &RoomSummary{
			ID:        booking.RoomID,
			Number:    *booking.RoomNumber,
			Type:      deref(booking.RoomType),
			Status:    deref(booking.RoomStatus),
			Amenities: []string(booking.RoomAmenities),
		}

		if booking.RoomPrice != nil {
			r.Room.Price = *booking.RoomPrice
		}

		if r.Room.Amenities == nil {
			r.Room.Amenities = []string{}
		}
	}
}

func FromModels(models []model.Booking) []BookingResponse {
	res := make([]BookingResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

func stayDates(checkInValue, checkOutValue string) (checkIn, checkOut time.Time, err error) {
	checkIn, err = timezone.ParseDate(checkInValue)
	if err != nil {
		return checkIn, checkOut, failure.BadRequestFromString("checkIn must be a date in YYYY-MM-DD or RFC3339 format")
	}

	checkOut, err = timezone.ParseDate(checkOutValue)
	if err != nil {
		return checkIn, checkOut, failure.BadRequestFromString("checkOut must be a date in YYYY-MM-DD or RFC3339 format")
	}

	if !checkOut.After(checkIn) {
		return checkIn, checkOut, failure.BadRequestFromString(msgCheckOutBeforeCheckIn)
	}

	return checkIn, checkOut, nil
}

func deref[T any](value *T) T {
	var zero T
	if value == nil {
		return zero
	}

	return *value
}
