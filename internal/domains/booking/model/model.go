package model

import (
	"math"
	"time"

	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldGuestID         = "guest_id"
	FieldRoomID          = "room_id"
	FieldCheckIn         = "check_in"
	FieldCheckOut        = "check_out"
	FieldStatus          = "status"
	FieldTotalAmount     = "total_amount"
	FieldPaymentStatus   = "payment_status"
	FieldNumberOfGuests  = "number_of_guests"
	FieldSpecialRequests = "special_requests"
)

const (
	StatusConfirmed  = "confirmed"
	StatusCheckedIn  = "checked-in"
	StatusCheckedOut = "checked-out"
	StatusCancelled  = "cancelled"
)

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// ActiveStatuses hold their room; two active bookings on one room may not overlap.
var ActiveStatuses = []string{StatusConfirmed, StatusCheckedIn}

type Booking struct {
	ID              string    `db:"id"`
	GuestID         string    `db:"guest_id"`
	RoomID          string    `db:"room_id"`
	CheckIn         time.Time `db:"check_in"`
	CheckOut        time.Time `db:"check_out"`
	Status          string    `db:"status"`
	TotalAmount     float64   `db:"total_amount"`
	PaymentStatus   string    `db:"payment_status"`
	NumberOfGuests  int       `db:"number_of_guests"`
	SpecialRequests string    `db:"special_requests"`

	GuestName     *string        `db:"guest_name"     table:"guests" column:"name"`
	GuestEmail    *string        `db:"guest_email"    table:"guests" column:"email"`
	GuestPhone    *string        `db:"guest_phone"    table:"guests" column:"phone"`
	RoomNumber    *string        `db:"room_number"    table:"rooms"  column:"number"`
	RoomType      *string        `db:"room_type"      table:"rooms"  column:"type"`
	RoomPrice     *float64       `db:"room_price"     table:"rooms"  column:"price"`
	RoomStatus    *string        `db:"room_status"    table:"rooms"  column:"status"`
	RoomAmenities pq.StringArray `db:"room_amenities" table:"rooms"  column:"amenities"`

	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "LEFT JOIN guests ON guests.id = bookings.guest_id LEFT JOIN rooms ON rooms.id = bookings.room_id"
}

func (b Booking) IsActive() bool {
	return IsActiveStatus(b.Status)
}

func IsActiveStatus(status string) bool {
	return status == StatusConfirmed || status == StatusCheckedIn
}

// Nights counts started days, so a 25 hour stay is charged as two nights.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / constant.HoursPerDay))
}

// OverlapFilter matches active bookings on roomID whose [check_in, check_out) intersects the
// given range.
func OverlapFilter(roomID string, checkIn, checkOut time.Time) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Table: TableName, Field: FieldRoomID, Operator: dto.FilterOperatorEq, Value: roomID},
			dto.Filter{Table: TableName, Field: FieldCheckIn, ArgName: "new_check_out", Operator: dto.FilterOperatorLess, Value: checkOut},
			dto.Filter{Table: TableName, Field: FieldCheckOut, ArgName: "new_check_in", Operator: dto.FilterOperatorGreater, Value: checkIn},
			dto.Filter{Table: TableName, Field: FieldStatus, Operator: dto.FilterOperatorIn, Value: ActiveStatuses},
		},
	}
}
