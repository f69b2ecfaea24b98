package helper

import (
	"context"
	"fmt"
	"time"

	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	guestModel "hotel/internal/domains/guest/model"
	guestRepo "hotel/internal/domains/guest/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type Seeder struct {
	bookings bookingRepo.Booking
	guests   guestRepo.Guest
	rooms    roomRepo.Room
}

func NewSeeder(bookings bookingRepo.Booking, guests guestRepo.Guest, rooms roomRepo.Room) Seeder {
	return Seeder{
		bookings: bookings,
		guests:   guests,
		rooms:    rooms,
	}
}

type SeedData struct {
	Rooms    []roomModel.Room
	Guests   []guestModel.Guest
	Bookings []bookingModel.Booking
}

// Run replaces every room, guest and booking with the demo data set in a single transaction.
func (s Seeder) Run(ctx context.Context) error {
	data := DemoData(timezone.Now())

	err := s.bookings.WithTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		if err := s.bookings.TruncateTx(ctx, sqltx); err != nil {
			return fmt.Errorf("failed to clear bookings: %w", err)
		}

		if err := s.guests.TruncateTx(ctx, sqltx); err != nil {
			return fmt.Errorf("failed to clear guests: %w", err)
		}

		if err := s.rooms.TruncateTx(ctx, sqltx); err != nil {
			return fmt.Errorf("failed to clear rooms: %w", err)
		}

		if err := s.rooms.InsertBulkTx(ctx, sqltx, data.Rooms); err != nil {
			return fmt.Errorf("failed to insert rooms: %w", err)
		}

		if err := s.guests.InsertBulkTx(ctx, sqltx, data.Guests); err != nil {
			return fmt.Errorf("failed to insert guests: %w", err)
		}

		if err := s.bookings.InsertBulkTx(ctx, sqltx, data.Bookings); err != nil {
			return fmt.Errorf("failed to insert bookings: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	log.Info().
		Int("rooms", len(data.Rooms)).
		Int("guests", len(data.Guests)).
		Int("bookings", len(data.Bookings)).
		Msg("Seed data created successfully")

	return nil
}

// DemoData returns four rooms, two guests and two confirmed bookings. Rooms 101 and 102 are
// occupied by those bookings and room 202 is under maintenance.
func DemoData(now time.Time) SeedData {
	room := func(number, roomType string, price float64, capacity int, status string, amenities ...string) roomModel.Room {
		r := roomModel.Room{
			ID:        uuid.NewString(),
			Number:    number,
			Type:      roomType,
			Price:     price,
			Status:    status,
			Capacity:  capacity,
			Amenities: pq.StringArray(amenities),
		}
		r.Touch(now)

		return r
	}

	rooms := []roomModel.Room{
		room("101", roomModel.TypeSingle, 100, 1, roomModel.StatusOccupied, "WiFi", "TV", "AC"),
		room("102", roomModel.TypeDouble, 150, 2, roomModel.StatusOccupied, "WiFi", "TV", "AC", "Mini Bar"),
		room("201", roomModel.TypeSuite, 250, 3, roomModel.StatusAvailable, "WiFi", "TV", "AC", "Mini Bar", "Jacuzzi"),
		room("202", roomModel.TypeDeluxe, 300, 4, roomModel.StatusMaintenance, "WiFi", "TV", "AC", "Mini Bar", "Jacuzzi", "Balcony"),
	}

	john := guestModel.Guest{
		ID:    uuid.NewString(),
		Name:  "John Doe",
		Email: "john@example.com",
		Phone: "+1234567890",
		Address: &guestModel.Address{
			Street:  "123 Main St",
			City:    "New York",
			State:   "NY",
			Country: "USA",
			ZipCode: "10001",
		},
	}
	john.Touch(now)

	jane := guestModel.Guest{
		ID:             uuid.NewString(),
		Name:           "Jane Smith",
		Email:          "jane@example.com",
		Phone:          "+0987654321",
		DocumentType:   guestModel.DocumentPassport,
		DocumentNumber: "AB123456",
	}
	jane.Touch(now)

	day := func(d int) time.Time {
		return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
	}

	booking := func(guest guestModel.Guest, room roomModel.Room, checkIn, checkOut time.Time, guests int, payment, requests string) bookingModel.Booking {
		b := bookingModel.Booking{
			ID:              uuid.NewString(),
			GuestID:         guest.ID,
			RoomID:          room.ID,
			CheckIn:         checkIn,
			CheckOut:        checkOut,
			Status:          bookingModel.StatusConfirmed,
			TotalAmount:     float64(bookingModel.Nights(checkIn, checkOut)) * room.Price,
			PaymentStatus:   payment,
			NumberOfGuests:  guests,
			SpecialRequests: requests,
		}
		b.Touch(now)

		return b
	}

	return SeedData{
		Rooms:  rooms,
		Guests: []guestModel.Guest{john, jane},
		Bookings: []bookingModel.Booking{
			booking(john, rooms[0], day(15), day(20), 1, bookingModel.PaymentPaid, ""),
			booking(jane, rooms[1], day(18), day(22), 2, bookingModel.PaymentPending, "Late check-in please"),
		},
	}
}
