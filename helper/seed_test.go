package helper_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel/helper"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	guestMocks "hotel/internal/domains/guest/mocks"
	guestModel "hotel/internal/domains/guest/model"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func runTx(ctx context.Context, fn func(context.Context, *sqlx.Tx) error) error {
	return fn(ctx, nil)
}

func TestDemoData(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	data := helper.DemoData(now)

	require.Len(t, data.Rooms, 4)
	require.Len(t, data.Guests, 2)
	require.Len(t, data.Bookings, 2)

	statuses := map[string]string{}
	for _, room := range data.Rooms {
		statuses[room.Number] = room.Status
		assert.Equal(t, now, room.CreatedAt)
	}

	assert.Equal(t, map[string]string{
		"101": roomModel.StatusOccupied,
		"102": roomModel.StatusOccupied,
		"201": roomModel.StatusAvailable,
		"202": roomModel.StatusMaintenance,
	}, statuses)

	john, jane := data.Bookings[0], data.Bookings[1]

	assert.Equal(t, data.Guests[0].ID, john.GuestID)
	assert.Equal(t, data.Rooms[0].ID, john.RoomID)
	assert.InDelta(t, 500.0, john.TotalAmount, 0.001)
	assert.Equal(t, bookingModel.PaymentPaid, john.PaymentStatus)

	assert.Equal(t, data.Guests[1].ID, jane.GuestID)
	assert.Equal(t, data.Rooms[1].ID, jane.RoomID)
	assert.InDelta(t, 600.0, jane.TotalAmount, 0.001)
	assert.Equal(t, 2, jane.NumberOfGuests)
	assert.Equal(t, "Late check-in please", jane.SpecialRequests)

	assert.Equal(t, guestModel.DocumentPassport, data.Guests[1].DocumentType)
	require.NotNil(t, data.Guests[0].Address)
	assert.Equal(t, "10001", data.Guests[0].Address.ZipCode)
}

func TestSeeder_Run(t *testing.T) {
	ctrl := gomock.NewController(t)

	bookings := bookingMocks.NewMockBooking(ctrl)
	guests := guestMocks.NewMockGuest(ctrl)
	rooms := roomMocks.NewMockRoom(ctrl)

	bookings.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)

	gomock.InOrder(
		bookings.EXPECT().TruncateTx(gomock.Any(), gomock.Any()).Return(nil),
		guests.EXPECT().TruncateTx(gomock.Any(), gomock.Any()).Return(nil),
		rooms.EXPECT().TruncateTx(gomock.Any(), gomock.Any()).Return(nil),
		rooms.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Len(4)).Return(nil),
		guests.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Len(2)).Return(nil),
		bookings.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Len(2)).Return(nil),
	)

	err := helper.NewSeeder(bookings, guests, rooms).Run(context.Background())

	assert.NoError(t, err)
}

func TestSeeder_Run_StopsOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)

	bookings := bookingMocks.NewMockBooking(ctrl)
	guests := guestMocks.NewMockGuest(ctrl)
	rooms := roomMocks.NewMockRoom(ctrl)

	errInsert := errors.New("duplicate key")

	bookings.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
	bookings.EXPECT().TruncateTx(gomock.Any(), gomock.Any()).Return(nil)
	guests.EXPECT().TruncateTx(gomock.Any(), gomock.Any()).Return(nil)
	rooms.EXPECT().TruncateTx(gomock.Any(), gomock.Any()).Return(nil)
	rooms.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errInsert)

	err := helper.NewSeeder(bookings, guests, rooms).Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, errInsert)
	assert.Contains(t, err.Error(), "failed to insert rooms")
}
