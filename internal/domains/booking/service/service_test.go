package service_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	kafkaMocks "hotel/infras/kafka/mocks"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/infras/postgres"
	bookingMocks "hotel/internal/domains/booking/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	"hotel/internal/domains/booking/service"
	guestMocks "hotel/internal/domains/guest/mocks"
	guestModel "hotel/internal/domains/guest/model"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/cache"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/transport/http/response"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	guestID = "7f9c2a1e-3b4d-4c5e-8f6a-1b2c3d4e5f60"
	roomID  = "0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"
)

type fixture struct {
	bookings *bookingMocks.MockBooking
	guests   *guestMocks.MockGuest
	rooms    *roomMocks.MockRoom
	events   *kafkaMocks.MockClient
	otel     *otelMocks.Otel
	server   *miniredis.Miniredis
	svc      service.Booking
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := fixture{
		bookings: bookingMocks.NewMockBooking(ctrl),
		guests:   guestMocks.NewMockGuest(ctrl),
		rooms:    roomMocks.NewMockRoom(ctrl),
		events:   kafkaMocks.NewMockClient(ctrl),
		otel:     otelMocks.NewOtel(),
		server:   server,
	}

	f.svc = service.New(f.bookings, f.guests, f.rooms, &config.Config{},
		cache.NewRedisCache(client, otelMocks.NewOtel()), f.otel, f.events)

	return f
}

// runTx makes WithTx call straight through; the mocks never touch the transaction handle.
func (f fixture) runTx() *gomock.Call {
	return f.bookings.EXPECT().WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, *sqlx.Tx) error) error {
			return fn(ctx, nil)
		})
}

func (f fixture) expectEvent(t *testing.T, eventType string) {
	t.Helper()

	f.events.EXPECT().SendMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, messages ...kafka.Message) error {
			require.Len(t, messages, 1)

			event, ok := messages[0].Value.(model.Event)
			require.True(t, ok)
			assert.Equal(t, eventType, event.Type)
			assert.Equal(t, messages[0].Key, event.RoomID)

			return nil
		})
}

func room101() roomModel.Room {
	return roomModel.Room{
		ID:        roomID,
		Number:    "101",
		Type:      roomModel.TypeSingle,
		Price:     100,
		Status:    roomModel.StatusAvailable,
		Capacity:  1,
		Amenities: pq.StringArray{"WiFi", "TV", "AC"},
	}
}

func guestG1() guestModel.Guest {
	return guestModel.Guest{ID: guestID, Name: "John Doe", Email: "john@example.com", Phone: "+1234567890"}
}

func createRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		GuestID:        guestID,
		RoomID:         roomID,
		CheckIn:        "2024-01-15",
		CheckOut:       "2024-01-20",
		NumberOfGuests: 1,
	}
}

func existingBooking(status string) model.Booking {
	number := "101"

	return model.Booking{
		ID:             "booking-1",
		GuestID:        guestID,
		RoomID:         roomID,
		CheckIn:        time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		CheckOut:       time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC),
		Status:         status,
		TotalAmount:    500,
		PaymentStatus:  model.PaymentPending,
		NumberOfGuests: 1,
		RoomNumber:     &number,
	}
}

func expectRoomStatus(t *testing.T, rooms *roomMocks.MockRoom, status string) *gomock.Call {
	t.Helper()

	return rooms.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) error {
			assert.Equal(t, status, fields[roomModel.FieldStatus])

			_, args := filter.GetWhereClause()
			assert.Equal(t, roomID, args[roomModel.FieldID])

			return nil
		})
}

func TestBookingService_Create(t *testing.T) {
	t.Run("books room 101 for five nights", func(t *testing.T) {
		f := newFixture(t)
		f.server.Set("room:get:"+roomID, "{}")

		f.runTx()
		f.guests.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guestG1(), nil)
		f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room101(), nil)
		f.bookings.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup) (bool, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC), args["new_check_out"])

				return false, nil
			})
		f.bookings.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
				assert.Equal(t, 500.0, booking.TotalAmount)
				assert.Equal(t, model.StatusConfirmed, booking.Status)

				return nil
			})
		expectRoomStatus(t, f.rooms, roomModel.StatusOccupied)
		f.expectEvent(t, model.EventCreated)

		res, err := f.svc.Create(context.Background(), createRequest())

		require.NoError(t, err)
		assert.Equal(t, 500.0, res.TotalAmount)
		assert.Equal(t, model.StatusConfirmed, res.Status)
		assert.Equal(t, model.PaymentPending, res.PaymentStatus)
		require.NotNil(t, res.Room)
		assert.Equal(t, roomModel.StatusOccupied, res.Room.Status)
		require.NotNil(t, res.Guest)
		assert.Equal(t, "John Doe", res.Guest.Name)
		assert.False(t, f.server.Exists("room:get:"+roomID))
	})

	tests := []struct {
		name      string
		req       func() dto.CreateBookingRequest
		setupMock func(f fixture)
		wantErr   error
		wantKind  failure.Kind
		wantCode  int
	}{
		{
			name: "check-out before check-in never opens a transaction",
			req: func() dto.CreateBookingRequest {
				req := createRequest()
				req.CheckOut = "2024-01-10"

				return req
			},
			setupMock: func(fixture) {},
			wantKind:  failure.KindInvalidInput,
			wantCode:  400,
		},
		{
			name: "unknown guest",
			req:  createRequest,
			setupMock: func(f fixture) {
				f.runTx()
				f.guests.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guestModel.Guest{}, nil)
			},
			wantKind: failure.KindNotFound,
			wantCode: 404,
		},
		{
			name: "unknown room",
			req:  createRequest,
			setupMock: func(f fixture) {
				f.runTx()
				f.guests.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guestG1(), nil)
				f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
			},
			wantKind: failure.KindNotFound,
			wantCode: 404,
		},
		{
			name: "room under maintenance",
			req:  createRequest,
			setupMock: func(f fixture) {
				room := room101()
				room.Status = roomModel.StatusMaintenance

				f.runTx()
				f.guests.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guestG1(), nil)
				f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room, nil)
			},
			wantErr:  service.ErrRoomUnavailable,
			wantKind: failure.KindConflict,
			wantCode: 400,
		},
		{
			name: "two guests in a single room",
			req: func() dto.CreateBookingRequest {
				req := createRequest()
				req.NumberOfGuests = 2

				return req
			},
			setupMock: func(f fixture) {
				f.runTx()
				f.guests.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guestG1(), nil)
				f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room101(), nil)
			},
			wantErr:  service.ErrCapacityExceeded,
			wantKind: failure.KindInvalidInput,
			wantCode: 400,
		},
		{
			name: "same dates already booked",
			req:  createRequest,
			setupMock: func(f fixture) {
				f.runTx()
				f.guests.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guestG1(), nil)
				f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room101(), nil)
				f.bookings.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  service.ErrDateOverlap,
			wantKind: failure.KindConflict,
			wantCode: 400,
		},
		{
			name: "exclusion constraint catches a concurrent insert",
			req:  createRequest,
			setupMock: func(f fixture) {
				f.runTx()
				f.guests.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guestG1(), nil)
				f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room101(), nil)
				f.bookings.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				f.bookings.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.Join(errors.New("insert"), &pq.Error{Code: "23P01"}))
			},
			wantErr:  service.ErrDateOverlap,
			wantKind: failure.KindConflict,
			wantCode: 400,
		},
		{
			name: "room status write fails",
			req:  createRequest,
			setupMock: func(f fixture) {
				f.runTx()
				f.guests.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guestG1(), nil)
				f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room101(), nil)
				f.bookings.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				f.bookings.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.rooms.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
			},
			wantKind: failure.KindInternal,
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			_, err := f.svc.Create(context.Background(), tt.req())

			require.Error(t, err)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}

			assert.Equal(t, tt.wantKind, failure.GetKind(err))
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			scope := f.otel.Scope("service.Create")
			require.NotNil(t, scope)
			assert.True(t, scope.Ended)
			assert.Len(t, scope.Errors, 1)
		})
	}
}

func TestBookingService_CheckIn(t *testing.T) {
	t.Run("only the booking status changes", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingBooking(model.StatusConfirmed), nil)
		f.bookings.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusCheckedIn, fields[model.FieldStatus])
				assert.NotContains(t, fields, model.FieldPaymentStatus)

				return nil
			})
		f.expectEvent(t, model.EventCheckedIn)

		res, err := f.svc.CheckIn(context.Background(), "booking-1")

		require.NoError(t, err)
		assert.Equal(t, model.StatusCheckedIn, res.Status)
	})

	t.Run("missing booking", func(t *testing.T) {
		f := newFixture(t)
		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.CheckIn(context.Background(), "missing")

		assert.EqualError(t, err, "Booking not found")
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestBookingService_CheckOut(t *testing.T) {
	for _, payment := range []string{model.PaymentPending, model.PaymentRefunded, model.PaymentPaid} {
		t.Run("settles "+payment+" payment and frees the room", func(t *testing.T) {
			f := newFixture(t)

			booking := existingBooking(model.StatusCheckedIn)
			booking.PaymentStatus = payment

			f.runTx()
			f.bookings.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)
			f.bookings.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, model.StatusCheckedOut, fields[model.FieldStatus])
					assert.Equal(t, model.PaymentPaid, fields[model.FieldPaymentStatus])

					return nil
				})
			expectRoomStatus(t, f.rooms, roomModel.StatusAvailable)
			f.expectEvent(t, model.EventCheckedOut)

			res, err := f.svc.CheckOut(context.Background(), "booking-1")

			require.NoError(t, err)
			assert.Equal(t, model.StatusCheckedOut, res.Status)
			assert.Equal(t, model.PaymentPaid, res.PaymentStatus)
		})
	}

	t.Run("room write failure rolls the check-out back", func(t *testing.T) {
		f := newFixture(t)

		f.runTx()
		f.bookings.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(existingBooking(model.StatusCheckedIn), nil)
		f.bookings.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.rooms.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		_, err := f.svc.CheckOut(context.Background(), "booking-1")
		assert.Error(t, err)
	})
}

func TestBookingService_Update(t *testing.T) {
	t.Run("empty request", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Update(context.Background(), "booking-1", dto.UpdateBookingRequest{})
		assert.ErrorIs(t, err, failure.EmptyUpdateRequest)
	})

	t.Run("cancelling an active booking releases the room", func(t *testing.T) {
		f := newFixture(t)

		cancelled := existingBooking(model.StatusCancelled)
		status := model.StatusCancelled

		f.runTx()
		f.bookings.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(existingBooking(model.StatusConfirmed), nil)
		f.bookings.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		expectRoomStatus(t, f.rooms, roomModel.StatusAvailable)
		f.bookings.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(cancelled, nil)
		f.expectEvent(t, model.EventUpdated)

		res, err := f.svc.Update(context.Background(), "booking-1", dto.UpdateBookingRequest{Status: &status})

		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, res.Status)
	})

	t.Run("date edit keeps the total and skips room checks", func(t *testing.T) {
		f := newFixture(t)

		checkOut := "2024-01-25"
		edited := existingBooking(model.StatusConfirmed)
		edited.CheckOut = time.Date(2024, time.January, 25, 0, 0, 0, 0, time.UTC)

		f.runTx()
		f.bookings.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(existingBooking(model.StatusConfirmed), nil)
		f.bookings.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.NotContains(t, fields, model.FieldTotalAmount)

				return nil
			})
		f.bookings.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(edited, nil)
		f.expectEvent(t, model.EventUpdated)

		res, err := f.svc.Update(context.Background(), "booking-1", dto.UpdateBookingRequest{CheckOut: &checkOut})

		require.NoError(t, err)
		assert.Equal(t, 500.0, res.TotalAmount)
		assert.Equal(t, "2024-01-25T00:00:00Z", res.CheckOut)
	})

	t.Run("edit colliding with another stay", func(t *testing.T) {
		f := newFixture(t)

		checkIn := "2024-01-10"

		f.runTx()
		f.bookings.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(existingBooking(model.StatusConfirmed), nil)
		f.bookings.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23P01"})

		_, err := f.svc.Update(context.Background(), "booking-1", dto.UpdateBookingRequest{CheckIn: &checkIn})
		assert.ErrorIs(t, err, service.ErrDateOverlap)
	})

	t.Run("failed read-back rolls the edit back without an event", func(t *testing.T) {
		f := newFixture(t)

		checkOut := "2024-01-25"

		f.runTx()
		gomock.InOrder(
			f.bookings.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(existingBooking(model.StatusConfirmed), nil),
			f.bookings.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
			f.bookings.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Booking{}, errors.New("connection reset")),
		)

		_, err := f.svc.Update(context.Background(), "booking-1", dto.UpdateBookingRequest{CheckOut: &checkOut})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("merged dates out of order", func(t *testing.T) {
		f := newFixture(t)

		checkIn := "2024-01-22"

		f.runTx()
		f.bookings.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(existingBooking(model.StatusConfirmed), nil)

		_, err := f.svc.Update(context.Background(), "booking-1", dto.UpdateBookingRequest{CheckIn: &checkIn})
		assert.Equal(t, failure.KindInvalidInput, failure.GetKind(err))
	})
}

func TestBookingService_Delete(t *testing.T) {
	t.Run("active booking frees the room", func(t *testing.T) {
		f := newFixture(t)

		f.runTx()
		f.bookings.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(existingBooking(model.StatusConfirmed), nil)
		gomock.InOrder(
			expectRoomStatus(t, f.rooms, roomModel.StatusAvailable),
			f.bookings.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		)
		f.expectEvent(t, model.EventDeleted)

		assert.NoError(t, f.svc.Delete(context.Background(), "booking-1"))
	})

	t.Run("cancelled booking leaves the room alone", func(t *testing.T) {
		f := newFixture(t)

		f.runTx()
		f.bookings.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(existingBooking(model.StatusCancelled), nil)
		f.bookings.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.expectEvent(t, model.EventDeleted)

		assert.NoError(t, f.svc.Delete(context.Background(), "booking-1"))
	})

	t.Run("missing booking", func(t *testing.T) {
		f := newFixture(t)

		f.runTx()
		f.bookings.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		assert.Equal(t, failure.KindNotFound, failure.GetKind(f.svc.Delete(context.Background(), "missing")))
	})
}

func TestBookingService_Reads(t *testing.T) {
	f := newFixture(t)

	f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, roomID, args[model.FieldRoomID])

			return []model.Booking{existingBooking(model.StatusConfirmed)}, nil
		})
	f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingBooking(model.StatusConfirmed), nil)

	list, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, dto.BookingFilter{RoomID: roomID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Guest)

	one, err := f.svc.Get(context.Background(), "booking-1")
	require.NoError(t, err)
	assert.Equal(t, "101", one.Room.Number)
}

func TestBookingService_EventFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(t)

	f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingBooking(model.StatusConfirmed), nil)
	f.bookings.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.events.EXPECT().SendMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	_, err := f.svc.CheckIn(context.Background(), "booking-1")
	assert.NoError(t, err)
}

func TestBookingService_MalformedIDIsNotFound(t *testing.T) {
	invalid := &pq.Error{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}

	t.Run("get", func(t *testing.T) {
		f := newFixture(t)
		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, invalid)

		_, err := f.svc.Get(context.Background(), "abc")

		assert.EqualError(t, err, "Booking not found")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("check-out", func(t *testing.T) {
		f := newFixture(t)

		f.runTx()
		f.bookings.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Booking{}, invalid)

		_, err := f.svc.CheckOut(context.Background(), "abc")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("through the repository and response", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		sqlxDB := sqlx.NewDb(db, "postgres")
		repo := repository.New(&postgres.Connection{Read: sqlxDB, Write: sqlxDB}, otelMocks.NewOtel())

		f := newFixture(t)
		svc := service.New(repo, f.guests, f.rooms, &config.Config{},
			cache.NewRedisCache(redis.NewClient(&redis.Options{Addr: f.server.Addr()}), otelMocks.NewOtel()), f.otel, f.events)

		mock.ExpectPrepare(`FROM bookings`).
			ExpectQuery().
			WithArgs("abc").
			WillReturnError(invalid)

		_, err = svc.Get(context.Background(), "abc")

		recorder := httptest.NewRecorder()
		response.WithError(recorder, err)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.JSONEq(t, `{"success":false,"error":"Booking not found"}`, recorder.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
