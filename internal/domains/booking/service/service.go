package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"errors"
	"fmt"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	guestModel "hotel/internal/domains/guest/model"
	guestRepo "hotel/internal/domains/guest/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/metrics"
	gRepo "hotel/shared/repository"
	"hotel/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	msgBookingNotFound = "Booking not found"
	msgGuestNotFound   = "Guest not found"
	msgRoomNotFound    = "Room not found"
)

var (
	ErrRoomUnavailable  = failure.Conflict("Room is not available")
	ErrCapacityExceeded = failure.BadRequestFromString("Number of guests exceeds room capacity")
	ErrDateOverlap      = failure.Conflict("Room is already booked for the selected dates")
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter dto.BookingFilter) ([]dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateBookingRequest) (dto.BookingResponse, error)
	CheckIn(ctx context.Context, id string) (dto.BookingResponse, error)
	CheckOut(ctx context.Context, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Booking
	guestRepo guestRepo.Guest
	roomRepo  roomRepo.Room
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	events    kafka.Client
}

func New(repo repository.Booking, guestRepo guestRepo.Guest, roomRepo roomRepo.Room, cfg *config.Config,
	cache cache.RedisCache, otel otel.Otel, events kafka.Client,
) Booking {
	return &serviceImpl{
		repo:      repo,
		guestRepo: guestRepo,
		roomRepo:  roomRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		events:    events,
	}
}

// Create books a room for a guest. The room row stays locked from the availability check until
// commit, so concurrent requests for one room are serialised.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	checkIn, checkOut, err := req.StayDates()
	if err != nil {
		return res, err
	}

	var booking model.Booking

	err = s.repo.WithTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		guest, err := s.guestRepo.Get(ctx, shared.FilterByID(req.GuestID, guestModel.FieldID, guestModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to get guest: %w", err)
		}

		if guest.ID == constant.Empty {
			return failure.NotFound(msgGuestNotFound) // nolint:wrapcheck
		}

		room, err := s.roomRepo.GetForUpdateTx(ctx, sqltx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound(msgRoomNotFound) // nolint:wrapcheck
		}

		if !room.IsAvailable() {
			return ErrRoomUnavailable
		}

		if req.NumberOfGuests > room.Capacity {
			return ErrCapacityExceeded
		}

		overlaps, err := s.repo.ExistTx(ctx, sqltx, model.OverlapFilter(room.ID, checkIn, checkOut))
		if err != nil {
			return fmt.Errorf("failed to check overlapping bookings: %w", err)
		}

		if overlaps {
			return ErrDateOverlap
		}

		booking = req.ToModel(checkIn, checkOut, room.Price)

		if err := s.repo.InsertTx(ctx, sqltx, booking); err != nil {
			if gRepo.IsExclusionViolation(err) {
				return ErrDateOverlap
			}

			return fmt.Errorf("failed to insert booking: %w", err)
		}

		if err := s.setRoomStatus(ctx, sqltx, room.ID, roomModel.StatusOccupied); err != nil {
			return err
		}

		room.Status = roomModel.StatusOccupied
		booking = withSummaries(booking, guest, room)

		return nil
	})
	if err != nil {
		s.recordRejection(err)
		log.Error().Err(err).Str("roomId", req.RoomID).Str("guestId", req.GuestID).Msg("failed to create booking")

		return res, err
	}

	s.afterCommit(ctx, model.EventCreated, booking)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter dto.BookingFilter) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	models, err := s.repo.GetAll(ctx, params, filter.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	return dto.FromModels(models), nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

// Update edits booking fields in place. Capacity and overlap are not re-checked and the total is
// kept; the exclusion constraint still refuses an edit that collides with another active stay.
func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return res, failure.EmptyUpdateRequest
	}

	var booking model.Booking

	err = s.repo.WithTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		current, err := s.lockBooking(ctx, sqltx, id)
		if err != nil {
			return err
		}

		fields, err := req.Changes(current)
		if err != nil {
			return err
		}

		if err := s.repo.UpdateTx(ctx, sqltx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			if gRepo.IsExclusionViolation(err) {
				return ErrDateOverlap
			}

			return fmt.Errorf("failed to update booking: %w", err)
		}

		if current.IsActive() && req.Status != nil && *req.Status == model.StatusCancelled {
			if err := s.setRoomStatus(ctx, sqltx, current.RoomID, roomModel.StatusAvailable); err != nil {
				return err
			}
		}

		// the tx reads its own writes, including the joined room status
		booking, err = s.lockBooking(ctx, sqltx, id)

		return err
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update booking")

		return res, err
	}

	s.afterCommit(ctx, model.EventUpdated, booking)

	res.FromModel(booking)

	return res, nil
}

// CheckIn marks the guest as arrived. The room is already occupied from creation and the
// arrival date is not compared with checkIn.
func (s *serviceImpl) CheckIn(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	now := timezone.Now()
	fields := map[string]any{
		model.FieldStatus:       model.StatusCheckedIn,
		constant.FieldUpdatedAt: now,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to check in booking")

		return res, fmt.Errorf("failed to check in booking: %w", err)
	}

	booking.Status = model.StatusCheckedIn
	booking.UpdatedAt = now

	s.afterCommit(ctx, model.EventCheckedIn, booking)

	res.FromModel(booking)

	return res, nil
}

// CheckOut closes the stay, settles payment and frees the room in one transaction.
func (s *serviceImpl) CheckOut(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckOut")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var booking model.Booking

	err = s.repo.WithTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		current, err := s.lockBooking(ctx, sqltx, id)
		if err != nil {
			return err
		}

		now := timezone.Now()
		fields := map[string]any{
			model.FieldStatus:        model.StatusCheckedOut,
			model.FieldPaymentStatus: model.PaymentPaid,
			constant.FieldUpdatedAt:  now,
		}

		if err := s.repo.UpdateTx(ctx, sqltx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to check out booking: %w", err)
		}

		if err := s.setRoomStatus(ctx, sqltx, current.RoomID, roomModel.StatusAvailable); err != nil {
			return err
		}

		booking = current
		booking.Status = model.StatusCheckedOut
		booking.PaymentStatus = model.PaymentPaid
		booking.UpdatedAt = now

		if booking.RoomStatus != nil {
			available := roomModel.StatusAvailable
			booking.RoomStatus = &available
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to check out booking")

		return res, err
	}

	s.afterCommit(ctx, model.EventCheckedOut, booking)

	res.FromModel(booking)

	return res, nil
}

// Delete removes the booking and frees its room unless the booking was already cancelled.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var booking model.Booking

	err = s.repo.WithTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		current, err := s.lockBooking(ctx, sqltx, id)
		if err != nil {
			return err
		}

		if current.Status != model.StatusCancelled {
			if err := s.setRoomStatus(ctx, sqltx, current.RoomID, roomModel.StatusAvailable); err != nil {
				return err
			}
		}

		if err := s.repo.DeleteTx(ctx, sqltx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to delete booking: %w", err)
		}

		booking = current

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete booking")

		return err
	}

	s.afterCommit(ctx, model.EventDeleted, booking)

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if gRepo.IsInvalidText(err) {
		return booking, failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) lockBooking(ctx context.Context, sqltx *sqlx.Tx, id string) (model.Booking, error) {
	booking, err := s.repo.GetForUpdateTx(ctx, sqltx, shared.FilterByID(id, model.FieldID, model.TableName))
	if gRepo.IsInvalidText(err) {
		return booking, failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	if err != nil {
		return booking, fmt.Errorf("failed to lock booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) setRoomStatus(ctx context.Context, sqltx *sqlx.Tx, roomID, status string) error {
	fields := map[string]any{
		roomModel.FieldStatus:   status,
		constant.FieldUpdatedAt: timezone.Now(),
	}

	if err := s.roomRepo.UpdateTx(ctx, sqltx, fields, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName)); err != nil {
		return fmt.Errorf("failed to set room status to %s: %w", status, err)
	}

	return nil
}

// afterCommit runs the side channels of a committed change. None of them can fail the request.
func (s *serviceImpl) afterCommit(ctx context.Context, event string, booking model.Booking) {
	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(roomModel.CacheKeyGet, booking.RoomID), roomModel.CacheKeyGetAll)

	metrics.IncBookingEvent(event)

	message := kafka.Message{
		Key:   booking.RoomID,
		Value: model.NewEvent(event, booking, timezone.Now()),
	}

	if err := s.events.SendMessages(ctx, message); err != nil {
		log.Warn().Err(err).Str("event", event).Str("bookingId", booking.ID).Msg("failed to publish booking event")
	}
}

func (s *serviceImpl) recordRejection(err error) {
	switch {
	case errors.Is(err, ErrRoomUnavailable):
		metrics.IncBookingRejected("room_unavailable")
	case errors.Is(err, ErrCapacityExceeded):
		metrics.IncBookingRejected("capacity_exceeded")
	case errors.Is(err, ErrDateOverlap):
		metrics.IncBookingRejected("date_overlap")
	case failure.GetKind(err) == failure.KindNotFound:
		metrics.IncBookingRejected("not_found")
	}
}

func withSummaries(booking model.Booking, guest guestModel.Guest, room roomModel.Room) model.Booking {
	booking.GuestName = &guest.Name
	booking.GuestEmail = &guest.Email
	booking.GuestPhone = &guest.Phone
	booking.RoomNumber = &room.Number
	booking.RoomType = &room.Type
	booking.RoomPrice = &room.Price
	booking.RoomStatus = &room.Status
	booking.RoomAmenities = room.Amenities

	return booking
}
