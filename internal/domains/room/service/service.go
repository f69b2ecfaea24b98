package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Room=MockRoomService

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/s3"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gRepo "hotel/shared/repository"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	msgRoomNotFound    = "Room not found"
	msgDuplicateNumber = "Room number already exists"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter dto.RoomFilter) ([]dto.RoomResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateRoomRequest) (dto.RoomResponse, error)
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, id string, req dto.UploadImageRequest) (dto.RoomResponse, error)
}

type serviceImpl struct {
	repo  repository.Room
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Room {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room := req.ToModel()

	if err = s.ensureUniqueNumber(ctx, room.Number, constant.Empty); err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, room); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return res, failure.Conflict(msgDuplicateNumber) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, model.CacheKeyGetAll)

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter dto.RoomFilter) (res []dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheKeyGetAll, params, filter.CacheFields())

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, params, filter.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	res = dto.FromModels(models)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save rooms to cache")
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheKeyGet, id)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save room to cache")
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return res, failure.EmptyUpdateRequest
	}

	req.Normalize()

	current, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if req.Number != nil && *req.Number != current.Number {
		if err = s.ensureUniqueNumber(ctx, *req.Number, id); err != nil {
			return res, err
		}
	}

	err = s.repo.Update(ctx, shared.TransformFields(req), shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		if gRepo.IsUniqueViolation(err) {
			return res, failure.Conflict(msgDuplicateNumber) // nolint:wrapcheck
		}

		log.Error().Err(err).Str("id", id).Msg("failed to update room")

		return res, fmt.Errorf("failed to update room: %w", err)
	}

	s.invalidate(ctx, id)

	updated, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	s.invalidate(ctx, id)
	s.removeImage(ctx, room.Image)

	return nil
}

func (s *serviceImpl) UploadImage(ctx context.Context, id string, req dto.UploadImageRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	imageURL, err := s.s3.UploadFileBytes(ctx, model.TableName+"/"+id, req.ObjectName(), req.ContentType, req.Data)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to upload room image")

		return res, fmt.Errorf("failed to upload room image: %w", err)
	}

	now := timezone.Now()
	fields := map[string]any{
		model.FieldImage:        imageURL,
		constant.FieldUpdatedAt: now,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to save room image")
		s.removeImage(ctx, imageURL)

		return res, fmt.Errorf("failed to save room image: %w", err)
	}

	s.invalidate(ctx, id)
	s.removeImage(ctx, room.Image)

	room.Image = imageURL
	room.UpdatedAt = now
	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Room, error) {
	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if gRepo.IsInvalidText(err) {
		return room, failure.NotFound(msgRoomNotFound) // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound(msgRoomNotFound) // nolint:wrapcheck
	}

	return room, nil
}

// ensureUniqueNumber rejects a number held by any room other than exceptID.
func (s *serviceImpl) ensureUniqueNumber(ctx context.Context, number, exceptID string) error {
	filters := []any{
		gDto.Filter{Table: model.TableName, Field: model.FieldNumber, Operator: gDto.FilterOperatorEq, Value: number},
	}

	if exceptID != constant.Empty {
		filters = append(filters, gDto.Filter{Table: model.TableName, Field: model.FieldID, Operator: gDto.FilterOperatorNotEq, Value: exceptID})
	}

	exists, err := s.repo.Exist(ctx, gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters})
	if err != nil {
		log.Error().Err(err).Msg("failed to check room number")

		return fmt.Errorf("failed to check room number: %w", err)
	}

	if exists {
		return failure.Conflict(msgDuplicateNumber) // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(model.CacheKeyGet, id), model.CacheKeyGetAll)
}

// removeImage deletes a previously uploaded object; failures only leave an orphan behind.
func (s *serviceImpl) removeImage(ctx context.Context, imageURL string) {
	if imageURL == constant.Empty {
		return
	}

	objectKey := s.s3.GetObjectKeyFromURL(imageURL)
	if objectKey == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, objectKey); err != nil {
		log.Warn().Err(err).Str("key", objectKey).Msg("failed to remove room image")
	}
}
