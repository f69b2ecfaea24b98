package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Guest=MockGuestService

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/guest/model"
	"hotel/internal/domains/guest/model/dto"
	"hotel/internal/domains/guest/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gRepo "hotel/shared/repository"

	"github.com/rs/zerolog/log"
)

const (
	msgGuestNotFound  = "Guest not found"
	msgDuplicateEmail = "Email already registered"
)

type Guest interface {
	Create(ctx context.Context, req dto.CreateGuestRequest) (dto.GuestResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter dto.GuestFilter) ([]dto.GuestResponse, error)
	Get(ctx context.Context, id string) (dto.GuestResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateGuestRequest) (dto.GuestResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Guest
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Guest, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Guest {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateGuestRequest) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Normalize()
	guest := req.ToModel()

	if err = s.ensureUniqueEmail(ctx, guest.Email, constant.Empty); err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, guest); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return res, failure.Conflict(msgDuplicateEmail) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create guest")

		return res, fmt.Errorf("failed to create guest: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, model.CacheKeyGetAll)

	res.FromModel(guest)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter dto.GuestFilter) (res []dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheKeyGetAll, params, filter.CacheFields())

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for guests")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, params, filter.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to get guests")

		return nil, fmt.Errorf("failed to get guests: %w", err)
	}

	res = dto.FromModels(models)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save guests to cache")
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheKeyGet, id)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for guest")

		return res, nil
	}

	guest, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(guest)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save guest to cache")
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateGuestRequest) (res dto.GuestResponse, err error) {
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

	if req.Email != nil && *req.Email != current.Email {
		if err = s.ensureUniqueEmail(ctx, *req.Email, id); err != nil {
			return res, err
		}
	}

	err = s.repo.Update(ctx, shared.TransformFields(req), shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		if gRepo.IsUniqueViolation(err) {
			return res, failure.Conflict(msgDuplicateEmail) // nolint:wrapcheck
		}

		log.Error().Err(err).Str("id", id).Msg("failed to update guest")

		return res, fmt.Errorf("failed to update guest: %w", err)
	}

	s.invalidate(ctx, id)

	updated, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(updated)

	return res, nil
}

// Delete removes the guest only; bookings referencing it are left as they are.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.get(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete guest")

		return fmt.Errorf("failed to delete guest: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Guest, error) {
	guest, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if gRepo.IsInvalidText(err) {
		return guest, failure.NotFound(msgGuestNotFound) // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get guest")

		return guest, fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ID == constant.Empty {
		return guest, failure.NotFound(msgGuestNotFound) // nolint:wrapcheck
	}

	return guest, nil
}

// ensureUniqueEmail expects an already normalised email; the column is stored lower-cased.
func (s *serviceImpl) ensureUniqueEmail(ctx context.Context, email, exceptID string) error {
	filters := []any{
		gDto.Filter{Table: model.TableName, Field: model.FieldEmail, Operator: gDto.FilterOperatorEq, Value: email},
	}

	if exceptID != constant.Empty {
		filters = append(filters, gDto.Filter{Table: model.TableName, Field: model.FieldID, Operator: gDto.FilterOperatorNotEq, Value: exceptID})
	}

	exists, err := s.repo.Exist(ctx, gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters})
	if err != nil {
		log.Error().Err(err).Msg("failed to check guest email")

		return fmt.Errorf("failed to check guest email: %w", err)
	}

	if exists {
		return failure.Conflict(msgDuplicateEmail) // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(model.CacheKeyGet, id), model.CacheKeyGetAll)
}
