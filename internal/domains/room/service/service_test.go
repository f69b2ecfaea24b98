package service_test

import (
	"context"
	"errors"
	"testing"

	"hotel/config"
	otelMocks "hotel/infras/otel/mocks"
	s3Mocks "hotel/infras/s3/mocks"
	roomMocks "hotel/internal/domains/room/mocks"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	"hotel/shared/cache"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/alicebob/miniredis/v2"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo   *roomMocks.MockRoom
	s3     *s3Mocks.MockS3
	server *miniredis.Miniredis
	svc    service.Room
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f := fixture{
		repo:   roomMocks.NewMockRoom(ctrl),
		s3:     s3Mocks.NewMockS3(ctrl),
		server: server,
	}
	f.svc = service.New(f.repo, cfg, cache.NewRedisCache(client, otelMocks.NewOtel()), otelMocks.NewOtel(), f.s3)

	return f
}

func ptr[T any](v T) *T {
	return &v
}

func sampleRoom() model.Room {
	return model.Room{
		ID:        "room-1",
		Number:    "101",
		Type:      model.TypeSingle,
		Price:     100,
		Status:    model.StatusAvailable,
		Capacity:  1,
		Amenities: pq.StringArray{"WiFi"},
	}
}

func TestRoomService_Create(t *testing.T) {
	req := dto.CreateRoomRequest{
		Number:    " 101 ",
		Type:      model.TypeSingle,
		Price:     ptr(100.0),
		Capacity:  1,
		Amenities: []string{"WiFi", "WiFi", "TV"},
	}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantKind  failure.Kind
		wantErr   bool
	}{
		{
			name: "success",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, room model.Room) error {
					assert.Equal(t, "101", room.Number)
					assert.Equal(t, model.StatusAvailable, room.Status)
					assert.Equal(t, pq.StringArray{"WiFi", "TV"}, room.Amenities)

					return nil
				})
			},
		},
		{
			name: "duplicate number found by pre-check",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  true,
			wantKind: failure.KindConflict,
		},
		{
			name: "duplicate number rejected by unique index",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505"})
			},
			wantErr:  true,
			wantKind: failure.KindConflict,
		},
		{
			name: "repository error",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr:  true,
			wantKind: failure.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(context.Background(), req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, []string{"WiFi", "TV"}, res.Amenities)
		})
	}
}

func TestRoomService_GetUsesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleRoom(), nil).Times(1)

	first, err := f.svc.Get(ctx, "room-1")
	require.NoError(t, err)

	second, err := f.svc.Get(ctx, "room-1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, f.server.Exists("room:get:room-1"))
}

func TestRoomService_GetNotFound(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

	_, err := f.svc.Get(context.Background(), "missing")

	require.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
	assert.Equal(t, "Room not found", err.Error())
	assert.False(t, f.server.Exists("room:get:missing"))
}

func TestRoomService_MalformedIDIsNotFound(t *testing.T) {
	invalid := &pq.Error{Code: "22P02", Message: `invalid input syntax for type uuid: "r-101"`}

	f := newFixture(t)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, invalid).Times(2)

	_, err := f.svc.Get(context.Background(), "r-101")
	assert.EqualError(t, err, "Room not found")
	assert.Equal(t, 404, failure.GetCode(err))

	err = f.svc.Delete(context.Background(), "r-101")
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestRoomService_GetAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	params := gDto.QueryParams{Page: 1, Limit: 10}
	filter := dto.RoomFilter{Type: model.TypeSingle, MaxPrice: ptr(150.0)}

	f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, group gDto.FilterGroup, _ ...string) ([]model.Room, error) {
			assert.Len(t, group.Filters, 2)

			return []model.Room{sampleRoom()}, nil
		}).Times(1)

	rooms, err := f.svc.GetAll(ctx, params, filter)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "101", rooms[0].Number)

	cached, err := f.svc.GetAll(ctx, params, filter)
	require.NoError(t, err)
	assert.Equal(t, rooms, cached)
}

func TestRoomService_GetAllError(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))

	_, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, dto.RoomFilter{})
	assert.Error(t, err)
}

func TestRoomService_Update(t *testing.T) {
	t.Run("empty request", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Update(context.Background(), "room-1", dto.UpdateRoomRequest{})
		assert.ErrorIs(t, err, failure.EmptyUpdateRequest)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := f.svc.Update(context.Background(), "room-1", dto.UpdateRoomRequest{Price: ptr(120.0)})
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})

	t.Run("number taken by another room", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleRoom(), nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Update(context.Background(), "room-1", dto.UpdateRoomRequest{Number: ptr("102")})
		assert.Equal(t, failure.KindConflict, failure.GetKind(err))
	})

	t.Run("writes only provided fields and drops cached entries", func(t *testing.T) {
		f := newFixture(t)
		f.server.Set("room:get:room-1", "{}")
		f.server.Set("room:gets:page=1", "[]")

		updated := sampleRoom()
		updated.Price = 0
		updated.Status = model.StatusMaintenance

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleRoom(), nil),
			f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, 0.0, fields[model.FieldPrice])
					assert.Equal(t, model.StatusMaintenance, fields[model.FieldStatus])
					assert.Contains(t, fields, "updated_at")
					assert.NotContains(t, fields, model.FieldNumber)

					return nil
				}),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(updated, nil),
		)

		res, err := f.svc.Update(context.Background(), "room-1", dto.UpdateRoomRequest{
			Price:  ptr(0.0),
			Status: ptr(model.StatusMaintenance),
		})

		require.NoError(t, err)
		assert.Equal(t, model.StatusMaintenance, res.Status)
		assert.False(t, f.server.Exists("room:get:room-1"))
		assert.False(t, f.server.Exists("room:gets:page=1"))
	})
}

func TestRoomService_Delete(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		err := f.svc.Delete(context.Background(), "room-1")
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})

	t.Run("removes the stored image", func(t *testing.T) {
		f := newFixture(t)

		room := sampleRoom()
		room.Image = "https://cdn.example.com/rooms/room-1/a.png"

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.s3.EXPECT().GetObjectKeyFromURL(room.Image).Return("rooms/room-1/a.png")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "rooms/room-1/a.png").Return(errors.New("gone"))

		assert.NoError(t, f.svc.Delete(context.Background(), "room-1"))
	})

	t.Run("repository error", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleRoom(), nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		assert.Error(t, f.svc.Delete(context.Background(), "room-1"))
	})
}

func TestRoomService_UploadImage(t *testing.T) {
	req := dto.UploadImageRequest{FileName: "View.PNG", ContentType: "image/png", Size: 3, Data: []byte{1, 2, 3}}

	t.Run("replaces the previous image", func(t *testing.T) {
		f := newFixture(t)

		room := sampleRoom()
		room.Image = "https://cdn.example.com/rooms/room-1/old.png"

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.s3.EXPECT().UploadFileBytes(gomock.Any(), "rooms/room-1", gomock.Any(), "image/png", req.Data).
			DoAndReturn(func(_ context.Context, directory, fileName, _ string, _ []byte) (string, error) {
				assert.Regexp(t, `\.png$`, fileName)

				return "https://cdn.example.com/" + directory + "/" + fileName, nil
			})
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.s3.EXPECT().GetObjectKeyFromURL(room.Image).Return("rooms/room-1/old.png")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "rooms/room-1/old.png").Return(nil)

		res, err := f.svc.UploadImage(context.Background(), "room-1", req)

		require.NoError(t, err)
		assert.Regexp(t, `^https://cdn\.example\.com/rooms/room-1/.+\.png$`, res.Image)
	})

	t.Run("upload failure leaves the room untouched", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleRoom(), nil)
		f.s3.EXPECT().UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("object storage is not configured"))

		_, err := f.svc.UploadImage(context.Background(), "room-1", req)
		assert.Error(t, err)
	})

	t.Run("save failure removes the new object", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleRoom(), nil)
		f.s3.EXPECT().UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.example.com/rooms/room-1/new.png", nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
		f.s3.EXPECT().GetObjectKeyFromURL("https://cdn.example.com/rooms/room-1/new.png").Return("rooms/room-1/new.png")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "rooms/room-1/new.png").Return(nil)

		_, err := f.svc.UploadImage(context.Background(), "room-1", req)
		assert.Error(t, err)
	})
}
