package service_test

import (
	"context"
	"errors"
	"hotel/config"
	"hotel/infras/otel/mocks"
	roomMocks "hotel/internal/domains/room/mocks"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/shared/failure"
	gRepo "hotel/shared/repository"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*roomMocks.MockRoom, *cacheMocks.MockRedisCache, service.Room) {
	ctrl := gomock.NewController(t)

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return mockRepo, mockCache, service.New(mockRepo, cfg, mockCache, mocks.NewOtel())
}

func TestRoomService_LookupRoom(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *roomMocks.MockRoom)
		wantCode  int
	}{
		{
			name: "active room",
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "r1", Price: 1_000_000, Active: true}, nil)
			},
		},
		{
			name: "missing room",
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "inactive room",
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "r1", Active: false}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "store error",
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, cache, svc := setup(t)
			cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
			tt.setupMock(repo)

			room, err := svc.LookupRoom(context.Background(), "r1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(1_000_000), room.Price)
		})
	}
}

func TestRoomService_AdjustAvailability(t *testing.T) {
	repo, _, svc := setup(t)

	repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, changes map[string]any, _ any) (int64, error) {
			expr, ok := changes[model.FieldAvailableCount].(gRepo.Expr)
			require.True(t, ok)
			assert.Equal(t, 1, expr.Args["availability_delta"])

			return 1, nil
		})

	require.NoError(t, svc.AdjustAvailability(context.Background(), "r1", 1))

	repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

	err := svc.AdjustAvailability(context.Background(), "missing", 1)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestRoomService_CreateAndUpdate(t *testing.T) {
	repo, _, svc := setup(t)

	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
	res, err := svc.Create(ctx, dto.CreateRoomRequest{HotelID: "h1", Name: "Deluxe", Type: "double", Price: 1_000_000, MaxPeople: 2})

	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.True(t, res.Active)
	assert.Equal(t, "staff-1", res.CreatedBy)

	err = svc.Update(ctx, dto.UpdateRoomRequest{}, res.ID)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	price := int64(1_200_000)

	repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, changes map[string]any, _ any) (int64, error) {
			assert.Equal(t, price, changes["price"])
			assert.Equal(t, "staff-1", changes[model.FieldModifiedBy])

			return 1, nil
		})

	require.NoError(t, svc.Update(ctx, dto.UpdateRoomRequest{Price: &price}, res.ID))
}
