package emotes

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"llamabot/models"
)

// MockEmotesService is a mock implementation of the EmotesService interface
type MockEmotesService struct {
	mock.Mock
}

func (m *MockEmotesService) CreateEmote(
	ctx context.Context,
	params models.CreateEmoteParams,
) (*models.Emote, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Emote), args.Error(1)
}

func (m *MockEmotesService) GetEmoteByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Emote], error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return mo.None[*models.Emote](), args.Error(1)
	}
	return args.Get(0).(mo.Option[*models.Emote]), args.Error(1)
}

func (m *MockEmotesService) ListEmotes(
	ctx context.Context,
	guildID *string,
	enabled *bool,
) ([]*models.Emote, error) {
	args := m.Called(ctx, guildID, enabled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Emote), args.Error(1)
}

func (m *MockEmotesService) UpdateEmote(
	ctx context.Context,
	id string,
	update models.EmoteUpdate,
) (*models.Emote, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Emote), args.Error(1)
}

func (m *MockEmotesService) DeleteEmote(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
