package emotes

import (
	"context"
	"fmt"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"llamabot/core"
	"llamabot/models"
)

// MockEmotesRepository implements a mock for the emotes repository
type MockEmotesRepository struct {
	mock.Mock
}

func (m *MockEmotesRepository) CreateEmote(ctx context.Context, emote *models.Emote) error {
	args := m.Called(ctx, emote)
	return args.Error(0)
}

func (m *MockEmotesRepository) GetEmoteByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Emote], error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return mo.None[*models.Emote](), args.Error(1)
	}
	return args.Get(0).(mo.Option[*models.Emote]), args.Error(1)
}

func (m *MockEmotesRepository) ListEmotes(
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

func (m *MockEmotesRepository) UpdateEmote(
	ctx context.Context,
	id string,
	update models.EmoteUpdate,
) (mo.Option[*models.Emote], error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return mo.None[*models.Emote](), args.Error(1)
	}
	return args.Get(0).(mo.Option[*models.Emote]), args.Error(1)
}

func (m *MockEmotesRepository) DeleteEmote(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestEmotesService_CreateEmote_Success(t *testing.T) {
	// Arrange
	mockRepo := &MockEmotesRepository{}
	service := NewEmotesService(mockRepo)
	ctx := context.Background()

	mockRepo.On("CreateEmote", ctx, mock.AnythingOfType("*models.Emote")).Return(nil)

	// Act
	result, err := service.CreateEmote(ctx, models.CreateEmoteParams{
		Trigger:  "brb",
		ImageURL: "https://example.com/brb.gif",
		Author:   "llama",
	})

	// Assert
	require.NoError(t, err)
	assert.True(t, core.IsValidID(result.ID))
	assert.Equal(t, "brb", result.Trigger)
	assert.Nil(t, result.GuildID)
	mockRepo.AssertExpectations(t)
}

func TestEmotesService_CreateEmote_Defaults(t *testing.T) {
	// Arrange
	mockRepo := &MockEmotesRepository{}
	service := NewEmotesService(mockRepo)
	ctx := context.Background()

	var created *models.Emote
	mockRepo.On("CreateEmote", ctx, mock.AnythingOfType("*models.Emote")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.Emote)
		}).
		Return(nil)

	// Act - no match mode, no enabled flag supplied
	_, err := service.CreateEmote(ctx, models.CreateEmoteParams{
		Trigger:  "lol",
		ImageURL: "https://example.com/lol.png",
		Author:   "llama",
	})

	// Assert - defaults are applied centrally in the service
	require.NoError(t, err)
	assert.Equal(t, models.MatchModeContains, created.MatchMode)
	assert.True(t, created.Enabled)
}

func TestEmotesService_CreateEmote_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		params models.CreateEmoteParams
	}{
		{
			name: "empty trigger",
			params: models.CreateEmoteParams{
				Trigger:  "   ",
				ImageURL: "https://example.com/a.png",
				Author:   "llama",
			},
		},
		{
			name: "empty author",
			params: models.CreateEmoteParams{
				Trigger:  "brb",
				ImageURL: "https://example.com/a.png",
				Author:   "",
			},
		},
		{
			name: "invalid image URL",
			params: models.CreateEmoteParams{
				Trigger:  "brb",
				ImageURL: "not a url",
				Author:   "llama",
			},
		},
		{
			name: "non-http scheme",
			params: models.CreateEmoteParams{
				Trigger:  "brb",
				ImageURL: "ftp://example.com/a.png",
				Author:   "llama",
			},
		},
		{
			name: "unknown match mode",
			params: models.CreateEmoteParams{
				Trigger:   "brb",
				ImageURL:  "https://example.com/a.png",
				MatchMode: "fuzzy",
				Author:    "llama",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockEmotesRepository{}
			service := NewEmotesService(mockRepo)

			_, err := service.CreateEmote(context.Background(), tt.params)

			require.Error(t, err)
			assert.True(t, core.IsValidationError(err), "expected validation error, got: %v", err)
			// Validation failures must never reach the store
			mockRepo.AssertNotCalled(t, "CreateEmote", mock.Anything, mock.Anything)
		})
	}
}

func TestEmotesService_CreateEmote_DuplicateInScope(t *testing.T) {
	// Arrange
	mockRepo := &MockEmotesRepository{}
	service := NewEmotesService(mockRepo)
	ctx := context.Background()

	dupErr := &core.DuplicateInScopeError{Value: "brb", Scope: "in this server"}
	mockRepo.On("CreateEmote", ctx, mock.AnythingOfType("*models.Emote")).Return(dupErr)

	// Act
	_, err := service.CreateEmote(ctx, models.CreateEmoteParams{
		GuildID:  strPtr("g1"),
		Trigger:  "brb",
		ImageURL: "https://example.com/brb.gif",
		Author:   "llama",
	})

	// Assert - duplicate surfaces untouched, carrying the scope description
	require.Error(t, err)
	assert.True(t, core.IsDuplicateInScopeError(err))
	assert.Contains(t, err.Error(), "in this server")
}

func TestEmotesService_UpdateEmote_PartialFields(t *testing.T) {
	// Arrange
	mockRepo := &MockEmotesRepository{}
	service := NewEmotesService(mockRepo)
	ctx := context.Background()
	id := core.NewID("em")

	updated := &models.Emote{ID: id, Trigger: "brb", Enabled: false}
	update := models.EmoteUpdate{Enabled: boolPtr(false)}
	mockRepo.On("UpdateEmote", ctx, id, update).Return(mo.Some(updated), nil)

	// Act
	result, err := service.UpdateEmote(ctx, id, update)

	// Assert
	require.NoError(t, err)
	assert.False(t, result.Enabled)
	mockRepo.AssertExpectations(t)
}

func TestEmotesService_UpdateEmote_ValidatesPresentFields(t *testing.T) {
	mockRepo := &MockEmotesRepository{}
	service := NewEmotesService(mockRepo)
	id := core.NewID("em")

	_, err := service.UpdateEmote(context.Background(), id, models.EmoteUpdate{
		Trigger: strPtr("  "),
	})

	require.Error(t, err)
	assert.True(t, core.IsValidationError(err))
	mockRepo.AssertNotCalled(t, "UpdateEmote", mock.Anything, mock.Anything, mock.Anything)
}

func TestEmotesService_UpdateEmote_NotFound(t *testing.T) {
	mockRepo := &MockEmotesRepository{}
	service := NewEmotesService(mockRepo)
	ctx := context.Background()
	id := core.NewID("em")

	mockRepo.On("UpdateEmote", ctx, id, mock.Anything).Return(mo.None[*models.Emote](), nil)

	_, err := service.UpdateEmote(ctx, id, models.EmoteUpdate{Enabled: boolPtr(true)})

	assert.True(t, core.IsNotFoundError(err))
}

func TestEmotesService_DeleteEmote_NotFound(t *testing.T) {
	mockRepo := &MockEmotesRepository{}
	service := NewEmotesService(mockRepo)
	ctx := context.Background()
	id := core.NewID("em")

	mockRepo.On("DeleteEmote", ctx, id).Return(false, nil)

	err := service.DeleteEmote(ctx, id)

	assert.True(t, core.IsNotFoundError(err))
}

func TestEmotesService_ListEmotes_InfrastructureError(t *testing.T) {
	mockRepo := &MockEmotesRepository{}
	service := NewEmotesService(mockRepo)
	ctx := context.Background()

	mockRepo.On("ListEmotes", ctx, (*string)(nil), (*bool)(nil)).
		Return(nil, fmt.Errorf("connection refused"))

	_, err := service.ListEmotes(ctx, nil, nil)

	// Infrastructure failures propagate wrapped, with no domain meaning
	require.Error(t, err)
	assert.False(t, core.IsNotFoundError(err))
	assert.False(t, core.IsValidationError(err))
}
