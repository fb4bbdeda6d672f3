package commands

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

// MockCommandsRepository implements a mock for the commands repository
type MockCommandsRepository struct {
	mock.Mock
}

func (m *MockCommandsRepository) CreateCommand(ctx context.Context, command *models.Command) error {
	args := m.Called(ctx, command)
	return args.Error(0)
}

func (m *MockCommandsRepository) GetCommandByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Command], error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return mo.None[*models.Command](), args.Error(1)
	}
	return args.Get(0).(mo.Option[*models.Command]), args.Error(1)
}

func (m *MockCommandsRepository) GetCommandByName(
	ctx context.Context,
	name string,
	guildID *string,
) (mo.Option[*models.Command], error) {
	args := m.Called(ctx, name, guildID)
	if args.Get(0) == nil {
		return mo.None[*models.Command](), args.Error(1)
	}
	return args.Get(0).(mo.Option[*models.Command]), args.Error(1)
}

func (m *MockCommandsRepository) ListCommands(
	ctx context.Context,
	guildID *string,
	enabled *bool,
) ([]*models.Command, error) {
	args := m.Called(ctx, guildID, enabled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Command), args.Error(1)
}

func (m *MockCommandsRepository) UpdateCommand(
	ctx context.Context,
	id string,
	update models.CommandUpdate,
) (mo.Option[*models.Command], error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return mo.None[*models.Command](), args.Error(1)
	}
	return args.Get(0).(mo.Option[*models.Command]), args.Error(1)
}

func (m *MockCommandsRepository) DeleteCommand(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommandsRepository) IncrementCommandUseCount(
	ctx context.Context,
	id string,
) (mo.Option[*models.Command], error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return mo.None[*models.Command](), args.Error(1)
	}
	return args.Get(0).(mo.Option[*models.Command]), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestCommandsService_CreateCommand_Success(t *testing.T) {
	// Arrange
	mockRepo := &MockCommandsRepository{}
	service := NewCommandsService(mockRepo)
	ctx := context.Background()

	mockRepo.On("CreateCommand", ctx, mock.AnythingOfType("*models.Command")).Return(nil)

	// Act
	result, err := service.CreateCommand(ctx, models.CreateCommandParams{
		Name:      "greet",
		Response:  "hello there",
		CreatedBy: "llama",
	})

	// Assert - enabled defaults to true, scope defaults to global
	require.NoError(t, err)
	assert.True(t, core.IsValidID(result.ID))
	assert.True(t, result.Enabled)
	assert.Nil(t, result.GuildID)
	mockRepo.AssertExpectations(t)
}

func TestCommandsService_CreateCommand_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		params models.CreateCommandParams
	}{
		{
			name:   "empty name",
			params: models.CreateCommandParams{Name: "", Response: "hi", CreatedBy: "llama"},
		},
		{
			name:   "empty response",
			params: models.CreateCommandParams{Name: "greet", Response: "  ", CreatedBy: "llama"},
		},
		{
			name:   "empty creator",
			params: models.CreateCommandParams{Name: "greet", Response: "hi", CreatedBy: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockCommandsRepository{}
			service := NewCommandsService(mockRepo)

			_, err := service.CreateCommand(context.Background(), tt.params)

			require.Error(t, err)
			assert.True(t, core.IsValidationError(err))
			mockRepo.AssertNotCalled(t, "CreateCommand", mock.Anything, mock.Anything)
		})
	}
}

func TestCommandsService_CreateCommand_DuplicateInScope(t *testing.T) {
	// Arrange
	mockRepo := &MockCommandsRepository{}
	service := NewCommandsService(mockRepo)
	ctx := context.Background()

	dupErr := &core.DuplicateInScopeError{Value: "greet", Scope: "globally"}
	mockRepo.On("CreateCommand", ctx, mock.AnythingOfType("*models.Command")).Return(dupErr)

	// Act
	_, err := service.CreateCommand(ctx, models.CreateCommandParams{
		Name:      "greet",
		Response:  "hello there",
		CreatedBy: "llama",
	})

	// Assert
	require.Error(t, err)
	assert.True(t, core.IsDuplicateInScopeError(err))
}

func TestCommandsService_GetCommandByName_GuildShadowsGlobal(t *testing.T) {
	// Arrange - the repository resolves shadowing; the service passes the
	// guild through and returns whatever scope won
	mockRepo := &MockCommandsRepository{}
	service := NewCommandsService(mockRepo)
	ctx := context.Background()
	guildID := strPtr("g1")

	guildCmd := &models.Command{ID: core.NewID("cmd"), GuildID: guildID, Name: "greet", Response: "guild hello"}
	mockRepo.On("GetCommandByName", ctx, "greet", guildID).Return(mo.Some(guildCmd), nil)

	// Act
	result, err := service.GetCommandByName(ctx, "greet", guildID)

	// Assert
	require.NoError(t, err)
	require.True(t, result.IsPresent())
	assert.Equal(t, "guild hello", result.MustGet().Response)
	mockRepo.AssertExpectations(t)
}

func TestCommandsService_GetCommandByName_NotFound(t *testing.T) {
	mockRepo := &MockCommandsRepository{}
	service := NewCommandsService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetCommandByName", ctx, "missing", (*string)(nil)).
		Return(mo.None[*models.Command](), nil)

	result, err := service.GetCommandByName(ctx, "missing", nil)

	require.NoError(t, err)
	assert.False(t, result.IsPresent())
}

func TestCommandsService_InvokeCommand_Success(t *testing.T) {
	// Arrange
	mockRepo := &MockCommandsRepository{}
	service := NewCommandsService(mockRepo)
	ctx := context.Background()
	id := core.NewID("cmd")

	stored := &models.Command{ID: id, Name: "greet", Response: "hello there", Enabled: true, UseCount: 4}
	updated := &models.Command{ID: id, Name: "greet", Response: "hello there", Enabled: true, UseCount: 5}
	mockRepo.On("GetCommandByID", ctx, id).Return(mo.Some(stored), nil)
	mockRepo.On("IncrementCommandUseCount", ctx, id).Return(mo.Some(updated), nil)

	// Act
	result, err := service.InvokeCommand(ctx, id)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "hello there", result.Response)
	assert.Equal(t, int64(5), result.Command.UseCount)
	mockRepo.AssertExpectations(t)
}

func TestCommandsService_InvokeCommand_Disabled(t *testing.T) {
	// Arrange
	mockRepo := &MockCommandsRepository{}
	service := NewCommandsService(mockRepo)
	ctx := context.Background()
	id := core.NewID("cmd")

	stored := &models.Command{ID: id, Name: "greet", Response: "hello there", Enabled: false}
	mockRepo.On("GetCommandByID", ctx, id).Return(mo.Some(stored), nil)

	// Act
	_, err := service.InvokeCommand(ctx, id)

	// Assert - disabled, not not-found, and the counter is never touched
	require.Error(t, err)
	assert.True(t, core.IsDisabledError(err))
	assert.False(t, core.IsNotFoundError(err))
	mockRepo.AssertNotCalled(t, "IncrementCommandUseCount", mock.Anything, mock.Anything)
}

func TestCommandsService_InvokeCommand_NotFound(t *testing.T) {
	mockRepo := &MockCommandsRepository{}
	service := NewCommandsService(mockRepo)
	ctx := context.Background()
	id := core.NewID("cmd")

	mockRepo.On("GetCommandByID", ctx, id).Return(mo.None[*models.Command](), nil)

	_, err := service.InvokeCommand(ctx, id)

	assert.True(t, core.IsNotFoundError(err))
}

func TestCommandsService_InvokeCommand_IncrementFailureIsInfrastructure(t *testing.T) {
	// Arrange - unlike the match path, a failed invocation increment fails
	// the whole invocation
	mockRepo := &MockCommandsRepository{}
	service := NewCommandsService(mockRepo)
	ctx := context.Background()
	id := core.NewID("cmd")

	stored := &models.Command{ID: id, Name: "greet", Response: "hello there", Enabled: true}
	mockRepo.On("GetCommandByID", ctx, id).Return(mo.Some(stored), nil)
	mockRepo.On("IncrementCommandUseCount", ctx, id).
		Return(mo.None[*models.Command](), fmt.Errorf("connection refused"))

	// Act
	result, err := service.InvokeCommand(ctx, id)

	// Assert
	require.Error(t, err)
	assert.Nil(t, result)
	assert.False(t, core.IsDisabledError(err))
	assert.False(t, core.IsNotFoundError(err))
}

func TestCommandsService_UpdateCommand_NotFound(t *testing.T) {
	mockRepo := &MockCommandsRepository{}
	service := NewCommandsService(mockRepo)
	ctx := context.Background()
	id := core.NewID("cmd")

	mockRepo.On("UpdateCommand", ctx, id, mock.Anything).Return(mo.None[*models.Command](), nil)

	_, err := service.UpdateCommand(ctx, id, models.CommandUpdate{Response: strPtr("hi")})

	assert.True(t, core.IsNotFoundError(err))
}

func TestCommandsService_DeleteCommand_Success(t *testing.T) {
	mockRepo := &MockCommandsRepository{}
	service := NewCommandsService(mockRepo)
	ctx := context.Background()
	id := core.NewID("cmd")

	mockRepo.On("DeleteCommand", ctx, id).Return(true, nil)

	err := service.DeleteCommand(ctx, id)

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
