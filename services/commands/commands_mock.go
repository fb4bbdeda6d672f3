package commands

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"llamabot/models"
)

// MockCommandsService is a mock implementation of the CommandsService interface
type MockCommandsService struct {
	mock.Mock
}

func (m *MockCommandsService) CreateCommand(
	ctx context.Context,
	params models.CreateCommandParams,
) (*models.Command, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Command), args.Error(1)
}

func (m *MockCommandsService) GetCommandByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Command], error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return mo.None[*models.Command](), args.Error(1)
	}
	return args.Get(0).(mo.Option[*models.Command]), args.Error(1)
}

func (m *MockCommandsService) GetCommandByName(
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

func (m *MockCommandsService) ListCommands(
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

func (m *MockCommandsService) UpdateCommand(
	ctx context.Context,
	id string,
	update models.CommandUpdate,
) (*models.Command, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Command), args.Error(1)
}

func (m *MockCommandsService) DeleteCommand(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommandsService) InvokeCommand(
	ctx context.Context,
	id string,
) (*models.CommandInvocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CommandInvocation), args.Error(1)
}
