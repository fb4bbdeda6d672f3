package matcher

import (
	"context"

	"github.com/stretchr/testify/mock"

	"llamabot/models"
)

// MockMatcherService is a mock implementation of the MatcherService interface
type MockMatcherService struct {
	mock.Mock
}

func (m *MockMatcherService) MatchMessage(
	ctx context.Context,
	message string,
	guildID *string,
) (*models.MatchResult, error) {
	args := m.Called(ctx, message, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MatchResult), args.Error(1)
}
