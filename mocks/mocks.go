package mocks

import (
	"context"
	"time"

	"github.com/page-events-services/common/config"
	"github.com/page-events-services/services/event-lambda/models"
	"github.com/stretchr/testify/mock"
)

// MockEventsSource is a mock implementation of usecase.EventsSource
type MockEventsSource struct {
	mock.Mock
}

func (m *MockEventsSource) FetchUpcomingEvents(ctx context.Context, cfg *config.Config, since time.Time) (*models.GraphEventsPage, error) {
	args := m.Called(ctx, cfg, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GraphEventsPage), args.Error(1)
}
