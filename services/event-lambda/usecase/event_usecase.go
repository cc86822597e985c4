package usecase

import (
	"context"
	"time"

	"github.com/page-events-services/common/config"
	"github.com/page-events-services/common/logger"
	"github.com/page-events-services/services/event-lambda/models"
	"github.com/page-events-services/services/event-lambda/repository"
)

// UpdatedAtLayout renders updated_at as UTC RFC 3339 with milliseconds
const UpdatedAtLayout = "2006-01-02T15:04:05.000Z"

// EventsSource fetches the raw upcoming events of a page
type EventsSource interface {
	FetchUpcomingEvents(ctx context.Context, cfg *config.Config, since time.Time) (*models.GraphEventsPage, error)
}

// EventUseCase handles page events business logic
type EventUseCase struct {
	source EventsSource
	now    func() time.Time
}

// NewEventUseCase creates a new event use case backed by the Graph API
func NewEventUseCase() *EventUseCase {
	return NewEventUseCaseWithSource(repository.NewEventRepository(), time.Now)
}

// NewEventUseCaseWithSource creates a use case with an explicit source and clock
func NewEventUseCaseWithSource(source EventsSource, now func() time.Time) *EventUseCase {
	if now == nil {
		now = time.Now
	}
	return &EventUseCase{
		source: source,
		now:    now,
	}
}

// ============================================================
// GetUpcomingEvents - fetch the first page of upcoming events and
// flatten each record into the public shape
// ============================================================
func (uc *EventUseCase) GetUpcomingEvents(ctx context.Context, cfg *config.Config) (*models.PageEventsResponse, error) {
	since := uc.now()

	page, err := uc.source.FetchUpcomingEvents(ctx, cfg, since)
	if err != nil {
		return nil, err
	}
	if page == nil {
		page = &models.GraphEventsPage{}
	}

	if page.HasNext() {
		logger.WithContext(ctx).Debug("graph returned more than %d events; only the first page is served", models.GraphEventsLimit)
	}

	events := make([]models.PageEvent, 0, len(page.Data))
	for _, e := range page.Data {
		events = append(events, e.ToPageEvent())
	}

	return &models.PageEventsResponse{
		OK:        true,
		UpdatedAt: uc.now().UTC().Format(UpdatedAtLayout),
		Events:    events,
	}, nil
}
