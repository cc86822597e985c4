package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/page-events-services/common/config"
	apperrors "github.com/page-events-services/common/errors"
	"github.com/page-events-services/common/logger"
	"github.com/page-events-services/common/metrics"
	"github.com/page-events-services/services/event-lambda/models"
)

// EventRepository reads page events from the Graph API
type EventRepository struct {
	client *resty.Client
}

// NewEventRepository creates a new event repository with its own HTTP client.
// No client timeout is set; the invocation context bounds the call.
func NewEventRepository() *EventRepository {
	client := resty.New().
		SetLogger(logger.Default().Sugar()).
		SetHeader("Accept", "application/json")
	return NewEventRepositoryWithClient(client)
}

// NewEventRepositoryWithClient creates a repository on top of an existing client
func NewEventRepositoryWithClient(client *resty.Client) *EventRepository {
	return &EventRepository{client: client}
}

// FetchUpcomingEvents issues one GET for the page's events starting at or after since.
// A non-2xx status yields an UpstreamError carrying the upstream body.
func (r *EventRepository) FetchUpcomingEvents(ctx context.Context, cfg *config.Config, since time.Time) (*models.GraphEventsPage, error) {
	start := time.Now()
	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"since":        strconv.FormatInt(since.Unix(), 10),
			"fields":       strings.Join(models.GraphEventFields, ","),
			"limit":        strconv.Itoa(models.GraphEventsLimit),
			"access_token": cfg.AccessToken,
		}).
		Get(cfg.EventsURL())
	if err != nil {
		metrics.ObserveUpstream(metrics.OutcomeTransportError, time.Since(start))
		return nil, fmt.Errorf("graph events request failed: %w", stripURL(err))
	}

	if !resp.IsSuccess() {
		metrics.ObserveUpstream(metrics.OutcomeHTTPError, time.Since(start))
		logger.WithContext(ctx).Warn("graph events request returned status %d", resp.StatusCode())
		return nil, apperrors.UpstreamError(resp.Body())
	}
	metrics.ObserveUpstream(metrics.OutcomeOK, time.Since(start))

	var page models.GraphEventsPage
	if err := json.Unmarshal(resp.Body(), &page); err != nil {
		return nil, fmt.Errorf("decode graph events: %w", err)
	}
	return &page, nil
}

// stripURL drops the request URL from transport errors; it carries the access token.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
