package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/page-events-services/common/config"
	apperrors "github.com/page-events-services/common/errors"
	"github.com/page-events-services/common/logger"
	"github.com/page-events-services/common/metrics"
	"github.com/page-events-services/common/response"
	"github.com/page-events-services/services/event-lambda/usecase"
)

// EventHandler serves the page events endpoint
type EventHandler struct {
	useCase    *usecase.EventUseCase
	loadConfig func() (*config.Config, error)
	log        *logger.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return NewEventHandlerWithUseCase(usecase.NewEventUseCase())
}

// NewEventHandlerWithUseCase creates a handler around an existing use case
func NewEventHandlerWithUseCase(uc *usecase.EventUseCase) *EventHandler {
	return &EventHandler{
		useCase:    uc,
		loadConfig: config.Load,
		log:        logger.Default(),
	}
}

// HandleGetEvents handles GET /api/events
//
//	{
//	  "ok": true,
//	  "updated_at": "2025-01-01T00:00:00.000Z",
//	  "events": [...]
//	}
//
// OPTIONS is answered with an empty 204. Every failure is a single
// {"ok": false, "error": ...} body; the returned error is always nil so API
// Gateway never substitutes its own 502.
func (h *EventHandler) HandleGetEvents(ctx context.Context, request events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, err error) {
	start := time.Now()

	requestID := request.RequestContext.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx = context.WithValue(ctx, logger.RequestIDKey, requestID)

	var failure string
	defer func() {
		if r := recover(); r != nil {
			appErr := apperrors.Internal(fmt.Errorf("panic: %v", r))
			failure = appErr.Error()
			resp = errorResponse(appErr)
			err = nil
		}

		metrics.ObserveResponse(resp.StatusCode)
		h.log.LogRequest(logger.RequestLog{
			Method:       request.HTTPMethod,
			Path:         request.Path,
			Status:       resp.StatusCode,
			Duration:     time.Since(start),
			ClientIP:     request.RequestContext.Identity.SourceIP,
			UserAgent:    request.Headers["User-Agent"],
			RequestID:    requestID,
			ResponseSize: int64(len(resp.Body)),
			Error:        failure,
		})
	}()

	resp, failure = h.serve(ctx, request)
	return resp, nil
}

// serve runs the method gate, the configuration gate and the fetch; the second
// return value is the internal failure text for the request log.
func (h *EventHandler) serve(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, string) {
	switch request.HTTPMethod {
	case http.MethodOptions:
		return response.NoContent(), ""
	case http.MethodGet:
	default:
		appErr := apperrors.MethodNotAllowed()
		return errorResponse(appErr), ""
	}

	cfg, err := h.loadConfig()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		return errorResponse(apperrors.Misconfigured()), err.Error()
	}

	result, err := h.useCase.GetUpcomingEvents(ctx, cfg)
	if err != nil {
		appErr := apperrors.ToAppError(err)
		return errorResponse(appErr), appErr.Error()
	}

	metrics.ObserveEvents(len(result.Events))
	return response.Cached(result), ""
}

func errorResponse(appErr *apperrors.AppError) events.APIGatewayProxyResponse {
	return response.Error(appErr.HTTPStatus, appErr.Body())
}
