package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"

	"github.com/page-events-services/common/response"
)

// ErrorCode represents application-specific error codes
type ErrorCode string

const (
	// Request errors (4xxx)
	ErrCodeMethodNotAllowed ErrorCode = "E4050"

	// Deployment errors (5xxx)
	ErrCodeMisconfigured ErrorCode = "E5000"
	ErrCodeUpstream      ErrorCode = "E5020"

	// Internal errors (9xxx)
	ErrCodeInternal ErrorCode = "E9001"
)

// Public messages rendered in the "error" field of failure responses.
const (
	MsgMethodNotAllowed = "Method not allowed"
	MsgMisconfigured    = "Missing server configuration (FB_PAGE_ID / FB_PAGE_ACCESS_TOKEN)"
	MsgUpstream         = "Meta API error"
	MsgInternal         = "Server error"
)

// AppError represents an application error with context
type AppError struct {
	Code       ErrorCode       `json:"code"`
	Message    string          `json:"message"`
	Details    json.RawMessage `json:"details,omitempty"`
	HTTPStatus int             `json:"-"`
	Cause      error           `json:"-"`
	Stack      string          `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails attaches a raw diagnostic payload. Bodies that are not valid JSON
// are kept as a JSON string so the payload still reaches the caller verbatim.
func (e *AppError) WithDetails(raw []byte) *AppError {
	if len(raw) == 0 {
		return e
	}
	if json.Valid(raw) {
		e.Details = json.RawMessage(raw)
		return e
	}
	quoted, _ := json.Marshal(string(raw))
	e.Details = json.RawMessage(quoted)
	return e
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// Body renders the failure envelope for this error.
func (e *AppError) Body() response.ErrorBody {
	body := response.ErrorBody{
		OK:      false,
		Error:   e.Message,
		Details: e.Details,
	}
	if e.Cause != nil {
		body.Message = e.Cause.Error()
	}
	return body
}

// ============================================================
// Error constructors
// ============================================================

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: getHTTPStatus(code),
		Stack:      captureStack(2),
	}
}

// Wrap wraps an existing error with AppError
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: getHTTPStatus(code),
		Cause:      err,
		Stack:      captureStack(2),
	}
}

func MethodNotAllowed() *AppError {
	return New(ErrCodeMethodNotAllowed, MsgMethodNotAllowed)
}

func Misconfigured() *AppError {
	return New(ErrCodeMisconfigured, MsgMisconfigured)
}

// UpstreamError reports a non-success status from the Graph API, carrying the
// upstream body as details.
func UpstreamError(body []byte) *AppError {
	return New(ErrCodeUpstream, MsgUpstream).WithDetails(body)
}

func Internal(err error) *AppError {
	if err == nil {
		err = stderrors.New("unknown error")
	}
	return Wrap(err, ErrCodeInternal, MsgInternal)
}

// ============================================================
// Helper functions
// ============================================================

func getHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ErrCodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func captureStack(skip int) string {
	var pcs [32]uintptr
	n := runtime.Callers(skip+1, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	for {
		frame, more := frames.Next()
		if strings.Contains(frame.File, "runtime/") {
			if !more {
				break
			}
			continue
		}
		sb.WriteString(fmt.Sprintf("%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line))
		if !more {
			break
		}
	}
	return sb.String()
}

// AsAppError converts an error to AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}

// ToAppError converts any error to AppError; anything unclassified becomes a
// generic server error whose cause text is surfaced as the diagnostic message.
func ToAppError(err error) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Internal(err)
}
