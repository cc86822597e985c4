package response

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// CacheControl lets CDNs serve a response fresh for 15 minutes and stale for a day
// while revalidating.
const CacheControl = "s-maxage=900, stale-while-revalidate=86400"

const contentTypeJSON = "application/json;charset=UTF-8"

// CORS Headers for API responses
var CORSHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET,OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type,Authorization",
}

// ErrorBody is the failure envelope: {ok:false, error, details?, message?}
type ErrorBody struct {
	OK      bool            `json:"ok"`
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details,omitempty"`
	Message string          `json:"message,omitempty"`
}

// baseHeaders returns a fresh header map with the CORS headers applied
func baseHeaders() map[string]string {
	headers := make(map[string]string, len(CORSHeaders)+2)
	for k, v := range CORSHeaders {
		headers[k] = v
	}
	return headers
}

// NoContent creates an empty 204 response
func NoContent() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusNoContent,
		Headers:    baseHeaders(),
	}
}

// JSON creates a JSON response. A serialization failure degrades to a plain
// server error body.
func JSON(statusCode int, data interface{}) events.APIGatewayProxyResponse {
	headers := baseHeaders()
	headers["Content-Type"] = contentTypeJSON

	body, err := json.Marshal(data)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    headers,
			Body:       `{"ok":false,"error":"Server error","message":"failed to serialize response"}`,
		}
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    headers,
		Body:       string(body),
	}
}

// Cached creates a 200 JSON response carrying the CDN cache directive
func Cached(data interface{}) events.APIGatewayProxyResponse {
	resp := JSON(http.StatusOK, data)
	if resp.StatusCode == http.StatusOK {
		resp.Headers["Cache-Control"] = CacheControl
	}
	return resp
}

// Error creates a failure envelope response
func Error(statusCode int, body ErrorBody) events.APIGatewayProxyResponse {
	body.OK = false
	return JSON(statusCode, body)
}
