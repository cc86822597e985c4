package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/joho/godotenv"
	"github.com/page-events-services/common/logger"
	eventHandler "github.com/page-events-services/services/event-lambda/handler"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// lambdaHandler is the signature shared by the Lambda entrypoints
type lambdaHandler func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Adapter converts http.Request to APIGatewayProxyRequest
func adaptRequest(r *http.Request) (events.APIGatewayProxyRequest, error) {
	// Read body
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return events.APIGatewayProxyRequest{}, err
	}
	defer r.Body.Close()

	// Convert headers to map[string]string
	headers := make(map[string]string)
	for key, values := range r.Header {
		if len(values) > 0 {
			headers[key] = values[0]
		}
	}

	// Convert query parameters
	queryParams := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			queryParams[key] = values[0]
		}
	}

	return events.APIGatewayProxyRequest{
		HTTPMethod:            r.Method,
		Path:                  r.URL.Path,
		Headers:               headers,
		QueryStringParameters: queryParams,
		Body:                  string(body),
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID: r.Header.Get("X-Request-Id"),
			Identity: events.APIGatewayRequestIdentity{
				SourceIP: r.RemoteAddr,
			},
		},
	}, nil
}

// writeResponse writes APIGatewayProxyResponse to http.ResponseWriter
func writeResponse(w http.ResponseWriter, resp events.APIGatewayProxyResponse) {
	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}

	w.WriteHeader(resp.StatusCode)
	if resp.Body != "" {
		w.Write([]byte(resp.Body))
	}
}

// lambdaRoute serves a Lambda handler on a plain net/http route
func lambdaRoute(h lambdaHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := adaptRequest(r)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}

		resp, err := h(r.Context(), req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeResponse(w, resp)
	}
}

// newMux wires the local routes
func newMux(eventsRoute lambdaHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/events", lambdaRoute(eventsRoute))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

func newRootCmd() *cobra.Command {
	var (
		port    string
		envFile string
	)

	cmd := &cobra.Command{
		Use:   "page-events",
		Short: "Run the page events endpoint as a local HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load environment from .env file if exists
			if err := godotenv.Load(envFile); err != nil {
				logger.Info("No %s file loaded, using system environment variables", envFile)
			} else {
				logger.Info("Loaded environment variables from %s", envFile)
			}

			log := logger.Default()
			defer func() {
				if err := log.Sync(); err != nil && !errors.Is(err, syscall.ENOTTY) && !errors.Is(err, syscall.EINVAL) {
					fmt.Fprintln(os.Stderr, err)
				}
			}()

			eventH := eventHandler.NewEventHandler()

			srv := &http.Server{
				Addr:              ":" + port,
				Handler:           newMux(eventH.HandleGetEvents),
				ReadHeaderTimeout: 10 * time.Second,
			}

			log.Info("Server listening on :%s (GET /api/events, /metrics, /healthz)", port)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", getEnv("PORT", "8080"), "port to listen on")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before starting")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
