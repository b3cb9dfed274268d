// Package httpclients builds preconfigured resty clients for outbound calls.
package httpclients

import (
	"context"
	"time"

	"resty.dev/v3"

	"friendbot/companion-api/internal/infrastructure/logger"
	"friendbot/companion-api/internal/utils/platformerrors"
)

type startedAtKey struct{}

// NewClient returns a resty client that logs every outbound request with
// latency and the request id propagated from the inbound context.
func NewClient(clientName string) *resty.Client {
	client := resty.New()

	client.AddRequestMiddleware(func(c *resty.Client, r *resty.Request) error {
		r.SetContext(context.WithValue(r.Context(), startedAtKey{}, time.Now()))
		return nil
	})

	client.AddResponseMiddleware(func(c *resty.Client, r *resty.Response) error {
		log := logger.GetLogger()

		var latency time.Duration
		if startedAt, ok := r.Request.Context().Value(startedAtKey{}).(time.Time); ok {
			latency = time.Since(startedAt)
		}

		event := log.Debug()
		if r.StatusCode() >= 400 {
			event = log.Warn()
		}

		requestID, _ := r.Request.Context().Value(platformerrors.RequestIDContextKey{}).(string)

		event.
			Str("request_id", requestID).
			Str("client", clientName).
			Str("method", r.Request.Method).
			Str("url", r.Request.URL).
			Int("status", r.StatusCode()).
			Dur("latency", latency).
			Msg("outbound request")
		return nil
	})

	return client
}
