// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/kinoteka/internal/platform/constants"
	"github.com/taibuivan/kinoteka/internal/platform/respond"
)

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase func(ctx context.Context) error

	// CheckSessions pings the Redis client backing sessions and flash messages.
	CheckSessions func(ctx context.Context) error
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
}

// readiness handles GET /ready (Readiness probe).
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	results := make([]checkResult, 0, 2)
	isSystemReady := true

	run := func(name string, check func(ctx context.Context) error) {
		if check == nil {
			return
		}
		result := checkResult{Name: name, IsOK: true}
		if err := check(ctx); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			isSystemReady = false
			handler.logger.ErrorContext(ctx, "readiness_check_failed", slog.String("dependency", name), slog.Any("error", err))
		}
		results = append(results, result)
	}

	run("postgres", handler.dependencies.CheckDatabase)
	run("redis", handler.dependencies.CheckSessions)

	payload := map[string]any{
		constants.FieldStatus: "ready",
		constants.FieldChecks: results,
	}

	if !isSystemReady {
		payload[constants.FieldStatus] = "degraded"
		respond.JSON(writer, http.StatusServiceUnavailable, payload)
		return
	}

	respond.OK(writer, payload)
}
