package services

import (
	"context"
	"errors"
	"time"

	"github.com/stwalsh4118/atlas/portal/internal/logger"
	"github.com/stwalsh4118/atlas/portal/internal/metrics"
	"github.com/stwalsh4118/atlas/portal/internal/repository"
)

// FetchState is the lifecycle of one page fetch.
type FetchState string

const (
	StateIdle    FetchState = "idle"
	StateLoading FetchState = "loading"
	StateSuccess FetchState = "success"
	StateFailure FetchState = "failure"
)

// FallbackNotice is shown alongside sample records when live data could
// not be loaded.
const FallbackNotice = "Live data unavailable; showing sample records."

// Result is the outcome of one fetch. A failed fetch still carries a
// usable Value (the fallback dataset), so callers render it the same way.
type Result[T any] struct {
	State  FetchState `json:"state"`
	Value  T          `json:"data"`
	Notice string     `json:"notice,omitempty"`
	Err    error      `json:"-"`
}

// Loader performs registry reads on behalf of page controllers.
type Loader struct {
	repo    repository.RegistryRepository
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewLoader creates a Loader. m may be nil.
func NewLoader(repo repository.RegistryRepository, log *logger.Logger, m *metrics.Metrics) *Loader {
	return &Loader{
		repo:    repo,
		log:     log.Component("loader"),
		metrics: m,
	}
}

// Repository exposes the registry client for write-intent calls.
func (l *Loader) Repository() repository.RegistryRepository {
	return l.repo
}

// fetchWithFallback runs fetch once. Any error, including one from
// normalization, yields a Failure result holding fallback() instead.
// It never returns an error to the caller.
func fetchWithFallback[T any](ctx context.Context, l *Loader, resource string, fetch func(context.Context) (T, error), fallback func() T) Result[T] {
	start := time.Now()
	value, err := fetch(ctx)
	elapsed := time.Since(start)

	if err == nil {
		l.metrics.ObserveFetch(resource, metrics.OutcomeSuccess, elapsed)
		l.log.Debug("Registry fetch succeeded", map[string]interface{}{
			"resource":    resource,
			"duration_ms": elapsed.Milliseconds(),
		})
		return Result[T]{State: StateSuccess, Value: value}
	}

	l.metrics.ObserveFetch(resource, metrics.OutcomeFallback, elapsed)
	category := string(repository.CategoryOf(err))
	if category == "" {
		category = "normalize"
	}
	fields := map[string]interface{}{
		"resource":    resource,
		"category":    category,
		"duration_ms": elapsed.Milliseconds(),
	}
	if errors.Is(err, context.Canceled) {
		l.log.Debug("Registry fetch cancelled, using fallback", fields)
	} else {
		l.log.Error("Registry fetch failed, using fallback", err, fields)
	}

	return Result[T]{
		State:  StateFailure,
		Value:  fallback(),
		Notice: FallbackNotice,
		Err:    err,
	}
}
