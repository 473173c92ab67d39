package ports

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrDuplicateChecker is returned when registering a health checker under a
// name that is already taken.
var ErrDuplicateChecker = errors.New("duplicate health checker")

// HealthChecker is implemented by components that can report their health.
// Adapters register themselves with the HealthRegistry at startup.
type HealthChecker interface {
	// Name returns a unique identifier for this health check.
	Name() string

	// Check returns nil when the component is healthy. Implementations
	// should respect context cancellation.
	Check(ctx context.Context) error
}

// HealthStatus represents the overall health state.
type HealthStatus string

const (
	// HealthStatusHealthy indicates all checks passed.
	HealthStatusHealthy HealthStatus = "healthy"

	// HealthStatusUnhealthy indicates at least one check failed.
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// CheckResult is the outcome of a single health check.
type CheckResult struct {
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// HealthResult is the aggregate of all registered checks.
type HealthResult struct {
	Status    HealthStatus            `json:"status"`
	Checks    map[string]*CheckResult `json:"checks"`
	Timestamp time.Time               `json:"timestamp"`
}

// HealthRegistry aggregates health checks from multiple components.
type HealthRegistry struct {
	mu       sync.RWMutex
	checkers map[string]HealthChecker
}

// NewHealthRegistry creates an empty registry.
func NewHealthRegistry() *HealthRegistry {
	return &HealthRegistry{checkers: make(map[string]HealthChecker)}
}

// Register adds a checker. Returns ErrDuplicateChecker on a name collision.
func (r *HealthRegistry) Register(checker HealthChecker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := checker.Name()
	if _, exists := r.checkers[name]; exists {
		return ErrDuplicateChecker
	}

	r.checkers[name] = checker

	return nil
}

// CheckAll runs every registered check and aggregates the results.
func (r *HealthRegistry) CheckAll(ctx context.Context) *HealthResult {
	r.mu.RLock()
	checkers := make([]HealthChecker, 0, len(r.checkers))
	for _, c := range r.checkers {
		checkers = append(checkers, c)
	}
	r.mu.RUnlock()

	result := &HealthResult{
		Status:    HealthStatusHealthy,
		Checks:    make(map[string]*CheckResult, len(checkers)),
		Timestamp: time.Now().UTC(),
	}

	for _, checker := range checkers {
		check := &CheckResult{Status: HealthStatusHealthy}
		if err := checker.Check(ctx); err != nil {
			check.Status = HealthStatusUnhealthy
			check.Message = err.Error()
			result.Status = HealthStatusUnhealthy
		}

		result.Checks[checker.Name()] = check
	}

	return result
}
