package solver

import (
	"context"
	"errors"

	"github.com/yardroster/backend/internal/models"
)

// Adapter generates a weekly roster for the given payload. The int64 is
// the solve latency in milliseconds, reported even on failure.
type Adapter interface {
	Generate(ctx context.Context, payload models.ScheduleRequestPayload) (models.ScheduleResponse, int64, error)
}

var (
	// ErrTimeout marks a solve that exceeded the request deadline, as
	// opposed to the service rejecting or failing the request.
	ErrTimeout = errors.New("solver request timed out")

	// ErrBadResponse marks a 2xx reply whose body was not a usable
	// schedule document.
	ErrBadResponse = errors.New("solver returned an unusable response")
)
