package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yardroster/backend/internal/models"
)

const DefaultTimeout = 150 * time.Second

// HTTPAdapter posts the schedule request to an external solver service.
type HTTPAdapter struct {
	BaseURL  string
	Endpoint string // e.g. "/generate_roster"
	Timeout  time.Duration
	Client   *http.Client
}

func (h HTTPAdapter) Generate(ctx context.Context, payload models.ScheduleRequestPayload) (models.ScheduleResponse, int64, error) {
	if h.Client == nil {
		h.Client = &http.Client{}
	}
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	body, err := EncodeRequest(payload)
	if err != nil {
		return models.ScheduleResponse{}, 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.BaseURL+h.Endpoint, bytes.NewBuffer(body))
	if err != nil {
		return models.ScheduleResponse{}, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.Client.Do(req)
	if err != nil {
		elapsed := time.Since(start).Milliseconds()
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return models.ScheduleResponse{}, elapsed, fmt.Errorf("%w after %s", ErrTimeout, timeout)
		}
		return models.ScheduleResponse{}, elapsed, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return models.ScheduleResponse{}, time.Since(start).Milliseconds(),
			fmt.Errorf("solver returned status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out models.ScheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.ScheduleResponse{}, time.Since(start).Milliseconds(),
			fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	// Persisted straight to the snapshot store, so it must survive a
	// serialization round trip.
	if _, err := json.Marshal(out); err != nil {
		return models.ScheduleResponse{}, time.Since(start).Milliseconds(),
			fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	return out, time.Since(start).Milliseconds(), nil
}
