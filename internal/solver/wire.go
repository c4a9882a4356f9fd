package solver

import (
	"encoding/json"
	"fmt"

	"github.com/yardroster/backend/internal/models"
)

// The solver speaks integer ranking codes. Everything else on the request
// marshals straight from the models package, tuple fields included.
type wireEmployee struct {
	ID            int                `json:"id"`
	Name          string             `json:"name"`
	Ranking       int                `json:"ranking"`
	AvailableDays []models.DayOfWeek `json:"available_days"`
	NotRegion     *models.Region     `json:"not_region,omitempty"`
	ExcludedYards []int              `json:"excluded_yards"`
}

type wireRequest struct {
	Employees           []wireEmployee     `json:"employees"`
	CarYards            []models.CarYard   `json:"car_yards"`
	Days                []models.DayOfWeek `json:"days"`
	MaxHoursPerDay      float64            `json:"max_hours_per_day,omitempty"`
	EarliestStartTime   string             `json:"earliest_start_time,omitempty"`
	TravelBufferMinutes int                `json:"travel_buffer_minutes,omitempty"`
	MaxRadius           int                `json:"max_radius,omitempty"`
}

// EncodeRequest serializes the payload for the solver. An employee with a
// ranking outside the fixed tier table aborts the whole request; sending a
// guessed code would silently skew the solve.
func EncodeRequest(p models.ScheduleRequestPayload) ([]byte, error) {
	employees := make([]wireEmployee, 0, len(p.Employees))
	for _, e := range p.Employees {
		code, ok := models.RankingWireValue(e.Ranking)
		if !ok {
			return nil, fmt.Errorf("employee %q has unknown ranking %q", e.Name, e.Ranking)
		}
		days := e.AvailableDays
		if days == nil {
			days = []models.DayOfWeek{}
		}
		excluded := e.ExcludedYards
		if excluded == nil {
			excluded = []int{}
		}
		employees = append(employees, wireEmployee{
			ID:            e.ID,
			Name:          e.Name,
			Ranking:       code,
			AvailableDays: days,
			NotRegion:     e.NotRegion,
			ExcludedYards: excluded,
		})
	}

	return json.Marshal(wireRequest{
		Employees:           employees,
		CarYards:            p.CarYards,
		Days:                p.Days,
		MaxHoursPerDay:      p.MaxHoursPerDay,
		EarliestStartTime:   p.EarliestStartTime,
		TravelBufferMinutes: p.TravelBufferMinutes,
		MaxRadius:           p.MaxRadius,
	})
}
