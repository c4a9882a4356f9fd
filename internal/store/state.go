package store

import (
	"encoding/json"

	"github.com/yardroster/backend/internal/models"
)

// StateKey identifies the single scheduler snapshot in whatever backend
// holds it.
const StateKey = "scheduler-state"

// SchedulerState is the persisted snapshot. The roster itself is not
// saved; it is regenerated from these inputs.
type SchedulerState struct {
	Workers           []models.Employee `json:"workers"`
	CarYards          []models.CarYard  `json:"carYards"`
	MaxHoursPerDay    float64           `json:"maxHoursPerDay"`
	EarliestStartTime string            `json:"earliestStartTime"`
	MaxRadius         int               `json:"maxRadius"`
}

func (s SchedulerState) Encode() ([]byte, error) {
	if s.Workers == nil {
		s.Workers = []models.Employee{}
	}
	if s.CarYards == nil {
		s.CarYards = []models.CarYard{}
	}
	return json.Marshal(s)
}

// DecodeState restores a snapshot, validating each field independently. A
// field that is missing or has the wrong shape falls back to its default
// while the rest of the snapshot is kept; one corrupt field must not cost
// the user everything else. The returned list names the fields that fell
// back, for logging.
func DecodeState(data []byte, defaults SchedulerState) (SchedulerState, []string) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return defaults, []string{"workers", "carYards", "maxHoursPerDay", "earliestStartTime", "maxRadius"}
	}

	out := defaults
	var fallbacks []string

	restore := func(name string, target any) {
		msg, ok := raw[name]
		if !ok {
			fallbacks = append(fallbacks, name)
			return
		}
		if err := json.Unmarshal(msg, target); err != nil {
			fallbacks = append(fallbacks, name)
		}
	}

	var workers []models.Employee
	if msg, ok := raw["workers"]; ok && json.Unmarshal(msg, &workers) == nil && workers != nil {
		out.Workers = workers
	} else {
		fallbacks = append(fallbacks, "workers")
	}

	var yards []models.CarYard
	if msg, ok := raw["carYards"]; ok && json.Unmarshal(msg, &yards) == nil && yards != nil {
		out.CarYards = yards
	} else {
		fallbacks = append(fallbacks, "carYards")
	}

	hours := defaults.MaxHoursPerDay
	restore("maxHoursPerDay", &hours)
	out.MaxHoursPerDay = hours
	if out.MaxHoursPerDay <= 0 {
		out.MaxHoursPerDay = defaults.MaxHoursPerDay
	}

	start := defaults.EarliestStartTime
	restore("earliestStartTime", &start)
	out.EarliestStartTime = start
	if out.EarliestStartTime == "" {
		out.EarliestStartTime = defaults.EarliestStartTime
	}

	radius := defaults.MaxRadius
	restore("maxRadius", &radius)
	out.MaxRadius = radius

	return out, fallbacks
}
