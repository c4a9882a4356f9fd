package planner

import (
	"errors"
	"strings"

	"github.com/yardroster/backend/internal/models"
)

var (
	ErrEmptyName = errors.New("name must not be empty")
)

// Settings are the global solve parameters edited alongside the
// employee and car-yard collections.
type Settings struct {
	MaxHoursPerDay      float64
	EarliestStartTime   string // "HH:MM:SS"
	MaxRadius           int
	TravelBufferMinutes int
}

// Planner owns the in-memory employee and car-yard collections and
// produces the schedule request payload sent to the solver.
type Planner struct {
	Employees []models.Employee
	CarYards  []models.CarYard
}

func New(employees []models.Employee, yards []models.CarYard) *Planner {
	return &Planner{
		Employees: append([]models.Employee(nil), employees...),
		CarYards:  append([]models.CarYard(nil), yards...),
	}
}

// AddEmployee appends a new employee with defaults: available every working
// day, below_average ranking, no exclusions. IDs are one past the current
// maximum so removals never cause reuse.
func (p *Planner) AddEmployee(name string) (models.Employee, error) {
	if strings.TrimSpace(name) == "" {
		return models.Employee{}, ErrEmptyName
	}

	maxID := 0
	for _, e := range p.Employees {
		if e.ID > maxID {
			maxID = e.ID
		}
	}

	emp := models.Employee{
		ID:            maxID + 1,
		Name:          name,
		Ranking:       models.RankingBelowAverage,
		AvailableDays: append([]models.DayOfWeek(nil), models.DaysOfWeek...),
		ExcludedYards: []int{},
	}
	p.Employees = append(p.Employees, emp)
	return emp, nil
}

// RemoveEmployee filters the employee out of the collection. References to
// the removed id held by other entities are left dangling on purpose; the
// validation pass reports them as warnings.
func (p *Planner) RemoveEmployee(id int) bool {
	out := p.Employees[:0]
	removed := false
	for _, e := range p.Employees {
		if e.ID == id {
			removed = true
			continue
		}
		out = append(out, e)
	}
	p.Employees = out
	return removed
}

// UpdateEmployee applies a pure transform to the matching record. Unknown
// ids are a no-op.
func (p *Planner) UpdateEmployee(id int, fn func(models.Employee) models.Employee) bool {
	for i, e := range p.Employees {
		if e.ID == id {
			p.Employees[i] = fn(e)
			return true
		}
	}
	return false
}

func (p *Planner) FindEmployee(id int) (models.Employee, bool) {
	for _, e := range p.Employees {
		if e.ID == id {
			return e, true
		}
	}
	return models.Employee{}, false
}

// AddCarYard appends a new yard with the stock defaults.
func (p *Planner) AddCarYard(name string) (models.CarYard, error) {
	if strings.TrimSpace(name) == "" {
		return models.CarYard{}, ErrEmptyName
	}

	maxID := 0
	for _, y := range p.CarYards {
		if y.ID > maxID {
			maxID = y.ID
		}
	}

	yard := models.CarYard{
		ID:                 maxID + 1,
		Name:               name,
		Priority:           models.PriorityHigh,
		Region:             models.RegionCentral,
		MinEmployees:       1,
		MaxEmployees:       4,
		HoursRequired:      2,
		NorthSouthPosition: 15,
	}
	p.CarYards = append(p.CarYards, yard)
	return yard, nil
}

func (p *Planner) RemoveCarYard(id int) bool {
	out := p.CarYards[:0]
	removed := false
	for _, y := range p.CarYards {
		if y.ID == id {
			removed = true
			continue
		}
		out = append(out, y)
	}
	p.CarYards = out
	return removed
}

func (p *Planner) UpdateCarYard(id int, fn func(models.CarYard) models.CarYard) bool {
	for i, y := range p.CarYards {
		if y.ID == id {
			p.CarYards[i] = fn(y)
			return true
		}
	}
	return false
}

func (p *Planner) FindCarYard(id int) (models.CarYard, bool) {
	for _, y := range p.CarYards {
		if y.ID == id {
			return y, true
		}
	}
	return models.CarYard{}, false
}

// Payload assembles the request sent to the solver from the current
// collections and settings.
func (p *Planner) Payload(s Settings) models.ScheduleRequestPayload {
	return models.ScheduleRequestPayload{
		Employees:           append([]models.Employee(nil), p.Employees...),
		CarYards:            append([]models.CarYard(nil), p.CarYards...),
		Days:                append([]models.DayOfWeek(nil), models.DaysOfWeek...),
		MaxHoursPerDay:      s.MaxHoursPerDay,
		EarliestStartTime:   s.EarliestStartTime,
		TravelBufferMinutes: s.TravelBufferMinutes,
		MaxRadius:           s.MaxRadius,
	}
}

// NormalizeDays reduces a day set to canonical week order, dropping
// duplicates and unknown values. Toggle order never leaks into the model.
func NormalizeDays(days []models.DayOfWeek) []models.DayOfWeek {
	present := map[models.DayOfWeek]bool{}
	for _, d := range days {
		present[d] = true
	}
	var out []models.DayOfWeek
	for _, d := range models.DaysOfWeek {
		if present[d] {
			out = append(out, d)
		}
	}
	return out
}

// ToggleDay flips one day in a set and returns the set in canonical order.
func ToggleDay(days []models.DayOfWeek, day models.DayOfWeek) []models.DayOfWeek {
	if models.DayIndex(day) < 0 {
		return NormalizeDays(days)
	}
	present := false
	for _, d := range days {
		if d == day {
			present = true
			break
		}
	}
	if present {
		var kept []models.DayOfWeek
		for _, d := range days {
			if d != day {
				kept = append(kept, d)
			}
		}
		return NormalizeDays(kept)
	}
	return NormalizeDays(append(append([]models.DayOfWeek(nil), days...), day))
}
