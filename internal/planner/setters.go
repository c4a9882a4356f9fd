package planner

import (
	"github.com/yardroster/backend/internal/models"
)

// Field setters clamp or reject out-of-range values before they enter the
// model. Nothing downstream ever needs to re-validate these bounds.

const (
	minVisitsPerWeek = 1
	maxVisitsPerWeek = 3
	maxVisitGapDays  = 6
	maxLinkedGapDays = 7
	maxYardHours     = 24
	maxYardWorkers   = 4
)

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SetVisitsPerWeek sets the weekly visit count (clamped 1-3), preserving
// any existing gap. A count of 1 zeroes the gap since it is meaningless.
func (p *Planner) SetVisitsPerWeek(yardID, visits int) bool {
	return p.UpdateCarYard(yardID, func(y models.CarYard) models.CarYard {
		visits = clampInt(visits, minVisitsPerWeek, maxVisitsPerWeek)
		gap := 0
		if y.PerWeek != nil && visits > 1 {
			gap = y.PerWeek.GapDays
		}
		y.PerWeek = &models.PerWeek{VisitsRequired: visits, GapDays: gap}
		return y
	})
}

// SetVisitGapDays sets the minimum days between repeat visits (clamped
// 0-6). Rejected when the yard only requires one visit.
func (p *Planner) SetVisitGapDays(yardID, gap int) bool {
	return p.UpdateCarYard(yardID, func(y models.CarYard) models.CarYard {
		if y.PerWeek == nil || y.PerWeek.VisitsRequired <= 1 {
			return y
		}
		y.PerWeek = &models.PerWeek{
			VisitsRequired: y.PerWeek.VisitsRequired,
			GapDays:        clampInt(gap, 0, maxVisitGapDays),
		}
		return y
	})
}

// SetMinEmployees clamps between 1 and the lesser of the yard's maximum and
// the current workforce size.
func (p *Planner) SetMinEmployees(yardID, value int) bool {
	workforce := len(p.Employees)
	return p.UpdateCarYard(yardID, func(y models.CarYard) models.CarYard {
		hi := y.MaxEmployees
		if workforce < hi {
			hi = workforce
		}
		if hi < 1 {
			hi = 1
		}
		y.MinEmployees = clampInt(value, 1, hi)
		return y
	})
}

// SetMaxEmployees clamps between the yard's minimum and the fixed cap.
func (p *Planner) SetMaxEmployees(yardID, value int) bool {
	return p.UpdateCarYard(yardID, func(y models.CarYard) models.CarYard {
		y.MaxEmployees = clampInt(value, y.MinEmployees, maxYardWorkers)
		return y
	})
}

func (p *Planner) SetHoursRequired(yardID int, hours float64) bool {
	return p.UpdateCarYard(yardID, func(y models.CarYard) models.CarYard {
		y.HoursRequired = clampFloat(hours, 0, maxYardHours)
		return y
	})
}

// SetLinkedYard points the yard at another existing yard with a gap-day
// constraint. Self-links and unknown targets are rejected.
func (p *Planner) SetLinkedYard(yardID, otherID, gapDays int) bool {
	if otherID == yardID {
		return false
	}
	if _, ok := p.FindCarYard(otherID); !ok {
		return false
	}
	return p.UpdateCarYard(yardID, func(y models.CarYard) models.CarYard {
		y.LinkedYard = &models.LinkedYard{
			OtherYardID: otherID,
			GapDays:     clampInt(gapDays, 0, maxLinkedGapDays),
		}
		return y
	})
}

func (p *Planner) ClearLinkedYard(yardID int) bool {
	return p.UpdateCarYard(yardID, func(y models.CarYard) models.CarYard {
		y.LinkedYard = nil
		return y
	})
}

// SetStartTimeOverride records a per-yard start time. Setting the override
// back to the global base time removes it instead.
func (p *Planner) SetStartTimeOverride(yardID int, startTime, baseTime string) bool {
	return p.UpdateCarYard(yardID, func(y models.CarYard) models.CarYard {
		if startTime == baseTime {
			y.StartTime = ""
			return y
		}
		y.StartTime = startTime
		return y
	})
}

// ToggleRequiredDay flips one required day, keeping canonical order. An
// emptied set becomes nil so the field is omitted from the payload.
func (p *Planner) ToggleRequiredDay(yardID int, day models.DayOfWeek) bool {
	return p.UpdateCarYard(yardID, func(y models.CarYard) models.CarYard {
		y.RequiredDays = ToggleDay(y.RequiredDays, day)
		if len(y.RequiredDays) == 0 {
			y.RequiredDays = nil
		}
		return y
	})
}

// ToggleAvailability flips one of the employee's available days, keeping
// canonical order.
func (p *Planner) ToggleAvailability(employeeID int, day models.DayOfWeek) bool {
	return p.UpdateEmployee(employeeID, func(e models.Employee) models.Employee {
		e.AvailableDays = ToggleDay(e.AvailableDays, day)
		if e.AvailableDays == nil {
			e.AvailableDays = []models.DayOfWeek{}
		}
		return e
	})
}

// SetRanking rejects values outside the fixed tier set.
func (p *Planner) SetRanking(employeeID int, ranking models.Ranking) bool {
	if _, ok := models.RankingWireValue(ranking); !ok {
		return false
	}
	return p.UpdateEmployee(employeeID, func(e models.Employee) models.Employee {
		e.Ranking = ranking
		return e
	})
}

// SetNotRegion marks a region the employee will not work in. Unknown
// regions are rejected.
func (p *Planner) SetNotRegion(employeeID int, region models.Region) bool {
	if !models.ValidRegion(region) {
		return false
	}
	return p.UpdateEmployee(employeeID, func(e models.Employee) models.Employee {
		r := region
		e.NotRegion = &r
		return e
	})
}

func (p *Planner) ClearNotRegion(employeeID int) bool {
	return p.UpdateEmployee(employeeID, func(e models.Employee) models.Employee {
		e.NotRegion = nil
		return e
	})
}

// ToggleExcludedYard flips a yard exclusion on the employee. The yard id is
// not required to resolve; dangling ids surface via ValidateReferences.
func (p *Planner) ToggleExcludedYard(employeeID, yardID int) bool {
	return p.UpdateEmployee(employeeID, func(e models.Employee) models.Employee {
		for i, id := range e.ExcludedYards {
			if id == yardID {
				e.ExcludedYards = append(append([]int(nil), e.ExcludedYards[:i]...), e.ExcludedYards[i+1:]...)
				return e
			}
		}
		e.ExcludedYards = append(append([]int(nil), e.ExcludedYards...), yardID)
		return e
	})
}
