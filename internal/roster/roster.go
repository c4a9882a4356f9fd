package roster

import (
	"github.com/yardroster/backend/internal/models"
)

// Reason explains why an edit left the state untouched. Edits never fail
// loudly: a stale id captured by the UI after a concurrent edit must
// degrade to "nothing happened", not a crash. The reason is surfaced so
// tests and logs can still tell the cases apart.
type Reason string

const (
	ReasonRosterEmpty    Reason = "roster_empty"    // no solve has run yet
	ReasonUnknownSlot    Reason = "unknown_slot"    // no (day, yard) block in the roster
	ReasonUnknownWorker  Reason = "unknown_worker"  // name does not resolve to a live employee
	ReasonWorkerAbsent   Reason = "worker_absent"   // nothing to remove for that name
	ReasonAlreadyPresent Reason = "already_present" // both representations already list the worker
	ReasonUnknownShift   Reason = "unknown_shift"   // yard block not found on the source day
)

type Outcome struct {
	Applied bool   `json:"applied"`
	Reason  Reason `json:"reason,omitempty"`
}

func applied() Outcome           { return Outcome{Applied: true} }
func noop(reason Reason) Outcome { return Outcome{Reason: reason} }

// Engine applies local edits to a solved roster while keeping the
// day-indexed yard view and the flat assignment list in lockstep. Worker
// names are resolved against the live employee roster, not the names
// stored on assignments, so renames since the solve behave predictably.
type Engine struct {
	employees []models.Employee
}

func NewEngine(employees []models.Employee) *Engine {
	return &Engine{employees: append([]models.Employee(nil), employees...)}
}

func (e *Engine) findEmployeeByName(name string) (models.Employee, bool) {
	for _, emp := range e.employees {
		if emp.Name == name {
			return emp, true
		}
	}
	return models.Employee{}, false
}

func findYard(days []models.DayRoster, day models.DayOfWeek, yardID int) (dayIdx, yardIdx int) {
	for i, d := range days {
		if d.Day != day {
			continue
		}
		for j, y := range d.Yards {
			if y.CarYardID == yardID {
				return i, j
			}
		}
		return i, -1
	}
	return -1, -1
}

// RemoveWorker drops workerName from the (day, yard) block and removes the
// matching assignment. If the name no longer resolves to a live employee
// the display list is still cleaned up and the assignment side is left
// alone. Removing a worker that is not there is a no-op, not an error.
func (e *Engine) RemoveWorker(state models.ScheduleResponse, day models.DayOfWeek, yardID int, workerName string) (models.ScheduleResponse, Outcome) {
	if !state.Loaded() {
		return state, noop(ReasonRosterEmpty)
	}

	next := state.Clone()
	changed := false

	di, yi := findYard(next.Roster.Days, day, yardID)
	if di >= 0 && yi >= 0 {
		yard := &next.Roster.Days[di].Yards[yi]
		kept := yard.Workers[:0]
		for _, w := range yard.Workers {
			if w == workerName {
				changed = true
				continue
			}
			kept = append(kept, w)
		}
		yard.Workers = kept
	}

	if emp, ok := e.findEmployeeByName(workerName); ok {
		kept := next.Assignments[:0]
		for _, a := range next.Assignments {
			if a.Day == day && a.CarYardID == yardID && a.EmployeeID == emp.ID {
				changed = true
				continue
			}
			kept = append(kept, a)
		}
		next.Assignments = kept
	}

	if !changed {
		if di < 0 || yi < 0 {
			return state, noop(ReasonUnknownSlot)
		}
		return state, noop(ReasonWorkerAbsent)
	}
	return next, applied()
}

// AddWorker lists workerName on the (day, yard) block and records the
// matching assignment, copying the block's times rather than recomputing
// them. Either side may already be present from an earlier out-of-sync
// edit; whichever half is missing is repaired, and a duplicate assignment
// for the same (employee, yard, day) is never inserted.
func (e *Engine) AddWorker(state models.ScheduleResponse, day models.DayOfWeek, yardID int, workerName string) (models.ScheduleResponse, Outcome) {
	if !state.Loaded() {
		return state, noop(ReasonRosterEmpty)
	}

	emp, ok := e.findEmployeeByName(workerName)
	if !ok {
		return state, noop(ReasonUnknownWorker)
	}

	di, yi := findYard(state.Roster.Days, day, yardID)
	if di < 0 || yi < 0 {
		return state, noop(ReasonUnknownSlot)
	}

	next := state.Clone()
	yard := &next.Roster.Days[di].Yards[yi]
	changed := false

	listed := false
	for _, w := range yard.Workers {
		if w == workerName {
			listed = true
			break
		}
	}
	if !listed {
		yard.Workers = append(yard.Workers, workerName)
		changed = true
	}

	exists := false
	for _, a := range next.Assignments {
		if a.EmployeeID == emp.ID && a.CarYardID == yardID && a.Day == day {
			exists = true
			break
		}
	}
	if !exists {
		next.Assignments = append(next.Assignments, models.Assignment{
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			CarYardID:    yardID,
			CarYardName:  yard.CarYardName,
			Day:          day,
			StartTime:    yard.StartTime,
			FinishTime:   yard.FinishTime,
		})
		changed = true
	}

	if !changed {
		return state, noop(ReasonAlreadyPresent)
	}
	return next, applied()
}

// MoveShift relocates an entire yard-day block to another day, inserting
// it at targetIndex in the destination day's ordered yard list (appended
// when nil). Every assignment that referenced (fromDay, yard) is rewritten
// to the destination day; times and workers are untouched.
func (e *Engine) MoveShift(state models.ScheduleResponse, yardID int, fromDay, toDay models.DayOfWeek, targetIndex *int) (models.ScheduleResponse, Outcome) {
	if !state.Loaded() {
		return state, noop(ReasonRosterEmpty)
	}
	if models.DayIndex(toDay) < 0 {
		return state, noop(ReasonUnknownSlot)
	}

	di, yi := findYard(state.Roster.Days, fromDay, yardID)
	if di < 0 || yi < 0 {
		return state, noop(ReasonUnknownShift)
	}

	next := state.Clone()

	from := &next.Roster.Days[di]
	block := from.Yards[yi]
	from.Yards = append(from.Yards[:yi], from.Yards[yi+1:]...)

	ti := -1
	for i, d := range next.Roster.Days {
		if d.Day == toDay {
			ti = i
			break
		}
	}
	if ti < 0 {
		// The solver omits days with no yards; a block can still be
		// dropped onto one. Insert the day at its canonical position.
		ti = len(next.Roster.Days)
		for i, d := range next.Roster.Days {
			if models.DayIndex(d.Day) > models.DayIndex(toDay) {
				ti = i
				break
			}
		}
		days := make([]models.DayRoster, 0, len(next.Roster.Days)+1)
		days = append(days, next.Roster.Days[:ti]...)
		days = append(days, models.DayRoster{Day: toDay})
		days = append(days, next.Roster.Days[ti:]...)
		next.Roster.Days = days
	}

	to := &next.Roster.Days[ti]
	idx := len(to.Yards)
	if targetIndex != nil {
		idx = *targetIndex
		// Same-day indices were computed before the block was pulled out.
		if fromDay == toDay && idx > yi {
			idx--
		}
		if idx < 0 {
			idx = 0
		}
		if idx > len(to.Yards) {
			idx = len(to.Yards)
		}
	}
	yards := make([]models.YardSchedule, 0, len(to.Yards)+1)
	yards = append(yards, to.Yards[:idx]...)
	yards = append(yards, block)
	yards = append(yards, to.Yards[idx:]...)
	to.Yards = yards

	for i := range next.Assignments {
		if next.Assignments[i].Day == fromDay && next.Assignments[i].CarYardID == yardID {
			next.Assignments[i].Day = toDay
		}
	}

	return next, applied()
}
