package roster

import (
	"sort"

	"github.com/yardroster/backend/internal/models"
	"github.com/yardroster/backend/internal/utils"
)

// EmployeeWeek is one employee's assignments regrouped for the
// person-centric view, ordered by canonical day. TotalHours sums the
// shift durations in decimal hours; TotalHoursDisplay is the same total
// as "H:MM".
type EmployeeWeek struct {
	EmployeeID        int                 `json:"employee_id"`
	EmployeeName      string              `json:"employee_name"`
	Assignments       []models.Assignment `json:"assignments"`
	TotalShifts       int                 `json:"total_shifts"`
	TotalHours        float64             `json:"total_hours"`
	TotalHoursDisplay string              `json:"total_hours_display"`
}

// GroupByEmployee pivots the flat assignment list into per-employee weeks,
// sorted by employee name. Assignments whose employee no longer exists are
// still included under the name recorded at solve time.
func GroupByEmployee(assignments []models.Assignment) []EmployeeWeek {
	byID := map[int]*EmployeeWeek{}
	var order []int
	for _, a := range assignments {
		week, ok := byID[a.EmployeeID]
		if !ok {
			week = &EmployeeWeek{EmployeeID: a.EmployeeID, EmployeeName: a.EmployeeName}
			byID[a.EmployeeID] = week
			order = append(order, a.EmployeeID)
		}
		week.Assignments = append(week.Assignments, a)
		week.TotalShifts++
		_, hours := utils.ShiftDuration(a.StartTime, a.FinishTime)
		week.TotalHours += hours
	}

	weeks := make([]EmployeeWeek, 0, len(order))
	for _, id := range order {
		week := byID[id]
		sort.SliceStable(week.Assignments, func(i, j int) bool {
			return models.DayIndex(week.Assignments[i].Day) < models.DayIndex(week.Assignments[j].Day)
		})
		week.TotalHours = utils.FormatToTwoDecimals(week.TotalHours)
		week.TotalHoursDisplay = utils.FormatDecimalHoursToTime(week.TotalHours)
		weeks = append(weeks, *week)
	}
	sort.SliceStable(weeks, func(i, j int) bool {
		return weeks[i].EmployeeName < weeks[j].EmployeeName
	})
	return weeks
}
