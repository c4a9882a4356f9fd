package solver

import (
	"context"
	"time"

	"github.com/yardroster/backend/internal/models"
	"github.com/yardroster/backend/internal/utils"
)

// MockAdapter produces a deterministic roster without calling the real
// service. The same payload always yields the same roster, which keeps
// local development and tests stable.
type MockAdapter struct{}

func (m MockAdapter) Generate(ctx context.Context, payload models.ScheduleRequestPayload) (models.ScheduleResponse, int64, error) {
	start := time.Now()

	if _, err := EncodeRequest(payload); err != nil {
		return models.ScheduleResponse{}, 0, err
	}

	week := payload.Days
	if len(week) == 0 {
		week = models.DaysOfWeek
	}

	dayYards := make(map[models.DayOfWeek][]models.YardSchedule)
	var assignments []models.Assignment
	shifts := map[int]int{}

	for _, yard := range payload.CarYards {
		days := yard.RequiredDays
		if len(days) == 0 {
			h := utils.HashStringToUint64(yard.Name)
			visits := 1
			if yard.PerWeek != nil && yard.PerWeek.VisitsRequired > 0 {
				visits = yard.PerWeek.VisitsRequired
			}
			step := len(week) / visits
			if step == 0 {
				step = 1
			}
			for i := 0; i < visits && i < len(week); i++ {
				days = append(days, week[(int(h)+i*step)%len(week)])
			}
		}

		startTime := yard.StartTime
		if startTime == "" {
			startTime = payload.EarliestStartTime
		}
		if startTime == "" {
			startTime = "05:30:00"
		}
		startMin := utils.TimeStringToMinutes(startTime)
		finish := utils.MinutesToTimeString(startMin + int(yard.HoursRequired*60))
		begin := utils.MinutesToTimeString(startMin)

		for _, day := range days {
			var workers []string
			for _, emp := range payload.Employees {
				if len(workers) >= yard.MinEmployees {
					break
				}
				if !dayAvailable(emp, day) || yardExcluded(emp, yard.ID) {
					continue
				}
				workers = append(workers, emp.Name)
				assignments = append(assignments, models.Assignment{
					EmployeeID:   emp.ID,
					EmployeeName: emp.Name,
					CarYardID:    yard.ID,
					CarYardName:  yard.Name,
					Day:          day,
					StartTime:    begin,
					FinishTime:   finish,
				})
				shifts[emp.ID]++
			}
			dayYards[day] = append(dayYards[day], models.YardSchedule{
				CarYardID:   yard.ID,
				CarYardName: yard.Name,
				Workers:     workers,
				StartTime:   begin,
				FinishTime:  finish,
			})
		}
	}

	var days []models.DayRoster
	for _, d := range models.DaysOfWeek {
		if yards, ok := dayYards[d]; ok {
			days = append(days, models.DayRoster{Day: d, Yards: yards})
		}
	}

	resp := models.ScheduleResponse{
		Status:      "success",
		Assignments: assignments,
		Roster:      models.RosterStructure{Days: days},
		Stats: &models.ScheduleStats{
			TotalAssignments:  len(assignments),
			ShiftsPerEmployee: shifts,
			SolveTimeSeconds:  time.Since(start).Seconds(),
		},
	}
	return resp, time.Since(start).Milliseconds(), nil
}

func dayAvailable(emp models.Employee, day models.DayOfWeek) bool {
	for _, d := range emp.AvailableDays {
		if d == day {
			return true
		}
	}
	return false
}

func yardExcluded(emp models.Employee, yardID int) bool {
	for _, id := range emp.ExcludedYards {
		if id == yardID {
			return true
		}
	}
	return false
}
