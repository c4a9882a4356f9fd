package planner

import (
	"github.com/yardroster/backend/internal/models"
)

// DefaultSettings are the stock global solve parameters.
func DefaultSettings() Settings {
	return Settings{
		MaxHoursPerDay:      7.0,
		EarliestStartTime:   "05:30:00",
		MaxRadius:           25,
		TravelBufferMinutes: 30,
	}
}

// DefaultEmployees is the stock crew shown before any saved state exists.
// Callers get a fresh copy; nothing here is shared mutable state.
func DefaultEmployees() []models.Employee {
	return []models.Employee{
		{ID: 1, Name: "Chris", Ranking: models.RankingExcellent,
			AvailableDays: []models.DayOfWeek{models.Monday, models.Wednesday, models.Friday},
			ExcludedYards: []int{}},
		{ID: 2, Name: "Vashaal", Ranking: models.RankingExcellent,
			AvailableDays: []models.DayOfWeek{},
			ExcludedYards: []int{}},
		{ID: 3, Name: "Paul", Ranking: models.RankingExcellent,
			AvailableDays: []models.DayOfWeek{models.Wednesday, models.Thursday, models.Friday, models.Saturday},
			ExcludedYards: []int{2, 3, 10}},
		{ID: 4, Name: "Nitish", Ranking: models.RankingExcellent,
			AvailableDays: []models.DayOfWeek{models.Tuesday, models.Thursday, models.Friday, models.Saturday},
			ExcludedYards: []int{}},
		{ID: 5, Name: "Sanskar", Ranking: models.RankingExcellent,
			AvailableDays: []models.DayOfWeek{models.Monday, models.Tuesday, models.Thursday, models.Friday},
			ExcludedYards: []int{}},
		{ID: 6, Name: "Sam", Ranking: models.RankingBelowAverage,
			AvailableDays: append([]models.DayOfWeek(nil), models.DaysOfWeek...),
			ExcludedYards: []int{}},
	}
}

// DefaultCarYards is the stock yard list shown before any saved state exists.
func DefaultCarYards() []models.CarYard {
	return []models.CarYard{
		{ID: 1, Name: "Adrien Brian", Priority: models.PriorityHigh, Region: models.RegionCentral,
			MinEmployees: 2, MaxEmployees: 3, HoursRequired: 7.5,
			PerWeek:            &models.PerWeek{VisitsRequired: 2, GapDays: 4},
			NorthSouthPosition: 25},
		{ID: 2, Name: "Reynella Kia", Priority: models.PriorityHigh, Region: models.RegionSouth,
			MinEmployees: 2, MaxEmployees: 3, HoursRequired: 6.0,
			LinkedYard:         &models.LinkedYard{OtherYardID: 3, GapDays: 3},
			PerWeek:            &models.PerWeek{VisitsRequired: 1},
			NorthSouthPosition: 30},
		{ID: 3, Name: "Reynella All", Priority: models.PriorityHigh, Region: models.RegionSouth,
			MinEmployees: 3, MaxEmployees: 4, HoursRequired: 12.0,
			PerWeek:            &models.PerWeek{VisitsRequired: 1},
			NorthSouthPosition: 30},
		{ID: 4, Name: "EasyAuto123 Tender", Priority: models.PriorityHigh, Region: models.RegionCentral,
			MinEmployees: 2, MaxEmployees: 3, HoursRequired: 8.0,
			RequiredDays:       []models.DayOfWeek{models.Monday},
			StartTime:          "08:30:00",
			PerWeek:            &models.PerWeek{VisitsRequired: 1},
			NorthSouthPosition: 15},
		{ID: 5, Name: "EasyAuto123 Warehouse", Priority: models.PriorityHigh, Region: models.RegionCentral,
			MinEmployees: 2, MaxEmployees: 2, HoursRequired: 3,
			RequiredDays:       []models.DayOfWeek{models.Friday},
			StartTime:          "08:30:00",
			PerWeek:            &models.PerWeek{VisitsRequired: 1},
			NorthSouthPosition: 15},
		{ID: 6, Name: "Hillcrest (New/Used)", Priority: models.PriorityHigh, Region: models.RegionNorth,
			MinEmployees: 2, MaxEmployees: 3, HoursRequired: 7,
			RequiredDays:       []models.DayOfWeek{models.Thursday},
			PerWeek:            &models.PerWeek{VisitsRequired: 1},
			NorthSouthPosition: 5},
		{ID: 7, Name: "Eblen Suburu (Soap)", Priority: models.PriorityHigh, Region: models.RegionCentral,
			MinEmployees: 1, MaxEmployees: 2, HoursRequired: 3.5,
			LinkedYard:         &models.LinkedYard{OtherYardID: 11, GapDays: 3},
			PerWeek:            &models.PerWeek{VisitsRequired: 1},
			NorthSouthPosition: 20},
		{ID: 9, Name: "MN Toyota (New/Used)", Priority: models.PriorityHigh, Region: models.RegionNorth,
			MinEmployees: 2, MaxEmployees: 3, HoursRequired: 6,
			RequiredDays:       []models.DayOfWeek{models.Friday},
			PerWeek:            &models.PerWeek{VisitsRequired: 1},
			NorthSouthPosition: 10},
		{ID: 10, Name: "MG Reynella", Priority: models.PriorityHigh, Region: models.RegionSouth,
			MinEmployees: 1, MaxEmployees: 2, HoursRequired: 5,
			RequiredDays:       []models.DayOfWeek{models.Thursday},
			PerWeek:            &models.PerWeek{VisitsRequired: 1},
			NorthSouthPosition: 30},
		{ID: 11, Name: "Eblen Suburu (Wipe)", Priority: models.PriorityHigh, Region: models.RegionCentral,
			MinEmployees: 1, MaxEmployees: 1, HoursRequired: 1.5,
			PerWeek:            &models.PerWeek{VisitsRequired: 1},
			NorthSouthPosition: 25},
	}
}
