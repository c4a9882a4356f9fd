package models

// DayOfWeek is one of the six working days. Sunday is never rostered.
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
)

// DaysOfWeek is the canonical working-week order. Day sets are always kept
// in this order no matter what order the days were toggled in.
var DaysOfWeek = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// DayIndex returns the position of day in the canonical week, or -1.
func DayIndex(day DayOfWeek) int {
	for i, d := range DaysOfWeek {
		if d == day {
			return i
		}
	}
	return -1
}

// Ranking is an employee reliability tier. On the wire it becomes an
// integer code, see RankingWireValue.
type Ranking string

const (
	RankingExcellent    Ranking = "excellent"
	RankingAcceptable   Ranking = "acceptable"
	RankingBelowAverage Ranking = "below_average"
)

var rankingWireValues = map[Ranking]int{
	RankingExcellent:    10,
	RankingAcceptable:   7,
	RankingBelowAverage: 5,
}

// RankingWireValue translates a ranking to the integer code the solver
// expects. Anything outside the fixed table is a hard error at request time.
func RankingWireValue(r Ranking) (int, bool) {
	v, ok := rankingWireValues[r]
	return v, ok
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Region string

const (
	RegionNorth   Region = "north"
	RegionCentral Region = "central"
	RegionSouth   Region = "south"
)

// ValidRegion reports whether r is one of the known regions.
func ValidRegion(r Region) bool {
	switch r {
	case RegionNorth, RegionCentral, RegionSouth:
		return true
	}
	return false
}

type Employee struct {
	ID            int         `json:"id"`
	Name          string      `json:"name"`
	Ranking       Ranking     `json:"ranking"`
	AvailableDays []DayOfWeek `json:"available_days"`
	NotRegion     *Region     `json:"not_region,omitempty"`
	ExcludedYards []int       `json:"excluded_yards"`
}

// PerWeek is the optional repeat-visit constraint for a yard. GapDays is
// only meaningful when VisitsRequired > 1.
type PerWeek struct {
	VisitsRequired int
	GapDays        int
}

// LinkedYard is a directed "must be visited N days apart" edge to another
// yard. Cycles are possible and treated as independent edges, never a chain.
type LinkedYard struct {
	OtherYardID int
	GapDays     int
}

type CarYard struct {
	ID                 int         `json:"id"`
	Name               string      `json:"name"`
	Priority           Priority    `json:"priority"`
	Region             Region      `json:"region"`
	MinEmployees       int         `json:"min_employees"`
	MaxEmployees       int         `json:"max_employees"`
	HoursRequired      float64     `json:"hours_required"`
	RequiredDays       []DayOfWeek `json:"required_days,omitempty"`
	PerWeek            *PerWeek    `json:"per_week,omitempty"`
	LinkedYard         *LinkedYard `json:"linked_yard,omitempty"`
	StartTime          string      `json:"startTime,omitempty"` // "HH:MM:SS", overrides the global earliest start
	NorthSouthPosition int         `json:"north_south_position"`
}

type ScheduleRequestPayload struct {
	Employees           []Employee  `json:"employees"`
	CarYards            []CarYard   `json:"car_yards"`
	Days                []DayOfWeek `json:"days"`
	MaxHoursPerDay      float64     `json:"max_hours_per_day,omitempty"`
	EarliestStartTime   string      `json:"earliest_start_time,omitempty"` // "HH:MM:SS"
	TravelBufferMinutes int         `json:"travel_buffer_minutes,omitempty"`
	MaxRadius           int         `json:"max_radius,omitempty"`
}

type Assignment struct {
	EmployeeID   int       `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	CarYardID    int       `json:"car_yard_id"`
	CarYardName  string    `json:"car_yard_name"`
	Day          DayOfWeek `json:"day"`
	StartTime    string    `json:"start_time"`
	FinishTime   string    `json:"finish_time"`
}

type YardSchedule struct {
	CarYardID   int      `json:"car_yard_id"`
	CarYardName string   `json:"car_yard_name"`
	Workers     []string `json:"workers"`
	StartTime   string   `json:"start_time"`
	FinishTime  string   `json:"finish_time"`
}

type DayRoster struct {
	Day   DayOfWeek      `json:"day"`
	Yards []YardSchedule `json:"yards"`
}

type RosterStructure struct {
	Days []DayRoster `json:"days"`
}

// YardTimeblock is a solver-side stats record for one yard-day block.
type YardTimeblock struct {
	CarYardID          int     `json:"car_yard_id"`
	CarYardName        string  `json:"car_yard_name"`
	Day                string  `json:"day"`
	StartTime          string  `json:"start_time"`
	FinishTime         string  `json:"finish_time"`
	Employees          []int   `json:"employees"`
	MinutesPerEmployee int     `json:"minutes_per_employee"`
	PerEmployeeHours   float64 `json:"per_employee_hours"`
}

type ScheduleStats struct {
	TotalAssignments    int                `json:"total_assignments"`
	ShiftsPerEmployee   map[int]int        `json:"shifts_per_employee"`
	YardsCovered        map[string]int     `json:"yards_covered"`
	HoursPerEmployeeDay map[string]float64 `json:"hours_per_employee_day"`
	YardTimeblocks      []YardTimeblock    `json:"yard_timeblocks"`
	SolveTimeSeconds    float64            `json:"solve_time_seconds"`
}

type ScheduleResponse struct {
	Status      string          `json:"status"`
	Assignments []Assignment    `json:"assignments,omitempty"`
	Roster      RosterStructure `json:"roster"`
	Stats       *ScheduleStats  `json:"stats,omitempty"`
}

// Loaded reports whether the response carries at least one of the two
// roster representations. Before the first solve both are empty.
func (r *ScheduleResponse) Loaded() bool {
	if r == nil {
		return false
	}
	return len(r.Roster.Days) > 0 || len(r.Assignments) > 0
}

// Clone returns a deep copy so local roster edits never alias the
// previous state.
func (r ScheduleResponse) Clone() ScheduleResponse {
	out := r
	out.Roster.Days = make([]DayRoster, len(r.Roster.Days))
	for i, d := range r.Roster.Days {
		nd := d
		nd.Yards = make([]YardSchedule, len(d.Yards))
		for j, y := range d.Yards {
			ny := y
			ny.Workers = append([]string(nil), y.Workers...)
			nd.Yards[j] = ny
		}
		out.Roster.Days[i] = nd
	}
	out.Assignments = append([]Assignment(nil), r.Assignments...)
	return out
}
