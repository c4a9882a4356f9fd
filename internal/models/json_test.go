package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPerWeekMarshalsAsPair(t *testing.T) {
	yard := CarYard{
		ID: 1, Name: "Northside", Priority: PriorityHigh, Region: RegionNorth,
		MinEmployees: 1, MaxEmployees: 2, HoursRequired: 3,
		PerWeek:    &PerWeek{VisitsRequired: 2, GapDays: 4},
		LinkedYard: &LinkedYard{OtherYardID: 3, GapDays: 1},
	}
	b, err := json.Marshal(yard)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, `"per_week":[2,4]`) {
		t.Fatalf("per_week not a pair: %s", s)
	}
	if !strings.Contains(s, `"linked_yard":[3,1]`) {
		t.Fatalf("linked_yard not a pair: %s", s)
	}

	var back CarYard
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if *back.PerWeek != (PerWeek{2, 4}) || *back.LinkedYard != (LinkedYard{3, 1}) {
		t.Fatalf("round trip: %+v %+v", back.PerWeek, back.LinkedYard)
	}
}

func TestPerWeekUnmarshalRejectsWrongArity(t *testing.T) {
	var pw PerWeek
	if err := json.Unmarshal([]byte(`[1]`), &pw); err == nil {
		t.Fatalf("one element accepted")
	}
	if err := json.Unmarshal([]byte(`[1,2,3]`), &pw); err == nil {
		t.Fatalf("three elements accepted")
	}
	var ly LinkedYard
	if err := json.Unmarshal([]byte(`[]`), &ly); err == nil {
		t.Fatalf("empty array accepted")
	}
}

func TestStartTimeKeyIsCamelCase(t *testing.T) {
	b, _ := json.Marshal(CarYard{ID: 1, Name: "Y", StartTime: "08:30:00"})
	if !strings.Contains(string(b), `"startTime":"08:30:00"`) {
		t.Fatalf("startTime key missing: %s", b)
	}

	b, _ = json.Marshal(CarYard{ID: 1, Name: "Y"})
	if strings.Contains(string(b), "startTime") {
		t.Fatalf("empty startTime should be omitted: %s", b)
	}
}

func TestRankingWireValues(t *testing.T) {
	cases := map[Ranking]int{
		RankingExcellent:    10,
		RankingAcceptable:   7,
		RankingBelowAverage: 5,
	}
	for r, want := range cases {
		got, ok := RankingWireValue(r)
		if !ok || got != want {
			t.Fatalf("RankingWireValue(%s) = %d, %v", r, got, ok)
		}
	}
	if _, ok := RankingWireValue("superb"); ok {
		t.Fatalf("unknown ranking mapped")
	}
}

func TestDayIndex(t *testing.T) {
	if DayIndex(Monday) != 0 || DayIndex(Saturday) != 5 {
		t.Fatalf("canonical order broken")
	}
	if DayIndex("sunday") != -1 {
		t.Fatalf("sunday should not index")
	}
}

func TestScheduleResponseCloneIsDeep(t *testing.T) {
	orig := ScheduleResponse{
		Status: "success",
		Assignments: []Assignment{
			{EmployeeID: 1, EmployeeName: "Chris", CarYardID: 1, Day: Monday},
		},
		Roster: RosterStructure{Days: []DayRoster{
			{Day: Monday, Yards: []YardSchedule{
				{CarYardID: 1, CarYardName: "Y", Workers: []string{"Chris"}},
			}},
		}},
	}

	clone := orig.Clone()
	clone.Roster.Days[0].Yards[0].Workers[0] = "Paul"
	clone.Assignments[0].Day = Friday

	if orig.Roster.Days[0].Yards[0].Workers[0] != "Chris" {
		t.Fatalf("workers aliased")
	}
	if orig.Assignments[0].Day != Monday {
		t.Fatalf("assignments aliased")
	}
}

func TestLoaded(t *testing.T) {
	var nilResp *ScheduleResponse
	if nilResp.Loaded() {
		t.Fatalf("nil loaded")
	}
	empty := ScheduleResponse{Status: "success"}
	if empty.Loaded() {
		t.Fatalf("empty loaded")
	}
	withDays := ScheduleResponse{Roster: RosterStructure{Days: []DayRoster{{Day: Monday}}}}
	if !withDays.Loaded() {
		t.Fatalf("roster days should count as loaded")
	}
}
