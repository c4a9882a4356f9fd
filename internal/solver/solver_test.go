package solver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/yardroster/backend/internal/models"
)

func testPayload() models.ScheduleRequestPayload {
	return models.ScheduleRequestPayload{
		Employees: []models.Employee{
			{ID: 1, Name: "Chris", Ranking: models.RankingExcellent,
				AvailableDays: []models.DayOfWeek{models.Monday, models.Wednesday}, ExcludedYards: []int{}},
			{ID: 2, Name: "Paul", Ranking: models.RankingAcceptable,
				AvailableDays: append([]models.DayOfWeek(nil), models.DaysOfWeek...), ExcludedYards: []int{7}},
		},
		CarYards: []models.CarYard{
			{ID: 7, Name: "Northside", Priority: models.PriorityHigh, Region: models.RegionNorth,
				MinEmployees: 1, MaxEmployees: 2, HoursRequired: 3,
				RequiredDays: []models.DayOfWeek{models.Monday}, NorthSouthPosition: 5},
		},
		Days:              append([]models.DayOfWeek(nil), models.DaysOfWeek...),
		MaxHoursPerDay:    7,
		EarliestStartTime: "05:30:00",
		MaxRadius:         25,
	}
}

func TestEncodeRequestRankingCodes(t *testing.T) {
	b, err := EncodeRequest(testPayload())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var decoded struct {
		Employees []struct {
			Name    string `json:"name"`
			Ranking int    `json:"ranking"`
		} `json:"employees"`
	}
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := map[string]int{"Chris": 10, "Paul": 7}
	for _, e := range decoded.Employees {
		if want[e.Name] != e.Ranking {
			t.Fatalf("%s ranking = %d, want %d", e.Name, e.Ranking, want[e.Name])
		}
	}
}

func TestEncodeRequestUnknownRanking(t *testing.T) {
	p := testPayload()
	p.Employees[0].Ranking = "superb"
	if _, err := EncodeRequest(p); err == nil {
		t.Fatalf("expected error for unknown ranking")
	}
}

func TestEncodeRequestNilSlicesBecomeEmpty(t *testing.T) {
	p := testPayload()
	p.Employees[0].AvailableDays = nil
	p.Employees[0].ExcludedYards = nil

	b, err := EncodeRequest(p)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	s := string(b)
	if strings.Contains(s, `"available_days":null`) || strings.Contains(s, `"excluded_yards":null`) {
		t.Fatalf("nil slices leaked into payload: %s", s)
	}
}

func TestHTTPAdapterSuccess(t *testing.T) {
	want := models.ScheduleResponse{
		Status: "success",
		Assignments: []models.Assignment{
			{EmployeeID: 1, EmployeeName: "Chris", CarYardID: 7, CarYardName: "Northside",
				Day: models.Monday, StartTime: "05:30:00", FinishTime: "08:30:00"},
		},
		Roster: models.RosterStructure{Days: []models.DayRoster{
			{Day: models.Monday, Yards: []models.YardSchedule{
				{CarYardID: 7, CarYardName: "Northside", Workers: []string{"Chris"},
					StartTime: "05:30:00", FinishTime: "08:30:00"},
			}},
		}},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/generate_roster" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	adapter := HTTPAdapter{BaseURL: srv.URL, Endpoint: "/generate_roster"}
	got, latency, err := adapter.Generate(context.Background(), testPayload())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if latency < 0 {
		t.Fatalf("latency = %d", latency)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("response mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestHTTPAdapterNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no feasible roster", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	adapter := HTTPAdapter{BaseURL: srv.URL, Endpoint: "/generate_roster"}
	_, _, err := adapter.Generate(context.Background(), testPayload())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "422") {
		t.Fatalf("error should carry the status code, got: %v", err)
	}
}

func TestHTTPAdapterBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer srv.Close()

	adapter := HTTPAdapter{BaseURL: srv.URL, Endpoint: "/generate_roster"}
	_, _, err := adapter.Generate(context.Background(), testPayload())
	if !errors.Is(err, ErrBadResponse) {
		t.Fatalf("err = %v, want ErrBadResponse", err)
	}
}

func TestHTTPAdapterTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	adapter := HTTPAdapter{BaseURL: srv.URL, Endpoint: "/generate_roster", Timeout: 50 * time.Millisecond}
	_, _, err := adapter.Generate(context.Background(), testPayload())
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}

func TestHTTPAdapterUnknownRankingAbortsBeforeRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	p := testPayload()
	p.Employees[0].Ranking = "superb"
	adapter := HTTPAdapter{BaseURL: srv.URL, Endpoint: "/generate_roster"}
	if _, _, err := adapter.Generate(context.Background(), p); err == nil {
		t.Fatalf("expected error")
	}
	if called {
		t.Fatalf("request must not be sent with an unmappable ranking")
	}
}

func TestMockAdapterDeterministic(t *testing.T) {
	mock := MockAdapter{}
	a, _, err := mock.Generate(context.Background(), testPayload())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, _, err := mock.Generate(context.Background(), testPayload())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	a.Stats, b.Stats = nil, nil
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("mock roster not deterministic")
	}
}

func TestMockAdapterHonorsConstraints(t *testing.T) {
	resp, _, err := MockAdapter{}.Generate(context.Background(), testPayload())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !resp.Loaded() {
		t.Fatalf("empty roster")
	}

	// Yard 7 requires monday only; Paul excludes it, Chris works mondays.
	if len(resp.Roster.Days) != 1 || resp.Roster.Days[0].Day != models.Monday {
		t.Fatalf("days = %+v", resp.Roster.Days)
	}
	yard := resp.Roster.Days[0].Yards[0]
	if !reflect.DeepEqual(yard.Workers, []string{"Chris"}) {
		t.Fatalf("workers = %v, want [Chris]", yard.Workers)
	}
	if yard.StartTime != "05:30:00" || yard.FinishTime != "08:30:00" {
		t.Fatalf("times = %s-%s", yard.StartTime, yard.FinishTime)
	}

	// Every assignment mirrors a listed worker.
	for _, a := range resp.Assignments {
		found := false
		for _, d := range resp.Roster.Days {
			if d.Day != a.Day {
				continue
			}
			for _, y := range d.Yards {
				if y.CarYardID != a.CarYardID {
					continue
				}
				for _, w := range y.Workers {
					if w == a.EmployeeName {
						found = true
					}
				}
			}
		}
		if !found {
			t.Fatalf("assignment %+v has no matching roster entry", a)
		}
	}
}
