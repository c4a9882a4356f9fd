package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yardroster/backend/internal/models"
	"github.com/yardroster/backend/internal/planner"
	"github.com/yardroster/backend/internal/solver"
	"github.com/yardroster/backend/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type nullBackend struct{}

func (nullBackend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (nullBackend) Save(ctx context.Context, key string, data []byte) error {
	return nil
}

func (nullBackend) Clear(ctx context.Context, key string) error {
	return nil
}

func (nullBackend) Close() {}

// recordingBackend captures saved snapshots for persistence assertions.
type recordingBackend struct {
	mu   sync.Mutex
	data []byte
}

func (r *recordingBackend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.data == nil {
		return nil, false, nil
	}
	return r.data, true, nil
}

func (r *recordingBackend) Save(ctx context.Context, key string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append([]byte(nil), data...)
	return nil
}

func (r *recordingBackend) Clear(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = nil
	return nil
}

func (r *recordingBackend) Close() {}

func (r *recordingBackend) savedState(t *testing.T) (store.SchedulerState, bool) {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.data == nil {
		return store.SchedulerState{}, false
	}
	var state store.SchedulerState
	if err := json.Unmarshal(r.data, &state); err != nil {
		t.Fatalf("unmarshal saved state: %v", err)
	}
	return state, true
}

func newTestHandler(adapter solver.Adapter) *Handler {
	return newTestHandlerWithBackend(adapter, nullBackend{})
}

func newTestHandlerWithBackend(adapter solver.Adapter, backend store.Backend) *Handler {
	p := planner.New(
		[]models.Employee{
			{ID: 1, Name: "Chris", Ranking: models.RankingExcellent,
				AvailableDays: append([]models.DayOfWeek(nil), models.DaysOfWeek...), ExcludedYards: []int{}},
		},
		[]models.CarYard{
			{ID: 1, Name: "Northside", Priority: models.PriorityHigh, Region: models.RegionNorth,
				MinEmployees: 1, MaxEmployees: 2, HoursRequired: 3, NorthSouthPosition: 5},
		},
	)
	snapshots := store.NewSnapshotStore(backend, time.Millisecond, zerolog.Nop())
	return New(p, planner.DefaultSettings(), adapter, snapshots, zerolog.Nop())
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func testRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.GET("/healthz", h.Healthz)
	r.GET("/api/state", h.StateGet)
	r.POST("/api/state/clear", h.StateClear)
	r.POST("/api/employees", h.EmployeeCreate)
	r.PATCH("/api/employees/:id", h.EmployeePatch)
	r.DELETE("/api/employees/:id", h.EmployeeDelete)
	r.POST("/api/car-yards", h.CarYardCreate)
	r.PATCH("/api/car-yards/:id", h.CarYardPatch)
	r.DELETE("/api/car-yards/:id", h.CarYardDelete)
	r.PATCH("/api/settings", h.SettingsPatch)
	r.GET("/api/warnings", h.Warnings)
	r.POST("/api/roster/generate", h.RosterGenerate)
	r.GET("/api/roster", h.RosterGet)
	r.POST("/api/roster/add-worker", h.RosterAddWorker)
	r.POST("/api/roster/remove-worker", h.RosterRemoveWorker)
	r.POST("/api/roster/move-shift", h.RosterMoveShift)
	return r
}

func TestHealthz(t *testing.T) {
	r := testRouter(newTestHandler(solver.MockAdapter{}))
	w := doJSON(t, r, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestEmployeeLifecycle(t *testing.T) {
	r := testRouter(newTestHandler(solver.MockAdapter{}))

	w := doJSON(t, r, http.MethodPost, "/api/employees", gin.H{"name": "Paul"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body)
	}
	var emp models.Employee
	if err := json.Unmarshal(w.Body.Bytes(), &emp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if emp.ID != 2 || emp.Ranking != models.RankingBelowAverage {
		t.Fatalf("unexpected employee: %+v", emp)
	}
	if len(emp.AvailableDays) != len(models.DaysOfWeek) {
		t.Fatalf("new employee should be available all days: %v", emp.AvailableDays)
	}

	w = doJSON(t, r, http.MethodPatch, "/api/employees/2", gin.H{"ranking": "acceptable", "toggle_day": "monday"})
	if w.Code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d: %s", w.Code, w.Body)
	}
	json.Unmarshal(w.Body.Bytes(), &emp)
	if emp.Ranking != models.RankingAcceptable {
		t.Fatalf("ranking = %s", emp.Ranking)
	}
	for _, d := range emp.AvailableDays {
		if d == models.Monday {
			t.Fatalf("monday should have been toggled off")
		}
	}

	w = doJSON(t, r, http.MethodPatch, "/api/employees/2", gin.H{"ranking": "superb"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad ranking: expected 400, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/employees/2", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodDelete, "/api/employees/2", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", w.Code)
	}
}

func TestEmployeePatchNotRegion(t *testing.T) {
	r := testRouter(newTestHandler(solver.MockAdapter{}))

	w := doJSON(t, r, http.MethodPatch, "/api/employees/1", gin.H{"not_region": "south"})
	if w.Code != http.StatusOK {
		t.Fatalf("set: expected 200, got %d: %s", w.Code, w.Body)
	}
	var emp models.Employee
	json.Unmarshal(w.Body.Bytes(), &emp)
	if emp.NotRegion == nil || *emp.NotRegion != models.RegionSouth {
		t.Fatalf("not_region = %v, want south", emp.NotRegion)
	}

	w = doJSON(t, r, http.MethodPatch, "/api/employees/1", gin.H{"not_region": "outback"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown region: expected 400, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPatch, "/api/employees/1", gin.H{"clear_not_region": true})
	if w.Code != http.StatusOK {
		t.Fatalf("clear: expected 200, got %d", w.Code)
	}
	emp = models.Employee{}
	json.Unmarshal(w.Body.Bytes(), &emp)
	if emp.NotRegion != nil {
		t.Fatalf("not_region survived clear: %v", *emp.NotRegion)
	}
}

func TestEmployeeCreateRequiresName(t *testing.T) {
	r := testRouter(newTestHandler(solver.MockAdapter{}))
	w := doJSON(t, r, http.MethodPost, "/api/employees", gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/api/employees", gin.H{"name": "   "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("whitespace name: expected 400, got %d", w.Code)
	}
}

func TestCarYardPatchClampsAndLinks(t *testing.T) {
	h := newTestHandler(solver.MockAdapter{})
	r := testRouter(h)

	w := doJSON(t, r, http.MethodPost, "/api/car-yards", gin.H{"name": "Central"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPatch, "/api/car-yards/1", gin.H{
		"visits_per_week": 9,
		"hours_required":  30.0,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d: %s", w.Code, w.Body)
	}
	var yard models.CarYard
	json.Unmarshal(w.Body.Bytes(), &yard)
	if yard.PerWeek == nil || yard.PerWeek.VisitsRequired != 3 {
		t.Fatalf("visits should clamp to 3: %+v", yard.PerWeek)
	}
	if yard.HoursRequired != 24 {
		t.Fatalf("hours should clamp to 24, got %v", yard.HoursRequired)
	}

	// Self-link rejected, valid link accepted.
	w = doJSON(t, r, http.MethodPatch, "/api/car-yards/1", gin.H{
		"linked_yard": gin.H{"other_yard_id": 1, "gap_days": 2},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("self link: expected 400, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodPatch, "/api/car-yards/1", gin.H{
		"linked_yard": gin.H{"other_yard_id": 2, "gap_days": 12},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("link: expected 200, got %d: %s", w.Code, w.Body)
	}
	json.Unmarshal(w.Body.Bytes(), &yard)
	if yard.LinkedYard == nil || yard.LinkedYard.OtherYardID != 2 || yard.LinkedYard.GapDays != 7 {
		t.Fatalf("linked yard = %+v, want other=2 gap clamped to 7", yard.LinkedYard)
	}
}

func TestWarningsReportDanglingReferences(t *testing.T) {
	h := newTestHandler(solver.MockAdapter{})
	r := testRouter(h)

	w := doJSON(t, r, http.MethodPatch, "/api/employees/1", gin.H{"toggle_excluded_yard": 99})
	if w.Code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/warnings", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("warnings: expected 200, got %d", w.Code)
	}
	var resp struct {
		Warnings []planner.RefWarning `json:"warnings"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Warnings) != 1 || resp.Warnings[0].Kind != "excluded_yard" || resp.Warnings[0].TargetID != 99 {
		t.Fatalf("warnings = %+v", resp.Warnings)
	}
}

func TestSettingsPatch(t *testing.T) {
	r := testRouter(newTestHandler(solver.MockAdapter{}))
	w := doJSON(t, r, http.MethodPatch, "/api/settings", gin.H{"maxHoursPerDay": 99.0, "maxRadius": 40})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["maxHoursPerDay"].(float64) != 24 {
		t.Fatalf("maxHoursPerDay = %v, want clamped 24", resp["maxHoursPerDay"])
	}
	if resp["maxRadius"].(float64) != 40 {
		t.Fatalf("maxRadius = %v", resp["maxRadius"])
	}
}

func TestGenerateAndEditRoster(t *testing.T) {
	h := newTestHandler(solver.MockAdapter{})
	r := testRouter(h)

	w := doJSON(t, r, http.MethodPost, "/api/roster/generate", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("generate: expected 200, got %d: %s", w.Code, w.Body)
	}
	var resp models.ScheduleResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Loaded() {
		t.Fatalf("empty roster from mock")
	}

	day := resp.Roster.Days[0].Day
	w = doJSON(t, r, http.MethodPost, "/api/roster/remove-worker", gin.H{
		"day": string(day), "car_yard_id": 1, "worker_name": "Chris",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("remove: expected 200, got %d: %s", w.Code, w.Body)
	}
	var edit struct {
		Applied bool                    `json:"applied"`
		Roster  models.ScheduleResponse `json:"roster"`
	}
	json.Unmarshal(w.Body.Bytes(), &edit)
	if !edit.Applied {
		t.Fatalf("remove not applied: %s", w.Body)
	}
	for _, a := range edit.Roster.Assignments {
		if a.EmployeeID == 1 && a.Day == day && a.CarYardID == 1 {
			t.Fatalf("assignment survived removal")
		}
	}

	w = doJSON(t, r, http.MethodPost, "/api/roster/add-worker", gin.H{
		"day": string(day), "car_yard_id": 1, "worker_name": "Chris",
	})
	json.Unmarshal(w.Body.Bytes(), &edit)
	if !edit.Applied {
		t.Fatalf("add not applied: %s", w.Body)
	}

	w = doJSON(t, r, http.MethodPost, "/api/roster/move-shift", gin.H{
		"car_yard_id": 1, "from_day": string(day), "to_day": "saturday",
	})
	json.Unmarshal(w.Body.Bytes(), &edit)
	if !edit.Applied {
		t.Fatalf("move not applied: %s", w.Body)
	}
	for _, a := range edit.Roster.Assignments {
		if a.CarYardID == 1 && a.Day != models.Saturday {
			t.Fatalf("assignment day not rewritten: %+v", a)
		}
	}
}

func TestEditRequiresKnownDay(t *testing.T) {
	r := testRouter(newTestHandler(solver.MockAdapter{}))
	w := doJSON(t, r, http.MethodPost, "/api/roster/add-worker", gin.H{
		"day": "sunday", "car_yard_id": 1, "worker_name": "Chris",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

// slowAdapter blocks until released so concurrent generates overlap.
type slowAdapter struct {
	release chan struct{}
}

func (s slowAdapter) Generate(ctx context.Context, payload models.ScheduleRequestPayload) (models.ScheduleResponse, int64, error) {
	<-s.release
	return solver.MockAdapter{}.Generate(ctx, payload)
}

func TestGenerateRejectsConcurrentSolve(t *testing.T) {
	adapter := slowAdapter{release: make(chan struct{})}
	h := newTestHandler(adapter)
	r := testRouter(h)

	var wg sync.WaitGroup
	wg.Add(1)
	first := httptest.NewRecorder()
	go func() {
		defer wg.Done()
		req, _ := http.NewRequest(http.MethodPost, "/api/roster/generate", nil)
		r.ServeHTTP(first, req)
	}()

	// Wait for the first solve to take the slot.
	deadline := time.Now().Add(time.Second)
	for {
		h.mu.Lock()
		solving := h.solving
		h.mu.Unlock()
		if solving {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("first solve never started")
		}
		time.Sleep(time.Millisecond)
	}

	second := doJSON(t, r, http.MethodPost, "/api/roster/generate", nil)
	if second.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", second.Code)
	}

	close(adapter.release)
	wg.Wait()
	if first.Code != http.StatusOK {
		t.Fatalf("first solve: expected 200, got %d", first.Code)
	}
}

func TestFirstEditOfSessionPersisted(t *testing.T) {
	backend := &recordingBackend{}
	h := newTestHandlerWithBackend(solver.MockAdapter{}, backend)
	r := testRouter(h)

	w := doJSON(t, r, http.MethodPost, "/api/employees", gin.H{"name": "Paul"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", w.Code)
	}
	h.Snapshots.Flush()

	state, ok := backend.savedState(t)
	if !ok {
		t.Fatalf("the only edit of the session was never persisted")
	}
	found := false
	for _, emp := range state.Workers {
		if emp.Name == "Paul" {
			found = true
		}
	}
	if !found {
		t.Fatalf("saved workers = %+v, want Paul included", state.Workers)
	}
}

func TestFirstEditAfterClearPersisted(t *testing.T) {
	backend := &recordingBackend{}
	h := newTestHandlerWithBackend(solver.MockAdapter{}, backend)
	r := testRouter(h)

	w := doJSON(t, r, http.MethodPost, "/api/state/clear", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("clear: expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/employees", gin.H{"name": "Paul"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", w.Code)
	}
	h.Snapshots.Flush()

	state, ok := backend.savedState(t)
	if !ok {
		t.Fatalf("the first edit after a reset was never persisted")
	}
	found := false
	for _, emp := range state.Workers {
		if emp.Name == "Paul" {
			found = true
		}
	}
	if !found {
		t.Fatalf("saved workers = %+v, want Paul included", state.Workers)
	}
}

func TestStateClearResetsToDefaults(t *testing.T) {
	h := newTestHandler(solver.MockAdapter{})
	r := testRouter(h)

	doJSON(t, r, http.MethodPost, "/api/employees", gin.H{"name": "Extra"})
	w := doJSON(t, r, http.MethodPost, "/api/state/clear", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("clear: expected 200, got %d", w.Code)
	}
	var state store.SchedulerState
	json.Unmarshal(w.Body.Bytes(), &state)
	if len(state.Workers) != len(planner.DefaultEmployees()) {
		t.Fatalf("workers = %d, want defaults", len(state.Workers))
	}

	w = doJSON(t, r, http.MethodGet, "/api/roster", nil)
	var roster models.ScheduleResponse
	json.Unmarshal(w.Body.Bytes(), &roster)
	if roster.Loaded() {
		t.Fatalf("roster should be empty after clear")
	}
}
