package handlers

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/yardroster/backend/internal/models"
	"github.com/yardroster/backend/internal/planner"
	"github.com/yardroster/backend/internal/solver"
	"github.com/yardroster/backend/internal/store"
)

// Handler owns the scheduler state: the editable configuration, the global
// settings, and the last solved roster. All access goes through mu; the
// planner itself is not safe for concurrent use.
type Handler struct {
	Solver    solver.Adapter
	Snapshots *store.SnapshotStore
	Validator *validator.Validate
	Logger    zerolog.Logger
	Now       func() time.Time

	mu       sync.Mutex
	planner  *planner.Planner
	settings planner.Settings
	roster   models.ScheduleResponse
	solving  bool
}

func New(p *planner.Planner, settings planner.Settings, adapter solver.Adapter, snapshots *store.SnapshotStore, logger zerolog.Logger) *Handler {
	h := &Handler{
		Solver:    adapter,
		Snapshots: snapshots,
		Validator: validator.New(),
		Logger:    logger,
		Now:       time.Now,
		planner:   p,
		settings:  settings,
	}
	// The store swallows its first Schedule call as the echo of the state
	// it was constructed from. Feed it that echo now so the session's
	// first real edit is saved.
	h.mu.Lock()
	h.persist()
	h.mu.Unlock()
	return h
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// persist schedules a snapshot save and logs any dangling references the
// mutation left behind. Callers hold mu.
func (h *Handler) persist() {
	state := store.SchedulerState{
		Workers:           append([]models.Employee(nil), h.planner.Employees...),
		CarYards:          append([]models.CarYard(nil), h.planner.CarYards...),
		MaxHoursPerDay:    h.settings.MaxHoursPerDay,
		EarliestStartTime: h.settings.EarliestStartTime,
		MaxRadius:         h.settings.MaxRadius,
	}
	h.Snapshots.Schedule(state)

	for _, w := range h.planner.ValidateReferences() {
		h.Logger.Warn().
			Str("kind", w.Kind).
			Int("source_id", w.SourceID).
			Int("target_id", w.TargetID).
			Msg(w.Message)
	}
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Current scheduler configuration
// @Tags state
// @Produce json
// @Success 200 {object} store.SchedulerState
// @Router /api/state [get]
func (h *Handler) StateGet(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.JSON(http.StatusOK, store.SchedulerState{
		Workers:           append([]models.Employee{}, h.planner.Employees...),
		CarYards:          append([]models.CarYard{}, h.planner.CarYards...),
		MaxHoursPerDay:    h.settings.MaxHoursPerDay,
		EarliestStartTime: h.settings.EarliestStartTime,
		MaxRadius:         h.settings.MaxRadius,
	})
}

// @Summary Reset configuration to defaults
// @Tags state
// @Produce json
// @Success 200 {object} store.SchedulerState
// @Router /api/state/clear [post]
func (h *Handler) StateClear(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.Snapshots.Clear(c.Request.Context()); err != nil {
		h.Logger.Error().Err(err).Msg("snapshot clear failed")
	}
	h.planner = planner.New(planner.DefaultEmployees(), planner.DefaultCarYards())
	h.settings = planner.DefaultSettings()
	h.roster = models.ScheduleResponse{}

	// Clear re-arms the store's first-save skip; persisting the reset
	// state consumes it, so the next edit after a reset is saved.
	h.persist()

	c.JSON(http.StatusOK, store.SchedulerState{
		Workers:           append([]models.Employee{}, h.planner.Employees...),
		CarYards:          append([]models.CarYard{}, h.planner.CarYards...),
		MaxHoursPerDay:    h.settings.MaxHoursPerDay,
		EarliestStartTime: h.settings.EarliestStartTime,
		MaxRadius:         h.settings.MaxRadius,
	})
}

type createRequest struct {
	Name string `json:"name" validate:"required"`
}

// @Summary Add an employee
// @Tags employees
// @Accept json
// @Produce json
// @Success 201 {object} models.Employee
// @Failure 400 {object} map[string]any
// @Router /api/employees [post]
func (h *Handler) EmployeeCreate(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid JSON body", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "name required", err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	emp, err := h.planner.AddEmployee(req.Name)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	h.persist()
	c.JSON(http.StatusCreated, emp)
}

type employeePatch struct {
	Ranking            *models.Ranking `json:"ranking"`
	ToggleDay          *string         `json:"toggle_day"`
	ToggleExcludedYard *int            `json:"toggle_excluded_yard"`
	NotRegion          *models.Region  `json:"not_region"`
	ClearNotRegion     *bool           `json:"clear_not_region"`
}

// @Summary Update an employee
// @Tags employees
// @Accept json
// @Produce json
// @Success 200 {object} models.Employee
// @Failure 404 {object} map[string]any
// @Router /api/employees/{id} [patch]
func (h *Handler) EmployeePatch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req employeePatch
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid JSON body", err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, found := h.planner.FindEmployee(id); !found {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "employee not found", nil)
		return
	}

	if req.Ranking != nil {
		if !h.planner.SetRanking(id, *req.Ranking) {
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "unknown ranking", *req.Ranking)
			return
		}
	}
	if req.ToggleDay != nil {
		day := models.DayOfWeek(*req.ToggleDay)
		if models.DayIndex(day) < 0 {
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "unknown day", *req.ToggleDay)
			return
		}
		h.planner.ToggleAvailability(id, day)
	}
	if req.ToggleExcludedYard != nil {
		h.planner.ToggleExcludedYard(id, *req.ToggleExcludedYard)
	}
	if req.NotRegion != nil {
		if !h.planner.SetNotRegion(id, *req.NotRegion) {
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "unknown region", *req.NotRegion)
			return
		}
	}
	if req.ClearNotRegion != nil && *req.ClearNotRegion {
		h.planner.ClearNotRegion(id)
	}

	h.persist()
	emp, _ := h.planner.FindEmployee(id)
	c.JSON(http.StatusOK, emp)
}

// @Summary Remove an employee
// @Tags employees
// @Produce json
// @Success 204
// @Failure 404 {object} map[string]any
// @Router /api/employees/{id} [delete]
func (h *Handler) EmployeeDelete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.planner.RemoveEmployee(id) {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "employee not found", nil)
		return
	}
	h.persist()
	c.Status(http.StatusNoContent)
}

// @Summary Add a car yard
// @Tags car-yards
// @Accept json
// @Produce json
// @Success 201 {object} models.CarYard
// @Failure 400 {object} map[string]any
// @Router /api/car-yards [post]
func (h *Handler) CarYardCreate(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid JSON body", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "name required", err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	yard, err := h.planner.AddCarYard(req.Name)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	h.persist()
	c.JSON(http.StatusCreated, yard)
}

type linkedYardPatch struct {
	OtherYardID int `json:"other_yard_id"`
	GapDays     int `json:"gap_days"`
}

type carYardPatch struct {
	Priority          *models.Priority `json:"priority"`
	Region            *models.Region   `json:"region"`
	VisitsPerWeek     *int             `json:"visits_per_week"`
	VisitGapDays      *int             `json:"visit_gap_days"`
	MinEmployees      *int             `json:"min_employees"`
	MaxEmployees      *int             `json:"max_employees"`
	HoursRequired     *float64         `json:"hours_required"`
	LinkedYard        *linkedYardPatch `json:"linked_yard"`
	ClearLinkedYard   *bool            `json:"clear_linked_yard"`
	StartTime         *string          `json:"start_time"`
	ToggleRequiredDay *string          `json:"toggle_required_day"`
	NorthSouthPos     *int             `json:"north_south_position"`
}

// @Summary Update a car yard
// @Tags car-yards
// @Accept json
// @Produce json
// @Success 200 {object} models.CarYard
// @Failure 404 {object} map[string]any
// @Router /api/car-yards/{id} [patch]
func (h *Handler) CarYardPatch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req carYardPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid JSON body", err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, found := h.planner.FindCarYard(id); !found {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "car yard not found", nil)
		return
	}

	if req.Priority != nil {
		h.planner.UpdateCarYard(id, func(y models.CarYard) models.CarYard {
			y.Priority = *req.Priority
			return y
		})
	}
	if req.Region != nil {
		h.planner.UpdateCarYard(id, func(y models.CarYard) models.CarYard {
			y.Region = *req.Region
			return y
		})
	}
	if req.VisitsPerWeek != nil {
		h.planner.SetVisitsPerWeek(id, *req.VisitsPerWeek)
	}
	if req.VisitGapDays != nil {
		h.planner.SetVisitGapDays(id, *req.VisitGapDays)
	}
	if req.MinEmployees != nil {
		h.planner.SetMinEmployees(id, *req.MinEmployees)
	}
	if req.MaxEmployees != nil {
		h.planner.SetMaxEmployees(id, *req.MaxEmployees)
	}
	if req.HoursRequired != nil {
		h.planner.SetHoursRequired(id, *req.HoursRequired)
	}
	if req.LinkedYard != nil {
		if !h.planner.SetLinkedYard(id, req.LinkedYard.OtherYardID, req.LinkedYard.GapDays) {
			writeError(c, http.StatusBadRequest, "INVALID_REFERENCE", "linked yard must be a different existing yard", req.LinkedYard.OtherYardID)
			return
		}
	}
	if req.ClearLinkedYard != nil && *req.ClearLinkedYard {
		h.planner.ClearLinkedYard(id)
	}
	if req.StartTime != nil {
		h.planner.SetStartTimeOverride(id, *req.StartTime, h.settings.EarliestStartTime)
	}
	if req.ToggleRequiredDay != nil {
		day := models.DayOfWeek(*req.ToggleRequiredDay)
		if models.DayIndex(day) < 0 {
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "unknown day", *req.ToggleRequiredDay)
			return
		}
		h.planner.ToggleRequiredDay(id, day)
	}
	if req.NorthSouthPos != nil {
		h.planner.UpdateCarYard(id, func(y models.CarYard) models.CarYard {
			y.NorthSouthPosition = *req.NorthSouthPos
			return y
		})
	}

	h.persist()
	yard, _ := h.planner.FindCarYard(id)
	c.JSON(http.StatusOK, yard)
}

// @Summary Remove a car yard
// @Tags car-yards
// @Produce json
// @Success 204
// @Failure 404 {object} map[string]any
// @Router /api/car-yards/{id} [delete]
func (h *Handler) CarYardDelete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.planner.RemoveCarYard(id) {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "car yard not found", nil)
		return
	}
	h.persist()
	c.Status(http.StatusNoContent)
}

type settingsPatch struct {
	MaxHoursPerDay    *float64 `json:"maxHoursPerDay"`
	EarliestStartTime *string  `json:"earliestStartTime"`
	MaxRadius         *int     `json:"maxRadius"`
}

// @Summary Update global solve settings
// @Tags settings
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/settings [patch]
func (h *Handler) SettingsPatch(c *gin.Context) {
	var req settingsPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid JSON body", err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if req.MaxHoursPerDay != nil {
		v := *req.MaxHoursPerDay
		if v < 0 {
			v = 0
		}
		if v > 24 {
			v = 24
		}
		h.settings.MaxHoursPerDay = v
	}
	if req.EarliestStartTime != nil {
		h.settings.EarliestStartTime = *req.EarliestStartTime
	}
	if req.MaxRadius != nil {
		v := *req.MaxRadius
		if v < 0 {
			v = 0
		}
		h.settings.MaxRadius = v
	}

	h.persist()
	c.JSON(http.StatusOK, gin.H{
		"maxHoursPerDay":    h.settings.MaxHoursPerDay,
		"earliestStartTime": h.settings.EarliestStartTime,
		"maxRadius":         h.settings.MaxRadius,
	})
}

// @Summary Dangling reference report
// @Tags state
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/warnings [get]
func (h *Handler) Warnings(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	warnings := h.planner.ValidateReferences()
	if warnings == nil {
		warnings = []planner.RefWarning{}
	}
	c.JSON(http.StatusOK, gin.H{"warnings": warnings})
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "id must be an integer", c.Param("id"))
		return 0, false
	}
	return id, true
}
