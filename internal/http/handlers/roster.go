package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yardroster/backend/internal/export"
	"github.com/yardroster/backend/internal/models"
	"github.com/yardroster/backend/internal/roster"
	"github.com/yardroster/backend/internal/solver"
)

// @Summary Generate a roster via the external solver
// @Tags roster
// @Produce json
// @Success 200 {object} models.ScheduleResponse
// @Failure 409 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Failure 504 {object} map[string]any
// @Router /api/roster/generate [post]
func (h *Handler) RosterGenerate(c *gin.Context) {
	h.mu.Lock()
	if h.solving {
		h.mu.Unlock()
		writeError(c, http.StatusConflict, "SOLVE_IN_PROGRESS", "a roster generation is already running", nil)
		return
	}

	payload := h.planner.Payload(h.settings)
	for _, emp := range payload.Employees {
		if _, ok := models.RankingWireValue(emp.Ranking); !ok {
			h.mu.Unlock()
			writeError(c, http.StatusBadRequest, "INVALID_CONFIG", "employee has an unknown ranking", emp.Name)
			return
		}
	}
	h.solving = true
	h.mu.Unlock()

	resp, latency, err := h.Solver.Generate(c.Request.Context(), payload)

	h.mu.Lock()
	h.solving = false
	if err == nil {
		h.roster = resp
	}
	h.mu.Unlock()

	if err != nil {
		h.Logger.Error().Err(err).Int64("latency_ms", latency).Msg("solve failed")
		switch {
		case errors.Is(err, solver.ErrTimeout):
			writeError(c, http.StatusGatewayTimeout, "SOLVER_TIMEOUT", "the solver did not respond in time", err.Error())
		case errors.Is(err, solver.ErrBadResponse):
			writeError(c, http.StatusBadGateway, "SOLVER_BAD_RESPONSE", "the solver returned an unusable response", err.Error())
		default:
			writeError(c, http.StatusBadGateway, "SOLVER_ERROR", "roster generation failed", err.Error())
		}
		return
	}

	h.Logger.Info().Int64("latency_ms", latency).Int("assignments", len(resp.Assignments)).Msg("roster generated")
	c.JSON(http.StatusOK, resp)
}

// @Summary Current roster
// @Tags roster
// @Produce json
// @Success 200 {object} models.ScheduleResponse
// @Router /api/roster [get]
func (h *Handler) RosterGet(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.JSON(http.StatusOK, h.roster.Clone())
}

// @Summary Current roster grouped by employee
// @Tags roster
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/roster/by-employee [get]
func (h *Handler) RosterByEmployee(c *gin.Context) {
	h.mu.Lock()
	weeks := roster.GroupByEmployee(h.roster.Assignments)
	h.mu.Unlock()
	if weeks == nil {
		weeks = []roster.EmployeeWeek{}
	}
	c.JSON(http.StatusOK, gin.H{"employees": weeks})
}

type workerEdit struct {
	Day        string `json:"day" validate:"required"`
	CarYardID  int    `json:"car_yard_id" validate:"required"`
	WorkerName string `json:"worker_name" validate:"required"`
}

func (h *Handler) bindWorkerEdit(c *gin.Context) (workerEdit, models.DayOfWeek, bool) {
	var req workerEdit
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid JSON body", err.Error())
		return req, "", false
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "day, car_yard_id and worker_name required", err.Error())
		return req, "", false
	}
	day := models.DayOfWeek(req.Day)
	if models.DayIndex(day) < 0 {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "unknown day", req.Day)
		return req, "", false
	}
	return req, day, true
}

func (h *Handler) applyEdit(c *gin.Context, next models.ScheduleResponse, out roster.Outcome) {
	if out.Applied {
		h.roster = next
	}
	c.JSON(http.StatusOK, gin.H{"applied": out.Applied, "reason": out.Reason, "roster": h.roster.Clone()})
}

// @Summary Remove a worker from a shift
// @Tags roster
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/roster/remove-worker [post]
func (h *Handler) RosterRemoveWorker(c *gin.Context) {
	req, day, ok := h.bindWorkerEdit(c)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	eng := roster.NewEngine(h.planner.Employees)
	next, out := eng.RemoveWorker(h.roster, day, req.CarYardID, req.WorkerName)
	h.applyEdit(c, next, out)
}

// @Summary Add a worker to a shift
// @Tags roster
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/roster/add-worker [post]
func (h *Handler) RosterAddWorker(c *gin.Context) {
	req, day, ok := h.bindWorkerEdit(c)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	eng := roster.NewEngine(h.planner.Employees)
	next, out := eng.AddWorker(h.roster, day, req.CarYardID, req.WorkerName)
	h.applyEdit(c, next, out)
}

type moveShiftRequest struct {
	CarYardID   int    `json:"car_yard_id" validate:"required"`
	FromDay     string `json:"from_day" validate:"required"`
	ToDay       string `json:"to_day" validate:"required"`
	TargetIndex *int   `json:"target_index"`
}

// @Summary Move a yard's shift to another day
// @Tags roster
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/roster/move-shift [post]
func (h *Handler) RosterMoveShift(c *gin.Context) {
	var req moveShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid JSON body", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "car_yard_id, from_day and to_day required", err.Error())
		return
	}
	fromDay := models.DayOfWeek(req.FromDay)
	toDay := models.DayOfWeek(req.ToDay)
	if models.DayIndex(fromDay) < 0 || models.DayIndex(toDay) < 0 {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "unknown day", gin.H{"from_day": req.FromDay, "to_day": req.ToDay})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	eng := roster.NewEngine(h.planner.Employees)
	next, out := eng.MoveShift(h.roster, req.CarYardID, fromDay, toDay, req.TargetIndex)
	h.applyEdit(c, next, out)
}

// @Summary Download the roster as an xlsx timetable
// @Tags roster
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param include_times query bool false "add each block's time span to its cell"
// @Success 200
// @Router /api/roster/export [get]
func (h *Handler) RosterExport(c *gin.Context) {
	h.mu.Lock()
	days := h.roster.Clone().Roster.Days
	h.mu.Unlock()

	var cell export.CellFormatter
	if c.Query("include_times") == "true" {
		cell = export.CellTextWithTimes
	}

	now := h.Now()
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(now)+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := export.Write(c.Writer, days, now, cell); err != nil {
		h.Logger.Error().Err(err).Msg("export failed")
		c.Status(http.StatusInternalServerError)
	}
}
