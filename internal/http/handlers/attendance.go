package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/hongminglow/attendance-be/internal/http/respond"
	"github.com/hongminglow/attendance-be/internal/models"
	"github.com/hongminglow/attendance-be/internal/models/dto"
	"github.com/hongminglow/attendance-be/internal/service"
)

// AttendanceHandler owns clock-in, clock-out and history endpoints.
type AttendanceHandler struct {
	attendance *service.AttendanceService
	now        func() time.Time
	logger     *slog.Logger
}

// NewAttendanceHandler constructs the handler. now supplies the instant recorded for each request.
func NewAttendanceHandler(attendance *service.AttendanceService, now func() time.Time, logger *slog.Logger) *AttendanceHandler {
	if now == nil {
		now = time.Now
	}
	return &AttendanceHandler{attendance: attendance, now: now, logger: logger}
}

// Register attaches attendance routes to the mux.
func (h *AttendanceHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /attendance/in", h.handleIn)
	mux.HandleFunc("POST /attendance/out", h.handleOut)
	mux.HandleFunc("GET /attendance/{employee_id}", h.handleHistory)
}

func (h *AttendanceHandler) handleIn(w http.ResponseWriter, r *http.Request) {
	var req dto.AttendanceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if _, err := h.attendance.ClockIn(r.Context(), int64(req.EmployeeID), h.now()); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.MessageResponse{Message: "Attendance IN marked"})
}

func (h *AttendanceHandler) handleOut(w http.ResponseWriter, r *http.Request) {
	var req dto.AttendanceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	rec, err := h.attendance.ClockOut(r.Context(), int64(req.EmployeeID), h.now())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.ClockOutResponse{Message: "Attendance OUT marked", WorkingHours: *rec.WorkingHours})
}

func (h *AttendanceHandler) handleHistory(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(r.PathValue("employee_id"), 10, 64)
	if err != nil || employeeID <= 0 {
		respond.Error(w, http.StatusBadRequest, "invalid employee_id")
		return
	}
	from, to, ok := parseRange(w, r)
	if !ok {
		return
	}
	recs, err := h.attendance.History(r.Context(), employeeID, from, to)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, recs)
}

// parseRange reads optional from/to query dates, writing a 400 on malformed input.
func parseRange(w http.ResponseWriter, r *http.Request) (from, to models.Date, ok bool) {
	var err error
	if v := r.URL.Query().Get("from"); v != "" {
		if from, err = models.ParseDate(v); err != nil {
			respond.Error(w, http.StatusBadRequest, "from must be YYYY-MM-DD")
			return from, to, false
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if to, err = models.ParseDate(v); err != nil {
			respond.Error(w, http.StatusBadRequest, "to must be YYYY-MM-DD")
			return from, to, false
		}
	}
	return from, to, true
}
