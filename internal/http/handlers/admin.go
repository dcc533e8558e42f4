package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hongminglow/attendance-be/internal/http/respond"
	"github.com/hongminglow/attendance-be/internal/middleware"
	"github.com/hongminglow/attendance-be/internal/models/dto"
	"github.com/hongminglow/attendance-be/internal/report"
	"github.com/hongminglow/attendance-be/internal/service"
)

// AdminHandler owns approval and export endpoints.
type AdminHandler struct {
	accounts   *service.AccountService
	attendance *service.AttendanceService
	logger     *slog.Logger
}

func NewAdminHandler(accounts *service.AccountService, attendance *service.AttendanceService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{accounts: accounts, attendance: attendance, logger: logger}
}

// Register attaches admin routes to the mux, each wrapped by guard.
func (h *AdminHandler) Register(mux *http.ServeMux, guard func(http.Handler) http.Handler) {
	if guard == nil {
		guard = func(next http.Handler) http.Handler { return next }
	}
	mux.Handle("GET /admin/pending", guard(http.HandlerFunc(h.handlePending)))
	mux.Handle("POST /admin/approve", guard(http.HandlerFunc(h.handleApprove)))
	mux.Handle("GET /admin/attendance/export", guard(http.HandlerFunc(h.handleExport)))
}

func (h *AdminHandler) handlePending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.accounts.ListPending(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, pending)
}

func (h *AdminHandler) handleApprove(w http.ResponseWriter, r *http.Request) {
	var req dto.ApproveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if claims, ok := middleware.ClaimsFrom(r.Context()); ok {
		h.logger.Info("approval requested", "user_id", int64(req.UserID), "approver", claims.Email)
	}
	if err := h.accounts.Approve(r.Context(), int64(req.UserID)); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.MessageResponse{Message: "User approved"})
}

func (h *AdminHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseRange(w, r)
	if !ok {
		return
	}
	rows, err := h.attendance.Export(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteAttendance(&buf, rows); err != nil {
		h.logger.Error("render export failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to render export")
		return
	}

	name := "attendance.xlsx"
	if !from.IsZero() || !to.IsZero() {
		name = fmt.Sprintf("attendance_%s_%s.xlsx", orAll(from.IsZero(), from.String()), orAll(to.IsZero(), to.String()))
	}
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("write export failed", "error", err)
	}
}

func orAll(zero bool, s string) string {
	if zero {
		return "all"
	}
	return s
}
