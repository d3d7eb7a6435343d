package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/futsal-ledger/internal/domain/attendance"
	"github.com/riskibarqy/futsal-ledger/internal/platform/auth"
	"github.com/riskibarqy/futsal-ledger/internal/platform/logging"
	"github.com/riskibarqy/futsal-ledger/internal/usecase"
)

func (h *Handler) ListSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSchedule")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, scheduleToDTO(h.scheduleService.Slots(ctx)))
}

// GetAttendance returns everything the attendance screen needs for one date.
// Without ?date= it falls back to today.
func (h *Handler) GetAttendance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAttendance")
	defer span.End()

	today := attendance.DateOf(h.now())
	date := today
	if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
		parsed, err := attendance.ParseDate(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
			return
		}
		date = parsed
	}

	players, err := h.rosterService.ListPlayers(ctx)
	if err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	presentIDs, err := h.attendanceService.AttendanceFor(ctx, date)
	if err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "load attendance failed", "date", date.String(), "error", err)
		writeError(ctx, w, err)
		return
	}

	view := attendanceViewDTO{
		Date:       date.String(),
		Today:      today.String(),
		Players:    playersToDTO(players),
		PresentIDs: presentIDs,
		Schedule:   scheduleToDTO(h.scheduleService.Slots(ctx)),
	}
	if slot, ok := h.scheduleService.Lookup(date); ok {
		view.Label = slot.Label
	}

	writeSuccess(ctx, w, http.StatusOK, view)
}

func (h *Handler) SetAttendance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetAttendance")
	defer span.End()

	date, err := attendance.ParseDate(r.PathValue("date"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	var req setAttendanceRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.attendanceService.RecordAttendance(ctx, auth.CapabilityFromContext(ctx), usecase.RecordAttendanceInput{
		Date:      date,
		PlayerIDs: req.PlayerIDs,
		TotalCost: req.TotalCost,
	})
	if err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "set attendance failed", "date", date.String(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, attendanceResultDTO{
		Date:       result.Date.String(),
		PresentIDs: result.PresentIDs,
		Share:      result.Share,
		Charged:    playersToDTO(result.Charged),
	})
}
