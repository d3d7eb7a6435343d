package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/futsal-ledger/internal/platform/auth"
	"github.com/riskibarqy/futsal-ledger/internal/platform/logging"
	"github.com/riskibarqy/futsal-ledger/internal/usecase"
)

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Login")
	defer span.End()

	var req loginRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, _, err := h.sessions.Login(req.Password)
	if err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "admin login rejected", "remote_addr", r.RemoteAddr)
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrUnauthorized, err))
		return
	}

	logging.FromContext(ctx).InfoContext(ctx, "admin session issued", "expires_at", session.ExpiresAt)
	writeSuccess(ctx, w, http.StatusCreated, sessionDTO{
		Token:     session.Token,
		TokenType: "Bearer",
		ExpiresAt: session.ExpiresAt.UTC().Format(timeLayout),
	})
}

// Logout only acknowledges; tokens are stateless and expire on their own.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	_, span := startSpan(r.Context(), "httpapi.Handler.Logout")
	defer span.End()

	writeNoContent(w)
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.rosterService.ListPlayers(ctx)
	if err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(players))
}

func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddPlayer")
	defer span.End()

	var req addPlayerRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.rosterService.AddPlayer(ctx, auth.CapabilityFromContext(ctx), req.Name)
	if err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "add player failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(created))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	playerID, err := pathPlayerID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.rosterService.DeletePlayer(ctx, auth.CapabilityFromContext(ctx), playerID); err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "delete player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeNoContent(w)
}

func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordPayment")
	defer span.End()

	playerID, err := pathPlayerID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req amountRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, ok, err := h.rosterService.ReduceDebt(ctx, auth.CapabilityFromContext(ctx), playerID, *req.Amount)
	if err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "record payment failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerMutationToDTO(updated, ok))
}

func (h *Handler) AddDebt(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddDebt")
	defer span.End()

	playerID, err := pathPlayerID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req amountRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, ok, err := h.rosterService.IncreaseDebt(ctx, auth.CapabilityFromContext(ctx), playerID, *req.Amount)
	if err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "add debt failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerMutationToDTO(updated, ok))
}
