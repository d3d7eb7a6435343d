package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/futsal-ledger/internal/domain/player"
	"github.com/riskibarqy/futsal-ledger/internal/domain/schedule"
	"github.com/riskibarqy/futsal-ledger/internal/platform/auth"
	"github.com/riskibarqy/futsal-ledger/internal/usecase"
)

// maxRequestBody caps JSON payloads; the largest legitimate body is one
// attendance list.
const maxRequestBody = 64 << 10

const timeLayout = time.RFC3339

// SessionIssuer exchanges the shared admin password for a signed session.
type SessionIssuer interface {
	Login(password string) (auth.Session, auth.Capability, error)
}

type Handler struct {
	rosterService     *usecase.RosterService
	attendanceService *usecase.AttendanceService
	scheduleService   *usecase.ScheduleService
	sessions          SessionIssuer
	validator         *validator.Validate
	now               func() time.Time
}

func NewHandler(
	rosterService *usecase.RosterService,
	attendanceService *usecase.AttendanceService,
	scheduleService *usecase.ScheduleService,
	sessions SessionIssuer,
) *Handler {
	return &Handler{
		rosterService:     rosterService,
		attendanceService: attendanceService,
		scheduleService:   scheduleService,
		sessions:          sessions,
		validator:         validator.New(),
		now:               time.Now,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a strict JSON body into dst and runs struct validation.
func (h *Handler) decodeRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, dst)
}

func pathPlayerID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("playerID"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid player id %q", usecase.ErrInvalidInput, raw)
	}
	return id, nil
}

type loginRequest struct {
	Password string `json:"password" validate:"required"`
}

type addPlayerRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type amountRequest struct {
	Amount *int64 `json:"amount" validate:"required,gte=0"`
}

type setAttendanceRequest struct {
	PlayerIDs []int64 `json:"playerIds" validate:"dive,gt=0"`
	TotalCost *int64  `json:"totalCost,omitempty" validate:"omitempty,gte=0"`
}

type sessionDTO struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresAt string `json:"expiresAt"`
}

type playerDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Debt int64  `json:"debt"`
}

type playerMutationDTO struct {
	Updated bool       `json:"updated"`
	Player  *playerDTO `json:"player,omitempty"`
}

type scheduleSlotDTO struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

type attendanceViewDTO struct {
	Date       string            `json:"date"`
	Today      string            `json:"today"`
	Label      string            `json:"label"`
	Players    []playerDTO       `json:"players"`
	PresentIDs []int64           `json:"presentIds"`
	Schedule   []scheduleSlotDTO `json:"schedule"`
}

type attendanceResultDTO struct {
	Date       string      `json:"date"`
	PresentIDs []int64     `json:"presentIds"`
	Share      int64       `json:"share"`
	Charged    []playerDTO `json:"charged"`
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:   v.ID,
		Name: v.Name,
		Debt: v.Debt,
	}
}

func playersToDTO(items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerToDTO(item))
	}
	return out
}

func playerMutationToDTO(v player.Player, updated bool) playerMutationDTO {
	if !updated {
		return playerMutationDTO{}
	}
	dto := playerToDTO(v)
	return playerMutationDTO{Updated: true, Player: &dto}
}

func scheduleToDTO(slots []schedule.Slot) []scheduleSlotDTO {
	out := make([]scheduleSlotDTO, 0, len(slots))
	for _, slot := range slots {
		out = append(out, scheduleSlotDTO{
			Date:  slot.Date.String(),
			Label: slot.Label,
		})
	}
	return out
}
