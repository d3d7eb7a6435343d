package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/futsal-ledger/internal/domain/player"
	"github.com/riskibarqy/futsal-ledger/internal/platform/auth"
	"github.com/riskibarqy/futsal-ledger/internal/platform/logging"
)

const maxPlayerNameLength = 100

type RosterService struct {
	playerRepo player.Repository
	logger     *logging.Logger
	now        func() time.Time
}

func NewRosterService(playerRepo player.Repository, logger *logging.Logger) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterService{
		playerRepo: playerRepo,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *RosterService) ListPlayers(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListPlayers")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, storeError(err, "list players")
	}

	return players, nil
}

func (s *RosterService) AddPlayer(ctx context.Context, capability auth.Capability, name string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.AddPlayer")
	defer span.End()

	if err := requireAdmin(capability, s.now()); err != nil {
		return player.Player{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return player.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	if len([]rune(name)) > maxPlayerNameLength {
		return player.Player{}, fmt.Errorf("%w: player name exceeds %d characters", ErrInvalidInput, maxPlayerNameLength)
	}

	created, err := s.playerRepo.Create(ctx, name)
	if err != nil {
		return player.Player{}, storeError(err, "create player")
	}

	s.logger.InfoContext(ctx, "player added", "player_id", created.ID, "name", created.Name)
	return created, nil
}

// DeletePlayer removes the player with its attendance history. Unknown ids are
// not an error.
func (s *RosterService) DeletePlayer(ctx context.Context, capability auth.Capability, playerID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.DeletePlayer", attribute.Int64("player.id", playerID))
	defer span.End()

	if err := requireAdmin(capability, s.now()); err != nil {
		return err
	}
	if playerID <= 0 {
		return fmt.Errorf("%w: player id must be positive", ErrInvalidInput)
	}

	deleted, err := s.playerRepo.Delete(ctx, playerID)
	if err != nil {
		return storeError(err, "delete player=%d", playerID)
	}
	if deleted {
		s.logger.InfoContext(ctx, "player deleted", "player_id", playerID)
	}

	return nil
}

// ReduceDebt records a payment. Debt never drops below zero. The returned
// bool is false when the player does not exist.
func (s *RosterService) ReduceDebt(ctx context.Context, capability auth.Capability, playerID, amount int64) (player.Player, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ReduceDebt", attribute.Int64("player.id", playerID))
	defer span.End()

	if err := requireAdmin(capability, s.now()); err != nil {
		return player.Player{}, false, err
	}
	if playerID <= 0 {
		return player.Player{}, false, fmt.Errorf("%w: player id must be positive", ErrInvalidInput)
	}
	if amount < 0 {
		return player.Player{}, false, fmt.Errorf("%w: payment amount cannot be negative", ErrInvalidInput)
	}

	updated, ok, err := s.playerRepo.ReduceDebt(ctx, playerID, amount)
	if err != nil {
		return player.Player{}, false, storeError(err, "reduce debt player=%d", playerID)
	}
	if ok {
		s.logger.InfoContext(ctx, "payment recorded", "player_id", playerID, "amount", amount, "debt", updated.Debt)
	}

	return updated, ok, nil
}

// IncreaseDebt adds amount to the player's debt. Non-positive amounts change
// nothing and return the player as stored.
func (s *RosterService) IncreaseDebt(ctx context.Context, capability auth.Capability, playerID, amount int64) (player.Player, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.IncreaseDebt", attribute.Int64("player.id", playerID))
	defer span.End()

	if err := requireAdmin(capability, s.now()); err != nil {
		return player.Player{}, false, err
	}
	if playerID <= 0 {
		return player.Player{}, false, fmt.Errorf("%w: player id must be positive", ErrInvalidInput)
	}

	if amount <= 0 {
		items, err := s.playerRepo.GetByIDs(ctx, []int64{playerID})
		if err != nil {
			return player.Player{}, false, storeError(err, "get player=%d", playerID)
		}
		if len(items) == 0 {
			return player.Player{}, false, nil
		}
		return items[0], true, nil
	}

	updated, ok, err := s.playerRepo.IncreaseDebt(ctx, playerID, amount)
	if err != nil {
		return player.Player{}, false, storeError(err, "increase debt player=%d", playerID)
	}
	if ok {
		s.logger.InfoContext(ctx, "debt added", "player_id", playerID, "amount", amount, "debt", updated.Debt)
	}

	return updated, ok, nil
}
