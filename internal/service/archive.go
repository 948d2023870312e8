package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stakugame/staku-backend/internal/entity"
	"github.com/stakugame/staku-backend/internal/repository"
	"github.com/stakugame/staku-backend/internal/staku"
)

const defaultListLimit = 50

type ArchiveService interface {
	RecordGame(ctx context.Context, game *entity.Game) (*repository.GameRecord, error)
	ListGames(ctx context.Context, limit int) ([]*repository.GameRecord, error)
	GetGame(ctx context.Context, id string) (*repository.GameRecord, error)
}

type archiveRepo interface {
	Save(ctx context.Context, record *repository.GameRecord) error
	List(ctx context.Context, limit int) ([]*repository.GameRecord, error)
	GetByID(ctx context.Context, id string) (*repository.GameRecord, error)
}

type archiveService struct {
	archiveRepo archiveRepo
}

func NewArchiveService(archiveRepo archiveRepo) ArchiveService {
	return &archiveService{
		archiveRepo: archiveRepo,
	}
}

// RecordGame stores a finished game with its move history and the packed
// final board.
func (that *archiveService) RecordGame(ctx context.Context, game *entity.Game) (*repository.GameRecord, error) {
	packed, err := staku.PackedBoard(game)
	if err != nil {
		return nil, fmt.Errorf("failed to pack board: %w", err)
	}

	record := &repository.GameRecord{
		ID:         uuid.NewString(),
		GameID:     game.ID,
		Variant:    game.Variant,
		Winner:     game.Winner,
		Reason:     game.Reason,
		Moves:      strings.Join(game.Moves, " "),
		FinalBoard: packed,
		CreatedAt:  time.Now().UTC(),
	}

	if err = that.archiveRepo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save game record: %w", err)
	}

	return record, nil
}

func (that *archiveService) ListGames(ctx context.Context, limit int) ([]*repository.GameRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	records, err := that.archiveRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list game records: %w", err)
	}

	return records, nil
}

func (that *archiveService) GetGame(ctx context.Context, id string) (*repository.GameRecord, error) {
	record, err := that.archiveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game record: %w", err)
	}

	return record, nil
}
