package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/stakugame/staku-backend/internal/apperror"
)

// GameRecord is a finished game as kept in the archive.
type GameRecord struct {
	ID         string    `json:"id"`
	GameID     string    `json:"game_id"`
	Variant    string    `json:"variant"`
	Winner     string    `json:"winner"`
	Reason     string    `json:"reason"`
	Moves      string    `json:"moves"`
	FinalBoard []byte    `json:"final_board"`
	CreatedAt  time.Time `json:"created_at"`
}

type ArchiveRepository interface {
	Save(ctx context.Context, record *GameRecord) error
	List(ctx context.Context, limit int) ([]*GameRecord, error)
	GetByID(ctx context.Context, id string) (*GameRecord, error)
}

type archiveRepository struct {
	conn *sql.DB
}

func NewArchiveRepository(conn *sql.DB) ArchiveRepository {
	return &archiveRepository{
		conn: conn,
	}
}

func (that *archiveRepository) Save(ctx context.Context, record *GameRecord) error {
	query := `INSERT INTO archive (id, game_id, variant, winner, reason, moves, final_board, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		record.ID, record.GameID, record.Variant, record.Winner,
		record.Reason, record.Moves, record.FinalBoard, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("can't save game record: %w", err)
	}

	return nil
}

func (that *archiveRepository) List(ctx context.Context, limit int) ([]*GameRecord, error) {
	query := `SELECT id, game_id, variant, winner, reason, moves, final_board, created_at
		FROM archive ORDER BY created_at DESC LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("can't list game records: %w", err)
	}
	defer rows.Close()

	var records []*GameRecord
	for rows.Next() {
		var record GameRecord
		if err = rows.Scan(&record.ID, &record.GameID, &record.Variant, &record.Winner,
			&record.Reason, &record.Moves, &record.FinalBoard, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("can't scan game record: %w", err)
		}
		records = append(records, &record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read game records: %w", err)
	}

	return records, nil
}

func (that *archiveRepository) GetByID(ctx context.Context, id string) (*GameRecord, error) {
	query := `SELECT id, game_id, variant, winner, reason, moves, final_board, created_at
		FROM archive WHERE id = ?`

	var record GameRecord

	err := that.conn.QueryRowContext(ctx, query, id).Scan(
		&record.ID, &record.GameID, &record.Variant, &record.Winner,
		&record.Reason, &record.Moves, &record.FinalBoard, &record.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find game record: %w", err)
	}

	return &record, nil
}
