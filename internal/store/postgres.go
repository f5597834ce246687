package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SHADABANWAR30/jabir-freshtouch-bot/internal/db"
)

// PostgresStore keeps transcripts in the chat_history table, one row per
// session, upserted on every turn.
type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(database *db.DB) *PostgresStore {
	return &PostgresStore{db: database}
}

func (s *PostgresStore) Get(ctx context.Context, sessionID string) (string, error) {
	var history string
	err := s.db.QueryRowContext(ctx,
		`SELECT history FROM chat_history WHERE session_id = $1`, sessionID,
	).Scan(&history)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("store: failed to load history: %w", err)
	}
	return history, nil
}

func (s *PostgresStore) Append(ctx context.Context, sessionID, userText, reply string) error {
	h, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	h = appendTurn(h, userText, reply)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO chat_history (session_id, history, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (session_id)
		DO UPDATE SET history = EXCLUDED.history, updated_at = NOW()
	`, sessionID, h)
	if err != nil {
		return fmt.Errorf("store: failed to persist history: %w", err)
	}
	return nil
}
