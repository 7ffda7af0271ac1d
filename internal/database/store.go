package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the message log operations.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// SaveMessage appends a new message record and assigns its ID.
	SaveMessage(ctx context.Context, message *Message) error

	// GetRecentMessages returns the 'limit' most recently stored messages, newest first.
	GetRecentMessages(ctx context.Context, limit int) ([]*Message, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error

	// Size reports the database size in bytes as seen by SQLite.
	Size(ctx context.Context) (int64, error)
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// SaveMessage inserts one message record inside a transaction and writes the
// generated ID back into message.
func (s *sqlxStore) SaveMessage(ctx context.Context, message *Message) error {
	if message == nil {
		return fmt.Errorf("cannot save nil message")
	}
	if message.UserID == 0 {
		return fmt.Errorf("message must have a non-zero user_id")
	}
	if message.Text == "" {
		return fmt.Errorf("message must have non-empty text")
	}
	if message.Username == "" {
		message.Username = AnonymousUsername
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction for saving message", "user_id", message.UserID, "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
			}
		}
	}()

	query := `
        INSERT INTO messages (user_id, username, message, created_at)
        VALUES (:user_id, :username, :message, :created_at);
    `

	result, err := tx.NamedExecContext(ctx, query, message)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving message", "user_id", message.UserID, "error", err)
		return fmt.Errorf("failed to save message (user %d): %w", message.UserID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted message id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to commit transaction", "user_id", message.UserID, "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	tx = nil
	message.ID = id

	s.logger.DebugContext(ctx, "Message saved successfully", "user_id", message.UserID, "message_id", message.ID)
	return nil
}

// GetRecentMessages returns up to limit messages ordered by insertion, newest
// first. An empty store yields an empty, non-nil slice.
func (s *sqlxStore) GetRecentMessages(ctx context.Context, limit int) ([]*Message, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	messages := []*Message{}
	query := `
        SELECT id, user_id, username, message, created_at
        FROM messages
        ORDER BY id DESC
        LIMIT ?;
    `
	if err := s.db.SelectContext(ctx, &messages, query, limit); err != nil {
		s.logger.ErrorContext(ctx, "Error fetching recent messages", "limit", limit, "error", err)
		return nil, fmt.Errorf("failed to get recent messages: %w", err)
	}

	s.logger.DebugContext(ctx, "Fetched recent messages successfully", "count", len(messages))
	return messages, nil
}

// RunSQLMaintenance executes a VACUUM command on the SQLite database.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	if _, err := s.db.ExecContext(ctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		s.logger.WarnContext(ctx, "Failed to set busy timeout", "error", err)
	}

	// VACUUM must run outside a transaction in SQLite
	_, err := s.db.ExecContext(ctx, "VACUUM;")

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)

	case err != nil:
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)

	default:
		s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully")
	}

	return nil
}

// Size returns page_count * page_size. Pages on the freelist are included, so
// the value drops after a successful VACUUM.
func (s *sqlxStore) Size(ctx context.Context) (int64, error) {
	var pageCount, pageSize int64
	if err := s.db.GetContext(ctx, &pageCount, "PRAGMA page_count;"); err != nil {
		return 0, fmt.Errorf("failed to read page count: %w", err)
	}
	if err := s.db.GetContext(ctx, &pageSize, "PRAGMA page_size;"); err != nil {
		return 0, fmt.Errorf("failed to read page size: %w", err)
	}
	return pageCount * pageSize, nil
}
