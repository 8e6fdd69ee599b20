package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
	"github.com/custodia-labs/scenaria-core/internal/core/ports/driven"
)

// Verify interface compliance
var (
	_ driven.ChatStore    = (*ChatStore)(nil)
	_ driven.MessageStore = (*MessageStore)(nil)
)

const chatColumns = `id, user_id, title, visibility, created_at`

// ChatStore implements driven.ChatStore using PostgreSQL
type ChatStore struct {
	db *DB
}

// NewChatStore creates a new ChatStore
func NewChatStore(db *DB) *ChatStore {
	return &ChatStore{db: db}
}

// Save inserts a chat. An existing ID yields domain.ErrAlreadyExists.
func (s *ChatStore) Save(ctx context.Context, chat *domain.Chat) error {
	query := `INSERT INTO chats (` + chatColumns + `) VALUES ($1, $2, $3, $4, $5)`
	_, err := s.db.ExecContext(ctx, query,
		chat.ID,
		chat.UserID,
		chat.Title,
		string(chat.Visibility),
		chat.CreatedAt,
	)
	return translateError(err)
}

// Get retrieves a chat by ID
func (s *ChatStore) Get(ctx context.Context, id string) (*domain.Chat, error) {
	query := `SELECT ` + chatColumns + ` FROM chats WHERE id = $1`
	return scanChat(s.db.QueryRowContext(ctx, query, id))
}

// ListByUser lists a user's chats, newest first
func (s *ChatStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Chat, error) {
	query := `
		SELECT ` + chatColumns + `
		FROM chats
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chats := []*domain.Chat{}
	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}
	return chats, rows.Err()
}

// UpdateVisibility sets a chat's visibility
func (s *ChatStore) UpdateVisibility(ctx context.Context, id string, visibility domain.Visibility) error {
	result, err := s.db.ExecContext(ctx, `UPDATE chats SET visibility = $1 WHERE id = $2`, string(visibility), id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// UpdateTitle renames a chat
func (s *ChatStore) UpdateTitle(ctx context.Context, id string, title string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE chats SET title = $1 WHERE id = $2`, title, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete deletes a chat; its messages cascade
func (s *ChatStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM chats WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func scanChat(row rowScanner) (*domain.Chat, error) {
	var chat domain.Chat
	err := row.Scan(&chat.ID, &chat.UserID, &chat.Title, &chat.Visibility, &chat.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return &chat, nil
}

const messageColumns = `id, chat_id, role, parts, attachments, created_at`

// MessageStore implements driven.MessageStore using PostgreSQL.
// Message parts are stored as JSONB.
type MessageStore struct {
	db *DB
}

// NewMessageStore creates a new MessageStore
func NewMessageStore(db *DB) *MessageStore {
	return &MessageStore{db: db}
}

// SaveBatch inserts messages in one transaction
func (s *MessageStore) SaveBatch(ctx context.Context, messages []*domain.Message) error {
	if len(messages) == 0 {
		return nil
	}

	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO messages (`+messageColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, m := range messages {
			parts, err := json.Marshal(m.Parts)
			if err != nil {
				return fmt.Errorf("encode parts of message %s: %w", m.ID, err)
			}
			attachments := []byte(m.Attachments)
			if len(attachments) == 0 {
				attachments = []byte("[]")
			}
			if _, err := stmt.ExecContext(ctx, m.ID, m.ChatID, string(m.Role), parts, attachments, m.CreatedAt); err != nil {
				return translateError(err)
			}
		}
		return nil
	})
}

// Get retrieves a message by ID
func (s *MessageStore) Get(ctx context.Context, id string) (*domain.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`
	return scanMessage(s.db.QueryRowContext(ctx, query, id))
}

// ListByChat lists a chat's messages, oldest first
func (s *MessageStore) ListByChat(ctx context.Context, chatID string) ([]*domain.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE chat_id = $1 ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*domain.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// DeleteAfter deletes messages created at or after the timestamp
func (s *MessageStore) DeleteAfter(ctx context.Context, chatID string, at time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE chat_id = $1 AND created_at >= $2`, chatID, at)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	return int(n), err
}

func scanMessage(row rowScanner) (*domain.Message, error) {
	var m domain.Message
	var parts, attachments []byte
	if err := row.Scan(&m.ID, &m.ChatID, &m.Role, &parts, &attachments, &m.CreatedAt); err != nil {
		return nil, translateError(err)
	}
	if err := json.Unmarshal(parts, &m.Parts); err != nil {
		return nil, fmt.Errorf("decode parts of message %s: %w", m.ID, err)
	}
	m.Attachments = attachments
	return &m, nil
}
