package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"cv-insight-be/internal/repository/contract"
	"cv-insight-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "cv:session:"

// SessionRepository keeps conversation history in a Redis list per session.
// RPUSH of both turns in one command is the atomic append, so no extra
// locking is needed and sessions never block each other.
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) contract.SessionRepository {
	return &SessionRepository{client: client}
}

func (r *SessionRepository) GetOrCreate(ctx context.Context, sessionID string) ([]store.Turn, error) {
	raw, err := r.client.LRange(ctx, sessionKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}

	turns := make([]store.Turn, 0, len(raw))
	for _, item := range raw {
		var turn store.Turn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			return nil, fmt.Errorf("corrupt turn in session %s: %w", sessionID, err)
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (r *SessionRepository) AppendTurn(ctx context.Context, sessionID, userText, assistantText string) error {
	userTurn, err := json.Marshal(store.Turn{Role: store.RoleUser, Content: userText})
	if err != nil {
		return err
	}
	assistantTurn, err := json.Marshal(store.Turn{Role: store.RoleAssistant, Content: assistantText})
	if err != nil {
		return err
	}

	if err := r.client.RPush(ctx, sessionKey(sessionID), userTurn, assistantTurn).Err(); err != nil {
		return fmt.Errorf("failed to append turn to session %s: %w", sessionID, err)
	}
	return nil
}

func (r *SessionRepository) Clear(ctx context.Context, sessionID string) (bool, error) {
	deleted, err := r.client.Del(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to clear session %s: %w", sessionID, err)
	}
	return deleted > 0, nil
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}
