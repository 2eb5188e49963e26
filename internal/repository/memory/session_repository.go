package memory

import (
	"context"
	"sync"

	"cv-insight-be/internal/repository/contract"
	"cv-insight-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps conversation history in process memory. Entries
// never expire (cleanup interval 0 disables the janitor): sessions live
// until Clear or process exit.
type SessionRepository struct {
	cache *cache.Cache
	locks sync.Map // sessionID -> *sync.Mutex, serializes appends per session
}

func NewSessionRepository() contract.SessionRepository {
	return &SessionRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (r *SessionRepository) GetOrCreate(ctx context.Context, sessionID string) ([]store.Turn, error) {
	if x, found := r.cache.Get(sessionID); found {
		session := x.(*store.Session)
		return session.Turns, nil
	}

	r.cache.Set(sessionID, &store.Session{ID: sessionID}, cache.NoExpiration)
	return nil, nil
}

func (r *SessionRepository) AppendTurn(ctx context.Context, sessionID, userText, assistantText string) error {
	lock := r.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session := &store.Session{ID: sessionID}
	if x, found := r.cache.Get(sessionID); found {
		session = x.(*store.Session)
	}

	// Replace rather than mutate in place so concurrent readers holding the
	// previous slice never observe a half-appended pair.
	turns := make([]store.Turn, 0, len(session.Turns)+2)
	turns = append(turns, session.Turns...)
	turns = append(turns,
		store.Turn{Role: store.RoleUser, Content: userText},
		store.Turn{Role: store.RoleAssistant, Content: assistantText},
	)

	r.cache.Set(sessionID, &store.Session{ID: sessionID, Turns: turns}, cache.NoExpiration)
	return nil
}

func (r *SessionRepository) Clear(ctx context.Context, sessionID string) (bool, error) {
	if _, found := r.cache.Get(sessionID); !found {
		return false, nil
	}
	r.cache.Delete(sessionID)
	r.locks.Delete(sessionID)
	return true, nil
}

func (r *SessionRepository) sessionLock(sessionID string) *sync.Mutex {
	lock, _ := r.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
