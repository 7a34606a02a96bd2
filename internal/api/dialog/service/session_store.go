package dialogService

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"FinancasBot/internal/entity"
)

// ISessionStore owns dialog session lifetime. One session per user id;
// concurrent messages for different users never block each other, while
// LockUser lets the router serialize same-user replies.
type ISessionStore interface {
	Get(userID string) (entity.DialogSession, bool)
	StartOrReplace(userID string, draft entity.TransactionDraft) entity.DialogSession
	Advance(userID string, mutate func(*entity.DialogSession)) bool
	Delete(userID string) bool
	EvictIdle(now time.Time) int
	StartSweeper(ctx context.Context, interval time.Duration)
	LockUser(userID string) (unlock func())
}

type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*entity.DialogSession

	lockMu    sync.Mutex
	userLocks map[string]*sync.Mutex

	idleTimeout time.Duration
	log         *logrus.Logger
}

func NewSessionStore(log *logrus.Logger, idleTimeout time.Duration) ISessionStore {
	return &sessionStore{
		sessions:    make(map[string]*entity.DialogSession),
		userLocks:   make(map[string]*sync.Mutex),
		idleTimeout: idleTimeout,
		log:         log,
	}
}

func (s *sessionStore) Get(userID string) (entity.DialogSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[userID]
	if !ok {
		return entity.DialogSession{}, false
	}
	return *session, true
}

func (s *sessionStore) StartOrReplace(userID string, draft entity.TransactionDraft) entity.DialogSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := &entity.DialogSession{
		UserID:         userID,
		Step:           entity.StepAwaitingType,
		LastActivityAt: time.Now(),
		Draft:          draft,
	}
	s.sessions[userID] = session

	return *session
}

func (s *sessionStore) Advance(userID string, mutate func(*entity.DialogSession)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return false
	}

	mutate(session)
	session.LastActivityAt = time.Now()

	return true
}

func (s *sessionStore) Delete(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[userID]; !ok {
		return false
	}
	delete(s.sessions, userID)

	return true
}

// EvictIdle silently drops sessions whose last activity is older than the
// idle threshold. Returns how many were removed.
func (s *sessionStore) EvictIdle(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for userID, session := range s.sessions {
		if now.Sub(session.LastActivityAt) > s.idleTimeout {
			delete(s.sessions, userID)
			evicted++
		}
	}

	return evicted
}

// StartSweeper runs the idle eviction on a fixed interval, independent of the
// message-handling path, until ctx is cancelled.
func (s *sessionStore) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if evicted := s.EvictIdle(now); evicted > 0 {
					s.log.WithFields(logrus.Fields{
						"evicted": evicted,
					}).Info("Evicted idle dialog sessions")
				}
			}
		}
	}()
}

// LockUser serializes message handling per user key; map of mutexes keyed the
// same way the HTTP rate limiter buckets by client.
func (s *sessionStore) LockUser(userID string) (unlock func()) {
	s.lockMu.Lock()
	userLock, ok := s.userLocks[userID]
	if !ok {
		userLock = &sync.Mutex{}
		s.userLocks[userID] = userLock
	}
	s.lockMu.Unlock()

	userLock.Lock()
	return userLock.Unlock
}
