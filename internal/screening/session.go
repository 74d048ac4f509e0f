package screening

import (
	"container/list"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hyperjump/screener/internal/keyword"
	"github.com/hyperjump/screener/internal/models"
)

var (
	// ErrSessionNotFound is returned for unknown or evicted session ids.
	ErrSessionNotFound = errors.New("screening session not found")
	// ErrCandidateNotFound is returned for an index outside the session's ranked list.
	ErrCandidateNotFound = errors.New("candidate not found")
)

const defaultMaxSessions = 16

type session struct {
	result *models.ScreeningResult
	index  *keyword.Index
}

// SessionStore keeps the most recent screening results, keyed by session id.
// When full, the least recently used session is evicted.
type SessionStore struct {
	capacity int
	sessions map[string]*list.Element
	lru      *list.List
	mu       sync.Mutex
}

// NewSessionStore creates a store holding at most capacity sessions.
func NewSessionStore(capacity int) *SessionStore {
	if capacity <= 0 {
		capacity = defaultMaxSessions
	}
	return &SessionStore{
		capacity: capacity,
		sessions: make(map[string]*list.Element),
		lru:      list.New(),
	}
}

// Put stores result under its session id and builds its keyword index.
func (s *SessionStore) Put(ctx context.Context, result *models.ScreeningResult) error {
	if result == nil || result.SessionID == "" {
		return fmt.Errorf("result has no session id")
	}
	idx, err := keyword.NewIndex(ctx, result.Candidates)
	if err != nil {
		return fmt.Errorf("index session %s: %w", result.SessionID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.sessions[result.SessionID]; ok {
		old := elem.Value.(*session)
		_ = old.index.Close()
		elem.Value = &session{result: result, index: idx}
		s.lru.MoveToFront(elem)
		return nil
	}

	s.sessions[result.SessionID] = s.lru.PushFront(&session{result: result, index: idx})
	for s.lru.Len() > s.capacity {
		oldest := s.lru.Back()
		evicted := oldest.Value.(*session)
		s.lru.Remove(oldest)
		delete(s.sessions, evicted.result.SessionID)
		_ = evicted.index.Close()
	}
	return nil
}

func (s *SessionStore) get(id string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.lru.MoveToFront(elem)
	return elem.Value.(*session), nil
}

// Get returns the stored result for id.
func (s *SessionStore) Get(id string) (*models.ScreeningResult, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return sess.result, nil
}

// Candidate returns the candidate at position index of the session's ranked list.
func (s *SessionStore) Candidate(id string, index int) (*models.Candidate, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	candidates := sess.result.Candidates
	if index < 0 || index >= len(candidates) {
		return nil, ErrCandidateNotFound
	}
	return candidates[index], nil
}

// Search runs a keyword query over the session's candidates.
func (s *SessionStore) Search(ctx context.Context, id, query string, limit int) ([]keyword.Hit, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return sess.index.Search(ctx, query, limit)
}

// Len returns the number of stored sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Len()
}

// Close releases every session's index and empties the store.
func (s *SessionStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for e := s.lru.Front(); e != nil; e = e.Next() {
		if err := e.Value.(*session).index.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.sessions = make(map[string]*list.Element)
	s.lru.Init()
	return errors.Join(errs...)
}
