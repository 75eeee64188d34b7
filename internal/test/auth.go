package test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/polkiloo/pontobip/internal/domain/model"
	pkgAuth "github.com/polkiloo/pontobip/internal/pkg/auth"
	"github.com/polkiloo/pontobip/internal/session"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn        func(string) (string, error)
	CompareFn     func(string, string) error
	NeedsRehashFn func(string) bool
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// NeedsRehash reports true only when an override says so.
func (h HasherStub) NeedsRehash(hash string) bool {
	if h.NeedsRehashFn != nil {
		return h.NeedsRehashFn(hash)
	}
	return false
}

// StrategyStub issues and parses tokens via function overrides.
// By default tokens are "token:<session id>".
type StrategyStub struct {
	IssueFn func(string) (string, error)
	ParseFn func(string) (string, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(sessionID string) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(sessionID)
	}
	return "token:" + sessionID, nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	id, ok := strings.CutPrefix(token, "token:")
	if !ok || id == "" {
		return "", pkgAuth.ErrInvalidToken
	}
	return id, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// SessionStoreStub keeps sessions in a map with sequential ids.
type SessionStoreStub struct {
	mu        sync.Mutex
	Sessions  map[string]*model.Session
	Next      int
	CreateErr error
	LookupErr error
	Destroyed []string

	DestroyByUserErr error
	RevokedUsers     []string
}

// NewSessionStoreStub constructs stub store with initialized map.
func NewSessionStoreStub() *SessionStoreStub {
	return &SessionStoreStub{Sessions: make(map[string]*model.Session)}
}

// Create stores a session with id "s<N>".
func (s *SessionStoreStub) Create(_ context.Context, userID string, role model.Role) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	if s.Sessions == nil {
		s.Sessions = make(map[string]*model.Session)
	}
	s.Next++
	sess := &model.Session{ID: "s" + strconv.Itoa(s.Next), UserID: userID, Role: role}
	s.Sessions[sess.ID] = sess
	return sess, nil
}

// Lookup returns stored session or session.ErrNotFound.
func (s *SessionStoreStub) Lookup(_ context.Context, id string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LookupErr != nil {
		return nil, s.LookupErr
	}
	sess, ok := s.Sessions[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	return sess, nil
}

// Destroy removes the session and records the call.
func (s *SessionStoreStub) Destroy(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Destroyed = append(s.Destroyed, id)
	delete(s.Sessions, id)
	return nil
}

// DestroyByUser drops every session of the user and records the call.
func (s *SessionStoreStub) DestroyByUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RevokedUsers = append(s.RevokedUsers, userID)
	if s.DestroyByUserErr != nil {
		return s.DestroyByUserErr
	}
	for id, sess := range s.Sessions {
		if sess.UserID == userID {
			delete(s.Sessions, id)
		}
	}
	return nil
}

// Put registers a session directly.
func (s *SessionStoreStub) Put(sess *model.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Sessions == nil {
		s.Sessions = make(map[string]*model.Session)
	}
	s.Sessions[sess.ID] = sess
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
var _ session.Store = (*SessionStoreStub)(nil)
