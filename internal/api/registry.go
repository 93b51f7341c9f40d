package api

import (
	"context"
	"sync"

	"github.com/kayfabe/kayfabe-booker/internal/session"
)

// sessionRegistry caches the live session per (user, save). The session's own
// mutex serializes commands; the registry only guards the map.
type sessionRegistry struct {
	mu       sync.Mutex
	mgr      *session.Manager
	sessions map[string]*session.Session
}

func newSessionRegistry(mgr *session.Manager) *sessionRegistry {
	return &sessionRegistry{mgr: mgr, sessions: map[string]*session.Session{}}
}

func sessionKey(userID, saveID string) string {
	return userID + "/" + saveID
}

// get returns the cached session for a save, loading it on first use.
func (r *sessionRegistry) get(ctx context.Context, userID, saveID string) (*session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sess, ok := r.sessions[sessionKey(userID, saveID)]; ok {
		return sess, nil
	}
	sess, err := r.mgr.Load(ctx, userID, saveID)
	if err != nil {
		return nil, err
	}
	r.sessions[sessionKey(userID, saveID)] = sess
	return sess, nil
}

// put caches a freshly created session.
func (r *sessionRegistry) put(userID, saveID string, sess *session.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sessionKey(userID, saveID)] = sess
}

// drop exits and forgets a session. Unknown sessions are a no-op.
func (r *sessionRegistry) drop(userID, saveID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sess, ok := r.sessions[sessionKey(userID, saveID)]; ok {
		sess.Exit()
		delete(r.sessions, sessionKey(userID, saveID))
	}
}
