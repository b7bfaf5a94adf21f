package auth

import (
	"net/http"
	"sync"
	"time"

	"github.com/campusfix/campusfix/server/model"
	"gorm.io/gorm"
)

// SessionStore is the server-side session record store. Records are keyed by
// the hashed session token. The DB-backed store is used in production; the
// in-memory store exists for tests.
type SessionStore interface {
	Put(session model.Session) error
	Get(key string) (model.Session, bool)
	Delete(key string) error
	DeleteForUser(userID int64) error
	DeleteExpired(now time.Time) error
}

type dbSessionStore struct {
	db *gorm.DB
}

func NewDBSessionStore(db *gorm.DB) SessionStore {
	return &dbSessionStore{db: db}
}

func (s *dbSessionStore) Put(session model.Session) error {
	return s.db.Create(&session).Error
}

func (s *dbSessionStore) Get(key string) (model.Session, bool) {
	session := model.Session{}
	if err := s.db.Where("key = ?", key).Find(&session).Error; err != nil {
		return model.Session{}, false
	}
	return session, session.UserID != 0
}

func (s *dbSessionStore) Delete(key string) error {
	return s.db.Where("key = ?", key).Delete(&model.Session{}).Error
}

func (s *dbSessionStore) DeleteForUser(userID int64) error {
	return s.db.Where("user_id = ?", userID).Delete(&model.Session{}).Error
}

func (s *dbSessionStore) DeleteExpired(now time.Time) error {
	return s.db.Where("expires_at < ?", now).Delete(&model.Session{}).Error
}

type MemSessionStore struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
}

func NewMemSessionStore() *MemSessionStore {
	return &MemSessionStore{sessions: map[string]model.Session{}}
}

func (s *MemSessionStore) Put(session model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Key] = session
	return nil
}

func (s *MemSessionStore) Get(key string) (model.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[key]
	return session, ok
}

func (s *MemSessionStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
	return nil
}

func (s *MemSessionStore) DeleteForUser(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, session := range s.sessions {
		if session.UserID == userID {
			delete(s.sessions, key)
		}
	}
	return nil
}

func (s *MemSessionStore) DeleteExpired(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, session := range s.sessions {
		if session.ExpiresAt.Before(now) {
			delete(s.sessions, key)
		}
	}
	return nil
}

// Login establishes a session for a freshly authenticated user, and hands the
// token to the client as a cookie. Only the hash of the token is stored.
func (a *AuthServer) Login(w http.ResponseWriter, user *model.User) error {
	token := StrongRandomAlphaNumChars(30)
	now := time.Now().UTC()
	session := model.Session{
		Key:       HashSessionTokenBase64(token),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionDuration),
	}
	if err := a.sessions.Put(session); err != nil {
		a.log.Errorf("Error creating session: %v", err)
		return err
	}
	// Opportunistic cleanup, so the session table doesn't grow forever
	if err := a.sessions.DeleteExpired(now); err != nil {
		a.log.Warnf("Purging expired sessions failed: %v", err)
	}
	a.log.Infof("Logging %v in", user.ID)
	http.SetCookie(w, a.sessionCookie(token, int(SessionDuration.Seconds())))
	return nil
}

// Logout destroys the request's session, if any, and instructs the client to
// discard the cookie. Destroying an absent session is not an error.
func (a *AuthServer) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, _ := r.Cookie(SessionCookie)
	if cookie != nil && cookie.Value != "" {
		if err := a.sessions.Delete(HashSessionTokenBase64(cookie.Value)); err != nil {
			a.log.Warnf("Error deleting session: %v", err)
		}
	}
	http.SetCookie(w, a.sessionCookie("", -1))
}

// EraseSessionsForUser logs a user out everywhere (eg after the account is
// deleted by an admin).
func (a *AuthServer) EraseSessionsForUser(userID int64) error {
	return a.sessions.DeleteForUser(userID)
}

func (a *AuthServer) sessionCookie(token string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	}
	if a.production {
		// Cross-site cookie for the separately hosted front end.
		// SameSite=None requires Secure.
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}
	return cookie
}
