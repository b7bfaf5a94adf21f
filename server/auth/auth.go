package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/campusfix/campusfix/server/model"
	"github.com/cyclopcam/logs"
	"gorm.io/gorm"
)

// SYNC-CAMPUSFIX-SESSION-COOKIE
// The cookie name is the express-session default, so existing front ends
// keep working against this server.
const SessionCookie = "connect.sid"

// Sessions expire exactly one hour after login, regardless of activity.
const SessionDuration = time.Hour

// Login failure reasons. The HTTP layer maps the first two to 401 and
// ErrRoleMismatch to 403. The username/password distinction is a known
// user-enumeration weakness that the deployed front end depends on.
var (
	ErrUsernameNotFound = errors.New("Invalid username")
	ErrPasswordMismatch = errors.New("Invalid password")
	ErrRoleMismatch     = errors.New("Role mismatch")
)

// Credentials is the resolved principal of an authenticated request.
type Credentials struct {
	UserID     int64
	Username   string
	Role       model.Role
	SessionKey string // hashed token of the session cookie that authenticated this request
}

type AuthServer struct {
	db         *gorm.DB
	log        logs.Log
	sessions   SessionStore
	production bool
}

// production controls the cookie attributes: Secure + SameSite=None behind
// HTTPS with a separately hosted front end, SameSite=Lax for plain-HTTP dev.
func NewAuthServer(db *gorm.DB, log logs.Log, sessions SessionStore, production bool) *AuthServer {
	return &AuthServer{
		db:         db,
		log:        log,
		sessions:   sessions,
		production: production,
	}
}

// Authenticate verifies a username/password/claimed-role triple.
// The claimed role comes from the login form; all three must agree.
func (a *AuthServer) Authenticate(username, password string, claimed model.Role) (*model.User, error) {
	user := model.User{}
	if err := a.db.Where("username = ?", username).Find(&user).Error; err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, ErrUsernameNotFound
	}
	if !VerifyPassword(password, user.Password) {
		return nil, ErrPasswordMismatch
	}
	if user.Role != claimed {
		return nil, ErrRoleMismatch
	}
	return &user, nil
}

// Resolve returns the principal of the request's session cookie, or nil if
// the request carries no cookie, the session is unknown, or it has expired.
// The user row is re-fetched on every call, so a deleted account or a role
// change takes effect immediately instead of riding out the session.
func (a *AuthServer) Resolve(r *http.Request) *Credentials {
	cookie, _ := r.Cookie(SessionCookie)
	if cookie == nil || cookie.Value == "" {
		return nil
	}
	key := HashSessionTokenBase64(cookie.Value)
	session, ok := a.sessions.Get(key)
	if !ok {
		return nil
	}
	if !session.ExpiresAt.After(time.Now()) {
		return nil
	}
	user := model.User{}
	if err := a.db.Find(&user, session.UserID).Error; err != nil {
		a.log.Errorf("Resolve: user lookup failed: %v", err)
		return nil
	}
	if user.ID == 0 {
		// Orphaned session (user deleted after login)
		return nil
	}
	return &Credentials{
		UserID:     user.ID,
		Username:   user.Username,
		Role:       user.Role,
		SessionKey: key,
	}
}

// GetUser re-fetches the full user record behind a set of credentials.
func (a *AuthServer) GetUser(cred *Credentials) (*model.User, error) {
	user := model.User{}
	if err := a.db.Find(&user, cred.UserID).Error; err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, ErrUsernameNotFound
	}
	return &user, nil
}
