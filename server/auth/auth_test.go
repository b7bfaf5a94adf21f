package auth_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/campusfix/campusfix/server/auth"
	"github.com/campusfix/campusfix/server/model"
	"github.com/campusfix/campusfix/server/trackdb"
	"github.com/cyclopcam/dbh"
	"github.com/cyclopcam/logs"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *trackdb.TrackDB
	auth  *auth.AuthServer
	alice *model.User
}

func createFixture(t *testing.T) *fixture {
	logger := logs.NewTestingLog(t)
	dbPath := filepath.Join(t.TempDir(), "test-auth.sqlite")
	db, err := trackdb.NewTrackDB(logger, dbh.MakeSqliteConfig(dbPath))
	require.NoError(t, err)

	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)
	alice := &model.User{
		Username: "alice",
		Password: hash,
		Role:     model.RoleReporter,
		Email:    "alice@example.com",
		JoinedAt: time.Now().UTC(),
	}
	require.NoError(t, db.CreateUser(alice))

	return &fixture{
		db:    db,
		auth:  auth.NewAuthServer(db.DB, logger, auth.NewDBSessionStore(db.DB), false),
		alice: alice,
	}
}

// Log in and return the session cookie.
func login(t *testing.T, f *fixture, user *model.User) *http.Cookie {
	w := httptest.NewRecorder()
	require.NoError(t, f.auth.Login(w, user))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func requestWithCookie(cookie *http.Cookie) *http.Request {
	r := httptest.NewRequest("GET", "/profile", nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	return r
}

func TestAuthenticate(t *testing.T) {
	f := createFixture(t)

	user, err := f.auth.Authenticate("alice", "correct-horse", model.RoleReporter)
	require.NoError(t, err)
	require.Equal(t, f.alice.ID, user.ID)

	_, err = f.auth.Authenticate("ghost", "correct-horse", model.RoleReporter)
	require.ErrorIs(t, err, auth.ErrUsernameNotFound)

	_, err = f.auth.Authenticate("alice", "wrong-password", model.RoleReporter)
	require.ErrorIs(t, err, auth.ErrPasswordMismatch)

	// Right password, wrong claimed role, is a distinct failure
	_, err = f.auth.Authenticate("alice", "correct-horse", model.RoleAdmin)
	require.ErrorIs(t, err, auth.ErrRoleMismatch)

	// Username lookup is case-sensitive
	_, err = f.auth.Authenticate("Alice", "correct-horse", model.RoleReporter)
	require.ErrorIs(t, err, auth.ErrUsernameNotFound)
}

func TestSessionCookie(t *testing.T) {
	f := createFixture(t)
	cookie := login(t, f, f.alice)

	require.Equal(t, auth.SessionCookie, cookie.Name)
	require.Equal(t, "/", cookie.Path)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, 3600, cookie.MaxAge)
	require.False(t, cookie.Secure)
	require.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestProductionCookie(t *testing.T) {
	f := createFixture(t)
	prodAuth := auth.NewAuthServer(f.db.DB, logs.NewTestingLog(t), auth.NewDBSessionStore(f.db.DB), true)
	w := httptest.NewRecorder()
	require.NoError(t, prodAuth.Login(w, f.alice))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.True(t, cookies[0].Secure)
	require.Equal(t, http.SameSiteNoneMode, cookies[0].SameSite)
}

func TestResolve(t *testing.T) {
	f := createFixture(t)
	cookie := login(t, f, f.alice)

	cred := f.auth.Resolve(requestWithCookie(cookie))
	require.NotNil(t, cred)
	require.Equal(t, f.alice.ID, cred.UserID)
	require.Equal(t, "alice", cred.Username)
	require.Equal(t, model.RoleReporter, cred.Role)

	// No cookie at all
	require.Nil(t, f.auth.Resolve(requestWithCookie(nil)))

	// Garbage cookie value
	garbage := &http.Cookie{Name: auth.SessionCookie, Value: "not-a-real-token"}
	require.Nil(t, f.auth.Resolve(requestWithCookie(garbage)))
}

func TestResolveRefetchesUser(t *testing.T) {
	f := createFixture(t)
	cookie := login(t, f, f.alice)

	// A role change is visible on the very next request, without re-login
	require.NoError(t, f.db.UpdateUser(f.alice.ID, "alice", "alice@example.com", model.RoleMaintainer))
	cred := f.auth.Resolve(requestWithCookie(cookie))
	require.NotNil(t, cred)
	require.Equal(t, model.RoleMaintainer, cred.Role)

	// Deleting the account orphans the session, which then resolves to anonymous
	require.NoError(t, f.db.DeleteUser(f.alice.ID))
	require.Nil(t, f.auth.Resolve(requestWithCookie(cookie)))
}

func TestSessionExpiry(t *testing.T) {
	f := createFixture(t)

	store := auth.NewMemSessionStore()
	a := auth.NewAuthServer(f.db.DB, logs.NewTestingLog(t), store, false)
	token := "expired-session-token"
	require.NoError(t, store.Put(model.Session{
		Key:       auth.HashSessionTokenBase64(token),
		UserID:    f.alice.ID,
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}))
	cookie := &http.Cookie{Name: auth.SessionCookie, Value: token}
	require.Nil(t, a.Resolve(requestWithCookie(cookie)))

	// Expired sessions get purged when somebody logs in
	w := httptest.NewRecorder()
	require.NoError(t, a.Login(w, f.alice))
	_, ok := store.Get(auth.HashSessionTokenBase64(token))
	require.False(t, ok)
}

func TestLogoutIsIdempotent(t *testing.T) {
	f := createFixture(t)
	cookie := login(t, f, f.alice)

	r := requestWithCookie(cookie)
	w := httptest.NewRecorder()
	f.auth.Logout(w, r)
	require.Nil(t, f.auth.Resolve(requestWithCookie(cookie)))

	// The cleared cookie tells the client to discard it
	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	require.Less(t, cleared[0].MaxAge, 0)

	// Destroying an already-destroyed session is not an error
	w2 := httptest.NewRecorder()
	f.auth.Logout(w2, requestWithCookie(cookie))
}

func TestMemSessionStore(t *testing.T) {
	store := auth.NewMemSessionStore()
	now := time.Now()
	put := func(key string, userID int64, expiresAt time.Time) {
		require.NoError(t, store.Put(model.Session{Key: key, UserID: userID, CreatedAt: now, ExpiresAt: expiresAt}))
	}
	put("k1", 1, now.Add(time.Hour))
	put("k2", 1, now.Add(-time.Hour))
	put("k3", 2, now.Add(time.Hour))

	s, ok := store.Get("k1")
	require.True(t, ok)
	require.Equal(t, int64(1), s.UserID)

	require.NoError(t, store.DeleteExpired(now))
	_, ok = store.Get("k2")
	require.False(t, ok)

	require.NoError(t, store.DeleteForUser(1))
	_, ok = store.Get("k1")
	require.False(t, ok)
	_, ok = store.Get("k3")
	require.True(t, ok)

	require.NoError(t, store.Delete("k3"))
	require.NoError(t, store.Delete("k3"))
}

func TestPasswords(t *testing.T) {
	hash, err := auth.HashPassword("hunter22hunter22")
	require.NoError(t, err)
	require.True(t, auth.VerifyPassword("hunter22hunter22", hash))
	require.False(t, auth.VerifyPassword("hunter23hunter23", hash))

	require.Error(t, auth.IsPasswordOK("short"))
	require.NoError(t, auth.IsPasswordOK("long enough"))

	// Two hashes of the same password differ (random salt)
	hash2, err := auth.HashPassword("hunter22hunter22")
	require.NoError(t, err)
	require.NotEqual(t, hash, hash2)
}
