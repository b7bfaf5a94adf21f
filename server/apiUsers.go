package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/campusfix/campusfix/server/auth"
	"github.com/campusfix/campusfix/server/model"
	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"
)

func (s *Server) httpStats(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	stats, err := s.db.GetStats()
	www.Check(err)
	www.SendJSON(w, stats)
}

func (s *Server) httpListUsers(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	users, err := s.db.AllUsers()
	www.Check(err)
	type response struct {
		Users []model.User `json:"users"`
	}
	www.SendJSON(w, response{Users: users})
}

func (s *Server) httpCreateUser(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	type request struct {
		Username string     `json:"username"`
		Email    string     `json:"email"`
		Password string     `json:"password"`
		Phone    string     `json:"phone"`
		Role     model.Role `json:"role"`
	}
	req := request{}
	www.ReadJSON(w, r, &req, 1024*1024)
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		www.PanicBadRequestf("Username must be set")
	}
	if !req.Role.Valid() {
		www.PanicBadRequestf("Invalid role '%v'", req.Role)
	}
	if err := auth.IsPasswordOK(req.Password); err != nil {
		www.PanicBadRequestf("%v", err)
	}
	hash, err := auth.HashPassword(req.Password)
	www.Check(err)
	user := model.User{
		Username: req.Username,
		Password: hash,
		Role:     req.Role,
		Email:    req.Email,
		Phone:    req.Phone,
		JoinedAt: time.Now().UTC(),
	}
	www.Check(s.db.CreateUser(&user))
	s.Log.Infof("Created new user %v, %v, role:%v", user.Username, user.Email, user.Role)
	sendMessage(w, http.StatusOK, "User created")
}

func (s *Server) httpUpdateUser(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	userID := www.ParseID(params.ByName("id"))
	if userID == 0 {
		www.PanicBadRequestf("Invalid user ID")
	}
	type request struct {
		Username string     `json:"username"`
		Email    string     `json:"email"`
		Role     model.Role `json:"role"`
	}
	req := request{}
	www.ReadJSON(w, r, &req, 1024*1024)
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		www.PanicBadRequestf("Username must be set")
	}
	if !req.Role.Valid() {
		www.PanicBadRequestf("Invalid role '%v'", req.Role)
	}
	user, err := s.db.GetUserFromID(userID)
	www.Check(err)
	if user == nil {
		www.PanicNotFound()
	}
	www.Check(s.db.UpdateUser(userID, req.Username, req.Email, req.Role))
	sendMessage(w, http.StatusOK, "User updated")
}

func (s *Server) httpDeleteUser(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	userID := www.ParseID(params.ByName("id"))
	if userID == 0 {
		www.PanicBadRequestf("Invalid user ID")
	}
	www.Check(s.db.DeleteUser(userID))
	// Any live sessions of the deleted account would resolve to anonymous
	// anyway, but there is no reason to keep them around.
	www.Check(s.auth.EraseSessionsForUser(userID))
	sendMessage(w, http.StatusOK, "User deleted")
}

func (s *Server) httpProfile(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	user, err := s.auth.GetUser(cred)
	www.Check(err)
	type response struct {
		Username string     `json:"username"`
		Email    string     `json:"email"`
		Phone    string     `json:"phone"`
		Role     model.Role `json:"role"`
		JoinedAt time.Time  `json:"joined_at"`
	}
	www.SendJSON(w, response{
		Username: user.Username,
		Email:    user.Email,
		Phone:    user.Phone,
		Role:     user.Role,
		JoinedAt: user.JoinedAt,
	})
}
