package server

import (
	"net/http"

	"github.com/campusfix/campusfix/server/auth"
	"github.com/campusfix/campusfix/server/model"
	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"
)

func (s *Server) httpAuthLogin(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	type request struct {
		Username string     `json:"username"`
		Password string     `json:"password"`
		Role     model.Role `json:"role"`
	}
	req := request{}
	www.ReadJSON(w, r, &req, 1024*1024)
	if req.Username == "" || req.Password == "" {
		www.PanicBadRequestf("Username and password must be set")
	}
	if !req.Role.Valid() {
		www.PanicBadRequestf("Invalid role '%v'", req.Role)
	}

	user, err := s.auth.Authenticate(req.Username, req.Password, req.Role)
	switch err {
	case nil:
	case auth.ErrUsernameNotFound, auth.ErrPasswordMismatch:
		s.Log.Infof("Authentication failed for '%v': %v", req.Username, err)
		sendMessage(w, http.StatusUnauthorized, err.Error())
		return
	case auth.ErrRoleMismatch:
		s.Log.Infof("Role mismatch for '%v': claimed %v", req.Username, req.Role)
		sendMessage(w, http.StatusForbidden, err.Error())
		return
	default:
		s.Log.Errorf("Login error for '%v': %v", req.Username, err)
		www.PanicServerError("Server error")
	}

	if err := s.auth.Login(w, user); err != nil {
		www.PanicServerError("Error creating session")
	}
	type response struct {
		Message string      `json:"message"`
		User    *model.User `json:"user"`
	}
	www.SendJSON(w, response{Message: "Login successful", User: user})
}

func (s *Server) httpAuthCheck(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	cred := s.auth.Resolve(r)
	if cred == nil {
		type response struct {
			Authenticated bool   `json:"authenticated"`
			Message       string `json:"message"`
		}
		b := mustMarshal(response{Authenticated: false, Message: "Unauthorized"})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write(b)
		return
	}
	user, err := s.auth.GetUser(cred)
	www.Check(err)
	type userJSON struct {
		ID       int64      `json:"id"`
		Username string     `json:"username"`
		Email    string     `json:"email"`
		Role     model.Role `json:"role"`
	}
	type response struct {
		Authenticated bool     `json:"authenticated"`
		User          userJSON `json:"user"`
	}
	www.SendJSON(w, response{
		Authenticated: true,
		User: userJSON{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		},
	})
}

// Logout succeeds regardless of whether the request carries a live session, so
// a client can always get back to a clean state.
func (s *Server) httpAuthLogout(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	if cred := s.auth.Resolve(r); cred != nil {
		s.Log.Infof("Logout request from '%v'", cred.Username)
	}
	s.auth.Logout(w, r)
	sendMessage(w, http.StatusOK, "Logged out successfully")
}
