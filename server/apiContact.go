package server

import (
	"net/http"

	"github.com/campusfix/campusfix/server/model"
	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"
)

// Contact-form intake. Unauthenticated, so visitors without an account can reach us.
func (s *Server) httpContact(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	type request struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	req := request{}
	www.ReadJSON(w, r, &req, 1024*1024)
	if req.Message == "" {
		www.PanicBadRequestf("Message must be set")
	}
	msg := model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := s.db.CreateContactMessage(&msg); err != nil {
		s.Log.Errorf("Error saving contact form: %v", err)
		sendMessage(w, http.StatusInternalServerError, "Failed submitting form")
		return
	}
	type response struct {
		Success bool `json:"success"`
	}
	www.SendJSON(w, response{Success: true})
}
