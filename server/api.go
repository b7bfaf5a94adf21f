package server

import (
	"embed"
	"encoding/json"
	"net/http"

	"github.com/campusfix/campusfix/server/auth"
	"github.com/campusfix/campusfix/server/model"
	"github.com/cyclopcam/staticfiles"
	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"
)

//go:embed www
var staticWWW embed.FS

type authenticatedHandler func(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials)

func (s *Server) setupHttpRoutes() error {
	router := httprouter.New()

	// unprotected creates an HTTP handler that is accessible without authentication
	unprotected := func(method, route string, handle httprouter.Handle) {
		www.Handle(s.Log, router, method, route, handle)
	}

	// protected creates an HTTP handler that requires a valid session
	protected := func(method, route string, handle authenticatedHandler) {
		www.Handle(s.Log, router, method, route, func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
			cred := s.auth.Resolve(r)
			if cred == nil {
				sendMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			handle(w, r, params, cred)
		})
	}

	// roleProtected additionally requires the session's role to match.
	// Unauthenticated and wrong-role are distinct outcomes (401 vs 403);
	// the front end redirects them differently.
	roleProtected := func(method, route string, role model.Role, handle authenticatedHandler) {
		www.Handle(s.Log, router, method, route, func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
			cred := s.auth.Resolve(r)
			if cred == nil {
				sendMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if cred.Role != role {
				sendMessage(w, http.StatusForbidden, "Forbidden - Insufficient permissions")
				return
			}
			handle(w, r, params, cred)
		})
	}

	unprotected("POST", "/login", s.httpAuthLogin)
	unprotected("GET", "/auth/check", s.httpAuthCheck)
	unprotected("POST", "/logout", s.httpAuthLogout)

	roleProtected("GET", "/reporter", model.RoleReporter, s.httpReporterHome)
	protected("POST", "/report-issue", s.httpReportIssue)
	protected("GET", "/myissues", s.httpMyIssues)
	protected("GET", "/dashboard", s.httpDashboard)

	roleProtected("GET", "/maintainer", model.RoleMaintainer, s.httpMaintainerHome)
	protected("GET", "/issues", s.httpListIssues)
	protected("GET", "/assigned-issues", s.httpAssignedIssues)
	protected("PATCH", "/issues/:id", s.httpUpdateIssue)

	roleProtected("GET", "/admin", model.RoleAdmin, s.httpAdminHome)
	roleProtected("GET", "/stats", model.RoleAdmin, s.httpStats)
	roleProtected("GET", "/users", model.RoleAdmin, s.httpListUsers)
	roleProtected("POST", "/users", model.RoleAdmin, s.httpCreateUser)
	roleProtected("PATCH", "/users/:id", model.RoleAdmin, s.httpUpdateUser)
	roleProtected("DELETE", "/users/:id", model.RoleAdmin, s.httpDeleteUser)

	protected("GET", "/profile", s.httpProfile)
	unprotected("POST", "/contact", s.httpContact)

	// Anything that isn't an API route falls through to the embedded landing
	// page. The real front end is hosted separately.
	static, err := staticfiles.NewCachedStaticFileServer(staticWWW, "www", nil, s.Log, true, nil)
	if err != nil {
		s.Log.Warnf("Error in static files: %v", err)
	}
	router.NotFound = static

	s.httpRouter = router
	return nil
}

// sendMessage sends {"message": ...} with the given status code. The JSON
// body shape is part of the API contract that the front end parses.
func sendMessage(w http.ResponseWriter, code int, message string) {
	type response struct {
		Message string `json:"message"`
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(mustMarshal(response{Message: message}))
}

func mustMarshal(obj any) []byte {
	b, err := json.Marshal(obj)
	www.Check(err)
	return b
}
