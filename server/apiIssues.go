package server

import (
	"net/http"
	"time"

	"github.com/campusfix/campusfix/server/auth"
	"github.com/campusfix/campusfix/server/model"
	"github.com/campusfix/campusfix/server/trackdb"
	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"
)

func (s *Server) httpReporterHome(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	sendMessage(w, http.StatusOK, "Welcome to the reporter route!")
}

func (s *Server) httpMaintainerHome(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	sendMessage(w, http.StatusOK, "Welcome to the maintainer route!")
}

func (s *Server) httpAdminHome(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	sendMessage(w, http.StatusOK, "Welcome to the admin route!")
}

func (s *Server) httpReportIssue(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	type request struct {
		Floor       string    `json:"floor"`
		Room        string    `json:"room"`
		Device      string    `json:"device"`
		Description string    `json:"description"`
		Priority    string    `json:"priority"`
		CreatedAt   time.Time `json:"createdAt"`
	}
	req := request{}
	www.ReadJSON(w, r, &req, 1024*1024)
	issue := model.Issue{
		UserID:      cred.UserID,
		Floor:       req.Floor,
		Room:        req.Room,
		Device:      req.Device,
		Description: req.Description,
		Priority:    req.Priority,
		CreatedAt:   req.CreatedAt,
	}
	www.Check(s.db.CreateIssue(&issue))
	type response struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	www.SendJSON(w, response{Success: true, Message: "Issue reported successfully"})
}

type issuesResponse struct {
	Success bool          `json:"success"`
	Issues  []model.Issue `json:"issues"`
}

func (s *Server) httpMyIssues(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	issues, err := s.db.IssuesByUser(cred.UserID, false)
	www.Check(err)
	www.SendJSON(w, issuesResponse{Success: true, Issues: issues})
}

func (s *Server) httpDashboard(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	issues, err := s.db.IssuesByUser(cred.UserID, true)
	www.Check(err)
	www.SendJSON(w, issuesResponse{Success: true, Issues: issues})
}

// All issues, joined with the reporter, for the maintainer's overview table.
func (s *Server) httpListIssues(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	issues, err := s.db.AllIssuesWithReporter()
	www.Check(err)
	type response struct {
		Success bool                        `json:"success"`
		Issues  []trackdb.IssueWithReporter `json:"issues"`
	}
	www.SendJSON(w, response{Success: true, Issues: issues})
}

func (s *Server) httpAssignedIssues(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	issues, err := s.db.AllIssues()
	www.Check(err)
	type response struct {
		Issues []model.Issue `json:"issues"`
	}
	www.SendJSON(w, response{Issues: issues})
}

func (s *Server) httpUpdateIssue(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	issueID := www.ParseID(params.ByName("id"))
	if issueID == 0 {
		www.PanicBadRequestf("Invalid issue ID")
	}
	type request struct {
		Status string `json:"status"`
		Remark string `json:"remark"`
	}
	req := request{}
	www.ReadJSON(w, r, &req, 1024*1024)
	if req.Status != model.IssueStatusPending && req.Status != model.IssueStatusResolved {
		www.PanicBadRequestf("Invalid status '%v'", req.Status)
	}
	issue, err := s.db.GetIssue(issueID)
	www.Check(err)
	if issue == nil {
		www.PanicNotFound()
	}
	www.Check(s.db.UpdateIssue(issueID, req.Status, req.Remark))
	type response struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	www.SendJSON(w, response{Success: true, Message: "Issue updated successfully"})
}
