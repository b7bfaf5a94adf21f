package trackdb

import (
	"time"

	"github.com/campusfix/campusfix/server/model"
)

// IssueWithReporter is an issue joined with the account that filed it,
// for the maintainer's overview table.
type IssueWithReporter struct {
	model.Issue
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
}

func (t *TrackDB) CreateIssue(issue *model.Issue) error {
	if issue.Status == "" {
		issue.Status = model.IssueStatusPending
	}
	if issue.CreatedAt.IsZero() {
		issue.CreatedAt = time.Now().UTC()
	}
	return t.DB.Create(issue).Error
}

// IssuesByUser returns the issues filed by one user.
// The reporter's issue list is oldest-first; the dashboard is newest-first.
func (t *TrackDB) IssuesByUser(userID int64, newestFirst bool) ([]model.Issue, error) {
	order := "created_at"
	if newestFirst {
		order = "created_at DESC"
	}
	var issues []model.Issue
	err := t.DB.Where("user_id = ?", userID).Order(order).Find(&issues).Error
	return issues, err
}

// AllIssues returns every issue, newest first.
func (t *TrackDB) AllIssues() ([]model.Issue, error) {
	var issues []model.Issue
	err := t.DB.Order("created_at DESC").Find(&issues).Error
	return issues, err
}

// AllIssuesWithReporter returns every issue joined with its reporter, newest first.
func (t *TrackDB) AllIssuesWithReporter() ([]IssueWithReporter, error) {
	var issues []IssueWithReporter
	err := t.DB.Raw(`
		SELECT issues.*, users.username AS username, users.role AS role
		FROM issues
		JOIN users ON issues.user_id = users.id
		ORDER BY issues.created_at DESC`).Scan(&issues).Error
	return issues, err
}

func (t *TrackDB) GetIssue(id int64) (*model.Issue, error) {
	issue := model.Issue{}
	if err := t.DB.Find(&issue, id).Error; err != nil {
		return nil, err
	}
	if issue.ID == 0 {
		return nil, nil
	}
	return &issue, nil
}

// UpdateIssue sets the status and the maintainer's remark.
func (t *TrackDB) UpdateIssue(id int64, status, remark string) error {
	return t.DB.Model(&model.Issue{}).Where("id = ?", id).
		Updates(map[string]any{"status": status, "remark": remark}).Error
}
