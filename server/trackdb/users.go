package trackdb

import (
	"github.com/campusfix/campusfix/server/model"
)

func (t *TrackDB) CreateUser(user *model.User) error {
	return t.DB.Create(user).Error
}

func (t *TrackDB) AllUsers() ([]model.User, error) {
	var users []model.User
	return users, t.DB.Order("id").Find(&users).Error
}

func (t *TrackDB) GetUserFromID(id int64) (*model.User, error) {
	user := model.User{}
	if err := t.DB.Find(&user, id).Error; err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, nil
	}
	return &user, nil
}

// UpdateUser changes the fields an admin may edit. The password is changed
// through the auth layer, not here.
func (t *TrackDB) UpdateUser(id int64, username, email string, role model.Role) error {
	return t.DB.Model(&model.User{}).Where("id = ?", id).
		Updates(map[string]any{"username": username, "email": email, "role": role}).Error
}

func (t *TrackDB) DeleteUser(id int64) error {
	return t.DB.Delete(&model.User{}, id).Error
}

type Stats struct {
	TotalUsers     int `json:"totalUsers"`
	TotalIssues    int `json:"totalIssues"`
	PendingIssues  int `json:"pendingIssues"`
	ResolvedIssues int `json:"resolvedIssues"`
}

// GetStats aggregates the admin dashboard counters.
func (t *TrackDB) GetStats() (*Stats, error) {
	var users, issues, pending, resolved int64
	if err := t.DB.Model(&model.User{}).Count(&users).Error; err != nil {
		return nil, err
	}
	if err := t.DB.Model(&model.Issue{}).Count(&issues).Error; err != nil {
		return nil, err
	}
	if err := t.DB.Model(&model.Issue{}).Where("status = ?", model.IssueStatusPending).Count(&pending).Error; err != nil {
		return nil, err
	}
	if err := t.DB.Model(&model.Issue{}).Where("status = ?", model.IssueStatusResolved).Count(&resolved).Error; err != nil {
		return nil, err
	}
	return &Stats{
		TotalUsers:     int(users),
		TotalIssues:    int(issues),
		PendingIssues:  int(pending),
		ResolvedIssues: int(resolved),
	}, nil
}
