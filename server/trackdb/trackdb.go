package trackdb

import (
	"fmt"
	"time"

	"github.com/campusfix/campusfix/server/auth"
	"github.com/campusfix/campusfix/server/model"
	"github.com/cyclopcam/dbh"
	"github.com/cyclopcam/logs"
	"gorm.io/gorm"
)

// TrackDB owns the relational state of the tracker: users, sessions, issues,
// and contact-form messages.
type TrackDB struct {
	Log logs.Log
	DB  *gorm.DB
}

func NewTrackDB(logger logs.Log, config dbh.DBConfig) (*TrackDB, error) {
	db, err := dbh.OpenDB(logger, config, Migrations(logger, config.Driver), 0)
	if err != nil {
		return nil, fmt.Errorf("Failed to open database %v: %w", config.Database, err)
	}
	t := &TrackDB{
		Log: logger,
		DB:  db,
	}
	if err := t.seedInitialAdmin(); err != nil {
		return nil, err
	}
	return t, nil
}

// If the users table is empty, create an admin account with a random password
// and print the credentials to the log. Accounts are never self-registered,
// so without this there would be no way into a fresh system.
func (t *TrackDB) seedInitialAdmin() error {
	nUsers := int64(0)
	if err := t.DB.Model(&model.User{}).Count(&nUsers).Error; err != nil {
		return err
	}
	if nUsers != 0 {
		return nil
	}
	password := auth.StrongRandomAlphaNumChars(20)
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	t.Log.Infof("users table is empty, creating admin user.")
	t.Log.Infof("Username: admin")
	t.Log.Infof("Password: %v", password)
	admin := model.User{
		Username: "admin",
		Password: hash,
		Role:     model.RoleAdmin,
		JoinedAt: time.Now().UTC(),
	}
	return t.DB.Create(&admin).Error
}
