package trackdb

import (
	"time"

	"github.com/campusfix/campusfix/server/model"
)

func (t *TrackDB) CreateContactMessage(msg *model.ContactMessage) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	return t.DB.Create(msg).Error
}
