package progress

import (
	"time"

	"github.com/technobugproject/technobug/model"
	. "github.com/technobugproject/technobug/utils/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RecordVisit stamps the user's visited-pages map with the current time for
// the given section. Revisits overwrite the previous timestamp, they never
// add a second entry.
//
// Visits are best-effort telemetry: an unknown page key, a missing user or a
// failed write is logged at most and never surfaces to the caller, so page
// rendering can't be broken by tracking.
func RecordVisit(db *gorm.DB, userID string, pageKey string) {
	if userID == "" || !IsKnownPage(pageKey) {
		return
	}

	var user model.User
	res := db.Where("id = ?", userID).First(&user)
	if res.RowsAffected != 1 {
		return
	}

	if user.VisitedPages == nil {
		user.VisitedPages = datatypes.JSONMap{}
	}
	now := time.Now()
	user.VisitedPages[pageKey] = now.Format(time.RFC3339)

	err := db.Model(&user).Updates(map[string]interface{}{
		"visited_pages": user.VisitedPages,
		"last_activity": now,
	}).Error
	if err != nil {
		Log.Error("fail to record page visit for user ", userID, " page ", pageKey, ": ", err)
	}
}
