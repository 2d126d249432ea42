package progress

import (
	"github.com/technobugproject/technobug/model"
	. "github.com/technobugproject/technobug/utils/log"
	"gorm.io/gorm"
)

// Activity is the point-in-time count of everything a user has done on the
// site. It is the input of Score and of the suggestion builder, and is
// serialized as-is into the progress JSON response.
type Activity struct {
	PostsCount        int64             `json:"posts_count"`
	CommentsCount     int64             `json:"comments_count"`
	LikesCount        int64             `json:"likes_count"`
	PagesVisited      int               `json:"pages_visited"`
	ResourcesAccessed int               `json:"resources_accessed"`
	VisitedPages      map[string]string `json:"visited_pages"`
}

// Aggregate counts the user's posts, comments, likes and visited pages.
//
// A missing user yields the zero Activity so callers can render a zero-state
// progress view for an unauthenticated or deleted user without special
// casing. Count failures degrade to zero for the same reason, progress is a
// display-only metric with no consistency requirement beyond read-committed.
func Aggregate(db *gorm.DB, userID string) Activity {
	activity := Activity{VisitedPages: map[string]string{}}

	var user model.User
	res := db.Where("id = ?", userID).First(&user)
	if res.RowsAffected != 1 {
		return activity
	}

	countOwned := func(entity interface{}, name string) int64 {
		var n int64
		if err := db.Model(entity).Where("user_id = ?", userID).Count(&n).Error; err != nil {
			Log.Error("fail to count ", name, " for user ", userID, ": ", err)
			return 0
		}
		return n
	}
	activity.PostsCount = countOwned(&model.Post{}, "posts")
	activity.CommentsCount = countOwned(&model.Comment{}, "comments")
	activity.LikesCount = countOwned(&model.Like{}, "likes")

	for key, stamp := range user.VisitedPages {
		if s, ok := stamp.(string); ok {
			activity.VisitedPages[key] = s
		} else {
			activity.VisitedPages[key] = ""
		}
		if IsResourcePage(key) {
			activity.ResourcesAccessed++
		}
	}
	activity.PagesVisited = len(user.VisitedPages)

	return activity
}
