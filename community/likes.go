package community

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/technobugproject/technobug/model"
	"gorm.io/gorm"
)

// TargetKind discriminates what a like applies to.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// LikeTarget is the tagged union {Post(id) | Comment(id)}. Storage uses two
// nullable foreign keys, but callers can only ever name exactly one target,
// so "both set" and "neither set" are unreachable by construction.
type LikeTarget struct {
	kind TargetKind
	id   string
}

func PostTarget(postID string) LikeTarget {
	return LikeTarget{kind: TargetPost, id: postID}
}

func CommentTarget(commentID string) LikeTarget {
	return LikeTarget{kind: TargetComment, id: commentID}
}

func (t LikeTarget) Kind() TargetKind { return t.kind }
func (t LikeTarget) Id() string       { return t.id }

// column returns the like column constrained by this target.
func (t LikeTarget) column() string {
	if t.kind == TargetPost {
		return "post_id"
	}
	return "comment_id"
}

// ToggleResult tells the caller what state the like ended up in and the
// target's like count after the mutation.
type ToggleResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

// ToggleLike flips the user's like on the target: present deletes, absent
// inserts. The returned count is read inside the same transaction as the
// mutation, so it always reflects it.
//
// Two concurrent toggles for the same (user, target) may both observe
// "absent"; the partial unique indexes on likes make the second insert fail
// instead of producing a duplicate row, and that failure propagates.
func ToggleLike(db *gorm.DB, userID string, target LikeTarget) (*ToggleResult, error) {
	if err := checkTargetExists(db, target); err != nil {
		return nil, err
	}
	var user model.User
	if db.Where("id = ?", userID).First(&user).RowsAffected != 1 {
		return nil, ErrNotFound
	}

	result := ToggleResult{}
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing model.Like
		res := tx.Where("user_id = ? AND "+target.column()+" = ?", userID, target.id).First(&existing)
		if res.RowsAffected == 1 {
			if err := tx.Delete(&existing).Error; err != nil {
				return errors.Wrap(err, "fail to remove like")
			}
			result.Liked = false
		} else {
			like := model.Like{
				Id:        uuid.New().String(),
				CreatedAt: time.Now(),
				UserID:    userID,
			}
			if target.kind == TargetPost {
				like.PostID = &target.id
			} else {
				like.CommentID = &target.id
			}
			if err := tx.Create(&like).Error; err != nil {
				// A unique-index violation here means a concurrent toggle
				// already inserted; the invariant held, the caller retries.
				return errors.Wrap(err, "fail to create like")
			}
			result.Liked = true
		}

		return tx.Model(&model.Like{}).
			Where(target.column()+" = ?", target.id).
			Count(&result.LikeCount).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func checkTargetExists(db *gorm.DB, target LikeTarget) error {
	var rows int64
	if target.kind == TargetPost {
		rows = db.Where("id = ?", target.id).First(&model.Post{}).RowsAffected
	} else {
		rows = db.Where("id = ?", target.id).First(&model.Comment{}).RowsAffected
	}
	if rows != 1 {
		return ErrNotFound
	}
	return nil
}

// likeCountsByComment returns comment id -> like count for the given
// comments in one query. Used by the thread assembler.
func likeCountsByComment(db *gorm.DB, commentIds []string) (map[string]int64, error) {
	counts := map[string]int64{}
	if len(commentIds) == 0 {
		return counts, nil
	}

	var rows []struct {
		CommentID string
		Total     int64
	}
	err := db.Model(&model.Like{}).
		Select("comment_id, count(*) as total").
		Where("comment_id IN ?", commentIds).
		Group("comment_id").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "fail to count likes per comment")
	}
	for _, row := range rows {
		counts[row.CommentID] = row.Total
	}
	return counts, nil
}
